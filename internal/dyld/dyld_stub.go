//go:build !linux && !darwin && !freebsd && !windows

package dyld

func open(name string) (uintptr, error) {
	return 0, ErrUnsupported
}

func lookup(handle uintptr, symbol string) (uintptr, error) {
	return 0, ErrUnsupported
}
