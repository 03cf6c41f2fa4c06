//go:build windows

package dyld

import "syscall"

func open(name string) (uintptr, error) {
	dll := syscall.NewLazyDLL(name)
	if err := dll.Load(); err != nil {
		return 0, err
	}
	return dll.Handle(), nil
}

func lookup(handle uintptr, symbol string) (uintptr, error) {
	return syscall.GetProcAddress(syscall.Handle(handle), symbol)
}
