//go:build linux || darwin || freebsd

package dyld

import "github.com/ebitengine/purego"

func open(name string) (uintptr, error) {
	// RTLD_GLOBAL so the capture library can interpose graphics entry
	// points the process resolves later.
	handle, err := purego.Dlopen(name, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return 0, err
	}
	return handle, nil
}

func lookup(handle uintptr, symbol string) (uintptr, error) {
	return purego.Dlsym(handle, symbol)
}
