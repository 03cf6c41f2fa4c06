// Package dyld opens native shared libraries and resolves symbols from
// them. It is the only package in the module that touches the platform
// loader; callers see a uintptr handle and an error, never a GOOS
// branch.
package dyld

import (
	"errors"
	"fmt"
)

// ErrUnsupported is returned on platforms without a dynamic loader
// implementation.
var ErrUnsupported = errors.New("dyld: dynamic loading not supported on this platform")

// Open tries each candidate library name in order and returns the
// handle of the first one the platform loader accepts, along with the
// name that succeeded. The handle stays valid for the process lifetime;
// there is deliberately no Close.
func Open(names []string) (uintptr, string, error) {
	if len(names) == 0 {
		return 0, "", errors.New("dyld: no library names given")
	}
	var firstErr error
	for _, name := range names {
		handle, err := open(name)
		if err == nil {
			return handle, name, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return 0, "", fmt.Errorf("dyld: no loadable library among %v: %w", names, firstErr)
}

// Lookup resolves a symbol address in a library previously opened with
// Open.
func Lookup(handle uintptr, symbol string) (uintptr, error) {
	if handle == 0 {
		return 0, errors.New("dyld: lookup on zero handle")
	}
	addr, err := lookup(handle, symbol)
	if err != nil {
		return 0, fmt.Errorf("dyld: symbol %q: %w", symbol, err)
	}
	return addr, nil
}
