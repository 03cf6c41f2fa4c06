package renderdoc

import (
	"errors"

	"github.com/shaban/renderdoc/rdapi"
)

// Initialization failure reasons. Exactly one of these explains an
// unavailable Resource; errors.Is matches through any wrapping.
var (
	// ErrLibraryNotFound means no candidate library name could be
	// opened from the loader search path.
	ErrLibraryNotFound = rdapi.ErrLibraryNotFound
	// ErrSymbolNotFound means a library was opened but does not export
	// the capture entry point.
	ErrSymbolNotFound = rdapi.ErrSymbolNotFound
	// ErrIncompatibleVersion means the library rejected the requested
	// API version or returned a truncated function table.
	ErrIncompatibleVersion = rdapi.ErrIncompatibleVersion
	// ErrUnsupportedPlatform means no dynamic loader exists for this
	// platform.
	ErrUnsupportedPlatform = rdapi.ErrUnsupportedPlatform
	// ErrDisabled means EnvDisabled suppressed initialization.
	ErrDisabled = errors.New("renderdoc: disabled by environment")
)
