package renderdoc

import (
	"log/slog"

	"github.com/shaban/renderdoc/rdapi"
)

// Environment variables honored at initialization.
const (
	// EnvDisabled disables initialization entirely when set to any
	// non-empty value; the Resource comes back unavailable with
	// ErrDisabled. Lets shipped builds turn the shim off without a
	// rebuild.
	EnvDisabled = "RENDERDOC_DISABLED"
	// EnvLibrary points the loader at an explicit library path instead
	// of the platform search names.
	EnvLibrary = rdapi.EnvLibrary
)

// DefaultPathTemplate is where captures are written when Options does
// not override it. The tool appends frame number and extension.
const DefaultPathTemplate = "renderdoc/capture"

// Options configure Initialize and the components built on the
// resulting Resource. Start from DefaultOptions and adjust; a nil
// *Options means DefaultOptions().
type Options struct {
	// PathTemplate is the capture file path template handed to the
	// tool at startup. Empty means DefaultPathTemplate.
	PathTemplate string

	// Overlay keeps the tool's in-application overlay visible. The
	// default masks it off so the shim stays invisible until used.
	Overlay bool

	// KeepNativeHotkeys leaves the tool's own capture key bindings
	// (F12 by default) active alongside a host-side binding. With both
	// active a single keypress records two captures, so the default
	// clears the tool's bindings.
	KeepNativeHotkeys bool

	// DisableReplayUI turns off opening the tool's replay UI after a
	// triggered capture. The default launches it whenever no earlier
	// launch is still running.
	DisableReplayUI bool

	// Logger receives the startup diagnostic and trigger activity.
	// Nil means slog.Default().
	Logger *slog.Logger

	// Probe overrides how the capture API is acquired. Nil uses the
	// platform loader; tests and integrators embedding the tool in
	// nonstandard ways substitute their own.
	Probe func() (CaptureAPI, error)
}

// DefaultOptions returns the options Initialize uses when given nil:
// default path template, overlay masked off, tool hotkeys cleared,
// replay UI launched after triggered captures. Every optional field
// defaults from its zero value, so a hand-built Options behaves the
// same as this.
func DefaultOptions() *Options {
	return &Options{PathTemplate: DefaultPathTemplate}
}

// withDefaults returns a copy with unset fields filled in.
func (o *Options) withDefaults() *Options {
	if o == nil {
		o = DefaultOptions()
	}
	out := *o
	if out.PathTemplate == "" {
		out.PathTemplate = DefaultPathTemplate
	}
	if out.Logger == nil {
		out.Logger = slog.Default()
	}
	if out.Probe == nil {
		out.Probe = defaultProbe
	}
	return &out
}

// defaultProbe acquires the capture API through the platform loader,
// pinned to the 1.1.0 surface this package depends on.
func defaultProbe() (CaptureAPI, error) {
	api, err := rdapi.GetAPI(rdapi.Version110)
	if err != nil {
		return nil, err
	}
	return api, nil
}
