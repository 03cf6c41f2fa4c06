// Package renderdoc integrates RenderDoc frame capture into a running
// game or graphics application.
//
// Initialize loads the capture library and wraps the outcome in a
// Resource. The load is allowed to fail: an unavailable Resource turns
// every capture operation into a no-op, so the application behaves
// identically with or without the tool installed. The library must
// attach before the graphics context it instruments exists, which
// means Initialize belongs at the top of main; ebitencap.RunGame
// arranges that ordering automatically for Ebitengine applications.
//
// The application owns distribution of the Resource: pass the pointer
// to whichever systems need to trigger captures. There is no ambient
// accessor.
package renderdoc

import (
	"fmt"
	"os"
	"sync"

	"github.com/shaban/renderdoc/rdapi"
)

// CaptureAPI is the capture surface a Resource distributes. *rdapi.API
// implements it; tests stand in doubles.
type CaptureAPI interface {
	APIVersion() (major, minor, patch int)
	TriggerCapture()
	TriggerMultiFrameCapture(frames uint32)
	SetCaptureFilePathTemplate(template string)
	CaptureFilePathTemplate() string
	MaskOverlayBits(and, or rdapi.OverlayBits)
	OverlayBits() rdapi.OverlayBits
	SetCaptureKeys(keys []rdapi.InputButton)
	SetFocusToggleKeys(keys []rdapi.InputButton)
	SetCaptureOption(opt rdapi.CaptureOption, val uint32) bool
	CaptureOption(opt rdapi.CaptureOption) uint32
	NumCaptures() uint32
	Capture(index uint32) (rdapi.CaptureFile, bool)
	IsTargetControlConnected() bool
	LaunchReplayUI(connect bool, args string) (uint32, error)
	IsFrameCapturing() bool
}

// Resource is the process-wide capture handle an application threads
// through to the systems that need it. It is immutable after
// Initialize: it either carries a usable API or the reason none is
// available, and that state never changes for the life of the process.
// Every method is safe on any state, including a nil receiver.
type Resource struct {
	api     CaptureAPI
	err     error
	library string
	version string
}

// Available reports whether the capture library loaded successfully.
func (r *Resource) Available() bool {
	return r != nil && r.api != nil
}

// Err returns why the capture library is unavailable, or nil.
func (r *Resource) Err() error {
	if r == nil {
		return nil
	}
	return r.err
}

// API exposes the underlying capture surface, or nil when unavailable.
// The Resource's own methods are no-ops in that state; raw access is
// for operations the Resource does not lift, like capture options.
func (r *Resource) API() CaptureAPI {
	if r == nil {
		return nil
	}
	return r.api
}

// Library returns the name or path the capture library was opened
// with, or "" when unavailable.
func (r *Resource) Library() string {
	if r == nil {
		return ""
	}
	return r.library
}

// APIVersion returns the capture API version the tool reported at
// initialization, or "" when unavailable.
func (r *Resource) APIVersion() string {
	if r == nil {
		return ""
	}
	return r.version
}

// TriggerCapture requests capture of the next presented frame. No-op
// when unavailable; completion is not awaited either way.
func (r *Resource) TriggerCapture() {
	if !r.Available() {
		return
	}
	r.api.TriggerCapture()
}

// TriggerMultiFrameCapture requests capture of the next n consecutive
// frames. No-op when unavailable.
func (r *Resource) TriggerMultiFrameCapture(n uint32) {
	if !r.Available() {
		return
	}
	r.api.TriggerMultiFrameCapture(n)
}

// SetCaptureFilePathTemplate changes where the tool writes captures.
// No-op when unavailable.
func (r *Resource) SetCaptureFilePathTemplate(template string) {
	if !r.Available() {
		return
	}
	r.api.SetCaptureFilePathTemplate(template)
}

// CaptureFilePathTemplate returns the tool's current capture path
// template, or "" when unavailable.
func (r *Resource) CaptureFilePathTemplate() string {
	if !r.Available() {
		return ""
	}
	return r.api.CaptureFilePathTemplate()
}

// NumCaptures returns how many captures the tool has recorded this
// session, or 0 when unavailable.
func (r *Resource) NumCaptures() uint32 {
	if !r.Available() {
		return 0
	}
	return r.api.NumCaptures()
}

// Capture returns metadata for the recorded capture at index.
func (r *Resource) Capture(index uint32) (rdapi.CaptureFile, bool) {
	if !r.Available() {
		return rdapi.CaptureFile{}, false
	}
	return r.api.Capture(index)
}

// IsTargetControlConnected reports whether a replay UI is connected to
// this application.
func (r *Resource) IsTargetControlConnected() bool {
	return r.Available() && r.api.IsTargetControlConnected()
}

// IsFrameCapturing reports whether a capture is in progress.
func (r *Resource) IsFrameCapturing() bool {
	return r.Available() && r.api.IsFrameCapturing()
}

// LaunchReplayUI starts the tool's replay UI, connected back to this
// application when connect is true. On an unavailable Resource it
// reports the initialization failure.
func (r *Resource) LaunchReplayUI(connect bool, args string) (uint32, error) {
	if !r.Available() {
		if err := r.Err(); err != nil {
			return 0, err
		}
		return 0, rdapi.ErrReplayUILaunch
	}
	return r.api.LaunchReplayUI(connect, args)
}

var (
	initOnce sync.Once
	shared   *Resource
)

// Initialize loads the capture library once for the process and wraps
// the outcome in a Resource. It never fails outward: on any load error
// the Resource comes back unavailable, the reason is logged, and the
// application proceeds with capture disabled.
//
// Call it before creating the window or graphics context the tool
// should attach to. The load is irreversible and process-wide, so
// repeated calls return the first result and ignore opts.
func Initialize(opts *Options) *Resource {
	initOnce.Do(func() {
		shared = newResource(opts)
	})
	return shared
}

// newResource runs one probe-and-configure pass. Split from Initialize
// so tests can exercise both outcomes in a single process.
func newResource(opts *Options) *Resource {
	o := opts.withDefaults()
	log := o.Logger

	if os.Getenv(EnvDisabled) != "" {
		log.Warn("renderdoc disabled by environment", "var", EnvDisabled)
		return &Resource{err: fmt.Errorf("%w: %s is set", ErrDisabled, EnvDisabled)}
	}

	api, err := o.Probe()
	if err != nil {
		log.Warn("renderdoc unavailable, frame capture disabled",
			"error", err,
			"hint", "install RenderDoc and make sure the library is on the loader search path")
		return &Resource{err: err}
	}

	res := &Resource{api: api}
	if raw, ok := api.(*rdapi.API); ok {
		res.library = raw.LibraryPath()
	}
	major, minor, patch := api.APIVersion()
	res.version = fmt.Sprintf("%d.%d.%d", major, minor, patch)

	configure(api, o)
	log.Debug("startup configuration applied",
		"overlay", o.Overlay,
		"native_hotkeys_kept", o.KeepNativeHotkeys)

	log.Info("renderdoc initialized",
		"version", res.version,
		"library", res.library,
		"path_template", api.CaptureFilePathTemplate())
	return res
}

// configure applies the startup settings the tool leaves to the
// integrator: capture path template, overlay state, and the tool's
// own key bindings.
func configure(api CaptureAPI, o *Options) {
	api.SetCaptureFilePathTemplate(o.PathTemplate)
	if !o.Overlay {
		api.MaskOverlayBits(rdapi.OverlayNone, rdapi.OverlayNone)
	}
	if !o.KeepNativeHotkeys {
		// The tool's in-process hook fires on its own F12 binding;
		// left active next to a host-side binding it records a second
		// capture per press.
		api.SetCaptureKeys(nil)
	}
}
