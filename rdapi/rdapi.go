// Package rdapi binds the RenderDoc in-application API.
//
// The tool exports a single entry point, RENDERDOC_GetAPI, which hands
// back a table of C function pointers for a requested API version.
// GetAPI loads the capture library if the process does not already
// carry it, resolves that entry point, and wraps the table in typed Go
// methods. The library load is process-wide and irreversible; it
// happens at most once regardless of how often GetAPI is called.
package rdapi

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/shaban/renderdoc/internal/dyld"
)

// EnvLibrary names an environment variable holding an explicit library
// path, tried before the platform search names.
const EnvLibrary = "RENDERDOC_LIB"

var (
	// ErrLibraryNotFound means no candidate library could be opened
	// from the loader search path.
	ErrLibraryNotFound = errors.New("rdapi: capture library not found")
	// ErrSymbolNotFound means a library was opened but does not export
	// RENDERDOC_GetAPI.
	ErrSymbolNotFound = errors.New("rdapi: RENDERDOC_GetAPI not exported")
	// ErrIncompatibleVersion means the library rejected the requested
	// API version or returned a truncated function table.
	ErrIncompatibleVersion = errors.New("rdapi: incompatible API version")
	// ErrUnsupportedPlatform means no dynamic loader exists for this
	// platform.
	ErrUnsupportedPlatform = errors.New("rdapi: platform not supported")
	// ErrReplayUILaunch means the tool could not start its replay UI.
	ErrReplayUILaunch = errors.New("rdapi: replay UI failed to launch")
)

// libraryNames returns the candidate shared-library names for this
// platform, most specific first. An EnvLibrary path always goes first.
func libraryNames() []string {
	var names []string
	if p := os.Getenv(EnvLibrary); p != "" {
		names = append(names, p)
	}
	switch runtime.GOOS {
	case "windows":
		names = append(names, "renderdoc.dll")
	case "darwin":
		names = append(names, "librenderdoc.dylib")
	case "android":
		// On Android the tool ships as a Vulkan/GLES layer library.
		names = append(names, "libVkLayer_GLES_RenderDoc.so", "librenderdoc.so")
	default:
		names = append(names, "librenderdoc.so")
	}
	return names
}

var (
	loadOnce  sync.Once
	libHandle uintptr
	libPath   string
	libErr    error
)

// loadLibrary opens the capture library once per process. Subsequent
// calls return the first outcome.
func loadLibrary() (uintptr, string, error) {
	loadOnce.Do(func() {
		handle, path, err := dyld.Open(libraryNames())
		if err != nil {
			if errors.Is(err, dyld.ErrUnsupported) {
				libErr = fmt.Errorf("%w: %s", ErrUnsupportedPlatform, runtime.GOOS)
			} else {
				libErr = fmt.Errorf("%w: %v", ErrLibraryNotFound, err)
			}
			return
		}
		libHandle, libPath = handle, path
	})
	return libHandle, libPath, libErr
}

// Function table layout for API version 1.1.0. Indices are positions
// in the struct RENDERDOC_GetAPI fills in; the layout is append-only
// across versions, so requesting 1.1.0 from a newer library is safe.
const (
	fnGetAPIVersion = iota
	fnSetCaptureOptionU32
	fnSetCaptureOptionF32
	fnGetCaptureOptionU32
	fnGetCaptureOptionF32
	fnSetFocusToggleKeys
	fnSetCaptureKeys
	fnGetOverlayBits
	fnMaskOverlayBits
	fnRemoveHooks
	fnUnloadCrashHandler
	fnSetCaptureFilePathTemplate
	fnGetCaptureFilePathTemplate
	fnGetNumCaptures
	fnGetCapture
	fnTriggerCapture
	fnIsTargetControlConnected
	fnLaunchReplayUI
	fnSetActiveWindow
	fnStartFrameCapture
	fnIsFrameCapturing
	fnEndFrameCapture
	fnTriggerMultiFrameCapture
	fnCount
)

// API is a typed view over one function table returned by
// RENDERDOC_GetAPI. Every method is safe on a nil receiver.
type API struct {
	requested Version
	library   string

	getAPIVersion              func(major, minor, patch *int32)
	setCaptureOptionU32        func(opt int32, val uint32) int32
	setCaptureOptionF32        func(opt int32, val float32) int32
	getCaptureOptionU32        func(opt int32) uint32
	getCaptureOptionF32        func(opt int32) float32
	setFocusToggleKeys         func(keys *int32, num int32)
	setCaptureKeys             func(keys *int32, num int32)
	getOverlayBits             func() uint32
	maskOverlayBits            func(and, or uint32)
	removeHooks                func()
	unloadCrashHandler         func()
	setCaptureFilePathTemplate func(template string)
	getCaptureFilePathTemplate func() *byte
	getNumCaptures             func() uint32
	getCapture                 func(idx uint32, filename *byte, pathLength *uint32, timestamp *uint64) uint32
	triggerCapture             func()
	isTargetControlConnected   func() uint32
	launchReplayUI             func(connectTargetControl uint32, cmdline *byte) uint32
	setActiveWindow            func(device, window unsafe.Pointer)
	startFrameCapture          func(device, window unsafe.Pointer)
	isFrameCapturing           func() uint32
	endFrameCapture            func(device, window unsafe.Pointer) uint32
	triggerMultiFrameCapture   func(numFrames uint32)
}

// GetAPI resolves RENDERDOC_GetAPI from the capture library and
// requests the given API version. The underlying function table is
// owned by the tool and shared across calls; the returned struct is
// only a typed view of it. Versions before 1.1.0 are rejected: the
// bound table is the 1.1.0 surface, and older libraries return a
// shorter one.
//
// The tool must be loaded before the graphics context it should
// instrument is created, which in practice means calling this (or
// renderdoc.Initialize, which calls it) early in process startup.
func GetAPI(v Version) (*API, error) {
	if v < Version110 {
		return nil, fmt.Errorf("%w: requested %s, oldest supported is %s", ErrIncompatibleVersion, v, Version110)
	}

	handle, path, err := loadLibrary()
	if err != nil {
		return nil, err
	}

	sym, err := dyld.Lookup(handle, "RENDERDOC_GetAPI")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSymbolNotFound, err)
	}

	var getAPI func(version uint32, outAPIPointers *uintptr) int32
	purego.RegisterFunc(&getAPI, sym)

	var table uintptr
	if ret := getAPI(uint32(v), &table); ret != 1 || table == 0 {
		return nil, fmt.Errorf("%w: RENDERDOC_GetAPI(%d) returned %d", ErrIncompatibleVersion, uint32(v), ret)
	}

	entries := unsafe.Slice((*uintptr)(unsafe.Pointer(table)), fnCount)
	for i, entry := range entries {
		if entry == 0 {
			return nil, fmt.Errorf("%w: function table entry %d is null", ErrIncompatibleVersion, i)
		}
	}

	api := &API{requested: v, library: path}
	purego.RegisterFunc(&api.getAPIVersion, entries[fnGetAPIVersion])
	purego.RegisterFunc(&api.setCaptureOptionU32, entries[fnSetCaptureOptionU32])
	purego.RegisterFunc(&api.setCaptureOptionF32, entries[fnSetCaptureOptionF32])
	purego.RegisterFunc(&api.getCaptureOptionU32, entries[fnGetCaptureOptionU32])
	purego.RegisterFunc(&api.getCaptureOptionF32, entries[fnGetCaptureOptionF32])
	purego.RegisterFunc(&api.setFocusToggleKeys, entries[fnSetFocusToggleKeys])
	purego.RegisterFunc(&api.setCaptureKeys, entries[fnSetCaptureKeys])
	purego.RegisterFunc(&api.getOverlayBits, entries[fnGetOverlayBits])
	purego.RegisterFunc(&api.maskOverlayBits, entries[fnMaskOverlayBits])
	purego.RegisterFunc(&api.removeHooks, entries[fnRemoveHooks])
	purego.RegisterFunc(&api.unloadCrashHandler, entries[fnUnloadCrashHandler])
	purego.RegisterFunc(&api.setCaptureFilePathTemplate, entries[fnSetCaptureFilePathTemplate])
	purego.RegisterFunc(&api.getCaptureFilePathTemplate, entries[fnGetCaptureFilePathTemplate])
	purego.RegisterFunc(&api.getNumCaptures, entries[fnGetNumCaptures])
	purego.RegisterFunc(&api.getCapture, entries[fnGetCapture])
	purego.RegisterFunc(&api.triggerCapture, entries[fnTriggerCapture])
	purego.RegisterFunc(&api.isTargetControlConnected, entries[fnIsTargetControlConnected])
	purego.RegisterFunc(&api.launchReplayUI, entries[fnLaunchReplayUI])
	purego.RegisterFunc(&api.setActiveWindow, entries[fnSetActiveWindow])
	purego.RegisterFunc(&api.startFrameCapture, entries[fnStartFrameCapture])
	purego.RegisterFunc(&api.isFrameCapturing, entries[fnIsFrameCapturing])
	purego.RegisterFunc(&api.endFrameCapture, entries[fnEndFrameCapture])
	purego.RegisterFunc(&api.triggerMultiFrameCapture, entries[fnTriggerMultiFrameCapture])
	return api, nil
}

// LibraryPath returns the name or path the capture library was opened
// with.
func (a *API) LibraryPath() string {
	if a == nil {
		return ""
	}
	return a.library
}

// RequestedVersion returns the version constant this view was obtained
// with.
func (a *API) RequestedVersion() Version {
	if a == nil {
		return 0
	}
	return a.requested
}

// APIVersion reports the version the loaded implementation actually
// provides, which can be newer than the one requested.
func (a *API) APIVersion() (major, minor, patch int) {
	if a == nil || a.getAPIVersion == nil {
		return 0, 0, 0
	}
	var maj, min, pat int32
	a.getAPIVersion(&maj, &min, &pat)
	return int(maj), int(min), int(pat)
}

// TriggerCapture requests capture of the next frame the application
// presents. The capture completes asynchronously inside the tool.
func (a *API) TriggerCapture() {
	if a == nil || a.triggerCapture == nil {
		return
	}
	a.triggerCapture()
}

// TriggerMultiFrameCapture requests capture of the next frames
// consecutive frames. Zero is treated as one.
func (a *API) TriggerMultiFrameCapture(frames uint32) {
	if a == nil || a.triggerMultiFrameCapture == nil {
		return
	}
	if frames == 0 {
		frames = 1
	}
	a.triggerMultiFrameCapture(frames)
}

// SetCaptureFilePathTemplate sets the path template new captures are
// written under; the tool appends frame number and extension. This
// slot carried the name SetLogFilePathTemplate before API 1.1.2.
func (a *API) SetCaptureFilePathTemplate(template string) {
	if a == nil || a.setCaptureFilePathTemplate == nil {
		return
	}
	a.setCaptureFilePathTemplate(template)
}

// CaptureFilePathTemplate returns the current capture path template.
func (a *API) CaptureFilePathTemplate() string {
	if a == nil || a.getCaptureFilePathTemplate == nil {
		return ""
	}
	return goString(a.getCaptureFilePathTemplate())
}

// MaskOverlayBits applies bits = (bits & and) | or to the overlay
// state.
func (a *API) MaskOverlayBits(and, or OverlayBits) {
	if a == nil || a.maskOverlayBits == nil {
		return
	}
	a.maskOverlayBits(uint32(and), uint32(or))
}

// OverlayBits returns the current overlay state.
func (a *API) OverlayBits() OverlayBits {
	if a == nil || a.getOverlayBits == nil {
		return OverlayNone
	}
	return OverlayBits(a.getOverlayBits())
}

// SetCaptureKeys replaces the key bindings the tool itself listens on
// to trigger captures. An empty slice disables them.
func (a *API) SetCaptureKeys(keys []InputButton) {
	if a == nil || a.setCaptureKeys == nil {
		return
	}
	ptr, n := buttonSlice(keys)
	a.setCaptureKeys(ptr, n)
}

// SetFocusToggleKeys replaces the key bindings that cycle overlay
// focus between windows. An empty slice disables them.
func (a *API) SetFocusToggleKeys(keys []InputButton) {
	if a == nil || a.setFocusToggleKeys == nil {
		return
	}
	ptr, n := buttonSlice(keys)
	a.setFocusToggleKeys(ptr, n)
}

// SetCaptureOption sets a uint32-valued capture option, reporting
// whether the tool accepted the value.
func (a *API) SetCaptureOption(opt CaptureOption, val uint32) bool {
	if a == nil || a.setCaptureOptionU32 == nil {
		return false
	}
	return a.setCaptureOptionU32(int32(opt), val) == 1
}

// CaptureOption reads a uint32-valued capture option. Invalid options
// read as ^uint32(0).
func (a *API) CaptureOption(opt CaptureOption) uint32 {
	if a == nil || a.getCaptureOptionU32 == nil {
		return ^uint32(0)
	}
	return a.getCaptureOptionU32(int32(opt))
}

// SetCaptureOptionF32 sets a float-valued capture option, reporting
// whether the tool accepted the value.
func (a *API) SetCaptureOptionF32(opt CaptureOption, val float32) bool {
	if a == nil || a.setCaptureOptionF32 == nil {
		return false
	}
	return a.setCaptureOptionF32(int32(opt), val) == 1
}

// CaptureOptionF32 reads a float-valued capture option. Invalid
// options read as -FLT_MAX; callers comparing against it should treat
// any negative extreme as invalid.
func (a *API) CaptureOptionF32(opt CaptureOption) float32 {
	if a == nil || a.getCaptureOptionF32 == nil {
		return 0
	}
	return a.getCaptureOptionF32(int32(opt))
}

// NumCaptures returns how many captures have been recorded this
// session.
func (a *API) NumCaptures() uint32 {
	if a == nil || a.getNumCaptures == nil {
		return 0
	}
	return a.getNumCaptures()
}

// Capture returns metadata for the capture at index. ok is false when
// no capture exists there.
func (a *API) Capture(index uint32) (file CaptureFile, ok bool) {
	if a == nil || a.getCapture == nil {
		return CaptureFile{}, false
	}
	var pathLen uint32
	var ts uint64
	if a.getCapture(index, nil, &pathLen, &ts) == 0 {
		return CaptureFile{}, false
	}
	file.CapturedAt = time.Unix(int64(ts), 0)
	if pathLen == 0 {
		return file, true
	}
	buf := make([]byte, pathLen)
	a.getCapture(index, &buf[0], &pathLen, &ts)
	runtime.KeepAlive(buf)
	file.Path = string(buf[:cstrLen(buf)])
	return file, true
}

// IsTargetControlConnected reports whether a replay UI instance is
// connected to this application over target control.
func (a *API) IsTargetControlConnected() bool {
	if a == nil || a.isTargetControlConnected == nil {
		return false
	}
	return a.isTargetControlConnected() == 1
}

// LaunchReplayUI starts the tool's replay UI. When connect is true the
// UI connects back to this application for live control; args is an
// extra command line passed through to the UI. Returns the PID of the
// new process.
func (a *API) LaunchReplayUI(connect bool, args string) (uint32, error) {
	if a == nil || a.launchReplayUI == nil {
		return 0, ErrReplayUILaunch
	}
	var connectFlag uint32
	if connect {
		connectFlag = 1
	}
	var cmdline *byte
	var buf []byte
	if args != "" {
		buf = append([]byte(args), 0)
		cmdline = &buf[0]
	}
	pid := a.launchReplayUI(connectFlag, cmdline)
	runtime.KeepAlive(buf)
	if pid == 0 {
		return 0, ErrReplayUILaunch
	}
	return pid, nil
}

// SetActiveWindow tells the tool which device and window pair the
// overlay and key hooks should follow.
func (a *API) SetActiveWindow(device, window unsafe.Pointer) {
	if a == nil || a.setActiveWindow == nil {
		return
	}
	a.setActiveWindow(device, window)
}

// StartFrameCapture begins capturing immediately on the given device
// and window. Either may be nil to mean the only or active one.
func (a *API) StartFrameCapture(device, window unsafe.Pointer) {
	if a == nil || a.startFrameCapture == nil {
		return
	}
	a.startFrameCapture(device, window)
}

// IsFrameCapturing reports whether a capture is in progress.
func (a *API) IsFrameCapturing() bool {
	if a == nil || a.isFrameCapturing == nil {
		return false
	}
	return a.isFrameCapturing() == 1
}

// EndFrameCapture ends a capture begun with StartFrameCapture and
// reports whether it succeeded.
func (a *API) EndFrameCapture(device, window unsafe.Pointer) bool {
	if a == nil || a.endFrameCapture == nil {
		return false
	}
	return a.endFrameCapture(device, window) == 1
}

// RemoveHooks removes the tool's API hooks from the process. Only safe
// before any graphics API has been initialized; provided for
// integrators who load the tool purely to control injection.
func (a *API) RemoveHooks() {
	if a == nil || a.removeHooks == nil {
		return
	}
	a.removeHooks()
}

// UnloadCrashHandler unloads the tool's crash handler so the
// application's own handler stays in charge.
func (a *API) UnloadCrashHandler() {
	if a == nil || a.unloadCrashHandler == nil {
		return
	}
	a.unloadCrashHandler()
}

// buttonSlice converts keys to the int-array form the tool expects.
// Returns nil and zero for an empty set, which clears the binding.
func buttonSlice(keys []InputButton) (*int32, int32) {
	if len(keys) == 0 {
		return nil, 0
	}
	buf := make([]int32, len(keys))
	for i, k := range keys {
		buf[i] = int32(k)
	}
	return &buf[0], int32(len(buf))
}

// goString copies a NUL-terminated C string into a Go string.
func goString(p *byte) string {
	if p == nil {
		return ""
	}
	n := 0
	for ptr := unsafe.Pointer(p); *(*byte)(ptr) != 0; ptr = unsafe.Add(ptr, 1) {
		n++
	}
	return string(unsafe.Slice(p, n))
}

// cstrLen finds the NUL terminator inside buf, or len(buf).
func cstrLen(buf []byte) int {
	for i, c := range buf {
		if c == 0 {
			return i
		}
	}
	return len(buf)
}
