package renderdoc

import (
	"sync"

	"github.com/shaban/renderdoc/rdapi"
)

// fakeAPI stands in for the capture library in tests. Counters record
// every call; the mutex keeps it safe to mutate from a test while a
// monitor goroutine polls it.
type fakeAPI struct {
	mu sync.Mutex

	triggerCalls    int
	multiCalls      int
	lastMultiFrames uint32

	pathTemplate string
	overlay      rdapi.OverlayBits

	captureKeysSet bool
	captureKeys    []rdapi.InputButton
	focusKeys      []rdapi.InputButton

	options map[rdapi.CaptureOption]uint32

	captures []rdapi.CaptureFile

	launchPID   uint32
	launchErr   error
	launchCalls int

	connected bool
	capturing bool
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		pathTemplate: "default_template",
		overlay:      rdapi.OverlayDefault,
		options:      make(map[rdapi.CaptureOption]uint32),
		launchPID:    4242,
	}
}

func (f *fakeAPI) APIVersion() (int, int, int) { return 1, 1, 0 }

func (f *fakeAPI) TriggerCapture() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.triggerCalls++
}

func (f *fakeAPI) TriggerMultiFrameCapture(frames uint32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.multiCalls++
	f.lastMultiFrames = frames
}

func (f *fakeAPI) SetCaptureFilePathTemplate(template string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pathTemplate = template
}

func (f *fakeAPI) CaptureFilePathTemplate() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pathTemplate
}

func (f *fakeAPI) MaskOverlayBits(and, or rdapi.OverlayBits) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.overlay = f.overlay&and | or
}

func (f *fakeAPI) OverlayBits() rdapi.OverlayBits {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.overlay
}

func (f *fakeAPI) SetCaptureKeys(keys []rdapi.InputButton) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.captureKeysSet = true
	f.captureKeys = keys
}

func (f *fakeAPI) SetFocusToggleKeys(keys []rdapi.InputButton) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.focusKeys = keys
}

func (f *fakeAPI) SetCaptureOption(opt rdapi.CaptureOption, val uint32) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.options[opt] = val
	return true
}

func (f *fakeAPI) CaptureOption(opt rdapi.CaptureOption) uint32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.options[opt]
}

func (f *fakeAPI) NumCaptures() uint32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return uint32(len(f.captures))
}

func (f *fakeAPI) Capture(index uint32) (rdapi.CaptureFile, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if int(index) >= len(f.captures) {
		return rdapi.CaptureFile{}, false
	}
	return f.captures[index], true
}

func (f *fakeAPI) IsTargetControlConnected() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.connected
}

func (f *fakeAPI) LaunchReplayUI(connect bool, args string) (uint32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.launchCalls++
	if f.launchErr != nil {
		return 0, f.launchErr
	}
	return f.launchPID, nil
}

func (f *fakeAPI) IsFrameCapturing() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.capturing
}

// addCapture appends one capture to the fake inventory, as the tool
// does when a triggered capture completes.
func (f *fakeAPI) addCapture(file rdapi.CaptureFile) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.captures = append(f.captures, file)
}

func (f *fakeAPI) triggerCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.triggerCalls
}

func (f *fakeAPI) launchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.launchCalls
}

// availableResource wires a capture double into a ready Resource the
// way newResource would, skipping probe and configure.
func availableResource(api CaptureAPI) *Resource {
	return &Resource{api: api, library: "fake://renderdoc", version: "1.1.0"}
}

// failedResource returns a Resource in the unavailable state.
func failedResource(err error) *Resource {
	return &Resource{err: err}
}
