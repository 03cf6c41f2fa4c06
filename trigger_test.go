package renderdoc

import (
	"errors"
	"testing"

	"github.com/shaban/renderdoc/internal/testutil"
)

func TestTriggerFiresExactlyOncePerCall(t *testing.T) {
	fake := newFakeAPI()
	opts := testOptions(fake)
	opts.DisableReplayUI = true
	trigger := NewTrigger(availableResource(fake), opts)

	trigger.Fire()
	if got := fake.triggerCount(); got != 1 {
		t.Errorf("Expected exactly 1 trigger call, got %d", got)
	}

	trigger.Fire()
	if got := fake.triggerCount(); got != 2 {
		t.Errorf("Expected a second independent trigger call, got %d", got)
	}
	if trigger.FireCount() != 2 {
		t.Errorf("Expected fire count 2, got %d", trigger.FireCount())
	}
}

func TestTriggerNoOpOnUnavailableResource(t *testing.T) {
	opts := failingOptions(ErrLibraryNotFound)
	trigger := NewTrigger(failedResource(ErrLibraryNotFound), opts)

	// Idempotent: N calls have the same observable effect as none.
	for range 4 {
		trigger.Fire()
	}
	if trigger.FireCount() != 0 {
		t.Errorf("Expected no fires on unavailable resource, got %d", trigger.FireCount())
	}
}

func TestTriggerNilSafety(t *testing.T) {
	var trigger *Trigger
	trigger.Fire()
	if trigger.FireCount() != 0 {
		t.Error("Expected zero fire count from nil trigger")
	}
}

func TestTriggerLaunchesReplayUIOnce(t *testing.T) {
	fake := newFakeAPI()
	trigger := NewTrigger(availableResource(fake), testOptions(fake))

	alive := false
	trigger.processAlive = func(pid int) bool { return alive }

	trigger.Fire()
	if got := fake.launchCount(); got != 1 {
		t.Fatalf("Expected first fire to launch the replay UI, got %d launches", got)
	}

	// While the launched UI lives, further fires must not spawn more.
	alive = true
	trigger.Fire()
	trigger.Fire()
	if got := fake.launchCount(); got != 1 {
		t.Errorf("Expected no relaunch while UI is alive, got %d launches", got)
	}

	// Once it exits, the next fire relaunches.
	alive = false
	trigger.Fire()
	if got := fake.launchCount(); got != 2 {
		t.Errorf("Expected relaunch after UI exit, got %d launches", got)
	}

	if got := fake.triggerCount(); got != 4 {
		t.Errorf("Expected 4 trigger calls regardless of UI state, got %d", got)
	}
}

func TestTriggerReplayUILaunchFailure(t *testing.T) {
	fake := newFakeAPI()
	fake.launchErr = errors.New("no display")
	trigger := NewTrigger(availableResource(fake), testOptions(fake))
	trigger.processAlive = func(pid int) bool { return true }

	trigger.Fire()
	if got := fake.triggerCount(); got != 1 {
		t.Errorf("Expected trigger despite launch failure, got %d", got)
	}

	// A failed launch leaves no PID behind, so the next fire retries.
	trigger.Fire()
	if got := fake.launchCount(); got != 2 {
		t.Errorf("Expected launch retry after failure, got %d launches", got)
	}
}

func TestTriggerReplayUIEnabledByDefault(t *testing.T) {
	fake := newFakeAPI()
	// Options built by hand, not via DefaultOptions: the replay UI
	// launch must still default on.
	opts := &Options{Logger: testutil.DiscardLogger()}
	trigger := NewTrigger(availableResource(fake), opts)
	trigger.processAlive = func(pid int) bool { return true }

	trigger.Fire()
	if got := fake.launchCount(); got != 1 {
		t.Errorf("Expected hand-built options to launch the replay UI, got %d launches", got)
	}
}

func TestTriggerWithoutReplayUI(t *testing.T) {
	fake := newFakeAPI()
	opts := testOptions(fake)
	opts.DisableReplayUI = true
	trigger := NewTrigger(availableResource(fake), opts)

	trigger.Fire()
	trigger.Fire()
	if got := fake.launchCount(); got != 0 {
		t.Errorf("Expected no UI launches when disabled, got %d", got)
	}
	if got := fake.triggerCount(); got != 2 {
		t.Errorf("Expected 2 trigger calls, got %d", got)
	}
}

func TestProcessAliveRejectsBadPIDs(t *testing.T) {
	if processAlive(0) {
		t.Error("Expected pid 0 to be dead")
	}
	if processAlive(-7) {
		t.Error("Expected negative pid to be dead")
	}
}
