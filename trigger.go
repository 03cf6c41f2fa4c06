package renderdoc

import (
	"log/slog"

	ps "github.com/mitchellh/go-ps"
)

// Trigger forwards capture requests from the host's input layer to a
// Resource. The host update loop calls Fire once per designated
// keypress; application systems may call it directly for programmatic
// captures with the same replay-UI behavior as the hotkey.
//
// Fire is not internally synchronized. Host schedulers dispatch input
// events serially, and the replay-UI bookkeeping relies on that
// single-writer discipline.
type Trigger struct {
	res      *Resource
	log      *slog.Logger
	launchUI bool

	replayPID int
	fired     uint64

	// processAlive reports whether a previously launched replay UI is
	// still running. Swapped out in tests.
	processAlive func(pid int) bool
}

// NewTrigger returns a Trigger bound to res. opts supplies the
// replay-UI behavior and logger; nil means defaults.
func NewTrigger(res *Resource, opts *Options) *Trigger {
	o := opts.withDefaults()
	return &Trigger{
		res:          res,
		log:          o.Logger,
		launchUI:     !o.DisableReplayUI,
		processAlive: processAlive,
	}
}

// Fire requests one capture. On an unavailable Resource it does
// nothing, never panics, and stays a no-op no matter how often it is
// called. On an available Resource each call maps to exactly one
// trigger-capture call against the tool; completion is not awaited.
func (t *Trigger) Fire() {
	if t == nil || !t.res.Available() {
		return
	}
	t.res.TriggerCapture()
	t.fired++
	t.log.Debug("capture triggered", "count", t.fired)
	if t.launchUI {
		t.ensureReplayUI()
	}
}

// FireCount reports how many captures this trigger has requested.
func (t *Trigger) FireCount() uint64 {
	if t == nil {
		return 0
	}
	return t.fired
}

// ensureReplayUI launches the replay UI unless the instance launched
// earlier is still running.
func (t *Trigger) ensureReplayUI() {
	if t.replayPID != 0 && t.processAlive(t.replayPID) {
		return
	}
	pid, err := t.res.LaunchReplayUI(true, "")
	if err != nil {
		t.log.Warn("replay UI launch failed", "error", err)
		t.replayPID = 0
		return
	}
	t.replayPID = int(pid)
	t.log.Info("replay UI launched", "pid", pid)
}

// processAlive reports whether pid names a live process.
func processAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	proc, err := ps.FindProcess(pid)
	return err == nil && proc != nil
}
