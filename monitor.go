package renderdoc

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// CaptureEvent describes one capture observed in the tool's inventory.
type CaptureEvent struct {
	// ID correlates this observation across callbacks.
	ID uuid.UUID
	// Index is the capture's position in the tool's inventory.
	Index uint32
	// Path is the capture file location the tool reported.
	Path string
	// CapturedAt is the tool-reported capture timestamp.
	CapturedAt time.Time
}

// CaptureCallback receives capture events from a Monitor. Callbacks
// run on the monitor goroutine and should return quickly. A callback
// may register further callbacks or retune the monitor, but must not
// call Stop: Stop waits for the goroutine the callback runs on.
type CaptureCallback func(CaptureEvent)

const (
	defaultPollInterval = 250 * time.Millisecond
	minPollInterval     = 50 * time.Millisecond
)

// Monitor watches the tool's capture inventory and reports captures as
// they complete. A triggered capture finishes one or more frames after
// the trigger call, and polling the inventory count is the only
// completion signal the in-application API offers.
//
// A Monitor over an unavailable Resource is valid and stays silent.
type Monitor struct {
	mu        sync.Mutex
	res       *Resource
	log       *slog.Logger
	interval  time.Duration
	callbacks []CaptureCallback
	seen      uint32
	running   bool
	stopCh    chan struct{}
	doneCh    chan struct{}
}

// NewMonitor returns a stopped Monitor over res. opts supplies the
// logger; nil means defaults.
func NewMonitor(res *Resource, opts *Options) *Monitor {
	o := opts.withDefaults()
	return &Monitor{
		res:      res,
		log:      o.Logger,
		interval: defaultPollInterval,
	}
}

// OnCapture registers cb for future capture events.
func (m *Monitor) OnCapture(cb CaptureCallback) {
	if cb == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, cb)
}

// SetPollInterval adjusts how often the inventory is polled. Values
// below 50ms are clamped. Takes effect on the next Start.
func (m *Monitor) SetPollInterval(d time.Duration) {
	if d < minPollInterval {
		d = minPollInterval
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.interval = d
}

// Start begins polling from the current inventory size, so only
// captures recorded after this call are reported. Starting a running
// or unavailable monitor is a no-op.
func (m *Monitor) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running || !m.res.Available() {
		return
	}
	m.running = true
	m.seen = m.res.NumCaptures()
	m.stopCh = make(chan struct{})
	m.doneCh = make(chan struct{})
	go m.loop(m.stopCh, m.doneCh, m.interval)
}

// Stop halts polling and waits for the poll goroutine to exit, so no
// callback fires after Stop returns. Stopping a stopped monitor is a
// no-op. Do not call Stop from a CaptureCallback; it would wait for
// the goroutine running that callback.
func (m *Monitor) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.running = false
	stop, done := m.stopCh, m.doneCh
	m.mu.Unlock()

	close(stop)
	<-done
}

// IsRunning reports whether the poll goroutine is active.
func (m *Monitor) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// ForceCheck polls the inventory immediately on the calling goroutine.
// Useful right after an explicit trigger, and in tests.
func (m *Monitor) ForceCheck() {
	m.check()
}

func (m *Monitor) loop(stop <-chan struct{}, done chan<- struct{}, interval time.Duration) {
	defer close(done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			m.check()
		}
	}
}

func (m *Monitor) check() {
	if !m.res.Available() {
		return
	}

	// The count is read and the range claimed under one lock, and seen
	// never moves backward. Concurrent checks therefore claim disjoint
	// ranges and no capture is reported twice.
	m.mu.Lock()
	n := m.res.NumCaptures()
	seen := m.seen
	if n <= seen {
		m.mu.Unlock()
		return
	}
	m.seen = n
	callbacks := append([]CaptureCallback(nil), m.callbacks...)
	m.mu.Unlock()

	for i := seen; i < n; i++ {
		file, ok := m.res.Capture(i)
		if !ok {
			m.log.Warn("capture inventory read failed", "index", i)
			continue
		}
		ev := CaptureEvent{
			ID:         uuid.New(),
			Index:      i,
			Path:       file.Path,
			CapturedAt: file.CapturedAt,
		}
		m.log.Debug("capture recorded", "index", ev.Index, "path", ev.Path)
		for _, cb := range callbacks {
			cb(ev)
		}
	}
}
