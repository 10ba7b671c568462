// CLAUDE:SUMMARY Cancellable quiescence timer: each schedule cancels the pending one, only the survivor fires.
package match

import (
	"sync"
	"time"
)

// DefaultDebounceWindow is the quiescence delay after the last scheduled
// update before the pending task runs.
const DefaultDebounceWindow = 300 * time.Millisecond

// Debouncer coalesces rapid successive updates: Schedule arms a timer and
// cancels any previously pending one, so only the task scheduled last runs,
// and only after the window passes without another Schedule call.
type Debouncer struct {
	mu     sync.Mutex
	window time.Duration
	timer  *time.Timer
}

// NewDebouncer creates a Debouncer with the given window. A non-positive
// window falls back to DefaultDebounceWindow.
func NewDebouncer(window time.Duration) *Debouncer {
	if window <= 0 {
		window = DefaultDebounceWindow
	}
	return &Debouncer{window: window}
}

// Schedule arms fn to run after the window, cancelling any pending task.
// A task that already started firing may still complete; a stopped one
// never runs.
func (d *Debouncer) Schedule(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, fn)
}

// Cancel drops the pending task, if any.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
