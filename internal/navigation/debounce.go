package navigation

import (
	"sync"
	"time"

	"taskDashboard/internal/filter/query"
)

// Debounced delays navigation until no new command arrived for the delay.
// Only the last command is delivered. Use it in front of a search box.
type Debounced struct {
	next  Navigator
	delay time.Duration

	timerMu sync.Mutex
	timer   *time.Timer
	gen     uint64
	pending func()
}

func Debounce(next Navigator, delay time.Duration) *Debounced {
	return &Debounced{next: next, delay: delay}
}

func (d *Debounced) Navigate(addr query.Address, mode Mode) {
	if d.delay <= 0 {
		d.next.Navigate(addr, mode)
		return
	}

	d.timerMu.Lock()
	defer d.timerMu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}

	d.gen++
	gen := d.gen
	d.pending = func() { d.next.Navigate(addr, mode) }
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
}

// fire runs when the timer armed for gen expires. A timer that already fired
// but lost the lock to a newer Navigate, Flush or Stop is stale and does nothing.
func (d *Debounced) fire(gen uint64) {
	d.timerMu.Lock()
	if gen != d.gen || d.pending == nil {
		d.timerMu.Unlock()
		return
	}
	current := d.pending
	d.pending = nil
	d.timer = nil
	d.timerMu.Unlock()

	current()
}

// Flush delivers the pending command now, if there is one.
func (d *Debounced) Flush() {
	d.timerMu.Lock()
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	pending := d.pending
	d.pending = nil
	d.timerMu.Unlock()

	if pending != nil {
		pending()
	}
}

// Stop drops the pending command.
func (d *Debounced) Stop() {
	d.timerMu.Lock()
	defer d.timerMu.Unlock()

	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = nil
}
