package interact

import (
	"sync"
	"time"
)

// FlyoutDelay is how long a flyout stays open after the pointer leaves.
const FlyoutDelay = time.Second

// Timer is a pending callback.
type Timer interface {
	Stop() bool
}

// Clock schedules callbacks. Tests inject a fake.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type systemClock struct{}

func (systemClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// Flyout is the open state of a legend entry's option panel. It opens on
// pointer enter when the entry is active and has options, and closes
// FlyoutDelay after the pointer leaves unless the pointer comes back.
type Flyout struct {
	mu       sync.Mutex
	clock    Clock
	delay    time.Duration
	options  int
	inactive bool
	open     bool
	pending  Timer
	onChange func(open bool)
}

// FlyoutOption configures a [Flyout].
type FlyoutOption func(*Flyout)

// WithClock replaces the system clock.
func WithClock(c Clock) FlyoutOption {
	return func(f *Flyout) { f.clock = c }
}

// OnToggle registers a callback invoked when the flyout opens or closes.
// It may run on the timer goroutine.
func OnToggle(fn func(open bool)) FlyoutOption {
	return func(f *Flyout) { f.onChange = fn }
}

// NewFlyout creates a closed flyout for a legend entry with the given
// number of options.
func NewFlyout(options int, inactive bool, opts ...FlyoutOption) *Flyout {
	f := &Flyout{clock: systemClock{}, delay: FlyoutDelay, options: options, inactive: inactive}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Flyout) usable() bool { return !f.inactive && f.options > 0 }

// Enter opens the flyout and cancels a pending close.
func (f *Flyout) Enter() {
	f.mu.Lock()
	if f.pending != nil {
		f.pending.Stop()
		f.pending = nil
	}
	changed := f.usable() && !f.open
	if f.usable() {
		f.open = true
	}
	f.mu.Unlock()
	f.notify(changed, true)
}

// Leave schedules the flyout to close.
func (f *Flyout) Leave() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pending != nil {
		f.pending.Stop()
	}
	var t Timer
	t = f.clock.AfterFunc(f.delay, func() {
		f.mu.Lock()
		if f.pending != t {
			f.mu.Unlock()
			return
		}
		f.pending = nil
		changed := f.open
		f.open = false
		f.mu.Unlock()
		f.notify(changed, false)
	})
	f.pending = t
}

// SetInactive updates whether the legend entry is inactive.
func (f *Flyout) SetInactive(inactive bool) {
	f.mu.Lock()
	f.inactive = inactive
	f.mu.Unlock()
}

// Open reports whether the flyout is open.
func (f *Flyout) Open() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open
}

func (f *Flyout) notify(changed, open bool) {
	if changed && f.onChange != nil {
		f.onChange(open)
	}
}
