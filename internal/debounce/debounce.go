// Package debounce delays a rapidly changing value until it has been stable
// for a fixed period.
//
// A Debouncer emits exactly once per stable period, with the last value set.
// Setting a new value cancels the pending emission and restarts the delay.
// Close stops the pending timer; nothing is emitted afterwards.
package debounce

import (
	"sync"
	"time"
)

// DefaultDelay is used when a non-positive delay is given.
const DefaultDelay = 300 * time.Millisecond

// Timer is a cancellable pending call.
type Timer interface {
	Stop() bool
}

// Clock schedules delayed calls. The real clock uses time.AfterFunc.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// RealClock returns the wall clock.
func RealClock() Clock {
	return realClock{}
}

type options struct {
	clock Clock
}

// Option configures a Debouncer.
type Option func(*options)

// WithClock overrides the clock, for tests.
func WithClock(c Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// Debouncer delays values of type T. It is safe for concurrent use.
// The emit callback runs on the timer goroutine, never under the internal lock.
type Debouncer[T any] struct {
	mu      sync.Mutex
	delay   time.Duration
	emit    func(T)
	clock   Clock
	timer   Timer
	gen     uint64
	value   T
	pending bool
	closed  bool
}

// New creates a Debouncer that calls emit once v has been stable for delay.
func New[T any](delay time.Duration, emit func(T), opts ...Option) *Debouncer[T] {
	o := options{clock: realClock{}}
	for _, opt := range opts {
		opt(&o)
	}
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer[T]{
		delay: delay,
		emit:  emit,
		clock: o.clock,
	}
}

// Delay returns the configured delay.
func (d *Debouncer[T]) Delay() time.Duration {
	return d.delay
}

// Set records v and restarts the delay. It is a no-op after Close.
func (d *Debouncer[T]) Set(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}
	d.stopLocked()
	d.gen++
	gen := d.gen
	d.value = v
	d.pending = true
	d.timer = d.clock.AfterFunc(d.delay, func() { d.fire(gen) })
}

// Flush emits the pending value immediately. It reports whether a value was emitted.
func (d *Debouncer[T]) Flush() bool {
	d.mu.Lock()
	if d.closed || !d.pending {
		d.mu.Unlock()
		return false
	}
	d.stopLocked()
	d.gen++
	v := d.value
	d.pending = false
	d.mu.Unlock()

	d.emit(v)
	return true
}

// Cancel drops the pending value without emitting it.
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	d.gen++
	d.pending = false
}

// Pending reports whether an emission is scheduled.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Close releases the timer. No emission starts after Close returns.
// Close is idempotent.
func (d *Debouncer[T]) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	d.gen++
	d.pending = false
	d.closed = true
	var zero T
	d.value = zero
}

// stopLocked stops the current timer (caller must hold lock).
func (d *Debouncer[T]) stopLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Debouncer[T]) fire(gen uint64) {
	d.mu.Lock()
	// A superseded timer may still fire if Stop raced with expiry.
	if d.closed || !d.pending || gen != d.gen {
		d.mu.Unlock()
		return
	}
	v := d.value
	d.pending = false
	d.timer = nil
	d.mu.Unlock()

	d.emit(v)
}
