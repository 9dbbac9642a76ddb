package interaction

// Epoch is a monotonically increasing fetch counter.
// A completed fetch may commit only if its epoch is still the current one.
type Epoch struct {
	current uint64
}

// Next starts a new epoch and returns it.
func (e *Epoch) Next() uint64 {
	e.current++
	return e.current
}

// Current returns the latest epoch. Zero means no fetch has started.
func (e *Epoch) Current() uint64 {
	return e.current
}

// IsCurrent reports whether n is the latest epoch.
func (e *Epoch) IsCurrent(n uint64) bool {
	return n != 0 && n == e.current
}
