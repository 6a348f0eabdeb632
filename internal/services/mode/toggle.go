package mode

import "sync/atomic"

// Toggle is the process-wide mock-mode switch. Flows read it once at
// entry and use that value for the whole request; a concurrent toggle
// never changes an in-flight request's path.
type Toggle struct {
	enabled atomic.Bool
}

func NewToggle(initial bool) *Toggle {
	t := &Toggle{}
	t.enabled.Store(initial)
	return t
}

// Enabled reports whether mock mode is on.
func (t *Toggle) Enabled() bool {
	return t.enabled.Load()
}

// Set switches mock mode and returns the previous state.
func (t *Toggle) Set(enabled bool) (previous bool) {
	return t.enabled.Swap(enabled)
}
