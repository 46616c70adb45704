package game

import "time"

// Timer is a scheduled callback that can be cancelled.
type Timer interface {
	Stop() bool
}

// Scheduler arms one-shot callbacks. Rooms never touch the wall clock directly,
// so tests can swap in a manual implementation and fire timers by hand.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type clock struct{}

// SystemScheduler runs callbacks on the runtime timer goroutines.
func SystemScheduler() Scheduler {
	return clock{}
}

func (clock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
