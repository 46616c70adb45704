package game

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"
)

// manualScheduler holds callbacks until the test fires them.
type manualScheduler struct {
	mu     sync.Mutex
	timers []*manualTimer
}

type manualTimer struct {
	d       time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &manualTimer{d: d, f: f}
	s.timers = append(s.timers, t)
	return t
}

func (s *manualScheduler) pending() []*manualTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*manualTimer
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			out = append(out, t)
		}
	}
	return out
}

// fireNext runs the oldest pending callback. Returns false when nothing is armed.
func (s *manualScheduler) fireNext() bool {
	p := s.pending()
	if len(p) == 0 {
		return false
	}
	p[0].fired = true
	p[0].f()
	return true
}

type sent struct {
	event   string
	payload any
}

// recorder is a Sender that keeps everything it was handed.
type recorder struct {
	mu     sync.Mutex
	events []sent
}

func (r *recorder) Send(event string, payload any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, sent{event: event, payload: payload})
}

func (r *recorder) all(event string) []any {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []any
	for _, e := range r.events {
		if e.event == event {
			out = append(out, e.payload)
		}
	}
	return out
}

func (r *recorder) count(event string) int {
	return len(r.all(event))
}

func (r *recorder) last(event string) any {
	all := r.all(event)
	if len(all) == 0 {
		return nil
	}
	return all[len(all)-1]
}

func (r *recorder) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.event)
	}
	return out
}

func (r *recorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

type sinkFunc func(GameResult)

func (f sinkFunc) RecordGame(_ context.Context, result GameResult) error {
	f(result)
	return nil
}

func newTestRegistry(sched Scheduler, settings Settings, opts ...Option) *Registry {
	base := []Option{
		WithScheduler(sched),
		WithSettings(settings),
		WithRand(rand.New(rand.NewSource(42))),
	}
	return NewRegistry(zap.NewNop(), append(base, opts...)...)
}

// state reads the engine fields under the room lock.
func (r *Room) state() (phase Phase, round int, drawerID, word string, remaining int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase, r.round, r.drawerID, r.word, r.remaining
}
