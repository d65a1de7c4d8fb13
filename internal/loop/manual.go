package loop

import (
	"sort"
	"time"
)

// Manual is a Scheduler driven by an explicit clock. Nothing runs until
// Advance or Flush is called, which makes timing deterministic in tests.
type Manual struct {
	now     time.Duration
	seq     int
	pending []*manualTimer
}

var _ Scheduler = (*Manual)(nil)

type manualTimer struct {
	m       *Manual
	due     time.Duration
	seq     int
	fn      func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// NewManual returns a manual scheduler at time zero.
func NewManual() *Manual {
	return &Manual{}
}

// Now reports the elapsed virtual time.
func (m *Manual) Now() time.Duration { return m.now }

func (m *Manual) After(d time.Duration, fn func()) Timer {
	if d < 0 {
		d = 0
	}
	m.seq++
	t := &manualTimer{m: m, due: m.now + d, seq: m.seq, fn: fn}
	m.pending = append(m.pending, t)
	return t
}

func (m *Manual) RequestFrame(fn func()) Timer {
	return m.After(Frame, fn)
}

// Pending reports how many callbacks are still scheduled.
func (m *Manual) Pending() int {
	n := 0
	for _, t := range m.pending {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d, running every callback that falls
// due, including ones scheduled by callbacks along the way.
func (m *Manual) Advance(d time.Duration) {
	target := m.now + d
	for {
		next := m.next(target)
		if next == nil {
			break
		}
		m.now = next.due
		next.fired = true
		next.fn()
	}
	m.now = target
}

// Flush runs callbacks until none remain, advancing the clock as needed.
func (m *Manual) Flush() {
	for i := 0; i < 10000; i++ {
		next := m.next(-1)
		if next == nil {
			return
		}
		m.now = next.due
		next.fired = true
		next.fn()
	}
}

// next pops the earliest live timer due at or before limit. A negative limit
// means no limit.
func (m *Manual) next(limit time.Duration) *manualTimer {
	live := m.pending[:0]
	for _, t := range m.pending {
		if !t.stopped && !t.fired {
			live = append(live, t)
		}
	}
	m.pending = live
	if len(live) == 0 {
		return nil
	}
	sort.SliceStable(live, func(i, j int) bool {
		if live[i].due == live[j].due {
			return live[i].seq < live[j].seq
		}
		return live[i].due < live[j].due
	})
	first := live[0]
	if limit >= 0 && first.due > limit {
		return nil
	}
	return first
}
