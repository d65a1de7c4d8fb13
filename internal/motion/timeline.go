package motion

import "time"

// Step is one tween placed on a timeline.
type Step struct {
	Name   Name
	Target string
	To     Props
	Tween  Tween
	Start  time.Duration
}

// End reports when the step finishes relative to the timeline start.
func (s Step) End() time.Duration {
	return s.Start + s.Tween.Duration
}

// Timeline sequences tweens. Each step starts where the previous one ended,
// shifted by an optional offset; a negative offset overlaps the steps.
type Timeline struct {
	steps []Step
}

// NewTimeline returns an empty timeline.
func NewTimeline() *Timeline {
	return &Timeline{}
}

// To appends a step that starts when the previous step ends.
func (tl *Timeline) To(name Name, target string, to Props, tw Tween) *Timeline {
	return tl.ToAt(name, target, to, tw, 0)
}

// ToAt appends a step offset from the end of the previous step.
func (tl *Timeline) ToAt(name Name, target string, to Props, tw Tween, offset time.Duration) *Timeline {
	var start time.Duration
	if n := len(tl.steps); n > 0 {
		start = tl.steps[n-1].End()
	}
	start += offset
	if start < 0 {
		start = 0
	}
	tl.steps = append(tl.steps, Step{Name: name, Target: target, To: to, Tween: tw, Start: start})
	return tl
}

// Steps returns the placed steps in insertion order.
func (tl *Timeline) Steps() []Step {
	out := make([]Step, len(tl.steps))
	copy(out, tl.steps)
	return out
}

// Duration is the time until the last step finishes.
func (tl *Timeline) Duration() time.Duration {
	var d time.Duration
	for _, s := range tl.steps {
		if e := s.End(); e > d {
			d = e
		}
	}
	return d
}
