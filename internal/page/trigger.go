package page

import "github.com/Ri-Verma/portfolio/internal/motion"

// Phase is a scroll trigger boundary crossing.
type Phase int

const (
	PhaseEnter Phase = iota
	PhaseLeave
	PhaseEnterBack
	PhaseLeaveBack
)

type region int

const (
	before region = iota
	inside
	after
)

// ScrollTrigger tracks an element against two viewport lines. It is active
// from the moment the element's top reaches StartRatio of the viewport
// height until its bottom passes EndRatio.
type ScrollTrigger struct {
	StartRatio float64
	EndRatio   float64

	region region
}

func (t *ScrollTrigger) locate(r Rect, vp Viewport) region {
	switch {
	case vp.ScrollY+t.StartRatio*vp.Height < r.Top:
		return before
	case vp.ScrollY+t.EndRatio*vp.Height >= r.Bottom():
		return after
	default:
		return inside
	}
}

// Update samples the geometry and returns the crossings since the previous
// sample, in the order they happened.
func (t *ScrollTrigger) Update(r Rect, vp Viewport) []Phase {
	next := t.locate(r, vp)
	prev := t.region
	t.region = next
	if prev == next {
		return nil
	}
	switch {
	case prev == before && next == inside:
		return []Phase{PhaseEnter}
	case prev == before && next == after:
		return []Phase{PhaseEnter, PhaseLeave}
	case prev == inside && next == after:
		return []Phase{PhaseLeave}
	case prev == inside && next == before:
		return []Phase{PhaseLeaveBack}
	case prev == after && next == inside:
		return []Phase{PhaseEnterBack}
	default:
		return []Phase{PhaseEnterBack, PhaseLeaveBack}
	}
}

// entrance plays a reveal on Enter and reverses it on LeaveBack
// ("play none none reverse"), so it re-arms every time the element scrolls
// back above its start line.
type entrance struct {
	engine  motion.Engine
	target  string
	from    motion.Props
	to      motion.Props
	tween   motion.Tween
	trigger ScrollTrigger
	played  bool
	handle  motion.Handle
}

func (e *entrance) register(id, start, end string) {
	trig := &motion.Trigger{Start: start, End: end, ToggleActions: "play none none reverse", ID: id}
	e.handle = e.engine.FromTo(motion.Register, e.target, e.from, e.to, e.tween, trig)
}

func (e *entrance) sample(r Rect, vp Viewport) {
	for _, p := range e.trigger.Update(r, vp) {
		switch p {
		case PhaseEnter:
			if !e.played {
				e.played = true
				e.handle = e.engine.To(motion.Enter, e.target, e.to, e.tween)
			}
		case PhaseLeaveBack:
			if e.played {
				e.played = false
				e.handle = e.engine.To(motion.Exit, e.target, e.from, e.tween)
			}
		}
	}
}

func (e *entrance) kill() {
	if e.handle != nil {
		e.handle.Kill()
		e.handle = nil
	}
}
