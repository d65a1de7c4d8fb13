package motion

import (
	"github.com/Ri-Verma/portfolio/internal/loop"
)

// Scroller moves the page scroll position.
type Scroller interface {
	ScrollTo(y float64)
}

// Recorder is a live Engine that buffers intents for the client and keeps
// the server-side model in step: scroll tweens move the Scroller and
// completion callbacks fire on the scheduler once the tween would be done.
type Recorder struct {
	sched    loop.Scheduler
	scroller Scroller
	intents  []Intent
}

var _ Engine = (*Recorder)(nil)

// NewRecorder returns a recorder bound to sched. scroller may be nil.
func NewRecorder(sched loop.Scheduler, scroller Scroller) *Recorder {
	return &Recorder{sched: sched, scroller: scroller}
}

func (r *Recorder) Live() bool { return true }

func (r *Recorder) Set(name Name, target string, props Props) {
	r.intents = append(r.intents, Intent{Kind: KindSet, Name: name, Target: target, To: props})
}

func (r *Recorder) To(name Name, target string, to Props, tw Tween) Handle {
	r.intents = append(r.intents, Intent{Kind: KindTo, Name: name, Target: target, To: to, Tween: &tw})
	return &recordedHandle{r: r, targets: []string{target}}
}

func (r *Recorder) FromTo(name Name, target string, from, to Props, tw Tween, trig *Trigger) Handle {
	r.intents = append(r.intents, Intent{
		Kind:    KindFromTo,
		Name:    name,
		Target:  target,
		From:    from,
		To:      to,
		Tween:   &tw,
		Trigger: trig,
	})
	return &recordedHandle{r: r, targets: []string{target}}
}

func (r *Recorder) ScrollTo(y float64, tw Tween, done func()) Handle {
	r.intents = append(r.intents, Intent{Kind: KindScrollTo, Name: Navigate, Target: Window, Y: y, Tween: &tw})
	h := &recordedHandle{r: r, targets: []string{Window}}
	h.timer = r.sched.After(tw.Duration, func() {
		if h.killed {
			return
		}
		if r.scroller != nil {
			r.scroller.ScrollTo(y)
		}
		if done != nil {
			done()
		}
	})
	return h
}

func (r *Recorder) Play(tl *Timeline, done func()) Handle {
	h := &recordedHandle{r: r}
	seen := map[string]bool{}
	for _, s := range tl.Steps() {
		tw := s.Tween
		r.intents = append(r.intents, Intent{
			Kind:   KindTo,
			Name:   s.Name,
			Target: s.Target,
			To:     s.To,
			Tween:  &tw,
			At:     s.Start.Seconds(),
		})
		if !seen[s.Target] {
			seen[s.Target] = true
			h.targets = append(h.targets, s.Target)
		}
	}
	h.timer = r.sched.After(tl.Duration(), func() {
		if h.killed {
			return
		}
		if done != nil {
			done()
		}
	})
	return h
}

func (r *Recorder) KillTweensOf(target string) {
	r.intents = append(r.intents, Intent{Kind: KindKill, Target: target})
}

// Drain returns the buffered intents and clears the buffer.
func (r *Recorder) Drain() []Intent {
	out := r.intents
	r.intents = nil
	return out
}

// Pending returns the buffered intents without clearing them.
func (r *Recorder) Pending() []Intent {
	return r.intents
}

type recordedHandle struct {
	r       *Recorder
	targets []string
	timer   loop.Timer
	killed  bool
}

func (h *recordedHandle) Kill() {
	if h.killed {
		return
	}
	h.killed = true
	if h.timer != nil {
		h.timer.Stop()
	}
	for _, t := range h.targets {
		h.r.KillTweensOf(t)
	}
}
