package page

import (
	"time"

	"github.com/Ri-Verma/portfolio/internal/motion"
)

// MobileBreakpoint is the widest viewport treated as mobile.
const MobileBreakpoint = 768.0

// ViewportClass selects between the mobile and desktop layouts.
type ViewportClass string

const (
	Mobile  ViewportClass = "mobile"
	Desktop ViewportClass = "desktop"
)

// ClassFor maps a viewport width to its layout class.
func ClassFor(width float64) ViewportClass {
	if width <= MobileBreakpoint {
		return Mobile
	}
	return Desktop
}

const (
	avatarTarget  = "about-avatar"
	bioTarget     = "about-bio"
	overlayTarget = "about-overlay"
)

var overlayTween = motion.Tween{Duration: 300 * time.Millisecond, Ease: motion.Power2InOut}

// AboutPanel is the hero: an avatar that opens into the biography on the
// first click.
type AboutPanel struct {
	engine motion.Engine
	class  ViewportClass

	expanded bool
	complete bool
	overlay  bool
	mounted  bool

	pulse    motion.Handle
	timeline motion.Handle
}

// NewAboutPanel prepares the panel for a viewport class.
func NewAboutPanel(engine motion.Engine, class ViewportClass) *AboutPanel {
	return &AboutPanel{engine: engine, class: class}
}

func (a *AboutPanel) Expanded() bool       { return a.expanded }
func (a *AboutPanel) Complete() bool       { return a.complete }
func (a *AboutPanel) OverlayVisible() bool { return a.overlay }
func (a *AboutPanel) Class() ViewportClass { return a.class }

// Mount hides the biography, places the avatar and starts the idle pulse on
// mobile.
func (a *AboutPanel) Mount() {
	if a.mounted {
		return
	}
	a.mounted = true
	a.conceal()
	a.syncOverlay(true)
}

func (a *AboutPanel) conceal() {
	if a.class == Mobile {
		a.engine.Set(motion.Hide, bioTarget, motion.Props{"opacity": 0, "y": 100, "x": 0, "scale": 1, "filter": "none"})
		a.engine.Set(motion.Hide, avatarTarget, motion.Props{"scale": 1, "y": -50})
		a.startPulse()
		return
	}
	a.engine.Set(motion.Hide, bioTarget, motion.Props{"opacity": 0, "y": 0, "x": 50, "scale": 1, "filter": "blur(12px)"})
	a.engine.Set(motion.Hide, avatarTarget, motion.Props{"scale": 1, "y": 0})
	a.stopPulse()
}

func (a *AboutPanel) startPulse() {
	if a.pulse != nil || a.expanded {
		return
	}
	a.pulse = a.engine.To(motion.Pulse, avatarTarget, motion.Props{"scale": 1.05}, motion.Tween{
		Duration: 1500 * time.Millisecond,
		Ease:     motion.Power2InOut,
		Repeat:   -1,
		Yoyo:     true,
	})
}

func (a *AboutPanel) stopPulse() {
	if a.pulse == nil {
		return
	}
	a.pulse.Kill()
	a.pulse = nil
}

// Expand opens the panel. Only the first call has any effect; it reports
// whether the timeline was started.
func (a *AboutPanel) Expand() bool {
	if !a.mounted || a.expanded {
		return false
	}
	a.expanded = true
	a.stopPulse()
	a.timeline = a.engine.Play(a.expandTimeline(), a.settle)
	a.syncOverlay(false)
	return true
}

func (a *AboutPanel) expandTimeline() *motion.Timeline {
	tl := motion.NewTimeline()
	if a.class == Mobile {
		return tl.
			To(motion.Expand, avatarTarget, motion.Props{"scale": 1},
				motion.Tween{Duration: 300 * time.Millisecond, Ease: motion.Power2Out}).
			To(motion.Expand, avatarTarget, motion.Props{"width": "100%", "height": "100%", "borderRadius": "10", "x": 0, "y": 0},
				motion.Tween{Duration: 800 * time.Millisecond, Ease: motion.Power3InOut}).
			ToAt(motion.Reveal, bioTarget, motion.Props{"opacity": 1, "y": 0, "scale": 1},
				motion.Tween{Duration: 600 * time.Millisecond, Ease: motion.BackOut}, -300*time.Millisecond)
	}
	return tl.
		To(motion.Expand, avatarTarget, motion.Props{"zIndex": 30, "backgroundColor": "rgba(255,255,255,0)", "boxShadow": "0 0 0 0 rgba(0,0,0,0)"},
			motion.Tween{Duration: 500 * time.Millisecond, Ease: motion.Power2InOut}).
		ToAt(motion.Expand, avatarTarget, motion.Props{
			"width": "80%", "height": "80%",
			"maxWidth": "600px", "maxHeight": "600px",
			"minWidth": "260px", "minHeight": "260px",
			"borderRadius": "2rem", "x": 0,
		}, motion.Tween{Duration: 1100 * time.Millisecond, Ease: motion.Power4InOut}, -300*time.Millisecond).
		ToAt(motion.Reveal, bioTarget, motion.Props{"opacity": 1, "x": 0, "filter": "blur(0px)"},
			motion.Tween{Duration: 1100 * time.Millisecond, Ease: motion.Power3Out}, -700*time.Millisecond)
}

// settle pins the biography in its revealed state once the timeline ends.
func (a *AboutPanel) settle() {
	if !a.mounted {
		return
	}
	a.complete = true
	a.timeline = nil
	a.engine.To(motion.Reveal, bioTarget, motion.Props{"opacity": 1, "x": 0, "y": 0, "scale": 1, "filter": "blur(0px)"},
		motion.Tween{Duration: 600 * time.Millisecond, Ease: motion.Power3Out})
}

// Resize switches layout class. Before expansion the idle state is rebuilt
// for the new class; the overlay follows in either case.
func (a *AboutPanel) Resize(class ViewportClass) {
	if class == a.class {
		return
	}
	a.class = class
	if a.mounted && !a.expanded {
		a.conceal()
	}
	a.syncOverlay(false)
}

func (a *AboutPanel) syncOverlay(force bool) {
	want := a.expanded && a.class != Mobile
	if want == a.overlay && !force {
		return
	}
	a.overlay = want
	if want {
		a.engine.To(motion.Overlay, overlayTarget, motion.Props{"display": "block", "opacity": 0.5}, overlayTween)
		return
	}
	a.engine.To(motion.Overlay, overlayTarget, motion.Props{"display": "none", "opacity": 0}, overlayTween)
}

// Unmount stops the pulse and any running timeline.
func (a *AboutPanel) Unmount() {
	if !a.mounted {
		return
	}
	a.mounted = false
	a.stopPulse()
	if a.timeline != nil {
		a.timeline.Kill()
		a.timeline = nil
	}
}
