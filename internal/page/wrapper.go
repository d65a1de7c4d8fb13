package page

import (
	"time"

	"github.com/Ri-Verma/portfolio/internal/motion"
)

// Positioning is how a section sits in the page flow.
type Positioning string

const (
	Relative Positioning = "relative"
	Sticky   Positioning = "sticky"
)

// SectionWrapper drives one section's entrance reveal and its sticky/relative
// toggling around the centre of the viewport.
type SectionWrapper struct {
	id     SectionID
	doc    Document
	engine motion.Engine
	nav    *Navigation

	entrance    entrance
	positioning Positioning
	mounted     bool
}

// NewSectionWrapper prepares a wrapper; nothing is observed until Mount.
func NewSectionWrapper(id SectionID, doc Document, engine motion.Engine, nav *Navigation) *SectionWrapper {
	return &SectionWrapper{
		id:          id,
		doc:         doc,
		engine:      engine,
		nav:         nav,
		positioning: Relative,
		entrance: entrance{
			engine: engine,
			target: id.String(),
			from:   motion.Props{"opacity": 0.8, "y": 50},
			to:     motion.Props{"opacity": 1, "y": 0},
			tween:  motion.Tween{Duration: time.Second, Ease: motion.Power2Out},
			trigger: ScrollTrigger{
				StartRatio: 0.8,
				EndRatio:   0.2,
			},
		},
	}
}

// ID returns the section this wrapper anchors.
func (w *SectionWrapper) ID() SectionID { return w.id }

// Positioning returns the current positioning mode.
func (w *SectionWrapper) Positioning() Positioning { return w.positioning }

// Entered reports whether the entrance reveal is currently played.
func (w *SectionWrapper) Entered() bool { return w.entrance.played }

// Mount registers the entrance animation and starts observing.
func (w *SectionWrapper) Mount() {
	if w.mounted {
		return
	}
	w.mounted = true
	w.entrance.register("section-"+w.id.String(), "top 80%", "bottom 20%")
	w.nav.register(w)
}

// Sample evaluates both observers against the current geometry. Positioning
// is decided before the entrance trigger.
func (w *SectionWrapper) Sample() {
	if !w.mounted {
		return
	}
	r, ok := w.doc.Rect(w.id.String())
	if !ok {
		return
	}
	vp := w.doc.Viewport()

	if !w.nav.InProgress() {
		w.position(centreIntersects(r, vp))
	}
	if w.nav.TriggersEnabled() {
		w.entrance.sample(r, vp)
	}
}

// centreIntersects applies a -50% root margin on both edges: the observed
// band collapses to the viewport's centre line.
func centreIntersects(r Rect, vp Viewport) bool {
	centre := vp.ScrollY + vp.Height/2
	return r.Top <= centre && centre < r.Bottom()
}

func (w *SectionWrapper) position(intersecting bool) {
	want := Relative
	if intersecting {
		want = Sticky
	}
	if want == w.positioning {
		return
	}
	w.positioning = want
	if want == Sticky {
		w.engine.Set(motion.Position, w.id.String(), motion.Props{"position": "sticky", "top": 0})
		return
	}
	w.engine.Set(motion.Position, w.id.String(), motion.Props{"position": "relative"})
}

func (w *SectionWrapper) forceRelative() {
	w.positioning = Relative
	w.engine.Set(motion.Position, w.id.String(), motion.Props{
		"position":   "relative",
		"clearProps": "transform,top,zIndex",
	})
}

// Unmount disconnects the observers and kills the entrance animation.
func (w *SectionWrapper) Unmount() {
	if !w.mounted {
		return
	}
	w.mounted = false
	w.nav.unregister(w)
	w.entrance.kill()
}
