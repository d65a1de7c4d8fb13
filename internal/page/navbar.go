package page

import (
	"time"

	"github.com/Ri-Verma/portfolio/internal/loop"
	"github.com/Ri-Verma/portfolio/internal/motion"
)

const (
	// HeaderHeight is subtracted from a section's offset when scrolling to it.
	HeaderHeight = 80.0
	// Lookahead is added to the scroll position when picking the active section.
	Lookahead = 120.0

	ScrollDuration    = 1200 * time.Millisecond
	RefreshGrace      = 100 * time.Millisecond
	NativeSettle      = 1000 * time.Millisecond
	InitialCheckDelay = 100 * time.Millisecond
)

// Navbar tracks the active section and performs smooth scrolls to sections.
type Navbar struct {
	doc    Document
	engine motion.Engine
	sched  loop.Scheduler
	nav    *Navigation

	active   SectionID
	menuOpen bool
	ticking  bool
	mounted  bool

	timers map[int]loop.Timer
	seq    int
	scroll motion.Handle
}

// NewNavbar returns a navbar with the first section active.
func NewNavbar(doc Document, engine motion.Engine, sched loop.Scheduler, nav *Navigation) *Navbar {
	return &Navbar{
		doc:    doc,
		engine: engine,
		sched:  sched,
		nav:    nav,
		active: Sections[0],
		timers: make(map[int]loop.Timer),
	}
}

// Active is the section the visitor is currently reading.
func (n *Navbar) Active() SectionID { return n.active }

// MenuOpen reports whether the collapsed menu is expanded.
func (n *Navbar) MenuOpen() bool { return n.menuOpen }

// Mount schedules the first active-section check once sections have
// rendered.
func (n *Navbar) Mount() {
	if n.mounted {
		return
	}
	n.mounted = true
	n.after(InitialCheckDelay, n.track)
}

// ToggleMenu opens or closes the collapsed menu.
func (n *Navbar) ToggleMenu() {
	n.menuOpen = !n.menuOpen
}

// ScrollTo smoothly scrolls to id, landing HeaderHeight above it. A missing
// target is a no-op; it reports whether a scroll started.
func (n *Navbar) ScrollTo(id SectionID) bool {
	if !n.mounted {
		return false
	}
	n.menuOpen = false
	r, ok := n.doc.Rect(id.String())
	if !ok {
		return false
	}

	n.nav.Begin()
	if n.scroll != nil {
		// killing the handle also kills the window's tweens
		n.scroll.Kill()
		n.scroll = nil
	} else {
		n.engine.KillTweensOf(motion.Window)
	}

	target := r.Top - HeaderHeight
	if target < 0 {
		target = 0
	}

	if n.engine.Live() {
		n.scroll = n.engine.ScrollTo(target, motion.Tween{Duration: ScrollDuration, Ease: motion.Power2InOut}, func() {
			n.scroll = nil
			n.nav.Resume()
			n.after(RefreshGrace, n.nav.Refresh)
			n.nav.Finish()
			n.active = id
		})
		return true
	}

	n.doc.ScrollTo(target)
	n.after(NativeSettle, func() {
		n.nav.Resume()
		n.nav.Refresh()
		n.nav.Finish()
		n.active = id
	})
	return true
}

// OnScroll requests an active-section check on the next frame. Calls within
// the same frame collapse into one.
func (n *Navbar) OnScroll() {
	if !n.mounted || n.ticking {
		return
	}
	n.ticking = true
	n.keep(n.sched.RequestFrame, func() {
		n.track()
		n.ticking = false
	})
}

// track marks the last section whose top has been passed as active.
func (n *Navbar) track() {
	if !n.mounted || n.nav.InProgress() {
		return
	}
	pos := n.doc.Viewport().ScrollY + Lookahead
	for i := len(Sections) - 1; i >= 0; i-- {
		r, ok := n.doc.Rect(Sections[i].String())
		if !ok {
			continue
		}
		if pos >= r.Top {
			n.active = Sections[i]
			return
		}
	}
}

// after schedules fn and keeps its timer until it fires, so Unmount can
// cancel whatever is still pending.
func (n *Navbar) after(d time.Duration, fn func()) {
	n.keep(func(f func()) loop.Timer { return n.sched.After(d, f) }, fn)
}

func (n *Navbar) keep(start func(func()) loop.Timer, fn func()) {
	n.seq++
	id := n.seq
	n.timers[id] = start(func() {
		delete(n.timers, id)
		fn()
	})
}

// Unmount cancels pending checks and any running scroll.
func (n *Navbar) Unmount() {
	if !n.mounted {
		return
	}
	n.mounted = false
	for _, t := range n.timers {
		t.Stop()
	}
	n.timers = make(map[int]loop.Timer)
	if n.scroll != nil {
		n.scroll.Kill()
		n.scroll = nil
	}
	n.ticking = false
}
