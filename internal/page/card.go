package page

import (
	"time"

	"github.com/Ri-Verma/portfolio/internal/content"
	"github.com/Ri-Verma/portfolio/internal/motion"
)

var hoverTween = motion.Tween{Duration: 300 * time.Millisecond, Ease: motion.Power2Out}

// Card animates one content item: a reveal as it nears the viewport and a
// small lift while the pointer is over it.
type Card struct {
	item    content.Item
	doc     Document
	engine  motion.Engine
	nav     *Navigation
	enter   entrance
	hovered bool
	hover   motion.Handle
	mounted bool
}

// NewCard prepares the card for item.
func NewCard(item content.Item, doc Document, engine motion.Engine, nav *Navigation) *Card {
	return &Card{
		item:   item,
		doc:    doc,
		engine: engine,
		nav:    nav,
		enter: entrance{
			engine: engine,
			target: item.Target(),
			from:   motion.Props{"opacity": 0, "y": 30, "scale": 0.9},
			to:     motion.Props{"opacity": 1, "y": 0, "scale": 1},
			tween:  motion.Tween{Duration: 600 * time.Millisecond, Ease: motion.Power2Out},
			trigger: ScrollTrigger{
				StartRatio: 0.85,
				EndRatio:   0,
			},
		},
	}
}

// Item returns the rendered content.
func (c *Card) Item() content.Item { return c.item }

// Target is the element identifier of the card.
func (c *Card) Target() string { return c.item.Target() }

// Entered reports whether the reveal is currently played.
func (c *Card) Entered() bool { return c.enter.played }

// Hovered reports whether the pointer is over the card.
func (c *Card) Hovered() bool { return c.hovered }

// Mount registers the reveal.
func (c *Card) Mount() {
	if c.mounted {
		return
	}
	c.mounted = true
	c.enter.register("", "top 85%", "")
	c.nav.registerCard(c)
}

// Sample evaluates the reveal trigger. Cards without a reported rect are
// skipped.
func (c *Card) Sample() {
	if !c.mounted || !c.nav.TriggersEnabled() {
		return
	}
	r, ok := c.doc.Rect(c.Target())
	if !ok {
		return
	}
	c.enter.sample(r, c.doc.Viewport())
}

// PointerEnter lifts the card.
func (c *Card) PointerEnter() {
	if !c.mounted || c.hovered {
		return
	}
	c.hovered = true
	c.hover = c.engine.To(motion.Hover, c.Target(), motion.Props{"y": -5}, hoverTween)
}

// PointerLeave drops the card back.
func (c *Card) PointerLeave() {
	if !c.mounted || !c.hovered {
		return
	}
	c.hovered = false
	c.hover = c.engine.To(motion.Unhover, c.Target(), motion.Props{"y": 0}, hoverTween)
}

// Unmount kills the card's animations.
func (c *Card) Unmount() {
	if !c.mounted {
		return
	}
	c.mounted = false
	c.nav.unregisterCard(c)
	c.enter.kill()
	if c.hover != nil {
		c.hover.Kill()
		c.hover = nil
	}
}
