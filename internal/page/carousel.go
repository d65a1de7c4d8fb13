package page

import "math"

// SwipeThreshold is the horizontal travel a swipe must exceed.
const SwipeThreshold = 50.0

// Slide is how one carousel item is drawn relative to the selection.
type Slide struct {
	Index   int     `json:"index"`
	Offset  int     `json:"offset"`
	Active  bool    `json:"active"`
	Scale   float64 `json:"scale"`
	Opacity float64 `json:"opacity"`
	Blur    float64 `json:"blur"`
	ZIndex  int     `json:"zIndex"`
	Hidden  bool    `json:"hidden"`
}

// Carousel selects one item of a list with horizontal swipes.
type Carousel struct {
	length   int
	index    int
	startX   float64
	endX     float64
	hasStart bool
	hasEnd   bool
}

// NewCarousel returns a carousel over length items with the first selected.
func NewCarousel(length int) *Carousel {
	return &Carousel{length: length}
}

// Index is the selected item.
func (c *Carousel) Index() int { return c.index }

// Len is the number of items.
func (c *Carousel) Len() int { return c.length }

// TouchStart records where the gesture began.
func (c *Carousel) TouchStart(x float64) {
	c.startX, c.hasStart = x, true
}

// TouchMove records the latest position; only the last one counts.
func (c *Carousel) TouchMove(x float64) {
	c.endX, c.hasEnd = x, true
}

// TouchEnd resolves the gesture and reports whether the selection moved.
// Captured coordinates are always cleared.
func (c *Carousel) TouchEnd() bool {
	defer c.reset()
	if !c.hasStart || !c.hasEnd || c.length == 0 {
		return false
	}
	diff := c.startX - c.endX
	switch {
	case diff > SwipeThreshold:
		c.index = (c.index + 1) % c.length
	case diff < -SwipeThreshold:
		c.index = (c.index - 1 + c.length) % c.length
	default:
		return false
	}
	return true
}

func (c *Carousel) reset() {
	c.startX, c.endX = 0, 0
	c.hasStart, c.hasEnd = false, false
}

// Slides describes every item's presentation. Items more than one position
// from the selection are hidden.
func (c *Carousel) Slides() []Slide {
	slides := make([]Slide, c.length)
	for i := range slides {
		offset := i - c.index
		dist := int(math.Abs(float64(offset)))
		s := Slide{
			Index:   i,
			Offset:  offset,
			Active:  offset == 0,
			Scale:   1,
			Opacity: 1,
			ZIndex:  10 - dist,
			Hidden:  dist > 1,
		}
		if !s.Active {
			s.Scale = 0.9 - float64(dist)*0.1
			s.Opacity = 0.6
			s.Blur = 2
		}
		if s.Hidden {
			s.Opacity = 0
		}
		slides[i] = s
	}
	return slides
}
