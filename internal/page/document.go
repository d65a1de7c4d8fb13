package page

// Rect is an element's vertical placement in page coordinates.
type Rect struct {
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
}

// Bottom is the page offset just past the element.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Viewport is the visible window onto the page.
type Viewport struct {
	ScrollY float64 `json:"scrollY"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
}

// Document is the slice of the DOM the components rely on.
type Document interface {
	// Rect looks up an element by identifier.
	Rect(id string) (Rect, bool)
	Viewport() Viewport
	// ScrollTo is the platform's native smooth scroll.
	ScrollTo(y float64)
}

// Layout is a Document built from geometry the browser reports.
type Layout struct {
	rects map[string]Rect
	vp    Viewport
}

var _ Document = (*Layout)(nil)

// NewLayout copies rects into a new layout.
func NewLayout(vp Viewport, rects map[string]Rect) *Layout {
	l := &Layout{rects: make(map[string]Rect, len(rects)), vp: vp}
	l.Place(rects)
	return l
}

func (l *Layout) Rect(id string) (Rect, bool) {
	r, ok := l.rects[id]
	return r, ok
}

func (l *Layout) Viewport() Viewport { return l.vp }

func (l *Layout) ScrollTo(y float64) {
	if y < 0 {
		y = 0
	}
	l.vp.ScrollY = y
}

// Place records or replaces element rects.
func (l *Layout) Place(rects map[string]Rect) {
	for id, r := range rects {
		l.rects[id] = r
	}
}

// Remove forgets an element, as when it unmounts.
func (l *Layout) Remove(id string) {
	delete(l.rects, id)
}

// Resize updates the viewport dimensions.
func (l *Layout) Resize(width, height float64) {
	l.vp.Width = width
	l.vp.Height = height
}
