package page

import (
	"github.com/Ri-Verma/portfolio/internal/content"
	"github.com/Ri-Verma/portfolio/internal/loop"
	"github.com/Ri-Verma/portfolio/internal/motion"
)

// TouchPhase is a step of a touch gesture.
type TouchPhase string

const (
	TouchStart TouchPhase = "start"
	TouchMove  TouchPhase = "move"
	TouchEnd   TouchPhase = "end"
)

// View is one page view: every component of the page wired to a shared
// document, engine and scheduler.
type View struct {
	layout *Layout
	engine motion.Engine
	nav    *Navigation

	navbar    *Navbar
	sections  []*SectionWrapper
	cards     []*Card
	carousels map[content.Kind]*Carousel
	about     *AboutPanel
	mounted   bool
}

// NewView composes the page for site.
func NewView(site *content.Site, layout *Layout, engine motion.Engine, sched loop.Scheduler) *View {
	nav := NewNavigation()
	v := &View{
		layout: layout,
		engine: engine,
		nav:    nav,
		navbar: NewNavbar(layout, engine, sched, nav),
		carousels: map[content.Kind]*Carousel{
			content.KindProject:     NewCarousel(len(site.Projects)),
			content.KindCertificate: NewCarousel(len(site.Certificates)),
		},
		about: NewAboutPanel(engine, ClassFor(layout.Viewport().Width)),
	}
	for _, id := range Sections {
		v.sections = append(v.sections, NewSectionWrapper(id, layout, engine, nav))
	}
	for _, list := range [][]content.Item{site.Projects, site.Certificates} {
		for _, it := range list {
			v.cards = append(v.cards, NewCard(it, layout, engine, nav))
		}
	}
	return v
}

// Navbar exposes the navigation bar.
func (v *View) Navbar() *Navbar { return v.navbar }

// About exposes the about panel.
func (v *View) About() *AboutPanel { return v.about }

// Navigation exposes the shared navigation state.
func (v *View) Navigation() *Navigation { return v.nav }

// Section returns the wrapper for id.
func (v *View) Section(id SectionID) (*SectionWrapper, bool) {
	for _, w := range v.sections {
		if w.ID() == id {
			return w, true
		}
	}
	return nil, false
}

// Carousel returns the carousel for a list.
func (v *View) Carousel(kind content.Kind) (*Carousel, bool) {
	c, ok := v.carousels[kind]
	return c, ok
}

// Card returns the card anchored by target.
func (v *View) Card(target string) (*Card, bool) {
	for _, c := range v.cards {
		if c.Target() == target {
			return c, true
		}
	}
	return nil, false
}

// Mount starts every component and takes the first observer sample.
func (v *View) Mount() {
	if v.mounted {
		return
	}
	v.mounted = true
	for _, w := range v.sections {
		w.Mount()
	}
	for _, c := range v.cards {
		c.Mount()
	}
	v.about.Mount()
	v.navbar.Mount()
	v.sample()
}

func (v *View) sample() {
	for _, w := range v.sections {
		w.Sample()
	}
	for _, c := range v.cards {
		c.Sample()
	}
}

// Scroll records a new scroll position reported by the browser.
func (v *View) Scroll(y float64) {
	if !v.mounted {
		return
	}
	v.layout.ScrollTo(y)
	v.sample()
	v.navbar.OnScroll()
}

// Resize records new viewport dimensions.
func (v *View) Resize(width, height float64) {
	if !v.mounted {
		return
	}
	v.layout.Resize(width, height)
	v.about.Resize(ClassFor(width))
	v.sample()
}

// Place records element geometry, as after a re-layout.
func (v *View) Place(rects map[string]Rect) {
	if !v.mounted {
		return
	}
	v.layout.Place(rects)
	v.sample()
}

// Navigate scrolls to the section named by id; unknown names are ignored.
func (v *View) Navigate(id string) bool {
	section, ok := ParseSection(id)
	if !ok || !v.mounted {
		return false
	}
	return v.navbar.ScrollTo(section)
}

// ToggleMenu opens or closes the collapsed navigation menu.
func (v *View) ToggleMenu() {
	if v.mounted {
		v.navbar.ToggleMenu()
	}
}

// Touch feeds a gesture step to the named carousel. It reports whether the
// selection changed.
func (v *View) Touch(list string, phase TouchPhase, x float64) bool {
	kind, ok := content.ParseKind(list)
	if !ok || !v.mounted {
		return false
	}
	c := v.carousels[kind]
	switch phase {
	case TouchStart:
		c.TouchStart(x)
	case TouchMove:
		c.TouchMove(x)
	case TouchEnd:
		return c.TouchEnd()
	}
	return false
}

// Hover reports the pointer entering or leaving a card.
func (v *View) Hover(target string, entered bool) bool {
	c, ok := v.Card(target)
	if !ok || !v.mounted {
		return false
	}
	if entered {
		c.PointerEnter()
	} else {
		c.PointerLeave()
	}
	return true
}

// ExpandAbout opens the about panel on first use.
func (v *View) ExpandAbout() bool {
	if !v.mounted {
		return false
	}
	return v.about.Expand()
}

// Unmount tears down every component.
func (v *View) Unmount() {
	if !v.mounted {
		return
	}
	v.mounted = false
	v.navbar.Unmount()
	v.about.Unmount()
	for _, c := range v.cards {
		c.Unmount()
	}
	for _, w := range v.sections {
		w.Unmount()
	}
}
