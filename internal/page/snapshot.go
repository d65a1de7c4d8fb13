package page

import "github.com/Ri-Verma/portfolio/internal/content"

// SectionState is the observable state of one section.
type SectionState struct {
	Positioning Positioning `json:"positioning"`
	Entered     bool        `json:"entered"`
}

// CarouselState is the observable state of one carousel.
type CarouselState struct {
	Index  int     `json:"index"`
	Slides []Slide `json:"slides"`
}

// AboutState is the observable state of the about panel.
type AboutState struct {
	Expanded bool `json:"expanded"`
	Complete bool `json:"complete"`
	Overlay  bool `json:"overlay"`
}

// Snapshot is what the browser needs to render the current state.
type Snapshot struct {
	Active     SectionID                      `json:"active"`
	MenuOpen   bool                           `json:"menuOpen"`
	Navigating bool                           `json:"navigating"`
	ScrollY    float64                        `json:"scrollY"`
	Class      ViewportClass                  `json:"class"`
	Sections   map[SectionID]SectionState     `json:"sections"`
	Carousels  map[content.Kind]CarouselState `json:"carousels"`
	About      AboutState                     `json:"about"`
}

// Snapshot captures the view's current state.
func (v *View) Snapshot() Snapshot {
	s := Snapshot{
		Active:     v.navbar.Active(),
		MenuOpen:   v.navbar.MenuOpen(),
		Navigating: v.nav.InProgress(),
		ScrollY:    v.layout.Viewport().ScrollY,
		Class:      v.about.Class(),
		Sections:   make(map[SectionID]SectionState, len(v.sections)),
		Carousels:  make(map[content.Kind]CarouselState, len(v.carousels)),
		About: AboutState{
			Expanded: v.about.Expanded(),
			Complete: v.about.Complete(),
			Overlay:  v.about.OverlayVisible(),
		},
	}
	for _, w := range v.sections {
		s.Sections[w.ID()] = SectionState{Positioning: w.Positioning(), Entered: w.Entered()}
	}
	for kind, c := range v.carousels {
		s.Carousels[kind] = CarouselState{Index: c.Index(), Slides: c.Slides()}
	}
	return s
}
