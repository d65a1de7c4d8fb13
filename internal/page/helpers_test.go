package page

import (
	"github.com/Ri-Verma/portfolio/internal/content"
	"github.com/Ri-Verma/portfolio/internal/loop"
	"github.com/Ri-Verma/portfolio/internal/motion"
)

const viewportHeight = 800.0

// stackedLayout places each section one viewport tall, top to bottom.
func stackedLayout(width float64, ids ...SectionID) *Layout {
	rects := make(map[string]Rect, len(ids))
	for i, id := range ids {
		rects[id.String()] = Rect{Top: float64(i) * viewportHeight, Height: viewportHeight}
	}
	return NewLayout(Viewport{Width: width, Height: viewportHeight}, rects)
}

type harness struct {
	sched  *loop.Manual
	rec    *motion.Recorder
	layout *Layout
	nav    *Navigation
}

func newHarness(layout *Layout) *harness {
	sched := loop.NewManual()
	return &harness{
		sched:  sched,
		rec:    motion.NewRecorder(sched, layout),
		layout: layout,
		nav:    NewNavigation(),
	}
}

func named(intents []motion.Intent, name motion.Name) []motion.Intent {
	var out []motion.Intent
	for _, in := range intents {
		if in.Name == name {
			out = append(out, in)
		}
	}
	return out
}

func kinds(intents []motion.Intent, kind motion.Kind) []motion.Intent {
	var out []motion.Intent
	for _, in := range intents {
		if in.Kind == kind {
			out = append(out, in)
		}
	}
	return out
}

func testSite() *content.Site {
	return &content.Site{
		Projects: []content.Item{
			{Kind: content.KindProject, Slug: "lms", Title: "LMS", URL: "https://example.com/lms"},
			{Kind: content.KindProject, Slug: "rental", Title: "Rental", URL: "https://example.com/rental"},
			{Kind: content.KindProject, Slug: "shop", Title: "Shop", URL: "https://example.com/shop"},
		},
		Certificates: []content.Item{
			{Kind: content.KindCertificate, Slug: "cyber", Title: "Cyber", URL: "https://example.com/cyber"},
			{Kind: content.KindCertificate, Slug: "risk", Title: "Risk", URL: "https://example.com/risk"},
		},
	}
}
