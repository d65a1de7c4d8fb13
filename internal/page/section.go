// Package page holds the interaction state of one page view: which section
// is active, how sections are positioned, which carousel card is selected and
// whether the about panel has opened. Components talk to the browser only
// through Document, motion.Engine and loop.Scheduler.
package page

// SectionID names one full-viewport region of the page.
type SectionID string

const (
	About          SectionID = "about"
	Projects       SectionID = "projects"
	Certifications SectionID = "certifications"
	Contact        SectionID = "contact"
)

// Sections is the fixed top-to-bottom order of the page.
var Sections = []SectionID{About, Projects, Certifications, Contact}

// ParseSection maps an anchor identifier to a section.
func ParseSection(s string) (SectionID, bool) {
	for _, id := range Sections {
		if string(id) == s {
			return id, true
		}
	}
	return "", false
}

func (id SectionID) String() string { return string(id) }
