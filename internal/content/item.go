// Package content loads the portfolio's static records: projects,
// certificates, social links and the about biography.
package content

import "html/template"

// Kind separates the two card lists.
type Kind string

const (
	KindProject     Kind = "project"
	KindCertificate Kind = "certificate"
)

// ParseKind accepts the singular kind or the plural list name used in URLs.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "project", "projects":
		return KindProject, true
	case "certificate", "certificates", "certifications":
		return KindCertificate, true
	}
	return "", false
}

// Item is one project or certificate rendered as a card.
type Item struct {
	Kind            Kind          `json:"kind"`
	Slug            string        `json:"slug"`
	Title           string        `json:"title"`
	Image           string        `json:"image,omitempty"`
	Icon            string        `json:"icon"`
	URL             string        `json:"url"`
	Order           int           `json:"order"`
	Description     string        `json:"description"`
	DescriptionHTML template.HTML `json:"-"`
}

// Target is the element identifier the card is anchored by.
func (i Item) Target() string {
	return "card-" + string(i.Kind) + "-" + i.Slug
}

// SocialLink is an outbound profile link shown in the navigation bar.
type SocialLink struct {
	Label string `yaml:"label" json:"label"`
	Href  string `yaml:"href" json:"href"`
	Icon  string `yaml:"icon" json:"icon"`
}

// About is the hero biography.
type About struct {
	Name    string        `yaml:"name" json:"name"`
	Heading string        `yaml:"heading" json:"heading"`
	Avatar  string        `yaml:"avatar" json:"avatar"`
	Bio     string        `yaml:"bio" json:"bio"`
	BioHTML template.HTML `yaml:"-" json:"-"`
}

// Section carries per-section presentation.
type Section struct {
	Heading string `yaml:"heading" json:"heading"`
	BgColor string `yaml:"bgColor" json:"bgColor"`
	BgImage string `yaml:"bgImage" json:"bgImage"`
}

// Site is everything the page renders.
type Site struct {
	Title        string             `yaml:"title" json:"title"`
	Brand        string             `yaml:"brand" json:"brand"`
	About        About              `yaml:"about" json:"about"`
	Socials      []SocialLink       `yaml:"socials" json:"socials"`
	Sections     map[string]Section `yaml:"sections" json:"sections"`
	Projects     []Item             `yaml:"-" json:"projects"`
	Certificates []Item             `yaml:"-" json:"certificates"`
}

// Items returns the list for kind.
func (s *Site) Items(kind Kind) []Item {
	switch kind {
	case KindProject:
		return s.Projects
	case KindCertificate:
		return s.Certificates
	}
	return nil
}

// Find looks up an item by kind and slug.
func (s *Site) Find(kind Kind, slug string) (Item, bool) {
	for _, it := range s.Items(kind) {
		if it.Slug == slug {
			return it, true
		}
	}
	return Item{}, false
}
