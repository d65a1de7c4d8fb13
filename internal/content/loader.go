package content

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

const (
	siteFile        = "site.yaml"
	projectsDir     = "projects"
	certificatesDir = "certifications"
)

type itemMatter struct {
	Title string `yaml:"title"`
	Image string `yaml:"image"`
	Icon  string `yaml:"icon"`
	URL   string `yaml:"url"`
	Order int    `yaml:"order"`
}

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(
		gmhtml.WithHardWraps(),
	),
)

// Load reads site.yaml plus the projects/ and certifications/ markdown files
// from fsys.
func Load(fsys fs.FS) (*Site, error) {
	raw, err := fs.ReadFile(fsys, siteFile)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", siteFile, err)
	}

	site := &Site{}
	if err := yaml.Unmarshal(raw, site); err != nil {
		return nil, fmt.Errorf("decode %s: %w", siteFile, err)
	}
	if site.Brand == "" {
		site.Brand = "Portfolio"
	}

	bio, err := render(site.About.Bio)
	if err != nil {
		return nil, fmt.Errorf("render about bio: %w", err)
	}
	site.About.BioHTML = bio

	if site.Projects, err = loadItems(fsys, projectsDir, KindProject); err != nil {
		return nil, err
	}
	if site.Certificates, err = loadItems(fsys, certificatesDir, KindCertificate); err != nil {
		return nil, err
	}
	return site, nil
}

func loadItems(fsys fs.FS, dir string, kind Kind) ([]Item, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}

	var items []Item
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".md") {
			continue
		}
		it, err := loadItem(fsys, path.Join(dir, e.Name()), kind)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Order == items[j].Order {
			return items[i].Slug < items[j].Slug
		}
		return items[i].Order < items[j].Order
	})
	return items, nil
}

func loadItem(fsys fs.FS, name string, kind Kind) (Item, error) {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return Item{}, fmt.Errorf("read %s: %w", name, err)
	}

	var fm itemMatter
	body, err := frontmatter.Parse(bytes.NewReader(raw), &fm)
	if err != nil {
		return Item{}, fmt.Errorf("parse frontmatter %s: %w", name, err)
	}

	slug := strings.TrimSuffix(path.Base(name), path.Ext(name))
	if fm.Title == "" {
		fm.Title = titleFromSlug(slug)
	}
	if fm.URL == "" {
		return Item{}, fmt.Errorf("%s: url is required", name)
	}

	description := strings.TrimSpace(string(body))
	html, err := render(description)
	if err != nil {
		return Item{}, fmt.Errorf("render %s: %w", name, err)
	}

	return Item{
		Kind:            kind,
		Slug:            slug,
		Title:           fm.Title,
		Image:           fm.Image,
		Icon:            fm.Icon,
		URL:             fm.URL,
		Order:           fm.Order,
		Description:     description,
		DescriptionHTML: html,
	}, nil
}

func render(src string) (template.HTML, error) {
	if src == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

func titleFromSlug(slug string) string {
	words := strings.NewReplacer("-", " ", "_", " ").Replace(slug)
	return cases.Title(language.English).String(words)
}
