package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Ri-Verma/portfolio/internal/contact"
	"github.com/Ri-Verma/portfolio/internal/content"
	"github.com/Ri-Verma/portfolio/internal/page"
)

type sectionView struct {
	ID page.SectionID
	content.Section
}

func (s *Server) index(c *gin.Context) {
	site := s.opts.Content.Site()
	sections := make([]sectionView, 0, len(page.Sections))
	for _, id := range page.Sections {
		sections = append(sections, sectionView{ID: id, Section: site.Sections[id.String()]})
	}
	c.HTML(http.StatusOK, "index.html", gin.H{
		"site":     site,
		"sections": sections,
		"projects": page.NewCarousel(len(site.Projects)).Slides(),
		"certs":    page.NewCarousel(len(site.Certificates)).Slides(),
	})
}

// outbound counts a click on a card and forwards to the item's link.
func (s *Server) outbound(c *gin.Context) {
	kind, ok := content.ParseKind(c.Param("kind"))
	if !ok {
		c.String(http.StatusNotFound, "not found")
		return
	}
	item, ok := s.opts.Content.Site().Find(kind, c.Param("slug"))
	if !ok {
		c.String(http.StatusNotFound, "not found")
		return
	}
	if s.opts.Tracker != nil && c.GetHeader("DNT") != "1" {
		if err := s.opts.Tracker.RecordClick(c.Request.Context(), string(item.Kind), item.Slug, item.URL); err != nil {
			s.log.WithError(err).WithField("slug", item.Slug).Warn("record click")
		}
	}
	c.Redirect(http.StatusFound, item.URL)
}

func (s *Server) contactForm(c *gin.Context) {
	c.HTML(http.StatusOK, "contact.html", gin.H{
		"title": "Contact Me",
	})
}

func (s *Server) submitContact(c *gin.Context) {
	msg := contact.Message{
		Name:  c.PostForm("fullName"),
		Email: c.PostForm("email"),
		Body:  c.PostForm("message"),
	}.Normalize()

	if err := msg.Validate(); err != nil {
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Please enter your name, a valid email address and a message.",
		})
		return
	}

	err := contact.ErrNotConfigured
	if s.opts.Mailer != nil {
		err = s.opts.Mailer.Send(c.Request.Context(), msg)
	}
	if err != nil {
		entry := s.log.WithError(err)
		if errors.Is(err, contact.ErrNotConfigured) {
			entry.Warn("contact form submitted but mail is not configured")
		} else {
			entry.Error("send contact email")
		}
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Sorry, there was an error sending your message. Please try again later.",
		})
		return
	}

	s.log.WithFields(logrus.Fields{"from": msg.Email}).Info("contact email sent")
	c.HTML(http.StatusOK, "contact-success.html", gin.H{
		"success": "Thank you for your message! I'll get back to you soon.",
	})
}

func (s *Server) privacy(c *gin.Context) {
	c.HTML(http.StatusOK, "privacy.html", gin.H{
		"title": "Privacy Policy",
		"site":  s.opts.Content.Site(),
	})
}
