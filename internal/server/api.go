package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ri-Verma/portfolio/internal/page"
	"github.com/Ri-Verma/portfolio/internal/session"
)

type openRequest struct {
	Width   float64              `json:"width" binding:"required,gt=0"`
	Height  float64              `json:"height" binding:"required,gt=0"`
	ScrollY float64              `json:"scrollY" binding:"gte=0"`
	Rects   map[string]page.Rect `json:"rects"`
	Motion  bool                 `json:"motion"`
}

type openResponse struct {
	ID string `json:"id"`
	session.Result
}

type scrollRequest struct {
	Y float64 `json:"y" binding:"gte=0"`
}

type resizeRequest struct {
	Width  float64 `json:"width" binding:"required,gt=0"`
	Height float64 `json:"height" binding:"required,gt=0"`
}

type layoutRequest struct {
	Rects map[string]page.Rect `json:"rects" binding:"required"`
}

type touchRequest struct {
	Phase page.TouchPhase `json:"phase" binding:"required,oneof=start move end"`
	X     float64         `json:"x"`
}

type hoverRequest struct {
	Entered bool `json:"entered"`
}

func (s *Server) openView(c *gin.Context) {
	var req openRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, res, err := s.opts.Views.Open(session.Init{
		Width:   req.Width,
		Height:  req.Height,
		ScrollY: req.ScrollY,
		Rects:   req.Rects,
		Motion:  req.Motion,
	})
	if errors.Is(err, session.ErrTooManyViews) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		s.log.WithError(err).Error("open view")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not open view"})
		return
	}
	c.JSON(http.StatusCreated, openResponse{ID: id, Result: res})
}

func (s *Server) closeView(c *gin.Context) {
	if err := s.opts.Views.Close(c.Param("id")); err != nil {
		s.viewError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// apply runs fn on the view named in the path and writes the result.
func (s *Server) apply(c *gin.Context, fn func(v *page.View)) {
	res, err := s.opts.Views.Do(c.Param("id"), fn)
	if err != nil {
		s.viewError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) viewError(c *gin.Context, err error) {
	if errors.Is(err, session.ErrUnknownView) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	s.log.WithError(err).WithField("view", c.Param("id")).Error("view event")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "view unavailable"})
}

func (s *Server) scroll(c *gin.Context) {
	var req scrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.apply(c, func(v *page.View) { v.Scroll(req.Y) })
}

func (s *Server) resize(c *gin.Context) {
	var req resizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.apply(c, func(v *page.View) { v.Resize(req.Width, req.Height) })
}

func (s *Server) layout(c *gin.Context) {
	var req layoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.apply(c, func(v *page.View) { v.Place(req.Rects) })
}

func (s *Server) toggleMenu(c *gin.Context) {
	s.apply(c, func(v *page.View) { v.ToggleMenu() })
}

func (s *Server) navigate(c *gin.Context) {
	section := c.Param("section")
	s.apply(c, func(v *page.View) { v.Navigate(section) })
}

func (s *Server) touch(c *gin.Context) {
	var req touchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	list := c.Param("list")
	s.apply(c, func(v *page.View) { v.Touch(list, req.Phase, req.X) })
}

func (s *Server) hover(c *gin.Context) {
	var req hoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	card := c.Param("card")
	s.apply(c, func(v *page.View) { v.Hover(card, req.Entered) })
}

func (s *Server) expandAbout(c *gin.Context) {
	s.apply(c, func(v *page.View) { v.ExpandAbout() })
}
