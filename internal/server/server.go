// Package server exposes the portfolio over HTTP: the rendered page, the view
// event API the browser drives, the contact form and the admin dashboard.
package server

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Ri-Verma/portfolio/internal/analytics"
	"github.com/Ri-Verma/portfolio/internal/contact"
	"github.com/Ri-Verma/portfolio/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Tracker records visits and outbound clicks.
type Tracker interface {
	RecordVisit(ctx context.Context, ip, userAgent, path string) error
	RecordClick(ctx context.Context, kind, slug, url string) error
	HashIP(ip string) string
}

// StatsSource feeds the admin dashboard.
type StatsSource interface {
	Stats(ctx context.Context) (*analytics.Stats, error)
	Cleanup(ctx context.Context, olderThan time.Duration) (int64, error)
}

// Options wires the server's collaborators. Tracker, Stats and Mailer may be
// nil; the features they back are then disabled.
type Options struct {
	Content   session.SiteSource
	Views     *session.Registry
	Tracker   Tracker
	Stats     StatsSource
	Mailer    contact.Mailer
	Admin     AdminCredentials
	Retention time.Duration
	ImagesDir string
	Logger    *logrus.Logger
}

type Server struct {
	opts   Options
	log    *logrus.Logger
	admin  *adminAuth
	engine *gin.Engine
}

// New builds the router.
func New(opts Options) (*Server, error) {
	if opts.Content == nil || opts.Views == nil {
		return nil, fmt.Errorf("server: content and views are required")
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	admin, err := newAdminAuth(opts.Admin)
	if err != nil {
		return nil, err
	}

	s := &Server{opts: opts, log: opts.Logger, admin: admin}

	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.log), s.trackVisits())
	r.SetHTMLTemplate(tmpl)

	r.StaticFS("/static", http.FS(static))
	if opts.ImagesDir != "" {
		r.Static("/images", opts.ImagesDir)
	}

	r.GET("/", s.index)
	r.GET("/out/:kind/:slug", s.outbound)
	r.GET("/contact-form", s.contactForm)
	r.POST("/contact", s.submitContact)
	r.GET("/privacy", s.privacy)

	api := r.Group("/api/views")
	api.POST("", s.openView)
	api.DELETE("/:id", s.closeView)
	api.POST("/:id/scroll", s.scroll)
	api.POST("/:id/resize", s.resize)
	api.POST("/:id/layout", s.layout)
	api.POST("/:id/menu", s.toggleMenu)
	api.POST("/:id/navigate/:section", s.navigate)
	api.POST("/:id/carousels/:list/touch", s.touch)
	api.POST("/:id/cards/:card/hover", s.hover)
	api.POST("/:id/about/expand", s.expandAbout)

	s.adminRoutes(r)

	s.engine = r
	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		s.log.WithField("addr", addr).Info("listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

var templateFuncs = template.FuncMap{
	"year": func() int { return time.Now().Year() },
	"dict": func(kv ...any) (map[string]any, error) {
		if len(kv)%2 != 0 {
			return nil, fmt.Errorf("dict: odd number of arguments")
		}
		m := make(map[string]any, len(kv)/2)
		for i := 0; i < len(kv); i += 2 {
			key, ok := kv[i].(string)
			if !ok {
				return nil, fmt.Errorf("dict: key %v is not a string", kv[i])
			}
			m[key] = kv[i+1]
		}
		return m, nil
	},
}
