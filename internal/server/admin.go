package server

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ri-Verma/portfolio/internal/analytics"
)

const adminCookie = "admin_token"

// AdminCredentials gate the dashboard. An empty password disables login.
type AdminCredentials struct {
	Username string
	Password string
}

type adminAuth struct {
	creds AdminCredentials
	token string
}

func newAdminAuth(creds AdminCredentials) (*adminAuth, error) {
	token, err := analytics.RandomToken()
	if err != nil {
		return nil, err
	}
	return &adminAuth{creds: creds, token: token}, nil
}

func (a *adminAuth) enabled() bool {
	return a.creds.Password != ""
}

func (a *adminAuth) check(username, password string) bool {
	if !a.enabled() {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.creds.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.creds.Password)) == 1
	return userOK && passOK
}

func (a *adminAuth) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(a.token)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (s *Server) hashedClient(c *gin.Context) string {
	if s.opts.Tracker == nil {
		return ""
	}
	return s.opts.Tracker.HashIP(c.ClientIP())
}

func (s *Server) adminRoutes(r *gin.Engine) {
	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{
			"title":    "Admin Login",
			"disabled": !s.admin.enabled(),
		})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		if !s.admin.check(c.PostForm("username"), c.PostForm("password")) {
			s.log.WithField("client", s.hashedClient(c)).Warn("failed admin login")
			c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
				"title":    "Admin Login",
				"error":    "Invalid credentials",
				"disabled": !s.admin.enabled(),
			})
			return
		}
		c.SetCookie(adminCookie, s.admin.token, 3600*24, "/admin", "", false, true)
		s.log.WithField("client", s.hashedClient(c)).Info("admin login")
		c.Redirect(http.StatusFound, "/admin/dashboard")
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", false, true)
		c.Redirect(http.StatusFound, "/admin/login")
	})

	group := r.Group("/admin")
	group.Use(s.admin.middleware())

	group.GET("/dashboard", func(c *gin.Context) {
		stats, err := s.stats(c)
		if err != nil {
			s.log.WithError(err).Error("load admin stats")
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load statistics",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
			"stats": stats,
			"views": s.opts.Views.Len(),
		})
	})

	group.GET("/api/stats", func(c *gin.Context) {
		stats, err := s.stats(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	group.GET("/export/stats", func(c *gin.Context) {
		stats, err := s.stats(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		s.log.WithField("client", s.hashedClient(c)).Info("admin stats exported")
		c.JSON(http.StatusOK, stats)
	})

	group.POST("/privacy/cleanup", func(c *gin.Context) {
		if s.opts.Stats == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "analytics disabled"})
			return
		}
		n, err := s.opts.Stats.Cleanup(c.Request.Context(), s.opts.Retention)
		if err != nil {
			s.log.WithError(err).Error("privacy cleanup")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cleanup failed"})
			return
		}
		s.log.WithField("deleted", n).Info("privacy cleanup")
		c.JSON(http.StatusOK, gin.H{"deleted": n})
	})
}

func (s *Server) stats(c *gin.Context) (*analytics.Stats, error) {
	if s.opts.Stats == nil {
		return &analytics.Stats{TopLinks: []analytics.LinkStat{}, RecentVisitors: []analytics.Visit{}}, nil
	}
	return s.opts.Stats.Stats(c.Request.Context())
}
