package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// untracked paths never count as visits.
var untracked = []string{
	"/static/",
	"/images/",
	"/admin/",
	"/api/",
	"/out/",
	"/favicon",
	"/privacy",
}

func requestLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := log.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		})
		switch status := c.Writer.Status(); {
		case status >= 500:
			entry.Error("request")
		case status >= 400:
			entry.Warn("request")
		default:
			entry.Debug("request")
		}
	}
}

// trackVisits records page requests with a hashed client address. Requests
// sent with Do Not Track are skipped.
func (s *Server) trackVisits() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.opts.Tracker == nil || c.Request.Method != http.MethodGet || c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}
		path := c.Request.URL.Path
		for _, prefix := range untracked {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		ip, ua := c.ClientIP(), c.GetHeader("User-Agent")
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.opts.Tracker.RecordVisit(ctx, ip, ua, path); err != nil {
				s.log.WithError(err).Warn("record visit")
			}
		}()
		c.Next()
	}
}
