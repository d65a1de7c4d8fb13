package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Ri-Verma/portfolio/internal/analytics"
	"github.com/Ri-Verma/portfolio/internal/contact"
	"github.com/Ri-Verma/portfolio/internal/content"
	"github.com/Ri-Verma/portfolio/internal/server"
	"github.com/Ri-Verma/portfolio/internal/session"
)

func newServeCmd(a *app) *cobra.Command {
	var images string

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serves the portfolio",
		Long: `The serve command starts the web server. Content comes from the bundled
defaults unless --content names a directory; with --watch that directory is
reloaded whenever it changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx, images)
		},
	}
	serveCmd.Flags().String("addr", "", "listen address (default is :$PORT)")
	serveCmd.Flags().String("content", "", "content directory (default is the bundled content)")
	serveCmd.Flags().Bool("watch", false, "reload content when files in the content directory change")
	serveCmd.Flags().StringVar(&images, "images", "images", "directory served under /images")
	return serveCmd
}

func (a *app) serve(ctx context.Context, images string) error {
	cfg := a.cfg

	site, err := content.NewStore(content.Source(cfg.Content))
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}

	store, err := analytics.Open(ctx, cfg.Database, "")
	if err != nil {
		return fmt.Errorf("open analytics: %w", err)
	}
	defer store.Close()

	rdb, err := a.openRedis(ctx, cfg.Redis.URL)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
	}

	var mailer contact.Mailer
	if m := contact.NewSMTPMailer(cfg.SMTP); m.Configured() {
		mailer = m
	} else {
		a.log.Warn("SMTP is not configured; the contact form will report an error")
	}

	views := session.NewRegistry(site, cfg.Views.TTL, a.log)
	views.SetLimit(cfg.Views.Max)
	go views.Run(ctx, cfg.Views.Sweep)

	if cfg.Watch {
		if cfg.Content == "" {
			a.log.Warn("--watch needs --content; bundled content is not watched")
		} else {
			go func() {
				if err := watchContent(ctx, cfg.Content, site.Reload, a.log); err != nil {
					a.log.WithError(err).Error("content watcher stopped")
				}
			}()
		}
	}

	if images != "" {
		if info, err := os.Stat(images); err != nil || !info.IsDir() {
			a.log.WithField("dir", images).Debug("images directory not found, not serving /images")
			images = ""
		}
	}

	srv, err := server.New(server.Options{
		Content: site,
		Views:   views,
		Tracker: store,
		Stats:   analytics.NewStatsCache(store, rdb, cfg.Redis.StatsTTL),
		Mailer:  mailer,
		Admin: server.AdminCredentials{
			Username: cfg.Admin.Username,
			Password: cfg.Admin.Password,
		},
		Retention: cfg.Retention,
		ImagesDir: images,
		Logger:    a.log,
	})
	if err != nil {
		return err
	}

	a.log.WithFields(logrus.Fields{
		"addr":     cfg.ListenAddr(),
		"projects": len(site.Site().Projects),
		"certs":    len(site.Site().Certificates),
	}).Info("serving portfolio")
	return srv.Run(ctx, cfg.ListenAddr())
}

// openRedis connects to url, or returns nil when url is empty. An
// unreachable server is logged and skipped.
func (a *app) openRedis(ctx context.Context, url string) (*redis.Client, error) {
	if url == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		a.log.WithError(err).Warn("redis unavailable, admin stats will not be cached")
		client.Close()
		return nil, nil
	}
	return client, nil
}
