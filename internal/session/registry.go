// Package session keeps one live page model per browser tab. Each view runs
// on its own loop goroutine; the registry only maps ids to views.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Ri-Verma/portfolio/internal/content"
	"github.com/Ri-Verma/portfolio/internal/loop"
	"github.com/Ri-Verma/portfolio/internal/motion"
	"github.com/Ri-Verma/portfolio/internal/page"
)

const (
	// DefaultTTL is how long a view may stay idle before it is swept.
	DefaultTTL = 30 * time.Minute
	// DefaultLimit caps the number of views open at once.
	DefaultLimit = 1000
)

var (
	// ErrUnknownView is returned for ids that were never opened or have expired.
	ErrUnknownView = errors.New("unknown view")
	// ErrTooManyViews is returned by Open when the registry is full.
	ErrTooManyViews = errors.New("too many open views")
)

// SiteSource supplies the content a new view is built from.
type SiteSource interface {
	Site() *content.Site
}

// Init describes the page as the browser first sees it.
type Init struct {
	Width   float64
	Height  float64
	ScrollY float64
	Rects   map[string]page.Rect
	Motion  bool
}

// Result is what the browser applies after every event.
type Result struct {
	Intents []motion.Intent `json:"intents"`
	State   page.Snapshot   `json:"state"`
}

type entry struct {
	loop     *loop.Loop
	view     *page.View
	rec      *motion.Recorder
	lastSeen time.Time
}

func (e *entry) result() Result {
	res := Result{Intents: []motion.Intent{}, State: e.view.Snapshot()}
	if e.rec != nil {
		if in := e.rec.Drain(); len(in) > 0 {
			res.Intents = in
		}
	}
	return res
}

// Registry owns every open view.
type Registry struct {
	site SiteSource
	ttl  time.Duration
	log  *logrus.Logger
	now  func() time.Time

	mu      sync.Mutex
	views   map[string]*entry
	limit   int
	opening int
}

// NewRegistry returns an empty registry. A non-positive ttl selects
// DefaultTTL.
func NewRegistry(site SiteSource, ttl time.Duration, log *logrus.Logger) *Registry {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Registry{
		site:  site,
		ttl:   ttl,
		log:   log,
		now:   time.Now,
		views: make(map[string]*entry),
		limit: DefaultLimit,
	}
}

// SetLimit caps the number of open views. A non-positive n removes the cap.
func (r *Registry) SetLimit(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.limit = n
}

func (r *Registry) reserve() (limit int, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.limit > 0 && len(r.views)+r.opening >= r.limit {
		return r.limit, false
	}
	r.opening++
	return r.limit, true
}

// Open builds and mounts a view for in, returning its id and the intents
// produced while mounting.
func (r *Registry) Open(in Init) (string, Result, error) {
	if limit, ok := r.reserve(); !ok {
		r.log.WithField("limit", limit).Warn("view limit reached")
		return "", Result{}, ErrTooManyViews
	}

	id := uuid.NewString()
	layout := page.NewLayout(page.Viewport{ScrollY: in.ScrollY, Width: in.Width, Height: in.Height}, in.Rects)
	l := loop.New(context.Background(), loop.WithPanicHandler(func(v any) {
		r.drop(id, v)
	}))

	e := &entry{loop: l, lastSeen: r.now()}
	var engine motion.Engine = motion.Nop{}
	if in.Motion {
		e.rec = motion.NewRecorder(l, layout)
		engine = e.rec
	}
	e.view = page.NewView(r.site.Site(), layout, engine, l)

	var res Result
	if err := l.Do(func() {
		e.view.Mount()
		res = e.result()
	}); err != nil {
		l.Close()
		r.mu.Lock()
		r.opening--
		r.mu.Unlock()
		return "", Result{}, err
	}

	r.mu.Lock()
	r.opening--
	r.views[id] = e
	n := len(r.views)
	r.mu.Unlock()

	r.log.WithFields(logrus.Fields{
		"view":   id,
		"motion": in.Motion,
		"width":  in.Width,
		"open":   n,
	}).Debug("view opened")
	return id, res, nil
}

// drop forgets a view whose loop stopped after a panic.
func (r *Registry) drop(id string, v any) {
	r.log.WithFields(logrus.Fields{"view": id, "panic": v}).Error("view panicked, closing it")
	r.mu.Lock()
	delete(r.views, id)
	r.mu.Unlock()
}

// Do runs fn against the view on its loop and returns what changed.
func (r *Registry) Do(id string, fn func(v *page.View)) (Result, error) {
	r.mu.Lock()
	e, ok := r.views[id]
	if ok {
		e.lastSeen = r.now()
	}
	r.mu.Unlock()
	if !ok {
		return Result{}, ErrUnknownView
	}

	var res Result
	err := e.loop.Do(func() {
		fn(e.view)
		res = e.result()
	})
	if errors.Is(err, loop.ErrClosed) {
		return Result{}, ErrUnknownView
	}
	return res, err
}

// Close unmounts the view and stops its loop.
func (r *Registry) Close(id string) error {
	r.mu.Lock()
	e, ok := r.views[id]
	delete(r.views, id)
	r.mu.Unlock()
	if !ok {
		return ErrUnknownView
	}
	r.shutdown(e)
	r.log.WithField("view", id).Debug("view closed")
	return nil
}

func (r *Registry) shutdown(e *entry) {
	_ = e.loop.Do(e.view.Unmount)
	e.loop.Close()
}

// Sweep closes views idle since before now minus the TTL and reports how many
// were closed.
func (r *Registry) Sweep(now time.Time) int {
	cutoff := now.Add(-r.ttl)
	var expired []*entry

	r.mu.Lock()
	for id, e := range r.views {
		if e.lastSeen.Before(cutoff) {
			expired = append(expired, e)
			delete(r.views, id)
		}
	}
	r.mu.Unlock()

	for _, e := range expired {
		r.shutdown(e)
	}
	if len(expired) > 0 {
		r.log.WithField("closed", len(expired)).Info("swept idle views")
	}
	return len(expired)
}

// Len reports the number of open views.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.views)
}

// Run sweeps every interval until ctx is done, then closes all views.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			r.closeAll()
			return
		case <-ticker.C:
			r.Sweep(r.now())
		}
	}
}

func (r *Registry) closeAll() {
	r.mu.Lock()
	views := r.views
	r.views = make(map[string]*entry)
	r.mu.Unlock()
	for _, e := range views {
		r.shutdown(e)
	}
}
