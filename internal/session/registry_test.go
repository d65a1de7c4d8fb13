package session

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ri-Verma/portfolio/internal/content"
	"github.com/Ri-Verma/portfolio/internal/loop"
	"github.com/Ri-Verma/portfolio/internal/motion"
	"github.com/Ri-Verma/portfolio/internal/page"
)

type staticSite struct{ site *content.Site }

func (s staticSite) Site() *content.Site { return s.site }

func newRegistry(t *testing.T) *Registry {
	t.Helper()
	site, err := content.Load(content.Defaults())
	require.NoError(t, err)
	logger, _ := test.NewNullLogger()
	r := NewRegistry(staticSite{site}, time.Minute, logger)
	t.Cleanup(func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		r.Run(ctx, time.Hour)
	})
	return r
}

func stacked() map[string]page.Rect {
	rects := map[string]page.Rect{}
	for i, id := range page.Sections {
		rects[id.String()] = page.Rect{Top: float64(i) * 800, Height: 800}
	}
	return rects
}

func TestOpenMountsView(t *testing.T) {
	r := newRegistry(t)

	id, res, err := r.Open(Init{Width: 1280, Height: 800, Rects: stacked(), Motion: true})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, 1, r.Len())

	var registered int
	for _, in := range res.Intents {
		if in.Name == motion.Register {
			registered++
		}
	}
	assert.GreaterOrEqual(t, registered, len(page.Sections))
	assert.Equal(t, page.About, res.State.Active)
	assert.Equal(t, page.Desktop, res.State.Class)
	assert.Equal(t, page.Sticky, res.State.Sections[page.About].Positioning)
}

func TestOpenWithoutMotionSendsNoIntents(t *testing.T) {
	r := newRegistry(t)

	id, res, err := r.Open(Init{Width: 375, Height: 800, Rects: stacked()})
	require.NoError(t, err)
	assert.Empty(t, res.Intents)

	res, err = r.Do(id, func(v *page.View) { v.ExpandAbout() })
	require.NoError(t, err)
	assert.Empty(t, res.Intents)
	assert.True(t, res.State.About.Complete)
}

func TestDoDrainsIntents(t *testing.T) {
	r := newRegistry(t)
	id, _, err := r.Open(Init{Width: 1280, Height: 800, Rects: stacked(), Motion: true})
	require.NoError(t, err)

	res, err := r.Do(id, func(v *page.View) { v.Navigate("projects") })
	require.NoError(t, err)
	require.NotEmpty(t, res.Intents)
	assert.True(t, res.State.Navigating)

	res, err = r.Do(id, func(*page.View) {})
	require.NoError(t, err)
	assert.Empty(t, res.Intents)
}

func TestNavigationCompletesOnLoop(t *testing.T) {
	r := newRegistry(t)
	id, _, err := r.Open(Init{Width: 1280, Height: 800, Rects: stacked(), Motion: true})
	require.NoError(t, err)

	_, err = r.Do(id, func(v *page.View) { v.Navigate("contact") })
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		res, err := r.Do(id, func(*page.View) {})
		return err == nil && !res.State.Navigating && res.State.Active == page.Contact
	}, 5*time.Second, 50*time.Millisecond)

	res, err := r.Do(id, func(*page.View) {})
	require.NoError(t, err)
	assert.Equal(t, 2320.0, res.State.ScrollY)
}

func TestUnknownView(t *testing.T) {
	r := newRegistry(t)

	_, err := r.Do("missing", func(*page.View) {})
	assert.ErrorIs(t, err, ErrUnknownView)
	assert.ErrorIs(t, r.Close("missing"), ErrUnknownView)
}

func TestClose(t *testing.T) {
	r := newRegistry(t)
	id, _, err := r.Open(Init{Width: 1280, Height: 800, Rects: stacked(), Motion: true})
	require.NoError(t, err)

	require.NoError(t, r.Close(id))
	assert.Zero(t, r.Len())
	_, err = r.Do(id, func(*page.View) {})
	assert.ErrorIs(t, err, ErrUnknownView)
}

func TestSweepClosesIdleViews(t *testing.T) {
	r := newRegistry(t)
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	clock := start
	r.now = func() time.Time { return clock }

	stale, _, err := r.Open(Init{Width: 1280, Height: 800, Rects: stacked()})
	require.NoError(t, err)
	clock = start.Add(45 * time.Second)
	fresh, _, err := r.Open(Init{Width: 1280, Height: 800, Rects: stacked()})
	require.NoError(t, err)

	assert.Zero(t, r.Sweep(start.Add(30*time.Second)))
	assert.Equal(t, 1, r.Sweep(start.Add(90*time.Second)))

	_, err = r.Do(stale, func(*page.View) {})
	assert.ErrorIs(t, err, ErrUnknownView)
	_, err = r.Do(fresh, func(*page.View) {})
	assert.NoError(t, err)
}

func TestRunClosesViewsOnCancel(t *testing.T) {
	site, err := content.Load(content.Defaults())
	require.NoError(t, err)
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	r := NewRegistry(staticSite{site}, time.Minute, logger)

	_, _, err = r.Open(Init{Width: 1280, Height: 800, Rects: stacked()})
	require.NoError(t, err)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "view opened", hook.LastEntry().Message)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx, time.Hour)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return")
	}
	assert.Zero(t, r.Len())
}

func TestOpenEnforcesLimit(t *testing.T) {
	r := newRegistry(t)
	r.SetLimit(2)

	first, _, err := r.Open(Init{Width: 1280, Height: 800, Rects: stacked()})
	require.NoError(t, err)
	_, _, err = r.Open(Init{Width: 1280, Height: 800, Rects: stacked()})
	require.NoError(t, err)

	_, _, err = r.Open(Init{Width: 1280, Height: 800, Rects: stacked()})
	assert.ErrorIs(t, err, ErrTooManyViews)
	assert.Equal(t, 2, r.Len())

	require.NoError(t, r.Close(first))
	_, _, err = r.Open(Init{Width: 1280, Height: 800, Rects: stacked()})
	assert.NoError(t, err)
}

func TestDefaultLimit(t *testing.T) {
	r := newRegistry(t)
	assert.Equal(t, DefaultLimit, r.limit)

	r.SetLimit(0)
	for i := 0; i < 3; i++ {
		_, _, err := r.Open(Init{Width: 1280, Height: 800})
		require.NoError(t, err)
	}
	assert.Equal(t, 3, r.Len())
}

func TestPanickingViewIsDropped(t *testing.T) {
	site, err := content.Load(content.Defaults())
	require.NoError(t, err)
	logger, hook := test.NewNullLogger()
	r := NewRegistry(staticSite{site}, time.Minute, logger)
	t.Cleanup(func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		r.Run(ctx, time.Hour)
	})

	id, _, err := r.Open(Init{Width: 1280, Height: 800, Rects: stacked()})
	require.NoError(t, err)
	other, _, err := r.Open(Init{Width: 1280, Height: 800, Rects: stacked()})
	require.NoError(t, err)

	_, err = r.Do(id, func(*page.View) { panic("bad state") })
	assert.ErrorIs(t, err, loop.ErrPanicked)

	require.Eventually(t, func() bool { return r.Len() == 1 }, time.Second, 10*time.Millisecond)
	_, err = r.Do(id, func(*page.View) {})
	assert.ErrorIs(t, err, ErrUnknownView)
	_, err = r.Do(other, func(*page.View) {})
	assert.NoError(t, err)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Equal(t, "bad state", entry.Data["panic"])
	assert.Equal(t, id, entry.Data["view"])
}
