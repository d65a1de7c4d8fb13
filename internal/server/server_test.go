package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ri-Verma/portfolio/internal/analytics"
	"github.com/Ri-Verma/portfolio/internal/contact"
	"github.com/Ri-Verma/portfolio/internal/content"
	"github.com/Ri-Verma/portfolio/internal/page"
	"github.com/Ri-Verma/portfolio/internal/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type visit struct{ ip, ua, path string }

type click struct{ kind, slug, url string }

type fakeTracker struct {
	mu     sync.Mutex
	visits []visit
	clicks []click
}

func (f *fakeTracker) RecordVisit(_ context.Context, ip, ua, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.visits = append(f.visits, visit{ip, ua, path})
	return nil
}

func (f *fakeTracker) RecordClick(_ context.Context, kind, slug, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clicks = append(f.clicks, click{kind, slug, url})
	return nil
}

func (f *fakeTracker) HashIP(ip string) string { return "hash-" + ip }

func (f *fakeTracker) visitCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.visits)
}

type fakeStats struct {
	stats   *analytics.Stats
	cleaned time.Duration
}

func (f *fakeStats) Stats(context.Context) (*analytics.Stats, error) { return f.stats, nil }

func (f *fakeStats) Cleanup(_ context.Context, d time.Duration) (int64, error) {
	f.cleaned = d
	return 3, nil
}

type fakeMailer struct {
	sent []contact.Message
	err  error
}

func (f *fakeMailer) Send(_ context.Context, m contact.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, m)
	return nil
}

type fixture struct {
	srv     *Server
	tracker *fakeTracker
	stats   *fakeStats
	mailer  *fakeMailer
	views   *session.Registry
}

func newFixture(t *testing.T, admin AdminCredentials) *fixture {
	t.Helper()
	store, err := content.NewStore(content.Defaults())
	require.NoError(t, err)
	logger, _ := test.NewNullLogger()

	views := session.NewRegistry(store, time.Minute, logger)
	t.Cleanup(func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		views.Run(ctx, time.Hour)
	})

	f := &fixture{
		tracker: &fakeTracker{},
		stats:   &fakeStats{stats: &analytics.Stats{TotalVisitors: 42, TopLinks: []analytics.LinkStat{}, RecentVisitors: []analytics.Visit{}}},
		mailer:  &fakeMailer{},
		views:   views,
	}
	f.srv, err = New(Options{
		Content:   store,
		Views:     views,
		Tracker:   f.tracker,
		Stats:     f.stats,
		Mailer:    f.mailer,
		Admin:     admin,
		Retention: 24 * time.Hour,
		Logger:    logger,
	})
	require.NoError(t, err)
	return f
}

func (f *fixture) do(method, target string, body string, header http.Header) *httptest.ResponseRecorder {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	for k, v := range header {
		r.Header[k] = v
	}
	w := httptest.NewRecorder()
	f.srv.Handler().ServeHTTP(w, r)
	return w
}

func jsonHeader() http.Header {
	return http.Header{"Content-Type": {"application/json"}}
}

func formHeader() http.Header {
	return http.Header{"Content-Type": {"application/x-www-form-urlencoded"}}
}

const openBody = `{"width":1280,"height":800,"scrollY":0,"motion":true,
	"rects":{"about":{"top":0,"height":800},"projects":{"top":800,"height":800},
	"certifications":{"top":1600,"height":800},"contact":{"top":2400,"height":800}}}`

type openResult struct {
	ID      string           `json:"id"`
	Intents []map[string]any `json:"intents"`
	State   page.Snapshot    `json:"state"`
}

func (f *fixture) open(t *testing.T) openResult {
	t.Helper()
	w := f.do(http.MethodPost, "/api/views", openBody, jsonHeader())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var res openResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.NotEmpty(t, res.ID)
	return res
}

func TestIndex(t *testing.T) {
	f := newFixture(t, AdminCredentials{})

	w := f.do(http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `id="card-project-learning-management-system"`)
	assert.Contains(t, body, `id="card-certificate-play-it-safe"`)
	assert.Contains(t, body, `href="/out/project/vehicle-rental-control-hub"`)
	assert.Contains(t, body, `id="about-avatar"`)
	for _, id := range page.Sections {
		assert.Contains(t, body, `data-section="`+id.String()+`"`)
	}

	assert.Eventually(t, func() bool { return f.tracker.visitCount() == 1 }, time.Second, 10*time.Millisecond)
}

var slideTag = regexp.MustCompile(`<div class="slide[^"]*"[^>]*>`)

func TestIndexSlidesCarryNoInlineStyling(t *testing.T) {
	f := newFixture(t, AdminCredentials{})

	body := f.do(http.MethodGet, "/", "", nil).Body.String()
	slides := slideTag.FindAllString(body, -1)
	require.Len(t, slides, 5)
	for _, tag := range slides {
		assert.NotContains(t, tag, "style=", tag)
	}
	assert.NotContains(t, body, "blur(")
	assert.NotContains(t, body, "opacity: 0")

	css := f.do(http.MethodGet, "/static/style.css", "", nil).Body.String()
	media := strings.Index(css, "@media (max-width: 768px)")
	require.NotEqual(t, -1, media)
	blur := strings.Index(css, "blur(2px)")
	require.NotEqual(t, -1, blur)
	assert.Greater(t, blur, media, "slide styling must only apply to the mobile layout")
}

func TestTrackingSkips(t *testing.T) {
	f := newFixture(t, AdminCredentials{})

	f.do(http.MethodGet, "/", "", http.Header{"Dnt": {"1"}})
	f.do(http.MethodGet, "/privacy", "", nil)
	f.do(http.MethodGet, "/static/app.js", "", nil)
	f.do(http.MethodGet, "/admin/login", "", nil)
	f.open(t)

	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, f.tracker.visitCount())
}

func TestStaticAssets(t *testing.T) {
	f := newFixture(t, AdminCredentials{})

	w := f.do(http.MethodGet, "/static/app.js", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/api/views")
}

func TestViewAPI(t *testing.T) {
	f := newFixture(t, AdminCredentials{})
	res := f.open(t)
	assert.Equal(t, page.About, res.State.Active)
	assert.NotEmpty(t, res.Intents)

	base := "/api/views/" + res.ID

	w := f.do(http.MethodPost, base+"/scroll", `{"y":900}`, jsonHeader())
	require.Equal(t, http.StatusOK, w.Code)
	var r session.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &r))
	assert.Equal(t, 900.0, r.State.ScrollY)
	assert.Equal(t, page.Sticky, r.State.Sections[page.Projects].Positioning)

	w = f.do(http.MethodPost, base+"/navigate/certifications", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &r))
	assert.True(t, r.State.Navigating)

	w = f.do(http.MethodPost, base+"/carousels/projects/touch", `{"phase":"start","x":300}`, jsonHeader())
	require.Equal(t, http.StatusOK, w.Code)
	f.do(http.MethodPost, base+"/carousels/projects/touch", `{"phase":"move","x":100}`, jsonHeader())
	w = f.do(http.MethodPost, base+"/carousels/projects/touch", `{"phase":"end"}`, jsonHeader())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &r))
	assert.Equal(t, 1, r.State.Carousels[content.KindProject].Index)

	w = f.do(http.MethodPost, base+"/cards/card-project-learning-management-system/hover", `{"entered":true}`, jsonHeader())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"hover"`)

	w = f.do(http.MethodPost, base+"/about/expand", "", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &r))
	assert.True(t, r.State.About.Expanded)

	w = f.do(http.MethodPost, base+"/menu", "", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &r))
	assert.True(t, r.State.MenuOpen)

	w = f.do(http.MethodPost, base+"/resize", `{"width":600,"height":900}`, jsonHeader())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &r))
	assert.Equal(t, page.Mobile, r.State.Class)

	w = f.do(http.MethodPost, base+"/layout", `{"rects":{"contact":{"top":2500,"height":900}}}`, jsonHeader())
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.do(http.MethodDelete, base, "", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = f.do(http.MethodPost, base+"/scroll", `{"y":0}`, jsonHeader())
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestViewAPIUnknownTargetsAreNoops(t *testing.T) {
	f := newFixture(t, AdminCredentials{})
	res := f.open(t)
	base := "/api/views/" + res.ID

	for _, path := range []string{
		base + "/navigate/blog",
		base + "/carousels/blog/touch",
		base + "/cards/card-project-nope/hover",
	} {
		body := `{"phase":"end","entered":true}`
		w := f.do(http.MethodPost, path, body, jsonHeader())
		require.Equal(t, http.StatusOK, w.Code, path)
		var r session.Result
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &r))
		assert.Empty(t, r.Intents, path)
		assert.False(t, r.State.Navigating)
	}
}

func TestViewAPIErrors(t *testing.T) {
	f := newFixture(t, AdminCredentials{})

	w := f.do(http.MethodPost, "/api/views", `{"width":0}`, jsonHeader())
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(http.MethodPost, "/api/views/nope/scroll", `{"y":10}`, jsonHeader())
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(http.MethodDelete, "/api/views/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	res := f.open(t)
	w = f.do(http.MethodPost, "/api/views/"+res.ID+"/scroll", `{"y":"far"}`, jsonHeader())
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = f.do(http.MethodPost, "/api/views/"+res.ID+"/carousels/projects/touch", `{"phase":"pinch"}`, jsonHeader())
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOpenViewRejectedWhenFull(t *testing.T) {
	f := newFixture(t, AdminCredentials{})
	f.views.SetLimit(3)

	for i := 0; i < 3; i++ {
		f.open(t)
	}
	w := f.do(http.MethodPost, "/api/views", openBody, jsonHeader())
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, 3, f.views.Len())
}

func TestOutbound(t *testing.T) {
	f := newFixture(t, AdminCredentials{})

	w := f.do(http.MethodGet, "/out/project/learning-management-system", "", nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://github.com/Ri-Verma/Learning-management-system", w.Header().Get("Location"))
	require.Len(t, f.tracker.clicks, 1)
	assert.Equal(t, click{"project", "learning-management-system", "https://github.com/Ri-Verma/Learning-management-system"}, f.tracker.clicks[0])

	w = f.do(http.MethodGet, "/out/certifications/play-it-safe", "", http.Header{"Dnt": {"1"}})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Len(t, f.tracker.clicks, 1)

	assert.Equal(t, http.StatusNotFound, f.do(http.MethodGet, "/out/project/missing", "", nil).Code)
	assert.Equal(t, http.StatusNotFound, f.do(http.MethodGet, "/out/blog/anything", "", nil).Code)
}

func TestContact(t *testing.T) {
	f := newFixture(t, AdminCredentials{})

	w := f.do(http.MethodGet, "/contact-form", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `name="fullName"`)

	form := url.Values{"fullName": {"Ada"}, "email": {"ada@example.com"}, "message": {"Hello there"}}
	w = f.do(http.MethodPost, "/contact", form.Encode(), formHeader())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Thank you for your message")
	require.Len(t, f.mailer.sent, 1)
	assert.Equal(t, "Ada", f.mailer.sent[0].Name)

	form.Set("email", "nope")
	w = f.do(http.MethodPost, "/contact", form.Encode(), formHeader())
	assert.Contains(t, w.Body.String(), "valid email")
	assert.Len(t, f.mailer.sent, 1)

	f.mailer.err = errors.New("smtp down")
	form.Set("email", "ada@example.com")
	w = f.do(http.MethodPost, "/contact", form.Encode(), formHeader())
	assert.Contains(t, w.Body.String(), "error sending your message")
}

func TestPrivacy(t *testing.T) {
	f := newFixture(t, AdminCredentials{})

	w := f.do(http.MethodGet, "/privacy", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Do Not Track")
}

func loginCookie(t *testing.T, f *fixture, user, pass string) *http.Cookie {
	t.Helper()
	form := url.Values{"username": {user}, "password": {pass}}
	w := f.do(http.MethodPost, "/admin/login", form.Encode(), formHeader())
	require.Equal(t, http.StatusFound, w.Code, w.Body.String())
	assert.Equal(t, "/admin/dashboard", w.Header().Get("Location"))
	for _, c := range w.Result().Cookies() {
		if c.Name == adminCookie {
			return c
		}
	}
	t.Fatal("no admin cookie set")
	return nil
}

func TestAdmin(t *testing.T) {
	f := newFixture(t, AdminCredentials{Username: "admin", Password: "s3cret"})

	w := f.do(http.MethodGet, "/admin/dashboard", "", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/login", w.Header().Get("Location"))

	form := url.Values{"username": {"admin"}, "password": {"wrong"}}
	w = f.do(http.MethodPost, "/admin/login", form.Encode(), formHeader())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")

	cookie := loginCookie(t, f, "admin", "s3cret")
	auth := http.Header{"Cookie": {cookie.String()}}

	w = f.do(http.MethodGet, "/admin/dashboard", "", auth)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<strong>42</strong> visits")

	w = f.do(http.MethodGet, "/admin/api/stats", "", auth)
	require.Equal(t, http.StatusOK, w.Code)
	var stats analytics.Stats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.EqualValues(t, 42, stats.TotalVisitors)

	w = f.do(http.MethodGet, "/admin/export/stats", "", auth)
	assert.Equal(t, "attachment; filename=admin-stats.json", w.Header().Get("Content-Disposition"))

	w = f.do(http.MethodPost, "/admin/privacy/cleanup", "", auth)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"deleted":3}`, w.Body.String())
	assert.Equal(t, 24*time.Hour, f.stats.cleaned)

	w = f.do(http.MethodGet, "/admin/api/stats", "", http.Header{"Cookie": {adminCookie + "=forged"}})
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestAdminDisabledWithoutPassword(t *testing.T) {
	f := newFixture(t, AdminCredentials{Username: "admin"})

	w := f.do(http.MethodGet, "/admin/login", "", nil)
	assert.Contains(t, w.Body.String(), "Admin login is disabled")

	form := url.Values{"username": {"admin"}, "password": {""}}
	w = f.do(http.MethodPost, "/admin/login", form.Encode(), formHeader())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
