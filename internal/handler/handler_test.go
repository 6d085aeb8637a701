// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"errors"
	"html"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/senatec-go/internal/auth"
	"github.com/olegiv/senatec-go/internal/contact"
	"github.com/olegiv/senatec-go/internal/i18n"
	"github.com/olegiv/senatec-go/internal/middleware"
	"github.com/olegiv/senatec-go/internal/model"
	"github.com/olegiv/senatec-go/internal/render"
	"github.com/olegiv/senatec-go/internal/session"
	"github.com/olegiv/senatec-go/internal/store"
	"github.com/olegiv/senatec-go/internal/testutil"
	"github.com/olegiv/senatec-go/web"
)

var errBackend = errors.New("backend down")

// fakeCatalog is an in-memory store.Catalog and store.EventLog with
// switchable failures.
type fakeCatalog struct {
	mu sync.Mutex

	courses      []model.Course
	posts        []model.BlogPost
	testimonials []model.Testimonial
	events       []model.Event

	failReads  bool
	failWrites bool

	patches map[string]store.CoursePatch
	deleted []string
	nextID  int
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{patches: make(map[string]store.CoursePatch)}
}

func (f *fakeCatalog) ListCourses(context.Context) ([]model.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failReads {
		return nil, errBackend
	}
	return append([]model.Course(nil), f.courses...), nil
}

func (f *fakeCatalog) GetCourse(_ context.Context, id string) (model.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.courses {
		if c.ID == id {
			return c, nil
		}
	}
	return model.Course{}, store.ErrNotFound
}

func (f *fakeCatalog) CreateCourse(_ context.Context, c model.Course) (model.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWrites {
		return model.Course{}, errBackend
	}
	f.nextID++
	c.ID = "new-" + strconv.Itoa(f.nextID)
	c.CreatedAt = time.Now()
	f.courses = append(f.courses, c)
	return c, nil
}

func (f *fakeCatalog) UpdateCourse(_ context.Context, id string, patch store.CoursePatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWrites {
		return errBackend
	}
	for i, c := range f.courses {
		if c.ID == id {
			f.courses[i] = patch.Apply(c)
			f.patches[id] = patch
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *fakeCatalog) DeleteCourse(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWrites {
		return errBackend
	}
	for i, c := range f.courses {
		if c.ID == id {
			f.courses = append(f.courses[:i:i], f.courses[i+1:]...)
			f.deleted = append(f.deleted, id)
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *fakeCatalog) ListPublishedBlogPosts(context.Context) ([]model.BlogPost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failReads {
		return nil, errBackend
	}
	return model.PublishedOnly(f.posts), nil
}

func (f *fakeCatalog) GetBlogPost(_ context.Context, id string) (model.BlogPost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failReads {
		return model.BlogPost{}, errBackend
	}
	for _, p := range f.posts {
		if p.ID == id {
			return p, nil
		}
	}
	return model.BlogPost{}, store.ErrNotFound
}

func (f *fakeCatalog) ListTestimonials(context.Context) ([]model.Testimonial, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failReads {
		return nil, errBackend
	}
	return append([]model.Testimonial(nil), f.testimonials...), nil
}

func (f *fakeCatalog) CreateEvent(_ context.Context, arg store.CreateEventParams) (model.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e := model.Event{ID: int64(len(f.events) + 1), Level: arg.Level, Category: arg.Category, Message: arg.Message, Metadata: arg.Metadata, CreatedAt: time.Now()}
	f.events = append(f.events, e)
	return e, nil
}

func (f *fakeCatalog) ListRecentEvents(_ context.Context, limit int) ([]model.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failReads {
		return nil, errBackend
	}
	if len(f.events) > limit {
		return f.events[:limit], nil
	}
	return f.events, nil
}

func (f *fakeCatalog) setFailReads(v bool) {
	f.mu.Lock()
	f.failReads = v
	f.mu.Unlock()
}

func (f *fakeCatalog) setFailWrites(v bool) {
	f.mu.Lock()
	f.failWrites = v
	f.mu.Unlock()
}

func testCourse(id, titleFR, category string, featured bool) model.Course {
	return model.Course{
		ID:            id,
		TitleFR:       titleFR,
		TitleEN:       titleFR + " EN",
		TitleAR:       titleFR + " AR",
		DescriptionFR: "Description " + titleFR,
		DescriptionEN: "Description EN " + titleFR,
		DescriptionAR: "وصف " + titleFR,
		Category:      category,
		Duration:      "3 mois",
		Price:         350,
		IsFeatured:    featured,
		CreatedAt:     time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
	}
}

// testEnv wires the handlers the way the server does, minus CSRF and the
// cache, over a fake catalog.
type testEnv struct {
	t       *testing.T
	catalog *fakeCatalog
	msgs    *i18n.Catalog
	router  http.Handler
	cookies map[string]*http.Cookie
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithProtection(t, nil)
}

// newProtectedTestEnv enables login protection with a three-failure
// lockout and a rate limit high enough to stay out of the way.
func newProtectedTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithProtection(t, middleware.NewLoginProtection(middleware.LoginProtectionConfig{
		IPRateLimit:       100,
		IPBurst:           100,
		MaxFailedAttempts: 3,
	}))
}

func newTestEnvWithProtection(t *testing.T, protection *middleware.LoginProtection) *testEnv {
	t.Helper()

	logger := testutil.TestLoggerSilent()
	fc := newFakeCatalog()

	msgs, err := i18n.NewCatalog(nil)
	require.NoError(t, err)

	sm := scs.New()
	manager := auth.NewManager(session.NewAuthStore(sm), auth.DefaultVerifier(), logger)

	templatesFS, err := fs.Sub(web.Templates, "templates")
	require.NoError(t, err)
	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sm,
		Links:          contact.NewLinks("", ""),
		Logger:         logger,
	})
	require.NoError(t, err)

	frontend := NewFrontendHandler(fc, renderer, logger, "")
	authH := NewAuthHandler(manager, protection, renderer, logger)
	admin := NewAdminHandler(fc, fc, renderer, logger)

	public := func(r chi.Router) {
		r.Get(RouteRoot, frontend.Home)
		r.Get(RouteContact, frontend.Contact)
		r.Post(RouteContact, frontend.ContactSubmit)
		r.Get(RouteBlogPost, frontend.BlogPost)
		r.Get(RouteParamPage, frontend.Page)
	}

	r := chi.NewRouter()
	r.Use(sm.LoadAndSave)
	r.Group(func(r chi.Router) {
		r.Use(middleware.Language(msgs))
		r.Use(middleware.LoadSession(manager))

		public(r)
		r.Route(RouteLangRoot, public)

		r.Get(RouteLogin, authH.LoginForm)
		r.With(protection.Middleware()).Post(RouteLogin, authH.Login)
		r.Post(RouteLogout, authH.Logout)

		r.Route(RouteAdmin, func(r chi.Router) {
			r.Use(middleware.RequireAdmin(manager))
			r.Get(RouteRoot, admin.Dashboard)
			r.Get("/events", admin.Events)
			r.Get("/courses"+RouteSuffixNew, admin.NewCourse)
			r.Post("/courses", admin.CreateCourse)
			r.Get("/courses"+RouteParamID, admin.EditCourse)
			r.Post("/courses"+RouteParamID, admin.UpdateCourse)
			r.Post("/courses"+RouteParamID+RouteSuffixDelete, admin.DeleteCourse)
		})
	})

	return &testEnv{
		t:       t,
		catalog: fc,
		msgs:    msgs,
		router:  r,
		cookies: make(map[string]*http.Cookie),
	}
}

// T translates key in lang.
func (e *testEnv) T(lang i18n.Language, key string) string {
	return e.msgs.Lookup(lang, key)
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	e.t.Helper()
	for _, c := range e.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		e.cookies[c.Name] = c
	}
	return rec
}

func (e *testEnv) get(target string) *httptest.ResponseRecorder {
	e.t.Helper()
	return e.do(httptest.NewRequest(http.MethodGet, target, nil))
}

func (e *testEnv) post(target string, form url.Values) *httptest.ResponseRecorder {
	e.t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.do(req)
}

func (e *testEnv) login() {
	e.t.Helper()
	rec := e.post(RouteLogin, url.Values{
		"username": {auth.DefaultUsername},
		"password": {auth.DefaultPassword},
	})
	require.Equal(e.t, http.StatusSeeOther, rec.Code)
}

// assertBody checks that body contains text as html/template escapes it.
func assertBody(t *testing.T, rec *httptest.ResponseRecorder, text string) {
	t.Helper()
	assert.Contains(t, rec.Body.String(), html.EscapeString(text))
}

// assertNotBody is the negation of assertBody.
func assertNotBody(t *testing.T, rec *httptest.ResponseRecorder, text string) {
	t.Helper()
	assert.NotContains(t, rec.Body.String(), html.EscapeString(text))
}
