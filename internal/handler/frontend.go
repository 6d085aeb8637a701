// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/senatec-go/internal/contact"
	"github.com/olegiv/senatec-go/internal/i18n"
	"github.com/olegiv/senatec-go/internal/middleware"
	"github.com/olegiv/senatec-go/internal/model"
	"github.com/olegiv/senatec-go/internal/render"
	"github.com/olegiv/senatec-go/internal/site"
	"github.com/olegiv/senatec-go/internal/store"
)

// FrontendHandler serves the public pages.
type FrontendHandler struct {
	catalog  store.Catalog
	renderer *render.Renderer
	logger   *slog.Logger
	whatsApp string
}

// NewFrontendHandler creates a new FrontendHandler. whatsApp is the number
// contact messages are forwarded to.
func NewFrontendHandler(catalog store.Catalog, renderer *render.Renderer, logger *slog.Logger, whatsApp string) *FrontendHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if whatsApp == "" {
		whatsApp = contact.DefaultWhatsAppNumber
	}
	return &FrontendHandler{
		catalog:  catalog,
		renderer: renderer,
		logger:   logger,
		whatsApp: whatsApp,
	}
}

// HomeData is the landing page payload.
type HomeData struct {
	Featured     []model.Course
	Testimonials []model.Testimonial
}

// CoursesData is the course catalog payload.
type CoursesData struct {
	Courses    []model.Course
	Category   string
	Categories []string
}

// BlogData is the blog list payload.
type BlogData struct {
	Posts []model.BlogPost
	Query string
}

// BlogPostData is the single post payload.
type BlogPostData struct {
	Post model.BlogPost
}

// ContactData is the contact page payload.
type ContactData struct {
	Form    contact.Message
	Courses []model.Course
}

// Home handles GET / and GET /{lang}.
func (h *FrontendHandler) Home(w http.ResponseWriter, r *http.Request) {
	data := render.TemplateData{Page: site.Home}
	home := HomeData{}

	courses, err := h.catalog.ListCourses(r.Context())
	if err != nil {
		h.logLoadError("courses", err)
		data.LoadFailed = true
	} else {
		home.Featured = model.FeaturedCourses(courses)
	}

	testimonials, err := h.catalog.ListTestimonials(r.Context())
	if err != nil {
		h.logLoadError("testimonials", err)
		data.LoadFailed = true
	} else {
		home.Testimonials = model.FirstTestimonials(testimonials, model.HomeTestimonialLimit)
	}

	data.Title = middleware.GetLanguage(r).T("nav.home")
	data.Data = home
	renderPage(w, r, h.renderer, h.logger, http.StatusOK, "pages/home", data)
}

// Page handles GET /{page}. Unknown page names render the landing page.
func (h *FrontendHandler) Page(w http.ResponseWriter, r *http.Request) {
	lang := langOf(r)

	switch site.ParsePage(chi.URLParam(r, "page")) {
	case site.About:
		h.About(w, r)
	case site.Courses:
		h.Courses(w, r)
	case site.Blog:
		h.Blog(w, r)
	case site.Contact:
		h.Contact(w, r)
	case site.Login:
		http.Redirect(w, r, withLang(RouteLogin, lang), http.StatusSeeOther)
	case site.Admin:
		http.Redirect(w, r, withLang(RouteAdmin, lang), http.StatusSeeOther)
	default:
		h.Home(w, r)
	}
}

// About handles GET /about.
func (h *FrontendHandler) About(w http.ResponseWriter, r *http.Request) {
	data := render.TemplateData{
		Page:  site.About,
		Title: middleware.GetLanguage(r).T("nav.about"),
	}
	renderPage(w, r, h.renderer, h.logger, http.StatusOK, "pages/about", data)
}

// Courses handles GET /courses. The category query parameter filters the
// list; an empty store shows the built-in catalog.
func (h *FrontendHandler) Courses(w http.ResponseWriter, r *http.Request) {
	data := render.TemplateData{
		Page:  site.Courses,
		Title: middleware.GetLanguage(r).T("nav.courses"),
	}

	category := strings.TrimSpace(r.URL.Query().Get("category"))
	if category == "" {
		category = model.CategoryAll
	}

	courses, failed := h.courses(r.Context())
	data.LoadFailed = failed
	data.Data = CoursesData{
		Courses:    model.FilterByCategory(courses, category),
		Category:   category,
		Categories: append([]string{model.CategoryAll}, model.Categories...),
	}
	renderPage(w, r, h.renderer, h.logger, http.StatusOK, "pages/courses", data)
}

// Blog handles GET /blog. The q query parameter searches titles and
// excerpts in the request language.
func (h *FrontendHandler) Blog(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)
	data := render.TemplateData{
		Page:  site.Blog,
		Title: lang.T("nav.blog"),
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	posts, failed := h.posts(r.Context())
	data.LoadFailed = failed
	data.Data = BlogData{
		Posts: model.SearchPosts(posts, lang.Language(), query),
		Query: query,
	}
	renderPage(w, r, h.renderer, h.logger, http.StatusOK, "pages/blog", data)
}

// BlogPost handles GET /blog/{id}.
func (h *FrontendHandler) BlogPost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	post, err := h.catalog.GetBlogPost(r.Context(), id)
	if err != nil {
		sample, ok := samplePost(id)
		switch {
		case ok:
			post = sample
		case errors.Is(err, store.ErrNotFound):
			h.NotFound(w, r)
			return
		default:
			h.logLoadError("blog post", err, "id", id)
			h.NotFound(w, r)
			return
		}
	}
	if !post.Published {
		h.NotFound(w, r)
		return
	}

	data := render.TemplateData{
		Page:  site.Blog,
		Title: post.Title(langOf(r)),
		Data:  BlogPostData{Post: post},
	}
	renderPage(w, r, h.renderer, h.logger, http.StatusOK, "pages/blog_post", data)
}

// Contact handles GET /contact.
func (h *FrontendHandler) Contact(w http.ResponseWriter, r *http.Request) {
	h.renderContact(w, r, http.StatusOK, contact.Message{}, nil)
}

// ContactSubmit handles POST /contact. A complete message is forwarded to
// WhatsApp by redirecting to the prefilled chat URL.
func (h *FrontendHandler) ContactSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	msg := contact.ParseMessage(r.PostForm)
	if err := msg.Validate(); err != nil {
		lang := middleware.GetLanguage(r)
		h.renderContact(w, r, http.StatusUnprocessableEntity, msg, map[string]string{
			"form": lang.T("contact.form.required"),
		})
		return
	}

	h.logger.Info("contact message forwarded to whatsapp", "course", msg.Course)
	http.Redirect(w, r, contact.WhatsAppURL(h.whatsApp, msg.Text()), http.StatusSeeOther)
}

// NotFound renders the 404 page.
func (h *FrontendHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	data := render.TemplateData{
		Title: middleware.GetLanguage(r).T("common.not_found"),
	}
	renderPage(w, r, h.renderer, h.logger, http.StatusNotFound, "pages/not_found", data)
}

func (h *FrontendHandler) renderContact(w http.ResponseWriter, r *http.Request, status int, form contact.Message, errs map[string]string) {
	courses, _ := h.courses(r.Context())
	data := render.TemplateData{
		Page:   site.Contact,
		Title:  middleware.GetLanguage(r).T("nav.contact"),
		Errors: errs,
		Data:   ContactData{Form: form, Courses: courses},
	}
	renderPage(w, r, h.renderer, h.logger, status, "pages/contact", data)
}

// courses loads the course list, substituting the built-in catalog when
// the store has no rows. failed reports a load error.
func (h *FrontendHandler) courses(ctx context.Context) (courses []model.Course, failed bool) {
	courses, err := h.catalog.ListCourses(ctx)
	if err != nil {
		h.logLoadError("courses", err)
		return nil, true
	}
	if len(courses) == 0 {
		return model.SampleCourses(), false
	}
	return courses, false
}

// posts loads the published posts, substituting the built-in articles
// when the store has none.
func (h *FrontendHandler) posts(ctx context.Context) (posts []model.BlogPost, failed bool) {
	posts, err := h.catalog.ListPublishedBlogPosts(ctx)
	if err != nil {
		h.logLoadError("blog posts", err)
		return nil, true
	}
	if len(posts) == 0 {
		return model.SamplePosts(), false
	}
	return posts, false
}

func (h *FrontendHandler) logLoadError(what string, err error, args ...any) {
	args = append([]any{"category", model.EventCategoryCatalog, "what", what, "error", err}, args...)
	h.logger.Error("failed to load catalog data", args...)
}

func samplePost(id string) (model.BlogPost, bool) {
	for _, p := range model.SamplePosts() {
		if p.ID == id {
			return p, true
		}
	}
	return model.BlogPost{}, false
}

// langOf is a shorthand for the request language.
func langOf(r *http.Request) i18n.Language {
	return middleware.GetLanguage(r).Language()
}
