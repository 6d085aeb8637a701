// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/senatec-go/internal/editor"
	"github.com/olegiv/senatec-go/internal/i18n"
	"github.com/olegiv/senatec-go/internal/middleware"
	"github.com/olegiv/senatec-go/internal/model"
	"github.com/olegiv/senatec-go/internal/render"
	"github.com/olegiv/senatec-go/internal/site"
	"github.com/olegiv/senatec-go/internal/store"
)

// AdminHandler serves the admin dashboard and the course editor. Each
// request drives a fresh editor.Editor loaded from the repository.
type AdminHandler struct {
	repo     editor.CourseRepository
	events   store.EventLog
	renderer *render.Renderer
	logger   *slog.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(repo editor.CourseRepository, events store.EventLog, renderer *render.Renderer, logger *slog.Logger) *AdminHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminHandler{
		repo:     repo,
		events:   events,
		renderer: renderer,
		logger:   logger,
	}
}

// AdminData is the dashboard payload.
type AdminData struct {
	Tab        string
	Tabs       []string
	Courses    []model.Course
	State      editor.State
	EditingID  string
	Form       editor.CourseForm
	FormAction string
	Categories []string
	Events     []model.Event
}

// FormOpen reports whether the course form is shown.
func (d AdminData) FormOpen() bool {
	return d.State != editor.Idle
}

// Dashboard handles GET /admin. The tab query parameter selects the
// section; only courses are editable.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	tab := r.URL.Query().Get("tab")
	switch tab {
	case TabBlog, TabTestimonials:
		h.renderTab(w, r, tab)
		return
	}

	ed := h.newEditor()
	_ = ed.Load(r.Context())
	h.renderEditor(w, r, http.StatusOK, ed, nil)
}

// NewCourse handles GET /admin/courses/new.
func (h *AdminHandler) NewCourse(w http.ResponseWriter, r *http.Request) {
	ed := h.newEditor()
	_ = ed.Load(r.Context())
	ed.StartCreate()
	h.renderEditor(w, r, http.StatusOK, ed, nil)
}

// EditCourse handles GET /admin/courses/{id}.
func (h *AdminHandler) EditCourse(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)
	ed, ok := h.loadForEdit(w, r, lang)
	if !ok {
		return
	}
	h.renderEditor(w, r, http.StatusOK, ed, nil)
}

// CreateCourse handles POST /admin/courses.
func (h *AdminHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	ed := h.newEditor()
	_ = ed.Load(r.Context())
	ed.StartCreate()
	h.submit(w, r, ed, "admin.course.created")
}

// UpdateCourse handles POST /admin/courses/{id}.
func (h *AdminHandler) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	lang := middleware.GetLanguage(r)
	ed, ok := h.loadForEdit(w, r, lang)
	if !ok {
		return
	}
	h.submit(w, r, ed, "admin.course.updated")
}

// DeleteCourse handles POST /admin/courses/{id}/delete.
func (h *AdminHandler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)
	back := withLang(RouteAdmin, lang.Language())
	id := chi.URLParam(r, "id")

	ed := h.newEditor()
	if err := ed.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			flashError(w, r, h.renderer, back, lang.T("admin.course.not_found"))
			return
		}
		flashError(w, r, h.renderer, back, lang.T("admin.course.error_delete"))
		return
	}
	flashSuccess(w, r, h.renderer, back, lang.T("admin.course.deleted"))
}

// Events handles GET /admin/events.
func (h *AdminHandler) Events(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)
	data := render.TemplateData{
		Page:  site.Admin,
		Title: lang.T("admin.events.title"),
	}

	events, err := h.events.ListRecentEvents(r.Context(), recentEventsLimit)
	if err != nil {
		h.logger.Error("failed to list events", "category", model.EventCategorySystem, "error", err)
		data.LoadFailed = true
	}
	data.Data = AdminData{Tab: TabEvents, Tabs: adminTabs(), Events: events}
	renderPage(w, r, h.renderer, h.logger, http.StatusOK, "admin/events", data)
}

// submit reads the posted form into ed and writes it. Invalid input and
// store failures keep the form open with the submitted values.
func (h *AdminHandler) submit(w http.ResponseWriter, r *http.Request, ed *editor.Editor, successKey string) {
	lang := middleware.GetLanguage(r)

	form, err := editor.ParseCourseForm(r.PostForm)
	ed.SetForm(form)
	if err == nil {
		err = ed.Submit(r.Context())
	}
	if err == nil {
		flashSuccess(w, r, h.renderer, withLang(RouteAdmin, lang.Language()), lang.T(successKey))
		return
	}

	var ve *editor.ValidationError
	if errors.As(err, &ve) {
		errs := ve.Messages(lang.Language())
		errs["form"] = lang.T("admin.form.invalid")
		h.renderEditor(w, r, http.StatusUnprocessableEntity, ed, errs)
		return
	}

	h.renderEditorFlash(w, r, http.StatusInternalServerError, ed, lang.T("admin.course.error_save"))
}

// loadForEdit loads the list and opens the form for the {id} course.
// It redirects back to the dashboard when the course is not listed.
func (h *AdminHandler) loadForEdit(w http.ResponseWriter, r *http.Request, lang *i18n.Context) (*editor.Editor, bool) {
	back := withLang(RouteAdmin, lang.Language())

	ed := h.newEditor()
	if err := ed.Load(r.Context()); err != nil {
		flashError(w, r, h.renderer, back, lang.T("common.load_failed"))
		return nil, false
	}
	if err := ed.StartEdit(chi.URLParam(r, "id")); err != nil {
		flashError(w, r, h.renderer, back, lang.T("admin.course.not_found"))
		return nil, false
	}
	return ed, true
}

func (h *AdminHandler) newEditor() *editor.Editor {
	return editor.New(h.repo, h.logger)
}

func (h *AdminHandler) renderEditor(w http.ResponseWriter, r *http.Request, status int, ed *editor.Editor, errs map[string]string) {
	h.renderEditorData(w, r, status, h.editorData(r, ed, errs))
}

func (h *AdminHandler) renderEditorFlash(w http.ResponseWriter, r *http.Request, status int, ed *editor.Editor, message string) {
	data := h.editorData(r, ed, nil)
	data.Flash = message
	data.FlashType = render.FlashError
	h.renderEditorData(w, r, status, data)
}

func (h *AdminHandler) renderEditorData(w http.ResponseWriter, r *http.Request, status int, data render.TemplateData) {
	renderPage(w, r, h.renderer, h.logger, status, "admin/dashboard", data)
}

func (h *AdminHandler) editorData(r *http.Request, ed *editor.Editor, errs map[string]string) render.TemplateData {
	admin := AdminData{
		Tab:        TabCourses,
		Tabs:       adminTabs(),
		Courses:    ed.Courses(),
		State:      ed.State(),
		EditingID:  ed.EditingID(),
		Form:       ed.Form(),
		Categories: model.Categories,
	}
	switch ed.State() {
	case editor.Creating:
		admin.FormAction = RouteAdminCourses
	case editor.Editing:
		admin.FormAction = RouteAdminCourses + "/" + ed.EditingID()
	}
	if admin.FormAction != "" {
		admin.FormAction = withLang(admin.FormAction, langOf(r))
	}

	return render.TemplateData{
		Page:       site.Admin,
		Title:      middleware.GetLanguage(r).T("admin.title"),
		LoadFailed: ed.LoadErr() != nil,
		Errors:     errs,
		Data:       admin,
	}
}

func (h *AdminHandler) renderTab(w http.ResponseWriter, r *http.Request, tab string) {
	data := render.TemplateData{
		Page:  site.Admin,
		Title: middleware.GetLanguage(r).T("admin.title"),
		Data:  AdminData{Tab: tab, Tabs: adminTabs()},
	}
	renderPage(w, r, h.renderer, h.logger, http.StatusOK, "admin/dashboard", data)
}

func adminTabs() []string {
	return []string{TabCourses, TabBlog, TabTestimonials}
}
