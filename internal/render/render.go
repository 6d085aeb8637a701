// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package render executes the site's html/template pages.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/senatec-go/internal/auth"
	"github.com/olegiv/senatec-go/internal/contact"
	"github.com/olegiv/senatec-go/internal/i18n"
	"github.com/olegiv/senatec-go/internal/middleware"
	"github.com/olegiv/senatec-go/internal/site"
)

// Session keys used for flash messages.
const (
	SessionKeyFlash     = "flash"
	SessionKeyFlashType = "flash_type"
)

// Flash types.
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashInfo    = "info"
)

// Template directories. Each page template is parsed together with the
// base layout and every partial.
var templateDirs = []string{"pages", "auth", "admin"}

const baseLayout = "layouts/base.html"

// Renderer handles template rendering.
type Renderer struct {
	templates      map[string]*template.Template
	sessionManager *scs.SessionManager
	links          contact.Links
	logger         *slog.Logger
}

// Config holds renderer configuration.
type Config struct {
	TemplatesFS    fs.FS
	SessionManager *scs.SessionManager
	Links          contact.Links
	Logger         *slog.Logger
}

// New creates a new Renderer with parsed templates.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		templates:      make(map[string]*template.Template),
		sessionManager: cfg.SessionManager,
		links:          cfg.Links,
		logger:         cfg.Logger,
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}

	if err := r.parseTemplates(cfg.TemplatesFS); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Renderer) parseTemplates(templatesFS fs.FS) error {
	partials, err := templateFiles(templatesFS, "partials")
	if err != nil {
		return fmt.Errorf("getting partials: %w", err)
	}

	for _, dir := range templateDirs {
		pages, err := templateFiles(templatesFS, dir)
		if err != nil {
			return fmt.Errorf("getting %s templates: %w", dir, err)
		}
		for _, tmplPath := range pages {
			name := dir + "/" + strings.TrimSuffix(path.Base(tmplPath), ".html")

			files := append([]string{baseLayout}, partials...)
			files = append(files, tmplPath)

			tmpl, err := template.New("").Funcs(TemplateFuncs()).ParseFS(templatesFS, files...)
			if err != nil {
				return fmt.Errorf("parsing template %s: %w", name, err)
			}
			r.templates[name] = tmpl
		}
	}

	if len(r.templates) == 0 {
		return fmt.Errorf("no templates found")
	}
	return nil
}

// templateFiles returns all .html files in a directory. A missing
// directory yields no files.
func templateFiles(templatesFS fs.FS, dir string) ([]string, error) {
	entries, err := fs.ReadDir(templatesFS, dir)
	if err != nil {
		return nil, nil
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".html") {
			files = append(files, path.Join(dir, entry.Name()))
		}
	}
	return files, nil
}

// Has reports whether a template is registered under name.
func (r *Renderer) Has(name string) bool {
	_, ok := r.templates[name]
	return ok
}

// TemplateData holds data passed to templates.
type TemplateData struct {
	Title     string
	Page      site.Page
	Lang      *i18n.Context
	Doc       i18n.Document
	Nav       []site.NavItem
	Languages []i18n.Language
	Session   auth.Session
	Links     contact.Links

	Flash     string
	FlashType string

	// LoadFailed marks a page whose data could not be fetched. Templates
	// show a notice instead of treating the page as empty.
	LoadFailed bool

	// Errors holds per-field form messages.
	Errors map[string]string

	Data        any
	CurrentYear int
}

// T translates key in the request language.
func (d TemplateData) T(key string) string {
	if d.Lang == nil {
		return key
	}
	return d.Lang.T(key)
}

// Language returns the request language.
func (d TemplateData) Language() i18n.Language {
	if d.Lang == nil {
		return i18n.Default
	}
	return d.Lang.Language()
}

// Path returns the URL of page in the request language.
func (d TemplateData) Path(page site.Page) string {
	return site.Path(d.Language(), page)
}

// LangQuery returns "?lang=xx" for routes outside the language prefix,
// or "" for the default language.
func (d TemplateData) LangQuery() string {
	lang := d.Language()
	if lang == i18n.Default || !lang.Valid() {
		return ""
	}
	return "?lang=" + lang.String()
}

// SwitchPath returns the URL of the current page in lang.
func (d TemplateData) SwitchPath(lang i18n.Language) string {
	return site.Path(lang, d.Page)
}

// Render renders a template with status 200.
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, name string, data TemplateData) error {
	return r.RenderStatus(w, req, http.StatusOK, name, data)
}

// RenderStatus renders a template with the given status code.
func (r *Renderer) RenderStatus(w http.ResponseWriter, req *http.Request, status int, name string, data TemplateData) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}

	r.fill(req, &data)

	// Render to buffer first to catch errors
	buf := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(buf, "base", data); err != nil {
		return fmt.Errorf("executing template %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
	return nil
}

// fill sets the request-wide fields the handler left empty.
func (r *Renderer) fill(req *http.Request, data *TemplateData) {
	data.CurrentYear = time.Now().Year()
	if data.Lang == nil {
		data.Lang = middleware.GetLanguage(req)
	}
	data.Doc = data.Lang.Document()
	if data.Nav == nil {
		data.Nav = site.Nav()
	}
	data.Languages = i18n.SupportedLanguages
	if data.Session == (auth.Session{}) {
		data.Session = middleware.GetSession(req)
	}
	if data.Links == (contact.Links{}) {
		data.Links = r.links
	}

	if data.Flash == "" {
		data.Flash, data.FlashType = r.popFlash(req)
	}
}

// SetFlash stores a flash message for the next rendered page.
func (r *Renderer) SetFlash(req *http.Request, message, flashType string) {
	if r.sessionManager == nil {
		return
	}
	defer r.recoverSession("set flash")
	r.sessionManager.Put(req.Context(), SessionKeyFlash, message)
	r.sessionManager.Put(req.Context(), SessionKeyFlashType, flashType)
}

func (r *Renderer) popFlash(req *http.Request) (message, flashType string) {
	if r.sessionManager == nil {
		return "", ""
	}
	defer r.recoverSession("pop flash")
	message = r.sessionManager.PopString(req.Context(), SessionKeyFlash)
	if message == "" {
		return "", ""
	}
	flashType = r.sessionManager.PopString(req.Context(), SessionKeyFlashType)
	if flashType == "" {
		flashType = FlashInfo
	}
	return message, flashType
}

// recoverSession absorbs the panic scs raises when a request did not pass
// through LoadAndSave.
func (r *Renderer) recoverSession(op string) {
	if rec := recover(); rec != nil {
		r.logger.Debug("session unavailable", "op", op, "panic", rec)
	}
}
