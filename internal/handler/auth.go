// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/mileusna/useragent"

	"github.com/olegiv/senatec-go/internal/auth"
	"github.com/olegiv/senatec-go/internal/middleware"
	"github.com/olegiv/senatec-go/internal/model"
	"github.com/olegiv/senatec-go/internal/render"
	"github.com/olegiv/senatec-go/internal/site"
)

// AuthHandler handles the admin login and logout.
type AuthHandler struct {
	manager    *auth.Manager
	protection *middleware.LoginProtection
	renderer   *render.Renderer
	logger     *slog.Logger
}

// NewAuthHandler creates a new AuthHandler. A nil protection disables the
// username lockout.
func NewAuthHandler(manager *auth.Manager, protection *middleware.LoginProtection, renderer *render.Renderer, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		manager:    manager,
		protection: protection,
		renderer:   renderer,
		logger:     logger,
	}
}

// LoginData holds the values echoed back into the login form.
type LoginData struct {
	Username string
}

// LoginForm handles GET /login.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if middleware.GetSession(r).IsAdmin() {
		http.Redirect(w, r, withLang(RouteAdmin, langOf(r)), http.StatusSeeOther)
		return
	}
	h.renderLogin(w, r, http.StatusOK, LoginData{}, nil)
}

// Login handles POST /login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	lang := middleware.GetLanguage(r)
	form := LoginData{Username: username}

	if h.protection != nil {
		if locked, remaining := h.protection.IsLocked(username); locked {
			h.logger.Warn("login attempt while locked", clientAttrs(r, "username", username, "remaining", remaining.Round(time.Second))...)
			h.renderLogin(w, r, http.StatusTooManyRequests, form, map[string]string{"form": lang.T("auth.locked")})
			return
		}
	}

	if !h.manager.Login(r.Context(), username, password) {
		h.logger.Warn("failed login attempt", clientAttrs(r, "username", username)...)

		status, key := http.StatusUnauthorized, "auth.invalid_credentials"
		if h.protection != nil {
			if locked, _ := h.protection.RecordFailure(username); locked {
				status, key = http.StatusTooManyRequests, "auth.locked"
			}
		}
		h.renderLogin(w, r, status, form, map[string]string{"form": lang.T(key)})
		return
	}

	if h.protection != nil {
		h.protection.RecordSuccess(username)
	}
	http.Redirect(w, r, withLang(RouteAdmin, langOf(r)), http.StatusSeeOther)
}

// Logout handles POST /logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.manager.Logout(r.Context())
	lang := middleware.GetLanguage(r)
	flashSuccess(w, r, h.renderer, site.Path(lang.Language(), site.Home), lang.T("auth.logged_out"))
}

// clientAttrs prefixes attrs with the auth category and a description of
// the client for the event log.
func clientAttrs(r *http.Request, attrs ...any) []any {
	ua := useragent.Parse(r.UserAgent())
	browser, os := ua.Name, ua.OS
	if browser == "" {
		browser = "Unknown"
	}
	if os == "" {
		os = "Unknown"
	}

	device := "desktop"
	switch {
	case ua.Mobile:
		device = "mobile"
	case ua.Tablet:
		device = "tablet"
	case ua.Bot:
		device = "bot"
	}

	out := []any{
		"category", model.EventCategoryAuth,
		"ip", middleware.ClientIP(r),
		"browser", browser,
		"os", os,
		"device", device,
	}
	return append(out, attrs...)
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, r *http.Request, status int, form LoginData, errs map[string]string) {
	data := render.TemplateData{
		Page:   site.Login,
		Title:  middleware.GetLanguage(r).T("login.title"),
		Errors: errs,
		Data:   form,
	}
	renderPage(w, r, h.renderer, h.logger, status, "auth/login", data)
}
