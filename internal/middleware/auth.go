// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"

	"github.com/olegiv/senatec-go/internal/auth"
)

// LoadSession restores the auth session into the request context so pages
// can show the admin link. It never blocks a request.
func LoadSession(m *auth.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s := m.Restore(r.Context())
			ctx := context.WithValue(r.Context(), ContextKeySession, s)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSession returns the auth session loaded by LoadSession or RequireAdmin,
// or the zero session.
func GetSession(r *http.Request) auth.Session {
	s, _ := r.Context().Value(ContextKeySession).(auth.Session)
	return s
}

// RequireAdmin lets only authenticated admins through. Everyone else is
// sent to the home page.
func RequireAdmin(m *auth.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s := m.Restore(r.Context())
			if !s.IsAdmin() {
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}
			ctx := context.WithValue(r.Context(), ContextKeySession, s)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
