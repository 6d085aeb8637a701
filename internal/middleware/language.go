// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/senatec-go/internal/i18n"
)

// LanguageParam is the chi URL parameter holding the language prefix.
const LanguageParam = "lang"

// Language builds the per-request language context.
// Priority order:
// 1. URL parameter {lang} from chi router (e.g., /ar/courses)
// 2. Query parameter ?lang=XX
// 3. The default language
//
// The choice is never persisted: no cookie, no Accept-Language.
func Language(catalog *i18n.Catalog) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := RequestLanguage(r)
			lc := i18n.NewContext(catalog, lang, i18n.WithObserver(func(d i18n.Document) {
				w.Header().Set("Content-Language", d.Lang)
			}))
			ctx := context.WithValue(r.Context(), ContextKeyLanguage, lc)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestLanguage returns the language named by the request URL, or the
// default language.
func RequestLanguage(r *http.Request) i18n.Language {
	if lang, ok := i18n.ParseLanguage(chi.URLParam(r, LanguageParam)); ok {
		return lang
	}
	if lang, ok := i18n.ParseLanguage(r.URL.Query().Get("lang")); ok {
		return lang
	}
	return i18n.Default
}

// GetLanguage returns the language context of the request. Requests that
// did not pass through Language get a default context without translations.
func GetLanguage(r *http.Request) *i18n.Context {
	if lc, ok := r.Context().Value(ContextKeyLanguage).(*i18n.Context); ok {
		return lc
	}
	return i18n.NewContext(nil, i18n.Default)
}
