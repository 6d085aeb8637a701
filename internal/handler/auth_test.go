// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/senatec-go/internal/auth"
	"github.com/olegiv/senatec-go/internal/i18n"
)

func TestLoginForm(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get("/login?lang=en")

	require.Equal(t, http.StatusOK, rec.Code)
	assertBody(t, rec, env.T(i18n.EN, "login.title"))
	assert.Contains(t, rec.Body.String(), `action="/login?lang=en"`)
}

func TestLogin_WrongCredentials(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", auth.DefaultUsername, "nope"},
		{"wrong username", "admin", auth.DefaultPassword},
		{"empty", "", ""},
		{"padded username", " " + auth.DefaultUsername, auth.DefaultPassword},
		{"trailing space in username", auth.DefaultUsername + " ", auth.DefaultPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)

			rec := env.post(RouteLogin, url.Values{
				"username": {tt.username},
				"password": {tt.password},
			})

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assertBody(t, rec, env.T(i18n.FR, "auth.invalid_credentials"))

			rec = env.get(RouteAdmin)
			assert.Equal(t, http.StatusSeeOther, rec.Code, "no session after a failed login")
		})
	}
}

func TestLogin_KeepsUsername(t *testing.T) {
	env := newTestEnv(t)

	rec := env.post(RouteLogin, url.Values{
		"username": {"wassim"},
		"password": {"bad"},
	})

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), `value="wassim"`)
}

func TestLogin_SuccessOpensAdmin(t *testing.T) {
	env := newTestEnv(t)

	rec := env.post(RouteLogin+"?lang=ar", url.Values{
		"username": {auth.DefaultUsername},
		"password": {auth.DefaultPassword},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin?lang=ar", rec.Header().Get("Location"))

	rec = env.get(RouteAdmin)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.get(RouteLogin)
	assert.Equal(t, http.StatusSeeOther, rec.Code, "logged-in admin skips the login form")
	assert.Equal(t, RouteAdmin, rec.Header().Get("Location"))
}

func TestLogin_NoLockoutByDefault(t *testing.T) {
	env := newTestEnv(t)
	bad := url.Values{"username": {auth.DefaultUsername}, "password": {"nope"}}

	for i := 0; i < 10; i++ {
		rec := env.post(RouteLogin, bad)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	}
	env.login()
}

func TestLogin_LocksAfterRepeatedFailures(t *testing.T) {
	env := newProtectedTestEnv(t)
	bad := url.Values{"username": {auth.DefaultUsername}, "password": {"nope"}}

	for i := 0; i < 2; i++ {
		rec := env.post(RouteLogin, bad)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	}

	rec := env.post(RouteLogin, bad)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assertBody(t, rec, env.T(i18n.FR, "auth.locked"))

	rec = env.post(RouteLogin, url.Values{
		"username": {auth.DefaultUsername},
		"password": {auth.DefaultPassword},
	})
	assert.Equal(t, http.StatusTooManyRequests, rec.Code, "locked even with the right password")

	rec = env.get(RouteAdmin)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestHeaderShowsAdminLinks(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get("/")
	assert.Contains(t, rec.Body.String(), `href="/login"`)
	assert.NotContains(t, rec.Body.String(), `action="/logout"`)

	env.login()

	rec = env.get("/")
	assert.Contains(t, rec.Body.String(), `action="/logout"`)
	assert.Contains(t, rec.Body.String(), `href="/admin"`)
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)
	env.login()

	rec := env.post(RouteLogout+"?lang=en", nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/en", rec.Header().Get("Location"))

	rec = env.get("/en")
	require.Equal(t, http.StatusOK, rec.Code)
	assertBody(t, rec, env.T(i18n.EN, "auth.logged_out"))

	rec = env.get(RouteAdmin)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestRequireAdmin_RedirectsAnonymous(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{RouteAdmin, RouteAdminEvents, RouteAdminCourses + "/new"} {
		rec := env.get(path)
		assert.Equal(t, http.StatusSeeOther, rec.Code, path)
		assert.Equal(t, "/", rec.Header().Get("Location"), path)
	}

	rec := env.post(RouteAdminCourses, url.Values{"title_fr": {"x"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Empty(t, env.catalog.courses)
}
