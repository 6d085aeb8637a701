// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package site names the pages of the public site and builds their URLs.
package site

import (
	"strings"

	"github.com/olegiv/senatec-go/internal/i18n"
)

// Page identifies a top-level page.
type Page string

// Site pages.
const (
	Home    Page = "home"
	About   Page = "about"
	Courses Page = "courses"
	Blog    Page = "blog"
	Contact Page = "contact"
	Login   Page = "login"
	Admin   Page = "admin"
)

var pages = []Page{Home, About, Courses, Blog, Contact, Login, Admin}

// Pages returns every known page.
func Pages() []Page {
	return append([]Page(nil), pages...)
}

// ParsePage resolves a page name. Anything unknown resolves to Home.
func ParsePage(s string) Page {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, p := range pages {
		if string(p) == s {
			return p
		}
	}
	return Home
}

// IsPage reports whether s names a known page exactly.
func IsPage(s string) bool {
	for _, p := range pages {
		if string(p) == s {
			return true
		}
	}
	return false
}

// NavKey returns the translation key of the page's navigation label.
func (p Page) NavKey() string {
	return "nav." + string(p)
}

// NavItem is one entry of the main navigation.
type NavItem struct {
	Page Page
	Key  string
}

// Nav lists the public navigation in display order. Login and Admin are
// shown separately depending on the session.
func Nav() []NavItem {
	items := []Page{Home, About, Courses, Blog, Contact}
	out := make([]NavItem, len(items))
	for i, p := range items {
		out[i] = NavItem{Page: p, Key: p.NavKey()}
	}
	return out
}

// Path returns the URL of page in lang. The default language has no
// prefix: Path(FR, Courses) is "/courses", Path(EN, Courses) is "/en/courses".
func Path(lang i18n.Language, page Page) string {
	prefix := LangPrefix(lang)
	if page == Home || page == "" {
		if prefix == "" {
			return "/"
		}
		return prefix
	}
	return prefix + "/" + string(page)
}

// LangPrefix returns "" for the default language and "/<lang>" otherwise.
func LangPrefix(lang i18n.Language) string {
	if lang == i18n.Default || !lang.Valid() {
		return ""
	}
	return "/" + lang.String()
}

// BlogPostPath returns the URL of a single blog post in lang.
func BlogPostPath(lang i18n.Language, id string) string {
	return LangPrefix(lang) + "/blog/" + id
}
