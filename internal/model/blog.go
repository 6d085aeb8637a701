// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"strings"
	"time"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/cases"

	"github.com/olegiv/senatec-go/internal/i18n"
)

// BlogPost is an article shown on the blog page. Posts are read-only here.
type BlogPost struct {
	ID        string
	TitleFR   string
	TitleEN   string
	TitleAR   string
	ExcerptFR string
	ExcerptEN string
	ExcerptAR string
	ContentFR string
	ContentEN string
	ContentAR string
	ImageURL  string
	CreatedAt time.Time
	Published bool
}

var postTitles = map[i18n.Language]func(BlogPost) string{
	i18n.FR: func(p BlogPost) string { return p.TitleFR },
	i18n.EN: func(p BlogPost) string { return p.TitleEN },
	i18n.AR: func(p BlogPost) string { return p.TitleAR },
}

var postExcerpts = map[i18n.Language]func(BlogPost) string{
	i18n.FR: func(p BlogPost) string { return p.ExcerptFR },
	i18n.EN: func(p BlogPost) string { return p.ExcerptEN },
	i18n.AR: func(p BlogPost) string { return p.ExcerptAR },
}

var postContents = map[i18n.Language]func(BlogPost) string{
	i18n.FR: func(p BlogPost) string { return p.ContentFR },
	i18n.EN: func(p BlogPost) string { return p.ContentEN },
	i18n.AR: func(p BlogPost) string { return p.ContentAR },
}

// Title returns the post title in lang, falling back to French.
func (p BlogPost) Title(lang i18n.Language) string {
	return localized(postTitles, lang, p, p.TitleFR)
}

// Excerpt returns the post excerpt in lang, falling back to French.
func (p BlogPost) Excerpt(lang i18n.Language) string {
	return localized(postExcerpts, lang, p, p.ExcerptFR)
}

// Content returns the post body in lang, falling back to French.
func (p BlogPost) Content(lang i18n.Language) string {
	return localized(postContents, lang, p, p.ContentFR)
}

// PublishedOnly drops unpublished posts, keeping order.
func PublishedOnly(posts []BlogPost) []BlogPost {
	return filter(posts, func(p BlogPost) bool { return p.Published })
}

// SearchPosts returns the posts whose localized title or excerpt contains
// query, ignoring case. Latin text also matches without its accents, so
// "developpement" finds "développement". An empty query matches
// everything.
func SearchPosts(posts []BlogPost, lang i18n.Language, query string) []BlogPost {
	query = strings.TrimSpace(query)
	if query == "" {
		return posts
	}

	fold := cases.Fold()
	needle := fold.String(query)
	plain := asciiKey(query)
	contains := func(text string) bool {
		if strings.Contains(fold.String(text), needle) {
			return true
		}
		return plain != "" && strings.Contains(asciiKey(text), plain)
	}
	return filter(posts, func(p BlogPost) bool {
		return contains(p.Title(lang)) || contains(p.Excerpt(lang))
	})
}

// asciiKey transliterates s to lower-case ASCII.
func asciiKey(s string) string {
	return strings.ToLower(strings.TrimSpace(unidecode.Unidecode(s)))
}
