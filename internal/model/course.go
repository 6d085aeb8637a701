// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the catalog records shown on the site.
package model

import (
	"time"

	"github.com/olegiv/senatec-go/internal/i18n"
)

// Course categories offered in the editor.
const (
	CategoryProgramming = "programming"
	CategoryWeb         = "web"
	CategoryLanguages   = "languages"

	// CategoryAll is the pseudo-category that disables filtering.
	CategoryAll = "all"
)

// Categories lists the known course categories in display order.
var Categories = []string{CategoryProgramming, CategoryWeb, CategoryLanguages}

// IsKnownCategory reports whether c is one of the editor categories.
// Stored courses may carry other values; those are displayed verbatim.
func IsKnownCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Course is a training course offered by the center.
type Course struct {
	ID            string
	TitleFR       string
	TitleEN       string
	TitleAR       string
	DescriptionFR string
	DescriptionEN string
	DescriptionAR string
	Category      string
	Duration      string
	Price         float64
	ImageURL      string
	CreatedAt     time.Time
	IsFeatured    bool
}

var courseTitles = map[i18n.Language]func(Course) string{
	i18n.FR: func(c Course) string { return c.TitleFR },
	i18n.EN: func(c Course) string { return c.TitleEN },
	i18n.AR: func(c Course) string { return c.TitleAR },
}

var courseDescriptions = map[i18n.Language]func(Course) string{
	i18n.FR: func(c Course) string { return c.DescriptionFR },
	i18n.EN: func(c Course) string { return c.DescriptionEN },
	i18n.AR: func(c Course) string { return c.DescriptionAR },
}

// Title returns the course title in lang, or the French title when that
// translation is empty.
func (c Course) Title(lang i18n.Language) string {
	return localized(courseTitles, lang, c, c.TitleFR)
}

// Description returns the course description in lang, or the French one
// when that translation is empty.
func (c Course) Description(lang i18n.Language) string {
	return localized(courseDescriptions, lang, c, c.DescriptionFR)
}

// CategoryKey returns the translation key of the course category filter,
// or the empty string for categories outside the known set.
func (c Course) CategoryKey() string {
	if !IsKnownCategory(c.Category) {
		return ""
	}
	return "courses.filter." + c.Category
}

// FilterByCategory returns the courses in category, keeping their order.
// CategoryAll returns the input unchanged.
func FilterByCategory(courses []Course, category string) []Course {
	if category == CategoryAll || category == "" {
		return courses
	}
	return filter(courses, func(c Course) bool { return c.Category == category })
}

// FeaturedCourses returns the courses flagged for the landing page.
func FeaturedCourses(courses []Course) []Course {
	return filter(courses, func(c Course) bool { return c.IsFeatured })
}

// localized selects a field through accessors, falling back when the
// language is unknown or the field is empty.
func localized[T any](accessors map[i18n.Language]func(T) string, lang i18n.Language, v T, fallback string) string {
	if get, ok := accessors[lang]; ok {
		if s := get(v); s != "" {
			return s
		}
	}
	return fallback
}

func filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}
