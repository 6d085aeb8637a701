// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"time"

	"github.com/olegiv/senatec-go/internal/i18n"
)

// HomeTestimonialLimit is how many testimonials the landing page shows.
const HomeTestimonialLimit = 3

// Testimonial is a student review. Course is free text, not a reference.
// Rating is expected in 1..5 but not validated.
type Testimonial struct {
	ID        string
	Name      string
	Course    string
	Rating    int
	CommentFR string
	CommentEN string
	CommentAR string
	ImageURL  string
	CreatedAt time.Time
}

var testimonialComments = map[i18n.Language]func(Testimonial) string{
	i18n.FR: func(t Testimonial) string { return t.CommentFR },
	i18n.EN: func(t Testimonial) string { return t.CommentEN },
	i18n.AR: func(t Testimonial) string { return t.CommentAR },
}

// Comment returns the comment in lang, falling back to French.
func (t Testimonial) Comment(lang i18n.Language) string {
	return localized(testimonialComments, lang, t, t.CommentFR)
}

// Stars returns a slice with one entry per rating point, clamped to 0..5,
// for ranging over in templates.
func (t Testimonial) Stars() []struct{} {
	n := t.Rating
	if n < 0 {
		n = 0
	}
	if n > 5 {
		n = 5
	}
	return make([]struct{}, n)
}

// FirstTestimonials returns at most n testimonials from the front of the list.
func FirstTestimonials(items []Testimonial, n int) []Testimonial {
	if n < 0 {
		n = 0
	}
	if len(items) <= n {
		return items
	}
	return items[:n]
}
