// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"

	"github.com/olegiv/senatec-go/internal/model"
)

// Unconfigured stands in for the data layer when no database URL is set.
// Every call fails with ErrNotConfigured.
type Unconfigured struct{}

var (
	_ Catalog  = Unconfigured{}
	_ EventLog = Unconfigured{}
)

func (Unconfigured) ListCourses(context.Context) ([]model.Course, error) {
	return nil, ErrNotConfigured
}

func (Unconfigured) GetCourse(context.Context, string) (model.Course, error) {
	return model.Course{}, ErrNotConfigured
}

func (Unconfigured) CreateCourse(context.Context, model.Course) (model.Course, error) {
	return model.Course{}, ErrNotConfigured
}

func (Unconfigured) UpdateCourse(context.Context, string, CoursePatch) error {
	return ErrNotConfigured
}

func (Unconfigured) DeleteCourse(context.Context, string) error {
	return ErrNotConfigured
}

func (Unconfigured) ListPublishedBlogPosts(context.Context) ([]model.BlogPost, error) {
	return nil, ErrNotConfigured
}

func (Unconfigured) GetBlogPost(context.Context, string) (model.BlogPost, error) {
	return model.BlogPost{}, ErrNotConfigured
}

func (Unconfigured) ListTestimonials(context.Context) ([]model.Testimonial, error) {
	return nil, ErrNotConfigured
}

func (Unconfigured) CreateEvent(context.Context, CreateEventParams) (model.Event, error) {
	return model.Event{}, ErrNotConfigured
}

func (Unconfigured) ListRecentEvents(context.Context, int) ([]model.Event, error) {
	return nil, ErrNotConfigured
}
