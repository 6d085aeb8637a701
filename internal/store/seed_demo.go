// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/olegiv/senatec-go/internal/model"
)

// SeedDemo fills empty catalog tables with the sample courses, blog posts
// and testimonials. Tables that already hold rows are left alone, so it is
// safe to call on every start. Everything is inserted in one transaction.
func SeedDemo(ctx context.Context, q *Queries) error {
	return q.InTx(ctx, func(q *Queries) error {
		return seedDemo(ctx, q)
	})
}

func seedDemo(ctx context.Context, q *Queries) error {
	courses, err := q.ListCourses(ctx)
	if err != nil {
		return fmt.Errorf("checking courses: %w", err)
	}
	if len(courses) == 0 {
		for _, c := range model.SampleCourses() {
			c.ID = ""
			if _, err := q.CreateCourse(ctx, c); err != nil {
				return fmt.Errorf("seeding courses: %w", err)
			}
		}
		slog.Info("seeded demo courses", "count", len(model.SampleCourses()))
	} else {
		slog.Info("courses already exist, skipping demo courses")
	}

	var posts int
	if err := q.queryRow(ctx, `SELECT COUNT(*) FROM blog_posts`).Scan(&posts); err != nil {
		return fmt.Errorf("checking blog posts: %w", err)
	}
	if posts == 0 {
		for _, p := range model.SamplePosts() {
			p.ID = ""
			if _, err := q.CreateBlogPost(ctx, p); err != nil {
				return fmt.Errorf("seeding blog posts: %w", err)
			}
		}
		slog.Info("seeded demo blog posts", "count", len(model.SamplePosts()))
	}

	testimonials, err := q.ListTestimonials(ctx)
	if err != nil {
		return fmt.Errorf("checking testimonials: %w", err)
	}
	if len(testimonials) == 0 {
		for _, t := range model.SampleTestimonials() {
			if _, err := q.CreateTestimonial(ctx, t); err != nil {
				return fmt.Errorf("seeding testimonials: %w", err)
			}
		}
		slog.Info("seeded demo testimonials", "count", len(model.SampleTestimonials()))
	}

	return nil
}
