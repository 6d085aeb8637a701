// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/senatec-go/internal/model"
)

const blogPostColumns = `id, title_fr, title_en, title_ar, excerpt_fr, excerpt_en, excerpt_ar,
content_fr, content_en, content_ar, image_url, published, created_at`

const testimonialColumns = `id, name, course, rating, comment_fr, comment_en, comment_ar, image_url, created_at`

func scanBlogPost(row scanner) (model.BlogPost, error) {
	var p model.BlogPost
	err := row.Scan(
		&p.ID,
		&p.TitleFR, &p.TitleEN, &p.TitleAR,
		&p.ExcerptFR, &p.ExcerptEN, &p.ExcerptAR,
		&p.ContentFR, &p.ContentEN, &p.ContentAR,
		&p.ImageURL, &p.Published, &p.CreatedAt,
	)
	return p, err
}

func scanTestimonial(row scanner) (model.Testimonial, error) {
	var t model.Testimonial
	err := row.Scan(
		&t.ID, &t.Name, &t.Course, &t.Rating,
		&t.CommentFR, &t.CommentEN, &t.CommentAR,
		&t.ImageURL, &t.CreatedAt,
	)
	return t, err
}

// ListPublishedBlogPosts returns published posts, newest first.
func (q *Queries) ListPublishedBlogPosts(ctx context.Context) ([]model.BlogPost, error) {
	rows, err := q.query(ctx, `SELECT `+blogPostColumns+` FROM blog_posts
WHERE published = ? ORDER BY created_at DESC`, true)
	if err != nil {
		return nil, fmt.Errorf("listing blog posts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []model.BlogPost
	for rows.Next() {
		p, err := scanBlogPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning blog post: %w", err)
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing blog posts: %w", err)
	}
	return items, nil
}

// GetBlogPost returns the published post with id.
func (q *Queries) GetBlogPost(ctx context.Context, id string) (model.BlogPost, error) {
	if !q.validID(id) {
		return model.BlogPost{}, ErrNotFound
	}
	p, err := scanBlogPost(q.queryRow(ctx, `SELECT `+blogPostColumns+` FROM blog_posts
WHERE id = ? AND published = ?`, id, true))
	if errors.Is(err, sql.ErrNoRows) {
		return model.BlogPost{}, ErrNotFound
	}
	if err != nil {
		return model.BlogPost{}, fmt.Errorf("getting blog post %s: %w", id, err)
	}
	return p, nil
}

// CreateBlogPost inserts p. Used by the demo seed and tests; the site
// itself never writes posts.
func (q *Queries) CreateBlogPost(ctx context.Context, p model.BlogPost) (model.BlogPost, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	p.CreatedAt = p.CreatedAt.UTC()

	_, err := q.exec(ctx, `INSERT INTO blog_posts (`+blogPostColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID,
		p.TitleFR, p.TitleEN, p.TitleAR,
		p.ExcerptFR, p.ExcerptEN, p.ExcerptAR,
		p.ContentFR, p.ContentEN, p.ContentAR,
		p.ImageURL, p.Published, p.CreatedAt,
	)
	if err != nil {
		return model.BlogPost{}, fmt.Errorf("creating blog post: %w", err)
	}
	return p, nil
}

// ListTestimonials returns all testimonials, newest first.
func (q *Queries) ListTestimonials(ctx context.Context) ([]model.Testimonial, error) {
	rows, err := q.query(ctx, `SELECT `+testimonialColumns+` FROM testimonials ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing testimonials: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []model.Testimonial
	for rows.Next() {
		t, err := scanTestimonial(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning testimonial: %w", err)
		}
		items = append(items, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing testimonials: %w", err)
	}
	return items, nil
}

// CreateTestimonial inserts t. Used by the demo seed and tests.
func (q *Queries) CreateTestimonial(ctx context.Context, t model.Testimonial) (model.Testimonial, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	t.CreatedAt = t.CreatedAt.UTC()

	_, err := q.exec(ctx, `INSERT INTO testimonials (`+testimonialColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Name, t.Course, t.Rating,
		t.CommentFR, t.CommentEN, t.CommentAR,
		t.ImageURL, t.CreatedAt,
	)
	if err != nil {
		return model.Testimonial{}, fmt.Errorf("creating testimonial: %w", err)
	}
	return t, nil
}
