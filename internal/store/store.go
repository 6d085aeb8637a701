// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package store is the data access layer for courses, blog posts,
// testimonials and the event log.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/olegiv/senatec-go/internal/model"
)

// ErrNotFound is returned when a lookup or mutation matched no row.
var ErrNotFound = errors.New("store: not found")

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

// Catalog is the read/write surface used by the site and the editor.
type Catalog interface {
	ListCourses(ctx context.Context) ([]model.Course, error)
	GetCourse(ctx context.Context, id string) (model.Course, error)
	CreateCourse(ctx context.Context, c model.Course) (model.Course, error)
	UpdateCourse(ctx context.Context, id string, patch CoursePatch) error
	DeleteCourse(ctx context.Context, id string) error
	ListPublishedBlogPosts(ctx context.Context) ([]model.BlogPost, error)
	GetBlogPost(ctx context.Context, id string) (model.BlogPost, error)
	ListTestimonials(ctx context.Context) ([]model.Testimonial, error)
}

// EventLog persists operator events.
type EventLog interface {
	CreateEvent(ctx context.Context, arg CreateEventParams) (model.Event, error)
	ListRecentEvents(ctx context.Context, limit int) ([]model.Event, error)
}

// Queries runs SQL against a sqlite or postgres database.
type Queries struct {
	db      DBTX
	dialect Dialect
}

// New returns Queries for db using dialect placeholders.
func New(db DBTX, dialect Dialect) *Queries {
	return &Queries{db: db, dialect: dialect}
}

// WithTx returns a copy of q bound to tx.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx, dialect: q.dialect}
}

// InTx runs fn inside a transaction and commits when fn returns nil. When
// q is already bound to a transaction fn runs on q directly.
func (q *Queries) InTx(ctx context.Context, fn func(*Queries) error) error {
	db, ok := q.db.(interface {
		BeginTx(context.Context, *sql.TxOptions) (*sql.Tx, error)
	})
	if !ok {
		return fn(q)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(q.WithTx(tx)); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func (q *Queries) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return q.db.ExecContext(ctx, rebind(q.dialect, query), args...)
}

func (q *Queries) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return q.db.QueryContext(ctx, rebind(q.dialect, query), args...)
}

func (q *Queries) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return q.db.QueryRowContext(ctx, rebind(q.dialect, query), args...)
}

var (
	_ Catalog  = (*Queries)(nil)
	_ EventLog = (*Queries)(nil)
)
