// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/senatec-go/internal/model"
)

const courseColumns = `id, title_fr, title_en, title_ar, description_fr, description_en, description_ar,
category, duration, price, image_url, is_featured, created_at`

// CoursePatch lists the course fields to change. Nil fields are left as stored.
type CoursePatch struct {
	TitleFR       *string
	TitleEN       *string
	TitleAR       *string
	DescriptionFR *string
	DescriptionEN *string
	DescriptionAR *string
	Category      *string
	Duration      *string
	Price         *float64
	ImageURL      *string
	IsFeatured    *bool
}

// IsEmpty reports whether the patch changes nothing.
func (p CoursePatch) IsEmpty() bool {
	return len(p.assignments()) == 0
}

type assignment struct {
	column string
	value  any
}

func (p CoursePatch) assignments() []assignment {
	var out []assignment
	addString := func(col string, v *string) {
		if v != nil {
			out = append(out, assignment{col, *v})
		}
	}
	addString("title_fr", p.TitleFR)
	addString("title_en", p.TitleEN)
	addString("title_ar", p.TitleAR)
	addString("description_fr", p.DescriptionFR)
	addString("description_en", p.DescriptionEN)
	addString("description_ar", p.DescriptionAR)
	addString("category", p.Category)
	addString("duration", p.Duration)
	if p.Price != nil {
		out = append(out, assignment{"price", *p.Price})
	}
	addString("image_url", p.ImageURL)
	if p.IsFeatured != nil {
		out = append(out, assignment{"is_featured", *p.IsFeatured})
	}
	return out
}

// Apply returns c with the patch applied.
func (p CoursePatch) Apply(c model.Course) model.Course {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&c.TitleFR, p.TitleFR)
	set(&c.TitleEN, p.TitleEN)
	set(&c.TitleAR, p.TitleAR)
	set(&c.DescriptionFR, p.DescriptionFR)
	set(&c.DescriptionEN, p.DescriptionEN)
	set(&c.DescriptionAR, p.DescriptionAR)
	set(&c.Category, p.Category)
	set(&c.Duration, p.Duration)
	if p.Price != nil {
		c.Price = *p.Price
	}
	set(&c.ImageURL, p.ImageURL)
	if p.IsFeatured != nil {
		c.IsFeatured = *p.IsFeatured
	}
	return c
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCourse(row scanner) (model.Course, error) {
	var c model.Course
	err := row.Scan(
		&c.ID,
		&c.TitleFR, &c.TitleEN, &c.TitleAR,
		&c.DescriptionFR, &c.DescriptionEN, &c.DescriptionAR,
		&c.Category, &c.Duration, &c.Price, &c.ImageURL,
		&c.IsFeatured, &c.CreatedAt,
	)
	return c, err
}

// ListCourses returns every course, newest first.
func (q *Queries) ListCourses(ctx context.Context) ([]model.Course, error) {
	rows, err := q.query(ctx, `SELECT `+courseColumns+` FROM courses ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing courses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []model.Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning course: %w", err)
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing courses: %w", err)
	}
	return items, nil
}

// GetCourse returns the course with id.
func (q *Queries) GetCourse(ctx context.Context, id string) (model.Course, error) {
	if !q.validID(id) {
		return model.Course{}, ErrNotFound
	}
	c, err := scanCourse(q.queryRow(ctx, `SELECT `+courseColumns+` FROM courses WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Course{}, ErrNotFound
	}
	if err != nil {
		return model.Course{}, fmt.Errorf("getting course %s: %w", id, err)
	}
	return c, nil
}

// CreateCourse inserts c and returns the stored record. A zero ID gets a
// fresh UUID and a zero CreatedAt gets the current time.
func (q *Queries) CreateCourse(ctx context.Context, c model.Course) (model.Course, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	c.CreatedAt = c.CreatedAt.UTC()

	_, err := q.exec(ctx, `INSERT INTO courses (`+courseColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID,
		c.TitleFR, c.TitleEN, c.TitleAR,
		c.DescriptionFR, c.DescriptionEN, c.DescriptionAR,
		c.Category, c.Duration, c.Price, c.ImageURL,
		c.IsFeatured, c.CreatedAt,
	)
	if err != nil {
		return model.Course{}, fmt.Errorf("creating course: %w", err)
	}
	return q.GetCourse(ctx, c.ID)
}

// UpdateCourse writes the non-nil fields of patch to the course with id.
// Returns ErrNotFound when no course has that id.
func (q *Queries) UpdateCourse(ctx context.Context, id string, patch CoursePatch) error {
	if !q.validID(id) {
		return ErrNotFound
	}
	sets := patch.assignments()
	if len(sets) == 0 {
		var one int
		err := q.queryRow(ctx, `SELECT 1 FROM courses WHERE id = ?`, id).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("updating course %s: %w", id, err)
		}
		return nil
	}

	cols := make([]string, len(sets))
	args := make([]any, 0, len(sets)+1)
	for i, s := range sets {
		cols[i] = s.column + " = ?"
		args = append(args, s.value)
	}
	args = append(args, id)

	res, err := q.exec(ctx, `UPDATE courses SET `+strings.Join(cols, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("updating course %s: %w", id, err)
	}
	return requireRow(res, "updating course "+id)
}

// DeleteCourse removes the course with id. Returns ErrNotFound when there
// was nothing to delete.
func (q *Queries) DeleteCourse(ctx context.Context, id string) error {
	if !q.validID(id) {
		return ErrNotFound
	}
	res, err := q.exec(ctx, `DELETE FROM courses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting course %s: %w", id, err)
	}
	return requireRow(res, "deleting course "+id)
}

// validID reports whether id can match a row. Postgres keys are UUID
// columns and reject anything else with a driver error, so a malformed id
// is simply absent.
func (q *Queries) validID(id string) bool {
	if q.dialect != DialectPostgres {
		return true
	}
	_, err := uuid.Parse(id)
	return err == nil
}

func requireRow(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
