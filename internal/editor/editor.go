// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package editor implements the admin course editor: the in-memory course
// list, the create/edit form state machine and the writes it issues.
//
// An Editor is not safe for concurrent use. Handlers build one per request.
package editor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/olegiv/senatec-go/internal/model"
	"github.com/olegiv/senatec-go/internal/store"
)

// State is the form state of the editor.
type State int

// Editor states.
const (
	Idle State = iota
	Creating
	Editing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Creating:
		return "creating"
	case Editing:
		return "editing"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

var (
	// ErrNotEditing is returned by Submit when no form is open.
	ErrNotEditing = errors.New("editor: no course form is open")
	// ErrUnknownCourse is returned for ids that are not in the loaded list.
	ErrUnknownCourse = errors.New("editor: unknown course")
)

// CourseRepository is the subset of the data layer the editor writes to.
type CourseRepository interface {
	ListCourses(ctx context.Context) ([]model.Course, error)
	CreateCourse(ctx context.Context, c model.Course) (model.Course, error)
	UpdateCourse(ctx context.Context, id string, patch store.CoursePatch) error
	DeleteCourse(ctx context.Context, id string) error
}

// Editor drives course creation, editing and deletion.
type Editor struct {
	repo   CourseRepository
	logger *slog.Logger

	courses   []model.Course
	loadErr   error
	state     State
	editingID string
	form      CourseForm
}

// New returns an Idle editor with an empty list.
func New(repo CourseRepository, logger *slog.Logger) *Editor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Editor{repo: repo, logger: logger, form: DefaultForm()}
}

// Load fetches the course list. On failure the list is left empty and the
// error is logged and returned.
func (e *Editor) Load(ctx context.Context) error {
	courses, err := e.repo.ListCourses(ctx)
	if err != nil {
		e.courses = nil
		e.loadErr = err
		e.logger.Error("failed to load courses", "category", model.EventCategoryCourse, "error", err)
		return err
	}
	e.courses = courses
	e.loadErr = nil
	return nil
}

// LoadErr returns the error of the last Load, if any.
func (e *Editor) LoadErr() error {
	return e.loadErr
}

// Courses returns the loaded course list.
func (e *Editor) Courses() []model.Course {
	return e.courses
}

// State returns the current form state.
func (e *Editor) State() State {
	return e.state
}

// EditingID returns the id of the course being edited, or "".
func (e *Editor) EditingID() string {
	return e.editingID
}

// Form returns the form buffer.
func (e *Editor) Form() CourseForm {
	return e.form
}

// SetForm replaces the form buffer. It does not change the state.
func (e *Editor) SetForm(f CourseForm) {
	e.form = f
}

// StartCreate opens a blank form for a new course.
func (e *Editor) StartCreate() {
	e.state = Creating
	e.editingID = ""
	e.form = DefaultForm()
}

// StartEdit opens the form populated from the listed course id.
func (e *Editor) StartEdit(id string) error {
	c, ok := e.find(id)
	if !ok {
		return ErrUnknownCourse
	}
	e.state = Editing
	e.editingID = id
	e.form = FormFromCourse(c)
	return nil
}

// Cancel closes the form without writing.
func (e *Editor) Cancel() {
	e.state = Idle
	e.editingID = ""
	e.form = DefaultForm()
}

// Submit validates the form and writes it. Creating inserts a course and
// appends it to the list; Editing sends only the changed fields and merges
// them into the listed record. On success the editor returns to Idle. On
// failure the state and form are kept.
func (e *Editor) Submit(ctx context.Context) error {
	if e.state == Idle {
		return ErrNotEditing
	}
	if err := e.form.Validate(); err != nil {
		return err
	}

	switch e.state {
	case Creating:
		created, err := e.repo.CreateCourse(ctx, e.form.Course())
		if err != nil {
			e.logger.Error("failed to create course", "category", model.EventCategoryCourse, "error", err)
			return fmt.Errorf("creating course: %w", err)
		}
		e.courses = append(e.courses, created)
		e.logger.Info("course created", "id", created.ID)

	case Editing:
		idx := e.index(e.editingID)
		if idx < 0 {
			return ErrUnknownCourse
		}
		patch := e.form.Patch(e.courses[idx])
		if err := e.repo.UpdateCourse(ctx, e.editingID, patch); err != nil {
			e.logger.Error("failed to update course", "category", model.EventCategoryCourse, "id", e.editingID, "error", err)
			return fmt.Errorf("updating course %s: %w", e.editingID, err)
		}
		e.courses[idx] = patch.Apply(e.courses[idx])
		e.logger.Info("course updated", "id", e.editingID)
	}

	e.Cancel()
	return nil
}

// Delete removes the course from the store and the list. Deleting the
// course being edited also closes the form. On failure the list is kept.
func (e *Editor) Delete(ctx context.Context, id string) error {
	if err := e.repo.DeleteCourse(ctx, id); err != nil {
		e.logger.Error("failed to delete course", "category", model.EventCategoryCourse, "id", id, "error", err)
		return fmt.Errorf("deleting course %s: %w", id, err)
	}

	if idx := e.index(id); idx >= 0 {
		e.courses = append(e.courses[:idx:idx], e.courses[idx+1:]...)
	}
	if e.state == Editing && e.editingID == id {
		e.Cancel()
	}
	e.logger.Info("course deleted", "id", id)
	return nil
}

func (e *Editor) index(id string) int {
	for i, c := range e.courses {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (e *Editor) find(id string) (model.Course, bool) {
	if i := e.index(id); i >= 0 {
		return e.courses[i], true
	}
	return model.Course{}, false
}
