// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package editor

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/olegiv/senatec-go/internal/model"
	"github.com/olegiv/senatec-go/internal/store"
)

// CourseForm is the editable buffer of the course form.
type CourseForm struct {
	TitleFR       string  `form:"title_fr" validate:"required,max=200"`
	TitleEN       string  `form:"title_en" validate:"required,max=200"`
	TitleAR       string  `form:"title_ar" validate:"required,max=200"`
	DescriptionFR string  `form:"description_fr" validate:"required"`
	DescriptionEN string  `form:"description_en" validate:"required"`
	DescriptionAR string  `form:"description_ar" validate:"required"`
	Category      string  `form:"category" validate:"required,oneof=programming web languages"`
	Duration      string  `form:"duration" validate:"required,max=50"`
	Price         float64 `form:"price" validate:"gte=0"`
	ImageURL      string  `form:"image_url" validate:"omitempty,url"`
	IsFeatured    bool    `form:"is_featured"`
}

// DefaultForm returns the blank form used for a new course.
func DefaultForm() CourseForm {
	return CourseForm{Category: model.CategoryProgramming}
}

// FormFromCourse fills the form verbatim from c.
func FormFromCourse(c model.Course) CourseForm {
	return CourseForm{
		TitleFR:       c.TitleFR,
		TitleEN:       c.TitleEN,
		TitleAR:       c.TitleAR,
		DescriptionFR: c.DescriptionFR,
		DescriptionEN: c.DescriptionEN,
		DescriptionAR: c.DescriptionAR,
		Category:      c.Category,
		Duration:      c.Duration,
		Price:         c.Price,
		ImageURL:      c.ImageURL,
		IsFeatured:    c.IsFeatured,
	}
}

// Validate checks the form rules. Returns a *ValidationError on failure.
func (f CourseForm) Validate() error {
	if err := getValidator().validate.Struct(f); err != nil {
		return newValidationError(err)
	}
	return nil
}

// Course returns a new course record holding the form values. ID and
// CreatedAt are left for the store.
func (f CourseForm) Course() model.Course {
	return model.Course{
		TitleFR:       f.TitleFR,
		TitleEN:       f.TitleEN,
		TitleAR:       f.TitleAR,
		DescriptionFR: f.DescriptionFR,
		DescriptionEN: f.DescriptionEN,
		DescriptionAR: f.DescriptionAR,
		Category:      f.Category,
		Duration:      f.Duration,
		Price:         f.Price,
		ImageURL:      f.ImageURL,
		IsFeatured:    f.IsFeatured,
	}
}

// Patch returns the changes from orig to the form values. Unchanged fields
// stay nil.
func (f CourseForm) Patch(orig model.Course) store.CoursePatch {
	var p store.CoursePatch
	diff := func(dst **string, have, want string) {
		if have != want {
			v := want
			*dst = &v
		}
	}
	diff(&p.TitleFR, orig.TitleFR, f.TitleFR)
	diff(&p.TitleEN, orig.TitleEN, f.TitleEN)
	diff(&p.TitleAR, orig.TitleAR, f.TitleAR)
	diff(&p.DescriptionFR, orig.DescriptionFR, f.DescriptionFR)
	diff(&p.DescriptionEN, orig.DescriptionEN, f.DescriptionEN)
	diff(&p.DescriptionAR, orig.DescriptionAR, f.DescriptionAR)
	diff(&p.Category, orig.Category, f.Category)
	diff(&p.Duration, orig.Duration, f.Duration)
	if orig.Price != f.Price {
		v := f.Price
		p.Price = &v
	}
	diff(&p.ImageURL, orig.ImageURL, f.ImageURL)
	if orig.IsFeatured != f.IsFeatured {
		v := f.IsFeatured
		p.IsFeatured = &v
	}
	return p
}

type priceInput struct {
	Price string `form:"price" validate:"required,numeric"`
}

// ParseCourseForm reads a submitted course form. Text fields are trimmed.
// A missing or non-numeric price yields a *ValidationError for "price".
func ParseCourseForm(values url.Values) (CourseForm, error) {
	get := func(key string) string {
		return strings.TrimSpace(values.Get(key))
	}

	f := CourseForm{
		TitleFR:       get("title_fr"),
		TitleEN:       get("title_en"),
		TitleAR:       get("title_ar"),
		DescriptionFR: get("description_fr"),
		DescriptionEN: get("description_en"),
		DescriptionAR: get("description_ar"),
		Category:      get("category"),
		Duration:      get("duration"),
		ImageURL:      get("image_url"),
	}
	switch get("is_featured") {
	case "on", "true", "1":
		f.IsFeatured = true
	}

	raw := get("price")
	if err := getValidator().validate.Struct(priceInput{Price: raw}); err != nil {
		return f, newValidationError(err)
	}
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return f, newValidationError(getValidator().validate.Struct(priceInput{Price: "x"}))
	}
	f.Price = price
	return f, nil
}
