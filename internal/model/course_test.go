// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"testing"

	"github.com/olegiv/senatec-go/internal/i18n"
)

func ids(courses []Course) []string {
	out := make([]string, len(courses))
	for i, c := range courses {
		out[i] = c.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFilterByCategory(t *testing.T) {
	courses := []Course{
		{ID: "a", Category: CategoryWeb},
		{ID: "b", Category: CategoryLanguages},
		{ID: "c", Category: CategoryWeb},
		{ID: "d", Category: "robotics"},
		{ID: "e", Category: CategoryProgramming},
	}

	tests := []struct {
		category string
		want     []string
	}{
		{CategoryAll, []string{"a", "b", "c", "d", "e"}},
		{"", []string{"a", "b", "c", "d", "e"}},
		{CategoryWeb, []string{"a", "c"}},
		{CategoryLanguages, []string{"b"}},
		{CategoryProgramming, []string{"e"}},
		{"robotics", []string{"d"}},
		{"cooking", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			got := ids(FilterByCategory(courses, tt.category))
			if !equalIDs(got, tt.want) {
				t.Errorf("FilterByCategory(%q) = %v, want %v", tt.category, got, tt.want)
			}
		})
	}
}

func TestFilterByCategory_SubsetOfInput(t *testing.T) {
	courses := SampleCourses()
	for _, cat := range Categories {
		for _, c := range FilterByCategory(courses, cat) {
			if c.Category != cat {
				t.Errorf("course %s has category %q in %q filter", c.ID, c.Category, cat)
			}
		}
	}
}

func TestFeaturedCourses(t *testing.T) {
	got := ids(FeaturedCourses(SampleCourses()))
	want := []string{"1", "2"}
	if !equalIDs(got, want) {
		t.Errorf("FeaturedCourses = %v, want %v", got, want)
	}
}

func TestCourseLocalizedFields(t *testing.T) {
	c := Course{
		TitleFR:       "Titre",
		TitleEN:       "Title",
		TitleAR:       "",
		DescriptionFR: "Desc FR",
		DescriptionEN: "",
		DescriptionAR: "وصف",
	}

	tests := []struct {
		lang  i18n.Language
		title string
		desc  string
	}{
		{i18n.FR, "Titre", "Desc FR"},
		{i18n.EN, "Title", "Desc FR"},
		{i18n.AR, "Titre", "وصف"},
		{i18n.Language("de"), "Titre", "Desc FR"},
	}

	for _, tt := range tests {
		t.Run(string(tt.lang), func(t *testing.T) {
			if got := c.Title(tt.lang); got != tt.title {
				t.Errorf("Title(%q) = %q, want %q", tt.lang, got, tt.title)
			}
			if got := c.Description(tt.lang); got != tt.desc {
				t.Errorf("Description(%q) = %q, want %q", tt.lang, got, tt.desc)
			}
		})
	}
}

func TestCategoryKey(t *testing.T) {
	if got := (Course{Category: CategoryWeb}).CategoryKey(); got != "courses.filter.web" {
		t.Errorf("CategoryKey = %q, want courses.filter.web", got)
	}
	if got := (Course{Category: "robotics"}).CategoryKey(); got != "" {
		t.Errorf("CategoryKey for unknown = %q, want empty", got)
	}
}

func TestSampleCoursesFresh(t *testing.T) {
	a := SampleCourses()
	a[0].TitleFR = "changed"
	if SampleCourses()[0].TitleFR == "changed" {
		t.Error("SampleCourses returned shared backing data")
	}
}
