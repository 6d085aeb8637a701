// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/senatec-go/internal/i18n"
	"github.com/olegiv/senatec-go/internal/model"
	"github.com/olegiv/senatec-go/internal/store"
)

func courseValues() url.Values {
	return url.Values{
		"title_fr":       {"Anglais Business"},
		"title_en":       {"Business English"},
		"title_ar":       {"الإنجليزية للأعمال"},
		"description_fr": {"Communication professionnelle"},
		"description_en": {"Professional communication"},
		"description_ar": {"التواصل المهني"},
		"category":       {model.CategoryLanguages},
		"duration":       {"2 mois"},
		"price":          {"280"},
		"image_url":      {"https://example.com/english.jpg"},
		"is_featured":    {"on"},
	}
}

func newAdminEnv(t *testing.T) *testEnv {
	t.Helper()
	env := newTestEnv(t)
	env.catalog.courses = []model.Course{
		testCourse("c1", "Python Avancé", model.CategoryProgramming, true),
		testCourse("c2", "Design Graphique", model.CategoryWeb, false),
	}
	env.login()
	return env
}

func TestDashboard_ListsCourses(t *testing.T) {
	env := newAdminEnv(t)

	rec := env.get(RouteAdmin)

	require.Equal(t, http.StatusOK, rec.Code)
	assertBody(t, rec, "Python Avancé")
	assertBody(t, rec, "Design Graphique")
	body := rec.Body.String()
	assert.Contains(t, body, `href="/admin/courses/c1"`)
	assert.Contains(t, body, `action="/admin/courses/c2/delete"`)
	assert.NotContains(t, body, `name="title_fr"`, "form closed while idle")
}

func TestDashboard_Empty(t *testing.T) {
	env := newTestEnv(t)
	env.login()

	rec := env.get(RouteAdmin)

	require.Equal(t, http.StatusOK, rec.Code)
	assertBody(t, rec, env.T(i18n.FR, "admin.courses.empty.title"))
}

func TestDashboard_LoadFailure(t *testing.T) {
	env := newAdminEnv(t)
	env.catalog.setFailReads(true)

	rec := env.get(RouteAdmin)

	require.Equal(t, http.StatusOK, rec.Code)
	assertBody(t, rec, env.T(i18n.FR, "common.load_failed"))
	assertNotBody(t, rec, env.T(i18n.FR, "admin.courses.empty.title"))
}

func TestDashboard_OtherTabsInDevelopment(t *testing.T) {
	env := newAdminEnv(t)

	for _, tab := range []string{TabBlog, TabTestimonials} {
		rec := env.get(RouteAdmin + "?tab=" + tab)
		require.Equal(t, http.StatusOK, rec.Code, tab)
		assertBody(t, rec, env.T(i18n.FR, "admin.in_development"))
		assertNotBody(t, rec, "Python Avancé")
	}
}

func TestNewCourse_OpensBlankForm(t *testing.T) {
	env := newAdminEnv(t)

	rec := env.get(RouteAdminCourses + "/new")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `action="/admin/courses"`)
	assert.Contains(t, body, `name="title_fr" value=""`)
	assert.Contains(t, body, `<option value="programming" selected>`)
}

func TestCreateCourse(t *testing.T) {
	env := newAdminEnv(t)

	rec := env.post(RouteAdminCourses, courseValues())

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, RouteAdmin, rec.Header().Get("Location"))
	require.Len(t, env.catalog.courses, 3)
	created := env.catalog.courses[2]
	assert.Equal(t, "Business English", created.TitleEN)
	assert.Equal(t, model.CategoryLanguages, created.Category)
	assert.InDelta(t, 280, created.Price, 0.001)
	assert.True(t, created.IsFeatured)

	rec = env.get(RouteAdmin)
	assertBody(t, rec, env.T(i18n.FR, "admin.course.created"))
	assertBody(t, rec, "Anglais Business")
}

func TestCreateCourse_ValidationKeepsForm(t *testing.T) {
	env := newAdminEnv(t)
	values := courseValues()
	values.Set("title_ar", "")

	rec := env.post(RouteAdminCourses+"?lang=en", values)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assertBody(t, rec, env.T(i18n.EN, "admin.form.invalid"))
	assert.Contains(t, rec.Body.String(), `value="Business English"`)
	assert.Contains(t, rec.Body.String(), `action="/admin/courses?lang=en"`)
	assert.Len(t, env.catalog.courses, 2)
}

func TestCreateCourse_BadPrice(t *testing.T) {
	env := newAdminEnv(t)
	values := courseValues()
	values.Set("price", "abc")

	rec := env.post(RouteAdminCourses, values)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assertBody(t, rec, env.T(i18n.FR, "admin.form.price_invalid"))
	assert.Len(t, env.catalog.courses, 2)
}

func TestCreateCourse_StoreFailureKeepsForm(t *testing.T) {
	env := newAdminEnv(t)
	env.catalog.setFailWrites(true)

	rec := env.post(RouteAdminCourses, courseValues())

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assertBody(t, rec, env.T(i18n.FR, "admin.course.error_save"))
	assert.Contains(t, rec.Body.String(), `value="Business English"`)
	assert.Len(t, env.catalog.courses, 2)
}

func TestEditCourse_PopulatesForm(t *testing.T) {
	env := newAdminEnv(t)

	rec := env.get(RouteAdminCourses + "/c2")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `action="/admin/courses/c2"`)
	assert.Contains(t, body, `value="Design Graphique EN"`)
	assert.Contains(t, body, `<option value="web" selected>`)
	assert.Contains(t, body, `class="editing"`)
}

func TestEditCourse_Unknown(t *testing.T) {
	env := newAdminEnv(t)

	rec := env.get(RouteAdminCourses + "/missing")

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, RouteAdmin, rec.Header().Get("Location"))

	rec = env.get(RouteAdmin)
	assertBody(t, rec, env.T(i18n.FR, "admin.course.not_found"))
}

func TestUpdateCourse_SendsOnlyChangedFields(t *testing.T) {
	env := newAdminEnv(t)
	orig := env.catalog.courses[1]

	values := url.Values{
		"title_fr":       {orig.TitleFR},
		"title_en":       {"Graphic Design Pro"},
		"title_ar":       {orig.TitleAR},
		"description_fr": {orig.DescriptionFR},
		"description_en": {orig.DescriptionEN},
		"description_ar": {orig.DescriptionAR},
		"category":       {orig.Category},
		"duration":       {orig.Duration},
		"price":          {"400"},
		"image_url":      {orig.ImageURL},
	}

	rec := env.post(RouteAdminCourses+"/c2", values)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	patch := env.catalog.patches["c2"]
	require.NotNil(t, patch.TitleEN)
	assert.Equal(t, "Graphic Design Pro", *patch.TitleEN)
	require.NotNil(t, patch.Price)
	assert.InDelta(t, 400, *patch.Price, 0.001)
	assert.Nil(t, patch.TitleFR)
	assert.Nil(t, patch.Category)
	assert.Nil(t, patch.IsFeatured)

	updated := env.catalog.courses[1]
	assert.Equal(t, "Graphic Design Pro", updated.TitleEN)
	assert.Equal(t, orig.TitleFR, updated.TitleFR)

	rec = env.get(RouteAdmin)
	assertBody(t, rec, env.T(i18n.FR, "admin.course.updated"))
}

func TestUpdateCourse_UnknownCourse(t *testing.T) {
	env := newAdminEnv(t)

	rec := env.post(RouteAdminCourses+"/missing", courseValues())

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Empty(t, env.catalog.patches)
}

func TestUpdateCourse_ValidationKeepsForm(t *testing.T) {
	env := newAdminEnv(t)
	values := courseValues()
	values.Set("duration", "")

	rec := env.post(RouteAdminCourses+"/c1", values)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), `action="/admin/courses/c1"`)
	assert.Empty(t, env.catalog.patches)
}

func TestDeleteCourse(t *testing.T) {
	env := newAdminEnv(t)

	rec := env.post(RouteAdminCourses+"/c1/delete", nil)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, []string{"c1"}, env.catalog.deleted)
	require.Len(t, env.catalog.courses, 1)
	assert.Equal(t, "c2", env.catalog.courses[0].ID)

	rec = env.get(RouteAdmin)
	assertBody(t, rec, env.T(i18n.FR, "admin.course.deleted"))
	assertNotBody(t, rec, "Python Avancé")
}

func TestDeleteCourse_Failures(t *testing.T) {
	tests := []struct {
		name string
		id   string
		fail bool
		key  string
	}{
		{"unknown course", "missing", false, "admin.course.not_found"},
		{"store failure", "c1", true, "admin.course.error_delete"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newAdminEnv(t)
			env.catalog.setFailWrites(tt.fail)

			rec := env.post(RouteAdminCourses+"/"+tt.id+"/delete", nil)
			require.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Len(t, env.catalog.courses, 2)

			rec = env.get(RouteAdmin)
			assertBody(t, rec, env.T(i18n.FR, tt.key))
		})
	}
}

func TestEvents(t *testing.T) {
	env := newAdminEnv(t)
	_, err := env.catalog.CreateEvent(t.Context(), store.CreateEventParams{
		Level:    model.EventLevelError,
		Category: model.EventCategoryCourse,
		Message:  "failed to create course",
		Metadata: `{"error":"backend down"}`,
	})
	require.NoError(t, err)

	rec := env.get(RouteAdminEvents)

	require.Equal(t, http.StatusOK, rec.Code)
	assertBody(t, rec, "failed to create course")
	assert.Contains(t, rec.Body.String(), `class="level-error"`)
}

func TestEvents_Empty(t *testing.T) {
	env := newAdminEnv(t)

	rec := env.get(RouteAdminEvents + "?lang=en")

	require.Equal(t, http.StatusOK, rec.Code)
	assertBody(t, rec, env.T(i18n.EN, "admin.events.empty"))
}
