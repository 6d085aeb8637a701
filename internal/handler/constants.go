// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler provides HTTP handlers for the public site, the admin
// login and the course editor.
package handler

// Route paths.
const (
	RouteRoot     = "/"
	RouteLogin    = "/login"
	RouteLogout   = "/logout"
	RouteContact  = "/contact"
	RouteAdmin    = "/admin"
	RouteHealth   = "/health"
	RouteStatic   = "/static"
	RouteLangRoot = "/{lang:(fr|en|ar)}"
)

// Admin route paths.
const (
	RouteAdminCourses = RouteAdmin + "/courses"
	RouteAdminEvents  = RouteAdmin + "/events"
)

// Route suffixes for chi subroutes.
const (
	RouteSuffixNew    = "/new"
	RouteSuffixDelete = "/delete"
	RouteParamID      = "/{id}"
	RouteParamPage    = "/{page}"
	RouteBlogPost     = "/blog/{id}"
)

// Admin tabs.
const (
	TabCourses      = "courses"
	TabBlog         = "blog"
	TabTestimonials = "testimonials"
	TabEvents       = "events"
)

// recentEventsLimit caps the admin event list.
const recentEventsLimit = 50
