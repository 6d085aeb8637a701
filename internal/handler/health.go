// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"github.com/olegiv/senatec-go/internal/auth"
	"github.com/olegiv/senatec-go/internal/cache"
	"github.com/olegiv/senatec-go/internal/scheduler"
	"github.com/olegiv/senatec-go/internal/version"
)

// Pinger is implemented by *sql.DB and the redis cache.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

// PingContext calls f.
func (f PingFunc) PingContext(ctx context.Context) error {
	return f(ctx)
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	db           Pinger
	cache        Pinger
	cacheBackend string
	cacheStats   cache.StatsProvider
	jobs         func() []scheduler.JobInfo
	manager      *auth.Manager
	version      version.Info
	startTime    time.Time
}

// HealthConfig holds the health handler dependencies. DB and Cache may be
// nil when the component is not configured. CacheStats and Jobs feed the
// admin report only.
type HealthConfig struct {
	DB           Pinger
	Cache        Pinger
	CacheBackend string
	CacheStats   cache.StatsProvider
	Jobs         func() []scheduler.JobInfo
	Manager      *auth.Manager
	Version      version.Info
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(cfg HealthConfig) *HealthHandler {
	return &HealthHandler{
		db:           cfg.DB,
		cache:        cfg.Cache,
		cacheBackend: cfg.CacheBackend,
		cacheStats:   cfg.CacheStats,
		jobs:         cfg.Jobs,
		manager:      cfg.Manager,
		version:      cfg.Version,
		startTime:    time.Now(),
	}
}

// HealthStatusPublic is the minimal health response for anonymous callers.
type HealthStatusPublic struct {
	Status string `json:"status"`
}

// HealthStatus is the detailed response shown to the admin.
type HealthStatus struct {
	Status    string           `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
	Uptime    string           `json:"uptime"`
	Version   string           `json:"version"`
	Checks    map[string]Check `json:"checks"`
	Cache     *cache.Stats     `json:"cache_stats,omitempty"`
	Jobs      []JobStatus      `json:"jobs,omitempty"`
	System    *SystemInfo      `json:"system,omitempty"`
}

// JobStatus reports one scheduled housekeeping job.
type JobStatus struct {
	Name      string     `json:"name"`
	Schedule  string     `json:"schedule"`
	LastRun   *time.Time `json:"last_run,omitempty"`
	NextRun   *time.Time `json:"next_run,omitempty"`
	LastError string     `json:"last_error,omitempty"`
}

// Check represents a single health check result.
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// SystemInfo contains runtime information.
type SystemInfo struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutines"`
	NumCPU       int    `json:"num_cpus"`
	MemAlloc     uint64 `json:"mem_alloc_bytes"`
}

// Check statuses.
const (
	statusHealthy      = "healthy"
	statusUnhealthy    = "unhealthy"
	statusDegraded     = "degraded"
	statusUnconfigured = "unconfigured"
)

// Health handles GET /health. A missing database degrades the site rather
// than stopping it, so it reports degraded with status 200. A failing
// ping reports 503.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	dbCheck := h.check(r.Context(), h.db)
	cacheCheck := h.check(r.Context(), h.cache)
	if h.cache == nil {
		cacheCheck = Check{Status: statusHealthy, Message: h.cacheBackend}
	}

	overall := statusHealthy
	code := http.StatusOK
	switch {
	case dbCheck.Status == statusUnhealthy || cacheCheck.Status == statusUnhealthy:
		overall = statusDegraded
		code = http.StatusServiceUnavailable
	case dbCheck.Status == statusUnconfigured:
		overall = statusDegraded
	}

	if !h.isAdmin(r) {
		writeJSON(w, code, HealthStatusPublic{Status: overall})
		return
	}

	status := HealthStatus{
		Status:    overall,
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Version:   h.version.Version,
		Checks: map[string]Check{
			"database": dbCheck,
			"cache":    cacheCheck,
		},
	}
	if h.cacheStats != nil {
		stats := h.cacheStats.Stats()
		status.Cache = &stats
	}
	if h.jobs != nil {
		status.Jobs = jobStatuses(h.jobs())
	}
	if r.URL.Query().Get("verbose") == "true" {
		status.System = systemInfo()
	}
	writeJSON(w, code, status)
}

// Liveness handles GET /health/live.
func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// Readiness handles GET /health/ready. The site serves pages without a
// database, so only a failing ping makes it not ready.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	dbCheck := h.check(r.Context(), h.db)
	if dbCheck.Status == statusUnhealthy {
		resp := map[string]string{"status": "not_ready"}
		if h.isAdmin(r) {
			resp["message"] = dbCheck.Message
		}
		writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (h *HealthHandler) check(ctx context.Context, p Pinger) Check {
	if p == nil {
		return Check{Status: statusUnconfigured}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	err := p.PingContext(ctx)
	latency := time.Since(start)
	if err != nil {
		return Check{Status: statusUnhealthy, Message: err.Error(), Latency: latency.String()}
	}
	return Check{Status: statusHealthy, Message: "Connected", Latency: latency.String()}
}

// isAdmin reports whether the request carries an admin session. scs
// panics when the session was not loaded; that counts as anonymous.
func (h *HealthHandler) isAdmin(r *http.Request) (admin bool) {
	if h.manager == nil {
		return false
	}
	defer func() {
		if rec := recover(); rec != nil {
			admin = false
		}
	}()
	return h.manager.Restore(r.Context()).IsAdmin()
}

func jobStatuses(jobs []scheduler.JobInfo) []JobStatus {
	out := make([]JobStatus, 0, len(jobs))
	for _, j := range jobs {
		js := JobStatus{Name: j.Name, Schedule: j.Schedule, LastError: j.LastError}
		if !j.LastRun.IsZero() {
			js.LastRun = &j.LastRun
		}
		if !j.NextRun.IsZero() {
			js.NextRun = &j.NextRun
		}
		out = append(out, js)
	}
	return out
}

func systemInfo() *SystemInfo {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return &SystemInfo{
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		NumCPU:       runtime.NumCPU(),
		MemAlloc:     m.Alloc,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
