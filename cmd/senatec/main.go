// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/olegiv/senatec-go/internal/auth"
	"github.com/olegiv/senatec-go/internal/cache"
	"github.com/olegiv/senatec-go/internal/config"
	"github.com/olegiv/senatec-go/internal/contact"
	"github.com/olegiv/senatec-go/internal/handler"
	"github.com/olegiv/senatec-go/internal/i18n"
	"github.com/olegiv/senatec-go/internal/logging"
	"github.com/olegiv/senatec-go/internal/middleware"
	"github.com/olegiv/senatec-go/internal/render"
	"github.com/olegiv/senatec-go/internal/scheduler"
	"github.com/olegiv/senatec-go/internal/session"
	"github.com/olegiv/senatec-go/internal/store"
	"github.com/olegiv/senatec-go/internal/version"
	"github.com/olegiv/senatec-go/web"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

// staticMaxAge is the Cache-Control max-age for /static assets.
const staticMaxAge = 86400

// registerPublicRoutes registers the public pages on r. It is used for the
// unprefixed tree and for each /{lang} subtree.
func registerPublicRoutes(r chi.Router, h *handler.FrontendHandler) {
	r.Get(handler.RouteRoot, h.Home)
	r.Get(handler.RouteContact, h.Contact)
	r.Post(handler.RouteContact, h.ContactSubmit)
	r.Get(handler.RouteBlogPost, h.BlogPost)
	r.Get(handler.RouteParamPage, h.Page)
}

func main() {
	// Parse CLI flags
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Senatec - training center website\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SENATEC_SESSION_SECRET       Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SENATEC_DB_URL               Database URL: postgres://..., sqlite://path or path.db (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SENATEC_DB_KEY               Database password for postgres (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SENATEC_SERVER_PORT          Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SENATEC_ENV                  Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SENATEC_ADMIN_PASSWORD_HASH  Argon2id hash of the admin password (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SENATEC_LOGIN_PROTECTION     Rate limit and lock out failed logins (default: false)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SENATEC_REDIS_URL            Redis URL for the catalog cache (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SENATEC_EVENT_RETENTION_DAYS Days of event log to keep, 0 keeps all (default: 30)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SENATEC_SEED_DEMO            Fill empty tables with the sample catalog (default: false)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	info := version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}

	if *showVersion {
		_, _ = fmt.Println(info.String())
		os.Exit(0)
	}

	if err := run(info); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(info version.Info) error {
	// Load .env files if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})
	logger := slog.New(textHandler)
	slog.SetDefault(logger)

	catalog, err := i18n.NewCatalog(logger)
	if err != nil {
		return fmt.Errorf("initializing i18n: %w", err)
	}
	slog.Info("i18n catalog loaded", "languages", i18n.SupportedLanguages)

	ctx := context.Background()

	// Data layer. Without a database URL the site still serves pages and
	// every data access fails with store.ErrNotConfigured.
	var (
		data      store.Catalog  = store.Unconfigured{}
		events    store.EventLog = store.Unconfigured{}
		pruner    scheduler.EventPruner
		sessionDB *sql.DB
		dbPinger  handler.Pinger
	)
	db, dialect, err := store.Open(ctx, cfg.DBURL, cfg.DBKey)
	switch {
	case errors.Is(err, store.ErrNotConfigured):
		slog.Warn("database not configured, catalog data is unavailable", "category", "config")
	case err != nil:
		return fmt.Errorf("opening database: %w", err)
	default:
		defer func() {
			if err := db.Close(); err != nil {
				slog.Error("error closing database connection", "error", err)
			}
		}()

		slog.Info("running database migrations", "dialect", dialect)
		if err := store.Migrate(db, dialect); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}

		queries := store.New(db, dialect)
		if cfg.SeedDemo {
			if err := store.SeedDemo(ctx, queries); err != nil {
				return fmt.Errorf("seeding demo content: %w", err)
			}
		}
		data, events, pruner = queries, queries, queries
		dbPinger = db
		if dialect == store.DialectSQLite {
			sessionDB = db
		}

		// Upgrade logger to also write WARN and ERROR logs to the event log
		logger = slog.New(logging.NewEventLogHandler(textHandler, queries))
		slog.SetDefault(logger)
		slog.Info("event log integration enabled", "min_level", "warn")
	}

	sessionManager := session.New(sessionDB, cfg.IsDevelopment())
	slog.Info("session manager initialized", "persistent", sessionDB != nil)

	var verifier auth.Verifier = auth.StaticVerifier{Username: cfg.AdminUsername, Password: cfg.AdminPassword}
	if cfg.UsePasswordHash() {
		verifier = auth.HashVerifier{Username: cfg.AdminUsername, PasswordHash: cfg.AdminPasswordHash}
	}
	authManager := auth.NewManager(session.NewAuthStore(sessionManager), verifier, logger)
	var loginProtection *middleware.LoginProtection
	if cfg.LoginProtection {
		loginProtection = middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
		slog.Info("login protection enabled")
	}

	// Catalog cache. An unreachable Redis falls back to process memory.
	cacheConfig := cache.Config{
		RedisURL:        cfg.RedisURL,
		Prefix:          cfg.CachePrefix,
		DefaultTTL:      cfg.CacheTTLDuration(),
		CleanupInterval: time.Minute,
	}
	backend, backendName, err := cache.New(cacheConfig)
	if err != nil {
		slog.Warn("cache backend unavailable, using memory", "category", "cache", "backend", backendName, "error", err)
		cacheConfig.RedisURL = ""
		backend, backendName, _ = cache.New(cacheConfig)
	}
	defer func() { _ = backend.Close() }()
	slog.Info("cache initialized", "backend", backendName)

	// Redis answers PING; the memory backend has nothing to check.
	cachePinger, _ := backend.(handler.Pinger)
	cacheStats, _ := backend.(cache.StatsProvider)
	cachedCatalog := cache.NewCatalogCache(data, backend, logger)

	// Housekeeping jobs
	sched := scheduler.New(logger)
	if loginProtection != nil {
		if err := sched.Register(scheduler.LoginCleanupJobName, "Drop expired login attempts",
			scheduler.LoginCleanupSchedule, func(context.Context) error {
				loginProtection.Cleanup()
				return nil
			}); err != nil {
			return fmt.Errorf("registering login cleanup: %w", err)
		}
	}
	if pruner != nil {
		if err := sched.RegisterPurgeEvents(pruner, cfg.EventRetention()); err != nil {
			return fmt.Errorf("registering event purge: %w", err)
		}
		if err := sched.RegisterWarmCatalog(cachedCatalog); err != nil {
			return fmt.Errorf("registering catalog warmup: %w", err)
		}
	}
	sched.Start()
	defer sched.Stop()

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("getting templates fs: %w", err)
	}
	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sessionManager,
		Links:          contact.NewLinks(cfg.WhatsAppNumber, cfg.PhoneNumber),
		Logger:         logger,
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}

	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		return fmt.Errorf("getting static fs: %w", err)
	}

	frontendHandler := handler.NewFrontendHandler(cachedCatalog, renderer, logger, cfg.WhatsAppNumber)
	authHandler := handler.NewAuthHandler(authManager, loginProtection, renderer, logger)
	adminHandler := handler.NewAdminHandler(cachedCatalog, events, renderer, logger)
	healthHandler := handler.NewHealthHandler(handler.HealthConfig{
		DB:           dbPinger,
		Cache:        cachePinger,
		CacheBackend: backendName,
		CacheStats:   cacheStats,
		Jobs:         sched.List,
		Manager:      authManager,
		Version:      info,
	})

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))               // Gzip compression with level 5
	r.Use(chimw.GetHead)                   // Handle HEAD requests for uptime monitoring
	r.Use(chimw.Timeout(30 * time.Second)) // 30 second request timeout
	r.Use(middleware.StripTrailingSlash)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))
	r.Use(sessionManager.LoadAndSave)
	r.Use(middleware.CSRF(middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret)[:32], cfg.IsDevelopment())))

	// Health checks
	r.Get(handler.RouteHealth, healthHandler.Health)
	r.Get(handler.RouteHealth+"/live", healthHandler.Liveness)
	r.Get(handler.RouteHealth+"/ready", healthHandler.Readiness)

	// Static assets
	r.With(middleware.StaticCache(staticMaxAge)).
		Handle(handler.RouteStatic+"/*", http.StripPrefix(handler.RouteStatic+"/", http.FileServerFS(staticFS)))

	r.Group(func(r chi.Router) {
		r.Use(middleware.Language(catalog))
		r.Use(middleware.LoadSession(authManager))

		registerPublicRoutes(r, frontendHandler)
		r.Route(handler.RouteLangRoot, func(r chi.Router) {
			registerPublicRoutes(r, frontendHandler)
		})

		r.Get(handler.RouteLogin, authHandler.LoginForm)
		r.With(loginProtection.Middleware()).Post(handler.RouteLogin, authHandler.Login)
		r.Post(handler.RouteLogout, authHandler.Logout)

		r.Route(handler.RouteAdmin, func(r chi.Router) {
			r.Use(middleware.RequireAdmin(authManager))
			r.Use(middleware.NoStore)

			r.Get(handler.RouteRoot, adminHandler.Dashboard)
			r.Get("/events", adminHandler.Events)
			r.Get("/courses"+handler.RouteSuffixNew, adminHandler.NewCourse)
			r.Post("/courses", adminHandler.CreateCourse)
			r.Get("/courses"+handler.RouteParamID, adminHandler.EditCourse)
			r.Post("/courses"+handler.RouteParamID, adminHandler.UpdateCourse)
			r.Post("/courses"+handler.RouteParamID+handler.RouteSuffixDelete, adminHandler.DeleteCourse)
		})
	})

	// 404 Not Found handler, localized from ?lang
	notFound := middleware.Language(catalog)(middleware.LoadSession(authManager)(http.HandlerFunc(frontendHandler.NotFound)))
	r.NotFound(notFound.ServeHTTP)

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second, // Reduced from 120s to mitigate slowloris attacks
		MaxHeaderBytes:    1 << 20,          // 1MB max header size
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", info.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
