// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/kordy/folio/internal/auth"
	"github.com/kordy/folio/internal/cache"
	"github.com/kordy/folio/internal/config"
	"github.com/kordy/folio/internal/handler"
	"github.com/kordy/folio/internal/handler/api"
	"github.com/kordy/folio/internal/logging"
	"github.com/kordy/folio/internal/mail"
	"github.com/kordy/folio/internal/middleware"
	"github.com/kordy/folio/internal/scheduler"
	"github.com/kordy/folio/internal/service"
	"github.com/kordy/folio/internal/session"
	"github.com/kordy/folio/internal/store"
	"github.com/kordy/folio/internal/version"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "folio - portfolio site backend\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_ADMIN_PASSWORD   Editor password (required)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_ADMIN_USERNAME   Editor username (default: admin)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_DB_DRIVER        Database driver: sqlite|mysql (default: sqlite)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_DB_PATH          SQLite path or MySQL DSN (default: ./data/folio.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_SERVER_PORT      Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_ENV              Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_REDIS_URL        Redis URL for distributed caching (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_RESEND_API_KEY   Resend API key for the contact form (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_MAIL_TO          Contact form recipient address (optional)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		fmt.Println(version.String())
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	if cfg.DBDriver == store.DriverSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
	}

	slog.Info("initializing database", "driver", cfg.DBDriver)
	db, err := store.Open(cfg.DBDriver, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db, cfg.DBDriver); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Upgrade logger to also write WARN and ERROR logs to the event log table
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)
	slog.Info("event log integration enabled", "min_level", "warn")

	cacheManager := cache.New(cache.Config{
		RedisURL:   cfg.RedisURL,
		Prefix:     cfg.CachePrefix,
		DefaultTTL: time.Duration(cfg.CacheTTL) * time.Second,
	})
	defer func() {
		if err := cacheManager.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()

	svc := service.NewPortfolioService(db, cacheManager)

	sessionManager := session.New(db, cfg.DBDriver, cfg.IsDevelopment())

	authenticator, err := auth.NewEnvAuthenticator(cfg.AdminUsername, cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("initializing authenticator: %w", err)
	}

	var sender mail.Sender
	if cfg.MailEnabled() {
		sender = mail.NewResendSender(cfg.ResendAPIKey, cfg.MailFrom, cfg.MailTo)
		slog.Info("contact form mail delivery enabled", "to", cfg.MailTo)
	} else {
		slog.Warn("contact form mail delivery disabled: FOLIO_RESEND_API_KEY or FOLIO_MAIL_TO not set")
	}

	sched := scheduler.New(db, logger, cfg.FileRetentionDays)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	apiHandler := api.NewHandler(db, svc, sessionManager, authenticator, sender, cfg.UploadMaxBytes)
	healthHandler := handler.NewHealthHandler(db)
	contactLimiter := middleware.NewRateLimiter(1.0, 5)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(middleware.CORS)
	r.Use(sessionManager.LoadAndSave)

	r.NotFound(api.NotFound)
	r.MethodNotAllowed(api.MethodNotAllowed)

	r.Get("/health", healthHandler.Liveness)
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	r.Route("/api", func(r chi.Router) {
		r.Get("/portfolio", apiHandler.GetPortfolio)
		r.Get("/file", apiHandler.GetFile)
		r.With(contactLimiter.Middleware()).Post("/send-email", apiHandler.SendEmail)

		r.Post("/login", apiHandler.Login)
		r.Post("/logout", apiHandler.Logout)
		r.Get("/session", apiHandler.Session)

		// Edit mode: everything below requires an authenticated session
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession(sessionManager))

			r.Put("/portfolio", apiHandler.PutPortfolio)
			r.Post("/upload", apiHandler.Upload)

			r.Route("/portfolio/{section}", func(r chi.Router) {
				r.Get("/", apiHandler.ListSection)
				r.Post("/", apiHandler.AddElement)
				r.Post("/reorder", apiHandler.ReorderSection)
				r.Patch("/{id}", apiHandler.UpdateElement)
				r.Delete("/{id}", apiHandler.RemoveElement)
			})
		})
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second, // Longer to allow for large uploads and slow connections
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
