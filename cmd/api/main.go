package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"portfolio/internal/adapters/emailjs"
	server "portfolio/internal/adapters/http_server"
	"portfolio/internal/adapters/observability"
	"portfolio/internal/adapters/outbound"
	redisad "portfolio/internal/adapters/redis"
	"portfolio/internal/adapters/web3forms"
	"portfolio/internal/app"
	"portfolio/internal/content"
	"portfolio/internal/domain"
	"portfolio/internal/shared"
	mysqlrepo "portfolio/internal/storage/mysql"
	"portfolio/internal/storage/sqlite"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	// db
	db, err := openDB(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StorageDriver).Msg("open storage failed")
	}
	defer db.Close()
	log.Info().Str("driver", cfg.StorageDriver).Msg("database connection ok")
	repo := mysqlrepo.New(db)

	// cache is optional; reviews are read straight from storage without it
	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err := rc.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unavailable, running without cache")
			_ = rc.Close()
		} else {
			cache = rc
			defer rc.Close()
		}
	}

	// mail: Web3Forms first, EmailJS as fallback
	mailOpts := outbound.Options{RPS: cfg.MailRPS, MaxAttempts: cfg.MailMaxAttempts}
	chain := app.NewMailChain(
		web3forms.New(cfg.Web3FormsURL, cfg.Web3FormsKey, outbound.New("web3forms", mailOpts)),
		emailjs.New(emailjs.Config{
			URL:        cfg.EmailJSURL,
			ServiceID:  cfg.EmailJSServiceID,
			TemplateID: cfg.EmailJSTemplateID,
			PublicKey:  cfg.EmailJSPublicKey,
			PrivateKey: cfg.EmailJSPrivateKey,
		}, outbound.New("emailjs", mailOpts)),
	)
	notifier := app.NewNotifier(chain, cfg.NotifyWorkers, 20*time.Second)

	reviews := app.NewReviewService(repo, cache, cfg.CacheTTL)
	bookings := app.NewBookingService(repo, notifier)

	go purgeLoop(ctx, bookings, cfg.BookingRetention)

	// http
	srv := server.New(server.Options{
		AdminKey:    cfg.AdminKey,
		AllowOrigin: cfg.SiteOrigin,
		SubmitRPS:   cfg.SubmitRPS,
		SubmitBurst: cfg.SubmitBurst,
		TrustProxy:  cfg.TrustProxy,
	})
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Reviews:    reviews,
		Bookings:   bookings,
		Contact:    app.NewContactService(chain),
		Admin:      app.NewAdminService(repo, repo),
		Site:       content.Default(),
		OwnerEmail: cfg.OwnerEmail,
	})

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Mux(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
	// let queued owner notifications finish
	notifier.Close()
}

func openDB(ctx context.Context, cfg shared.Config) (*sql.DB, error) {
	switch cfg.StorageDriver {
	case "sqlite":
		return sqlite.Open(ctx, cfg.SQLitePath)
	case "mysql":
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			return nil, fmt.Errorf("sql.Open: %w", err)
		}
		db.SetMaxOpenConns(10)
		db.SetConnMaxLifetime(5 * time.Minute)
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("db.Ping: %w", err)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}
}

// purgeLoop drops bookings older than retention once at startup and then daily.
func purgeLoop(ctx context.Context, s *app.BookingService, retention time.Duration) {
	if retention <= 0 {
		return
	}
	t := time.NewTicker(24 * time.Hour)
	defer t.Stop()
	for {
		if _, err := s.Purge(ctx, retention); err != nil && ctx.Err() == nil {
			log.Error().Err(err).Msg("booking purge failed")
		}
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
}
