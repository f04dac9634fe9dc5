package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/exp/slog"

	"formular230/internal/app/server/api"
	"formular230/internal/app/server/config"
	"formular230/internal/domain/form"
	"formular230/internal/domain/session"
	"formular230/internal/domain/settings"
	"formular230/internal/infrastructure/document"
	"formular230/internal/infrastructure/github"
	"formular230/internal/infrastructure/storage"
	"formular230/internal/infrastructure/storage/blob"
	"formular230/internal/infrastructure/storage/postgres"
	"formular230/internal/infrastructure/storage/redis"
	"formular230/internal/infrastructure/storage/sqlite"
	"formular230/internal/utils/logger"
)

const (
	shutdownTimeout  = 10 * time.Second
	bootstrapTimeout = 30 * time.Second
	purgeInterval    = time.Hour
)

// purger - хранилища сессий без встроенного TTL
type purger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

func main() {
	cfg := config.MustLoad()
	log := logger.New(cfg.Env, cfg.Logger.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	gh := github.NewClient(github.Options{
		BaseURL:    cfg.Github.APIURL,
		Token:      cfg.Github.Token,
		Owner:      cfg.Github.Owner,
		Repo:       cfg.Github.Repo,
		Branch:     cfg.Github.Branch,
		OwnerIsOrg: cfg.Github.OwnerIsOrg,
		Timeout:    cfg.Github.Timeout,
	}, log)

	bootstrap := github.NewBootstrapper(gh, cfg.Github.BootstrapDelay, log,
		github.Seed{Path: storage.FormsPath, Content: []form.Form{}},
		github.Seed{Path: storage.SettingsPath, Content: settings.Default()},
	)

	formRepo := blob.NewFormRepository(gh, bootstrap, form.NewIDClock(nil), log)
	settingsRepo := blob.NewSettingsRepository(gh, bootstrap, log)

	sessionRepo, closer, err := openSessions(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closer.Close()

	if p, ok := sessionRepo.(purger); ok {
		go purgeExpired(ctx, p, log)
	}

	mux := api.New(api.Services{
		Storage:  gh,
		Forms:    form.NewService(formRepo, form.NewValidator(), log),
		Exporter: document.NewRenderer(document.DefaultEntity(), log),
		Settings: settings.NewService(settingsRepo, cfg.Admin.MasterPassword, log),
		Sessions: session.NewService(sessionRepo, cfg.Session.TTL, log),
	}, log)

	srv := &http.Server{
		Addr:              cfg.Server.RunAddress,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Репозиторий готовим до старта, при неудаче его доготовят первые запросы
	bootCtx, cancelBoot := context.WithTimeout(ctx, bootstrapTimeout)
	if !bootstrap.EnsureReady(bootCtx) {
		log.Warn("storage repository is not ready yet")
	}
	cancelBoot()

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", "address", cfg.Server.RunAddress, "env", cfg.Env, "session_store", cfg.Session.Store)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

func openSessions(ctx context.Context, cfg *config.Config, log *slog.Logger) (session.Repository, io.Closer, error) {
	switch cfg.Session.Store {
	case config.SessionStorePostgres:
		db, err := postgres.New(ctx, cfg.Session.DatabaseURI)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewSessionRepository(db, log), db, nil
	case config.SessionStoreRedis:
		rdb, err := redis.Connect(ctx, redis.Options{
			Addr:     cfg.Session.RedisAddr,
			Password: cfg.Session.RedisPass,
			DB:       cfg.Session.RedisDB,
		})
		if err != nil {
			return nil, nil, err
		}
		return redis.NewSessionRepository(rdb, log), rdb, nil
	default:
		db, err := sqlite.Open(cfg.Session.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return sqlite.NewSessionRepository(db, log), db, nil
	}
}

func purgeExpired(ctx context.Context, p purger, log *slog.Logger) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := p.PurgeExpired(ctx)
			if err != nil {
				log.Warn("failed to purge expired sessions", "error", err)
				continue
			}
			if n > 0 {
				log.Debug("expired sessions purged", "count", n)
			}
		}
	}
}
