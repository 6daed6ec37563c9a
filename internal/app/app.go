package app

import (
	"context"
	"fmt"
	"log/slog"

	httpapp "github.com/akazakov/polls-api/internal/app/http"
	"github.com/akazakov/polls-api/internal/config"
	"github.com/akazakov/polls-api/internal/handlers"
	"github.com/akazakov/polls-api/internal/middleware"
	"github.com/akazakov/polls-api/internal/services/auth"
	"github.com/akazakov/polls-api/internal/services/polls"
	"github.com/akazakov/polls-api/internal/storage/memory"
	"github.com/akazakov/polls-api/internal/storage/postgres"
)

// Storage is the full persistence contract both drivers satisfy.
type Storage interface {
	polls.PollStorage
	polls.VoteStorage
	polls.ResultStorage
	auth.UserSaver
	auth.UserProvider
	Stop() error
}

type App struct {
	HTTPServer *httpapp.App
	Polls      *polls.Polls
	Auth       *auth.Auth
	storage    Storage
}

func NewApp(log *slog.Logger, cfg *config.Config) *App {
	store, err := newStorage(cfg)
	if err != nil {
		panic(err)
	}

	authService := auth.NewAuth(log, store, store, cfg.Auth.Secret, cfg.Auth.TokenTTL)
	pollsService := polls.NewPolls(log, store, store, store, cfg.HTTP.MaxPageSize)

	authHandler := handlers.NewAuthHandler(authService)
	pollsHandler := handlers.NewPollsHandler(pollsService)
	authMiddleware := middleware.NewAuthMiddleware(authService)

	httpApp := httpapp.NewApp(log, cfg.HTTP.Port, authHandler, pollsHandler, authMiddleware.Middleware())

	return &App{
		HTTPServer: httpApp,
		Polls:      pollsService,
		Auth:       authService,
		storage:    store,
	}
}

func newStorage(cfg *config.Config) (Storage, error) {
	const op = "app.newStorage"

	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		store, err := postgres.New(cfg.Storage.URL)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return store, nil
	case config.StorageDriverMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("%s: unknown storage driver %q", op, cfg.Storage.Driver)
	}
}

func (a *App) Stop(ctx context.Context) error {
	if err := a.HTTPServer.Stop(ctx); err != nil {
		return err
	}
	return a.storage.Stop()
}
