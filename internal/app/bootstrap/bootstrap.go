package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	pollengine "agora/contexts/governance/poll-engine"
	pollpostgres "agora/contexts/governance/poll-engine/adapters/postgres"
	surveyservice "agora/contexts/governance/survey-service"
	surveypostgres "agora/contexts/governance/survey-service/adapters/postgres"
	voteservice "agora/contexts/governance/vote-service"
	votepostgres "agora/contexts/governance/vote-service/adapters/postgres"
	"agora/internal/platform/config"
	"agora/internal/platform/db"
	"agora/internal/platform/httpserver"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	if err := pollpostgres.AutoMigrate(pg.DB); err != nil {
		return nil, err
	}
	if err := surveypostgres.AutoMigrate(pg.DB); err != nil {
		return nil, err
	}
	if err := votepostgres.AutoMigrate(pg.DB); err != nil {
		return nil, err
	}

	pollRepo := pollpostgres.NewRepository(pg.DB, logger)
	pollModule := pollengine.NewModule(pollengine.Dependencies{
		Questions: pollRepo,
		IDGen:     pollpostgres.UUIDGenerator{},
		Logger:    logger,
	})

	surveyRepo := surveypostgres.NewRepository(pg.DB, logger)
	surveyModule := surveyservice.NewModule(surveyservice.Dependencies{
		Surveys:   surveyRepo,
		Questions: pollModule.Service,
		IDGen:     surveypostgres.UUIDGenerator{},
		Logger:    logger,
	})

	voteRepo := votepostgres.NewRepository(pg.DB, logger)
	voteModule := voteservice.NewModule(voteservice.Dependencies{
		Votes:     voteRepo,
		Questions: pollModule.Service,
		Meetings:  voteRepo,
		Clock:     votepostgres.SystemClock{},
		IDGen:     votepostgres.UUIDGenerator{},
		Logger:    logger,
	})

	server := httpserver.New(pollModule, surveyModule, voteModule, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
