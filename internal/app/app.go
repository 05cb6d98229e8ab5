// Package app holds the assembled components of the review agent.
package app

import (
	"log/slog"

	"github.com/sevigo/pr-review-agent/internal/config"
	"github.com/sevigo/pr-review-agent/internal/review"
	"github.com/sevigo/pr-review-agent/internal/server"
)

// App holds the main application components.
type App struct {
	Cfg     *config.Config
	Service *review.Service
	Logger  *slog.Logger
	server  *server.Server
}

// NewApp bundles the wired components.
func NewApp(cfg *config.Config, service *review.Service, srv *server.Server, logger *slog.Logger) *App {
	return &App{
		Cfg:     cfg,
		Service: service,
		Logger:  logger,
		server:  srv,
	}
}

// Start runs the HTTP server and blocks until it stops.
func (a *App) Start() error {
	a.Logger.Info("starting PR review agent",
		"address", a.Cfg.Server.Addr(),
		"environment", a.Cfg.Environment,
		"auth_mode", a.Cfg.GitHub.AuthMode,
		"llm_provider", a.Cfg.AI.Provider,
		"model", a.Cfg.AI.GeneratorModel,
	)

	if err := a.server.Start(); err != nil {
		a.Logger.Error("failed to start HTTP server", "error", err)
		return err
	}
	return nil
}

// Stop shuts down the HTTP server, letting in-flight reviews finish.
func (a *App) Stop() error {
	if err := a.server.Stop(); err != nil {
		a.Logger.Error("error during HTTP server shutdown", "error", err)
		return err
	}
	a.Logger.Info("PR review agent stopped")
	return nil
}
