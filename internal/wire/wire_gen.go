// Code generated manually. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package wire

import (
	"context"

	"github.com/sevigo/pr-review-agent/internal/app"
	"github.com/sevigo/pr-review-agent/internal/config"
	"github.com/sevigo/pr-review-agent/internal/github"
	"github.com/sevigo/pr-review-agent/internal/jobs"
	"github.com/sevigo/pr-review-agent/internal/llm"
	"github.com/sevigo/pr-review-agent/internal/review"
	"github.com/sevigo/pr-review-agent/internal/server"
)

// Injectors from wire.go:

func InitializeApp(ctx context.Context) (*app.App, error) {
	configConfig, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	logger := provideSlogLogger(configConfig)
	clientFactory, err := github.NewClientFactory(configConfig, logger)
	if err != nil {
		return nil, err
	}
	model, err := llm.NewModel(ctx, configConfig, logger)
	if err != nil {
		return nil, err
	}
	completer := provideCompleter(model, configConfig)
	promptManager, err := llm.NewPromptManager()
	if err != nil {
		return nil, err
	}
	reviewGenerator := llm.NewReviewGenerator(completer, promptManager, configConfig, logger)
	service := review.NewService(clientFactory, reviewGenerator, configConfig, logger)
	job := jobs.NewReviewJob(service, logger)
	jobDispatcher := jobs.NewDispatcher(job, logger)
	serverServer := server.NewServer(configConfig, service, jobDispatcher, logger)
	appApp := app.NewApp(configConfig, service, serverServer, logger)
	return appApp, nil
}

func InitializeReviewService(ctx context.Context, cfg *config.Config) (*review.Service, error) {
	logger := provideSlogLogger(cfg)
	clientFactory, err := github.NewClientFactory(cfg, logger)
	if err != nil {
		return nil, err
	}
	model, err := llm.NewModel(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	completer := provideCompleter(model, cfg)
	promptManager, err := llm.NewPromptManager()
	if err != nil {
		return nil, err
	}
	reviewGenerator := llm.NewReviewGenerator(completer, promptManager, cfg, logger)
	service := review.NewService(clientFactory, reviewGenerator, cfg, logger)
	return service, nil
}
