//go:build wireinject
// +build wireinject

package wire

import (
	"context"

	"github.com/google/wire"

	"github.com/sevigo/pr-review-agent/internal/app"
	"github.com/sevigo/pr-review-agent/internal/config"
	"github.com/sevigo/pr-review-agent/internal/review"
)

func InitializeApp(ctx context.Context) (*app.App, error) {
	wire.Build(AppSet)
	return &app.App{}, nil
}

func InitializeReviewService(ctx context.Context, cfg *config.Config) (*review.Service, error) {
	wire.Build(ServiceSet)
	return &review.Service{}, nil
}
