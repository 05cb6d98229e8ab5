package wire

import (
	"log/slog"

	"github.com/google/wire"
	"github.com/sevigo/goframe/llms"

	"github.com/sevigo/pr-review-agent/internal/app"
	"github.com/sevigo/pr-review-agent/internal/config"
	"github.com/sevigo/pr-review-agent/internal/core"
	internalgithub "github.com/sevigo/pr-review-agent/internal/github"
	"github.com/sevigo/pr-review-agent/internal/jobs"
	"github.com/sevigo/pr-review-agent/internal/llm"
	"github.com/sevigo/pr-review-agent/internal/logger"
	"github.com/sevigo/pr-review-agent/internal/review"
	"github.com/sevigo/pr-review-agent/internal/server"
)

// ServiceSet builds the review service from a loaded configuration.
var ServiceSet = wire.NewSet(
	provideSlogLogger,
	internalgithub.NewClientFactory,
	llm.NewModel,
	provideCompleter,
	llm.NewPromptManager,
	llm.NewReviewGenerator,
	wire.Bind(new(review.Reviewer), new(*llm.ReviewGenerator)),
	review.NewService,
)

// AppSet builds the HTTP service.
var AppSet = wire.NewSet(
	ServiceSet,
	config.LoadConfig,
	wire.Bind(new(core.ReviewService), new(*review.Service)),
	jobs.NewReviewJob,
	jobs.NewDispatcher,
	server.NewServer,
	app.NewApp,
)

func provideSlogLogger(cfg *config.Config) *slog.Logger {
	l := logger.NewLogger(cfg.Logging, nil)
	slog.SetDefault(l)
	return l
}

func provideCompleter(model llms.Model, cfg *config.Config) llm.Completer {
	return llm.NewCompleter(model, cfg.AI.Timeout)
}
