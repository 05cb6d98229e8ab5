package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sevigo/pr-review-agent/internal/config"
	"github.com/sevigo/pr-review-agent/internal/core"
	"github.com/sevigo/pr-review-agent/internal/server/handler"
)

// requestTimeout bounds a whole request, which may include a repository scan
// with several model calls.
const requestTimeout = 10 * time.Minute

// NewRouter creates and configures a new HTTP router with middleware and API routes.
func NewRouter(cfg *config.Config, service core.ReviewService, dispatcher core.JobDispatcher, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/", handler.Home)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	webhookHandler := handler.NewWebhookHandler(cfg, dispatcher, logger)
	r.Post("/webhook", webhookHandler.Handle)

	r.Route("/api/v1/pr_review", func(r chi.Router) {
		reviewHandler := handler.NewReviewHandler(service, logger)
		r.Get("/", reviewHandler.ListPullRequests)
		r.Get("/fetch_pr_diff", reviewHandler.ReviewPullRequest)
		r.Get("/analyze_repository", reviewHandler.AnalyzeRepository)
	})

	return r
}
