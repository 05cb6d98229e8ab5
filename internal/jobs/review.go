package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sevigo/pr-review-agent/internal/core"
)

// ReviewJob reviews the pull request named by a webhook event and posts the result.
type ReviewJob struct {
	service core.ReviewService
	logger  *slog.Logger
}

// NewReviewJob creates a new ReviewJob backed by the review service.
func NewReviewJob(service core.ReviewService, logger *slog.Logger) core.Job {
	if service == nil {
		panic("review service cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &ReviewJob{service: service, logger: logger}
}

// Run executes the pull request review for the event.
func (j *ReviewJob) Run(ctx context.Context, event *core.PullRequestEvent) error {
	if err := validateEvent(event); err != nil {
		j.logger.Error("input validation failed", "error", err)
		return fmt.Errorf("input validation failed: %w", err)
	}

	j.logger.Info("starting review job", "repo", event.RepoFullName, "pr", event.PRNumber)

	comment, err := j.service.ReviewPullRequest(ctx, event.RepoOwner, event.RepoName, event.PRNumber)
	if err != nil {
		return fmt.Errorf("failed to review pull request: %w", err)
	}

	j.logger.Info("review job completed", "repo", event.RepoFullName, "pr", event.PRNumber, "comment_id", comment.GetID())
	return nil
}

func validateEvent(event *core.PullRequestEvent) error {
	if event == nil {
		return fmt.Errorf("%w: event cannot be nil", core.ErrInvalidData)
	}
	if event.RepoOwner == "" {
		return fmt.Errorf("%w: repository owner cannot be empty", core.ErrInvalidData)
	}
	if event.RepoName == "" {
		return fmt.Errorf("%w: repository name cannot be empty", core.ErrInvalidData)
	}
	if event.PRNumber <= 0 {
		return fmt.Errorf("%w: pull request number must be positive, got: %d", core.ErrInvalidData, event.PRNumber)
	}
	return nil
}
