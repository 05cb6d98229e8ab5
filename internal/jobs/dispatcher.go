// Package jobs defines the work triggered by webhook events.
package jobs

import (
	"context"
	"log/slog"

	"github.com/sevigo/pr-review-agent/internal/core"
)

// dispatcher implements core.JobDispatcher by running the job on the
// caller's goroutine, so the webhook response reflects the job outcome.
type dispatcher struct {
	reviewJob core.Job
	logger    *slog.Logger
}

// NewDispatcher creates a synchronous dispatcher for reviewJob.
func NewDispatcher(reviewJob core.Job, logger *slog.Logger) core.JobDispatcher {
	return &dispatcher{reviewJob: reviewJob, logger: logger}
}

// Dispatch runs the review job for event and returns its error.
func (d *dispatcher) Dispatch(ctx context.Context, event *core.PullRequestEvent) error {
	d.logger.Info("dispatching code review job",
		"repo", event.RepoFullName,
		"pr", event.PRNumber,
		"action", event.Action,
	)

	if err := d.reviewJob.Run(ctx, event); err != nil {
		d.logger.Error("code review job failed",
			"repo", event.RepoFullName,
			"pr", event.PRNumber,
			"error", err,
		)
		return err
	}
	return nil
}
