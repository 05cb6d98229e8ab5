package core

import (
	"context"

	"github.com/google/go-github/v73/github"
)

// JobDispatcher hands a qualifying webhook event to a job. The dispatcher
// runs the job before returning, so the caller learns the outcome.
//
//go:generate mockgen -destination=../../mocks/mock_job_dispatcher.go -package=mocks . JobDispatcher
type JobDispatcher interface {
	Dispatch(ctx context.Context, event *PullRequestEvent) error
}

// Job is a single unit of work triggered by a PullRequestEvent.
type Job interface {
	Run(ctx context.Context, event *PullRequestEvent) error
}

// ReviewService exposes the two review pipelines and the pull request listing
// used by the HTTP handlers and the CLI.
//
//go:generate mockgen -destination=../../mocks/mock_review_service.go -package=mocks . ReviewService
type ReviewService interface {
	ListPullRequests(ctx context.Context, owner, repo string) ([]*github.PullRequest, error)
	ReviewPullRequest(ctx context.Context, owner, repo string, number int) (*github.IssueComment, error)
	AnalyzeRepository(ctx context.Context, owner, repo string) ([]*github.Issue, error)
}
