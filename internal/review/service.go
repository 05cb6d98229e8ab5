package review

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/go-github/v73/github"

	"github.com/sevigo/pr-review-agent/internal/config"
	"github.com/sevigo/pr-review-agent/internal/core"
	internalgithub "github.com/sevigo/pr-review-agent/internal/github"
)

// defaultIssueTitle is used when the model left an issue title empty.
const defaultIssueTitle = "Code analysis finding"

// Reviewer produces model feedback for the two pipelines.
type Reviewer interface {
	ReviewDiff(ctx context.Context, diff *core.PullRequestDiff) (string, error)
	ReviewBatch(ctx context.Context, batch core.FileBatch) (string, error)
}

// Service runs the pull request review and repository scan pipelines.
// Each operation asks the client factory for fresh credentials.
type Service struct {
	clients     internalgithub.ClientFactory
	reviewer    Reviewer
	concurrency int
	logger      *slog.Logger
}

// NewService creates the review service.
func NewService(clients internalgithub.ClientFactory, reviewer Reviewer, cfg *config.Config, logger *slog.Logger) *Service {
	concurrency := cfg.AI.ScanConcurrency
	if concurrency < 1 {
		concurrency = 1
	}
	return &Service{
		clients:     clients,
		reviewer:    reviewer,
		concurrency: concurrency,
		logger:      logger,
	}
}

var _ core.ReviewService = (*Service)(nil)

// ListPullRequests returns all pull requests of the repository.
func (s *Service) ListPullRequests(ctx context.Context, owner, repo string) ([]*github.PullRequest, error) {
	client, err := s.clients.ForRepository(ctx, owner, repo)
	if err != nil {
		return nil, err
	}
	return client.ListPullRequests(ctx, owner, repo)
}

// ReviewPullRequest generates a review for the pull request and posts it as a comment.
func (s *Service) ReviewPullRequest(ctx context.Context, owner, repo string, number int) (*github.IssueComment, error) {
	client, err := s.clients.ForRepository(ctx, owner, repo)
	if err != nil {
		return nil, err
	}

	review, err := s.generateReview(ctx, client, owner, repo, number)
	if err != nil {
		return nil, err
	}

	comment, err := client.CreateComment(ctx, owner, repo, number, review)
	if err != nil {
		return nil, err
	}

	s.logger.Info("posted pull request review", "owner", owner, "repo", repo, "pr", number, "comment_id", comment.GetID())
	return comment, nil
}

// GenerateReview runs the pull request pipeline without posting the result.
func (s *Service) GenerateReview(ctx context.Context, owner, repo string, number int) (string, error) {
	client, err := s.clients.ForRepository(ctx, owner, repo)
	if err != nil {
		return "", err
	}
	return s.generateReview(ctx, client, owner, repo, number)
}

func (s *Service) generateReview(ctx context.Context, client internalgithub.Client, owner, repo string, number int) (string, error) {
	pr, err := client.GetPullRequest(ctx, owner, repo, number)
	if err != nil {
		return "", err
	}

	files, err := client.ListChangedFiles(ctx, owner, repo, number)
	if err != nil {
		return "", err
	}

	diff, err := FormatDiff(pr, files)
	if err != nil {
		return "", err
	}

	s.logger.Info("reviewing pull request", "owner", owner, "repo", repo, "pr", number, "files", len(diff.Changes))
	return s.reviewer.ReviewDiff(ctx, diff)
}

// AnalyzeRepository scans the repository and files one issue per finding.
// Issues are created in the order the model reported them; the first
// creation failure aborts the remaining ones.
func (s *Service) AnalyzeRepository(ctx context.Context, owner, repo string) ([]*github.Issue, error) {
	client, err := s.clients.ForRepository(ctx, owner, repo)
	if err != nil {
		return nil, err
	}

	findings, err := s.scan(ctx, client, owner, repo)
	if err != nil {
		return nil, err
	}

	created := make([]*github.Issue, 0, len(findings))
	for _, finding := range findings {
		title := finding.Title
		if title == "" {
			title = defaultIssueTitle
		}
		issue, err := client.CreateIssue(ctx, owner, repo, title, internalgithub.FormatIssueBody(finding), finding.Labels())
		if err != nil {
			return nil, fmt.Errorf("failed to create issue %q: %w", title, err)
		}
		created = append(created, issue)
	}

	s.logger.Info("repository analysis complete", "owner", owner, "repo", repo, "issues", len(created))
	return created, nil
}

// ExtractIssues runs the repository scan without filing issues.
func (s *Service) ExtractIssues(ctx context.Context, owner, repo string) ([]core.ReviewIssue, error) {
	client, err := s.clients.ForRepository(ctx, owner, repo)
	if err != nil {
		return nil, err
	}
	return s.scan(ctx, client, owner, repo)
}
