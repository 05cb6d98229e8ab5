package main

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/google/go-github/v73/github"

	"github.com/sevigo/pr-review-agent/internal/config"
	"github.com/sevigo/pr-review-agent/internal/core"
	"github.com/sevigo/pr-review-agent/internal/wire"
)

// reviewService is the part of the review service the terminal drives.
type reviewService interface {
	ListPullRequests(ctx context.Context, owner, repo string) ([]*github.PullRequest, error)
	GenerateReview(ctx context.Context, owner, repo string, number int) (string, error)
	ReviewPullRequest(ctx context.Context, owner, repo string, number int) (*github.IssueComment, error)
	ExtractIssues(ctx context.Context, owner, repo string) ([]core.ReviewIssue, error)
}

func initializeServiceCmd(envFile string) tea.Cmd {
	return func() tea.Msg {
		cfg, err := config.Load(envFile, config.WithOverride("LOG_OUTPUT", "file"))
		if err != nil {
			return serviceReadyMsg{err: fmt.Errorf("failed to load configuration: %w", err)}
		}
		svc, err := wire.InitializeReviewService(context.Background(), cfg)
		if err != nil {
			return serviceReadyMsg{err: err}
		}
		return serviceReadyMsg{service: svc}
	}
}

func listPullRequestsCmd(svc reviewService, owner, repo string) tea.Cmd {
	return func() tea.Msg {
		prs, err := svc.ListPullRequests(context.Background(), owner, repo)
		if err != nil {
			return errorMsg{err}
		}
		return pullRequestsMsg{repo: owner + "/" + repo, prs: prs}
	}
}

func generateReviewCmd(svc reviewService, owner, repo string, number int) tea.Cmd {
	return func() tea.Msg {
		body, err := svc.GenerateReview(context.Background(), owner, repo, number)
		if err != nil {
			return errorMsg{err}
		}
		return reviewMsg{number: number, body: body}
	}
}

func postReviewCmd(svc reviewService, owner, repo string, number int) tea.Cmd {
	return func() tea.Msg {
		comment, err := svc.ReviewPullRequest(context.Background(), owner, repo, number)
		if err != nil {
			return errorMsg{err}
		}
		return commentPostedMsg{number: number, url: comment.GetHTMLURL()}
	}
}

func scanRepositoryCmd(svc reviewService, owner, repo string) tea.Cmd {
	return func() tea.Msg {
		findings, err := svc.ExtractIssues(context.Background(), owner, repo)
		if err != nil {
			return errorMsg{err}
		}
		return findingsMsg{repo: owner + "/" + repo, findings: findings}
	}
}

// findingsMarkdown lays out scan findings the way they would be filed.
func findingsMarkdown(repo string, findings []core.ReviewIssue) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Scan of %s\n\n", repo)
	if len(findings) == 0 {
		b.WriteString("No issues found.\n")
		return b.String()
	}
	for _, f := range findings {
		title := f.Title
		if title == "" {
			title = "Untitled finding"
		}
		fmt.Fprintf(&b, "## %s\n\n", title)
		fmt.Fprintf(&b, "`%s` · %s\n\n", f.Severity, strings.Join(f.Labels(), ", "))
		if f.File != "" {
			fmt.Fprintf(&b, "**File:** `%s`\n\n", f.File)
		}
		if f.Description != "" {
			fmt.Fprintf(&b, "%s\n\n", f.Description)
		}
		if f.Recommendation != "" {
			fmt.Fprintf(&b, "> %s\n\n", strings.ReplaceAll(f.Recommendation, "\n", "\n> "))
		}
	}
	return b.String()
}

func renderMarkdown(markdown string, width int) string {
	if width < 20 {
		width = 80
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return markdown
	}
	out, err := renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return strings.TrimRight(out, "\n")
}
