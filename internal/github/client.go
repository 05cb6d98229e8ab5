// Package github provides functionality for interacting with the GitHub API.
package github

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v73/github"
	"golang.org/x/oauth2"

	"github.com/sevigo/pr-review-agent/internal/core"
)

// maxRawContentBytes bounds a single raw file download.
const maxRawContentBytes = 1 << 20

// Client defines the GitHub operations used by the review pipelines.
//
//go:generate mockgen -destination=../../mocks/mock_github_client.go -package=mocks . Client
type Client interface {
	ListPullRequests(ctx context.Context, owner, repo string) ([]*github.PullRequest, error)
	GetPullRequest(ctx context.Context, owner, repo string, number int) (*github.PullRequest, error)
	ListChangedFiles(ctx context.Context, owner, repo string, number int) ([]*github.CommitFile, error)
	CreateComment(ctx context.Context, owner, repo string, number int, body string) (*github.IssueComment, error)
	ListDirectory(ctx context.Context, owner, repo, path string) ([]core.DirectoryEntry, error)
	GetRawFileContent(ctx context.Context, rawURL string) (string, bool, error)
	CreateIssue(ctx context.Context, owner, repo, title, body string, labels []string) (*github.Issue, error)
}

type gitHubClient struct {
	client *github.Client
	logger *slog.Logger
}

// NewGitHubClient wraps the official go-github client.
func NewGitHubClient(client *github.Client, logger *slog.Logger) Client {
	return &gitHubClient{client: client, logger: logger}
}

// NewTokenClient creates a client that sends token as a bearer credential on every request.
// baseURL overrides the public API endpoint when non-empty.
func NewTokenClient(ctx context.Context, token, baseURL string, logger *slog.Logger) (Client, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	client, err := newAPIClient(oauth2.NewClient(ctx, ts), baseURL)
	if err != nil {
		return nil, err
	}
	return NewGitHubClient(client, logger), nil
}

func newAPIClient(httpClient *http.Client, baseURL string) (*github.Client, error) {
	client := github.NewClient(httpClient)
	if baseURL == "" {
		return client, nil
	}
	u, err := url.Parse(strings.TrimSuffix(baseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("invalid GitHub API URL %q: %w", baseURL, err)
	}
	client.BaseURL = u
	return client, nil
}

// ListPullRequests returns every pull request of the repository, open or closed.
func (g *gitHubClient) ListPullRequests(ctx context.Context, owner, repo string) ([]*github.PullRequest, error) {
	var all []*github.PullRequest
	opts := &github.PullRequestListOptions{
		State:       "all",
		ListOptions: github.ListOptions{PerPage: 100},
	}

	for {
		prs, resp, err := g.client.PullRequests.List(ctx, owner, repo, opts)
		if err != nil {
			g.logger.Error("failed to list pull requests", "owner", owner, "repo", repo, "error", err)
			return nil, upstreamError("list pull requests", resp, err)
		}
		all = append(all, prs...)

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return all, nil
}

// GetPullRequest retrieves a single pull request by its number.
func (g *gitHubClient) GetPullRequest(ctx context.Context, owner, repo string, number int) (*github.PullRequest, error) {
	pr, resp, err := g.client.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		g.logger.Error("failed to get pull request", "owner", owner, "repo", repo, "pr", number, "error", err)
		return nil, upstreamError("get pull request", resp, err)
	}
	return pr, nil
}

// ListChangedFiles retrieves the files modified in a pull request, following
// pagination so that pull requests with more than 100 files are complete.
func (g *gitHubClient) ListChangedFiles(ctx context.Context, owner, repo string, number int) ([]*github.CommitFile, error) {
	var all []*github.CommitFile
	opts := &github.ListOptions{PerPage: 100}

	for {
		files, resp, err := g.client.PullRequests.ListFiles(ctx, owner, repo, number, opts)
		if err != nil {
			g.logger.Error("failed to list files for pull request", "owner", owner, "repo", repo, "pr", number, "error", err)
			return nil, upstreamError("list pull request files", resp, err)
		}
		all = append(all, files...)

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return all, nil
}

// CreateComment creates a new comment on a pull request.
func (g *gitHubClient) CreateComment(ctx context.Context, owner, repo string, number int, body string) (*github.IssueComment, error) {
	comment, resp, err := g.client.Issues.CreateComment(ctx, owner, repo, number, &github.IssueComment{Body: &body})
	if err != nil {
		g.logger.Error("failed to create comment", "owner", owner, "repo", repo, "pr", number, "error", err)
		return nil, upstreamError("create comment", resp, err)
	}
	return comment, nil
}

// ListDirectory lists the contents of path. When path points at a file the
// result is a single entry.
func (g *gitHubClient) ListDirectory(ctx context.Context, owner, repo, path string) ([]core.DirectoryEntry, error) {
	file, dir, resp, err := g.client.Repositories.GetContents(ctx, owner, repo, path, nil)
	if err != nil {
		g.logger.Error("failed to list repository contents", "owner", owner, "repo", repo, "path", path, "error", err)
		return nil, upstreamError("list contents", resp, err)
	}

	if file != nil {
		return []core.DirectoryEntry{toDirectoryEntry(file)}, nil
	}

	entries := make([]core.DirectoryEntry, 0, len(dir))
	for _, item := range dir {
		entries = append(entries, toDirectoryEntry(item))
	}
	return entries, nil
}

func toDirectoryEntry(c *github.RepositoryContent) core.DirectoryEntry {
	return core.DirectoryEntry{
		Name:        c.GetName(),
		Path:        c.GetPath(),
		Type:        core.EntryType(c.GetType()),
		Size:        c.GetSize(),
		DownloadURL: c.GetDownloadURL(),
	}
}

// GetRawFileContent downloads the raw file behind rawURL. A non-success
// status is reported as absent content rather than as an error.
func (g *gitHubClient) GetRawFileContent(ctx context.Context, rawURL string) (string, bool, error) {
	if rawURL == "" {
		return "", false, nil
	}

	req, err := g.client.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return "", false, fmt.Errorf("failed to build request for %s: %w", rawURL, err)
	}
	req.Header.Set("Accept", "application/vnd.github.raw")

	resp, err := g.client.BareDo(ctx, req)
	if err != nil {
		if resp != nil && resp.Response != nil {
			g.logger.Debug("raw file not available", "url", rawURL, "status", resp.StatusCode)
			return "", false, nil
		}
		return "", false, upstreamError("download file", resp, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxRawContentBytes))
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", rawURL, err)
	}
	return string(data), true, nil
}

// CreateIssue opens a new issue with the given labels.
func (g *gitHubClient) CreateIssue(ctx context.Context, owner, repo, title, body string, labels []string) (*github.Issue, error) {
	req := &github.IssueRequest{
		Title:  &title,
		Body:   &body,
		Labels: &labels,
	}
	issue, resp, err := g.client.Issues.Create(ctx, owner, repo, req)
	if err != nil {
		g.logger.Error("failed to create issue", "owner", owner, "repo", repo, "title", title, "error", err)
		return nil, upstreamError("create issue", resp, err)
	}
	return issue, nil
}
