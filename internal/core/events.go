// Package core defines the data structures and interfaces shared by the
// review pipelines, the HTTP layer and the CLI.
package core

import (
	"errors"
	"fmt"

	"github.com/google/go-github/v73/github"
)

// ErrEventIgnored is returned for webhook events that do not trigger a review.
var ErrEventIgnored = errors.New("event does not trigger a review")

// PullRequestEvent is the internal view of a pull request webhook.
type PullRequestEvent struct {
	Action         string
	RepoOwner      string
	RepoName       string
	RepoFullName   string
	PRNumber       int
	InstallationID int64
}

// EventFromPullRequest converts a GitHub pull_request webhook payload into a
// PullRequestEvent. Only "opened" and "reopened" actions that carry a
// pull_request section qualify; everything else returns ErrEventIgnored.
func EventFromPullRequest(event *github.PullRequestEvent) (*PullRequestEvent, error) {
	if event == nil {
		return nil, ErrEventIgnored
	}

	action := event.GetAction()
	if action != "opened" && action != "reopened" {
		return nil, fmt.Errorf("%w: action %q", ErrEventIgnored, action)
	}
	if event.PullRequest == nil {
		return nil, fmt.Errorf("%w: payload has no pull_request section", ErrEventIgnored)
	}

	repo := event.GetRepo()
	if repo == nil || repo.GetOwner().GetLogin() == "" || repo.GetName() == "" {
		return nil, fmt.Errorf("%w: repository or owner information is missing", ErrInvalidData)
	}

	number := event.GetPullRequest().GetNumber()
	if number == 0 {
		number = event.GetNumber()
	}
	if number <= 0 {
		return nil, fmt.Errorf("%w: invalid pull request number %d", ErrInvalidData, number)
	}

	fullName := repo.GetFullName()
	if fullName == "" {
		fullName = repo.GetOwner().GetLogin() + "/" + repo.GetName()
	}

	return &PullRequestEvent{
		Action:         action,
		RepoOwner:      repo.GetOwner().GetLogin(),
		RepoName:       repo.GetName(),
		RepoFullName:   fullName,
		PRNumber:       number,
		InstallationID: event.GetInstallation().GetID(),
	}, nil
}
