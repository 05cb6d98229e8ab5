package main

import (
	"github.com/google/go-github/v73/github"

	"github.com/sevigo/pr-review-agent/internal/core"
)

// Indicates that the review service has been initialized.
type serviceReadyMsg struct {
	service reviewService
	err     error
}

type pullRequestsMsg struct {
	repo string
	prs  []*github.PullRequest
}

// A generated review that has not been posted.
type reviewMsg struct {
	number int
	body   string
}

type commentPostedMsg struct {
	number int
	url    string
}

type findingsMsg struct {
	repo     string
	findings []core.ReviewIssue
}

// A generic error message for reporting failures from commands.
type errorMsg struct{ err error }

func (e errorMsg) Error() string {
	return e.err.Error()
}
