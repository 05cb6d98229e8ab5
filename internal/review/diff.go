// Package review orchestrates the pull request review and repository scan pipelines.
package review

import (
	"fmt"

	"github.com/google/go-github/v73/github"

	"github.com/sevigo/pr-review-agent/internal/core"
)

// FormatDiff converts pull request metadata and its changed files into the
// payload reviewed by the model. File order is preserved and a file without a
// patch (binary or too large) gets an empty patch.
func FormatDiff(pr *github.PullRequest, files []*github.CommitFile) (*core.PullRequestDiff, error) {
	if pr == nil {
		return nil, fmt.Errorf("%w: pull request is missing", core.ErrInvalidData)
	}
	if pr.Title == nil {
		return nil, fmt.Errorf("%w: pull request #%d has no title", core.ErrInvalidData, pr.GetNumber())
	}

	diff := &core.PullRequestDiff{
		Title:       pr.GetTitle(),
		Description: pr.GetBody(),
		Changes:     make([]core.FileChange, 0, len(files)),
	}

	for i, f := range files {
		if f == nil || f.Filename == nil {
			return nil, fmt.Errorf("%w: changed file %d has no filename", core.ErrInvalidData, i)
		}
		diff.Changes = append(diff.Changes, core.FileChange{
			Filename:  f.GetFilename(),
			Status:    f.GetStatus(),
			Additions: f.GetAdditions(),
			Deletions: f.GetDeletions(),
			Patch:     f.GetPatch(),
		})
	}

	return diff, nil
}
