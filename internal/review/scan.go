package review

import (
	"context"
	"path"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/sevigo/pr-review-agent/internal/core"
	internalgithub "github.com/sevigo/pr-review-agent/internal/github"
	"github.com/sevigo/pr-review-agent/internal/llm"
)

func (s *Service) scan(ctx context.Context, client internalgithub.Client, owner, repo string) ([]core.ReviewIssue, error) {
	files, err := internalgithub.FetchRepositoryFiles(ctx, client, owner, repo, s.logger)
	if err != nil {
		return nil, err
	}

	batches := BuildBatches(owner, repo, files)
	s.logger.Info("scanning repository", "owner", owner, "repo", repo, "files", len(files), "batches", len(batches))
	return s.reviewBatches(ctx, batches), nil
}

// reviewBatches sends every batch to the model and parses the findings.
// A failed batch is logged and contributes no issues.
func (s *Service) reviewBatches(ctx context.Context, batches []core.FileBatch) []core.ReviewIssue {
	results := make([][]core.ReviewIssue, len(batches))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, batch := range batches {
		g.Go(func() error {
			answer, err := s.reviewer.ReviewBatch(gctx, batch)
			if err != nil {
				s.logger.Error("batch analysis failed", "extension", batch.Extension, "files", len(batch.Files), "error", err)
				return nil
			}
			results[i] = llm.ParseIssues(answer)
			return nil
		})
	}
	_ = g.Wait()

	issues := []core.ReviewIssue{}
	for _, r := range results {
		issues = append(issues, r...)
	}
	return issues
}

// BuildBatches groups files by extension and splits each group into batches
// of at most core.MaxFilesPerBatch files. Files without content are left out.
// Groups are ordered by extension; files keep their discovery order.
func BuildBatches(owner, repo string, files []core.RepositoryFile) []core.FileBatch {
	groups := make(map[string][]core.RepositoryFile)
	for _, f := range files {
		if !f.HasContent {
			continue
		}
		ext := extensionOf(f.Path)
		groups[ext] = append(groups[ext], f)
	}

	exts := make([]string, 0, len(groups))
	for ext := range groups {
		exts = append(exts, ext)
	}
	sort.Strings(exts)

	var batches []core.FileBatch
	for _, ext := range exts {
		group := groups[ext]
		for start := 0; start < len(group); start += core.MaxFilesPerBatch {
			end := min(start+core.MaxFilesPerBatch, len(group))
			batches = append(batches, core.FileBatch{
				Owner:     owner,
				Repo:      repo,
				Extension: ext,
				Files:     group[start:end],
			})
		}
	}
	return batches
}

// extensionOf returns the extension of the file name, or "" for names
// without one. Dotfiles such as ".gitignore" have no extension.
func extensionOf(p string) string {
	base := path.Base(p)
	trimmed := strings.TrimLeft(base, ".")
	if trimmed == "" {
		return ""
	}
	return path.Ext(trimmed)
}
