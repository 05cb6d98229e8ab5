package github

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sevigo/pr-review-agent/internal/core"
)

const (
	// MaxFetchSize is the exclusive upper bound on the size of a fetched file.
	MaxFetchSize = 100_000
	// maxWalkDepth limits directory recursion.
	maxWalkDepth = 32
)

// skippedSuffixes lists binary and minified files that are never sent for review.
var skippedSuffixes = []string{
	".png", ".jpg", ".jpeg", ".gif", ".svg", ".ico",
	".woff", ".woff2", ".ttf", ".eot",
	".pdf", ".zip", ".tar.gz",
	".min.js", ".min.css",
}

// ShouldFetch reports whether a file's content is worth downloading.
func ShouldFetch(name string, size int) bool {
	if size >= MaxFetchSize {
		return false
	}
	lower := strings.ToLower(name)
	for _, suffix := range skippedSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return false
		}
	}
	return true
}

// FetchRepositoryFiles walks the repository tree depth-first and downloads
// every reviewable file. If the root listing fails the scan degrades to an
// empty result instead of failing.
func FetchRepositoryFiles(ctx context.Context, client Client, owner, repo string, logger *slog.Logger) ([]core.RepositoryFile, error) {
	entries, err := client.ListDirectory(ctx, owner, repo, "")
	if err != nil {
		logger.Warn("could not list repository root, treating repository as empty", "owner", owner, "repo", repo, "error", err)
		return []core.RepositoryFile{}, nil
	}

	w := &treeWalker{client: client, owner: owner, repo: repo, logger: logger}
	files := []core.RepositoryFile{}
	if err := w.walk(ctx, entries, 0, &files); err != nil {
		return nil, err
	}

	logger.Info("collected repository files", "owner", owner, "repo", repo, "files", len(files))
	return files, nil
}

type treeWalker struct {
	client Client
	owner  string
	repo   string
	logger *slog.Logger
}

func (w *treeWalker) walk(ctx context.Context, entries []core.DirectoryEntry, depth int, files *[]core.RepositoryFile) error {
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		switch entry.Type {
		case core.EntryFile:
			if !ShouldFetch(entry.Name, entry.Size) {
				w.logger.Debug("skipping file", "path", entry.Path, "size", entry.Size)
				continue
			}
			content, ok, err := w.client.GetRawFileContent(ctx, entry.DownloadURL)
			if err != nil {
				return fmt.Errorf("failed to fetch %s: %w", entry.Path, err)
			}
			*files = append(*files, core.RepositoryFile{Path: entry.Path, Content: content, HasContent: ok})

		case core.EntryDir:
			if depth+1 >= maxWalkDepth {
				w.logger.Warn("directory nesting too deep, skipping", "path", entry.Path, "depth", depth+1)
				continue
			}
			children, err := w.client.ListDirectory(ctx, w.owner, w.repo, entry.Path)
			if err != nil {
				return fmt.Errorf("failed to list %s: %w", entry.Path, err)
			}
			if err := w.walk(ctx, children, depth+1, files); err != nil {
				return err
			}
		}
	}
	return nil
}
