package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sevigo/pr-review-agent/internal/config"
	"github.com/sevigo/pr-review-agent/internal/core"
)

const (
	// MaxFileContentChars is the number of characters of a file kept in a scan prompt.
	MaxFileContentChars = 10_000
	truncationMarker    = "\n... [content truncated] ...\n"
)

// ReviewGenerator renders review prompts and asks the model for feedback.
type ReviewGenerator struct {
	completer Completer
	prompts   *PromptManager
	provider  ModelProvider
	logger    *slog.Logger
}

// NewReviewGenerator creates a generator using the prompt variant of the configured provider.
func NewReviewGenerator(completer Completer, prompts *PromptManager, cfg *config.Config, logger *slog.Logger) *ReviewGenerator {
	return &ReviewGenerator{
		completer: completer,
		prompts:   prompts,
		provider:  ModelProvider(cfg.AI.Provider),
		logger:    logger,
	}
}

type diffPromptData struct {
	Diff string
}

type scanPromptData struct {
	Owner     string
	Repo      string
	Extension string
	Files     []scanPromptFile
}

type scanPromptFile struct {
	Path    string
	Content string
}

// ReviewDiff asks the model for feedback on a pull request diff and returns
// the raw Markdown answer.
func (g *ReviewGenerator) ReviewDiff(ctx context.Context, diff *core.PullRequestDiff) (string, error) {
	if diff == nil || len(diff.Changes) == 0 {
		return "", fmt.Errorf("%w: PR diff not found", core.ErrNotFound)
	}

	payload, err := json.MarshalIndent(diff, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode diff: %w", err)
	}

	prompt, err := g.prompts.Render(PullRequestReviewPrompt, g.provider, diffPromptData{Diff: string(payload)})
	if err != nil {
		return "", err
	}

	g.logger.Info("requesting pull request review", "files", len(diff.Changes), "prompt_chars", len(prompt))
	return g.complete(ctx, "review diff", prompt)
}

// ReviewBatch asks the model to list issues found in a batch of files that
// share an extension. The answer is Markdown in the "## Issue Title:" format.
func (g *ReviewGenerator) ReviewBatch(ctx context.Context, batch core.FileBatch) (string, error) {
	if len(batch.Files) == 0 {
		return "", fmt.Errorf("%w: batch has no files", core.ErrNotFound)
	}
	if len(batch.Files) > core.MaxFilesPerBatch {
		return "", fmt.Errorf("%w: batch has %d files, at most %d allowed", core.ErrInvalidData, len(batch.Files), core.MaxFilesPerBatch)
	}

	data := scanPromptData{
		Owner:     batch.Owner,
		Repo:      batch.Repo,
		Extension: batch.Extension,
		Files:     make([]scanPromptFile, 0, len(batch.Files)),
	}
	for _, f := range batch.Files {
		data.Files = append(data.Files, scanPromptFile{Path: f.Path, Content: TruncateContent(f.Content)})
	}

	prompt, err := g.prompts.Render(RepositoryScanPrompt, g.provider, data)
	if err != nil {
		return "", err
	}

	g.logger.Info("requesting repository batch review", "extension", batch.Extension, "files", len(batch.Files))
	return g.complete(ctx, "review batch", prompt)
}

func (g *ReviewGenerator) complete(ctx context.Context, op, prompt string) (string, error) {
	text, err := g.completer.Complete(ctx, prompt)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusGatewayTimeout
		}
		return "", &core.UpstreamError{Service: "llm", Op: op, StatusCode: status, Body: err.Error(), Err: err}
	}
	if strings.TrimSpace(text) == "" {
		return "", &core.UpstreamError{Service: "llm", Op: op, StatusCode: http.StatusBadGateway, Body: "model returned an empty response"}
	}
	return text, nil
}

// TruncateContent cuts s to MaxFileContentChars characters and appends a
// marker. Content at or below the limit is returned unchanged.
func TruncateContent(s string) string {
	count := 0
	for i := range s {
		if count == MaxFileContentChars {
			return s[:i] + truncationMarker
		}
		count++
	}
	return s
}
