package main

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/sevigo/pr-review-agent/internal/gitutil"
)

var reviewDryRun bool

var reviewCmd = &cobra.Command{
	Use:   "review [pr-url]",
	Short: "Review a GitHub pull request",
	Long: `Review a GitHub pull request.

The review command fetches the pull request and its changed files, asks the
configured model for feedback and posts it as a comment on the pull request.
With --dry-run the review is printed instead of posted.`,
	Example: `  review-cli review https://github.com/octo/hello-world/pull/123
  review-cli review octo/hello-world#123 --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runReview,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	reviewCmd.Flags().BoolVar(&reviewDryRun, "dry-run", false, "print the review instead of posting it")
	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, args []string) error {
	owner, repo, number, err := gitutil.ParsePullRequestURL(args[0])
	if err != nil {
		return fmt.Errorf("%w\n\nExpected format: https://github.com/owner/repo/pull/123", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	svc, err := loadService(ctx)
	if err != nil {
		return err
	}

	titleColor.Printf("Reviewing %s/%s#%d\n", owner, repo, number)
	start := time.Now()

	if reviewDryRun {
		review, err := svc.GenerateReview(ctx, owner, repo, number)
		if err != nil {
			return fmt.Errorf("failed to generate review: %w", err)
		}
		dimColor.Printf("Generated in %s (not posted)\n", time.Since(start).Round(time.Millisecond))
		return printMarkdown(review)
	}

	comment, err := svc.ReviewPullRequest(ctx, owner, repo, number)
	if err != nil {
		return fmt.Errorf("failed to review pull request: %w", err)
	}
	successColor.Printf("✓ Review posted in %s\n", time.Since(start).Round(time.Millisecond))
	if url := comment.GetHTMLURL(); url != "" {
		dimColor.Printf("  %s\n", url)
	}
	return nil
}

// printMarkdown renders Markdown for the terminal, falling back to the raw text.
func printMarkdown(markdown string) error {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		fmt.Println(markdown)
		return nil
	}
	out, err := renderer.Render(markdown)
	if err != nil {
		fmt.Println(markdown)
		return nil
	}
	fmt.Print(out)
	return nil
}
