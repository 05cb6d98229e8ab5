package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sevigo/pr-review-agent/internal/core"
	"github.com/sevigo/pr-review-agent/internal/gitutil"
)

var (
	scanDryRun bool
	scanOutput string
)

var scanCmd = &cobra.Command{
	Use:   "scan [owner/repo]",
	Short: "Scan a repository and file an issue per finding",
	Long: `Scan a repository for code quality, security and performance problems.

Files are grouped by extension and reviewed in batches; each finding is filed
as a GitHub issue labelled code-analysis and a priority label. With --dry-run
the findings are printed instead of filed.`,
	Example: `  review-cli scan octo/hello-world --dry-run
  review-cli scan octo/hello-world --dry-run --output yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	scanCmd.Flags().BoolVar(&scanDryRun, "dry-run", false, "print findings instead of filing issues")
	scanCmd.Flags().StringVarP(&scanOutput, "output", "o", formatTable, "output format: table, json or yaml")
	rootCmd.AddCommand(scanCmd)
}

type filedIssue struct {
	Number int      `json:"number" yaml:"number"`
	Title  string   `json:"title" yaml:"title"`
	Labels []string `json:"labels" yaml:"labels"`
	URL    string   `json:"url" yaml:"url"`
}

func runScan(cmd *cobra.Command, args []string) error {
	if err := validateFormat(scanOutput); err != nil {
		return err
	}
	owner, repo, err := gitutil.ParseRepository(args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	svc, err := loadService(ctx)
	if err != nil {
		return err
	}

	if scanOutput == formatTable {
		titleColor.Printf("Scanning %s/%s\n", owner, repo)
	}

	if scanDryRun {
		findings, err := svc.ExtractIssues(ctx, owner, repo)
		if err != nil {
			return fmt.Errorf("failed to scan repository: %w", err)
		}
		if scanOutput != formatTable {
			return encode(os.Stdout, scanOutput, findings)
		}
		printFindings(findings)
		return nil
	}

	issues, err := svc.AnalyzeRepository(ctx, owner, repo)
	if err != nil {
		return fmt.Errorf("failed to analyze repository: %w", err)
	}

	filed := make([]filedIssue, 0, len(issues))
	for _, issue := range issues {
		labels := make([]string, 0, len(issue.Labels))
		for _, l := range issue.Labels {
			labels = append(labels, l.GetName())
		}
		filed = append(filed, filedIssue{
			Number: issue.GetNumber(),
			Title:  issue.GetTitle(),
			Labels: labels,
			URL:    issue.GetHTMLURL(),
		})
	}

	if scanOutput != formatTable {
		return encode(os.Stdout, scanOutput, filed)
	}

	successColor.Printf("✓ Filed %d issues\n\n", len(filed))
	if len(filed) == 0 {
		return nil
	}
	table := newTable(os.Stdout, []string{"#", "Title", "Labels", "URL"})
	for _, f := range filed {
		_ = table.Append([]string{strconv.Itoa(f.Number), truncate(f.Title, 60), strings.Join(f.Labels, ", "), f.URL})
	}
	return table.Render()
}

func printFindings(findings []core.ReviewIssue) {
	if len(findings) == 0 {
		successColor.Println("✓ No issues found")
		return
	}

	warnColor.Printf("%d findings (not filed)\n", len(findings))
	for i, f := range findings {
		fmt.Println()
		severityColor(f.Severity).Printf(" %s ", f.Severity)
		fmt.Printf(" %s\n", f.Title)
		if f.File != "" {
			dimColor.Printf("   %s\n", f.File)
		}
		if f.Description != "" {
			fmt.Printf("   %s\n", strings.ReplaceAll(f.Description, "\n", "\n   "))
		}
		if f.Recommendation != "" {
			successColor.Printf("   → %s\n", strings.ReplaceAll(f.Recommendation, "\n", "\n     "))
		}
		if i < len(findings)-1 {
			dimColor.Println(strings.Repeat("─", 40))
		}
	}
}
