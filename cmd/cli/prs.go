package main

import (
	"context"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sevigo/pr-review-agent/internal/gitutil"
)

var prsOutput string

var prsCmd = &cobra.Command{
	Use:   "prs [owner/repo]",
	Short: "List the pull requests of a repository",
	Example: `  review-cli prs octo/hello-world
  review-cli prs https://github.com/octo/hello-world --output json`,
	Args: cobra.ExactArgs(1),
	RunE: runPRs,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	prsCmd.Flags().StringVarP(&prsOutput, "output", "o", formatTable, "output format: table, json or yaml")
	rootCmd.AddCommand(prsCmd)
}

type pullRequestSummary struct {
	Number int    `json:"number" yaml:"number"`
	State  string `json:"state" yaml:"state"`
	Title  string `json:"title" yaml:"title"`
	Author string `json:"author" yaml:"author"`
	URL    string `json:"url" yaml:"url"`
}

func runPRs(cmd *cobra.Command, args []string) error {
	if err := validateFormat(prsOutput); err != nil {
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

	prs, err := svc.ListPullRequests(ctx, owner, repo)
	if err != nil {
		return err
	}

	summaries := make([]pullRequestSummary, 0, len(prs))
	for _, pr := range prs {
		summaries = append(summaries, pullRequestSummary{
			Number: pr.GetNumber(),
			State:  pr.GetState(),
			Title:  pr.GetTitle(),
			Author: pr.GetUser().GetLogin(),
			URL:    pr.GetHTMLURL(),
		})
	}

	if prsOutput != formatTable {
		return encode(os.Stdout, prsOutput, summaries)
	}

	if len(summaries) == 0 {
		warnColor.Printf("No pull requests found in %s/%s\n", owner, repo)
		return nil
	}

	titleColor.Printf("Pull requests in %s/%s\n\n", owner, repo)
	table := newTable(os.Stdout, []string{"#", "State", "Title", "Author"})
	for _, s := range summaries {
		state := s.State
		if state == "open" {
			state = successColor.Sprint(state)
		} else {
			state = dimColor.Sprint(state)
		}
		_ = table.Append([]string{strconv.Itoa(s.Number), state, truncate(s.Title, 70), s.Author})
	}
	return table.Render()
}
