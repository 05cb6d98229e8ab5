package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sevigo/pr-review-agent/internal/config"
	"github.com/sevigo/pr-review-agent/internal/review"
	"github.com/sevigo/pr-review-agent/internal/wire"
)

var (
	githubToken string
	envFile     string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:           "review-cli",
	Short:         "review-cli runs the PR review agent from the command line.",
	Long:          `A CLI for the PR review agent: list pull requests, review a pull request and scan a repository for issues without running the HTTP service.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&githubToken, "github-token", "t", "", "GitHub token, overrides the configured authentication")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "path to the .env file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "show service logs")

	if err := viper.BindPFlag("GITHUB_TOKEN", rootCmd.PersistentFlags().Lookup("github-token")); err != nil {
		slog.Error("Error binding flag", "error", err)
		os.Exit(1)
	}
}

// initConfig reads PRA_* environment variables.
func initConfig() {
	viper.SetEnvPrefix("PRA")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// loadService builds the review service from the .env file, the environment
// and the CLI overrides.
func loadService(ctx context.Context) (*review.Service, error) {
	opts := []config.Option{config.WithOverride("LOG_OUTPUT", "stderr")}
	if !verbose {
		opts = append(opts, config.WithOverride("LOG_LEVEL", "warn"))
	}
	if token := viper.GetString("GITHUB_TOKEN"); token != "" {
		opts = append(opts,
			config.WithOverride("GITHUB_AUTH_MODE", config.AuthModeToken),
			config.WithOverride("GITHUB_PERSONAL_ACCESS_TOKEN", token),
		)
	}

	cfg, err := config.Load(envFile, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w\n\nTip: set GITHUB_PERSONAL_ACCESS_TOKEN or pass --github-token", err)
	}

	svc, err := wire.InitializeReviewService(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize review service: %w", err)
	}
	return svc, nil
}
