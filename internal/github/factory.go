package github

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sevigo/pr-review-agent/internal/config"
)

// ClientFactory returns a Client authorized for one repository. A deployment
// uses exactly one strategy for every call.
//
//go:generate mockgen -destination=../../mocks/mock_client_factory.go -package=mocks . ClientFactory
type ClientFactory interface {
	ForRepository(ctx context.Context, owner, repo string) (Client, error)
}

// NewClientFactory builds the factory matching cfg.GitHub.AuthMode.
func NewClientFactory(cfg *config.Config, logger *slog.Logger) (ClientFactory, error) {
	switch cfg.GitHub.AuthMode {
	case config.AuthModeApp:
		auth, err := NewAppAuthenticator(cfg.GitHub.AppID, cfg.GitHub.PrivateKey, cfg.GitHub.APIURL, logger)
		if err != nil {
			return nil, err
		}
		logger.Info("using GitHub App installation authentication", "app_id", cfg.GitHub.AppID)
		return NewInstallationClientFactory(auth, cfg.GitHub.APIURL, logger), nil
	case config.AuthModeToken:
		logger.Info("using static token authentication")
		return NewStaticTokenClientFactory(cfg.GitHub.Token, cfg.GitHub.APIURL, logger), nil
	default:
		return nil, fmt.Errorf("unsupported GitHub auth mode %q", cfg.GitHub.AuthMode)
	}
}

type installationClientFactory struct {
	tokens  TokenSource
	baseURL string
	logger  *slog.Logger
}

// NewInstallationClientFactory creates clients authenticated with a freshly
// exchanged installation token on every call.
func NewInstallationClientFactory(tokens TokenSource, baseURL string, logger *slog.Logger) ClientFactory {
	return &installationClientFactory{tokens: tokens, baseURL: baseURL, logger: logger}
}

func (f *installationClientFactory) ForRepository(ctx context.Context, owner, repo string) (Client, error) {
	token, err := f.tokens.InstallationToken(ctx, owner, repo)
	if err != nil {
		return nil, err
	}
	return NewTokenClient(ctx, token.Value, f.baseURL, f.logger)
}

type staticTokenClientFactory struct {
	token   string
	baseURL string
	logger  *slog.Logger
}

// NewStaticTokenClientFactory creates clients that all share one personal access token.
func NewStaticTokenClientFactory(token, baseURL string, logger *slog.Logger) ClientFactory {
	return &staticTokenClientFactory{token: token, baseURL: baseURL, logger: logger}
}

func (f *staticTokenClientFactory) ForRepository(ctx context.Context, _, _ string) (Client, error) {
	return NewTokenClient(ctx, f.token, f.baseURL, f.logger)
}
