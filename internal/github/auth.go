package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v73/github"

	"github.com/sevigo/pr-review-agent/internal/core"
)

// TokenSource issues installation tokens scoped to a single repository.
type TokenSource interface {
	InstallationToken(ctx context.Context, owner, repo string) (*core.InstallationToken, error)
}

// AppAuthenticator exchanges the GitHub App private key for installation tokens.
// Every call signs a fresh JWT and performs the full exchange; nothing is cached.
type AppAuthenticator struct {
	appID     int64
	appClient *github.Client
	logger    *slog.Logger
}

// NewAppAuthenticator parses the private key and prepares a client that
// authenticates as the app itself. baseURL overrides the public API endpoint
// when non-empty.
func NewAppAuthenticator(appID int64, privateKey []byte, baseURL string, logger *slog.Logger) (*AppAuthenticator, error) {
	// The apps transport signs a short-lived JWT (iss = app id) for each request.
	appTransport, err := ghinstallation.NewAppsTransport(http.DefaultTransport, appID, privateKey)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create GitHub App transport: %w", core.ErrAuthentication, err)
	}

	appClient, err := newAPIClient(&http.Client{Transport: appTransport}, baseURL)
	if err != nil {
		return nil, err
	}

	return &AppAuthenticator{appID: appID, appClient: appClient, logger: logger}, nil
}

// InstallationToken looks up the app installation for owner/repo and exchanges
// its id for an access token.
func (a *AppAuthenticator) InstallationToken(ctx context.Context, owner, repo string) (*core.InstallationToken, error) {
	installation, resp, err := a.appClient.Apps.FindRepositoryInstallation(ctx, owner, repo)
	if err != nil {
		a.logger.Error("failed to find app installation", "owner", owner, "repo", repo, "error", err)
		return nil, fmt.Errorf("%w for %s/%s: %w", core.ErrInstallationLookup, owner, repo, upstreamError("find installation", resp, err))
	}

	installationID := installation.GetID()
	token, resp, err := a.appClient.Apps.CreateInstallationToken(ctx, installationID, nil)
	if err != nil {
		a.logger.Error("failed to create installation token", "installation_id", installationID, "error", err)
		return nil, fmt.Errorf("%w for installation %d: %w", core.ErrTokenExchange, installationID, upstreamError("create installation token", resp, err))
	}
	if token.GetToken() == "" {
		return nil, fmt.Errorf("%w: received an empty installation token", core.ErrTokenExchange)
	}

	result := &core.InstallationToken{
		Value:     token.GetToken(),
		Owner:     owner,
		Repo:      repo,
		ExpiresAt: token.GetExpiresAt().Time,
	}
	a.logger.Debug("created installation token", "installation_id", installationID, "token", result)
	return result, nil
}
