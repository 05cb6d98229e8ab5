package core

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when there is nothing to review, e.g. a pull request without a diff.
	ErrNotFound = errors.New("not found")
	// ErrAuthentication is returned when the GitHub App assertion cannot be signed.
	ErrAuthentication = errors.New("github app authentication failed")
	// ErrInstallationLookup is returned when the repository has no matching app installation.
	ErrInstallationLookup = errors.New("installation lookup failed")
	// ErrTokenExchange is returned when GitHub rejects the installation token request.
	ErrTokenExchange = errors.New("installation token exchange failed")
	// ErrInvalidData is returned for malformed input to a pure transformation.
	ErrInvalidData = errors.New("invalid data")
)

// UpstreamError reports a non-success answer from GitHub or the language model.
// It keeps the original status code and response body so they can be surfaced
// to the caller unchanged.
type UpstreamError struct {
	Service    string
	Op         string
	StatusCode int
	Body       string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s %s: status %d: %s", e.Service, e.Op, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s %s: %s", e.Service, e.Op, e.Body)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// IsAuthError reports whether err comes from the credential exchange.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrAuthentication) ||
		errors.Is(err, ErrInstallationLookup) ||
		errors.Is(err, ErrTokenExchange)
}
