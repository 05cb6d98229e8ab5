// Package handler provides the HTTP handlers of the review agent.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/go-github/v73/github"

	"github.com/sevigo/pr-review-agent/internal/config"
	"github.com/sevigo/pr-review-agent/internal/core"
)

// maxWebhookBytes matches GitHub's 25 MB payload cap.
const maxWebhookBytes = 25 << 20

// WebhookHandler processes pull request webhooks from GitHub.
type WebhookHandler struct {
	secret     []byte
	dispatcher core.JobDispatcher
	logger     *slog.Logger
}

type webhookResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// NewWebhookHandler creates a new webhook handler with the given configuration and dispatcher.
func NewWebhookHandler(cfg *config.Config, dispatcher core.JobDispatcher, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		secret:     []byte(cfg.GitHub.WebhookSecret),
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Handle reviews newly opened or reopened pull requests before answering.
// Review failures are reported in the body with a 200 status since GitHub
// does not act on webhook failures.
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	payload, ok := h.readPayload(w, r)
	if !ok {
		return
	}

	var event github.PullRequestEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		h.logger.Warn("could not parse webhook payload", "error", err)
		writeDetail(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	prEvent, err := core.EventFromPullRequest(&event)
	if errors.Is(err, core.ErrEventIgnored) {
		h.logger.Debug("ignoring webhook event", "reason", err.Error(), "type", github.WebHookType(r))
		writeJSON(w, http.StatusOK, webhookResponse{Status: "ok"})
		return
	}
	if err != nil {
		h.logger.Error("invalid pull request event", "error", err)
		writeJSON(w, http.StatusOK, webhookResponse{Status: "error", Message: err.Error()})
		return
	}

	if err := h.dispatcher.Dispatch(r.Context(), prEvent); err != nil {
		writeJSON(w, http.StatusOK, webhookResponse{Status: "error", Message: err.Error()})
		return
	}

	h.logger.Info("pull request reviewed", "repo", prEvent.RepoFullName, "pr", prEvent.PRNumber)
	writeJSON(w, http.StatusOK, webhookResponse{
		Status:  "success",
		Message: "PR review completed for " + prEvent.RepoFullName,
	})
}

// readPayload returns the request body, verifying its signature when a
// webhook secret is configured.
func (h *WebhookHandler) readPayload(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxWebhookBytes)

	if len(h.secret) > 0 {
		payload, err := github.ValidatePayload(r, h.secret)
		if err != nil {
			h.logger.Error("invalid webhook payload signature", "error", err)
			writeDetail(w, http.StatusUnauthorized, "invalid signature")
			return nil, false
		}
		return payload, true
	}

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		h.logger.Error("could not read webhook body", "error", err)
		writeDetail(w, http.StatusBadRequest, "could not read request body")
		return nil, false
	}
	return payload, true
}
