package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sevigo/pr-review-agent/internal/core"
)

type errorResponse struct {
	Detail any `json:"detail"`
}

type upstreamDetail struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail any) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

// writeError maps pipeline errors to HTTP responses. Upstream errors keep the
// status and body GitHub or the model answered with.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var upstream *core.UpstreamError
	switch {
	case errors.As(err, &upstream):
		status := upstream.StatusCode
		if status < 400 || status > 599 {
			status = http.StatusBadGateway
		}
		logger.Error("upstream request failed", "service", upstream.Service, "op", upstream.Op, "status", upstream.StatusCode, "error", err)
		writeDetail(w, status, upstreamDetail{Message: upstream.Body})
	case errors.Is(err, core.ErrNotFound):
		writeDetail(w, http.StatusNotFound, err.Error())
	case core.IsAuthError(err):
		logger.Error("github authentication failed", "error", err)
		writeDetail(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, core.ErrInvalidData):
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
	default:
		logger.Error("request failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, "internal server error")
	}
}
