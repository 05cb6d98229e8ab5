package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/go-github/v73/github"

	"github.com/sevigo/pr-review-agent/internal/core"
)

// ReviewHandler serves the pull request review API.
type ReviewHandler struct {
	service core.ReviewService
	logger  *slog.Logger
}

// NewReviewHandler creates a ReviewHandler backed by service.
func NewReviewHandler(service core.ReviewService, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{service: service, logger: logger}
}

type reviewResponse struct {
	Message string               `json:"message"`
	Result  *github.IssueComment `json:"result"`
}

type analysisResponse struct {
	Message string          `json:"message"`
	Issues  []*github.Issue `json:"issues"`
}

// ListPullRequests handles GET /api/v1/pr_review/?owner=&repo=.
func (h *ReviewHandler) ListPullRequests(w http.ResponseWriter, r *http.Request) {
	owner, repo, ok := repositoryParams(w, r)
	if !ok {
		return
	}

	prs, err := h.service.ListPullRequests(r.Context(), owner, repo)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if prs == nil {
		prs = []*github.PullRequest{}
	}
	writeJSON(w, http.StatusOK, prs)
}

// ReviewPullRequest handles GET /api/v1/pr_review/fetch_pr_diff?owner=&repo=&pr_number=.
func (h *ReviewHandler) ReviewPullRequest(w http.ResponseWriter, r *http.Request) {
	owner, repo, ok := repositoryParams(w, r)
	if !ok {
		return
	}
	number, err := strconv.Atoi(r.URL.Query().Get("pr_number"))
	if err != nil || number <= 0 {
		writeDetail(w, http.StatusBadRequest, "query parameter pr_number must be a positive integer")
		return
	}

	comment, err := h.service.ReviewPullRequest(r.Context(), owner, repo, number)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, reviewResponse{Message: "PR review completed!", Result: comment})
}

// AnalyzeRepository handles GET /api/v1/pr_review/analyze_repository?owner=&repo=.
func (h *ReviewHandler) AnalyzeRepository(w http.ResponseWriter, r *http.Request) {
	owner, repo, ok := repositoryParams(w, r)
	if !ok {
		return
	}

	issues, err := h.service.AnalyzeRepository(r.Context(), owner, repo)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if issues == nil {
		issues = []*github.Issue{}
	}
	writeJSON(w, http.StatusOK, analysisResponse{
		Message: fmt.Sprintf("Repository analysis completed. Created %d issues.", len(issues)),
		Issues:  issues,
	})
}

func repositoryParams(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	q := r.URL.Query()
	owner, repo := q.Get("owner"), q.Get("repo")
	if owner == "" || repo == "" {
		writeDetail(w, http.StatusBadRequest, "query parameters owner and repo are required")
		return "", "", false
	}
	return owner, repo, true
}
