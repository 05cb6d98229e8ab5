package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-github/v73/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sevigo/pr-review-agent/internal/core"
	"github.com/sevigo/pr-review-agent/mocks"
)

func TestReviewHandler_ListPullRequests(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := mocks.NewMockReviewService(ctrl)
	service.EXPECT().ListPullRequests(gomock.Any(), "octo", "hello").Return(nil, nil)

	h := NewReviewHandler(service, discardLogger())
	rec := httptest.NewRecorder()
	h.ListPullRequests(rec, httptest.NewRequest(http.MethodGet, "/api/v1/pr_review/?owner=octo&repo=hello", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestReviewHandler_ReviewPullRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := mocks.NewMockReviewService(ctrl)
	service.EXPECT().ReviewPullRequest(gomock.Any(), "octo", "hello", 12).
		Return(&github.IssueComment{ID: github.Ptr(int64(77)), Body: github.Ptr("LGTM")}, nil)

	h := NewReviewHandler(service, discardLogger())
	rec := httptest.NewRecorder()
	h.ReviewPullRequest(rec, httptest.NewRequest(http.MethodGet, "/api/v1/pr_review/fetch_pr_diff?owner=octo&repo=hello&pr_number=12", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "PR review completed!", body["message"])
	result, ok := body["result"].(map[string]any)
	require.True(t, ok)
	assert.InDelta(t, 77, result["id"], 0)
	assert.Equal(t, "LGTM", result["body"])
}

func TestReviewHandler_AnalyzeRepository(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := mocks.NewMockReviewService(ctrl)
	service.EXPECT().AnalyzeRepository(gomock.Any(), "octo", "hello").
		Return([]*github.Issue{{Number: github.Ptr(1)}, {Number: github.Ptr(2)}}, nil)

	h := NewReviewHandler(service, discardLogger())
	rec := httptest.NewRecorder()
	h.AnalyzeRepository(rec, httptest.NewRequest(http.MethodGet, "/api/v1/pr_review/analyze_repository?owner=octo&repo=hello", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Repository analysis completed. Created 2 issues.", body["message"])
	assert.Len(t, body["issues"], 2)
}

func TestReviewHandler_InvalidParams(t *testing.T) {
	tests := []string{
		"/api/v1/pr_review/fetch_pr_diff?repo=hello&pr_number=1",
		"/api/v1/pr_review/fetch_pr_diff?owner=octo&pr_number=1",
		"/api/v1/pr_review/fetch_pr_diff?owner=octo&repo=hello",
		"/api/v1/pr_review/fetch_pr_diff?owner=octo&repo=hello&pr_number=abc",
		"/api/v1/pr_review/fetch_pr_diff?owner=octo&repo=hello&pr_number=-3",
	}

	for _, target := range tests {
		t.Run(target, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			h := NewReviewHandler(mocks.NewMockReviewService(ctrl), discardLogger())

			rec := httptest.NewRecorder()
			h.ReviewPullRequest(rec, httptest.NewRequest(http.MethodGet, target, nil))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.NotEmpty(t, decodeBody(t, rec)["detail"])
		})
	}
}

func TestReviewHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantDetail any
	}{
		{
			name:       "github not found",
			err:        fmt.Errorf("failed to get pull request: %w", &core.UpstreamError{Service: "github", Op: "get pull request", StatusCode: 404, Body: `{"message":"Not Found"}`}),
			wantStatus: http.StatusNotFound,
			wantDetail: map[string]any{"message": `{"message":"Not Found"}`},
		},
		{
			name:       "model failure",
			err:        &core.UpstreamError{Service: "llm", Op: "generate", StatusCode: 504, Body: "context deadline exceeded"},
			wantStatus: http.StatusGatewayTimeout,
			wantDetail: map[string]any{"message": "context deadline exceeded"},
		},
		{
			name:       "upstream without status",
			err:        &core.UpstreamError{Service: "github", Op: "create comment", Body: "connection reset"},
			wantStatus: http.StatusBadGateway,
			wantDetail: map[string]any{"message": "connection reset"},
		},
		{
			name:       "empty diff",
			err:        fmt.Errorf("%w: pull request has no diff", core.ErrNotFound),
			wantStatus: http.StatusNotFound,
			wantDetail: "not found: pull request has no diff",
		},
		{
			name:       "token exchange",
			err:        fmt.Errorf("%w: bad credentials", core.ErrTokenExchange),
			wantStatus: http.StatusUnauthorized,
			wantDetail: "installation token exchange failed: bad credentials",
		},
		{
			name:       "invalid data",
			err:        fmt.Errorf("%w: file without name", core.ErrInvalidData),
			wantStatus: http.StatusUnprocessableEntity,
			wantDetail: "invalid data: file without name",
		},
		{
			name:       "unexpected",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantDetail: "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			service := mocks.NewMockReviewService(ctrl)
			service.EXPECT().AnalyzeRepository(gomock.Any(), "octo", "hello").Return(nil, tt.err)

			h := NewReviewHandler(service, discardLogger())
			rec := httptest.NewRecorder()
			h.AnalyzeRepository(rec, httptest.NewRequest(http.MethodGet, "/api/v1/pr_review/analyze_repository?owner=octo&repo=hello", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Equal(t, tt.wantDetail, decodeBody(t, rec)["detail"])
		})
	}
}
