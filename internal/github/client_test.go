package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/pr-review-agent/internal/core"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, mux *http.ServeMux) (Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client, err := NewTokenClient(context.Background(), "test-token", srv.URL, discardLogger())
	require.NoError(t, err)
	return client, srv
}

func TestListChangedFiles_FollowsPagination(t *testing.T) {
	mux := http.NewServeMux()
	var srvURL string
	mux.HandleFunc("GET /repos/octo/demo/pulls/7/files", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-GitHub-Api-Version"))

		if r.URL.Query().Get("page") == "2" {
			fmt.Fprint(w, `[{"filename":"b.go","status":"modified","additions":1,"deletions":2}]`)
			return
		}
		w.Header().Set("Link", fmt.Sprintf(`<%s/repos/octo/demo/pulls/7/files?page=2>; rel="next"`, srvURL))
		fmt.Fprint(w, `[{"filename":"a.go","status":"added","additions":3,"deletions":0,"patch":"@@ -0,0 +1,3 @@"}]`)
	})
	client, srv := newTestClient(t, mux)
	srvURL = srv.URL

	files, err := client.ListChangedFiles(context.Background(), "octo", "demo", 7)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "a.go", files[0].GetFilename())
	assert.Equal(t, "@@ -0,0 +1,3 @@", files[0].GetPatch())
	assert.Equal(t, "b.go", files[1].GetFilename())
	assert.Equal(t, 2, files[1].GetDeletions())
}

func TestGetPullRequest_UpstreamError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/octo/demo/pulls/9", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message":"Not Found"}`)
	})
	client, _ := newTestClient(t, mux)

	_, err := client.GetPullRequest(context.Background(), "octo", "demo", 9)
	require.Error(t, err)

	var ue *core.UpstreamError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, http.StatusNotFound, ue.StatusCode)
	assert.Equal(t, "Not Found", ue.Body)
	assert.Equal(t, "github", ue.Service)
}

func TestListPullRequests_RequestsAllStates(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/octo/demo/pulls", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "all", r.URL.Query().Get("state"))
		fmt.Fprint(w, `[{"number":1,"title":"first"},{"number":2,"title":"second"}]`)
	})
	client, _ := newTestClient(t, mux)

	prs, err := client.ListPullRequests(context.Background(), "octo", "demo")
	require.NoError(t, err)
	require.Len(t, prs, 2)
	assert.Equal(t, "second", prs[1].GetTitle())
}

func TestCreateComment(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /repos/octo/demo/issues/3/comments", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "looks good", body["body"])
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"id":99,"body":"looks good","html_url":"https://github.com/octo/demo/pull/3#issuecomment-99"}`)
	})
	client, _ := newTestClient(t, mux)

	comment, err := client.CreateComment(context.Background(), "octo", "demo", 3, "looks good")
	require.NoError(t, err)
	assert.Equal(t, int64(99), comment.GetID())
}

func TestCreateComment_Forbidden(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /repos/octo/demo/issues/3/comments", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"message":"Resource not accessible by integration"}`)
	})
	client, _ := newTestClient(t, mux)

	_, err := client.CreateComment(context.Background(), "octo", "demo", 3, "x")
	var ue *core.UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, http.StatusForbidden, ue.StatusCode)
	assert.Contains(t, ue.Body, "Resource not accessible")
}

func TestListDirectory(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo/demo/contents/", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/octo/demo/contents/":
			fmt.Fprint(w, `[
				{"type":"file","name":"main.go","path":"main.go","size":120,"download_url":"https://raw.example/main.go"},
				{"type":"dir","name":"pkg","path":"pkg","size":0}
			]`)
		case "/repos/octo/demo/contents/README.md":
			fmt.Fprint(w, `{"type":"file","name":"README.md","path":"README.md","size":10,"download_url":"https://raw.example/README.md"}`)
		default:
			http.NotFound(w, r)
		}
	})
	client, _ := newTestClient(t, mux)

	entries, err := client.ListDirectory(context.Background(), "octo", "demo", "")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, core.EntryFile, entries[0].Type)
	assert.Equal(t, 120, entries[0].Size)
	assert.Equal(t, "https://raw.example/main.go", entries[0].DownloadURL)
	assert.Equal(t, core.EntryDir, entries[1].Type)

	single, err := client.ListDirectory(context.Background(), "octo", "demo", "README.md")
	require.NoError(t, err)
	require.Len(t, single, 1)
	assert.Equal(t, "README.md", single[0].Path)
}

func TestGetRawFileContent(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /raw/main.go", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "package main\n")
	})
	mux.HandleFunc("GET /raw/missing.go", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	client, srv := newTestClient(t, mux)

	content, ok, err := client.GetRawFileContent(context.Background(), srv.URL+"/raw/main.go")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "package main\n", content)

	content, ok, err = client.GetRawFileContent(context.Background(), srv.URL+"/raw/missing.go")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, content)

	_, ok, err = client.GetRawFileContent(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCreateIssue(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /repos/octo/demo/issues", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Title  string   `json:"title"`
			Body   string   `json:"body"`
			Labels []string `json:"labels"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "SQL injection", body.Title)
		assert.Equal(t, []string{"code-analysis", "high-priority"}, body.Labels)
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"id":1,"number":12,"title":"SQL injection","labels":[{"name":"code-analysis"},{"name":"high-priority"}]}`)
	})
	client, _ := newTestClient(t, mux)

	issue, err := client.CreateIssue(context.Background(), "octo", "demo", "SQL injection", "body", []string{"code-analysis", "high-priority"})
	require.NoError(t, err)
	assert.Equal(t, 12, issue.GetNumber())
	assert.Len(t, issue.Labels, 2)
}

func TestStaticTokenClientFactory(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/octo/demo/pulls/1", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer pat-123", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"number":1,"title":"t"}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	factory := NewStaticTokenClientFactory("pat-123", srv.URL, discardLogger())
	client, err := factory.ForRepository(context.Background(), "octo", "demo")
	require.NoError(t, err)

	pr, err := client.GetPullRequest(context.Background(), "octo", "demo", 1)
	require.NoError(t, err)
	assert.Equal(t, "t", pr.GetTitle())
}
