package main

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-github/v73/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/pr-review-agent/internal/core"
)

type fakeService struct {
	calls []string
}

func (f *fakeService) ListPullRequests(_ context.Context, owner, repo string) ([]*github.PullRequest, error) {
	f.calls = append(f.calls, "list "+owner+"/"+repo)
	return []*github.PullRequest{{Number: github.Ptr(7), Title: github.Ptr("Fix typo"), State: github.Ptr("open")}}, nil
}

func (f *fakeService) GenerateReview(_ context.Context, _, _ string, _ int) (string, error) {
	f.calls = append(f.calls, "generate")
	return "## Summary\nLooks good.", nil
}

func (f *fakeService) ReviewPullRequest(_ context.Context, _, _ string, _ int) (*github.IssueComment, error) {
	f.calls = append(f.calls, "post")
	return nil, errors.New("permission denied")
}

func (f *fakeService) ExtractIssues(_ context.Context, _, _ string) ([]core.ReviewIssue, error) {
	f.calls = append(f.calls, "scan")
	return []core.ReviewIssue{{Title: "Leak", Severity: core.SeverityHigh, File: "a.go"}}, nil
}

func readyModel(t *testing.T) (*model, *fakeService) {
	t.Helper()
	svc := &fakeService{}
	m := initialModel(ThemeCyan, ".env")
	m.Update(serviceReadyMsg{service: svc})
	require.False(t, m.isLoading)
	return m, svc
}

// run executes cmd and feeds the first non-tick message back into the model.
func run(t *testing.T, m *model, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		msg = batch[len(batch)-1]()
	}
	m.Update(msg)
	return msg
}

func TestProcessCommand_RequiresRepository(t *testing.T) {
	m, svc := readyModel(t)

	for _, input := range []string{"/prs", "/review 3", "/post 3", "/scan"} {
		assert.Nil(t, m.processCommand(input), input)
	}
	assert.Empty(t, svc.calls)
	assert.Contains(t, m.history[len(m.history)-1], "No repository is selected")
}

func TestProcessCommand_Repo(t *testing.T) {
	m, _ := readyModel(t)

	assert.Nil(t, m.processCommand("/repo https://github.com/octo/hello.git"))
	assert.Equal(t, "octo", m.owner)
	assert.Equal(t, "hello", m.repo)

	assert.Nil(t, m.processCommand("/repo not-a-repo"))
	assert.Equal(t, "hello", m.repo)
}

func TestProcessCommand_Flows(t *testing.T) {
	m, svc := readyModel(t)
	m.processCommand("/repo octo/hello")

	msg := run(t, m, m.processCommand("/prs"))
	prs, ok := msg.(pullRequestsMsg)
	require.True(t, ok)
	assert.Equal(t, "octo/hello", prs.repo)
	assert.Contains(t, m.history[len(m.history)-1], "Fix typo")

	msg = run(t, m, m.processCommand("/review #7"))
	review, ok := msg.(reviewMsg)
	require.True(t, ok)
	assert.Equal(t, 7, review.number)

	msg = run(t, m, m.processCommand("/post 7"))
	assert.IsType(t, errorMsg{}, msg)
	assert.Contains(t, m.history[len(m.history)-1], "permission denied")

	msg = run(t, m, m.processCommand("/scan"))
	assert.IsType(t, findingsMsg{}, msg)
	assert.False(t, m.isLoading)

	assert.Equal(t, []string{"list octo/hello", "generate", "post", "scan"}, svc.calls)
}

func TestProcessCommand_InvalidNumber(t *testing.T) {
	m, svc := readyModel(t)
	m.processCommand("/repo octo/hello")

	assert.Nil(t, m.processCommand("/review abc"))
	assert.Nil(t, m.processCommand("/review 0"))
	assert.Nil(t, m.processCommand("/review"))
	assert.Empty(t, svc.calls)
}

func TestProcessCommand_WithoutService(t *testing.T) {
	m := initialModel(ThemeCyan, ".env")
	m.Update(serviceReadyMsg{err: errors.New("GITHUB_PERSONAL_ACCESS_TOKEN is required")})

	assert.Nil(t, m.processCommand("/repo octo/hello"))
	assert.Empty(t, m.repo)
	assert.NotNil(t, m.processCommand("/exit"))
}

func TestFindingsMarkdown(t *testing.T) {
	md := findingsMarkdown("octo/hello", []core.ReviewIssue{
		{Title: "Leak", Severity: core.SeverityHigh, File: "a.go", Description: "open handle", Recommendation: "close it"},
		{Severity: core.SeverityLow},
	})

	assert.Contains(t, md, "# Scan of octo/hello")
	assert.Contains(t, md, "## Leak")
	assert.Contains(t, md, "high-priority")
	assert.Contains(t, md, "**File:** `a.go`")
	assert.Contains(t, md, "> close it")
	assert.Contains(t, md, "## Untitled finding")

	assert.Contains(t, findingsMarkdown("octo/hello", nil), "No issues found.")
}
