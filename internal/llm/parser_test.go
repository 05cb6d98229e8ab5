package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/pr-review-agent/internal/core"
)

func TestParseIssues_NoIssues(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "whitespace", input: "   \n\n"},
		{name: "no marker", input: "The code looks great, nothing to report.\n## Summary\nAll good."},
		{name: "similar heading", input: "## Issue: Foo\n- **Severity**: High"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseIssues(tt.input)
			assert.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

func TestParseIssues_SingleIssue(t *testing.T) {
	input := "## Issue Title: Foo\n- **Severity**: High\n- **File**: a.py\n- **Description**: bad\n- **Recommendation**: fix\n"

	got := ParseIssues(input)
	require.Len(t, got, 1)
	assert.Equal(t, "Foo", got[0].Title)
	assert.Equal(t, core.SeverityHigh, got[0].Severity)
	assert.Equal(t, "a.py", got[0].File)
	assert.Contains(t, got[0].Description, "bad")
	assert.Contains(t, got[0].Recommendation, "fix")
}

func TestParseIssues_MultipleIssuesWithPreamble(t *testing.T) {
	input := `Here is my analysis of the .go files.

## Issue Title: Unchecked error
- **Severity**: Medium
- **File**: ` + "`cmd/main.go`" + `
- **Description**: The error returned by Close is ignored.
This can hide write failures.
- **Recommendation**: Check the error.
Return it to the caller.

## Issue Title: [Hardcoded credentials]
- **Severity:** [high]
- **File:** internal/db.go
- **Description:** A password is embedded in source.
- **Recommendation:** Read it from configuration.
- **Note**: rotate the password.
`

	got := ParseIssues(input)
	require.Len(t, got, 2)

	first := got[0]
	assert.Equal(t, "Unchecked error", first.Title)
	assert.Equal(t, core.SeverityMedium, first.Severity)
	assert.Equal(t, "cmd/main.go", first.File)
	assert.Equal(t, "The error returned by Close is ignored.\nThis can hide write failures.", first.Description)
	assert.Equal(t, "Check the error.\nReturn it to the caller.", first.Recommendation)

	second := got[1]
	assert.Equal(t, "Hardcoded credentials", second.Title)
	assert.Equal(t, core.SeverityHigh, second.Severity)
	assert.Equal(t, "internal/db.go", second.File)
	assert.Equal(t, "A password is embedded in source.", second.Description)
	assert.Equal(t, "Read it from configuration.", second.Recommendation)
}

func TestParseIssues_MultilineBlocksOnFollowingLines(t *testing.T) {
	input := `## Issue Title: Slow loop
- **Severity**: Low
- **File**: app.js
- **Description**:
  The loop re-computes the length on every iteration.

  It is called on every request.
- **Recommendation**:
  Cache the length before the loop.
## Issue Title: Next`

	got := ParseIssues(input)
	require.Len(t, got, 2)
	assert.Contains(t, got[0].Description, "re-computes the length")
	assert.Contains(t, got[0].Description, "called on every request")
	assert.NotContains(t, got[0].Description, "Recommendation")
	assert.Equal(t, "Cache the length before the loop.", got[0].Recommendation)
	assert.Equal(t, "Next", got[1].Title)
}

func TestParseIssues_MissingFieldsDegrade(t *testing.T) {
	input := "## Issue Title: Only a title\nsome free text without markers"

	got := ParseIssues(input)
	require.Len(t, got, 1)
	assert.Equal(t, "Only a title", got[0].Title)
	assert.Equal(t, core.SeverityMedium, got[0].Severity)
	assert.Empty(t, got[0].File)
	assert.Empty(t, got[0].Description)
	assert.Empty(t, got[0].Recommendation)
}

func TestParseIssues_EmptyTitle(t *testing.T) {
	got := ParseIssues("## Issue Title:\n- **Severity**: Low\n- **File**: b.py\n")
	require.Len(t, got, 1)
	assert.Empty(t, got[0].Title)
	assert.Equal(t, core.SeverityLow, got[0].Severity)
	assert.Equal(t, "b.py", got[0].File)
}

func TestParseIssues_ReorderedFields(t *testing.T) {
	input := "## Issue Title: Reordered\n- **Recommendation**: do X\n- **File**: z.rb\n- **Severity**: Critical\n"

	got := ParseIssues(input)
	require.Len(t, got, 1)
	assert.Equal(t, "do X", got[0].Recommendation)
	assert.Equal(t, "z.rb", got[0].File)
	assert.Equal(t, core.Severity("Critical"), got[0].Severity)
}

func TestParseIssues_FencedAnswer(t *testing.T) {
	input := "```markdown\n## Issue Title: Fenced\n- **Severity**: Low\n- **File**: x.py\n```"

	got := ParseIssues(input)
	require.Len(t, got, 1)
	assert.Equal(t, "Fenced", got[0].Title)
	assert.Equal(t, "x.py", got[0].File)
}

func TestParseIssues_CRLF(t *testing.T) {
	input := strings.ReplaceAll("## Issue Title: Windows\n- **Severity**: High\n- **File**: a.cs\n", "\n", "\r\n")

	got := ParseIssues(input)
	require.Len(t, got, 1)
	assert.Equal(t, "Windows", got[0].Title)
	assert.Equal(t, "a.cs", got[0].File)
}

func TestParseIssues_BoldTextInsideValues(t *testing.T) {
	input := `## Issue Title: Leak
- **Severity**: High
- **File**: a.go
- **Description**: The **file** handle is never closed
and this lowers the **severity** of nothing.
**Recommendation** without a colon stays in the text.
- **Recommendation**: close it, see the **description** above
`

	got := ParseIssues(input)
	require.Len(t, got, 1)
	assert.Equal(t, core.SeverityHigh, got[0].Severity)
	assert.Equal(t, []string{"code-analysis", "high-priority"}, got[0].Labels())
	assert.Equal(t, "a.go", got[0].File)
	assert.Equal(t, "The **file** handle is never closed\nand this lowers the **severity** of nothing.\n**Recommendation** without a colon stays in the text.", got[0].Description)
	assert.Equal(t, "close it, see the **description** above", got[0].Recommendation)
}

func TestParseIssues_MarkersMustStartTheLine(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{name: "mid-line severity", line: "Note that **Severity**: Low is not a field"},
		{name: "mid-line file", line: "the value of **File**: other.go is prose"},
		{name: "missing colon", line: "- **Severity** Low"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseIssues("## Issue Title: T\n- **Severity**: High\n- **File**: a.go\n" + tt.line + "\n")
			require.Len(t, got, 1)
			assert.Equal(t, core.SeverityHigh, got[0].Severity)
			assert.Equal(t, "a.go", got[0].File)
		})
	}
}

func TestParseIssues_FieldMarkerVariants(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{name: "dash bullet", line: "- **File**: x.go"},
		{name: "star bullet", line: "* **File**: x.go"},
		{name: "no bullet", line: "**File**: x.go"},
		{name: "colon inside bold", line: "- **File:** x.go"},
		{name: "indented", line: "   - **file** : x.go"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseIssues("## Issue Title: T\n" + tt.line + "\n")
			require.Len(t, got, 1)
			assert.Equal(t, "x.go", got[0].File)
		})
	}
}

func TestParseIssues_DescriptionStopsAtNextField(t *testing.T) {
	input := "## Issue Title: Order\n- **Description**: first\nsecond\n- **File**: late.go\n- **Severity**: Low\n"

	got := ParseIssues(input)
	require.Len(t, got, 1)
	assert.Equal(t, "first\nsecond", got[0].Description)
	assert.Equal(t, "late.go", got[0].File)
	assert.Equal(t, core.SeverityLow, got[0].Severity)
}

func FuzzParseIssues(f *testing.F) {
	f.Add("")
	f.Add("## Issue Title: Foo\n- **Severity**: High\n- **File**: a.py\n- **Description**: bad\n- **Recommendation**: fix\n")
	f.Add("## Issue Title:")
	f.Add("## Issue Title:\n- **Description**:\n- **Recommendation**:")
	f.Add("## Issue Title: X\n- **Description**: the **file** and the **severity**\n")
	f.Add("```markdown\n## Issue Title: Y\n**Severity:** [High]\n```")
	f.Fuzz(func(t *testing.T, input string) {
		issues := ParseIssues(input)
		assert.NotNil(t, issues)
		assert.Len(t, issues, strings.Count(stripMarkdownFence(input), IssueMarker))
	})
}
