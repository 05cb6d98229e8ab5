package github

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sevigo/pr-review-agent/internal/core"
)

func TestFormatIssueBody(t *testing.T) {
	body := FormatIssueBody(core.ReviewIssue{
		Title:          "Hardcoded secret",
		Severity:       core.SeverityHigh,
		File:           "config.py",
		Description:    "API key is committed.",
		Recommendation: "Load it from the environment.",
	})

	assert.Contains(t, body, "## Code Analysis Issue")
	assert.Contains(t, body, "**Severity**: 🟠 High")
	assert.Contains(t, body, "**File**: config.py")
	assert.Contains(t, body, "### Description\nAPI key is committed.")
	assert.Contains(t, body, "### Recommendation\nLoad it from the environment.")
	assert.Contains(t, body, "automatically generated by code analysis")
}

func TestSeverityEmoji(t *testing.T) {
	assert.Equal(t, "🟠", severityEmoji("High"))
	assert.Equal(t, "🟡", severityEmoji("medium"))
	assert.Equal(t, "🟢", severityEmoji("Low"))
	assert.Equal(t, "⚪", severityEmoji("Unknown"))
}
