package github

import (
	"fmt"
	"strings"

	"github.com/sevigo/pr-review-agent/internal/core"
)

// FormatIssueBody renders the Markdown body of an issue filed for a scan finding.
func FormatIssueBody(issue core.ReviewIssue) string {
	var sb strings.Builder

	sb.WriteString("## Code Analysis Issue\n\n")
	fmt.Fprintf(&sb, "**Severity**: %s %s\n", severityEmoji(issue.Severity), issue.Severity)
	fmt.Fprintf(&sb, "**File**: %s\n\n", issue.File)
	sb.WriteString("### Description\n")
	sb.WriteString(issue.Description)
	sb.WriteString("\n\n### Recommendation\n")
	sb.WriteString(issue.Recommendation)
	sb.WriteString("\n\n---\n*This issue was automatically generated by code analysis.*\n")

	return sb.String()
}

// severityEmoji returns an emoji for the given severity level.
func severityEmoji(severity core.Severity) string {
	s := strings.ToLower(string(severity))
	switch {
	case strings.Contains(s, "high"):
		return "🟠"
	case strings.Contains(s, "medium"):
		return "🟡"
	case strings.Contains(s, "low"):
		return "🟢"
	default:
		return "⚪"
	}
}
