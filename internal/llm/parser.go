package llm

import (
	"regexp"
	"strings"

	"github.com/sevigo/pr-review-agent/internal/core"
)

// IssueMarker starts every issue section in the repository scan answer.
const IssueMarker = "## Issue Title:"

var (
	// Matches "- **Severity**: High" as well as "**Severity:** High" at the start of a line.
	severityRegex       = fieldRegex("Severity")
	fileRegex           = fieldRegex("File")
	descriptionRegex    = fieldRegex("Description")
	recommendationRegex = fieldRegex("Recommendation")

	headingLine    = regexp.MustCompile(`^#{1,6}\s`)
	boldMarkerLine = regexp.MustCompile(`^(-\s*)?\*\*`)
)

func fieldRegex(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)^(?:[-*+]\s*)?\*\*` + name + `(?::\*\*|\*\*\s*:)\s*(.*)$`)
}

// ParseIssues extracts the issues listed in a repository scan answer.
// The model's format is not guaranteed, so parsing never fails: sections
// with missing fields produce partially filled issues, and text without any
// "## Issue Title:" marker produces an empty slice.
func ParseIssues(markdown string) []core.ReviewIssue {
	issues := []core.ReviewIssue{}

	sections := strings.Split(stripMarkdownFence(markdown), IssueMarker)
	for _, section := range sections[1:] {
		issues = append(issues, parseIssueSection(section))
	}
	return issues
}

func parseIssueSection(section string) core.ReviewIssue {
	lines := strings.Split(section, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], "\r")
	}

	issue := core.ReviewIssue{
		Title:    cleanValue(lines[0]),
		Severity: core.SeverityMedium,
	}

	for i := 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])

		if m := severityRegex.FindStringSubmatch(line); m != nil {
			if sev := cleanValue(m[1]); sev != "" {
				issue.Severity = normalizeSeverity(sev)
			}
		} else if m := fileRegex.FindStringSubmatch(line); m != nil {
			issue.File = cleanValue(m[1])
		} else if m := descriptionRegex.FindStringSubmatch(line); m != nil {
			var n int
			issue.Description, n = collectBlock(m[1], lines[i+1:], func(l string) bool {
				return recommendationRegex.MatchString(l) || severityRegex.MatchString(l) || fileRegex.MatchString(l)
			})
			i += n
		} else if m := recommendationRegex.FindStringSubmatch(line); m != nil {
			var n int
			issue.Recommendation, n = collectBlock(m[1], lines[i+1:], func(l string) bool {
				return headingLine.MatchString(l) || boldMarkerLine.MatchString(l)
			})
			i += n
		}
	}

	return issue
}

// collectBlock joins the inline value with the following lines up to the
// first line for which stop returns true. It also reports how many of the
// following lines it consumed.
func collectBlock(inline string, rest []string, stop func(string) bool) (string, int) {
	parts := []string{inline}
	for _, l := range rest {
		if stop(strings.TrimSpace(l)) {
			break
		}
		parts = append(parts, l)
	}
	return strings.TrimSpace(strings.Join(parts, "\n")), len(parts) - 1
}

// cleanValue trims whitespace and the decoration models like to add around short values.
func cleanValue(s string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(s), "[]`*"))
}

func normalizeSeverity(s string) core.Severity {
	for _, known := range []core.Severity{core.SeverityHigh, core.SeverityMedium, core.SeverityLow} {
		if strings.EqualFold(s, string(known)) {
			return known
		}
	}
	return core.Severity(s)
}

// stripMarkdownFence removes ```markdown ... ``` wrapping that some LLMs add around their output.
func stripMarkdownFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```markdown") && !strings.HasPrefix(trimmed, "```md") {
		return s
	}

	idx := strings.Index(trimmed, "\n")
	if idx < 0 {
		return s
	}
	inner := trimmed[idx+1:]
	if lastFence := strings.LastIndex(inner, "```"); lastFence >= 0 {
		inner = inner[:lastFence]
	}
	return strings.TrimSpace(inner)
}
