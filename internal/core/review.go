package core

import (
	"log/slog"
	"strings"
	"time"
)

// MaxFilesPerBatch is the largest number of files sent to the model in one scan call.
const MaxFilesPerBatch = 10

// InstallationToken is a short-lived credential scoped to one repository installation.
// It is created per operation and must never be persisted or logged.
type InstallationToken struct {
	Value     string
	Owner     string
	Repo      string
	ExpiresAt time.Time
}

// String hides the token value.
func (t *InstallationToken) String() string {
	return "InstallationToken{" + t.Owner + "/" + t.Repo + ", expires " + t.ExpiresAt.Format(time.RFC3339) + "}"
}

// LogValue keeps the token value out of structured logs.
func (t *InstallationToken) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("repo", t.Owner+"/"+t.Repo),
		slog.Time("expires_at", t.ExpiresAt),
	)
}

// FileChange is one file entry of a pull request diff.
type FileChange struct {
	Filename  string `json:"filename"`
	Status    string `json:"status"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
	Patch     string `json:"patch"`
}

// PullRequestDiff is the normalized payload sent to the model for review.
type PullRequestDiff struct {
	Title       string       `json:"pr_title"`
	Description string       `json:"pr_description"`
	Changes     []FileChange `json:"changes"`
}

// EntryType distinguishes files from directories in a repository listing.
type EntryType string

const (
	EntryFile EntryType = "file"
	EntryDir  EntryType = "dir"
)

// DirectoryEntry is one item of a repository contents listing.
type DirectoryEntry struct {
	Name        string
	Path        string
	Type        EntryType
	Size        int
	DownloadURL string
}

// RepositoryFile is a file collected during a repository scan.
// HasContent is false when the raw content could not be downloaded.
type RepositoryFile struct {
	Path       string
	Content    string
	HasContent bool
}

// FileBatch is a group of files sharing an extension, reviewed in one model call.
type FileBatch struct {
	Owner     string
	Repo      string
	Extension string
	Files     []RepositoryFile
}

// Severity is the coarse triage level of an extracted issue.
type Severity string

const (
	SeverityHigh   Severity = "High"
	SeverityMedium Severity = "Medium"
	SeverityLow    Severity = "Low"
)

// ReviewIssue is one finding extracted from the model's scan output.
type ReviewIssue struct {
	Title          string   `json:"title" yaml:"title"`
	Severity       Severity `json:"severity" yaml:"severity"`
	File           string   `json:"file" yaml:"file"`
	Description    string   `json:"description" yaml:"description"`
	Recommendation string   `json:"recommendation" yaml:"recommendation"`
}

// Labels returns the tracking labels for the issue, derived from its severity.
func (i ReviewIssue) Labels() []string {
	sev := strings.ToLower(string(i.Severity))
	switch {
	case strings.Contains(sev, "high"):
		return []string{"code-analysis", "high-priority"}
	case strings.Contains(sev, "medium"):
		return []string{"code-analysis", "medium-priority"}
	default:
		return []string{"code-analysis", "low-priority"}
	}
}
