// Package gitutil parses the repository and pull request references accepted by the CLI.
package gitutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// github.com/{owner}/{repo}/pull/{number}, with or without scheme.
	prURLRegex = regexp.MustCompile(`^(?:https?://)?(?:www\.)?github\.com/([^/\s]+)/([^/\s]+)/pull/(\d+)$`)
	// {owner}/{repo}#{number}
	prShortRegex = regexp.MustCompile(`^([^/\s#]+)/([^/\s#]+)#(\d+)$`)
	// {owner}/{repo}, optionally prefixed by the github.com URL.
	repoRegex = regexp.MustCompile(`^(?:(?:https?://)?(?:www\.)?github\.com/)?([^/\s]+)/([^/\s]+?)(?:\.git)?$`)
)

// ParsePullRequestURL extracts owner, repository and number from a pull
// request reference. Both https://github.com/{owner}/{repo}/pull/{number}
// and the short {owner}/{repo}#{number} form are accepted.
func ParsePullRequestURL(ref string) (owner, repo string, number int, err error) {
	ref = strings.TrimSuffix(strings.TrimSpace(ref), "/")

	matches := prURLRegex.FindStringSubmatch(ref)
	if matches == nil {
		matches = prShortRegex.FindStringSubmatch(ref)
	}
	if matches == nil {
		return "", "", 0, fmt.Errorf("invalid pull request reference: %q", ref)
	}

	number, err = strconv.Atoi(matches[3])
	if err != nil || number <= 0 {
		return "", "", 0, fmt.Errorf("invalid pull request number %q", matches[3])
	}
	return matches[1], matches[2], number, nil
}

// ParseRepository extracts owner and repository from "owner/repo" or a
// github.com repository URL.
func ParseRepository(ref string) (owner, repo string, err error) {
	ref = strings.TrimSuffix(strings.TrimSpace(ref), "/")

	matches := repoRegex.FindStringSubmatch(ref)
	if matches == nil {
		return "", "", fmt.Errorf("invalid repository reference %q: expected owner/repo", ref)
	}
	return matches[1], matches[2], nil
}
