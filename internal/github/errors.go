package github

import (
	"errors"
	"strings"

	"github.com/google/go-github/v73/github"

	"github.com/sevigo/pr-review-agent/internal/core"
)

// upstreamError converts a go-github error into a core.UpstreamError that
// carries the HTTP status code and the message GitHub returned.
func upstreamError(op string, resp *github.Response, err error) error {
	if err == nil {
		return nil
	}

	ue := &core.UpstreamError{
		Service: "github",
		Op:      op,
		Body:    err.Error(),
		Err:     err,
	}
	if resp != nil && resp.Response != nil {
		ue.StatusCode = resp.StatusCode
	}

	var (
		errResp  *github.ErrorResponse
		rateErr  *github.RateLimitError
		abuseErr *github.AbuseRateLimitError
	)
	switch {
	case errors.As(err, &errResp):
		ue.Body = responseMessage(errResp)
		if ue.StatusCode == 0 && errResp.Response != nil {
			ue.StatusCode = errResp.Response.StatusCode
		}
	case errors.As(err, &rateErr):
		ue.Body = rateErr.Message
	case errors.As(err, &abuseErr):
		ue.Body = abuseErr.Message
	}
	return ue
}

func responseMessage(errResp *github.ErrorResponse) string {
	if len(errResp.Errors) == 0 {
		if errResp.Message == "" {
			return errResp.Error()
		}
		return errResp.Message
	}

	details := make([]string, 0, len(errResp.Errors))
	for _, e := range errResp.Errors {
		details = append(details, e.Error())
	}
	return errResp.Message + ": " + strings.Join(details, "; ")
}
