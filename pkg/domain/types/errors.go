package types

import "github.com/m-mizutani/goerr/v2"

var (
	ErrInvalidOption    = goerr.New("invalid option")
	ErrValidationFailed = goerr.New("validation failed")

	// ErrAuth means GitHub App credential exchange failed or returned an incomplete payload
	ErrAuth = goerr.New("github app authentication failed")

	// ErrUpstreamRequest means a call to GitHub API failed or returned non-success status
	ErrUpstreamRequest = goerr.New("upstream request failed")

	// ErrDownload is a failure of archive download. It wraps ErrUpstreamRequest.
	ErrDownload = goerr.Wrap(ErrUpstreamRequest, "archive download failed")

	// ErrMissingHead means the pull request has no head commit. It is an expected outcome.
	ErrMissingHead = goerr.New("pull request has no head commit")

	ErrExtraction = goerr.New("test report extraction failed")

	// ErrDuplicate is returned by bookkeeping when the action run is already recorded
	ErrDuplicate = goerr.New("duplicated action run")
)
