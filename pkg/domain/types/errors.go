package types

import "github.com/m-mizutani/goerr/v2"

// Error tags classify every failure the resolve/download pipeline can
// produce. Callers branch on tags instead of matching error strings.
var (
	// ErrTagResolution marks failures before any asset exists: malformed
	// product URL, unreachable catalog, or a product without packaging data.
	ErrTagResolution = goerr.NewTag("resolution")

	// ErrTagInvalidInput marks resolution failures caused by the caller's
	// input rather than the store backend, such as an unrecognized product
	// URL. HTTP surfaces map it to a 4xx instead of a 5xx.
	ErrTagInvalidInput = goerr.NewTag("invalid_input")

	// ErrTagHTTPStatus marks a download rejected by a non-200 response.
	// The error carries the status code as a "status_code" value.
	ErrTagHTTPStatus = goerr.NewTag("http_status")

	// ErrTagTransport marks connection, timeout and mid-stream read failures.
	ErrTagTransport = goerr.NewTag("transport")

	// ErrTagLocalIO marks destination directory or file write failures.
	ErrTagLocalIO = goerr.NewTag("local_io")
)
