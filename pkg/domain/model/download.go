package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/storeget/pkg/domain/types"
)

// DownloadResult represents a completed download
type DownloadResult struct {
	Path string // Absolute destination path
	Size int64  // Bytes written
}

// FailureKind is the coarse classification of a pipeline failure, derived
// from the error tags in pkg/domain/types
type FailureKind string

const (
	FailureResolution FailureKind = "resolution"
	FailureHTTPStatus FailureKind = "http_status"
	FailureTransport  FailureKind = "transport"
	FailureLocalIO    FailureKind = "local_io"
	FailureUnknown    FailureKind = "unknown"
)

// FailureKindOf classifies an error returned by the resolve/download
// pipeline. Untagged errors map to FailureUnknown.
func FailureKindOf(err error) FailureKind {
	switch {
	case err == nil:
		return ""
	case goerr.HasTag(err, types.ErrTagHTTPStatus):
		return FailureHTTPStatus
	case goerr.HasTag(err, types.ErrTagTransport):
		return FailureTransport
	case goerr.HasTag(err, types.ErrTagLocalIO):
		return FailureLocalIO
	case goerr.HasTag(err, types.ErrTagResolution):
		return FailureResolution
	default:
		return FailureUnknown
	}
}

// StatusCodeOf extracts the HTTP status code from a status-tagged download
// error, or 0 when the error carries none.
func StatusCodeOf(err error) int {
	if err == nil {
		return 0
	}
	if v, ok := goerr.Values(err)["status_code"]; ok {
		if code, ok := v.(int); ok {
			return code
		}
	}
	return 0
}
