package types

import "github.com/m-mizutani/goerr/v2"

// Error tags classify acquisition failures. Callers branch on tags with
// goerr.HasTag instead of matching message text.
var (
	// ErrTagInvalidURL: the URL cannot be parsed or lacks a usable path segment
	ErrTagInvalidURL = goerr.NewTag("invalid_url")

	// ErrTagUnsupportedResource: the sniffer classified the resource as not a ZIP
	ErrTagUnsupportedResource = goerr.NewTag("unsupported_resource")

	// ErrTagNetworkFailure: transport-level error or timeout on probe or fetch
	ErrTagNetworkFailure = goerr.NewTag("network_failure")

	// ErrTagHTTPStatus: non-success HTTP status on probe or fetch
	ErrTagHTTPStatus = goerr.NewTag("http_status_failure")

	// ErrTagCorruptArchive: fetched bytes are not a structurally valid ZIP
	ErrTagCorruptArchive = goerr.NewTag("corrupt_archive")

	// ErrTagFilesystem: directory creation or entry write failed. The extract
	// directory may be partially populated.
	ErrTagFilesystem = goerr.NewTag("filesystem_failure")
)
