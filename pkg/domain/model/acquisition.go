package model

import (
	"net/url"

	"github.com/m-mizutani/goerr/v2"
)

// AcquisitionRequest describes a single dataset acquisition: download a remote
// ZIP archive and extract its entries under ExtractDir.
type AcquisitionRequest struct {
	URL              string `json:"url"`
	ExtractDir       string `json:"extract_dir"`
	OmitVerification bool   `json:"omit_verification"`
}

// Validate checks that the request has a usable URL and extract directory
func (r *AcquisitionRequest) Validate() error {
	if r.URL == "" {
		return goerr.New("url is required")
	}
	u, err := url.Parse(r.URL)
	if err != nil {
		return goerr.Wrap(err, "url is not parseable", goerr.V("url", r.URL))
	}
	if !u.IsAbs() {
		return goerr.New("url must be absolute", goerr.V("url", r.URL))
	}
	if r.ExtractDir == "" {
		return goerr.New("extract_dir is required")
	}
	return nil
}

// TypeVerdict is the sniffer's classification of a URL, with a human-readable
// justification. A failed metadata probe yields a negative verdict, not an error.
type TypeVerdict struct {
	IsZip  bool
	Reason string
}

// FetchedArchive holds the full downloaded archive. FileName is derived from the
// URL path's last segment and may be empty; it is only used for logging and
// error context.
type FetchedArchive struct {
	Content  []byte
	FileName string
}

// ExtractReport summarizes a completed extraction
type ExtractReport struct {
	Files []string // Archive-relative paths of extracted entries
	Size  int64    // Total uncompressed size in bytes
}
