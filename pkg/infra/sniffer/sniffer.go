package sniffer

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/mizuki-ohta/rawland/pkg/domain/interfaces"
	"github.com/mizuki-ohta/rawland/pkg/domain/model"
)

const defaultProbeTimeout = 5 * time.Second

type sniffer struct {
	httpClient   *http.Client
	probeTimeout time.Duration
	authToken    string
}

// Option is a functional option for the sniffer
type Option func(*sniffer)

// WithHTTPClient sets the HTTP client used for the metadata probe
func WithHTTPClient(client *http.Client) Option {
	return func(s *sniffer) {
		s.httpClient = client
	}
}

// WithProbeTimeout bounds the headers-only metadata probe
func WithProbeTimeout(d time.Duration) Option {
	return func(s *sniffer) {
		s.probeTimeout = d
	}
}

// WithAuthToken attaches a bearer token to the probe request
func WithAuthToken(token string) Option {
	return func(s *sniffer) {
		s.authToken = token
	}
}

// New creates a Sniffer that classifies URLs by extension first and falls back
// to a Content-Type probe only for non-ZIP extensions
func New(opts ...Option) interfaces.Sniffer {
	s := &sniffer{
		httpClient:   http.DefaultClient,
		probeTimeout: defaultProbeTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Classify determines whether the URL likely points at a ZIP archive.
// Order matters: a `.zip` extension is trusted without any network call, an
// absent extension is a conservative negative, and only a non-matching
// extension triggers the metadata probe.
func (s *sniffer) Classify(ctx context.Context, rawURL string) *model.TypeVerdict {
	u, err := url.Parse(rawURL)
	if err != nil {
		return &model.TypeVerdict{
			IsZip:  false,
			Reason: fmt.Sprintf("cannot parse URL: %v", err),
		}
	}

	ext := strings.ToLower(path.Ext(u.Path))
	switch ext {
	case ".zip":
		return &model.TypeVerdict{
			IsZip:  true,
			Reason: fmt.Sprintf("URL extension %q indicates a ZIP archive", ext),
		}
	case "":
		return &model.TypeVerdict{
			IsZip:  false,
			Reason: "URL has no file extension, cannot determine archive type",
		}
	default:
		ctxlog.From(ctx).Debug("URL extension is not .zip, probing Content-Type header",
			"url", rawURL,
			"extension", ext,
		)
		return s.probe(ctx, rawURL)
	}
}

// probe issues a single HEAD request and inspects the Content-Type header.
// Any probe failure yields a negative verdict with the cause in the reason.
func (s *sniffer) probe(ctx context.Context, rawURL string) *model.TypeVerdict {
	ctx, cancel := context.WithTimeout(ctx, s.probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return &model.TypeVerdict{
			IsZip:  false,
			Reason: fmt.Sprintf("probe failed: cannot build request: %v", err),
		}
	}
	if s.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.authToken)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return &model.TypeVerdict{
			IsZip:  false,
			Reason: fmt.Sprintf("probe failed: %v", err),
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &model.TypeVerdict{
			IsZip:  false,
			Reason: fmt.Sprintf("probe failed: unexpected status %d", resp.StatusCode),
		}
	}

	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	if strings.Contains(contentType, "application/zip") ||
		strings.Contains(contentType, "application/x-zip-compressed") {
		return &model.TypeVerdict{
			IsZip:  true,
			Reason: fmt.Sprintf("Content-Type header %q indicates a ZIP archive", contentType),
		}
	}

	return &model.TypeVerdict{
		IsZip:  false,
		Reason: fmt.Sprintf("Content-Type header %q does not indicate a ZIP archive", contentType),
	}
}
