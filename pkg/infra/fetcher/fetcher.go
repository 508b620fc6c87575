package fetcher

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mizuki-ohta/rawland/pkg/domain/interfaces"
	"github.com/mizuki-ohta/rawland/pkg/domain/model"
	"github.com/mizuki-ohta/rawland/pkg/domain/types"
)

type fetcher struct {
	httpClient *http.Client
	authToken  string
}

// Option is a functional option for the fetcher
type Option func(*fetcher)

// WithHTTPClient sets the HTTP client used for the full-content retrieval
func WithHTTPClient(client *http.Client) Option {
	return func(f *fetcher) {
		f.httpClient = client
	}
}

// WithAuthToken attaches a bearer token to the download request
func WithAuthToken(token string) Option {
	return func(f *fetcher) {
		f.authToken = token
	}
}

// New creates a Fetcher that buffers the full archive in memory.
// The fetch itself carries no timeout; the caller decides whether to retry
// the whole acquisition.
func New(opts ...Option) interfaces.Fetcher {
	f := &fetcher{
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch downloads the complete archive content for the URL
func (f *fetcher) Fetch(ctx context.Context, rawURL string) (*model.FetchedArchive, error) {
	logger := ctxlog.From(ctx)

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid URL",
			goerr.T(types.ErrTagInvalidURL),
			goerr.V("url", rawURL),
		)
	}

	fileName := lastPathSegment(u.Path)
	logger.Info("Downloading archive", "url", rawURL, "file_name", fileName)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build download request",
			goerr.T(types.ErrTagInvalidURL),
			goerr.V("url", rawURL),
		)
	}
	if f.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+f.authToken)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to download archive",
			goerr.T(types.ErrTagNetworkFailure),
			goerr.V("url", rawURL),
		)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, goerr.New("unexpected status on download",
			goerr.T(types.ErrTagHTTPStatus),
			goerr.V("url", rawURL),
			goerr.V("status", resp.StatusCode),
		)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read archive content",
			goerr.T(types.ErrTagNetworkFailure),
			goerr.V("url", rawURL),
		)
	}

	logger.Info("Download complete", "url", rawURL, "size_bytes", len(content))

	return &model.FetchedArchive{
		Content:  content,
		FileName: fileName,
	}, nil
}

// lastPathSegment returns the final segment of a URL path. An empty result is
// legitimate (e.g. a bare host or trailing slash) and only degrades logging.
func lastPathSegment(p string) string {
	if p == "" {
		return ""
	}
	if idx := strings.LastIndex(p, "/"); idx >= 0 {
		return p[idx+1:]
	}
	return p
}
