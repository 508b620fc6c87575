package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/mizuki-ohta/rawland/pkg/domain/model"
	"github.com/mizuki-ohta/rawland/pkg/domain/types"
	"github.com/mizuki-ohta/rawland/pkg/usecase"
)

// MockSniffer is a mock implementation of Sniffer
type MockSniffer struct {
	verdict       model.TypeVerdict
	classifyCalls []string
}

func (m *MockSniffer) Classify(ctx context.Context, url string) *model.TypeVerdict {
	m.classifyCalls = append(m.classifyCalls, url)
	v := m.verdict
	return &v
}

// MockFetcher is a mock implementation of Fetcher
type MockFetcher struct {
	fetchFunc  func(ctx context.Context, url string) (*model.FetchedArchive, error)
	fetchCalls []string
}

func (m *MockFetcher) Fetch(ctx context.Context, url string) (*model.FetchedArchive, error) {
	m.fetchCalls = append(m.fetchCalls, url)
	if m.fetchFunc != nil {
		return m.fetchFunc(ctx, url)
	}
	return nil, errors.New("mock not configured")
}

// MockExtractor is a mock implementation of Extractor
type MockExtractor struct {
	extractFunc  func(ctx context.Context, content []byte, fileName, extractDir string) (*model.ExtractReport, error)
	extractCalls []string
}

func (m *MockExtractor) Extract(ctx context.Context, content []byte, fileName, extractDir string) (*model.ExtractReport, error) {
	m.extractCalls = append(m.extractCalls, extractDir)
	if m.extractFunc != nil {
		return m.extractFunc(ctx, content, fileName, extractDir)
	}
	return nil, errors.New("mock not configured")
}

func TestAcquire_Success(t *testing.T) {
	ctx := context.Background()

	sniffer := &MockSniffer{verdict: model.TypeVerdict{IsZip: true, Reason: "extension"}}
	fetcher := &MockFetcher{
		fetchFunc: func(ctx context.Context, url string) (*model.FetchedArchive, error) {
			return &model.FetchedArchive{Content: []byte("zipzip"), FileName: "set.zip"}, nil
		},
	}
	extractor := &MockExtractor{
		extractFunc: func(ctx context.Context, content []byte, fileName, extractDir string) (*model.ExtractReport, error) {
			gt.Equal(t, content, []byte("zipzip"))
			gt.Equal(t, fileName, "set.zip")
			return &model.ExtractReport{Files: []string{"a.txt"}, Size: 6}, nil
		},
	}

	uc := usecase.NewAcquire(sniffer, fetcher, extractor)
	report, err := uc.Acquire(ctx, &model.AcquisitionRequest{
		URL:        "https://example.org/data/set.zip",
		ExtractDir: "/tmp/raw/set",
	})

	gt.NoError(t, err)
	gt.Equal(t, len(report.Files), 1)
	gt.Equal(t, len(sniffer.classifyCalls), 1)
	gt.Equal(t, len(fetcher.fetchCalls), 1)
	gt.Equal(t, extractor.extractCalls, []string{"/tmp/raw/set"})
}

func TestAcquire_OmitVerificationSkipsSniffer(t *testing.T) {
	ctx := context.Background()

	// Negative verdict would reject the request, but it must never be asked
	sniffer := &MockSniffer{verdict: model.TypeVerdict{IsZip: false, Reason: "no extension"}}
	fetcher := &MockFetcher{
		fetchFunc: func(ctx context.Context, url string) (*model.FetchedArchive, error) {
			return &model.FetchedArchive{Content: []byte("zip"), FileName: ""}, nil
		},
	}
	extractor := &MockExtractor{
		extractFunc: func(ctx context.Context, content []byte, fileName, extractDir string) (*model.ExtractReport, error) {
			return &model.ExtractReport{}, nil
		},
	}

	uc := usecase.NewAcquire(sniffer, fetcher, extractor)
	_, err := uc.Acquire(ctx, &model.AcquisitionRequest{
		URL:              "https://example.org/download",
		ExtractDir:       "/tmp/raw/any",
		OmitVerification: true,
	})

	gt.NoError(t, err)
	gt.Equal(t, len(sniffer.classifyCalls), 0)
	gt.Equal(t, len(fetcher.fetchCalls), 1)
}

func TestAcquire_NegativeVerdictRejectsBeforeFetch(t *testing.T) {
	ctx := context.Background()

	sniffer := &MockSniffer{verdict: model.TypeVerdict{IsZip: false, Reason: "URL has no file extension"}}
	fetcher := &MockFetcher{}
	extractor := &MockExtractor{}

	uc := usecase.NewAcquire(sniffer, fetcher, extractor)
	report, err := uc.Acquire(ctx, &model.AcquisitionRequest{
		URL:        "https://example.org/download",
		ExtractDir: "/tmp/raw/none",
	})

	gt.Error(t, err)
	gt.Value(t, report).Nil()
	gt.Equal(t, goerr.HasTag(err, types.ErrTagUnsupportedResource), true)
	gt.String(t, err.Error()).Contains("not a ZIP archive")

	// Neither fetch nor extraction may be attempted
	gt.Equal(t, len(fetcher.fetchCalls), 0)
	gt.Equal(t, len(extractor.extractCalls), 0)
}

func TestAcquire_FetchFailurePropagatesTag(t *testing.T) {
	ctx := context.Background()

	sniffer := &MockSniffer{verdict: model.TypeVerdict{IsZip: true, Reason: "extension"}}
	fetcher := &MockFetcher{
		fetchFunc: func(ctx context.Context, url string) (*model.FetchedArchive, error) {
			return nil, goerr.New("status 503", goerr.T(types.ErrTagHTTPStatus))
		},
	}
	extractor := &MockExtractor{}

	uc := usecase.NewAcquire(sniffer, fetcher, extractor)
	_, err := uc.Acquire(ctx, &model.AcquisitionRequest{
		URL:        "https://example.org/data/set.zip",
		ExtractDir: "/tmp/raw/set",
	})

	gt.Error(t, err)
	gt.Equal(t, goerr.HasTag(err, types.ErrTagHTTPStatus), true)
	gt.String(t, err.Error()).Contains("failed to fetch archive")
	gt.Equal(t, len(extractor.extractCalls), 0)
}

func TestAcquire_ExtractFailurePropagatesTag(t *testing.T) {
	ctx := context.Background()

	sniffer := &MockSniffer{verdict: model.TypeVerdict{IsZip: true, Reason: "extension"}}
	fetcher := &MockFetcher{
		fetchFunc: func(ctx context.Context, url string) (*model.FetchedArchive, error) {
			return &model.FetchedArchive{Content: []byte("not a zip"), FileName: "set.zip"}, nil
		},
	}
	extractor := &MockExtractor{
		extractFunc: func(ctx context.Context, content []byte, fileName, extractDir string) (*model.ExtractReport, error) {
			return nil, goerr.New("bad archive", goerr.T(types.ErrTagCorruptArchive))
		},
	}

	uc := usecase.NewAcquire(sniffer, fetcher, extractor)
	_, err := uc.Acquire(ctx, &model.AcquisitionRequest{
		URL:        "https://example.org/data/set.zip",
		ExtractDir: "/tmp/raw/set",
	})

	gt.Error(t, err)
	gt.Equal(t, goerr.HasTag(err, types.ErrTagCorruptArchive), true)
	gt.String(t, err.Error()).Contains("failed to extract archive")
}
