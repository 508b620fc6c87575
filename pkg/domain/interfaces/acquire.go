package interfaces

import (
	"context"

	"github.com/mizuki-ohta/rawland/pkg/domain/model"
)

// Sniffer classifies a URL as "likely ZIP" using only metadata: the URL path's
// extension and, when that is inconclusive, a single headers-only probe
type Sniffer interface {
	// Classify never fails; a failed probe folds into a negative verdict
	Classify(ctx context.Context, url string) *model.TypeVerdict
}

// Fetcher retrieves the full archive content for a URL
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*model.FetchedArchive, error)
}

// Extractor validates archive bytes and writes every entry under extractDir
type Extractor interface {
	Extract(ctx context.Context, content []byte, fileName, extractDir string) (*model.ExtractReport, error)
}

// AcquireUseCase orchestrates sniff, fetch and extract for one dataset
type AcquireUseCase interface {
	Acquire(ctx context.Context, req *model.AcquisitionRequest) (*model.ExtractReport, error)
}
