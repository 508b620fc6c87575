package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mizuki-ohta/rawland/pkg/domain/interfaces"
	"github.com/mizuki-ohta/rawland/pkg/domain/model"
	"github.com/mizuki-ohta/rawland/pkg/domain/types"
)

type acquireUseCase struct {
	sniffer   interfaces.Sniffer
	fetcher   interfaces.Fetcher
	extractor interfaces.Extractor
}

// NewAcquire creates a new instance of AcquireUseCase
func NewAcquire(sniffer interfaces.Sniffer, fetcher interfaces.Fetcher, extractor interfaces.Extractor) interfaces.AcquireUseCase {
	return &acquireUseCase{
		sniffer:   sniffer,
		fetcher:   fetcher,
		extractor: extractor,
	}
}

// Acquire runs one dataset acquisition: sniff (unless omitted), fetch, extract.
// The stages run strictly in order and no stage is retried; any failure is
// terminal for this call. Nothing written so far is rolled back on failure.
func (uc *acquireUseCase) Acquire(ctx context.Context, req *model.AcquisitionRequest) (*model.ExtractReport, error) {
	logger := ctxlog.From(ctx)

	if req.OmitVerification {
		logger.Info("Type verification omitted, assuming ZIP archive", "url", req.URL)
	} else {
		verdict := uc.sniffer.Classify(ctx, req.URL)
		logger.Info("Classified resource type",
			"url", req.URL,
			"is_zip", verdict.IsZip,
			"reason", verdict.Reason,
		)

		if !verdict.IsZip {
			return nil, goerr.New("resource is not a ZIP archive",
				goerr.T(types.ErrTagUnsupportedResource),
				goerr.V("url", req.URL),
				goerr.V("reason", verdict.Reason),
			)
		}
	}

	archive, err := uc.fetcher.Fetch(ctx, req.URL)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch archive", goerr.V("url", req.URL))
	}

	report, err := uc.extractor.Extract(ctx, archive.Content, archive.FileName, req.ExtractDir)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to extract archive",
			goerr.V("url", req.URL),
			goerr.V("file_name", archive.FileName),
		)
	}

	logger.Info("Acquisition complete",
		"url", req.URL,
		"extract_dir", req.ExtractDir,
		"file_count", len(report.Files),
		"total_size_bytes", report.Size,
	)

	return report, nil
}
