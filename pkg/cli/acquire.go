package cli

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mizuki-ohta/rawland/pkg/cli/config"
	"github.com/mizuki-ohta/rawland/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

func cmdAcquire() *cli.Command {
	var (
		httpCfg config.HTTP
		req     model.AcquisitionRequest
	)

	flags := append(httpCfg.Flags(),
		&cli.StringFlag{
			Name:        "url",
			Usage:       "URL of the dataset archive",
			Required:    true,
			Destination: &req.URL,
			Sources:     cli.EnvVars("RAWLAND_URL"),
		},
		&cli.StringFlag{
			Name:        "extract-dir",
			Aliases:     []string{"d"},
			Usage:       "Directory to extract the archive into",
			Required:    true,
			Destination: &req.ExtractDir,
			Sources:     cli.EnvVars("RAWLAND_EXTRACT_DIR"),
		},
		&cli.BoolFlag{
			Name:        "omit-verification",
			Usage:       "Skip the archive type check and download unconditionally",
			Destination: &req.OmitVerification,
			Sources:     cli.EnvVars("RAWLAND_OMIT_VERIFICATION"),
		},
	)

	return &cli.Command{
		Name:  "acquire",
		Usage: "Acquire a single dataset archive",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := req.Validate(); err != nil {
				return goerr.Wrap(err, "invalid acquisition request")
			}

			uc := newAcquireUseCase(&httpCfg)

			report, err := uc.Acquire(ctx, &req)
			if err != nil {
				return err
			}

			ctxlog.From(ctx).Info("Acquired dataset",
				"url", req.URL,
				"extract_dir", req.ExtractDir,
				"file_count", len(report.Files),
				"total_size_bytes", report.Size,
			)
			return nil
		},
	}
}
