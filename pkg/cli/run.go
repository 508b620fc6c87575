package cli

import (
	"context"
	"errors"
	"os"
	"sort"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mizuki-ohta/rawland/pkg/cli/config"
	"github.com/mizuki-ohta/rawland/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

func cmdRun() *cli.Command {
	var (
		httpCfg      config.HTTP
		manifestPath string
		keepGoing    bool
	)

	flags := append(httpCfg.Flags(),
		&cli.StringFlag{
			Name:        "manifest",
			Aliases:     []string{"m"},
			Usage:       "Path to the dataset manifest (TOML)",
			Value:       "rawland.toml",
			Destination: &manifestPath,
			Sources:     cli.EnvVars("RAWLAND_MANIFEST"),
		},
		&cli.BoolFlag{
			Name:        "keep-going",
			Usage:       "Continue with remaining datasets after a failure",
			Destination: &keepGoing,
			Sources:     cli.EnvVars("RAWLAND_KEEP_GOING"),
		},
	)

	return &cli.Command{
		Name:    "run",
		Aliases: []string{"r"},
		Usage:   "Acquire every dataset listed in the manifest",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			data, err := os.ReadFile(manifestPath)
			if err != nil {
				return goerr.Wrap(err, "failed to read manifest", goerr.V("path", manifestPath))
			}

			manifest, err := model.ParseManifest(data)
			if err != nil {
				return goerr.Wrap(err, "failed to load manifest", goerr.V("path", manifestPath))
			}

			runID := uuid.NewString()
			logger = logger.With("run_id", runID)
			ctx = ctxlog.With(ctx, logger)

			logger.Info("Starting ingestion run",
				"manifest", manifestPath,
				"dataset_count", len(manifest.Datasets),
				"http", &httpCfg,
			)

			uc := newAcquireUseCase(&httpCfg)

			// Stable order so runs are reproducible and logs comparable
			names := make([]string, 0, len(manifest.Datasets))
			for name := range manifest.Datasets {
				names = append(names, name)
			}
			sort.Strings(names)

			var failures []error
			for _, name := range names {
				ds := manifest.Datasets[name]
				logger.Info("Acquiring dataset",
					"dataset", name,
					"url", ds.URL,
					"extract_dir", ds.ExtractDir,
				)

				if _, err := uc.Acquire(ctx, ds.Request()); err != nil {
					wrapped := goerr.Wrap(err, "dataset acquisition failed", goerr.V("dataset", name))
					if !keepGoing {
						return wrapped
					}
					logger.Error("Dataset acquisition failed, continuing",
						"dataset", name,
						"error", err,
					)
					failures = append(failures, wrapped)
				}
			}

			if len(failures) > 0 {
				return errors.Join(failures...)
			}

			logger.Info("Ingestion run complete", "dataset_count", len(names))
			return nil
		},
	}
}
