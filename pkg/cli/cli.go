package cli

import (
	"context"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
	"github.com/mizuki-ohta/rawland/pkg/cli/config"
	"github.com/mizuki-ohta/rawland/pkg/domain/interfaces"
	"github.com/mizuki-ohta/rawland/pkg/domain/types"
	"github.com/mizuki-ohta/rawland/pkg/infra/extractor"
	"github.com/mizuki-ohta/rawland/pkg/infra/fetcher"
	"github.com/mizuki-ohta/rawland/pkg/infra/sniffer"
	"github.com/mizuki-ohta/rawland/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// Run runs the CLI application
func Run(ctx context.Context, args []string) error {
	var (
		loggerCfg config.Logger
		sentryCfg config.Sentry
		logger    *slog.Logger
	)

	flags := append(loggerCfg.Flags(), sentryCfg.Flags()...)

	app := &cli.Command{
		Name:    "rawland",
		Usage:   "Land third-party ZIP datasets into the raw data layer",
		Version: types.Version,
		Flags:   flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			var err error
			logger, err = loggerCfg.Configure()
			if err != nil {
				return nil, err
			}

			slog.SetDefault(logger)
			ctx = ctxlog.With(ctx, logger)

			if err := sentryCfg.Configure(); err != nil {
				return nil, err
			}

			return ctx, nil
		},
		Commands: []*cli.Command{
			cmdRun(),
			cmdAcquire(),
			cmdServe(),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("CLI execution failed", slog.Any("error", err))
		sentry.CaptureException(err)
		sentry.Flush(2 * time.Second)
		return err
	}

	return nil
}

// newAcquireUseCase wires the sniffer, fetcher and extractor with the given
// outbound HTTP configuration
func newAcquireUseCase(httpCfg *config.HTTP) interfaces.AcquireUseCase {
	return usecase.NewAcquire(
		sniffer.New(
			sniffer.WithProbeTimeout(httpCfg.ProbeTimeout),
			sniffer.WithAuthToken(httpCfg.AuthToken),
		),
		fetcher.New(
			fetcher.WithAuthToken(httpCfg.AuthToken),
		),
		extractor.New(),
	)
}
