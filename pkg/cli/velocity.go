package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"velocity/pkg/cli/config"
	"velocity/pkg/domain/model"
	"velocity/pkg/render"
	"velocity/pkg/utils/apperr"
)

func runVelocity(ctx context.Context, c *cli.Command, inputCfg *config.Input, chartCfg *config.Chart) error {
	if c.Args().Len() != 1 {
		fmt.Fprintln(c.Root().Writer, usageMessage)
		return goerr.New("exactly one data file name is required",
			goerr.V("args", c.Args().Slice()),
			goerr.T(model.ErrTagUsage))
	}
	name := c.Args().First()

	if err := velocity(ctx, name, inputCfg, chartCfg); err != nil {
		apperr.Handle(ctx, err)
		return err
	}
	return nil
}

func velocity(ctx context.Context, name string, inputCfg *config.Input, chartCfg *config.Chart) error {
	logger := ctxlog.From(ctx)

	cwd, err := os.Getwd()
	if err != nil {
		return goerr.Wrap(err, "failed to resolve working directory", goerr.T(model.ErrTagFileAccess))
	}

	aggregator, err := inputCfg.Configure()
	if err != nil {
		return err
	}
	renderCfg, err := chartCfg.Configure(cwd, name)
	if err != nil {
		return err
	}

	inputPath := inputCfg.Path(cwd, name)
	logger.Debug("starting velocity",
		slog.String("input", inputPath),
		slog.Any("input_config", *inputCfg),
		slog.Any("render", renderCfg),
	)

	hist, err := aggregator.AggregateFile(ctx, inputPath)
	if err != nil {
		return err
	}

	logger.Info("aggregated records",
		slog.String("input", inputPath),
		slog.Int("seconds", hist.Len()),
		slog.Any("stats", hist.Stats),
	)
	if skipped := hist.Stats.Skipped(); skipped > 0 {
		logger.Debug("skipped invalid lines", slog.Int("skipped", skipped))
	}

	if !renderCfg.Display && renderCfg.SavePath == "" {
		logger.Warn("neither --display nor --save is enabled, nothing rendered")
		return nil
	}

	return render.Render(ctx, hist, renderCfg)
}
