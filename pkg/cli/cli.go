package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"velocity/pkg/cli/config"
)

const usageMessage = "Missing args: Mention the data file you want to use."

// Run runs the CLI application
func Run(ctx context.Context, args []string) error {
	if err := newCommand(os.Stdout).Run(ctx, args); err != nil {
		return goerr.Wrap(err, "CLI execution failed")
	}
	return nil
}

func newCommand(w io.Writer) *cli.Command {
	var (
		loggerCfg config.Logger
		inputCfg  config.Input
		chartCfg  config.Chart
	)

	return &cli.Command{
		Name:            "velocity",
		Usage:           "Plot event volume per second from a JSON-lines feed",
		UsageText:       "velocity [options] <name>",
		ArgsUsage:       "<name>",
		Version:         "0.1.0",
		Writer:          w,
		HideHelpCommand: true,
		Flags: joinFlags(
			loggerCfg.Flags(),
			inputCfg.Flags(),
			chartCfg.Flags(),
		),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, err := loggerCfg.Configure()
			if err != nil {
				slog.Error("invalid logging configuration", "error", err)
				return nil, err
			}

			slog.SetDefault(logger)
			return ctxlog.With(ctx, logger), nil
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return runVelocity(ctx, c, &inputCfg, &chartCfg)
		},
	}
}
