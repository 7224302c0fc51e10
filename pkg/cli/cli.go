package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/m-mizutani/depatch/pkg/cli/config"
	"github.com/m-mizutani/depatch/pkg/domain/interfaces"
	"github.com/m-mizutani/depatch/pkg/domain/types"
	"github.com/m-mizutani/depatch/pkg/infra/report"
	"github.com/urfave/cli/v3"
)

type globalConfig struct {
	noColor bool
}

func (g *globalConfig) flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "no-color",
			Usage:       "Disable colored output",
			Destination: &g.noColor,
			Sources:     cli.EnvVars("DEPATCH_NO_COLOR"),
		},
	}
}

// reporter writes diagnostics to stderr so that stdout carries only
// rendered patches. NO_COLOR disables color with any non-empty value.
func (g *globalConfig) reporter() interfaces.Reporter {
	opts := []report.Option{
		report.WithWriter(os.Stderr),
		report.WithLogger(slog.Default()),
	}
	if g.noColor || os.Getenv("NO_COLOR") != "" {
		opts = append(opts, report.WithColor(false))
	}
	return report.New(opts...)
}

// Run runs the CLI application
func Run(ctx context.Context, args []string) error {
	var (
		loggerCfg config.Logger
		global    globalConfig
		logger    *slog.Logger
	)

	app := &cli.Command{
		Name:    "depatch",
		Usage:   "Patch cargo dependencies by command line",
		Version: types.Version,
		Flags:   append(loggerCfg.Flags(), global.flags()...),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			var err error
			logger, err = loggerCfg.Configure()
			if err != nil {
				return nil, err
			}

			slog.SetDefault(logger)
			return ctx, nil
		},
		Commands: []*cli.Command{
			cmdPatch(&global),
			cmdApply(&global),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		global.reporter().Error(err.Error())
		logger.Debug("CLI execution failed", slog.Any("error", err))
		return err
	}

	return nil
}
