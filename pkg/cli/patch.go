package cli

import (
	"context"
	"os"

	"github.com/m-mizutani/depatch/pkg/cli/config"
	"github.com/m-mizutani/depatch/pkg/domain/interfaces"
	"github.com/m-mizutani/depatch/pkg/domain/types"
	"github.com/m-mizutani/depatch/pkg/infra/cargo"
	"github.com/m-mizutani/depatch/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdPatch(global *globalConfig) *cli.Command {
	var (
		projectCfg config.Project
		patchCfg   config.Patch
	)

	return &cli.Command{
		Name:    "patch",
		Aliases: []string{"p"},
		Usage:   "Add a [patch] section for one dependency to Cargo.toml",
		Flags:   append(projectCfg.Flags(), patchCfg.Flags()...),
		Action: func(ctx context.Context, c *cli.Command) error {
			req, err := patchCfg.Request()
			if err != nil {
				return err
			}

			reporter := global.reporter()
			uc := newPatcher(&projectCfg, reporter)

			if _, err := uc.Patch(ctx, req); err != nil {
				if goerr.HasTag(err, types.ErrTagAlreadyPatched) {
					reporter.Info("The patch already exists, do nothing", "package", req.Name)
					return nil
				}
				return goerr.Wrap(err, "failed to patch dependency",
					goerr.V("package", req.Name),
					goerr.V("real_package", req.RealName()))
			}

			return nil
		},
	}
}

func newPatcher(cfg *config.Project, reporter interfaces.Reporter) interfaces.PatchUseCase {
	store := cargo.NewStore(cfg.CargoPath, cargo.WithReporter(reporter))

	opts := []usecase.Option{usecase.WithReporter(reporter)}
	if cfg.DryRun {
		opts = append(opts, usecase.WithDryRun(os.Stdout))
	}
	return usecase.NewPatcher(store, opts...)
}
