package cli

import (
	"context"
	"os"

	"github.com/m-mizutani/depatch/pkg/cli/config"
	"github.com/m-mizutani/depatch/pkg/domain/model"
	"github.com/m-mizutani/depatch/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdApply(global *globalConfig) *cli.Command {
	var (
		projectCfg config.Project
		planPath   string
	)

	flags := append(projectCfg.Flags(), &cli.StringFlag{
		Name:        "plan",
		Usage:       "YAML file listing the patches to apply",
		Required:    true,
		Destination: &planPath,
		Sources:     cli.EnvVars("DEPATCH_PLAN"),
	})

	return &cli.Command{
		Name:  "apply",
		Usage: "Add [patch] sections listed in a plan file to Cargo.toml",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			data, err := os.ReadFile(planPath) //nolint:gosec // plan path is given by the user
			if err != nil {
				return goerr.Wrap(err, "failed to read plan file",
					goerr.V("path", planPath),
					goerr.T(types.ErrTagNotFound))
			}

			reqs, err := model.ParsePlan(data)
			if err != nil {
				return goerr.Wrap(err, "failed to load plan", goerr.V("path", planPath))
			}

			reporter := global.reporter()
			uc := newPatcher(&projectCfg, reporter)

			for _, req := range reqs {
				if _, err := uc.Patch(ctx, req); err != nil {
					if goerr.HasTag(err, types.ErrTagAlreadyPatched) {
						reporter.Info("The patch already exists, skipped", "package", req.Name)
						continue
					}
					return goerr.Wrap(err, "failed to patch dependency",
						goerr.V("package", req.Name),
						goerr.V("real_package", req.RealName()))
				}
			}

			return nil
		},
	}
}
