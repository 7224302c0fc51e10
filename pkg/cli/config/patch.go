package config

import (
	"github.com/m-mizutani/depatch/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

// Patch holds the fields of a single patch request
type Patch struct {
	Fields model.PatchFields
}

// Flags returns CLI flags for a patch request
func (c *Patch) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "name",
			Aliases:     []string{"n"},
			Usage:       "The name of the package to be patched, which may be renamed",
			Required:    true,
			Destination: &c.Fields.Name,
		},
		&cli.StringFlag{
			Name:        "type",
			Aliases:     []string{"t"},
			Usage:       "The type of the patch: git, registry or path",
			Required:    true,
			Destination: &c.Fields.Type,
		},
		&cli.StringFlag{
			Name:        "real-package-name",
			Aliases:     []string{"r"},
			Usage:       "The real package name when the dependency is renamed",
			Destination: &c.Fields.RealPackageName,
		},
		&cli.StringFlag{
			Name:        "package-version",
			Usage:       "The version requirement for the target patch (required for registry)",
			Destination: &c.Fields.Version,
		},
		&cli.StringFlag{
			Name:        "git-repo",
			Usage:       "GitHub repository in owner/repo form (required for git)",
			Destination: &c.Fields.GitRepo,
		},
		&cli.StringFlag{
			Name:        "commit",
			Usage:       "Commit hash for git patch",
			Destination: &c.Fields.Commit,
		},
		&cli.StringFlag{
			Name:        "tag",
			Usage:       "Tag name for git patch",
			Destination: &c.Fields.Tag,
		},
		&cli.StringFlag{
			Name:        "branch",
			Usage:       "Branch name for git patch",
			Destination: &c.Fields.Branch,
		},
		&cli.StringFlag{
			Name:        "patch-path",
			Usage:       "Local path for path patch",
			Destination: &c.Fields.Path,
		},
	}
}

// Request validates the flags and builds a patch request
func (c *Patch) Request() (*model.PatchRequest, error) {
	return c.Fields.Request()
}
