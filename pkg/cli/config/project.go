package config

import "github.com/urfave/cli/v3"

// Project holds the location of the Cargo project to patch
type Project struct {
	CargoPath string
	DryRun    bool
}

// Flags returns CLI flags for project configuration
func (c *Project) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "cargo-path",
			Aliases:     []string{"c"},
			Usage:       "The path of the cargo project, where the Cargo.toml file is in",
			Required:    true,
			Destination: &c.CargoPath,
			Sources:     cli.EnvVars("DEPATCH_CARGO_PATH"),
		},
		&cli.BoolFlag{
			Name:        "dry-run",
			Usage:       "Print the patch instead of appending it to Cargo.toml",
			Destination: &c.DryRun,
			Sources:     cli.EnvVars("DEPATCH_DRY_RUN"),
		},
	}
}
