package cargo

import (
	"context"
	"io"
	"os"
	"os/exec"

	"github.com/m-mizutani/goerr/v2"
)

// CommandGenerator runs `cargo generate-lockfile`
type CommandGenerator struct {
	command string
	stdout  io.Writer
	stderr  io.Writer
}

// GeneratorOption is a functional option for CommandGenerator
type GeneratorOption func(*CommandGenerator)

// WithCommand sets the cargo executable, "cargo" by default
func WithCommand(command string) GeneratorOption {
	return func(g *CommandGenerator) {
		g.command = command
	}
}

// WithOutput redirects the command's stdout and stderr
func WithOutput(stdout, stderr io.Writer) GeneratorOption {
	return func(g *CommandGenerator) {
		g.stdout = stdout
		g.stderr = stderr
	}
}

// NewCommandGenerator creates a CommandGenerator
func NewCommandGenerator(opts ...GeneratorOption) *CommandGenerator {
	g := &CommandGenerator{
		command: "cargo",
		stdout:  os.Stderr,
		stderr:  os.Stderr,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// GenerateLockfile runs the command in dir and waits for it. A non-zero exit
// status is an error.
func (g *CommandGenerator) GenerateLockfile(ctx context.Context, dir string) error {
	cmd := exec.CommandContext(ctx, g.command, "generate-lockfile") //nolint:gosec // command is configured by the caller
	cmd.Dir = dir
	cmd.Stdout = g.stdout
	cmd.Stderr = g.stderr

	if err := cmd.Run(); err != nil {
		return goerr.Wrap(err, "failed to execute generate-lockfile",
			goerr.V("command", g.command),
			goerr.V("dir", dir))
	}
	return nil
}
