package report

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/depatch/pkg/domain/interfaces"
	"golang.org/x/term"
)

// Console writes "[INFO] message key=value" lines for the user and mirrors
// every message to a slog logger at debug level.
type Console struct {
	w      io.Writer
	logger *slog.Logger

	infoLabel  *color.Color
	warnLabel  *color.Color
	errorLabel *color.Color
}

var _ interfaces.Reporter = (*Console)(nil)

type config struct {
	w      io.Writer
	logger *slog.Logger
	color  *bool
}

// Option is a functional option for Console
type Option func(*config)

// WithWriter sets the output destination, os.Stdout by default
func WithWriter(w io.Writer) Option {
	return func(c *config) {
		c.w = w
	}
}

// WithLogger sets the logger that receives a copy of every message
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithColor forces colored labels on or off. Without it, color is enabled
// only when the writer is a terminal.
func WithColor(enabled bool) Option {
	return func(c *config) {
		c.color = &enabled
	}
}

// New creates a Console reporter
func New(opts ...Option) *Console {
	cfg := &config{
		w:      os.Stdout,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	enabled := isTerminal(cfg.w)
	if cfg.color != nil {
		enabled = *cfg.color
	}

	r := &Console{
		w:          cfg.w,
		logger:     cfg.logger,
		infoLabel:  color.New(color.FgGreen, color.Bold),
		warnLabel:  color.New(color.FgYellow, color.Bold),
		errorLabel: color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{r.infoLabel, r.warnLabel, r.errorLabel} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return r
}

func (r *Console) Info(msg string, args ...any) {
	r.logger.Debug(msg, args...)
	r.print(r.infoLabel, "[INFO]", msg, args)
}

func (r *Console) Warn(msg string, args ...any) {
	r.logger.Debug(msg, args...)
	r.print(r.warnLabel, "[WARN]", msg, args)
}

func (r *Console) Error(msg string, args ...any) {
	r.logger.Debug(msg, args...)
	r.print(r.errorLabel, "[ERROR]", msg, args)
}

func (r *Console) print(c *color.Color, label, msg string, args []any) {
	_, _ = fmt.Fprintf(r.w, "%s %s%s\n", c.Sprint(label), msg, formatArgs(args))
}

func formatArgs(args []any) string {
	var sb strings.Builder
	for i := 0; i < len(args); i += 2 {
		if i+1 >= len(args) {
			sb.WriteString(fmt.Sprintf(" %v", args[i]))
			break
		}
		sb.WriteString(fmt.Sprintf(" %v=%v", args[i], args[i+1]))
	}
	return sb.String()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // file descriptors fit in int
}

type discard struct{}

func (discard) Info(string, ...any)  {}
func (discard) Warn(string, ...any)  {}
func (discard) Error(string, ...any) {}

// Discard drops every message
var Discard interfaces.Reporter = discard{}
