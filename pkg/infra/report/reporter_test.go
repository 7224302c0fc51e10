package report_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/m-mizutani/depatch/pkg/infra/report"
	"github.com/m-mizutani/gt"
)

func TestConsole(t *testing.T) {
	var out, logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	r := report.New(
		report.WithWriter(&out),
		report.WithLogger(logger),
		report.WithColor(false),
	)

	r.Info("Patch added", "package", "log", "group", "crates-io")
	r.Warn("It will create a new Cargo.lock file")
	r.Error("failed", "odd")

	gt.V(t, out.String()).Equal("[INFO] Patch added package=log group=crates-io\n" +
		"[WARN] It will create a new Cargo.lock file\n" +
		"[ERROR] failed odd\n")
	gt.String(t, logs.String()).Contains("Patch added")
	gt.String(t, logs.String()).Contains("package=log")
}

func TestConsole_Color(t *testing.T) {
	var out bytes.Buffer
	r := report.New(
		report.WithWriter(&out),
		report.WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))),
		report.WithColor(true),
	)

	r.Info("colored")
	gt.String(t, out.String()).Contains("\x1b[")
	gt.String(t, out.String()).Contains("[INFO]")
}

func TestConsole_NonTerminalHasNoColor(t *testing.T) {
	var out bytes.Buffer
	r := report.New(
		report.WithWriter(&out),
		report.WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))),
	)

	r.Warn("plain")
	gt.V(t, out.String()).Equal("[WARN] plain\n")
}

func TestDiscard(t *testing.T) {
	report.Discard.Info("nothing")
	report.Discard.Warn("nothing")
	report.Discard.Error("nothing")
}
