// Package logging builds the structured logger used for debug output.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutlog"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

const instrumentationName = "asana2csv/export"

const (
	// FormatText writes slog text records.
	FormatText = "text"

	// FormatOTel writes OpenTelemetry log records as JSON.
	FormatOTel = "otel"
)

// ShutdownFunc flushes and releases the logger's resources.
type ShutdownFunc func(ctx context.Context) error

func noopShutdown(context.Context) error { return nil }

// New returns a logger writing to w. Without debug, all records are dropped.
// Every record carries a run_id unique to this process.
func New(format string, debug bool, w io.Writer) (*slog.Logger, ShutdownFunc, error) {
	if !debug {
		return slog.New(slog.DiscardHandler), noopShutdown, nil
	}

	runID := uuid.NewString()

	switch format {
	case FormatText, "":
		h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
		return slog.New(h).With("run_id", runID), noopShutdown, nil
	case FormatOTel:
		exp, err := stdoutlog.New(stdoutlog.WithWriter(w))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create log exporter: %w", err)
		}
		provider := sdklog.NewLoggerProvider(
			sdklog.WithProcessor(sdklog.NewSimpleProcessor(exp)),
		)
		logger := otelslog.NewLogger(instrumentationName, otelslog.WithLoggerProvider(provider))
		return logger.With("run_id", runID), provider.Shutdown, nil
	default:
		return nil, nil, fmt.Errorf("unknown log format: %s", format)
	}
}
