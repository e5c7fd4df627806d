// Package commands implements the export command.
package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"asana2csv/internal/config"
	"asana2csv/internal/exitcode"
	"asana2csv/internal/export"
	"asana2csv/internal/output"
	"asana2csv/internal/service"
	"asana2csv/internal/upload"
)

// ExportCmd exports one workspace to a CSV file.
type ExportCmd struct {
	// Logger receives debug logs. Nil discards them.
	Logger *slog.Logger

	// Filesystem overrides the destination selected by cfg.OutDir (for testing).
	Filesystem upload.Filesystem

	// Now returns the run date. Nil means time.Now.
	Now func() time.Time
}

// Run exports the workspace named by args[0].
// The caller has already checked that exactly one argument is given.
func (c *ExportCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	workspace := args[0]
	logger := c.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	var progress io.Writer = out
	if cfg.Quiet {
		progress = io.Discard
	}

	exporter := export.NewExporter(svc,
		export.WithPageSize(cfg.PageSize),
		export.WithProgress(progress),
		export.WithLogger(logger),
	)

	rows, err := exporter.Export(ctx, workspace)
	if err != nil {
		return reportExportError(errOut, err)
	}

	data, err := output.EncodeCSV(export.Header, rows)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.OutputError
	}

	fs := c.Filesystem
	if fs == nil {
		fs, err = upload.FromConfig(ctx, cfg)
		if err != nil {
			fmt.Fprintf(errOut, "error: output error: %v\n", err)
			return exitcode.OutputError
		}
	}

	day := c.now()
	dest := cfg.OutputPath(workspace, day)
	if err := fs.Write(ctx, cfg.FileName(workspace, day), bytes.NewReader(data), int64(len(data))); err != nil {
		fmt.Fprintf(errOut, "error: failed to write %s: %v\n", dest, err)
		return exitcode.OutputError
	}

	logger.Debug("wrote csv", "path", dest, "rows", len(rows), "bytes", len(data))
	return exitcode.Success
}

func (c *ExportCmd) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// reportExportError prints err and returns the matching exit code.
func reportExportError(errOut io.Writer, err error) int {
	switch {
	case errors.Is(err, export.ErrWorkspaceNotFound), errors.Is(err, export.ErrUnknownWorkspace):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	case errors.Is(err, service.ErrUnauthorized):
		fmt.Fprintf(errOut, "error: auth error: %v\n", err)
		return exitcode.AuthError
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(errOut, "error: cancelled")
		return exitcode.BackendError
	default:
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}
}
