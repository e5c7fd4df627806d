// Package cli parses the command line and runs the export.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"asana2csv/internal/commands"
	"asana2csv/internal/config"
	"asana2csv/internal/exitcode"
	"asana2csv/internal/logging"
	"asana2csv/internal/service"
)

// ServiceFactory creates a Service from config.
// Used to inject the backend during dispatch.
type ServiceFactory func(ctx context.Context, cfg *config.Config) (service.Service, error)

// ConfigLoader builds the Config from a dotenv file path.
type ConfigLoader func(envFile string) (*config.Config, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	factory    ServiceFactory
	export     *commands.ExportCmd
	loadConfig ConfigLoader
}

// NewDispatcher creates a new dispatcher with the given service factory and export command.
func NewDispatcher(factory ServiceFactory, export *commands.ExportCmd) *Dispatcher {
	if export == nil {
		export = &commands.ExportCmd{}
	}
	return &Dispatcher{
		factory:    factory,
		export:     export,
		loadConfig: config.Load,
	}
}

// SetConfigLoader replaces config.Load (for testing).
func (d *Dispatcher) SetConfigLoader(load ConfigLoader) {
	d.loadConfig = load
}

// Run parses arguments and runs the export.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet(config.AppName, flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	var envFile string
	var outDir string
	var quiet bool
	var debug bool
	var version bool

	fs.StringVar(&envFile, "env", "", "")
	fs.StringVar(&outDir, "out-dir", "", "")
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&debug, "debug", false, "")
	fs.BoolVar(&version, "version", false, "")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			commands.PrintUsage(out)
			return exitcode.Success
		}
		return reportFlagError(errOut, err)
	}

	if version {
		fmt.Fprintf(out, "%s %s\n", config.AppName, commands.Version)
		return exitcode.Success
	}

	// Exactly one workspace name; anything else prints usage and exits cleanly.
	positionalArgs := fs.Args()
	if len(positionalArgs) != 1 {
		commands.PrintUsage(out)
		return exitcode.Success
	}

	cfg, err := d.loadConfig(envFile)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	if outDir != "" {
		cfg.OutDir = outDir
	}
	cfg.Quiet = cfg.Quiet || quiet
	cfg.Debug = cfg.Debug || debug

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(errOut, "error: auth error: %s\n", err)
		return exitcode.AuthError
	}

	logger, shutdown, err := logging.New(cfg.LogFormat, cfg.Debug, errOut)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	defer shutdown(context.Background())

	svc, err := d.factory(ctx, cfg)
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			fmt.Fprintf(errOut, "error: auth error: %s\n", err)
			return exitcode.AuthError
		}
		fmt.Fprintf(errOut, "error: backend error: %s\n", err)
		return exitcode.BackendError
	}

	d.export.Logger = logger
	return d.export.Run(ctx, cfg, svc, positionalArgs, out, errOut)
}

// reportFlagError prints a flag parsing error the way the rest of the CLI reports errors.
func reportFlagError(errOut io.Writer, err error) int {
	errStr := err.Error()

	// Check for missing flag value
	if strings.HasPrefix(errStr, "flag needs an argument:") {
		flagName := strings.TrimSpace(strings.TrimPrefix(errStr, "flag needs an argument:"))
		fmt.Fprintf(errOut, "error: flag needs an argument: %s\n", flagName)
		return exitcode.UserError
	}

	// Check for unknown flag
	if strings.HasPrefix(errStr, "flag provided but not defined:") {
		flagName := strings.TrimPrefix(errStr, "flag provided but not defined: ")
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", flagName)
		return exitcode.UserError
	}

	fmt.Fprintf(errOut, "error: %s\n", errStr)
	return exitcode.UserError
}
