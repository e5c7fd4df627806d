// Package main is the entry point for the asana2csv CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"asana2csv/internal/backend/asana"
	"asana2csv/internal/cli"
	"asana2csv/internal/commands"
	"asana2csv/internal/config"
	"asana2csv/internal/service"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Create service factory
	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return asana.New(ctx, cfg)
	}

	dispatcher := cli.NewDispatcher(factory, &commands.ExportCmd{})

	// Run and exit with code
	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}
