// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/brisingire/gastronomie-verzeichnis/internal/config"
	"github.com/brisingire/gastronomie-verzeichnis/internal/server"
	"github.com/urfave/cli/v3"
)

// Version information (set via ldflags during build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	cmd := &cli.Command{
		Name:     "app",
		Usage:    "Gastronomie-Verzeichnis: restaurant directory with test reports, certificates and invoices",
		Version:  fmt.Sprintf("%s (built %s)", Version, BuildTime),
		Flags:    config.Flags(),
		Action:   server.Run,
		Commands: server.Commands(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cmd.Run(ctx, os.Args)
	stop()
	if err != nil {
		log.Fatal(err)
	}
}
