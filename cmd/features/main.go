// Package main builds the seat release training table from an event log.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	featurescmd "github.com/louisbranch/seatrelease/internal/cmd/features"
	"github.com/louisbranch/seatrelease/internal/platform/config"
)

func main() {
	cfg, err := featurescmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.ExitError("parse config", err)
	}
	log.SetPrefix("[FEATURES] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := featurescmd.Run(ctx, cfg, os.Stdout); err != nil {
		config.ExitError("features", err)
	}
}
