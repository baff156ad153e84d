// Package main generates an event log and builds the training table in one run.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	pipelinecmd "github.com/louisbranch/seatrelease/internal/cmd/pipeline"
	"github.com/louisbranch/seatrelease/internal/platform/config"
)

func main() {
	cfg, err := pipelinecmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.ExitError("parse config", err)
	}
	log.SetPrefix("[PIPELINE] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := pipelinecmd.Run(ctx, cfg, os.Stdout); err != nil {
		config.ExitError("pipeline", err)
	}
}
