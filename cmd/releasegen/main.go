// Package main writes the synthetic seat release event log.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	releasegencmd "github.com/louisbranch/seatrelease/internal/cmd/releasegen"
	"github.com/louisbranch/seatrelease/internal/platform/config"
)

func main() {
	cfg, err := releasegencmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.ExitError("parse config", err)
	}
	log.SetPrefix("[RELEASEGEN] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := releasegencmd.Run(ctx, cfg, os.Stdout); err != nil {
		config.ExitError("releasegen", err)
	}
}
