// Package main starts the action HUD gRPC service process lifecycle.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	hudcmd "github.com/louisbranch/actionhud/internal/cmd/hud"
	entrypoint "github.com/louisbranch/actionhud/internal/platform/cmd"
	"github.com/louisbranch/actionhud/internal/platform/config"
)

func main() {
	cfg, err := hudcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	entrypoint.SetLogPrefix(entrypoint.ServiceHUD)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := hudcmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
