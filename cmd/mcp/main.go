// Package main starts the MCP bridge to the action HUD service.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	mcpcmd "github.com/louisbranch/actionhud/internal/cmd/mcp"
	entrypoint "github.com/louisbranch/actionhud/internal/platform/cmd"
	"github.com/louisbranch/actionhud/internal/platform/config"
)

func main() {
	cfg, err := mcpcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	// stdout carries the MCP protocol, so logs stay on stderr.
	log.SetOutput(os.Stderr)
	entrypoint.SetLogPrefix(entrypoint.ServiceMCP)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := mcpcmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
