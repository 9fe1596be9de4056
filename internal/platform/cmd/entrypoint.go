// Package cmd holds the startup steps shared by the hud and mcp commands.
package cmd

import (
	"context"
	"errors"
	"flag"
	"log"
	"strings"

	"github.com/louisbranch/actionhud/internal/platform/config"
	"github.com/louisbranch/actionhud/internal/platform/discovery"
	"github.com/louisbranch/actionhud/internal/platform/otel"
	"github.com/louisbranch/actionhud/internal/platform/timeouts"
)

// Service names used for tracing resources and log prefixes.
const (
	ServiceHUD = discovery.ServiceHUD
	ServiceMCP = discovery.ServiceMCP
)

// ParseConfig fills cfg from its env tags. Commands register flags with the
// env values as defaults and then call ParseArgs.
func ParseConfig[T any](cfg *T) error {
	if cfg == nil {
		return errors.New("config target is required")
	}
	return config.ParseEnv(cfg)
}

// ParseArgs parses args into fs. A nil args slice parses as empty.
func ParseArgs(fs *flag.FlagSet, args []string) error {
	if fs == nil {
		return errors.New("flag set is required")
	}
	if args == nil {
		args = []string{}
	}
	return fs.Parse(args)
}

// SetLogPrefix tags the standard logger with the service, e.g. "[HUD] ".
func SetLogPrefix(service string) {
	log.SetPrefix("[" + strings.ToUpper(strings.TrimSpace(service)) + "] ")
}

// RunWithTelemetry installs the tracer provider for service, runs run and
// flushes spans within timeouts.Shutdown once run returns.
func RunWithTelemetry(ctx context.Context, service string, run func(context.Context) error) error {
	service = strings.TrimSpace(service)
	switch {
	case service == "":
		return errors.New("service name is required")
	case run == nil:
		return errors.New("run function is required")
	}
	shutdown, err := otel.Setup(ctx, service)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		if err := shutdown(flushCtx); err != nil {
			log.Printf("otel shutdown service=%s err=%v", service, err)
		}
	}()
	return run(ctx)
}
