// Package mcp parses MCP command flags and launches the stdio bridge.
package mcp

import (
	"context"
	"flag"

	entrypoint "github.com/louisbranch/actionhud/internal/platform/cmd"
	"github.com/louisbranch/actionhud/internal/platform/discovery"
	mcpservice "github.com/louisbranch/actionhud/internal/services/mcp/service"
)

// Config holds MCP command configuration.
type Config struct {
	HudAddr string `env:"ACTIONHUD_MCP_HUD_ADDR"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	cfg.HudAddr = discovery.OrLocalGRPCAddr(cfg.HudAddr, discovery.ServiceHUD)
	fs.StringVar(&cfg.HudAddr, "hud-addr", cfg.HudAddr, "HUD gRPC server address")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP protocol adapter.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMCP, func(ctx context.Context) error {
		return mcpservice.Run(ctx, mcpservice.Config{HudAddr: cfg.HudAddr})
	})
}
