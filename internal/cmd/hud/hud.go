// Package hud parses HUD service flags and launches the service.
package hud

import (
	"context"
	"flag"
	"fmt"
	"strings"

	entrypoint "github.com/louisbranch/actionhud/internal/platform/cmd"
	"github.com/louisbranch/actionhud/internal/platform/discovery"
	server "github.com/louisbranch/actionhud/internal/services/hud/app"
)

// Config holds HUD command configuration.
type Config struct {
	Port int `env:"ACTIONHUD_HUD_PORT"`
	// Addr overrides Port when set, such as "127.0.0.1:8090".
	Addr            string `env:"ACTIONHUD_HUD_ADDR"`
	DBPath          string `env:"ACTIONHUD_HUD_DB_PATH" envDefault:"data/hud.db"`
	Locale          string `env:"ACTIONHUD_HUD_LOCALE" envDefault:"en-US"`
	StrictContracts bool   `env:"ACTIONHUD_STRICT_CONTRACTS" envDefault:"false"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.Port == 0 {
		cfg.Port = discovery.DefaultGRPCPort(discovery.ServiceHUD)
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The HUD gRPC server port")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "The HUD gRPC listen address (overrides -port)")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite path for stored filters")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "Fallback locale for labels and errors")
	fs.BoolVar(&cfg.StrictContracts, "strict-contracts", cfg.StrictContracts, "Fail builds that break catalog uniqueness")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ListenAddr resolves the listen address from Addr or Port.
func (c Config) ListenAddr() string {
	if addr := strings.TrimSpace(c.Addr); addr != "" {
		return addr
	}
	return fmt.Sprintf(":%d", c.Port)
}

// Run starts the HUD gRPC API service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceHUD, func(ctx context.Context) error {
		return server.Run(ctx, server.Options{
			Addr:            cfg.ListenAddr(),
			DBPath:          cfg.DBPath,
			Locale:          cfg.Locale,
			StrictContracts: cfg.StrictContracts,
		})
	})
}
