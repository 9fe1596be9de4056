// Package server wires the action HUD runtime and gRPC lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	grpcmeta "github.com/louisbranch/actionhud/internal/api/grpc/metadata"
	"github.com/louisbranch/actionhud/internal/platform/timeouts"
	hudservice "github.com/louisbranch/actionhud/internal/services/hud/api/grpc/hud"
	"github.com/louisbranch/actionhud/internal/services/hud/domain/filter"
	"github.com/louisbranch/actionhud/internal/services/hud/domain/settings"
	"github.com/louisbranch/actionhud/internal/services/hud/engine"
	hudsqlite "github.com/louisbranch/actionhud/internal/services/hud/storage/sqlite"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

// Options configures a HUD server.
type Options struct {
	// Addr is the listen address, such as ":8090".
	Addr   string
	DBPath string
	// Locale is the fallback locale for labels and error messages.
	Locale          string
	StrictContracts bool
	// Settings overrides the environment-backed display settings.
	Settings settings.Source
}

func (o Options) withDefaults() Options {
	if strings.TrimSpace(o.DBPath) == "" {
		o.DBPath = filepath.Join("data", "hud.db")
	}
	if o.Settings == nil {
		o.Settings = settings.EnvSource{}
	}
	return o
}

// Server hosts the action HUD gRPC API and storage lifecycle.
type Server struct {
	listener   net.Listener
	grpcServer *grpc.Server
	health     *health.Server
	store      *hudsqlite.Store
}

// New creates a configured HUD server listening on opts.Addr.
func New(ctx context.Context, opts Options) (*Server, error) {
	opts = opts.withDefaults()
	listener, err := net.Listen("tcp", opts.Addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", opts.Addr, err)
	}

	store, err := openFilterStore(opts.DBPath)
	if err != nil {
		_ = listener.Close()
		return nil, err
	}
	filters := filter.NewStore(store)
	if err := filters.Load(ctx); err != nil {
		_ = listener.Close()
		_ = store.Close()
		return nil, err
	}

	registry, err := newAdapterRegistry(registeredAdapters())
	if err != nil {
		_ = listener.Close()
		_ = store.Close()
		return nil, err
	}
	buildEngine, err := engine.New(engine.Config{
		Registry:        registry,
		Filters:         filters,
		Settings:        opts.Settings,
		DefaultLocale:   opts.Locale,
		StrictContracts: opts.StrictContracts,
	})
	if err != nil {
		_ = listener.Close()
		_ = store.Close()
		return nil, fmt.Errorf("create build engine: %w", err)
	}

	grpcServer := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(grpcmeta.UnaryServerInterceptor(nil)),
	)
	healthServer := health.NewServer()
	hudservice.RegisterActionHudServer(grpcServer, hudservice.NewService(buildEngine, store))
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(hudservice.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	log.Printf("hud engine ready adapters=%d filters=%d strict=%t", len(registry.List()), len(filters.Records()), opts.StrictContracts)
	return &Server{
		listener:   listener,
		grpcServer: grpcServer,
		health:     healthServer,
		store:      store,
	}, nil
}

// Addr returns the listener address for the server.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Run creates and serves a HUD server until context cancellation.
func Run(ctx context.Context, opts Options) error {
	server, err := New(ctx, opts)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}

// Serve starts the gRPC server until context cancellation.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil {
		return errors.New("server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	defer s.Close()

	log.Printf("hud server listening at %v", s.listener.Addr())
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.grpcServer.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		if s.health != nil {
			s.health.Shutdown()
		}
		s.gracefulStop(timeouts.Shutdown)
		err := <-serveErr
		if err == nil || errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return fmt.Errorf("serve gRPC: %w", err)
	case err := <-serveErr:
		if err == nil || errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return fmt.Errorf("serve gRPC: %w", err)
	}
}

// gracefulStop waits for in-flight calls up to limit, then forces the stop.
func (s *Server) gracefulStop(limit time.Duration) {
	done := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(limit):
		log.Printf("graceful stop exceeded %s, forcing stop", limit)
		s.grpcServer.Stop()
		<-done
	}
}

// Close releases HUD server resources.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.health != nil {
		s.health.Shutdown()
	}
	if s.grpcServer != nil {
		s.grpcServer.Stop()
	}
	if s.listener != nil {
		_ = s.listener.Close()
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			log.Printf("close hud store: %v", err)
		}
	}
}

func openFilterStore(path string) (*hudsqlite.Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := hudsqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open hud sqlite store: %w", err)
	}
	return store, nil
}
