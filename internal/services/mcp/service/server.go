package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	platformgrpc "github.com/louisbranch/actionhud/internal/platform/grpc"
	"github.com/louisbranch/actionhud/internal/platform/timeouts"
	hudservice "github.com/louisbranch/actionhud/internal/services/hud/api/grpc/hud"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/grpc"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

const (
	serverName    = "actionhud MCP"
	serverVersion = "0.1.0"
	// healthInterval spaces background health checks of the HUD connection.
	healthInterval = 30 * time.Second
)

// Config configures the MCP server.
type Config struct {
	// HudAddr is the HUD gRPC address, such as "localhost:8090".
	HudAddr string
}

// Server hosts the MCP server.
type Server struct {
	mcpServer *mcp.Server
	conn      *grpc.ClientConn
}

// newServer registers the HUD tools against conn.
func newServer(conn *grpc.ClientConn) (*Server, error) {
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	if err := registerTools(mcpServer, hudToolRegistrations(hudservice.NewClient(conn))); err != nil {
		return nil, fmt.Errorf("register MCP tools: %w", err)
	}
	return &Server{mcpServer: mcpServer, conn: conn}, nil
}

// Run dials the HUD and serves MCP over stdio until ctx ends.
func Run(ctx context.Context, cfg Config) error {
	return runWithTransport(ctx, cfg.HudAddr, &mcp.StdioTransport{})
}

// runWithTransport creates a server and serves it over the provided transport.
func runWithTransport(ctx context.Context, hudAddr string, transport mcp.Transport) error {
	conn, err := dialHud(ctx, hudAddr)
	if err != nil {
		return err
	}
	server, err := newServer(conn)
	if err != nil {
		_ = conn.Close()
		return err
	}

	healthCtx, healthCancel := context.WithCancel(ctx)
	defer healthCancel()
	go server.monitorHealth(healthCtx, healthInterval)

	return server.serveWithTransport(ctx, transport)
}

func dialHud(ctx context.Context, addr string) (*grpc.ClientConn, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	addr = strings.TrimSpace(addr)
	logf := func(format string, args ...any) {
		log.Printf("hud %s", fmt.Sprintf(format, args...))
	}
	conn, err := platformgrpc.DialWithHealth(ctx, nil, platformgrpc.Target{
		Addr:          addr,
		HealthService: hudservice.ServiceName,
		DialTimeout:   timeouts.GRPCDial,
		Logf:          logf,
	}, platformgrpc.DefaultClientDialOptions()...)
	if err != nil {
		var dialErr *platformgrpc.DialError
		if errors.As(err, &dialErr) {
			if dialErr.Stage == platformgrpc.DialStageConnect {
				return nil, fmt.Errorf("connect to hud server at %s: %w", addr, dialErr.Err)
			}
			return nil, dialErr.Err
		}
		return nil, err
	}
	return conn, nil
}

// monitorHealth logs when the HUD connection stops serving. Tool calls keep
// failing on their own, so the MCP session is not torn down.
func (s *Server) monitorHealth(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if s.conn == nil {
				continue
			}
			callCtx, cancel := context.WithTimeout(ctx, timeouts.GRPCRequest)
			response, err := grpc_health_v1.NewHealthClient(s.conn).Check(callCtx, &grpc_health_v1.HealthCheckRequest{Service: hudservice.ServiceName})
			cancel()
			if err != nil {
				log.Printf("hud health check failed: %v", err)
			} else if response.GetStatus() != grpc_health_v1.HealthCheckResponse_SERVING {
				log.Printf("hud health check status=%s", response.GetStatus())
			}
		}
	}
}

// Close releases the gRPC connection held by the server.
func (s *Server) Close() error {
	if s == nil || s.conn == nil {
		return nil
	}
	if err := s.conn.Close(); err != nil {
		return err
	}
	s.conn = nil
	return nil
}

// serveWithTransport serves MCP on transport and closes the HUD connection
// on the way out.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	closeErr := s.Close()
	if closeErr != nil {
		if err == nil {
			return fmt.Errorf("close gRPC connection: %w", closeErr)
		}
		return fmt.Errorf("serve MCP: %v; close gRPC connection: %w", err, closeErr)
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}
