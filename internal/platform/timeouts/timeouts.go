// Package timeouts defines shared timeout constants used across the HUD
// server and its clients.
package timeouts

import "time"

// GRPCDial caps the wait time when dialing the HUD gRPC server, including
// the health check that gates the connection.
const GRPCDial = 2 * time.Second

// GRPCRequest caps a single tool call forwarded from the MCP bridge to the
// HUD server.
const GRPCRequest = 5 * time.Second

// Build caps one action list build when the caller did not set a deadline.
const Build = 3 * time.Second

// Shutdown limits how long the HUD server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second
