// Package discovery centralizes internal service-discovery conventions.
package discovery

import (
	"strconv"
	"strings"
)

const (
	// ServiceHUD is the action HUD gRPC service identity.
	ServiceHUD = "hud"
	// ServiceMCP is the MCP bridge identity. It speaks stdio and listens on
	// no port.
	ServiceMCP = "mcp"
)

var grpcPorts = map[string]int{
	ServiceHUD: 8090,
}

// DefaultGRPCPort returns the conventional gRPC port for a service, or 0 when
// the service does not serve gRPC.
func DefaultGRPCPort(service string) int {
	return grpcPorts[strings.TrimSpace(service)]
}

// DefaultGRPCAddr returns the canonical in-network gRPC address for a service.
func DefaultGRPCAddr(service string) string {
	service = strings.TrimSpace(service)
	return defaultAddr(service, service)
}

// LocalGRPCAddr returns the loopback gRPC address for a service running on
// the same host.
func LocalGRPCAddr(service string) string {
	return defaultAddr("localhost", strings.TrimSpace(service))
}

// OrDefaultGRPCAddr returns value when set, otherwise the service convention.
func OrDefaultGRPCAddr(value, service string) string {
	value = strings.TrimSpace(value)
	if value != "" {
		return value
	}
	return DefaultGRPCAddr(service)
}

// OrLocalGRPCAddr returns value when set, otherwise the loopback address.
func OrLocalGRPCAddr(value, service string) string {
	value = strings.TrimSpace(value)
	if value != "" {
		return value
	}
	return LocalGRPCAddr(service)
}

func defaultAddr(host, service string) string {
	port, ok := grpcPorts[service]
	if !ok || port <= 0 {
		return ""
	}
	return host + ":" + strconv.Itoa(port)
}
