// Package service runs the MCP protocol server and binds its tools to the
// action HUD gRPC API.
package service
