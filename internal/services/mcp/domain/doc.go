// Package domain maps MCP tool calls onto the action HUD gRPC API.
//
// Each tool decodes loosely typed MCP arguments, forwards them to the HUD
// service with correlation metadata, and returns structured output.
package domain
