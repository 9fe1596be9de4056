package service

import (
	"fmt"

	"github.com/louisbranch/actionhud/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type toolRegistration struct {
	tool *mcp.Tool
	add  func(*mcp.Server, *mcp.Tool)
}

func newToolRegistration[I any, O any](tool *mcp.Tool, handler mcp.ToolHandlerFor[I, O]) toolRegistration {
	return toolRegistration{
		tool: tool,
		add: func(server *mcp.Server, tool *mcp.Tool) {
			mcp.AddTool(server, tool, handler)
		},
	}
}

func hudToolRegistrations(client domain.HudClient) []toolRegistration {
	return []toolRegistration{
		newToolRegistration(domain.ActionListBuildTool(), domain.ActionListBuildHandler(client)),
		newToolRegistration(domain.ActionDecodeTool(), domain.ActionDecodeHandler(client)),
		newToolRegistration(domain.ActionFilterGetTool(), domain.ActionFilterGetHandler(client)),
		newToolRegistration(domain.ActionFilterUpdateTool(), domain.ActionFilterUpdateHandler(client)),
	}
}

func registerTools(server *mcp.Server, registrations []toolRegistration) error {
	seen := make(map[string]struct{}, len(registrations))
	for _, registration := range registrations {
		if registration.tool == nil {
			return fmt.Errorf("tool is nil")
		}
		if _, ok := seen[registration.tool.Name]; ok {
			return fmt.Errorf("tool %q is registered twice", registration.tool.Name)
		}
		seen[registration.tool.Name] = struct{}{}
		registration.add(server, registration.tool)
	}
	return nil
}
