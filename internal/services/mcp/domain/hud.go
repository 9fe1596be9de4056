package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/louisbranch/actionhud/internal/platform/timeouts"
	hudservice "github.com/louisbranch/actionhud/internal/services/hud/api/grpc/hud"
	"github.com/louisbranch/actionhud/internal/services/hud/domain/host"
	"github.com/louisbranch/actionhud/internal/services/hud/domain/settings"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// HudClient is the part of the HUD gRPC client the tools call.
type HudClient interface {
	BuildActionList(ctx context.Context, req hudservice.BuildActionListRequest, opts ...grpc.CallOption) (hudservice.BuildActionListResponse, error)
	DecodeAction(ctx context.Context, req hudservice.DecodeActionRequest, opts ...grpc.CallOption) (hudservice.DecodeActionResponse, error)
	GetFilter(ctx context.Context, req hudservice.FilterKeyRequest, opts ...grpc.CallOption) (hudservice.FilterResponse, error)
	UpdateFilter(ctx context.Context, req hudservice.UpdateFilterRequest, opts ...grpc.CallOption) (hudservice.FilterResponse, error)
}

// ActionListBuildInput represents the MCP tool input for building an action list.
type ActionListBuildInput struct {
	System     string `json:"system" jsonschema:"game system (demonlord, symbaroum, pf1)"`
	Version    string `json:"version,omitempty" jsonschema:"optional adapter version, defaults to the system default"`
	ConsumerID string `json:"consumer_id,omitempty" jsonschema:"consumer whose filters apply"`
	Locale     string `json:"locale,omitempty" jsonschema:"label locale such as en-US"`
	Token      any    `json:"token,omitempty" jsonschema:"selected token with its actor and items"`
	Multiple   bool   `json:"multiple,omitempty" jsonschema:"build for every controlled token in the scene"`
	Scene      any    `json:"scene,omitempty" jsonschema:"controlled tokens, active combat and world settings"`
	Settings   any    `json:"settings,omitempty" jsonschema:"optional display setting overrides"`
}

// ActionListBuildResult represents the MCP tool output for an action list build.
type ActionListBuildResult struct {
	ActionList any      `json:"action_list" jsonschema:"categories, subcategories and actions in display order"`
	Locale     string   `json:"locale" jsonschema:"locale the labels were rendered in"`
	Sequence   uint64   `json:"sequence" jsonschema:"build sequence number"`
	Stale      bool     `json:"stale,omitempty" jsonschema:"a newer build for the same token finished first"`
	Violations []string `json:"violations,omitempty" jsonschema:"catalog uniqueness violations that were resolved"`
}

// ActionDecodeInput represents the MCP tool input for decoding an action token.
type ActionDecodeInput struct {
	Value  string `json:"value" jsonschema:"encoded action value such as skill|tok-1|acr"`
	Locale string `json:"locale,omitempty" jsonschema:"locale for error messages"`
}

// ActionDecodeResult represents the MCP tool output for a decoded action token.
type ActionDecodeResult struct {
	Kind    string   `json:"kind" jsonschema:"action kind"`
	TokenID string   `json:"token_id" jsonschema:"token identifier or multi"`
	RefID   string   `json:"ref_id" jsonschema:"referenced item, skill or ability"`
	Extra   []string `json:"extra,omitempty" jsonschema:"additional reference parts"`
}

// ActionFilterGetInput represents the MCP tool input for reading a filter.
type ActionFilterGetInput struct {
	ConsumerID string `json:"consumer_id" jsonschema:"consumer identifier"`
	CategoryID string `json:"category_id" jsonschema:"filterable category such as skills or feats"`
}

// ActionFilterUpdateInput represents the MCP tool input for replacing a filter.
type ActionFilterUpdateInput struct {
	ConsumerID string   `json:"consumer_id" jsonschema:"consumer identifier"`
	CategoryID string   `json:"category_id" jsonschema:"filterable category such as skills or feats"`
	Mode       string   `json:"mode,omitempty" jsonschema:"allow or block, defaults to allow"`
	Names      []string `json:"names,omitempty" jsonschema:"entry names to allow or block"`
}

// ActionFilterSuggestion is one candidate name for a filter.
type ActionFilterSuggestion struct {
	ID    string `json:"id" jsonschema:"entry identifier"`
	Value string `json:"value" jsonschema:"entry name"`
}

// ActionFilterResult represents the MCP tool output for a filter.
type ActionFilterResult struct {
	ConsumerID  string                   `json:"consumer_id" jsonschema:"consumer identifier"`
	CategoryID  string                   `json:"category_id" jsonschema:"category identifier"`
	Configured  bool                     `json:"configured" jsonschema:"whether a filter is stored for the category"`
	Mode        string                   `json:"mode,omitempty" jsonschema:"allow or block"`
	Names       []string                 `json:"names" jsonschema:"configured names"`
	UpdatedAt   string                   `json:"updated_at,omitempty" jsonschema:"RFC3339 timestamp of the last change"`
	Suggestions []ActionFilterSuggestion `json:"suggestions,omitempty" jsonschema:"names seen in the latest build"`
}

// ActionListBuildTool defines the MCP tool schema for building an action list.
func ActionListBuildTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "action_list_build",
		Description: "Builds the HUD action list for a selected token or for every controlled token",
	}
}

// ActionDecodeTool defines the MCP tool schema for decoding an action token.
func ActionDecodeTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "action_decode",
		Description: "Splits an encoded action value into kind, token id and reference id",
	}
}

// ActionFilterGetTool defines the MCP tool schema for reading a filter.
func ActionFilterGetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "action_filter_get",
		Description: "Returns a consumer's filter for one category with the latest suggestions",
	}
}

// ActionFilterUpdateTool defines the MCP tool schema for replacing a filter.
func ActionFilterUpdateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "action_filter_update",
		Description: "Replaces a consumer's allow or block list for one category",
	}
}

// ActionListBuildHandler executes an action list build.
func ActionListBuildHandler(client HudClient) mcp.ToolHandlerFor[ActionListBuildInput, ActionListBuildResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ActionListBuildInput) (*mcp.CallToolResult, ActionListBuildResult, error) {
		req := hudservice.BuildActionListRequest{
			System:     input.System,
			Version:    input.Version,
			ConsumerID: input.ConsumerID,
			Locale:     input.Locale,
			Multiple:   input.Multiple,
		}
		if input.Token != nil {
			req.Token = &host.Token{}
			if err := convert(input.Token, req.Token); err != nil {
				return nil, ActionListBuildResult{}, fmt.Errorf("token: %w", err)
			}
		}
		if input.Scene != nil {
			if err := convert(input.Scene, &req.Scene); err != nil {
				return nil, ActionListBuildResult{}, fmt.Errorf("scene: %w", err)
			}
		}
		if input.Settings != nil {
			req.Settings = &settings.Override{}
			if err := convert(input.Settings, req.Settings); err != nil {
				return nil, ActionListBuildResult{}, fmt.Errorf("settings: %w", err)
			}
		}

		var out hudservice.BuildActionListResponse
		meta, err := invoke(ctx, input.ConsumerID, func(callCtx context.Context, opts ...grpc.CallOption) error {
			var callErr error
			out, callErr = client.BuildActionList(callCtx, req, opts...)
			return callErr
		})
		if err != nil {
			return nil, ActionListBuildResult{}, describeError("action list build failed", err)
		}
		return CallToolResultWithMetadata(meta), ActionListBuildResult{
			ActionList: out.ActionList,
			Locale:     out.Locale,
			Sequence:   out.Sequence,
			Stale:      out.Stale,
			Violations: out.Violations,
		}, nil
	}
}

// ActionDecodeHandler executes an action token decode.
func ActionDecodeHandler(client HudClient) mcp.ToolHandlerFor[ActionDecodeInput, ActionDecodeResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ActionDecodeInput) (*mcp.CallToolResult, ActionDecodeResult, error) {
		var out hudservice.DecodeActionResponse
		meta, err := invoke(ctx, "", func(callCtx context.Context, opts ...grpc.CallOption) error {
			var callErr error
			out, callErr = client.DecodeAction(callCtx, hudservice.DecodeActionRequest{Value: input.Value, Locale: input.Locale}, opts...)
			return callErr
		})
		if err != nil {
			return nil, ActionDecodeResult{}, describeError("action decode failed", err)
		}
		return CallToolResultWithMetadata(meta), ActionDecodeResult{
			Kind:    out.Kind,
			TokenID: out.TokenID,
			RefID:   out.RefID,
			Extra:   out.Extra,
		}, nil
	}
}

// ActionFilterGetHandler reads one filter.
func ActionFilterGetHandler(client HudClient) mcp.ToolHandlerFor[ActionFilterGetInput, ActionFilterResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ActionFilterGetInput) (*mcp.CallToolResult, ActionFilterResult, error) {
		if strings.TrimSpace(input.ConsumerID) == "" {
			return nil, ActionFilterResult{}, fmt.Errorf("consumer_id is required")
		}
		var out hudservice.FilterResponse
		meta, err := invoke(ctx, input.ConsumerID, func(callCtx context.Context, opts ...grpc.CallOption) error {
			var callErr error
			out, callErr = client.GetFilter(callCtx, hudservice.FilterKeyRequest{ConsumerID: input.ConsumerID, CategoryID: input.CategoryID}, opts...)
			return callErr
		})
		if err != nil {
			return nil, ActionFilterResult{}, describeError("action filter get failed", err)
		}
		return CallToolResultWithMetadata(meta), filterResult(out.Filter), nil
	}
}

// ActionFilterUpdateHandler replaces one filter.
func ActionFilterUpdateHandler(client HudClient) mcp.ToolHandlerFor[ActionFilterUpdateInput, ActionFilterResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ActionFilterUpdateInput) (*mcp.CallToolResult, ActionFilterResult, error) {
		if strings.TrimSpace(input.ConsumerID) == "" {
			return nil, ActionFilterResult{}, fmt.Errorf("consumer_id is required")
		}
		var out hudservice.FilterResponse
		meta, err := invoke(ctx, input.ConsumerID, func(callCtx context.Context, opts ...grpc.CallOption) error {
			var callErr error
			out, callErr = client.UpdateFilter(callCtx, hudservice.UpdateFilterRequest{
				ConsumerID: input.ConsumerID,
				CategoryID: input.CategoryID,
				Mode:       input.Mode,
				Names:      input.Names,
			}, opts...)
			return callErr
		})
		if err != nil {
			return nil, ActionFilterResult{}, describeError("action filter update failed", err)
		}
		return CallToolResultWithMetadata(meta), filterResult(out.Filter), nil
	}
}

// invoke runs one HUD call with a request timeout and correlation metadata.
func invoke(ctx context.Context, consumerID string, call func(context.Context, ...grpc.CallOption) error) (ToolCallMetadata, error) {
	invocationID, err := NewInvocationID()
	if err != nil {
		return ToolCallMetadata{}, fmt.Errorf("generate invocation id: %w", err)
	}

	runCtx, cancel := context.WithTimeout(ctx, timeouts.GRPCRequest)
	defer cancel()

	callCtx, callMeta, err := NewOutgoingContext(runCtx, invocationID, strings.TrimSpace(consumerID))
	if err != nil {
		return ToolCallMetadata{}, fmt.Errorf("create request metadata: %w", err)
	}

	var header metadata.MD
	if err := call(callCtx, grpc.Header(&header)); err != nil {
		return ToolCallMetadata{}, err
	}
	return MergeResponseMetadata(callMeta, header), nil
}

// describeError prefers the localized message the HUD attached to err.
func describeError(prefix string, err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("%s: %w", prefix, err)
	}
	for _, detail := range st.Details() {
		if localized, ok := detail.(*errdetails.LocalizedMessage); ok && localized.GetMessage() != "" {
			return fmt.Errorf("%s: %s", prefix, localized.GetMessage())
		}
	}
	return fmt.Errorf("%s: %s", prefix, st.Message())
}

func filterResult(view hudservice.FilterView) ActionFilterResult {
	result := ActionFilterResult{
		ConsumerID: view.ConsumerID,
		CategoryID: view.CategoryID,
		Configured: view.Configured,
		Mode:       view.Mode,
		Names:      view.Names,
		UpdatedAt:  view.UpdatedAt,
	}
	if result.Names == nil {
		result.Names = []string{}
	}
	for _, suggestion := range view.Suggestions {
		result.Suggestions = append(result.Suggestions, ActionFilterSuggestion{ID: suggestion.ID, Value: suggestion.Value})
	}
	return result
}

func convert(in any, out any) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}
