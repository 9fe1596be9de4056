package hud

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Client calls the action HUD service with typed payloads.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient returns a client on cc.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func call[Req any, Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, req Req, opts ...grpc.CallOption) (Resp, error) {
	var resp Resp
	in, err := Encode(req)
	if err != nil {
		return resp, err
	}
	out := new(structpb.Struct)
	if err := cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...); err != nil {
		return resp, err
	}
	if err := Decode(out, &resp); err != nil {
		return resp, err
	}
	return resp, nil
}

// BuildActionList calls ActionHudService.BuildActionList.
func (c *Client) BuildActionList(ctx context.Context, req BuildActionListRequest, opts ...grpc.CallOption) (BuildActionListResponse, error) {
	return call[BuildActionListRequest, BuildActionListResponse](ctx, c.cc, methodBuildActionList, req, opts...)
}

// DecodeAction calls ActionHudService.DecodeAction.
func (c *Client) DecodeAction(ctx context.Context, req DecodeActionRequest, opts ...grpc.CallOption) (DecodeActionResponse, error) {
	return call[DecodeActionRequest, DecodeActionResponse](ctx, c.cc, methodDecodeAction, req, opts...)
}

// UpdateFilter calls ActionHudService.UpdateFilter.
func (c *Client) UpdateFilter(ctx context.Context, req UpdateFilterRequest, opts ...grpc.CallOption) (FilterResponse, error) {
	return call[UpdateFilterRequest, FilterResponse](ctx, c.cc, methodUpdateFilter, req, opts...)
}

// ClearFilter calls ActionHudService.ClearFilter.
func (c *Client) ClearFilter(ctx context.Context, req FilterKeyRequest, opts ...grpc.CallOption) (ClearFilterResponse, error) {
	return call[FilterKeyRequest, ClearFilterResponse](ctx, c.cc, methodClearFilter, req, opts...)
}

// GetFilter calls ActionHudService.GetFilter.
func (c *Client) GetFilter(ctx context.Context, req FilterKeyRequest, opts ...grpc.CallOption) (FilterResponse, error) {
	return call[FilterKeyRequest, FilterResponse](ctx, c.cc, methodGetFilter, req, opts...)
}

// ListFilters calls ActionHudService.ListFilters.
func (c *Client) ListFilters(ctx context.Context, req ListFiltersRequest, opts ...grpc.CallOption) (ListFiltersResponse, error) {
	return call[ListFiltersRequest, ListFiltersResponse](ctx, c.cc, methodListFilters, req, opts...)
}
