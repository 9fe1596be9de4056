package hud

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "actionhud.v1.ActionHudService"

const (
	methodBuildActionList = "BuildActionList"
	methodDecodeAction    = "DecodeAction"
	methodUpdateFilter    = "UpdateFilter"
	methodClearFilter     = "ClearFilter"
	methodGetFilter       = "GetFilter"
	methodListFilters     = "ListFilters"
)

// ActionHudServer is the server API for the action HUD service. Every
// message is a google.protobuf.Struct carrying the JSON payloads declared
// in payload.go.
type ActionHudServer interface {
	BuildActionList(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DecodeAction(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateFilter(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ClearFilter(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetFilter(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListFilters(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(ActionHudServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(method string, call unaryCall) grpc.MethodHandler {
	fullMethod := "/" + ServiceName + "/" + method
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(ActionHudServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(ActionHudServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ServiceDesc describes the action HUD service for grpc.Server.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ActionHudServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: methodBuildActionList, Handler: unaryHandler(methodBuildActionList, ActionHudServer.BuildActionList)},
		{MethodName: methodDecodeAction, Handler: unaryHandler(methodDecodeAction, ActionHudServer.DecodeAction)},
		{MethodName: methodUpdateFilter, Handler: unaryHandler(methodUpdateFilter, ActionHudServer.UpdateFilter)},
		{MethodName: methodClearFilter, Handler: unaryHandler(methodClearFilter, ActionHudServer.ClearFilter)},
		{MethodName: methodGetFilter, Handler: unaryHandler(methodGetFilter, ActionHudServer.GetFilter)},
		{MethodName: methodListFilters, Handler: unaryHandler(methodListFilters, ActionHudServer.ListFilters)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "actionhud/v1/hud.proto",
}

// RegisterActionHudServer registers srv on s.
func RegisterActionHudServer(s grpc.ServiceRegistrar, srv ActionHudServer) {
	s.RegisterService(&ServiceDesc, srv)
}
