// Package pb describes the TetrisService gRPC API. Messages are protobuf
// well-known types, so the service needs no generated message code.
package pb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	TetrisService_NewGame_FullMethodName = "/nestris.TetrisService/NewGame"
	TetrisService_Command_FullMethodName = "/nestris.TetrisService/Command"
	TetrisService_State_FullMethodName   = "/nestris.TetrisService/State"
	TetrisService_EndGame_FullMethodName = "/nestris.TetrisService/EndGame"
	TetrisService_Watch_FullMethodName   = "/nestris.TetrisService/Watch"
)

// TetrisServiceClient is the client API for TetrisService.
type TetrisServiceClient interface {
	// NewGame starts a game on the server and returns its id.
	NewGame(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	// Command applies an action, see CommandRequest, and returns the state that follows.
	Command(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	State(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error)
	EndGame(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*emptypb.Empty, error)
	// Watch streams the state of a game, first as it is and then on every change.
	Watch(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (grpc.ServerStreamingClient[structpb.Struct], error)
}

type tetrisServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewTetrisServiceClient(cc grpc.ClientConnInterface) TetrisServiceClient {
	return &tetrisServiceClient{cc}
}

func (c *tetrisServiceClient) NewGame(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, TetrisService_NewGame_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *tetrisServiceClient) Command(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, TetrisService_Command_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *tetrisServiceClient) State(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, TetrisService_State_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *tetrisServiceClient) EndGame(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, TetrisService_EndGame_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *tetrisServiceClient) Watch(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (grpc.ServerStreamingClient[structpb.Struct], error) {
	stream, err := c.cc.NewStream(ctx, &TetrisService_ServiceDesc.Streams[0], TetrisService_Watch_FullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[wrapperspb.StringValue, structpb.Struct]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

// TetrisServiceServer is the server API for TetrisService.
type TetrisServiceServer interface {
	NewGame(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error)
	Command(context.Context, *structpb.Struct) (*structpb.Struct, error)
	State(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	EndGame(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error)
	Watch(*wrapperspb.StringValue, grpc.ServerStreamingServer[structpb.Struct]) error
}

// UnimplementedTetrisServiceServer can be embedded to have forward compatible implementations.
type UnimplementedTetrisServiceServer struct{}

func (UnimplementedTetrisServiceServer) NewGame(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error) {
	return nil, status.Errorf(codes.Unimplemented, "method NewGame not implemented")
}
func (UnimplementedTetrisServiceServer) Command(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Command not implemented")
}
func (UnimplementedTetrisServiceServer) State(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method State not implemented")
}
func (UnimplementedTetrisServiceServer) EndGame(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error) {
	return nil, status.Errorf(codes.Unimplemented, "method EndGame not implemented")
}
func (UnimplementedTetrisServiceServer) Watch(*wrapperspb.StringValue, grpc.ServerStreamingServer[structpb.Struct]) error {
	return status.Errorf(codes.Unimplemented, "method Watch not implemented")
}

func RegisterTetrisServiceServer(s grpc.ServiceRegistrar, srv TetrisServiceServer) {
	s.RegisterService(&TetrisService_ServiceDesc, srv)
}

func _TetrisService_NewGame_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TetrisServiceServer).NewGame(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: TetrisService_NewGame_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TetrisServiceServer).NewGame(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _TetrisService_Command_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TetrisServiceServer).Command(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: TetrisService_Command_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TetrisServiceServer).Command(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func _TetrisService_State_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TetrisServiceServer).State(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: TetrisService_State_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TetrisServiceServer).State(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _TetrisService_EndGame_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TetrisServiceServer).EndGame(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: TetrisService_EndGame_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TetrisServiceServer).EndGame(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _TetrisService_Watch_Handler(srv any, stream grpc.ServerStream) error {
	m := new(wrapperspb.StringValue)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(TetrisServiceServer).Watch(m, &grpc.GenericServerStream[wrapperspb.StringValue, structpb.Struct]{ServerStream: stream})
}

// TetrisService_ServiceDesc is the grpc.ServiceDesc for TetrisService.
var TetrisService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "nestris.TetrisService",
	HandlerType: (*TetrisServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "NewGame",
			Handler:    _TetrisService_NewGame_Handler,
		},
		{
			MethodName: "Command",
			Handler:    _TetrisService_Command_Handler,
		},
		{
			MethodName: "State",
			Handler:    _TetrisService_State_Handler,
		},
		{
			MethodName: "EndGame",
			Handler:    _TetrisService_EndGame_Handler,
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "Watch",
			Handler:       _TetrisService_Watch_Handler,
			ServerStreams: true,
		},
	},
}
