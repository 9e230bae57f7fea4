// Code generated by protoc-gen-go-grpc. DO NOT EDIT.
// versions:
// - protoc-gen-go-grpc v1.5.1
// - protoc             (unknown)
// source: signalfeed.proto

package feedpb

import (
	context "context"
	grpc "google.golang.org/grpc"
	codes "google.golang.org/grpc/codes"
	status "google.golang.org/grpc/status"
)

// This is a compile-time assertion to ensure that this generated file
// is compatible with the grpc package it is being compiled against.
// Requires gRPC-Go v1.64.0 or later.
const _ = grpc.SupportPackageIsVersion9

const (
	SignalFeed_GetCycleInput_FullMethodName   = "/signalfeed.SignalFeed/GetCycleInput"
	SignalFeed_ListInstruments_FullMethodName = "/signalfeed.SignalFeed/ListInstruments"
)

// SignalFeedClient is the client API for SignalFeed service.
//
// For semantics around ctx use and closing/ending streaming RPCs, please refer to https://pkg.go.dev/google.golang.org/grpc/?tab=doc#ClientConn.NewStream.
//
// SignalFeed serves per-instrument signal snapshots and pending decisions
// from the upstream fusion engine.
type SignalFeedClient interface {
	GetCycleInput(ctx context.Context, in *CycleInputRequest, opts ...grpc.CallOption) (*CycleInputResponse, error)
	ListInstruments(ctx context.Context, in *ListInstrumentsRequest, opts ...grpc.CallOption) (*ListInstrumentsResponse, error)
}

type signalFeedClient struct {
	cc grpc.ClientConnInterface
}

func NewSignalFeedClient(cc grpc.ClientConnInterface) SignalFeedClient {
	return &signalFeedClient{cc}
}

func (c *signalFeedClient) GetCycleInput(ctx context.Context, in *CycleInputRequest, opts ...grpc.CallOption) (*CycleInputResponse, error) {
	cOpts := append([]grpc.CallOption{grpc.StaticMethod()}, opts...)
	out := new(CycleInputResponse)
	err := c.cc.Invoke(ctx, SignalFeed_GetCycleInput_FullMethodName, in, out, cOpts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *signalFeedClient) ListInstruments(ctx context.Context, in *ListInstrumentsRequest, opts ...grpc.CallOption) (*ListInstrumentsResponse, error) {
	cOpts := append([]grpc.CallOption{grpc.StaticMethod()}, opts...)
	out := new(ListInstrumentsResponse)
	err := c.cc.Invoke(ctx, SignalFeed_ListInstruments_FullMethodName, in, out, cOpts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SignalFeedServer is the server API for SignalFeed service.
// All implementations must embed UnimplementedSignalFeedServer
// for forward compatibility.
//
// SignalFeed serves per-instrument signal snapshots and pending decisions
// from the upstream fusion engine.
type SignalFeedServer interface {
	GetCycleInput(context.Context, *CycleInputRequest) (*CycleInputResponse, error)
	ListInstruments(context.Context, *ListInstrumentsRequest) (*ListInstrumentsResponse, error)
	mustEmbedUnimplementedSignalFeedServer()
}

// UnimplementedSignalFeedServer must be embedded to have
// forward compatible implementations.
//
// NOTE: this should be embedded by value instead of pointer to avoid a nil
// pointer dereference when methods are called.
type UnimplementedSignalFeedServer struct{}

func (UnimplementedSignalFeedServer) GetCycleInput(context.Context, *CycleInputRequest) (*CycleInputResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetCycleInput not implemented")
}
func (UnimplementedSignalFeedServer) ListInstruments(context.Context, *ListInstrumentsRequest) (*ListInstrumentsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListInstruments not implemented")
}
func (UnimplementedSignalFeedServer) mustEmbedUnimplementedSignalFeedServer() {}
func (UnimplementedSignalFeedServer) testEmbeddedByValue()                    {}

// UnsafeSignalFeedServer may be embedded to opt out of forward compatibility for this service.
// Use of this interface is not recommended, as added methods to SignalFeedServer will
// result in compilation errors.
type UnsafeSignalFeedServer interface {
	mustEmbedUnimplementedSignalFeedServer()
}

func RegisterSignalFeedServer(s grpc.ServiceRegistrar, srv SignalFeedServer) {
	// If the following call pancis, it indicates UnimplementedSignalFeedServer was
	// embedded by pointer and is nil.  This will cause panics if an
	// unimplemented method is ever invoked, so we test this at initialization
	// time to prevent it from happening at runtime later due to I/O.
	if t, ok := srv.(interface{ testEmbeddedByValue() }); ok {
		t.testEmbeddedByValue()
	}
	s.RegisterService(&SignalFeed_ServiceDesc, srv)
}

func _SignalFeed_GetCycleInput_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(CycleInputRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SignalFeedServer).GetCycleInput(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: SignalFeed_GetCycleInput_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SignalFeedServer).GetCycleInput(ctx, req.(*CycleInputRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _SignalFeed_ListInstruments_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ListInstrumentsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SignalFeedServer).ListInstruments(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: SignalFeed_ListInstruments_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SignalFeedServer).ListInstruments(ctx, req.(*ListInstrumentsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// SignalFeed_ServiceDesc is the grpc.ServiceDesc for SignalFeed service.
// It's only intended for direct use with grpc.RegisterService,
// and not to be introspected or modified (even as a copy)
var SignalFeed_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "signalfeed.SignalFeed",
	HandlerType: (*SignalFeedServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetCycleInput",
			Handler:    _SignalFeed_GetCycleInput_Handler,
		},
		{
			MethodName: "ListInstruments",
			Handler:    _SignalFeed_ListInstruments_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "signalfeed.proto",
}
