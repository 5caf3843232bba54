package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	// ServiceName is the fully qualified gRPC service name
	ServiceName = "fuelroute.v1.RoutingService"
	// PlanRouteMethod is the full method path of the unary PlanRoute call
	PlanRouteMethod = "/" + ServiceName + "/PlanRoute"
)

// RoutingServiceServer is the server API for the routing service.
// Messages are google.protobuf.Struct documents; see type_converters.go for their layout.
type RoutingServiceServer interface {
	PlanRoute(ctx context.Context, request *structpb.Struct) (*structpb.Struct, error)
}

// RoutingServiceDesc describes the routing service for grpc.Server.RegisterService
var RoutingServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*RoutingServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "PlanRoute",
			Handler:    planRouteHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "google/protobuf/struct.proto",
}

// RegisterRoutingServiceServer registers srv with s
func RegisterRoutingServiceServer(s grpc.ServiceRegistrar, srv RoutingServiceServer) {
	s.RegisterService(&RoutingServiceDesc, srv)
}

func planRouteHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RoutingServiceServer).PlanRoute(ctx, in)
	}

	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: PlanRouteMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RoutingServiceServer).PlanRoute(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}
