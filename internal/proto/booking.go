// Package proto declares the airbooking.v1.BookingService gRPC contract.
// Requests and responses are google.protobuf.Struct messages, so no
// generated code is needed; field names are listed next to each method.
package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "airbooking.v1.BookingService"

// Full method names, as seen by interceptors.
const (
	// Register{email,password,first_name,last_name,phone_number,dob_year,dob_month,dob_day}
	// -> {message,credential_id,profile_id}
	MethodRegister = "/" + ServiceName + "/Register"
	// Login{email,password} -> {access_token,credential_id,profile_id}
	MethodLogin = "/" + ServiceName + "/Login"
	// SearchFlights{from,to} -> {flights:[{flight_number,departure,destination}]}
	MethodSearchFlights = "/" + ServiceName + "/SearchFlights"
	// BookTicket{ticket_number,flight_number,date_time,price,seat} -> {ticket}
	MethodBookTicket = "/" + ServiceName + "/BookTicket"
	// ListTickets{} -> {tickets:[...]}
	MethodListTickets = "/" + ServiceName + "/ListTickets"
	// CancelTicket{ticket_number} -> {message}
	MethodCancelTicket = "/" + ServiceName + "/CancelTicket"
	// UpdateProfile{first_name,last_name,phone_number,date_of_birth} -> {profile}
	MethodUpdateProfile = "/" + ServiceName + "/UpdateProfile"
	// AddFlight{flight_number,departure,destination} -> {flight}
	MethodAddFlight = "/" + ServiceName + "/AddFlight"
)

// BookingServiceServer is the server API for BookingService.
type BookingServiceServer interface {
	Register(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Login(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SearchFlights(context.Context, *structpb.Struct) (*structpb.Struct, error)
	BookTicket(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListTickets(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CancelTicket(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateProfile(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AddFlight(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type call func(BookingServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, fn call) grpc.MethodHandler {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return fn(srv.(BookingServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return fn(srv.(BookingServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// BookingService_ServiceDesc is the grpc.ServiceDesc for BookingService.
var BookingService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*BookingServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Register", Handler: unaryHandler(MethodRegister, BookingServiceServer.Register)},
		{MethodName: "Login", Handler: unaryHandler(MethodLogin, BookingServiceServer.Login)},
		{MethodName: "SearchFlights", Handler: unaryHandler(MethodSearchFlights, BookingServiceServer.SearchFlights)},
		{MethodName: "BookTicket", Handler: unaryHandler(MethodBookTicket, BookingServiceServer.BookTicket)},
		{MethodName: "ListTickets", Handler: unaryHandler(MethodListTickets, BookingServiceServer.ListTickets)},
		{MethodName: "CancelTicket", Handler: unaryHandler(MethodCancelTicket, BookingServiceServer.CancelTicket)},
		{MethodName: "UpdateProfile", Handler: unaryHandler(MethodUpdateProfile, BookingServiceServer.UpdateProfile)},
		{MethodName: "AddFlight", Handler: unaryHandler(MethodAddFlight, BookingServiceServer.AddFlight)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "airbooking/v1/booking.proto",
}

func RegisterBookingServiceServer(s grpc.ServiceRegistrar, srv BookingServiceServer) {
	s.RegisterService(&BookingService_ServiceDesc, srv)
}

// BookingServiceClient is the client API for BookingService.
type BookingServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewBookingServiceClient(cc grpc.ClientConnInterface) *BookingServiceClient {
	return &BookingServiceClient{cc: cc}
}

// Call invokes a unary method by its full name.
func (c *BookingServiceClient) Call(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
