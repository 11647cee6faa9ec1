package healthflowv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "healthflow.v1.HealthTrackService"

const (
	HealthTrackService_GetSeries_FullMethodName           = "/healthflow.v1.HealthTrackService/GetSeries"
	HealthTrackService_GetDashboard_FullMethodName        = "/healthflow.v1.HealthTrackService/GetDashboard"
	HealthTrackService_GetMarkerSummaries_FullMethodName  = "/healthflow.v1.HealthTrackService/GetMarkerSummaries"
	HealthTrackService_GetMarkerHistory_FullMethodName    = "/healthflow.v1.HealthTrackService/GetMarkerHistory"
	HealthTrackService_ImportSamples_FullMethodName       = "/healthflow.v1.HealthTrackService/ImportSamples"
	HealthTrackService_ImportBloodReadings_FullMethodName = "/healthflow.v1.HealthTrackService/ImportBloodReadings"
)

// HealthTrackServiceServer is the server API for HealthTrackService.
// Implementations must embed UnimplementedHealthTrackServiceServer.
type HealthTrackServiceServer interface {
	GetSeries(context.Context, *GetSeriesRequest) (*GetSeriesResponse, error)
	GetDashboard(context.Context, *GetDashboardRequest) (*GetDashboardResponse, error)
	GetMarkerSummaries(context.Context, *GetMarkerSummariesRequest) (*GetMarkerSummariesResponse, error)
	GetMarkerHistory(context.Context, *GetMarkerHistoryRequest) (*GetMarkerHistoryResponse, error)
	ImportSamples(context.Context, *ImportSamplesRequest) (*ImportResponse, error)
	ImportBloodReadings(context.Context, *ImportBloodReadingsRequest) (*ImportResponse, error)
	mustEmbedUnimplementedHealthTrackServiceServer()
}

// UnimplementedHealthTrackServiceServer answers every method with codes.Unimplemented.
type UnimplementedHealthTrackServiceServer struct{}

func (UnimplementedHealthTrackServiceServer) GetSeries(context.Context, *GetSeriesRequest) (*GetSeriesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetSeries not implemented")
}

func (UnimplementedHealthTrackServiceServer) GetDashboard(context.Context, *GetDashboardRequest) (*GetDashboardResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetDashboard not implemented")
}

func (UnimplementedHealthTrackServiceServer) GetMarkerSummaries(context.Context, *GetMarkerSummariesRequest) (*GetMarkerSummariesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetMarkerSummaries not implemented")
}

func (UnimplementedHealthTrackServiceServer) GetMarkerHistory(context.Context, *GetMarkerHistoryRequest) (*GetMarkerHistoryResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetMarkerHistory not implemented")
}

func (UnimplementedHealthTrackServiceServer) ImportSamples(context.Context, *ImportSamplesRequest) (*ImportResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ImportSamples not implemented")
}

func (UnimplementedHealthTrackServiceServer) ImportBloodReadings(context.Context, *ImportBloodReadingsRequest) (*ImportResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ImportBloodReadings not implemented")
}

func (UnimplementedHealthTrackServiceServer) mustEmbedUnimplementedHealthTrackServiceServer() {}

// RegisterHealthTrackServiceServer registers srv on s
func RegisterHealthTrackServiceServer(s grpc.ServiceRegistrar, srv HealthTrackServiceServer) {
	s.RegisterService(&HealthTrackService_ServiceDesc, srv)
}

// unaryHandler adapts a typed server method to grpc.MethodHandler
func unaryHandler[Req, Resp any](fullMethod string, call func(HealthTrackServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		server := srv.(HealthTrackServiceServer)
		if interceptor == nil {
			return call(server, ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(server, ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// HealthTrackService_ServiceDesc describes HealthTrackService for grpc.ServiceRegistrar
var HealthTrackService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*HealthTrackServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetSeries",
			Handler:    unaryHandler(HealthTrackService_GetSeries_FullMethodName, HealthTrackServiceServer.GetSeries),
		},
		{
			MethodName: "GetDashboard",
			Handler:    unaryHandler(HealthTrackService_GetDashboard_FullMethodName, HealthTrackServiceServer.GetDashboard),
		},
		{
			MethodName: "GetMarkerSummaries",
			Handler:    unaryHandler(HealthTrackService_GetMarkerSummaries_FullMethodName, HealthTrackServiceServer.GetMarkerSummaries),
		},
		{
			MethodName: "GetMarkerHistory",
			Handler:    unaryHandler(HealthTrackService_GetMarkerHistory_FullMethodName, HealthTrackServiceServer.GetMarkerHistory),
		},
		{
			MethodName: "ImportSamples",
			Handler:    unaryHandler(HealthTrackService_ImportSamples_FullMethodName, HealthTrackServiceServer.ImportSamples),
		},
		{
			MethodName: "ImportBloodReadings",
			Handler:    unaryHandler(HealthTrackService_ImportBloodReadings_FullMethodName, HealthTrackServiceServer.ImportBloodReadings),
		},
	},
	Streams: []grpc.StreamDesc{},
}

// HealthTrackServiceClient is the client API for HealthTrackService.
// Every call is sent with the JSON content subtype.
type HealthTrackServiceClient interface {
	GetSeries(ctx context.Context, in *GetSeriesRequest, opts ...grpc.CallOption) (*GetSeriesResponse, error)
	GetDashboard(ctx context.Context, in *GetDashboardRequest, opts ...grpc.CallOption) (*GetDashboardResponse, error)
	GetMarkerSummaries(ctx context.Context, in *GetMarkerSummariesRequest, opts ...grpc.CallOption) (*GetMarkerSummariesResponse, error)
	GetMarkerHistory(ctx context.Context, in *GetMarkerHistoryRequest, opts ...grpc.CallOption) (*GetMarkerHistoryResponse, error)
	ImportSamples(ctx context.Context, in *ImportSamplesRequest, opts ...grpc.CallOption) (*ImportResponse, error)
	ImportBloodReadings(ctx context.Context, in *ImportBloodReadingsRequest, opts ...grpc.CallOption) (*ImportResponse, error)
}

type healthTrackServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewHealthTrackServiceClient(cc grpc.ClientConnInterface) HealthTrackServiceClient {
	return &healthTrackServiceClient{cc}
}

func (c *healthTrackServiceClient) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, method, in, out, opts...)
}

func (c *healthTrackServiceClient) GetSeries(ctx context.Context, in *GetSeriesRequest, opts ...grpc.CallOption) (*GetSeriesResponse, error) {
	out := new(GetSeriesResponse)
	if err := c.invoke(ctx, HealthTrackService_GetSeries_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *healthTrackServiceClient) GetDashboard(ctx context.Context, in *GetDashboardRequest, opts ...grpc.CallOption) (*GetDashboardResponse, error) {
	out := new(GetDashboardResponse)
	if err := c.invoke(ctx, HealthTrackService_GetDashboard_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *healthTrackServiceClient) GetMarkerSummaries(ctx context.Context, in *GetMarkerSummariesRequest, opts ...grpc.CallOption) (*GetMarkerSummariesResponse, error) {
	out := new(GetMarkerSummariesResponse)
	if err := c.invoke(ctx, HealthTrackService_GetMarkerSummaries_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *healthTrackServiceClient) GetMarkerHistory(ctx context.Context, in *GetMarkerHistoryRequest, opts ...grpc.CallOption) (*GetMarkerHistoryResponse, error) {
	out := new(GetMarkerHistoryResponse)
	if err := c.invoke(ctx, HealthTrackService_GetMarkerHistory_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *healthTrackServiceClient) ImportSamples(ctx context.Context, in *ImportSamplesRequest, opts ...grpc.CallOption) (*ImportResponse, error) {
	out := new(ImportResponse)
	if err := c.invoke(ctx, HealthTrackService_ImportSamples_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *healthTrackServiceClient) ImportBloodReadings(ctx context.Context, in *ImportBloodReadingsRequest, opts ...grpc.CallOption) (*ImportResponse, error) {
	out := new(ImportResponse)
	if err := c.invoke(ctx, HealthTrackService_ImportBloodReadings_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}
