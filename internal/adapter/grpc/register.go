package grpc

import (
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	healthflowv1 "github.com/simaogato/healthflow-backend/internal/adapter/grpc/healthflow/v1"
)

// NewGRPCServer builds a gRPC server with logging and auth interceptors and
// registers the HealthTrackService, the standard health service and reflection.
// The returned health server reports the service as SERVING.
func NewGRPCServer(srv *Server, apiToken string, logger *zap.Logger, opts ...grpc.ServerOption) (*grpc.Server, *health.Server) {
	if logger == nil {
		logger = zap.NewNop()
	}

	serverOpts := append([]grpc.ServerOption{
		grpc.ChainUnaryInterceptor(
			LoggingInterceptor(logger),
			AuthInterceptor(apiToken, PublicMethodPrefixes...),
		),
	}, opts...)

	grpcServer := grpc.NewServer(serverOpts...)
	healthflowv1.RegisterHealthTrackServiceServer(grpcServer, srv)

	healthServer := health.NewServer()
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(healthflowv1.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	reflection.Register(grpcServer)

	return grpcServer, healthServer
}
