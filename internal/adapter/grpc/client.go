package grpc

import (
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	healthflowv1 "github.com/simaogato/healthflow-backend/internal/adapter/grpc/healthflow/v1"
)

// Client is a HealthTrackService client bound to one connection and token
type Client struct {
	healthflowv1.HealthTrackServiceClient

	conn *grpc.ClientConn
}

// NewClient connects to addr and authenticates every call with token.
// Extra dial options are appended after the defaults, so callers may override transport credentials.
func NewClient(addr, token string, opts ...grpc.DialOption) (*Client, error) {
	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(TokenCredentials(token)),
	}, opts...)

	conn, err := grpc.NewClient(addr, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create client for %s: %w", addr, err)
	}

	return &Client{
		HealthTrackServiceClient: healthflowv1.NewHealthTrackServiceClient(conn),
		conn:                     conn,
	}, nil
}

// Close closes the underlying connection
func (c *Client) Close() error {
	return c.conn.Close()
}
