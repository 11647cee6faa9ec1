// Command healthctl imports health data into a healthflow server and queries it.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	grpcadapter "github.com/simaogato/healthflow-backend/internal/adapter/grpc"
)

var (
	serverAddr string
	apiToken   string
	userID     string
	timeout    time.Duration
)

var rootCmd = &cobra.Command{
	Use:           "healthctl",
	Short:         "Import and inspect health data on a healthflow server",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverAddr, "addr", envOr("HEALTHFLOW_ADDR", "localhost:8080"), "server address")
	rootCmd.PersistentFlags().StringVar(&apiToken, "token", envOr("API_TOKEN", "dev-token"), "API token")
	rootCmd.PersistentFlags().StringVar(&userID, "user", os.Getenv("HEALTHFLOW_USER"), "user id (uuid)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Minute, "overall request timeout")

	rootCmd.AddCommand(importCmd, seriesCmd, dashboardCmd, markersCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// dial connects to the configured server
func dial() (*grpcadapter.Client, error) {
	if userID == "" {
		return nil, fmt.Errorf("--user is required")
	}
	return grpcadapter.NewClient(serverAddr, apiToken)
}

// commandContext is cancelled on SIGINT/SIGTERM or after --timeout
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	ctx, cancel := context.WithTimeout(ctx, timeout)
	return ctx, func() {
		cancel()
		stop()
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
