package main

import (
	"context"
	"errors"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/health"

	grpcadapter "github.com/simaogato/healthflow-backend/internal/adapter/grpc"
	"github.com/simaogato/healthflow-backend/internal/adapter/kafka"
	"github.com/simaogato/healthflow-backend/internal/adapter/repository/postgres"
	"github.com/simaogato/healthflow-backend/internal/config"
	"github.com/simaogato/healthflow-backend/internal/logging"
	"github.com/simaogato/healthflow-backend/internal/usecase/charts"
	"github.com/simaogato/healthflow-backend/internal/usecase/ingest"
	"github.com/simaogato/healthflow-backend/internal/usecase/markers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	// 1. Setup Database
	// Give Postgres a moment when started alongside it (simple retry)
	time.Sleep(cfg.DB.StartupDelay)

	db, err := postgres.NewDB(ctx, cfg.DB.ConnectionString(), cfg.DB.MaxOpenConns)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := postgres.EnsureSchema(ctx, db); err != nil {
		return err
	}
	logger.Info("database schema ready")

	// 2. Initialize Repositories (Postgres)
	sampleRepo := postgres.NewSampleRepository(db)
	readingRepo := postgres.NewBloodReadingRepository(db)

	// 3. Initialize Services (Use Cases)
	catalog, err := markers.DefaultCatalog()
	if err != nil {
		return err
	}

	chartService := charts.NewChartService(sampleRepo, loc)
	markerService := markers.NewMarkerService(readingRepo, catalog)
	ingestService := ingest.NewIngestService(sampleRepo, readingRepo, catalog)

	// 4. Start the device sample consumer when Kafka is configured
	if cfg.KafkaEnabled() {
		consumer, err := kafka.NewSampleConsumer(kafka.ConsumerConfig{
			Brokers:      cfg.Kafka.Brokers,
			Topic:        cfg.Kafka.Topic,
			GroupID:      cfg.Kafka.GroupID,
			PollTimeout:  cfg.Kafka.PollTimeout,
			RetryBackoff: cfg.Kafka.RetryBackoff,
		}, ingestService, logger.Named("kafka"))
		if err != nil {
			return err
		}
		defer consumer.Close()

		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("sample consumer stopped", zap.Error(err))
			}
		}()
	}

	// 5. Start gRPC Server
	grpcAdapter := grpcadapter.NewServer(chartService, markerService, ingestService)
	grpcServer, healthServer := grpcadapter.NewGRPCServer(grpcAdapter, cfg.APIToken, logger.Named("grpc"))

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return err
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("gRPC server listening", zap.String("addr", cfg.GRPCAddr))
		serveErr <- grpcServer.Serve(lis)
	}()

	// Graceful shutdown
	select {
	case err := <-serveErr:
		return err
	case sig := <-shutdownSignal():
		logger.Info("received signal, shutting down gracefully", zap.String("signal", sig.String()))
	}

	cancel()
	stopServer(grpcServer, healthServer, logger)
	return nil
}

// shutdownSignal delivers SIGTERM or SIGINT
func shutdownSignal() <-chan os.Signal {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	return sigChan
}

// stopServer marks the service as not serving and gracefully stops the server
func stopServer(grpcServer *grpclib.Server, healthServer *health.Server, logger *zap.Logger) {
	healthServer.Shutdown()
	grpcServer.GracefulStop()
	logger.Info("gRPC server stopped")
}
