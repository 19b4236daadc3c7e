package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/KirkDiggler/rpg-character-api/internal/config"
	"github.com/KirkDiggler/rpg-character-api/internal/engine"
	characterv1 "github.com/KirkDiggler/rpg-character-api/internal/handlers/character/v1"
	"github.com/KirkDiggler/rpg-character-api/internal/orchestrators/character"
	"github.com/KirkDiggler/rpg-character-api/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-character-api/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-character-api/internal/platform/otel"
	"github.com/KirkDiggler/rpg-character-api/internal/redis"
	catalogrepo "github.com/KirkDiggler/rpg-character-api/internal/repositories/catalog"
	characterrepo "github.com/KirkDiggler/rpg-character-api/internal/repositories/character"
	statsrepo "github.com/KirkDiggler/rpg-character-api/internal/repositories/stats"
)

var (
	grpcPort    int
	catalogPath string
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the gRPC server",
	Long:  `Start the character gRPC server backed by Redis and a YAML rule catalog.`,
	RunE:  runServer,
}

func init() {
	serverCmd.Flags().IntVar(&grpcPort, "port", 0, "gRPC server port (overrides GRPC_PORT)")
	serverCmd.Flags().StringVar(&catalogPath, "catalog", "", "rule catalog file (overrides CATALOG_PATH)")
}

func runServer(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if grpcPort != 0 {
		cfg.GRPCPort = grpcPort
	}
	if catalogPath != "" {
		cfg.CatalogPath = catalogPath
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := cfg.Logger()
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Received shutdown signal, gracefully stopping...")
		cancel()
	}()

	shutdownTracing, err := otel.Setup(ctx, "rpg-character-api", cfg.OTelEndpoint)
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}
	defer func() {
		flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer flushCancel()
		if err := shutdownTracing(flushCtx); err != nil {
			slog.Error("Failed to flush traces", "error", err.Error())
		}
	}()

	redisClient, err := newRedisClient(cfg)
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Error("Failed to close redis client", "error", err.Error())
		}
	}()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to reach redis at %s: %w", cfg.RedisAddr, err)
	}

	orchestrator, err := newOrchestrator(cfg, redisClient)
	if err != nil {
		return err
	}

	characterHandler, err := characterv1.NewHandler(&characterv1.HandlerConfig{
		CharacterService: orchestrator,
	})
	if err != nil {
		return fmt.Errorf("failed to create character handler: %w", err)
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	srv := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.UnaryServerInterceptor(),
		),
	)

	characterv1.RegisterCharacterServiceServer(srv, characterHandler)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)

	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(characterv1.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	errChan := make(chan error, 1)
	go func() {
		slog.Info("gRPC server starting", "port", cfg.GRPCPort, "catalog", cfg.CatalogPath)
		if err := srv.Serve(lis); err != nil {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutting down gRPC server...")
		healthServer.Shutdown()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()

		select {
		case <-shutdownCtx.Done():
			slog.Warn("Graceful shutdown timeout exceeded, forcing stop")
			srv.Stop()
		case <-stopped:
			slog.Info("Server stopped gracefully")
		}

		return nil
	case err := <-errChan:
		return err
	}
}

// newRedisClient treats a comma separated REDIS_ADDR as a cluster seed list
func newRedisClient(cfg *config.Config) (redis.Client, error) {
	opts := &redis.Options{PoolSize: cfg.RedisPoolSize}
	if strings.Contains(cfg.RedisAddr, ",") {
		return redis.NewClusterClient(strings.Split(cfg.RedisAddr, ","), opts)
	}
	return redis.NewClient(cfg.RedisAddr, opts)
}

func newOrchestrator(cfg *config.Config, redisClient redis.Client) (*character.Orchestrator, error) {
	doc, err := catalogrepo.LoadFile(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}
	catalogRepo, err := catalogrepo.NewMemory(&catalogrepo.MemoryConfig{Catalog: doc})
	if err != nil {
		return nil, fmt.Errorf("failed to index catalog: %w", err)
	}

	clk := clock.New()

	characterRepo, err := characterrepo.NewRedis(&characterrepo.RedisConfig{
		Client: redisClient,
		Clock:  clk,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create character repository: %w", err)
	}

	statsCache, err := statsrepo.NewRedis(&statsrepo.RedisConfig{
		Client: redisClient,
		TTL:    cfg.StatsCacheTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create stats cache: %w", err)
	}

	rules, err := engine.New(&engine.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create rules engine: %w", err)
	}

	orchestrator, err := character.New(&character.Config{
		CharacterRepo: characterRepo,
		CatalogRepo:   catalogRepo,
		StatsCache:    statsCache,
		Engine:        rules,
		IDGenerator:   idgen.NewUUID(""),
		Clock:         clk,
		MaxGoldAmount: cfg.MaxGoldAmount,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create character orchestrator: %w", err)
	}
	return orchestrator, nil
}

// logFunc bridges the gRPC middleware levels onto slog, which share values
func logFunc(ctx context.Context, level grpc_logging.Level, msg string, fields ...any) {
	slog.Log(ctx, slog.Level(level), msg, fields...)
}
