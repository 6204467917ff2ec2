package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/Domenick1991/airops/api"
	"github.com/Domenick1991/airops/config"
	"github.com/Domenick1991/airops/internal/logger"
	"github.com/Domenick1991/airops/internal/service/notifications"
	"github.com/gin-gonic/gin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

const shutdownTimeout = 5 * time.Second

// NotificationsService is the name the gRPC health service reports the
// worker's event handling under.
const NotificationsService = "airops.notifications"

// Run serves gRPC health next to the event feed and blocks until ctx is
// canceled or either server fails.
func Run(ctx context.Context, cfg *config.Config, notifySvc notifications.NotificationUseCase) error {
	grpcLis, err := net.Listen("tcp", cfg.Worker.GRPCAddress)
	if err != nil {
		return fmt.Errorf("listen grpc %s: %w", cfg.Worker.GRPCAddress, err)
	}
	httpLis, err := net.Listen("tcp", cfg.Worker.HTTPAddress)
	if err != nil {
		grpcLis.Close()
		return fmt.Errorf("listen http %s: %w", cfg.Worker.HTTPAddress, err)
	}
	return serve(ctx, grpcLis, httpLis, NewRouter(notifySvc))
}

// NewRouter wires /healthz and /events.
func NewRouter(notifySvc notifications.NotificationUseCase) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	router.GET("/healthz", api.Health)
	api.NewEventHandler(notifySvc).Register(router.Group("/events"))
	return router
}

// NewGRPCServer registers grpc.health.v1 and reflection. Both the overall
// status and NotificationsService start as SERVING.
func NewGRPCServer() (*grpc.Server, *health.Server) {
	grpcSrv := grpc.NewServer()
	healthSrv := health.NewServer()
	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthSrv.SetServingStatus(NotificationsService, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcSrv, healthSrv)
	reflection.Register(grpcSrv)
	return grpcSrv, healthSrv
}

func serve(ctx context.Context, grpcLis, httpLis net.Listener, handler http.Handler) error {
	grpcSrv, healthSrv := NewGRPCServer()
	httpSrv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 2)
	go func() {
		logger.Info().Str("addr", grpcLis.Addr().String()).Msg("grpc server listening")
		if err := grpcSrv.Serve(grpcLis); err != nil {
			errCh <- fmt.Errorf("grpc server: %w", err)
		}
	}()
	go func() {
		logger.Info().Str("addr", httpLis.Addr().String()).Msg("http server listening")
		if err := httpSrv.Serve(httpLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case err := <-errCh:
		healthSrv.Shutdown()
		grpcSrv.Stop()
		_ = httpSrv.Close()
		return err
	case <-ctx.Done():
		logger.Info().Msg("shutting down servers")
		healthSrv.Shutdown()
		grpcSrv.GracefulStop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("http request")
	}
}
