package router

import (
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/M-Abdullah-Q/e2ee-backend/internal/api/grpc/middleware"
	"github.com/M-Abdullah-Q/e2ee-backend/internal/logger"
)

// Router builds the gRPC server exposing the health service.
type Router struct {
	health healthpb.HealthServer
	logger *logger.Logger
}

// New creates a new gRPC Router instance.
func New(health healthpb.HealthServer, logger *logger.Logger) *Router {
	return &Router{health: health, logger: logger}
}

// Register returns a gRPC server with logging and panic recovery installed
// and the health service registered.
func (r *Router) Register() *grpc.Server {
	logging := middleware.NewLogging(r.logger)
	recoverFrom := recovery.WithRecoveryHandlerContext(logging.Recover)

	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			recovery.UnaryServerInterceptor(recoverFrom),
			logging.HandleGRPC,
		),
		grpc.ChainStreamInterceptor(
			recovery.StreamServerInterceptor(recoverFrom),
		),
	)
	healthpb.RegisterHealthServer(s, r.health)

	return s
}
