package middleware

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/M-Abdullah-Q/e2ee-backend/internal/logger"
)

// Logging logs gRPC calls and turns handler panics into Internal errors.
type Logging struct {
	logger *logger.Logger
}

// NewLogging creates a new Logging middleware.
func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// HandleGRPC logs method, duration and status of each unary call. Successful
// calls are logged at debug level since health probes arrive every few seconds.
func (l *Logging) HandleGRPC(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	code := status.Code(err)
	if err == nil {
		l.logger.Debug("gRPC request completed",
			"method", info.FullMethod,
			"duration_ms", time.Since(start).Milliseconds())
		return resp, nil
	}

	l.logger.Warn("gRPC request failed",
		"method", info.FullMethod,
		"duration_ms", time.Since(start).Milliseconds(),
		"status", code.String(),
		"error", err.Error())
	return resp, err
}

// Recover is a recovery.RecoveryHandlerFuncContext.
func (l *Logging) Recover(ctx context.Context, p any) error {
	l.logger.Error("gRPC handler panicked", "panic", fmt.Sprint(p))
	return status.Error(codes.Internal, "internal error")
}
