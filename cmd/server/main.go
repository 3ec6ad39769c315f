package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"google.golang.org/grpc/health"

	grpchealth "github.com/M-Abdullah-Q/e2ee-backend/internal/api/grpc/health"
	grpcrouter "github.com/M-Abdullah-Q/e2ee-backend/internal/api/grpc/router"
	grpcserver "github.com/M-Abdullah-Q/e2ee-backend/internal/api/grpc/server"
	httpcontext "github.com/M-Abdullah-Q/e2ee-backend/internal/api/http/context"
	httprouter "github.com/M-Abdullah-Q/e2ee-backend/internal/api/http/router"
	httpserver "github.com/M-Abdullah-Q/e2ee-backend/internal/api/http/server"
	"github.com/M-Abdullah-Q/e2ee-backend/internal/api/ws"
	"github.com/M-Abdullah-Q/e2ee-backend/internal/cache/redis"
	"github.com/M-Abdullah-Q/e2ee-backend/internal/config"
	"github.com/M-Abdullah-Q/e2ee-backend/internal/logger"
	"github.com/M-Abdullah-Q/e2ee-backend/internal/model"
	"github.com/M-Abdullah-Q/e2ee-backend/internal/realtime"
	"github.com/M-Abdullah-Q/e2ee-backend/internal/repository/postgres"
	"github.com/M-Abdullah-Q/e2ee-backend/internal/server"
	"github.com/M-Abdullah-Q/e2ee-backend/internal/service"
	"github.com/M-Abdullah-Q/e2ee-backend/internal/storage/minio"
	"github.com/M-Abdullah-Q/e2ee-backend/internal/token"
)

const shutdownTimeout = 10 * time.Second

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)
	logAppVersion()

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize database", "error", err)
	}
	defer db.Close()

	pingers := map[string]model.Pinger{"postgres": db}

	var keyCache model.KeyCache
	if cfg.Redis.Address != "" {
		cache, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			logger.Fatal("failed to initialize key cache", "error", err)
		}
		defer cache.Close()
		keyCache = cache
		pingers["redis"] = cache
	} else {
		logger.Info("REDIS_ADDRESS not set, public key cache disabled")
	}

	var blobs model.Storage
	if cfg.Storage.Endpoint != "" {
		client, err := minio.New(ctx, cfg.Storage)
		if err != nil {
			logger.Fatal("failed to initialize attachment storage", "error", err)
		}
		blobs = client
	} else {
		logger.Info("MINIO_ENDPOINT not set, attachments disabled")
	}

	userRepo := postgres.NewUserRepository(db)
	conversationRepo := postgres.NewConversationRepository(db)
	messageRepo := postgres.NewMessageRepository(db)
	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.TTL)

	userService := service.NewUser(userRepo, tokenManager, keyCache, logger)
	keysService := service.NewKeys(userRepo, keyCache, logger)
	conversationService := service.NewConversation(conversationRepo, userRepo, logger)
	messageService := service.NewMessage(messageRepo, logger)
	attachmentService := service.NewAttachment(blobs, logger)

	persister := realtime.NewPersister(messageService, cfg.Realtime.PersistQueueSize, cfg.Realtime.PersistWorkers,
		logger.With("component", "persister"))
	persister.Start(ctx)

	realtimeLogger := logger.With("component", "realtime")
	presence := realtime.NewPresence()
	membership := realtime.NewMembership()
	relay := realtime.NewRelay(presence, persister, realtimeLogger)
	hub := realtime.NewHub(presence, membership, relay, tokenManager, realtimeLogger,
		realtime.WithStrictIdentity(cfg.Realtime.StrictIdentity))

	httpRouter := httprouter.New(
		httprouter.Services{
			Users:         userService,
			Keys:          keysService,
			Conversations: conversationService,
			Messages:      messageService,
			Attachments:   attachmentService,
		},
		ws.NewHandler(hub, cfg.Realtime.ReadLimit, cfg.Realtime.WriteTimeout, realtimeLogger),
		presence,
		membership,
		tokenManager,
		httpcontext.NewManager(),
		httprouter.RateLimit{RPS: cfg.HTTP.AuthRateLimit, Burst: cfg.HTTP.AuthRateBurst},
		logger,
	)
	httpServer := httpserver.NewHTTPServer(httpRouter.Register(), cfg.HTTP.Address)

	healthServer := health.NewServer()
	checker := grpchealth.NewChecker(healthServer, pingers, cfg.GRPC.CheckInterval, logger)
	grpcServer := grpcserver.NewGRPCServer(
		grpcrouter.New(healthServer, logger).Register(),
		fmt.Sprintf(":%s", cfg.GRPC.Port),
	)

	checkCtx, stopChecks := context.WithCancel(ctx)
	defer stopChecks()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		checker.Run(checkCtx)
	}()

	start := func(s model.Server, sl model.SecurityLayer) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.Info("Starting server", "address", s.Address())
			if err := s.Start(sl); err != nil {
				logger.Error("failed to start server", "error", err, "address", s.Address())
				stop()
			}
		}()
	}
	start(httpServer, server.NewSecurityLayer(cfg.HTTP))
	start(grpcServer, server.NewPlainListener())

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	stopChecks()
	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
	}
	hub.Shutdown()
	if err := grpcServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", grpcServer.Address())
	}
	if err := persister.Close(shutdownCtx); err != nil {
		logger.Error("failed to drain message queue", "error", err, "pending", persister.Pending())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
