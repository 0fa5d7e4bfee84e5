package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rentify-backend-go/internal/api"
	"rentify-backend-go/internal/config"
	"rentify-backend-go/internal/core"
	"rentify-backend-go/internal/kv"
	"rentify-backend-go/internal/middleware"
	"rentify-backend-go/internal/storage"
)

func main() {
	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		zapLogger.Fatal("failed to load configuration", zap.Error(err))
	}

	initCtx, cancelInit := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelInit()
	if err := kv.InitFirebase(initCtx, cfg); err != nil {
		zapLogger.Fatal("failed to initialize Firebase Admin SDK", zap.Error(err))
	}
	authClient := kv.GetAuthClient()
	if authClient == nil {
		zapLogger.Fatal("auth client is nil after initialization")
	}

	// The store backing the index layer. Firestore is the default;
	// Redis is available for deployments that already run one.
	var store kv.Store
	switch cfg.KVBackend {
	case "redis":
		redisStore, err := kv.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			zapLogger.Fatal("failed to connect to Redis", zap.Error(err))
		}
		defer redisStore.Close()
		store = redisStore
	default:
		fsClient := kv.GetFirestoreClient()
		if fsClient == nil {
			zapLogger.Fatal("Firestore client is nil after initialization")
		}
		store = kv.NewFirestoreStore(fsClient)
	}
	zapLogger.Info("key-value store ready", zap.String("backend", cfg.KVBackend))

	bucket, err := kv.GetStorageClient().Bucket(cfg.StorageBucket)
	if err != nil {
		zapLogger.Fatal("failed to resolve storage bucket", zap.Error(err))
	}
	uploader := storage.NewUploader(bucket, cfg.StorageBucket, zapLogger)
	if err := uploader.EnsureBucket(initCtx, cfg.FirebaseProjectID); err != nil {
		zapLogger.Fatal("failed to ensure storage bucket", zap.Error(err))
	}

	// One lock table for every service. Item updates and rentals must
	// contend on the same per-item lock or availability flips race.
	locks := core.NewKeyLock(time.Duration(cfg.LockWaitSeconds) * time.Second)

	userService := core.NewUserService(store)
	itemService := core.NewItemService(store, locks, zapLogger)
	rentalService := core.NewRentalService(store, locks, zapLogger)
	messageService := core.NewMessageService(store, locks, zapLogger)
	zapLogger.Info("core services initialized")

	if strings.ToLower(cfg.GinMode) == "release" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()
	router.Use(middleware.RequestLogger(zapLogger))
	router.Use(middleware.Recovery(zapLogger))
	if cfg.ClientURL != "" {
		router.Use(middleware.CORSMiddleware(cfg.ClientURL))
	} else {
		zapLogger.Warn("CORS disabled: CLIENT_URL is not configured")
	}

	api.SetupRoutes(router, zapLogger, authClient, authClient,
		userService, itemService, rentalService, messageService, uploader)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	go func() {
		zapLogger.Info("starting HTTP server",
			zap.String("address", httpServer.Addr),
			zap.String("ginMode", gin.Mode()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	zapLogger.Info("received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLogger.Fatal("forced shutdown", zap.Error(err))
	}
	zapLogger.Info("server exited")
}
