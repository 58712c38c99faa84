package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/visionchain/screening-api/internal/anchoring"
	"github.com/visionchain/screening-api/internal/auth"
	"github.com/visionchain/screening-api/internal/chat"
	"github.com/visionchain/screening-api/internal/config"
	"github.com/visionchain/screening-api/internal/grpcclient"
	"github.com/visionchain/screening-api/internal/handlers"
	"github.com/visionchain/screening-api/internal/logging"
	"github.com/visionchain/screening-api/internal/repository"
	"github.com/visionchain/screening-api/internal/usecase"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger, err := logging.NewLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync() //nolint:errcheck

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	var repo *repository.ScreeningRepository
	if cfg.DatabaseDSN == "" {
		logger.Warn("no database DSN configured, persistence disabled")
	} else {
		db := initDatabase(ctx, cfg.DatabaseDSN, logger)
		repo = repository.NewScreeningRepository(db, logger)
		if err := repo.AutoMigrate(ctx); err != nil {
			logger.Fatal("auto migrate failed", zap.Error(err))
		}
	}

	redisCtx, redisCancel := context.WithTimeout(ctx, 5*time.Second)
	defer redisCancel()
	redisClient := initRedis(redisCtx, cfg.RedisAddr, logger)

	classifier, conn, err := grpcclient.DialClassifier(ctx, cfg.InferenceAddr, logger)
	if err != nil {
		logger.Fatal("failed to connect to classifier", zap.Error(err))
	}
	defer conn.Close()

	cache := usecase.NewRedisCache(redisClient)
	screenings := usecase.NewScreeningUseCase(storeOrNil(repo), cache, classifier, logger)

	anchorClient := anchoring.NewBlockfrostClient(cfg.Blockfrost, logger)
	anchorer := anchoring.NewWorkflow(anchorStoreOrNil(repo), anchorClient, cfg.Anchor, logger)

	assistant := chat.NewAssistant(cfg.Groq, logger)
	if !assistant.Available() {
		logger.Warn("no chat API key configured, chat disabled")
	}

	if err := os.MkdirAll(cfg.HeatmapDir, 0o755); err != nil {
		logger.Fatal("failed to create heatmap dir", zap.Error(err))
	}

	r := gin.Default()
	r.MaxMultipartMemory = handlers.MaxUploadSize

	adminAuth := auth.JWTMiddleware(cfg.JWT.Secret, cfg.JWT.Audience)
	handlers.RegisterRoutes(r, handlers.Dependencies{
		Screenings:   screenings,
		Anchorer:     anchorer,
		Assistant:    assistant,
		AnchorHealth: anchorClient,
		HeatmapDir:   cfg.HeatmapDir,
		StoreReady:   repo != nil,
	}, adminAuth)

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	logger.Info("screening API listening", zap.String("addr", cfg.HTTPAddr))
	if err := serveHTTPServer(server, cfg.ShutdownTimeout, logger); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

// storeOrNil keeps the nil check at the interface boundary: a nil
// *ScreeningRepository inside a non-nil interface would defeat the
// use case's unconfigured-store handling.
func storeOrNil(repo *repository.ScreeningRepository) usecase.ScreeningStore {
	if repo == nil {
		return nil
	}
	return repo
}

func anchorStoreOrNil(repo *repository.ScreeningRepository) anchoring.Store {
	if repo == nil {
		return nil
	}
	return repo
}

func initDatabase(ctx context.Context, dsn string, zapLogger *zap.Logger) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)})
	if err != nil {
		zapLogger.Fatal("failed to connect to database", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		zapLogger.Fatal("failed to access db handle", zap.Error(err))
	}
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.PingContext(ctx); err != nil {
		zapLogger.Fatal("database ping failed", zap.Error(err))
	}

	return db
}

func initRedis(ctx context.Context, addr string, zapLogger *zap.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	return client
}

func serveHTTPServer(server *http.Server, shutdownTimeout time.Duration, logger *zap.Logger) error {
	return serveHTTPServerWithOptions(server, shutdownTimeout, logger, nil, nil)
}

func serveHTTPServerWithOptions(server *http.Server, shutdownTimeout time.Duration, logger *zap.Logger, listener net.Listener, signalCh <-chan os.Signal) error {
	errCh := make(chan error, 1)
	go func() {
		var err error
		if listener != nil {
			err = server.Serve(listener)
		} else {
			err = server.ListenAndServe()
		}
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		errCh <- err
	}()

	var (
		sigCh       <-chan os.Signal
		stopSignals func()
	)

	if signalCh != nil {
		sigCh = signalCh
		stopSignals = func() {}
	} else {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
		sigCh = ch
		stopSignals = func() {
			signal.Stop(ch)
		}
	}
	defer stopSignals()

	select {
	case err := <-errCh:
		return err
	case sig, ok := <-sigCh:
		if !ok {
			return <-errCh
		}
		logger.Info("received shutdown signal", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return <-errCh
	}
}
