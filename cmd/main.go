package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"ecocart.dev/ecocart/api/internal/router"
	"ecocart.dev/ecocart/api/internal/service"
	"ecocart.dev/ecocart/api/pkg/ai"
	"ecocart.dev/ecocart/api/pkg/global"
	"ecocart.dev/ecocart/api/pkg/images"
	"ecocart.dev/ecocart/api/pkg/logger"
	"ecocart.dev/ecocart/api/pkg/mongo"
	"ecocart.dev/ecocart/api/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	cfg := global.LoadConfig()
	lg := logger.New(logger.Options{
		Service:   "ecocart-api",
		Env:       cfg.Env,
		Level:     cfg.LogLevel,
		AddSource: !cfg.IsProduction(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, lg); err != nil {
		lg.Error("server stopped", slog.Any("err", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg global.Config, lg *slog.Logger) error {
	connectCtx, cancel := global.GetDefaultTimer()
	store, err := mongo.Connect(connectCtx, cfg.MongoURI, cfg.MongoDatabase)
	cancel()
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := global.GetDefaultTimer()
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			lg.Warn("mongodb disconnect failed", slog.Any("err", err))
		}
	}()
	lg.Info("connected to mongodb", slog.String("database", cfg.MongoDatabase))

	indexCtx, cancel := global.GetDefaultTimer()
	err = mongo.EnsureIndexes(indexCtx, store, lg)
	cancel()
	if err != nil {
		return err
	}

	var cache service.ProductCache
	if cfg.RedisAddress != "" {
		client := redis.NewClient(cfg.RedisAddress, cfg.RedisPassword)
		defer client.Close()
		cache = redis.NewProductCache(client)
		lg.Info("product cache enabled", slog.String("address", cfg.RedisAddress))
	}

	imageStore, err := images.NewStore(cfg.ImagesDir)
	if err != nil {
		return err
	}
	cleaner := images.NewCleaner(imageStore, lg, 64)
	defer cleaner.Close()

	completer := ai.NewClient(ai.Options{
		APIKey:  cfg.AIKey,
		BaseURL: cfg.AIBaseURL,
		Model:   cfg.AIModel,
	})

	handler := router.NewHandler(router.Deps{
		Catalog:   service.NewCatalogService(mongo.NewProductRepo(store), cache, lg),
		Reviews:   service.NewReviewService(mongo.NewCommentRepo(store), imageStore, cleaner, lg),
		Accounts:  service.NewAccountService(mongo.NewUserRepo(store), imageStore, cleaner, lg),
		Orders:    service.NewOrderService(mongo.NewOrderRepo(store), lg),
		Assistant: service.NewAssistantService(completer, lg),
		Database:  store,
		Log:       lg,
	})

	engine := router.NewEngine(cfg, lg)
	router.InitializeRoutes(engine, handler, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		lg.Info("server is running", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	lg.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
