package main

import (
	"context"
	"log"

	"github.com/tendant/chi-demo/app"
	"github.com/tendant/simple-cms/pkg/simplecms/api"
	"github.com/tendant/simple-cms/pkg/simplecms/config"
	"go.uber.org/zap"
)

const maxRequestBytes = 4 << 20

func main() {
	cfg, err := config.Load(config.WithDotEnv())
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := cfg.BuildLogger()
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()
	svc, cleanup, err := cfg.BuildService(ctx, logger)
	if err != nil {
		logger.Fatal("Failed to build service", zap.Error(err))
	}
	defer cleanup()

	secret := cfg.JWTSecret
	if secret == "" {
		secret = "dev-secret"
		logger.Warn("CMS_JWT_SECRET not set, using development secret")
	}
	handler := api.NewHandler(svc, api.NewTokenAuth(secret), logger)

	server := app.DefaultApp()

	app.RoutesHealthz(server.R)
	app.RoutesHealthzReady(server.R)

	chain := api.NewMiddlewareChain(
		api.RequestIDMiddleware,
		api.LoggingMiddleware(logger),
		api.RecoveryMiddleware(logger),
		api.RequestSizeLimitMiddleware(maxRequestBytes),
	)
	if !cfg.IsProduction() {
		chain.Then(api.CORSMiddleware(nil, nil, nil))
	}
	server.R.Mount("/api/v1", chain.Wrap(handler.Routes()))

	logger.Info("simple-cms server starting",
		zap.String("environment", cfg.Environment),
		zap.String("database", cfg.DatabaseType),
		zap.Bool("media_validation", cfg.Media.Bucket != ""))

	server.Run()
}
