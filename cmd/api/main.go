package main

import (
	"context"
	"os"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/alcymedia/casting-caly/api/internal/config"
	"github.com/alcymedia/casting-caly/api/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.NewLogger("info").Error("configuration invalid", "err", err)
		os.Exit(1)
	}
	logger := cfg.Logger

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	clientOptions := options.Client().ApplyURI(cfg.MongoURI).SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		logger.Error("mongo connect failed", "err", err)
		os.Exit(1)
	}

	app, err := server.New(cfg, client)
	if err != nil {
		logger.Error("server setup failed", "err", err)
		os.Exit(1)
	}
	if err := app.Run(); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
