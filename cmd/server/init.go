package main

import (
	"context"
	"fmt"
	"time"

	"github.com/heynokimush/dashboard-backend/config"
	"github.com/heynokimush/dashboard-backend/internal/database"
	"github.com/heynokimush/dashboard-backend/internal/logger"

	"go.mongodb.org/mongo-driver/mongo"
)

// Application giữ các thành phần dùng chung trong vòng đời process.
// Client MongoDB thuộc sở hữu của Application và được đóng trong Close.
type Application struct {
	Config      *config.Configuration
	Client      *mongo.Client
	Collections *database.Collections
}

// initLogger khởi tạo logger từ biến môi trường LOG_*
func initLogger() error {
	cfg, err := logger.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load log config: %w", err)
	}
	if err := logger.Init(cfg); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.GetAppLogger().Info("Logger system initialized successfully")
	return nil
}

// InitApplication đọc cấu hình và kết nối MongoDB
func InitApplication(envFiles ...string) (*Application, error) {
	cfg, err := config.NewConfig(envFiles...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}
	log := logger.GetAppLogger()
	log.Info("Initialized server config")

	client, err := database.GetInstance(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	log.Info("Connected to MongoDB")

	return &Application{
		Config:      cfg,
		Client:      client,
		Collections: database.NewCollections(client, cfg),
	}, nil
}

// EnsureIndexes tạo index cho collection dashboard và statistics
func (a *Application) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := database.EnsureIndexes(ctx, a.Collections); err != nil {
		return err
	}
	logger.GetAppLogger().Info("Ensured dashboard indexes")
	return nil
}

// Ping dùng cho health check
func (a *Application) Ping(ctx context.Context) error {
	return database.Ping(ctx, a.Client)
}

// Close ngắt kết nối MongoDB
func (a *Application) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = database.CloseInstance(ctx, a.Client)
}
