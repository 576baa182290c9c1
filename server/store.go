package server

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/blogem/campus-feedback/config"
	"github.com/blogem/campus-feedback/database"
	"github.com/blogem/campus-feedback/repositories"
)

// OpenRepositories connects the configured feedback store. The returned
// close function releases the backend connection.
func OpenRepositories(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*repositories.Repositories, func(), error) {
	noop := func() {}

	switch cfg.Store {
	case config.StoreMemory:
		logger.Warn("Using in-memory store, feedback is lost on restart")
		return repositories.NewRepositories(repositories.NewMemoryFeedbackRepository()), noop, nil

	case config.StoreSQLite:
		db, err := database.InitializeSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize sqlite: %w", err)
		}
		return repositories.NewSQLiteRepositories(db), closeWith(logger, "sqlite", db.Close), nil

	case config.StorePostgres:
		db, err := database.ConnectPostgres(ctx, cfg.PostgresURI)
		if err != nil {
			return nil, nil, err
		}
		return repositories.NewRepositories(repositories.NewPostgresFeedbackRepository(db)), closeWith(logger, "postgres", db.Close), nil

	case config.StoreMongo:
		client, err := database.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		repo := repositories.NewMongoFeedbackRepository(client.Database(cfg.MongoDatabase))
		return repositories.NewRepositories(repo), closeWith(logger, "mongo", func() error {
			return client.Disconnect(context.Background())
		}), nil

	case config.StoreRedis:
		client, err := database.ConnectRedis(ctx, cfg.RedisURI)
		if err != nil {
			return nil, nil, err
		}
		repo := repositories.NewRedisFeedbackRepository(client, cfg.RedisKey)
		return repositories.NewRepositories(repo), closeWith(logger, "redis", client.Close), nil

	case config.StoreSheets:
		service, err := database.ConnectSheets(ctx, cfg.SheetsCredentialsFile)
		if err != nil {
			return nil, nil, err
		}
		repo := repositories.NewSheetsFeedbackRepository(service, cfg.SheetsSpreadsheetID, cfg.SheetsRange)
		return repositories.NewRepositories(repo), noop, nil

	default:
		return nil, nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}

func closeWith(logger *zap.Logger, name string, closeFn func() error) func() {
	return func() {
		if err := closeFn(); err != nil {
			logger.Warn("Failed to close store", zap.String("store", name), zap.Error(err))
		}
	}
}
