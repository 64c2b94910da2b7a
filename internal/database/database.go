package database

import (
	"context"
	"fmt"
	"os"
	"time"
	"webshop-partner-server/internal/config"
	"webshop-partner-server/internal/models"
	"webshop-partner-server/pkg/logging"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

var (
	DB          *gorm.DB
	RedisClient *redis.Client
)

// InitDatabase initializes database connection
func InitDatabase() error {
	if err := initSQL(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	// Redis is optional; the env registry works without the cache
	if err := initRedis(); err != nil {
		return fmt.Errorf("failed to initialize Redis: %w", err)
	}

	// Auto migrate tables
	if err := autoMigrate(); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	return nil
}

// initSQL initializes the SQL connection: PostgreSQL when DATABASE_URL is
// set, otherwise a local SQLite file
func initSQL() error {
	var err error

	if dsn := config.AppConfig.DatabaseURL; dsn == "" {
		path, pathErr := sqlitePath()
		if pathErr != nil {
			return pathErr
		}
		logging.Infof("Database URL not set, using SQLite at %s", path)
		DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Info),
			NamingStrategy: schema.NamingStrategy{
				SingularTable: true,
			},
		})
	} else {
		DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Info),
			NamingStrategy: schema.NamingStrategy{
				SingularTable: true,
			},
		})
	}

	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	logging.Infof("Database connected successfully")
	return nil
}

// sqlitePath resolves the SQLite file location: a mounted volume in
// production, a local data directory otherwise
func sqlitePath() (string, error) {
	if config.AppConfig.Env == "production" {
		return "/data/webshop-partner-server.db", nil
	}
	if err := os.MkdirAll("./data", 0o755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}
	return "./data/webshop-partner-server.db", nil
}

// initRedis initializes the Redis connection when REDIS_URL is configured
func initRedis() error {
	redisURL := config.AppConfig.RedisURL
	if redisURL == "" {
		logging.Infof("REDIS_URL not set, env registry cache disabled")
		return nil
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	RedisClient = redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := RedisClient.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logging.Infof("Redis connected successfully")
	return nil
}

// autoMigrate performs database migration
func autoMigrate() error {
	return DB.AutoMigrate(
		&models.PurchaseNotification{},
		&models.ClientEnvironment{},
		&models.GameServer{},
		&models.GameUser{},
	)
}

// GetDB returns database instance
func GetDB() *gorm.DB {
	return DB
}

// GetRedis returns Redis client (nil when the cache is disabled)
func GetRedis() *redis.Client {
	return RedisClient
}

// CacheEnabled reports whether the Redis cache is available
func CacheEnabled() bool {
	return RedisClient != nil
}

// CloseDatabase closes database connections
func CloseDatabase() error {
	if sqlDB, err := DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logging.Errorf("Failed to close database: %v", err)
		}
	}

	if RedisClient != nil {
		if err := RedisClient.Close(); err != nil {
			logging.Errorf("Failed to close Redis: %v", err)
		}
	}

	return nil
}

// SetCache sets cache with expiration
func SetCache(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if RedisClient == nil {
		return nil
	}
	return RedisClient.Set(ctx, key, value, expiration).Err()
}

// GetCache gets cache value
func GetCache(ctx context.Context, key string) (string, error) {
	if RedisClient == nil {
		return "", redis.Nil
	}
	return RedisClient.Get(ctx, key).Result()
}

// DeleteCache deletes cache
func DeleteCache(ctx context.Context, key string) error {
	if RedisClient == nil {
		return nil
	}
	return RedisClient.Del(ctx, key).Err()
}
