package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"drawnguess/models"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DefaultConfig is what the server runs with when config.json is absent.
func DefaultConfig() models.Config {
	return models.Config{
		Port:                 "8080",
		LogLevel:             "info",
		DBSSLMode:            "disable",
		MaxRounds:            3,
		TurnsPerRound:        3,
		RoundSeconds:         60,
		RevealSeconds:        5,
		MinPlayers:           2,
		MaxNameLength:        15,
		AllowedOrigins:       []string{"*"},
		ChatPerSecond:        2,
		ChatBurst:            5,
		DrawPerSecond:        60,
		DrawBurst:            120,
		HistoryRetentionDays: 30,
	}
}

// LoadConfig reads filename over the defaults, then applies .env and
// environment overrides. A missing file is not an error.
func LoadConfig(filename string) (models.Config, error) {
	config := DefaultConfig()

	configFile, err := os.Open(filename)
	switch {
	case err == nil:
		defer configFile.Close()
		if err := json.NewDecoder(configFile).Decode(&config); err != nil {
			return config, fmt.Errorf("decode %s: %w", filename, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return config, err
	}

	// .env is optional; real environment variables win over it.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return config, fmt.Errorf("load .env: %w", err)
	}
	applyEnv(&config)
	return config, nil
}

func applyEnv(config *models.Config) {
	overrides := map[string]*string{
		"PORT":           &config.Port,
		"LOG_LEVEL":      &config.LogLevel,
		"DB_HOST":        &config.DBHost,
		"DB_USER":        &config.DBUser,
		"DB_PASSWORD":    &config.DBPassword,
		"DB_NAME":        &config.DBName,
		"DB_SSLMODE":     &config.DBSSLMode,
		"REDIS_ADDR":     &config.RedisAddr,
		"REDIS_PASSWORD": &config.RedisPassword,
		"STATIC_DIR":     &config.StaticDir,
	}
	for key, field := range overrides {
		if v, ok := os.LookupEnv(key); ok {
			*field = v
		}
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			config.RedisDB = db
		}
	}
}

func InitPostgreSQL(config models.Config, logger *zap.Logger) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s dbname=%s password=%s sslmode=%s",
		config.DBHost, config.DBUser, config.DBName, config.DBPassword, config.DBSSLMode)

	const maxRetries = 3
	const retryInterval = 5 * time.Second
	var err error
	for i := 0; i <= maxRetries; i++ {
		var gormDB *gorm.DB
		gormDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			return gormDB, nil
		}
		logger.Error("Retrying database connection", zap.Int("retry", i), zap.Error(err))
		if i < maxRetries {
			time.Sleep(retryInterval)
		}
	}
	return nil, fmt.Errorf("connect to database: %w", err)
}

// Migrate creates or updates the game history tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.GameRecord{}, &models.PlayerResult{})
}

func InitRedis(config models.Config, logger *zap.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr,
		Password: config.RedisPassword,
		DB:       config.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		logger.Error("Failed to connect to Redis", zap.Error(err))
		rdb.Close()
		return nil, err
	}

	logger.Info("Connected to Redis", zap.String("addr", config.RedisAddr))
	return rdb, nil
}
