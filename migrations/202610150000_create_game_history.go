package main

import (
	"os"

	"drawnguess/database"
	"drawnguess/utils"

	"go.uber.org/zap"
)

// Creates or updates the game_records and player_results tables without
// starting the server.
func main() {
	logger, err := utils.InitLogger("info")
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.json"
	}
	config, err := database.LoadConfig(configPath)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}
	if config.DBHost == "" {
		logger.Fatal("DB_HOST is not set")
	}

	db, err := database.InitPostgreSQL(config, logger)
	if err != nil {
		logger.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal("Migration failed", zap.Error(err))
	}
	logger.Info("Game history tables migrated")
}
