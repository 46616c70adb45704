package utils

import (
	"context"
	"time"

	"drawnguess/internal/game"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// HistoryPruner deletes stored games older than a cutoff.
type HistoryPruner interface {
	Prune(ctx context.Context, cutoff time.Time) (int64, error)
}

// CronCleaner schedules the maintenance jobs and starts the scheduler. history
// may be nil when game history is disabled.
func CronCleaner(registry *game.Registry, history HistoryPruner, retention time.Duration, logger *zap.Logger) *cron.Cron {
	c := cron.New()

	// Rooms are normally removed on the last disconnect; this catches stragglers.
	c.AddFunc("@every 1m", func() {
		sweepRooms(registry, logger)
	})

	if history != nil && retention > 0 {
		c.AddFunc("@daily", func() {
			pruneHistory(history, retention, logger)
		})
	}

	c.Start()
	return c
}

func sweepRooms(registry *game.Registry, logger *zap.Logger) {
	if removed := registry.Sweep(); removed > 0 {
		logger.Info("Swept empty rooms", zap.Int("rooms_deleted", removed))
	}
}

func pruneHistory(history HistoryPruner, retention time.Duration, logger *zap.Logger) {
	logger.Info("Pruning game history")
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	removed, err := history.Prune(ctx, time.Now().Add(-retention))
	if err != nil {
		logger.Error("Failed to prune game history", zap.Error(err))
		return
	}
	logger.Info("Game history pruned", zap.Int64("games_deleted", removed))
}
