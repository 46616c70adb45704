package database

import (
	"context"
	"fmt"
	"time"

	"drawnguess/internal/game"
	"drawnguess/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GameRecorder stores finished games in PostgreSQL.
type GameRecorder struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewGameRecorder(db *gorm.DB, logger *zap.Logger) *GameRecorder {
	return &GameRecorder{db: db, logger: logger}
}

// RecordGame writes the game and its standings in one transaction.
func (g *GameRecorder) RecordGame(ctx context.Context, result game.GameResult) error {
	record := models.GameRecord{
		RoomCode:   result.RoomCode,
		Rounds:     result.Rounds,
		FinishedAt: result.FinishedAt,
	}
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		if len(result.Standings) == 0 {
			return nil
		}
		rows := make([]models.PlayerResult, 0, len(result.Standings))
		for i, s := range result.Standings {
			rows = append(rows, models.PlayerResult{
				GameRecordID: record.ID,
				Name:         s.Name,
				Score:        s.Score,
				Place:        i + 1,
			})
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return fmt.Errorf("record game %s: %w", result.RoomCode, err)
	}
	g.logger.Info("Game recorded", zap.String("room", result.RoomCode), zap.Uint("recordID", record.ID))
	return nil
}

// Recent returns the latest finished games, newest first, with their standings.
func (g *GameRecorder) Recent(ctx context.Context, limit int) ([]models.GameRecord, error) {
	var records []models.GameRecord
	err := g.db.WithContext(ctx).
		Preload("Players", func(db *gorm.DB) *gorm.DB { return db.Order("place ASC") }).
		Order("finished_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("load recent games: %w", err)
	}
	return records, nil
}

// Prune deletes games that finished before cutoff. Returns the number removed.
func (g *GameRecorder) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	var ids []uint
	var removed int64
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.GameRecord{}).Where("finished_at < ?", cutoff).Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		if err := tx.Unscoped().Where("game_record_id IN ?", ids).Delete(&models.PlayerResult{}).Error; err != nil {
			return err
		}
		result := tx.Unscoped().Where("id IN ?", ids).Delete(&models.GameRecord{})
		removed = result.RowsAffected
		return result.Error
	})
	if err != nil {
		return 0, fmt.Errorf("prune games: %w", err)
	}
	return removed, nil
}
