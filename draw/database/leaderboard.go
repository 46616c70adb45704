package database

import (
	"context"
	"fmt"
	"strconv"

	"drawnguess/internal/game"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	leaderboardKey = "leaderboard:players"
	gamesPlayedKey = "leaderboard:games"
)

type LeaderboardEntry struct {
	Name  string `json:"name"`
	Score int64  `json:"score"`
	Games int64  `json:"games"`
	Rank  int    `json:"rank"`
}

// Leaderboard keeps all-time points per display name in a Redis sorted set.
type Leaderboard struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func NewLeaderboard(rdb *redis.Client, logger *zap.Logger) *Leaderboard {
	return &Leaderboard{rdb: rdb, logger: logger}
}

func (l *Leaderboard) RecordGame(ctx context.Context, result game.GameResult) error {
	if len(result.Standings) == 0 {
		return nil
	}
	_, err := l.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, s := range result.Standings {
			pipe.ZIncrBy(ctx, leaderboardKey, float64(s.Score), s.Name)
			pipe.HIncrBy(ctx, gamesPlayedKey, s.Name, 1)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("update leaderboard for %s: %w", result.RoomCode, err)
	}
	l.logger.Debug("Leaderboard updated", zap.String("room", result.RoomCode), zap.Int("players", len(result.Standings)))
	return nil
}

// Top returns the best limit players by total points.
func (l *Leaderboard) Top(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		return []LeaderboardEntry{}, nil
	}
	rows, err := l.rdb.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("read leaderboard: %w", err)
	}

	entries := make([]LeaderboardEntry, 0, len(rows))
	names := make([]string, 0, len(rows))
	for i, z := range rows {
		name, _ := z.Member.(string)
		names = append(names, name)
		entries = append(entries, LeaderboardEntry{Name: name, Score: int64(z.Score), Rank: i + 1})
	}
	if len(names) == 0 {
		return entries, nil
	}

	games, err := l.rdb.HMGet(ctx, gamesPlayedKey, names...).Result()
	if err != nil {
		return nil, fmt.Errorf("read games played: %w", err)
	}
	for i, v := range games {
		if s, ok := v.(string); ok {
			entries[i].Games, _ = strconv.ParseInt(s, 10, 64)
		}
	}
	return entries, nil
}
