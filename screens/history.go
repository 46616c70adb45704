package screens

import (
	"net/http"
	"time"

	"drawnguess/draw/database"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type historyPlayer struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
	Place int    `json:"place"`
}

type historyGame struct {
	RoomCode   string          `json:"roomCode"`
	Rounds     int             `json:"rounds"`
	FinishedAt time.Time       `json:"finishedAt"`
	Players    []historyPlayer `json:"players"`
}

// History serves recently finished games. 404 when PostgreSQL is not configured.
func History(c *gin.Context, recorder *database.GameRecorder, logger *zap.Logger) {
	if recorder == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status": "history_disabled",
			"error":  "Game history is not enabled",
		})
		return
	}

	records, err := recorder.Recent(c.Request.Context(), queryLimit(c))
	if err != nil {
		logger.Error("Failed to load game history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "history_error",
			"error":  "Failed to load game history",
		})
		return
	}

	games := make([]historyGame, 0, len(records))
	for _, r := range records {
		players := make([]historyPlayer, 0, len(r.Players))
		for _, p := range r.Players {
			players = append(players, historyPlayer{Name: p.Name, Score: p.Score, Place: p.Place})
		}
		games = append(games, historyGame{
			RoomCode:   r.RoomCode,
			Rounds:     r.Rounds,
			FinishedAt: r.FinishedAt,
			Players:    players,
		})
	}
	c.JSON(http.StatusOK, gin.H{"games": games})
}
