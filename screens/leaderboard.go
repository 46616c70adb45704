package screens

import (
	"net/http"

	"drawnguess/draw/database"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Leaderboard serves the all-time top players. 404 when Redis is not configured.
func Leaderboard(c *gin.Context, lb *database.Leaderboard, logger *zap.Logger) {
	if lb == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status": "leaderboard_disabled",
			"error":  "Leaderboard is not enabled",
		})
		return
	}

	entries, err := lb.Top(c.Request.Context(), queryLimit(c))
	if err != nil {
		logger.Error("Failed to read leaderboard", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "leaderboard_error",
			"error":  "Failed to read leaderboard",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"players": entries})
}
