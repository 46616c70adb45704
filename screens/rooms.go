package screens

import (
	"net/http"
	"strconv"
	"strings"

	"drawnguess/internal/game"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

func Health(c *gin.Context, registry *game.Registry) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"rooms":  registry.Len(),
	})
}

// ListRooms returns a summary of every live room.
func ListRooms(c *gin.Context, registry *game.Registry, logger *zap.Logger) {
	rooms := registry.Rooms()
	logger.Debug("Listing rooms", zap.Int("count", len(rooms)))
	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}

func RoomInfo(c *gin.Context, registry *game.Registry, logger *zap.Logger) {
	code := strings.ToUpper(c.Param("code"))
	room := registry.Get(code)
	if room == nil {
		logger.Info("Room lookup failed", zap.String("room", code))
		c.JSON(http.StatusNotFound, gin.H{
			"status": "room_not_found",
			"error":  game.ErrRoomNotFound.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"room":   room.Summary(),
		"scores": room.Scores(),
	})
}

// queryLimit reads ?limit=, clamped to [1, maxLimit].
func queryLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit < 1 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}
