package screens

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"drawnguess/draw/database"
	"drawnguess/internal/game"
	"drawnguess/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRouter(registry *game.Registry, lb *database.Leaderboard, recorder *database.GameRecorder) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := zap.NewNop()
	router := gin.New()
	router.GET("/healthz", func(c *gin.Context) { Health(c, registry) })
	router.GET("/rooms", func(c *gin.Context) { ListRooms(c, registry, log) })
	router.GET("/rooms/:code", func(c *gin.Context) { RoomInfo(c, registry, log) })
	router.GET("/leaderboard", func(c *gin.Context) { Leaderboard(c, lb, log) })
	router.GET("/history", func(c *gin.Context) { History(c, recorder, log) })
	return router
}

func get(t *testing.T, router *gin.Engine, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	var body map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	}
	return w, body
}

func TestRoomsEndpoints(t *testing.T) {
	registry := game.NewRegistry(zap.NewNop())
	room, err := registry.CreateRoom("a", "Alice", nil)
	require.NoError(t, err)
	router := setupRouter(registry, nil, nil)

	w, body := get(t, router, "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, body["rooms"])

	w, body = get(t, router, "/rooms")
	assert.Equal(t, http.StatusOK, w.Code)
	rooms := body["rooms"].([]any)
	require.Len(t, rooms, 1)
	assert.Equal(t, room.Code, rooms[0].(map[string]any)["code"])

	w, body = get(t, router, "/rooms/"+room.Code)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{"Alice": float64(0)}, body["scores"])

	w, body = get(t, router, "/rooms/NOPE00")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Room not found", body["error"])
}

func TestDisabledStoresReturn404(t *testing.T) {
	router := setupRouter(game.NewRegistry(zap.NewNop()), nil, nil)

	w, _ := get(t, router, "/leaderboard")
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = get(t, router, "/history")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLeaderboardAndHistory(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	lb := database.NewLeaderboard(rdb, zap.NewNop())

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	defer sqlDB.Close()
	require.NoError(t, db.AutoMigrate(&models.GameRecord{}, &models.PlayerResult{}))
	recorder := database.NewGameRecorder(db, zap.NewNop())

	result := game.GameResult{
		RoomCode:   "XYZ789",
		Rounds:     3,
		FinishedAt: time.Now(),
		Standings:  []game.Standing{{PlayerID: "a", Name: "Alice", Score: 30}, {PlayerID: "b", Name: "Bob", Score: 12}},
	}
	require.NoError(t, lb.RecordGame(context.Background(), result))
	require.NoError(t, recorder.RecordGame(context.Background(), result))

	router := setupRouter(game.NewRegistry(zap.NewNop()), lb, recorder)

	w, body := get(t, router, "/leaderboard?limit=1")
	assert.Equal(t, http.StatusOK, w.Code)
	players := body["players"].([]any)
	require.Len(t, players, 1)
	assert.Equal(t, "Alice", players[0].(map[string]any)["name"])

	w, body = get(t, router, "/history?limit=abc")
	assert.Equal(t, http.StatusOK, w.Code)
	games := body["games"].([]any)
	require.Len(t, games, 1)
	first := games[0].(map[string]any)
	assert.Equal(t, "XYZ789", first["roomCode"])
	assert.Len(t, first["players"], 2)
}

func TestStaticFilesFallback(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>app</html>"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "script.js"), []byte("console.log(1)"), 0o600))

	router := gin.New()
	router.NoRoute(func(c *gin.Context) { StaticFiles(c, dir) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/script.js", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "console.log")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/room/ABC123", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "app")
}
