package utils

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"drawnguess/internal/game"
	"drawnguess/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakePruner struct {
	cutoff  time.Time
	removed int64
	err     error
}

func (f *fakePruner) Prune(_ context.Context, cutoff time.Time) (int64, error) {
	f.cutoff = cutoff
	return f.removed, f.err
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.InfoLevel)

	router := gin.New()
	router.Use(RequestLogger(zap.New(core)))
	router.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/healthz", fields["path"])
	assert.EqualValues(t, http.StatusNoContent, fields["status"])
}

func TestInitLogger(t *testing.T) {
	logger, err := InitLogger("debug")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = InitLogger("info")
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestSweepRooms(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	registry := game.NewRegistry(zap.NewNop())
	room, err := registry.CreateRoom("a", "Alice", nil)
	require.NoError(t, err)
	room.Leave("a")

	sweepRooms(registry, zap.New(core))
	assert.Zero(t, registry.Len())
	assert.Equal(t, 1, logs.FilterMessage("Swept empty rooms").Len())
}

func TestPruneHistory(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	pruner := &fakePruner{removed: 4}

	pruneHistory(pruner, 24*time.Hour, zap.New(core))
	assert.WithinDuration(t, time.Now().Add(-24*time.Hour), pruner.cutoff, time.Minute)
	assert.Equal(t, 1, logs.FilterMessage("Game history pruned").Len())

	pruner.err = errors.New("db down")
	pruneHistory(pruner, 24*time.Hour, zap.New(core))
	assert.Equal(t, 1, logs.FilterMessage("Failed to prune game history").Len())
}

func TestCronCleanerRegistersJobs(t *testing.T) {
	registry := game.NewRegistry(zap.NewNop())

	c := CronCleaner(registry, &fakePruner{}, 24*time.Hour, zap.NewNop())
	defer c.Stop()
	assert.Len(t, c.Entries(), 2)

	c2 := CronCleaner(registry, nil, 24*time.Hour, zap.NewNop())
	defer c2.Stop()
	assert.Len(t, c2.Entries(), 1)
}

func TestGameSettingsFromConfig(t *testing.T) {
	settings := GameSettings(models.Config{MaxRounds: 4, RoundSeconds: 30, RevealSeconds: 2})
	assert.Equal(t, 4, settings.MaxRounds)
	assert.Equal(t, 30*time.Second, settings.RoundDuration)
	assert.Equal(t, 2*time.Second, settings.RevealDelay)

	limits := ClientLimits(models.Config{ChatBurst: 9})
	assert.Equal(t, 9, limits.ChatBurst)
	assert.Equal(t, float64(60), limits.DrawPerSecond)
}
