package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"drawnguess/database"
	"drawnguess/draw"
	drawdb "drawnguess/draw/database"
	"drawnguess/internal/game"
	"drawnguess/screens"
	"drawnguess/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.json"
	}
	config, err := database.LoadConfig(configPath)
	if err != nil {
		panic(err)
	}

	logger, err := utils.InitLogger(config.LogLevel)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// PostgreSQL and Redis come up in parallel; either may be left unconfigured.
	var db *gorm.DB
	var rdb *redis.Client
	done := make(chan bool)

	go func() {
		defer func() { done <- true }()
		if config.DBHost == "" {
			logger.Info("DB_HOST not set, game history disabled")
			return
		}
		conn, err := database.InitPostgreSQL(config, logger)
		if err != nil {
			logger.Fatal("Failed to initialize PostgreSQL", zap.Error(err))
		}
		if err := database.Migrate(conn); err != nil {
			logger.Fatal("Failed to migrate database", zap.Error(err))
		}
		db = conn
	}()

	go func() {
		defer func() { done <- true }()
		if config.RedisAddr == "" {
			logger.Info("REDIS_ADDR not set, leaderboard disabled")
			return
		}
		client, err := database.InitRedis(config, logger)
		if err != nil {
			logger.Fatal("Failed to initialize Redis", zap.Error(err))
		}
		rdb = client
	}()

	<-done
	<-done

	var sinks []game.ResultSink
	var recorder *drawdb.GameRecorder
	var leaderboard *drawdb.Leaderboard
	var pruner utils.HistoryPruner
	if db != nil {
		recorder = drawdb.NewGameRecorder(db, logger)
		sinks = append(sinks, recorder)
		pruner = recorder
	}
	if rdb != nil {
		defer rdb.Close()
		leaderboard = drawdb.NewLeaderboard(rdb, logger)
		sinks = append(sinks, leaderboard)
	}

	registry := game.NewRegistry(logger,
		game.WithSettings(utils.GameSettings(config)),
		game.WithWordPool(game.NewWordPool(config.Words)),
		game.WithResultSinks(sinks...),
	)
	limits := utils.ClientLimits(config)

	retention := time.Duration(config.HistoryRetentionDays) * 24 * time.Hour
	cleaner := utils.CronCleaner(registry, pruner, retention, logger)
	defer cleaner.Stop()

	origins := config.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(origins),
	}

	router := gin.New()
	router.Use(gin.Recovery(), utils.RequestLogger(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  []string{"GET"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	router.GET("/healthz", func(c *gin.Context) {
		screens.Health(c, registry)
	})
	router.GET("/rooms", func(c *gin.Context) {
		screens.ListRooms(c, registry, logger)
	})
	router.GET("/rooms/:code", func(c *gin.Context) {
		screens.RoomInfo(c, registry, logger)
	})
	router.GET("/leaderboard", func(c *gin.Context) {
		screens.Leaderboard(c, leaderboard, logger)
	})
	router.GET("/history", func(c *gin.Context) {
		screens.History(c, recorder, logger)
	})
	// Connections outlive the upgrade request, so they hang off the process context.
	router.GET("/ws", func(c *gin.Context) {
		draw.HandleConnections(ctx, c.Writer, c.Request, registry, logger, upgrader, limits)
	})
	if config.StaticDir != "" {
		router.NoRoute(func(c *gin.Context) {
			screens.StaticFiles(c, config.StaticDir)
		})
	}

	srv := &http.Server{
		Addr:    ":" + config.Port,
		Handler: router,
	}
	go func() {
		logger.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
}

// originChecker allows websocket upgrades from the configured origins. "*"
// allows any.
func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		set[o] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || set[origin]
	}
}
