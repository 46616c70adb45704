package draw

import (
	"context"
	"net/http"

	"drawnguess/draw/actions"
	"drawnguess/draw/connection"
	"drawnguess/internal/game"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// HandleConnections upgrades the request and runs the client until it
// disconnects. Room membership starts with a createGame or joinGame frame.
func HandleConnections(ctx context.Context, w http.ResponseWriter, r *http.Request, registry *game.Registry, logger *zap.Logger, upgrader websocket.Upgrader, limits connection.Limits) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		logger.Error("Error upgrading WebSocket", zap.Error(err))
		return
	}

	client := connection.NewClient(conn, limits, logger)
	connection.KeepAlive(conn)
	logger.Info("New client added", zap.String("client", client.ID), zap.String("remote", r.RemoteAddr))

	go client.WritePump()
	go actions.HandleClient(ctx, actions.NewSession(client, registry, logger))
}
