package actions

import (
	"context"

	"drawnguess/draw/broadcast"
	"drawnguess/draw/connection"
	"drawnguess/internal/game"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Session is the per-connection context: the client plus the one room it is
// currently in, if any.
type Session struct {
	client   *connection.Client
	registry *game.Registry
	room     *game.Room
	logger   *zap.Logger
}

func NewSession(client *connection.Client, registry *game.Registry, logger *zap.Logger) *Session {
	return &Session{
		client:   client,
		registry: registry,
		logger:   logger.With(zap.String("client", client.ID)),
	}
}

func (s *Session) Room() *game.Room {
	return s.room
}

// Leave drops the session out of its current room, if any.
func (s *Session) Leave() {
	if s.room == nil {
		return
	}
	s.registry.Leave(s.room, s.client.ID)
	s.logger.Info("Left room", zap.String("room", s.room.Code))
	s.room = nil
}

// Handle dispatches one decoded client frame.
func (s *Session) Handle(env broadcast.Envelope) {
	switch env.Type {
	case game.EventCreateGame:
		handleCreateGame(s, env.Data)
	case game.EventJoinGame:
		handleJoinGame(s, env.Data)
	case game.EventChatMessage:
		handleChatMessage(s, env.Data)
	case game.EventDraw, game.EventBeginPath, game.EventClearCanvas:
		handleStroke(s, env.Type, env.Data)
	default:
		s.logger.Info("Received unknown message type", zap.String("type", env.Type))
	}
}

// HandleClient reads frames until the socket fails or ctx ends, then takes the
// player out of their room.
func HandleClient(ctx context.Context, s *Session) {
	defer func() {
		s.Leave()
		s.client.Close()
		s.logger.Info("Client removed")
	}()

	go func() {
		select {
		case <-ctx.Done():
			s.client.Close()
		case <-s.client.Done():
		}
	}()

	for {
		_, message, err := s.client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.logger.Error("WebSocket error", zap.Error(err))
			}
			return
		}

		env, err := broadcast.Decode(message)
		if err != nil {
			s.logger.Info("Error decoding message", zap.Error(err))
			continue
		}
		s.Handle(env)
	}
}
