package actions

import (
	"encoding/json"
	"strings"

	"drawnguess/internal/game"

	"go.uber.org/zap"
)

type createGameRequest struct {
	Username string `json:"username"`
}

type joinGameRequest struct {
	GameID   string `json:"gameId"`
	Username string `json:"username"`
}

func handleCreateGame(s *Session, data json.RawMessage) {
	var req createGameRequest
	if err := json.Unmarshal(data, &req); err != nil {
		s.client.SendError("Invalid request")
		return
	}

	room, err := s.registry.CreateRoom(s.client.ID, req.Username, s.client)
	if err != nil {
		s.logger.Info("Create game failed", zap.Error(err))
		s.client.SendError(err.Error())
		return
	}
	s.moveTo(room)
}

func handleJoinGame(s *Session, data json.RawMessage) {
	var req joinGameRequest
	if err := json.Unmarshal(data, &req); err != nil {
		s.client.SendError("Invalid request")
		return
	}

	code := strings.ToUpper(strings.TrimSpace(req.GameID))
	if s.room != nil && s.room.Code == code {
		return
	}
	room, err := s.registry.JoinRoom(code, s.client.ID, req.Username, s.client)
	if err != nil {
		s.logger.Info("Join game failed", zap.String("room", code), zap.Error(err))
		s.client.SendError(err.Error())
		return
	}
	s.moveTo(room)
}

// moveTo records room as the session's room. One room per connection: the old
// one is left only after the new one has accepted the player, so a failed
// create or join keeps the current membership.
func (s *Session) moveTo(room *game.Room) {
	s.Leave()
	s.room = room
}
