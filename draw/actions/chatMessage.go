package actions

import (
	"encoding/json"

	"go.uber.org/zap"
)

type chatRequest struct {
	Msg string `json:"msg"`
}

// handleChatMessage forwards chat to the room, which treats it as a guess first.
func handleChatMessage(s *Session, data json.RawMessage) {
	if s.room == nil {
		return
	}
	var req chatRequest
	if err := json.Unmarshal(data, &req); err != nil || req.Msg == "" {
		return
	}
	if !s.client.AllowChat() {
		s.logger.Debug("Chat rate limited")
		return
	}
	s.room.Chat(s.client.ID, req.Msg)
}

// handleStroke relays drawing traffic to the rest of the room as-is.
func handleStroke(s *Session, event string, data json.RawMessage) {
	if s.room == nil {
		return
	}
	if !s.client.AllowDraw() {
		s.logger.Debug("Stroke rate limited", zap.String("event", event))
		return
	}
	var payload any
	if len(data) > 0 {
		payload = data
	}
	s.room.Relay(s.client.ID, event, payload)
}
