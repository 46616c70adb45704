package game

import "errors"

var (
	ErrRoomNotFound       = errors.New("Room not found")
	ErrInvalidName        = errors.New("Username is required")
	ErrRoomCodesExhausted = errors.New("no free room code")
	ErrPoolExhausted      = errors.New("word pool exhausted")
)
