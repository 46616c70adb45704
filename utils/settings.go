package utils

import (
	"time"

	"drawnguess/draw/connection"
	"drawnguess/internal/game"
	"drawnguess/models"
)

// GameSettings maps config onto room settings. Zero values fall back to the
// game defaults inside the registry.
func GameSettings(config models.Config) game.Settings {
	return game.Settings{
		MaxRounds:     config.MaxRounds,
		TurnsPerRound: config.TurnsPerRound,
		RoundDuration: time.Duration(config.RoundSeconds) * time.Second,
		RevealDelay:   time.Duration(config.RevealSeconds) * time.Second,
		MinPlayers:    config.MinPlayers,
		MaxNameLength: config.MaxNameLength,
	}
}

func ClientLimits(config models.Config) connection.Limits {
	limits := connection.DefaultLimits()
	if config.ChatPerSecond > 0 {
		limits.ChatPerSecond = config.ChatPerSecond
	}
	if config.ChatBurst > 0 {
		limits.ChatBurst = config.ChatBurst
	}
	if config.DrawPerSecond > 0 {
		limits.DrawPerSecond = config.DrawPerSecond
	}
	if config.DrawBurst > 0 {
		limits.DrawBurst = config.DrawBurst
	}
	return limits
}
