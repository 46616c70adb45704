package game

import (
	"context"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Phase is the state of a room's round engine.
type Phase int

const (
	PhaseIdle        Phase = iota // no round, waiting for players
	PhaseRoundActive              // drawer and word assigned, countdown running
	PhaseRoundEnd                 // word revealed, next round pending
	PhaseGameOver                 // max rounds reached, scores frozen
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRoundActive:
		return "roundActive"
	case PhaseRoundEnd:
		return "roundEnd"
	case PhaseGameOver:
		return "gameOver"
	}
	return "unknown"
}

// Settings configures every room created by a Registry.
type Settings struct {
	MaxRounds     int
	TurnsPerRound int
	RoundDuration time.Duration
	RevealDelay   time.Duration
	MinPlayers    int
	MaxNameLength int
}

func DefaultSettings() Settings {
	return Settings{
		MaxRounds:     3,
		TurnsPerRound: 3,
		RoundDuration: 60 * time.Second,
		RevealDelay:   5 * time.Second,
		MinPlayers:    2,
		MaxNameLength: 15,
	}
}

// withDefaults fills zero fields so a partially populated config still works.
func (s Settings) withDefaults() Settings {
	d := DefaultSettings()
	if s.MaxRounds <= 0 {
		s.MaxRounds = d.MaxRounds
	}
	if s.TurnsPerRound <= 0 {
		s.TurnsPerRound = d.TurnsPerRound
	}
	if s.RoundDuration < time.Second {
		s.RoundDuration = d.RoundDuration
	}
	if s.RevealDelay <= 0 {
		s.RevealDelay = d.RevealDelay
	}
	if s.MinPlayers < 2 {
		s.MinPlayers = d.MinPlayers
	}
	if s.MaxNameLength <= 0 {
		s.MaxNameLength = d.MaxNameLength
	}
	return s
}

// Sender delivers one event to one connection. Implementations must not block:
// delivery is fire-and-forget.
type Sender interface {
	Send(event string, payload any)
}

// Player is a room member. ID is the connection identity.
type Player struct {
	ID       string
	Name     string
	Score    int
	IsDrawer bool
	conn     Sender
}

func NewPlayer(id, name string, conn Sender) *Player {
	return &Player{ID: id, Name: name, conn: conn}
}

func (p *Player) send(event string, payload any) {
	if p.conn != nil {
		p.conn.Send(event, payload)
	}
}

// GameResult is the final ledger handed to result sinks at game over.
type GameResult struct {
	RoomCode   string
	Rounds     int
	FinishedAt time.Time
	Standings  []Standing
}

// ResultSink persists finished games. Called off the room's critical section.
type ResultSink interface {
	RecordGame(ctx context.Context, result GameResult) error
}

// NormalizeName trims the display name and caps it at max runes.
func NormalizeName(name string, max int) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrInvalidName
	}
	if max > 0 && utf8.RuneCountInString(name) > max {
		runes := []rune(name)
		name = strings.TrimSpace(string(runes[:max]))
	}
	return name, nil
}

// uniqueName suffixes name with " 2", " 3", ... until no present player uses it,
// trimming the base so the result still fits in max runes.
func uniqueName(name string, max int, taken func(string) bool) string {
	if !taken(name) {
		return name
	}
	for n := 2; ; n++ {
		suffix := " " + strconv.Itoa(n)
		base := []rune(name)
		if max > 0 && len(base)+utf8.RuneCountInString(suffix) > max {
			keep := max - utf8.RuneCountInString(suffix)
			if keep < 1 {
				keep = 1
			}
			if keep < len(base) {
				base = base[:keep]
			}
		}
		candidate := string(base) + suffix
		if !taken(candidate) {
			return candidate
		}
	}
}
