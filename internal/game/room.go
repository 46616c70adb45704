package game

import (
	"context"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
)

const sinkTimeout = 10 * time.Second

// Room is one game session. Every exported method handles a single event to
// completion under the room lock; timer callbacks take the same lock, so the
// fields below are only ever touched by one event at a time.
type Room struct {
	Code      string
	CreatedAt time.Time

	settings Settings
	pool     *WordPool
	rng      *rand.Rand
	sched    Scheduler
	sinks    []ResultSink
	logger   *zap.Logger

	mu         sync.Mutex
	players    map[string]*Player
	drawCounts map[string]int
	usedWords  map[string]struct{}
	round      int
	phase      Phase
	drawerID   string
	word       string
	remaining  int
	turn       uint64 // bumped on every round start; stale timer callbacks compare against it
	countdown  Timer
	advance    Timer
	closed     bool
}

// RoomSummary is a read-only view for the HTTP API.
type RoomSummary struct {
	Code      string    `json:"code"`
	Players   int       `json:"players"`
	Phase     string    `json:"phase"`
	Round     int       `json:"round"`
	MaxRounds int       `json:"maxRounds"`
	CreatedAt time.Time `json:"createdAt"`
}

func newRoom(code string, settings Settings, pool *WordPool, rng *rand.Rand, sched Scheduler, sinks []ResultSink, logger *zap.Logger) *Room {
	return &Room{
		Code:       code,
		CreatedAt:  time.Now(),
		settings:   settings,
		pool:       pool,
		rng:        rng,
		sched:      sched,
		sinks:      sinks,
		logger:     logger.With(zap.String("room", code)),
		players:    make(map[string]*Player),
		drawCounts: make(map[string]int),
		usedWords:  make(map[string]struct{}),
		round:      1,
		phase:      PhaseIdle,
	}
}

// admit adds p to the room. The creator only gets the room code; later joiners
// get the ledger and either kick off a round or receive the current one.
func (r *Room) admit(p *Player, creator bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrRoomNotFound
	}

	p.Name = uniqueName(p.Name, r.settings.MaxNameLength, r.nameTakenLocked)
	p.Score = 0
	p.IsDrawer = false
	r.players[p.ID] = p
	if _, ok := r.drawCounts[p.ID]; !ok {
		r.drawCounts[p.ID] = 0
	}
	r.logger.Info("Player joined", zap.String("player", p.ID), zap.String("name", p.Name), zap.Int("players", len(r.players)))

	if creator {
		p.send(EventGameCreated, GameCreated{GameID: r.Code})
		r.broadcastLocked(EventUpdateScores, ledger(r.players))
		return nil
	}

	p.send(EventGameJoined, GameJoined{GameID: r.Code, Scores: ledger(r.players)})
	r.broadcastLocked(EventUpdateScores, ledger(r.players))

	switch r.phase {
	case PhaseRoundActive:
		// The secret word never goes to a non-drawer, only its length.
		drawer := r.players[r.drawerID]
		p.send(EventNewRound, NewRound{
			Drawer:     drawer.Name,
			DrawerID:   drawer.ID,
			WordLength: utf8.RuneCountInString(r.word),
			Round:      r.round,
			MaxRounds:  r.settings.MaxRounds,
		})
	case PhaseGameOver:
		p.send(EventGameOver, GameOver{Scores: ledger(r.players)})
	default:
		r.startRoundLocked()
	}
	return nil
}

func (r *Room) nameTakenLocked(name string) bool {
	for _, p := range r.players {
		if p.Name == name {
			return true
		}
	}
	return false
}

// StartRound begins the next turn if the room is ready for one.
func (r *Room) StartRound() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.startRoundLocked()
}

func (r *Room) startRoundLocked() {
	if r.closed || r.phase == PhaseRoundActive || r.phase == PhaseGameOver {
		r.logger.Debug("StartRound ignored", zap.Stringer("phase", r.phase))
		return
	}

	ids := r.playerIDsLocked()
	if len(ids) < r.settings.MinPlayers {
		r.phase = PhaseIdle
		r.drawerID = ""
		r.word = ""
		r.stopTimersLocked()
		r.broadcastLocked(EventGameInfo, waitingForPlayers)
		return
	}

	// The word comes first so a failed pick leaves no drawer assigned.
	word, err := r.pool.Pick(r.rng, r.usedWords)
	if err == ErrPoolExhausted {
		// Every word has been used once in this room: start over.
		r.usedWords = make(map[string]struct{})
		word, err = r.pool.Pick(r.rng, r.usedWords)
	}
	if err != nil {
		r.logger.Error("Failed to pick a word", zap.Error(err))
		return
	}

	available := make([]string, 0, len(ids))
	for _, id := range ids {
		if r.drawCounts[id] < r.settings.TurnsPerRound {
			available = append(available, id)
		}
	}

	candidates := available
	if len(available) == 0 {
		// Everyone has drawn TurnsPerRound times: the round is complete.
		r.round++
		for _, id := range ids {
			r.drawCounts[id] = 0
		}
		if r.round > r.settings.MaxRounds {
			r.endGameLocked()
			return
		}
		candidates = ids
	}

	drawerID := candidates[r.rng.Intn(len(candidates))]
	r.drawCounts[drawerID]++
	for id, p := range r.players {
		p.IsDrawer = id == drawerID
	}
	r.drawerID = drawerID

	r.word = word
	r.usedWords[word] = struct{}{}

	r.remaining = int(r.settings.RoundDuration / time.Second)
	r.phase = PhaseRoundActive
	r.turn++
	r.stopTimersLocked()

	drawer := r.players[drawerID]
	r.broadcastLocked(EventClearCanvas, nil)
	r.broadcastLocked(EventNewRound, NewRound{
		Drawer:     drawer.Name,
		DrawerID:   drawer.ID,
		WordLength: utf8.RuneCountInString(word),
		Round:      r.round,
		MaxRounds:  r.settings.MaxRounds,
	})
	drawer.send(EventYourWord, word)

	r.armCountdownLocked()
	r.logger.Info("Round started",
		zap.Int("round", r.round),
		zap.String("drawer", drawer.ID),
		zap.Int("drawCount", r.drawCounts[drawerID]),
	)
}

func (r *Room) armCountdownLocked() {
	turn := r.turn
	r.countdown = r.sched.AfterFunc(time.Second, func() { r.tick(turn) })
}

func (r *Room) tick(turn uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed || r.phase != PhaseRoundActive || r.turn != turn {
		return
	}
	r.remaining--
	r.broadcastLocked(EventTimer, r.remaining)
	if r.remaining <= 0 {
		r.endRoundLocked(ReasonTimeUp)
		return
	}
	r.armCountdownLocked()
}

// EndRound reveals the word and schedules the next StartRound. No-op unless a
// round is active.
func (r *Room) EndRound(reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.endRoundLocked(reason)
}

func (r *Room) endRoundLocked(reason string) {
	if r.phase != PhaseRoundActive {
		return
	}
	r.stopTimersLocked()
	r.phase = PhaseRoundEnd
	r.broadcastLocked(EventRoundEnd, RoundEnd{Reason: reason, Word: r.word})

	r.drawerID = ""
	r.word = ""
	for _, p := range r.players {
		p.IsDrawer = false
	}

	turn := r.turn
	r.advance = r.sched.AfterFunc(r.settings.RevealDelay, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.closed || r.turn != turn {
			return
		}
		r.advance = nil
		r.startRoundLocked()
	})
	r.logger.Info("Round ended", zap.String("reason", reason), zap.Int("round", r.round))
}

func (r *Room) endGameLocked() {
	r.phase = PhaseGameOver
	r.drawerID = ""
	r.word = ""
	for _, p := range r.players {
		p.IsDrawer = false
	}
	r.stopTimersLocked()
	r.broadcastLocked(EventGameOver, GameOver{Scores: ledger(r.players)})
	r.logger.Info("Game over", zap.Int("rounds", r.settings.MaxRounds))

	if len(r.sinks) == 0 {
		return
	}
	result := GameResult{
		RoomCode:   r.Code,
		Rounds:     r.settings.MaxRounds,
		FinishedAt: time.Now(),
		Standings:  standings(r.players),
	}
	for _, sink := range r.sinks {
		go func(sink ResultSink) {
			ctx, cancel := context.WithTimeout(context.Background(), sinkTimeout)
			defer cancel()
			if err := sink.RecordGame(ctx, result); err != nil {
				r.logger.Error("Failed to record game result", zap.Error(err))
			}
		}(sink)
	}
}

// HandleGuess awards points and ends the round on a correct guess. Only the
// first correct guess of a round counts since the round stops being active.
func (r *Room) HandleGuess(playerID, text string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.handleGuessLocked(playerID, text)
}

func (r *Room) handleGuessLocked(playerID, text string) bool {
	if r.phase != PhaseRoundActive || playerID == r.drawerID {
		return false
	}
	guesser, ok := r.players[playerID]
	if !ok {
		return false
	}
	if !strings.EqualFold(text, r.word) {
		return false
	}

	points := guessPoints(r.remaining)
	guesser.Score += points
	if drawer, ok := r.players[r.drawerID]; ok {
		drawer.Score += drawerBonus
	}
	r.logger.Info("Correct guess", zap.String("player", playerID), zap.Int("points", points), zap.Int("remaining", r.remaining))

	r.broadcastLocked(EventChatMessage, ChatMessage{
		Username: systemName,
		Message:  guesser.Name + " guessed the word!",
		Type:     "correct",
	})
	r.broadcastLocked(EventUpdateScores, ledger(r.players))
	r.endRoundLocked(guesser.Name + " guessed it!")
	return true
}

// Chat evaluates text as a guess and, when it is not a correct one, shows it
// to the room as ordinary chat.
func (r *Room) Chat(playerID, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.players[playerID]
	if !ok {
		return
	}
	if r.handleGuessLocked(playerID, text) {
		return
	}
	r.broadcastLocked(EventChatMessage, ChatMessage{Username: p.Name, Msg: text})
}

// Relay forwards a payload to every member except the sender without looking
// at it.
func (r *Room) Relay(fromID, event string, payload any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.players[fromID]; !ok {
		return
	}
	for id, p := range r.players {
		if id != fromID {
			p.send(event, payload)
		}
	}
}

// Leave removes a player and rebroadcasts the ledger. Returns how many players
// remain.
func (r *Room) Leave(playerID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.players[playerID]; !ok {
		return len(r.players)
	}
	delete(r.players, playerID)
	delete(r.drawCounts, playerID)
	r.logger.Info("Player left", zap.String("player", playerID), zap.Int("players", len(r.players)))

	if playerID == r.drawerID {
		r.endRoundLocked(ReasonDrawerLeft)
	}
	r.broadcastLocked(EventUpdateScores, ledger(r.players))
	return len(r.players)
}

// closeIfEmpty destroys the room when nobody is left, cancelling every pending
// timer so nothing fires against it afterwards.
func (r *Room) closeIfEmpty() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return true
	}
	if len(r.players) > 0 {
		return false
	}
	r.closed = true
	r.stopTimersLocked()
	return true
}

func (r *Room) stopTimersLocked() {
	if r.countdown != nil {
		r.countdown.Stop()
		r.countdown = nil
	}
	if r.advance != nil {
		r.advance.Stop()
		r.advance = nil
	}
}

func (r *Room) Scores() Scores {
	r.mu.Lock()
	defer r.mu.Unlock()
	return ledger(r.players)
}

func (r *Room) Summary() RoomSummary {
	r.mu.Lock()
	defer r.mu.Unlock()
	return RoomSummary{
		Code:      r.Code,
		Players:   len(r.players),
		Phase:     r.phase.String(),
		Round:     r.round,
		MaxRounds: r.settings.MaxRounds,
		CreatedAt: r.CreatedAt,
	}
}

func (r *Room) playerIDsLocked() []string {
	ids := make([]string, 0, len(r.players))
	for id := range r.players {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (r *Room) broadcastLocked(event string, payload any) {
	for _, p := range r.players {
		p.send(event, payload)
	}
}
