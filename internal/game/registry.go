package game

import (
	"math/rand"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	codeAlphabet    = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	codeLength      = 6
	maxCodeAttempts = 32
)

// Registry owns every live room keyed by code. Lock order is registry before
// room; room methods never call back into the registry.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*Room

	rng      *rand.Rand
	pool     *WordPool
	settings Settings
	sched    Scheduler
	sinks    []ResultSink
	logger   *zap.Logger
}

type Option func(*Registry)

func WithSettings(s Settings) Option {
	return func(reg *Registry) { reg.settings = s.withDefaults() }
}

func WithWordPool(pool *WordPool) Option {
	return func(reg *Registry) { reg.pool = pool }
}

func WithScheduler(s Scheduler) Option {
	return func(reg *Registry) { reg.sched = s }
}

// WithRand seeds room codes, drawer choice and word choice. Each room gets its
// own generator derived from this one.
func WithRand(rng *rand.Rand) Option {
	return func(reg *Registry) { reg.rng = rng }
}

func WithResultSinks(sinks ...ResultSink) Option {
	return func(reg *Registry) { reg.sinks = append(reg.sinks, sinks...) }
}

func NewRegistry(logger *zap.Logger, opts ...Option) *Registry {
	reg := &Registry{
		rooms:    make(map[string]*Room),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		pool:     DefaultWordPool(),
		settings: DefaultSettings(),
		sched:    SystemScheduler(),
		logger:   logger,
	}
	for _, opt := range opts {
		opt(reg)
	}
	if reg.logger == nil {
		reg.logger = zap.NewNop()
	}
	return reg
}

func (reg *Registry) Settings() Settings {
	return reg.settings
}

// CreateRoom registers a fresh room under an unused code and admits the
// creator into it.
func (reg *Registry) CreateRoom(playerID, name string, conn Sender) (*Room, error) {
	name, err := NormalizeName(name, reg.settings.MaxNameLength)
	if err != nil {
		return nil, err
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()

	code, err := reg.newCodeLocked()
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(reg.rng.Int63()))
	room := newRoom(code, reg.settings, reg.pool, rng, reg.sched, reg.sinks, reg.logger)
	reg.rooms[code] = room

	if err := room.admit(NewPlayer(playerID, name, conn), true); err != nil {
		delete(reg.rooms, code)
		return nil, err
	}
	reg.logger.Info("Room created", zap.String("room", code), zap.String("player", playerID))
	return room, nil
}

func (reg *Registry) newCodeLocked() (string, error) {
	buf := make([]byte, codeLength)
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		for i := range buf {
			buf[i] = codeAlphabet[reg.rng.Intn(len(codeAlphabet))]
		}
		code := string(buf)
		if _, taken := reg.rooms[code]; !taken {
			return code, nil
		}
	}
	return "", ErrRoomCodesExhausted
}

// JoinRoom admits a player into an existing room. An unknown code, or a room
// that was destroyed between lookup and admission, yields ErrRoomNotFound.
func (reg *Registry) JoinRoom(code, playerID, name string, conn Sender) (*Room, error) {
	name, err := NormalizeName(name, reg.settings.MaxNameLength)
	if err != nil {
		return nil, err
	}
	room := reg.Get(code)
	if room == nil {
		return nil, ErrRoomNotFound
	}
	if err := room.admit(NewPlayer(playerID, name, conn), false); err != nil {
		return nil, err
	}
	return room, nil
}

func (reg *Registry) Get(code string) *Room {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return reg.rooms[code]
}

// Leave removes the player from room and destroys the room once it is empty.
func (reg *Registry) Leave(room *Room, playerID string) {
	if room == nil {
		return
	}
	if room.Leave(playerID) > 0 {
		return
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()
	if room.closeIfEmpty() && reg.rooms[room.Code] == room {
		delete(reg.rooms, room.Code)
		reg.logger.Info("Room destroyed", zap.String("room", room.Code))
	}
}

// Sweep destroys rooms that ended up empty without a Leave reaching them.
func (reg *Registry) Sweep() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	removed := 0
	for code, room := range reg.rooms {
		if room.closeIfEmpty() {
			delete(reg.rooms, code)
			removed++
		}
	}
	return removed
}

func (reg *Registry) Len() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.rooms)
}

// Rooms lists every live room ordered by code.
func (reg *Registry) Rooms() []RoomSummary {
	reg.mu.RLock()
	rooms := make([]*Room, 0, len(reg.rooms))
	for _, room := range reg.rooms {
		rooms = append(rooms, room)
	}
	reg.mu.RUnlock()

	summaries := make([]RoomSummary, 0, len(rooms))
	for _, room := range rooms {
		summaries = append(summaries, room.Summary())
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Code < summaries[j].Code })
	return summaries
}
