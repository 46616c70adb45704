package game

// Events sent by clients.
const (
	EventCreateGame  = "createGame"
	EventJoinGame    = "joinGame"
	EventChatMessage = "chatMessage"
	EventDraw        = "draw"
	EventClearCanvas = "clearCanvas"
	EventBeginPath   = "beginPath"
)

// Events sent by the server.
const (
	EventGameCreated  = "gameCreated"
	EventGameJoined   = "gameJoined"
	EventError        = "error"
	EventUpdateScores = "updateScores"
	EventNewRound     = "newRound"
	EventYourWord     = "yourWord"
	EventTimer        = "timer"
	EventRoundEnd     = "roundEnd"
	EventGameOver     = "gameOver"
	EventGameInfo     = "gameInfo"
)

const (
	ReasonTimeUp     = "Time's up!"
	ReasonDrawerLeft = "Drawer left!"

	waitingForPlayers = "Waiting for more players..."
	systemName        = "System"
)

type GameCreated struct {
	GameID string `json:"gameId"`
}

type GameJoined struct {
	GameID string `json:"gameId"`
	Scores Scores `json:"scores"`
}

type NewRound struct {
	Drawer     string `json:"drawer"`
	DrawerID   string `json:"drawerId"`
	WordLength int    `json:"wordLength"`
	Round      int    `json:"round"`
	MaxRounds  int    `json:"maxRounds"`
}

type RoundEnd struct {
	Reason string `json:"reason"`
	Word   string `json:"word"`
}

type GameOver struct {
	Scores Scores `json:"scores"`
}

// ChatMessage covers both player chat ({username, msg}) and system
// announcements ({username, message, type}).
type ChatMessage struct {
	Username string `json:"username"`
	Msg      string `json:"msg,omitempty"`
	Message  string `json:"message,omitempty"`
	Type     string `json:"type,omitempty"`
}
