package models

// Config holds every setting the server reads from config.json and the
// environment. Empty DB host or Redis address disables that store.
type Config struct {
	Port     string `json:"port"`
	LogLevel string `json:"log_level"`

	DBHost     string `json:"db_host"`
	DBUser     string `json:"db_user"`
	DBPassword string `json:"db_password"`
	DBName     string `json:"db_name"`
	DBSSLMode  string `json:"db_sslmode"`

	RedisAddr     string `json:"redis_addr"`
	RedisPassword string `json:"redis_password"`
	RedisDB       int    `json:"redis_db"`

	MaxRounds     int      `json:"max_rounds"`
	TurnsPerRound int      `json:"turns_per_round"`
	RoundSeconds  int      `json:"round_seconds"`
	RevealSeconds int      `json:"reveal_seconds"`
	MinPlayers    int      `json:"min_players"`
	MaxNameLength int      `json:"max_name_length"`
	Words         []string `json:"words"`

	AllowedOrigins []string `json:"allowed_origins"`
	ChatPerSecond  float64  `json:"chat_per_second"`
	ChatBurst      int      `json:"chat_burst"`
	DrawPerSecond  float64  `json:"draw_per_second"`
	DrawBurst      int      `json:"draw_burst"`

	StaticDir            string `json:"static_dir"`
	HistoryRetentionDays int    `json:"history_retention_days"`
}
