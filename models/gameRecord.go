package models

import (
	"time"

	"gorm.io/gorm"
)

// GameRecord is one finished game.
type GameRecord struct {
	gorm.Model
	RoomCode   string         `gorm:"index;not null"`
	Rounds     int            `gorm:"not null"`
	FinishedAt time.Time      `gorm:"index;not null"`
	Players    []PlayerResult `gorm:"foreignKey:GameRecordID;constraint:OnDelete:CASCADE"`
}

// PlayerResult is one row of a finished game's final standings.
type PlayerResult struct {
	gorm.Model
	GameRecordID uint   `gorm:"index"`
	Name         string `gorm:"not null"`
	Score        int    `gorm:"not null"`
	Place        int    `gorm:"not null"`
}
