package models

import (
	"time"
)

// User is an account of the game backend. PasswordHash holds a bcrypt digest
// and is never serialized.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"size:80;uniqueIndex;not null"`
	Email        string    `json:"email" gorm:"size:120;uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// UserStats is the aggregate over a user's finished game sessions.
type UserStats struct {
	UserID       uint    `json:"user_id"`
	Username     string  `json:"username"`
	GamesPlayed  int64   `json:"games_played"`
	HighScore    int64   `json:"high_score"`
	TotalScore   int64   `json:"total_score"`
	AverageScore float64 `json:"average_score"`
}
