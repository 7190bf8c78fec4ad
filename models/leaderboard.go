package models

import "time"

// LeaderboardEntry is an immutable, independently submitted score. Username is
// copied from the submitter at submission time.
type LeaderboardEntry struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	UserID      uint      `json:"user_id" gorm:"index;not null"`
	Username    string    `json:"username" gorm:"size:80;not null"`
	Score       int64     `json:"score" gorm:"index;not null"`
	Mode        GameMode  `json:"mode" gorm:"type:varchar(20);index;default:'walls'"`
	Duration    int64     `json:"duration" gorm:"default:0"`
	SubmittedAt time.Time `json:"timestamp" gorm:"index"`
}

// RankedEntry is a leaderboard row with its position in the listing. Rank is
// positional: equal scores still get distinct ranks.
type RankedEntry struct {
	ID        string     `json:"id,omitempty"`
	Rank      int        `json:"rank"`
	UserID    uint       `json:"user_id"`
	Username  string     `json:"username"`
	Score     int64      `json:"score"`
	Mode      GameMode   `json:"mode,omitempty"`
	Duration  int64      `json:"duration"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
	PlayedAt  *time.Time `json:"played_at"`
}
