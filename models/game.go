// models/game.go
package models

import (
	"time"
)

// GameSession is one play-through. At most one row per user has IsActive set;
// the partial unique index created in database.Migrate backs that up.
type GameSession struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	UserID    uint       `json:"user_id" gorm:"index;not null"`
	User      *User      `json:"-" gorm:"foreignKey:UserID"`
	Score     int64      `json:"score" gorm:"not null;default:0"`
	Duration  int64      `json:"duration" gorm:"not null;default:0"` // seconds
	Mode      GameMode   `json:"mode" gorm:"type:varchar(20);default:'walls'"`
	IsActive  bool       `json:"is_active" gorm:"index;not null"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at"`
}

// SessionView is the response shape for a session, with the owner's name
// resolved.
type SessionView struct {
	ID        uint       `json:"id"`
	UserID    uint       `json:"user_id"`
	Username  string     `json:"username,omitempty"`
	Score     int64      `json:"score"`
	Duration  int64      `json:"duration"`
	Mode      GameMode   `json:"mode"`
	IsActive  bool       `json:"is_active"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at"`
}

// View builds the response shape. username overrides the preloaded user when
// non-empty.
func (g *GameSession) View(username string) SessionView {
	if username == "" && g.User != nil {
		username = g.User.Username
	}
	return SessionView{
		ID:        g.ID,
		UserID:    g.UserID,
		Username:  username,
		Score:     g.Score,
		Duration:  g.Duration,
		Mode:      g.Mode,
		IsActive:  g.IsActive,
		StartedAt: g.StartedAt,
		EndedAt:   g.EndedAt,
	}
}
