package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"snake-arena/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GameService manages game sessions and the statistics derived from them.
type GameService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewGameService(db *gorm.DB) *GameService {
	return &GameService{DB: db, Now: func() time.Time { return time.Now().UTC() }}
}

// StartSession force-closes the user's active session, if any, and opens a new
// one. Both writes share a transaction that first locks the user row, so two
// concurrent starts for the same user run one after the other. If a start still
// slips past (no row lock on SQLite), the partial unique index rejects the
// second active row and the caller gets ErrConflict.
func (s *GameService) StartSession(ctx context.Context, user *models.User, mode models.GameMode) (*models.GameSession, error) {
	if mode == "" {
		mode = models.GameModeWalls
	}

	var session *models.GameSession
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owner models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&owner, user.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: user not found", ErrNotFound)
			}
			return err
		}

		now := s.Now()
		closed := tx.Model(&models.GameSession{}).
			Where("user_id = ? AND is_active = ?", owner.ID, true).
			Updates(map[string]any{"is_active": false, "ended_at": now})
		if closed.Error != nil {
			return fmt.Errorf("close previous session: %w", closed.Error)
		}
		if closed.RowsAffected > 0 {
			slog.InfoContext(ctx, "previous game session closed", "user_id", owner.ID, "count", closed.RowsAffected)
		}

		session = &models.GameSession{
			UserID:    owner.ID,
			Mode:      mode,
			IsActive:  true,
			StartedAt: now,
		}
		if err := tx.Create(session).Error; err != nil {
			if isDuplicateKey(err) {
				return fmt.Errorf("%w: another game was started concurrently", ErrConflict)
			}
			return fmt.Errorf("create session: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "game session started", "session_id", session.ID, "user_id", user.ID, "mode", mode)
	return session, nil
}

// EndSession records the final score of an active session owned by actorID.
// A missing duration is stored as 0. Ending a session that is no longer active
// returns ErrSessionNotActive and leaves the stored result alone.
func (s *GameService) EndSession(ctx context.Context, sessionID, actorID uint, score int64, duration *int64) (*models.GameSession, error) {
	if score < 0 {
		return nil, fmt.Errorf("%w: score must be non-negative", ErrValidation)
	}
	var dur int64
	if duration != nil {
		dur = *duration
	}
	if dur < 0 {
		return nil, fmt.Errorf("%w: duration must be non-negative", ErrValidation)
	}

	db := s.DB.WithContext(ctx)

	var session models.GameSession
	if err := db.First(&session, sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: game not found", ErrNotFound)
		}
		return nil, fmt.Errorf("find session: %w", err)
	}
	if session.UserID != actorID {
		return nil, fmt.Errorf("%w: game belongs to another user", ErrForbidden)
	}
	if !session.IsActive {
		return nil, ErrSessionNotActive
	}

	now := s.Now()
	res := db.Model(&models.GameSession{}).
		Where("id = ? AND is_active = ?", session.ID, true).
		Updates(map[string]any{
			"score":     score,
			"duration":  dur,
			"is_active": false,
			"ended_at":  now,
		})
	if res.Error != nil {
		return nil, fmt.Errorf("end session: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// Closed by a concurrent start, end or the sweeper after our read.
		return nil, ErrSessionNotActive
	}

	session.Score = score
	session.Duration = dur
	session.IsActive = false
	session.EndedAt = &now

	slog.InfoContext(ctx, "game session ended", "session_id", session.ID, "user_id", actorID, "score", score, "duration", dur)
	return &session, nil
}

// ListActive returns active sessions for spectators, best score first. The
// duration of each is the time elapsed since it started.
func (s *GameService) ListActive(ctx context.Context, limit int) ([]models.SessionView, error) {
	var sessions []models.GameSession
	err := s.DB.WithContext(ctx).
		Preload("User").
		Where("is_active = ?", true).
		Order("score DESC").Order("started_at ASC").
		Limit(limit).
		Find(&sessions).Error
	if err != nil {
		return nil, fmt.Errorf("list active sessions: %w", err)
	}

	now := s.Now()
	views := make([]models.SessionView, 0, len(sessions))
	for i := range sessions {
		v := sessions[i].View("")
		if elapsed := now.Sub(sessions[i].StartedAt); elapsed > 0 {
			v.Duration = int64(elapsed.Seconds())
		} else {
			v.Duration = 0
		}
		views = append(views, v)
	}
	return views, nil
}

// SessionLeaderboard ranks finished sessions by score.
func (s *GameService) SessionLeaderboard(ctx context.Context, limit int) ([]models.RankedEntry, error) {
	var sessions []models.GameSession
	err := s.DB.WithContext(ctx).
		Preload("User").
		Where("is_active = ?", false).
		Order("score DESC").Order("ended_at ASC").
		Limit(limit).
		Find(&sessions).Error
	if err != nil {
		return nil, fmt.Errorf("session leaderboard: %w", err)
	}

	out := make([]models.RankedEntry, 0, len(sessions))
	for i, g := range sessions {
		username := "Unknown"
		if g.User != nil {
			username = g.User.Username
		}
		out = append(out, models.RankedEntry{
			Rank:     i + 1,
			UserID:   g.UserID,
			Username: username,
			Score:    g.Score,
			Mode:     g.Mode,
			Duration: g.Duration,
			PlayedAt: g.EndedAt,
		})
	}
	return out, nil
}

// Stats aggregates a user's finished sessions. Leaderboard submissions are not
// counted.
func (s *GameService) Stats(ctx context.Context, userID uint) (*models.UserStats, error) {
	db := s.DB.WithContext(ctx)

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user not found", ErrNotFound)
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	var agg struct {
		GamesPlayed int64
		HighScore   int64
		TotalScore  int64
	}
	err := db.Model(&models.GameSession{}).
		Select("COUNT(*) AS games_played, COALESCE(MAX(score), 0) AS high_score, COALESCE(SUM(score), 0) AS total_score").
		Where("user_id = ? AND is_active = ?", userID, false).
		Scan(&agg).Error
	if err != nil {
		return nil, fmt.Errorf("aggregate sessions: %w", err)
	}

	return &models.UserStats{
		UserID:       user.ID,
		Username:     user.Username,
		GamesPlayed:  agg.GamesPlayed,
		HighScore:    agg.HighScore,
		TotalScore:   agg.TotalScore,
		AverageScore: averageScore(agg.TotalScore, agg.GamesPlayed),
	}, nil
}

// SweepAbandoned closes sessions that have been active for longer than maxAge.
// Their score and duration are kept as they are.
func (s *GameService) SweepAbandoned(ctx context.Context, maxAge time.Duration) (int64, error) {
	now := s.Now()
	res := s.DB.WithContext(ctx).Model(&models.GameSession{}).
		Where("is_active = ? AND started_at < ?", true, now.Add(-maxAge)).
		Updates(map[string]any{"is_active": false, "ended_at": now})
	if res.Error != nil {
		return 0, fmt.Errorf("sweep abandoned sessions: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func averageScore(total, games int64) float64 {
	if games == 0 {
		return 0
	}
	return math.Round(float64(total)/float64(games)*100) / 100
}
