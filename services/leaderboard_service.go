package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"snake-arena/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Limits accepted by leaderboard listings.
const (
	MinLeaderboardLimit = 1
	MaxLeaderboardLimit = 100
)

// LeaderboardService stores submitted scores and ranks them.
type LeaderboardService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewLeaderboardService(db *gorm.DB) *LeaderboardService {
	return &LeaderboardService{DB: db, Now: func() time.Time { return time.Now().UTC() }}
}

// Submit records a new immutable entry for user.
func (s *LeaderboardService) Submit(ctx context.Context, user *models.User, score int64, mode models.GameMode, duration int64) (*models.LeaderboardEntry, error) {
	if score < 0 || duration < 0 {
		return nil, fmt.Errorf("%w: score and duration must be non-negative", ErrValidation)
	}
	if mode == "" {
		mode = models.GameModeWalls
	}

	entry := &models.LeaderboardEntry{
		ID:          uuid.NewString(),
		UserID:      user.ID,
		Username:    user.Username,
		Score:       score,
		Mode:        mode,
		Duration:    duration,
		SubmittedAt: s.Now(),
	}
	if err := s.DB.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, fmt.Errorf("create leaderboard entry: %w", err)
	}

	slog.InfoContext(ctx, "score submitted", "entry_id", entry.ID, "user_id", user.ID, "score", score, "mode", mode)
	return entry, nil
}

// Top returns the best entries, optionally restricted to one mode.
func (s *LeaderboardService) Top(ctx context.Context, mode *models.GameMode, limit int) ([]models.RankedEntry, error) {
	if err := checkLimit(limit); err != nil {
		return nil, err
	}
	q := s.DB.WithContext(ctx).Model(&models.LeaderboardEntry{})
	if mode != nil {
		q = q.Where("mode = ?", *mode)
	}
	return s.ranked(q, limit)
}

// UserEntries returns one user's entries, ranked among themselves.
func (s *LeaderboardService) UserEntries(ctx context.Context, userID uint, limit int) ([]models.RankedEntry, error) {
	if err := checkLimit(limit); err != nil {
		return nil, err
	}
	q := s.DB.WithContext(ctx).Model(&models.LeaderboardEntry{}).Where("user_id = ?", userID)
	return s.ranked(q, limit)
}

func (s *LeaderboardService) ranked(q *gorm.DB, limit int) ([]models.RankedEntry, error) {
	var entries []models.LeaderboardEntry
	if err := q.Order("score DESC").Order("submitted_at ASC").Limit(limit).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list leaderboard: %w", err)
	}
	return RankEntries(entries), nil
}

// RankEntries assigns positional ranks 1..N to entries already sorted best
// first. Ties do not share a rank.
func RankEntries(entries []models.LeaderboardEntry) []models.RankedEntry {
	out := make([]models.RankedEntry, len(entries))
	for i := range entries {
		e := entries[i]
		out[i] = models.RankedEntry{
			ID:        e.ID,
			Rank:      i + 1,
			UserID:    e.UserID,
			Username:  e.Username,
			Score:     e.Score,
			Mode:      e.Mode,
			Duration:  e.Duration,
			Timestamp: &entries[i].SubmittedAt,
			PlayedAt:  &entries[i].SubmittedAt,
		}
	}
	return out
}

func checkLimit(limit int) error {
	if limit < MinLeaderboardLimit || limit > MaxLeaderboardLimit {
		return fmt.Errorf("%w: limit must be between %d and %d", ErrValidation, MinLeaderboardLimit, MaxLeaderboardLimit)
	}
	return nil
}
