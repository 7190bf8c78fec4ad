package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path"
	"time"

	"snake-arena/models"
)

// SnapshotSize is the number of entries in each published leaderboard.
const SnapshotSize = 100

// LeaderboardReader is the part of services.LeaderboardService the publisher
// reads from.
type LeaderboardReader interface {
	Top(ctx context.Context, mode *models.GameMode, limit int) ([]models.RankedEntry, error)
}

// ObjectStore stores published files. utils.R2Client implements it.
type ObjectStore interface {
	PutObject(ctx context.Context, key, contentType string, body []byte) (string, error)
}

// Snapshot is the JSON document written for one leaderboard.
type Snapshot struct {
	Mode        string               `json:"mode"`
	GeneratedAt time.Time            `json:"generated_at"`
	Entries     []models.RankedEntry `json:"entries"`
}

// LeaderboardPublisher uploads the top scores of every game mode, plus the
// combined board under "all", as static JSON files.
type LeaderboardPublisher struct {
	Board  LeaderboardReader
	Store  ObjectStore
	Prefix string
	Now    func() time.Time
}

func NewLeaderboardPublisher(board LeaderboardReader, store ObjectStore, prefix string) *LeaderboardPublisher {
	return &LeaderboardPublisher{
		Board:  board,
		Store:  store,
		Prefix: prefix,
		Now:    func() time.Time { return time.Now().UTC() },
	}
}

func (w *LeaderboardPublisher) Name() string { return "leaderboard-publisher" }

func (w *LeaderboardPublisher) Run(ctx context.Context) error {
	if err := w.publish(ctx, "all", nil); err != nil {
		return err
	}
	for _, mode := range models.GameModes {
		if err := w.publish(ctx, string(mode), &mode); err != nil {
			return err
		}
	}
	return nil
}

func (w *LeaderboardPublisher) publish(ctx context.Context, name string, mode *models.GameMode) error {
	entries, err := w.Board.Top(ctx, mode, SnapshotSize)
	if err != nil {
		return fmt.Errorf("read %s leaderboard: %w", name, err)
	}

	body, err := json.Marshal(Snapshot{Mode: name, GeneratedAt: w.Now(), Entries: entries})
	if err != nil {
		return fmt.Errorf("encode %s snapshot: %w", name, err)
	}

	key := path.Join(w.Prefix, name+".json")
	url, err := w.Store.PutObject(ctx, key, "application/json", body)
	if err != nil {
		return err
	}
	slog.DebugContext(ctx, "leaderboard snapshot published", "mode", name, "entries", len(entries), "url", url)
	return nil
}
