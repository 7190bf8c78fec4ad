package workers

import (
	"context"
	"log/slog"
	"time"
)

// SessionCloser is the part of services.GameService the sweeper needs.
type SessionCloser interface {
	SweepAbandoned(ctx context.Context, maxAge time.Duration) (int64, error)
}

// SessionSweeper closes game sessions whose players never reported an end.
// Without it such a user would keep a stale entry in the spectator list until
// their next start.
type SessionSweeper struct {
	Games  SessionCloser
	MaxAge time.Duration
}

func NewSessionSweeper(games SessionCloser, maxAge time.Duration) *SessionSweeper {
	return &SessionSweeper{Games: games, MaxAge: maxAge}
}

func (w *SessionSweeper) Name() string { return "session-sweeper" }

func (w *SessionSweeper) Run(ctx context.Context) error {
	closed, err := w.Games.SweepAbandoned(ctx, w.MaxAge)
	if err != nil {
		return err
	}
	if closed > 0 {
		slog.InfoContext(ctx, "closed abandoned game sessions", "count", closed, "max_age", w.MaxAge)
	}
	return nil
}
