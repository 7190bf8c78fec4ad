// workers/scheduler.go
package workers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Job is a unit of periodic background work.
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// Scheduler runs Jobs on fixed intervals. A run that is still going when the
// next tick fires makes that tick skip rather than overlap.
type Scheduler struct {
	sched gocron.Scheduler
	log   *slog.Logger
}

func NewScheduler(log *slog.Logger) (*Scheduler, error) {
	sched, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	return &Scheduler{sched: sched, log: log}, nil
}

// Every registers job to run each interval, starting as soon as the scheduler
// starts.
func (s *Scheduler) Every(interval time.Duration, job Job) error {
	if interval <= 0 {
		return fmt.Errorf("job %s: interval must be positive, got %s", job.Name(), interval)
	}

	_, err := s.sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func(ctx context.Context) {
			start := time.Now()
			if err := job.Run(ctx); err != nil {
				s.log.ErrorContext(ctx, "background job failed", "job", job.Name(), "error", err)
				return
			}
			s.log.DebugContext(ctx, "background job finished", "job", job.Name(), "took", time.Since(start))
		}),
		gocron.WithName(job.Name()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return fmt.Errorf("schedule %s: %w", job.Name(), err)
	}
	s.log.Info("background job scheduled", "job", job.Name(), "interval", interval)
	return nil
}

func (s *Scheduler) Start() {
	s.sched.Start()
}

// Jobs lists the names of the registered jobs.
func (s *Scheduler) Jobs() []string {
	jobs := s.sched.Jobs()
	names := make([]string, 0, len(jobs))
	for _, j := range jobs {
		names = append(names, j.Name())
	}
	return names
}

// Shutdown stops scheduling and waits for running jobs to return.
func (s *Scheduler) Shutdown() error {
	return s.sched.Shutdown()
}
