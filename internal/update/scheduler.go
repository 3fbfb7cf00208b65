package update

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/sirupsen/logrus"
)

// Scheduler fires the automatic update once per day at a fixed wall-clock
// time in the configured zone. The zone is pinned so the trigger tracks the
// market-close convention regardless of where the host runs.
type Scheduler struct {
	dailyAt  string
	timezone string
	// -----
	sched gocron.Scheduler
}

func (s *Scheduler) Start(ctx context.Context, onTick func()) error {
	loc, err := time.LoadLocation(s.timezone)
	if err != nil {
		return fmt.Errorf("invalid scheduler timezone %q: %w", s.timezone, err)
	}

	var hour, minute uint
	if _, err = fmt.Sscanf(s.dailyAt, "%d:%d", &hour, &minute); err != nil || hour > 23 || minute > 59 {
		return fmt.Errorf("invalid scheduler trigger time %q", s.dailyAt)
	}

	scheduler, err := gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		return err
	}
	s.sched = scheduler

	_, err = scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(hour, minute, 0))),
		gocron.NewTask(onTick),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}

	scheduler.Start()

	// Stop scheduler when the provided context is canceled.
	go func() {
		<-ctx.Done()
		if sdErr := s.Shutdown(); sdErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", sdErr)
		}
	}()
	return nil
}

// Shutdown is idempotent and safe to call even if Start never succeeded.
func (s *Scheduler) Shutdown() error {
	if s.sched == nil {
		return nil
	}
	err := s.sched.Shutdown()
	s.sched = nil
	return err
}

func NewScheduler(dailyAt string, timezone string) *Scheduler {
	return &Scheduler{dailyAt: dailyAt, timezone: timezone}
}
