package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/levelup/internal/aggregate"

	log "github.com/sirupsen/logrus"
)

type Job struct {
	Name  string
	Every aggregate.Bucketing
	Run   func(ctx context.Context) error
}

// Scheduler runs jobs on local calendar boundaries through a Trigger and
// catches up on a boundary that passed while the process was down.
type Scheduler struct {
	trigger Trigger
	store   LastRunStore
	loc     *time.Location
	now     func() time.Time
}

func New(trigger Trigger, store LastRunStore, loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{
		trigger: trigger,
		store:   store,
		loc:     loc,
		now:     time.Now,
	}
}

func (s *Scheduler) Schedule(ctx context.Context, job Job) error {
	task := Task{
		Name: job.Name,
		Run: func(ctx context.Context) error {
			return s.run(ctx, job)
		},
	}

	now := s.now()
	periodStart, _ := job.Every.Bounds(now, s.loc)
	last, found, err := s.store.LastRun(ctx, job.Name)
	switch {
	case err != nil:
		log.Errorf("job [%s]: cannot check last run, skipping catch-up: %s", job.Name, err)
	case !found:
		if err := s.store.SetLastRun(ctx, job.Name, periodStart); err != nil {
			log.Warnf("job [%s]: record first period: %s", job.Name, err)
		}
	case last.Before(periodStart):
		log.Infof("job [%s]: last ran in period of %s, catching up", job.Name, last.Format(time.DateOnly))
		if err := task.Run(ctx); err != nil {
			log.Errorf("job [%s]: catch-up failed: %s", job.Name, err)
		}
	}

	boundary := DailyBoundary(s.loc)
	if job.Every == aggregate.Weekly {
		boundary = WeeklyBoundary(s.loc)
	}

	if err := s.trigger.ScheduleRecurring(ctx, boundary(now), boundary, task); err != nil {
		return fmt.Errorf("schedule job [%s]: %w", job.Name, err)
	}
	return nil
}

func (s *Scheduler) run(ctx context.Context, job Job) error {
	if err := job.Run(ctx); err != nil {
		return err
	}
	periodStart, _ := job.Every.Bounds(s.now(), s.loc)
	if err := s.store.SetLastRun(ctx, job.Name, periodStart); err != nil {
		log.Warnf("job [%s]: record last run: %s", job.Name, err)
	}
	return nil
}

type Resetter interface {
	ResetDaily(ctx context.Context) error
	ResetWeekly(ctx context.Context) error
}

// ResetJobs returns the daily and weekly mission reset jobs.
func ResetJobs(r Resetter) []Job {
	return []Job{
		{Name: "missions.reset.daily", Every: aggregate.Daily, Run: r.ResetDaily},
		{Name: "missions.reset.weekly", Every: aggregate.Weekly, Run: r.ResetWeekly},
	}
}
