// Package scheduler fires the daily and weekly mission resets. Triggers are
// at-least-once: a boundary crossed while the process was suspended is
// fired late, and any number of missed periods collapse into one fire.
package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

// Boundary returns the first fire instant strictly after t.
type Boundary func(t time.Time) time.Time

// Trigger runs task at anchor and then at every boundary after it.
type Trigger interface {
	ScheduleRecurring(ctx context.Context, anchor time.Time, next Boundary, task Task) error
}

// TimerTrigger is the in-process Trigger. It polls the wall clock instead of
// sleeping until the due instant, so a suspended machine is noticed on wake up.
type TimerTrigger struct {
	checkInterval time.Duration
	now           func() time.Time
	wg            sync.WaitGroup
}

func NewTimerTrigger(checkInterval time.Duration) *TimerTrigger {
	return newTimerTrigger(checkInterval, time.Now)
}

func newTimerTrigger(checkInterval time.Duration, now func() time.Time) *TimerTrigger {
	if checkInterval <= 0 {
		checkInterval = 30 * time.Second
	}
	return &TimerTrigger{
		checkInterval: checkInterval,
		now:           now,
	}
}

func (t *TimerTrigger) ScheduleRecurring(ctx context.Context, anchor time.Time, next Boundary, task Task) error {
	if next == nil {
		return errors.New("task without boundary func")
	}
	if task.Run == nil {
		return errors.New("task without run func")
	}

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		t.loop(ctx, anchor.Round(0), next, task)
	}()
	return nil
}

// Wait blocks until all scheduled loops stopped after their contexts ended.
func (t *TimerTrigger) Wait() {
	t.wg.Wait()
}

func (t *TimerTrigger) loop(ctx context.Context, due time.Time, boundary Boundary, task Task) {
	ticker := time.NewTicker(t.checkInterval)
	defer ticker.Stop()

	log.Debugf("task [%s] scheduled, first fire at %s", task.Name, due)
	for {
		select {
		case <-ctx.Done():
			log.Debugf("task [%s] unscheduled", task.Name)
			return
		case <-ticker.C:
			// strip the monotonic reading, only wall time survives a suspend
			now := t.now().Round(0)
			if now.Before(due) {
				continue
			}
			if !boundary(due).After(now) {
				log.Warnf("task [%s] missed boundaries since %s, firing once", task.Name, due)
			}
			due = boundary(now)
			if err := task.Run(ctx); err != nil {
				log.Errorf("task [%s] failed: %s", task.Name, err)
			}
		}
	}
}
