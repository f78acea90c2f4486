package cron

import (
	"context"
	"time"

	"github.com/cleandash/scheduler-backend-go/internal/domain/shift"
)

// HorizonJobs keeps every active recurring schedule generated out to the
// rolling horizon, independent of anyone loading the scheduler page.
type HorizonJobs struct {
	recurrenceService shift.RecurrenceService
	interval          time.Duration
}

func NewHorizonJobs(recurrenceService shift.RecurrenceService, interval time.Duration) *HorizonJobs {
	return &HorizonJobs{
		recurrenceService: recurrenceService,
		interval:          interval,
	}
}

func (j *HorizonJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("extend_schedule_horizon", j.interval, j.ExtendScheduleHorizon)
}

func (j *HorizonJobs) ExtendScheduleHorizon(ctx context.Context) error {
	return j.recurrenceService.ExtendAll(ctx, time.Now())
}
