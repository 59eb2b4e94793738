// Package scheduler drives the daily fire cycle at a fixed local time.
package scheduler

import (
	"context"
	"log/slog"
	"time"
)

// Dispatcher runs one fire cycle for the given fire instant.
type Dispatcher interface {
	Dispatch(ctx context.Context, at time.Time)
}

// Scheduler wakes once per day at the configured wall-clock time in the
// configured timezone and triggers a dispatch cycle. Cycles never overlap:
// the next fire instant is only computed after the current cycle returns.
type Scheduler struct {
	dispatcher Dispatcher
	log        *slog.Logger
	hour       int
	minute     int
	loc        *time.Location
}

// New creates a Scheduler firing daily at hour:minute in loc.
func New(d Dispatcher, hour, minute int, loc *time.Location, log *slog.Logger) *Scheduler {
	return &Scheduler{
		dispatcher: d,
		log:        log,
		hour:       hour,
		minute:     minute,
		loc:        loc,
	}
}

// NextFire returns the next occurrence of hour:minute in loc strictly after
// now: today's instant if it is still ahead, otherwise tomorrow's. The
// offset is recomputed per occurrence through time.Date, so DST transitions
// are handled by the zone's own rules; an instant skipped by a transition
// renormalizes to the nearest later valid time the same day.
//
// A fire time that passed while the process was down is never replayed:
// scheduling is fixed-time, not catch-up.
func NextFire(now time.Time, hour, minute int, loc *time.Location) time.Time {
	local := now.In(loc)
	next := time.Date(local.Year(), local.Month(), local.Day(), hour, minute, 0, 0, loc)
	if !next.After(now) {
		next = time.Date(local.Year(), local.Month(), local.Day()+1, hour, minute, 0, 0, loc)
	}
	return next
}

// Run starts the scheduler loop, blocking until ctx is cancelled. A fire
// cycle in progress when ctx is cancelled runs to completion.
func (s *Scheduler) Run(ctx context.Context) {
	for {
		next := NextFire(time.Now(), s.hour, s.minute, s.loc)
		s.log.Info("next fire scheduled", "at", next.Format(time.RFC3339))

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		// Shutdown must not cut the fan-out short, so the cycle runs
		// detached from the run context.
		s.dispatcher.Dispatch(context.WithoutCancel(ctx), next)
	}
}
