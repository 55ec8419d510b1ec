// Package scheduler drives a watch face's ClockTime from periodic ticks.
//
// Run owns the time value for as long as its context lives. Every update
// happens on Run's goroutine and is handed to Emit in order; cancelling the
// context stops all tickers before Run returns.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/aelexs/watchface/internal/domain"
	"github.com/aelexs/watchface/internal/watchface"
)

// Params configures one scheduler run.
type Params struct {
	Schedule watchface.Schedule
	Motion   watchface.Motion

	// Interval is the seconds-field period. Per-field schedules derive the
	// minute and hour periods as 60× and 3600× Interval. Zero means
	// domain.TickInterval.
	Interval time.Duration

	// Start is the time shown before the first tick.
	Start watchface.ClockTime

	// Emit receives each new time. It is called from Run's goroutine only.
	Emit func(watchface.ClockTime)

	// Align delays the first tick to the next Interval boundary of Clock.
	Align bool
	Clock domain.Clock
}

func (p Params) interval() time.Duration {
	if p.Interval <= 0 {
		return domain.TickInterval
	}
	return p.Interval
}

// Run ticks until ctx is cancelled and returns the last emitted time. A
// cancelled context is a normal unmount, not an error.
func Run(ctx context.Context, p Params) (watchface.ClockTime, error) {
	if p.Emit == nil {
		p.Emit = func(watchface.ClockTime) {}
	}
	if p.Align {
		if err := align(ctx, p.Clock, p.interval()); err != nil {
			return p.Start, nil
		}
	}

	switch p.Schedule {
	case watchface.ScheduleUnified:
		return runUnified(ctx, p), nil
	case watchface.SchedulePerField:
		return runPerField(ctx, p)
	default:
		return p.Start, fmt.Errorf("%w: %v", domain.ErrInvalidSchedule, p.Schedule)
	}
}

func runUnified(ctx context.Context, p Params) watchface.ClockTime {
	ticker := time.NewTicker(p.interval())
	defer ticker.Stop()

	t := p.Start
	for {
		select {
		case <-ctx.Done():
			return t
		case <-ticker.C:
			t = watchface.Advance(t, p.Motion)
			p.Emit(t)
		}
	}
}

// runPerField runs one ticker goroutine per field. Tickers only signal
// which field is due; the time value itself is updated here, so there is a
// single writer.
func runPerField(ctx context.Context, p Params) (watchface.ClockTime, error) {
	base := p.interval()
	periods := []struct {
		field watchface.Field
		every time.Duration
	}{
		{watchface.FieldSecond, base},
		{watchface.FieldMinute, base * watchface.SecondsPerMinute},
		{watchface.FieldHour, base * watchface.SecondsPerMinute * watchface.MinutesPerHour},
	}

	g, gctx := errgroup.WithContext(ctx)
	due := make(chan watchface.Field)
	for _, period := range periods {
		g.Go(func() error {
			ticker := time.NewTicker(period.every)
			defer ticker.Stop()
			for {
				select {
				case <-gctx.Done():
					return nil
				case <-ticker.C:
					select {
					case due <- period.field:
					case <-gctx.Done():
						return nil
					}
				}
			}
		})
	}

	t := p.Start
	for {
		select {
		case <-gctx.Done():
			return t, g.Wait()
		case f := <-due:
			t = watchface.AdvanceField(t, f)
			p.Emit(t)
		}
	}
}

// align sleeps until the next multiple of every on c.
func align(ctx context.Context, c domain.Clock, every time.Duration) error {
	if c == nil {
		c = domain.RealClock{}
	}
	now := c.Now()
	wait := now.Truncate(every).Add(every).Sub(now)
	if wait <= 0 || wait >= every {
		return nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
