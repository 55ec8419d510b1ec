// Package widget hosts one mounted watch face: it reads the host clock at
// mount, owns the ClockTime while its scheduler runs, and publishes a
// rendered frame to subscribers after every update.
package widget

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aelexs/watchface/internal/domain"
	"github.com/aelexs/watchface/internal/observability"
	"github.com/aelexs/watchface/internal/scheduler"
	"github.com/aelexs/watchface/internal/watchface"
)

// Options tunes a mounted widget. Zero values are usable.
type Options struct {
	Logger   *slog.Logger
	Metrics  *observability.WidgetMetrics
	Interval time.Duration // zero means domain.TickInterval
	Align    bool
}

// Widget is one mounted face.
type Widget struct {
	id    string
	face  *watchface.Face
	clock domain.Clock
	opts  Options

	mu      sync.RWMutex
	current watchface.Frame
	subs    map[*Subscription]struct{}
	done    bool
}

// Mount reads clock once and renders the first frame.
func Mount(clock domain.Clock, face *watchface.Face, opts Options) *Widget {
	if clock == nil {
		clock = domain.RealClock{}
	}
	if opts.Logger == nil {
		opts.Logger = observability.Discard()
	}
	if opts.Interval <= 0 {
		opts.Interval = domain.TickInterval
	}

	w := &Widget{
		id:    uuid.NewString(),
		face:  face,
		clock: clock,
		opts:  opts,
		subs:  make(map[*Subscription]struct{}),
	}
	w.opts.Logger = opts.Logger.With(slog.String("widget_id", w.id))
	w.current = face.Frame(watchface.FromWallClock(clock.Now(), face.Style().Motion))
	return w
}

// ID returns the widget's instance id.
func (w *Widget) ID() string { return w.id }

// Face returns the mounted face.
func (w *Widget) Face() *watchface.Face { return w.face }

// Interval returns the seconds-field tick period.
func (w *Widget) Interval() time.Duration { return w.opts.Interval }

// Current returns the latest frame.
func (w *Widget) Current() watchface.Frame {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// Run advances the face until ctx is cancelled, then closes every
// subscription. Returning is the unmount.
func (w *Widget) Run(ctx context.Context) error {
	style := w.face.Style()
	w.opts.Metrics.Mounted(ctx, style.Name)
	w.opts.Metrics.Frame(ctx, style.Name, len(w.Current().Primitives), false)
	w.opts.Logger.InfoContext(ctx, "widget mounted",
		slog.String("preset", style.Name),
		slog.String("motion", style.Motion.String()),
		slog.String("schedule", style.Schedule.String()),
		slog.String("time", w.Current().Time.String()),
	)

	last, err := scheduler.Run(ctx, scheduler.Params{
		Schedule: style.Schedule,
		Motion:   style.Motion,
		Interval: w.opts.Interval,
		Start:    w.Current().Time,
		Align:    w.opts.Align,
		Clock:    w.clock,
		Emit: func(t watchface.ClockTime) {
			frame := w.face.Frame(t)
			w.publish(frame)
			w.opts.Metrics.Frame(ctx, style.Name, len(frame.Primitives), true)
		},
	})

	w.closeSubscriptions()
	// ctx is already cancelled here; record against a fresh one.
	w.opts.Metrics.Unmounted(context.WithoutCancel(ctx), style.Name)
	w.opts.Logger.InfoContext(ctx, "widget unmounted", slog.String("time", last.String()))
	return err
}

// Subscribe returns a feed of frames published after the call. Slow
// readers lose the oldest frames, never block the widget.
func (w *Widget) Subscribe() *Subscription {
	s := &Subscription{w: w, ch: make(chan watchface.Frame, domain.FrameBufferSize)}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.done {
		close(s.ch)
		return s
	}
	w.subs[s] = struct{}{}
	return s
}

func (w *Widget) publish(f watchface.Frame) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.current = f
	for s := range w.subs {
		s.offer(f)
	}
}

func (w *Widget) closeSubscriptions() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.done = true
	for s := range w.subs {
		close(s.ch)
		delete(w.subs, s)
	}
}

// Subscription is one reader's frame feed.
type Subscription struct {
	w       *Widget
	ch      chan watchface.Frame
	dropped int
}

// Frames is closed when the widget unmounts or the subscription is
// closed.
func (s *Subscription) Frames() <-chan watchface.Frame { return s.ch }

// Dropped counts frames discarded because the reader fell behind.
func (s *Subscription) Dropped() int {
	s.w.mu.RLock()
	defer s.w.mu.RUnlock()
	return s.dropped
}

// Close stops delivery. It is safe to call more than once.
func (s *Subscription) Close() {
	s.w.mu.Lock()
	defer s.w.mu.Unlock()
	if _, ok := s.w.subs[s]; !ok {
		return
	}
	delete(s.w.subs, s)
	close(s.ch)
}

// offer must hold w.mu. The newest frame always wins.
func (s *Subscription) offer(f watchface.Frame) {
	for {
		select {
		case s.ch <- f:
			return
		default:
		}
		select {
		case <-s.ch:
			s.dropped++
		default:
		}
	}
}
