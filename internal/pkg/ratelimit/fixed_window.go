package ratelimit

import (
	"context"
	"errors"
	"time"
)

// ErrLimitExceeded is returned when the current window is exhausted and the
// wait queue is full.
var ErrLimitExceeded = errors.New("rate limit exceeded")

// Config holds fixed-window limiter settings.
type Config struct {
	Limit      int           // Admissions per window
	Window     time.Duration // Window length
	QueueLimit int           // Waiters held over to the next window
}

// FixedWindow admits up to Limit requests per Window. When the window is
// exhausted, up to QueueLimit callers block and are admitted oldest-first
// when the window rolls over; everyone else gets ErrLimitExceeded.
//
// Window boundaries are tracked with time.Time values carrying Go's
// monotonic clock reading, so wall-clock adjustments cannot shrink or
// stretch a window.
type FixedWindow struct {
	cfg Config

	// admission channel serializes all state changes; a single owner
	// goroutine makes over-admission races impossible.
	requests chan waiter
}

type waiter struct {
	admitted chan error
	ctx      context.Context
}

// New creates a fixed-window limiter and starts its owner goroutine. The
// limiter runs until Close is called.
func New(cfg Config) *FixedWindow {
	if cfg.Limit <= 0 {
		cfg.Limit = 1
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Second
	}
	if cfg.QueueLimit < 0 {
		cfg.QueueLimit = 0
	}

	fw := &FixedWindow{
		cfg:      cfg,
		requests: make(chan waiter),
	}
	go fw.run()
	return fw
}

// Acquire blocks until the request is admitted, the queue rejects it, or
// ctx is done. A nil return means the request may proceed.
func (fw *FixedWindow) Acquire(ctx context.Context) error {
	w := waiter{
		admitted: make(chan error, 1),
		ctx:      ctx,
	}

	select {
	case fw.requests <- w:
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-w.admitted:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops the owner goroutine. Pending waiters are rejected.
func (fw *FixedWindow) Close() {
	close(fw.requests)
}

// run owns all limiter state. It counts admissions against the current
// window, parks overflow waiters in arrival order, and drains them when the
// window deadline passes.
func (fw *FixedWindow) run() {
	var (
		count     int
		windowEnd = time.Now().Add(fw.cfg.Window)
		queue     []waiter
	)

	timer := time.NewTimer(fw.cfg.Window)
	defer timer.Stop()

	rollover := func(now time.Time) {
		// Advance past every elapsed window; idle periods may span several.
		for !now.Before(windowEnd) {
			windowEnd = windowEnd.Add(fw.cfg.Window)
		}
		count = 0

		// Admit queued waiters oldest-first.
		for len(queue) > 0 && count < fw.cfg.Limit {
			w := queue[0]
			queue = queue[1:]
			select {
			case <-w.ctx.Done():
				// Caller gave up while parked.
			default:
				w.admitted <- nil
				count++
			}
		}

		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(time.Until(windowEnd))
	}

	for {
		select {
		case now := <-timer.C:
			rollover(now)

		case w, ok := <-fw.requests:
			if !ok {
				for _, parked := range queue {
					parked.admitted <- ErrLimitExceeded
				}
				return
			}

			if now := time.Now(); !now.Before(windowEnd) {
				rollover(now)
			}

			if count < fw.cfg.Limit {
				w.admitted <- nil
				count++
				continue
			}

			// A waiter whose caller gave up must not hold a queue slot.
			live := queue[:0]
			for _, parked := range queue {
				select {
				case <-parked.ctx.Done():
				default:
					live = append(live, parked)
				}
			}
			queue = live

			if len(queue) < fw.cfg.QueueLimit {
				queue = append(queue, w)
			} else {
				w.admitted <- ErrLimitExceeded
			}
		}
	}
}
