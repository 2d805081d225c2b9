package poll

import (
	"context"
	"errors"
	"time"
)

// ErrExhausted is returned when the attempt budget runs out before the
// check reports a terminal result.
var ErrExhausted = errors.New("poll: attempts exhausted")

// Policy describes how long to keep polling.
type Policy struct {
	MaxAttempts int
	Interval    time.Duration
}

// Clock abstracts the wait between attempts so tests can run without timers.
type Clock interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// RealClock waits on the wall clock.
type RealClock struct{}

func (RealClock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Check inspects the polled resource once. It returns true when a terminal
// result was reached. A non-nil error is a soft failure: it consumes the
// attempt and polling continues.
type Check func(ctx context.Context) (done bool, err error)

// Run repeats check until it reports done, the policy is exhausted, or the
// context is cancelled. Soft failures from check are never returned.
func Run(ctx context.Context, p Policy, clock Clock, check Check) error {
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		done, _ := check(ctx)
		if done {
			return nil
		}
		if attempt == p.MaxAttempts {
			break
		}
		if err := clock.Sleep(ctx, p.Interval); err != nil {
			return err
		}
	}
	return ErrExhausted
}
