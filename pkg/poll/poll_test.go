package poll

import (
	"context"
	"errors"
	"testing"
	"time"
)

type manualClock struct {
	sleeps []time.Duration
}

func (c *manualClock) Sleep(ctx context.Context, d time.Duration) error {
	c.sleeps = append(c.sleeps, d)
	return ctx.Err()
}

func TestRunStopsWhenDone(t *testing.T) {
	clock := &manualClock{}
	attempts := 0

	err := Run(context.Background(), Policy{MaxAttempts: 10, Interval: time.Second}, clock, func(ctx context.Context) (bool, error) {
		attempts++
		return attempts == 3, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
	if len(clock.sleeps) != 2 {
		t.Errorf("expected 2 sleeps, got %d", len(clock.sleeps))
	}
}

func TestRunExhaustsAttempts(t *testing.T) {
	clock := &manualClock{}
	attempts := 0

	err := Run(context.Background(), Policy{MaxAttempts: 30, Interval: time.Second}, clock, func(ctx context.Context) (bool, error) {
		attempts++
		return false, nil
	})
	if !errors.Is(err, ErrExhausted) {
		t.Fatalf("expected ErrExhausted, got %v", err)
	}
	if attempts != 30 {
		t.Errorf("expected 30 attempts, got %d", attempts)
	}
	// No sleep after the final attempt.
	if len(clock.sleeps) != 29 {
		t.Errorf("expected 29 sleeps, got %d", len(clock.sleeps))
	}
}

func TestRunSoftFailureConsumesAttempt(t *testing.T) {
	clock := &manualClock{}
	attempts := 0

	err := Run(context.Background(), Policy{MaxAttempts: 2, Interval: time.Second}, clock, func(ctx context.Context) (bool, error) {
		attempts++
		return false, errors.New("network down")
	})
	if !errors.Is(err, ErrExhausted) {
		t.Fatalf("expected ErrExhausted, got %v", err)
	}
	if attempts != 2 {
		t.Errorf("expected 2 attempts, got %d", attempts)
	}
}

func TestRunHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Run(ctx, Policy{MaxAttempts: 5, Interval: time.Second}, &manualClock{}, func(ctx context.Context) (bool, error) {
		return false, nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
