package loop

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fakeClock fires every timer immediately and records the requested delays.
type fakeClock struct {
	waits []time.Duration
}

func (c *fakeClock) After(d time.Duration) <-chan time.Time {
	c.waits = append(c.waits, d)
	ch := make(chan time.Time, 1)
	ch <- time.Time{}
	return ch
}

func TestInterval(t *testing.T) {
	tests := []struct {
		fps  int
		want time.Duration
	}{
		{60, time.Second / 60},
		{30, time.Second / 30},
		{0, time.Second / 60},
		{-5, time.Second / 60},
	}

	for _, tt := range tests {
		if got := Interval(tt.fps); got != tt.want {
			t.Errorf("Interval(%d) = %v, want %v", tt.fps, got, tt.want)
		}
	}
}

func TestPacer_StopsWhenStepReturnsFalse(t *testing.T) {
	clock := &fakeClock{}
	frames := 0
	var order []string

	p := &Pacer{
		Interval: Interval(60),
		Clock:    clock,
		NextFrame: func(ctx context.Context) error {
			order = append(order, "frame")
			return nil
		},
	}

	err := p.Run(context.Background(), func() bool {
		order = append(order, "step")
		frames++
		return frames < 3
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if frames != 3 {
		t.Errorf("frames = %d, want 3", frames)
	}
	if len(clock.waits) != 3 || clock.waits[0] != time.Second/60 {
		t.Errorf("waits = %v", clock.waits)
	}
	want := []string{"frame", "step", "frame", "step", "frame", "step"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestPacer_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := &Pacer{Interval: time.Hour, Clock: SystemClock{}}
	called := false
	err := p.Run(ctx, func() bool { called = true; return true })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if called {
		t.Error("step ran after cancellation")
	}
}

func TestPacer_NextFrameError(t *testing.T) {
	boom := errors.New("closed")
	p := &Pacer{
		Clock:     &fakeClock{},
		NextFrame: func(context.Context) error { return boom },
	}
	if err := p.Run(context.Background(), func() bool { return true }); !errors.Is(err, boom) {
		t.Errorf("err = %v, want %v", err, boom)
	}
}

func TestSteps(t *testing.T) {
	n := 0
	Steps(7, func() { n++ })
	if n != 7 {
		t.Errorf("n = %d, want 7", n)
	}
}
