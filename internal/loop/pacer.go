// Package loop paces a frame callback at a fixed rate: each frame waits for
// a timer of one interval, then for the host's next-frame signal, then
// steps. Simulated time is advanced by the callback, not by the pacer, so a
// slow host slows the animation rather than skipping it.
package loop

import (
	"context"
	"time"
)

const DefaultFPS = 60

// Clock abstracts timers so tests can drive the pacer deterministically.
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

type SystemClock struct{}

func (SystemClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// Interval returns the frame interval for fps frames per second. Non-positive
// rates fall back to DefaultFPS.
func Interval(fps int) time.Duration {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return time.Second / time.Duration(fps)
}

type Pacer struct {
	Interval time.Duration
	Clock    Clock

	// NextFrame blocks until the host is ready to draw. Nil means ready
	// immediately.
	NextFrame func(ctx context.Context) error
}

func NewPacer(fps int) *Pacer {
	return &Pacer{Interval: Interval(fps), Clock: SystemClock{}}
}

// Run calls step once per frame until step returns false or ctx is done.
func (p *Pacer) Run(ctx context.Context, step func() bool) error {
	clock := p.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	interval := p.Interval
	if interval <= 0 {
		interval = Interval(DefaultFPS)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-clock.After(interval):
		}

		if p.NextFrame != nil {
			if err := p.NextFrame(ctx); err != nil {
				return err
			}
		}

		if !step() {
			return nil
		}
	}
}

// Steps runs step exactly n times without waiting, for headless rendering.
func Steps(n int, step func()) {
	for i := 0; i < n; i++ {
		step()
	}
}
