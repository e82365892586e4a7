package desktop

import "github.com/san-kum/wavelab/internal/interact"

// sample is one tick of pointer state, from the mouse or a touch.
type sample struct {
	X, Y                               int
	JustPressed, Pressed, JustReleased bool
	Touches                            int
}

// tracker turns per-tick samples into drag events for one target. Only a
// press starts a drag, so a second finger or a button held from another
// window is not mistaken for one.
type tracker struct {
	target string
	active bool
}

func (t *tracker) event(s sample) (interact.Event, bool) {
	e := interact.Event{Target: t.target, X: float64(s.X), Y: float64(s.Y), Touches: s.Touches}
	switch {
	case s.JustPressed:
		t.active = true
		e.Kind = interact.Down
	case s.JustReleased && t.active:
		t.active = false
		e.Kind = interact.Up
	case s.Pressed && t.active:
		e.Kind = interact.Move
	default:
		return e, false
	}
	return e, true
}
