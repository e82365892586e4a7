// Package interact routes pointer events from a host window to the
// simulations it shows. A Registry replaces a process-wide list of live
// simulations: hosts add and remove targets explicitly and resize them as
// one.
package interact

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrUnknownTarget = errors.New("interact: unknown target")
	ErrDuplicate     = errors.New("interact: target already registered")
)

// Target is anything that accepts pointer input and resizes with its host.
// *sim.Simulation satisfies it.
type Target interface {
	PointerDown(x, y float64) bool
	PointerMove(x, y float64)
	PointerUp(x, y float64)
	PointerCancel()
	Resize(w, h int)
}

type Kind int

const (
	Down Kind = iota
	Move
	Up
)

func (k Kind) String() string {
	switch k {
	case Down:
		return "down"
	case Move:
		return "move"
	case Up:
		return "up"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Event is one pointer sample in target-local pixels. Touches is the number
// of active touch points, 0 for a mouse.
type Event struct {
	Kind    Kind
	Target  string
	X, Y    float64
	Touches int
}

type Registry struct {
	targets  map[string]Target
	captured string
}

func NewRegistry() *Registry {
	return &Registry{targets: make(map[string]Target)}
}

func (r *Registry) Add(name string, t Target) error {
	if _, ok := r.targets[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicate, name)
	}
	r.targets[name] = t
	return nil
}

// Remove drops a target and any capture it holds.
func (r *Registry) Remove(name string) {
	delete(r.targets, name)
	if r.captured == name {
		r.captured = ""
	}
}

func (r *Registry) Get(name string) (Target, error) {
	t, ok := r.targets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTarget, name)
	}
	return t, nil
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.targets))
	for name := range r.targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) Len() int { return len(r.targets) }

// Captured returns the target currently holding the drag, if any.
func (r *Registry) Captured() string { return r.captured }

// Dispatch routes e. A Down releases any earlier capture, then goes to
// e.Target and captures it when something was grabbed; Move and Up go to the captured target regardless of
// e.Target, and Up releases the capture. Multi-touch events are ignored.
// It reports whether the event was delivered.
func (r *Registry) Dispatch(e Event) (bool, error) {
	if e.Touches > 1 {
		return false, nil
	}

	switch e.Kind {
	case Down:
		t, err := r.Get(e.Target)
		if err != nil {
			return false, err
		}
		r.release()
		if t.PointerDown(e.X, e.Y) {
			r.captured = e.Target
		}
		return true, nil
	case Move, Up:
		if r.captured == "" {
			return false, nil
		}
		t, ok := r.targets[r.captured]
		if !ok {
			r.captured = ""
			return false, nil
		}
		if e.Kind == Move {
			t.PointerMove(e.X, e.Y)
		} else {
			t.PointerUp(e.X, e.Y)
			r.captured = ""
		}
		return true, nil
	}
	return false, fmt.Errorf("interact: unknown event kind %v", e.Kind)
}

// release ends a drag whose Up never arrived. The handle stays where the
// last Move left it.
func (r *Registry) release() {
	if r.captured == "" {
		return
	}
	if t, ok := r.targets[r.captured]; ok {
		t.PointerCancel()
	}
	r.captured = ""
}

// ResizeAll forwards a host resize to every target.
func (r *Registry) ResizeAll(w, h int) {
	for _, t := range r.targets {
		t.Resize(w, h)
	}
}
