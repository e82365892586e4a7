package sim

import (
	"github.com/san-kum/wavelab/internal/optics"
	"github.com/san-kum/wavelab/internal/scene"
)

// PointerDown hit-tests (x, y) and starts dragging whatever it grabbed.
// It reports whether a handle was captured.
func (s *Simulation) PointerDown(x, y float64) bool {
	s.drag = s.layout.HitTest(x, y, s.model.Variant() == optics.VariantTwoSource)
	return s.drag != scene.HandleNone
}

// PointerMove drags the captured handle. Positions are clamped by the
// geometry setters; a change marks the scene dirty. The cache survives every
// drag: angle keys ignore the screen and path-difference keys ignore where
// the sources sit.
func (s *Simulation) PointerMove(x, y float64) {
	moved := false
	switch s.drag {
	case scene.HandleScreen:
		moved = s.layout.SetScreenX(x)
	case scene.HandlePointer:
		moved = s.layout.Pointer.SetY(y)
	case scene.HandleSource0, scene.HandleSource1:
		i := 0
		if s.drag == scene.HandleSource1 {
			i = 1
		}
		moved = s.layout.Sources[i].SetPos(x, y)
	default:
		return
	}
	if moved {
		s.state = DirtyFull
	}
}

// PointerUp ends the drag. The release position is applied first.
func (s *Simulation) PointerUp(x, y float64) {
	s.PointerMove(x, y)
	s.drag = scene.HandleNone
}

// PointerCancel drops the drag without applying a final position.
func (s *Simulation) PointerCancel() {
	s.drag = scene.HandleNone
}
