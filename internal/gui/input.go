package gui

import (
	"fmt"

	"github.com/san-kum/wavelab/internal/interact"
	"github.com/san-kum/wavelab/internal/optics"
)

const boostFactor = 4.0

var variantCycle = []optics.Variant{
	optics.VariantSingleSlit,
	optics.VariantDoubleSlit,
	optics.VariantNSlit,
	optics.VariantTwoSource,
}

type buttons struct {
	pressed, down, released bool
}

// pointerEvent turns one frame of left-button state into a bench event.
// Motion without the button held is not reported.
func pointerEvent(b buttons, x, y float32, touches int) (interact.Event, bool) {
	e := interact.Event{Target: benchTarget, X: float64(x), Y: float64(y), Touches: touches}
	switch {
	case b.pressed:
		e.Kind = interact.Down
	case b.released:
		e.Kind = interact.Up
	case b.down:
		e.Kind = interact.Move
	default:
		return e, false
	}
	return e, true
}

// nudge steps one parameter: the slit count by one (five when coarse),
// everything else by 5% (25% when coarse).
func nudge(p optics.Params, key string, dir int, coarse bool) (optics.Params, error) {
	v, ok := p.Get()[key]
	if !ok {
		return p, fmt.Errorf("%w: %s", optics.ErrUnknownParam, key)
	}
	if key == "slits" {
		step := 1.0
		if coarse {
			step = 5
		}
		v += float64(dir) * step
	} else {
		f := 0.05
		if coarse {
			f = 0.25
		}
		v *= 1 + float64(dir)*f
	}
	err := p.Set(key, v)
	return p, err
}

func nextVariant(v optics.Variant) optics.Variant {
	for i, c := range variantCycle {
		if c == v {
			return variantCycle[(i+1)%len(variantCycle)]
		}
	}
	return variantCycle[0]
}

func wrap(i, n int) int {
	if n == 0 {
		return 0
	}
	return ((i % n) + n) % n
}

func formatValue(key string, v float64) string {
	switch key {
	case "wavelength":
		return fmt.Sprintf("%.0f nm", v*1e9)
	case "width", "separation":
		return fmt.Sprintf("%.1f µm", v*1e6)
	case "slits":
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}
