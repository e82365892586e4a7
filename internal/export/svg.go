package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/wavelab/internal/sim"
	"github.com/san-kum/wavelab/internal/spectrum"
	"github.com/san-kum/wavelab/internal/surface"
)

// ProfileToSVG plots intensity (0..1) against screen position as a path.
// Positions are mapped to the full width; intensity 1 touches the top.
func ProfileToSVG(ys, is []float64, width, height int, strokeColor string) string {
	if len(ys) < 2 || len(ys) != len(is) {
		return ""
	}

	minX, maxX := ys[0], ys[len(ys)-1]
	rangeX := maxX - minX
	if rangeX == 0 {
		rangeX = 1
	}
	pad := 0.05 * float64(height)
	plotH := float64(height) - 2*pad

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="#333333"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, pad+plotH, width, pad+plotH, strokeColor))

	for i := range ys {
		x := (ys[i] - minX) / rangeX * float64(width)
		y := pad + plotH - clamp01(is[i])*plotH

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

// ScreenToSVG renders what the screen shows as a strip of coloured bars,
// one per column, by replaying the simulation's screen view.
func ScreenToSVG(s *sim.Simulation, width, height int) string {
	rec := surface.NewRecorder(width, height)
	s.RenderScreenView(rec)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#000000"/>
`, width, height, width, height))

	for _, op := range rec.Ops {
		if op.Kind != surface.OpFillRect {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<rect x="%.0f" y="%.0f" width="%.0f" height="%.0f" fill="%s" fill-opacity="%.3f"/>
`, op.X, op.Y, op.W, op.H, spectrum.Hex(op.Color), op.Alpha))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func clamp01(v float64) float64 {
	if v < 0 || v != v {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
