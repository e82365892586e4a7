package surface

import (
	"fmt"
	"image/color"
)

type OpKind int

const (
	OpFillRect OpKind = iota
	OpClearRect
	OpLine
	OpPolyline
	OpCircle
	OpText
)

func (k OpKind) String() string {
	switch k {
	case OpFillRect:
		return "fill"
	case OpClearRect:
		return "clear"
	case OpLine:
		return "line"
	case OpPolyline:
		return "polyline"
	case OpCircle:
		return "circle"
	case OpText:
		return "text"
	}
	return fmt.Sprintf("op(%d)", int(k))
}

// Op is one recorded drawing call. Alpha is the effective global alpha.
type Op struct {
	Kind       OpKind
	X, Y, W, H float64
	Color      color.RGBA
	Alpha      float64
	Text       string
	Points     int
}

// Recorder is a Surface that keeps a log of every call.
type Recorder struct {
	AlphaStack
	W, H int
	Ops  []Op
}

func NewRecorder(w, h int) *Recorder {
	return &Recorder{W: w, H: h}
}

func (r *Recorder) Size() (int, int) { return r.W, r.H }

func (r *Recorder) record(op Op) {
	op.Alpha = r.Alpha()
	r.Ops = append(r.Ops, op)
}

func (r *Recorder) FillRect(x, y, w, h float64, c color.RGBA) {
	r.record(Op{Kind: OpFillRect, X: x, Y: y, W: w, H: h, Color: c})
}

func (r *Recorder) ClearRect(x, y, w, h float64) {
	r.record(Op{Kind: OpClearRect, X: x, Y: y, W: w, H: h})
}

func (r *Recorder) Line(x0, y0, x1, y1, width float64, c color.RGBA) {
	r.record(Op{Kind: OpLine, X: x0, Y: y0, W: x1 - x0, H: y1 - y0, Color: c})
}

func (r *Recorder) Polyline(pts []Point, width float64, c color.RGBA) {
	r.record(Op{Kind: OpPolyline, Color: c, Points: len(pts)})
}

func (r *Recorder) Circle(cx, cy, rad float64, fill bool, c color.RGBA) {
	r.record(Op{Kind: OpCircle, X: cx, Y: cy, W: rad, H: rad, Color: c})
}

func (r *Recorder) Text(x, y float64, s string, c color.RGBA) {
	r.record(Op{Kind: OpText, X: x, Y: y, Color: c, Text: s})
}

// Count returns how many ops of kind k were recorded.
func (r *Recorder) Count(k OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == k {
			n++
		}
	}
	return n
}

func (r *Recorder) Reset() { r.Ops = r.Ops[:0] }
