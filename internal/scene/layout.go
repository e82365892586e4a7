package scene

// Fractions place the primitives relative to the canvas size.
type Fractions struct {
	SlitX      float64
	ScreenMin  float64
	ScreenMax  float64
	ScreenInit float64
	PointerMin float64
	PointerMax float64
	SourceXMin float64
	SourceXMax float64
	SourceYMin float64
	SourceYMax float64
}

var DefaultFractions = Fractions{
	SlitX:      0.15,
	ScreenMin:  0.30,
	ScreenMax:  0.85,
	ScreenInit: 0.70,
	PointerMin: 0.05,
	PointerMax: 0.95,
	SourceXMin: 0.05,
	SourceXMax: 0.45,
	SourceYMin: 0.10,
	SourceYMax: 0.90,
}

const (
	screenWidthPx  = 6
	pointerRadius  = 8
	sourceRadius   = 7
	slitOpeningPx  = 4
	slitGapPx      = 10
	sourceSpreadPx = 0.08
)

// Layout is the bench geometry for one canvas.
type Layout struct {
	W, H    int
	Frac    Fractions
	Slit    Slit
	Screen  Screen
	Pointer Pointer
	Sources [2]Source
}

func NewLayout(w, h int) *Layout {
	return NewLayoutWith(w, h, DefaultFractions)
}

func NewLayoutWith(w, h int, f Fractions) *Layout {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	l := &Layout{W: w, H: h, Frac: f}
	fw, fh := float64(w), float64(h)

	l.Slit = Slit{
		X:       f.SlitX * fw,
		Y:       fh / 2,
		Height:  fh,
		Count:   1,
		WidthPx: slitOpeningPx,
		GapPx:   slitGapPx,
	}
	l.applyBounds()
	l.Screen.SetX(f.ScreenInit * fw)
	l.Pointer.X = l.Screen.X
	l.Pointer.SetY(fh / 2)

	cx := (f.SourceXMin + f.SourceXMax) / 2 * fw
	l.Sources[0].SetPos(cx, fh*(0.5-sourceSpreadPx))
	l.Sources[1].SetPos(cx, fh*(0.5+sourceSpreadPx))
	return l
}

func (l *Layout) applyBounds() {
	fw, fh := float64(l.W), float64(l.H)
	f := l.Frac

	l.Screen.Top, l.Screen.Bottom = 0, fh
	l.Screen.Width = screenWidthPx
	l.Screen.XBounds = Bounds{f.ScreenMin * fw, f.ScreenMax * fw}

	l.Pointer.Radius = pointerRadius
	l.Pointer.YBounds = Bounds{f.PointerMin * fh, f.PointerMax * fh}

	for i := range l.Sources {
		l.Sources[i].Radius = sourceRadius
		l.Sources[i].XBounds = Bounds{f.SourceXMin * fw, f.SourceXMax * fw}
		l.Sources[i].YBounds = Bounds{f.SourceYMin * fh, f.SourceYMax * fh}
	}
}

// SetScreenX moves the screen and keeps the pointer riding on it.
func (l *Layout) SetScreenX(x float64) bool {
	moved := l.Screen.SetX(x)
	l.Pointer.X = l.Screen.X
	return moved
}

// Resize keeps every primitive at the same relative position on the new
// canvas and re-clamps it to the new bounds.
func (l *Layout) Resize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	sx := float64(w) / float64(l.W)
	sy := float64(h) / float64(l.H)

	screenX, pointerY := l.Screen.X*sx, l.Pointer.Y*sy
	var src [2][2]float64
	for i, s := range l.Sources {
		src[i] = [2]float64{s.X * sx, s.Y * sy}
	}

	l.W, l.H = w, h
	l.Slit.X = l.Frac.SlitX * float64(w)
	l.Slit.Y = float64(h) / 2
	l.Slit.Height = float64(h)
	l.applyBounds()
	l.SetScreenX(screenX)
	l.Pointer.SetY(pointerY)
	for i := range l.Sources {
		l.Sources[i].SetPos(src[i][0], src[i][1])
	}
}

// Handle names what a pointer-down grabbed.
type Handle int

const (
	HandleNone Handle = iota
	HandleScreen
	HandlePointer
	HandleSource0
	HandleSource1
)

func (h Handle) String() string {
	switch h {
	case HandleScreen:
		return "screen"
	case HandlePointer:
		return "pointer"
	case HandleSource0:
		return "source0"
	case HandleSource1:
		return "source1"
	}
	return "none"
}

// HitTest returns the handle under (x, y). Sources are only considered when
// withSources is set. Small handles win over the screen bar they sit on.
func (l *Layout) HitTest(x, y float64, withSources bool) Handle {
	if withSources {
		if l.Sources[0].Hit(x, y) {
			return HandleSource0
		}
		if l.Sources[1].Hit(x, y) {
			return HandleSource1
		}
	}
	if l.Pointer.Hit(x, y) {
		return HandlePointer
	}
	if l.Screen.Hit(x, y) {
		return HandleScreen
	}
	return HandleNone
}
