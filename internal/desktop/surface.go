package desktop

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/san-kum/wavelab/internal/surface"
)

// debugGlyphH is the height of ebitenutil's debug font.
const debugGlyphH = 16

// Surface draws onto an offscreen ebiten image that persists across ticks.
type Surface struct {
	surface.AlphaStack
	Img        *ebiten.Image
	Background color.RGBA
}

var _ surface.Surface = (*Surface)(nil)

func NewSurface(w, h int, bg color.RGBA) *Surface {
	s := &Surface{Background: bg}
	s.Resize(w, h)
	return s
}

// Resize swaps in a blank image of the new size.
func (s *Surface) Resize(w, h int) {
	if s.Img != nil {
		s.Img.Deallocate()
	}
	s.Img = ebiten.NewImage(max(w, 1), max(h, 1))
	s.Img.Fill(s.Background)
}

func (s *Surface) Size() (int, int) {
	b := s.Img.Bounds()
	return b.Dx(), b.Dy()
}

func (s *Surface) color(c color.RGBA) color.Color {
	c = s.Apply(c)
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func (s *Surface) FillRect(x, y, w, h float64, c color.RGBA) {
	vector.DrawFilledRect(s.Img, float32(x), float32(y), float32(w), float32(h), s.color(c), false)
}

func (s *Surface) ClearRect(x, y, w, h float64) {
	r := image.Rect(int(x), int(y), int(x+w+0.999), int(y+h+0.999)).Intersect(s.Img.Bounds())
	if r.Empty() {
		return
	}
	s.Img.SubImage(r).(*ebiten.Image).Fill(s.Background)
}

func (s *Surface) Line(x0, y0, x1, y1, width float64, c color.RGBA) {
	vector.StrokeLine(s.Img, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), s.color(c), true)
}

func (s *Surface) Polyline(pts []surface.Point, width float64, c color.RGBA) {
	col := s.color(c)
	for i := 1; i < len(pts); i++ {
		vector.StrokeLine(s.Img, float32(pts[i-1].X), float32(pts[i-1].Y), float32(pts[i].X), float32(pts[i].Y), float32(width), col, true)
	}
}

func (s *Surface) Circle(cx, cy, r float64, fill bool, c color.RGBA) {
	if fill {
		vector.DrawFilledCircle(s.Img, float32(cx), float32(cy), float32(r), s.color(c), true)
		return
	}
	vector.StrokeCircle(s.Img, float32(cx), float32(cy), float32(r), 1, s.color(c), true)
}

// Text draws s with its baseline at y in the debug font, which ignores the
// colour.
func (s *Surface) Text(x, y float64, text string, _ color.RGBA) {
	ebitenutil.DebugPrintAt(s.Img, text, int(x), int(y)-debugGlyphH)
}
