package gui

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/wavelab/internal/surface"
)

const fontSize = 14

// Surface draws onto a raylib render texture. Calls must happen between
// Begin and End; the texture keeps its contents across frames so the
// simulation can redraw only what changed.
type Surface struct {
	surface.AlphaStack
	Target     rl.RenderTexture2D
	Font       rl.Font
	Background rl.Color
	w, h       int
}

var _ surface.Surface = (*Surface)(nil)

func NewSurface(w, h int, font rl.Font) *Surface {
	s := &Surface{Font: font, Background: ColBg}
	s.Resize(w, h)
	return s
}

// Resize replaces the render texture with a blank one of the new size.
func (s *Surface) Resize(w, h int) {
	if s.w > 0 {
		rl.UnloadRenderTexture(s.Target)
	}
	s.w, s.h = max(w, 1), max(h, 1)
	s.Target = rl.LoadRenderTexture(int32(s.w), int32(s.h))
	s.Begin()
	rl.ClearBackground(s.Background)
	s.End()
}

func (s *Surface) Unload() {
	if s.w > 0 {
		rl.UnloadRenderTexture(s.Target)
		s.w, s.h = 0, 0
	}
}

func (s *Surface) Begin() { rl.BeginTextureMode(s.Target) }
func (s *Surface) End()   { rl.EndTextureMode() }

// Blit draws the texture at (x, y). Render textures are stored upside
// down, hence the negative source height.
func (s *Surface) Blit(x, y float32) {
	src := rl.NewRectangle(0, 0, float32(s.w), -float32(s.h))
	rl.DrawTextureRec(s.Target.Texture, src, rl.NewVector2(x, y), rl.White)
}

func (s *Surface) Size() (int, int) { return s.w, s.h }

func (s *Surface) color(c color.RGBA) rl.Color {
	c = s.Apply(c)
	return rl.NewColor(c.R, c.G, c.B, c.A)
}

func (s *Surface) FillRect(x, y, w, h float64, c color.RGBA) {
	rl.DrawRectangleRec(rl.NewRectangle(float32(x), float32(y), float32(w), float32(h)), s.color(c))
}

// ClearRect paints the background opaquely; raylib has no partial clear.
func (s *Surface) ClearRect(x, y, w, h float64) {
	rl.DrawRectangleRec(rl.NewRectangle(float32(x), float32(y), float32(w), float32(h)), s.Background)
}

func (s *Surface) Line(x0, y0, x1, y1, width float64, c color.RGBA) {
	rl.DrawLineEx(vec(x0, y0), vec(x1, y1), float32(width), s.color(c))
}

func (s *Surface) Polyline(pts []surface.Point, width float64, c color.RGBA) {
	col := s.color(c)
	for i := 1; i < len(pts); i++ {
		rl.DrawLineEx(vec(pts[i-1].X, pts[i-1].Y), vec(pts[i].X, pts[i].Y), float32(width), col)
	}
}

func (s *Surface) Circle(cx, cy, r float64, fill bool, c color.RGBA) {
	if fill {
		rl.DrawCircleV(vec(cx, cy), float32(r), s.color(c))
		return
	}
	rl.DrawCircleLines(int32(cx), int32(cy), float32(r), s.color(c))
}

// Text draws s with its baseline at y.
func (s *Surface) Text(x, y float64, text string, c color.RGBA) {
	rl.DrawTextEx(s.Font, text, vec(x, y-fontSize), fontSize, 1, s.color(c))
}

func vec(x, y float64) rl.Vector2 { return rl.NewVector2(float32(x), float32(y)) }
