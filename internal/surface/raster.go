package surface

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Raster draws into an in-memory RGBA image. Colours passed to it are
// straight (non-premultiplied); A is the opacity of the stroke or fill.
type Raster struct {
	AlphaStack
	Img        *image.RGBA
	Background color.RGBA
}

func NewRaster(w, h int, bg color.RGBA) *Raster {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	r := &Raster{
		Img:        image.NewRGBA(image.Rect(0, 0, w, h)),
		Background: bg,
	}
	r.ClearRect(0, 0, float64(w), float64(h))
	return r
}

func (r *Raster) Size() (int, int) {
	b := r.Img.Bounds()
	return b.Dx(), b.Dy()
}

// Image returns the backing image.
func (r *Raster) Image() image.Image { return r.Img }

func (r *Raster) src(c color.RGBA) *image.Uniform {
	c = r.Apply(c)
	return image.NewUniform(color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A})
}

func rect(x, y, w, h float64) image.Rectangle {
	if w < 0 {
		x, w = x+w, -w
	}
	if h < 0 {
		y, h = y+h, -h
	}
	x0, y0 := int(math.Floor(x)), int(math.Floor(y))
	x1, y1 := int(math.Ceil(x+w)), int(math.Ceil(y+h))
	return image.Rect(x0, y0, x1, y1)
}

func (r *Raster) FillRect(x, y, w, h float64, c color.RGBA) {
	rc := rect(x, y, w, h).Intersect(r.Img.Bounds())
	if rc.Empty() {
		return
	}
	draw.Draw(r.Img, rc, r.src(c), image.Point{}, draw.Over)
}

func (r *Raster) ClearRect(x, y, w, h float64) {
	rc := rect(x, y, w, h).Intersect(r.Img.Bounds())
	if rc.Empty() {
		return
	}
	bg := r.Background
	draw.Draw(r.Img, rc, image.NewUniform(color.NRGBA{R: bg.R, G: bg.G, B: bg.B, A: bg.A}), image.Point{}, draw.Src)
}

func (r *Raster) plot(x, y int, size int, src *image.Uniform) {
	half := size / 2
	rc := image.Rect(x-half, y-half, x-half+size, y-half+size).Intersect(r.Img.Bounds())
	if rc.Empty() {
		return
	}
	draw.Draw(r.Img, rc, src, image.Point{}, draw.Over)
}

// Line uses Bresenham's algorithm, stamping a square of the stroke width.
func (r *Raster) Line(x0, y0, x1, y1, width float64, c color.RGBA) {
	size := int(math.Max(1, math.Round(width)))
	src := r.src(c)

	ax, ay := int(math.Round(x0)), int(math.Round(y0))
	bx, by := int(math.Round(x1)), int(math.Round(y1))
	dx, dy := absInt(bx-ax), absInt(by-ay)
	sx, sy := -1, -1
	if ax < bx {
		sx = 1
	}
	if ay < by {
		sy = 1
	}
	err := dx - dy

	for {
		r.plot(ax, ay, size, src)
		if ax == bx && ay == by {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			ax += sx
		}
		if e2 < dx {
			err += dx
			ay += sy
		}
	}
}

func (r *Raster) Polyline(pts []Point, width float64, c color.RGBA) {
	for i := 1; i < len(pts); i++ {
		r.Line(pts[i-1].X, pts[i-1].Y, pts[i].X, pts[i].Y, width, c)
	}
}

func (r *Raster) Circle(cx, cy, rad float64, fill bool, c color.RGBA) {
	if rad <= 0 {
		return
	}
	if fill {
		src := r.src(c)
		ir := int(math.Ceil(rad))
		for dy := -ir; dy <= ir; dy++ {
			span := math.Sqrt(math.Max(0, rad*rad-float64(dy*dy)))
			rc := rect(cx-span, cy+float64(dy), 2*span, 1).Intersect(r.Img.Bounds())
			if !rc.Empty() {
				draw.Draw(r.Img, rc, src, image.Point{}, draw.Over)
			}
		}
		return
	}
	steps := int(math.Max(12, 2*math.Pi*rad))
	pts := make([]Point, 0, steps+1)
	for i := 0; i <= steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		pts = append(pts, Point{cx + rad*math.Cos(a), cy + rad*math.Sin(a)})
	}
	r.Polyline(pts, 1, c)
}

// Text draws s with its baseline at y.
func (r *Raster) Text(x, y float64, s string, c color.RGBA) {
	d := font.Drawer{
		Dst:  r.Img,
		Src:  r.src(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(int(x), int(y)),
	}
	d.DrawString(s)
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
