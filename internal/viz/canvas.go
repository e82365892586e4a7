package viz

import (
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/wavelab/internal/spectrum"
	"github.com/san-kum/wavelab/internal/surface"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const (
	brailleBase = 0x2800
	brailleLast = 0x28FF

	// litThreshold is the effective brightness above which a dot is set.
	litThreshold = 0.2
)

// Canvas is a braille pixel grid of Width x Height cells, each cell holding
// 2x4 dots, with one colour per cell. It implements surface.Surface in dot
// coordinates, so a canvas of 60x20 cells is a 120x80 surface.
type Canvas struct {
	surface.AlphaStack
	Width, Height int
	Grid          [][]rune
	Colors        [][]color.RGBA
}

var _ surface.Surface = (*Canvas)(nil)

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{}
	c.Resize(w, h)
	return c
}

func (c *Canvas) Size() (int, int) { return c.Width * 2, c.Height * 4 }

// Resize reallocates the grid in place and clears it.
func (c *Canvas) Resize(w, h int) {
	c.Width, c.Height = w, h
	c.Grid = make([][]rune, h)
	c.Colors = make([][]color.RGBA, h)
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Colors[i] = make([]color.RGBA, w)
	}
	c.Clear()
}

func (c *Canvas) cell(x, y int) (row, col int, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	col, row = x/2, y/4
	if col >= c.Width || row >= c.Height {
		return 0, 0, false
	}
	return row, col, true
}

// Set sets a dot at (x, y) in dot coordinates.
func (c *Canvas) Set(x, y int) {
	row, col, ok := c.cell(x, y)
	if !ok {
		return
	}
	if r := c.Grid[row][col]; r < brailleBase || r > brailleLast {
		c.Grid[row][col] = brailleBase
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// Unset clears a dot. Text in the cell is dropped.
func (c *Canvas) Unset(x, y int) {
	row, col, ok := c.cell(x, y)
	if !ok {
		return
	}
	if r := c.Grid[row][col]; r < brailleBase || r > brailleLast {
		c.Grid[row][col] = brailleBase
		return
	}
	c.Grid[row][col] &^= rune(pixelMap[y%4][x%2])
	c.Grid[row][col] |= brailleBase
}

// IsSet reports whether the dot at (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	row, col, ok := c.cell(x, y)
	if !ok {
		return false
	}
	r := c.Grid[row][col]
	if r < brailleBase || r > brailleLast {
		return false
	}
	return r&rune(pixelMap[y%4][x%2]) != 0
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBase
			c.Colors[i][j] = color.RGBA{}
		}
	}
}

// lit reports whether colour c drawn at the current alpha should light a dot.
func (c *Canvas) lit(col color.RGBA) bool {
	v := max(col.R, col.G, col.B)
	return c.Alpha()*float64(v)/255 >= litThreshold
}

func (c *Canvas) paint(x, y int, col color.RGBA) {
	c.Set(x, y)
	if row, cc, ok := c.cell(x, y); ok {
		c.Colors[row][cc] = col
	}
}

func span(v, size float64) (int, int) {
	return int(math.Floor(v)), int(math.Ceil(v + size))
}

func (c *Canvas) FillRect(x, y, w, h float64, col color.RGBA) {
	if !c.lit(col) {
		return
	}
	x0, x1 := span(x, w)
	y0, y1 := span(y, h)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			c.paint(px, py, col)
		}
	}
}

func (c *Canvas) ClearRect(x, y, w, h float64) {
	x0, x1 := span(x, w)
	y0, y1 := span(y, h)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			c.Unset(px, py)
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	c.line(x0, y0, x1, y1, func(x, y int) { c.Set(x, y) })
}

func (c *Canvas) line(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) Line(x0, y0, x1, y1, _ float64, col color.RGBA) {
	if !c.lit(col) {
		return
	}
	c.line(round(x0), round(y0), round(x1), round(y1), func(x, y int) { c.paint(x, y, col) })
}

func (c *Canvas) Polyline(pts []surface.Point, width float64, col color.RGBA) {
	for i := 1; i < len(pts); i++ {
		c.Line(pts[i-1].X, pts[i-1].Y, pts[i].X, pts[i].Y, width, col)
	}
}

func (c *Canvas) Circle(cx, cy, r float64, fill bool, col color.RGBA) {
	if !c.lit(col) {
		return
	}
	x0, x1 := span(cx-r, 2*r)
	y0, y1 := span(cy-r, 2*r)
	for py := y0; py <= y1; py++ {
		for px := x0; px <= x1; px++ {
			d := math.Hypot(float64(px)-cx, float64(py)-cy)
			if d <= r && (fill || d >= r-1) {
				c.paint(px, py, col)
			}
		}
	}
}

// Text writes s into whole cells starting at the cell holding (x, y).
func (c *Canvas) Text(x, y float64, s string, col color.RGBA) {
	row, start, ok := c.cell(round(x), round(y))
	if !ok {
		return
	}
	i := 0
	for _, r := range s {
		if start+i >= c.Width {
			break
		}
		c.Grid[row][start+i] = r
		c.Colors[row][start+i] = col
		i++
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render returns the canvas with each run of same-coloured cells styled.
func (c *Canvas) Render() string {
	var b strings.Builder
	for i, row := range c.Grid {
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && c.Colors[i][j] == c.Colors[i][start] {
				continue
			}
			run := string(row[start:j])
			if col := c.Colors[i][start]; col != (color.RGBA{}) {
				run = lipgloss.NewStyle().Foreground(lipgloss.Color(spectrum.Hex(col))).Render(run)
			}
			b.WriteString(run)
			start = j
		}
		b.WriteString("\n")
	}
	return b.String()
}

func round(v float64) int { return int(math.Round(v)) }

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
