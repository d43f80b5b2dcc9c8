package viz

import (
	"math"
	"strings"
)

// Braille patterns pack a 2x4 dot block into one rune starting at
// U+2800, giving a terminal canvas double the column and four times
// the row resolution.
var dotMask = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

type Canvas struct {
	Width, Height int
	cells         []rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, cells: make([]rune, w*h)}
	c.Clear()
	return c
}

// Set marks a sub-pixel; the drawable area is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.cells[row*c.Width+col] |= dotMask[y%4][x%2]
}

func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = 0x2800
	}
}

// DrawLine rasterizes with Bresenham in sub-pixel coordinates.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
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
		c.Set(x0, y0)
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

// PlotSeries scales a series onto the canvas and connects consecutive
// samples. The vertical range is fixed by lo and hi so successive
// frames of a growing path keep a stable scale.
func (c *Canvas) PlotSeries(values []float64, lo, hi float64) {
	if len(values) < 2 {
		return
	}
	if hi <= lo {
		hi = lo + 1
	}

	w := c.Width * 2
	h := c.Height * 4
	px, py := -1, -1
	for i, v := range values {
		x := i * (w - 1) / (len(values) - 1)
		frac := (v - lo) / (hi - lo)
		y := (h - 1) - int(math.Round(frac*float64(h-1)))
		if px >= 0 {
			c.DrawLine(px, py, x, y)
		} else {
			c.Set(x, y)
		}
		px, py = x, y
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for row := 0; row < c.Height; row++ {
		b.WriteString(string(c.cells[row*c.Width:(row+1)*c.Width]) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
