package viz

import (
	"strings"
	"testing"
)

func TestCanvasSetAndClear(t *testing.T) {
	c := NewCanvas(4, 2)

	empty := c.String()
	if strings.ContainsRune(empty, '⣿') {
		t.Error("fresh canvas should be blank")
	}

	c.Set(0, 0)
	if c.String() == empty {
		t.Error("Set should change the rendering")
	}

	c.Set(-1, 0)
	c.Set(0, -3)
	c.Set(1000, 1000) // out of range is ignored

	c.Clear()
	if c.String() != empty {
		t.Error("Clear should restore the blank canvas")
	}
}

func TestCanvasPlotSeriesStaysInBounds(t *testing.T) {
	c := NewCanvas(10, 4)
	c.PlotSeries([]float64{0, 1, 0.5, 2, -1, 0.25}, -1, 2)

	out := c.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(lines))
	}
	marked := false
	for _, line := range lines {
		for _, r := range line {
			if r != 0x2800 {
				marked = true
			}
		}
	}
	if !marked {
		t.Error("series should mark at least one cell")
	}
}

func TestCanvasPlotSeriesDegenerateRange(t *testing.T) {
	c := NewCanvas(10, 4)
	// hi == lo must not divide by zero
	c.PlotSeries([]float64{1, 1, 1}, 1, 1)
}
