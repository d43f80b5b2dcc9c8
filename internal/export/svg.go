package export

import (
	"fmt"
	"math"
	"strings"
)

// PathSVG renders one sample path as a standalone SVG polyline. The
// vertical axis is scaled to the data range with a small margin so
// flat paths still produce a visible line.
func PathSVG(times, values []float64, width, height int, caption string) string {
	if len(times) != len(values) || len(times) < 2 {
		return ""
	}

	tMin, tMax := times[0], times[len(times)-1]
	vMin, vMax := values[0], values[0]
	for _, v := range values {
		vMin = math.Min(vMin, v)
		vMax = math.Max(vMax, v)
	}
	if tMax <= tMin {
		tMax = tMin + 1
	}
	margin := (vMax - vMin) * 0.05
	if margin == 0 {
		margin = 0.5
	}
	vMin -= margin
	vMax += margin

	w, h := float64(width), float64(height)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	sb.WriteString(`<polyline fill="none" stroke="#00ff00" stroke-width="1.5" points="`)
	for i := range times {
		x := (times[i] - tMin) / (tMax - tMin) * w
		y := h - (values[i]-vMin)/(vMax-vMin)*h
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(fmt.Sprintf("%.2f,%.2f", x, y))
	}
	sb.WriteString("\"/>\n")

	if caption != "" {
		sb.WriteString(fmt.Sprintf(`<text x="10" y="20" fill="#cccccc" font-family="monospace" font-size="14">%s</text>
`, caption))
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}
