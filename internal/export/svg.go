package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/rigidsim/internal/box"
	"github.com/san-kum/rigidsim/internal/particle"
)

// SnapshotToSVG renders an xy projection of the box and its particles.
// Centrals are drawn larger, constituents small, free particles dim.
func SnapshotToSVG(snap *particle.Snapshot, bx box.Box, width, height int) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<rect x="1" y="1" width="%d" height="%d" fill="none" stroke="#333333"/>
`, width, height, width, height, width-2, height-2))

	toPixel := func(p particle.Vec3) (float64, float64) {
		x := (p[0]/bx.L[0] + 0.5) * float64(width)
		y := float64(height) - (p[1]/bx.L[1]+0.5)*float64(height)
		return x, y
	}

	for i := 0; i < snap.N; i++ {
		x, y := toPixel(snap.Pos[i])
		t := snap.Body[i]

		switch {
		case t == particle.NoBody:
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="1.5" fill="#555555"/>
`, x, y))
		case snap.Tag[i] == t:
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="3.5" fill="#00ff00"/>
`, x, y))
		default:
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="2" fill="#00aaff"/>
`, x, y))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// DriftToSVG plots a momentum-drift history as a polyline.
func DriftToSVG(times, drift []float64, width, height int, strokeColor string) string {
	if len(times) < 2 || len(times) != len(drift) {
		return ""
	}

	maxD := drift[0]
	for _, d := range drift {
		if d > maxD {
			maxD = d
		}
	}
	if maxD == 0 {
		maxD = 1
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	tRange := times[len(times)-1] - times[0]
	if tRange == 0 {
		tRange = 1
	}

	for i := range times {
		x := (times[i] - times[0]) / tRange * float64(width)
		y := float64(height) - drift[i]/maxD*float64(height)*0.9 - float64(height)*0.05
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
