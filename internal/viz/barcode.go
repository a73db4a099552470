package viz

import (
	"fmt"
	"strings"

	"github.com/san-kum/chaoscope/internal/rips"
)

// Barcode renders a persistence diagram as horizontal bars, one per
// class, grouped by dimension and scaled to the largest finite death.
// Immortal classes run to the right edge and end with an arrow.
func Barcode(diag rips.Diagram, width int) string {
	if len(diag) == 0 {
		return "empty diagram"
	}
	if width < 10 {
		width = 10
	}

	scale := diag.MaxDeath()
	if scale == 0 {
		scale = 1
	}

	var sb strings.Builder
	for dim := 0; dim <= rips.MaxHomologyDim; dim++ {
		pairs := diag.ByDim(dim)
		if len(pairs) == 0 {
			continue
		}
		pairs.Sort()
		style := DimStyle(dim)

		sb.WriteString(Label.Render(fmt.Sprintf("H%d (%d classes)", dim, len(pairs))))
		sb.WriteRune('\n')

		for _, p := range pairs {
			start := int(p.Birth / scale * float64(width-1))
			if start > width-1 {
				start = width - 1
			}

			var end int
			arrow := false
			if p.Immortal() {
				end = width - 1
				arrow = true
			} else {
				end = int(p.Death / scale * float64(width-1))
				if end > width-1 {
					end = width - 1
				}
			}

			line := make([]rune, width)
			for i := range line {
				line[i] = ' '
			}
			line[start] = '|'
			for i := start + 1; i < end; i++ {
				line[i] = '─'
			}
			if end > start {
				line[end] = '|'
			}
			if arrow {
				line[width-1] = '>'
			}

			sb.WriteString(style.Render(string(line)))
			if p.Immortal() {
				sb.WriteString(Subtle.Render(fmt.Sprintf("  [%.3f, ∞)", p.Birth)))
			} else {
				sb.WriteString(Subtle.Render(fmt.Sprintf("  [%.3f, %.3f)", p.Birth, p.Death)))
			}
			sb.WriteRune('\n')
		}
		sb.WriteRune('\n')
	}
	return sb.String()
}
