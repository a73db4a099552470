package viz

import (
	"strings"

	"github.com/san-kum/chaoscope/internal/cloud"
)

// AttractorASCII projects the point cloud onto two coordinates and plots
// it on a rune canvas, with axes drawn where they cross the view.
func AttractorASCII(pc cloud.PointCloud, xIdx, yIdx, width, height int) string {
	if len(pc) == 0 || xIdx >= pc.Dim() || yIdx >= pc.Dim() {
		return ""
	}

	minX, maxX := pc[0][xIdx], pc[0][xIdx]
	minY, maxY := pc[0][yIdx], pc[0][yIdx]
	for _, p := range pc {
		if p[xIdx] < minX {
			minX = p[xIdx]
		}
		if p[xIdx] > maxX {
			maxX = p[xIdx]
		}
		if p[yIdx] < minY {
			minY = p[yIdx]
		}
		if p[yIdx] > maxY {
			maxY = p[yIdx]
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.05
	maxX += rangeX * 0.05
	minY -= rangeY * 0.05
	maxY += rangeY * 0.05
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	for _, p := range pc {
		col := int((p[xIdx] - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p[yIdx]-minY)/rangeY*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if col >= 0 && col < width && canvas[row][col] == ' ' {
				canvas[row][col] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if row >= 0 && row < height && canvas[row][col] == ' ' {
				canvas[row][col] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
