package viz

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/guptarohit/asciigraph"
)

// PlotProfile renders a shoreline profile as an ascii graph, cross-shore
// position against alongshore distance.
func PlotProfile(profile []float64, spacing float64, height int) string {
	if len(profile) == 0 {
		return "(empty profile)"
	}
	graph := asciigraph.Plot(profile,
		asciigraph.Height(height),
		asciigraph.Caption(fmt.Sprintf("shoreline position (m), %d columns x %.0f m", len(profile), spacing)),
	)
	return GraphStyle.Render(graph)
}

// PlotHistogram renders a wave-angle histogram over [-90, 90] degrees.
func PlotHistogram(angles []float64, bins int) string {
	if bins < 2 {
		bins = 2
	}
	counts := make([]int, bins)
	max := 0
	for _, a := range angles {
		deg := a * 180 / math.Pi
		bin := int((deg + 90) / 180 * float64(bins))
		if bin < 0 {
			bin = 0
		}
		if bin >= bins {
			bin = bins - 1
		}
		counts[bin]++
		if counts[bin] > max {
			max = counts[bin]
		}
	}

	var b strings.Builder
	const barWidth = 40
	for i, c := range counts {
		lo := -90 + 180*float64(i)/float64(bins)
		hi := -90 + 180*float64(i+1)/float64(bins)
		bar := 0
		if max > 0 {
			bar = c * barWidth / max
		}
		fmt.Fprintf(&b, "%6.1f..%6.1f  %s %d\n", lo, hi, strings.Repeat("#", bar), c)
	}
	return b.String()
}

// SummaryTable renders probe values as an aligned two-column table.
func SummaryTable(probes map[string]float64) string {
	names := make([]string, 0, len(probes))
	for name := range probes {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		line := LabelStyle.Render(name) + ValueStyle.Render(fmt.Sprintf("%.4f", probes[name]))
		b.WriteString(line + "\n")
	}
	return b.String()
}

// DepthMap renders a coarse shaded map of the depth field, one character per
// sampled cell. Land is blank; deeper water is darker.
func DepthMap(depth []float64, rows, cols, outRows, outCols int) string {
	if rows <= 0 || cols <= 0 || len(depth) != rows*cols {
		return "(no depth field)"
	}
	if outRows <= 0 || outRows > rows {
		outRows = rows
	}
	if outCols <= 0 || outCols > cols {
		outCols = cols
	}

	maxDepth := 0.0
	for _, d := range depth {
		if d > maxDepth {
			maxDepth = d
		}
	}

	shades := []rune{' ', '.', ':', '-', '=', '#'}
	var b strings.Builder
	for r := 0; r < outRows; r++ {
		sr := r * rows / outRows
		for c := 0; c < outCols; c++ {
			sc := c * cols / outCols
			d := depth[sr*cols+sc]
			if d <= 0 || maxDepth == 0 {
				b.WriteRune(shades[0])
				continue
			}
			idx := 1 + int(d/maxDepth*float64(len(shades)-2))
			if idx >= len(shades) {
				idx = len(shades) - 1
			}
			b.WriteRune(shades[idx])
		}
		b.WriteByte('\n')
	}
	return b.String()
}
