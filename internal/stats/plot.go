package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"golang.org/x/term"
)

// Series represents a named data series for plotting.
type Series struct {
	Name   string
	Values []float64
}

const (
	defaultPlotHeight   = 6
	minPlotWidth        = 10
	axisWidth           = 3
	colorReset          = "\x1b[0m"
	terminalWidthBackup = 80
)

var seriesColors = []string{"\x1b[36m", "\x1b[35m", "\x1b[33m", "\x1b[32m"}

// PlotSeries renders each series as its own braille line chart scaled to its min/max.
func PlotSeries(w io.Writer, title string, series []Series, width, height int, forceColor bool) error {
	if height <= 0 {
		height = defaultPlotHeight
	}
	if width <= 0 {
		width = PlotWidthFor(terminalWidth())
	}
	if width < minPlotWidth {
		width = minPlotWidth
	}
	useColor := shouldUseColor(w, forceColor)

	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	for i, s := range series {
		if len(s.Values) == 0 {
			continue
		}
		lo, hi := minMax(s.Values)
		header := fmt.Sprintf("%s  min=%.0f max=%.0f", s.Name, lo, hi)
		if useColor {
			header = seriesColors[i%len(seriesColors)] + header + colorReset
		}
		if _, err := fmt.Fprintln(w, header); err != nil {
			return err
		}
		for _, row := range brailleRows(s.Values, width, height) {
			if _, err := fmt.Fprintln(w, strings.Repeat(" ", axisWidth)+"│"+row); err != nil {
				return err
			}
		}
	}
	return nil
}

// PlotWidthFor computes a plot width that fits within the total available width.
func PlotWidthFor(totalWidth int) int {
	width := totalWidth - axisWidth - 1
	if width < minPlotWidth {
		return minPlotWidth
	}
	return width
}

// brailleRows draws values into a width x height grid of braille cells, two
// dots wide and four dots tall each, joining consecutive points with a line.
func brailleRows(values []float64, width, height int) []string {
	cells := make([][]uint8, height)
	for y := range cells {
		cells[y] = make([]uint8, width)
	}
	dotsX, dotsY := width*2, height*4
	lo, hi := minMax(values)
	if math.Abs(hi-lo) < 1e-9 {
		lo, hi = lo-1, hi+1
	}
	toDot := func(i int, v float64) (int, int) {
		x := 0
		if len(values) > 1 {
			x = int(math.Round(float64(i) * float64(dotsX-1) / float64(len(values)-1)))
		}
		y := int(math.Round((1 - (v-lo)/(hi-lo)) * float64(dotsY-1)))
		return x, clamp(y, 0, dotsY-1)
	}
	px, py := toDot(0, values[0])
	setDot(cells, px, py)
	for i := 1; i < len(values); i++ {
		x, y := toDot(i, values[i])
		drawLine(px, py, x, y, func(dx, dy int) { setDot(cells, dx, dy) })
		px, py = x, y
	}

	rows := make([]string, height)
	for y, row := range cells {
		var b strings.Builder
		for _, mask := range row {
			b.WriteRune(rune(0x2800 + int(mask)))
		}
		rows[y] = b.String()
	}
	return rows
}

// brailleBits maps a dot's position within a cell to its bit, indexed [y][x].
var brailleBits = [4][2]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

func setDot(cells [][]uint8, x, y int) {
	cy, cx := y/4, x/2
	if y < 0 || x < 0 || cy >= len(cells) || cx >= len(cells[cy]) {
		return
	}
	cells[cy][cx] |= brailleBits[y%4][x%2]
}

func drawLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx, sx := x1-x0, 1
	if dx < 0 {
		dx, sx = -dx, -1
	}
	dy, sy := y1-y0, 1
	if dy < 0 {
		dy, sy = -dy, -1
	}
	dy = -dy
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
