package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/rrspgo/internal/domain"
	"github.com/rgehrsitz/rrspgo/internal/tui/tuistyles"
)

// DataSeries is one line of a chart
type DataSeries struct {
	Name   string
	Points []float64
	Color  lipgloss.Color
}

// ASCIIChart draws line series on a character grid
type ASCIIChart struct {
	Title      string
	Series     []*DataSeries
	Labels     []string // x-axis labels, one per point
	Width      int
	Height     int
	ShowLegend bool
	XAxisLabel string
}

const yAxisWidth = 10

var seriesMarks = []rune{'●', '■', '▲', '♦'}

// NewASCIIChart creates an empty chart
func NewASCIIChart(title string) *ASCIIChart {
	return &ASCIIChart{
		Title:      title,
		Width:      60,
		Height:     12,
		ShowLegend: true,
	}
}

// NewProjectionChart plots the after-tax RRSP value against the TFSA value
// for each projected year
func NewProjectionChart(years []domain.ProjectionYear) *ASCIIChart {
	rrsp := make([]float64, len(years))
	tfsa := make([]float64, len(years))
	labels := make([]string, len(years))
	for i, y := range years {
		rrsp[i] = y.RRSPNet.InexactFloat64()
		tfsa[i] = y.TFSANet.InexactFloat64()
		labels[i] = fmt.Sprintf("Y%d", y.Year)
	}

	return NewASCIIChart("Projected value after withdrawal tax").
		AddSeries("RRSP (net)", rrsp, tuistyles.ColorRRSP).
		AddSeries("TFSA", tfsa, tuistyles.ColorTFSA).
		WithLabels(labels).
		WithXAxisLabel("years from today")
}

// AddSeries appends a line
func (c *ASCIIChart) AddSeries(name string, points []float64, color lipgloss.Color) *ASCIIChart {
	c.Series = append(c.Series, &DataSeries{Name: name, Points: points, Color: color})
	return c
}

// WithLabels sets the x-axis labels
func (c *ASCIIChart) WithLabels(labels []string) *ASCIIChart {
	c.Labels = labels
	return c
}

// WithSize sets the total width, y-axis included, and the plot height
func (c *ASCIIChart) WithSize(width, height int) *ASCIIChart {
	c.Width = width
	c.Height = height
	return c
}

// WithXAxisLabel sets the caption under the x-axis
func (c *ASCIIChart) WithXAxisLabel(label string) *ASCIIChart {
	c.XAxisLabel = label
	return c
}

// Render returns the chart with its title, axes and legend
func (c *ASCIIChart) Render() string {
	lo, hi, ok := c.bounds()
	if !ok {
		return tuistyles.InfoStyle.Render("No data to display")
	}

	var out strings.Builder
	if c.Title != "" {
		out.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render(c.Title))
		out.WriteString("\n\n")
	}

	out.WriteString(c.renderPlot(lo, hi))

	if c.XAxisLabel != "" {
		out.WriteString("\n")
		out.WriteString(tuistyles.SubtitleStyle.Render(c.XAxisLabel))
	}
	if c.ShowLegend && len(c.Series) > 1 {
		out.WriteString("\n\n")
		out.WriteString(c.renderLegend())
	}
	return out.String()
}

// bounds returns the padded value range over every series
func (c *ASCIIChart) bounds() (float64, float64, bool) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range c.Series {
		for _, p := range s.Points {
			lo = math.Min(lo, p)
			hi = math.Max(hi, p)
		}
	}
	if math.IsInf(lo, 1) {
		return 0, 0, false
	}
	if hi == lo {
		hi = lo + 1
	}
	pad := (hi - lo) * 0.1
	return lo - pad, hi + pad, true
}

func (c *ASCIIChart) plotWidth() int {
	w := c.Width - yAxisWidth - 3
	if w < 2 {
		w = 2
	}
	return w
}

func (c *ASCIIChart) plotHeight() int {
	if c.Height < 2 {
		return 2
	}
	return c.Height
}

// cell maps the i-th of n points to a grid position
func (c *ASCIIChart) cell(i, n int, v, lo, hi float64) (int, int) {
	w, h := c.plotWidth(), c.plotHeight()
	x := 0
	if n > 1 {
		x = int(math.Round(float64(i) / float64(n-1) * float64(w-1)))
	}
	y := h - 1 - int(math.Round((v-lo)/(hi-lo)*float64(h-1)))
	return x, y
}

// renderPlot draws every series onto a grid of series indexes, -1 for blank,
// then colours each cell by its series
func (c *ASCIIChart) renderPlot(lo, hi float64) string {
	w, h := c.plotWidth(), c.plotHeight()
	grid := make([][]int, h)
	for y := range grid {
		grid[y] = make([]int, w)
		for x := range grid[y] {
			grid[y][x] = -1
		}
	}

	for si, s := range c.Series {
		for i, v := range s.Points {
			x, y := c.cell(i, len(s.Points), v, lo, hi)
			if i > 0 {
				px, py := c.cell(i-1, len(s.Points), s.Points[i-1], lo, hi)
				line(grid, px, py, x, y, si)
			} else {
				plot(grid, x, y, si)
			}
		}
	}

	axis := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	var out strings.Builder
	for y, row := range grid {
		v := hi - float64(y)/float64(h-1)*(hi-lo)
		out.WriteString(axis.Width(yAxisWidth).Align(lipgloss.Right).Render(formatChartValue(v)))
		out.WriteString(axis.Render(" │ "))
		for _, si := range row {
			if si < 0 {
				out.WriteByte(' ')
				continue
			}
			mark := string(seriesMarks[si%len(seriesMarks)])
			out.WriteString(lipgloss.NewStyle().Foreground(c.Series[si].Color).Render(mark))
		}
		out.WriteString("\n")
	}

	out.WriteString(strings.Repeat(" ", yAxisWidth))
	out.WriteString(axis.Render(" └" + strings.Repeat("─", w)))
	if labels := c.renderXAxisLabels(w); labels != "" {
		out.WriteString("\n")
		out.WriteString(labels)
	}
	return out.String()
}

func plot(grid [][]int, x, y, series int) {
	if y >= 0 && y < len(grid) && x >= 0 && x < len(grid[y]) && grid[y][x] < 0 {
		grid[y][x] = series
	}
}

// line draws from (x0, y0) to (x1, y1) with Bresenham's algorithm
func line(grid [][]int, x0, y0, x1, y1, series int) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		plot(grid, x0, y0, series)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// renderXAxisLabels places up to six labels at their points' columns
func (c *ASCIIChart) renderXAxisLabels(w int) string {
	n := len(c.Labels)
	if n == 0 {
		return ""
	}
	step := (n + 5) / 6
	row := []rune(strings.Repeat(" ", w+2))
	for i := 0; i < n; i += step {
		x := 0
		if n > 1 {
			x = int(math.Round(float64(i) / float64(n-1) * float64(w-1)))
		}
		label := []rune(c.Labels[i])
		if x+len(label) > len(row) {
			x = len(row) - len(label)
		}
		if x < 0 {
			continue
		}
		copy(row[x:], label)
	}
	return strings.Repeat(" ", yAxisWidth+3) +
		lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render(strings.TrimRight(string(row), " "))
}

func (c *ASCIIChart) renderLegend() string {
	items := make([]string, 0, len(c.Series))
	for i, s := range c.Series {
		mark := lipgloss.NewStyle().Foreground(s.Color).Render(string(seriesMarks[i%len(seriesMarks)]))
		items = append(items, mark+" "+s.Name)
	}
	return tuistyles.SubtitleStyle.Render("Legend: ") + strings.Join(items, "  ")
}

// formatChartValue writes a y-axis value in the k$ / M$ shorthand
func formatChartValue(v float64) string {
	switch {
	case math.Abs(v) >= 1000000:
		return fmt.Sprintf("%.1f M$", v/1000000)
	case math.Abs(v) >= 1000:
		return fmt.Sprintf("%.0f k$", v/1000)
	default:
		return fmt.Sprintf("%.0f $", v)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
