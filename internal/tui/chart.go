package tui

import (
	"fmt"
	"strings"

	"github.com/agbru/primecalc/internal/format"
)

const (
	defaultHistory = 60
	// chartFixedRows is the title, the summary line and the borders.
	chartFixedRows = 4
	sysRows        = 2
)

// ChartModel plots parallel efficiency per candidate alongside system CPU and
// memory usage. Efficiency is the speedup divided by the thread count,
// expressed as a percentage so it fits RenderBrailleChart's 0..100 scale.
type ChartModel struct {
	threads    int
	speedups   *RingBuffer
	efficiency *RingBuffer
	cpuHistory *RingBuffer
	memHistory *RingBuffer
	best       float64
	sum        float64
	count      int
	width      int
	height     int
}

// NewChartModel creates a chart for a driver using the given thread count.
func NewChartModel(threads int) ChartModel {
	return ChartModel{
		threads:    max(threads, 1),
		speedups:   NewRingBuffer(defaultHistory),
		efficiency: NewRingBuffer(defaultHistory),
		cpuHistory: NewRingBuffer(defaultHistory),
		memHistory: NewRingBuffer(defaultHistory),
	}
}

// SetSize updates dimensions and resizes the histories to the plot width.
func (c *ChartModel) SetSize(w, h int) {
	c.width = w
	c.height = h
	if plot := w - 4; plot > 0 {
		c.efficiency.Resize(plot * 2)
		c.speedups.Resize(plot * 2)
		c.cpuHistory.Resize(max(plot-12, 1))
		c.memHistory.Resize(max(plot-12, 1))
	}
}

// AddSpeedup records the speedup of one candidate. Zero means the parallel
// phase was too fast to time and is left out of the averages.
func (c *ChartModel) AddSpeedup(speedup float64) {
	if speedup <= 0 {
		return
	}
	c.speedups.Push(speedup)
	c.efficiency.Push(speedup / float64(c.threads) * 100)
	c.sum += speedup
	c.count++
	c.best = max(c.best, speedup)
}

// UpdateSysStats records a CPU and memory sample.
func (c *ChartModel) UpdateSysStats(cpu, mem float64) {
	c.cpuHistory.Push(cpu)
	c.memHistory.Push(mem)
}

// Reset clears every history.
func (c *ChartModel) Reset() {
	c.speedups.Reset()
	c.efficiency.Reset()
	c.cpuHistory.Reset()
	c.memHistory.Reset()
	c.best, c.sum, c.count = 0, 0, 0
}

// Average returns the mean recorded speedup, or 0 with no samples.
func (c ChartModel) Average() float64 {
	if c.count == 0 {
		return 0
	}
	return c.sum / float64(c.count)
}

// View renders the chart panel.
func (c ChartModel) View() string {
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("Speed-up"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s  %s %s  %s %s",
		metricLabelStyle.Render("Last:"), metricValueStyle.Render(format.FormatSpeedup(c.speedups.Last())),
		metricLabelStyle.Render("Avg:"), metricValueStyle.Render(format.FormatSpeedup(c.Average())),
		metricLabelStyle.Render("Best:"), metricValueStyle.Render(format.FormatSpeedup(c.best)))

	showSys := c.height-chartFixedRows >= sysRows+1
	plotRows := c.height - chartFixedRows
	if showSys {
		plotRows -= sysRows
	}
	for _, line := range RenderBrailleChart(c.efficiency.Slice(), max(c.width-4, 0), plotRows) {
		b.WriteString("\n")
		b.WriteString(speedupChartStyle.Render(line))
	}

	if showSys {
		fmt.Fprintf(&b, "\n%s %s %5.1f%%", metricLabelStyle.Render("CPU"),
			cpuSparklineStyle.Render(RenderSparkline(c.cpuHistory.Slice())), c.cpuHistory.Last())
		fmt.Fprintf(&b, "\n%s %s %5.1f%%", metricLabelStyle.Render("MEM"),
			memSparklineStyle.Render(RenderSparkline(c.memHistory.Slice())), c.memHistory.Last())
	}

	return panelStyle.
		Width(max(c.width-2, 0)).
		Height(max(c.height-2, 0)).
		Render(b.String())
}
