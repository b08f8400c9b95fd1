package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/primecalc/internal/format"
	"github.com/agbru/primecalc/internal/orchestration"
)

const reportsHeaderRows = 2 // title + column headings

// reportRow is one line of the reports table.
type reportRow struct {
	arg      string
	report   *orchestration.Report
	rejected error
}

// ReportsModel is the scrollable table of candidate outcomes.
type ReportsModel struct {
	rows       []reportRow
	inFlight   string
	offset     int
	autoScroll bool
	keymap     KeyMap
	width      int
	height     int
}

// NewReportsModel creates an empty table.
func NewReportsModel() ReportsModel {
	return ReportsModel{autoScroll: true, keymap: DefaultKeyMap()}
}

// SetSize updates dimensions.
func (r *ReportsModel) SetSize(w, h int) {
	r.width = w
	r.height = h
	r.clampOffset()
}

// SetInFlight marks the candidate currently being checked.
func (r *ReportsModel) SetInFlight(arg string) {
	r.inFlight = arg
}

// AddReport appends a checked candidate.
func (r *ReportsModel) AddReport(report orchestration.Report) {
	r.rows = append(r.rows, reportRow{arg: report.Candidate.Arg, report: &report})
	r.inFlight = ""
	r.follow()
}

// AddRejected appends an argument that failed to parse.
func (r *ReportsModel) AddRejected(c orchestration.Candidate) {
	r.rows = append(r.rows, reportRow{arg: c.Arg, rejected: c.Err})
	r.follow()
}

// Reset clears the table.
func (r *ReportsModel) Reset() {
	r.rows = nil
	r.inFlight = ""
	r.offset = 0
	r.autoScroll = true
}

// Len returns the number of rows.
func (r ReportsModel) Len() int {
	return len(r.rows)
}

// Update handles scrolling keys.
func (r *ReportsModel) Update(msg tea.KeyMsg) {
	page := r.visibleRows()
	switch {
	case key.Matches(msg, r.keymap.Up):
		r.offset--
	case key.Matches(msg, r.keymap.Down):
		r.offset++
	case key.Matches(msg, r.keymap.PageUp):
		r.offset -= page
	case key.Matches(msg, r.keymap.PageDown):
		r.offset += page
	default:
		return
	}
	r.clampOffset()
	r.autoScroll = r.offset == r.maxOffset()
}

func (r ReportsModel) visibleRows() int {
	// borders, headings and the in-flight line
	return max(r.height-2-reportsHeaderRows-1, 1)
}

func (r ReportsModel) maxOffset() int {
	return max(len(r.rows)-r.visibleRows(), 0)
}

func (r *ReportsModel) clampOffset() {
	r.offset = min(max(r.offset, 0), r.maxOffset())
}

func (r *ReportsModel) follow() {
	if r.autoScroll {
		r.offset = r.maxOffset()
	}
}

// View renders the table inside a panel.
func (r ReportsModel) View() string {
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("Candidates"))
	b.WriteString("\n")
	b.WriteString(columnHeaderStyle.Render(fmt.Sprintf("%-20s %-10s %10s %10s %9s", "N", "Verdict", "Seq (s)", "Par (s)", "Speed-up")))

	end := min(r.offset+r.visibleRows(), len(r.rows))
	for _, row := range r.rows[r.offset:end] {
		b.WriteString("\n")
		b.WriteString(formatReportRow(row))
	}
	if r.inFlight != "" {
		b.WriteString("\n")
		b.WriteString(statusRunningStyle.Render("checking " + r.inFlight + " ..."))
	}

	return panelStyle.
		Width(max(r.width-2, 0)).
		Height(max(r.height-2, 0)).
		Render(b.String())
}

func formatReportRow(row reportRow) string {
	arg := row.arg
	if len(arg) > 20 {
		arg = arg[:19] + "…"
	}
	if row.rejected != nil {
		return rejectedStyle.Render(fmt.Sprintf("%-20s %-10s", arg, "rejected"))
	}

	rep := row.report
	verdict, style := "composite", compositeStyle
	if rep.Sequential.Prime {
		verdict, style = "prime", primeStyle
	}
	if !rep.Consistent() {
		verdict, style = "MISMATCH", mismatchStyle
	}
	line := fmt.Sprintf("%-20s %-10s %10s %10s %9s",
		arg, verdict,
		format.FormatSeconds(rep.Sequential.Elapsed),
		format.FormatSeconds(rep.Parallel.Elapsed),
		format.FormatSpeedup(rep.Speedup))
	return style.Render(line)
}

// renderToHeight renders the panel stretched to h lines.
func (r ReportsModel) renderToHeight(h int) string {
	r.height = h
	r.clampOffset()
	r.follow()
	return lipgloss.NewStyle().MaxHeight(h).Render(r.View())
}
