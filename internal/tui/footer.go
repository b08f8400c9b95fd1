package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// FooterModel renders the key help and the batch status.
type FooterModel struct {
	help   help.Model
	keymap KeyMap
	paused bool
	done   bool
	failed bool
	width  int
}

// NewFooterModel creates a footer showing the default bindings.
func NewFooterModel() FooterModel {
	h := help.New()
	h.Styles.ShortKey = footerKeyStyle
	h.Styles.ShortDesc = footerDescStyle
	h.Styles.ShortSeparator = footerDescStyle
	return FooterModel{help: h, keymap: DefaultKeyMap()}
}

// SetWidth updates the available width.
func (f *FooterModel) SetWidth(w int) {
	f.width = w
	f.help.Width = w
}

// SetPaused toggles the paused indicator.
func (f *FooterModel) SetPaused(p bool) { f.paused = p }

// SetDone toggles the completed indicator.
func (f *FooterModel) SetDone(d bool) { f.done = d }

// SetError marks the batch as failed.
func (f *FooterModel) SetError(e bool) { f.failed = e }

// Status returns the status label.
func (f FooterModel) Status() string {
	switch {
	case f.failed:
		return "Error"
	case f.done:
		return "Done"
	case f.paused:
		return "Paused"
	default:
		return "Running"
	}
}

// View renders the footer.
func (f FooterModel) View() string {
	var status string
	switch f.Status() {
	case "Error":
		status = statusErrorStyle.Render("Error")
	case "Done":
		status = statusDoneStyle.Render("Done")
	case "Paused":
		status = statusPausedStyle.Render("Paused")
	default:
		status = statusRunningStyle.Render("Running")
	}

	keys := f.help.View(f.keymap)
	gap := max(f.width-lipgloss.Width(keys)-lipgloss.Width(status)-2, 1)
	return " " + keys + strings.Repeat(" ", gap) + status
}
