package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/talentdesk/applywizard/internal/form"
)

// stepperCellWidth is the width of each step column.
const stepperCellWidth = 22

// renderStepper draws the progress header: one column per step with its
// label and description. Steps before active are done.
func renderStepper(active int) string {
	labels := make([]string, 0, form.StepCount)
	descs := make([]string, 0, form.StepCount)

	for i, meta := range form.Steps {
		var mark string
		var style lipgloss.Style
		switch {
		case i < active:
			mark, style = "✓", StepDoneStyle
		case i == active:
			mark, style = fmt.Sprintf("%d", i+1), StepActiveStyle
		default:
			mark, style = fmt.Sprintf("%d", i+1), StepPendingStyle
		}

		cell := lipgloss.NewStyle().Width(stepperCellWidth)
		labels = append(labels, cell.Render(style.Render(mark+" "+meta.Label)))
		descs = append(descs, cell.Render(DetailStyle.Render("  "+meta.Description)))
	}

	sep := StepPendingStyle.Render("─ ")
	return strings.Join(labels, sep) + "\n" + strings.Join(descs, "  ")
}
