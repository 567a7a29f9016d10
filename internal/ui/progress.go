package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// StepStatus represents the current state of a page fetch
type StepStatus int

const (
	StepPending  StepStatus = iota // Not yet requested
	StepRunning                    // In flight
	StepComplete                   // Loaded
	StepFailed                     // Failed
	StepSkipped                    // Not requested because the list is exhausted
)

// Step is one page request in a browse run.
type Step struct {
	Number  int        // Step number (1-based)
	Name    string     // e.g., "Page 1"
	Status  StepStatus // Current status
	Message string     // Optional note (e.g., "10 items")
}

// Progress shows how much of a remote collection has been loaded, with one
// step line per requested page.
type Progress struct {
	Label  string // e.g., "Loading products..."
	Steps  []Step
	Loaded int // Items accumulated so far
	Total  int // Server-reported total, 0 until the first page lands
	Width  int
	bar    progress.Model
}

// NewProgress creates a progress display for the given number of pages.
func NewProgress(label string, pages int) *Progress {
	steps := make([]Step, pages)
	for i := range steps {
		steps[i] = Step{Number: i + 1, Name: fmt.Sprintf("Page %d", i+1)}
	}

	p := &Progress{Label: label, Steps: steps}
	p.SetWidth(GetTerminalWidth())
	return p
}

// SetWidth sets the terminal width for responsive rendering
func (p *Progress) SetWidth(width int) *Progress {
	p.Width = width
	barWidth := width - 30 // Leave room for percentage and item count
	if barWidth < 20 {
		barWidth = 20
	}
	if barWidth > 50 {
		barWidth = 50
	}
	p.bar = progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(barWidth),
	)
	return p
}

// UpdateStep sets a step's status and note. Out-of-range steps are ignored.
func (p *Progress) UpdateStep(stepNumber int, status StepStatus, message string) {
	if stepNumber < 1 || stepNumber > len(p.Steps) {
		return
	}
	p.Steps[stepNumber-1].Status = status
	p.Steps[stepNumber-1].Message = message
}

// SetLoaded records the accumulated item count and the server total.
func (p *Progress) SetLoaded(loaded, total int) {
	p.Loaded = loaded
	p.Total = total
}

// Percent is the loaded share of the collection.
func (p *Progress) Percent() float64 {
	if p.Total <= 0 {
		return 0
	}
	pct := float64(p.Loaded) / float64(p.Total)
	if pct > 1 {
		pct = 1
	}
	return pct
}

// Render returns the styled progress display as a string
func (p *Progress) Render() string {
	var b strings.Builder

	if p.Label != "" {
		b.WriteString(ProgressLabelStyle.Render(p.Label))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.NewStyle().PaddingLeft(DefaultPadding).Render(fmt.Sprintf("%s  %3.0f%%  [%d/%d items]",
		p.bar.ViewAs(p.Percent()), p.Percent()*100, p.Loaded, p.Total)))
	b.WriteString("\n\n")

	lines := make([]string, 0, len(p.Steps))
	for _, step := range p.Steps {
		lines = append(lines, p.renderStepLine(step))
	}
	b.WriteString(strings.Join(lines, "\n"))

	return b.String()
}

// renderStepLine renders a single step line
func (p *Progress) renderStepLine(step Step) string {
	var (
		marker string
		style  lipgloss.Style
	)
	switch step.Status {
	case StepComplete:
		marker, style = StepMarkerComplete, StepCompleteStyle
	case StepRunning:
		marker, style = StepMarkerRunning, StepRunningStyle
	case StepFailed:
		marker, style = FailureMarker, ErrorTitleStyle
	case StepSkipped:
		marker, style = "⊘", StepPendingStyle
	default:
		marker, style = StepMarkerPending, StepPendingStyle
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("  [%d/%d] ", step.Number, len(p.Steps)))
	b.WriteString(style.Render(step.Name))

	// Markers line up in one column
	padding := 20 - lipgloss.Width(step.Name)
	if padding < 1 {
		padding = 1
	}
	b.WriteString(strings.Repeat(" ", padding))
	b.WriteString(style.Render(marker))

	if step.Message != "" {
		b.WriteString("  ")
		b.WriteString(StepNoteStyle.Render("(" + step.Message + ")"))
	}

	return b.String()
}

// String implements fmt.Stringer
func (p *Progress) String() string {
	return p.Render()
}
