package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/talentdesk/applywizard/internal/version"
)

// Application branding constants
const (
	AppName = "JOB APPLICATION WIZARD"
	AppTag  = "applywizard"
)

// AppVersion returns the application version from the centralized version package
func AppVersion() string {
	return version.Version
}

// Layout constants for responsive terminal width
const (
	MinTerminalWidth     = 72  // Minimum supported terminal width
	MaxContentWidth      = 120 // Maximum content width before capping
	LabelColumnWidth     = 22  // Width of the label column in step forms
	DefaultDropdownWidth = 56
)

// Container geometry. Content starts below the outer border, the header line
// and the header's bottom rule, one column in from the outer border.
const (
	containerOriginX = 1
	containerOriginY = 3
	contentPaddingX  = 2
)

// Color palette
var (
	// Primary colors
	PrimaryColor   = lipgloss.Color("#7D56F4") // Purple
	SecondaryColor = lipgloss.Color("#43BF6D") // Green
	WarningColor   = lipgloss.Color("#FFA500") // Orange
	ErrorColor     = lipgloss.Color("#FF5F5F") // Red

	// Neutral colors
	TextColor      = lipgloss.Color("#FFFFFF") // White
	SubtleColor    = lipgloss.Color("#626262") // Gray
	BorderColor    = lipgloss.Color("#7D56F4") // Purple (same as primary)
	HighlightColor = lipgloss.Color("#43BF6D") // Green (same as secondary)
)

// Common styles
var (
	// Title style
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	// Subtitle style
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Italic(true)

	// Menu item style (unselected)
	MenuItemStyle = lipgloss.NewStyle().
			PaddingLeft(4).
			Foreground(TextColor)

	// Field label (unfocused)
	LabelStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Width(LabelColumnWidth)

	// Field label (focused)
	FocusedLabelStyle = lipgloss.NewStyle().
				Foreground(PrimaryColor).
				Bold(true).
				Width(LabelColumnWidth)

	// Inline validation message under a field
	FieldErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			PaddingLeft(LabelColumnWidth)

	// Spinner style
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)

	// Selected list item style
	SelectedListItemStyle = lipgloss.NewStyle().
				Foreground(HighlightColor).
				Bold(true)

	// Cursor row inside an open dropdown
	CursorRowStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	// Secondary text on a dropdown row
	DetailStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// Dropdown list panel
	DropdownPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(BorderColor).
				Padding(0, 1)

	// Removable selection chip
	ChipStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)

	// Stepper: active, done and pending steps
	StepActiveStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)
	StepDoneStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor)
	StepPendingStyle = lipgloss.NewStyle().
				Foreground(SubtleColor)

	// Buttons
	ButtonStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Padding(0, 2)
	FocusedButtonStyle = lipgloss.NewStyle().
				Foreground(TextColor).
				Background(PrimaryColor).
				Bold(true).
				Padding(0, 2)

	// Box style for preview sections
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 2)

	// Success box style (for result screens)
	SuccessBoxStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true)

	// Error box style (for result screens)
	ErrorBoxStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ErrorColor).
			Padding(0, 2)

	// Warning box style
	WarningBoxStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(WarningColor).
			Padding(0, 2)
)

// RenderTitle renders a title with consistent styling
func RenderTitle(text string) string {
	return TitleStyle.Render(text)
}

// RenderSubtitle renders a subtitle with consistent styling
func RenderSubtitle(text string) string {
	return SubtitleStyle.Render(text)
}

// RenderFieldError renders a validation message, or "" when msg is empty.
func RenderFieldError(msg string) string {
	if msg == "" {
		return ""
	}
	return FieldErrorStyle.Render("✗ " + msg)
}

// RenderLabel renders a field label in the label column.
func RenderLabel(text string, focused bool) string {
	if focused {
		return FocusedLabelStyle.Render("› " + text)
	}
	return LabelStyle.Render("  " + text)
}

// RenderButton renders a focusable button.
func RenderButton(text string, focused bool) string {
	if focused {
		return FocusedButtonStyle.Render(text)
	}
	return ButtonStyle.Render("[ " + text + " ]")
}

// BuildHeaderContent creates header content with app name and version
func BuildHeaderContent() string {
	left := lipgloss.NewStyle().
		Foreground(TextColor).
		Bold(true).
		Render(AppName + " v" + AppVersion())

	right := lipgloss.NewStyle().
		Foreground(SubtleColor).
		Render(AppTag)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

// BuildFooterContent creates footer content with help text
func BuildFooterContent(helpText string) string {
	return lipgloss.NewStyle().
		Foreground(SubtleColor).
		Render(helpText)
}

// RenderApplicationContainer wraps every screen: full-terminal bordered panel,
// header with app name and version, content, and a help footer.
//
//	func (m Model) View() string {
//	    content := m.buildContent()
//	    return RenderApplicationContainer(content, m.Help.View(m.Keys), m.Width, m.Height)
//	}
//
// Content starts at (containerOriginX, containerOriginY); pointer hit-testing
// relies on that.
func RenderApplicationContainer(content string, footerText string, terminalWidth int, terminalHeight int) string {
	if terminalWidth < MinTerminalWidth {
		terminalWidth = MinTerminalWidth
	}
	if terminalHeight < 10 {
		terminalHeight = 10
	}

	header := BuildHeaderContent()
	footer := BuildFooterContent(footerText)

	headerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderForeground(BorderColor).
		Width(terminalWidth-4).
		Padding(0, 1)

	footerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderForeground(BorderColor).
		Width(terminalWidth-4).
		Padding(0, 1)

	contentStyle := lipgloss.NewStyle().
		Width(terminalWidth - 4)

	innerContent := lipgloss.JoinVertical(
		lipgloss.Left,
		headerStyle.Render(header),
		contentStyle.Render(content),
		footerStyle.Render(footer),
	)

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(BorderColor).
		Width(terminalWidth - 2).
		Height(terminalHeight - 2).
		AlignVertical(lipgloss.Top)

	return lipgloss.Place(
		terminalWidth,
		terminalHeight,
		lipgloss.Left,
		lipgloss.Top,
		borderStyle.Render(innerContent),
	)
}

// SafeDropdownWidth bounds the dropdown to the usable content width.
func SafeDropdownWidth(terminalWidth int) int {
	maxWidth := terminalWidth - 4 - contentPaddingX - 2
	if maxWidth < 40 {
		maxWidth = 40
	}
	if DefaultDropdownWidth < maxWidth {
		return DefaultDropdownWidth
	}
	return maxWidth
}
