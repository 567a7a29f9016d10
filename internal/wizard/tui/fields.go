package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/talentdesk/applywizard/internal/form"
)

// field is one focusable row of a step form.
type field interface {
	// Path is the validation path reported for this field, "" for buttons.
	Path() string
	Focus() tea.Cmd
	Blur()
	Focused() bool
	Update(msg tea.Msg) tea.Cmd
	// View renders the field without its validation message.
	View() string
	// consumesEnter reports whether Enter belongs to the field rather than
	// advancing focus.
	consumesEnter() bool
}

// dropdownControl is the non-generic surface of a Dropdown.
type dropdownControl interface {
	ID() string
	Focus()
	Blur()
	Focused() bool
	IsOpen() bool
	Close()
	Update(msg tea.Msg) tea.Cmd
	HandleMouse(msg tea.MouseMsg, x, y int) tea.Cmd
	View() string
	Keys() help.KeyMap
}

// textField is a single-line input with a label column.
type textField struct {
	label string
	path  string
	input textinput.Model
}

func newTextField(label, path, placeholder, value string) *textField {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = placeholder
	in.CharLimit = 120
	in.Width = DefaultDropdownWidth - 2
	in.SetValue(value)
	return &textField{label: label, path: path, input: in}
}

func (f *textField) Path() string          { return f.path }
func (f *textField) Focus() tea.Cmd        { return f.input.Focus() }
func (f *textField) Blur()                 { f.input.Blur() }
func (f *textField) Focused() bool         { return f.input.Focused() }
func (f *textField) consumesEnter() bool   { return false }
func (f *textField) Value() string         { return f.input.Value() }
func (f *textField) SetValue(value string) { f.input.SetValue(value) }

func (f *textField) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return cmd
}

func (f *textField) View() string {
	return RenderLabel(f.label, f.Focused()) + f.input.View()
}

// areaField is the multi-line bio editor with a character counter.
type areaField struct {
	label    string
	path     string
	min, max int
	area     textarea.Model
}

func newAreaField(label, path, placeholder, value string, min, max int) *areaField {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(DefaultDropdownWidth)
	ta.SetHeight(4)
	ta.SetValue(value)
	return &areaField{label: label, path: path, min: min, max: max, area: ta}
}

func (f *areaField) Path() string        { return f.path }
func (f *areaField) Focus() tea.Cmd      { return f.area.Focus() }
func (f *areaField) Blur()               { f.area.Blur() }
func (f *areaField) Focused() bool       { return f.area.Focused() }
func (f *areaField) consumesEnter() bool { return true }
func (f *areaField) Value() string       { return f.area.Value() }

func (f *areaField) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.area, cmd = f.area.Update(msg)
	return cmd
}

// counter reports the trimmed length against the bounds.
func (f *areaField) counter() string {
	n := utf8.RuneCountInString(strings.TrimSpace(f.area.Value()))
	text := fmt.Sprintf("%d / %d characters", n, f.max)
	if n < f.min {
		text += fmt.Sprintf(" (%d more needed)", f.min-n)
	}
	style := DetailStyle
	if n > f.max {
		style = lipgloss.NewStyle().Foreground(ErrorColor)
	}
	return style.Render(text)
}

func (f *areaField) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		RenderLabel(f.label, f.Focused()),
		lipgloss.NewStyle().PaddingLeft(2).Render(f.area.View()),
		"  "+f.counter(),
	)
}

// choiceField picks one of a fixed set of values with left/right.
type choiceField struct {
	label    string
	path     string
	labels   []string
	values   []string
	selected int // -1 when unset
	focused  bool
}

func newChoiceField(label, path string, values, labels []string, current string) *choiceField {
	f := &choiceField{label: label, path: path, labels: labels, values: values, selected: -1}
	for i, v := range values {
		if v == current {
			f.selected = i
		}
	}
	return f
}

func newGenderField(current form.Gender) *choiceField {
	values := make([]string, len(form.Genders))
	labels := make([]string, len(form.Genders))
	for i, g := range form.Genders {
		values[i] = string(g)
		labels[i] = g.Label()
	}
	return newChoiceField("Gender", form.FieldGender, values, labels, string(current))
}

func newRemoteField(current form.RemoteFlag) *choiceField {
	return newChoiceField("Remote Work?", form.FieldAvailableForRemote,
		[]string{string(form.RemoteYes), string(form.RemoteNo)},
		[]string{form.RemoteYes.Label(), form.RemoteNo.Label()},
		string(current))
}

func (f *choiceField) Path() string        { return f.path }
func (f *choiceField) Focus() tea.Cmd      { f.focused = true; return nil }
func (f *choiceField) Blur()               { f.focused = false }
func (f *choiceField) Focused() bool       { return f.focused }
func (f *choiceField) consumesEnter() bool { return f.selected < 0 }

// Value returns the chosen value, or "".
func (f *choiceField) Value() string {
	if f.selected < 0 {
		return ""
	}
	return f.values[f.selected]
}

// Select picks option i.
func (f *choiceField) Select(i int) {
	if i >= 0 && i < len(f.values) {
		f.selected = i
	}
}

func (f *choiceField) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	n := len(f.values)
	switch keyMsg.String() {
	case "left", "h":
		if f.selected <= 0 {
			f.selected = n - 1
		} else {
			f.selected--
		}
	case "right", "l":
		f.selected = (f.selected + 1) % n
	case " ", "enter":
		if f.selected < 0 {
			f.selected = 0
		}
	}
	return nil
}

// optionX returns the column where option i starts, relative to the field.
func (f *choiceField) optionX(i int) int {
	x := LabelColumnWidth
	for j := 0; j < i; j++ {
		x += lipgloss.Width(f.option(j)) + 2
	}
	return x
}

func (f *choiceField) option(i int) string {
	mark := "( )"
	if i == f.selected {
		mark = "(•)"
	}
	return mark + " " + f.labels[i]
}

// optionAt returns the option under column x, or -1.
func (f *choiceField) optionAt(x int) int {
	for i := range f.values {
		start := f.optionX(i)
		if x >= start && x < start+lipgloss.Width(f.option(i)) {
			return i
		}
	}
	return -1
}

func (f *choiceField) View() string {
	parts := make([]string, len(f.values))
	for i := range f.values {
		opt := f.option(i)
		switch {
		case i == f.selected && f.focused:
			opt = CursorRowStyle.Render(opt)
		case i == f.selected:
			opt = SelectedListItemStyle.Render(opt)
		}
		parts[i] = opt
	}
	return RenderLabel(f.label, f.focused) + strings.Join(parts, "  ")
}

// checkField is a boolean toggle.
type checkField struct {
	text    string
	path    string
	checked bool
	focused bool
}

func newCheckField(text, path string, checked bool) *checkField {
	return &checkField{text: text, path: path, checked: checked}
}

func (f *checkField) Path() string        { return f.path }
func (f *checkField) Focus() tea.Cmd      { f.focused = true; return nil }
func (f *checkField) Blur()               { f.focused = false }
func (f *checkField) Focused() bool       { return f.focused }
func (f *checkField) consumesEnter() bool { return true }
func (f *checkField) Value() bool         { return f.checked }
func (f *checkField) Toggle()             { f.checked = !f.checked }

func (f *checkField) Update(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case " ", "enter", "x":
			f.Toggle()
		}
	}
	return nil
}

func (f *checkField) View() string {
	box := "[ ]"
	if f.checked {
		box = "[x]"
	}
	line := box + " " + f.text
	if f.focused {
		line = CursorRowStyle.Render(line)
	}
	return "  " + line
}

// dropdownField places a dropdown under its label.
type dropdownField struct {
	label string
	hint  string
	path  string
	dd    dropdownControl
}

func newDropdownField(label, hint, path string, dd dropdownControl) *dropdownField {
	return &dropdownField{label: label, hint: hint, path: path, dd: dd}
}

func (f *dropdownField) Path() string        { return f.path }
func (f *dropdownField) Focus() tea.Cmd      { f.dd.Focus(); return nil }
func (f *dropdownField) Blur()               { f.dd.Blur() }
func (f *dropdownField) Focused() bool       { return f.dd.Focused() }
func (f *dropdownField) consumesEnter() bool { return true }

func (f *dropdownField) Update(msg tea.Msg) tea.Cmd {
	return f.dd.Update(msg)
}

// dropdownOffsetX and dropdownOffsetY locate the dropdown inside the block.
const (
	dropdownOffsetX = 2
	dropdownOffsetY = 1
)

func (f *dropdownField) View() string {
	label := LabelStyle.UnsetWidth().Render("  " + f.label)
	if f.Focused() {
		label = FocusedLabelStyle.UnsetWidth().Render("› " + f.label)
	}
	if f.hint != "" {
		label += " " + DetailStyle.Render(f.hint)
	}
	return label + "\n" + lipgloss.NewStyle().PaddingLeft(dropdownOffsetX).Render(f.dd.View())
}

// buttonField is an action at the bottom of a step.
type buttonField struct {
	text    string
	action  stepAction
	focused bool
}

func newButtonField(text string, action stepAction) *buttonField {
	return &buttonField{text: text, action: action}
}

func (f *buttonField) Path() string             { return "" }
func (f *buttonField) Focus() tea.Cmd           { f.focused = true; return nil }
func (f *buttonField) Blur()                    { f.focused = false }
func (f *buttonField) Focused() bool            { return f.focused }
func (f *buttonField) consumesEnter() bool      { return false }
func (f *buttonField) Update(msg tea.Msg) tea.Cmd { return nil }
func (f *buttonField) View() string             { return RenderButton(f.text, f.focused) }
