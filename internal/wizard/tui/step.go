package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/talentdesk/applywizard/internal/form"
)

// stepAction is what a step asks the app to do after an update.
type stepAction int

const (
	actionNone stepAction = iota
	actionNext
	actionBack
	actionAddSkill
)

// stepKeyMap defines key bindings for the step forms
type stepKeyMap struct {
	Next        key.Binding
	Prev        key.Binding
	Submit      key.Binding
	Back        key.Binding
	AddSkill    key.Binding
	RemoveSkill key.Binding
	Quit        key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k stepKeyMap) ShortHelp() []key.Binding {
	bindings := []key.Binding{k.Next, k.Submit}
	if k.Back.Enabled() {
		bindings = append(bindings, k.Back)
	}
	if k.AddSkill.Enabled() {
		bindings = append(bindings, k.AddSkill, k.RemoveSkill)
	}
	return append(bindings, k.Quit)
}

// FullHelp returns keybindings for the expanded help view
func (k stepKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Submit, k.Back},
		{k.AddSkill, k.RemoveSkill, k.Quit},
	}
}

func newStepKeyMap(index int) stepKeyMap {
	k := stepKeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "continue"),
		),
		Back: key.NewBinding(
			key.WithKeys("ctrl+b"),
			key.WithHelp("ctrl+b", "back"),
		),
		AddSkill: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "add skill"),
		),
		RemoveSkill: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "remove skill"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
	k.Back.SetEnabled(index > form.StepPersonal)
	k.AddSkill.SetEnabled(index == form.StepProfessional)
	k.RemoveSkill.SetEnabled(index == form.StepProfessional)
	return k
}

// stepScreen is one of the three editable steps.
type stepScreen interface {
	base() *stepForm
	// Validate checks the step's current, uncommitted values.
	Validate() form.FieldErrors
	// Commit saves the current values into the store.
	Commit(store *form.Store)
	// HandleKey sees keys before the generic form handling.
	HandleKey(msg tea.KeyMsg) (handled bool, cmd tea.Cmd)
	// HandleAction runs step-specific button actions.
	HandleAction(a stepAction) tea.Cmd
	View() string
}

// stepForm holds the focus ring and validation display state shared by the
// step screens.
type stepForm struct {
	index     int
	fields    []field
	focus     int
	touched   map[string]bool
	attempted bool
	keys      stepKeyMap
	validate  func() form.FieldErrors
}

func newStepForm(index int, validate func() form.FieldErrors) stepForm {
	return stepForm{
		index:    index,
		touched:  make(map[string]bool),
		keys:     newStepKeyMap(index),
		validate: validate,
	}
}

// setFields replaces the focus ring and focuses target (or the first field).
func (s *stepForm) setFields(fields []field, target field) tea.Cmd {
	if s.focus >= 0 && s.focus < len(s.fields) {
		s.fields[s.focus].Blur()
	}
	s.fields = fields
	s.focus = 0
	for i, f := range fields {
		if f == target {
			s.focus = i
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return fields[s.focus].Focus()
}

func (s *stepForm) focused() field {
	if s.focus < 0 || s.focus >= len(s.fields) {
		return nil
	}
	return s.fields[s.focus]
}

// focusIndex moves focus; leaving a field marks it touched.
func (s *stepForm) focusIndex(i int) tea.Cmd {
	n := len(s.fields)
	if n == 0 {
		return nil
	}
	i = ((i % n) + n) % n
	if cur := s.focused(); cur != nil {
		cur.Blur()
		if p := cur.Path(); p != "" {
			s.touched[p] = true
		}
	}
	s.focus = i
	return s.fields[i].Focus()
}

// focusPath focuses the field reporting path.
func (s *stepForm) focusPath(path string) tea.Cmd {
	for i, f := range s.fields {
		if f.Path() == path {
			return s.focusIndex(i)
		}
	}
	return nil
}

// visibleErrors returns the messages that should be displayed: every
// failing path after a submit attempt, otherwise only touched paths.
func (s *stepForm) visibleErrors() form.FieldErrors {
	all := s.validate()
	if s.attempted {
		return all
	}
	var fe form.FieldErrors
	for _, p := range all.Paths() {
		if s.touched[p] {
			fe.Add(p, all.First(p))
		}
	}
	return fe
}

// trySubmit reports whether the step is valid. A failing step shows every
// error and focuses the first failing field.
func (s *stepForm) trySubmit() (bool, tea.Cmd) {
	fe := s.validate()
	if fe.Len() == 0 {
		return true, nil
	}
	s.attempted = true
	for _, p := range fe.Paths() {
		if cmd := s.focusPath(p); cmd != nil || s.focused().Path() == p {
			return false, cmd
		}
	}
	return false, nil
}

// syncDropdowns marks a dropdown touched once its selection changes.
func (s *stepForm) syncDropdowns() {
	for _, f := range s.fields {
		if d, ok := f.(*dropdownField); ok {
			if changer, ok := d.dd.(interface{ TakeChanged() bool }); ok && changer.TakeChanged() {
				s.touched[d.path] = true
			}
		}
	}
}

// leave blurs the focused field, closing any open dropdown.
func (s *stepForm) leave() {
	if f := s.focused(); f != nil {
		f.Blur()
	}
}

// openDropdown returns the focused dropdown when it is open.
func (s *stepForm) openDropdown() dropdownControl {
	if f, ok := s.focused().(*dropdownField); ok && f.dd.IsOpen() {
		return f.dd
	}
	return nil
}

// update applies a message to the step and reports the resulting action.
func updateStep(sc stepScreen, msg tea.Msg) (stepAction, tea.Cmd) {
	s := sc.base()

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if f := s.focused(); f != nil {
			return actionNone, f.Update(msg)
		}
		return actionNone, nil
	}

	if handled, cmd := sc.HandleKey(keyMsg); handled {
		return actionNone, cmd
	}

	switch {
	case key.Matches(keyMsg, s.keys.Next):
		return actionNone, s.focusIndex(s.focus + 1)
	case key.Matches(keyMsg, s.keys.Prev):
		return actionNone, s.focusIndex(s.focus - 1)
	case key.Matches(keyMsg, s.keys.Submit):
		return actionNext, nil
	case key.Matches(keyMsg, s.keys.Back):
		return actionBack, nil
	}

	f := s.focused()
	if f == nil {
		return actionNone, nil
	}

	if keyMsg.String() == "enter" {
		if b, ok := f.(*buttonField); ok {
			return b.action, nil
		}
		if !f.consumesEnter() {
			return actionNone, s.focusIndex(s.focus + 1)
		}
	}
	if b, ok := f.(*buttonField); ok && keyMsg.String() == " " {
		return b.action, nil
	}

	return actionNone, f.Update(keyMsg)
}

// stepHeader renders everything above the first field.
func stepHeader(index int) string {
	meta := form.Steps[index]
	return renderStepper(index) + "\n\n" +
		RenderTitle(meta.Title) + "\n" +
		RenderSubtitle(meta.Subtitle) + "\n"
}

// block is one vertical slot of a step layout. Consecutive buttons share a
// block.
type block struct {
	fields []field
	view   string
}

func (s *stepForm) blocks() []block {
	errs := s.visibleErrors()
	owned := make(map[string]bool)

	var out []block
	var buttons []field
	flush := func() {
		if len(buttons) == 0 {
			return
		}
		views := make([]string, len(buttons))
		for i, b := range buttons {
			views[i] = b.View()
		}
		out = append(out, block{fields: buttons, view: "\n" + strings.Join(views, "  ")})
		buttons = nil
	}

	for _, f := range s.fields {
		if _, ok := f.(*buttonField); ok {
			buttons = append(buttons, f)
			continue
		}
		flush()
		view := f.View()
		if p := f.Path(); p != "" {
			owned[p] = true
			if msg := errs.First(p); msg != "" {
				view += "\n" + RenderFieldError(msg)
			}
		}
		out = append(out, block{fields: []field{f}, view: view})
	}

	// Errors without a field of their own (the skills list) go above the
	// buttons.
	var orphans []string
	for _, p := range errs.Paths() {
		if !owned[p] {
			orphans = append(orphans, lipgloss.NewStyle().Foreground(ErrorColor).Render("  ✗ "+errs.First(p)))
		}
	}
	if len(orphans) > 0 {
		out = append(out, block{view: strings.Join(orphans, "\n")})
	}

	flush()
	return out
}

// render draws the step content.
func (s *stepForm) render() string {
	var b strings.Builder
	b.WriteString(stepHeader(s.index))
	for _, blk := range s.blocks() {
		b.WriteString("\n")
		b.WriteString(blk.view)
	}
	return b.String()
}

// dropdownRegions returns the screen bounds of every dropdown field, given
// the top-left cell of the step content.
func (s *stepForm) dropdownRegions(originX, originY int) map[string]Region {
	regions := make(map[string]Region)
	y := originY + lipgloss.Height(stepHeader(s.index))
	for _, blk := range s.blocks() {
		if len(blk.fields) == 1 {
			if f, ok := blk.fields[0].(*dropdownField); ok {
				view := f.dd.View()
				regions[f.dd.ID()] = Region{
					X:      originX + dropdownOffsetX,
					Y:      y + dropdownOffsetY,
					Width:  lipgloss.Width(view),
					Height: lipgloss.Height(view),
				}
			}
		}
		y += lipgloss.Height(blk.view)
	}
	return regions
}

// fieldAt finds the field under (x, y), relative to the step content, and
// the position inside it.
func (s *stepForm) fieldAt(x, y int) (field, int, int) {
	top := lipgloss.Height(stepHeader(s.index))
	for _, blk := range s.blocks() {
		h := lipgloss.Height(blk.view)
		if y < top || y >= top+h {
			top += h
			continue
		}
		relY := y - top
		if len(blk.fields) == 1 {
			return blk.fields[0], x, relY
		}
		// Button row: a leading blank line, then buttons separated by two spaces.
		if relY == 0 {
			return nil, 0, 0
		}
		left := 0
		for _, f := range blk.fields {
			w := lipgloss.Width(f.View())
			if x >= left && x < left+w {
				return f, x - left, relY
			}
			left += w + 2
		}
		return nil, 0, 0
	}
	return nil, 0, 0
}

// handleMouse routes a left press or wheel event at content coordinates.
func (s *stepForm) handleMouse(msg tea.MouseMsg, x, y int) (stepAction, tea.Cmd) {
	f, relX, relY := s.fieldAt(x, y)
	if f == nil {
		return actionNone, nil
	}

	press := msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress
	var cmds []tea.Cmd
	if press && f != s.focused() {
		for i, candidate := range s.fields {
			if candidate == f {
				cmds = append(cmds, s.focusIndex(i))
			}
		}
	}

	switch f := f.(type) {
	case *dropdownField:
		if relY >= dropdownOffsetY {
			cmds = append(cmds, f.dd.HandleMouse(msg, relX-dropdownOffsetX, relY-dropdownOffsetY))
		}
	case *buttonField:
		if press {
			return f.action, tea.Batch(cmds...)
		}
	case *choiceField:
		if press {
			f.Select(f.optionAt(relX))
		}
	case *checkField:
		if press {
			f.Toggle()
		}
	}
	return actionNone, tea.Batch(cmds...)
}
