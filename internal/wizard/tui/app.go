package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/talentdesk/applywizard/internal/directory"
	"github.com/talentdesk/applywizard/internal/form"
	"github.com/talentdesk/applywizard/internal/logging"
	"github.com/talentdesk/applywizard/internal/paginate"
)

// Screen represents the current active screen in the application
type Screen string

const (
	ScreenForm      Screen = "form"
	ScreenPreview   Screen = "preview"
	ScreenSubmitted Screen = "submitted"
)

// Dropdown identifiers, also used as pointer registry keys.
const (
	ExperienceDropdownID  = "experience"
	DepartmentsDropdownID = "departments"
)

// submittedKeyMap defines key bindings for the submitted screen
type submittedKeyMap struct {
	New  key.Binding
	Quit key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k submittedKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.New, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k submittedKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.New, k.Quit}}
}

// Options configures the wizard.
type Options struct {
	Products *paginate.Loader[directory.Product]
	Users    *paginate.Loader[directory.User]

	// ShowFetchErrors renders a hint in a dropdown when a page fails.
	ShowFetchErrors bool
	// ResetDropdownOnClose refetches from page 0 on every open.
	ResetDropdownOnClose bool
	// OutputPath receives the submitted application; empty skips writing.
	OutputPath string
}

// AppModel is the top-level coordinator model that manages screen transitions
type AppModel struct {
	CurrentScreen Screen

	// Shared application state
	Store    *form.Store
	Registry *PointerRegistry

	// Dropdowns outlive the step screens so loaded pages are kept.
	Experience  *Dropdown[directory.Product]
	Departments *Dropdown[directory.User]

	// Screen models
	Step    stepScreen
	Preview PreviewModel

	// Result state
	Submitted  *form.Application
	SavedTo    string
	SubmitErr  error
	OutputPath string

	// UI state
	Width  int
	Height int

	// Help
	Help          help.Model
	SubmittedKeys submittedKeyMap
}

// NewAppModel creates the wizard at step 1.
func NewAppModel(opts Options) AppModel {
	registry := NewPointerRegistry()

	experience := NewDropdown(opts.Products, registry, DropdownOptions[directory.Product]{
		ID:          ExperienceDropdownID,
		Placeholder: "Select experience level...",
		Label:       func(p directory.Product) string { return p.Title },
		Detail: func(p directory.Product) string {
			return p.Category + " · " + p.PriceLabel()
		},
		ShowErrors:   opts.ShowFetchErrors,
		ResetOnClose: opts.ResetDropdownOnClose,
	})

	departments := NewDropdown(opts.Users, registry, DropdownOptions[directory.User]{
		ID:           DepartmentsDropdownID,
		Placeholder:  "Select preferred departments...",
		Multi:        true,
		Label:        func(u directory.User) string { return u.FullName() },
		Detail:       func(u directory.User) string { return u.CompanyName },
		ChipLabel:    func(u directory.User) string { return u.FirstName },
		ShowErrors:   opts.ShowFetchErrors,
		ResetOnClose: opts.ResetDropdownOnClose,
	})

	m := AppModel{
		Store:       form.NewStore(),
		Registry:    registry,
		Experience:  experience,
		Departments: departments,
		OutputPath:  opts.OutputPath,
		Help:        help.New(),
		SubmittedKeys: submittedKeyMap{
			New: key.NewBinding(
				key.WithKeys("n"),
				key.WithHelp("n", "new application"),
			),
			Quit: key.NewBinding(
				key.WithKeys("q", "enter"),
				key.WithHelp("q", "quit"),
			),
		},
	}
	m, _ = m.enterStep(form.StepPersonal)
	return m
}

// Init initializes the application
func (m AppModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles all messages and routes them to the appropriate screen
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		w := SafeDropdownWidth(msg.Width)
		m.Experience.SetWidth(w)
		m.Departments.SetWidth(w)
		return m, nil

	case tea.KeyMsg:
		// Global quit handler
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case pageLoadedMsg:
		// Results land even when the owning step is not on screen.
		switch msg.dropdownID {
		case ExperienceDropdownID:
			return m, m.Experience.Update(msg)
		case DepartmentsDropdownID:
			return m, m.Departments.Update(msg)
		}
		return m, nil

	case spinner.TickMsg:
		return m, tea.Batch(m.Experience.Update(msg), m.Departments.Update(msg))

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	return m.updateCurrentScreen(msg)
}

// updateCurrentScreen routes updates to the currently active screen
func (m AppModel) updateCurrentScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.CurrentScreen {
	case ScreenForm:
		action, cmd := updateStep(m.Step, msg)
		return m.applyStepAction(action, cmd)

	case ScreenPreview:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, m.Preview.Keys.Quit) && !m.Preview.ConfirmReset {
			return m, tea.Quit
		}
		var action previewAction
		m.Preview, action = m.Preview.Update(msg)
		return m.applyPreviewAction(action)

	case ScreenSubmitted:
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(keyMsg, m.SubmittedKeys.New):
				m.Store.Reset()
				m.Submitted = nil
				m.SavedTo = ""
				m.SubmitErr = nil
				return m.enterStep(form.StepPersonal)
			case key.Matches(keyMsg, m.SubmittedKeys.Quit):
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

// applyStepAction carries out what a step form asked for.
func (m AppModel) applyStepAction(action stepAction, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	s := m.Step.base()
	s.syncDropdowns()

	switch action {
	case actionNext:
		ok, focusCmd := s.trySubmit()
		if !ok {
			logging.Debug("Step blocked by validation",
				zap.Int("step", s.index),
				zap.Strings("fields", m.Step.Validate().Paths()))
			return m, tea.Batch(cmd, focusCmd)
		}
		m.Step.Commit(m.Store)
		next := s.index + 1
		m.Store.SetCurrentStep(next)
		var enterCmd tea.Cmd
		m, enterCmd = m.enterStep(next)
		return m, tea.Batch(cmd, enterCmd)

	case actionBack:
		prev := s.index - 1
		m.Store.SetCurrentStep(prev)
		var enterCmd tea.Cmd
		m, enterCmd = m.enterStep(prev)
		return m, tea.Batch(cmd, enterCmd)

	case actionNone:
		return m, cmd

	default:
		return m, tea.Batch(cmd, m.Step.HandleAction(action))
	}
}

// applyPreviewAction carries out what the preview asked for.
func (m AppModel) applyPreviewAction(action previewAction) (tea.Model, tea.Cmd) {
	switch action {
	case previewEdit:
		m.Store.SetCurrentStep(m.Preview.EditStep)
		return m.enterStep(m.Preview.EditStep)

	case previewReset:
		m.Store.Reset()
		return m.enterStep(form.StepPersonal)

	case previewSubmit:
		return m.submit()
	}
	return m, nil
}

// enterStep shows step i, prefilled from the store. The preview needs a
// committed first step and falls back to step 1 without one.
func (m AppModel) enterStep(i int) (AppModel, tea.Cmd) {
	if m.Step != nil {
		m.Step.base().leave()
	}
	m.Experience.Blur()
	m.Departments.Blur()

	if i >= form.StepPreview {
		if m.Store.Personal().FirstName == "" {
			logging.Warn("Preview requested without personal details, returning to step 1")
			m.Store.SetCurrentStep(form.StepPersonal)
			return m.enterStep(form.StepPersonal)
		}
		m.Step = nil
		m.Preview = NewPreviewModel(m.Store.Snapshot())
		m.CurrentScreen = ScreenPreview
		return m, nil
	}

	switch i {
	case form.StepProfessional:
		m.Step = NewProfessionalStep(m.Store.Professional(), m.Experience)
	case form.StepAdditional:
		m.Step = NewAdditionalStep(m.Store.Additional(), m.Departments)
	default:
		m.Step = NewPersonalStep(m.Store.Personal())
	}
	m.CurrentScreen = ScreenForm
	return m, textinput.Blink
}

// submit finalizes the application and writes it out when configured.
func (m AppModel) submit() (tea.Model, tea.Cmd) {
	app := m.Store.Snapshot()
	m.Submitted = &app
	m.CurrentScreen = ScreenSubmitted
	m.SubmitErr = nil
	m.SavedTo = ""

	if m.OutputPath != "" {
		if err := form.WriteFile(app, m.OutputPath); err != nil {
			logging.Error("Failed to save application", zap.String("path", m.OutputPath), zap.Error(err))
			m.SubmitErr = err
		} else {
			m.SavedTo = m.OutputPath
		}
	}

	logging.Info("Application submitted",
		zap.String("email", app.Personal.Email),
		zap.Int("skills", len(app.Professional.Skills)),
		zap.Int("departments", len(app.Additional.PreferredDepartments)))
	return m, nil
}

// closeDropdown closes the dropdown registered under id.
func (m AppModel) closeDropdown(id string) {
	switch id {
	case ExperienceDropdownID:
		m.Experience.Close()
	case DepartmentsDropdownID:
		m.Departments.Close()
	default:
		m.Registry.Unregister(id)
	}
}

// handleMouse closes dropdowns the press missed, then routes the event to the
// field under the pointer.
func (m AppModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.CurrentScreen != ScreenForm || m.Step == nil {
		return m, nil
	}

	originX := containerOriginX + contentPaddingX
	originY := containerOriginY
	s := m.Step.base()

	for id, r := range s.dropdownRegions(originX, originY) {
		m.Registry.Move(id, r)
	}

	if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress {
		for _, id := range m.Registry.Outside(msg.X, msg.Y) {
			m.closeDropdown(id)
		}
	}

	action, cmd := s.handleMouse(msg, msg.X-originX, msg.Y-originY)
	return m.applyStepAction(action, cmd)
}

// View renders the current screen
// Each screen is wrapped with RenderApplicationContainer()
func (m AppModel) View() string {
	var content, helpText string

	switch m.CurrentScreen {
	case ScreenForm:
		content = m.Step.View()
		if dd := m.Step.base().openDropdown(); dd != nil {
			helpText = m.Help.View(dd.Keys())
		} else {
			helpText = m.Help.View(m.Step.base().keys)
		}
	case ScreenPreview:
		content = m.Preview.buildContent()
		helpText = m.Help.View(m.Preview.Keys)
	case ScreenSubmitted:
		content = m.buildSubmittedContent()
		helpText = m.Help.View(m.SubmittedKeys)
	default:
		return "Unknown screen"
	}

	content = lipgloss.NewStyle().PaddingLeft(contentPaddingX).Render(content)
	return RenderApplicationContainer(content, helpText, m.Width, m.Height)
}

// buildSubmittedContent builds the submitted screen content
func (m AppModel) buildSubmittedContent() string {
	var b strings.Builder

	b.WriteString(RenderTitle("✓ Application Submitted!"))
	b.WriteString("\n\n")

	if m.Submitted != nil {
		p := m.Submitted.Personal
		b.WriteString(SuccessBoxStyle.Render(fmt.Sprintf("Thank you, %s %s.", p.FirstName, p.LastName)))
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("  We'll be in touch at %s.\n", p.Email))
		b.WriteString(fmt.Sprintf("  Role:        %s\n", orEmpty(m.Submitted.Professional.JobTitle)))
		b.WriteString(fmt.Sprintf("  Skills:      %d\n", len(m.Submitted.Professional.Skills)))
		b.WriteString(fmt.Sprintf("  Departments: %d\n", len(m.Submitted.Additional.PreferredDepartments)))
		b.WriteString("\n")
	}

	if m.SavedTo != "" {
		b.WriteString(fmt.Sprintf("  Saved to %s\n\n", m.SavedTo))
	}

	if m.SubmitErr != nil {
		b.WriteString(ErrorBoxStyle.Render(fmt.Sprintf("Error: %v", m.SubmitErr)))
		b.WriteString("\n\n")
	}

	b.WriteString("What would you like to do next?\n\n")
	b.WriteString(MenuItemStyle.Render("  n - Start a new application"))
	b.WriteString("\n")
	b.WriteString(MenuItemStyle.Render("  q - Exit application"))
	b.WriteString("\n")

	return b.String()
}
