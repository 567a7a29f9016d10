package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/talentdesk/applywizard/internal/form"
)

// emptyValue is shown for any blank field.
const emptyValue = "—"

// previewAction is what the preview asks the app to do.
type previewAction int

const (
	previewNone previewAction = iota
	previewEdit
	previewReset
	previewSubmit
)

// previewKeyMap defines key bindings for the preview screen
type previewKeyMap struct {
	Edit    key.Binding
	Reset   key.Binding
	Submit  key.Binding
	Confirm key.Binding
	Cancel  key.Binding
	Quit    key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k previewKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Edit, k.Reset, k.Submit, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k previewKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Edit, k.Reset, k.Submit, k.Quit},
	}
}

// PreviewModel is the read-only review of the committed application.
type PreviewModel struct {
	App          form.Application
	ConfirmReset bool
	EditStep     int

	Keys previewKeyMap
}

// NewPreviewModel creates the preview for app.
func NewPreviewModel(app form.Application) PreviewModel {
	return PreviewModel{
		App: app,
		Keys: previewKeyMap{
			Edit: key.NewBinding(
				key.WithKeys("1", "2", "3"),
				key.WithHelp("1-3", "edit step"),
			),
			Reset: key.NewBinding(
				key.WithKeys("r"),
				key.WithHelp("r", "start over"),
			),
			Submit: key.NewBinding(
				key.WithKeys("enter", "s"),
				key.WithHelp("enter", "submit"),
			),
			Confirm: key.NewBinding(
				key.WithKeys("y"),
				key.WithHelp("y", "confirm"),
			),
			Cancel: key.NewBinding(
				key.WithKeys("n", "esc"),
				key.WithHelp("n", "cancel"),
			),
			Quit: key.NewBinding(
				key.WithKeys("q"),
				key.WithHelp("q", "quit"),
			),
		},
	}
}

// Update handles preview keys.
func (m PreviewModel) Update(msg tea.Msg) (PreviewModel, previewAction) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, previewNone
	}

	if m.ConfirmReset {
		switch {
		case key.Matches(keyMsg, m.Keys.Confirm):
			m.ConfirmReset = false
			return m, previewReset
		case key.Matches(keyMsg, m.Keys.Cancel):
			m.ConfirmReset = false
		}
		return m, previewNone
	}

	switch {
	case key.Matches(keyMsg, m.Keys.Edit):
		m.EditStep = int(keyMsg.Runes[0] - '1')
		return m, previewEdit
	case key.Matches(keyMsg, m.Keys.Reset):
		m.ConfirmReset = true
	case key.Matches(keyMsg, m.Keys.Submit):
		return m, previewSubmit
	}
	return m, previewNone
}

// orEmpty returns v, or the placeholder when v is blank.
func orEmpty(v string) string {
	if strings.TrimSpace(v) == "" {
		return emptyValue
	}
	return v
}

func previewRow(label, value string) string {
	return LabelStyle.Render(label) + value
}

func previewSection(title string, step int, rows []string) string {
	heading := TitleStyle.Render(title) + "  " + DetailStyle.Render(fmt.Sprintf("[%d] edit", step+1))
	return BoxStyle.Render(heading + "\n\n" + strings.Join(rows, "\n"))
}

// buildContent builds the preview screen content
func (m PreviewModel) buildContent() string {
	p, pro, add := m.App.Personal, m.App.Professional, m.App.Additional

	var b strings.Builder

	banner := SuccessBoxStyle.Render("✓ All steps completed!") + "\n" +
		RenderSubtitle("Review your information below before submitting.")
	b.WriteString(banner)
	b.WriteString("\n\n")

	personal := []string{
		previewRow("First Name", orEmpty(p.FirstName)),
		previewRow("Last Name", orEmpty(p.LastName)),
		previewRow("Email", orEmpty(p.Email)),
		previewRow("Phone", orEmpty(p.Phone)),
		previewRow("Gender", orEmpty(p.Gender.Label())),
	}
	b.WriteString(previewSection("Personal Details", form.StepPersonal, personal))
	b.WriteString("\n")

	experience := emptyValue
	if lvl := pro.ExperienceLevel; lvl != nil {
		experience = lvl.Title + "  " + DetailStyle.Render(lvl.Category+" · "+lvl.PriceLabel())
	}
	professional := []string{
		previewRow("Job Title", orEmpty(pro.JobTitle)),
		previewRow("Available for Remote", orEmpty(pro.AvailableForRemote.Label())),
		previewRow("Experience Level", experience),
	}
	if len(pro.Skills) > 0 {
		professional = append(professional, LabelStyle.Render("Skills"))
		for _, sk := range pro.Skills {
			professional = append(professional,
				"  • "+orEmpty(sk.Name)+"  "+ChipStyle.Render(sk.YearsLabel()))
		}
	}
	b.WriteString(previewSection("Professional Information", form.StepProfessional, professional))
	b.WriteString("\n")

	additional := []string{
		LabelStyle.Render("Short Bio"),
		lipgloss.NewStyle().Width(MaxContentWidth / 2).Render(orEmpty(add.ShortBio)),
		previewRow("Portfolio URL", orEmpty(add.PortfolioURL)),
	}
	if n := len(add.PreferredDepartments); n > 0 {
		additional = append(additional, LabelStyle.UnsetWidth().Render(fmt.Sprintf("Preferred Departments (%d selected)", n)))
		for _, u := range add.PreferredDepartments {
			additional = append(additional, "  • "+u.FullName()+"  "+DetailStyle.Render(u.CompanyName))
		}
	}
	if add.AgreeToTerms {
		additional = append(additional, "", SuccessBoxStyle.Render("✓ Terms and conditions accepted"))
	}
	b.WriteString(previewSection("Additional Details", form.StepAdditional, additional))
	b.WriteString("\n\n")

	if m.ConfirmReset {
		b.WriteString(WarningBoxStyle.Render("⚠ Start over? All answers will be cleared. (y/n)"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(RenderButton("Start Over (r)", false))
	b.WriteString("  ")
	b.WriteString(RenderButton("Submit Application", true))
	b.WriteString("\n")

	return b.String()
}
