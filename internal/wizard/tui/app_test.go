package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentdesk/applywizard/internal/directory"
	"github.com/talentdesk/applywizard/internal/form"
	"github.com/talentdesk/applywizard/internal/paginate"
)

func newTestApp(t *testing.T, outputPath string) (AppModel, *catalog) {
	t.Helper()
	src := &catalog{total: 25}
	m := NewAppModel(Options{
		Products:   paginate.New(src.products, paginate.WithName("products")),
		Users:      paginate.New(src.users, paginate.WithName("users")),
		OutputPath: outputPath,
	})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 60})
	return updated.(AppModel), src
}

func send(m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	updated, cmd := m.Update(msg)
	return updated.(AppModel), cmd
}

func fillPersonal(t *testing.T, m AppModel) {
	t.Helper()
	step, ok := m.Step.(*PersonalStep)
	require.True(t, ok, "expected personal step, got %T", m.Step)
	step.firstName.SetValue("  Jane ")
	step.lastName.SetValue("Doe")
	step.email.SetValue("jane@example.com")
	step.phone.SetValue("555-123-4567")
	step.gender.Select(1)
}

func fillProfessional(t *testing.T, m AppModel) {
	t.Helper()
	step, ok := m.Step.(*ProfessionalStep)
	require.True(t, ok, "expected professional step, got %T", m.Step)
	step.jobTitle.SetValue("Engineer")
	step.dropdown.SetSelected(&directory.Product{ID: 3, Title: "Powder Canister", Category: "beauty", Price: 14.99})
	step.skills[0].name.SetValue("Go")
	step.skills[0].years.SetValue("5")
	step.remote.Select(0)
}

func fillAdditional(t *testing.T, m AppModel) {
	t.Helper()
	step, ok := m.Step.(*AdditionalStep)
	require.True(t, ok, "expected additional step, got %T", m.Step)
	step.bio.area.SetValue(strings.Repeat("I ship reliable software. ", 3))
	step.dropdown.SetSelectedItems([]directory.User{{ID: 2, FirstName: "Michael", LastName: "Williams", CompanyName: "Acme"}})
	step.portfolio.SetValue("https://jane.dev")
	step.terms.Toggle()
}

func TestNewAppModel_StartsAtPersonalStep(t *testing.T) {
	m, _ := newTestApp(t, "")

	assert.Equal(t, ScreenForm, m.CurrentScreen)
	assert.IsType(t, &PersonalStep{}, m.Step)
	assert.Equal(t, form.StepPersonal, m.Store.CurrentStep())

	view := m.View()
	assert.Contains(t, view, "Personal Details")
	assert.Contains(t, view, "Tell us a bit about yourself")
	assert.Contains(t, view, AppName)
}

func TestStep_InvalidSubmitStaysAndShowsErrors(t *testing.T) {
	m, _ := newTestApp(t, "")

	m, _ = send(m, keyPress("ctrl+s"))

	assert.IsType(t, &PersonalStep{}, m.Step)
	assert.Equal(t, form.StepPersonal, m.Store.CurrentStep())
	assert.Equal(t, form.EmptyPersonal(), m.Store.Personal())

	view := m.View()
	assert.Contains(t, view, "First name is required")
	assert.Contains(t, view, "Please select a gender")
}

func TestStep_ErrorsAppearOnlyAfterBlur(t *testing.T) {
	m, _ := newTestApp(t, "")

	assert.NotContains(t, m.View(), "First name is required")

	m, _ = send(m, keyPress("tab"))

	view := m.View()
	assert.Contains(t, view, "First name is required")
	assert.NotContains(t, view, "Last name is required")
}

func TestStep_ValidSubmitCommitsTrimmedAndAdvances(t *testing.T) {
	m, _ := newTestApp(t, "")
	fillPersonal(t, m)

	m, _ = send(m, keyPress("ctrl+s"))

	assert.IsType(t, &ProfessionalStep{}, m.Step)
	assert.Equal(t, form.StepProfessional, m.Store.CurrentStep())
	assert.Equal(t, "Jane", m.Store.Personal().FirstName)
	assert.Equal(t, form.GenderFemale, m.Store.Personal().Gender)
	assert.Contains(t, m.View(), "Share your work experience and skills")
}

func TestStep_BackPrefillsFromStoreAndDiscardsEdits(t *testing.T) {
	m, _ := newTestApp(t, "")
	fillPersonal(t, m)
	m, _ = send(m, keyPress("ctrl+s"))

	m.Step.(*ProfessionalStep).jobTitle.SetValue("Unsaved")
	m, _ = send(m, keyPress("ctrl+b"))

	step, ok := m.Step.(*PersonalStep)
	require.True(t, ok)
	assert.Equal(t, "Jane", step.firstName.Value())
	assert.Equal(t, form.StepPersonal, m.Store.CurrentStep())
	assert.Empty(t, m.Store.Professional().JobTitle)
	assert.NotContains(t, m.View(), "is required", "prefilled fields are not re-validated")
}

func TestStep_ContinueButtonViaEnter(t *testing.T) {
	m, _ := newTestApp(t, "")
	fillPersonal(t, m)

	// Five fields precede the button.
	for i := 0; i < 5; i++ {
		m, _ = send(m, keyPress("tab"))
	}
	m, _ = send(m, keyPress("enter"))

	assert.IsType(t, &ProfessionalStep{}, m.Step)
}

func TestProfessionalStep_SkillRows(t *testing.T) {
	m, _ := newTestApp(t, "")
	fillPersonal(t, m)
	m, _ = send(m, keyPress("ctrl+s"))
	step := m.Step.(*ProfessionalStep)

	m, _ = send(m, keyPress("ctrl+n"))
	assert.Equal(t, 2, step.SkillCount())
	assert.Equal(t, "Skill 2", step.skills[1].name.label)
	assert.Equal(t, form.SkillNamePath(1), step.skills[1].name.Path())
	assert.Same(t, step.skills[1].name, step.form.focused())

	m, _ = send(m, keyPress("ctrl+d"))
	assert.Equal(t, 1, step.SkillCount())

	// The last row stays.
	step.RemoveSkill(0)
	assert.Equal(t, 1, step.SkillCount())

	fillProfessional(t, m)
	m, _ = send(m, keyPress("ctrl+s"))
	assert.IsType(t, &AdditionalStep{}, m.Step)
	assert.Equal(t, []form.Skill{{Name: "Go", YearsOfExperience: "5"}}, m.Store.Professional().Skills)
	require.NotNil(t, m.Store.Professional().ExperienceLevel)
	assert.Equal(t, 3, m.Store.Professional().ExperienceLevel.ID)
}

func TestProfessionalStep_SkillErrorsShownPerRow(t *testing.T) {
	m, _ := newTestApp(t, "")
	fillPersonal(t, m)
	m, _ = send(m, keyPress("ctrl+s"))
	fillProfessional(t, m)
	m.Step.(*ProfessionalStep).skills[0].years.SetValue("99")

	m, _ = send(m, keyPress("ctrl+s"))

	step, ok := m.Step.(*ProfessionalStep)
	require.True(t, ok)
	assert.Contains(t, m.View(), "Maximum 50 years")
	assert.Same(t, step.skills[0].years, step.form.focused(), "first failing field takes focus")
}

func walkToPreview(t *testing.T, m AppModel) AppModel {
	t.Helper()
	fillPersonal(t, m)
	m, _ = send(m, keyPress("ctrl+s"))
	fillProfessional(t, m)
	m, _ = send(m, keyPress("ctrl+s"))
	fillAdditional(t, m)
	m, _ = send(m, keyPress("ctrl+s"))
	require.Equal(t, ScreenPreview, m.CurrentScreen)
	return m
}

func TestPreview_RendersCommittedData(t *testing.T) {
	m, _ := newTestApp(t, "")
	m = walkToPreview(t, m)

	view := m.Preview.buildContent()
	assert.Contains(t, view, "All steps completed!")
	assert.Contains(t, view, "Jane")
	assert.Contains(t, view, "Female")
	assert.Contains(t, view, "Powder Canister")
	assert.Contains(t, view, "5 yrs")
	assert.Contains(t, view, "Preferred Departments (1 selected)")
	assert.Contains(t, view, "Michael Williams")
	assert.Contains(t, view, "Terms and conditions accepted")
}

func TestPreview_EmptyFieldsShowDash(t *testing.T) {
	view := NewPreviewModel(form.EmptyApplication()).buildContent()
	assert.Contains(t, view, emptyValue)
	assert.NotContains(t, view, "Terms and conditions accepted")
}

func TestPreview_GuardRedirectsWithoutFirstName(t *testing.T) {
	m, _ := newTestApp(t, "")

	m, _ = m.enterStep(form.StepPreview)

	assert.Equal(t, ScreenForm, m.CurrentScreen)
	assert.IsType(t, &PersonalStep{}, m.Step)
	assert.Equal(t, form.StepPersonal, m.Store.CurrentStep())
}

func TestPreview_EditJumpsToStep(t *testing.T) {
	m, _ := newTestApp(t, "")
	m = walkToPreview(t, m)

	m, _ = send(m, keyPress("2"))

	step, ok := m.Step.(*ProfessionalStep)
	require.True(t, ok)
	assert.Equal(t, "Engineer", step.jobTitle.Value())
	assert.Equal(t, form.StepProfessional, m.Store.CurrentStep())
}

func TestPreview_ResetNeedsConfirmation(t *testing.T) {
	m, _ := newTestApp(t, "")
	m = walkToPreview(t, m)

	m, _ = send(m, keyPress("r"))
	assert.True(t, m.Preview.ConfirmReset)
	m, _ = send(m, keyPress("n"))
	assert.Equal(t, ScreenPreview, m.CurrentScreen)
	assert.Equal(t, "Jane", m.Store.Personal().FirstName)

	m, _ = send(m, keyPress("r"))
	m, _ = send(m, keyPress("y"))

	assert.Equal(t, ScreenForm, m.CurrentScreen)
	assert.IsType(t, &PersonalStep{}, m.Step)
	assert.Equal(t, form.EmptyApplication(), m.Store.Snapshot())
}

func TestSubmit_WritesOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "application.yaml")
	m, _ := newTestApp(t, path)
	m = walkToPreview(t, m)

	m, _ = send(m, keyPress("enter"))

	assert.Equal(t, ScreenSubmitted, m.CurrentScreen)
	assert.NoError(t, m.SubmitErr)
	assert.Equal(t, path, m.SavedTo)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "first_name: Jane")
	assert.Contains(t, m.View(), "Application Submitted")

	m, _ = send(m, keyPress("n"))
	assert.Equal(t, ScreenForm, m.CurrentScreen)
	assert.Equal(t, form.EmptyApplication(), m.Store.Snapshot())
}

func professionalApp(t *testing.T) (AppModel, *catalog) {
	t.Helper()
	m, src := newTestApp(t, "")
	fillPersonal(t, m)
	m, _ = send(m, keyPress("ctrl+s"))
	require.IsType(t, &ProfessionalStep{}, m.Step)
	return m, src
}

func TestMouse_ClickTriggerOpensAndOutsideCloses(t *testing.T) {
	m, src := professionalApp(t)

	regions := m.Step.base().dropdownRegions(containerOriginX+contentPaddingX, containerOriginY)
	r, ok := regions[ExperienceDropdownID]
	require.True(t, ok)

	m, cmd := send(m, leftClick(r.X+3, r.Y))
	m = settleApp(m, cmd)

	require.True(t, m.Experience.IsOpen())
	assert.True(t, m.Registry.Registered(ExperienceDropdownID))
	assert.Equal(t, 10, m.Experience.Loader().Len())
	assert.Equal(t, int32(1), src.calls.Load())

	m, _ = send(m, leftClick(0, 0))

	assert.False(t, m.Experience.IsOpen())
	assert.Equal(t, 0, m.Registry.Len())
}

func TestMouse_ClickRowSelectsProduct(t *testing.T) {
	m, _ := professionalApp(t)

	regions := m.Step.base().dropdownRegions(containerOriginX+contentPaddingX, containerOriginY)
	r := regions[ExperienceDropdownID]
	m, cmd := send(m, leftClick(r.X+3, r.Y))
	m = settleApp(m, cmd)
	require.True(t, m.Experience.IsOpen())

	// Opening blurs Job Title, whose error line pushes the dropdown down.
	r = m.Step.base().dropdownRegions(containerOriginX+contentPaddingX, containerOriginY)[ExperienceDropdownID]
	m, _ = send(m, leftClick(r.X+4, r.Y+dropdownListTop+1))

	require.NotNil(t, m.Experience.Selected())
	assert.Equal(t, 2, m.Experience.Selected().ID)
	assert.False(t, m.Experience.IsOpen())
	assert.True(t, m.Step.base().touched[form.FieldExperienceLevel])
}

func TestPageResultLandsWhileStepHidden(t *testing.T) {
	m, _ := professionalApp(t)

	cmd := m.Experience.Open()
	msgs := runCmd(cmd)

	// Leave the step before the page arrives.
	m, _ = send(m, keyPress("ctrl+b"))
	require.IsType(t, &PersonalStep{}, m.Step)
	assert.False(t, m.Experience.IsOpen())

	for _, msg := range msgs {
		if _, ok := msg.(pageLoadedMsg); ok {
			m, _ = send(m, msg)
		}
	}
	assert.Equal(t, 10, m.Experience.Loader().Len())
	assert.False(t, m.Experience.Loader().State().IsLoading)
}

func TestKeyboard_DropdownOpenAndSelect(t *testing.T) {
	m, _ := professionalApp(t)

	m, _ = send(m, keyPress("tab")) // job title -> experience level
	m, cmd := send(m, keyPress("enter"))
	m = settleApp(m, cmd)
	require.True(t, m.Experience.IsOpen())
	assert.Contains(t, m.View(), "esc", "open dropdown shows its own help")

	m, _ = send(m, keyPress("down"))
	m, _ = send(m, keyPress("enter"))

	require.NotNil(t, m.Experience.Selected())
	assert.Equal(t, 1, m.Experience.Selected().ID)

	// Tab away while open closes the list.
	m, cmd = send(m, keyPress("enter"))
	m = settleApp(m, cmd)
	require.True(t, m.Experience.IsOpen())
	m, _ = send(m, keyPress("tab"))
	assert.False(t, m.Experience.IsOpen())
}
