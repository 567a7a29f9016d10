package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/talentdesk/applywizard/internal/form"
)

// PersonalStep is step 1: name, contact details and gender.
type PersonalStep struct {
	form stepForm

	firstName *textField
	lastName  *textField
	email     *textField
	phone     *textField
	gender    *choiceField
}

// NewPersonalStep creates step 1 prefilled with data.
func NewPersonalStep(data form.PersonalDetails) *PersonalStep {
	s := &PersonalStep{
		firstName: newTextField("First Name", form.FieldFirstName, "Jane", data.FirstName),
		lastName:  newTextField("Last Name", form.FieldLastName, "Doe", data.LastName),
		email:     newTextField("Email Address", form.FieldEmail, "jane@example.com", data.Email),
		phone:     newTextField("Phone Number", form.FieldPhone, "+1 (555) 000-0000", data.Phone),
		gender:    newGenderField(data.Gender),
	}
	s.form = newStepForm(form.StepPersonal, s.Validate)
	s.form.setFields([]field{
		s.firstName, s.lastName, s.email, s.phone, s.gender,
		newButtonField("Continue to Step 2 →", actionNext),
	}, nil)
	return s
}

func (s *PersonalStep) base() *stepForm { return &s.form }

// Current returns the values as typed.
func (s *PersonalStep) Current() form.PersonalDetails {
	return form.PersonalDetails{
		FirstName: s.firstName.Value(),
		LastName:  s.lastName.Value(),
		Email:     s.email.Value(),
		Phone:     s.phone.Value(),
		Gender:    form.Gender(s.gender.Value()),
	}
}

// Validate checks the current values.
func (s *PersonalStep) Validate() form.FieldErrors {
	return form.ValidatePersonal(s.Current())
}

// Commit saves the trimmed values.
func (s *PersonalStep) Commit(store *form.Store) {
	store.SavePersonal(s.Current().Trimmed())
}

func (s *PersonalStep) HandleKey(tea.KeyMsg) (bool, tea.Cmd) { return false, nil }

func (s *PersonalStep) HandleAction(stepAction) tea.Cmd { return nil }

// View renders the step.
func (s *PersonalStep) View() string { return s.form.render() }
