package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/talentdesk/applywizard/internal/directory"
	"github.com/talentdesk/applywizard/internal/form"
)

// AdditionalStep is step 3: bio, preferred departments, portfolio and terms.
type AdditionalStep struct {
	form stepForm

	bio         *areaField
	departments *dropdownField
	dropdown    *Dropdown[directory.User]
	portfolio   *textField
	terms       *checkField
}

// NewAdditionalStep creates step 3 prefilled with data.
func NewAdditionalStep(data form.AdditionalDetails, dd *Dropdown[directory.User]) *AdditionalStep {
	dd.SetSelectedItems(data.PreferredDepartments)

	s := &AdditionalStep{
		bio: newAreaField("Short Bio", form.FieldShortBio,
			"Tell us about yourself... (minimum 50 characters)", data.ShortBio, form.BioMinLength, form.BioMaxLength),
		departments: newDropdownField("Preferred Departments", "(Select one or more)", form.FieldPreferredDepartments, dd),
		dropdown:    dd,
		portfolio:   newTextField("Portfolio URL", form.FieldPortfolioURL, "https://your-portfolio.com", data.PortfolioURL),
		terms:       newCheckField("I agree to the Terms of Service and Privacy Policy", form.FieldAgreeToTerms, data.AgreeToTerms),
	}
	s.form = newStepForm(form.StepAdditional, s.Validate)
	s.form.setFields([]field{
		s.bio, s.departments, s.portfolio, s.terms,
		newButtonField("← Back", actionBack),
		newButtonField("Preview Submission", actionNext),
	}, nil)
	return s
}

func (s *AdditionalStep) base() *stepForm { return &s.form }

// Current returns the values as typed.
func (s *AdditionalStep) Current() form.AdditionalDetails {
	return form.AdditionalDetails{
		ShortBio:             s.bio.Value(),
		PreferredDepartments: s.dropdown.SelectedItems(),
		PortfolioURL:         s.portfolio.Value(),
		AgreeToTerms:         s.terms.Value(),
	}
}

// Validate checks the current values.
func (s *AdditionalStep) Validate() form.FieldErrors {
	return form.ValidateAdditional(s.Current())
}

// Commit saves the trimmed values.
func (s *AdditionalStep) Commit(store *form.Store) {
	store.SaveAdditional(s.Current().Trimmed())
}

func (s *AdditionalStep) HandleKey(tea.KeyMsg) (bool, tea.Cmd) { return false, nil }

func (s *AdditionalStep) HandleAction(stepAction) tea.Cmd { return nil }

// View renders the step.
func (s *AdditionalStep) View() string { return s.form.render() }
