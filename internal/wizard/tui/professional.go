package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/talentdesk/applywizard/internal/directory"
	"github.com/talentdesk/applywizard/internal/form"
)

type skillRow struct {
	name  *textField
	years *textField
}

// ProfessionalStep is step 2: job title, experience level, skills and
// remote availability.
type ProfessionalStep struct {
	form stepForm

	jobTitle   *textField
	experience *dropdownField
	dropdown   *Dropdown[directory.Product]
	skills     []skillRow
	addSkill   *buttonField
	remote     *choiceField
}

// NewProfessionalStep creates step 2 prefilled with data. The dropdown is
// shared with the app so its loaded pages survive step changes.
func NewProfessionalStep(data form.ProfessionalInfo, dd *Dropdown[directory.Product]) *ProfessionalStep {
	dd.SetSelected(data.ExperienceLevel)

	s := &ProfessionalStep{
		jobTitle:   newTextField("Job Title", form.FieldJobTitle, "e.g. Senior Frontend Developer", data.JobTitle),
		experience: newDropdownField("Experience Level", "(Scroll to load more)", form.FieldExperienceLevel, dd),
		dropdown:   dd,
		addSkill:   newButtonField("+ Add Skill", actionAddSkill),
		remote:     newRemoteField(data.AvailableForRemote),
	}
	for _, sk := range data.Skills {
		s.skills = append(s.skills, s.newSkillRow(sk))
	}
	if len(s.skills) == 0 {
		s.skills = append(s.skills, s.newSkillRow(form.Skill{}))
	}

	s.form = newStepForm(form.StepProfessional, s.Validate)
	s.form.setFields(s.ringFields(), nil)
	return s
}

func (s *ProfessionalStep) newSkillRow(sk form.Skill) skillRow {
	return skillRow{
		name:  newTextField("", "", "e.g. React, Python, Design...", sk.Name),
		years: newTextField("  Years", "", "0", sk.YearsOfExperience),
	}
}

// relabel numbers the skill rows and their validation paths.
func (s *ProfessionalStep) relabel() {
	for i, row := range s.skills {
		row.name.label = fmt.Sprintf("Skill %d", i+1)
		row.name.path = form.SkillNamePath(i)
		row.years.path = form.SkillYearsPath(i)
	}
}

func (s *ProfessionalStep) ringFields() []field {
	s.relabel()
	fields := []field{s.jobTitle, s.experience}
	for _, row := range s.skills {
		fields = append(fields, row.name, row.years)
	}
	return append(fields,
		s.addSkill,
		s.remote,
		newButtonField("← Back", actionBack),
		newButtonField("Continue to Step 3 →", actionNext),
	)
}

func (s *ProfessionalStep) base() *stepForm { return &s.form }

// Current returns the values as typed.
func (s *ProfessionalStep) Current() form.ProfessionalInfo {
	info := form.ProfessionalInfo{
		JobTitle:           s.jobTitle.Value(),
		ExperienceLevel:    s.dropdown.Selected(),
		AvailableForRemote: form.RemoteFlag(s.remote.Value()),
	}
	for _, row := range s.skills {
		info.Skills = append(info.Skills, form.Skill{
			Name:              row.name.Value(),
			YearsOfExperience: row.years.Value(),
		})
	}
	return info
}

// Validate checks the current values.
func (s *ProfessionalStep) Validate() form.FieldErrors {
	return form.ValidateProfessional(s.Current())
}

// Commit saves the trimmed values.
func (s *ProfessionalStep) Commit(store *form.Store) {
	store.SaveProfessional(s.Current().Trimmed())
}

// SkillCount returns the number of skill rows.
func (s *ProfessionalStep) SkillCount() int { return len(s.skills) }

// AddSkill appends a blank row and focuses it.
func (s *ProfessionalStep) AddSkill() tea.Cmd {
	row := s.newSkillRow(form.Skill{})
	s.skills = append(s.skills, row)
	return s.form.setFields(s.ringFields(), row.name)
}

// RemoveSkill drops row i. The last row cannot be removed.
func (s *ProfessionalStep) RemoveSkill(i int) tea.Cmd {
	if len(s.skills) <= 1 || i < 0 || i >= len(s.skills) {
		return nil
	}
	s.skills = append(s.skills[:i:i], s.skills[i+1:]...)

	// Row paths shift; forget which rows were touched.
	for p := range s.form.touched {
		if strings.HasPrefix(p, form.FieldSkills+"[") {
			delete(s.form.touched, p)
		}
	}

	next := i
	if next >= len(s.skills) {
		next = len(s.skills) - 1
	}
	return s.form.setFields(s.ringFields(), s.skills[next].name)
}

// focusedSkill returns the row holding focus, or -1.
func (s *ProfessionalStep) focusedSkill() int {
	cur := s.form.focused()
	for i, row := range s.skills {
		if field(row.name) == cur || field(row.years) == cur {
			return i
		}
	}
	return -1
}

// HandleKey adds and removes skill rows.
func (s *ProfessionalStep) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, s.form.keys.AddSkill):
		return true, s.AddSkill()
	case key.Matches(msg, s.form.keys.RemoveSkill):
		if i := s.focusedSkill(); i >= 0 {
			return true, s.RemoveSkill(i)
		}
		return true, nil
	}
	return false, nil
}

// HandleAction runs the add-skill button.
func (s *ProfessionalStep) HandleAction(a stepAction) tea.Cmd {
	if a == actionAddSkill {
		return s.AddSkill()
	}
	return nil
}

// View renders the step.
func (s *ProfessionalStep) View() string { return s.form.render() }
