package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/talentdesk/applywizard/internal/form"
)

func orEmpty(v string) string {
	if strings.TrimSpace(v) == "" {
		return EmptyValue
	}
	return v
}

func yesNo(ok bool) string {
	if ok {
		return "Yes"
	}
	return "No"
}

func summaryRow(key, value string) string {
	return ResultKeyStyle.Render(key) + ResultValueStyle.Render(value)
}

func summarySection(n int, title string, rows []string, width int) string {
	heading := SectionTitleStyle.Render(fmt.Sprintf("%d. %s", n, title))
	return SectionBoxStyle(width).Render(lipgloss.JoinVertical(lipgloss.Left, append([]string{heading, ""}, rows...)...))
}

// RenderApplication renders every committed answer, grouped by step, with a
// dash for anything left blank.
func RenderApplication(app form.Application, width int) string {
	width = clampWidth(width)
	p, pro, add := app.Personal, app.Professional, app.Additional

	personal := []string{
		summaryRow("First Name", orEmpty(p.FirstName)),
		summaryRow("Last Name", orEmpty(p.LastName)),
		summaryRow("Email", orEmpty(p.Email)),
		summaryRow("Phone", orEmpty(p.Phone)),
		summaryRow("Gender", orEmpty(p.Gender.Label())),
	}

	experience := EmptyValue
	if lvl := pro.ExperienceLevel; lvl != nil {
		experience = fmt.Sprintf("%s (%s · %s)", lvl.Title, lvl.Category, lvl.PriceLabel())
	}
	remote := EmptyValue
	switch pro.AvailableForRemote {
	case form.RemoteYes:
		remote = "Yes"
	case form.RemoteNo:
		remote = "No"
	}
	professional := []string{
		summaryRow("Job Title", orEmpty(pro.JobTitle)),
		summaryRow("Experience Level", experience),
		summaryRow("Available for Remote", remote),
	}
	if len(pro.Skills) == 0 {
		professional = append(professional, summaryRow("Skills", EmptyValue))
	}
	for i, sk := range pro.Skills {
		key := ""
		if i == 0 {
			key = "Skills"
		}
		professional = append(professional, summaryRow(key, orEmpty(sk.Name)+"  "+StepNoteStyle.Render(sk.YearsLabel())))
	}

	additional := []string{
		summaryRow("Short Bio", orEmpty(add.ShortBio)),
		summaryRow("Portfolio URL", orEmpty(add.PortfolioURL)),
	}
	if len(add.PreferredDepartments) == 0 {
		additional = append(additional, summaryRow("Preferred Departments", EmptyValue))
	}
	for i, u := range add.PreferredDepartments {
		key := ""
		if i == 0 {
			key = "Preferred Departments"
		}
		additional = append(additional, summaryRow(key, u.FullName()+"  "+StepNoteStyle.Render(u.CompanyName)))
	}
	additional = append(additional, summaryRow("Terms Accepted", yesNo(add.AgreeToTerms)))

	return lipgloss.JoinVertical(lipgloss.Left,
		summarySection(1, form.Steps[form.StepPersonal].Title, personal, width),
		summarySection(2, form.Steps[form.StepProfessional].Title, professional, width),
		summarySection(3, form.Steps[form.StepAdditional].Title, additional, width),
	)
}
