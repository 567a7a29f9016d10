package form

import (
	"strconv"
	"strings"

	"github.com/talentdesk/applywizard/internal/directory"
)

// Step indexes. StepPreview is the read-only review after the three forms.
const (
	StepPersonal = iota
	StepProfessional
	StepAdditional
	StepPreview
)

// StepCount is the number of editable steps.
const StepCount = 3

// StepMeta is the stepper label and the form heading of a step.
type StepMeta struct {
	Label       string
	Description string
	Title       string
	Subtitle    string
}

// Steps describes the three editable steps in order.
var Steps = [StepCount]StepMeta{
	{Label: "Personal Details", Description: "Who you are", Title: "Personal Details", Subtitle: "Tell us a bit about yourself"},
	{Label: "Professional Info", Description: "What you do", Title: "Professional Information", Subtitle: "Share your work experience and skills"},
	{Label: "Additional Details", Description: "Final touches", Title: "Additional Details", Subtitle: "Almost there — just a few more things"},
}

// Gender is the applicant's self-described gender.
type Gender string

const (
	GenderUnset  Gender = ""
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Genders lists the selectable values in display order.
var Genders = []Gender{GenderMale, GenderFemale, GenderOther}

// Label returns the capitalized display name.
func (g Gender) Label() string {
	if g == GenderUnset {
		return ""
	}
	return strings.ToUpper(string(g[:1])) + string(g[1:])
}

// RemoteFlag answers "available for remote".
type RemoteFlag string

const (
	RemoteUnset RemoteFlag = ""
	RemoteYes   RemoteFlag = "yes"
	RemoteNo    RemoteFlag = "no"
)

// Label returns the toggle caption.
func (r RemoteFlag) Label() string {
	switch r {
	case RemoteYes:
		return "✓ Yes"
	case RemoteNo:
		return "✕ No"
	default:
		return ""
	}
}

// PersonalDetails is step 1.
type PersonalDetails struct {
	FirstName string `json:"firstName" yaml:"first_name"`
	LastName  string `json:"lastName" yaml:"last_name"`
	Email     string `json:"email" yaml:"email"`
	Phone     string `json:"phone" yaml:"phone"`
	Gender    Gender `json:"gender" yaml:"gender"`
}

// Skill is one row of the skills list. Years are kept as typed so that
// non-numeric input can be reported rather than silently zeroed.
type Skill struct {
	Name              string `json:"skillName" yaml:"name"`
	YearsOfExperience string `json:"yearsOfExperience" yaml:"years_of_experience"`
}

// YearsLabel renders the years as "1 yr" or "N yrs".
func (s Skill) YearsLabel() string {
	years := strings.TrimSpace(s.YearsOfExperience)
	if n, err := strconv.ParseFloat(years, 64); err == nil && n == 1 {
		return years + " yr"
	}
	return years + " yrs"
}

// ProfessionalInfo is step 2.
type ProfessionalInfo struct {
	JobTitle           string             `json:"jobTitle" yaml:"job_title"`
	ExperienceLevel    *directory.Product `json:"experienceLevel" yaml:"experience_level"`
	Skills             []Skill            `json:"skills" yaml:"skills"`
	AvailableForRemote RemoteFlag         `json:"availableForRemote" yaml:"available_for_remote"`
}

// AdditionalDetails is step 3.
type AdditionalDetails struct {
	ShortBio             string           `json:"shortBio" yaml:"short_bio"`
	PreferredDepartments []directory.User `json:"preferredDepartments" yaml:"preferred_departments"`
	PortfolioURL         string           `json:"portfolioUrl" yaml:"portfolio_url"`
	AgreeToTerms         bool             `json:"agreeToTerms" yaml:"agree_to_terms"`
}

// Application is the full committed form.
type Application struct {
	Personal     PersonalDetails   `json:"personal" yaml:"personal"`
	Professional ProfessionalInfo  `json:"professional" yaml:"professional"`
	Additional   AdditionalDetails `json:"additional" yaml:"additional"`
}

// EmptyPersonal returns step 1 defaults.
func EmptyPersonal() PersonalDetails {
	return PersonalDetails{}
}

// EmptyProfessional returns step 2 defaults: one blank skill row.
func EmptyProfessional() ProfessionalInfo {
	return ProfessionalInfo{Skills: []Skill{{}}}
}

// EmptyAdditional returns step 3 defaults.
func EmptyAdditional() AdditionalDetails {
	return AdditionalDetails{PreferredDepartments: []directory.User{}}
}

// EmptyApplication returns the defaults for all steps.
func EmptyApplication() Application {
	return Application{
		Personal:     EmptyPersonal(),
		Professional: EmptyProfessional(),
		Additional:   EmptyAdditional(),
	}
}

// Clone returns a deep copy.
func (p ProfessionalInfo) Clone() ProfessionalInfo {
	out := p
	out.Skills = append([]Skill(nil), p.Skills...)
	if p.ExperienceLevel != nil {
		lvl := *p.ExperienceLevel
		out.ExperienceLevel = &lvl
	}
	return out
}

// Clone returns a deep copy.
func (a AdditionalDetails) Clone() AdditionalDetails {
	out := a
	out.PreferredDepartments = append([]directory.User{}, a.PreferredDepartments...)
	return out
}

// Clone returns a deep copy.
func (a Application) Clone() Application {
	return Application{
		Personal:     a.Personal,
		Professional: a.Professional.Clone(),
		Additional:   a.Additional.Clone(),
	}
}

// Trimmed returns p with surrounding whitespace removed from text fields.
func (p PersonalDetails) Trimmed() PersonalDetails {
	p.FirstName = strings.TrimSpace(p.FirstName)
	p.LastName = strings.TrimSpace(p.LastName)
	p.Email = strings.TrimSpace(p.Email)
	p.Phone = strings.TrimSpace(p.Phone)
	return p
}

// Trimmed returns a copy with surrounding whitespace removed from text fields.
func (p ProfessionalInfo) Trimmed() ProfessionalInfo {
	out := p.Clone()
	out.JobTitle = strings.TrimSpace(out.JobTitle)
	for i := range out.Skills {
		out.Skills[i].Name = strings.TrimSpace(out.Skills[i].Name)
		out.Skills[i].YearsOfExperience = strings.TrimSpace(out.Skills[i].YearsOfExperience)
	}
	return out
}

// Trimmed returns a copy with surrounding whitespace removed from text fields.
func (a AdditionalDetails) Trimmed() AdditionalDetails {
	out := a.Clone()
	out.ShortBio = strings.TrimSpace(out.ShortBio)
	out.PortfolioURL = strings.TrimSpace(out.PortfolioURL)
	return out
}
