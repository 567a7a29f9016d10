package form

import (
	"errors"
	"fmt"
	"math"
	"net/mail"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Field paths used as FieldErrors keys.
const (
	FieldFirstName            = "firstName"
	FieldLastName             = "lastName"
	FieldEmail                = "email"
	FieldPhone                = "phone"
	FieldGender               = "gender"
	FieldJobTitle             = "jobTitle"
	FieldExperienceLevel      = "experienceLevel"
	FieldSkills               = "skills"
	FieldAvailableForRemote   = "availableForRemote"
	FieldShortBio             = "shortBio"
	FieldPreferredDepartments = "preferredDepartments"
	FieldPortfolioURL         = "portfolioUrl"
	FieldAgreeToTerms         = "agreeToTerms"
)

// Bio length bounds, counted on trimmed text.
const (
	BioMinLength = 50
	BioMaxLength = 300
)

// MaxYearsOfExperience is the upper bound for a skill's years.
const MaxYearsOfExperience = 50

var phonePattern = regexp.MustCompile(`^[+]?[(]?[0-9]{3}[)]?[-\s.]?[0-9]{3}[-\s.]?[0-9]{4,6}$`)

// SkillNamePath returns the path of skill i's name.
func SkillNamePath(i int) string {
	return fmt.Sprintf("skills[%d].skillName", i)
}

// SkillYearsPath returns the path of skill i's years.
func SkillYearsPath(i int) string {
	return fmt.Sprintf("skills[%d].yearsOfExperience", i)
}

// FieldErrors maps field paths to the first failing rule's message, in rule order.
type FieldErrors struct {
	paths    []string
	messages map[string]string
}

// Add records msg for path unless path already failed.
func (fe *FieldErrors) Add(path, msg string) {
	if fe.messages == nil {
		fe.messages = make(map[string]string)
	}
	if _, ok := fe.messages[path]; ok {
		return
	}
	fe.paths = append(fe.paths, path)
	fe.messages[path] = msg
}

func (fe *FieldErrors) check(path string, err error) {
	if err != nil {
		fe.Add(path, err.Error())
	}
}

// First returns the message for path, or "".
func (fe FieldErrors) First(path string) string {
	return fe.messages[path]
}

// Has reports whether path failed.
func (fe FieldErrors) Has(path string) bool {
	_, ok := fe.messages[path]
	return ok
}

// Paths returns failing paths in rule order.
func (fe FieldErrors) Paths() []string {
	return append([]string(nil), fe.paths...)
}

// Len returns the number of failing paths.
func (fe FieldErrors) Len() int {
	return len(fe.paths)
}

// Err returns nil when no rule failed, otherwise an error listing every message.
func (fe FieldErrors) Err() error {
	if len(fe.paths) == 0 {
		return nil
	}
	errs := make([]error, 0, len(fe.paths))
	for _, p := range fe.paths {
		errs = append(errs, fmt.Errorf("%s: %s", p, fe.messages[p]))
	}
	return errors.Join(errs...)
}

func requiredMin(value string, min int, required, tooShort string) error {
	v := strings.TrimSpace(value)
	if v == "" {
		return errors.New(required)
	}
	if utf8.RuneCountInString(v) < min {
		return errors.New(tooShort)
	}
	return nil
}

// ValidateFirstName checks the first name.
func ValidateFirstName(v string) error {
	return requiredMin(v, 2, "First name is required", "First name must be at least 2 characters")
}

// ValidateLastName checks the last name.
func ValidateLastName(v string) error {
	return requiredMin(v, 2, "Last name is required", "Last name must be at least 2 characters")
}

// ValidateEmail checks for a single bare address.
func ValidateEmail(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return errors.New("Email is required")
	}
	addr, err := mail.ParseAddress(v)
	if err != nil || addr.Address != v || !strings.Contains(v[strings.LastIndex(v, "@"):], ".") {
		return errors.New("Please enter a valid email address")
	}
	return nil
}

// ValidatePhone checks the phone number pattern.
func ValidatePhone(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return errors.New("Phone number is required")
	}
	if !phonePattern.MatchString(v) {
		return errors.New("Please enter a valid phone number")
	}
	return nil
}

// ValidateGender checks that one of the listed genders is chosen.
func ValidateGender(g Gender) error {
	for _, known := range Genders {
		if g == known {
			return nil
		}
	}
	return errors.New("Please select a gender")
}

// ValidateJobTitle checks the job title.
func ValidateJobTitle(v string) error {
	return requiredMin(v, 2, "Job title is required", "Job title must be at least 2 characters")
}

// ValidateSkillName checks one skill name.
func ValidateSkillName(v string) error {
	if strings.TrimSpace(v) == "" {
		return errors.New("Skill name is required")
	}
	return nil
}

// ValidateYears checks one skill's years of experience.
func ValidateYears(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return errors.New("Years of experience is required")
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return errors.New("Must be a number")
	}
	if n < 0 {
		return errors.New("Cannot be negative")
	}
	if n > MaxYearsOfExperience {
		return errors.New("Maximum 50 years")
	}
	return nil
}

// ValidateRemote checks that yes or no is chosen.
func ValidateRemote(r RemoteFlag) error {
	if r != RemoteYes && r != RemoteNo {
		return errors.New("Please select an option")
	}
	return nil
}

// ValidateBio checks the trimmed bio length.
func ValidateBio(v string) error {
	v = strings.TrimSpace(v)
	n := utf8.RuneCountInString(v)
	switch {
	case n == 0:
		return errors.New("Short bio is required")
	case n < BioMinLength:
		return errors.New("Bio must be at least 50 characters")
	case n > BioMaxLength:
		return errors.New("Bio cannot exceed 300 characters")
	}
	return nil
}

// ValidatePortfolioURL checks for an absolute http(s) URL with a host.
func ValidatePortfolioURL(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return errors.New("Portfolio URL is required")
	}
	u, err := url.ParseRequestURI(v)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" || strings.ContainsAny(v, " \t") {
		return errors.New("Please enter a valid URL (include https://)")
	}
	return nil
}

// ValidateTerms checks the terms checkbox.
func ValidateTerms(agreed bool) error {
	if !agreed {
		return errors.New("You must agree to the terms to continue")
	}
	return nil
}

// ValidatePersonal runs every step 1 rule.
func ValidatePersonal(p PersonalDetails) FieldErrors {
	var fe FieldErrors
	fe.check(FieldFirstName, ValidateFirstName(p.FirstName))
	fe.check(FieldLastName, ValidateLastName(p.LastName))
	fe.check(FieldEmail, ValidateEmail(p.Email))
	fe.check(FieldPhone, ValidatePhone(p.Phone))
	fe.check(FieldGender, ValidateGender(p.Gender))
	return fe
}

// ValidateProfessional runs every step 2 rule.
func ValidateProfessional(p ProfessionalInfo) FieldErrors {
	var fe FieldErrors
	fe.check(FieldJobTitle, ValidateJobTitle(p.JobTitle))
	if p.ExperienceLevel == nil {
		fe.Add(FieldExperienceLevel, "Please select an experience level")
	}
	if len(p.Skills) == 0 {
		fe.Add(FieldSkills, "Please add at least one skill")
	}
	for i, s := range p.Skills {
		fe.check(SkillNamePath(i), ValidateSkillName(s.Name))
		fe.check(SkillYearsPath(i), ValidateYears(s.YearsOfExperience))
	}
	fe.check(FieldAvailableForRemote, ValidateRemote(p.AvailableForRemote))
	return fe
}

// ValidateAdditional runs every step 3 rule.
func ValidateAdditional(a AdditionalDetails) FieldErrors {
	var fe FieldErrors
	fe.check(FieldShortBio, ValidateBio(a.ShortBio))
	if len(a.PreferredDepartments) == 0 {
		fe.Add(FieldPreferredDepartments, "Please select at least one department")
	}
	fe.check(FieldPortfolioURL, ValidatePortfolioURL(a.PortfolioURL))
	fe.check(FieldAgreeToTerms, ValidateTerms(a.AgreeToTerms))
	return fe
}
