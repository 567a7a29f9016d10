package form

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentdesk/applywizard/internal/directory"
)

func msg(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func TestValidateFirstName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "First name is required"},
		{"   ", "First name is required"},
		{"A", "First name must be at least 2 characters"},
		{" A ", "First name must be at least 2 characters"},
		{"Al", ""},
		{"Zoë", ""},
	}

	for _, tt := range tests {
		if got := msg(ValidateFirstName(tt.input)); got != tt.want {
			t.Errorf("ValidateFirstName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
	assert.Equal(t, "Last name must be at least 2 characters", msg(ValidateLastName("x")))
	assert.Equal(t, "Job title is required", msg(ValidateJobTitle("")))
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "Email is required"},
		{"jane@example.com", ""},
		{" jane.doe+jobs@mail.example.org ", ""},
		{"jane", "Please enter a valid email address"},
		{"jane@", "Please enter a valid email address"},
		{"Jane <jane@example.com>", "Please enter a valid email address"},
		{"jane@localhost", "Please enter a valid email address"},
	}

	for _, tt := range tests {
		if got := msg(ValidateEmail(tt.input)); got != tt.want {
			t.Errorf("ValidateEmail(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestValidatePhone(t *testing.T) {
	valid := []string{"5551234567", "+555 123 4567", "(555) 123-4567", "555.123.4567", "+(555)123456789"}
	invalid := []string{"12345", "555-1234", "phone", "555 123 45678901"}

	for _, v := range valid {
		assert.NoError(t, ValidatePhone(v), v)
	}
	for _, v := range invalid {
		assert.EqualError(t, ValidatePhone(v), "Please enter a valid phone number", v)
	}
	assert.EqualError(t, ValidatePhone(""), "Phone number is required")
}

func TestValidateGenderAndRemote(t *testing.T) {
	assert.EqualError(t, ValidateGender(GenderUnset), "Please select a gender")
	assert.EqualError(t, ValidateGender("robot"), "Please select a gender")
	assert.NoError(t, ValidateGender(GenderOther))

	assert.EqualError(t, ValidateRemote(RemoteUnset), "Please select an option")
	assert.NoError(t, ValidateRemote(RemoteNo))
}

func TestValidateYears(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "Years of experience is required"},
		{"five", "Must be a number"},
		{"NaN", "Must be a number"},
		{"nan", "Must be a number"},
		{"Inf", "Must be a number"},
		{"-1", "Cannot be negative"},
		{"51", "Maximum 50 years"},
		{"0", ""},
		{"50", ""},
		{"2.5", ""},
	}

	for _, tt := range tests {
		if got := msg(ValidateYears(tt.input)); got != tt.want {
			t.Errorf("ValidateYears(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestValidateBio_Bounds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", "Short bio is required"},
		{"49 chars", strings.Repeat("a", 49), "Bio must be at least 50 characters"},
		{"49 chars padded", "   " + strings.Repeat("a", 49) + "   ", "Bio must be at least 50 characters"},
		{"50 chars", strings.Repeat("a", 50), ""},
		{"300 chars", strings.Repeat("a", 300), ""},
		{"301 chars", strings.Repeat("a", 301), "Bio cannot exceed 300 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, msg(ValidateBio(tt.input)))
		})
	}
}

func TestValidatePortfolioURL(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "Portfolio URL is required"},
		{"https://jane.dev", ""},
		{"http://example.com/work?tab=1", ""},
		{"jane.dev", "Please enter a valid URL (include https://)"},
		{"https://", "Please enter a valid URL (include https://)"},
		{"ftp://example.com", "Please enter a valid URL (include https://)"},
		{"https://exa mple.com", "Please enter a valid URL (include https://)"},
	}

	for _, tt := range tests {
		if got := msg(ValidatePortfolioURL(tt.input)); got != tt.want {
			t.Errorf("ValidatePortfolioURL(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestValidatePersonal_OrderedErrors(t *testing.T) {
	fe := ValidatePersonal(PersonalDetails{FirstName: "J", Email: "bad"})

	assert.Equal(t, []string{FieldFirstName, FieldLastName, FieldEmail, FieldPhone, FieldGender}, fe.Paths())
	assert.Equal(t, "First name must be at least 2 characters", fe.First(FieldFirstName))
	assert.Equal(t, "Last name is required", fe.First(FieldLastName))
	assert.True(t, fe.Has(FieldGender))
	assert.Error(t, fe.Err())
	assert.Contains(t, fe.Err().Error(), "email: Please enter a valid email address")
}

func TestValidatePersonal_Valid(t *testing.T) {
	fe := ValidatePersonal(PersonalDetails{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		Phone:     "555-123-4567",
		Gender:    GenderFemale,
	})

	assert.Equal(t, 0, fe.Len())
	assert.NoError(t, fe.Err())
	assert.Equal(t, "", fe.First(FieldEmail))
}

func TestValidateProfessional(t *testing.T) {
	info := EmptyProfessional()
	fe := ValidateProfessional(info)

	assert.Equal(t, "Job title is required", fe.First(FieldJobTitle))
	assert.Equal(t, "Please select an experience level", fe.First(FieldExperienceLevel))
	assert.Equal(t, "Skill name is required", fe.First(SkillNamePath(0)))
	assert.Equal(t, "Years of experience is required", fe.First(SkillYearsPath(0)))
	assert.Equal(t, "Please select an option", fe.First(FieldAvailableForRemote))
	assert.False(t, fe.Has(FieldSkills))

	info.Skills = nil
	assert.Equal(t, "Please add at least one skill", ValidateProfessional(info).First(FieldSkills))

	valid := ProfessionalInfo{
		JobTitle:           "Engineer",
		ExperienceLevel:    &directory.Product{ID: 1, Title: "Mascara"},
		Skills:             []Skill{{Name: "Go", YearsOfExperience: "4"}, {Name: "SQL", YearsOfExperience: "0"}},
		AvailableForRemote: RemoteYes,
	}
	require.NoError(t, ValidateProfessional(valid).Err())

	valid.Skills[1].YearsOfExperience = "x"
	assert.Equal(t, []string{SkillYearsPath(1)}, ValidateProfessional(valid).Paths())
}

func TestValidateAdditional(t *testing.T) {
	fe := ValidateAdditional(EmptyAdditional())
	assert.Equal(t, []string{FieldShortBio, FieldPreferredDepartments, FieldPortfolioURL, FieldAgreeToTerms}, fe.Paths())
	assert.Equal(t, "You must agree to the terms to continue", fe.First(FieldAgreeToTerms))

	valid := AdditionalDetails{
		ShortBio:             strings.Repeat("I build reliable systems. ", 3),
		PreferredDepartments: []directory.User{{ID: 3, FirstName: "Sophia"}},
		PortfolioURL:         "https://jane.dev",
		AgreeToTerms:         true,
	}
	assert.NoError(t, ValidateAdditional(valid).Err())
}

func TestFieldErrors_KeepsFirstMessage(t *testing.T) {
	var fe FieldErrors
	fe.Add("a", "first")
	fe.Add("a", "second")

	assert.Equal(t, "first", fe.First("a"))
	assert.Equal(t, 1, fe.Len())
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "Female", GenderFemale.Label())
	assert.Equal(t, "", GenderUnset.Label())
	assert.Equal(t, "✓ Yes", RemoteYes.Label())
	assert.Equal(t, "✕ No", RemoteNo.Label())
}
