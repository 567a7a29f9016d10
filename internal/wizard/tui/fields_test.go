package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/talentdesk/applywizard/internal/form"
)

func TestChoiceField_Cycles(t *testing.T) {
	f := newGenderField(form.GenderUnset)
	assert.Equal(t, "", f.Value())
	assert.True(t, f.consumesEnter())

	f.Update(keyPress("right"))
	assert.Equal(t, "male", f.Value())
	f.Update(keyPress("left"))
	assert.Equal(t, "other", f.Value())
	f.Update(keyPress("right"))
	assert.Equal(t, "male", f.Value())
	assert.False(t, f.consumesEnter())

	prefilled := newRemoteField(form.RemoteNo)
	assert.Equal(t, "no", prefilled.Value())
}

func TestChoiceField_OptionAt(t *testing.T) {
	f := newRemoteField(form.RemoteUnset)

	assert.Equal(t, -1, f.optionAt(0))
	assert.Equal(t, 0, f.optionAt(LabelColumnWidth))
	assert.Equal(t, 1, f.optionAt(f.optionX(1)+1))
}

func TestCheckField_Toggles(t *testing.T) {
	f := newCheckField("I agree", form.FieldAgreeToTerms, false)

	f.Update(keyPress(" "))
	assert.True(t, f.Value())
	assert.Contains(t, f.View(), "[x] I agree")

	f.Update(keyPress("enter"))
	assert.False(t, f.Value())
}

func TestAreaField_Counter(t *testing.T) {
	f := newAreaField("Short Bio", form.FieldShortBio, "", "  hello  ", form.BioMinLength, form.BioMaxLength)
	assert.Contains(t, f.counter(), "5 / 300 characters (45 more needed)")

	f.area.SetValue(strings.Repeat("a", 60))
	assert.Contains(t, f.counter(), "60 / 300 characters")
	assert.NotContains(t, f.counter(), "more needed")
}

func TestTextField_EnterAdvances(t *testing.T) {
	f := newTextField("Email Address", form.FieldEmail, "", "jane@example.com")

	assert.False(t, f.consumesEnter())
	assert.Equal(t, form.FieldEmail, f.Path())
	assert.Contains(t, f.View(), "Email Address")
}

func TestRenderStepper(t *testing.T) {
	view := renderStepper(form.StepProfessional)

	assert.Contains(t, view, "✓ Personal Details")
	assert.Contains(t, view, "2 Professional Info")
	assert.Contains(t, view, "3 Additional Details")
	assert.Contains(t, view, "What you do")
}
