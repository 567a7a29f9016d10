package prompt

import (
	"errors"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	surveycore "github.com/AlecAivazis/survey/v2/core"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ErrAborted signals the user interrupted a prompt (Ctrl+C).
var ErrAborted = errors.New("prompt: aborted")

// Driver asks single questions. The survey implementation talks to a
// terminal; tests script the answers.
type Driver interface {
	Input(message, def string, validate func(string) error) (string, error)
	Multiline(message, def string, validate func(string) error) (string, error)
	Select(message string, options []string, def int) (int, error)
	MultiSelect(message string, options []string, defaults []int) ([]int, error)
	Confirm(message string, def bool) (bool, error)
}

// SurveyDriver is the terminal Driver.
type SurveyDriver struct {
	opts []survey.AskOpt
}

// NewSurveyDriver prompts on in and out. Colors follow NO_COLOR and TERM.
func NewSurveyDriver(in, out *os.File) *SurveyDriver {
	surveycore.DisableColor = !colorsEnabled()

	return &SurveyDriver{opts: []survey.AskOpt{
		survey.WithStdio(in, out, out),
		survey.WithIcons(func(icons *survey.IconSet) {
			icons.Question.Text = ">"
			icons.MarkedOption.Text = "[x]"
			icons.UnmarkedOption.Text = "[ ]"
		}),
	}}
}

func colorsEnabled() bool {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		return false
	}
	return strings.ToLower(strings.TrimSpace(os.Getenv("TERM"))) != "dumb"
}

func (d *SurveyDriver) ask(p survey.Prompt, response any, validate func(string) error) error {
	opts := d.opts
	if validate != nil {
		opts = append(append([]survey.AskOpt{}, d.opts...), survey.WithValidator(func(ans any) error {
			s, _ := ans.(string)
			return validate(s)
		}))
	}
	if err := survey.AskOne(p, response, opts...); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return ErrAborted
		}
		return err
	}
	return nil
}

// Input asks for one line of text.
func (d *SurveyDriver) Input(message, def string, validate func(string) error) (string, error) {
	var out string
	err := d.ask(&survey.Input{Message: message, Default: def}, &out, validate)
	return out, err
}

// Multiline asks for free text ended by an empty line.
func (d *SurveyDriver) Multiline(message, def string, validate func(string) error) (string, error) {
	var out string
	err := d.ask(&survey.Multiline{Message: message, Default: def}, &out, validate)
	return out, err
}

// Select returns the index of the chosen option.
func (d *SurveyDriver) Select(message string, options []string, def int) (int, error) {
	p := &survey.Select{Message: message, Options: options, PageSize: 12}
	if def >= 0 && def < len(options) {
		p.Default = options[def]
	}
	var out int
	err := d.ask(p, &out, nil)
	return out, err
}

// MultiSelect returns the indices of the checked options.
func (d *SurveyDriver) MultiSelect(message string, options []string, defaults []int) ([]int, error) {
	p := &survey.MultiSelect{Message: message, Options: options, PageSize: 12}
	var def []string
	for _, i := range defaults {
		if i >= 0 && i < len(options) {
			def = append(def, options[i])
		}
	}
	if len(def) > 0 {
		p.Default = def
	}
	var out []int
	err := d.ask(p, &out, nil)
	return out, err
}

// Confirm asks a yes/no question.
func (d *SurveyDriver) Confirm(message string, def bool) (bool, error) {
	var out bool
	err := d.ask(&survey.Confirm{Message: message, Default: def}, &out, nil)
	return out, err
}
