package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/talentdesk/applywizard/internal/directory"
	"github.com/talentdesk/applywizard/internal/form"
	"github.com/talentdesk/applywizard/internal/logging"
	"github.com/talentdesk/applywizard/internal/paginate"
	"github.com/talentdesk/applywizard/internal/selection"
	"github.com/talentdesk/applywizard/internal/ui"
)

// LoadMoreOption is appended to paginated choices while more pages exist.
const LoadMoreOption = "↓ Load more…"

// ErrNoOptions is returned when a remote list turns out to be empty.
var ErrNoOptions = errors.New("no options available")

// Review menu entries.
const (
	reviewSubmit    = "Submit application"
	reviewEditStep1 = "Edit personal details"
	reviewEditStep2 = "Edit professional information"
	reviewEditStep3 = "Edit additional details"
	reviewStartOver = "Start over"
)

var reviewOptions = []string{reviewSubmit, reviewEditStep1, reviewEditStep2, reviewEditStep3, reviewStartOver}

// Config wires a Wizard.
type Config struct {
	Driver          Driver
	Out             io.Writer
	Width           int // Summary width; 0 detects the terminal
	Products        *paginate.Loader[directory.Product]
	Users           *paginate.Loader[directory.User]
	ShowFetchErrors bool
}

// Wizard runs the application form as a sequence of line prompts.
type Wizard struct {
	cfg     Config
	store   *form.Store
	printer *ui.Printer
}

// New creates a wizard with an empty store.
func New(cfg Config) *Wizard {
	printer := ui.NewPrinter(cfg.Out)
	if cfg.Width > 0 {
		printer.WithWidth(cfg.Width)
	}
	return &Wizard{cfg: cfg, store: form.NewStore(), printer: printer}
}

// Store exposes the committed answers.
func (w *Wizard) Store() *form.Store {
	return w.store
}

// Run walks the steps until the applicant submits from the review.
func (w *Wizard) Run(ctx context.Context) (form.Application, error) {
	for {
		if err := ctx.Err(); err != nil {
			return form.Application{}, err
		}

		var err error
		switch w.store.CurrentStep() {
		case form.StepPersonal:
			err = w.askPersonal()
		case form.StepProfessional:
			err = w.askProfessional(ctx)
		case form.StepAdditional:
			err = w.askAdditional(ctx)
		default:
			var submitted bool
			submitted, err = w.review()
			if err == nil && submitted {
				return w.store.Snapshot(), nil
			}
		}
		if err != nil {
			return form.Application{}, err
		}
	}
}

func (w *Wizard) stepHeading(step int) {
	meta := form.Steps[step]
	w.printer.Newline()
	w.printer.Println(ui.SectionTitleStyle.Render(fmt.Sprintf("Step %d/%d: %s", step+1, form.StepCount, meta.Title)))
	w.printer.Println(ui.StepNoteStyle.Render(meta.Subtitle))
}

// stepFailed prints every failing rule and reports whether any exist.
func (w *Wizard) stepFailed(errs form.FieldErrors) bool {
	if errs.Len() == 0 {
		return false
	}
	for _, path := range errs.Paths() {
		w.printer.Println(ui.ErrorMessageStyle.Render("  ✗ " + errs.First(path)))
	}
	return true
}

// commit saves a valid step and advances.
func (w *Wizard) commit(step int) {
	meta := form.Steps[step]
	logging.LogStepCommitted(step, meta.Title)
	w.store.SetCurrentStep(step + 1)
}

func (w *Wizard) askPersonal() error {
	w.stepHeading(form.StepPersonal)
	p := w.store.Personal()

	for {
		var err error
		if p.FirstName, err = w.cfg.Driver.Input("First Name", p.FirstName, form.ValidateFirstName); err != nil {
			return err
		}
		if p.LastName, err = w.cfg.Driver.Input("Last Name", p.LastName, form.ValidateLastName); err != nil {
			return err
		}
		if p.Email, err = w.cfg.Driver.Input("Email Address", p.Email, form.ValidateEmail); err != nil {
			return err
		}
		if p.Phone, err = w.cfg.Driver.Input("Phone Number", p.Phone, form.ValidatePhone); err != nil {
			return err
		}

		labels := make([]string, len(form.Genders))
		def := 0
		for i, g := range form.Genders {
			labels[i] = g.Label()
			if g == p.Gender {
				def = i
			}
		}
		idx, err := w.cfg.Driver.Select("Gender", labels, def)
		if err != nil {
			return err
		}
		p.Gender = form.Genders[idx]

		p = p.Trimmed()
		if !w.stepFailed(form.ValidatePersonal(p)) {
			w.store.SavePersonal(p)
			w.commit(form.StepPersonal)
			return nil
		}
	}
}

func (w *Wizard) askProfessional(ctx context.Context) error {
	w.stepHeading(form.StepProfessional)
	p := w.store.Professional()

	for {
		var err error
		if p.JobTitle, err = w.cfg.Driver.Input("Job Title", p.JobTitle, form.ValidateJobTitle); err != nil {
			return err
		}

		level, err := pickOne(ctx, w, w.cfg.Products, "Experience Level", productOption, p.ExperienceLevel)
		if err != nil {
			return err
		}
		p.ExperienceLevel = &level

		if p.Skills, err = w.askSkills(p.Skills); err != nil {
			return err
		}

		def := 0
		if p.AvailableForRemote == form.RemoteNo {
			def = 1
		}
		idx, err := w.cfg.Driver.Select("Remote Work?", []string{"Yes", "No"}, def)
		if err != nil {
			return err
		}
		p.AvailableForRemote = []form.RemoteFlag{form.RemoteYes, form.RemoteNo}[idx]

		p = p.Trimmed()
		if !w.stepFailed(form.ValidateProfessional(p)) {
			w.store.SaveProfessional(p)
			w.commit(form.StepProfessional)
			return nil
		}
	}
}

// askSkills walks the existing rows, then offers to add more. The first row
// is always kept.
func (w *Wizard) askSkills(existing []form.Skill) ([]form.Skill, error) {
	if len(existing) == 0 {
		existing = []form.Skill{{}}
	}

	var skills []form.Skill
	ask := func(i int, s form.Skill) error {
		var err error
		if s.Name, err = w.cfg.Driver.Input(fmt.Sprintf("Skill %d", i+1), s.Name, form.ValidateSkillName); err != nil {
			return err
		}
		if s.YearsOfExperience, err = w.cfg.Driver.Input(fmt.Sprintf("Skill %d years of experience", i+1), s.YearsOfExperience, form.ValidateYears); err != nil {
			return err
		}
		skills = append(skills, s)
		return nil
	}

	for i, s := range existing {
		if i > 0 {
			keep, err := w.cfg.Driver.Confirm(fmt.Sprintf("Keep skill %d (%s)?", i+1, s.Name), true)
			if err != nil {
				return nil, err
			}
			if !keep {
				continue
			}
		}
		if err := ask(len(skills), s); err != nil {
			return nil, err
		}
	}

	for {
		more, err := w.cfg.Driver.Confirm("Add another skill?", false)
		if err != nil {
			return nil, err
		}
		if !more {
			return skills, nil
		}
		if err := ask(len(skills), form.Skill{}); err != nil {
			return nil, err
		}
	}
}

func (w *Wizard) askAdditional(ctx context.Context) error {
	w.stepHeading(form.StepAdditional)
	a := w.store.Additional()

	for {
		var err error
		if a.ShortBio, err = w.cfg.Driver.Multiline(
			fmt.Sprintf("Short Bio (%d-%d characters)", form.BioMinLength, form.BioMaxLength), a.ShortBio, form.ValidateBio); err != nil {
			return err
		}

		if a.PreferredDepartments, err = pickMany(ctx, w, w.cfg.Users, "Preferred Departments", userOption, a.PreferredDepartments,
			"Please select at least one department"); err != nil {
			return err
		}

		if a.PortfolioURL, err = w.cfg.Driver.Input("Portfolio URL", a.PortfolioURL, form.ValidatePortfolioURL); err != nil {
			return err
		}

		if a.AgreeToTerms, err = w.cfg.Driver.Confirm("I agree to the Terms of Service and Privacy Policy", a.AgreeToTerms); err != nil {
			return err
		}

		a = a.Trimmed()
		if !w.stepFailed(form.ValidateAdditional(a)) {
			w.store.SaveAdditional(a)
			w.commit(form.StepAdditional)
			return nil
		}
	}
}

// review shows the summary and applies the chosen action. It reports true
// when the applicant submits.
func (w *Wizard) review() (bool, error) {
	if w.store.Personal().FirstName == "" {
		logging.Warn("Review requested without personal details, returning to step 1")
		w.store.SetCurrentStep(form.StepPersonal)
		return false, nil
	}

	w.printer.Newline()
	w.printer.Println(ui.SuccessTitleStyle.Render("✓ All steps completed!"))
	w.printer.Println(ui.StepNoteStyle.Render("Review your information below before submitting."))
	w.printer.PrintApplication(w.store.Snapshot())

	idx, err := w.cfg.Driver.Select("What next?", reviewOptions, 0)
	if err != nil {
		return false, err
	}

	switch reviewOptions[idx] {
	case reviewSubmit:
		return true, nil
	case reviewEditStep1:
		w.store.SetCurrentStep(form.StepPersonal)
	case reviewEditStep2:
		w.store.SetCurrentStep(form.StepProfessional)
	case reviewEditStep3:
		w.store.SetCurrentStep(form.StepAdditional)
	case reviewStartOver:
		ok, err := w.cfg.Driver.Confirm("Start over? All answers will be cleared.", false)
		if err != nil {
			return false, err
		}
		if ok {
			w.store.Reset()
		}
	}
	return false, nil
}

// fetchFailed reports a page that could not be loaded. The applicant can
// retry through the load-more option.
func (w *Wizard) fetchFailed(err error) {
	logging.Debug("Page request failed in plain mode", zap.Error(err))
	if w.cfg.ShowFetchErrors {
		w.printer.Println(ui.StepNoteStyle.Render("  Couldn't load more: " + directory.ShortMessage(err)))
	}
}

func productOption(p directory.Product) string {
	return fmt.Sprintf("%s (%s · %s)", p.Title, p.Category, p.PriceLabel())
}

func userOption(u directory.User) string {
	if u.CompanyName == "" {
		return u.FullName()
	}
	return u.FullName() + " · " + u.CompanyName
}

// options renders the loaded items and appends the load-more entry while
// the loader has pages left.
func options[T any](st paginate.LoaderState[T], label func(T) string) []string {
	out := make([]string, 0, len(st.Items)+1)
	for _, it := range st.Items {
		out = append(out, label(it))
	}
	if st.HasMore {
		out = append(out, LoadMoreOption)
	}
	return out
}

// pickOne asks for a single item, loading further pages on request.
func pickOne[T selection.Keyed](ctx context.Context, w *Wizard, l *paginate.Loader[T], message string, label func(T) string, current *T) (T, error) {
	var zero T
	if err := l.Load(ctx); err != nil {
		w.fetchFailed(err)
	}

	focus := -1
	for {
		st := l.State()
		if len(st.Items) == 0 && !st.HasMore {
			return zero, fmt.Errorf("%s: %w", message, ErrNoOptions)
		}

		opts := options(st, label)
		def := focus
		if def < 0 {
			def = 0
			for i, it := range st.Items {
				if current != nil && it.Key() == (*current).Key() {
					def = i
				}
			}
		}
		if def >= len(opts) {
			def = len(opts) - 1
		}

		idx, err := w.cfg.Driver.Select(message, opts, def)
		if err != nil {
			return zero, err
		}
		if idx < len(st.Items) {
			return st.Items[idx], nil
		}

		if err := l.RequestMore(ctx); err != nil {
			w.fetchFailed(err)
		}
		focus = len(st.Items)
	}
}

// pickMany asks for a set of items, keeping checked items across page
// loads. An empty answer prints required and asks again.
func pickMany[T selection.Keyed](ctx context.Context, w *Wizard, l *paginate.Loader[T], message string, label func(T) string, current []T, required string) ([]T, error) {
	if err := l.Load(ctx); err != nil {
		w.fetchFailed(err)
	}

	chosen := selection.NewMulti(current)
	for {
		st := l.State()
		if len(st.Items) == 0 && !st.HasMore {
			return nil, fmt.Errorf("%s: %w", message, ErrNoOptions)
		}

		var defaults []int
		listed := make(map[int]bool, len(st.Items))
		for i, it := range st.Items {
			listed[it.Key()] = true
			if chosen.Contains(it.Key()) {
				defaults = append(defaults, i)
			}
		}

		picked, err := w.cfg.Driver.MultiSelect(message, options(st, label), defaults)
		if err != nil {
			return nil, err
		}

		// Items chosen earlier but not listed stay chosen.
		next := selection.NewMulti[T](nil)
		for _, it := range chosen.Items() {
			if !listed[it.Key()] {
				next.Toggle(it)
			}
		}
		more := false
		for _, i := range picked {
			if i >= len(st.Items) {
				more = true
				continue
			}
			next.Toggle(st.Items[i])
		}
		chosen = next

		if more {
			if err := l.RequestMore(ctx); err != nil {
				w.fetchFailed(err)
			}
			continue
		}
		if chosen.Len() == 0 {
			w.printer.Println(ui.ErrorMessageStyle.Render("  ✗ " + required))
			continue
		}
		return chosen.Items(), nil
	}
}
