package form

import (
	"sync"

	"github.com/talentdesk/applywizard/internal/logging"
)

// Store is the single source of truth for committed step data and the
// current step. It is safe for concurrent use.
type Store struct {
	mu          sync.RWMutex
	currentStep int
	data        Application
	listeners   []func(Application, int)
}

// NewStore returns a store holding empty defaults at step 0.
func NewStore() *Store {
	return &Store{data: EmptyApplication()}
}

// OnChange registers fn to run after every mutation. fn receives copies.
func (s *Store) OnChange(fn func(app Application, step int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Store) update(mutate func()) {
	s.mu.Lock()
	mutate()
	app := s.data.Clone()
	step := s.currentStep
	listeners := append([]func(Application, int){}, s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(app, step)
	}
}

// SavePersonal commits step 1.
func (s *Store) SavePersonal(p PersonalDetails) {
	s.update(func() { s.data.Personal = p })
	logging.LogStepCommitted(StepPersonal, Steps[StepPersonal].Label)
}

// SaveProfessional commits step 2.
func (s *Store) SaveProfessional(p ProfessionalInfo) {
	s.update(func() { s.data.Professional = p.Clone() })
	logging.LogStepCommitted(StepProfessional, Steps[StepProfessional].Label)
}

// SaveAdditional commits step 3.
func (s *Store) SaveAdditional(a AdditionalDetails) {
	s.update(func() { s.data.Additional = a.Clone() })
	logging.LogStepCommitted(StepAdditional, Steps[StepAdditional].Label)
}

// SetCurrentStep moves to step, clamped to [StepPersonal, StepPreview].
func (s *Store) SetCurrentStep(step int) {
	if step < StepPersonal {
		step = StepPersonal
	}
	if step > StepPreview {
		step = StepPreview
	}

	var from int
	s.update(func() {
		from = s.currentStep
		s.currentStep = step
	})
	if from != step {
		logging.LogNavigation(from, step)
	}
}

// CurrentStep returns the active step index.
func (s *Store) CurrentStep() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentStep
}

// Personal returns committed step 1 data.
func (s *Store) Personal() PersonalDetails {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Personal
}

// Professional returns a copy of committed step 2 data.
func (s *Store) Professional() ProfessionalInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Professional.Clone()
}

// Additional returns a copy of committed step 3 data.
func (s *Store) Additional() AdditionalDetails {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Additional.Clone()
}

// Snapshot returns a copy of every step.
func (s *Store) Snapshot() Application {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Clone()
}

// Reset restores empty defaults and returns to step 0.
func (s *Store) Reset() {
	s.update(func() {
		s.data = EmptyApplication()
		s.currentStep = StepPersonal
	})
	logging.Info("Form reset")
}
