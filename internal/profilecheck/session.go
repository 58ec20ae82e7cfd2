package profilecheck

import (
	"sync"
	"time"

	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/pkg/debounce"
)

// DefaultDebounce is the pause after the last edit before a draft is revalidated.
const DefaultDebounce = 300 * time.Millisecond

// Session tracks one profile being edited: its latest validation result,
// the fields the user touched and whether a save was attempted.
type Session struct {
	mu            sync.Mutex
	profile       domain.Profile
	result        ProfileResult
	touched       map[string]bool
	saveAttempted bool

	debouncer *debounce.Debouncer
	onResult  func(ProfileResult)
}

type SessionOption func(*Session)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) SessionOption {
	return func(s *Session) {
		s.debouncer = debounce.New(d)
	}
}

// WithOnResult registers a callback invoked after every debounced revalidation.
func WithOnResult(fn func(ProfileResult)) SessionOption {
	return func(s *Session) {
		s.onResult = fn
	}
}

// NewSession validates the initial profile synchronously.
func NewSession(p domain.Profile, opts ...SessionOption) *Session {
	s := &Session{
		profile:   p,
		touched:   make(map[string]bool),
		debouncer: debounce.New(DefaultDebounce),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.result = ValidateCompleteProfile(p)
	return s
}

// Update mutates the draft and schedules a debounced revalidation.
func (s *Session) Update(mutate func(*domain.Profile)) {
	s.mu.Lock()
	mutate(&s.profile)
	s.mu.Unlock()

	s.debouncer.Trigger(func() { s.revalidate() })
}

// ValidateNow cancels any pending revalidation and validates immediately.
// Used right before a save.
func (s *Session) ValidateNow() ProfileResult {
	s.debouncer.Stop()
	return s.revalidate()
}

func (s *Session) revalidate() ProfileResult {
	s.mu.Lock()
	result := ValidateCompleteProfile(s.profile)
	s.result = result
	onResult := s.onResult
	s.mu.Unlock()

	if onResult != nil {
		onResult(result)
	}
	return result
}

// Touch marks a field key as interacted with.
func (s *Session) Touch(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touched[key] = true
}

// MarkSaveAttempted makes every error visible.
func (s *Session) MarkSaveAttempted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveAttempted = true
}

// Result returns the latest validation result.
func (s *Session) Result() ProfileResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Visible returns the messages the UI should currently display.
func (s *Session) Visible() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return VisibleErrors(s.result.Errors, s.touched, s.saveAttempted)
}

// Profile returns a copy of the draft.
func (s *Session) Profile() domain.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneProfile(s.profile)
}

// Close cancels any pending revalidation.
func (s *Session) Close() {
	s.debouncer.Stop()
}

func cloneProfile(p domain.Profile) domain.Profile {
	out := p
	out.Professional.Skills = append([]string(nil), p.Professional.Skills...)
	out.Experience = append([]domain.Experience(nil), p.Experience...)
	out.Education = append([]domain.Education(nil), p.Education...)
	if p.Projects != nil {
		out.Projects = make([]domain.Project, len(p.Projects))
		for i, proj := range p.Projects {
			proj.Skills = append([]string(nil), proj.Skills...)
			out.Projects[i] = proj
		}
	}
	return out
}
