package profilecheck

import (
	"errors"

	"go-portfolio-backend/internal/domain"
)

// ErrUnknownSection is returned by ValidateSection for a name outside the five sections.
var ErrUnknownSection = errors.New("unknown profile section")

// SectionValidation keeps each section's own result for finer-grained gating.
type SectionValidation struct {
	Personal     SectionResult
	Professional SectionResult
	Experience   SectionResult
	Education    SectionResult
	Projects     SectionResult
}

// Get returns the result of one section.
func (sv SectionValidation) Get(s domain.Section) (SectionResult, bool) {
	switch s {
	case domain.SectionPersonal:
		return sv.Personal, true
	case domain.SectionProfessional:
		return sv.Professional, true
	case domain.SectionExperience:
		return sv.Experience, true
	case domain.SectionEducation:
		return sv.Education, true
	case domain.SectionProjects:
		return sv.Projects, true
	}
	return SectionResult{}, false
}

// Snapshot converts the results into their serialisable form.
func (sv SectionValidation) Snapshot() map[domain.Section]domain.SectionSnapshot {
	out := make(map[domain.Section]domain.SectionSnapshot, 5)
	for _, s := range domain.AllSections() {
		r, _ := sv.Get(s)
		out[s] = domain.SectionSnapshot{
			Errors:  r.Errors,
			IsValid: r.IsValid,
			HasData: r.HasData,
		}
	}
	return out
}

// ProfileResult aggregates every section of a profile.
type ProfileResult struct {
	Errors            domain.ValidationErrors
	IsValid           bool
	SectionValidation SectionValidation
}

// ValidateCompleteProfile runs all five section validators and merges their
// errors into one map. Keys are namespaced per section so the merge never
// overwrites.
func ValidateCompleteProfile(p domain.Profile) ProfileResult {
	sv := SectionValidation{
		Personal:     ValidatePersonalInfo(p.PersonalInfo),
		Professional: ValidateProfessional(p.Professional),
		Experience:   ValidateExperience(p.Experience),
		Education:    ValidateEducation(p.Education),
		Projects:     ValidateProjects(p.Projects),
	}

	merged := domain.ValidationErrors{}
	for _, r := range []SectionResult{sv.Personal, sv.Professional, sv.Experience, sv.Education, sv.Projects} {
		for key, msgs := range r.Errors {
			merged[key] = msgs
		}
	}

	return ProfileResult{
		Errors:            merged,
		IsValid:           len(merged) == 0,
		SectionValidation: sv,
	}
}

// ValidateSection validates a single section of the profile.
func ValidateSection(p domain.Profile, s domain.Section) (SectionResult, error) {
	switch s {
	case domain.SectionPersonal:
		return ValidatePersonalInfo(p.PersonalInfo), nil
	case domain.SectionProfessional:
		return ValidateProfessional(p.Professional), nil
	case domain.SectionExperience:
		return ValidateExperience(p.Experience), nil
	case domain.SectionEducation:
		return ValidateEducation(p.Education), nil
	case domain.SectionProjects:
		return ValidateProjects(p.Projects), nil
	}
	return SectionResult{}, ErrUnknownSection
}

// CheckSectionValidity reduces section results to one flag per section.
// A section without data is always valid.
func CheckSectionValidity(sv SectionValidation) domain.SectionValidity {
	return domain.SectionValidity{
		Personal:     reduce(sv.Personal),
		Professional: reduce(sv.Professional),
		Experience:   reduce(sv.Experience),
		Education:    reduce(sv.Education),
		Projects:     reduce(sv.Projects),
	}
}

func reduce(r SectionResult) bool {
	if !r.HasData {
		return true
	}
	return r.IsValid
}

// ReadyForTemplates is the "Continue" gate: every section valid and at least
// one category filled in.
func ReadyForTemplates(p domain.Profile) bool {
	result := ValidateCompleteProfile(p)
	return IsReady(CheckSectionValidity(result.SectionValidation), CalculateCompletionPercentage(p))
}

// IsReady applies the "Continue" gate to an already computed validity map
// and completion.
func IsReady(validity domain.SectionValidity, completion int) bool {
	return validity.All() && completion > 0
}

// VisibleErrors picks the message to display per key: the first one, and
// only for touched keys unless a save was attempted.
func VisibleErrors(errs domain.ValidationErrors, touched map[string]bool, saveAttempted bool) map[string]string {
	out := make(map[string]string)
	for key, msgs := range errs {
		if len(msgs) == 0 {
			continue
		}
		if saveAttempted || touched[key] {
			out[key] = msgs[0]
		}
	}
	return out
}
