package profilecheck

import (
	"fmt"
	"time"

	"go-portfolio-backend/internal/domain"
)

// DateRangeMessage is attached to the synthetic "{section}_{i}_dateRange" key.
const DateRangeMessage = "End date must be after start date"

// SectionResult is the outcome of validating one section.
type SectionResult struct {
	Errors  domain.ValidationErrors
	IsValid bool
	HasData bool
}

func newSectionResult(errs domain.ValidationErrors, hasData bool) SectionResult {
	return SectionResult{
		Errors:  errs,
		IsValid: len(errs) == 0,
		HasData: hasData,
	}
}

// FieldKey builds the error key of a field inside an array entry, e.g. "experience_0_title".
func FieldKey(section domain.Section, index int, field string) string {
	return fmt.Sprintf("%s_%d_%s", section, index, field)
}

// DateRangeKey builds the cross-field key of an entry, e.g. "education_1_dateRange".
func DateRangeKey(section domain.Section, index int) string {
	return FieldKey(section, index, "dateRange")
}

// ============================================================================
// Field accessors
// ============================================================================

func personalFields(info domain.PersonalInfo) map[string]Value {
	return map[string]Value{
		"phone":    Text(info.Phone),
		"location": Text(info.Location),
		"linkedin": Text(info.SocialLinks.LinkedIn),
		"github":   Text(info.SocialLinks.GitHub),
	}
}

func professionalFields(p domain.Professional) map[string]Value {
	return map[string]Value{
		"title":   Text(p.Title),
		"summary": Text(p.Summary),
		"skills":  List(p.Skills),
	}
}

func experienceFields(e domain.Experience) map[string]Value {
	return map[string]Value{
		"title":       Text(e.Title),
		"company":     Text(e.Company),
		"location":    Text(e.Location),
		"startDate":   Text(e.StartDate),
		"endDate":     Text(e.EndDate),
		"description": Text(e.Description),
	}
}

func educationFields(e domain.Education) map[string]Value {
	return map[string]Value{
		"degree":      Text(e.Degree),
		"school":      Text(e.School),
		"location":    Text(e.Location),
		"startDate":   Text(e.StartDate),
		"endDate":     Text(e.EndDate),
		"description": Text(e.Description),
	}
}

func projectFields(p domain.Project) map[string]Value {
	return map[string]Value{
		"title":       Text(p.Title),
		"description": Text(p.Description),
		"skills":      List(p.Skills),
		"url":         Text(p.URL),
		"githubUrl":   Text(p.GitHubURL),
	}
}

func anyPresent(fields map[string]Value) bool {
	for _, v := range fields {
		if v.Present() {
			return true
		}
	}
	return false
}

// ============================================================================
// Object sections
// ============================================================================

// ValidatePersonalInfo checks the personal section. None of its fields is
// required, so each one is only format-checked when it is filled in.
func ValidatePersonalInfo(info domain.PersonalInfo) SectionResult {
	errs := domain.ValidationErrors{}
	fields := personalFields(info)
	if !anyPresent(fields) {
		return newSectionResult(errs, false)
	}

	for _, fr := range Rules[domain.SectionPersonal] {
		v := fields[fr.Field]
		if !v.Present() {
			continue
		}
		if msgs := ValidateField(v, fr.Rule, info); len(msgs) > 0 {
			errs[fr.Field] = msgs
		}
	}
	return newSectionResult(errs, true)
}

// ValidateProfessional checks the professional section. An empty skills list
// is not checked against the minimum count; only a short non-empty list fails.
func ValidateProfessional(prof domain.Professional) SectionResult {
	errs := domain.ValidationErrors{}
	fields := professionalFields(prof)
	if !anyPresent(fields) {
		return newSectionResult(errs, false)
	}

	for _, fr := range Rules[domain.SectionProfessional] {
		v := fields[fr.Field]
		if !v.Present() {
			continue
		}
		if msgs := ValidateField(v, fr.Rule, prof); len(msgs) > 0 {
			errs[fr.Field] = msgs
		}
	}
	return newSectionResult(errs, true)
}

// ============================================================================
// Array sections
// ============================================================================

// validateEntries runs the section's rule table over every entry that has data.
// crossCheck, when set, adds entry-level errors such as date ranges.
func validateEntries[T any](section domain.Section, entries []T, fields func(T) map[string]Value, crossCheck func(int, T, domain.ValidationErrors)) SectionResult {
	errs := domain.ValidationErrors{}
	rules := Rules[section]

	for i, entry := range entries {
		values := fields(entry)
		if !anyPresent(values) {
			continue
		}
		for _, fr := range rules {
			if msgs := ValidateField(values[fr.Field], fr.Rule, entry); len(msgs) > 0 {
				errs[FieldKey(section, i, fr.Field)] = msgs
			}
		}
		if crossCheck != nil {
			crossCheck(i, entry, errs)
		}
	}
	return newSectionResult(errs, len(entries) > 0)
}

// ValidateExperience checks every experience entry independently.
func ValidateExperience(entries []domain.Experience) SectionResult {
	return validateEntries(domain.SectionExperience, entries, experienceFields,
		func(i int, e domain.Experience, errs domain.ValidationErrors) {
			if e.Current {
				return
			}
			if endsBeforeStart(e.StartDate, e.EndDate) {
				errs[DateRangeKey(domain.SectionExperience, i)] = []string{DateRangeMessage}
			}
		})
}

// ValidateEducation checks every education entry independently.
func ValidateEducation(entries []domain.Education) SectionResult {
	return validateEntries(domain.SectionEducation, entries, educationFields,
		func(i int, e domain.Education, errs domain.ValidationErrors) {
			if endsBeforeStart(e.StartDate, e.EndDate) {
				errs[DateRangeKey(domain.SectionEducation, i)] = []string{DateRangeMessage}
			}
		})
}

// ValidateProjects checks every project entry independently.
func ValidateProjects(entries []domain.Project) SectionResult {
	return validateEntries(domain.SectionProjects, entries, projectFields, nil)
}

// endsBeforeStart reports whether both months parse and end is strictly
// earlier than start. Equal months are a valid range.
func endsBeforeStart(start, end string) bool {
	if start == "" || end == "" {
		return false
	}
	s, err := time.Parse("2006-01", start)
	if err != nil {
		return false
	}
	e, err := time.Parse("2006-01", end)
	if err != nil {
		return false
	}
	return e.Before(s)
}
