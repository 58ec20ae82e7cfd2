// Package profilecheck validates portfolio profiles and scores their completion.
//
// Every function in this package is pure: validation failures are returned as
// values keyed by field, never as Go errors, so the checks can run on every
// edit of a draft profile.
package profilecheck

import (
	"regexp"

	"go-portfolio-backend/internal/domain"
)

// Rule is a declarative constraint on one profile field.
// A zero bound means the bound is not set.
type Rule struct {
	Required bool
	// ConditionalRequired makes the field required depending on sibling
	// fields of the same array entry.
	ConditionalRequired func(entry any) bool
	Pattern             *regexp.Regexp
	MinLength           int
	MaxLength           int
	MinCount            int
	MaxCount            int
	// Message is returned for any failure of this rule.
	Message string
}

// FieldRule binds a rule to a field name.
type FieldRule struct {
	Field string
	Rule  Rule
}

// SectionRules keeps the rules of one section in declaration order.
type SectionRules []FieldRule

// Get returns the rule of a field.
func (r SectionRules) Get(field string) (Rule, bool) {
	for _, fr := range r {
		if fr.Field == field {
			return fr.Rule, true
		}
	}
	return Rule{}, false
}

var (
	phonePattern      = regexp.MustCompile(`^[0-9]{10}$`)
	linkedInPattern   = regexp.MustCompile(`^https?://(www\.)?linkedin\.com/in/[A-Za-z0-9_-]+/?$`)
	gitHubUserPattern = regexp.MustCompile(`^https?://(www\.)?github\.com/[A-Za-z0-9_-]+/?$`)
	gitHubRepoPattern = regexp.MustCompile(`^https?://(www\.)?github\.com/[A-Za-z0-9_.-]+/[A-Za-z0-9_.-]+/?$`)
	monthPattern      = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)
	webURLPattern     = regexp.MustCompile(`^https?://\S+$`)
)

// Rules is the field rule table, keyed by section.
var Rules = map[domain.Section]SectionRules{
	domain.SectionPersonal: {
		{Field: "phone", Rule: Rule{
			Pattern: phonePattern,
			Message: "Enter a valid 10-digit phone number",
		}},
		{Field: "location", Rule: Rule{
			MinLength: 2,
			MaxLength: 100,
			Message:   "Location must be between 2 and 100 characters",
		}},
		{Field: "linkedin", Rule: Rule{
			Pattern: linkedInPattern,
			Message: "Enter a valid LinkedIn profile URL",
		}},
		{Field: "github", Rule: Rule{
			Pattern: gitHubUserPattern,
			Message: "Enter a valid GitHub profile URL",
		}},
	},
	domain.SectionProfessional: {
		{Field: "title", Rule: Rule{
			MinLength: 2,
			MaxLength: 100,
			Message:   "Professional title must be between 2 and 100 characters",
		}},
		{Field: "summary", Rule: Rule{
			MinLength: 50,
			MaxLength: 1000,
			Message:   "Summary must be between 50 and 1000 characters",
		}},
		{Field: "skills", Rule: Rule{
			MinCount: 3,
			MaxCount: 20,
			Message:  "Add between 3 and 20 skills",
		}},
	},
	domain.SectionExperience: {
		{Field: "title", Rule: Rule{
			Required:  true,
			MinLength: 2,
			MaxLength: 100,
			Message:   "Job title is required (2-100 characters)",
		}},
		{Field: "company", Rule: Rule{
			Required:  true,
			MinLength: 2,
			MaxLength: 100,
			Message:   "Company name is required (2-100 characters)",
		}},
		{Field: "location", Rule: Rule{
			MaxLength: 100,
			Message:   "Location must be under 100 characters",
		}},
		{Field: "startDate", Rule: Rule{
			Required: true,
			Pattern:  monthPattern,
			Message:  "Start date is required (YYYY-MM)",
		}},
		{Field: "endDate", Rule: Rule{
			ConditionalRequired: endsUnlessCurrent,
			Pattern:             monthPattern,
			Message:             "End date is required unless this is your current role",
		}},
		{Field: "description", Rule: Rule{
			MaxLength: 2000,
			Message:   "Description must be under 2000 characters",
		}},
	},
	domain.SectionEducation: {
		{Field: "degree", Rule: Rule{
			Required:  true,
			MinLength: 2,
			MaxLength: 100,
			Message:   "Degree is required (2-100 characters)",
		}},
		{Field: "school", Rule: Rule{
			Required:  true,
			MinLength: 2,
			MaxLength: 150,
			Message:   "School is required (2-150 characters)",
		}},
		{Field: "location", Rule: Rule{
			MaxLength: 100,
			Message:   "Location must be under 100 characters",
		}},
		{Field: "startDate", Rule: Rule{
			Required: true,
			Pattern:  monthPattern,
			Message:  "Start date is required (YYYY-MM)",
		}},
		{Field: "endDate", Rule: Rule{
			Required: true,
			Pattern:  monthPattern,
			Message:  "End date is required (YYYY-MM)",
		}},
		{Field: "description", Rule: Rule{
			MaxLength: 1000,
			Message:   "Description must be under 1000 characters",
		}},
	},
	domain.SectionProjects: {
		{Field: "title", Rule: Rule{
			Required:  true,
			MinLength: 2,
			MaxLength: 100,
			Message:   "Project title is required (2-100 characters)",
		}},
		{Field: "description", Rule: Rule{
			Required:  true,
			MinLength: 20,
			MaxLength: 1000,
			Message:   "Project description is required (20-1000 characters)",
		}},
		{Field: "skills", Rule: Rule{
			MaxCount: 10,
			Message:  "A project can list at most 10 skills",
		}},
		{Field: "url", Rule: Rule{
			Pattern: webURLPattern,
			Message: "Enter a valid project URL",
		}},
		{Field: "githubUrl", Rule: Rule{
			Pattern: gitHubRepoPattern,
			Message: "Enter a valid GitHub repository URL",
		}},
	},
}

// endsUnlessCurrent requires an end date for past roles only.
func endsUnlessCurrent(entry any) bool {
	exp, ok := entry.(domain.Experience)
	return ok && !exp.Current
}
