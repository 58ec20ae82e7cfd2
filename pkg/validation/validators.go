package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"go-portfolio-backend/pkg/slug"
)

// Regex patterns
var (
	// Template IDs are lowercase catalog keys: "minimal", "dev-dark", "classic2"
	templateIDRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

// reservedUsernames collide with public routes or would be confusing as portfolio URLs.
var reservedUsernames = map[string]bool{
	"admin":    true,
	"api":      true,
	"health":   true,
	"profile":  true,
	"settings": true,
	"swagger":  true,
	"template": true,
	"v1":       true,
}

// New returns a validator with the custom tags registered.
func New() *validator.Validate {
	v := validator.New()
	RegisterValidators(v)
	return v
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("username_slug", UsernameSlug)
	_ = v.RegisterValidation("template_id", TemplateID)
}

// UsernameSlug accepts canonical slugs that are not reserved words.
func UsernameSlug(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true // Optional, use required if needed
	}
	return slug.Valid(val) && !reservedUsernames[val]
}

// TemplateID validates the shape of a template key. Existence is checked
// against the catalog by the usecase.
func TemplateID(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return templateIDRegex.MatchString(val)
}
