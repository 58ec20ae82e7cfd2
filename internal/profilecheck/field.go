package profilecheck

import "unicode/utf8"

// Value is a field value handed to ValidateField: either text or a list of strings.
type Value struct {
	text   string
	items  []string
	isList bool
}

// Text wraps a string field value.
func Text(s string) Value {
	return Value{text: s}
}

// List wraps a list field value such as skills.
func List(items []string) Value {
	return Value{items: items, isList: true}
}

// Present reports whether the value is a non-empty string or a non-empty list.
func (v Value) Present() bool {
	if v.isList {
		return len(v.items) > 0
	}
	return v.text != ""
}

// ValidateField applies one rule to one value and returns the failed messages.
//
// A missing required (or conditionally required) value yields exactly one
// message. A present value runs every format check and collects one message
// per failed check, so the result may repeat the rule message.
func ValidateField(v Value, rule Rule, entry any) []string {
	hasValue := !v.isList && v.text != ""
	hasArrayValue := v.isList && len(v.items) > 0

	if rule.Required && !hasValue && !hasArrayValue {
		return []string{rule.Message}
	}
	if rule.ConditionalRequired != nil && rule.ConditionalRequired(entry) && !hasValue && !hasArrayValue {
		return []string{rule.Message}
	}
	if !hasValue && !hasArrayValue {
		return nil
	}

	var errs []string
	if hasValue {
		if rule.Pattern != nil && !rule.Pattern.MatchString(v.text) {
			errs = append(errs, rule.Message)
		}
		n := utf8.RuneCountInString(v.text)
		if rule.MinLength > 0 && n < rule.MinLength {
			errs = append(errs, rule.Message)
		}
		if rule.MaxLength > 0 && n > rule.MaxLength {
			errs = append(errs, rule.Message)
		}
	}
	if hasArrayValue {
		if rule.MinCount > 0 && len(v.items) < rule.MinCount {
			errs = append(errs, rule.Message)
		}
		if rule.MaxCount > 0 && len(v.items) > rule.MaxCount {
			errs = append(errs, rule.Message)
		}
	}
	return errs
}
