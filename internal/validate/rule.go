package validate

import "regexp"

// Rule validates raw input for a field and returns the value in the form
// it is bound to a statement.
type Rule func(field, raw string) (any, error)

// TextRule requires a non-empty sanitized string.
func TextRule(field, raw string) (any, error) {
	return NonEmpty(field, raw)
}

// NumericRule requires a non-negative integer.
func NumericRule(field, raw string) (any, error) {
	return Numeric(field, raw)
}

// EmailRule requires a valid address.
func EmailRule(field, raw string) (any, error) {
	return Email(field, raw)
}

// DateRule requires YYYY-MM-DD and binds the canonical text form.
func DateRule(field, raw string) (any, error) {
	t, err := Date(field, raw)
	if err != nil {
		return nil, err
	}
	return t.Format(DateLayout), nil
}

// DateTimeRule requires YYYY-MM-DD HH:MM:SS and binds the canonical text form.
func DateTimeRule(field, raw string) (any, error) {
	t, err := DateTime(field, raw)
	if err != nil {
		return nil, err
	}
	return t.Format(DateTimeLayout), nil
}

// PatternRule builds a Rule around re.
func PatternRule(re *regexp.Regexp) Rule {
	return func(field, raw string) (any, error) {
		return Pattern(field, raw, re)
	}
}
