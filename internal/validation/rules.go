package validation

import (
	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"
)

// fieldValidator backs every Rule. validator.Validate is safe for concurrent use.
var fieldValidator = newFieldValidator()

func newFieldValidator() *validator.Validate {
	v := validator.New()

	// "integer": text that parses as an int.
	_ = v.RegisterValidation("integer", func(fl validator.FieldLevel) bool {
		return IsInteger(fl.Field().String())
	})

	return v
}

// Rule is a named check on one input field.
//
// Tag uses go-playground/validator syntax ("required", "required,integer").
// Trim strips surrounding whitespace from the value before it is checked.
type Rule struct {
	Field   string
	Value   string
	Tag     string
	Trim    bool
	Message string
}

// Required returns a rule failing on an empty (trimmed) value.
func Required(field string, value FieldValue, message string) Rule {
	return Rule{Field: field, Value: value.String(), Tag: "required", Trim: true, Message: message}
}

// Integer returns a rule failing unless the untrimmed value is an integer.
func Integer(field string, value FieldValue, message string) Rule {
	return Rule{Field: field, Value: value.String(), Tag: "required,integer", Message: message}
}

// Passes runs the rule.
func (r Rule) Passes() bool {
	value := r.Value
	if r.Trim {
		value = FieldValue(value).Trimmed()
	}

	return fieldValidator.Var(value, r.Tag) == nil
}

// RunRules runs all rules concurrently and returns the failures in rule
// order. Every rule is evaluated; nothing short-circuits. The result is nil
// when all rules pass.
func RunRules(rules ...Rule) error {
	failed := make([]bool, len(rules))

	var g errgroup.Group
	for i, rule := range rules {
		g.Go(func() error {
			failed[i] = !rule.Passes()
			return nil
		})
	}
	_ = g.Wait()

	var errs CustomValidationErrors
	for i, rule := range rules {
		if failed[i] {
			errs = append(errs, CustomValidationError{Field: rule.Field, Message: rule.Message})
		}
	}

	if len(errs) == 0 {
		return nil
	}

	return errs
}
