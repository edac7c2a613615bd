// Package validation contains the logic for validating
// request data.
//
// It uses the `validator` library to enforce rules (like
// required fields or integer formats) and turns failures into
// the 400 shape the client understands: one message joined from
// every failed rule plus the per-field list.
package validation

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/deppfellow/bookshelf/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validatable is implemented by request payload types that know how to validate themselves.
//
// Validate returns nil, validator.ValidationErrors (struct tags) or
// CustomValidationErrors (named rules).
type Validatable interface {
	Validate() error
}

// CustomValidationError represents a single validation issue for a specific field.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	messages := make([]string, 0, len(c))
	for _, e := range c {
		messages = append(messages, e.Message)
	}
	return strings.Join(messages, errs.ValidationMessageSeparator)
}

// BindAndValidate binds request data into payload and validates it.
//
// c.Bind populates path params and the body (JSON or form). A body of a
// content type the binder does not read is ignored, so the field rules report
// what is missing. Binding failures and validation failures both come back as
// *errs.HTTPError with status 400.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil && !isUnsupportedMediaType(err) {
		return bindError(err)
	}

	if err := payload.Validate(); err != nil {
		return errs.ValidationError(extractValidationError(err))
	}

	return nil
}

// bindError turns echo's bind failure into a 400 carrying its message.
func bindError(err error) error {
	message := "Invalid request body"

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if msg, ok := echoErr.Message.(string); ok && msg != "" {
			message = msg
		}
	}

	return errs.NewBadRequestError(message, false, nil, nil, nil)
}

func isUnsupportedMediaType(err error) bool {
	var echoErr *echo.HTTPError
	return errors.As(err, &echoErr) && echoErr.Code == http.StatusUnsupportedMediaType
}

func extractValidationError(err error) []errs.FieldError {
	var fieldErrors []errs.FieldError

	var customValidationErrors CustomValidationErrors
	if errors.As(err, &customValidationErrors) {
		for _, e := range customValidationErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: e.Field,
				Error: e.Message,
			})
		}
		return fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// Anything else is reported as one unnamed failure.
		return []errs.FieldError{{Field: "", Error: err.Error()}}
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		var msg string

		switch e.Tag() {
		case "required":
			msg = fmt.Sprintf("%s is required", field)

		case "min":
			if e.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("%s must be at least %s characters", field, e.Param())
			} else {
				msg = fmt.Sprintf("%s must be at least %s", field, e.Param())
			}

		case "max":
			if e.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("%s must not exceed %s characters", field, e.Param())
			} else {
				msg = fmt.Sprintf("%s must not exceed %s", field, e.Param())
			}

		case "oneof":
			msg = fmt.Sprintf("%s must be one of: %s", field, e.Param())

		case "integer":
			msg = fmt.Sprintf("%s must be a number", field)

		case "uuid":
			msg = fmt.Sprintf("%s must be a valid UUID", field)

		default:
			if e.Param() != "" {
				msg = fmt.Sprintf("%s: %s:%s", field, e.Tag(), e.Param())
			} else {
				msg = fmt.Sprintf("%s: %s", field, e.Tag())
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: field,
			Error: msg,
		})
	}

	return fieldErrors
}
