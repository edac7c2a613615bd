package errs

import (
	"net/http"
	"strings"
)

// Application error codes beyond the ones derived from HTTP status text.
const (
	CodeInvalidBookID = "INVALID_BOOK_ID"
	CodeBookNotFound  = "BOOK_NOT_FOUND"
	CodeStoreError    = "STORE_ERROR"
)

// ValidationMessageSeparator joins the messages of failed validation rules.
const ValidationMessageSeparator = ". "

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
// code defaults to "BAD_REQUEST" when nil. errors and action are optional.
func NewBadRequestError(message string, override bool, code *string, errors []FieldError, action *Action) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusBadRequest))
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusBadRequest,
		Override: override,
		Errors:   errors,
		Action:   action,
	}
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(message string, override bool, code *string) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound))
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusNotFound,
		Override: override,
	}
}

// NewTooManyRequestsError creates a 429 HTTPError for rate-limited clients.
func NewTooManyRequestsError(message string) *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(http.StatusTooManyRequests)),
		Message: message,
		Status:  http.StatusTooManyRequests,
	}
}

// NewInternalServerError creates a generic 500 that does not leak the cause.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:     MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError)),
		Message:  http.StatusText(http.StatusInternalServerError),
		Status:   http.StatusInternalServerError,
		Override: false,
	}
}

// NewStoreError creates a 500 whose message is the store error's message,
// passed through verbatim. The store error stays reachable via errors.As.
func NewStoreError(err error) *HTTPError {
	return &HTTPError{
		Code:    CodeStoreError,
		Message: err.Error(),
		Status:  http.StatusInternalServerError,
		cause:   err,
	}
}

// NewInvalidIdentifierError creates the 400 returned for malformed book ids.
func NewInvalidIdentifierError() *HTTPError {
	code := CodeInvalidBookID
	return NewBadRequestError("Invalid book ID format", true, &code, nil, nil)
}

// NewBookNotFoundError creates the 404 returned when a book id has no record.
func NewBookNotFoundError() *HTTPError {
	code := CodeBookNotFound
	return NewNotFoundError("Book not found", true, &code)
}

// ValidationError builds a 400 out of failed field rules. The messages are
// joined with ". " in the order the failures are given.
func ValidationError(fieldErrors []FieldError) *HTTPError {
	messages := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		messages = append(messages, fe.Error)
	}

	return NewBadRequestError(strings.Join(messages, ValidationMessageSeparator), true, nil, fieldErrors, nil)
}

// Predefined targets for errors.Is.
var (
	ErrInvalidIdentifier = &HTTPError{Code: CodeInvalidBookID}
	ErrBookNotFound      = &HTTPError{Code: CodeBookNotFound}
	ErrStore             = &HTTPError{Code: CodeStoreError}
)
