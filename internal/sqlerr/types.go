package sqlerr

import "fmt"

// Code is a coarse category for a Postgres SQLSTATE.
type Code string

const (
	Other                Code = "other"
	NotNullViolation     Code = "not_null_violation"
	ForeignKeyViolation  Code = "foreign_key_violation"
	UniqueViolation      Code = "unique_violation"
	CheckViolation       Code = "check_violation"
	InvalidTextRepr      Code = "invalid_text_representation"
	NumericOutOfRange    Code = "numeric_value_out_of_range"
	UndefinedTable       Code = "undefined_table"
	ConnectionException  Code = "connection_exception"
	InsufficientResource Code = "insufficient_resources"
)

// MapCode maps a SQLSTATE to a Code. Unknown states are Other.
func MapCode(sqlState string) Code {
	switch sqlState {
	case "23502":
		return NotNullViolation
	case "23503":
		return ForeignKeyViolation
	case "23505":
		return UniqueViolation
	case "23514":
		return CheckViolation
	case "22P02":
		return InvalidTextRepr
	case "22003":
		return NumericOutOfRange
	case "42P01":
		return UndefinedTable
	}

	if len(sqlState) == 5 {
		switch sqlState[:2] {
		case "08":
			return ConnectionException
		case "53":
			return InsufficientResource
		}
	}

	return Other
}

// Severity mirrors the severity field of a Postgres error.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
	SeverityPanic   Severity = "PANIC"
	SeverityWarning Severity = "WARNING"
	SeverityNotice  Severity = "NOTICE"
	SeverityDebug   Severity = "DEBUG"
	SeverityInfo    Severity = "INFO"
	SeverityLog     Severity = "LOG"
)

// MapSeverity maps the severity text of a Postgres error, ERROR by default.
func MapSeverity(severity string) Severity {
	switch Severity(severity) {
	case SeverityFatal, SeverityPanic, SeverityWarning, SeverityNotice,
		SeverityDebug, SeverityInfo, SeverityLog:
		return Severity(severity)
	}
	return SeverityError
}

// Error is a parsed Postgres error.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string

	driverErr error
}

// Error returns the driver message verbatim.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the original driver error.
func (e *Error) Unwrap() error {
	return e.driverErr
}

// String is the log-friendly form, with the SQLSTATE and location.
func (e *Error) String() string {
	if e.TableName == "" {
		return fmt.Sprintf("%s (%s): %s", e.Code, e.DatabaseCode, e.Message)
	}
	return fmt.Sprintf("%s (%s) on %s: %s", e.Code, e.DatabaseCode, e.TableName, e.Message)
}
