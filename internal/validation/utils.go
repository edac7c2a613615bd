package validation

import (
	"bytes"
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// uuidRegex matches the canonical UUID format: xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx
var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// IsValidUUID checks whether a string matches UUID format.
//
// Note: This validates format only. It does not validate UUID version/variant semantics.
func IsValidUUID(uuid string) bool {
	return uuidRegex.MatchString(uuid)
}

// integerRegex is the shape of an integer in text form: optional sign, digits.
var integerRegex = regexp.MustCompile(`^[-+]?[0-9]+$`)

// IsInteger reports whether s is an integer that fits into an int.
// Surrounding whitespace is not accepted.
func IsInteger(s string) bool {
	if !integerRegex.MatchString(s) {
		return false
	}
	_, err := strconv.Atoi(s)
	return err == nil
}

// maxExactFloat is the largest magnitude at which every integer is exactly
// representable as a float64.
const maxExactFloat = 1 << 53

// FieldValue is a request field kept as raw text.
//
// JSON strings decode to their content, booleans to their literal text, null
// to "". Numbers keep their literal text unless they hold an integral value
// in another notation ("1966.0", "1.966e3"), which becomes "1966". Objects and
// arrays keep their JSON text.
type FieldValue string

// UnmarshalJSON implements json.Unmarshaler.
func (v *FieldValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	switch {
	case len(data) == 0, bytes.Equal(data, []byte("null")):
		*v = ""
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = FieldValue(s)
	case isJSONNumber(data):
		*v = FieldValue(numberText(string(data)))
	default:
		*v = FieldValue(data)
	}

	return nil
}

func isJSONNumber(data []byte) bool {
	return data[0] == '-' || (data[0] >= '0' && data[0] <= '9')
}

// numberText renders a JSON number the way its value prints as an integer
// when it has one.
func numberText(literal string) string {
	if _, err := strconv.ParseInt(literal, 10, 64); err == nil {
		return literal
	}

	f, err := strconv.ParseFloat(literal, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > maxExactFloat {
		return literal
	}

	return strconv.FormatInt(int64(f), 10)
}

// String returns the raw text.
func (v FieldValue) String() string {
	return string(v)
}

// Trimmed returns the text without leading and trailing whitespace.
func (v FieldValue) Trimmed() string {
	return strings.TrimSpace(string(v))
}
