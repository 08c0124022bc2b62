// Package digits validates and canonicalizes the heterogeneous numeric inputs
// accepted by the EPC encoders.
//
// Callers hand in decimal digit strings, native integers, whole floats (as
// produced by decoding JSON numbers), or *big.Int values; this package turns
// them into canonical digit strings or non-negative big integers, rejecting
// anything negative, fractional, or containing non-digit characters. Numeric
// fields on RFID tags care about leading '0's, so values are handled as digit
// strings wherever the digit count matters.
package digits

import (
	"fmt"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
)

// digitsRegex validates that string inputs are non-empty runs of digits 0-9.
var digitsRegex = regexp.MustCompile(`^\d+$`)

// ValidationError indicates an input value violates its field's domain rules.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Reason
}

func validationErrorf(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Normalize converts value to a canonical decimal digit string.
//
// Strings are trimmed of surrounding whitespace and must consist only of
// digits 0-9. Integer and *big.Int values must be non-negative. Floats must
// be non-negative whole numbers; fractional values are rejected rather than
// truncated. The field name appears in any returned ValidationError.
func Normalize(value interface{}, field string) (string, error) {
	switch v := value.(type) {
	case string:
		s := strings.TrimSpace(v)
		if !digitsRegex.MatchString(s) {
			return "", validationErrorf(field,
				"must be a non-empty string of digits 0-9, but is %q", v)
		}
		return s, nil
	case int:
		return normalizeInt64(int64(v), field)
	case int8:
		return normalizeInt64(int64(v), field)
	case int16:
		return normalizeInt64(int64(v), field)
	case int32:
		return normalizeInt64(int64(v), field)
	case int64:
		return normalizeInt64(v, field)
	case uint:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float32:
		return normalizeFloat64(float64(v), field)
	case float64:
		return normalizeFloat64(v, field)
	case *big.Int:
		if v == nil {
			return "", validationErrorf(field, "must not be nil")
		}
		if v.Sign() < 0 {
			return "", validationErrorf(field,
				"must be non-negative, but is %s", v)
		}
		return v.String(), nil
	default:
		return "", validationErrorf(field,
			"must be a digit string, integer, or big integer, but is %T", value)
	}
}

func normalizeInt64(v int64, field string) (string, error) {
	if v < 0 {
		return "", validationErrorf(field, "must be non-negative, but is %d", v)
	}
	return strconv.FormatInt(v, 10), nil
}

func normalizeFloat64(v float64, field string) (string, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "", validationErrorf(field, "must be a whole number, but is %v", v)
	}
	if v != math.Trunc(v) {
		return "", validationErrorf(field,
			"must be a whole number, but is %v", v)
	}
	if v < 0 {
		return "", validationErrorf(field, "must be non-negative, but is %v", v)
	}
	// exact even past float64's 2^53 integer range
	s, _ := big.NewFloat(v).Int(nil)
	return s.String(), nil
}

// NormalizeBig converts value to a non-negative *big.Int under the same
// acceptance rules as Normalize.
func NormalizeBig(value interface{}, field string) (*big.Int, error) {
	s, err := Normalize(value, field)
	if err != nil {
		return nil, err
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		// unreachable once Normalize has accepted the digits
		return nil, validationErrorf(field, "cannot be parsed as an integer: %q", s)
	}
	return n, nil
}

// Pad left-pads a digit string with '0's to the target length. A string
// already longer than the target fails rather than truncating.
func Pad(digitString string, length int, field string) (string, error) {
	if len(digitString) > length {
		return "", validationErrorf(field,
			"must have at most %d digits, but %q has %d",
			length, digitString, len(digitString))
	}
	return strings.Repeat("0", length-len(digitString)) + digitString, nil
}

// NormalizeFixed normalizes value and requires the resulting digit string to
// have exactly the given length.
func NormalizeFixed(value interface{}, field string, length int) (string, error) {
	s, err := Normalize(value, field)
	if err != nil {
		return "", err
	}
	if len(s) != length {
		return "", validationErrorf(field,
			"must have exactly %d digits, but %q has %d", length, s, len(s))
	}
	return s, nil
}

// Format renders a non-negative integer as a decimal string left-padded with
// '0's to the given length. Values with more digits than length are rendered
// in full rather than truncated.
func Format(value uint64, length int) string {
	return fmt.Sprintf("%0[1]*d", length, value)
}
