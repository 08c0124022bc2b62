// Package gs1 computes the weighted mod-10 check digits GS1 appends to its
// bar-code payloads (GTINs, UPC-A, and friends).
package gs1

import (
	"strconv"

	"github.com/intel/rsp-sw-toolkit-im-suite-epc96/digits"
)

// CheckDigit returns the GS1 check digit (0-9) for a digit-string payload.
//
// Walking the payload from its rightmost digit, digits are weighted 3,1,3,1...
// with weight 3 on the rightmost digit; the check digit is the mod-10 additive
// inverse of the weighted sum. The payload must normalize to a non-empty digit
// string.
func CheckDigit(payload string) (int, error) {
	p, err := digits.Normalize(payload, "check digit payload")
	if err != nil {
		return 0, err
	}

	sum := 0
	weight := 3
	for i := len(p) - 1; i >= 0; i-- {
		sum += int(p[i]-'0') * weight
		weight = 4 - weight
	}

	// mod 10 additive inverse
	return (10 - (sum % 10)) % 10, nil
}

// AppendCheckDigit returns the normalized payload with its check digit
// appended.
func AppendCheckDigit(payload string) (string, error) {
	p, err := digits.Normalize(payload, "check digit payload")
	if err != nil {
		return "", err
	}
	cd, err := CheckDigit(p)
	if err != nil {
		return "", err
	}
	return p + strconv.Itoa(cd), nil
}

// ValidateCheckDigit recomputes the check digit over all but the final digit
// of code and reports whether it matches that final digit. A mismatch is a
// false return, not an error; the error is reserved for codes too short or
// malformed to check at all.
func ValidateCheckDigit(code string) (bool, error) {
	c, err := digits.Normalize(code, "check digit code")
	if err != nil {
		return false, err
	}
	if len(c) < 2 {
		return false, &digits.ValidationError{
			Field:  "check digit code",
			Reason: "must have at least 2 digits (payload plus check digit)",
		}
	}

	cd, err := CheckDigit(c[:len(c)-1])
	if err != nil {
		return false, err
	}
	return cd == int(c[len(c)-1]-'0'), nil
}
