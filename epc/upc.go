/* Apache v2 license
 * Copyright (C) 2019 Intel Corporation
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package epc

import (
	"fmt"
	"math/big"

	"github.com/intel/rsp-sw-toolkit-im-suite-epc96/digits"
	"github.com/intel/rsp-sw-toolkit-im-suite-epc96/gs1"
	"github.com/pkg/errors"
)

const (
	upcLength = 12
	// a UPC-A payload has 11 digits; the company prefix takes 1-10 of them
	// so that at least one digit remains for the item reference
	maxUpcPrefixLength = 10
	// UPC-derived serials must be non-zero digit strings without leading
	// '0's, so at most 12 digits ever fit under the 38-bit ceiling
	maxUpcSerialDigits = 12
)

var minUpcSerial = big.NewInt(1)

// UpcToSgtin96Input carries the fields for converting a 12-digit UPC-A
// bar-code payload into an SGTIN-96 tag.
//
// CompanyPrefixLength is how many of the UPC's leading digits belong to the
// GS1 company prefix; the rest of the payload becomes the item reference.
// A nil IndicatorDigit defaults to '0', and a nil Filter to FilterPOS, the
// point-of-sale filter, since UPC-A marks retail trade items. The serial is
// the caller's to assign: UPC-A itself carries none.
type UpcToSgtin96Input struct {
	Upc                 interface{} `json:"upc"`
	CompanyPrefixLength int         `json:"companyPrefixLength"`
	Serial              interface{} `json:"serial"`
	IndicatorDigit      interface{} `json:"indicatorDigit"`
	Filter              interface{} `json:"filter"`
	Partition           *int        `json:"partition,omitempty"`
}

// EncodeSgtin96FromUpcA validates a UPC-A, derives GS1-compliant company
// prefix and item reference digit strings from it, and encodes the result as
// SGTIN-96.
//
// Per the GS1 zero-pad rule, the company prefix gains a leading '0' (UPC-A is
// the 12-digit form of a GTIN whose thirteenth digit is 0) and the item
// reference gains the indicator digit, so the derived prefix has
// CompanyPrefixLength+1 digits and the pair still sums to 13.
func EncodeSgtin96FromUpcA(input UpcToSgtin96Input) (*Sgtin96Result, error) {
	upc, err := digits.NormalizeFixed(input.Upc, "UPC-A", upcLength)
	if err != nil {
		return nil, err
	}

	prefixLen := input.CompanyPrefixLength
	if prefixLen <= 0 {
		return nil, &digits.ValidationError{
			Field:  "company prefix length",
			Reason: fmt.Sprintf("must be positive, but is %d", prefixLen),
		}
	}
	if prefixLen > maxUpcPrefixLength {
		return nil, &digits.ValidationError{
			Field: "company prefix length",
			Reason: fmt.Sprintf("must leave room for an item reference, "+
				"but %d leaves none of the %d payload digits", prefixLen, upcLength-1),
		}
	}

	expected, err := gs1.CheckDigit(upc[:upcLength-1])
	if err != nil {
		return nil, errors.Wrap(err, "unable to validate UPC-A check digit")
	}
	if actual := int(upc[upcLength-1] - '0'); actual != expected {
		return nil, &CheckDigitMismatchError{Expected: expected, Actual: actual}
	}

	indicator, err := normalizeIndicator(input.IndicatorDigit)
	if err != nil {
		return nil, err
	}
	serial, err := normalizeUpcSerial(input.Serial)
	if err != nil {
		return nil, err
	}

	filter := input.Filter
	if filter == nil {
		filter = FilterPOS
	}

	return EncodeSgtin96(Sgtin96Input{
		Filter:        filter,
		CompanyPrefix: "0" + upc[:prefixLen],
		ItemReference: indicator + upc[prefixLen:upcLength-1],
		Serial:        serial,
		Partition:     input.Partition,
	})
}

// normalizeIndicator applies the default '0' and otherwise requires a single
// digit 0-9.
func normalizeIndicator(value interface{}) (string, error) {
	if value == nil {
		return "0", nil
	}
	return digits.NormalizeFixed(value, "indicator digit", 1)
}

// normalizeUpcSerial validates the caller-assigned serial. String serials
// must be 1-12 digits without a leading '0' (SGTIN-96 serials cannot encode
// leading zeros); in every form the value must land in [1, 2^38-1].
func normalizeUpcSerial(value interface{}) (*big.Int, error) {
	if s, ok := value.(string); ok {
		s, err := digits.Normalize(s, "serial")
		if err != nil {
			return nil, err
		}
		if len(s) > maxUpcSerialDigits {
			return nil, &digits.ValidationError{
				Field: "serial",
				Reason: fmt.Sprintf("must have 1 to %d digits, but has %d",
					maxUpcSerialDigits, len(s)),
			}
		}
		if s[0] == '0' {
			return nil, &digits.ValidationError{
				Field:  "serial",
				Reason: fmt.Sprintf("must not have a leading '0', but is %q", s),
			}
		}
	}

	serial, err := digits.NormalizeBig(value, "serial")
	if err != nil {
		return nil, err
	}
	if serial.Cmp(minUpcSerial) < 0 || serial.Cmp(maxSerial) > 0 {
		return nil, &RangeError{
			Field: "serial", Value: serial,
			Min: minUpcSerial, Max: maxSerial,
		}
	}
	return serial, nil
}
