/* Apache v2 license
 * Copyright (C) 2019 Intel Corporation
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package epc

import (
	"fmt"
	"math/big"
)

// RangeError indicates a normalized value lies outside the numeric range its
// field allows.
type RangeError struct {
	Field    string
	Value    *big.Int
	Min, Max *big.Int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s must be in [%s, %s], but is %s",
		e.Field, e.Min, e.Max, e.Value)
}

// UnsupportedPartitionError indicates a partition value outside the seven
// partitions the SGTIN-96 table defines.
type UnsupportedPartitionError struct {
	Partition int
}

func (e *UnsupportedPartitionError) Error() string {
	return fmt.Sprintf("partition must be in [0, 6], but is %d", e.Partition)
}

// PartitionMismatchError indicates an explicitly requested partition whose
// company prefix digit count disagrees with the supplied company prefix.
type PartitionMismatchError struct {
	Partition             int
	WantDigits, GotDigits int
}

func (e *PartitionMismatchError) Error() string {
	return fmt.Sprintf("partition %d requires a %d-digit company prefix, "+
		"but this prefix has %d digits", e.Partition, e.WantDigits, e.GotDigits)
}

// UnsupportedPrefixLengthError indicates a company prefix whose digit count
// matches no partition.
type UnsupportedPrefixLengthError struct {
	Digits int
}

func (e *UnsupportedPrefixLengthError) Error() string {
	return fmt.Sprintf("company prefixes must have 6 to 12 digits, "+
		"but this prefix has %d digits", e.Digits)
}

// CheckDigitMismatchError indicates a UPC-A whose final digit disagrees with
// the GS1 check digit computed over its payload.
type CheckDigitMismatchError struct {
	Expected, Actual int
}

func (e *CheckDigitMismatchError) Error() string {
	return fmt.Sprintf("check digit should be %d, but is %d",
		e.Expected, e.Actual)
}

// UnsupportedHeaderError indicates a tag header byte matching no known scheme.
type UnsupportedHeaderError struct {
	Header byte
}

func (e *UnsupportedHeaderError) Error() string {
	return fmt.Sprintf("EPC-96 headers are %#X and %#X, but this is: %#X",
		byte(SGTIN96Header), byte(GID96Header), e.Header)
}
