/* Apache v2 license
 * Copyright (C) 2019 Intel Corporation
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package epc

import (
	"fmt"
	"math/big"

	"github.com/intel/rsp-sw-toolkit-im-suite-epc96/bitfield"
	"github.com/intel/rsp-sw-toolkit-im-suite-epc96/digits"
	"github.com/intel/rsp-sw-toolkit-im-suite-epc96/gs1"
)

const (
	// SGTIN96Header is the 8-bit scheme discriminant for SGTIN-96 tags.
	SGTIN96Header = 0x30
	// SGTIN96TagURIPrefix begins every SGTIN-96 tag URI.
	SGTIN96TagURIPrefix = "urn:epc:tag:sgtin-96"

	headerLen    = 8
	filterLen    = 3
	partitionLen = 3
	prefixIIRLen = 44 // company prefix + item reference, split per partition
	serialLen    = 38

	filterStart    = headerLen
	partitionStart = filterStart + filterLen
	prefixStart    = partitionStart + partitionLen
	serialStart    = prefixStart + prefixIIRLen
)

// Filter values name the packaging level of a tagged item. Values 3 and 5 are
// reserved by GS1 but still encode and decode; this package does not reject
// them.
const (
	FilterOther     = 0
	FilterPOS       = 1
	FilterFullCase  = 2
	FilterInnerPack = 4
	FilterUnitLoad  = 6
	FilterUnitPack  = 7
)

// maxSerial is the largest serial an SGTIN-96 can carry (2^38 - 1).
var maxSerial = new(big.Int).SetUint64(1<<serialLen - 1)

// sgtinPartition fixes how many digits and bits the company prefix and item
// reference occupy for one partition value. The digit counts always sum to 13
// and the bit widths to 44; a larger company prefix leaves less room for item
// references.
type sgtinPartition struct {
	prefixDigits, prefixBits   int
	itemRefDigits, itemRefBits int
}

// sgtinPartitions is indexed by the 3-bit partition field of the tag. It is
// never mutated, so sharing it across concurrent callers needs no locking.
var sgtinPartitions = [7]sgtinPartition{
	{12, 40, 1, 4},
	{11, 37, 2, 7},
	{10, 34, 3, 10},
	{9, 30, 4, 14},
	{8, 27, 5, 17},
	{7, 24, 6, 20},
	{6, 20, 7, 24},
}

// ResolvePartition returns the partition index for a company prefix with the
// given digit count.
//
// If explicit is non-nil, the caller has pinned a partition; it must be in
// [0, 6] and its digit count must agree with prefixDigits. Otherwise the
// table is scanned for the row matching prefixDigits; each digit count 6-12
// appears in exactly one row, so resolution is unambiguous.
func ResolvePartition(prefixDigits int, explicit *int) (int, error) {
	if explicit != nil {
		p := *explicit
		if p < 0 || p >= len(sgtinPartitions) {
			return 0, &UnsupportedPartitionError{Partition: p}
		}
		if sgtinPartitions[p].prefixDigits != prefixDigits {
			return 0, &PartitionMismatchError{
				Partition:  p,
				WantDigits: sgtinPartitions[p].prefixDigits,
				GotDigits:  prefixDigits,
			}
		}
		return p, nil
	}

	for p := range sgtinPartitions {
		if sgtinPartitions[p].prefixDigits == prefixDigits {
			return p, nil
		}
	}
	return 0, &UnsupportedPrefixLengthError{Digits: prefixDigits}
}

// Sgtin96Input carries the fields for encoding an SGTIN-96 tag. Each numeric
// field accepts a digit string, native integer, or *big.Int; strings keep
// their leading '0's, which is how a company prefix shorter than its
// partition's digit count stays unambiguous. A nil Filter encodes as
// FilterOther. A nil Partition is resolved from the company prefix's digit
// count.
type Sgtin96Input struct {
	Filter        interface{} `json:"filter"`
	CompanyPrefix interface{} `json:"companyPrefix"`
	ItemReference interface{} `json:"itemReference"`
	Serial        interface{} `json:"serial"`
	Partition     *int        `json:"partition,omitempty"`
}

// Sgtin96Result is the decoded form of an SGTIN-96 tag. CompanyPrefix and
// ItemReference are zero-padded to their partition's digit counts; Serial is
// an unpadded decimal string.
type Sgtin96Result struct {
	Hex           string `json:"hex"`
	Binary        string `json:"binary"`
	URI           string `json:"uri"`
	Filter        int    `json:"filter"`
	Partition     int    `json:"partition"`
	CompanyPrefix string `json:"companyPrefix"`
	ItemReference string `json:"itemReference"`
	Serial        string `json:"serial"`
}

// Scheme returns SchemeSGTIN96.
func (r *Sgtin96Result) Scheme() Scheme { return SchemeSGTIN96 }

func (r *Sgtin96Result) epcResult() {}

// Fields returns the decoded fields as decimal strings.
func (r *Sgtin96Result) Fields() map[string]string {
	return map[string]string{
		"filter":        fmt.Sprintf("%d", r.Filter),
		"partition":     fmt.Sprintf("%d", r.Partition),
		"companyPrefix": r.CompanyPrefix,
		"itemReference": r.ItemReference,
		"serial":        r.Serial,
	}
}

// GTIN returns the GTIN-14 element string this SGTIN identifies: the item
// reference's leading indicator digit, then the company prefix, then the
// remaining item reference digits, closed by the GS1 check digit.
func (r *Sgtin96Result) GTIN() string {
	// the payload is always a digit string, so AppendCheckDigit cannot fail
	gtin, _ := gs1.AppendCheckDigit(
		r.ItemReference[:1] + r.CompanyPrefix + r.ItemReference[1:])
	return gtin
}

// EncodeSgtin96 validates and encodes the input into an SGTIN-96 register.
//
// The company prefix and item reference are left-padded with '0's to their
// partition's digit counts; digit strings longer than those counts fail
// rather than truncate. The serial must fit in 38 bits.
func EncodeSgtin96(input Sgtin96Input) (*Sgtin96Result, error) {
	filter, err := normalizeFilter(input.Filter, FilterOther)
	if err != nil {
		return nil, err
	}
	prefix, err := digits.Normalize(input.CompanyPrefix, "company prefix")
	if err != nil {
		return nil, err
	}
	itemRef, err := digits.Normalize(input.ItemReference, "item reference")
	if err != nil {
		return nil, err
	}
	serial, err := digits.NormalizeBig(input.Serial, "serial")
	if err != nil {
		return nil, err
	}

	p, err := ResolvePartition(len(prefix), input.Partition)
	if err != nil {
		return nil, err
	}
	part := sgtinPartitions[p]

	if prefix, err = digits.Pad(prefix, part.prefixDigits, "company prefix"); err != nil {
		return nil, err
	}
	if itemRef, err = digits.Pad(itemRef, part.itemRefDigits, "item reference"); err != nil {
		return nil, err
	}
	if serial.Cmp(maxSerial) > 0 {
		return nil, &RangeError{
			Field: "serial", Value: serial,
			Min: big.NewInt(0), Max: maxSerial,
		}
	}

	// a partition's full digit count always fits its bit width, so only the
	// layout itself could fail here, and that would be a defect in this table
	prefixVal, _ := new(big.Int).SetString(prefix, 10)
	itemRefVal, _ := new(big.Int).SetString(itemRef, 10)
	reg, err := bitfield.BuildRegister([]bitfield.Field{
		bitfield.NewField("header", SGTIN96Header, headerLen),
		bitfield.NewField("filter", uint64(filter), filterLen),
		bitfield.NewField("partition", uint64(p), partitionLen),
		{Name: "company prefix", Value: prefixVal, Width: part.prefixBits},
		{Name: "item reference", Value: itemRefVal, Width: part.itemRefBits},
		{Name: "serial", Value: serial, Width: serialLen},
	})
	if err != nil {
		return nil, err
	}

	return newSgtin96Result(reg, filter, p, prefix, itemRef, serial.String()), nil
}

// ParseSgtin96 slices an SGTIN-96 register back into its fields.
//
// The partition value is validated because without it the company prefix and
// item reference cannot be split; other fields decode as-is.
func ParseSgtin96(reg bitfield.Register) (*Sgtin96Result, error) {
	if hdr := byte(reg.Uint(0, headerLen)); hdr != SGTIN96Header {
		return nil, &UnsupportedHeaderError{Header: hdr}
	}

	filter := int(reg.Uint(filterStart, filterLen))
	p := int(reg.Uint(partitionStart, partitionLen))
	if p >= len(sgtinPartitions) {
		return nil, &UnsupportedPartitionError{Partition: p}
	}
	part := sgtinPartitions[p]

	prefix := digits.Format(reg.Uint(prefixStart, part.prefixBits), part.prefixDigits)
	itemRef := digits.Format(
		reg.Uint(prefixStart+part.prefixBits, part.itemRefBits), part.itemRefDigits)
	serial := reg.Extract(serialStart, serialLen).String()

	return newSgtin96Result(reg, filter, p, prefix, itemRef, serial), nil
}

// IsSgtin96Header returns true iff the byte is the SGTIN-96 scheme header.
func IsSgtin96Header(header byte) bool {
	return header == SGTIN96Header
}

func newSgtin96Result(reg bitfield.Register, filter, partition int,
	prefix, itemRef, serial string) *Sgtin96Result {
	return &Sgtin96Result{
		Hex:    reg.Hex(),
		Binary: reg.Binary(),
		URI: fmt.Sprintf("%s:%d.%s.%s.%s",
			SGTIN96TagURIPrefix, filter, prefix, itemRef, serial),
		Filter:        filter,
		Partition:     partition,
		CompanyPrefix: prefix,
		ItemReference: itemRef,
		Serial:        serial,
	}
}

// normalizeFilter applies the default when no filter was supplied, and
// otherwise requires an integer in [0, 7].
func normalizeFilter(value interface{}, defaultFilter int) (int, error) {
	if value == nil {
		return defaultFilter, nil
	}
	n, err := digits.NormalizeBig(value, "filter")
	if err != nil {
		return 0, err
	}
	if n.Cmp(big.NewInt(7)) > 0 {
		return 0, &digits.ValidationError{
			Field:  "filter",
			Reason: fmt.Sprintf("must be in [0, 7], but is %s", n),
		}
	}
	return int(n.Int64()), nil
}
