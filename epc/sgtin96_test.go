/* Apache v2 license
 * Copyright (C) 2019 Intel Corporation
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package epc

import (
	"fmt"
	"testing"

	"github.com/intel/rsp-sw-toolkit-im-suite-expect"
)

func TestEncodeSgtin96(t *testing.T) {
	type test struct {
		name           string
		input          Sgtin96Input
		hex, uri, gtin string
		bad            bool
	}

	pass := func(name string, input Sgtin96Input, hex, uri, gtin string) test {
		return test{name: name, input: input, hex: hex, uri: uri, gtin: gtin}
	}
	fail := func(name string, input Sgtin96Input) test {
		return test{name: name, input: input, bad: true}
	}

	partition := func(p int) *int { return &p }

	for i, tt := range []test{
		pass("partition 0",
			Sgtin96Input{CompanyPrefix: "000000000001", ItemReference: "1", Serial: 1},
			"300000000000044000000001",
			"urn:epc:tag:sgtin-96:0.000000000001.1.1",
			"10000000000014"),
		pass("partition 5",
			Sgtin96Input{CompanyPrefix: "0888446", ItemReference: "067142",
				Serial: "193853396487"},
			"30143639F84191AD22901607",
			"urn:epc:tag:sgtin-96:0.0888446.067142.193853396487",
			"00888446671424"),
		pass("filter 1",
			Sgtin96Input{Filter: 1, CompanyPrefix: "0614141",
				ItemReference: "000734", Serial: 314159},
			"3034257BF400B7800004CB2F",
			"urn:epc:tag:sgtin-96:1.0614141.000734.314159",
			"00614141007349"),
		pass("short fields pad to the partition's digits",
			Sgtin96Input{Filter: 1, CompanyPrefix: "0614141",
				ItemReference: "734", Serial: "314159"},
			"3034257BF400B7800004CB2F",
			"urn:epc:tag:sgtin-96:1.0614141.000734.314159",
			"00614141007349"),
		pass("explicit matching partition",
			Sgtin96Input{Filter: 1, CompanyPrefix: "0614141",
				ItemReference: "000734", Serial: 314159, Partition: partition(5)},
			"3034257BF400B7800004CB2F",
			"urn:epc:tag:sgtin-96:1.0614141.000734.314159",
			"00614141007349"),
		pass("reserved filter values still encode",
			Sgtin96Input{Filter: "3", CompanyPrefix: "000000000001",
				ItemReference: "1", Serial: 1},
			"306000000000044000000001",
			"urn:epc:tag:sgtin-96:3.000000000001.1.1",
			"10000000000014"),
		pass("serial at the 38-bit ceiling",
			Sgtin96Input{CompanyPrefix: "000001", ItemReference: "0000001",
				Serial: "274877906943"},
			"301800004000007FFFFFFFFF",
			"urn:epc:tag:sgtin-96:0.000001.0000001.274877906943",
			"00000010000014"),

		fail("filter out of range",
			Sgtin96Input{Filter: 8, CompanyPrefix: "0614141",
				ItemReference: "000734", Serial: 1}),
		fail("filter not a whole number",
			Sgtin96Input{Filter: 1.5, CompanyPrefix: "0614141",
				ItemReference: "000734", Serial: 1}),
		fail("company prefix too short for any partition",
			Sgtin96Input{CompanyPrefix: "12345", ItemReference: "1", Serial: 1}),
		fail("company prefix too long for any partition",
			Sgtin96Input{CompanyPrefix: "1234567890123", ItemReference: "1", Serial: 1}),
		fail("item reference over the partition's digit budget",
			Sgtin96Input{CompanyPrefix: "000001", ItemReference: "12345678", Serial: 1}),
		fail("serial above the 38-bit ceiling",
			Sgtin96Input{CompanyPrefix: "000001", ItemReference: "0000001",
				Serial: "274877906944"}),
		fail("negative serial",
			Sgtin96Input{CompanyPrefix: "000001", ItemReference: "0000001", Serial: -1}),
		fail("non-digit item reference",
			Sgtin96Input{CompanyPrefix: "000001", ItemReference: "00x0001", Serial: 1}),
		fail("explicit partition out of range",
			Sgtin96Input{CompanyPrefix: "0614141", ItemReference: "000734",
				Serial: 1, Partition: partition(7)}),
		fail("explicit partition disagrees with prefix digits",
			Sgtin96Input{CompanyPrefix: "0614141", ItemReference: "000734",
				Serial: 1, Partition: partition(2)}),
	} {
		t.Run(fmt.Sprintf("%02d_%s", i, tt.name), func(t *testing.T) {
			w := expect.WrapT(t)

			result, err := EncodeSgtin96(tt.input)
			if tt.bad {
				w.As(tt.input).ShouldFail(err)
				w.Logf("%+v", err)
				return
			}
			w.As(tt.input).StopOnMismatch().ShouldSucceed(err)

			w.ShouldBeEqual(result.Hex, tt.hex)
			w.ShouldBeEqual(result.URI, tt.uri)
			w.ShouldBeEqual(result.GTIN(), tt.gtin)
			w.ShouldBeEqual(result.Scheme(), SchemeSGTIN96)
			w.ShouldHaveLength(result.Binary, 96)

			// hex and binary are alternate renderings of the same register
			parsed := w.ShouldHaveResult(Decode(result.Hex)).(*Sgtin96Result)
			w.ShouldBeEqual(*parsed, *result)
		})
	}
}

func TestResolvePartition(t *testing.T) {
	w := expect.WrapT(t)

	// each of the seven digit counts maps to exactly one partition
	wantPartitions := map[int]int{12: 0, 11: 1, 10: 2, 9: 3, 8: 4, 7: 5, 6: 6}
	for digitCount, want := range wantPartitions {
		p := w.As(digitCount).
			ShouldHaveResult(ResolvePartition(digitCount, nil)).(int)
		w.As(digitCount).ShouldBeEqual(p, want)

		// pinning the matching partition yields the same answer
		p = w.As(digitCount).
			ShouldHaveResult(ResolvePartition(digitCount, &want)).(int)
		w.As(digitCount).ShouldBeEqual(p, want)
	}

	for _, digitCount := range []int{-1, 0, 5, 13, 20} {
		_, err := ResolvePartition(digitCount, nil)
		w.As(digitCount).ShouldFail(err)
		if _, ok := err.(*UnsupportedPrefixLengthError); !ok {
			t.Errorf("expected an *UnsupportedPrefixLengthError, but got %T", err)
		}
	}

	for _, explicit := range []int{-1, 7, 12} {
		explicit := explicit
		_, err := ResolvePartition(6, &explicit)
		w.As(explicit).ShouldFail(err)
		if _, ok := err.(*UnsupportedPartitionError); !ok {
			t.Errorf("expected an *UnsupportedPartitionError, but got %T", err)
		}
	}

	explicit := 3
	_, err := ResolvePartition(6, &explicit)
	w.ShouldFail(err)
	if mismatch, ok := err.(*PartitionMismatchError); !ok {
		t.Errorf("expected a *PartitionMismatchError, but got %T", err)
	} else {
		w.ShouldBeEqual(mismatch.WantDigits, 9)
		w.ShouldBeEqual(mismatch.GotDigits, 6)
	}
}

func TestParseSgtin96_badPartition(t *testing.T) {
	w := expect.WrapT(t)

	// partition bits decode to 7, which the table does not define
	_, err := Decode("301C00004000004000000001")
	w.ShouldFail(err)
	if _, ok := err.(*UnsupportedPartitionError); !ok {
		t.Errorf("expected an *UnsupportedPartitionError, but got %T", err)
	}
}

func TestSgtin96_roundTrip(t *testing.T) {
	// parse(encode(input)) reproduces hex, binary, URI, and fields exactly
	for i, input := range []Sgtin96Input{
		{CompanyPrefix: "000000000001", ItemReference: "1", Serial: 1},
		{Filter: 7, CompanyPrefix: "0614141", ItemReference: "000734", Serial: 314159},
		{Filter: 2, CompanyPrefix: "12345678", ItemReference: "00001", Serial: "274877906943"},
		{Filter: 1, CompanyPrefix: "961234", ItemReference: "0000000", Serial: 0},
		{Filter: 4, CompanyPrefix: "0000000000", ItemReference: "999", Serial: "86"},
	} {
		t.Run(fmt.Sprintf("%02d", i), func(t *testing.T) {
			w := expect.WrapT(t)

			encoded := w.StopOnMismatch().
				ShouldHaveResult(EncodeSgtin96(input)).(*Sgtin96Result)
			decoded := w.StopOnMismatch().
				ShouldHaveResult(Decode(encoded.Hex)).(*Sgtin96Result)

			w.ShouldBeEqual(*decoded, *encoded)
			w.ShouldBeEqual(decoded.Fields()["serial"], encoded.Serial)
		})
	}
}
