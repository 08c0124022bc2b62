/* Apache v2 license
 * Copyright (C) 2019 Intel Corporation
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package epc

import (
	"github.com/intel/rsp-sw-toolkit-im-suite-epc96/bitfield"
	"github.com/pkg/errors"
)

// Scheme names the EPC encoding scheme a decoded result came from.
type Scheme string

const (
	SchemeSGTIN96 = Scheme("sgtin-96")
	SchemeGID96   = Scheme("gid-96")
)

// Result is the closed union over the per-scheme decode results: every Result
// is a *Sgtin96Result or a *Gid96Result. Type-switch on it, or use Scheme,
// to recover the concrete fields.
type Result interface {
	Scheme() Scheme
	Fields() map[string]string

	// epcResult keeps the union closed to this package's schemes.
	epcResult()
}

// schemeCodec pairs a header matcher with its scheme's parser. Decode
// consults the codecs in order and the first match wins; adding a scheme is
// appending a row.
type schemeCodec struct {
	matches func(header byte) bool
	parse   func(reg bitfield.Register) (Result, error)
}

var schemeCodecs = []schemeCodec{
	{IsSgtin96Header, func(reg bitfield.Register) (Result, error) { return ParseSgtin96(reg) }},
	{IsGid96Header, func(reg bitfield.Register) (Result, error) { return ParseGid96(reg) }},
}

// Decode canonicalizes a hex-encoded EPC-96, reads its 8-bit header, and
// parses it with the matching scheme's codec. A header matching no known
// scheme fails with an UnsupportedHeaderError naming the byte.
func Decode(epcHex string) (Result, error) {
	reg, err := bitfield.ParseHex(epcHex)
	if err != nil {
		return nil, errors.Wrap(err, "unable to decode tag data as hex")
	}

	header := byte(reg.Uint(0, headerLen))
	for _, codec := range schemeCodecs {
		if codec.matches(header) {
			return codec.parse(reg)
		}
	}
	return nil, &UnsupportedHeaderError{Header: header}
}
