/* Apache v2 license
 * Copyright (C) 2019 Intel Corporation
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package epc

import (
	"fmt"

	"github.com/intel/rsp-sw-toolkit-im-suite-epc96/bitfield"
	"github.com/intel/rsp-sw-toolkit-im-suite-epc96/digits"
)

const (
	// GID96Header is the 8-bit scheme discriminant for GID-96 tags.
	GID96Header = 0x35
	// GID96TagURIPrefix begins every GID-96 tag URI.
	GID96TagURIPrefix = "urn:epc:tag:gid-96"

	managerLen   = 28
	classLen     = 24
	gidSerialLen = 36

	managerStart   = headerLen
	classStart     = managerStart + managerLen
	gidSerialStart = classStart + classLen
)

// Gid96Input carries the fields for encoding a GID-96 tag. Each field accepts
// a digit string, native integer, or *big.Int. GID-96 has no partitions or
// filter; the three fields have fixed widths of 28, 24, and 36 bits.
type Gid96Input struct {
	ManagerNumber interface{} `json:"managerNumber"`
	ObjectClass   interface{} `json:"objectClass"`
	Serial        interface{} `json:"serial"`
}

// Gid96Result is the decoded form of a GID-96 tag; the fields are unpadded
// decimal strings.
type Gid96Result struct {
	Hex           string `json:"hex"`
	Binary        string `json:"binary"`
	URI           string `json:"uri"`
	ManagerNumber string `json:"managerNumber"`
	ObjectClass   string `json:"objectClass"`
	Serial        string `json:"serial"`
}

// Scheme returns SchemeGID96.
func (r *Gid96Result) Scheme() Scheme { return SchemeGID96 }

func (r *Gid96Result) epcResult() {}

// Fields returns the decoded fields as decimal strings.
func (r *Gid96Result) Fields() map[string]string {
	return map[string]string{
		"managerNumber": r.ManagerNumber,
		"objectClass":   r.ObjectClass,
		"serial":        r.Serial,
	}
}

// EncodeGid96 validates and encodes the input into a GID-96 register. A field
// too large for its width fails with a range error naming the field.
func EncodeGid96(input Gid96Input) (*Gid96Result, error) {
	manager, err := digits.NormalizeBig(input.ManagerNumber, "manager number")
	if err != nil {
		return nil, err
	}
	class, err := digits.NormalizeBig(input.ObjectClass, "object class")
	if err != nil {
		return nil, err
	}
	serial, err := digits.NormalizeBig(input.Serial, "serial")
	if err != nil {
		return nil, err
	}

	reg, err := bitfield.BuildRegister([]bitfield.Field{
		bitfield.NewField("header", GID96Header, headerLen),
		{Name: "manager number", Value: manager, Width: managerLen},
		{Name: "object class", Value: class, Width: classLen},
		{Name: "serial", Value: serial, Width: gidSerialLen},
	})
	if err != nil {
		return nil, err
	}

	return newGid96Result(reg, manager.String(), class.String(), serial.String()), nil
}

// ParseGid96 slices a GID-96 register back into its fields. The layout is
// fixed, so unlike SGTIN-96 there is no partition to validate.
func ParseGid96(reg bitfield.Register) (*Gid96Result, error) {
	if hdr := byte(reg.Uint(0, headerLen)); hdr != GID96Header {
		return nil, &UnsupportedHeaderError{Header: hdr}
	}

	return newGid96Result(reg,
		reg.Extract(managerStart, managerLen).String(),
		reg.Extract(classStart, classLen).String(),
		reg.Extract(gidSerialStart, gidSerialLen).String()), nil
}

// IsGid96Header returns true iff the byte is the GID-96 scheme header.
func IsGid96Header(header byte) bool {
	return header == GID96Header
}

func newGid96Result(reg bitfield.Register, manager, class, serial string) *Gid96Result {
	return &Gid96Result{
		Hex:    reg.Hex(),
		Binary: reg.Binary(),
		URI: fmt.Sprintf("%s:%s.%s.%s",
			GID96TagURIPrefix, manager, class, serial),
		ManagerNumber: manager,
		ObjectClass:   class,
		Serial:        serial,
	}
}
