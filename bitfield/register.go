// Package bitfield packs and slices the 96-bit registers used by EPC tag
// encodings.
//
// A Register is the canonical in-memory form of an encoded tag: a 96-bit
// big-endian unsigned integer. BuildRegister assembles one from an ordered
// list of (value, bit width) fields, validating every field before any bits
// are placed so that a partial or silently-truncated register is never
// returned; Extract is the inverse, slicing a field back out given its
// MSB-relative offset and length.
package bitfield

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"regexp"
	"strings"
)

const (
	// RegisterBits is the fixed width of an EPC-96 register.
	RegisterBits = 96
	// RegisterBytes is the register width in bytes.
	RegisterBytes = RegisterBits / 8
	// HexLength is the exact length of a register's hex rendering.
	HexLength = RegisterBytes * 2
)

// hexRegex validates canonicalized register hex strings.
var hexRegex = regexp.MustCompile(`^[0-9A-F]+$`)

// Register is a 96-bit unsigned integer holding an encoded tag, most
// significant byte first. Registers are values; once built they are never
// modified.
type Register [RegisterBytes]byte

// Field is one (value, bit width) pair contributed to a register. The name
// only appears in error messages.
type Field struct {
	Name  string
	Value *big.Int
	Width int
}

// NewField is a convenience constructor for fields whose values fit uint64.
func NewField(name string, value uint64, width int) Field {
	return Field{Name: name, Value: new(big.Int).SetUint64(value), Width: width}
}

// LayoutError indicates the field list handed to BuildRegister violates the
// register's layout invariants. It signals a defect in the calling codec, not
// bad user input.
type LayoutError struct {
	Reason string
}

func (e *LayoutError) Error() string {
	return "bad register layout: " + e.Reason
}

// RangeError indicates a field's value does not fit its declared bit width.
type RangeError struct {
	Field string
	Bits  int
	Value *big.Int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s must fit in %d bits, but %s does not",
		e.Field, e.Bits, e.Value)
}

// FormatError indicates malformed register hex text.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return "bad EPC hex: " + e.Reason
}

// BuildRegister packs the ordered fields into a register, most significant
// field first.
//
// Every field is checked before its bits are placed: widths must be positive,
// the widths must sum to exactly RegisterBits, and each value must be
// representable in its declared width. The first violation fails the whole
// build with a LayoutError or RangeError.
func BuildRegister(fields []Field) (Register, error) {
	remaining := RegisterBits
	acc := new(big.Int)
	for _, f := range fields {
		if f.Width <= 0 {
			return Register{}, &LayoutError{Reason: fmt.Sprintf(
				"%s has non-positive bit width %d", f.Name, f.Width)}
		}
		remaining -= f.Width
		if remaining < 0 {
			return Register{}, &LayoutError{Reason: fmt.Sprintf(
				"%s exceeds %d bits", f.Name, RegisterBits)}
		}
		if f.Value == nil || f.Value.Sign() < 0 || f.Value.BitLen() > f.Width {
			return Register{}, &RangeError{Field: f.Name, Bits: f.Width, Value: f.Value}
		}
		acc.Or(acc, new(big.Int).Lsh(f.Value, uint(remaining)))
	}
	if remaining != 0 {
		return Register{}, &LayoutError{Reason: fmt.Sprintf(
			"fields sum to %d bits, not %d", RegisterBits-remaining, RegisterBits)}
	}

	var r Register
	b := acc.Bytes()
	copy(r[RegisterBytes-len(b):], b)
	return r, nil
}

// Extract returns the length-bit slice starting offset bits from the most
// significant bit. It panics if the requested slice falls outside the
// register; the codecs drive it from static layout tables, so a bad offset is
// a programming error.
func (r Register) Extract(offset, length int) *big.Int {
	if offset < 0 || length <= 0 || offset+length > RegisterBits {
		panic(fmt.Sprintf("illegal bit slice [%d, %d) of a %d-bit register",
			offset, offset+length, RegisterBits))
	}
	v := new(big.Int).SetBytes(r[:])
	v.Rsh(v, uint(RegisterBits-offset-length))
	mask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(length)), big.NewInt(1))
	return v.And(v, mask)
}

// Uint is Extract for fields up to 64 bits wide.
func (r Register) Uint(offset, length int) uint64 {
	if length > 64 {
		panic(fmt.Sprintf("cannot extract %d bits into a uint64", length))
	}
	return r.Extract(offset, length).Uint64()
}

// Hex renders the register as 24 upper-case hex characters.
func (r Register) Hex() string {
	return strings.ToUpper(hex.EncodeToString(r[:]))
}

// Binary renders the register as 96 '0'/'1' characters, MSB first.
func (r Register) Binary() string {
	b := &strings.Builder{}
	b.Grow(RegisterBits)
	for _, octet := range r {
		fmt.Fprintf(b, "%08b", octet)
	}
	return b.String()
}

// ParseHex canonicalizes hex text (trims surrounding whitespace, upper-cases)
// and decodes it into a register. The canonical form must be exactly 24
// characters of 0-9A-F; anything else fails with a FormatError.
func ParseHex(text string) (Register, error) {
	s := strings.ToUpper(strings.TrimSpace(text))
	if !hexRegex.MatchString(s) {
		return Register{}, &FormatError{Reason: fmt.Sprintf(
			"%q may only contain characters 0-9 and A-F", text)}
	}
	if len(s) != HexLength {
		return Register{}, &FormatError{Reason: fmt.Sprintf(
			"should have %d characters, but %q has %d", HexLength, s, len(s))}
	}

	var r Register
	b, err := hex.DecodeString(s)
	if err != nil {
		// unreachable: the regexp and length check precede decoding
		return Register{}, &FormatError{Reason: err.Error()}
	}
	copy(r[:], b)
	return r, nil
}
