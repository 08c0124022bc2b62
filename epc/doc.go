/* Apache v2 license
 * Copyright (C) 2019 Intel Corporation
 *
 * SPDX-License-Identifier: Apache-2.0
 */

// Package epc encodes and decodes 96-bit EPC tag payloads as defined by the
// GS1 EPC Tag Data Standard; it currently covers the SGTIN-96 and GID-96
// schemes.
//
// The following are links to the GS1 General Standard and EPC Tag Data
// Standard, on which this code is based:
// - https://www.gs1.org/sites/default/files/docs/barcodes/GS1_General_Specifications.pdf
// - https://www.gs1.org/standards/epcrfid-epcis-id-keys/epc-rfid-tds/1-12
//
// An EPC is an identifier assigned to exactly one "thing", and the same EPC
// can be written to a tag in more than one binary form. The 96-bit forms
// handled here pack their fields into a single 96-bit register whose leading
// 8 bits name the scheme: 0x30 for SGTIN-96, 0x35 for GID-96. SGTIN-96
// identifies an instance of a GS1 trade item (a GTIN plus a serial number);
// its company prefix and item reference have no fixed widths, but are split
// according to a partition value carried in the tag, with seven legal
// partitions trading company prefix digits for item reference digits. GID-96
// is the general identifier scheme: a manager number, an object class, and a
// serial, all at fixed widths, with no GS1 key behind them.
//
// Encoding accepts each numeric field as a digit string, native integer, or
// *big.Int (callers frequently hold serials as strings, and they range up to
// 2^38-1). All validation happens before any bits are placed: a non-nil error
// means nothing was encoded, and a nil error means the result's hex, binary,
// and URI renderings agree exactly with what Decode produces for the same
// register.
//
// Decode is the inverse entry point: it canonicalizes a 24-character hex
// string, reads the 8-bit header, and routes the register to the matching
// scheme's parser.
package epc
