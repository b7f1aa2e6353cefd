// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package crc16

import (
	"math/bits"

	sigurn "github.com/sigurn/crc16"
)

// Params describes a CRC-16 variant in the Rocksoft model.
type Params = sigurn.Params

// Table is a prepared lookup table for one parameter set.
// A Table is immutable and may be shared between goroutines.
type Table struct {
	params Params
	table  *sigurn.Table
}

// MakeTable prepares the lookup table for p.
func MakeTable(p Params) *Table {
	return &Table{params: p, table: sigurn.MakeTable(p)}
}

// Params returns the parameter set the table was built for.
func (t *Table) Params() Params {
	return t.params
}

// Entries returns the 256 entries a byte-wise implementation of the variant
// indexes: MSB-first over Poly, or LSB-first over the bit-reversed Poly when
// the variant reflects its input.
func (t *Table) Entries() [256]uint16 {
	msb := sigurn.MakeTable(Params{Poly: t.params.Poly})

	var entries [256]uint16
	for i := range entries {
		if t.params.RefIn {
			entries[i] = bits.Reverse16(sigurn.Update(0, []byte{bits.Reverse8(byte(i))}, msb))
		} else {
			entries[i] = sigurn.Update(0, []byte{byte(i)}, msb)
		}
	}
	return entries
}

// Init returns the initial register value.
func (t *Table) Init() uint16 {
	return sigurn.Init(t.table)
}

// Update folds p into the register crc. The register is kept MSB-first;
// reflected variants reflect each input byte instead.
func (t *Table) Update(crc uint16, p []byte) uint16 {
	return sigurn.Update(crc, p, t.table)
}

// Complete applies the output reflection and xor-out to the register.
func (t *Table) Complete(crc uint16) uint16 {
	return sigurn.Complete(crc, t.table)
}

// Checksum computes the checksum of data under the table's parameters.
func (t *Table) Checksum(data []byte) uint16 {
	return sigurn.Checksum(data, t.table)
}
