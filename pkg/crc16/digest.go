// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package crc16

import "hash"

var ccittFalseTable = MakeTable(CCITTFalse)

// Digest is a streaming CRC-16 that implements hash.Hash.
// It is not safe for concurrent use.
type Digest struct {
	table *Table
	crc   uint16
}

var _ hash.Hash = (*Digest)(nil)

// New returns a CRC-16/CCITT-FALSE digest.
func New() *Digest {
	return NewWithTable(ccittFalseTable)
}

// NewWithTable returns a digest for the variant t was built for.
func NewWithTable(t *Table) *Digest {
	d := &Digest{table: t}
	d.Reset()
	return d
}

// Write folds p into the checksum. It never returns an error.
func (d *Digest) Write(p []byte) (int, error) {
	d.crc = d.table.Update(d.crc, p)
	return len(p), nil
}

// Sum16 returns the checksum of everything written so far.
func (d *Digest) Sum16() uint16 {
	return d.table.Complete(d.crc)
}

// Sum appends the big-endian checksum to b.
func (d *Digest) Sum(b []byte) []byte {
	s := d.Sum16()
	return append(b, byte(s>>8), byte(s))
}

// Reset restores the initial register.
func (d *Digest) Reset() {
	d.crc = d.table.Init()
}

// Size returns the checksum length in bytes.
func (d *Digest) Size() int { return Size }

// BlockSize returns 1; the digest accepts writes of any length.
func (d *Digest) BlockSize() int { return 1 }

// Params returns the digest's parameter set.
func (d *Digest) Params() Params { return d.table.params }
