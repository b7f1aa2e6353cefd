// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package crc16

import "math/bits"

// ReferenceChecksum computes CRC-16/CCITT-FALSE bit by bit, without a table.
func ReferenceChecksum(data []byte) uint16 {
	crc := uint16(crcInitial)
	for _, b := range data {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = (crc << 1) ^ crcPolynomial
			} else {
				crc <<= 1
			}
		}
	}
	return crc ^ crcXorOut
}

// ReferenceTable derives the MSB-first table for poly by long division:
// entry i is the remainder of i·x^16 modulo x^16 + poly.
func ReferenceTable(poly uint16) [256]uint16 {
	var table [256]uint16
	for i := range table {
		table[i] = referenceEntry(byte(i), poly)
	}
	return table
}

func referenceEntry(i byte, poly uint16) uint16 {
	divisor := (uint32(1)<<16 | uint32(poly)) << 7
	rem := uint32(i) << 16
	for bit := uint32(1) << 23; bit >= 1<<16; bit >>= 1 {
		if rem&bit != 0 {
			rem ^= divisor
		}
		divisor >>= 1
	}
	return uint16(rem)
}

// ReferenceReflectedTable derives the LSB-first table for poly: each entry is
// the bit-reversed MSB-first entry of the bit-reversed index.
func ReferenceReflectedTable(poly uint16) [256]uint16 {
	var table [256]uint16
	for i := range table {
		table[i] = bits.Reverse16(referenceEntry(bits.Reverse8(byte(i)), poly))
	}
	return table
}
