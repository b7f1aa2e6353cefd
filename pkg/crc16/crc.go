// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package crc16

// ccittTable is the MSB-first lookup table for polynomial 0x1021.
// Read-only after package initialisation.
var ccittTable = func() [256]uint16 {
	var table [256]uint16
	for i := 0; i < 256; i++ {
		crc := uint16(i) << 8
		for j := 0; j < 8; j++ {
			if crc&0x8000 != 0 {
				crc = (crc << 1) ^ crcPolynomial
			} else {
				crc <<= 1
			}
		}
		table[i] = crc
	}
	return table
}()

// State is a running CRC-16/CCITT-FALSE accumulator.
//
// The zero value is the initial state, so a State is always valid to pass to
// Update or Finalize. States are values: Update returns a new State and never
// modifies its argument.
type State struct {
	// Stored xored with the initial value so the zero State is Init().
	x uint16
}

// Init returns the initial accumulator.
func Init() State {
	return State{}
}

// Update folds p into the accumulator and returns the new state.
// An empty p returns s unchanged.
func Update(s State, p []byte) State {
	crc := s.x ^ crcInitial
	for _, b := range p {
		crc = (crc << 8) ^ ccittTable[byte(crc>>8)^b]
	}
	return State{x: crc ^ crcInitial}
}

// Finalize returns the checksum for the bytes folded into s.
func Finalize(s State) uint16 {
	return (s.x ^ crcInitial) ^ crcXorOut
}

// Update is the method form of Update.
func (s State) Update(p []byte) State {
	return Update(s, p)
}

// Sum16 is the method form of Finalize.
func (s State) Sum16() uint16 {
	return Finalize(s)
}

// Checksum computes CRC-16/CCITT-FALSE over data.
func Checksum(data []byte) uint16 {
	return Finalize(Update(Init(), data))
}

// Verify reports whether the checksum of data equals expected.
func Verify(data []byte, expected uint16) bool {
	return Checksum(data) == expected
}

// CCITTTable returns a copy of the CRC-16/CCITT-FALSE lookup table.
func CCITTTable() [256]uint16 {
	return ccittTable
}
