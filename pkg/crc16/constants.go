// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

// Package crc16 provides a table-driven CRC-16 checksum engine.
//
// The core API (Init, Update, Finalize) computes CRC-16/CCITT-FALSE, the
// parameter set also catalogued as CRC-16/IBM-3740:
//
//	width=16 poly=0x1021 init=0xFFFF refin=false refout=false xorout=0x0000
//	check("123456789") = 0x29B1
//
// "CCITT" names several incompatible parameter sets. The other common ones
// (XMODEM, KERMIT, X-25, ...) are available through Params and MakeTable.
package crc16

// CRC-16/CCITT-FALSE configuration
const (
	crcPolynomial = 0x1021
	crcInitial    = 0xFFFF
	crcXorOut     = 0x0000
	crcCheck      = 0x29B1
)

// Size is the size of a CRC-16 checksum in bytes.
const Size = 2

// CheckInput is the message whose checksum is published as a variant's
// check value.
const CheckInput = "123456789"
