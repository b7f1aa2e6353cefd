// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad
//
// crcsum - CRC-16/CCITT Checksum Tool
//
// A CLI tool for computing and verifying CRC-16 checksums of files,
// strings, hex bytes and live serial or WebSocket byte streams.

package main

import (
	"os"

	"github.com/Thermoquad/crcsum/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
