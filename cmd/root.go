// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"github.com/Thermoquad/crcsum/pkg/crc16"
	"github.com/spf13/cobra"
)

var (
	// Checksum flags
	variantName string

	// Serial connection flags
	portName string
	baudRate int

	// WebSocket connection flags
	wsURL         string
	wsUsername    string
	wsNoSSLVerify bool
)

var rootCmd = &cobra.Command{
	Use:   "crcsum",
	Short: "CRC-16/CCITT checksum tool",
	Long: `crcsum - Compute and verify CRC-16 checksums.

The default variant is CRC-16/CCITT-FALSE (poly 0x1021, init 0xFFFF, no
reflection, no xor-out, check value 0x29B1). Other CRC-16 parameter sets
can be selected with --variant; run "crcsum selftest" to list them.

Inputs can be files, literal strings, hex byte strings, or a live byte
stream from a serial port or WebSocket.

Connection modes (stream command):
  Serial:    --port /dev/ttyUSB0 [--baud 115200]
  WebSocket: --url ws://host/path [--username user]

For WebSocket authentication, the password is read from the CRCSUM_PASSWORD
environment variable, or prompted interactively if not set. The --password
flag is intentionally not provided to avoid leaking credentials in shell history.`,
	Version: "1.0.0",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&variantName, "variant", "ccitt-false", "CRC-16 variant (e.g. ccitt-false, xmodem, kermit, x25)")

	// Serial connection flags
	rootCmd.PersistentFlags().StringVarP(&portName, "port", "p", "", "Serial port device")
	rootCmd.PersistentFlags().IntVarP(&baudRate, "baud", "b", 115200, "Baud rate (serial only)")

	// WebSocket connection flags
	rootCmd.PersistentFlags().StringVarP(&wsURL, "url", "u", "", "WebSocket URL (ws:// or wss://)")
	rootCmd.PersistentFlags().StringVar(&wsUsername, "username", "", "Username for HTTP Basic auth")
	rootCmd.PersistentFlags().BoolVar(&wsNoSSLVerify, "no-ssl-verify", false, "Skip TLS certificate verification (wss:// only)")
}

// selectedTable builds the lookup table for --variant
func selectedTable() (*crc16.Table, error) {
	p, err := crc16.Lookup(variantName)
	if err != nil {
		return nil, err
	}
	return crc16.MakeTable(p), nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
