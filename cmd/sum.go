// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/Thermoquad/crcsum/pkg/crc16"
	"github.com/Thermoquad/crcsum/pkg/manifest"
	"github.com/spf13/cobra"
)

var (
	sumString   bool
	sumHex      bool
	sumSnappy   bool
	sumManifest string
)

var sumCmd = &cobra.Command{
	Use:   "sum [FILE...]",
	Short: "Print CRC-16 checksums of files, strings or hex bytes",
	Long: `Print the CRC-16 checksum of each input, one "XXXX  name" line per input.

With no FILE, or when FILE is -, read standard input.

Examples:
  # Check value of the default variant (prints 29B1)
  crcsum sum --string 123456789

  # Checksum raw bytes
  crcsum sum --hex "7E 01 02 7F"

  # Checksum files and record them in a manifest for "crcsum check"
  crcsum sum --manifest firmware.crcs build/*.bin

  # Checksum the decompressed content of snappy framed files
  crcsum sum --snappy logs/*.sz

Exit codes:
  0 - All inputs checksummed
  1 - At least one input could not be read
  2 - The manifest could not be written`,
	RunE: runSum,
}

func init() {
	rootCmd.AddCommand(sumCmd)
	sumCmd.Flags().BoolVar(&sumString, "string", false, "Treat arguments as literal strings")
	sumCmd.Flags().BoolVar(&sumHex, "hex", false, "Treat arguments as hex byte strings")
	sumCmd.Flags().BoolVar(&sumSnappy, "snappy", false, "Decompress inputs as snappy framed streams")
	sumCmd.Flags().StringVar(&sumManifest, "manifest", "", "Also write a CBOR manifest of the file inputs")
	sumCmd.MarkFlagsMutuallyExclusive("string", "hex")
	sumCmd.MarkFlagsMutuallyExclusive("string", "snappy", "manifest")
	sumCmd.MarkFlagsMutuallyExclusive("hex", "snappy", "manifest")
}

func runSum(cmd *cobra.Command, args []string) error {
	table, err := selectedTable()
	if err != nil {
		return err
	}

	if sumString || sumHex {
		return sumArguments(os.Stdout, table, args, sumHex)
	}

	if code := sumFiles(os.Stdout, os.Stderr, table, args, sumManifest); code != 0 {
		os.Exit(code)
	}
	return nil
}

// sumArguments checksums each argument as a string, or as hex bytes
func sumArguments(w io.Writer, table *crc16.Table, args []string, isHex bool) error {
	for _, arg := range args {
		data := []byte(arg)
		if isHex {
			var err error
			data, err = parseHex(arg)
			if err != nil {
				return err
			}
		}
		fmt.Fprint(w, formatSumLine(table.Checksum(data), fmt.Sprintf("%q", arg)))
	}
	return nil
}

// sumFiles prints one line per input and, when manifestPath is set, records
// the file inputs in a manifest. It returns the process exit code: 1 if any
// input could not be read, 2 if the manifest could not be written.
func sumFiles(w, errw io.Writer, table *crc16.Table, names []string, manifestPath string) int {
	if len(names) == 0 {
		names = []string{stdinName}
	}

	var m *manifest.Manifest
	if manifestPath != "" {
		m = manifest.New(table.Params())
	}

	failed := 0
	for _, name := range names {
		sum, size, err := sumFile(table, name)
		if err != nil {
			fmt.Fprintf(errw, "crcsum: %s: %v\n", name, err)
			failed++
			continue
		}
		fmt.Fprint(w, formatSumLine(sum, name))

		if m != nil {
			if name == stdinName {
				fmt.Fprintf(errw, "crcsum: standard input not recorded in manifest\n")
				continue
			}
			m.Add(name, size, sum)
		}
	}

	if m != nil {
		if err := writeManifest(manifestPath, m); err != nil {
			fmt.Fprintf(errw, "crcsum: %v\n", err)
			return 2
		}
	}

	if failed > 0 {
		return 1
	}
	return 0
}

func sumFile(table *crc16.Table, name string) (uint16, int64, error) {
	r, err := openInput(name)
	if err != nil {
		return 0, 0, err
	}
	defer r.Close()

	return sumReader(table, r, sumSnappy)
}

func writeManifest(path string, m *manifest.Manifest) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create manifest: %w", err)
	}

	if err := manifest.Encode(f, m); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
