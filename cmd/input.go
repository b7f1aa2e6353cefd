// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Thermoquad/crcsum/pkg/crc16"
	"github.com/golang/snappy"
)

// stdinName is the argument that selects standard input
const stdinName = "-"

// parseHex parses a hex byte string. Bytes may be separated by spaces, colons
// or commas, and each group may carry a 0x prefix: "31 32", "0x31,0x32",
// "31:32" and "3132" are all the same two bytes.
func parseHex(s string) ([]byte, error) {
	groups := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == ':' || r == ','
	})

	var digits strings.Builder
	for _, g := range groups {
		g = strings.TrimPrefix(strings.TrimPrefix(g, "0x"), "0X")
		digits.WriteString(g)
	}

	if digits.Len()%2 != 0 {
		return nil, fmt.Errorf("odd number of hex digits in %q", s)
	}

	data, err := hex.DecodeString(digits.String())
	if err != nil {
		return nil, fmt.Errorf("invalid hex %q: %w", s, err)
	}
	return data, nil
}

// openInput opens a named input, or stdin for "-"
func openInput(name string) (io.ReadCloser, error) {
	if name == stdinName {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// sumReader checksums everything read from r. With decompress set, r is read
// as a snappy framed stream and the decompressed bytes are checksummed.
func sumReader(t *crc16.Table, r io.Reader, decompress bool) (uint16, int64, error) {
	if decompress {
		r = snappy.NewReader(r)
	}

	d := crc16.NewWithTable(t)
	n, err := io.Copy(d, r)
	if err != nil {
		return 0, n, err
	}
	return d.Sum16(), n, nil
}

// formatSumLine formats one output line of the sum command
func formatSumLine(sum uint16, name string) string {
	return fmt.Sprintf("%04X  %s\n", sum, name)
}
