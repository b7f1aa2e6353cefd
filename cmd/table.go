// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Thermoquad/crcsum/pkg/crc16"
	"github.com/spf13/cobra"
)

const tableEntriesPerRow = 8

var (
	tableFormat string
	tableVerify bool
)

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Print the 256-entry lookup table for the selected variant",
	Long: `Print the lookup table used by the table-driven algorithm.

Formats:
  text - plain rows of hex values (default)
  go   - a Go [256]uint16 array literal
  c    - a C uint16_t array definition

With --verify, the table is also compared entry by entry against a table
derived by bit-by-bit polynomial division, and the command exits 1 on any
difference.`,
	RunE: runTable,
}

func init() {
	rootCmd.AddCommand(tableCmd)
	tableCmd.Flags().StringVar(&tableFormat, "format", "text", "Output format: text, go or c")
	tableCmd.Flags().BoolVar(&tableVerify, "verify", false, "Compare against the bit-by-bit reference table")
}

func runTable(cmd *cobra.Command, args []string) error {
	table, err := selectedTable()
	if err != nil {
		return err
	}

	if err := writeTable(os.Stdout, table, tableFormat); err != nil {
		return err
	}

	if tableVerify {
		diffs := diffReferenceTable(table)
		for _, d := range diffs {
			fmt.Fprintln(os.Stderr, d)
		}
		if len(diffs) > 0 {
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "table verified: 256 entries match reference\n")
	}
	return nil
}

// writeTable writes the table in the given format
func writeTable(w io.Writer, table *crc16.Table, format string) error {
	p := table.Params()
	entries := table.Entries()

	var header, footer, indent, name string
	switch format {
	case "text":
		header = fmt.Sprintf("# %s\n", describeParams(p))
		indent = ""
	case "go":
		name = variableName(p)
		header = fmt.Sprintf("// %s\nvar %s = [256]uint16{\n", describeParams(p), name)
		footer = "}\n"
		indent = "\t"
	case "c":
		name = variableName(p)
		header = fmt.Sprintf("/* %s */\nstatic const uint16_t %s[256] = {\n", describeParams(p), name)
		footer = "};\n"
		indent = "    "
	default:
		return fmt.Errorf("unknown table format %q (use text, go or c)", format)
	}

	var s strings.Builder
	s.WriteString(header)
	for row := 0; row < len(entries); row += tableEntriesPerRow {
		s.WriteString(indent)
		for i := row; i < row+tableEntriesPerRow; i++ {
			if i > row {
				s.WriteString(" ")
			}
			if format == "text" {
				fmt.Fprintf(&s, "%04X", entries[i])
			} else {
				fmt.Fprintf(&s, "0x%04X,", entries[i])
			}
		}
		s.WriteString("\n")
	}
	s.WriteString(footer)

	_, err := io.WriteString(w, s.String())
	return err
}

// diffReferenceTable lists entries that differ from the reference table
func diffReferenceTable(table *crc16.Table) []string {
	p := table.Params()
	var ref [256]uint16
	if p.RefIn {
		ref = crc16.ReferenceReflectedTable(p.Poly)
	} else {
		ref = crc16.ReferenceTable(p.Poly)
	}

	var diffs []string
	entries := table.Entries()
	for i := range entries {
		if entries[i] != ref[i] {
			diffs = append(diffs, fmt.Sprintf("entry 0x%02X: table 0x%04X, reference 0x%04X", i, entries[i], ref[i]))
		}
	}
	return diffs
}

func describeParams(p crc16.Params) string {
	return fmt.Sprintf("%s poly=0x%04X init=0x%04X refin=%t refout=%t xorout=0x%04X check=0x%04X",
		p.Name, p.Poly, p.Init, p.RefIn, p.RefOut, p.XorOut, p.Check)
}

// variableName turns "CRC-16/CCITT-FALSE" into "crc16_ccitt_false_table"
func variableName(p crc16.Params) string {
	name := strings.ToLower(p.Name)
	name = strings.NewReplacer("crc-16/", "crc16_", "-", "_", "/", "_").Replace(name)
	return name + "_table"
}
