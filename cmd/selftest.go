// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Thermoquad/crcsum/pkg/crc16"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var selfTestCmd = &cobra.Command{
	Use:   "selftest",
	Short: "Run conformance vectors for every supported variant",
	Long: `Check every catalogued CRC-16 variant against its published check value
(the checksum of ASCII "123456789"), confirm that splitting the input across
several updates gives the same result, and compare the lookup table against
the bit-by-bit reference.

The default CRC-16/CCITT-FALSE engine is additionally checked through its
Init/Update/Finalize path and its bit-by-bit reference checksum.

Exit codes:
  0 - All variants passed
  1 - At least one variant failed`,
	Args: cobra.NoArgs,
	RunE: runSelfTest,
}

func init() {
	rootCmd.AddCommand(selfTestCmd)
}

func runSelfTest(cmd *cobra.Command, args []string) error {
	if !writeSelfTest(os.Stdout) {
		os.Exit(1)
	}
	return nil
}

// writeSelfTest runs every variant's checks and reports whether all passed
func writeSelfTest(w io.Writer) bool {
	passStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	failStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	detailStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	allPassed := true
	for _, p := range crc16.Variants() {
		failures := selfTestVariant(p)
		if p == crc16.CCITTFalse {
			failures = append(failures, selfTestCore()...)
		}

		status := passStyle.Render("PASS")
		if len(failures) > 0 {
			status = failStyle.Render("FAIL")
			allPassed = false
		}
		fmt.Fprintf(w, "%s  %-20s %s\n", status, p.Name, detailStyle.Render(fmt.Sprintf("check=0x%04X", p.Check)))
		for _, f := range failures {
			fmt.Fprintf(w, "      %s\n", f)
		}
	}
	return allPassed
}

// selfTestVariant checks one parameter set through the generic table engine
func selfTestVariant(p crc16.Params) []string {
	var failures []string
	table := crc16.MakeTable(p)
	input := []byte(crc16.CheckInput)

	if got := table.Checksum(input); got != p.Check {
		failures = append(failures, fmt.Sprintf("check value: expected 0x%04X, got 0x%04X", p.Check, got))
	}

	for split := 1; split < len(input); split++ {
		crc := table.Update(table.Update(table.Init(), input[:split]), input[split:])
		if got := table.Complete(crc); got != p.Check {
			failures = append(failures, fmt.Sprintf("split at %d: expected 0x%04X, got 0x%04X", split, p.Check, got))
			break
		}
	}

	if diffs := diffReferenceTable(table); len(diffs) > 0 {
		failures = append(failures, fmt.Sprintf("table: %d entries differ from reference (%s)", len(diffs), strings.Join(diffs[:1], "")))
	}

	return failures
}

// selfTestCore checks the CCITT-FALSE Init/Update/Finalize engine
func selfTestCore() []string {
	var failures []string
	input := []byte(crc16.CheckInput)

	if got := crc16.Finalize(crc16.Init()); got != 0xFFFF {
		failures = append(failures, fmt.Sprintf("empty input: expected 0xFFFF, got 0x%04X", got))
	}

	s := crc16.Init()
	for _, b := range input {
		s = crc16.Update(s, []byte{b})
	}
	if got := crc16.Finalize(s); got != crc16.CCITTFalse.Check {
		failures = append(failures, fmt.Sprintf("byte-at-a-time: expected 0x%04X, got 0x%04X", crc16.CCITTFalse.Check, got))
	}

	if got := crc16.ReferenceChecksum(input); got != crc16.CCITTFalse.Check {
		failures = append(failures, fmt.Sprintf("bitwise reference: expected 0x%04X, got 0x%04X", crc16.CCITTFalse.Check, got))
	}

	if crc16.CCITTTable() != crc16.ReferenceTable(crc16.CCITTFalse.Poly) {
		failures = append(failures, "core table differs from reference")
	}

	return failures
}
