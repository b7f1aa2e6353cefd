// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/Thermoquad/crcsum/pkg/manifest"
	"github.com/spf13/cobra"
)

var checkQuiet bool

var checkCmd = &cobra.Command{
	Use:   "check MANIFEST",
	Short: "Verify files against a CBOR checksum manifest",
	Long: `Recompute the checksum of every file listed in a manifest written by
"crcsum sum --manifest" and report whether it still matches.

Paths are resolved relative to the current directory, as they were recorded.
The manifest's own variant is used; --variant is ignored.

Exit codes:
  0 - All files match
  1 - At least one file changed
  2 - Manifest or file could not be read`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolVarP(&checkQuiet, "quiet", "q", false, "Only print failures")
}

func runCheck(cmd *cobra.Command, args []string) error {
	if code := checkManifest(os.Stdout, os.Stderr, args[0], checkQuiet, openFile); code != 0 {
		os.Exit(code)
	}
	return nil
}

// checkManifest verifies every entry of the manifest at path and returns the
// process exit code: 0 all match, 1 a file changed, 2 something was unreadable.
func checkManifest(w, errw io.Writer, path string, quiet bool, open manifest.Opener) int {
	m, err := readManifest(path)
	if err != nil {
		fmt.Fprintf(errw, "crcsum: %v\n", err)
		return 2
	}

	results, err := manifest.Verify(m, open)
	if err != nil {
		fmt.Fprintf(errw, "crcsum: %v\n", err)
		return 2
	}

	for _, r := range results {
		fmt.Fprint(w, formatCheckResult(r, quiet))
	}

	summary := manifest.Summarize(results)
	if summary.Mismatches > 0 || summary.Errors > 0 {
		fmt.Fprintf(errw, "crcsum: %d of %d files failed (%d changed, %d unreadable)\n",
			summary.Mismatches+summary.Errors, len(results), summary.Mismatches, summary.Errors)
	}

	switch {
	case summary.Errors > 0:
		return 2
	case summary.Mismatches > 0:
		return 1
	}
	return 0
}

func openFile(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func readManifest(path string) (*manifest.Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := manifest.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// formatCheckResult formats one result line; OK lines are dropped when quiet
func formatCheckResult(r manifest.Result, quiet bool) string {
	switch r.Status {
	case manifest.StatusOK:
		if quiet {
			return ""
		}
		return fmt.Sprintf("%s: %s\n", r.Entry.Path, r.Status)
	case manifest.StatusMismatch:
		return fmt.Sprintf("%s: %s (expected %04X/%d bytes, got %04X/%d bytes)\n",
			r.Entry.Path, r.Status, r.Entry.Checksum, r.Entry.Size, r.Actual, r.Size)
	default:
		return fmt.Sprintf("%s: %s (%v)\n", r.Entry.Path, r.Status, r.Err)
	}
}
