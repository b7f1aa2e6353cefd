// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package manifest

import (
	"fmt"
	"io"

	"github.com/Thermoquad/crcsum/pkg/crc16"
)

// Status is the outcome of checking one entry.
type Status int

const (
	StatusOK Status = iota
	StatusMismatch
	StatusError
)

// String returns the label printed by the check command.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusMismatch:
		return "FAILED"
	case StatusError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Opener opens an entry's path for reading.
type Opener func(path string) (io.ReadCloser, error)

// Result is the outcome of checking one entry.
type Result struct {
	Entry  Entry
	Status Status
	Size   int64
	Actual uint16
	Err    error
}

// Summary counts results by status.
type Summary struct {
	OK         int
	Mismatches int
	Errors     int
}

// Verify recomputes the checksum of every entry using the manifest's variant.
// A size or checksum difference is a mismatch; failing to open or read the
// path is an error.
func Verify(m *Manifest, open Opener) ([]Result, error) {
	p, err := m.Params()
	if err != nil {
		return nil, err
	}
	table := crc16.MakeTable(p)

	results := make([]Result, 0, len(m.Entries))
	for _, e := range m.Entries {
		results = append(results, verifyEntry(table, e, open))
	}
	return results, nil
}

func verifyEntry(table *crc16.Table, e Entry, open Opener) Result {
	r := Result{Entry: e}

	f, err := open(e.Path)
	if err != nil {
		r.Status = StatusError
		r.Err = err
		return r
	}
	defer f.Close()

	d := crc16.NewWithTable(table)
	n, err := io.Copy(d, f)
	if err != nil {
		r.Status = StatusError
		r.Err = fmt.Errorf("read %s: %w", e.Path, err)
		return r
	}

	r.Size = n
	r.Actual = d.Sum16()
	if r.Size != e.Size || r.Actual != e.Checksum {
		r.Status = StatusMismatch
	}
	return r
}

// Summarize counts results by status.
func Summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		switch r.Status {
		case StatusOK:
			s.OK++
		case StatusMismatch:
			s.Mismatches++
		case StatusError:
			s.Errors++
		}
	}
	return s
}
