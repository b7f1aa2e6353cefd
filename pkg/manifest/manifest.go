// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

// Package manifest reads and writes CBOR checksum manifests.
//
// A manifest records the CRC-16 of a set of files under one variant so the
// files can be checked later:
//
//	{0: version, 1: variant, 2: [{1: path, 2: size, 3: checksum}, ...]}
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/Thermoquad/crcsum/pkg/crc16"
	"github.com/fxamacker/cbor/v2"
)

// Version is the manifest format version written by this package.
const Version = 1

var (
	ErrEmptyManifest      = errors.New("manifest: empty input")
	ErrUnsupportedVersion = errors.New("manifest: unsupported version")
)

// Manifest is a list of expected checksums for one CRC-16 variant.
type Manifest struct {
	Version uint    `cbor:"0,keyasint"`
	Variant string  `cbor:"1,keyasint"`
	Entries []Entry `cbor:"2,keyasint"`
}

// Entry is the expected size and checksum of one path.
type Entry struct {
	Path     string `cbor:"1,keyasint"`
	Size     int64  `cbor:"2,keyasint"`
	Checksum uint16 `cbor:"3,keyasint"`
}

// encMode uses core deterministic encoding so equal manifests encode to
// equal bytes.
var encMode = func() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("manifest: cbor options: %v", err))
	}
	return em
}()

// New creates an empty manifest for the variant described by p.
func New(p crc16.Params) *Manifest {
	return &Manifest{
		Version: Version,
		Variant: p.Name,
		Entries: make([]Entry, 0),
	}
}

// Add appends an entry.
func (m *Manifest) Add(path string, size int64, checksum uint16) {
	m.Entries = append(m.Entries, Entry{Path: path, Size: size, Checksum: checksum})
}

// Params resolves the manifest's variant name.
func (m *Manifest) Params() (crc16.Params, error) {
	return crc16.Lookup(m.Variant)
}

// Marshal encodes m to CBOR.
func Marshal(m *Manifest) ([]byte, error) {
	data, err := encMode.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}
	return data, nil
}

// Unmarshal decodes and validates a CBOR manifest.
func Unmarshal(data []byte) (*Manifest, error) {
	if len(data) == 0 {
		return nil, ErrEmptyManifest
	}
	return Decode(bytes.NewReader(data))
}

// Encode writes m to w as CBOR.
func Encode(w io.Writer, m *Manifest) error {
	data, err := Marshal(m)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Decode reads one CBOR manifest from r and validates its header.
func Decode(r io.Reader) (*Manifest, error) {
	var m Manifest
	if err := cbor.NewDecoder(r).Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyManifest
		}
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}

	if m.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, m.Version)
	}
	if _, err := m.Params(); err != nil {
		return nil, err
	}

	return &m, nil
}
