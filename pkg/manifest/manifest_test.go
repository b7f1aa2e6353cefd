// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package manifest_test

import (
	"bytes"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/Thermoquad/crcsum/pkg/crc16"
	"github.com/Thermoquad/crcsum/pkg/manifest"
	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// memOpener serves entry paths from an in-memory file set.
func memOpener(files map[string][]byte) manifest.Opener {
	return func(path string) (io.ReadCloser, error) {
		data, ok := files[path]
		if !ok {
			return nil, os.ErrNotExist
		}
		return io.NopCloser(bytes.NewReader(data)), nil
	}
}

// ============================================================
// Encoding Tests
// ============================================================

func TestMarshalRoundTrip(t *testing.T) {
	require := require.New(t)

	m := manifest.New(crc16.X25)
	m.Add("a.bin", 9, 0x906E)
	m.Add("dir/b.bin", 0, 0x0000)

	data, err := manifest.Marshal(m)
	require.NoError(err)

	decoded, err := manifest.Unmarshal(data)
	require.NoError(err)
	require.Equal(m, decoded)
}

func TestEncodeDecode(t *testing.T) {
	require := require.New(t)

	m := manifest.New(crc16.CCITTFalse)
	m.Add("check.txt", 9, 0x29B1)

	var buf bytes.Buffer
	require.NoError(manifest.Encode(&buf, m))

	decoded, err := manifest.Decode(&buf)
	require.NoError(err)
	require.Equal(crc16.CCITTFalse.Name, decoded.Variant)
	require.Len(decoded.Entries, 1)
	require.Equal(manifest.Entry{Path: "check.txt", Size: 9, Checksum: 0x29B1}, decoded.Entries[0])
}

func TestMarshalDeterministic(t *testing.T) {
	require := require.New(t)

	m := manifest.New(crc16.Kermit)
	m.Add("x", 1, 2)

	first, err := manifest.Marshal(m)
	require.NoError(err)
	second, err := manifest.Marshal(m)
	require.NoError(err)
	require.Equal(first, second)
}

func TestWireFormatUsesIntegerKeys(t *testing.T) {
	require := require.New(t)

	raw := map[int]interface{}{
		0: uint64(manifest.Version),
		1: "xmodem",
		2: []interface{}{
			map[int]interface{}{1: "f", 2: uint64(3), 3: uint64(0x1234)},
		},
	}
	data, err := cbor.Marshal(raw)
	require.NoError(err)

	m, err := manifest.Unmarshal(data)
	require.NoError(err)
	require.Equal("xmodem", m.Variant)
	require.Equal([]manifest.Entry{{Path: "f", Size: 3, Checksum: 0x1234}}, m.Entries)

	p, err := m.Params()
	require.NoError(err)
	require.Equal(crc16.XModem, p)
}

func TestUnmarshalErrors(t *testing.T) {
	unsupported, _ := cbor.Marshal(map[int]interface{}{0: uint64(99), 1: crc16.CCITTFalse.Name})
	unknown, _ := cbor.Marshal(map[int]interface{}{0: uint64(manifest.Version), 1: "crc-32"})

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{name: "empty", data: nil, want: manifest.ErrEmptyManifest},
		{name: "unsupported version", data: unsupported, want: manifest.ErrUnsupportedVersion},
		{name: "unknown variant", data: unknown, want: crc16.ErrUnknownVariant},
		{name: "truncated map", data: []byte{0xA3}},
		{name: "wrong type", data: []byte{0x01}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := manifest.Unmarshal(tt.data)
			require.Error(t, err)
			if tt.want != nil {
				require.True(t, errors.Is(err, tt.want), "expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestDecodeEmptyReader(t *testing.T) {
	_, err := manifest.Decode(bytes.NewReader(nil))
	require.True(t, errors.Is(err, manifest.ErrEmptyManifest), "got %v", err)
}

// ============================================================
// Verify Tests
// ============================================================

type VerifyTestSuite struct {
	suite.Suite

	files map[string][]byte
	m     *manifest.Manifest
}

func (s *VerifyTestSuite) SetupTest() {
	s.files = map[string][]byte{
		"check.txt": []byte(crc16.CheckInput),
		"empty":     {},
	}
	s.m = manifest.New(crc16.CCITTFalse)
	s.m.Add("check.txt", 9, 0x29B1)
	s.m.Add("empty", 0, 0xFFFF)
}

func (s *VerifyTestSuite) TestAllOK() {
	require := s.Require()

	results, err := manifest.Verify(s.m, memOpener(s.files))
	require.NoError(err)
	require.Len(results, 2)
	for _, r := range results {
		require.Equal(manifest.StatusOK, r.Status, "entry %s", r.Entry.Path)
		require.Equal(r.Entry.Checksum, r.Actual)
	}
	require.Equal(manifest.Summary{OK: 2}, manifest.Summarize(results))
}

func (s *VerifyTestSuite) TestModifiedFile() {
	require := s.Require()

	s.files["check.txt"] = []byte("123456780")
	results, err := manifest.Verify(s.m, memOpener(s.files))
	require.NoError(err)
	require.Equal(manifest.StatusMismatch, results[0].Status)
	require.NotEqual(results[0].Entry.Checksum, results[0].Actual)
	require.Equal(manifest.Summary{OK: 1, Mismatches: 1}, manifest.Summarize(results))
}

func (s *VerifyTestSuite) TestSizeChange() {
	require := s.Require()

	s.m.Entries[1].Size = 4
	results, err := manifest.Verify(s.m, memOpener(s.files))
	require.NoError(err)
	require.Equal(manifest.StatusMismatch, results[1].Status)
	require.Equal(int64(0), results[1].Size)
}

func (s *VerifyTestSuite) TestMissingFile() {
	require := s.Require()

	delete(s.files, "empty")
	results, err := manifest.Verify(s.m, memOpener(s.files))
	require.NoError(err)
	require.Equal(manifest.StatusError, results[1].Status)
	require.True(errors.Is(results[1].Err, os.ErrNotExist))
	require.Equal(manifest.Summary{OK: 1, Errors: 1}, manifest.Summarize(results))
}

func (s *VerifyTestSuite) TestOtherVariant() {
	require := s.Require()

	m := manifest.New(crc16.Modbus)
	m.Add("check.txt", 9, crc16.Modbus.Check)
	results, err := manifest.Verify(m, memOpener(s.files))
	require.NoError(err)
	require.Equal(manifest.StatusOK, results[0].Status)
}

func (s *VerifyTestSuite) TestUnknownVariant() {
	s.m.Variant = "nope"
	_, err := manifest.Verify(s.m, memOpener(s.files))
	s.Require().True(errors.Is(err, crc16.ErrUnknownVariant))
}

func TestVerifySuite(t *testing.T) {
	suite.Run(t, new(VerifyTestSuite))
}

func TestStatusString(t *testing.T) {
	require.Equal(t, "OK", manifest.StatusOK.String())
	require.Equal(t, "FAILED", manifest.StatusMismatch.String())
	require.Equal(t, "ERROR", manifest.StatusError.String())
	require.Equal(t, "UNKNOWN", manifest.Status(42).String())
}
