// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package crc16

import (
	"math/rand"
	"os"
	"strconv"
	"testing"
	"time"
)

// getFuzzRounds returns the number of fuzz rounds from FUZZ_ROUNDS env var, default 1000
func getFuzzRounds() int {
	if envRounds := os.Getenv("FUZZ_ROUNDS"); envRounds != "" {
		if rounds, err := strconv.Atoi(envRounds); err == nil && rounds > 0 {
			return rounds
		}
	}
	return 1000
}

// getFuzzSeed returns the seed from FUZZ_SEED env var, or generates one from current time
func getFuzzSeed() int64 {
	if envSeed := os.Getenv("FUZZ_SEED"); envSeed != "" {
		if seed, err := strconv.ParseInt(envSeed, 10, 64); err == nil {
			return seed
		}
	}
	return time.Now().UnixNano()
}

// newFuzzRng creates a new random number generator and logs the seed for reproducibility
func newFuzzRng(t *testing.T) *rand.Rand {
	seed := getFuzzSeed()
	t.Logf("Seed: %d (reproduce with FUZZ_SEED=%d)", seed, seed)
	return rand.New(rand.NewSource(seed))
}

func randomBytes(rng *rand.Rand, maxLen int) []byte {
	data := make([]byte, rng.Intn(maxLen+1))
	rng.Read(data)
	return data
}

// ============================================================
// Streaming Fuzz Tests
// ============================================================

func TestFuzz_StreamingEquivalence(t *testing.T) {
	rng := newFuzzRng(t)
	rounds := getFuzzRounds()

	for round := 0; round < rounds; round++ {
		a := randomBytes(rng, 128)
		b := randomBytes(rng, 128)
		joined := append(append([]byte{}, a...), b...)

		split := Finalize(Update(Update(Init(), a), b))
		whole := Finalize(Update(Init(), joined))
		if split != whole {
			t.Fatalf("round %d: split 0x%04X != whole 0x%04X (a=%X b=%X)", round, split, whole, a, b)
		}
	}
}

func TestFuzz_ManyChunks(t *testing.T) {
	rng := newFuzzRng(t)
	rounds := getFuzzRounds()

	for round := 0; round < rounds; round++ {
		data := randomBytes(rng, 512)
		s := Init()
		for rest := data; len(rest) > 0; {
			n := rng.Intn(len(rest)) + 1
			s = Update(s, rest[:n])
			rest = rest[n:]
		}
		if got, want := Finalize(s), Checksum(data); got != want {
			t.Fatalf("round %d: chunked 0x%04X != one-shot 0x%04X", round, got, want)
		}
	}
}

func TestFuzz_TableMatchesReference(t *testing.T) {
	rng := newFuzzRng(t)
	rounds := getFuzzRounds()

	for round := 0; round < rounds; round++ {
		data := randomBytes(rng, 256)
		if got, want := Checksum(data), ReferenceChecksum(data); got != want {
			t.Fatalf("round %d: table 0x%04X != reference 0x%04X (data=%X)", round, got, want, data)
		}
	}
}

func TestFuzz_VariantsMatchReference(t *testing.T) {
	rng := newFuzzRng(t)
	rounds := getFuzzRounds()

	variants := Variants()
	tables := make([]*Table, len(variants))
	for i, p := range variants {
		tables[i] = MakeTable(p)
	}

	for round := 0; round < rounds; round++ {
		data := randomBytes(rng, 64)
		i := rng.Intn(len(variants))
		if got, want := tables[i].Checksum(data), independentChecksum(variants[i], data); got != want {
			t.Fatalf("round %d %s: table 0x%04X != snksoft 0x%04X (data=%X)", round, variants[i].Name, got, want, data)
		}
	}
}

// ============================================================
// Sensitivity Fuzz Tests
// ============================================================

// A single changed byte is a burst of at most 8 bits, which every CRC-16
// detects, so any collision here is a bug.
func TestFuzz_SingleByteChange(t *testing.T) {
	rng := newFuzzRng(t)
	rounds := getFuzzRounds()

	for round := 0; round < rounds; round++ {
		data := randomBytes(rng, 256)
		if len(data) == 0 {
			continue
		}
		original := Checksum(data)

		pos := rng.Intn(len(data))
		old := data[pos]
		data[pos] ^= byte(rng.Intn(255) + 1)

		if Checksum(data) == original {
			t.Fatalf("round %d: changing byte %d (0x%02X -> 0x%02X) kept checksum 0x%04X",
				round, pos, old, data[pos], original)
		}
	}
}

func TestFuzz_Deterministic(t *testing.T) {
	rng := newFuzzRng(t)
	rounds := getFuzzRounds()

	for round := 0; round < rounds; round++ {
		data := randomBytes(rng, 128)
		crc1 := Checksum(data)
		crc2 := Checksum(data)
		if crc1 != crc2 {
			t.Fatalf("round %d: checksum not deterministic: 0x%04X != 0x%04X", round, crc1, crc2)
		}
	}
}
