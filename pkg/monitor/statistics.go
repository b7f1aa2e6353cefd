// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package monitor

import (
	"fmt"
	"time"
)

// Statistics tracks byte stream counters and rates
type Statistics struct {
	StartTime      time.Time
	LastUpdateTime time.Time

	// Counters
	TotalBytes uint64
	Chunks     uint64
	ReadErrors uint64

	// Rates (calculated)
	ByteRate  float64 // bytes/sec
	ChunkRate float64 // chunks/sec
}

// NewStatistics creates a new statistics tracker
func NewStatistics() *Statistics {
	now := time.Now()
	return &Statistics{
		StartTime:      now,
		LastUpdateTime: now,
	}
}

// Update records one read of n bytes, or a failed read when err is non-nil
func (s *Statistics) Update(n int, err error) {
	if err != nil {
		s.ReadErrors++
		return
	}

	s.Chunks++
	s.TotalBytes += uint64(n)

	// Update timestamp for rate calculation
	s.LastUpdateTime = time.Now()
}

// CalculateRates calculates byte and chunk rates
func (s *Statistics) CalculateRates() {
	elapsed := time.Since(s.StartTime).Seconds()
	if elapsed > 0 {
		s.ByteRate = float64(s.TotalBytes) / elapsed
		s.ChunkRate = float64(s.Chunks) / elapsed
	}
}

// String returns a formatted statistics summary
func (s *Statistics) String() string {
	s.CalculateRates()

	elapsed := time.Since(s.StartTime)

	result := fmt.Sprintf("=== Statistics (%.0f seconds) ===\n", elapsed.Seconds())
	result += fmt.Sprintf("Total Bytes:     %8d\n", s.TotalBytes)
	result += fmt.Sprintf("Chunks:          %8d\n", s.Chunks)
	if s.ReadErrors > 0 {
		result += fmt.Sprintf("Read Errors:     %8d\n", s.ReadErrors)
	}
	result += fmt.Sprintf("Byte Rate:       %8.1f bytes/sec\n", s.ByteRate)
	result += fmt.Sprintf("Chunk Rate:      %8.1f chunks/sec\n", s.ChunkRate)
	result += "================================\n"

	return result
}

// Reset resets all statistics counters
func (s *Statistics) Reset() {
	now := time.Now()
	s.StartTime = now
	s.LastUpdateTime = now
	s.TotalBytes = 0
	s.Chunks = 0
	s.ReadErrors = 0
	s.ByteRate = 0
	s.ChunkRate = 0
}
