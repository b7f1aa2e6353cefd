// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

// Package monitor keeps a running CRC-16 and throughput statistics for a
// live byte stream.
package monitor

import (
	"sync"

	"github.com/Thermoquad/crcsum/pkg/crc16"
)

// Monitor accumulates a checksum over every byte fed to it.
// Feed may be called from one goroutine while others read Sum16 and Stats.
type Monitor struct {
	mu     sync.Mutex
	digest *crc16.Digest
	stats  *Statistics
}

// New creates a monitor for the variant t was built for.
func New(t *crc16.Table) *Monitor {
	return &Monitor{
		digest: crc16.NewWithTable(t),
		stats:  NewStatistics(),
	}
}

// Feed folds p into the running checksum and counts it.
func (m *Monitor) Feed(p []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.digest.Write(p)
	m.stats.Update(len(p), nil)
}

// Fail records a read error. The checksum is unchanged.
func (m *Monitor) Fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats.Update(0, err)
}

// Sum16 returns the checksum of everything fed so far.
func (m *Monitor) Sum16() uint16 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.digest.Sum16()
}

// Stats returns a snapshot of the statistics with rates calculated.
func (m *Monitor) Stats() Statistics {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats.CalculateRates()
	return *m.stats
}

// Params returns the monitored variant.
func (m *Monitor) Params() crc16.Params {
	return m.digest.Params()
}

// Reset restarts the checksum and statistics.
func (m *Monitor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.digest.Reset()
	m.stats.Reset()
}
