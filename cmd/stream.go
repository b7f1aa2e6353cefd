// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Thermoquad/crcsum/pkg/monitor"
	"github.com/spf13/cobra"
)

var (
	streamDuration int
	streamBytes    int64
	streamInterval int
)

var streamCmd = &cobra.Command{
	Use:   "stream",
	Short: "Checksum a live byte stream from a serial port or WebSocket",
	Long: `Read raw bytes from a serial port or WebSocket and keep a running CRC-16
over everything received. The running checksum is printed every --interval
seconds, and a final checksum and statistics summary when the stream ends.

Bytes are checksummed exactly as received; no framing is applied.

The stream ends when --duration elapses (0 runs until Ctrl+C), when --bytes
bytes have been read, or when the connection closes.

Exit codes:
  0 - Stream ended normally
  2 - Connection error`,
	RunE: runStream,
}

func init() {
	rootCmd.AddCommand(streamCmd)
	streamCmd.Flags().IntVar(&streamDuration, "duration", 10, "Duration in seconds (0 = until Ctrl+C)")
	streamCmd.Flags().Int64Var(&streamBytes, "bytes", 0, "Stop after this many bytes (0 = no limit)")
	streamCmd.Flags().IntVar(&streamInterval, "interval", 1, "Seconds between running checksum lines")
}

func runStream(cmd *cobra.Command, args []string) error {
	table, err := selectedTable()
	if err != nil {
		return err
	}
	if streamInterval <= 0 {
		return fmt.Errorf("--interval must be at least 1 second")
	}

	// Open connection (serial or WebSocket)
	conn, connInfo, err := OpenConnection()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
		os.Exit(2)
	}
	defer conn.Close()

	mon := monitor.New(table)

	fmt.Printf("crcsum - Stream Checksum\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Variant: %s\n", mon.Params().Name)
	if streamDuration > 0 {
		fmt.Printf("Duration: %d seconds\n", streamDuration)
	}
	fmt.Printf("Press Ctrl+C to exit\n\n")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if streamDuration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(streamDuration)*time.Second)
		defer cancel()
	}

	// Start a goroutine to read from the connection
	readChan := make(chan []byte, 100)
	errChan := make(chan error, 1)
	go readChunks(ctx, conn, readChan, errChan)

	ticker := time.NewTicker(time.Duration(streamInterval) * time.Second)
	defer ticker.Stop()

	connErr := streamLoop(ctx, mon, readChan, errChan, ticker.C, streamBytes)

	fmt.Printf("\nFinal: bytes=%d crc=0x%04X\n\n", mon.Stats().TotalBytes, mon.Sum16())
	stats := mon.Stats()
	fmt.Print(stats.String())

	if connErr != nil {
		os.Exit(2)
	}
	return nil
}

// readChunks forwards chunks from conn until it fails or ctx ends. Every
// chunk read before a failure is queued on readChan before the error is sent.
func readChunks(ctx context.Context, conn Connection, readChan chan<- []byte, errChan chan<- error) {
	for {
		chunk, err := conn.ReadChunk()
		if err != nil {
			errChan <- err
			return
		}
		select {
		case readChan <- chunk:
		case <-ctx.Done():
			return
		}
	}
}

// streamLoop feeds received chunks into mon until ctx ends, the byte limit is
// reached or the connection fails. Chunks already queued when the stream ends
// are still fed. Only a connection failure is returned.
func streamLoop(ctx context.Context, mon *monitor.Monitor, readChan <-chan []byte, errChan <-chan error, tick <-chan time.Time, limit int64) error {
	for {
		select {
		case data := <-readChan:
			if feedChunk(mon, data, limit) {
				return nil
			}

		case err := <-errChan:
			drainChunks(mon, readChan, limit)
			if errors.Is(err, ErrConnectionClosed) {
				log.Printf("Connection closed")
				return nil
			}
			mon.Fail(err)
			log.Printf("Read error: %v", err)
			return err

		case <-tick:
			fmt.Print(formatStreamLine(time.Now(), mon.Stats().TotalBytes, mon.Sum16()))

		case <-ctx.Done():
			drainChunks(mon, readChan, limit)
			return nil
		}
	}
}

// feedChunk feeds data up to the byte limit and reports whether it was reached
func feedChunk(mon *monitor.Monitor, data []byte, limit int64) bool {
	if limit <= 0 {
		mon.Feed(data)
		return false
	}
	remaining := limit - int64(mon.Stats().TotalBytes)
	if int64(len(data)) > remaining {
		data = data[:remaining]
	}
	mon.Feed(data)
	return int64(mon.Stats().TotalBytes) >= limit
}

// drainChunks feeds whatever is already queued without waiting for more
func drainChunks(mon *monitor.Monitor, readChan <-chan []byte, limit int64) {
	for {
		select {
		case data := <-readChan:
			if feedChunk(mon, data, limit) {
				return
			}
		default:
			return
		}
	}
}

func formatStreamLine(now time.Time, total uint64, sum uint16) string {
	return fmt.Sprintf("[%s] bytes=%d crc=0x%04X\n", now.Format("15:04:05.000"), total, sum)
}
