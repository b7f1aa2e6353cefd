// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"bufio"
	"context"
	"crypto/tls"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"go.bug.st/serial"
	"golang.org/x/term"
)

// serialChunkSize bounds one serial read
const serialChunkSize = 256

// ErrConnectionClosed is returned once the remote end has closed the stream
var ErrConnectionClosed = errors.New("connection closed")

// Connection is a read-only source of raw byte chunks. Each chunk is one
// serial read or one WebSocket binary message.
type Connection interface {
	// ReadChunk blocks until bytes arrive. The returned slice is owned by
	// the caller. A remote close is reported as ErrConnectionClosed.
	ReadChunk() ([]byte, error)
	io.Closer
}

// classifyReadError maps the ways a byte source reports an orderly close
// onto ErrConnectionClosed and leaves every other error untouched.
func classifyReadError(err error) error {
	if err == nil || errors.Is(err, ErrConnectionClosed) {
		return err
	}
	if errors.Is(err, io.EOF) {
		return ErrConnectionClosed
	}
	if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		return ErrConnectionClosed
	}
	var portErr *serial.PortError
	if errors.As(err, &portErr) && portErr.Code() == serial.PortClosed {
		return ErrConnectionClosed
	}
	return err
}

// SerialConnection reads chunks from a serial port
type SerialConnection struct {
	port serial.Port
	buf  []byte
}

func (s *SerialConnection) ReadChunk() ([]byte, error) {
	for {
		n, err := s.port.Read(s.buf)
		if err != nil {
			return nil, classifyReadError(err)
		}
		// A zero-length read is a port timeout, not data
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, s.buf[:n])
			return chunk, nil
		}
	}
}

func (s *SerialConnection) Close() error {
	return s.port.Close()
}

// WebSocketConnection hands over each binary message as one chunk
type WebSocketConnection struct {
	conn *websocket.Conn
	err  error // sticky once the connection has failed
}

func (w *WebSocketConnection) ReadChunk() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}

	for {
		messageType, data, err := w.conn.ReadMessage()
		if err != nil {
			w.err = classifyReadError(err)
			return nil, w.err
		}
		// Text and empty frames carry no stream bytes
		if messageType == websocket.BinaryMessage && len(data) > 0 {
			return data, nil
		}
	}
}

func (w *WebSocketConnection) Close() error {
	return w.conn.Close()
}

// OpenSerialConnection opens portName in 8N1 mode
func OpenSerialConnection(portName string, baudRate int) (Connection, error) {
	mode := &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %v", portName, err)
	}

	return &SerialConnection{port: port, buf: make([]byte, serialChunkSize)}, nil
}

// websocketHeaders builds the HTTP Basic auth header, if credentials are set
func websocketHeaders(username, password string) http.Header {
	headers := http.Header{}
	if username != "" && password != "" {
		credentials := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
		headers.Set("Authorization", "Basic "+credentials)
	}
	return headers
}

// OpenWebSocketConnection dials a ws:// or wss:// stream
func OpenWebSocketConnection(wsURL, username, password string, skipSSLVerify bool) (Connection, error) {
	u, err := url.Parse(wsURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %v", err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return nil, fmt.Errorf("unsupported URL scheme: %s (use ws:// or wss://)", u.Scheme)
	}

	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	if u.Scheme == "wss" {
		dialer.TLSClientConfig = &tls.Config{InsecureSkipVerify: skipSSLVerify}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	conn, resp, err := dialer.DialContext(ctx, wsURL, websocketHeaders(username, password))
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("WebSocket connection failed (HTTP %d): %v", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("WebSocket connection failed: %v", err)
	}

	return &WebSocketConnection{conn: conn}, nil
}

// GetPassword reads CRCSUM_PASSWORD, or prompts on the terminal
func GetPassword() (string, error) {
	if pw := os.Getenv("CRCSUM_PASSWORD"); pw != "" {
		return pw, nil
	}

	fmt.Fprint(os.Stderr, "Password: ")
	defer fmt.Fprintln(os.Stderr)

	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err == nil {
		return string(passwordBytes), nil
	}

	// Not a terminal, read a plain line instead
	password, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read password: %v", err)
	}
	return strings.TrimSpace(password), nil
}

// OpenConnection opens the stream source selected by --url or --port
func OpenConnection() (Connection, string, error) {
	switch {
	case wsURL != "":
		password := ""
		if wsUsername != "" {
			var err error
			if password, err = GetPassword(); err != nil {
				return nil, "", err
			}
		}
		conn, err := OpenWebSocketConnection(wsURL, wsUsername, password, wsNoSSLVerify)
		if err != nil {
			return nil, "", err
		}
		return conn, fmt.Sprintf("WebSocket: %s", wsURL), nil

	case portName != "":
		conn, err := OpenSerialConnection(portName, baudRate)
		if err != nil {
			return nil, "", err
		}
		return conn, fmt.Sprintf("Serial: %s @ %d baud", portName, baudRate), nil
	}

	return nil, "", fmt.Errorf("either --port or --url must be specified")
}
