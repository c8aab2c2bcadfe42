// Package transport provides byte-stream connections to a KMP meter: a
// serial port (optical head or USB converter) or a TCP bridge such as
// ser2net via a "socket://host:port" target.
package transport

import (
	"fmt"
	"strings"
	"time"
)

// Transport is a byte-stream connection to the meter. The codec stack never
// depends on a concrete transport, only on this contract.
type Transport interface {
	Write(data []byte) error
	// ReadUntil reads bytes until the terminator byte is observed and
	// returns everything read including the terminator. When the timeout
	// elapses first it returns what was read so far; the bare ACK reply has
	// no terminator, so a short read is not an error by itself. It fails
	// with a ReadTimeoutError only when nothing arrived at all.
	ReadUntil(terminator byte, timeout time.Duration) ([]byte, error)
	Close() error
}

// SocketPrefix selects a TCP connection instead of a serial device.
const SocketPrefix = "socket://"

// DefaultReadTimeout matches the slow optical link: the meter replies well
// within two seconds or not at all.
const DefaultReadTimeout = 2 * time.Second

// ReadTimeoutError reports that no full reply arrived in time. It is fatal
// to the current exchange; retrying is up to the caller.
type ReadTimeoutError struct {
	Timeout time.Duration
}

func (e *ReadTimeoutError) Error() string {
	return fmt.Sprintf("did not receive a full reply within %s", e.Timeout)
}

// Open connects to a meter by device target: either a serial device path
// such as /dev/ttyUSB0 or a "socket://host:port" network endpoint.
func Open(device string) (Transport, error) {
	if strings.HasPrefix(device, SocketPrefix) {
		return OpenSocket(strings.TrimPrefix(device, SocketPrefix))
	}
	return OpenSerial(device)
}
