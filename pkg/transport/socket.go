package transport

import (
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

const socketDialTimeout = 10 * time.Second

// SocketTransport talks to the meter through a TCP serial bridge (ser2net
// or similar) exposing the serial line on host:port.
type SocketTransport struct {
	conn net.Conn
}

// OpenSocket dials the TCP serial bridge at addr (host:port).
func OpenSocket(addr string) (*SocketTransport, error) {
	conn, err := net.DialTimeout("tcp", addr, socketDialTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to serial bridge %s: %w", addr, err)
	}
	logrus.Infof("Connected to serial bridge on %s", addr)
	return &SocketTransport{conn: conn}, nil
}

// NewSocketTransport wraps an already established connection.
func NewSocketTransport(conn net.Conn) *SocketTransport {
	return &SocketTransport{conn: conn}
}

func (t *SocketTransport) Write(data []byte) error {
	_, err := t.conn.Write(data)
	return err
}

func (t *SocketTransport) ReadUntil(terminator byte, timeout time.Duration) ([]byte, error) {
	if err := t.conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return nil, err
	}
	var received []byte
	buf := make([]byte, 1)
	for {
		n, err := t.conn.Read(buf)
		if n > 0 {
			received = append(received, buf[0])
			if buf[0] == terminator {
				return received, nil
			}
		}
		if err != nil {
			if errors.Is(err, os.ErrDeadlineExceeded) {
				if len(received) == 0 {
					return nil, &ReadTimeoutError{Timeout: timeout}
				}
				return received, nil
			}
			return nil, err
		}
	}
}

func (t *SocketTransport) Close() error {
	return t.conn.Close()
}
