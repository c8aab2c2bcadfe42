package transport

import (
	"fmt"
	"io"
	"time"

	"github.com/jacobsa/go-serial/serial"
	"github.com/sirupsen/logrus"
)

// KMP meters talk 1200 baud, 8 data bits, no parity, 2 stop bits on the
// optical/wired interface.
const (
	serialBaudRate = 1200
	serialDataBits = 8
	serialStopBits = 2

	// How long one blocking serial read may wait for the next byte before
	// returning empty, letting ReadUntil check its overall deadline.
	interCharacterTimeoutMs = 100
)

// SerialTransport talks to the meter over a local serial device.
type SerialTransport struct {
	device string
	port   io.ReadWriteCloser
}

// OpenSerial opens the serial device with the KMP line settings.
func OpenSerial(device string) (*SerialTransport, error) {
	options := serial.OpenOptions{
		PortName:              device,
		BaudRate:              serialBaudRate,
		DataBits:              serialDataBits,
		StopBits:              serialStopBits,
		MinimumReadSize:       0,
		InterCharacterTimeout: interCharacterTimeoutMs,
	}

	port, err := serial.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", device, err)
	}

	logrus.Infof("Connected to meter on %s", device)
	return &SerialTransport{device: device, port: port}, nil
}

func (t *SerialTransport) Write(data []byte) error {
	_, err := t.port.Write(data)
	return err
}

func (t *SerialTransport) ReadUntil(terminator byte, timeout time.Duration) ([]byte, error) {
	deadline := time.Now().Add(timeout)
	var received []byte
	buf := make([]byte, 1)
	for {
		n, err := t.port.Read(buf)
		if n > 0 {
			received = append(received, buf[0])
			if buf[0] == terminator {
				return received, nil
			}
			continue
		}
		if err != nil && err != io.EOF {
			return nil, err
		}
		if time.Now().After(deadline) {
			if len(received) == 0 {
				return nil, &ReadTimeoutError{Timeout: timeout}
			}
			return received, nil
		}
	}
}

func (t *SerialTransport) Close() error {
	logrus.Infof("Disconnected from meter on %s", t.device)
	return t.port.Close()
}
