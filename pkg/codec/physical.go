// Package codec implements the layered encoders/decoders of the Kamstrup
// KMP protocol: physical framing, data link addressing/CRC, application
// command destructuring and the base-10 floating point format.
//
// Message-specific logic (requests and responses) lives in pkg/messages;
// this package only knows about byte sequences and generic structures.
package codec

import (
	"bytes"

	"github.com/gertvdijk/gokmp/pkg/kmp"
)

// Direction selects which physical start byte applies: requests travel to
// the meter, responses come from it.
type Direction int

const (
	ToMeter Direction = iota
	FromMeter
)

func (d Direction) startByte() byte {
	if d == FromMeter {
		return kmp.StartFromMeter
	}
	return kmp.StartToMeter
}

// Byte values that must not appear inside a frame body. Each is escaped as
// {stuffing byte, value XOR 0xFF}. Order matters: the stuffing byte itself
// must be handled first so its escape sequence is not re-escaped.
var stuffedBytes = []byte{
	kmp.Stuffing,
	kmp.Ack,
	kmp.StartFromMeter,
	kmp.StartToMeter,
	kmp.Stop,
}

func escapeSequence(b byte) []byte {
	return []byte{kmp.Stuffing, b ^ 0xFF}
}

// PhysicalCodec frames/unframes a single message on the physical layer:
// start/stop bytes plus byte stuffing. The start byte depends on the
// direction of communication.
type PhysicalCodec struct {
	Direction Direction
}

// IsAck reports whether a received frame is the bare ACK reply. The ACK is
// an application level acknowledge sent as a single byte without start,
// CRC or stop bytes, so it must be recognized before unframing.
func IsAck(frame []byte) bool {
	return bytes.Equal(frame, kmp.AckBytes)
}

// Decode strips the start/stop bytes from a physical frame and destuffs the
// body, returning the data link bytes. The second return value is true when
// the frame was a bare ACK; the returned bytes are nil in that case.
func (p PhysicalCodec) Decode(frame []byte) ([]byte, bool, error) {
	if len(frame) == 0 {
		return nil, false, &DataLengthUnexpectedError{What: "frame", Actual: 0, Expected: -1}
	}

	if IsAck(frame) {
		return nil, true, nil
	}

	start := p.Direction.startByte()
	if frame[0] != start {
		return nil, false, &BoundaryByteInvalidError{What: "start", Expected: start, Actual: frame[0]}
	}
	if frame[len(frame)-1] != kmp.Stop {
		return nil, false, &BoundaryByteInvalidError{What: "stop", Expected: kmp.Stop, Actual: frame[len(frame)-1]}
	}

	data := frame[1 : len(frame)-1]
	for _, b := range stuffedBytes {
		data = bytes.ReplaceAll(data, escapeSequence(b), []byte{b})
	}
	return data, false, nil
}

// Encode stuffs the data link bytes and adds start/stop bytes.
func (p PhysicalCodec) Encode(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, &DataLengthUnexpectedError{What: "data link bytes", Actual: 0, Expected: -1}
	}

	body := data
	for _, b := range stuffedBytes {
		body = bytes.ReplaceAll(body, []byte{b}, escapeSequence(b))
	}

	frame := make([]byte, 0, len(body)+2)
	frame = append(frame, p.Direction.startByte())
	frame = append(frame, body...)
	frame = append(frame, kmp.Stop)
	return frame, nil
}

// EncodeAck encodes an ACK message. No stuffing or start/stop bytes apply.
func EncodeAck() []byte {
	return append([]byte(nil), kmp.AckBytes...)
}
