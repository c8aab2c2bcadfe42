package client

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gertvdijk/gokmp/pkg/codec"
	"github.com/gertvdijk/gokmp/pkg/kmp"
	"github.com/gertvdijk/gokmp/pkg/messages"
	"github.com/gertvdijk/gokmp/pkg/transport"
)

// fakeTransport replays a scripted reply and records what was written.
type fakeTransport struct {
	written [][]byte
	reply   []byte
	readErr error
}

func (t *fakeTransport) Write(data []byte) error {
	t.written = append(t.written, data)
	return nil
}

func (t *fakeTransport) ReadUntil(terminator byte, timeout time.Duration) ([]byte, error) {
	if t.readErr != nil {
		return nil, t.readErr
	}
	return t.reply, nil
}

func (t *fakeTransport) Close() error { return nil }

// clearEventStatusRequest is acknowledged with a bare ACK instead of a data
// frame.
type clearEventStatusRequest struct{}

type clearEventStatusResponse struct{}

func (clearEventStatusRequest) CommandID() byte     { return kmp.CmdClearEventStatus }
func (clearEventStatusRequest) CommandName() string { return "ClearEventStatus" }

func (r clearEventStatusRequest) Encode() (codec.ApplicationData, error) {
	return codec.ApplicationData{CommandID: r.CommandID()}, nil
}

func (r clearEventStatusRequest) DecodeResponse(data codec.ApplicationData) (messages.Response, error) {
	return clearEventStatusResponse{}, nil
}

func (clearEventStatusRequest) ResponseFromAck() messages.Response {
	return clearEventStatusResponse{}
}

func (clearEventStatusResponse) CommandID() byte     { return kmp.CmdClearEventStatus }
func (clearEventStatusResponse) CommandName() string { return "ClearEventStatus" }

func (clearEventStatusResponse) Encode() (codec.ApplicationData, error) {
	return codec.ApplicationData{CommandID: kmp.CmdClearEventStatus}, nil
}

func TestCodecEncodeRequest(t *testing.T) {
	tests := []struct {
		name    string
		request messages.Request
		frame   []byte
	}{
		{
			name:    "GetSerialNo",
			request: messages.GetSerialRequest{},
			frame:   []byte{0x80, 0x3F, 0x02, 0x35, 0xE9, 0x0D},
		},
		{
			name:    "GetType",
			request: messages.GetTypeRequest{},
			frame:   []byte{0x80, 0x3F, 0x01, 0x05, 0x8A, 0x0D},
		},
		{
			// The CRC high byte collides with the start byte and gets stuffed.
			name:    "GetRegister with stuffing",
			request: messages.GetRegisterRequest{Registers: []uint16{128}},
			frame:   []byte{0x80, 0x3F, 0x10, 0x01, 0x00, 0x1B, 0x7F, 0xD4, 0x08, 0x0D},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame, err := NewCodec(kmp.DestinationHeatMeter).EncodeRequest(tt.request)
			require.NoError(t, err)
			assert.Equal(t, tt.frame, frame)
		})
	}
}

func TestCodecDecodeRegisterResponseFrame(t *testing.T) {
	// A documented capture: register 1002 with unit code 0x2F.
	frame := []byte{
		0x40, 0x3F, 0x10, 0x03, 0xEA, 0x2F,
		0x04, 0x00, 0x00, 0x03, 0x0E, 0x33, 0xB2, 0x32, 0x0D,
	}
	request := messages.GetRegisterRequest{Registers: []uint16{1002}}

	response, ack, err := NewCodec(kmp.DestinationHeatMeter).DecodeResponse(request, frame)
	require.NoError(t, err)
	assert.False(t, ack)

	registers, ok := response.(*messages.GetRegisterResponse)
	require.True(t, ok)
	require.Len(t, registers.Registers, 1)
	assert.Equal(t, uint16(1002), registers.Registers[0].ID)
	assert.Equal(t, byte(0x2F), registers.Registers[0].Unit)

	value, err := registers.Registers[0].DecodeValue()
	require.NoError(t, err)
	assert.Equal(t, "200243", value.String())
}

func TestSendRequestGetSerial(t *testing.T) {
	ft := &fakeTransport{
		reply: []byte{0x40, 0x3F, 0x02, 0x01, 0x23, 0x45, 0x67, 0xE9, 0x56, 0x0D},
	}
	client := New(ft)

	response, err := client.SendRequest(messages.GetSerialRequest{})
	require.NoError(t, err)

	serial, ok := response.(*messages.GetSerialResponse)
	require.True(t, ok)
	assert.Equal(t, "19088743", serial.Serial)

	require.Len(t, ft.written, 1)
	assert.Equal(t, []byte{0x80, 0x3F, 0x02, 0x35, 0xE9, 0x0D}, ft.written[0])
}

func TestSendRequestGetRegisterStuffedReply(t *testing.T) {
	ft := &fakeTransport{
		reply: []byte{
			0x40, 0x3F, 0x10, 0x00, 0x1B, 0x7F, 0x16,
			0x04, 0x11, 0x01, 0x2A, 0xF0, 0x24, 0x63, 0x03, 0x0D,
		},
	}
	client := New(ft)

	response, err := client.SendRequest(messages.GetRegisterRequest{Registers: []uint16{128}})
	require.NoError(t, err)

	registers, ok := response.(*messages.GetRegisterResponse)
	require.True(t, ok)
	require.Len(t, registers.Registers, 1)
	assert.Equal(t, uint16(128), registers.Registers[0].ID)
	assert.Equal(t, byte(0x16), registers.Registers[0].Unit)

	value, err := registers.Registers[0].DecodeValue()
	require.NoError(t, err)
	assert.Equal(t, "1959120400000000000000000", value.String())
}

func TestSendRequestBrokenCRC(t *testing.T) {
	ft := &fakeTransport{
		reply: []byte{0x40, 0x3F, 0x02, 0x01, 0x23, 0x45, 0x67, 0xE9, 0x57, 0x0D},
	}
	client := New(ft)

	_, err := client.SendRequest(messages.GetSerialRequest{})
	var crcErr *codec.CRCChecksumInvalidError
	require.ErrorAs(t, err, &crcErr)
}

func TestSendRequestCommandIDMismatch(t *testing.T) {
	// A valid GetSerialNo response frame must not answer a GetType request.
	ft := &fakeTransport{
		reply: []byte{0x40, 0x3F, 0x02, 0x01, 0x23, 0x45, 0x67, 0xE9, 0x56, 0x0D},
	}
	client := New(ft)

	_, err := client.SendRequest(messages.GetTypeRequest{})
	var mismatchErr *messages.CommandIDMismatchError
	require.ErrorAs(t, err, &mismatchErr)
	assert.Equal(t, kmp.CmdGetType, mismatchErr.Expected)
	assert.Equal(t, kmp.CmdGetSerial, mismatchErr.Actual)
}

func TestSendRequestUnexpectedAck(t *testing.T) {
	ft := &fakeTransport{reply: []byte{kmp.Ack}}
	client := New(ft)

	_, err := client.SendRequest(messages.GetSerialRequest{})
	var ackErr *UnexpectedAckError
	require.ErrorAs(t, err, &ackErr)
	assert.Equal(t, "GetSerialNo", ackErr.Request)
}

func TestSendRequestAckOnly(t *testing.T) {
	ft := &fakeTransport{reply: []byte{kmp.Ack}}
	client := New(ft)

	response, err := client.SendRequest(clearEventStatusRequest{})
	require.NoError(t, err)
	assert.Equal(t, clearEventStatusResponse{}, response)
}

func TestSendRequestReadTimeout(t *testing.T) {
	timeoutErr := &transport.ReadTimeoutError{Timeout: time.Second}
	ft := &fakeTransport{readErr: timeoutErr}
	client := New(ft)

	_, err := client.SendRequest(messages.GetSerialRequest{})
	var readErr *transport.ReadTimeoutError
	require.ErrorAs(t, err, &readErr)
}

func TestSendRequestWrongStartByte(t *testing.T) {
	// A request frame echoed back must not decode as a response.
	ft := &fakeTransport{reply: []byte{0x80, 0x3F, 0x02, 0x35, 0xE9, 0x0D}}
	client := New(ft)

	_, err := client.SendRequest(messages.GetSerialRequest{})
	var boundaryErr *codec.BoundaryByteInvalidError
	require.ErrorAs(t, err, &boundaryErr)
}
