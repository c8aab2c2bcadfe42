package messages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gertvdijk/gokmp/pkg/codec"
)

func TestGetTypeRequestEncode(t *testing.T) {
	data, err := GetTypeRequest{}.Encode()
	require.NoError(t, err)
	assert.Equal(t, byte(0x01), data.CommandID)
	assert.Empty(t, data.Data)
}

func TestDecodeGetTypeRequest(t *testing.T) {
	req, err := DecodeGetTypeRequest(codec.ApplicationData{CommandID: 0x01})
	require.NoError(t, err)
	assert.Equal(t, GetTypeRequest{}, req)
}

func TestDecodeGetTypeRequestWithData(t *testing.T) {
	_, err := DecodeGetTypeRequest(codec.ApplicationData{CommandID: 0x01, Data: []byte{0x00}})
	var dataErr *DataWithNoDataError
	require.ErrorAs(t, err, &dataErr)
}

func TestDecodeGetTypeResponse(t *testing.T) {
	data := codec.ApplicationData{CommandID: 0x01, Data: []byte{0x00, 0x04, 0x06, 0x01}}

	resp, err := DecodeGetTypeResponse(data)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x04}, resp.MeterTypeBytes)
	assert.Equal(t, "F1", resp.SoftwareRevision)
}

func TestDecodeGetTypeResponseNoRevision(t *testing.T) {
	data := codec.ApplicationData{CommandID: 0x01, Data: []byte{0x17, 0x01, 0x00, 0x00}}

	resp, err := DecodeGetTypeResponse(data)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x17, 0x01}, resp.MeterTypeBytes)
	assert.Empty(t, resp.SoftwareRevision)
}

func TestDecodeGetTypeResponseInvalidLetter(t *testing.T) {
	data := codec.ApplicationData{CommandID: 0x01, Data: []byte{0x00, 0x04, 0x1B, 0x01}}

	_, err := DecodeGetTypeResponse(data)
	var rangeErr *codec.OutOfRangeError
	require.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, int64(0x1B), rangeErr.Actual)
}

func TestDecodeGetTypeResponseWrongLength(t *testing.T) {
	data := codec.ApplicationData{CommandID: 0x01, Data: []byte{0x00, 0x04, 0x06}}

	_, err := DecodeGetTypeResponse(data)
	var lengthErr *codec.DataLengthUnexpectedError
	require.ErrorAs(t, err, &lengthErr)
}

func TestDecodeGetTypeResponseCommandIDMismatch(t *testing.T) {
	data := codec.ApplicationData{CommandID: 0x02, Data: []byte{0x00, 0x04, 0x06, 0x01}}

	_, err := DecodeGetTypeResponse(data)
	var mismatchErr *CommandIDMismatchError
	require.ErrorAs(t, err, &mismatchErr)
	assert.Equal(t, byte(0x01), mismatchErr.Expected)
	assert.Equal(t, byte(0x02), mismatchErr.Actual)
}

func TestGetTypeResponseEncode(t *testing.T) {
	resp := &GetTypeResponse{MeterTypeBytes: []byte{0x00, 0x04}, SoftwareRevision: "F1"}

	data, err := resp.Encode()
	require.NoError(t, err)
	assert.Equal(t, byte(0x01), data.CommandID)
	assert.Equal(t, []byte{0x00, 0x04, 0x06, 0x01}, data.Data)
}

func TestGetTypeResponseEncodeNoRevision(t *testing.T) {
	resp := &GetTypeResponse{MeterTypeBytes: []byte{0x17, 0x01}}

	data, err := resp.Encode()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x17, 0x01, 0x00, 0x00}, data.Data)
}

func TestGetTypeResponseEncodeInvalidRevision(t *testing.T) {
	tests := []string{"f1", "F", "1F", "F1000", "F999"}
	for _, revision := range tests {
		t.Run(revision, func(t *testing.T) {
			resp := &GetTypeResponse{MeterTypeBytes: []byte{0x00, 0x04}, SoftwareRevision: revision}

			_, err := resp.Encode()
			var revErr *SoftwareRevisionInvalidError
			require.ErrorAs(t, err, &revErr)
		})
	}
}
