package messages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gertvdijk/gokmp/pkg/codec"
)

func TestGetSerialRequestEncode(t *testing.T) {
	data, err := GetSerialRequest{}.Encode()
	require.NoError(t, err)
	assert.Equal(t, byte(0x02), data.CommandID)
	assert.Empty(t, data.Data)
}

func TestDecodeGetSerialResponse(t *testing.T) {
	data := codec.ApplicationData{CommandID: 0x02, Data: []byte{0x01, 0x23, 0x45, 0x67}}

	resp, err := DecodeGetSerialResponse(data)
	require.NoError(t, err)
	assert.Equal(t, "19088743", resp.Serial)
	assert.Equal(t, []byte{0x01, 0x23, 0x45, 0x67}, resp.Raw)
}

func TestDecodeGetSerialResponseWrongLength(t *testing.T) {
	data := codec.ApplicationData{CommandID: 0x02, Data: []byte{0x01, 0x23, 0x45}}

	_, err := DecodeGetSerialResponse(data)
	var lengthErr *codec.DataLengthUnexpectedError
	require.ErrorAs(t, err, &lengthErr)
}

func TestGetSerialResponseEncode(t *testing.T) {
	resp := &GetSerialResponse{Serial: "19088743"}

	data, err := resp.Encode()
	require.NoError(t, err)
	assert.Equal(t, byte(0x02), data.CommandID)
	assert.Equal(t, []byte{0x01, 0x23, 0x45, 0x67}, data.Data)
}

func TestGetSerialResponseEncodeInvalid(t *testing.T) {
	tests := []string{"", "12a3", "-1"}
	for _, serial := range tests {
		t.Run(serial, func(t *testing.T) {
			resp := &GetSerialResponse{Serial: serial}

			_, err := resp.Encode()
			var serialErr *SerialNumberInvalidError
			require.ErrorAs(t, err, &serialErr)
		})
	}
}

func TestGetSerialResponseEncodeTooLarge(t *testing.T) {
	resp := &GetSerialResponse{Serial: "4294967296"}

	_, err := resp.Encode()
	var rangeErr *codec.OutOfRangeError
	require.ErrorAs(t, err, &rangeErr)
}
