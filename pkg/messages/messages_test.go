package messages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gertvdijk/gokmp/pkg/codec"
)

func TestDecodeResponseDispatch(t *testing.T) {
	data := codec.ApplicationData{CommandID: 0x02, Data: []byte{0x01, 0x23, 0x45, 0x67}}

	response, err := DecodeResponse(data)
	require.NoError(t, err)

	serial, ok := response.(*GetSerialResponse)
	require.True(t, ok)
	assert.Equal(t, "19088743", serial.Serial)
}

func TestDecodeResponseUnknownCommandID(t *testing.T) {
	_, err := DecodeResponse(codec.ApplicationData{CommandID: 0x92})
	require.Error(t, err)
}

func TestCommandName(t *testing.T) {
	assert.Equal(t, "GetType", CommandName(0x01))
	assert.Equal(t, "GetSerialNo", CommandName(0x02))
	assert.Equal(t, "GetRegister", CommandName(0x10))
	assert.Empty(t, CommandName(0x92))
}
