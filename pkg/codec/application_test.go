package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplicationRoundTrip(t *testing.T) {
	codec := ApplicationCodec{}
	in := ApplicationData{CommandID: 0x10, Data: []byte{0x01, 0x00, 0x80}}

	raw := codec.Encode(in)
	assert.Equal(t, []byte{0x10, 0x01, 0x00, 0x80}, raw)

	out, err := codec.Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestApplicationDecodeCommandOnly(t *testing.T) {
	out, err := ApplicationCodec{}.Decode([]byte{0x02})
	require.NoError(t, err)
	assert.Equal(t, byte(0x02), out.CommandID)
	assert.Empty(t, out.Data)
}

func TestApplicationDecodeEmpty(t *testing.T) {
	_, err := ApplicationCodec{}.Decode(nil)
	var lengthErr *DataLengthUnexpectedError
	require.ErrorAs(t, err, &lengthErr)
}
