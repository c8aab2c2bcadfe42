package codec

// ApplicationData is the destructured content of the application layer: the
// command ID (CID) and the command-specific data, which may be empty.
type ApplicationData struct {
	CommandID byte
	Data      []byte
}

// ApplicationCodec encodes/decodes the application layer byte sequence.
// This covers both requests and responses; the command data semantics are
// owned by pkg/messages.
type ApplicationCodec struct{}

// Decode splits application bytes into the CID and the command data.
func (ApplicationCodec) Decode(data []byte) (ApplicationData, error) {
	if len(data) < 1 {
		return ApplicationData{}, &DataLengthUnexpectedError{
			What:              "application data message to destructure",
			Actual:            len(data),
			Expected:          1,
			ExpectedIsMinimum: true,
		}
	}
	return ApplicationData{
		CommandID: data[0],
		Data:      append([]byte(nil), data[1:]...),
	}, nil
}

// Encode prepends the CID to the command data.
func (ApplicationCodec) Encode(data ApplicationData) []byte {
	out := make([]byte, 0, 1+len(data.Data))
	out = append(out, data.CommandID)
	return append(out, data.Data...)
}
