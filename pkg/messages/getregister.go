package messages

import (
	"encoding/binary"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/gertvdijk/gokmp/pkg/codec"
	"github.com/gertvdijk/gokmp/pkg/kmp"
)

const (
	numRegistersLengthEncoded = 1
	// Meters typically cap the number of registers in one request.
	numRegistersMax         = 8
	registerIDLengthEncoded = 2

	registerUnitLengthEncoded        = 1
	registerValueLengthLengthEncoded = 1
	registerValueFormatLengthEncoded = 1
)

// RegisterData is one partially decoded register entry of a GetRegister
// response. Value holds the raw floating point bytes (length byte,
// sign/exponent byte, mantissa); the numeric value is derived lazily via
// DecodeValue and not stored redundantly.
type RegisterData struct {
	ID    uint16
	Unit  byte
	Value []byte
}

// DecodeValue decodes the raw value bytes as the protocol's base-10
// floating point format.
func (r RegisterData) DecodeValue() (decimal.Decimal, error) {
	return codec.FloatCodec{}.Decode(r.Value)
}

// GetRegisterRequest requests one or more register values. Order is the
// caller's; duplicates and unknown IDs are permitted at this layer.
type GetRegisterRequest struct {
	Registers []uint16
}

func (GetRegisterRequest) CommandID() byte     { return kmp.CmdGetRegister }
func (GetRegisterRequest) CommandName() string { return "GetRegister" }

// Encode encodes the request: a count byte followed by each 16-bit register
// ID in the caller-specified order. An empty register list encodes to a
// zero-count payload.
func (r GetRegisterRequest) Encode() (codec.ApplicationData, error) {
	count := len(r.Registers)
	if count > 0xFF {
		return codec.ApplicationData{}, &codec.OutOfRangeError{
			What: "number of registers requested in GetRegister request",
			Min:  0, Max: 0xFF, Actual: int64(count),
		}
	}
	if count > numRegistersMax {
		logrus.Warnf("Number of registers (%d) in GetRegister request is outside the defined range (1-%d).",
			count, numRegistersMax)
	}

	data := make([]byte, 0, numRegistersLengthEncoded+count*registerIDLengthEncoded)
	data = append(data, byte(count))
	for _, id := range r.Registers {
		data = binary.BigEndian.AppendUint16(data, id)
	}
	return codec.ApplicationData{CommandID: r.CommandID(), Data: data}, nil
}

// DecodeResponse decodes application data into a GetRegisterResponse.
func (r GetRegisterRequest) DecodeResponse(data codec.ApplicationData) (Response, error) {
	return DecodeGetRegisterResponse(data)
}

// DecodeGetRegisterRequest decodes a GetRegister request.
func DecodeGetRegisterRequest(data codec.ApplicationData) (GetRegisterRequest, error) {
	var req GetRegisterRequest
	if err := validateCommandID(req.CommandName(), req.CommandID(), data.CommandID); err != nil {
		return GetRegisterRequest{}, err
	}
	if len(data.Data) < numRegistersLengthEncoded {
		return GetRegisterRequest{}, &codec.DataLengthUnexpectedError{
			What:              "GetRegister request data",
			Actual:            len(data.Data),
			Expected:          numRegistersLengthEncoded,
			ExpectedIsMinimum: true,
		}
	}

	count := int(data.Data[0])
	packed := data.Data[1:]
	if count < 1 || count > numRegistersMax {
		logrus.Warnf("Number of registers (%d) in GetRegister request is outside the defined range (1-%d).",
			count, numRegistersMax)
	}

	expected := count * registerIDLengthEncoded
	if len(packed) != expected {
		return GetRegisterRequest{}, &codec.DataLengthUnexpectedError{
			What:     "GetRegister request data for register IDs",
			Actual:   len(packed),
			Expected: expected,
		}
	}

	registers := make([]uint16, 0, count)
	for i := 0; i < len(packed); i += registerIDLengthEncoded {
		registers = append(registers, binary.BigEndian.Uint16(packed[i:i+registerIDLengthEncoded]))
	}
	return GetRegisterRequest{Registers: registers}, nil
}

// GetRegisterResponse carries the register values the meter actually
// included. Registers preserves the response order; a register missing from
// the response means it is unavailable on the meter.
type GetRegisterResponse struct {
	Registers []RegisterData

	// Raw holds the pre-decoded data; set only when constructed via decode.
	Raw []byte
}

func (GetRegisterResponse) CommandID() byte     { return kmp.CmdGetRegister }
func (GetRegisterResponse) CommandName() string { return "GetRegister" }

// Register returns the first entry for a register ID, if present.
func (r *GetRegisterResponse) Register(id uint16) (RegisterData, bool) {
	for _, reg := range r.Registers {
		if reg.ID == id {
			return reg, true
		}
	}
	return RegisterData{}, false
}

// decodeOneRegisterValue decodes a single register entry off the front of
// raw, returning the entry and the remaining bytes.
func decodeOneRegisterValue(raw []byte) (RegisterData, []byte, error) {
	lengthMin := registerIDLengthEncoded + registerUnitLengthEncoded +
		registerValueLengthLengthEncoded + registerValueFormatLengthEncoded + 1
	if len(raw) < lengthMin {
		return RegisterData{}, nil, &codec.DataLengthUnexpectedError{
			What:              "data to decode register data",
			Actual:            len(raw),
			Expected:          lengthMin,
			ExpectedIsMinimum: true,
		}
	}

	// The length byte counts the mantissa only; the sign/exponent byte comes
	// on top.
	valueLength := int(raw[3]) + registerValueFormatLengthEncoded
	if len(raw) < 4+valueLength {
		return RegisterData{}, nil, &codec.DataLengthUnexpectedError{
			What:              "register value data left in buffer",
			Actual:            len(raw),
			Expected:          4 + valueLength,
			ExpectedIsMinimum: true,
		}
	}

	data := RegisterData{
		ID:   binary.BigEndian.Uint16(raw[:2]),
		Unit: raw[2],
		// Value includes the length byte itself.
		Value: append([]byte(nil), raw[3:4+valueLength]...),
	}
	return data, raw[4+valueLength:], nil
}

// DecodeGetRegisterResponse decodes a GetRegister response by parsing
// register entries until the payload is exhausted.
func DecodeGetRegisterResponse(data codec.ApplicationData) (*GetRegisterResponse, error) {
	var resp GetRegisterResponse
	if err := validateCommandID(resp.CommandName(), resp.CommandID(), data.CommandID); err != nil {
		return nil, err
	}

	remaining := data.Data
	seen := make(map[uint16]bool)
	for len(remaining) > 0 {
		register, rest, err := decodeOneRegisterValue(remaining)
		if err != nil {
			return nil, err
		}
		logrus.Debugf("Decoded register value [id=%d, unit=%d, value_bytes=%X, remaining=%d]",
			register.ID, register.Unit, register.Value, len(rest))
		if seen[register.ID] {
			logrus.Warnf("Duplicate register ID %d in response.", register.ID)
		}
		seen[register.ID] = true
		resp.Registers = append(resp.Registers, register)
		remaining = rest
	}
	resp.Raw = append([]byte(nil), data.Data...)
	return &resp, nil
}

// Encode encodes a GetRegister response, the meter side of the exchange.
func (r *GetRegisterResponse) Encode() (codec.ApplicationData, error) {
	var data []byte
	for _, register := range r.Registers {
		data = binary.BigEndian.AppendUint16(data, register.ID)
		data = append(data, register.Unit)
		data = append(data, register.Value...)
	}
	return codec.ApplicationData{CommandID: r.CommandID(), Data: data}, nil
}
