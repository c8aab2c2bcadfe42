package messages

import (
	"encoding/binary"
	"strconv"

	"github.com/gertvdijk/gokmp/pkg/codec"
	"github.com/gertvdijk/gokmp/pkg/kmp"
)

// GetSerialRequest requests the meter's serial number.
type GetSerialRequest struct{}

func (GetSerialRequest) CommandID() byte     { return kmp.CmdGetSerial }
func (GetSerialRequest) CommandName() string { return "GetSerialNo" }

// Encode encodes the request; it carries the command ID only.
func (r GetSerialRequest) Encode() (codec.ApplicationData, error) {
	return codec.ApplicationData{CommandID: r.CommandID()}, nil
}

// DecodeResponse decodes application data into a GetSerialResponse.
func (r GetSerialRequest) DecodeResponse(data codec.ApplicationData) (Response, error) {
	return DecodeGetSerialResponse(data)
}

// DecodeGetSerialRequest decodes a GetSerialNo request (command ID only).
func DecodeGetSerialRequest(data codec.ApplicationData) (GetSerialRequest, error) {
	var req GetSerialRequest
	if err := validateCommandID(req.CommandName(), req.CommandID(), data.CommandID); err != nil {
		return GetSerialRequest{}, err
	}
	if len(data.Data) != 0 {
		return GetSerialRequest{}, &DataWithNoDataError{MessageName: req.CommandName()}
	}
	return req, nil
}

// Defined as 32 bits in section 6.2.2 of the KMP description document.
const serialLengthEncoded = 4

const serialValueMax = 1<<(serialLengthEncoded*8) - 1

// GetSerialResponse carries the serial number of the meter as a digits-only
// string.
type GetSerialResponse struct {
	Serial string

	// Raw holds the pre-decoded data; set only when constructed via decode.
	Raw []byte
}

func (GetSerialResponse) CommandID() byte     { return kmp.CmdGetSerial }
func (GetSerialResponse) CommandName() string { return "GetSerialNo" }

// DecodeGetSerialResponse decodes a GetSerialNo response.
func DecodeGetSerialResponse(data codec.ApplicationData) (*GetSerialResponse, error) {
	var resp GetSerialResponse
	if err := validateCommandID(resp.CommandName(), resp.CommandID(), data.CommandID); err != nil {
		return nil, err
	}
	if len(data.Data) != serialLengthEncoded {
		return nil, &codec.DataLengthUnexpectedError{
			What:     "serial data",
			Actual:   len(data.Data),
			Expected: serialLengthEncoded,
		}
	}
	serial := binary.BigEndian.Uint32(data.Data)
	return &GetSerialResponse{
		Serial: strconv.FormatUint(uint64(serial), 10),
		Raw:    append([]byte(nil), data.Data...),
	}, nil
}

// Encode encodes a GetSerialNo response, the meter side of the exchange.
func (r *GetSerialResponse) Encode() (codec.ApplicationData, error) {
	value, err := strconv.ParseUint(r.Serial, 10, 64)
	if err != nil {
		return codec.ApplicationData{}, &SerialNumberInvalidError{Serial: r.Serial}
	}
	if value > serialValueMax {
		return codec.ApplicationData{}, &codec.OutOfRangeError{
			What: "serial number", Min: 0, Max: serialValueMax, Actual: int64(value),
		}
	}
	data := make([]byte, serialLengthEncoded)
	binary.BigEndian.PutUint32(data, uint32(value))
	return codec.ApplicationData{CommandID: r.CommandID(), Data: data}, nil
}
