package messages

import (
	"regexp"
	"strconv"

	"github.com/gertvdijk/gokmp/pkg/codec"
	"github.com/gertvdijk/gokmp/pkg/kmp"
)

// GetTypeRequest requests the meter type and software revision.
type GetTypeRequest struct{}

func (GetTypeRequest) CommandID() byte     { return kmp.CmdGetType }
func (GetTypeRequest) CommandName() string { return "GetType" }

// Encode encodes the request; it carries the command ID only.
func (r GetTypeRequest) Encode() (codec.ApplicationData, error) {
	return codec.ApplicationData{CommandID: r.CommandID()}, nil
}

// DecodeResponse decodes application data into a GetTypeResponse.
func (r GetTypeRequest) DecodeResponse(data codec.ApplicationData) (Response, error) {
	return DecodeGetTypeResponse(data)
}

// DecodeGetTypeRequest decodes a GetType request (command ID only, no data).
func DecodeGetTypeRequest(data codec.ApplicationData) (GetTypeRequest, error) {
	var req GetTypeRequest
	if err := validateCommandID(req.CommandName(), req.CommandID(), data.CommandID); err != nil {
		return GetTypeRequest{}, err
	}
	if len(data.Data) != 0 {
		return GetTypeRequest{}, &DataWithNoDataError{MessageName: req.CommandName()}
	}
	return req, nil
}

const (
	// Both defined as 16 bits in section 6.2.1 of the KMP description document.
	meterTypeLengthEncoded        = 2
	softwareRevisionLengthEncoded = 2

	softwareRevisionLetterMin = 0x01 // 'A'
	softwareRevisionLetterMax = 0x1A // 'Z'
)

// The revision string is one uppercase letter followed by the revision
// number 0-255.
var softwareRevisionRe = regexp.MustCompile(`^([A-Z])([0-9]{1,3})$`)

// softwareRevisionUnavailable is what meters without a revision report.
var softwareRevisionUnavailable = []byte{0x00, 0x00}

// GetTypeResponse carries the meter type and its software revision.
//
// MeterTypeBytes is the 2-byte binary encoded meter type; its internal
// structure is not publicly documented. SoftwareRevision is empty when the
// meter reports none (it may then be available via register 1005 instead).
type GetTypeResponse struct {
	MeterTypeBytes   []byte
	SoftwareRevision string

	// Raw holds the pre-decoded data; set only when constructed via decode.
	Raw []byte
}

func (GetTypeResponse) CommandID() byte     { return kmp.CmdGetType }
func (GetTypeResponse) CommandName() string { return "GetType" }

// DecodeGetTypeResponse decodes a GetType response.
func DecodeGetTypeResponse(data codec.ApplicationData) (*GetTypeResponse, error) {
	var resp GetTypeResponse
	if err := validateCommandID(resp.CommandName(), resp.CommandID(), data.CommandID); err != nil {
		return nil, err
	}

	lengthExpected := meterTypeLengthEncoded + softwareRevisionLengthEncoded
	if len(data.Data) != lengthExpected {
		return nil, &codec.DataLengthUnexpectedError{
			What:     "GetType response data",
			Actual:   len(data.Data),
			Expected: lengthExpected,
		}
	}

	meterTypeBytes := append([]byte(nil), data.Data[:meterTypeLengthEncoded]...)
	revBytes := data.Data[meterTypeLengthEncoded:]

	revision := ""
	if revBytes[0] != 0x00 || revBytes[1] != 0x00 {
		// The letter is encoded as 0x01='A', 0x02='B' and so on.
		letter := revBytes[0]
		if letter < softwareRevisionLetterMin || letter > softwareRevisionLetterMax {
			return nil, &codec.OutOfRangeError{
				What: "software revision letter (int value)",
				Min:  softwareRevisionLetterMin, Max: softwareRevisionLetterMax,
				Actual: int64(letter),
			}
		}
		revision = string('A'+rune(letter-1)) + strconv.Itoa(int(revBytes[1]))
	}

	return &GetTypeResponse{
		MeterTypeBytes:   meterTypeBytes,
		SoftwareRevision: revision,
		Raw:              append([]byte(nil), data.Data...),
	}, nil
}

// Encode encodes a GetType response, the meter side of the exchange.
func (r *GetTypeResponse) Encode() (codec.ApplicationData, error) {
	if len(r.MeterTypeBytes) != meterTypeLengthEncoded {
		return codec.ApplicationData{}, &codec.DataLengthUnexpectedError{
			What:     "GetTypeResponse meter type bytes",
			Actual:   len(r.MeterTypeBytes),
			Expected: meterTypeLengthEncoded,
		}
	}

	revBytes := softwareRevisionUnavailable
	if r.SoftwareRevision != "" {
		matches := softwareRevisionRe.FindStringSubmatch(r.SoftwareRevision)
		if matches == nil {
			return codec.ApplicationData{}, &SoftwareRevisionInvalidError{Revision: r.SoftwareRevision}
		}
		number, err := strconv.Atoi(matches[2])
		if err != nil || number > 0xFF {
			return codec.ApplicationData{}, &SoftwareRevisionInvalidError{Revision: r.SoftwareRevision}
		}
		revBytes = []byte{matches[1][0] - 'A' + 1, byte(number)}
	}

	data := make([]byte, 0, meterTypeLengthEncoded+softwareRevisionLengthEncoded)
	data = append(data, r.MeterTypeBytes...)
	data = append(data, revBytes...)
	return codec.ApplicationData{CommandID: r.CommandID(), Data: data}, nil
}
