package codec

import (
	"encoding/binary"

	"github.com/sigurn/crc16"
	"github.com/sirupsen/logrus"

	"github.com/gertvdijk/gokmp/pkg/kmp"
)

// The data link CRC is CCITT with polynomial 0x1021, except the initial
// value is 0x0000 instead of 0xFFFF. That is exactly the XModem variant.
var crcTable = crc16.MakeTable(crc16.CRC16_XMODEM)

// Checksum computes the data link CRC over data.
func Checksum(data []byte) uint16 {
	return crc16.Checksum(data, crcTable)
}

const (
	dataLinkBytesLengthMin    = 4 // destination + at least a CID + 2 CRC bytes
	applicationBytesLengthMin = 1
)

// DataLinkData is the destructured content of the data link layer.
type DataLinkData struct {
	DestinationAddress byte
	ApplicationBytes   []byte
	CRCValue           uint16
}

// DataLinkCodec encodes/decodes the data link layer: destination address,
// application bytes and a big-endian CRC-16 trailer.
type DataLinkCodec struct{}

// Decode destructures raw data link bytes, verifies the CRC and validates
// the destination address against the known set.
func (DataLinkCodec) Decode(raw []byte) (DataLinkData, error) {
	if len(raw) < dataLinkBytesLengthMin {
		return DataLinkData{}, &DataLengthUnexpectedError{
			What:              "data link layer message to destructure",
			Actual:            len(raw),
			Expected:          dataLinkBytesLengthMin,
			ExpectedIsMinimum: true,
		}
	}

	received := binary.BigEndian.Uint16(raw[len(raw)-2:])
	computed := Checksum(raw[:len(raw)-2])
	if received != computed {
		logrus.Errorf("Checksum verification FAILED [raw=%X, crc_given=%04X, crc_calculated=%04X]",
			raw, received, computed)
		return DataLinkData{}, &CRCChecksumInvalidError{Received: received, Computed: computed}
	}
	logrus.Debugf("Checksum verification OK [raw=%X, crc=%04X]", raw, received)

	destination := raw[0]
	if !kmp.KnownDestination(destination) {
		return DataLinkData{}, &InvalidDestinationAddressError{Address: destination}
	}

	return DataLinkData{
		DestinationAddress: destination,
		ApplicationBytes:   append([]byte(nil), raw[1:len(raw)-2]...),
		CRCValue:           received,
	}, nil
}

// Encode prepends the destination address to the application bytes and
// appends the CRC computed over both.
func (DataLinkCodec) Encode(data DataLinkData) ([]byte, error) {
	if len(data.ApplicationBytes) < applicationBytesLengthMin {
		return nil, &DataLengthUnexpectedError{
			What:              "application data",
			Actual:            len(data.ApplicationBytes),
			Expected:          applicationBytesLengthMin,
			ExpectedIsMinimum: true,
		}
	}

	raw := make([]byte, 0, 1+len(data.ApplicationBytes)+2)
	raw = append(raw, data.DestinationAddress)
	raw = append(raw, data.ApplicationBytes...)
	raw = binary.BigEndian.AppendUint16(raw, Checksum(raw))
	return raw, nil
}
