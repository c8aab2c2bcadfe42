package codec

import "fmt"

// OutOfRangeError reports any value found outside a valid inclusive range.
// Min/Max use -1 for "no bound" on that side.
type OutOfRangeError struct {
	What   string
	Min    int64 // -1 when only an upper bound applies
	Max    int64 // -1 when only a lower bound applies
	Actual int64
}

func (e *OutOfRangeError) Error() string {
	switch {
	case e.Min >= 0 && e.Max >= 0:
		return fmt.Sprintf("%s is out of range [%d,%d]: %d", e.What, e.Min, e.Max, e.Actual)
	case e.Min < 0:
		return fmt.Sprintf("%s is over maximum of %d: %d", e.What, e.Max, e.Actual)
	default:
		return fmt.Sprintf("%s is under minimum of %d: %d", e.What, e.Min, e.Actual)
	}
}

// DataLengthUnexpectedError reports a byte sequence of the wrong length.
// Expected < 0 means no particular length was expected, just not this one.
type DataLengthUnexpectedError struct {
	What              string
	Actual            int
	Expected          int // -1 when no specific length applies
	ExpectedIsMinimum bool
}

func (e *DataLengthUnexpectedError) Error() string {
	if e.Expected >= 0 {
		suffix := ""
		if e.ExpectedIsMinimum {
			suffix = " at minimum"
		}
		return fmt.Sprintf("%s is of length %d, expected length is %d%s",
			e.What, e.Actual, e.Expected, suffix)
	}
	if e.Actual == 0 {
		return fmt.Sprintf("%s is of zero length", e.What)
	}
	return fmt.Sprintf("%s is of unexpected length", e.What)
}

// BoundaryByteInvalidError reports a frame whose first or last byte is not
// the start or stop byte respectively.
type BoundaryByteInvalidError struct {
	What     string // "start" or "stop"
	Expected byte
	Actual   byte
}

func (e *BoundaryByteInvalidError) Error() string {
	return fmt.Sprintf("frame expected %s byte is %d (hex: %02X), but got %d (hex: %02X)",
		e.What, e.Expected, e.Expected, e.Actual, e.Actual)
}

// InvalidDestinationAddressError reports a data link destination address
// outside the known set.
type InvalidDestinationAddressError struct {
	Address byte
}

func (e *InvalidDestinationAddressError) Error() string {
	return fmt.Sprintf("invalid destination address for data link layer: 0x%02X", e.Address)
}

// CRCChecksumInvalidError reports a failed CRC verification of a data link
// byte sequence. Both values are reported; nothing is ever corrected.
type CRCChecksumInvalidError struct {
	Received uint16
	Computed uint16
}

func (e *CRCChecksumInvalidError) Error() string {
	return fmt.Sprintf("CRC checksum invalid: received 0x%04X, computed 0x%04X",
		e.Received, e.Computed)
}

// UnsupportedDecimalExponentError reports a decimal value whose exponent
// cannot be expressed by the floating point wire format.
type UnsupportedDecimalExponentError struct {
	Exponent int64
}

func (e *UnsupportedDecimalExponentError) Error() string {
	return fmt.Sprintf("unsupported exponent %d for floating point encoding", e.Exponent)
}
