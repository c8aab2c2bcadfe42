package codec

import (
	"math/big"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// FloatCodec implements the variable length base-10 floating point format
// of the KMP protocol.
//
// The encoded form is: one length byte N for the mantissa, one sign/exponent
// byte, then N bytes of big-endian unsigned mantissa. In the sign/exponent
// byte, bit 7 is the mantissa sign, bit 6 the exponent sign and bits 5..0
// the exponent magnitude:
//
//	value = (-1|1) * mantissa * 10 ^ ((-1|1) * exponent)
//
// Decoding builds the mantissa as an arbitrary-precision integer and keeps
// the decimal exponent as-is, so the result is exact for any input the wire
// format can express. No binary floating point is involved at any point.
type FloatCodec struct{}

const exponentMagnitudeMax = 0b00111111

// DefaultSignificandBytes is the common mantissa width on the wire.
const DefaultSignificandBytes = 4

// Decode decodes a floating point byte sequence to an exact decimal value.
func (FloatCodec) Decode(data []byte) (decimal.Decimal, error) {
	if len(data) == 0 {
		return decimal.Decimal{}, &DataLengthUnexpectedError{
			What: "data for floating point decoding", Actual: 0, Expected: -1,
		}
	}

	integerLength := int(data[0])
	if integerLength == 0 {
		return decimal.Decimal{}, &OutOfRangeError{
			What: "integer length byte value for floating point data decoding",
			Min:  1, Max: -1, Actual: 0,
		}
	}

	expected := integerLength + 2
	if len(data) != expected {
		return decimal.Decimal{}, &DataLengthUnexpectedError{
			What: "floating point data", Actual: len(data), Expected: expected,
		}
	}

	signExp := data[1]
	mantissa := new(big.Int).SetBytes(data[2:])
	exponent := int32(signExp & exponentMagnitudeMax)
	if signExp&0b01000000 != 0 {
		exponent = -exponent
	}
	if signExp&0b10000000 != 0 {
		mantissa.Neg(mantissa)
	}

	value := decimal.NewFromBigInt(mantissa, exponent)
	logrus.Debugf("Decoded floating point data: %s [data=%X, man=%s, exp=%d]",
		value, data, mantissa, exponent)
	return value, nil
}

// Encode encodes a decimal value to the floating point wire format.
//
// significandBytes fixes the encoded mantissa width (the meter commonly uses
// DefaultSignificandBytes); pass 0 to use the shortest width that fits. The
// value is reduced first so that the mantissa carries no trailing decimal
// zeros, making Encode the exact inverse of Decode for any representable
// value.
func (FloatCodec) Encode(value decimal.Decimal, significandBytes int) ([]byte, error) {
	coefficient := new(big.Int).Set(value.Coefficient())
	exponent := int64(value.Exponent())

	negative := coefficient.Sign() < 0
	if negative {
		coefficient.Neg(coefficient)
	}

	// Move trailing zeros of the mantissa into the exponent.
	if coefficient.Sign() != 0 {
		ten := big.NewInt(10)
		quo, rem := new(big.Int), new(big.Int)
		for {
			quo.QuoRem(coefficient, ten, rem)
			if rem.Sign() != 0 {
				break
			}
			coefficient.Set(quo)
			exponent++
		}
	} else {
		exponent = 0
	}

	bytesNeeded := (coefficient.BitLen() + 7) / 8
	mantissaLength := bytesNeeded
	if significandBytes > 0 {
		if bytesNeeded > significandBytes {
			return nil, &OutOfRangeError{
				What: "significand bytes length of decimal to encode as mantissa",
				Min:  int64(significandBytes), Max: int64(significandBytes),
				Actual: int64(bytesNeeded),
			}
		}
		mantissaLength = significandBytes
	} else if mantissaLength == 0 {
		mantissaLength = 1
	}
	if mantissaLength > 0xFF {
		return nil, &OutOfRangeError{
			What: "significand bytes length of decimal to encode as mantissa",
			Min:  1, Max: 0xFF, Actual: int64(mantissaLength),
		}
	}

	exponentNegative := exponent < 0
	absExponent := exponent
	if exponentNegative {
		absExponent = -absExponent
	}
	if absExponent > exponentMagnitudeMax {
		return nil, &UnsupportedDecimalExponentError{Exponent: exponent}
	}

	signExp := byte(absExponent)
	if exponentNegative {
		signExp |= 0b01000000
	}
	if negative {
		signExp |= 0b10000000
	}

	out := make([]byte, 2+mantissaLength)
	out[0] = byte(mantissaLength)
	out[1] = signExp
	coefficient.FillBytes(out[2:])
	return out, nil
}
