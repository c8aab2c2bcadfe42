// Package kmp holds the protocol-wide constants and lookup tables for the
// Kamstrup KMP protocol.
package kmp

// Special byte values on the physical layer.
const (
	StartFromMeter byte = 0x40
	StartToMeter   byte = 0x80
	Stop           byte = 0x0D
	Ack            byte = 0x06
	Stuffing       byte = 0x1B
)

// Data link layer destination addresses known to respond.
const (
	DestinationHeatMeter  byte = 0x3F
	DestinationLoggerTop  byte = 0x7F
	DestinationLoggerBase byte = 0xBF
)

// AckBytes is the full ACK reply as seen on the wire: a single byte without
// start/stop bytes or CRC.
var AckBytes = []byte{Ack}

// KnownDestination reports whether addr is one of the defined data link
// destination addresses.
func KnownDestination(addr byte) bool {
	switch addr {
	case DestinationHeatMeter, DestinationLoggerTop, DestinationLoggerBase:
		return true
	}
	return false
}

// CID values for messages. Only the Get* read commands are implemented by
// this module; the rest are listed for reference.
const (
	CmdGetType           byte = 0x01
	CmdGetSerial         byte = 0x02
	CmdSetClock          byte = 0x09
	CmdGetRegister       byte = 0x10
	CmdPutRegister       byte = 0x11
	CmdGetEventStatus    byte = 0x9B
	CmdClearEventStatus  byte = 0x9C
	CmdGetLogTimePresent byte = 0xA0
	CmdGetLogPastPresent byte = 0xA1
	CmdGetLogIDPresent   byte = 0xA2
	CmdGetLogTimePast    byte = 0xA3
)
