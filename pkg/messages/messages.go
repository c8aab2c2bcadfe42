// Package messages implements the KMP application level requests and
// responses on top of the generic codecs in pkg/codec.
package messages

import (
	"fmt"

	"github.com/gertvdijk/gokmp/pkg/codec"
	"github.com/gertvdijk/gokmp/pkg/kmp"
)

// Request is a message from the client to the meter. Requests are transient:
// built by the caller, encoded once, never mutated by this package.
type Request interface {
	CommandID() byte
	CommandName() string
	Encode() (codec.ApplicationData, error)
	// DecodeResponse decodes application data into the typed response for
	// this request, validating the command ID echo.
	DecodeResponse(data codec.ApplicationData) (Response, error)
}

// Response is a decoded message from the meter. Responses also encode, for
// tests and meter simulation.
type Response interface {
	CommandID() byte
	CommandName() string
	Encode() (codec.ApplicationData, error)
}

// AckOnlyRequest is implemented by request types whose successful reply is
// the bare ACK byte instead of a data frame. None of the read-only Get*
// requests qualify; write commands such as SetClock would.
type AckOnlyRequest interface {
	Request
	ResponseFromAck() Response
}

// commandNames maps CIDs of implemented messages to their protocol names.
var commandNames = map[byte]string{
	kmp.CmdGetType:     "GetType",
	kmp.CmdGetSerial:   "GetSerialNo",
	kmp.CmdGetRegister: "GetRegister",
}

// CommandName returns the protocol name for a CID, or "" when the command
// is not implemented here.
func CommandName(cid byte) string {
	return commandNames[cid]
}

// responseDecoders dispatches response decoding by CID. A closed lookup by
// command ID, not open-ended dynamic dispatch.
var responseDecoders = map[byte]func(codec.ApplicationData) (Response, error){
	kmp.CmdGetType: func(d codec.ApplicationData) (Response, error) {
		return DecodeGetTypeResponse(d)
	},
	kmp.CmdGetSerial: func(d codec.ApplicationData) (Response, error) {
		return DecodeGetSerialResponse(d)
	},
	kmp.CmdGetRegister: func(d codec.ApplicationData) (Response, error) {
		return DecodeGetRegisterResponse(d)
	},
}

// DecodeResponse decodes application data into the typed response that its
// command ID selects.
func DecodeResponse(data codec.ApplicationData) (Response, error) {
	decode, ok := responseDecoders[data.CommandID]
	if !ok {
		return nil, fmt.Errorf("no response decoder for command ID %d", data.CommandID)
	}
	return decode(data)
}

func validateCommandID(name string, expected, actual byte) error {
	if actual != expected {
		return &CommandIDMismatchError{MessageName: name, Expected: expected, Actual: actual}
	}
	return nil
}
