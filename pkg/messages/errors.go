package messages

import "fmt"

// CommandIDMismatchError reports a CID in decoded data that does not match
// the ID defined for the message to decode to.
type CommandIDMismatchError struct {
	MessageName string
	Expected    byte
	Actual      byte
}

func (e *CommandIDMismatchError) Error() string {
	return fmt.Sprintf("expected command ID %d for %s, got %d",
		e.Expected, e.MessageName, e.Actual)
}

// DataWithNoDataError reports unexpected data for a command that does not
// accept any (aside the command ID).
type DataWithNoDataError struct {
	MessageName string
}

func (e *DataWithNoDataError) Error() string {
	return fmt.Sprintf("%s does not take any data", e.MessageName)
}

// SerialNumberInvalidError reports a serial number that is not digits-only.
type SerialNumberInvalidError struct {
	Serial string
}

func (e *SerialNumberInvalidError) Error() string {
	return fmt.Sprintf("serial %q is invalid; should contain digits only", e.Serial)
}

// SoftwareRevisionInvalidError reports a software revision string that does
// not match the letter-plus-number format.
type SoftwareRevisionInvalidError struct {
	Revision string
}

func (e *SoftwareRevisionInvalidError) Error() string {
	return fmt.Sprintf("software revision string %q is invalid", e.Revision)
}
