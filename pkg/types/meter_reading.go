package types

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/gertvdijk/gokmp/pkg/kmp"
	"github.com/gertvdijk/gokmp/pkg/messages"
)

// RegisterReading is the presentation form of one decoded register value.
// ValueStr carries the exact decimal representation; ValueFloat is a
// convenience conversion and may lose significance.
type RegisterReading struct {
	ID         int     `json:"id"`
	IDHex      string  `json:"id_hex"`
	Name       string  `json:"name"`
	Unit       int     `json:"unit"`
	UnitHex    string  `json:"unit_hex"`
	UnitStr    string  `json:"unit_str"`
	ValueStr   string  `json:"value_str"`
	ValueFloat float64 `json:"value_float"`
}

// MeterReading is one poll result: the decoded register values of a single
// GetRegister exchange.
type MeterReading struct {
	Timestamp string            `json:"timestamp"`
	Registers []RegisterReading `json:"registers"`
}

// FromRegisterData decodes the raw value bytes and fills in the lookup
// table names for presentation.
func FromRegisterData(reg messages.RegisterData) (RegisterReading, error) {
	value, err := reg.DecodeValue()
	if err != nil {
		return RegisterReading{}, fmt.Errorf("decoding value of register %d: %w", reg.ID, err)
	}
	float, _ := value.Float64()
	return RegisterReading{
		ID:         int(reg.ID),
		IDHex:      fmt.Sprintf("0x%04X", reg.ID),
		Name:       kmp.RegisterName(reg.ID),
		Unit:       int(reg.Unit),
		UnitHex:    fmt.Sprintf("0x%02X", reg.Unit),
		UnitStr:    kmp.UnitName(reg.Unit),
		ValueStr:   value.String(),
		ValueFloat: float,
	}, nil
}

// PrettyLine formats the reading for text output.
func (r RegisterReading) PrettyLine() string {
	return fmt.Sprintf("%4d → %-16s = %s %s", r.ID, r.Name, r.ValueStr, r.UnitStr)
}

// WarnRegisterUnknowns logs when a response carries register IDs or unit
// codes outside the known tables. Unknown-ness is a presentation concern,
// not a protocol error.
func WarnRegisterUnknowns(registers []messages.RegisterData) {
	for _, reg := range registers {
		if _, ok := kmp.UnitNames[reg.Unit]; !ok {
			logrus.Warn("Unknown unit(s) in output; please report this if you have more information. " +
				"Optimistic value decoding as floating point may fail.")
			break
		}
	}
	for _, reg := range registers {
		if _, ok := kmp.RegisterNames[reg.ID]; !ok {
			logrus.Warn("Unknown register ID(s); please report this if you have more information.")
			break
		}
	}
}
