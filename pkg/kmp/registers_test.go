package kmp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterName(t *testing.T) {
	assert.Equal(t, "Heat Energy (E1)", RegisterName(60))
	assert.Equal(t, "HourCounter", RegisterName(1004))
	assert.Equal(t, "<unknown reg 9999>", RegisterName(9999))
}

func TestUnitName(t *testing.T) {
	assert.Equal(t, "kWh", UnitName(0x02))
	assert.Equal(t, "m³", UnitName(0x28))
	assert.Equal(t, "<unknown unit 65>", UnitName(0x41))
}

func TestKnownDestination(t *testing.T) {
	assert.True(t, KnownDestination(DestinationHeatMeter))
	assert.True(t, KnownDestination(DestinationLoggerTop))
	assert.True(t, KnownDestination(DestinationLoggerBase))
	assert.False(t, KnownDestination(0x3A))
}
