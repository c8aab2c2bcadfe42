// Package collector polls a KMP meter for register values and fans the
// readings out to consumers such as the live meter API.
package collector

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gertvdijk/gokmp/pkg/messages"
	"github.com/gertvdijk/gokmp/pkg/types"
)

// NewMeterPoller initializes a poller for the given register IDs.
func NewMeterPoller(sender RequestSender, registers []uint16, interval time.Duration) *MeterPoller {
	return &MeterPoller{
		sender:    sender,
		registers: registers,
		interval:  interval,
	}
}

// StartPolling starts the poll loop in a goroutine. handleReading runs in a
// goroutine for each successful poll. After too many consecutive errors the
// loop gives up and reports the last error through handleError.
func (p *MeterPoller) StartPolling(
	handleReading func(reading *types.MeterReading),
	handleError func(err error),
) {
	p.stopSignal.Store(false)

	go func() {
		// Tolerance before we report error.
		consecutiveErrors := 0
		maxErrors := 10
		var lastError error

		for consecutiveErrors < maxErrors {
			if p.stopSignal.Load() {
				logrus.Info("Stop signal received, poller shutting down")
				return
			}

			reading, err := p.pollOnce()
			if err != nil {
				consecutiveErrors++
				lastError = err
				logrus.Warnf("Error polling meter (%d/%d): %v", consecutiveErrors, maxErrors, err)
				time.Sleep(time.Second)
				continue
			}

			p.readingMutex.Lock()
			p.latestReading = reading
			p.readingMutex.Unlock()

			go handleReading(reading)
			consecutiveErrors = 0

			time.Sleep(p.interval)
		}

		logrus.Errorf("Too many consecutive errors (%d), stopping poller: %v", maxErrors, lastError)
		handleError(lastError)
	}()
}

// StopPolling makes the poll loop exit before its next exchange.
func (p *MeterPoller) StopPolling() {
	p.stopSignal.Store(true)
}

// GetLatestReading returns the most recent successful reading, or nil when
// none arrived yet.
func (p *MeterPoller) GetLatestReading() *types.MeterReading {
	p.readingMutex.RLock()
	defer p.readingMutex.RUnlock()
	return p.latestReading
}

// pollOnce performs a single GetRegister exchange and decodes the response
// for presentation. Registers whose value bytes do not decode as the
// floating point format (e.g. ASCII-typed registers) are skipped with a
// warning.
func (p *MeterPoller) pollOnce() (*types.MeterReading, error) {
	response, err := p.sender.SendRequest(messages.GetRegisterRequest{Registers: p.registers})
	if err != nil {
		return nil, err
	}
	registerResponse, ok := response.(*messages.GetRegisterResponse)
	if !ok {
		return nil, fmt.Errorf("unexpected response type %T for GetRegister request", response)
	}

	types.WarnRegisterUnknowns(registerResponse.Registers)

	reading := &types.MeterReading{
		Timestamp: time.Now().Format(time.RFC3339),
	}
	for _, register := range registerResponse.Registers {
		decoded, err := types.FromRegisterData(register)
		if err != nil {
			logrus.Warnf("Skipping register %d: %v", register.ID, err)
			continue
		}
		reading.Registers = append(reading.Registers, decoded)
	}
	return reading, nil
}
