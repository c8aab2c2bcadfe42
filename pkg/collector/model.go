package collector

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gertvdijk/gokmp/pkg/messages"
	"github.com/gertvdijk/gokmp/pkg/types"
)

// RequestSender performs one KMP exchange; satisfied by *client.Client.
type RequestSender interface {
	SendRequest(req messages.Request) (messages.Response, error)
}

// MeterPoller periodically requests a fixed set of registers from the meter
// and keeps the latest decoded reading. One poll is one half-duplex
// exchange; polls never overlap.
type MeterPoller struct {
	sender    RequestSender
	registers []uint16
	interval  time.Duration

	latestReading *types.MeterReading
	readingMutex  sync.RWMutex
	stopSignal    atomic.Bool
}
