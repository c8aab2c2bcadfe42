// Package client orchestrates full KMP request/response exchanges: it runs
// a request down through the codec stack, over the transport, and decodes
// the reply back into a typed response.
package client

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gertvdijk/gokmp/pkg/codec"
	"github.com/gertvdijk/gokmp/pkg/kmp"
	"github.com/gertvdijk/gokmp/pkg/messages"
	"github.com/gertvdijk/gokmp/pkg/transport"
)

// UnexpectedAckError reports a bare ACK reply for a request type that
// requires a data response.
type UnexpectedAckError struct {
	Request string
}

func (e *UnexpectedAckError) Error() string {
	return fmt.Sprintf("unexpected ACK reply for %s request", e.Request)
}

// Codec wires up the codecs of all layers for communication to the meter.
type Codec struct {
	DestinationAddress byte

	application    codec.ApplicationCodec
	dataLink       codec.DataLinkCodec
	physicalEncode codec.PhysicalCodec
	physicalDecode codec.PhysicalCodec
}

// NewCodec returns a Codec addressing the given data link destination.
func NewCodec(destinationAddress byte) Codec {
	return Codec{
		DestinationAddress: destinationAddress,
		physicalEncode:     codec.PhysicalCodec{Direction: codec.ToMeter},
		physicalDecode:     codec.PhysicalCodec{Direction: codec.FromMeter},
	}
}

// EncodeRequest encodes a request message through all layers to the bytes
// to put on the wire.
func (c Codec) EncodeRequest(req messages.Request) ([]byte, error) {
	applicationData, err := req.Encode()
	if err != nil {
		return nil, err
	}
	applicationBytes := c.application.Encode(applicationData)
	dataLinkBytes, err := c.dataLink.Encode(codec.DataLinkData{
		DestinationAddress: c.DestinationAddress,
		ApplicationBytes:   applicationBytes,
	})
	if err != nil {
		return nil, err
	}
	return c.physicalEncode.Encode(dataLinkBytes)
}

// DecodeResponse decodes wire bytes from the meter into the typed response
// for req. The second return value is true when the reply was a bare ACK;
// the response is nil in that case. The decoded command ID must echo the
// request's, otherwise a CommandIDMismatchError is returned: a reply to a
// stale or interleaved request must never be accepted as this one's answer.
func (c Codec) DecodeResponse(req messages.Request, frame []byte) (messages.Response, bool, error) {
	dataLinkBytes, ack, err := c.physicalDecode.Decode(frame)
	if err != nil {
		return nil, false, err
	}
	if ack {
		return nil, true, nil
	}

	dataLinkData, err := c.dataLink.Decode(dataLinkBytes)
	if err != nil {
		return nil, false, err
	}
	applicationData, err := c.application.Decode(dataLinkData.ApplicationBytes)
	if err != nil {
		return nil, false, err
	}

	if applicationData.CommandID != req.CommandID() {
		return nil, false, &messages.CommandIDMismatchError{
			MessageName: req.CommandName(),
			Expected:    req.CommandID(),
			Actual:      applicationData.CommandID,
		}
	}

	response, err := req.DecodeResponse(applicationData)
	if err != nil {
		return nil, false, err
	}
	return response, false, nil
}

// Client performs request/response exchanges with a meter over a transport.
//
// The protocol is strictly half-duplex: one exchange at a time per
// connection. Serializing calls on one connection is the caller's job.
type Client struct {
	transport   transport.Transport
	codec       Codec
	readTimeout time.Duration
}

// New returns a Client talking to the default heat meter destination.
func New(t transport.Transport) *Client {
	return NewWithDestination(t, kmp.DestinationHeatMeter)
}

// NewWithDestination returns a Client for a specific data link destination
// address.
func NewWithDestination(t transport.Transport, destinationAddress byte) *Client {
	return &Client{
		transport:   t,
		codec:       NewCodec(destinationAddress),
		readTimeout: transport.DefaultReadTimeout,
	}
}

// SetReadTimeout overrides the per-exchange reply timeout.
func (c *Client) SetReadTimeout(timeout time.Duration) {
	c.readTimeout = timeout
}

// SendRequest encodes and sends a request and returns the decoded typed
// response. Any failure, including a read timeout after the request was
// written, is fatal to this exchange and is never retried here.
func (c *Client) SendRequest(req messages.Request) (messages.Response, error) {
	requestBytes, err := c.codec.EncodeRequest(req)
	if err != nil {
		return nil, err
	}
	logrus.Debugf("Request encoded: %X", requestBytes)

	logrus.Infof("Sending %s...", req.CommandName())
	if err := c.transport.Write(requestBytes); err != nil {
		return nil, fmt.Errorf("writing %s request: %w", req.CommandName(), err)
	}

	responseBytes, err := c.transport.ReadUntil(kmp.Stop, c.readTimeout)
	if err != nil {
		return nil, err
	}
	logrus.Debugf("Received bytes: %X", responseBytes)

	response, ack, err := c.codec.DecodeResponse(req, responseBytes)
	if err != nil {
		return nil, err
	}
	if ack {
		if ackReq, ok := req.(messages.AckOnlyRequest); ok {
			return ackReq.ResponseFromAck(), nil
		}
		return nil, &UnexpectedAckError{Request: req.CommandName()}
	}
	return response, nil
}
