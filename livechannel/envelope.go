package livechannel

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"dealfeed/types"
)

var (
	// ErrMalformedEnvelope marks a frame that could not be decoded
	ErrMalformedEnvelope = errors.New("malformed envelope")
	// ErrConnection marks a dial or read failure on the stream
	ErrConnection = errors.New("stream connection failed")
)

// Message is a decoded push frame: DealMessage or UnknownMessage.
type Message interface {
	isMessage()
}

// DealMessage carries a pushed deal item
type DealMessage struct {
	Item types.DealItem
}

// UnknownMessage is any envelope this client does not handle.
// Kinds are reserved for future use and are ignored, not rejected.
type UnknownMessage struct {
	Kind string
}

func (DealMessage) isMessage()    {}
func (UnknownMessage) isMessage() {}

type rawEnvelope struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

// Decode parses one text frame into a Message.
func Decode(frame []byte) (Message, error) {
	var env rawEnvelope
	if err := json.Unmarshal(frame, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}

	if env.Kind != types.KindDealItem || absent(env.Data) {
		return UnknownMessage{Kind: env.Kind}, nil
	}

	var item types.DealItem
	if err := json.Unmarshal(env.Data, &item); err != nil {
		return nil, fmt.Errorf("%w: data: %v", ErrMalformedEnvelope, err)
	}
	if item.ID == "" {
		return nil, fmt.Errorf("%w: deal item without id", ErrMalformedEnvelope)
	}
	return DealMessage{Item: item}, nil
}

// absent treats missing data and JSON falsy values as no payload
func absent(data json.RawMessage) bool {
	switch string(bytes.TrimSpace(data)) {
	case "", "null", "false", "0", `""`:
		return true
	}
	return false
}
