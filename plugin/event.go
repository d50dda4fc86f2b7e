// Package plugin receives control events from the device host and turns them
// into OSC messages.
package plugin

import (
	"bytes"
	"encoding/json"

	"github.com/chabad360/oscdeck/settings"
	"github.com/pkg/errors"
)

// Actions handled by the dispatcher.
const (
	ActionKnob = "gptcom.oscremote.knobtriple"
	ActionQuad = "gptcom.oscremote.quadpress"
)

// Events sent by the device host.
const (
	EventDialRotate         = "dialRotate"
	EventDialDown           = "dialDown"
	EventDialUp             = "dialUp"
	EventKeyDown            = "keyDown"
	EventKeyUp              = "keyUp"
	EventDidReceiveSettings = "didReceiveSettings"
	EventWillAppear         = "willAppear"
)

// Event is the envelope of every message the device host sends.
type Event struct {
	Event   string  `json:"event"`
	Action  string  `json:"action,omitempty"`
	Context string  `json:"context,omitempty"`
	Payload Payload `json:"payload"`
}

// Payload carries the event specific fields.
type Payload struct {
	Settings settings.Raw `json:"settings,omitempty"`
	Ticks    interface{}  `json:"ticks,omitempty"`
}

// UnmarshalJSON decodes the envelope leniently: string fields of another JSON
// type keep their raw text and a payload that is not an object is empty.
func (e *Event) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*e = Event{
		Event:   rawString(fields["event"]),
		Action:  rawString(fields["action"]),
		Context: rawString(fields["context"]),
	}
	return e.Payload.UnmarshalJSON(fields["payload"])
}

// UnmarshalJSON decodes the payload leniently. Settings that are present but
// not an object decode as an empty record, so every field takes its default.
func (p *Payload) UnmarshalJSON(data []byte) error {
	*p = Payload{}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil
	}
	if raw, ok := fields["settings"]; ok && !isNull(raw) {
		if err := json.Unmarshal(raw, &p.Settings); err != nil {
			p.Settings = settings.Raw{}
		}
	}
	if raw, ok := fields["ticks"]; ok {
		_ = json.Unmarshal(raw, &p.Ticks)
	}
	return nil
}

func rawString(raw json.RawMessage) string {
	if len(raw) == 0 || isNull(raw) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(bytes.TrimSpace(raw))
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// Registration is the first message sent to the device host.
type Registration struct {
	Event string `json:"event"`
	UUID  string `json:"uuid"`
}

// DecodeEvent decodes a single JSON envelope.
func DecodeEvent(data []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return Event{}, errors.Wrap(err, "decode event")
	}
	return ev, nil
}

// ticks returns the rotation amount, 0 when missing or unparsable.
func (p Payload) ticks() int {
	n, ok := settings.Int(p.Ticks)
	if !ok {
		return 0
	}
	return n
}
