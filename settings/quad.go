package settings

import "fmt"

// QuadSlots is the number of messages a quad key sends.
const QuadSlots = 4

// Trigger selects which key transition fires a quad key.
type Trigger string

const (
	TriggerDown Trigger = "down"
	TriggerUp   Trigger = "up"
)

// Target is one programmable quad message. An empty Path disables it.
type Target struct {
	Path string
	Destination
}

// Quad holds the settings of a key that sends up to four messages.
type Quad struct {
	SendOn       Trigger
	ReceiverMode ReceiverMode
	Global       Destination
	Messages     [QuadSlots]Target
}

// NormalizeQuad fills in a Quad from raw. All four slots are always present.
func NormalizeQuad(raw Raw) Quad {
	q := Quad{
		SendOn:       Trigger(stringField(raw, keys("sendOn"), string(TriggerDown))),
		ReceiverMode: ReceiverMode(stringField(raw, receiverModeKeys, string(ReceiverSame))),
		Global: Destination{
			Host: stringField(raw, globalHostKeys, DefaultHost),
			Port: intField(raw, globalPortKeys, DefaultPort),
		},
	}

	for i := range q.Messages {
		n := i + 1
		q.Messages[i] = Target{
			Path: stringField(raw, keys(fmt.Sprintf("m%dPath", n)), ""),
			Destination: Destination{
				Host: stringField(raw, keys(fmt.Sprintf("m%dIp", n)), ""),
				Port: intField(raw, keys(fmt.Sprintf("m%dPort", n)), 0),
			},
		}
	}
	return q
}

// Resolve returns the destination of message slot i (0-based). Out of range
// slots resolve to the global destination.
func (q Quad) Resolve(i int) Destination {
	var override Destination
	if i >= 0 && i < len(q.Messages) {
		override = q.Messages[i].Destination
	}
	return resolve(q.ReceiverMode, override, q.Global)
}
