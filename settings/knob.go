package settings

// ReceiverMode selects between one shared destination for every slot and
// independently configured per-slot destinations.
type ReceiverMode string

const (
	ReceiverSame      ReceiverMode = "same"
	ReceiverDifferent ReceiverMode = "different"
)

const (
	DefaultHost = "127.0.0.1"
	DefaultPort = 8000
)

var (
	receiverModeKeys = keys("receiverMode")
	globalHostKeys   = keys("globalIp", "clientAddress", "ip")
	globalPortKeys   = keys("globalPort", "clientPort", "port")
)

// Destination is a UDP target.
type Destination struct {
	Host string
	Port int
}

// Valid reports whether d can be sent to.
func (d Destination) Valid() bool {
	return d.Host != "" && d.Port > 0
}

// KnobSlot names one of the three sub-targets of a knob.
type KnobSlot string

const (
	KnobLeft  KnobSlot = "left"
	KnobRight KnobSlot = "right"
	KnobPress KnobSlot = "press"
)

// Knob holds the settings of a triple knob: left turn, right turn and press
// each send to their own OSC address.
type Knob struct {
	ReceiverMode ReceiverMode
	Global       Destination

	LeftPath  string
	RightPath string
	PressPath string

	Left  Destination
	Right Destination
	Press Destination

	SendTicksAsValue bool
	TickMultiplier   int
}

// NormalizeKnob fills in a Knob from raw. It never fails; a nil or empty raw
// yields the defaults.
func NormalizeKnob(raw Raw) Knob {
	multiplier := intField(raw, keys("tickMultiplier"), 1)
	if multiplier == 0 {
		multiplier = 1
	}

	return Knob{
		ReceiverMode: ReceiverMode(stringField(raw, receiverModeKeys, string(ReceiverSame))),
		Global: Destination{
			Host: stringField(raw, globalHostKeys, DefaultHost),
			Port: intField(raw, globalPortKeys, DefaultPort),
		},

		LeftPath:  stringField(raw, keys("leftPath", "pathLeft"), "/left"),
		RightPath: stringField(raw, keys("rightPath", "pathRight"), "/right"),
		PressPath: stringField(raw, keys("pressPath", "pathPress"), "/press"),

		Left:  Destination{Host: stringField(raw, keys("leftIp"), ""), Port: intField(raw, keys("leftPort"), 0)},
		Right: Destination{Host: stringField(raw, keys("rightIp"), ""), Port: intField(raw, keys("rightPort"), 0)},
		Press: Destination{Host: stringField(raw, keys("pressIp"), ""), Port: intField(raw, keys("pressPort"), 0)},

		SendTicksAsValue: boolField(raw, keys("sendTicksAsValue")),
		TickMultiplier:   multiplier,
	}
}

// Path returns the OSC address configured for slot.
func (k Knob) Path(slot KnobSlot) string {
	switch slot {
	case KnobLeft:
		return k.LeftPath
	case KnobRight:
		return k.RightPath
	case KnobPress:
		return k.PressPath
	}
	return ""
}

// Resolve returns the destination for slot.
func (k Knob) Resolve(slot KnobSlot) Destination {
	var override Destination
	switch slot {
	case KnobLeft:
		override = k.Left
	case KnobRight:
		override = k.Right
	case KnobPress:
		override = k.Press
	}
	return resolve(k.ReceiverMode, override, k.Global)
}
