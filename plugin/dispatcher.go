package plugin

import (
	"github.com/chabad360/oscdeck/settings"
	"github.com/hashicorp/go-hclog"
)

// Sender transmits one OSC message. Implementations must not block on the
// network; *osc.Sender satisfies it.
type Sender interface {
	Send(host string, port int, addr string, args ...interface{})
}

// Dispatcher routes control events to OSC sends. It keeps the latest settings
// snapshot per control instance for as long as it lives.
//
// A Dispatcher is not safe for concurrent use; events are expected to arrive
// one at a time from a single channel.
type Dispatcher struct {
	sender   Sender
	logger   hclog.Logger
	settings map[string]settings.Raw
}

// NewDispatcher returns a Dispatcher that sends through sender.
func NewDispatcher(sender Sender, logger hclog.Logger) *Dispatcher {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Dispatcher{
		sender:   sender,
		logger:   logger,
		settings: make(map[string]settings.Raw),
	}
}

// Handle processes a single event to completion.
func (d *Dispatcher) Handle(ev Event) {
	switch ev.Event {
	case EventDidReceiveSettings:
		raw := ev.Payload.Settings
		if raw == nil {
			raw = settings.Raw{}
		}
		d.settings[ev.Context] = raw
		d.logger.Info("received settings", "context", ev.Context, "settings", raw)
		return

	case EventWillAppear:
		if ev.Context != "" && ev.Payload.Settings != nil {
			d.settings[ev.Context] = ev.Payload.Settings
		}
		return
	}

	switch ev.Action {
	case ActionKnob:
		switch ev.Event {
		case EventDialRotate:
			d.rotate(ev)
		case EventDialDown:
			d.press(ev)
		}
	case ActionQuad:
		switch ev.Event {
		case EventKeyDown, EventKeyUp:
			d.key(ev)
		}
	}
}

// Settings returns the cached settings snapshot for context.
func (d *Dispatcher) Settings(context string) (settings.Raw, bool) {
	raw, ok := d.settings[context]
	return raw, ok
}

// lookup returns the settings for ev: the event's own snapshot if it carries
// one, else the cached one. Unseen contexts get an empty record.
func (d *Dispatcher) lookup(ev Event) settings.Raw {
	if ev.Payload.Settings != nil {
		d.settings[ev.Context] = ev.Payload.Settings
		return ev.Payload.Settings
	}
	raw, ok := d.settings[ev.Context]
	if !ok {
		raw = settings.Raw{}
		d.settings[ev.Context] = raw
	}
	return raw
}

func (d *Dispatcher) rotate(ev Event) {
	s := settings.NormalizeKnob(d.lookup(ev))

	ticks := ev.Payload.ticks()
	if ticks == 0 {
		return
	}

	slot := settings.KnobRight
	if ticks < 0 {
		slot = settings.KnobLeft
		ticks = -ticks
	}

	var args []interface{}
	if s.SendTicksAsValue {
		args = append(args, ticks*s.TickMultiplier)
	}

	dest := s.Resolve(slot)
	d.sender.Send(dest.Host, dest.Port, s.Path(slot), args...)
}

func (d *Dispatcher) press(ev Event) {
	s := settings.NormalizeKnob(d.lookup(ev))
	dest := s.Resolve(settings.KnobPress)
	d.sender.Send(dest.Host, dest.Port, s.PressPath)
}

func (d *Dispatcher) key(ev Event) {
	s := settings.NormalizeQuad(d.lookup(ev))

	want := EventKeyDown
	if s.SendOn == settings.TriggerUp {
		want = EventKeyUp
	}
	if ev.Event != want {
		return
	}

	for i, m := range s.Messages {
		if m.Path == "" {
			continue
		}
		dest := s.Resolve(i)
		d.sender.Send(dest.Host, dest.Port, m.Path)
	}
}
