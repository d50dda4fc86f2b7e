package plugin

import (
	"context"
	"net"
	"strconv"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
)

// logged lists the events echoed to the log before dispatch.
var logged = map[string]bool{
	EventDialRotate:         true,
	EventDialDown:           true,
	EventKeyDown:            true,
	EventKeyUp:              true,
	EventDidReceiveSettings: true,
}

// Conn is the JSON message channel to the device host.
type Conn struct {
	ws     *websocket.Conn
	logger hclog.Logger

	mu sync.Mutex // serializes writes
}

// Dial connects to the device host listening on localhost:port.
func Dial(ctx context.Context, port int, logger hclog.Logger) (*Conn, error) {
	return DialURL(ctx, "ws://"+net.JoinHostPort("localhost", strconv.Itoa(port)), logger)
}

// DialURL connects to the device host at url.
func DialURL(ctx context.Context, url string, logger hclog.Logger) (*Conn, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	ws, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "dial %s", url)
	}
	return &Conn{ws: ws, logger: logger}, nil
}

// Register announces the plugin to the device host. It must be the first
// message written.
func (c *Conn) Register(event, uuid string) error {
	if err := c.WriteJSON(Registration{Event: event, UUID: uuid}); err != nil {
		return errors.Wrap(err, "register")
	}
	c.logger.Info("registered", "event", event, "uuid", uuid)
	return nil
}

// WriteJSON sends v as a single text message.
func (c *Conn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteJSON(v)
}

// Run reads events and hands them to d one at a time, each processed to
// completion before the next is read. Undecodable messages are dropped.
// Run returns nil when ctx is cancelled or the host closes the channel
// normally.
func (c *Conn) Run(ctx context.Context, d *Dispatcher) error {
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			c.ws.Close()
		case <-stop:
		}
	}()

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Info("channel closed")
				return nil
			}
			c.logger.Error("channel error", "error", err)
			return errors.Wrap(err, "read")
		}

		ev, err := DecodeEvent(data)
		if err != nil {
			c.logger.Debug("dropping message", "error", err)
			continue
		}
		if logged[ev.Event] {
			c.logger.Debug("event", "event", ev.Event, "action", ev.Action, "context", ev.Context, "raw", string(data))
		}
		d.Handle(ev)
	}
}

// Close closes the underlying connection.
func (c *Conn) Close() error {
	return c.ws.Close()
}
