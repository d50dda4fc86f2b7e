package osc

import (
	"context"
	"net"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
)

// HandlerFunc is called for every message the Server decodes.
type HandlerFunc func(msg *Message, addr net.Addr)

// Server receives OSC messages on a packet connection. It is a diagnostic
// receiver: nothing is ever sent back.
type Server struct {
	Addr        string
	Handler     HandlerFunc
	ReadTimeout time.Duration
	Logger      hclog.Logger
}

// ListenAndServe listens on s.Addr and serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.ListenPacket("udp", s.Addr)
	if err != nil {
		return errors.Wrapf(err, "listen %s", s.Addr)
	}
	defer ln.Close()

	return s.Serve(ctx, ln)
}

// Serve retrieves incoming OSC messages from the given connection and hands
// them to s.Handler. Packets that fail to decode are logged and skipped.
// Serve returns nil once ctx is cancelled.
func (s *Server) Serve(ctx context.Context, c net.PacketConn) error {
	logger := s.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			c.Close()
		case <-stop:
		}
	}()

	var tempDelay time.Duration
	for {
		msg, addr, err := s.ReceivePacket(c)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, net.ErrClosed) {
				return err
			}
			var ne net.Error
			if errors.As(err, &ne) {
				if ne.Timeout() {
					continue
				}
				if tempDelay == 0 {
					tempDelay = 5 * time.Millisecond
				} else {
					tempDelay *= 2
				}
				if max := 1 * time.Second; tempDelay > max {
					tempDelay = max
				}
				time.Sleep(tempDelay)
				continue
			}
			logger.Debug("dropping undecodable packet", "from", addr, "error", err)
			continue
		}
		tempDelay = 0
		if s.Handler != nil {
			s.Handler(msg, addr)
		}
	}
}

// ReceivePacket reads and decodes a single OSC message from c.
func (s *Server) ReceivePacket(c net.PacketConn) (*Message, net.Addr, error) {
	if s.ReadTimeout != 0 {
		if err := c.SetReadDeadline(time.Now().Add(s.ReadTimeout)); err != nil {
			return nil, nil, err
		}
	}

	b := make([]byte, MaxPacketSize)
	n, a, err := c.ReadFrom(b)
	if err != nil {
		return nil, a, err
	}

	msg, err := ParseMessage(b[:n])
	return msg, a, err
}
