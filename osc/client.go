package osc

import (
	"net"
	"strconv"
	"sync"

	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
)

// Sender transmits OSC messages over UDP. Every message gets its own socket,
// which is closed once the write completes. Sends never block the caller and
// never report errors back; the outcome of each send is only visible in the
// logger.
//
// The zero value is ready to use and logs nothing.
type Sender struct {
	Logger hclog.Logger

	wg sync.WaitGroup
}

// NewSender returns a Sender that reports to logger.
func NewSender(logger hclog.Logger) *Sender {
	return &Sender{Logger: logger}
}

// Send encodes addr and args and transmits them to host:port in the
// background. Empty hosts or addresses and non-positive ports are dropped
// without any network activity.
func (s *Sender) Send(host string, port int, addr string, args ...interface{}) {
	logger := s.logger()
	if addr == "" || host == "" || port <= 0 {
		logger.Trace("dropping send to incomplete destination", "host", host, "port", port, "address", addr)
		return
	}

	if args == nil {
		args = []interface{}{}
	}
	data := Encode(addr, args...)
	dest := net.JoinHostPort(host, strconv.Itoa(port))

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := transmit(dest, data); err != nil {
			logger.Error("send failed", "dest", dest, "address", addr, "error", err)
		}
	}()

	logger.Info("send", "dest", dest, "address", addr, "args", args, "bytes", len(data))
}

// Wait blocks until every in-flight send has released its socket.
func (s *Sender) Wait() {
	s.wg.Wait()
}

func (s *Sender) logger() hclog.Logger {
	if s.Logger == nil {
		return hclog.NewNullLogger()
	}
	return s.Logger
}

// transmit writes data to dest from a fresh, unbound UDP socket.
func transmit(dest string, data []byte) error {
	a, err := net.ResolveUDPAddr("udp", dest)
	if err != nil {
		return errors.Wrap(err, "resolve")
	}

	conn, err := net.DialUDP("udp", nil, a)
	if err != nil {
		return errors.Wrap(err, "dial")
	}
	defer conn.Close()

	if _, err = conn.Write(data); err != nil {
		return errors.Wrap(err, "write")
	}
	return nil
}
