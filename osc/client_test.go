package osc

import (
	"bytes"
	"net"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
)

func newTestLogger(buf *bytes.Buffer) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:   "test",
		Level:  hclog.Info,
		Output: buf,
	})
}

func listenLoopback(t *testing.T) net.PacketConn {
	t.Helper()
	c, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestSender_Send(t *testing.T) {
	c := listenLoopback(t)
	port := c.LocalAddr().(*net.UDPAddr).Port

	var logs bytes.Buffer
	s := NewSender(newTestLogger(&logs))
	s.Send("127.0.0.1", port, "/address/test", 1122, 3344)
	s.Wait()

	server := &Server{ReadTimeout: 2 * time.Second}
	msg, _, err := server.ReceivePacket(c)
	if err != nil {
		t.Fatalf("ReceivePacket() error = %v", err)
	}
	want := &Message{Address: "/address/test", Arguments: []interface{}{int32(1122), int32(3344)}}
	if !reflect.DeepEqual(msg, want) {
		t.Errorf("received %v, want %v", msg, want)
	}

	out := logs.String()
	for _, s := range []string{"send", "address=/address/test", "bytes=28"} {
		if !strings.Contains(out, s) {
			t.Errorf("log %q does not contain %q", out, s)
		}
	}
}

func TestSender_SendNoArgs(t *testing.T) {
	c := listenLoopback(t)
	port := c.LocalAddr().(*net.UDPAddr).Port

	s := &Sender{}
	s.Send("127.0.0.1", port, "/press")
	s.Wait()

	server := &Server{ReadTimeout: 2 * time.Second}
	msg, _, err := server.ReceivePacket(c)
	if err != nil {
		t.Fatalf("ReceivePacket() error = %v", err)
	}
	if msg.Address != "/press" || len(msg.Arguments) != 0 {
		t.Errorf("received %v, want /press without arguments", msg)
	}
}

func TestSender_DropsIncompleteDestination(t *testing.T) {
	tests := []struct {
		name string
		host string
		port int
		addr string
	}{
		{"empty_address", "127.0.0.1", 9000, ""},
		{"empty_host", "", 9000, "/a"},
		{"zero_port", "127.0.0.1", 0, "/a"},
		{"negative_port", "127.0.0.1", -1, "/a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			s := NewSender(newTestLogger(&logs))
			s.Send(tt.host, tt.port, tt.addr, 1)
			s.Wait()
			if logs.Len() != 0 {
				t.Errorf("expected no log output, got %q", logs.String())
			}
		})
	}
}

func TestSender_TransportErrorIsLogged(t *testing.T) {
	var logs bytes.Buffer
	s := NewSender(newTestLogger(&logs))
	s.Send("127.0.0.1", 70000, "/a")
	s.Wait()

	out := logs.String()
	if !strings.Contains(out, "send failed") || !strings.Contains(out, "address=/a") {
		t.Errorf("expected transport error in log, got %q", out)
	}
}
