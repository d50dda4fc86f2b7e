package plugin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

type chanSender chan sent

func (c chanSender) Send(host string, port int, addr string, args ...interface{}) {
	c <- sent{host, port, addr, args}
}

// fakeHost stands in for the device host: it records the registration and
// then writes msgs to the plugin.
func fakeHost(t *testing.T, msgs []string, registered chan<- Registration) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer ws.Close()

		var reg Registration
		if err := ws.ReadJSON(&reg); err != nil {
			t.Errorf("read registration: %v", err)
			return
		}
		registered <- reg

		for _, m := range msgs {
			if err := ws.WriteMessage(websocket.TextMessage, []byte(m)); err != nil {
				t.Errorf("write: %v", err)
				return
			}
		}
		// Keep the channel open until the plugin goes away.
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestConn_Run(t *testing.T) {
	registered := make(chan Registration, 1)
	srv := fakeHost(t, []string{
		`not json`,
		`{"event":"didReceiveSettings","action":"gptcom.oscremote.knobtriple","context":"k1","payload":{"settings":{"leftPath":"/dial/left","sendTicksAsValue":true,"tickMultiplier":2}}}`,
		`{"event":"dialRotate","action":"gptcom.oscremote.knobtriple","context":"k1","payload":{"ticks":-3}}`,
		`{"event":"keyUp","action":"gptcom.oscremote.quadpress","context":"q1","payload":{"settings":{"sendOn":"up","m2Path":"/two"}}}`,
	}, registered)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	conn, err := DialURL(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if err = conn.Register("registerPlugin", "plugin-uuid"); err != nil {
		t.Fatal(err)
	}

	select {
	case reg := <-registered:
		if reg != (Registration{Event: "registerPlugin", UUID: "plugin-uuid"}) {
			t.Errorf("registration = %+v", reg)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no registration received")
	}

	sender := make(chanSender, 4)
	done := make(chan error, 1)
	go func() {
		done <- conn.Run(ctx, NewDispatcher(sender, nil))
	}()

	for _, want := range []sent{
		{"127.0.0.1", 8000, "/dial/left", []interface{}{6}},
		{"127.0.0.1", 8000, "/two", nil},
	} {
		select {
		case got := <-sender:
			if got.addr != want.addr || got.host != want.host || got.port != want.port || len(got.args) != len(want.args) {
				t.Errorf("sent %+v, want %+v", got, want)
			}
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for %s", want.addr)
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}

func TestConn_RunHostGone(t *testing.T) {
	registered := make(chan Registration, 1)
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		var reg Registration
		_ = ws.ReadJSON(&reg)
		registered <- reg
		ws.Close()
	}))
	defer srv.Close()

	ctx := context.Background()
	conn, err := DialURL(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if err = conn.Register("registerPlugin", "x"); err != nil {
		t.Fatal(err)
	}
	<-registered

	if err = conn.Run(ctx, NewDispatcher(make(chanSender, 1), nil)); err == nil {
		t.Error("Run() expected error after abrupt close")
	}
}

func TestDial_Refused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	if _, err := DialURL(context.Background(), "ws"+strings.TrimPrefix(srv.URL, "http"), nil); err == nil {
		t.Error("DialURL() expected error")
	}
}
