package transport

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestURL(t *testing.T) {
	tests := []struct {
		name   string
		server string
		port   int
		tls    bool
		path   string
		want   string
	}{
		{"tls default path", "rapscript.net", 8143, true, "", "wss://rapscript.net:8143/socket.io/?EIO=3&transport=websocket"},
		{"plain", "localhost", 3000, false, "/ws", "ws://localhost:3000/ws"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := URL(tt.server, tt.port, tt.tls, tt.path)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestURLRequiresServer(t *testing.T) {
	if _, err := URL("", 80, false, ""); err == nil {
		t.Fatal("expected error")
	}
}

func TestFakeTransport(t *testing.T) {
	f := NewFakeTransport(Event{Type: EventConnected})
	f.OnDial = func(f *FakeTransport) { f.Push(Text("hello")) }

	f.Dial(context.Background())
	if f.Dials != 1 {
		t.Errorf("Dials: got %d", f.Dials)
	}

	ev, ok := f.Poll()
	if !ok || ev.Type != EventConnected {
		t.Fatalf("first event: got %+v, %v", ev, ok)
	}
	ev, ok = f.Poll()
	if !ok || ev.Text != "hello" {
		t.Fatalf("second event: got %+v, %v", ev, ok)
	}
	if _, ok := f.Poll(); ok {
		t.Error("expected empty queue")
	}

	if err := f.Send("5"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	f.SendError = errors.New("boom")
	if err := f.Send("2"); err == nil {
		t.Error("expected send error")
	}
	if len(f.Sent) != 1 || f.Sent[0] != "5" {
		t.Errorf("Sent: got %v", f.Sent)
	}
}

// pollFor waits for the next event from a real transport.
func pollFor(t *testing.T, tr *RealTransport) Event {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if ev, ok := tr.Poll(); ok {
			return ev
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("timed out waiting for transport event")
	return Event{}
}

func TestRealTransportRoundTrip(t *testing.T) {
	received := make(chan string, 4)
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer c.Close()
		c.WriteMessage(websocket.TextMessage, []byte(`0{"sid":"x"}`))
		_, msg, err := c.ReadMessage()
		if err != nil {
			return
		}
		received <- string(msg)
		c.WriteMessage(websocket.TextMessage, []byte(`42["statistics",{"en":1}]`))
		// Close to trigger a disconnect on the client.
		c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	}))
	defer srv.Close()

	tr := NewRealTransport("ws" + strings.TrimPrefix(srv.URL, "http"))
	defer tr.Close()

	if err := tr.Send("early"); !errors.Is(err, ErrNotConnected) {
		t.Errorf("Send before dial: got %v, want ErrNotConnected", err)
	}

	tr.Dial(context.Background())

	if ev := pollFor(t, tr); ev.Type != EventConnected {
		t.Fatalf("expected CONNECTED, got %+v", ev)
	}
	if ev := pollFor(t, tr); ev.Type != EventText || ev.Text != `0{"sid":"x"}` {
		t.Fatalf("expected open packet, got %+v", ev)
	}

	if err := tr.Send("5"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	select {
	case got := <-received:
		if got != "5" {
			t.Errorf("server received %q, want 5", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not receive frame")
	}

	if ev := pollFor(t, tr); ev.Type != EventText || ev.Text != `42["statistics",{"en":1}]` {
		t.Fatalf("expected statistics text, got %+v", ev)
	}
	if ev := pollFor(t, tr); ev.Type != EventDisconnected {
		t.Fatalf("expected DISCONNECTED, got %+v", ev)
	}
	if err := tr.Send("2"); !errors.Is(err, ErrNotConnected) {
		t.Errorf("Send after disconnect: got %v, want ErrNotConnected", err)
	}
}

func TestRealTransportDialFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	tr := NewRealTransport("ws" + strings.TrimPrefix(srv.URL, "http"))
	defer tr.Close()

	tr.Dial(context.Background())
	ev := pollFor(t, tr)
	if ev.Type != EventDisconnected {
		t.Fatalf("expected DISCONNECTED, got %+v", ev)
	}
	if ev.Err == nil {
		t.Error("expected dial error")
	}
}
