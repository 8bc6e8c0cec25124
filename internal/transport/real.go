package transport

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	eventQueue       = 64
	handshakeTimeout = 10 * time.Second
	writeTimeout     = 5 * time.Second
)

// RealTransport is a websocket client for a socket.io server.
type RealTransport struct {
	url    string
	dialer *websocket.Dialer
	events chan Event

	mu     sync.Mutex
	conn   *websocket.Conn
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRealTransport creates a transport for the given websocket URL.
func NewRealTransport(wsURL string) *RealTransport {
	return &RealTransport{
		url: wsURL,
		dialer: &websocket.Dialer{
			HandshakeTimeout: handshakeTimeout,
		},
		events: make(chan Event, eventQueue),
	}
}

// Dial connects in the background and reads until the connection drops.
func (t *RealTransport) Dial(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)

	t.mu.Lock()
	if t.cancel != nil {
		t.cancel()
	}
	t.cancel = cancel
	t.mu.Unlock()

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		t.run(ctx)
	}()
}

func (t *RealTransport) run(ctx context.Context) {
	conn, _, err := t.dialer.DialContext(ctx, t.url, nil)
	if err != nil {
		t.push(ctx, Event{Type: EventDisconnected, Err: fmt.Errorf("dial %s: %w", t.url, err)})
		return
	}

	t.mu.Lock()
	t.conn = conn
	t.mu.Unlock()

	// Unblock ReadMessage when the context ends.
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	t.push(ctx, Event{Type: EventConnected})

	for {
		typ, data, err := conn.ReadMessage()
		if err != nil {
			t.mu.Lock()
			if t.conn == conn {
				t.conn = nil
			}
			t.mu.Unlock()
			conn.Close()
			t.push(ctx, Event{Type: EventDisconnected, Err: fmt.Errorf("read: %w", err)})
			return
		}
		if typ != websocket.TextMessage {
			continue
		}
		t.push(ctx, Event{Type: EventText, Text: string(data)})
	}
}

func (t *RealTransport) push(ctx context.Context, ev Event) {
	select {
	case t.events <- ev:
	case <-ctx.Done():
		// Closed; nobody polls anymore.
	}
}

// Poll returns the next queued event without blocking.
func (t *RealTransport) Poll() (Event, bool) {
	select {
	case ev := <-t.events:
		return ev, true
	default:
		return Event{}, false
	}
}

// Send writes one text frame on the open connection.
func (t *RealTransport) Send(text string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.conn == nil {
		return ErrNotConnected
	}
	if err := t.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return fmt.Errorf("set write deadline: %w", err)
	}
	if err := t.conn.WriteMessage(websocket.TextMessage, []byte(text)); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// Close drops the connection and waits for background goroutines.
func (t *RealTransport) Close() error {
	t.mu.Lock()
	cancel := t.cancel
	t.cancel = nil
	conn := t.conn
	t.conn = nil
	t.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if conn != nil {
		conn.Close()
	}
	t.wg.Wait()
	return nil
}
