package transport

import "context"

// FakeTransport is a test double with scripted events.
type FakeTransport struct {
	// Queue holds events returned by Poll, oldest first.
	Queue []Event

	// OnDial, if set, is called by Dial and may queue events.
	OnDial func(f *FakeTransport)

	// Dials counts Dial calls.
	Dials int

	// Sent contains every frame passed to Send.
	Sent []string

	// SendError, if set, will be returned by Send.
	SendError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeTransport creates a FakeTransport with queued events.
func NewFakeTransport(events ...Event) *FakeTransport {
	return &FakeTransport{Queue: events}
}

// Dial records the attempt.
func (f *FakeTransport) Dial(ctx context.Context) {
	f.Dials++
	if f.OnDial != nil {
		f.OnDial(f)
	}
}

// Poll pops the next queued event.
func (f *FakeTransport) Poll() (Event, bool) {
	if len(f.Queue) == 0 {
		return Event{}, false
	}
	ev := f.Queue[0]
	f.Queue = f.Queue[1:]
	return ev, true
}

// Send records text.
func (f *FakeTransport) Send(text string) error {
	if f.SendError != nil {
		return f.SendError
	}
	f.Sent = append(f.Sent, text)
	return nil
}

// Close marks the transport closed.
func (f *FakeTransport) Close() error {
	f.Closed = true
	return nil
}

// Push queues events.
func (f *FakeTransport) Push(events ...Event) {
	f.Queue = append(f.Queue, events...)
}

// Text is shorthand for a text event.
func Text(s string) Event {
	return Event{Type: EventText, Text: s}
}
