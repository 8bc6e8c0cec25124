// Package transport delivers feed events from the socket.io server.
// Implementations never block the caller: Dial starts in the background
// and Poll returns whatever events are already queued.
package transport

import (
	"context"
	"errors"
	"fmt"
	"net/url"
)

// ErrNotConnected is returned by Send when no connection is open.
var ErrNotConnected = errors.New("transport: not connected")

// EventType identifies a transport event.
type EventType string

const (
	EventConnected    EventType = "CONNECTED"
	EventDisconnected EventType = "DISCONNECTED"
	EventText         EventType = "TEXT"
)

// Event is something the transport observed.
type Event struct {
	Type EventType
	Text string // payload for EventText
	Err  error  // cause for EventDisconnected, if any
}

// Transport is the feed connection.
type Transport interface {
	// Dial starts a connection attempt. The outcome arrives as an
	// EventConnected or EventDisconnected from Poll.
	Dial(ctx context.Context)

	// Poll returns the next queued event without blocking.
	Poll() (Event, bool)

	// Send writes one text frame.
	Send(text string) error

	// Close drops any open connection and stops background work.
	Close() error
}

// DefaultPath is the socket.io (engine.io v3) websocket endpoint.
const DefaultPath = "/socket.io/?EIO=3&transport=websocket"

// URL builds the websocket URL for a socket.io server.
func URL(server string, port int, tls bool, path string) (string, error) {
	if server == "" {
		return "", errors.New("transport: server is required")
	}
	if path == "" {
		path = DefaultPath
	}
	scheme := "ws"
	if tls {
		scheme = "wss"
	}
	ref, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("parse path %q: %w", path, err)
	}
	u := url.URL{
		Scheme:   scheme,
		Host:     fmt.Sprintf("%s:%d", server, port),
		Path:     ref.Path,
		RawQuery: ref.RawQuery,
	}
	return u.String(), nil
}
