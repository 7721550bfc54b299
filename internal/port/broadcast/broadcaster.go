// Package broadcast defines the port for pushing events to connected clients.
package broadcast

import "context"

// Broadcaster sends typed events to all connected clients.
type Broadcaster interface {
	BroadcastEvent(ctx context.Context, eventType string, payload any)
}

// Noop is a Broadcaster that discards all events.
type Noop struct{}

func (Noop) BroadcastEvent(context.Context, string, any) {}
