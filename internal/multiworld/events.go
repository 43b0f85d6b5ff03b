package multiworld

import (
	"context"
	"encoding/json"
	"fmt"
)

// EventType represents the type of event being broadcast
type EventType string

const (
	EventPlayerJoined EventType = "player.joined"
	EventItemSent     EventType = "item.sent"
	EventItemFound    EventType = "item.found"
	EventItemReceived EventType = "item.received"
)

// Event is broadcast on the room channel for trackers and tools.
type Event struct {
	Type EventType `json:"type"`
	Room string    `json:"room"`
	From uint8     `json:"from,omitempty"`
	To   uint8     `json:"to,omitempty"`
	Item uint16    `json:"item,omitempty"`
	Key  uint64    `json:"key,omitempty"`
}

// publish broadcasts event on the room channel. Failures are logged only.
func (r *Relay) publish(ctx context.Context, room string, event Event) {
	event.Room = room
	channel := eventsChannel(room)

	data, err := json.Marshal(event)
	if err != nil {
		r.logger.Error("Failed to marshal event", "error", err, "event", event)
		return
	}

	if err := r.client.Publish(ctx, channel, data).Err(); err != nil {
		r.logger.Error("Failed to publish event", "error", err, "channel", channel)
		return
	}

	r.logger.Debug("Event published",
		"channel", channel,
		"event_type", event.Type,
		"from", event.From,
		"to", event.To)
}

// Subscription delivers the events of one room.
type Subscription struct {
	events chan Event
	close  func() error
}

// Events returns the event stream. It is closed when the subscription ends.
func (s *Subscription) Events() <-chan Event {
	return s.events
}

func (s *Subscription) Close() error {
	return s.close()
}

// Subscribe listens to the events of room until ctx is done or the
// subscription is closed. Malformed messages are skipped.
func (r *Relay) Subscribe(ctx context.Context, room string) (*Subscription, error) {
	pubsub := r.client.Subscribe(ctx, eventsChannel(room))
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to room events: %w", err)
	}

	sub := &Subscription{
		events: make(chan Event, 16),
		close:  pubsub.Close,
	}

	go func() {
		defer close(sub.events)
		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				_ = pubsub.Close()
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var event Event
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					r.logger.Warn("Skipping malformed room event", "room", room, "error", err)
					continue
				}
				select {
				case sub.events <- event:
				case <-ctx.Done():
					_ = pubsub.Close()
					return
				}
			}
		}
	}()

	return sub, nil
}
