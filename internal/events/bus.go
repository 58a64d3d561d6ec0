// Package events fans requirement changes out to connected dashboards over
// Redis pub/sub.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const channel = "rd:requirements:events"

type Type string

const (
	RequirementCreated Type = "requirement.created"
	RequirementUpdated Type = "requirement.updated"
	StageChanged       Type = "requirement.stage_changed"
	CommentAdded       Type = "requirement.comment_added"
)

// Event tells subscribers which requirement changed. Receivers re-query the
// requirement rather than trusting the payload.
type Event struct {
	Type          Type      `json:"type"`
	RequirementID string    `json:"requirement_id"`
	Stage         string    `json:"stage,omitempty"`
	At            time.Time `json:"at"`
}

// Bus publishes and subscribes to requirement events. A Bus with a nil client
// drops everything it is given.
type Bus struct {
	client *redis.Client
}

func NewBus(client *redis.Client) *Bus {
	return &Bus{client: client}
}

func (b *Bus) Enabled() bool {
	return b != nil && b.client != nil
}

func (b *Bus) Publish(ctx context.Context, ev Event) error {
	if !b.Enabled() {
		return nil
	}
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}

	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := b.client.Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}
	return nil
}

// Subscribe streams events until ctx is cancelled. The returned channel is
// closed when the subscription ends.
func (b *Bus) Subscribe(ctx context.Context) (<-chan Event, error) {
	if !b.Enabled() {
		return nil, fmt.Errorf("event bus disabled")
	}

	sub := b.client.Subscribe(ctx, channel)
	// Wait for the subscription confirmation so no publish is missed after return.
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, fmt.Errorf("subscribe: %w", err)
	}

	out := make(chan Event, 16)
	go func() {
		defer close(out)
		defer sub.Close()

		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var ev Event
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					continue
				}
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
