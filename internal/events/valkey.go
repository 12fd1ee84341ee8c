// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// DefaultChannel is the pub/sub channel theme events are published on.
	DefaultChannel = "themes"

	// publishTimeout bounds how long a request waits on Valkey.
	publishTimeout = 2 * time.Second
)

// ConnectValkey creates a Valkey client and verifies the connection with a ping.
func ConnectValkey(ctx context.Context, host, port, password string) (*redis.Client, error) {
	addr := fmt.Sprintf("%s:%s", host, port)
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("valkey ping: %w", err)
	}

	slog.Info("valkey connected", "addr", addr)
	return client, nil
}

// ValkeyPublisher publishes theme events as JSON on a Valkey channel.
type ValkeyPublisher struct {
	client  *redis.Client
	channel string
}

// NewValkeyPublisher creates a publisher on the given channel. An empty
// channel means DefaultChannel.
func NewValkeyPublisher(client *redis.Client, channel string) *ValkeyPublisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &ValkeyPublisher{client: client, channel: channel}
}

// Publish sends e to the channel. The caller's cancellation is ignored so an
// event for a committed write is not lost when the client hangs up.
func (p *ValkeyPublisher) Publish(ctx context.Context, e Event) {
	data, err := json.Marshal(e)
	if err != nil {
		slog.Warn("theme event encode error", "type", e.Type, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := p.client.Publish(ctx, p.channel, data).Err(); err != nil {
		slog.Warn("theme event publish error", "type", e.Type, "theme_id", e.ThemeID, "error", err)
		return
	}
	slog.Debug("theme event published", "type", e.Type, "theme_id", e.ThemeID)
}

// Subscribe calls fn for every event on the channel until ctx is done.
// Messages that do not decode are logged and skipped.
func (p *ValkeyPublisher) Subscribe(ctx context.Context, fn func(Event)) error {
	sub := p.client.Subscribe(ctx, p.channel)
	defer sub.Close()

	// Wait for the subscription to be confirmed before consuming.
	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", p.channel, err)
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var e Event
			if err := decodeEvent(msg.Payload, &e); err != nil {
				slog.Warn("theme event decode error", "error", err)
				continue
			}
			fn(e)
		}
	}
}

func decodeEvent(payload string, e *Event) error {
	return json.Unmarshal([]byte(payload), e)
}
