package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/indraprashad/Adhikari-tech-solution/domain"
	"github.com/indraprashad/Adhikari-tech-solution/internal/metrics"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const channelPrefix = "auth:events:"

// RedisEventBus carries auth events over Redis pub/sub. Each process holds a
// single pattern subscription and fans messages out to local listeners from one
// goroutine, so listeners of a client see events in publish order.
type RedisEventBus struct {
	client *redis.Client
	log    zerolog.Logger
	local  *listeners

	mu     sync.Mutex
	pubsub *redis.PubSub
	done   chan struct{}
}

// NewRedisEventBus creates a bus; call Start before relying on delivery
func NewRedisEventBus(client *redis.Client, log zerolog.Logger) *RedisEventBus {
	return &RedisEventBus{
		client: client,
		log:    log.With().Str("component", "event_bus").Logger(),
		local:  newListeners(),
	}
}

// Start subscribes to every client channel and waits for Redis to confirm
func (b *RedisEventBus) Start(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pubsub != nil {
		return nil
	}

	ps := b.client.PSubscribe(ctx, channelPrefix+"*")
	if _, err := ps.Receive(ctx); err != nil {
		ps.Close()
		return fmt.Errorf("subscribe to auth events: %w", err)
	}

	b.pubsub = ps
	b.done = make(chan struct{})
	go b.loop(ps.Channel(), b.done)
	return nil
}

func (b *RedisEventBus) loop(ch <-chan *redis.Message, done chan struct{}) {
	defer close(done)
	for msg := range ch {
		var event domain.AuthEvent
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			b.log.Warn().Err(err).Str("channel", msg.Channel).Msg("dropping undecodable auth event")
			continue
		}
		if event.ClientID == "" {
			event.ClientID = strings.TrimPrefix(msg.Channel, channelPrefix)
		}
		b.local.deliver(event)
	}
}

// Publish implements domain.EventBus
func (b *RedisEventBus) Publish(ctx context.Context, event domain.AuthEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal auth event: %w", err)
	}
	if err := b.client.Publish(ctx, channelPrefix+event.ClientID, data).Err(); err != nil {
		return fmt.Errorf("failed to publish auth event: %w", err)
	}
	metrics.AuthEvents.WithLabelValues(string(event.Type)).Inc()
	b.log.Debug().Str("client_id", event.ClientID).Str("event", string(event.Type)).Msg("auth event published")
	return nil
}

// Subscribe implements domain.EventBus
func (b *RedisEventBus) Subscribe(clientID string, fn func(domain.AuthEvent)) domain.Subscription {
	return b.local.add(clientID, fn)
}

// Close drops the Redis subscription and waits for the fan-out goroutine
func (b *RedisEventBus) Close() error {
	b.mu.Lock()
	ps, done := b.pubsub, b.done
	b.pubsub = nil
	b.mu.Unlock()

	if ps == nil {
		return nil
	}
	err := ps.Close()
	<-done
	return err
}
