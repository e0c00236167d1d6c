package chat

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const channelPrefix = "chat:"

// RedisBroker implements Broker on Redis Pub/Sub so broadcasts reach group
// members connected to other processes.
type RedisBroker struct {
	client *redis.Client
}

func NewRedisBroker(redisURL string) (*RedisBroker, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	client := redis.NewClient(opts)

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return &RedisBroker{client: client}, nil
}

func (b *RedisBroker) Publish(ctx context.Context, group string, payload []byte) error {
	return b.client.Publish(ctx, channelPrefix+group, payload).Err()
}

func (b *RedisBroker) Subscribe(group string) (<-chan []byte, func(), error) {
	ctx := context.Background()
	sub := b.client.Subscribe(ctx, channelPrefix+group)

	// confirm the subscription before handing out the channel
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, nil, fmt.Errorf("failed to subscribe to group %s: %w", group, err)
	}

	out := make(chan []byte, 256)
	go func() {
		defer close(out)
		for msg := range sub.Channel() {
			out <- []byte(msg.Payload)
		}
	}()

	cancel := func() { _ = sub.Close() }
	return out, cancel, nil
}

func (b *RedisBroker) Close() error {
	return b.client.Close()
}
