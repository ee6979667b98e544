package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/OmarAhmadIsamail/Farmer-Place/internal/services"

	"github.com/go-redis/redis/v8"
)

const cartChannel = "farmerplace:cart.updated"

// RedisNotifier broadcasts cart changes over Redis pub/sub so other
// frontends (or open sessions) can refresh their cart counter.
type RedisNotifier struct {
	client *redis.Client
}

func NewRedisNotifier(redisURL string) (*RedisNotifier, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisNotifier{client: client}, nil
}

func (n *RedisNotifier) CartUpdated(ctx context.Context, ev services.CartEvent) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return
	}
	// fire-and-forget; a missed broadcast only delays a counter refresh
	_ = n.client.Publish(ctx, cartChannel, payload).Err()
}

// Subscribe delivers cart events until ctx is cancelled.
func (n *RedisNotifier) Subscribe(ctx context.Context, fn func(services.CartEvent)) error {
	sub := n.client.Subscribe(ctx, cartChannel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var ev services.CartEvent
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				continue
			}
			fn(ev)
		}
	}
}

func (n *RedisNotifier) Close() error {
	return n.client.Close()
}
