package notify

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/teamspace/backend/internal/config"
	"github.com/teamspace/backend/pkg/logger"
)

// RedisNotifier fans row-level change events out over Redis pub/sub, one
// channel per table under a shared prefix. Delivery is fire-and-forget: a
// dropped event only delays convergence until the next one.
type RedisNotifier struct {
	client *redis.Client
	prefix string
}

func NewRedisNotifier(cfg config.RedisConfig) *RedisNotifier {
	return &RedisNotifier{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
		}),
		prefix: cfg.ChannelPrefix,
	}
}

// NewRedisNotifierWithClient is used by tests that run against miniredis.
func NewRedisNotifierWithClient(client *redis.Client, prefix string) *RedisNotifier {
	return &RedisNotifier{client: client, prefix: prefix}
}

func (n *RedisNotifier) channel(table string) string {
	return n.prefix + ":" + table
}

func (n *RedisNotifier) Publish(table string, op Op) {
	payload, err := json.Marshal(Event{Table: table, Op: op})
	if err != nil {
		return
	}
	if err := n.client.Publish(context.Background(), n.channel(table), payload).Err(); err != nil {
		logger.Error("notify_publish_failed", err, map[string]interface{}{
			"table": table,
			"op":    string(op),
		})
	}
}

func (n *RedisNotifier) Subscribe() (<-chan Event, func()) {
	pubsub := n.client.PSubscribe(context.Background(), n.prefix+":*")
	events := make(chan Event, 16)

	go func() {
		defer close(events)
		for msg := range pubsub.Channel() {
			var ev Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				logger.Warn("notify_bad_payload", map[string]interface{}{
					"channel": msg.Channel,
					"payload": msg.Payload,
				})
				continue
			}
			events <- ev
		}
	}()

	return events, func() { _ = pubsub.Close() }
}

func (n *RedisNotifier) Close() error {
	return n.client.Close()
}
