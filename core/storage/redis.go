package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRedisClient returns a cluster client when cfg.Cluster is set and several
// addresses are given, a single-node client otherwise.
func NewRedisClient(cfg RedisConfig) (redis.UniversalClient, error) {
	if len(cfg.Addrs) == 0 {
		return nil, errors.New("redis: no address configured")
	}
	if cfg.Cluster && len(cfg.Addrs) > 1 {
		return redis.NewClusterClient(&redis.ClusterOptions{
			Addrs:    cfg.Addrs,
			Password: cfg.Password,
		}), nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addrs[0],
		Password: cfg.Password,
		DB:       cfg.DB,
	}), nil
}

// Redis is a medium storing values in Redis. Writes are announced on a pub/sub
// channel so that other instances sharing the keys are notified.
type Redis struct {
	client  redis.UniversalClient
	prefix  string
	channel string
	origin  string
	logger  *zap.Logger
}

// NewRedis returns a Redis medium. Keys are stored as "<prefix>:<key>".
func NewRedis(client redis.UniversalClient, prefix, channel string, logger *zap.Logger) *Redis {
	return &Redis{
		client:  client,
		prefix:  prefix,
		channel: channel,
		origin:  uuid.NewString(),
		logger:  logger,
	}
}

func (r *Redis) key(key string) string {
	return r.prefix + ":" + key
}

func (r *Redis) GetItem(ctx context.Context, key string) (string, error) {
	v, err := r.client.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %q: %w", key, err)
	}
	return v, nil
}

func (r *Redis) SetItem(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	r.publish(ctx, Message{Kind: MessageSet, Key: key, Value: value, Origin: r.origin})
	return nil
}

func (r *Redis) RemoveItem(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("failed to remove %q: %w", key, err)
	}
	r.publish(ctx, Message{Kind: MessageRemove, Key: key, Origin: r.origin})
	return nil
}

// publish failures are logged only; the value itself was written.
func (r *Redis) publish(ctx context.Context, msg Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		r.logger.Error("Failed to encode storage message", zap.Error(err))
		return
	}
	if err := r.client.Publish(ctx, r.channel, payload).Err(); err != nil {
		r.logger.Warn("Failed to publish storage message", zap.String("key", msg.Key), zap.Error(err))
	}
}

func (r *Redis) Subscribe(key string, fn func(Message)) func() {
	ctx, cancel := context.WithCancel(context.Background())
	pubsub := r.client.Subscribe(ctx, r.channel)

	go func() {
		defer pubsub.Close()
		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case m, ok := <-ch:
				if !ok {
					return
				}
				var msg Message
				if err := json.Unmarshal([]byte(m.Payload), &msg); err != nil {
					r.logger.Warn("Dropping malformed storage message", zap.Error(err))
					continue
				}
				if msg.Key != key || msg.Origin == r.origin {
					continue
				}
				fn(msg)
			}
		}
	}()

	return cancel
}
