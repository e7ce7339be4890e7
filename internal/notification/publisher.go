package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Publisher pushes a stored notification to the user's realtime channel.
type Publisher interface {
	Publish(ctx context.Context, n *Notification) error
	Close() error
}

type redisPublisher struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisPublisher(ctx context.Context, addr, prefix string) (Publisher, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, fmt.Errorf("missing redis address")
	}
	if prefix == "" {
		prefix = "notifications"
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &redisPublisher{rdb: rdb, prefix: prefix}, nil
}

func (p *redisPublisher) Publish(ctx context.Context, n *Notification) error {
	raw, err := json.Marshal(n)
	if err != nil {
		return err
	}
	return p.rdb.Publish(ctx, Channel(p.prefix, n), raw).Err()
}

func (p *redisPublisher) Close() error {
	return p.rdb.Close()
}

// Channel is the pub/sub channel a client subscribes to for n's recipient.
func Channel(prefix string, n *Notification) string {
	return prefix + ":" + n.UserID.String()
}

type noopPublisher struct{}

func NewNoopPublisher() Publisher { return noopPublisher{} }

func (noopPublisher) Publish(context.Context, *Notification) error { return nil }
func (noopPublisher) Close() error                                 { return nil }
