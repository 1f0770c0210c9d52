// Package presence mirrors live room membership into Redis so that other
// services can see who is connected where.
package presence

import (
	"context"
	"fmt"
	"time"

	"github.com/dkeye/Signal/internal/config"
	"github.com/dkeye/Signal/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

type RedisPresence struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisPresence connects and pings the server.
func NewRedisPresence(ctx context.Context, cfg config.RedisConfig) (*RedisPresence, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Info().Str("module", "presence").Str("addr", cfg.Addr).Msg("redis connection established")
	return &RedisPresence{client: client, ttl: cfg.TTL}, nil
}

// RoomKey is the set holding the connection ids of a room.
func RoomKey(room domain.RoomID) string {
	return "room:" + string(room) + ":peers"
}

func (p *RedisPresence) Joined(ctx context.Context, room domain.RoomID, conn domain.ConnID) error {
	key := RoomKey(room)
	pipe := p.client.TxPipeline()
	pipe.SAdd(ctx, key, string(conn))
	if p.ttl > 0 {
		pipe.Expire(ctx, key, p.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("presence join %s: %w", key, err)
	}
	return nil
}

// Left removes conn; Redis drops the set itself once it is empty.
func (p *RedisPresence) Left(ctx context.Context, room domain.RoomID, conn domain.ConnID) error {
	key := RoomKey(room)
	if err := p.client.SRem(ctx, key, string(conn)).Err(); err != nil {
		return fmt.Errorf("presence leave %s: %w", key, err)
	}
	return nil
}

func (p *RedisPresence) members(ctx context.Context, room domain.RoomID) ([]string, error) {
	return p.client.SMembers(ctx, RoomKey(room)).Result()
}

func (p *RedisPresence) Close() error {
	return p.client.Close()
}
