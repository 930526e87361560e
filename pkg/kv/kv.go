// Package kv is the shared redis-backed key value store. It tracks consumer
// offsets, cached IDP tokens and config snapshots. Reads degrade to a cache
// miss when redis is unavailable; offset writes are the one place where a
// backend failure is surfaced to the caller because they gate progress.
package kv

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/go-redis/redis/v8"
)

// Key layouts are part of the persisted state contract and must not change.
const (
	offsetKeyFormat = "topic:%s-%s:offset"
	tokenKeyFormat  = "management_node_%s_access_token"
)

func OffsetKey(clientID, topic string) string {
	return fmt.Sprintf(offsetKeyFormat, clientID, topic)
}

func TokenKey(managementNodeID string) string {
	return fmt.Sprintf(tokenKeyFormat, managementNodeID)
}

type Store struct {
	cfg    Config
	client *redis.Client
	logger log.Logger
}

func NewStore(cfg Config, logger log.Logger) *Store {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Endpoint,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.Timeout,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
	})

	return &Store{
		cfg:    cfg,
		client: client,
		logger: logger,
	}
}

func (s *Store) Close() error {
	return s.client.Close()
}

// Get returns the value for key. A backend failure is logged and reported as
// a miss so that callers fall back to their source of truth.
func (s *Store) Get(ctx context.Context, key string) (string, bool) {
	val, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		level.Warn(s.logger).Log("msg", "kv read failed, treating as miss", "key", key, "err", err)
		return "", false
	}
	return val, true
}

// Set writes key with the given TTL. A zero TTL falls back to the configured
// default TTL (which may itself be zero, meaning no expiry).
func (s *Store) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl == 0 {
		ttl = s.cfg.TTL
	}
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("kv set %s: %w", key, err)
	}
	return nil
}

// GetOffset returns the next offset to consume for (clientID, topic), or
// ok=false when none has been recorded yet.
func (s *Store) GetOffset(ctx context.Context, clientID, topic string) (int64, bool) {
	val, ok := s.Get(ctx, OffsetKey(clientID, topic))
	if !ok {
		return 0, false
	}
	offset, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		level.Warn(s.logger).Log("msg", "malformed offset in kv, treating as miss", "key", OffsetKey(clientID, topic), "val", val)
		return 0, false
	}
	return offset, true
}

// SetOffset persists the next offset to consume. Unlike other writes this is
// not best effort: a failure here means progress tracking is broken and the
// caller must know.
func (s *Store) SetOffset(ctx context.Context, clientID, topic string, offset int64) error {
	key := OffsetKey(clientID, topic)
	if err := s.client.Set(ctx, key, strconv.FormatInt(offset, 10), 0).Err(); err != nil {
		level.Error(s.logger).Log("msg", "offset write failed", "key", key, "offset", offset, "err", err)
		return fmt.Errorf("offset write %s: %w", key, err)
	}
	return nil
}

// GetToken returns the cached access token for a management node.
func (s *Store) GetToken(ctx context.Context, managementNodeID string) (string, bool) {
	return s.Get(ctx, TokenKey(managementNodeID))
}

// SetToken caches an access token with TTL equal to the token's remaining
// lifetime.
func (s *Store) SetToken(ctx context.Context, managementNodeID, token string, expiresIn time.Duration) error {
	return s.Set(ctx, TokenKey(managementNodeID), token, expiresIn)
}
