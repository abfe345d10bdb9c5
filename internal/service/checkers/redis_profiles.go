package checkers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/park285/justcheckers-go/internal/domain"
)

const (
	profileKeyPrefix   = "checkers:profile:"
	profileMaxAttempts = 5
)

// RedisProfileRepository stores one JSON document per player. Updates run
// under WATCH so concurrent results for the same player are not lost.
type RedisProfileRepository struct {
	rdb *redis.Client
}

func NewRedisProfileRepository(rdb *redis.Client) *RedisProfileRepository {
	return &RedisProfileRepository{rdb: rdb}
}

// DialRedisProfiles connects to a redis:// URL and pings it.
func DialRedisProfiles(ctx context.Context, redisURL string) (*RedisProfileRepository, error) {
	if strings.TrimSpace(redisURL) == "" {
		return nil, fmt.Errorf("redis url is empty")
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisProfileRepository{rdb: rdb}, nil
}

func (r *RedisProfileRepository) Close() error {
	if r == nil || r.rdb == nil {
		return nil
	}
	return r.rdb.Close()
}

func profileKey(name string) string { return profileKeyPrefix + name }

func (r *RedisProfileRepository) GetProfile(ctx context.Context, name string) (*domain.Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	raw, err := r.rdb.Get(ctx, profileKey(name)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile %s: %w", name, err)
	}
	var p domain.Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode profile %s: %w", name, err)
	}
	return &p, nil
}

func (r *RedisProfileRepository) UpdateProfile(ctx context.Context, name string, fn func(*domain.Profile)) (*domain.Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	key := profileKey(name)

	var out domain.Profile
	txf := func(tx *redis.Tx) error {
		p := domain.Profile{Name: name}
		raw, err := tx.Get(ctx, key).Bytes()
		switch {
		case err == redis.Nil:
		case err != nil:
			return err
		default:
			if err := json.Unmarshal(raw, &p); err != nil {
				return fmt.Errorf("decode profile %s: %w", name, err)
			}
		}
		if fn != nil {
			fn(&p)
		}
		p.Name = name
		encoded, err := json.Marshal(&p)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, encoded, 0)
			return nil
		})
		if err == nil {
			out = p
		}
		return err
	}

	for attempt := 0; attempt < profileMaxAttempts; attempt++ {
		err := r.rdb.Watch(ctx, txf, key)
		if err == nil {
			return &out, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			// 동시 갱신 감지: 다시 읽고 재시도
			continue
		}
		return nil, fmt.Errorf("update profile %s: %w", name, err)
	}
	return nil, fmt.Errorf("update profile %s: %w", name, redis.TxFailedErr)
}
