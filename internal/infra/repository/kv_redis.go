package repository

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/barber-booking/internal/domain/booking"
)

type KVRedisRepository struct {
	rdb *redis.Client
}

func NewKVRedisRepository(rdb *redis.Client) *KVRedisRepository {
	return &KVRedisRepository{rdb: rdb}
}

// NewRedisClient parses a redis:// URL and checks the connection.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

func (r *KVRedisRepository) Get(
	ctx context.Context,
	key string,
) ([]byte, error) {

	b, err := r.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, booking.ErrNotFound
	}
	return b, err
}

func (r *KVRedisRepository) Set(
	ctx context.Context,
	key string,
	value []byte,
	ttl time.Duration,
) error {
	return r.rdb.Set(ctx, key, value, ttl).Err()
}

func (r *KVRedisRepository) Delete(
	ctx context.Context,
	key string,
) error {
	return r.rdb.Del(ctx, key).Err()
}

// Take uses GETDEL, available from Redis 6.2.
func (r *KVRedisRepository) Take(
	ctx context.Context,
	key string,
) ([]byte, error) {

	b, err := r.rdb.GetDel(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, booking.ErrNotFound
	}
	return b, err
}

// Compile-time check
var _ booking.KeyValueStore = (*KVRedisRepository)(nil)
