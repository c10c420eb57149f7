package repository

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/smallbiznis/shiftcount/internal/product/domain"
)

type redisRepo struct {
	client redis.UniversalClient
	key    string
}

// NewRedisRepository stores the inventory under a single redis key.
func NewRedisRepository(client redis.UniversalClient, key string) domain.Repository {
	return &redisRepo{client: client, key: key}
}

func (r *redisRepo) Load(ctx context.Context) ([]domain.RawProduct, error) {
	value, err := r.client.Get(ctx, r.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return decode(value)
}

func (r *redisRepo) Save(ctx context.Context, products []domain.Product) error {
	value, err := encode(products)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key, value, 0).Err()
}
