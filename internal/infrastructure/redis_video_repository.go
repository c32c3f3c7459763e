package infrastructure

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

const videosKey = "videos"

type RedisVideoRepository struct {
	client *redis.Client
}

func NewRedisVideoRepository(client *redis.Client) *RedisVideoRepository {
	return &RedisVideoRepository{client: client}
}

func (r *RedisVideoRepository) Append(ctx context.Context, filename string) error {
	if err := r.client.RPush(ctx, videosKey, filename).Err(); err != nil {
		return fmt.Errorf("appending to catalog: %w", err)
	}
	return nil
}

func (r *RedisVideoRepository) List(ctx context.Context) ([]string, error) {
	names, err := r.client.LRange(ctx, videosKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return names, nil
}
