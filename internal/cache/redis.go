package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Domenick1991/lessonbooking/config"
	"github.com/Domenick1991/lessonbooking/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client     *redis.Client
	lessonsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, lessonsTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:     redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		lessonsTTL: lessonsTTL,
	}
}

func (c *RedisCache) GetLessons(ctx context.Context) ([]domain.Lesson, error) {
	data, err := c.client.Get(ctx, lessonsKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var lessons []domain.Lesson
	if err := json.Unmarshal(data, &lessons); err != nil {
		return nil, err
	}
	return lessons, nil
}

func (c *RedisCache) SetLessons(ctx context.Context, lessons []domain.Lesson) error {
	payload, err := json.Marshal(lessons)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, lessonsKey(), payload, c.lessonsTTL).Err()
}

// InvalidateLessons drops the cached list after a lesson update or a
// successful reservation changed remaining space.
func (c *RedisCache) InvalidateLessons(ctx context.Context) error {
	return c.client.Del(ctx, lessonsKey()).Err()
}

func lessonsKey() string {
	return "cache:lessons"
}
