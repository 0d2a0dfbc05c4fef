// Package cache реализует побочный кэш поверх Redis.
//
// Кэш — слой ускорения, а не источник истины: записи ограничены TTL,
// любой путь кода обязан оставаться корректным при пустом кэше.
// Для выключенного кэша есть no-op реализация с тем же интерфейсом,
// поэтому вызывающий код никогда не ветвится на "включён ли кэш".
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/homefind/rental-backend/internal/config"
)

// Cache клиент побочного кэша на Redis.
type Cache struct {
	Db *redis.Client
}

// InitServer подключается к Redis и проверяет соединение.
func InitServer(ctx context.Context, cfg config.RedisConnection) (*Cache, error) {
	const op = "cache.InitServer"
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.AddressRedis,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.TimeoutRedis,
		WriteTimeout: cfg.TimeoutRedis,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Cache{Db: db}, nil
}

// Get читает значение по ключу и декодирует его в result.
// Возвращает false без ошибки при промахе.
func (c *Cache) Get(key string, result any) (bool, error) {
	const op = "cache.Get"
	val, err := c.Db.Get(context.Background(), key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if err := json.Unmarshal([]byte(val), result); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}

// Set сохраняет значение по ключу с ограничением по времени жизни.
func (c *Cache) Set(key string, value any, expiration time.Duration) error {
	jsonData, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.Db.Set(context.Background(), key, jsonData, expiration).Err()
}

// Invalidate удаляет запись по ключу.
func (c *Cache) Invalidate(key string) error {
	return c.Db.Del(context.Background(), key).Err()
}

// PushList добавляет значение в конец списка и продлевает его TTL.
func (c *Cache) PushList(key string, value any, expiration time.Duration) error {
	const op = "cache.PushList"
	jsonData, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	ctx := context.Background()
	if err := c.Db.RPush(ctx, key, jsonData).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := c.Db.Expire(ctx, key, expiration).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetList возвращает все элементы списка как JSON-строки.
// Пустой срез без ошибки означает промах.
func (c *Cache) GetList(key string) ([]string, error) {
	const op = "cache.GetList"
	vals, err := c.Db.LRange(context.Background(), key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return vals, nil
}

// TrimList обрезает список до диапазона [start, stop].
func (c *Cache) TrimList(key string, start, stop int64) error {
	return c.Db.LTrim(context.Background(), key, start, stop).Err()
}
