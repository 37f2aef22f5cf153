// 包 cache：数据集原始响应缓存，基于 Redis；未配置地址时不启用
package cache

import (
	"context"
	"errors"
	"time"

	"choropleth/internal/logger"

	"github.com/redis/go-redis/v9"
)

// OpenRedis：地址为空时返回 nil
func OpenRedis(addr, pass string, db int) *redis.Client {
	if addr == "" {
		return nil
	}
	logger.L().Debug("redis_env", "addr", addr, "db", db)
	return redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})
}

// Redis：按键前缀隔离的字节缓存
type Redis struct {
	rc     *redis.Client
	prefix string
}

func NewRedis(rc *redis.Client, prefix string) *Redis {
	if prefix == "" {
		prefix = "choropleth:dataset:"
	}
	return &Redis{rc: rc, prefix: prefix}
}

// Get：未命中返回 ok=false；连接错误同样视为未命中并返回 err 供调用方记录
func (c *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := c.rc.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (c *Redis) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	return c.rc.Set(ctx, c.prefix+key, val, ttl).Err()
}

// Del：键不存在不视为错误
func (c *Redis) Del(ctx context.Context, key string) error {
	return c.rc.Del(ctx, c.prefix+key).Err()
}

func (c *Redis) Ping(ctx context.Context) error { return c.rc.Ping(ctx).Err() }

func (c *Redis) Close() error { return c.rc.Close() }
