package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"campus-event/backend/config"
)

// Client Redis 客户端封装
// 当前用于 Token 黑名单与教室空闲时段缓存
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient 创建 Redis 连接并执行 Ping 健康检查
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("Redis 连接失败: %w", err)
	}

	logger.Info("Redis 连接成功", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── Token 黑名单 ──

const blacklistPrefix = "token:blacklist:"

// BlacklistToken 将 JWT ID 加入黑名单，TTL 与 Token 剩余有效期一致
func (c *Client) BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // Token 已过期，无需加入黑名单
	}
	return c.rdb.Set(ctx, blacklistPrefix+jti, "1", ttl).Err()
}

// IsBlacklisted 检查 JWT ID 是否在黑名单中
func (c *Client) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	n, err := c.rdb.Exists(ctx, blacklistPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ── 教室空闲时段缓存 ──
//
// 缓存键按 教室ID+日期 组织，短 TTL：预订写路径不做缓存失效，
// 靠过期时间兜底，只用于高频查询的削峰

const freeSlotsPrefix = "room:freeslots:"

// GetFreeSlots 读取缓存的空闲时段；未命中时返回 (nil, false, nil)
func (c *Client) GetFreeSlots(ctx context.Context, roomID, date string) ([]string, bool, error) {
	raw, err := c.rdb.Get(ctx, freeSlotsPrefix+roomID+":"+date).Result()
	if err == goredis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var slots []string
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		return nil, false, err
	}
	return slots, true, nil
}

// SetFreeSlots 写入空闲时段缓存
func (c *Client) SetFreeSlots(ctx context.Context, roomID, date string, slots []string, ttl time.Duration) error {
	raw, err := json.Marshal(slots)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, freeSlotsPrefix+roomID+":"+date, raw, ttl).Err()
}

// Close 关闭 Redis 连接
func (c *Client) Close() error {
	return c.rdb.Close()
}
