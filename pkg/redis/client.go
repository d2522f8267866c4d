package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/modabuy/storefront-backend/pkg/config"
)

// Namespace prefixes every key this service writes.
const Namespace = "sf"

// ErrNotFound is returned when a key does not exist.
var ErrNotFound = errors.New("redis: key not found")

// cmdable is the slice of the go-redis API the client uses. Tests substitute
// a fake.
type cmdable interface {
	Ping(ctx context.Context) *goredis.StatusCmd
	SetNX(ctx context.Context, key string, value any, expiration time.Duration) *goredis.BoolCmd
	Get(ctx context.Context, key string) *goredis.StringCmd
	Del(ctx context.Context, keys ...string) *goredis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *goredis.BoolCmd
}

type Client struct {
	rdb     cmdable
	closer  func() error
	timeout time.Duration
}

func NewClient(cfg config.RedisConfig) *Client {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &Client{rdb: rdb, closer: rdb.Close, timeout: cfg.Timeout}
}

// NewClientWithCmdable wraps an arbitrary command executor. Test hook.
func NewClientWithCmdable(rdb cmdable, timeout time.Duration) *Client {
	return &Client{rdb: rdb, closer: func() error { return nil }, timeout: timeout}
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.timeout)
}

func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	return c.rdb.Ping(ctx).Err()
}

// SetNX sets key only when absent. Returns false when the key already exists.
func (c *Client) SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	return c.rdb.SetNX(ctx, key, value, ttl).Result()
}

func (c *Client) Get(ctx context.Context, key string) (string, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	val, err := c.rdb.Get(ctx, key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", ErrNotFound
	}
	return val, err
}

func (c *Client) Del(ctx context.Context, keys ...string) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	return c.rdb.Del(ctx, keys...).Err()
}

func (c *Client) Expire(ctx context.Context, key string, ttl time.Duration) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	return c.rdb.Expire(ctx, key, ttl).Err()
}

func (c *Client) Close() error { return c.closer() }

// SessionKey builds the key holding a session token's user id.
func (c *Client) SessionKey(token string) string {
	return buildKey("session", token)
}

func buildKey(parts ...string) string {
	return fmt.Sprintf("%s:%s", Namespace, strings.Join(parts, ":"))
}
