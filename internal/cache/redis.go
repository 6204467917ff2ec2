package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Domenick1991/airops/config"
	"github.com/Domenick1991/airops/internal/database"
	"github.com/redis/go-redis/v9"
)

const reportPrefix = "report:"

// RedisCache stores report results under a namespace naming the database
// they were read from. Caches with different namespaces never see each
// other's entries.
type RedisCache struct {
	client     redis.UniversalClient
	namespace  string
	reportsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, namespace string, reportsTTL time.Duration) *RedisCache {
	return NewRedisCacheWithClient(
		redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		namespace,
		reportsTTL,
	)
}

// NewRedisCacheWithClient wraps an existing client.
func NewRedisCacheWithClient(client redis.UniversalClient, namespace string, reportsTTL time.Duration) *RedisCache {
	return &RedisCache{client: client, namespace: namespace, reportsTTL: reportsTTL}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// GetReport returns the cached result, or nil on a miss.
func (c *RedisCache) GetReport(ctx context.Context, name string, args []string) (*database.Result, error) {
	data, err := c.client.Get(ctx, ReportKey(c.namespace, name, args)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var res database.Result
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *RedisCache) SetReport(ctx context.Context, name string, args []string, res *database.Result) error {
	payload, err := json.Marshal(res)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, ReportKey(c.namespace, name, args), payload, c.reportsTTL).Err()
}

// InvalidateReports drops every cached report of this namespace. Called
// after each committed mutation.
func (c *RedisCache) InvalidateReports(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, globEscaper.Replace(namespacePrefix(c.namespace))+"*", 100).Result()
		if err != nil {
			return fmt.Errorf("failed to scan report keys: %w", err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("failed to delete report keys: %w", err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// ReportKey derives a stable key from the namespace, the report name and its
// bound arguments.
func ReportKey(namespace, name string, args []string) string {
	h := sha1.Sum([]byte(strings.Join(args, "\x00")))
	return namespacePrefix(namespace) + name + ":" + hex.EncodeToString(h[:])
}

func namespacePrefix(namespace string) string {
	return reportPrefix + namespace + ":"
}

// globEscaper quotes the characters SCAN MATCH treats as wildcards.
var globEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)
