package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/onurcolak/emergency-alert-service/environments"
	"github.com/onurcolak/emergency-alert-service/internal/domain"
	"github.com/onurcolak/emergency-alert-service/pkg/logger"
)

type Client struct {
	client valkey.Client
	ttl    time.Duration
}

const (
	broadcastKeyPrefix = "broadcast:"
	defaultResultTTL   = 24 * time.Hour
)

func NewRedisClient(cfg environments.RedisConfig, ttl time.Duration) (*Client, error) {
	if ttl <= 0 {
		ttl = defaultResultTTL
	}

	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)},
		Password:    cfg.Password,
		SelectDB:    cfg.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Valkey client: %w", err)
	}

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()

		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Infof("Connected to Redis (via Valkey client)")

	return &Client{client: client, ttl: ttl}, nil
}

func (c *Client) CacheBroadcast(ctx context.Context, result *domain.BroadcastResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal broadcast result: %w", err)
	}

	key := broadcastKeyPrefix + result.ID

	err = c.client.Do(ctx, c.client.B().Set().Key(key).Value(string(data)).Ex(c.ttl).Build()).Error()
	if err != nil {
		return fmt.Errorf("failed to cache broadcast: %w", err)
	}

	logger.Debugf("Cached broadcast %s (%d outcomes) in Redis", result.ID, len(result.Outcomes))

	return nil
}

// GetBroadcast returns the cached result, or domain.ErrNotFound when the key
// is missing or expired.
func (c *Client) GetBroadcast(ctx context.Context, id string) (*domain.BroadcastResult, error) {
	result := c.client.Do(ctx, c.client.B().Get().Key(broadcastKeyPrefix+id).Build())
	if err := result.Error(); err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, fmt.Errorf("broadcast %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get cached broadcast: %w", err)
	}

	data, err := result.ToString()
	if err != nil {
		return nil, fmt.Errorf("failed to read cached broadcast: %w", err)
	}

	var broadcast domain.BroadcastResult
	if err := json.Unmarshal([]byte(data), &broadcast); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached broadcast: %w", err)
	}

	return &broadcast, nil
}

func (c *Client) Close() error {
	c.client.Close()
	return nil
}

func (c *Client) Ping(ctx context.Context) error {
	return c.client.Do(ctx, c.client.B().Ping().Build()).Error()
}
