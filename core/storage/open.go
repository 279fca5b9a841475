package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps carries the connections a medium may need. Only the one matching the
// configured medium has to be set.
type Deps struct {
	DB     *gorm.DB
	Redis  RedisConfig
	Logger *zap.Logger
}

// Open builds the medium selected by cfg.Medium and prepares it for use.
// The cookie medium is request scoped and cannot be opened here.
func Open(ctx context.Context, cfg Config, deps Deps) (Storage, error) {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Medium {
	case MediumMemory, "":
		return NewMemory(), nil

	case MediumSQL:
		if deps.DB == nil {
			return nil, fmt.Errorf("storage: medium %q needs a database connection", cfg.Medium)
		}
		s := NewSQL(deps.DB)
		if err := s.Migrate(ctx); err != nil {
			return nil, err
		}
		return s, nil

	case MediumRedis:
		client, err := NewRedisClient(deps.Redis)
		if err != nil {
			return nil, err
		}
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to ping redis: %w", err)
		}
		return NewRedis(client, deps.Redis.Prefix, deps.Redis.Channel, logger), nil

	case MediumObject:
		client, err := NewClient(cfg.Object)
		if err != nil {
			return nil, err
		}
		o := NewObject(client, cfg.Object.Bucket, cfg.Object.Prefix)
		if err := o.EnsureBucket(ctx, cfg.Object.Region); err != nil {
			return nil, err
		}
		return o, nil

	case MediumCookie:
		return nil, fmt.Errorf("storage: medium %q is request scoped, use NewCookie", cfg.Medium)

	default:
		return nil, fmt.Errorf("storage: unknown medium %q", cfg.Medium)
	}
}
