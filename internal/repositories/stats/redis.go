package stats

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-character-api/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-character-api/internal/errors"
	redisclient "github.com/KirkDiggler/rpg-character-api/internal/redis"
)

const (
	statsKeyPrefix = "stats:"

	// DefaultTTL bounds how long a cached view can outlive a missed
	// invalidation
	DefaultTTL = 10 * time.Minute

	errCharacterIDEmpty = "character ID cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
	ttl    time.Duration
}

// RedisConfig contains configuration for the Redis stats cache
type RedisConfig struct {
	Client redisclient.Client
	TTL    time.Duration
}

// Validate validates the RedisConfig
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	if cfg.TTL < 0 {
		return errors.InvalidArgument("ttl cannot be negative")
	}
	return nil
}

// NewRedis creates a Redis-backed stats cache
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}

	return &redisRepository{client: cfg.Client, ttl: ttl}, nil
}

// statsKey shares the character's hash tag so both live on one slot
func statsKey(characterID string) string {
	return statsKeyPrefix + "{" + characterID + "}"
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	raw, err := r.client.Get(ctx, statsKey(input.CharacterID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("no cached stats for character %s", input.CharacterID)
		}
		return nil, errors.Wrapf(err, "failed to get cached stats")
	}

	var s dnd5e.Stats
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal cached stats")
	}

	return &GetOutput{Stats: &s}, nil
}

func (r *redisRepository) Put(ctx context.Context, input PutInput) (*PutOutput, error) {
	if input.Stats == nil {
		return nil, errors.InvalidArgument("stats cannot be nil")
	}
	if input.Stats.CharacterID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	data, err := json.Marshal(input.Stats)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal stats")
	}

	if err := r.client.Set(ctx, statsKey(input.Stats.CharacterID), data, r.ttl).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to cache stats")
	}

	return &PutOutput{}, nil
}

func (r *redisRepository) Invalidate(ctx context.Context, input InvalidateInput) (*InvalidateOutput, error) {
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	if err := r.client.Del(ctx, statsKey(input.CharacterID)).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to invalidate stats")
	}

	return &InvalidateOutput{}, nil
}
