package character

import (
	"context"
	"encoding/json"
	"log/slog"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-character-api/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-character-api/internal/errors"
	"github.com/KirkDiggler/rpg-character-api/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/rpg-character-api/internal/redis"
)

const (
	characterKeyPrefix = "character:"
	playerIndexPrefix  = "character:player:"

	defaultMaxRetries = 5

	// Error messages
	errCharacterNil     = "character cannot be nil"
	errCharacterIDEmpty = "character ID cannot be empty"
	errPlayerIDEmpty    = "player ID cannot be empty"
	errMutateNil        = "mutate function cannot be nil"
)

type redisRepository struct {
	client     redisclient.Client
	clock      clock.Clock
	maxRetries int
}

// RedisConfig contains configuration for the Redis character repository.
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock
	// MaxRetries bounds optimistic-lock retries in Update. Defaults to 5.
	MaxRetries int
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	if cfg.MaxRetries < 0 {
		return errors.InvalidArgument("max retries cannot be negative")
	}
	return nil
}

// NewRedis creates a new Redis-backed character repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	retries := cfg.MaxRetries
	if retries == 0 {
		retries = defaultMaxRetries
	}

	return &redisRepository{
		client:     cfg.Client,
		clock:      c,
		maxRetries: retries,
	}, nil
}

// characterKey hash-tags the id so the document and WATCH land on one slot
func characterKey(id string) string {
	return characterKeyPrefix + "{" + id + "}"
}

func playerKey(playerID string) string {
	return playerIndexPrefix + playerID
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Character == nil {
		return nil, errors.InvalidArgument(errCharacterNil)
	}
	if input.Character.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	now := r.clock.Now().Unix()
	if input.Character.CreatedAt == 0 {
		input.Character.CreatedAt = now
	}
	input.Character.UpdatedAt = now
	input.Character.Version = 1

	data, err := json.Marshal(input.Character)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal character")
	}

	key := characterKey(input.Character.ID)

	// SETNX keeps create-if-absent atomic
	created, err := r.client.SetNX(ctx, key, data, 0).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create character")
	}
	if !created {
		return nil, errors.AlreadyExistsf("character with ID %s already exists", input.Character.ID)
	}

	if input.Character.PlayerID != "" {
		if err := r.client.SAdd(ctx, playerKey(input.Character.PlayerID), input.Character.ID).Err(); err != nil {
			return nil, errors.Wrapf(err, "failed to index character")
		}
	}

	return &CreateOutput{Character: input.Character}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	result, err := r.client.Get(ctx, characterKey(input.ID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("character with ID %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get character")
	}

	char, err := decode(result)
	if err != nil {
		return nil, err
	}

	return &GetOutput{Character: char}, nil
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}
	if input.Mutate == nil {
		return nil, errors.InvalidArgument(errMutateNil)
	}

	key := characterKey(input.ID)
	var updated *dnd5e.Character
	var mutateErr error

	txf := func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if err == redis.Nil {
				return errors.NotFoundf("character with ID %s not found", input.ID)
			}
			return errors.Wrapf(err, "failed to get character")
		}

		char, err := decode(raw)
		if err != nil {
			return err
		}
		previousPlayer := char.PlayerID

		if err := input.Mutate(char); err != nil {
			mutateErr = err
			return err
		}
		if char.ID != input.ID {
			return errors.InvalidArgument("character ID cannot change")
		}
		char.UpdatedAt = r.clock.Now().Unix()
		char.Version++

		data, err := json.Marshal(char)
		if err != nil {
			return errors.Wrapf(err, "failed to marshal character")
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			if previousPlayer != char.PlayerID {
				if previousPlayer != "" {
					pipe.SRem(ctx, playerKey(previousPlayer), char.ID)
				}
				if char.PlayerID != "" {
					pipe.SAdd(ctx, playerKey(char.PlayerID), char.ID)
				}
			}
			return nil
		})
		if err != nil {
			return err
		}

		updated = char
		return nil
	}

	for attempt := 0; attempt < r.maxRetries; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return &UpdateOutput{Character: updated}, nil
		}
		if mutateErr != nil {
			return nil, mutateErr
		}
		if err != redis.TxFailedErr {
			var appErr *errors.Error
			if errors.As(err, &appErr) {
				return nil, err
			}
			return nil, errors.Wrapf(err, "failed to update character")
		}

		slog.DebugContext(ctx, "character changed during update, retrying",
			"character_id", input.ID,
			"attempt", attempt+1)
	}

	aborted := errors.Abortedf("character %s was modified concurrently", input.ID)
	aborted.Reason = errors.ReasonConcurrentModification
	return nil, aborted
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	getOutput, err := r.Get(ctx, GetInput(input))
	if err != nil {
		return nil, err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, characterKey(input.ID))
	if getOutput.Character.PlayerID != "" {
		pipe.SRem(ctx, playerKey(getOutput.Character.PlayerID), input.ID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete character")
	}

	return &DeleteOutput{}, nil
}

func (r *redisRepository) ListByPlayerID(
	ctx context.Context,
	input ListByPlayerIDInput,
) (*ListByPlayerIDOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	indexKey := playerKey(input.PlayerID)
	characterIDs, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get characters from index %s", indexKey)
	}

	characters := make([]*dnd5e.Character, 0, len(characterIDs))
	for _, id := range characterIDs {
		getOutput, err := r.Get(ctx, GetInput{ID: id})
		if err != nil {
			// Stale index entries are cleaned up as they are found
			if errors.IsNotFound(err) {
				slog.WarnContext(ctx, "character not found, cleaning up index",
					"character_id", id,
					"index_key", indexKey)
				r.client.SRem(ctx, indexKey, id)
				continue
			}
			return nil, errors.Wrapf(err, "failed to get character %s", id)
		}
		characters = append(characters, getOutput.Character)
	}

	slog.DebugContext(ctx, "listed characters by player",
		"player_id", input.PlayerID,
		"count", len(characters))

	return &ListByPlayerIDOutput{Characters: characters}, nil
}

func decode(raw []byte) (*dnd5e.Character, error) {
	var char dnd5e.Character
	if err := json.Unmarshal(raw, &char); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal character")
	}
	if char.AbilityScores == nil {
		char.AbilityScores = map[dnd5e.Ability]int{}
	}
	return &char, nil
}
