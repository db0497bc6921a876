package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/finnb0y/virtualchips/internal/state"
)

const snapshotKeyPrefix = "tournament:"

// RedisConfig holds configuration for the Redis snapshot store.
type RedisConfig struct {
	Client       *redis.Client
	TournamentID string
}

// redisStore keeps the whole aggregate as one JSON document per tournament.
// A snapshot is small (one tournament's players and tables) and is written
// once per committed action, so a single key is plenty.
type redisStore struct {
	client *redis.Client
	key    string
}

// NewRedis creates a Redis-backed snapshot store.
func NewRedis(cfg *RedisConfig) (Store, error) {
	if cfg == nil || cfg.Client == nil {
		return nil, errors.New("redis client cannot be nil")
	}
	if cfg.TournamentID == "" {
		return nil, errors.New("tournament id cannot be empty")
	}
	if err := cfg.Client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return &redisStore{
		client: cfg.Client,
		key:    snapshotKeyPrefix + cfg.TournamentID,
	}, nil
}

func (r *redisStore) Save(ctx context.Context, s *state.State) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

func (r *redisStore) Load(ctx context.Context) (*state.State, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	var s state.State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	normalize(&s)
	return &s, nil
}

// normalize restores the invariants JSON round-tripping can drop.
func normalize(s *state.State) {
	if s.Players == nil {
		s.Players = make(map[string]*state.Player)
	}
	if s.Tables == nil {
		s.Tables = make(map[string]*state.TableState)
	}
	for _, t := range s.Tables {
		if t.PlayersActed == nil {
			t.PlayersActed = make(map[string]bool)
		}
	}
}
