package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/chocokroko/chocokroko-backend/pkg/config"
	"github.com/chocokroko/chocokroko-backend/pkg/redis"
)

// ErrSessionNotFound is returned when a session id has expired or never
// existed.
var ErrSessionNotFound = errors.New("wizard session not found")

// Store persists wizard sessions and the short-lived print passes
// issued after a successful submission.
type Store interface {
	Save(ctx context.Context, state *State) error
	Load(ctx context.Context, sessionID string) (*State, error)
	Delete(ctx context.Context, sessionID string) error
	SavePrintPass(ctx context.Context, orderID string) error
	HasPrintPass(ctx context.Context, orderID string) (bool, error)
}

type redisStore struct {
	client *redis.Client
	cfg    config.WizardConfig
}

// NewRedisStore builds the Redis-backed session store.
func NewRedisStore(client *redis.Client, cfg config.WizardConfig) (Store, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	return &redisStore{client: client, cfg: cfg}, nil
}

func (s *redisStore) Save(ctx context.Context, state *State) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encoding wizard session: %w", err)
	}
	return s.client.Set(ctx, s.client.WizardSessionKey(state.SessionID), payload, s.cfg.SessionTTL)
}

func (s *redisStore) Load(ctx context.Context, sessionID string) (*State, error) {
	raw, err := s.client.Get(ctx, s.client.WizardSessionKey(sessionID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	var state State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, fmt.Errorf("decoding wizard session: %w", err)
	}
	return &state, nil
}

func (s *redisStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, s.client.WizardSessionKey(sessionID))
}

func (s *redisStore) SavePrintPass(ctx context.Context, orderID string) error {
	return s.client.Set(ctx, s.client.PrintKey(orderID), "1", s.cfg.PrintTTL)
}

func (s *redisStore) HasPrintPass(ctx context.Context, orderID string) (bool, error) {
	_, err := s.client.Get(ctx, s.client.PrintKey(orderID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
