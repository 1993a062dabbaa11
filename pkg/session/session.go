package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"
)

// DefaultTokenKey is the well-known key the trainer credential is stored under.
const DefaultTokenKey = "trainerToken"

const anonymousKey = "anonymous"

// Session carries the trainer credential for a single request.
type Session struct {
	Token string
}

// Authenticated reports whether a credential is present.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Key identifies the session without exposing the token.
func (s Session) Key() string {
	if s.Token == "" {
		return anonymousKey
	}
	sum := sha256.Sum256([]byte(s.Token))
	return hex.EncodeToString(sum[:8])
}

// Store persists the trainer credential. A missing credential is not an error.
type Store interface {
	Token(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// RedisStore keeps the credential under a single Redis key.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore constructs a Redis backed credential store.
func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = DefaultTokenKey
	}
	return &RedisStore{client: client, key: key}
}

// Token reads the stored credential.
func (s *RedisStore) Token(ctx context.Context) (string, error) {
	if s.client == nil {
		return "", nil
	}
	token, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("redis get %s: %w", s.key, err)
	}
	return strings.TrimSpace(token), nil
}

// SetToken persists the credential without expiry.
func (s *RedisStore) SetToken(ctx context.Context, token string) error {
	if s.client == nil {
		return errors.New("session store unavailable")
	}
	if err := s.client.Set(ctx, s.key, strings.TrimSpace(token), 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}

// Clear removes the stored credential.
func (s *RedisStore) Clear(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("redis delete %s: %w", s.key, err)
	}
	return nil
}

// StaticStore serves a credential held in memory, seeded from configuration.
// It is safe for concurrent use.
type StaticStore struct {
	mu    sync.RWMutex
	token string
}

// NewStaticStore constructs a store holding token.
func NewStaticStore(token string) *StaticStore {
	return &StaticStore{token: strings.TrimSpace(token)}
}

// Token returns the held credential.
func (s *StaticStore) Token(context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, nil
}

// SetToken replaces the held credential.
func (s *StaticStore) SetToken(_ context.Context, token string) error {
	s.mu.Lock()
	s.token = strings.TrimSpace(token)
	s.mu.Unlock()
	return nil
}

// Clear drops the held credential until the next SetToken.
func (s *StaticStore) Clear(context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
	return nil
}

// ChainStore reads from each store in order and writes to the first.
type ChainStore struct {
	stores []Store
}

// NewChainStore composes stores. Nil entries are skipped.
func NewChainStore(stores ...Store) *ChainStore {
	filtered := make([]Store, 0, len(stores))
	for _, s := range stores {
		if s != nil {
			filtered = append(filtered, s)
		}
	}
	return &ChainStore{stores: filtered}
}

// Token returns the first non-empty credential. Read failures fall through to the next store.
func (c *ChainStore) Token(ctx context.Context) (string, error) {
	var firstErr error
	for _, s := range c.stores {
		token, err := s.Token(ctx)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if token != "" {
			return token, nil
		}
	}
	return "", firstErr
}

// SetToken writes the credential to the first store.
func (c *ChainStore) SetToken(ctx context.Context, token string) error {
	if len(c.stores) == 0 {
		return errors.New("session store unavailable")
	}
	return c.stores[0].SetToken(ctx, token)
}

// Clear removes the credential from every store so a later store cannot
// keep the session signed in. All stores are attempted; failures are joined.
func (c *ChainStore) Clear(ctx context.Context) error {
	var errs []error
	for _, s := range c.stores {
		if err := s.Clear(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// FromHeader extracts a credential from an Authorization header value.
// Both "Token <value>" and "Bearer <value>" are accepted.
func FromHeader(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	switch strings.ToLower(parts[0]) {
	case "token", "bearer":
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// Resolve builds the request session: the header credential wins, then the store.
func Resolve(ctx context.Context, header string, store Store) (Session, error) {
	if token := FromHeader(header); token != "" {
		return Session{Token: token}, nil
	}
	if store == nil {
		return Session{}, nil
	}
	token, err := store.Token(ctx)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token}, nil
}
