package reflection

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// StateStore persists the rotation state of one account.
type StateStore interface {
	Load(ctx context.Context) (State, error)
	Save(ctx context.Context, s State) error
}

// MemoryStore keeps the state in process. It is safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	state State
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(ctx context.Context) (State, error) {
	_ = ctx
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state, nil
}

func (m *MemoryStore) Save(ctx context.Context, s State) error {
	_ = ctx
	if err := s.Validate(); err != nil {
		return fmt.Errorf("save prompt state: %w", err)
	}
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
	return nil
}

// RedisStore keeps the state as JSON under Key.
type RedisStore struct {
	Client redis.Cmdable
	Key    string
}

// NewRedisStore stores the state of account under prefix+account.
func NewRedisStore(client redis.Cmdable, prefix, account string) *RedisStore {
	return &RedisStore{Client: client, Key: prefix + account}
}

// Load returns the initial state when the key does not exist.
func (r *RedisStore) Load(ctx context.Context) (State, error) {
	b, err := r.Client.Get(ctx, r.Key).Bytes()
	if err == redis.Nil {
		return Initial(), nil
	}
	if err != nil {
		return State{}, fmt.Errorf("load prompt state %q: %w", r.Key, err)
	}
	return Decode(b)
}

func (r *RedisStore) Save(ctx context.Context, s State) error {
	b, err := Encode(s)
	if err != nil {
		return err
	}
	if err := r.Client.Set(ctx, r.Key, b, 0).Err(); err != nil {
		return fmt.Errorf("save prompt state %q: %w", r.Key, err)
	}
	return nil
}

// Encode validates s and marshals it to JSON.
func Encode(s State) ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("encode prompt state: %w", err)
	}
	return json.Marshal(s)
}

// Decode parses and validates a stored state.
func Decode(b []byte) (State, error) {
	var s State
	if err := json.Unmarshal(b, &s); err != nil {
		return State{}, fmt.Errorf("decode prompt state: %w", err)
	}
	if err := s.Validate(); err != nil {
		return State{}, fmt.Errorf("decode prompt state: %w", err)
	}
	return s, nil
}
