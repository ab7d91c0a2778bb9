package session

import (
	"context"
	"encoding/json"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore keeps sessions in process memory with a TTL, for deployments
// without Redis. State is stored as encoded JSON so each Get hands back an
// independent copy, same as the Redis backend.
type MemoryStore struct {
	cache *gocache.Cache
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{cache: gocache.New(ttl, 2*ttl)}
}

func (s *MemoryStore) Get(_ context.Context, token string) (*State, error) {
	v, ok := s.cache.Get(token)
	if !ok {
		return nil, nil
	}
	var st State
	if err := json.Unmarshal(v.([]byte), &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *MemoryStore) Put(_ context.Context, token string, state *State) error {
	b, err := json.Marshal(state)
	if err != nil {
		return err
	}
	s.cache.Set(token, b, gocache.DefaultExpiration)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.cache.Delete(token)
	return nil
}
