package store

import (
	"context"
	"sync"

	"github.com/xxxsen/mauth/internal/model"
)

type memoryStore struct {
	mu    sync.Mutex
	users []model.User
}

func init() {
	Register("memory", func(args interface{}) (Store, error) {
		return NewMemory(), nil
	})
}

func NewMemory(seed ...model.User) Store {
	return &memoryStore{users: cloneUsers(seed)}
}

func (s *memoryStore) LoadAll(ctx context.Context) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneUsers(s.users), nil
}

func (s *memoryStore) SaveAll(ctx context.Context, users []model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = cloneUsers(users)
	return nil
}

func cloneUsers(users []model.User) []model.User {
	out := make([]model.User, len(users))
	copy(out, users)
	return out
}
