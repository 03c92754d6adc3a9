// Package store provides the in-memory catalog collection.
package store

import (
	"context"
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/subtrack/internal/catalog/domain"
)

type MemoryStore struct {
	mu       sync.RWMutex
	services map[snowflake.ID]domain.Service
	order    []snowflake.ID
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{services: make(map[snowflake.ID]domain.Service)}
}

// Provide satisfies the domain repository contract for fx wiring.
func Provide() domain.Repository {
	return NewMemoryStore()
}

func (s *MemoryStore) Insert(_ context.Context, service *domain.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.services[service.ID]; !exists {
		s.order = append(s.order, service.ID)
	}
	s.services[service.ID] = *service
	return nil
}

func (s *MemoryStore) FindByID(_ context.Context, id snowflake.ID) (*domain.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	service, ok := s.services[id]
	if !ok {
		return nil, nil
	}
	return &service, nil
}

func (s *MemoryStore) List(_ context.Context) ([]domain.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Service, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.services[id])
	}
	return out, nil
}
