// Package store provides the in-memory customer collection.
package store

import (
	"context"
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/subtrack/internal/customer/domain"
)

// MemoryStore keeps customers in a mutex-guarded keyed map. An insertion-order
// index keeps listings deterministic.
type MemoryStore struct {
	mu        sync.RWMutex
	customers map[snowflake.ID]domain.Customer
	order     []snowflake.ID
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{customers: make(map[snowflake.ID]domain.Customer)}
}

// Provide satisfies the domain repository contract for fx wiring.
func Provide() domain.Repository {
	return NewMemoryStore()
}

func (s *MemoryStore) Insert(_ context.Context, customer *domain.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.customers[customer.ID]; !exists {
		s.order = append(s.order, customer.ID)
	}
	s.customers[customer.ID] = *customer
	return nil
}

func (s *MemoryStore) FindByID(_ context.Context, id snowflake.ID) (*domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	customer, ok := s.customers[id]
	if !ok {
		return nil, nil
	}
	return &customer, nil
}

func (s *MemoryStore) List(_ context.Context) ([]domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Customer, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.customers[id])
	}
	return out, nil
}
