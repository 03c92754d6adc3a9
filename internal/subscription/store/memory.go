// Package store provides the in-memory subscription collection.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/subtrack/internal/subscription/domain"
)

// MemoryStore keeps subscriptions in a mutex-guarded keyed map. The status
// transition runs under the same lock as the status check, so concurrent
// cancels of one id resolve to exactly one transition.
type MemoryStore struct {
	mu            sync.RWMutex
	subscriptions map[snowflake.ID]domain.Subscription
	order         []snowflake.ID
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{subscriptions: make(map[snowflake.ID]domain.Subscription)}
}

// Provide satisfies the domain repository contract for fx wiring.
func Provide() domain.Repository {
	return NewMemoryStore()
}

func (s *MemoryStore) Insert(_ context.Context, subscription *domain.Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.subscriptions[subscription.ID]; !exists {
		s.order = append(s.order, subscription.ID)
	}
	s.subscriptions[subscription.ID] = *subscription
	return nil
}

func (s *MemoryStore) FindByID(_ context.Context, id snowflake.ID) (*domain.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	subscription, ok := s.subscriptions[id]
	if !ok {
		return nil, nil
	}
	return &subscription, nil
}

// List returns an independent snapshot in insertion order.
func (s *MemoryStore) List(_ context.Context) ([]domain.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Subscription, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.subscriptions[id])
	}
	return out, nil
}

func (s *MemoryStore) Cancel(_ context.Context, id snowflake.ID, at time.Time) (*domain.Subscription, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	subscription, ok := s.subscriptions[id]
	if !ok {
		return nil, false, nil
	}
	if subscription.Status != domain.StatusActive {
		return &subscription, false, nil
	}

	canceledAt := at.UTC()
	subscription.Status = domain.StatusCanceled
	subscription.CanceledAt = &canceledAt
	s.subscriptions[id] = subscription
	return &subscription, true, nil
}
