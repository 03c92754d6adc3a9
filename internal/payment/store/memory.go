// Package store provides the in-memory payment collection.
package store

import (
	"context"
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/subtrack/internal/payment/domain"
)

type MemoryStore struct {
	mu       sync.RWMutex
	payments map[snowflake.ID]domain.Payment
	order    []snowflake.ID
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{payments: make(map[snowflake.ID]domain.Payment)}
}

// Provide satisfies the domain repository contract for fx wiring.
func Provide() domain.Repository {
	return NewMemoryStore()
}

func (s *MemoryStore) Insert(_ context.Context, payment *domain.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.payments[payment.ID]; !exists {
		s.order = append(s.order, payment.ID)
	}
	s.payments[payment.ID] = *payment
	return nil
}

func (s *MemoryStore) ListByInvoice(_ context.Context, invoiceID snowflake.ID) ([]domain.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Payment, 0)
	for _, id := range s.order {
		if payment := s.payments[id]; payment.InvoiceID == invoiceID {
			out = append(out, payment)
		}
	}
	return out, nil
}

func (s *MemoryStore) List(_ context.Context) ([]domain.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Payment, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.payments[id])
	}
	return out, nil
}
