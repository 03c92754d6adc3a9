// Package store provides the in-memory invoice collection.
package store

import (
	"context"
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/subtrack/internal/invoice/domain"
)

type MemoryStore struct {
	mu       sync.RWMutex
	invoices map[snowflake.ID]domain.Invoice
	order    []snowflake.ID
	seq      int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{invoices: make(map[snowflake.ID]domain.Invoice)}
}

// Provide satisfies the domain repository contract for fx wiring.
func Provide() domain.Repository {
	return NewMemoryStore()
}

func (s *MemoryStore) Insert(_ context.Context, invoice *domain.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.invoices[invoice.ID]; !exists {
		s.order = append(s.order, invoice.ID)
	}
	s.invoices[invoice.ID] = *invoice
	return nil
}

func (s *MemoryStore) FindByID(_ context.Context, id snowflake.ID) (*domain.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	invoice, ok := s.invoices[id]
	if !ok {
		return nil, nil
	}
	return &invoice, nil
}

func (s *MemoryStore) List(_ context.Context) ([]domain.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Invoice, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.invoices[id])
	}
	return out, nil
}

func (s *MemoryStore) NextSequence(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return s.seq, nil
}
