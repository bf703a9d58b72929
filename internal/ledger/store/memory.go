package store

import (
	"context"
	"sync"

	"github.com/wizardbeardstudio/centralbank/internal/domain"
)

type memoryRecord struct {
	tx       domain.Transaction
	hashPrev string
	hashCurr string
}

// MemoryStore is a non-durable Store, used by tests; the service binary
// always opens a file or Postgres store.
type MemoryStore struct {
	mu      sync.Mutex
	records []memoryRecord
	last    string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{last: genesisHash}
}

func (s *MemoryStore) Append(_ context.Context, tx domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := domain.MarshalTransaction(tx)
	if err != nil {
		return err
	}
	if len(s.records) > 0 {
		prev := s.records[len(s.records)-1]
		prevRaw, err := domain.MarshalTransaction(prev.tx)
		if err != nil {
			return err
		}
		if computeHash(prev.hashPrev, prevRaw) != prev.hashCurr {
			return ErrCorruptChain
		}
	}

	rec := memoryRecord{tx: tx, hashPrev: s.last, hashCurr: computeHash(s.last, raw)}
	s.records = append(s.records, rec)
	s.last = rec.hashCurr
	return nil
}

func (s *MemoryStore) Scan(_ context.Context) ([]domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Transaction, len(s.records))
	prev := genesisHash
	for i, rec := range s.records {
		raw, err := domain.MarshalTransaction(rec.tx)
		if err != nil {
			return nil, err
		}
		if rec.hashPrev != prev || computeHash(prev, raw) != rec.hashCurr {
			return nil, ErrCorruptChain
		}
		prev = rec.hashCurr
		out[i] = rec.tx
	}
	return out, nil
}

func (s *MemoryStore) Close() error { return nil }
