// Package service is the concurrency envelope (C6): it owns the mutable
// processor state, a monotonic transaction id counter, and the
// reader/writer lock that guards concurrent HTTP requests.
package service

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/wizardbeardstudio/centralbank/internal/domain"
	"github.com/wizardbeardstudio/centralbank/internal/engine"
	"github.com/wizardbeardstudio/centralbank/internal/ledger"
	"github.com/wizardbeardstudio/centralbank/internal/platform/clock"
)

// Envelope serializes concurrent transaction requests over one shared
// engine.State: pure queries take the read lock, mutating actions take
// the write lock, classified by action tag alone.
type Envelope struct {
	mu        sync.RWMutex
	state     engine.State
	processor *ledger.Processor
	clock     clock.Clock
	nextID    uint64
}

// NewEnvelope builds an envelope seeded with state and a counter
// initialized to lastID (the highest TransactionID observed during ledger
// replay, or 0 for an empty ledger), so the first stamped transaction gets
// lastID+1.
func NewEnvelope(state engine.State, processor *ledger.Processor, clk clock.Clock, lastID domain.TransactionID) *Envelope {
	return &Envelope{state: state, processor: processor, clock: clk, nextID: uint64(lastID)}
}

func (e *Envelope) stamp(req domain.TransactionRequest) domain.Transaction {
	id := domain.TransactionID(atomic.AddUint64(&e.nextID, 1))
	return domain.Stamp(req, id, e.clock.Now())
}

// Untrusted is the external HTTP entry point: it rejects a request with no
// access token as Unauthorized before any lock is taken.
func (e *Envelope) Untrusted(ctx context.Context, req domain.TransactionRequest) (domain.TransactionResult, error) {
	if req.AccessToken == nil {
		return nil, domain.ErrUnauthorized
	}
	return e.apply(ctx, req)
}

// Trusted is the internal entry point (bootstrap), which skips the
// token-presence gate.
func (e *Envelope) Trusted(ctx context.Context, req domain.TransactionRequest) (domain.TransactionResult, error) {
	return e.apply(ctx, req)
}

func (e *Envelope) apply(ctx context.Context, req domain.TransactionRequest) (domain.TransactionResult, error) {
	tx := e.stamp(req)

	if domain.IsPureQuery(tx.Action) {
		e.mu.RLock()
		defer e.mu.RUnlock()
		_, result, err := e.processor.Apply(ctx, tx, e.state)
		return result, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	newState, result, err := e.processor.Apply(ctx, tx, e.state)
	if err != nil {
		return nil, err
	}
	e.state = newState
	return result, nil
}
