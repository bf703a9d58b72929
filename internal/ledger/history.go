// Package ledger is the history/ledger processor (C4): it wraps the
// in-memory processor, persists applied non-query transactions to a
// store, and answers QueryHistory by scanning that store.
package ledger

import (
	"context"
	"errors"
	"sort"

	"github.com/wizardbeardstudio/centralbank/internal/domain"
	"github.com/wizardbeardstudio/centralbank/internal/engine"
	"github.com/wizardbeardstudio/centralbank/internal/ledger/store"
)

// Processor wraps engine.Processor with a durable Store.
type Processor struct {
	inner engine.Processor
	store store.Store
}

func NewProcessor(st store.Store) *Processor {
	return &Processor{inner: engine.Processor{}, store: st}
}

// Apply delegates to the inner processor first. A successful mutating
// apply is appended to the store before returning; a successful pure
// query is not. ActionNotImplemented on a QueryHistory action is answered
// here by scanning the store; any other error propagates unchanged.
func (p *Processor) Apply(ctx context.Context, tx domain.Transaction, state engine.State) (engine.State, domain.TransactionResult, error) {
	newState, result, err := p.inner.Apply(tx, state)
	if err == nil {
		if !domain.IsPureQuery(tx.Action) {
			if appendErr := p.store.Append(ctx, tx); appendErr != nil {
				return state, nil, appendErr
			}
		}
		return newState, result, nil
	}

	if errors.Is(err, domain.ErrActionNotImplemented) {
		if qh, ok := tx.Action.(domain.QueryHistoryAction); ok {
			return p.queryHistory(ctx, tx, qh, state)
		}
	}
	return state, nil, err
}

// queryHistory scans the store for transactions at or after Since where
// the caller is the acting account or the destination of a Transfer,
// ordered by performed_at descending. State is unchanged.
func (p *Processor) queryHistory(ctx context.Context, tx domain.Transaction, action domain.QueryHistoryAction, state engine.State) (engine.State, domain.TransactionResult, error) {
	all, err := p.store.Scan(ctx)
	if err != nil {
		return state, nil, err
	}

	var matched []domain.Transaction
	for _, t := range all {
		if t.PerformedAt.Before(action.Since) {
			continue
		}
		if t.Account == tx.Account {
			matched = append(matched, t)
			continue
		}
		if transfer, ok := t.Action.(domain.TransferAction); ok && transfer.Destination == tx.Account {
			matched = append(matched, t)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].PerformedAt.After(matched[j].PerformedAt)
	})
	return state, domain.HistoryResult{Transactions: matched}, nil
}
