package ledger

import (
	"context"

	"github.com/wizardbeardstudio/centralbank/internal/domain"
	"github.com/wizardbeardstudio/centralbank/internal/engine"
	"github.com/wizardbeardstudio/centralbank/internal/ledger/store"
)

// Replay reads every transaction from st in order and folds it through a
// bare engine.Processor, silently dropping any transaction that errors
// (§4.3's "permissibly-lossy recovery path" — a conservative store only
// ever persists transactions that applied cleanly, so drops should not
// occur in practice). It also returns the highest TransactionID observed,
// so the caller can initialize its id counter.
func Replay(ctx context.Context, st store.Store, state engine.State) (engine.State, domain.TransactionID, error) {
	txs, err := st.Scan(ctx)
	if err != nil {
		return state, 0, err
	}

	inner := engine.Processor{}
	var maxID domain.TransactionID
	for _, tx := range txs {
		if tx.ID > maxID {
			maxID = tx.ID
		}
		next, _, applyErr := inner.Apply(tx, state)
		if applyErr != nil {
			continue
		}
		state = next
	}
	return state, maxID, nil
}
