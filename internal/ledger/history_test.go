package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/wizardbeardstudio/centralbank/internal/domain"
	"github.com/wizardbeardstudio/centralbank/internal/engine"
	"github.com/wizardbeardstudio/centralbank/internal/ledger/store"
)

func bootstrapState() engine.State {
	s := engine.NewState()
	s.Accounts["@prime-mover"] = domain.NewAccountData(domain.NewScopeSet(domain.ScopeUnbounded), nil)
	return s
}

func TestApplySkipsAppendForPureQuery(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	p := NewProcessor(st)
	s := bootstrapState()

	_, _, err := p.Apply(ctx, domain.Transaction{
		Account: "@prime-mover", Authorization: domain.SelfAuthorized{},
		Action: domain.QueryBalanceAction{},
	}, s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	recorded, err := st.Scan(ctx)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(recorded) != 0 {
		t.Fatalf("pure query must not be appended to the ledger, got %d records", len(recorded))
	}
}

func TestApplyAppendsMutatingTransaction(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	p := NewProcessor(st)
	s := bootstrapState()

	if _, _, err := p.Apply(ctx, domain.Transaction{
		ID: 1, PerformedAt: time.Now().UTC(),
		Account: "@prime-mover", Authorization: domain.SelfAuthorized{},
		Action: domain.MintAction{Amount: 5},
	}, s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	recorded, err := st.Scan(ctx)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(recorded) != 1 {
		t.Fatalf("expected 1 ledger record, got %d", len(recorded))
	}
}

func TestQueryHistoryFiltersBySenderOrRecipient(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	p := NewProcessor(st)
	s := bootstrapState()
	s.Accounts["user"] = domain.NewAccountData(domain.DefaultPrivileges(), nil)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var err error
	s, _, err = p.Apply(ctx, domain.Transaction{
		ID: 1, PerformedAt: base,
		Account: "@prime-mover", Authorization: domain.SelfAuthorized{},
		Action: domain.MintAction{Amount: 100},
	}, s)
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}
	s, _, err = p.Apply(ctx, domain.Transaction{
		ID: 2, PerformedAt: base.Add(time.Minute),
		Account: "@prime-mover", Authorization: domain.SelfAuthorized{},
		Action: domain.TransferAction{Amount: 10, Destination: "user"},
	}, s)
	if err != nil {
		t.Fatalf("Transfer: %v", err)
	}

	_, res, err := p.Apply(ctx, domain.Transaction{
		ID: 3, PerformedAt: base.Add(2 * time.Minute),
		Account: "user", Authorization: domain.SelfAuthorized{},
		Action: domain.QueryHistoryAction{Since: base},
	}, s)
	if err != nil {
		t.Fatalf("QueryHistory: %v", err)
	}
	hist, ok := res.(domain.HistoryResult)
	if !ok {
		t.Fatalf("expected HistoryResult, got %#v", res)
	}
	if len(hist.Transactions) != 1 || hist.Transactions[0].ID != 2 {
		t.Fatalf("expected only the transfer transaction, got %+v", hist.Transactions)
	}
}

func TestQueryHistoryOrdersDescending(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	p := NewProcessor(st)
	s := bootstrapState()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var err error
	for i := domain.TransactionID(1); i <= 3; i++ {
		s, _, err = p.Apply(ctx, domain.Transaction{
			ID: i, PerformedAt: base.Add(time.Duration(i) * time.Minute),
			Account: "@prime-mover", Authorization: domain.SelfAuthorized{},
			Action: domain.MintAction{Amount: 1},
		}, s)
		if err != nil {
			t.Fatalf("Mint %d: %v", i, err)
		}
	}

	_, res, err := p.Apply(ctx, domain.Transaction{
		ID: 4, PerformedAt: base.Add(10 * time.Minute),
		Account: "@prime-mover", Authorization: domain.SelfAuthorized{},
		Action: domain.QueryHistoryAction{Since: base},
	}, s)
	if err != nil {
		t.Fatalf("QueryHistory: %v", err)
	}
	hist := res.(domain.HistoryResult)
	if len(hist.Transactions) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(hist.Transactions))
	}
	for i := 0; i < len(hist.Transactions)-1; i++ {
		if hist.Transactions[i].PerformedAt.Before(hist.Transactions[i+1].PerformedAt) {
			t.Fatalf("expected descending order by performed_at")
		}
	}
}
