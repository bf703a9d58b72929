package service

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/wizardbeardstudio/centralbank/internal/domain"
	"github.com/wizardbeardstudio/centralbank/internal/engine"
	"github.com/wizardbeardstudio/centralbank/internal/ledger"
	"github.com/wizardbeardstudio/centralbank/internal/ledger/store"
	"github.com/wizardbeardstudio/centralbank/internal/platform/clock"
)

func TestSeedRootAccountIsIdempotent(t *testing.T) {
	state := SeedRootAccount(engine.NewState())
	root, ok := state.Accounts[domain.RootAccountID]
	if !ok {
		t.Fatalf("expected @root to be seeded")
	}
	if !root.Privileges.Contains(domain.ScopeUnbounded) {
		t.Fatalf("expected @root to carry Unbounded privilege")
	}
	if len(root.Tokens) != 0 {
		t.Fatalf("expected @root to start with no tokens")
	}

	again := SeedRootAccount(state)
	if again.Accounts[domain.RootAccountID] != state.Accounts[domain.RootAccountID] {
		t.Fatalf("seeding an already-present @root must be a no-op")
	}
}

func TestMintRootTokenIfNeededMintsExactlyOnce(t *testing.T) {
	ctx := context.Background()
	state := SeedRootAccount(engine.NewState())
	st := store.NewMemoryStore()
	proc := ledger.NewProcessor(st)
	env := NewEnvelope(state, proc, &clock.FakeClock{At: time.Now().UTC()}, 0)

	if err := MintRootTokenIfNeeded(ctx, env); err != nil {
		t.Fatalf("mint: %v", err)
	}
	tokens := env.RootTokens()
	if len(tokens) != 1 {
		t.Fatalf("expected exactly 1 root token, got %d", len(tokens))
	}
	var scopes domain.ScopeSet
	for _, s := range tokens {
		scopes = s
	}
	if !scopes.Contains(domain.ScopeUnbounded) {
		t.Fatalf("expected root token to carry Unbounded scope")
	}

	if err := MintRootTokenIfNeeded(ctx, env); err != nil {
		t.Fatalf("second mint call: %v", err)
	}
	if len(env.RootTokens()) != 1 {
		t.Fatalf("expected mint to be a no-op once @root has a token")
	}

	recorded, err := st.Scan(ctx)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(recorded) != 1 {
		t.Fatalf("expected the mint to be persisted to the ledger exactly once, got %d records", len(recorded))
	}
}

func TestPrintRootTokensFormat(t *testing.T) {
	ctx := context.Background()
	state := SeedRootAccount(engine.NewState())
	st := store.NewMemoryStore()
	proc := ledger.NewProcessor(st)
	env := NewEnvelope(state, proc, &clock.FakeClock{At: time.Now().UTC()}, 0)

	if err := MintRootTokenIfNeeded(ctx, env); err != nil {
		t.Fatalf("mint: %v", err)
	}

	var buf bytes.Buffer
	PrintRootTokens(&buf, env)
	out := buf.String()
	if !strings.HasPrefix(out, "Root tokens:\n") {
		t.Fatalf("expected header line, got %q", out)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 token line, got %v", lines)
	}
	if !strings.HasPrefix(lines[1], "- ") || !strings.Contains(lines[1], "Unbounded") {
		t.Fatalf("expected token line with Unbounded scope, got %q", lines[1])
	}
}
