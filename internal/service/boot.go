package service

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/wizardbeardstudio/centralbank/internal/domain"
	"github.com/wizardbeardstudio/centralbank/internal/engine"
)

// SeedRootAccount inserts @root with the Unbounded privilege and no
// tokens if it is not already present. This runs before ledger replay, so
// a replayed ledger that already mutated @root's tokens or privileges
// takes precedence.
func SeedRootAccount(state engine.State) engine.State {
	if _, exists := state.Accounts[domain.RootAccountID]; exists {
		return state
	}
	accounts := make(map[domain.AccountID]*domain.AccountData, len(state.Accounts)+1)
	for id, acc := range state.Accounts {
		accounts[id] = acc
	}
	accounts[domain.RootAccountID] = domain.NewAccountData(domain.NewScopeSet(domain.ScopeUnbounded), nil)
	return engine.State{Accounts: accounts, DefaultPrivileges: state.DefaultPrivileges}
}

// MintRootTokenIfNeeded mints and persists one Unbounded token for @root
// if it currently has none, via the trusted entry point so the token is
// appended to the ledger like any other CreateToken transaction.
func MintRootTokenIfNeeded(ctx context.Context, env *Envelope) error {
	if len(env.RootTokens()) > 0 {
		return nil
	}
	tokenID, err := domain.NewAccessTokenID()
	if err != nil {
		return fmt.Errorf("mint root token: %w", err)
	}
	_, err = env.Trusted(ctx, domain.TransactionRequest{
		Account:       domain.RootAccountID,
		Authorization: domain.SelfAuthorized{},
		Action:        domain.CreateTokenAction{TokenID: tokenID, Scopes: domain.NewScopeSet(domain.ScopeUnbounded)},
	})
	if err != nil {
		return fmt.Errorf("mint root token: %w", err)
	}
	return nil
}

// RootTokens returns @root's current tokens (empty if @root is absent,
// which should not happen after SeedRootAccount has run).
func (e *Envelope) RootTokens() map[domain.AccessTokenID]domain.ScopeSet {
	e.mu.RLock()
	defer e.mu.RUnlock()
	root, ok := e.state.Accounts[domain.RootAccountID]
	if !ok {
		return nil
	}
	return root.Tokens
}

// PrintRootTokens writes the boot-time "Root tokens:" report: one line per
// @root token of the form "- <token_id> <space-separated scopes>".
func PrintRootTokens(w io.Writer, env *Envelope) {
	tokens := env.RootTokens()
	ids := make([]string, 0, len(tokens))
	for id := range tokens {
		ids = append(ids, string(id))
	}
	sort.Strings(ids)

	fmt.Fprintln(w, "Root tokens:")
	for _, id := range ids {
		scopes := tokens[domain.AccessTokenID(id)].Slice()
		names := make([]string, len(scopes))
		for i, s := range scopes {
			names[i] = string(s)
		}
		sort.Strings(names)
		fmt.Fprintf(w, "- %s %s\n", id, strings.Join(names, " "))
	}
}
