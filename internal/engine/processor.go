package engine

import (
	"fmt"

	"github.com/wizardbeardstudio/centralbank/internal/authz"
	"github.com/wizardbeardstudio/centralbank/internal/domain"
)

// Processor applies one transaction at a time against a State, returning
// the (possibly unchanged) resulting state. It holds no state of its own.
type Processor struct{}

// Apply runs validate_action, authenticate, and action dispatch in that
// order, short-circuiting on the first failure. On success it returns the
// new state and a result; on failure it returns the unchanged input state
// and an error.
func (Processor) Apply(tx domain.Transaction, state State) (State, domain.TransactionResult, error) {
	if err := authz.ValidateAction(tx.Action); err != nil {
		return state, nil, err
	}
	if err := authenticate(tx, state); err != nil {
		return state, nil, err
	}
	src, ok := state.Accounts[tx.Account]
	if !ok {
		return state, nil, domain.ErrUnauthorized
	}
	return dispatch(tx, state, src)
}

// authenticate is the conjunction of the four checks in §4.2: a real proxy
// chain, an admin-privileged final authorizer when admin-authorized, the
// acting account's own scope, and (if presented) a token that admits the
// action.
func authenticate(tx domain.Transaction, state State) error {
	chain := authz.ProxyChain(tx)
	for i := 0; i < len(chain)-1; i++ {
		x, y := chain[i], chain[i+1]
		xAcc, ok := state.Accounts[x]
		if !ok {
			return domain.ErrUnauthorized
		}
		if !xAcc.HasProxyAccess(y) {
			return domain.ErrUnauthorized
		}
	}
	last := chain[len(chain)-1]
	if _, ok := state.Accounts[last]; !ok {
		return domain.ErrUnauthorized
	}

	if authz.IsAdminAuthorized(tx) {
		finalAcc := state.Accounts[authz.FinalAuthorizer(tx)]
		if !finalAcc.Privileges.Contains(domain.ScopeAdmin) && !finalAcc.Privileges.Contains(domain.ScopeUnbounded) {
			return domain.ErrUnauthorized
		}
	}

	srcAcc, ok := state.Accounts[tx.Account]
	if !ok {
		return domain.ErrUnauthorized
	}
	if !authz.InScopeAny(tx.Action, srcAcc.Privileges) {
		return domain.ErrUnauthorized
	}

	if tx.AccessToken != nil {
		finalAcc, ok := state.Accounts[authz.FinalAuthorizer(tx)]
		if !ok {
			return domain.ErrUnauthorized
		}
		scopes, ok := finalAcc.Tokens[*tx.AccessToken]
		if !ok {
			return domain.ErrUnauthorized
		}
		if !authz.InScopeAny(tx.Action, scopes) {
			return domain.ErrUnauthorized
		}
	}
	return nil
}

func dispatch(tx domain.Transaction, state State, src *domain.AccountData) (State, domain.TransactionResult, error) {
	switch a := tx.Action.(type) {
	case domain.QueryBalanceAction:
		return state, domain.BalanceResult{Amount: src.Balance}, nil

	case domain.QueryPrivilegesAction:
		return state, domain.AccessScopesResult{Scopes: src.Privileges}, nil

	case domain.QueryHistoryAction:
		// Delegated to the history processor (C4); never answered here.
		return state, nil, domain.ErrActionNotImplemented

	case domain.OpenAccountAction:
		if _, exists := state.Accounts[a.NewID]; exists {
			return state, nil, domain.ErrAccountAlreadyExists
		}
		next := state.clone()
		tokens := map[domain.AccessTokenID]domain.ScopeSet{
			a.InitialTokenID: domain.NewScopeSet(domain.ScopeUnbounded),
		}
		next.Accounts[a.NewID] = domain.NewAccountData(state.DefaultPrivileges.Clone(), tokens)
		return next, domain.AccessTokenResult{TokenID: a.InitialTokenID}, nil

	case domain.CreateTokenAction:
		if _, exists := src.Tokens[a.TokenID]; exists {
			return state, nil, domain.ErrTokenAlreadyExists
		}
		next := state.clone()
		newSrc := next.Accounts[tx.Account].Clone()
		newSrc.Tokens[a.TokenID] = a.Scopes.Clone()
		next.Accounts[tx.Account] = newSrc
		return next, domain.AccessTokenResult{TokenID: a.TokenID}, nil

	case domain.AddPrivilegesAction:
		target, exists := state.Accounts[a.Target]
		if !exists {
			return state, nil, domain.ErrDestinationDoesNotExist
		}
		next := state.clone()
		newTarget := target.Clone()
		newTarget.Privileges = newTarget.Privileges.Union(a.Scopes)
		next.Accounts[a.Target] = newTarget
		return next, domain.SuccessfulResult{ID: tx.ID}, nil

	case domain.RemovePrivilegesAction:
		target, exists := state.Accounts[a.Target]
		if !exists {
			return state, nil, domain.ErrDestinationDoesNotExist
		}
		next := state.clone()
		newTarget := target.Clone()
		newTarget.Privileges = newTarget.Privileges.Without(a.Scopes)
		next.Accounts[a.Target] = newTarget
		return next, domain.SuccessfulResult{ID: tx.ID}, nil

	case domain.MintAction:
		next := state.clone()
		newSrc := next.Accounts[tx.Account].Clone()
		newSrc.Balance += a.Amount
		next.Accounts[tx.Account] = newSrc
		return next, domain.SuccessfulResult{ID: tx.ID}, nil

	case domain.TransferAction:
		dest, exists := state.Accounts[a.Destination]
		if !exists {
			return state, nil, domain.ErrDestinationDoesNotExist
		}
		if src.Balance-a.Amount < 0 {
			return state, nil, domain.ErrInsufficientFunds
		}
		next := state.clone()
		if tx.Account == a.Destination {
			// Self-transfer must round-trip: debit and credit the same
			// cloned account.
			self := dest.Clone()
			self.Balance = self.Balance - a.Amount + a.Amount
			next.Accounts[tx.Account] = self
			return next, domain.SuccessfulResult{ID: tx.ID}, nil
		}
		newSrc := next.Accounts[tx.Account].Clone()
		newSrc.Balance -= a.Amount
		newDest := next.Accounts[a.Destination].Clone()
		newDest.Balance += a.Amount
		next.Accounts[tx.Account] = newSrc
		next.Accounts[a.Destination] = newDest
		return next, domain.SuccessfulResult{ID: tx.ID}, nil

	default:
		return state, nil, fmt.Errorf("engine: unknown action type %T", tx.Action)
	}
}
