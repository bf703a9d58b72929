package authz

import "github.com/wizardbeardstudio/centralbank/internal/domain"

// requiredScope is the fixed one-to-one table between action kinds and the
// single non-Unbounded scope that admits them. CreateToken, AddPrivileges,
// and RemovePrivileges are admin-only: they match Admin or Unbounded only.
var requiredScope = map[domain.ActionKind]domain.AccessScope{
	domain.ActionTransfer:         domain.ScopeTransfer,
	domain.ActionMint:             domain.ScopeMint,
	domain.ActionQueryBalance:     domain.ScopeQueryBalance,
	domain.ActionQueryHistory:     domain.ScopeQueryHistory,
	domain.ActionQueryPrivileges:  domain.ScopeQueryPrivileges,
	domain.ActionOpenAccount:      domain.ScopeOpenAccount,
	domain.ActionCreateToken:      domain.ScopeAdmin,
	domain.ActionAddPrivileges:    domain.ScopeAdmin,
	domain.ActionRemovePrivileges: domain.ScopeAdmin,
}

// InScope reports whether a single scope admits the action. Unbounded
// admits everything; otherwise the action's kind must match its one
// required scope.
func InScope(action domain.AccountAction, scope domain.AccessScope) bool {
	if scope == domain.ScopeUnbounded {
		return true
	}
	return scope == requiredScope[action.Kind()]
}

// InScopeAny reports whether some scope in the set admits the action.
func InScopeAny(action domain.AccountAction, scopes domain.ScopeSet) bool {
	if scopes.Contains(domain.ScopeUnbounded) {
		return true
	}
	return scopes.Contains(requiredScope[action.Kind()])
}

// ValidateAction rejects non-positive Mint/Transfer amounts; every other
// action is structurally valid.
func ValidateAction(action domain.AccountAction) error {
	switch a := action.(type) {
	case domain.MintAction:
		if a.Amount <= 0 {
			return domain.ErrInvalidAmount
		}
	case domain.TransferAction:
		if a.Amount <= 0 {
			return domain.ErrInvalidAmount
		}
	}
	return nil
}
