package domain

// AccountData is the value owned by the state map, keyed by AccountID.
type AccountData struct {
	Balance     CurrencyAmount
	ProxyAccess map[AccountID]struct{}
	Privileges  ScopeSet
	Tokens      map[AccessTokenID]ScopeSet
}

// NewAccountData returns a freshly opened account: zero balance, the given
// privileges, no proxy access, and the given initial tokens (may be nil).
func NewAccountData(privileges ScopeSet, tokens map[AccessTokenID]ScopeSet) *AccountData {
	if tokens == nil {
		tokens = make(map[AccessTokenID]ScopeSet)
	}
	return &AccountData{
		Balance:     0,
		ProxyAccess: make(map[AccountID]struct{}),
		Privileges:  privileges,
		Tokens:      tokens,
	}
}

// Clone returns a deep-enough copy suitable for a functional state update:
// the account struct itself and its maps are copied, but ScopeSet values
// stored in Tokens are treated as immutable and shared.
func (a *AccountData) Clone() *AccountData {
	cp := &AccountData{
		Balance:     a.Balance,
		ProxyAccess: make(map[AccountID]struct{}, len(a.ProxyAccess)),
		Privileges:  a.Privileges.Clone(),
		Tokens:      make(map[AccessTokenID]ScopeSet, len(a.Tokens)),
	}
	for id := range a.ProxyAccess {
		cp.ProxyAccess[id] = struct{}{}
	}
	for id, scopes := range a.Tokens {
		cp.Tokens[id] = scopes
	}
	return cp
}

// HasProxyAccess reports whether delegate may act as proxy for a.
func (a *AccountData) HasProxyAccess(delegate AccountID) bool {
	_, ok := a.ProxyAccess[delegate]
	return ok
}
