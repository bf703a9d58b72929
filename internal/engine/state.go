// Package engine is the in-memory transaction processor (C3): a pure
// state-transition function over accounts. It authenticates and applies
// one transaction at a time; it never performs I/O and holds no lock of
// its own — that is the service envelope's job.
package engine

import "github.com/wizardbeardstudio/centralbank/internal/domain"

// State is {accounts, default_privileges}. DefaultPrivileges seeds newly
// opened accounts.
type State struct {
	Accounts          map[domain.AccountID]*domain.AccountData
	DefaultPrivileges domain.ScopeSet
}

// NewState returns the empty state with the canonical default privileges.
func NewState() State {
	return State{
		Accounts:          make(map[domain.AccountID]*domain.AccountData),
		DefaultPrivileges: domain.DefaultPrivileges(),
	}
}

// clone returns a state whose Accounts map is independent of the
// receiver's, though the AccountData pointers it holds are still shared
// until individually replaced. Apply always replaces every account it
// touches with a fresh clone before mutating it, so a returned State never
// aliases mutable data with the one it was derived from.
func (s State) clone() State {
	accounts := make(map[domain.AccountID]*domain.AccountData, len(s.Accounts))
	for id, acc := range s.Accounts {
		accounts[id] = acc
	}
	return State{Accounts: accounts, DefaultPrivileges: s.DefaultPrivileges}
}
