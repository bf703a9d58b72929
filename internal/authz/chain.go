// Package authz holds the pure helper functions over a domain.Transaction
// that C3 uses to authenticate a request: proxy-chain construction, final
// authorizer extraction, and admin detection. None of these touch state or
// a lock; they only look at the Transaction itself.
package authz

import "github.com/wizardbeardstudio/centralbank/internal/domain"

// ProxyChain reads the authorization head-first and returns the list of
// accounts it names, terminating in the acting account for SelfAuthorized
// or in the admin id for AdminAuthorized. For
// ProxyAuthorized("foo", ProxyAuthorized("admin", Self)) on account
// "@gov" this returns ["foo", "admin", "@gov"].
func ProxyChain(t domain.Transaction) []domain.AccountID {
	var hops []domain.AccountID
	auth := t.Authorization
	for {
		switch v := auth.(type) {
		case domain.ProxyAuthorized:
			hops = append(hops, v.ProxyID)
			auth = v.Tail
		case domain.AdminAuthorized:
			return append(hops, v.AdminID)
		case domain.SelfAuthorized:
			return append(hops, t.Account)
		default:
			// Unreachable: TransactionAuthorization is closed to these
			// three cases.
			return append(hops, t.Account)
		}
	}
}

// FinalAuthorizer walks the tail of the authorization chain: Self yields
// the acting account, Admin yields the admin id, Proxy recurses into its
// tail.
func FinalAuthorizer(t domain.Transaction) domain.AccountID {
	auth := t.Authorization
	for {
		switch v := auth.(type) {
		case domain.ProxyAuthorized:
			auth = v.Tail
		case domain.AdminAuthorized:
			return v.AdminID
		case domain.SelfAuthorized:
			return t.Account
		default:
			return t.Account
		}
	}
}

// IsAdminAuthorized reports whether any node in the chain is AdminAuthorized.
func IsAdminAuthorized(t domain.Transaction) bool {
	auth := t.Authorization
	for {
		switch v := auth.(type) {
		case domain.ProxyAuthorized:
			auth = v.Tail
		case domain.AdminAuthorized:
			return true
		case domain.SelfAuthorized:
			return false
		default:
			return false
		}
	}
}
