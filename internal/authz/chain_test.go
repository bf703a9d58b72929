package authz

import (
	"testing"

	"github.com/wizardbeardstudio/centralbank/internal/domain"
)

func TestProxyChainAndFinalAuthorizer(t *testing.T) {
	tx := domain.Transaction{
		Account: "@government",
		Authorization: domain.ProxyAuthorized{
			ProxyID: "foo",
			Tail: domain.ProxyAuthorized{
				ProxyID: "admin",
				Tail:    domain.SelfAuthorized{},
			},
		},
	}

	chain := ProxyChain(tx)
	want := []domain.AccountID{"foo", "admin", "@government"}
	if len(chain) != len(want) {
		t.Fatalf("chain length = %d, want %d (%v)", len(chain), len(want), chain)
	}
	for i := range want {
		if chain[i] != want[i] {
			t.Fatalf("chain[%d] = %q, want %q", i, chain[i], want[i])
		}
	}

	if got := FinalAuthorizer(tx); got != "@government" {
		t.Fatalf("final authorizer = %q, want @government", got)
	}
	if IsAdminAuthorized(tx) {
		t.Fatalf("expected not admin-authorized")
	}
}

func TestFinalAuthorizerAdmin(t *testing.T) {
	tx := domain.Transaction{
		Account:       "user",
		Authorization: domain.AdminAuthorized{AdminID: "@prime-mover"},
	}
	if got := FinalAuthorizer(tx); got != "@prime-mover" {
		t.Fatalf("final authorizer = %q, want @prime-mover", got)
	}
	if !IsAdminAuthorized(tx) {
		t.Fatalf("expected admin-authorized")
	}
}

func TestProxyChainMinimumLength(t *testing.T) {
	tx := domain.Transaction{Account: "solo", Authorization: domain.SelfAuthorized{}}
	chain := ProxyChain(tx)
	if len(chain) != 1 || chain[0] != "solo" {
		t.Fatalf("chain = %v, want [solo]", chain)
	}
}
