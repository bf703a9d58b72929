package authz

import (
	"errors"
	"testing"

	"github.com/wizardbeardstudio/centralbank/internal/domain"
)

func TestInScopeMinimality(t *testing.T) {
	actions := []domain.AccountAction{
		domain.TransferAction{Amount: 1, Destination: "x"},
		domain.MintAction{Amount: 1},
		domain.QueryBalanceAction{},
		domain.QueryPrivilegesAction{},
		domain.QueryHistoryAction{},
		domain.OpenAccountAction{NewID: "x", InitialTokenID: "t"},
		domain.CreateTokenAction{TokenID: "t", Scopes: domain.NewScopeSet(domain.ScopeTransfer)},
		domain.AddPrivilegesAction{Target: "x", Scopes: domain.NewScopeSet(domain.ScopeTransfer)},
		domain.RemovePrivilegesAction{Target: "x", Scopes: domain.NewScopeSet(domain.ScopeTransfer)},
	}
	allScopes := []domain.AccessScope{
		domain.ScopeQueryBalance, domain.ScopeQueryHistory, domain.ScopeQueryPrivileges,
		domain.ScopeTransfer, domain.ScopeMint, domain.ScopeOpenAccount, domain.ScopeAdmin,
	}

	for _, a := range actions {
		matches := 0
		for _, s := range allScopes {
			if InScope(a, s) {
				matches++
			}
		}
		if matches != 1 {
			t.Fatalf("action %s: expected exactly 1 matching non-Unbounded scope, got %d", a.Kind(), matches)
		}
	}
}

func TestInScopeUnboundedAdmitsEverything(t *testing.T) {
	if !InScope(domain.MintAction{Amount: 1}, domain.ScopeUnbounded) {
		t.Fatalf("Unbounded should admit Mint")
	}
	if !InScopeAny(domain.CreateTokenAction{}, domain.NewScopeSet(domain.ScopeUnbounded)) {
		t.Fatalf("Unbounded should admit CreateToken via InScopeAny")
	}
}

func TestInScopeAnyRequiresMembership(t *testing.T) {
	scopes := domain.NewScopeSet(domain.ScopeQueryBalance)
	if InScopeAny(domain.MintAction{Amount: 1}, scopes) {
		t.Fatalf("QueryBalance scope should not admit Mint")
	}
}

func TestValidateActionRejectsNonPositiveAmounts(t *testing.T) {
	cases := []domain.AccountAction{
		domain.MintAction{Amount: 0},
		domain.MintAction{Amount: -1},
		domain.TransferAction{Amount: 0, Destination: "x"},
		domain.TransferAction{Amount: -5, Destination: "x"},
	}
	for _, a := range cases {
		if err := ValidateAction(a); !errors.Is(err, domain.ErrInvalidAmount) {
			t.Fatalf("action %+v: expected ErrInvalidAmount, got %v", a, err)
		}
	}
}

func TestValidateActionAcceptsPositiveAmounts(t *testing.T) {
	if err := ValidateAction(domain.MintAction{Amount: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateAction(domain.QueryBalanceAction{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
