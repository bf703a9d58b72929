package domain

// ResultKind tags the concrete type behind a TransactionResult.
type ResultKind string

const (
	ResultSuccessful   ResultKind = "Successful"
	ResultHistory      ResultKind = "History"
	ResultBalance      ResultKind = "Balance"
	ResultAccessToken  ResultKind = "AccessToken"
	ResultAccessScopes ResultKind = "AccessScopes"
)

// TransactionResult is the tagged-variant result of a successfully applied
// transaction.
type TransactionResult interface {
	Kind() ResultKind
}

type SuccessfulResult struct {
	ID TransactionID
}

func (SuccessfulResult) Kind() ResultKind { return ResultSuccessful }

type HistoryResult struct {
	Transactions []Transaction
}

func (HistoryResult) Kind() ResultKind { return ResultHistory }

type BalanceResult struct {
	Amount CurrencyAmount
}

func (BalanceResult) Kind() ResultKind { return ResultBalance }

type AccessTokenResult struct {
	TokenID AccessTokenID
}

func (AccessTokenResult) Kind() ResultKind { return ResultAccessToken }

type AccessScopesResult struct {
	Scopes ScopeSet
}

func (AccessScopesResult) Kind() ResultKind { return ResultAccessScopes }
