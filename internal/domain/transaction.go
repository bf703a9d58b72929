package domain

import "time"

// TransactionRequest is what a caller submits: an account, how it is
// authorized, an optional access token, and the action to perform.
type TransactionRequest struct {
	Account       AccountID
	Authorization TransactionAuthorization
	AccessToken   *AccessTokenID
	Action        AccountAction
}

// Transaction is a TransactionRequest stamped with an id and a UTC
// timestamp by the service envelope.
type Transaction struct {
	ID            TransactionID
	PerformedAt   time.Time
	Account       AccountID
	Authorization TransactionAuthorization
	AccessToken   *AccessTokenID
	Action        AccountAction
}

// Stamp promotes a request to a transaction.
func Stamp(req TransactionRequest, id TransactionID, performedAt time.Time) Transaction {
	return Transaction{
		ID:            id,
		PerformedAt:   performedAt,
		Account:       req.Account,
		Authorization: req.Authorization,
		AccessToken:   req.AccessToken,
		Action:        req.Action,
	}
}
