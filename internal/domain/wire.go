package domain

// Wire encoding for the JSON-over-HTTP boundary (spec.md §6): every
// tagged-variant value is encoded as { "Case": "<Variant>", "Fields": [ ... ] },
// records as plain objects. This file holds the (de)serialization for the
// variant types; plain records (TransactionRequest, Transaction) carry
// ordinary struct tags and only need help for their variant-typed fields.

import (
	"encoding/json"
	"fmt"
	"time"
)

type caseFields struct {
	Case   string            `json:"Case"`
	Fields []json.RawMessage `json:"Fields"`
}

func rawOf(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		// Every value passed through this helper is a type this package
		// defines; a marshal failure here is a programming error.
		panic(fmt.Sprintf("domain: marshal %T: %v", v, err))
	}
	return b
}

// ---- AccountAction ----

// MarshalAction encodes an AccountAction as {"Case":...,"Fields":[...]}.
func MarshalAction(a AccountAction) ([]byte, error) {
	switch v := a.(type) {
	case TransferAction:
		return json.Marshal(caseFields{string(ActionTransfer), []json.RawMessage{rawOf(v.Amount), rawOf(v.Destination)}})
	case MintAction:
		return json.Marshal(caseFields{string(ActionMint), []json.RawMessage{rawOf(v.Amount)}})
	case QueryBalanceAction:
		return json.Marshal(caseFields{string(ActionQueryBalance), []json.RawMessage{}})
	case QueryPrivilegesAction:
		return json.Marshal(caseFields{string(ActionQueryPrivileges), []json.RawMessage{}})
	case QueryHistoryAction:
		return json.Marshal(caseFields{string(ActionQueryHistory), []json.RawMessage{rawOf(v.Since.UTC().Format(time.RFC3339Nano))}})
	case OpenAccountAction:
		return json.Marshal(caseFields{string(ActionOpenAccount), []json.RawMessage{rawOf(v.NewID), rawOf(v.InitialTokenID)}})
	case CreateTokenAction:
		return json.Marshal(caseFields{string(ActionCreateToken), []json.RawMessage{rawOf(v.TokenID), rawOf(v.Scopes.Slice())}})
	case AddPrivilegesAction:
		return json.Marshal(caseFields{string(ActionAddPrivileges), []json.RawMessage{rawOf(v.Target), rawOf(v.Scopes.Slice())}})
	case RemovePrivilegesAction:
		return json.Marshal(caseFields{string(ActionRemovePrivileges), []json.RawMessage{rawOf(v.Target), rawOf(v.Scopes.Slice())}})
	default:
		return nil, fmt.Errorf("domain: unknown action type %T", a)
	}
}

// UnmarshalAction decodes an AccountAction from its wire form.
func UnmarshalAction(data []byte) (AccountAction, error) {
	var cf caseFields
	if err := json.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("decode action envelope: %w", err)
	}
	need := func(n int) error {
		if len(cf.Fields) != n {
			return fmt.Errorf("action %q: expected %d fields, got %d", cf.Case, n, len(cf.Fields))
		}
		return nil
	}
	switch ActionKind(cf.Case) {
	case ActionTransfer:
		if err := need(2); err != nil {
			return nil, err
		}
		var amt CurrencyAmount
		var dest AccountID
		if err := json.Unmarshal(cf.Fields[0], &amt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(cf.Fields[1], &dest); err != nil {
			return nil, err
		}
		return TransferAction{Amount: amt, Destination: dest}, nil
	case ActionMint:
		if err := need(1); err != nil {
			return nil, err
		}
		var amt CurrencyAmount
		if err := json.Unmarshal(cf.Fields[0], &amt); err != nil {
			return nil, err
		}
		return MintAction{Amount: amt}, nil
	case ActionQueryBalance:
		return QueryBalanceAction{}, nil
	case ActionQueryPrivileges:
		return QueryPrivilegesAction{}, nil
	case ActionQueryHistory:
		if err := need(1); err != nil {
			return nil, err
		}
		var s string
		if err := json.Unmarshal(cf.Fields[0], &s); err != nil {
			return nil, err
		}
		since, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return nil, fmt.Errorf("action QueryHistory: parse since: %w", err)
		}
		return QueryHistoryAction{Since: since}, nil
	case ActionOpenAccount:
		if err := need(2); err != nil {
			return nil, err
		}
		var newID AccountID
		var tok AccessTokenID
		if err := json.Unmarshal(cf.Fields[0], &newID); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(cf.Fields[1], &tok); err != nil {
			return nil, err
		}
		return OpenAccountAction{NewID: newID, InitialTokenID: tok}, nil
	case ActionCreateToken:
		if err := need(2); err != nil {
			return nil, err
		}
		var tok AccessTokenID
		var scopes []AccessScope
		if err := json.Unmarshal(cf.Fields[0], &tok); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(cf.Fields[1], &scopes); err != nil {
			return nil, err
		}
		return CreateTokenAction{TokenID: tok, Scopes: NewScopeSet(scopes...)}, nil
	case ActionAddPrivileges, ActionRemovePrivileges:
		if err := need(2); err != nil {
			return nil, err
		}
		var target AccountID
		var scopes []AccessScope
		if err := json.Unmarshal(cf.Fields[0], &target); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(cf.Fields[1], &scopes); err != nil {
			return nil, err
		}
		if ActionKind(cf.Case) == ActionAddPrivileges {
			return AddPrivilegesAction{Target: target, Scopes: NewScopeSet(scopes...)}, nil
		}
		return RemovePrivilegesAction{Target: target, Scopes: NewScopeSet(scopes...)}, nil
	default:
		return nil, fmt.Errorf("unknown action case %q", cf.Case)
	}
}

// ---- TransactionAuthorization ----

func MarshalAuthorization(a TransactionAuthorization) ([]byte, error) {
	switch v := a.(type) {
	case SelfAuthorized:
		return json.Marshal(caseFields{string(AuthSelf), []json.RawMessage{}})
	case AdminAuthorized:
		return json.Marshal(caseFields{string(AuthAdmin), []json.RawMessage{rawOf(v.AdminID)}})
	case ProxyAuthorized:
		tail, err := MarshalAuthorization(v.Tail)
		if err != nil {
			return nil, err
		}
		return json.Marshal(caseFields{string(AuthProxy), []json.RawMessage{rawOf(v.ProxyID), tail}})
	default:
		return nil, fmt.Errorf("domain: unknown authorization type %T", a)
	}
}

func UnmarshalAuthorization(data []byte) (TransactionAuthorization, error) {
	var cf caseFields
	if err := json.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("decode authorization envelope: %w", err)
	}
	switch AuthorizationKind(cf.Case) {
	case AuthSelf:
		return SelfAuthorized{}, nil
	case AuthAdmin:
		if len(cf.Fields) != 1 {
			return nil, fmt.Errorf("AdminAuthorized: expected 1 field, got %d", len(cf.Fields))
		}
		var id AccountID
		if err := json.Unmarshal(cf.Fields[0], &id); err != nil {
			return nil, err
		}
		return AdminAuthorized{AdminID: id}, nil
	case AuthProxy:
		if len(cf.Fields) != 2 {
			return nil, fmt.Errorf("ProxyAuthorized: expected 2 fields, got %d", len(cf.Fields))
		}
		var id AccountID
		if err := json.Unmarshal(cf.Fields[0], &id); err != nil {
			return nil, err
		}
		tail, err := UnmarshalAuthorization(cf.Fields[1])
		if err != nil {
			return nil, err
		}
		return ProxyAuthorized{ProxyID: id, Tail: tail}, nil
	default:
		return nil, fmt.Errorf("unknown authorization case %q", cf.Case)
	}
}

// ---- TransactionResult ----

func MarshalResult(r TransactionResult) ([]byte, error) {
	switch v := r.(type) {
	case SuccessfulResult:
		return json.Marshal(caseFields{string(ResultSuccessful), []json.RawMessage{rawOf(v.ID)}})
	case HistoryResult:
		wire := make([]wireTransaction, len(v.Transactions))
		for i, t := range v.Transactions {
			w, err := toWireTransaction(t)
			if err != nil {
				return nil, err
			}
			wire[i] = w
		}
		return json.Marshal(caseFields{string(ResultHistory), []json.RawMessage{rawOf(wire)}})
	case BalanceResult:
		return json.Marshal(caseFields{string(ResultBalance), []json.RawMessage{rawOf(v.Amount)}})
	case AccessTokenResult:
		return json.Marshal(caseFields{string(ResultAccessToken), []json.RawMessage{rawOf(v.TokenID)}})
	case AccessScopesResult:
		return json.Marshal(caseFields{string(ResultAccessScopes), []json.RawMessage{rawOf(v.Scopes.Slice())}})
	default:
		return nil, fmt.Errorf("domain: unknown result type %T", r)
	}
}

// ---- TransactionError ----

func MarshalError(err error) ([]byte, error) {
	if ne, ok := err.(*NetworkError); ok {
		return json.Marshal(caseFields{"Network", []json.RawMessage{rawOf(ne.Code), rawOf(ne.Body)}})
	}
	te, ok := err.(*TransactionError)
	if !ok {
		return nil, fmt.Errorf("domain: unknown error type %T", err)
	}
	return json.Marshal(caseFields{te.code, []json.RawMessage{}})
}

func UnmarshalError(data []byte) (error, error) {
	var cf caseFields
	if err := json.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("decode error envelope: %w", err)
	}
	if cf.Case == "Network" {
		if len(cf.Fields) != 2 {
			return nil, fmt.Errorf("Network error: expected 2 fields, got %d", len(cf.Fields))
		}
		var code int
		var body string
		if err := json.Unmarshal(cf.Fields[0], &code); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(cf.Fields[1], &body); err != nil {
			return nil, err
		}
		return &NetworkError{Code: code, Body: body}, nil
	}
	te, ok := TransactionErrorByCode(cf.Case)
	if !ok {
		return nil, fmt.Errorf("unknown error case %q", cf.Case)
	}
	return te, nil
}

// ---- TransactionRequest / Transaction (plain records with variant fields) ----

type wireTransactionRequest struct {
	Account       AccountID       `json:"account"`
	Authorization json.RawMessage `json:"authorization"`
	AccessToken   *AccessTokenID  `json:"access_token,omitempty"`
	Action        json.RawMessage `json:"action"`
}

func MarshalTransactionRequest(r TransactionRequest) ([]byte, error) {
	auth, err := MarshalAuthorization(r.Authorization)
	if err != nil {
		return nil, err
	}
	action, err := MarshalAction(r.Action)
	if err != nil {
		return nil, err
	}
	return json.Marshal(wireTransactionRequest{
		Account:       r.Account,
		Authorization: auth,
		AccessToken:   r.AccessToken,
		Action:        action,
	})
}

func UnmarshalTransactionRequest(data []byte) (TransactionRequest, error) {
	var w wireTransactionRequest
	if err := json.Unmarshal(data, &w); err != nil {
		return TransactionRequest{}, fmt.Errorf("decode transaction request: %w", err)
	}
	if w.Account == "" {
		return TransactionRequest{}, fmt.Errorf("transaction request: account is required")
	}
	auth, err := UnmarshalAuthorization(w.Authorization)
	if err != nil {
		return TransactionRequest{}, err
	}
	action, err := UnmarshalAction(w.Action)
	if err != nil {
		return TransactionRequest{}, err
	}
	return TransactionRequest{
		Account:       w.Account,
		Authorization: auth,
		AccessToken:   w.AccessToken,
		Action:        action,
	}, nil
}

type wireTransaction struct {
	ID            TransactionID   `json:"id"`
	PerformedAt   string          `json:"performed_at"`
	Account       AccountID       `json:"account"`
	Authorization json.RawMessage `json:"authorization"`
	AccessToken   *AccessTokenID  `json:"access_token,omitempty"`
	Action        json.RawMessage `json:"action"`
}

func toWireTransaction(t Transaction) (wireTransaction, error) {
	auth, err := MarshalAuthorization(t.Authorization)
	if err != nil {
		return wireTransaction{}, err
	}
	action, err := MarshalAction(t.Action)
	if err != nil {
		return wireTransaction{}, err
	}
	return wireTransaction{
		ID:            t.ID,
		PerformedAt:   t.PerformedAt.UTC().Format(time.RFC3339Nano),
		Account:       t.Account,
		Authorization: auth,
		AccessToken:   t.AccessToken,
		Action:        action,
	}, nil
}

func MarshalTransaction(t Transaction) ([]byte, error) {
	w, err := toWireTransaction(t)
	if err != nil {
		return nil, err
	}
	return json.Marshal(w)
}

func UnmarshalTransaction(data []byte) (Transaction, error) {
	var w wireTransaction
	if err := json.Unmarshal(data, &w); err != nil {
		return Transaction{}, fmt.Errorf("decode transaction: %w", err)
	}
	performedAt, err := time.Parse(time.RFC3339Nano, w.PerformedAt)
	if err != nil {
		return Transaction{}, fmt.Errorf("decode transaction: parse performed_at: %w", err)
	}
	auth, err := UnmarshalAuthorization(w.Authorization)
	if err != nil {
		return Transaction{}, err
	}
	action, err := UnmarshalAction(w.Action)
	if err != nil {
		return Transaction{}, err
	}
	return Transaction{
		ID:            w.ID,
		PerformedAt:   performedAt,
		Account:       w.Account,
		Authorization: auth,
		AccessToken:   w.AccessToken,
		Action:        action,
	}, nil
}

// ---- Result<TransactionResult, TransactionError> top-level envelope ----

// MarshalOutcome encodes the {"Case":"Ok"|"Error","Fields":[...]} wrapper
// returned by the HTTP endpoint.
func MarshalOutcome(result TransactionResult, err error) ([]byte, error) {
	if err != nil {
		errField, marshalErr := MarshalError(err)
		if marshalErr != nil {
			return nil, marshalErr
		}
		return json.Marshal(caseFields{"Error", []json.RawMessage{errField}})
	}
	resField, marshalErr := MarshalResult(result)
	if marshalErr != nil {
		return nil, marshalErr
	}
	return json.Marshal(caseFields{"Ok", []json.RawMessage{resField}})
}
