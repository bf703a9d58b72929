package command

import "github.com/wizardbeardstudio/centralbank/internal/domain"

// Lower builds a TransactionRequest from a ParsedCommand, given the
// authoring account and the access token to attach. The action account
// starts as author; an admin hop redirects it to the admin's target and
// seeds the authorization tail with AdminAuthorized(author); proxy hops
// then wrap that tail outward in reverse collection order, so
// ProxyHops = [p1, p2] yields ProxyAuthorized(p1, ProxyAuthorized(p2, tail)).
func Lower(parsed ParsedCommand, author domain.AccountID, token domain.AccessTokenID) domain.TransactionRequest {
	account := author
	var tail domain.TransactionAuthorization = domain.SelfAuthorized{}
	if parsed.Admin != nil {
		account = domain.AccountID(parsed.Admin.Text)
		tail = domain.AdminAuthorized{AdminID: author}
	}
	for i := len(parsed.ProxyHops) - 1; i >= 0; i-- {
		tail = domain.ProxyAuthorized{ProxyID: domain.AccountID(parsed.ProxyHops[i].Text), Tail: tail}
	}
	return domain.TransactionRequest{
		Account:       account,
		Authorization: tail,
		AccessToken:   &token,
		Action:        parsed.Action,
	}
}
