package command

import (
	"strconv"

	"github.com/wizardbeardstudio/centralbank/internal/domain"
)

// ParsedCommand is the parser's output before lowering: the proxy hops and
// optional admin account in the order they were recognised, and the
// action itself.
type ParsedCommand struct {
	ProxyHops []Token
	Admin     *Token
	Action    domain.AccountAction
}

// Parse recognises `( "proxy" account )* ( "admin" account )? action` where
// action is "balance", "mint" amount, or "transfer" destination amount.
func Parse(input string) (ParsedCommand, error) {
	tokens := Tokenize(input)
	idx := 0

	var proxies []Token
	for idx < len(tokens) && normalizeKeyword(tokens[idx].Text) == "proxy" {
		idx++
		if idx >= len(tokens) {
			return ParsedCommand{}, ErrUnfinishedCommand
		}
		proxies = append(proxies, tokens[idx])
		idx++
	}

	var admin *Token
	if idx < len(tokens) && normalizeKeyword(tokens[idx].Text) == "admin" {
		idx++
		if idx >= len(tokens) {
			return ParsedCommand{}, ErrUnfinishedCommand
		}
		a := tokens[idx]
		admin = &a
		idx++
	}

	if idx >= len(tokens) {
		return ParsedCommand{}, ErrUnfinishedCommand
	}
	actionTok := tokens[idx]
	idx++
	keyword := normalizeKeyword(actionTok.Text)

	switch keyword {
	case "balance":
		if idx < len(tokens) {
			return ParsedCommand{}, errUnexpectedToken(tokens[idx])
		}
		return ParsedCommand{ProxyHops: proxies, Admin: admin, Action: domain.QueryBalanceAction{}}, nil

	case "mint":
		if idx >= len(tokens) {
			return ParsedCommand{}, ErrUnfinishedCommand
		}
		amtTok := tokens[idx]
		idx++
		amount, err := parseAmount(amtTok)
		if err != nil {
			return ParsedCommand{}, err
		}
		if amount <= 0 {
			return ParsedCommand{}, errExpectedPositiveNumber(amtTok)
		}
		if idx < len(tokens) {
			return ParsedCommand{}, errUnexpectedToken(tokens[idx])
		}
		return ParsedCommand{ProxyHops: proxies, Admin: admin, Action: domain.MintAction{Amount: amount}}, nil

	case "transfer":
		if idx >= len(tokens) {
			return ParsedCommand{}, ErrUnfinishedCommand
		}
		destTok := tokens[idx]
		idx++
		if idx >= len(tokens) {
			return ParsedCommand{}, ErrUnfinishedCommand
		}
		amtTok := tokens[idx]
		idx++
		amount, err := parseAmount(amtTok)
		if err != nil {
			return ParsedCommand{}, err
		}
		if amount <= 0 {
			return ParsedCommand{}, errExpectedPositiveNumber(amtTok)
		}
		if idx < len(tokens) {
			return ParsedCommand{}, errUnexpectedToken(tokens[idx])
		}
		return ParsedCommand{
			ProxyHops: proxies, Admin: admin,
			Action: domain.TransferAction{Amount: amount, Destination: domain.AccountID(destTok.Text)},
		}, nil

	case "proxy":
		// A proxy hop can only precede admin/action; seeing one here means
		// it followed an already-popped admin.
		return ParsedCommand{}, errUnexpectedProxy(actionTok.Text)

	case "admin":
		// Only one admin hop is permitted, and it must precede the action.
		return ParsedCommand{}, errUnexpectedAdmin(actionTok.Text)

	default:
		return ParsedCommand{}, errUnknownCommand(actionTok)
	}
}

func parseAmount(t Token) (domain.CurrencyAmount, error) {
	n, err := strconv.ParseInt(t.Text, 10, 64)
	if err != nil {
		return 0, errExpectedNumber(t)
	}
	return domain.CurrencyAmount(n), nil
}
