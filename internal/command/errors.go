package command

import "fmt"

// ParseErrorKind tags the closed set of parse failures.
type ParseErrorKind string

const (
	KindUnknownCommand         ParseErrorKind = "UnknownCommand"
	KindUnexpectedToken        ParseErrorKind = "UnexpectedToken"
	KindExpectedNumber         ParseErrorKind = "ExpectedNumber"
	KindExpectedPositiveNumber ParseErrorKind = "ExpectedPositiveNumber"
	KindUnexpectedProxy        ParseErrorKind = "UnexpectedProxy"
	KindUnexpectedAdmin        ParseErrorKind = "UnexpectedAdmin"
	KindUnfinishedCommand      ParseErrorKind = "UnfinishedCommand"
)

// ParseError carries the offending token's text alongside its kind; the
// last kind (UnfinishedCommand) carries none.
type ParseError struct {
	Kind  ParseErrorKind
	Token string
}

func (e *ParseError) Error() string {
	if e.Token == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s(%q)", e.Kind, e.Token)
}

// Is compares by Kind, so errors.Is(err, ErrUnfinishedCommand) and similar
// sentinel comparisons work regardless of the offending token's text.
func (e *ParseError) Is(target error) bool {
	other, ok := target.(*ParseError)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

var ErrUnfinishedCommand = &ParseError{Kind: KindUnfinishedCommand}

func errUnknownCommand(t Token) error { return &ParseError{Kind: KindUnknownCommand, Token: t.Text} }
func errUnexpectedToken(t Token) error {
	return &ParseError{Kind: KindUnexpectedToken, Token: t.Text}
}
func errExpectedNumber(t Token) error { return &ParseError{Kind: KindExpectedNumber, Token: t.Text} }
func errExpectedPositiveNumber(t Token) error {
	return &ParseError{Kind: KindExpectedPositiveNumber, Token: t.Text}
}
func errUnexpectedProxy(keyword string) error {
	return &ParseError{Kind: KindUnexpectedProxy, Token: keyword}
}
func errUnexpectedAdmin(keyword string) error {
	return &ParseError{Kind: KindUnexpectedAdmin, Token: keyword}
}
