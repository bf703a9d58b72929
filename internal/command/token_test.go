package command

import "testing"

func TestTokenizeSplitsOnWhitespaceAndTracksPosition(t *testing.T) {
	tokens := Tokenize(" transfer\tbob  5\n")
	want := []Token{
		{StartIndex: 1, Text: "transfer"},
		{StartIndex: 10, Text: "bob"},
		{StartIndex: 15, Text: "5"},
	}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(tokens), len(want), tokens)
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Fatalf("token[%d] = %+v, want %+v", i, tokens[i], want[i])
		}
	}
}

func TestNormalizeKeywordExpandsBalAbbreviation(t *testing.T) {
	if normalizeKeyword("BAL") != "balance" {
		t.Fatalf("expected BAL to normalize to balance")
	}
	if normalizeKeyword("Transfer") != "transfer" {
		t.Fatalf("expected Transfer to lowercase to transfer")
	}
}
