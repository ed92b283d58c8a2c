package token

import "testing"

func TestKindStringKnown(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{EOF, "EOF"},
		{IDENTIFIER, "IDENTIFIER"},
		{LOCAL, "LOCAL"},
		{FUNCTION, "FUNCTION"},
		{LBRACE, "LBRACE"},
		{RBRACE, "RBRACE"},
		{LPAREN, "LPAREN"},
		{RPAREN, "RPAREN"},
		{DOT_DOT_DOT, "DOT_DOT_DOT"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestKindStringUnknown(t *testing.T) {
	got := Kind(9999).String()
	want := "UNKNOWN(9999)"

	if got != want {
		t.Errorf("Kind(9999).String() = %q, want %q", got, want)
	}
}

func TestKeywordsTable(t *testing.T) {
	tests := map[string]Kind{
		"local":    LOCAL,
		"function": FUNCTION,
		"struct":   STRUCT,
		"trait":    TRAIT,
		"impl":     IMPL,
		"if":       IF,
		"end":      END,
		"nil":      NIL,
		"true":     TRUE,
		"false":    FALSE,
	}

	for text, want := range tests {
		got, ok := Keywords[text]
		if !ok {
			t.Errorf("Keywords[%q] missing", text)

			continue
		}

		if got != want {
			t.Errorf("Keywords[%q] = %v, want %v", text, got, want)
		}
	}

	if _, ok := Keywords["notakeyword"]; ok {
		t.Errorf("Keywords contains unexpected entry for %q", "notakeyword")
	}
}

func TestTokenIsEOF(t *testing.T) {
	if !(Token{Kind: EOF}).IsEOF() {
		t.Errorf("expected EOF token to report IsEOF() == true")
	}

	if (Token{Kind: IDENTIFIER}).IsEOF() {
		t.Errorf("expected non-EOF token to report IsEOF() == false")
	}
}

func TestTokenString(t *testing.T) {
	tok := Token{Kind: IDENTIFIER, Text: "foo", Line: 3}

	got := tok.String()
	want := "3    IDENTIFIER      'foo'"

	if got != want {
		t.Errorf("Token.String() = %q, want %q", got, want)
	}
}
