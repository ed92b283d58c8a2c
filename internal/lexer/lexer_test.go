package lexer

import (
	"testing"

	"github.com/luat-lang/luat/internal/arena"
	"github.com/luat-lang/luat/internal/strpool"
	"github.com/luat-lang/luat/internal/token"
)

func newPool(t *testing.T) *strpool.Pool {
	t.Helper()

	return strpool.New(arena.New(4096), 32)
}

func TestBasicTokens(t *testing.T) {
	src := `local x = 1 + 2`

	tests := []struct {
		kind token.Kind
		text string
	}{
		{token.LOCAL, "local"},
		{token.IDENTIFIER, "x"},
		{token.EQ, "="},
		{token.NUMBER, "1"},
		{token.PLUS, "+"},
		{token.NUMBER, "2"},
		{token.EOF, ""},
	}

	tokens := Tokenize([]byte(src), newPool(t))

	if len(tokens) != len(tests) {
		t.Fatalf("got %d tokens, want %d: %v", len(tokens), len(tests), tokens)
	}

	for i, tt := range tests {
		if tokens[i].Kind != tt.kind {
			t.Errorf("token %d: kind = %v, want %v", i, tokens[i].Kind, tt.kind)
		}

		if tokens[i].Text != tt.text {
			t.Errorf("token %d: text = %q, want %q", i, tokens[i].Text, tt.text)
		}
	}
}

func TestEndsInExactlyOneEOF(t *testing.T) {
	tokens := Tokenize([]byte("local x"), newPool(t))

	eofs := 0
	for i, tok := range tokens {
		if tok.Kind == token.EOF {
			eofs++

			if i != len(tokens)-1 {
				t.Errorf("EOF token found before the end of the stream at index %d", i)
			}
		}
	}

	if eofs != 1 {
		t.Fatalf("expected exactly one EOF token, got %d", eofs)
	}
}

func TestKeywords(t *testing.T) {
	src := "local function struct trait impl return if then else elseif end while do repeat until for in break nil true false and or not type"

	want := []token.Kind{
		token.LOCAL, token.FUNCTION, token.STRUCT, token.TRAIT, token.IMPL,
		token.RETURN, token.IF, token.THEN, token.ELSE, token.ELSEIF, token.END,
		token.WHILE, token.DO, token.REPEAT, token.UNTIL, token.FOR, token.IN,
		token.BREAK, token.NIL, token.TRUE, token.FALSE, token.AND, token.OR,
		token.NOT, token.TYPE, token.EOF,
	}

	tokens := Tokenize([]byte(src), newPool(t))
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(want))
	}

	for i, k := range want {
		if tokens[i].Kind != k {
			t.Errorf("token %d: kind = %v, want %v", i, tokens[i].Kind, k)
		}
	}
}

func TestOperators(t *testing.T) {
	src := "== ~= < <= > >= .. ..."

	want := []token.Kind{
		token.EQ_EQ, token.NOT_EQ, token.LT, token.LTEQ, token.GT, token.GTEQ,
		token.DOT_DOT, token.DOT_DOT_DOT, token.EOF,
	}

	tokens := Tokenize([]byte(src), newPool(t))
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(tokens), len(want), tokens)
	}

	for i, k := range want {
		if tokens[i].Kind != k {
			t.Errorf("token %d: kind = %v, want %v", i, tokens[i].Kind, k)
		}
	}
}

func TestLineTracking(t *testing.T) {
	src := "local a\nlocal b\n\nlocal c"

	tokens := Tokenize([]byte(src), newPool(t))

	var lines []int
	for _, tok := range tokens {
		if tok.Kind == token.IDENTIFIER {
			lines = append(lines, tok.Line)
		}
	}

	want := []int{1, 2, 4}
	for i, l := range want {
		if lines[i] != l {
			t.Errorf("identifier %d at line %d, want %d", i, lines[i], l)
		}
	}
}

func TestQuotedStringEscapes(t *testing.T) {
	src := `"a\nb\tc\\d\"e"`

	tokens := Tokenize([]byte(src), newPool(t))
	if tokens[0].Kind != token.STRING {
		t.Fatalf("expected STRING token, got %v", tokens[0].Kind)
	}

	want := "a\nb\tc\\d\"e"
	if tokens[0].Text != want {
		t.Errorf("decoded string = %q, want %q", tokens[0].Text, want)
	}
}

func TestQuotedStringDecimalEscape(t *testing.T) {
	tokens := Tokenize([]byte(`"\65\66"`), newPool(t))

	if tokens[0].Text != "AB" {
		t.Errorf("decoded string = %q, want %q", tokens[0].Text, "AB")
	}
}

func TestUnterminatedQuotedStringIsError(t *testing.T) {
	tokens := Tokenize([]byte(`"abc`), newPool(t))

	if tokens[0].Kind != token.ERROR {
		t.Fatalf("expected ERROR token, got %v", tokens[0].Kind)
	}
}

func TestLongBracketString(t *testing.T) {
	tokens := Tokenize([]byte("[==[hello ]=] world]==]"), newPool(t))

	if tokens[0].Kind != token.STRING {
		t.Fatalf("expected STRING token, got %v", tokens[0].Kind)
	}

	want := "hello ]=] world"
	if tokens[0].Text != want {
		t.Errorf("long bracket string = %q, want %q", tokens[0].Text, want)
	}
}

func TestLongBracketStringElidesLeadingNewline(t *testing.T) {
	tokens := Tokenize([]byte("[[\nhello]]"), newPool(t))

	if tokens[0].Text != "hello" {
		t.Errorf("long bracket string = %q, want %q", tokens[0].Text, "hello")
	}
}

func TestLoneBracketIsLBracket(t *testing.T) {
	tokens := Tokenize([]byte("[x]"), newPool(t))

	want := []token.Kind{token.LBRACKET, token.IDENTIFIER, token.RBRACKET, token.EOF}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(tokens), len(want), tokens)
	}

	for i, k := range want {
		if tokens[i].Kind != k {
			t.Errorf("token %d: kind = %v, want %v", i, tokens[i].Kind, k)
		}
	}
}

func TestLineComment(t *testing.T) {
	tokens := Tokenize([]byte("local x -- this is a comment\nlocal y"), newPool(t))

	kinds := make([]token.Kind, 0, len(tokens))
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind)
	}

	want := []token.Kind{
		token.LOCAL, token.IDENTIFIER, token.LOCAL, token.IDENTIFIER, token.EOF,
	}

	if len(kinds) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(kinds), len(want), kinds)
	}

	for i, k := range want {
		if kinds[i] != k {
			t.Errorf("token %d: kind = %v, want %v", i, kinds[i], k)
		}
	}
}

func TestLongBracketComment(t *testing.T) {
	tokens := Tokenize([]byte("local x --[[ a long\ncomment ]] local y"), newPool(t))

	kinds := make([]token.Kind, 0, len(tokens))
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind)
	}

	want := []token.Kind{
		token.LOCAL, token.IDENTIFIER, token.LOCAL, token.IDENTIFIER, token.EOF,
	}

	if len(kinds) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(kinds), len(want), kinds)
	}
}

func TestNumberWithFraction(t *testing.T) {
	tokens := Tokenize([]byte("3.14 42 5."), newPool(t))

	want := []string{"3.14", "42", "5"}
	for i, w := range want {
		if tokens[i].Text != w {
			t.Errorf("number %d = %q, want %q", i, tokens[i].Text, w)
		}
	}

	// "5." without a following digit: '.' is its own DOT token.
	if tokens[3].Kind != token.DOT {
		t.Errorf("token after '5' = %v, want DOT", tokens[3].Kind)
	}
}

func TestInternedIdentifiersSharePointers(t *testing.T) {
	pool := newPool(t)
	tokens := Tokenize([]byte("foo foo"), pool)

	if tokens[0].Text != tokens[1].Text {
		t.Fatalf("expected both occurrences to intern to the same text")
	}
}
