package debugdump

import (
	"bytes"
	"strings"
	"testing"

	"github.com/luat-lang/luat/internal/ast"
	"github.com/luat-lang/luat/internal/token"
)

func TestTokensHeaderAndCount(t *testing.T) {
	tokens := []token.Token{
		{Kind: token.LOCAL, Text: "local", Line: 1},
		{Kind: token.EOF, Line: 1},
	}

	var buf bytes.Buffer
	Tokens(&buf, tokens)

	out := buf.String()

	if !strings.Contains(out, "--- TOKENS (2) ---") {
		t.Errorf("missing token count header, got:\n%s", out)
	}

	if !strings.Contains(out, "LOCAL") {
		t.Errorf("missing LOCAL row, got:\n%s", out)
	}
}

func TestASTEmptyRoot(t *testing.T) {
	var buf bytes.Buffer
	AST(&buf, nil)

	want := "(Empty AST)\n"
	if buf.String() != want {
		t.Errorf("AST(nil) = %q, want %q", buf.String(), want)
	}
}

func TestASTRendersBlockAndBreak(t *testing.T) {
	root := ast.NewBlock([]*ast.Stmt{{Kind: ast.StmtBreak, Line: 1}}, 1)

	var buf bytes.Buffer
	AST(&buf, root)

	out := buf.String()
	if !strings.Contains(out, "BLOCK") {
		t.Errorf("expected BLOCK marker, got:\n%s", out)
	}

	if !strings.Contains(out, "BREAK") {
		t.Errorf("expected BREAK statement, got:\n%s", out)
	}
}
