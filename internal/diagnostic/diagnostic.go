// Package diagnostic implements the parser's error reporting: a
// Diagnostic is one reported problem, and a Bag collects every
// diagnostic raised during a single parse so the driver can print them
// all (panic-mode recovery keeps parsing after the first one).
package diagnostic

import (
	"fmt"
	"io"

	"github.com/luat-lang/luat/internal/token"
)

// Diagnostic is a single parser error, tied to the token where it was
// detected. It implements error so it can be returned or wrapped like any
// other Go error.
type Diagnostic struct {
	Line    int
	Token   token.Token
	Message string
}

// Error renders the diagnostic in the driver's error format:
// "[line L] Error at 'T': MSG". EOF is rendered as "end" per §6.3.
func (d Diagnostic) Error() string {
	where := d.Token.Text
	if d.Token.Kind == token.EOF {
		where = "end"
	}

	return fmt.Sprintf("[line %d] Error at '%s': %s", d.Line, where, d.Message)
}

// Bag accumulates diagnostics in the order they were raised.
type Bag struct {
	items []Diagnostic
}

// Add records a new diagnostic.
func (b *Bag) Add(tok token.Token, message string) {
	b.items = append(b.items, Diagnostic{Line: tok.Line, Token: tok, Message: message})
}

// Empty reports whether no diagnostic has been recorded.
func (b *Bag) Empty() bool {
	return len(b.items) == 0
}

// Len reports how many diagnostics have been recorded.
func (b *Bag) Len() int {
	return len(b.items)
}

// All returns the recorded diagnostics in report order.
func (b *Bag) All() []Diagnostic {
	return b.items
}

// Fprint writes every diagnostic to w, one per line.
func (b *Bag) Fprint(w io.Writer) {
	for _, d := range b.items {
		fmt.Fprintln(w, d.Error())
	}
}
