// Package lexer implements the luat lexical analyzer: it turns a raw
// UTF-8-clean (but ASCII-scanned) source buffer into a linear token
// sequence terminated by a single EOF token.
package lexer

import (
	"fmt"
	"strings"

	"github.com/luat-lang/luat/internal/strpool"
	"github.com/luat-lang/luat/internal/token"
)

// lexer holds the scanner's cursor state. start marks the beginning of the
// token currently being formed; current is the next byte to examine.
type lexer struct {
	src     []byte
	start   int
	current int
	line    int
	pool    *strpool.Pool
}

// Tokenize scans source completely and returns its token sequence, always
// ending in exactly one EOF token. Lexical errors (unterminated string,
// unterminated long bracket, unknown character, a lone '~') surface as
// ERROR tokens inline; scanning continues past them.
func Tokenize(source []byte, pool *strpool.Pool) []token.Token {
	l := &lexer{src: source, line: 1, pool: pool}

	var out []token.Token

	for {
		t := l.nextToken()
		out = append(out, t)

		if t.Kind == token.EOF {
			break
		}
	}

	return out
}

func (l *lexer) atEnd() bool {
	return l.current >= len(l.src)
}

func (l *lexer) peek() byte {
	if l.atEnd() {
		return 0
	}

	return l.src[l.current]
}

func (l *lexer) peekAt(offset int) byte {
	idx := l.current + offset
	if idx >= len(l.src) {
		return 0
	}

	return l.src[idx]
}

func (l *lexer) advance() byte {
	b := l.src[l.current]
	l.current++

	return b
}

func (l *lexer) match(expected byte) bool {
	if l.atEnd() || l.src[l.current] != expected {
		return false
	}

	l.current++

	return true
}

func (l *lexer) makeToken(kind token.Kind) token.Token {
	lexeme := l.src[l.start:l.current]

	return token.Token{
		Kind:   kind,
		Text:   l.pool.Intern(lexeme),
		Line:   l.line,
		Offset: l.start,
		Length: l.current - l.start,
	}
}

func (l *lexer) makeTokenText(kind token.Kind, text string) token.Token {
	return token.Token{
		Kind:   kind,
		Text:   l.pool.InternString(text),
		Line:   l.line,
		Offset: l.start,
		Length: l.current - l.start,
	}
}

func (l *lexer) errorToken(msg string) token.Token {
	return l.makeTokenText(token.ERROR, msg)
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isAlpha(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isAlphaNumeric(b byte) bool { return isAlpha(b) || isDigit(b) }

// skipWhitespaceAndComments implements §4.3.1: ASCII space/tab/CR are
// skipped, newline advances the line counter, "--" begins a comment which
// is either a long-bracket comment (if immediately followed by a valid
// "[=*[" opener) or a line comment running to end-of-line.
func (l *lexer) skipWhitespaceAndComments() {
	for {
		switch l.peek() {
		case ' ', '\t', '\r':
			l.advance()
		case '\n':
			l.line++
			l.advance()
		case '-':
			if l.peekAt(1) != '-' {
				return
			}

			l.advance()
			l.advance()

			if l.peek() == '[' {
				save := l.current
				if level, ok := l.tryLongBracketOpener(); ok {
					l.skipLongBracketBody(level)

					continue
				}

				l.current = save
			}

			for l.peek() != '\n' && !l.atEnd() {
				l.advance()
			}
		default:
			return
		}
	}
}

// tryLongBracketOpener attempts to consume "[=*[" starting at the current
// '['. On success it returns the bracket level (number of '=' signs) with
// the cursor positioned just past the opening "[". On failure the cursor
// is left unspecified; callers must restore it themselves.
func (l *lexer) tryLongBracketOpener() (int, bool) {
	if l.peek() != '[' {
		return 0, false
	}

	l.advance()

	level := 0
	for l.peek() == '=' {
		level++

		l.advance()
	}

	if l.peek() != '[' {
		return 0, false
	}

	l.advance()

	// A single newline immediately after the opener is elided.
	if l.peek() == '\n' {
		l.line++

		l.advance()
	}

	return level, true
}

// skipLongBracketBody consumes a long-bracket comment body (content is
// discarded) up to and including its matching closer, tracking line
// numbers for any embedded newlines. An unterminated body runs to EOF.
func (l *lexer) skipLongBracketBody(level int) {
	for !l.atEnd() {
		if l.peek() == ']' {
			if l.matchLongBracketCloser(level) {
				return
			}
		}

		if l.peek() == '\n' {
			l.line++
		}

		l.advance()
	}
}

// matchLongBracketCloser checks whether the cursor (on a ']') begins a
// closer of the given level ("]=*]"); if so it consumes it and returns
// true, otherwise the cursor is left untouched.
func (l *lexer) matchLongBracketCloser(level int) bool {
	save := l.current
	l.advance() // ']'

	count := 0
	for l.peek() == '=' {
		count++

		l.advance()
	}

	if count == level && l.peek() == ']' {
		l.advance()

		return true
	}

	l.current = save

	return false
}

func (l *lexer) nextToken() token.Token {
	l.skipWhitespaceAndComments()

	l.start = l.current

	if l.atEnd() {
		return l.makeToken(token.EOF)
	}

	c := l.advance()

	if isAlpha(c) {
		return l.identifier()
	}

	if isDigit(c) {
		return l.number()
	}

	switch c {
	case '"', '\'':
		return l.quotedString(c)
	case '[':
		// Could be the start of a long-bracket string, or a plain
		// LBRACKET if no valid opener follows.
		save := l.current
		l.current-- // rewind onto the '[' just consumed by advance()

		if level, ok := l.tryLongBracketOpener(); ok {
			return l.longBracketString(level)
		}

		l.current = save

		return l.makeToken(token.LBRACKET)
	case ']':
		return l.makeToken(token.RBRACKET)
	case '(':
		return l.makeToken(token.LPAREN)
	case ')':
		return l.makeToken(token.RPAREN)
	case '{':
		return l.makeToken(token.LBRACE)
	case '}':
		return l.makeToken(token.RBRACE)
	case ',':
		return l.makeToken(token.COMMA)
	case ';':
		return l.makeToken(token.SEMICOLON)
	case ':':
		return l.makeToken(token.COLON)
	case '+':
		return l.makeToken(token.PLUS)
	case '-':
		return l.makeToken(token.MINUS)
	case '*':
		return l.makeToken(token.STAR)
	case '/':
		return l.makeToken(token.SLASH)
	case '%':
		return l.makeToken(token.PERCENT)
	case '^':
		return l.makeToken(token.CARET)
	case '#':
		return l.makeToken(token.HASH)
	case '|':
		return l.makeToken(token.PIPE)
	case '=':
		if l.match('=') {
			return l.makeToken(token.EQ_EQ)
		}

		return l.makeToken(token.EQ)
	case '~':
		if l.match('=') {
			return l.makeToken(token.NOT_EQ)
		}

		return l.errorToken(fmt.Sprintf("Unexpected character '%c'", c))
	case '<':
		if l.match('=') {
			return l.makeToken(token.LTEQ)
		}

		return l.makeToken(token.LT)
	case '>':
		if l.match('=') {
			return l.makeToken(token.GTEQ)
		}

		return l.makeToken(token.GT)
	case '.':
		if l.match('.') {
			if l.match('.') {
				return l.makeToken(token.DOT_DOT_DOT)
			}

			return l.makeToken(token.DOT_DOT)
		}

		return l.makeToken(token.DOT)
	default:
		return l.errorToken(fmt.Sprintf("Unexpected character '%c'", c))
	}
}

func (l *lexer) identifier() token.Token {
	for isAlphaNumeric(l.peek()) {
		l.advance()
	}

	text := l.src[l.start:l.current]
	if kind, ok := token.Keywords[string(text)]; ok {
		return l.makeToken(kind)
	}

	return l.makeToken(token.IDENTIFIER)
}

// number implements §4.3.2: one or more digits, optional single '.' then
// more digits. No exponent form.
func (l *lexer) number() token.Token {
	for isDigit(l.peek()) {
		l.advance()
	}

	if l.peek() == '.' && isDigit(l.peekAt(1)) {
		l.advance()

		for isDigit(l.peek()) {
			l.advance()
		}
	}

	return l.makeToken(token.NUMBER)
}

// quotedString implements §4.3.3's quoted form, processing escapes as it
// scans so the interned text is the decoded content (no surrounding
// quotes).
func (l *lexer) quotedString(quote byte) token.Token {
	var sb strings.Builder

	for {
		if l.atEnd() {
			return l.errorToken("Unterminated string")
		}

		c := l.peek()
		if c == quote {
			l.advance()

			break
		}

		if c == '\n' {
			l.line++
			sb.WriteByte(c)
			l.advance()

			continue
		}

		if c == '\\' {
			l.advance()
			l.consumeEscape(&sb)

			continue
		}

		sb.WriteByte(c)
		l.advance()
	}

	return l.makeTokenText(token.STRING, sb.String())
}

// consumeEscape processes one backslash escape sequence, per §4.3.3,
// appending the resulting byte(s) to sb. The caller has already consumed
// the leading backslash.
func (l *lexer) consumeEscape(sb *strings.Builder) {
	if l.atEnd() {
		return
	}

	c := l.advance()

	switch c {
	case 'a':
		sb.WriteByte('\a')
	case 'b':
		sb.WriteByte('\b')
	case 'f':
		sb.WriteByte('\f')
	case 'n':
		sb.WriteByte('\n')
	case 'r':
		sb.WriteByte('\r')
	case 't':
		sb.WriteByte('\t')
	case 'v':
		sb.WriteByte('\v')
	case '\\':
		sb.WriteByte('\\')
	case '"':
		sb.WriteByte('"')
	case '\'':
		sb.WriteByte('\'')
	case '\n':
		l.line++
		sb.WriteByte('\n')
	default:
		if isDigit(c) {
			value := int(c - '0')

			for i := 0; i < 2 && isDigit(l.peek()); i++ {
				value = value*10 + int(l.advance()-'0')
			}

			sb.WriteByte(byte(value))

			return
		}

		sb.WriteByte(c)
	}
}

// longBracketString implements §4.3.3's long-bracket form. The opener has
// already been consumed by the caller (tryLongBracketOpener); content is
// taken verbatim up to the matching closer of the same level.
func (l *lexer) longBracketString(level int) token.Token {
	contentStart := l.current

	for {
		if l.atEnd() {
			return l.errorToken("Unterminated long string")
		}

		if l.peek() == ']' {
			closerStart := l.current
			if l.matchLongBracketCloser(level) {
				content := l.src[contentStart:closerStart]

				return l.makeTokenText(token.STRING, string(content))
			}
		}

		if l.peek() == '\n' {
			l.line++
		}

		l.advance()
	}
}
