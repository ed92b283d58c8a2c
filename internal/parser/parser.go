// Package parser implements a recursive-descent, Pratt-style parser: it
// turns the lexer's token stream into an ast.Stmt tree rooted at a single
// top-level Block. Errors are collected rather than aborting the parse,
// so a single call to Parse reports every syntax error it can find in
// one pass.
package parser

import (
	"strconv"

	"github.com/luat-lang/luat/internal/arena"
	"github.com/luat-lang/luat/internal/ast"
	"github.com/luat-lang/luat/internal/diagnostic"
	"github.com/luat-lang/luat/internal/token"
)

// precedence levels, lowest to highest, per the expression grammar.
const (
	precNone = iota
	precOr
	precAnd
	precComparison
	precConcat
	precTerm
	precFactor
	precUnary
	precPow
	precCall
	precPrimary
)

type assoc int

const (
	assocLeft assoc = iota
	assocRight
)

type binRule struct {
	prec  int
	assoc assoc
	op    ast.BinaryOp
}

var binaryRules = map[token.Kind]binRule{
	token.OR:      {precOr, assocLeft, ast.OpOr},
	token.AND:     {precAnd, assocLeft, ast.OpAnd},
	token.EQ_EQ:   {precComparison, assocLeft, ast.OpEq},
	token.NOT_EQ:  {precComparison, assocLeft, ast.OpNeq},
	token.LT:      {precComparison, assocLeft, ast.OpLt},
	token.LTEQ:    {precComparison, assocLeft, ast.OpLte},
	token.GT:      {precComparison, assocLeft, ast.OpGt},
	token.GTEQ:    {precComparison, assocLeft, ast.OpGte},
	token.DOT_DOT: {precConcat, assocRight, ast.OpConcat},
	token.PLUS:    {precTerm, assocLeft, ast.OpAdd},
	token.MINUS:   {precTerm, assocLeft, ast.OpSub},
	token.STAR:    {precFactor, assocLeft, ast.OpMul},
	token.SLASH:   {precFactor, assocLeft, ast.OpDiv},
	token.PERCENT: {precFactor, assocLeft, ast.OpMod},
	token.CARET:   {precPow, assocRight, ast.OpPow},
}

// statement-synchronization keywords: panic-mode recovery skips tokens
// until one of these (or a ';') so a single error doesn't cascade.
var syncKinds = map[token.Kind]bool{
	token.LOCAL:    true,
	token.FUNCTION: true,
	token.STRUCT:   true,
	token.TRAIT:    true,
	token.IMPL:     true,
	token.IF:       true,
	token.WHILE:    true,
	token.REPEAT:   true,
	token.FOR:      true,
	token.RETURN:   true,
	token.BREAK:    true,
	token.TYPE:     true,
	token.END:      true,
}

type parser struct {
	tokens    []token.Token
	pos       int
	arena     *arena.Arena
	diags     diagnostic.Bag
	panicMode bool
}

// Parse consumes the full token stream and returns the top-level block
// and the diagnostics raised while doing so. The caller should treat the
// parse as successful iff the returned Bag is empty.
func Parse(tokens []token.Token, a *arena.Arena) (*ast.Stmt, *diagnostic.Bag) {
	p := &parser{tokens: tokens, arena: a}

	var stmts []*ast.Stmt
	for !p.check(token.EOF) {
		if s := p.declaration(); s != nil {
			stmts = append(stmts, s)
		}
	}

	return ast.NewBlock(stmts, 1), &p.diags
}

// ---------------------------------------------------------------------
// token cursor helpers
// ---------------------------------------------------------------------

func (p *parser) peek() token.Token  { return p.tokens[p.pos] }
func (p *parser) previous() token.Token {
	return p.tokens[p.pos-1]
}

func (p *parser) check(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *parser) atEnd() bool { return p.check(token.EOF) }

func (p *parser) advance() token.Token {
	if !p.atEnd() {
		p.pos++
	}

	return p.previous()
}

func (p *parser) match(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()

			return true
		}
	}

	return false
}

// consume advances past an expected token kind or records a diagnostic.
func (p *parser) consume(k token.Kind, message string) token.Token {
	if p.check(k) {
		return p.advance()
	}

	p.errorAt(p.peek(), message)

	return p.peek()
}

func (p *parser) errorAt(tok token.Token, message string) {
	if p.panicMode {
		return
	}

	p.panicMode = true
	p.diags.Add(tok, message)
}

// synchronize discards tokens until a likely statement boundary, so one
// syntax error does not produce a cascade of spurious follow-on errors.
func (p *parser) synchronize() {
	p.panicMode = false

	for !p.atEnd() {
		if p.previous().Kind == token.SEMICOLON {
			return
		}

		if syncKinds[p.peek().Kind] {
			return
		}

		p.advance()
	}
}

// ---------------------------------------------------------------------
// statements
// ---------------------------------------------------------------------

func (p *parser) declaration() *ast.Stmt {
	s := p.statement()

	if p.panicMode {
		p.synchronize()
	}

	return s
}

func (p *parser) statement() *ast.Stmt {
	line := p.peek().Line

	switch {
	case p.match(token.TYPE):
		return p.typeAliasStmt(line)
	case p.match(token.IMPL):
		return p.implStmt(line)
	case p.match(token.TRAIT):
		return p.traitStmt(line)
	case p.match(token.STRUCT):
		return p.structStmt(line)
	case p.match(token.FUNCTION):
		return p.functionStmt(line)
	case p.match(token.LOCAL):
		return p.localStmt(line)
	case p.match(token.IF):
		return p.ifStmt(line)
	case p.match(token.WHILE):
		return p.whileStmt(line)
	case p.match(token.REPEAT):
		return p.repeatStmt(line)
	case p.match(token.FOR):
		return p.forStmt(line)
	case p.match(token.BREAK):
		p.optionalSemicolon()

		return &ast.Stmt{Kind: ast.StmtBreak, Line: line}
	case p.match(token.RETURN):
		return p.returnStmt(line)
	case p.match(token.SEMICOLON):
		return nil // standalone ';' is a no-op, Lua-style
	default:
		return p.exprOrAssignStmt(line)
	}
}

// block parses statements until one of the given terminator kinds (which
// are left unconsumed) or EOF.
func (p *parser) block(line int, terminators ...token.Kind) *ast.Stmt {
	var stmts []*ast.Stmt

	for !p.atEnd() && !p.checkAny(terminators...) {
		if s := p.declaration(); s != nil {
			stmts = append(stmts, s)
		}
	}

	return ast.NewBlock(stmts, line)
}

func (p *parser) checkAny(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			return true
		}
	}

	return false
}

// optionalSemicolon consumes a trailing ';' if present; the terminator
// policy allows but does not require it after a simple statement.
func (p *parser) optionalSemicolon() {
	p.match(token.SEMICOLON)
}

func (p *parser) typeAliasStmt(line int) *ast.Stmt {
	name := p.consume(token.IDENTIFIER, "Expect type name.").Text
	p.consume(token.EQ, "Expect '=' after type name.")
	ty := p.parseType()
	p.optionalSemicolon()

	return &ast.Stmt{Kind: ast.StmtTypeAlias, Line: line, Name: name, AliasType: ty}
}

func (p *parser) implStmt(line int) *ast.Stmt {
	generics := p.parseOptionalGenericParams()

	firstName := p.consume(token.IDENTIFIER, "Expect type name.").Text
	firstArgs := p.parseOptionalGenericArgs()

	stmt := &ast.Stmt{Kind: ast.StmtImpl, Line: line, Generics: generics}

	if p.match(token.FOR) {
		stmt.TraitName = firstName
		stmt.TraitArgs = firstArgs
		stmt.TargetName = p.consume(token.IDENTIFIER, "Expect target type name.").Text
		stmt.TargetArgs = p.parseOptionalGenericArgs()
	} else {
		stmt.TargetName = firstName
		stmt.TargetArgs = firstArgs
	}

	for !p.atEnd() && !p.check(token.END) {
		if p.match(token.FUNCTION) {
			stmt.Functions = append(stmt.Functions, p.functionStmt(p.previous().Line))

			continue
		}

		p.errorAt(p.peek(), "Expect function declaration in impl body.")
		p.advance()
	}

	p.consume(token.END, "Expect 'end' to close impl body.")

	return stmt
}

func (p *parser) traitStmt(line int) *ast.Stmt {
	name := p.consume(token.IDENTIFIER, "Expect trait name.").Text
	generics := p.parseOptionalGenericParams()

	stmt := &ast.Stmt{Kind: ast.StmtTrait, Line: line, Name: name, Generics: generics}

	for !p.atEnd() && !p.check(token.END) {
		if p.match(token.FUNCTION) {
			mname := p.consume(token.IDENTIFIER, "Expect method name.").Text
			sig := p.parseFuncSignature()
			p.optionalSemicolon()
			stmt.Methods = append(stmt.Methods, &ast.TraitMethod{Name: mname, Signature: sig})

			continue
		}

		p.errorAt(p.peek(), "Expect method signature in trait body.")
		p.advance()
	}

	p.consume(token.END, "Expect 'end' to close trait body.")

	return stmt
}

func (p *parser) structStmt(line int) *ast.Stmt {
	name := p.consume(token.IDENTIFIER, "Expect struct name.").Text
	generics := p.parseOptionalGenericParams()

	stmt := &ast.Stmt{Kind: ast.StmtStruct, Line: line, Name: name, Generics: generics}

	if !p.check(token.END) {
		for {
			fname := p.consume(token.IDENTIFIER, "Expect field name.").Text
			p.consume(token.COLON, "Expect ':' after field name.")
			ftype := p.parseType()
			stmt.Fields = append(stmt.Fields, &ast.Param{Name: fname, Type: ftype})

			if !p.match(token.COMMA) {
				break
			}
		}
	}

	p.consume(token.END, "Expect 'end' to close struct body.")

	return stmt
}

func (p *parser) functionStmt(line int) *ast.Stmt {
	name := p.consume(token.IDENTIFIER, "Expect function name.").Text
	sig := p.parseFuncSignature()
	body := p.block(line, token.END)
	p.consume(token.END, "Expect 'end' to close function body.")

	return &ast.Stmt{Kind: ast.StmtFunction, Line: line, Name: name, Signature: sig, Body: body}
}

func (p *parser) localStmt(line int) *ast.Stmt {
	var decls []*ast.Param

	for {
		name := p.consume(token.IDENTIFIER, "Expect variable name.").Text

		var ty *ast.Type
		if p.match(token.COLON) {
			ty = p.parseType()
		}

		decls = append(decls, &ast.Param{Name: name, Type: ty})

		if !p.match(token.COMMA) {
			break
		}
	}

	stmt := &ast.Stmt{Kind: ast.StmtLocal, Line: line, Decls: decls}

	if p.match(token.EQ) {
		stmt.Values = p.parseExprList()
	}

	p.optionalSemicolon()

	return stmt
}

func (p *parser) ifStmt(line int) *ast.Stmt {
	cond := p.parseExpr()
	p.consume(token.THEN, "Expect 'then' after condition.")
	then := p.block(line, token.ELSEIF, token.ELSE, token.END)

	stmt := &ast.Stmt{Kind: ast.StmtIf, Line: line, Condition: cond, ThenBranch: then}

	switch {
	case p.match(token.ELSEIF):
		stmt.ElseBranch = p.ifStmt(p.previous().Line)

		return stmt
	case p.match(token.ELSE):
		stmt.ElseBranch = p.block(line, token.END)
	}

	p.consume(token.END, "Expect 'end' to close if statement.")

	return stmt
}

func (p *parser) whileStmt(line int) *ast.Stmt {
	cond := p.parseExpr()
	p.consume(token.DO, "Expect 'do' after condition.")
	body := p.block(line, token.END)
	p.consume(token.END, "Expect 'end' to close while statement.")

	return &ast.Stmt{Kind: ast.StmtWhile, Line: line, Condition: cond, Body: body}
}

func (p *parser) repeatStmt(line int) *ast.Stmt {
	body := p.block(line, token.UNTIL)
	p.consume(token.UNTIL, "Expect 'until' to close repeat statement.")
	cond := p.parseExpr()

	return &ast.Stmt{Kind: ast.StmtRepeat, Line: line, Body: body, Condition: cond}
}

// forStmt disambiguates the numeric and generic forms by looking past the
// first name: '=' begins a numeric range, ',' or 'in' begins a generic
// iteration.
func (p *parser) forStmt(line int) *ast.Stmt {
	firstName := p.consume(token.IDENTIFIER, "Expect loop variable name.").Text

	if p.match(token.EQ) {
		start := p.parseExpr()
		p.consume(token.COMMA, "Expect ',' after loop start value.")
		stop := p.parseExpr()

		var step *ast.Expr
		if p.match(token.COMMA) {
			step = p.parseExpr()
		}

		p.consume(token.DO, "Expect 'do' after for clause.")
		body := p.block(line, token.END)
		p.consume(token.END, "Expect 'end' to close for statement.")

		return &ast.Stmt{
			Kind: ast.StmtForNum, Line: line, ForName: firstName,
			ForStart: start, ForStop: stop, ForStep: step, Body: body,
		}
	}

	names := []string{firstName}
	for p.match(token.COMMA) {
		names = append(names, p.consume(token.IDENTIFIER, "Expect loop variable name.").Text)
	}

	p.consume(token.IN, "Expect 'in' after loop variables.")
	iter := p.parseExpr()
	p.consume(token.DO, "Expect 'do' after for clause.")
	body := p.block(line, token.END)
	p.consume(token.END, "Expect 'end' to close for statement.")

	return &ast.Stmt{Kind: ast.StmtForGen, Line: line, ForNames: names, ForIter: iter, Body: body}
}

func (p *parser) returnStmt(line int) *ast.Stmt {
	stmt := &ast.Stmt{Kind: ast.StmtReturn, Line: line}

	if !p.checkAny(token.END, token.ELSE, token.ELSEIF, token.UNTIL, token.EOF, token.SEMICOLON) {
		stmt.Values = p.parseExprList()
	}

	p.optionalSemicolon()

	return stmt
}

// exprOrAssignStmt parses an expression statement or, if the expression
// is followed by ',' or '=', an assignment statement.
func (p *parser) exprOrAssignStmt(line int) *ast.Stmt {
	first := p.parseExpr()

	if p.check(token.COMMA) || p.check(token.EQ) {
		targets := []*ast.Expr{first}

		for p.match(token.COMMA) {
			targets = append(targets, p.parseExpr())
		}

		p.consume(token.EQ, "Expect '=' in assignment.")
		values := p.parseExprList()
		p.optionalSemicolon()

		return &ast.Stmt{Kind: ast.StmtAssign, Line: line, Targets: targets, Values: values}
	}

	p.optionalSemicolon()

	return &ast.Stmt{Kind: ast.StmtExpr, Line: line, Expression: first}
}

// ---------------------------------------------------------------------
// types and signatures
// ---------------------------------------------------------------------

func (p *parser) parseType() *ast.Type {
	switch {
	case p.match(token.NIL):
		return &ast.Type{Kind: ast.TypeNil}
	case p.match(token.LBRACKET):
		inner := p.parseType()
		p.consume(token.RBRACKET, "Expect ']' to close array type.")

		return &ast.Type{Kind: ast.TypeArray, Inner: inner}
	case p.match(token.FUNCTION):
		return p.parseFunctionType()
	case p.match(token.IDENTIFIER):
		name := p.previous().Text

		switch name {
		case "bool":
			return &ast.Type{Kind: ast.TypeBool}
		case "number":
			return &ast.Type{Kind: ast.TypeNumber}
		case "string":
			return &ast.Type{Kind: ast.TypeString}
		}

		// Struct, trait and generic-parameter names all parse as TypeUser;
		// the parser does not tell them apart.
		args := p.parseOptionalGenericArgs()

		return &ast.Type{Kind: ast.TypeUser, Name: name, Args: args}
	default:
		p.errorAt(p.peek(), "Expect type.")
		p.advance()

		return &ast.Type{Kind: ast.TypeVoid}
	}
}

func (p *parser) parseFunctionType() *ast.Type {
	sig := &ast.FuncSignature{}

	p.consume(token.LPAREN, "Expect '(' in function type.")

	if !p.check(token.RPAREN) {
		for {
			sig.Params = append(sig.Params, &ast.Param{Type: p.parseType()})
			if !p.match(token.COMMA) {
				break
			}
		}
	}

	p.consume(token.RPAREN, "Expect ')' to close function type parameters.")

	if p.match(token.COLON) {
		sig.Returns = p.parseTypeList()
	}

	return &ast.Type{Kind: ast.TypeFunction, Signature: sig}
}

func (p *parser) parseTypeList() []*ast.Type {
	var types []*ast.Type

	for {
		types = append(types, p.parseType())
		if !p.match(token.COMMA) {
			break
		}
	}

	return types
}

// parseOptionalGenericArgs parses a '<' type (',' type)* '>' suffix if
// present, returning nil otherwise.
func (p *parser) parseOptionalGenericArgs() []*ast.Type {
	if !p.match(token.LT) {
		return nil
	}

	args := p.parseTypeList()
	p.consume(token.GT, "Expect '>' to close generic argument list.")

	return args
}

// parseOptionalGenericParams parses a '<' name (+ constraints)? (',' ...)* '>'
// suffix if present, returning nil otherwise.
func (p *parser) parseOptionalGenericParams() []*ast.GenericParam {
	if !p.match(token.LT) {
		return nil
	}

	var params []*ast.GenericParam

	for {
		name := p.consume(token.IDENTIFIER, "Expect generic parameter name.").Text
		gp := &ast.GenericParam{Name: name}

		if p.match(token.COLON) {
			gp.Constraints = append(gp.Constraints, p.parseType())

			for p.match(token.PLUS) {
				gp.Constraints = append(gp.Constraints, p.parseType())
			}
		}

		params = append(params, gp)

		if !p.match(token.COMMA) {
			break
		}
	}

	p.consume(token.GT, "Expect '>' to close generic parameter list.")

	return params
}

func (p *parser) parseFuncSignature() *ast.FuncSignature {
	sig := &ast.FuncSignature{Generics: p.parseOptionalGenericParams()}

	p.consume(token.LPAREN, "Expect '(' after function name.")

	if !p.check(token.RPAREN) {
		for {
			pname := p.consume(token.IDENTIFIER, "Expect parameter name.").Text
			p.consume(token.COLON, "Expect ':' after parameter name.")
			ptype := p.parseType()
			sig.Params = append(sig.Params, &ast.Param{Name: pname, Type: ptype})

			if !p.match(token.COMMA) {
				break
			}
		}
	}

	p.consume(token.RPAREN, "Expect ')' after parameters.")

	if p.match(token.COLON) {
		sig.Returns = p.parseTypeList()
	}

	return sig
}

// ---------------------------------------------------------------------
// expressions (Pratt / operator-precedence)
// ---------------------------------------------------------------------

func (p *parser) parseExprList() []*ast.Expr {
	var exprs []*ast.Expr

	for {
		exprs = append(exprs, p.parseExpr())
		if !p.match(token.COMMA) {
			break
		}
	}

	return exprs
}

func (p *parser) parseExpr() *ast.Expr {
	return p.parsePrecedence(precOr)
}

func (p *parser) parsePrecedence(minPrec int) *ast.Expr {
	left := p.unary()

	for {
		rule, ok := binaryRules[p.peek().Kind]
		if !ok || rule.prec < minPrec {
			return left
		}

		opTok := p.advance()

		nextMin := rule.prec + 1
		if rule.assoc == assocRight {
			nextMin = rule.prec
		}

		right := p.parsePrecedence(nextMin)
		left = &ast.Expr{Kind: ast.ExprBinary, Line: opTok.Line, BinOp: rule.op, Left: left, Right: right}
	}
}

// unary parses a (possibly absent) prefix operator over an operand parsed
// at unary precedence — high enough that a following '^' (precPow, right
// associative) still binds to the operand first, giving -2^2 == -(2^2).
func (p *parser) unary() *ast.Expr {
	switch {
	case p.match(token.NOT):
		tok := p.previous()

		return &ast.Expr{Kind: ast.ExprUnary, Line: tok.Line, UnOp: ast.OpNot, Operand: p.parsePrecedence(precUnary)}
	case p.match(token.MINUS):
		tok := p.previous()

		return &ast.Expr{Kind: ast.ExprUnary, Line: tok.Line, UnOp: ast.OpNegate, Operand: p.parsePrecedence(precUnary)}
	case p.match(token.HASH):
		tok := p.previous()

		return &ast.Expr{Kind: ast.ExprUnary, Line: tok.Line, UnOp: ast.OpLen, Operand: p.parsePrecedence(precUnary)}
	default:
		return p.call()
	}
}

// call parses a primary expression followed by any chain of call, index,
// and field-access suffixes.
func (p *parser) call() *ast.Expr {
	expr := p.primary()

	for {
		switch {
		case p.match(token.LPAREN):
			tok := p.previous()

			var args []*ast.Expr
			if !p.check(token.RPAREN) {
				args = p.parseExprList()
			}

			p.consume(token.RPAREN, "Expect ')' after arguments.")

			expr = &ast.Expr{Kind: ast.ExprCall, Line: tok.Line, Callee: expr, Args: args}
		case p.match(token.LBRACKET):
			tok := p.previous()
			idx := p.parseExpr()
			p.consume(token.RBRACKET, "Expect ']' after index expression.")

			expr = &ast.Expr{Kind: ast.ExprIndex, Line: tok.Line, Target: expr, Index: idx}
		case p.match(token.DOT):
			tok := p.previous()
			name := p.consume(token.IDENTIFIER, "Expect field name after '.'.").Text

			expr = &ast.Expr{Kind: ast.ExprField, Line: tok.Line, FieldTarget: expr, FieldName: name}
		case p.match(token.LBRACE):
			tok := p.previous()

			expr = &ast.Expr{Kind: ast.ExprStruct, Line: tok.Line, StructName: expr, StructEntries: p.structInitEntries()}
		default:
			return expr
		}
	}
}

func (p *parser) primary() *ast.Expr {
	tok := p.peek()

	switch {
	case p.match(token.NIL):
		return &ast.Expr{Kind: ast.ExprNil, Line: tok.Line}
	case p.match(token.TRUE):
		return &ast.Expr{Kind: ast.ExprBool, Line: tok.Line, Bool: true}
	case p.match(token.FALSE):
		return &ast.Expr{Kind: ast.ExprBool, Line: tok.Line, Bool: false}
	case p.match(token.NUMBER):
		return p.number(tok)
	case p.match(token.STRING):
		return &ast.Expr{Kind: ast.ExprString, Line: tok.Line, Text: tok.Text}
	case p.match(token.DOT_DOT_DOT):
		return &ast.Expr{Kind: ast.ExprVararg, Line: tok.Line}
	case p.match(token.FUNCTION):
		return p.functionExpr(tok.Line)
	case p.match(token.LBRACE):
		return p.tableExpr(tok.Line)
	case p.match(token.LPAREN):
		inner := p.parseExpr()
		p.consume(token.RPAREN, "Expect ')' after expression.")

		return inner
	case p.match(token.IDENTIFIER):
		return &ast.Expr{Kind: ast.ExprVariable, Line: tok.Line, Text: tok.Text}
	default:
		p.errorAt(tok, "Expect expression.")
		p.advance()

		return &ast.Expr{Kind: ast.ExprNil, Line: tok.Line}
	}
}

// number converts a NUMBER token's text into its float64 value.
func (p *parser) number(tok token.Token) *ast.Expr {
	v, err := strconv.ParseFloat(tok.Text, 64)
	if err != nil {
		p.errorAt(tok, "Invalid number literal.")

		v = 0
	}

	return &ast.Expr{Kind: ast.ExprNumber, Line: tok.Line, Number: v}
}

func (p *parser) functionExpr(line int) *ast.Expr {
	sig := p.parseFuncSignature()
	body := p.block(line, token.END)
	p.consume(token.END, "Expect 'end' to close function body.")

	return &ast.Expr{Kind: ast.ExprFunction, Line: line, Signature: sig, Body: body}
}

// tableExpr parses a '{' ... '}' literal. Each entry is either
// "[expr] = expr", "name = expr", or a bare positional expr.
func (p *parser) tableExpr(line int) *ast.Expr {
	expr := &ast.Expr{Kind: ast.ExprTable, Line: line}

	for !p.atEnd() && !p.check(token.RBRACE) {
		var entry ast.TableEntry

		switch {
		case p.match(token.LBRACKET):
			entry.Key = p.parseExpr()
			p.consume(token.RBRACKET, "Expect ']' after table key.")
			p.consume(token.EQ, "Expect '=' after table key.")
			entry.Value = p.parseExpr()
		case p.check(token.IDENTIFIER) && p.peekNext().Kind == token.EQ:
			name := p.advance().Text
			p.advance() // '='
			entry.Key = &ast.Expr{Kind: ast.ExprString, Text: name}
			entry.Value = p.parseExpr()
		default:
			entry.Value = p.parseExpr()
		}

		expr.TableEntries = append(expr.TableEntries, &entry)

		if !p.match(token.COMMA) && !p.match(token.SEMICOLON) {
			break
		}
	}

	p.consume(token.RBRACE, "Expect '}' to close table literal.")

	return expr
}

// structInitEntries parses the "key: value, ..." body of a postfix struct
// initializer; call() has already matched and consumed the opening '{'.
func (p *parser) structInitEntries() []*ast.StructEntry {
	var entries []*ast.StructEntry

	for !p.atEnd() && !p.check(token.RBRACE) {
		fname := p.consume(token.IDENTIFIER, "Expect field name.").Text
		p.consume(token.COLON, "Expect ':' after field name.")
		value := p.parseExpr()

		entries = append(entries, &ast.StructEntry{Key: fname, Value: value})

		if !p.match(token.COMMA) {
			break
		}
	}

	p.consume(token.RBRACE, "Expect '}' to close struct initializer.")

	return entries
}

func (p *parser) peekNext() token.Token {
	if p.pos+1 >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}

	return p.tokens[p.pos+1]
}
