// Package debugdump renders tokens and the parsed AST as human-readable
// text, for the "luat dump" driver mode and for tests that want to
// assert on a parse's shape without walking ast nodes by hand.
package debugdump

import (
	"fmt"
	"io"
	"strings"

	"github.com/luat-lang/luat/internal/ast"
	"github.com/luat-lang/luat/internal/token"
)

// Tokens writes the token table: a header with the token count, a
// LINE/KIND/TEXT column header, and one row per token.
func Tokens(w io.Writer, tokens []token.Token) {
	fmt.Fprintf(w, "--- TOKENS (%d) ---\n", len(tokens))
	fmt.Fprintf(w, "%-4s %-15s %s\n", "LINE", "KIND", "TEXT")
	fmt.Fprintln(w, strings.Repeat("-", 30))

	for _, t := range tokens {
		fmt.Fprintf(w, "%-4d %-15s '%s'\n", t.Line, t.Kind.String(), t.Text)
	}

	fmt.Fprintln(w, strings.Repeat("-", 30))
	fmt.Fprintln(w)
}

// AST writes the indented statement tree rooted at root. A nil root
// prints "(Empty AST)".
func AST(w io.Writer, root *ast.Stmt) {
	if root == nil {
		fmt.Fprintln(w, "(Empty AST)")

		return
	}

	printStmt(w, root, 0)
}

func indent(w io.Writer, level int) {
	fmt.Fprint(w, strings.Repeat("  ", level))
}

var binOpText = map[ast.BinaryOp]string{
	ast.OpAdd: "+", ast.OpSub: "-", ast.OpMul: "*", ast.OpDiv: "/",
	ast.OpMod: "%", ast.OpPow: "^", ast.OpConcat: "..",
	ast.OpEq: "==", ast.OpNeq: "~=", ast.OpLt: "<", ast.OpLte: "<=",
	ast.OpGt: ">", ast.OpGte: ">=", ast.OpAnd: "and", ast.OpOr: "or",
}

var unaryOpText = map[ast.UnaryOp]string{
	ast.OpNegate: "-", ast.OpNot: "not ", ast.OpLen: "#",
}

func printType(w io.Writer, t *ast.Type) {
	if t == nil {
		fmt.Fprint(w, "?")

		return
	}

	switch t.Kind {
	case ast.TypeVoid:
		fmt.Fprint(w, "void")
	case ast.TypeNil:
		fmt.Fprint(w, "nil")
	case ast.TypeBool:
		fmt.Fprint(w, "bool")
	case ast.TypeNumber:
		fmt.Fprint(w, "number")
	case ast.TypeString:
		fmt.Fprint(w, "string")
	case ast.TypeArray:
		fmt.Fprint(w, "[")
		printType(w, t.Inner)
		fmt.Fprint(w, "]")
	case ast.TypeGeneric:
		fmt.Fprint(w, t.Name)
	case ast.TypeUser:
		fmt.Fprint(w, t.Name)

		if len(t.Args) > 0 {
			fmt.Fprint(w, "<")

			for i, a := range t.Args {
				if i > 0 {
					fmt.Fprint(w, ", ")
				}

				printType(w, a)
			}

			fmt.Fprint(w, ">")
		}
	case ast.TypeFunction:
		fmt.Fprint(w, "fn")
		printFuncSignature(w, t.Signature)
	default:
		fmt.Fprint(w, "UnknownType")
	}
}

func printGenericParams(w io.Writer, generics []*ast.GenericParam) {
	if len(generics) == 0 {
		return
	}

	fmt.Fprint(w, "<")

	for i, g := range generics {
		fmt.Fprint(w, g.Name)

		if len(g.Constraints) > 0 {
			fmt.Fprint(w, ": ")

			for j, c := range g.Constraints {
				printType(w, c)

				if j < len(g.Constraints)-1 {
					fmt.Fprint(w, " + ")
				}
			}
		}

		if i < len(generics)-1 {
			fmt.Fprint(w, ", ")
		}
	}

	fmt.Fprint(w, ">")
}

func printFuncSignature(w io.Writer, sig *ast.FuncSignature) {
	if sig == nil {
		return
	}

	printGenericParams(w, sig.Generics)

	fmt.Fprint(w, "(")

	for i, p := range sig.Params {
		fmt.Fprint(w, p.Name)

		if p.Type != nil {
			fmt.Fprint(w, ": ")
			printType(w, p.Type)
		}

		if i < len(sig.Params)-1 {
			fmt.Fprint(w, ", ")
		}
	}

	fmt.Fprint(w, ")")

	if len(sig.Returns) > 0 {
		fmt.Fprint(w, " -> ")

		multi := len(sig.Returns) > 1
		if multi {
			fmt.Fprint(w, "(")
		}

		for i, r := range sig.Returns {
			printType(w, r)

			if i < len(sig.Returns)-1 {
				fmt.Fprint(w, ", ")
			}
		}

		if multi {
			fmt.Fprint(w, ")")
		}
	}
}

func printExpr(w io.Writer, e *ast.Expr) {
	if e == nil {
		fmt.Fprint(w, "nil")

		return
	}

	switch e.Kind {
	case ast.ExprNil:
		fmt.Fprint(w, "nil")
	case ast.ExprBool:
		if e.Bool {
			fmt.Fprint(w, "true")
		} else {
			fmt.Fprint(w, "false")
		}
	case ast.ExprNumber:
		fmt.Fprintf(w, "%g", e.Number)
	case ast.ExprString:
		fmt.Fprintf(w, "%q", e.Text)
	case ast.ExprVariable:
		fmt.Fprint(w, e.Text)
	case ast.ExprVararg:
		fmt.Fprint(w, "...")
	case ast.ExprBinary:
		fmt.Fprint(w, "(")
		printExpr(w, e.Left)
		fmt.Fprintf(w, " %s ", binOpText[e.BinOp])
		printExpr(w, e.Right)
		fmt.Fprint(w, ")")
	case ast.ExprUnary:
		fmt.Fprintf(w, "(%s", unaryOpText[e.UnOp])
		printExpr(w, e.Operand)
		fmt.Fprint(w, ")")
	case ast.ExprCall:
		printExpr(w, e.Callee)
		fmt.Fprint(w, "(")

		for i, a := range e.Args {
			printExpr(w, a)

			if i < len(e.Args)-1 {
				fmt.Fprint(w, ", ")
			}
		}

		fmt.Fprint(w, ")")
	case ast.ExprIndex:
		printExpr(w, e.Target)
		fmt.Fprint(w, "[")
		printExpr(w, e.Index)
		fmt.Fprint(w, "]")
	case ast.ExprField:
		printExpr(w, e.FieldTarget)
		fmt.Fprintf(w, ".%s", e.FieldName)
	case ast.ExprFunction:
		fmt.Fprint(w, "fn")
		printFuncSignature(w, e.Signature)
		fmt.Fprint(w, " { ... }")
	case ast.ExprTable:
		fmt.Fprint(w, "{")

		for i, entry := range e.TableEntries {
			if entry.Key != nil {
				fmt.Fprint(w, "[")
				printExpr(w, entry.Key)
				fmt.Fprint(w, "]=")
			}

			printExpr(w, entry.Value)

			if i < len(e.TableEntries)-1 {
				fmt.Fprint(w, ", ")
			}
		}

		fmt.Fprint(w, "}")
	case ast.ExprStruct:
		printExpr(w, e.StructName)
		fmt.Fprint(w, " { ")

		for i, entry := range e.StructEntries {
			fmt.Fprintf(w, "%s = ", entry.Key)
			printExpr(w, entry.Value)

			if i < len(e.StructEntries)-1 {
				fmt.Fprint(w, ", ")
			}
		}

		fmt.Fprint(w, " }")
	}
}

func printExprList(w io.Writer, exprs []*ast.Expr) {
	for i, e := range exprs {
		printExpr(w, e)

		if i < len(exprs)-1 {
			fmt.Fprint(w, ", ")
		}
	}
}

func printStmt(w io.Writer, s *ast.Stmt, level int) {
	if s == nil {
		return
	}

	indent(w, level)

	switch s.Kind {
	case ast.StmtExpr:
		fmt.Fprint(w, "EXPR ")
		printExpr(w, s.Expression)
		fmt.Fprintln(w)
	case ast.StmtBlock:
		fmt.Fprintln(w, "BLOCK")

		for _, child := range s.Stmts {
			printStmt(w, child, level+1)
		}

		indent(w, level)
		fmt.Fprintln(w, "END BLOCK")
	case ast.StmtReturn:
		fmt.Fprint(w, "RETURN ")
		printExprList(w, s.Values)
		fmt.Fprintln(w)
	case ast.StmtBreak:
		fmt.Fprintln(w, "BREAK")
	case ast.StmtAssign:
		fmt.Fprint(w, "ASSIGN ")
		printExprList(w, s.Targets)
		fmt.Fprint(w, " = ")
		printExprList(w, s.Values)
		fmt.Fprintln(w)
	case ast.StmtLocal:
		fmt.Fprint(w, "LOCAL ")

		for i, d := range s.Decls {
			fmt.Fprint(w, d.Name)

			if d.Type != nil {
				fmt.Fprint(w, ": ")
				printType(w, d.Type)
			}

			if i < len(s.Decls)-1 {
				fmt.Fprint(w, ", ")
			}
		}

		if len(s.Values) > 0 {
			fmt.Fprint(w, " = ")
			printExprList(w, s.Values)
		}

		fmt.Fprintln(w)
	case ast.StmtIf:
		fmt.Fprint(w, "IF ")
		printExpr(w, s.Condition)
		fmt.Fprintln(w, " THEN")
		printStmt(w, s.ThenBranch, level+1)

		if s.ElseBranch != nil {
			if s.ElseBranch.Kind == ast.StmtIf {
				indent(w, level)
				fmt.Fprint(w, "ELSEIF ")
				// Re-render the elseif chain at the same indent depth as
				// a sibling IF, matching the original's flat elseif chain.
				printElseif(w, s.ElseBranch, level)

				return
			}

			indent(w, level)
			fmt.Fprintln(w, "ELSE")
			printStmt(w, s.ElseBranch, level+1)
		}
	case ast.StmtWhile:
		fmt.Fprint(w, "WHILE ")
		printExpr(w, s.Condition)
		fmt.Fprintln(w, " DO")
		printStmt(w, s.Body, level+1)
	case ast.StmtRepeat:
		fmt.Fprintln(w, "REPEAT")
		printStmt(w, s.Body, level+1)
		indent(w, level)
		fmt.Fprint(w, "UNTIL ")
		printExpr(w, s.Condition)
		fmt.Fprintln(w)
	case ast.StmtForNum:
		fmt.Fprintf(w, "FOR %s = ", s.ForName)
		printExpr(w, s.ForStart)
		fmt.Fprint(w, ", ")
		printExpr(w, s.ForStop)

		if s.ForStep != nil {
			fmt.Fprint(w, ", ")
			printExpr(w, s.ForStep)
		}

		fmt.Fprintln(w, " DO")
		printStmt(w, s.Body, level+1)
	case ast.StmtForGen:
		fmt.Fprint(w, "FOR ")
		fmt.Fprint(w, strings.Join(s.ForNames, ", "))
		fmt.Fprint(w, " IN ")
		printExpr(w, s.ForIter)
		fmt.Fprintln(w, " DO")
		printStmt(w, s.Body, level+1)
	case ast.StmtFunction:
		fmt.Fprintf(w, "FUNCTION %s", s.Name)
		printFuncSignature(w, s.Signature)
		fmt.Fprintln(w)
		printStmt(w, s.Body, level+1)
		indent(w, level)
		fmt.Fprintln(w, "END FUNC")
	case ast.StmtStruct:
		fmt.Fprintf(w, "STRUCT %s", s.Name)
		printGenericParams(w, s.Generics)
		fmt.Fprintln(w)

		for _, field := range s.Fields {
			indent(w, level+1)
			fmt.Fprintf(w, "%s: ", field.Name)
			printType(w, field.Type)
			fmt.Fprintln(w)
		}

		indent(w, level)
		fmt.Fprintln(w, "END STRUCT")
	case ast.StmtTrait:
		fmt.Fprintf(w, "TRAIT %s", s.Name)
		printGenericParams(w, s.Generics)
		fmt.Fprintln(w)

		for _, m := range s.Methods {
			indent(w, level+1)
			fmt.Fprintf(w, "fn %s", m.Name)
			printFuncSignature(w, m.Signature)
			fmt.Fprintln(w)
		}

		indent(w, level)
		fmt.Fprintln(w, "END TRAIT")
	case ast.StmtImpl:
		fmt.Fprint(w, "IMPL")
		printGenericParams(w, s.Generics)
		fmt.Fprint(w, " ")

		if s.TraitName != "" {
			fmt.Fprint(w, s.TraitName)

			if len(s.TraitArgs) > 0 {
				fmt.Fprint(w, "<")

				for i, a := range s.TraitArgs {
					printType(w, a)

					if i < len(s.TraitArgs)-1 {
						fmt.Fprint(w, ", ")
					}
				}

				fmt.Fprint(w, ">")
			}

			fmt.Fprint(w, " FOR ")
		}

		fmt.Fprint(w, s.TargetName)

		if len(s.TargetArgs) > 0 {
			fmt.Fprint(w, "<")

			for i, a := range s.TargetArgs {
				printType(w, a)

				if i < len(s.TargetArgs)-1 {
					fmt.Fprint(w, ", ")
				}
			}

			fmt.Fprint(w, ">")
		}

		fmt.Fprintln(w)

		for _, fn := range s.Functions {
			printStmt(w, fn, level+1)
		}

		indent(w, level)
		fmt.Fprintln(w, "END IMPL")
	case ast.StmtTypeAlias:
		fmt.Fprintf(w, "TYPE %s = ", s.Name)
		printType(w, s.AliasType)
		fmt.Fprintln(w)
	}
}

// printElseif renders an elseif-chained if-statement without re-indenting
// or re-printing its own leading "IF " prefix (the caller already wrote
// "ELSEIF ").
func printElseif(w io.Writer, s *ast.Stmt, level int) {
	printExpr(w, s.Condition)
	fmt.Fprintln(w, " THEN")
	printStmt(w, s.ThenBranch, level+1)

	if s.ElseBranch == nil {
		return
	}

	if s.ElseBranch.Kind == ast.StmtIf {
		indent(w, level)
		fmt.Fprint(w, "ELSEIF ")
		printElseif(w, s.ElseBranch, level)

		return
	}

	indent(w, level)
	fmt.Fprintln(w, "ELSE")
	printStmt(w, s.ElseBranch, level+1)
}
