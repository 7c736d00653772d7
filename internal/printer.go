package internal

import (
	"fmt"
	"strings"
)

// astPrinter renders nodes in parenthesized prefix form, e.g. (+ 1.0 (group 2.0))
type astPrinter struct{}

func (v astPrinter) printStmts(stmts []stmt) string {
	out := make([]string, len(stmts))
	for i, s := range stmts {
		out[i] = v.printStmt(s)
	}
	return strings.Join(out, "\n")
}

func (v astPrinter) printStmt(s stmt) string {
	switch s := s.(type) {
	case *blockStmt:
		out := "(block"
		for _, st := range s.stmts {
			out += " " + v.printStmt(st)
		}
		return out + ")"
	case *classStmt:
		out := "(class " + s.name.lexeme
		if s.superclass != nil {
			out += " < " + s.superclass.name.lexeme
		}
		for _, method := range s.methods {
			out += " " + v.printStmt(method)
		}
		return out + ")"
	case *expressionStmt:
		return v.parenthesize(";", s.expression)
	case *fnStmt:
		params := make([]string, len(s.params))
		for i, param := range s.params {
			params[i] = param.lexeme
		}
		out := "(fun " + s.name.lexeme + " (" + strings.Join(params, " ") + ")"
		for _, st := range s.body {
			out += " " + v.printStmt(st)
		}
		return out + ")"
	case *ifStmt:
		if s.elseBranch == nil {
			return fmt.Sprintf("(if %s %s)", v.printExpr(s.condition), v.printStmt(s.thenBranch))
		}
		return fmt.Sprintf("(if-else %s %s %s)", v.printExpr(s.condition), v.printStmt(s.thenBranch), v.printStmt(s.elseBranch))
	case *printStmt:
		return v.parenthesize("print", s.expression)
	case *returnStmt:
		if s.value == nil {
			return "(return)"
		}
		return v.parenthesize("return", s.value)
	case *varStmt:
		if s.initializer == nil {
			return "(var " + s.name.lexeme + ")"
		}
		return v.parenthesize("var "+s.name.lexeme, s.initializer)
	case *whileStmt:
		return fmt.Sprintf("(while %s %s)", v.printExpr(s.condition), v.printStmt(s.body))
	}
	panic(fmt.Sprintf("printer: unexpected statement %T", s))
}

func (v astPrinter) printExpr(e expr) string {
	switch e := e.(type) {
	case *assignExpr:
		return v.parenthesize("= "+e.name.lexeme, e.value)
	case *binaryExpr:
		return v.parenthesize(e.operator.lexeme, e.left, e.right)
	case *callExpr:
		return v.parenthesize("call "+v.printExpr(e.callee), e.arguments...)
	case *getExpr:
		return v.parenthesize(". "+e.name.lexeme, e.object)
	case *groupingExpr:
		return v.parenthesize("group", e.expression)
	case *literalExpr:
		switch value := e.value.(type) {
		case nil:
			return "nil"
		case float64:
			return formatLiteralNumber(value)
		case string:
			return value
		}
		return fmt.Sprintf("%v", e.value)
	case *logicalExpr:
		return v.parenthesize(e.operator.lexeme, e.left, e.right)
	case *setExpr:
		return v.parenthesize("=. "+e.name.lexeme, e.object, e.value)
	case *superExpr:
		return "(super " + e.method.lexeme + ")"
	case *thisExpr:
		return "this"
	case *unaryExpr:
		return v.parenthesize(e.operator.lexeme, e.right)
	case *variableExpr:
		return e.name.lexeme
	}
	panic(fmt.Sprintf("printer: unexpected expression %T", e))
}

func (v astPrinter) parenthesize(name string, exprs ...expr) string {
	var b strings.Builder
	b.WriteString("(")
	b.WriteString(name)
	for _, e := range exprs {
		b.WriteString(" ")
		b.WriteString(v.printExpr(e))
	}
	b.WriteString(")")
	return b.String()
}
