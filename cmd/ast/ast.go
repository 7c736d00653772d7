package main

import (
	"fmt"
	"go/format"
	"os"
	"strings"
)

//go:generate sh -c "go run . Expr > ../../internal/expr.go"
//go:generate sh -c "go run . Stmt > ../../internal/stmt.go"

var nodes = map[string][]string{
	"Stmt": {
		"Expression: expression expr",
		"Print: keyword *token, expression expr",
		"Var: name *token, initializer expr",
		"Block: stmts []stmt",
		"If: keyword *token, condition expr, thenBranch stmt, elseBranch stmt",
		"While: keyword *token, condition expr, body stmt",
		"Fn: name *token, params []*token, body []stmt",
		"Return: keyword *token, value expr",
		"Class: name *token, superclass *variableExpr, methods []*fnStmt",
	},
	"Expr": {
		"Assign: name *token, value expr",
		"Binary: left expr, operator *token, right expr",
		"Call: callee expr, paren *token, arguments []expr",
		"Get: object expr, name *token",
		"Set: object expr, name *token, value expr",
		"Super: keyword *token, method *token",
		"Grouping: expression expr",
		"Literal: value interface{}",
		"Logical: left expr, operator *token, right expr",
		"This: keyword *token",
		"Unary: operator *token, right expr",
		"Variable: name *token",
	},
}

var docs = map[string]string{
	"Stmt": "stmt is the closed set of statement nodes",
	"Expr": "expr is the closed set of expression nodes, identified by pointer",
}

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: ast Expr|Stmt")
		os.Exit(1)
	}
	out, err := generateAst(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Print(out)
}

func generateAst(baseName string) (string, error) {
	types, ok := nodes[baseName]
	if !ok {
		return "", fmt.Errorf("unknown node family %q", baseName)
	}

	out := "// Code generated by cmd/ast; DO NOT EDIT.\n\n"
	out += "package internal\n\n"

	// Start base interface
	out += "// " + docs[baseName] + "\n"
	out += "type " + strings.ToLower(baseName) + " interface {\n"
	out += "\t" + strings.ToLower(baseName) + "Node()\n"
	out += "}\n\n"
	// End base interface

	// Start structs
	for _, t := range types {
		typeDef := strings.Split(t, ":")
		structName := strings.TrimSpace(typeDef[0])
		structFields := strings.TrimSpace(typeDef[1])
		out += generateType(baseName, structName, structFields)
	}
	// End structs

	formatted, err := format.Source([]byte(out))
	if err != nil {
		return "", err
	}
	return string(formatted), nil
}

func generateType(baseName, name, fields string) string {
	// Start Structure Definition
	structName := strings.ToLower(string(name[0])) + name[1:] + baseName
	out := "type " + structName + " struct {\n"
	for _, field := range strings.Split(fields, ",") {
		out += "\t" + strings.TrimSpace(field) + "\n"
	}
	out += "}\n\n"
	// End Structure Definition

	// Start Marker Definition
	out += "func (*" + structName + ") " + strings.ToLower(baseName) + "Node() {}\n\n"
	// End Marker Definition

	return out
}
