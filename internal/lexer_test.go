package internal

import (
	"math"
	"strings"
	"testing"
)

func scanSource(source string) *interpreterState {
	state := newInterpreterState(source, &testPrinter{}, nil)
	newLexer(state).scan()
	return state
}

func checkTokens(t *testing.T, source string, expected ...string) {
	t.Helper()
	tp := &testPrinter{}
	code := NewSession(tp, DefaultConfig()).Tokenize(source)
	result := strings.Join(expected, "\n") + "\n"
	if code != ExitOK || tp.printed != result {
		t.Errorf(
			"\nSource:\n----\n%s\n----\nExpected:\n----\n%s----\nFound (exit %d):\n----\n%s----\n%s",
			source,
			result,
			code,
			tp.printed,
			tp.errors,
		)
	}
}

func TestTokenize(t *testing.T) {
	checkTokens(t, "", "EOF  null")
	checkTokens(t, "(+)",
		"LEFT_PAREN ( null",
		"PLUS + null",
		"RIGHT_PAREN ) null",
		"EOF  null",
	)
	checkTokens(t, "{},.-+;*/",
		"LEFT_BRACE { null",
		"RIGHT_BRACE } null",
		"COMMA , null",
		"DOT . null",
		"MINUS - null",
		"PLUS + null",
		"SEMICOLON ; null",
		"STAR * null",
		"SLASH / null",
		"EOF  null",
	)
	checkTokens(t, "! != = == < <= > >= // a comment (",
		"BANG ! null",
		"BANG_EQUAL != null",
		"EQUAL = null",
		"EQUAL_EQUAL == null",
		"LESS < null",
		"LESS_EQUAL <= null",
		"GREATER > null",
		"GREATER_EQUAL >= null",
		"EOF  null",
	)
	checkTokens(t, "42 3.14 1. 007",
		"NUMBER 42 42.0",
		"NUMBER 3.14 3.14",
		"NUMBER 1 1.0",
		"DOT . null",
		"NUMBER 007 7.0",
		"EOF  null",
	)
	checkTokens(t, `"hi there" ""`,
		`STRING "hi there" hi there`,
		`STRING "" `,
		"EOF  null",
	)
	checkTokens(t, "var x = nil; _under andy",
		"VAR var null",
		"IDENTIFIER x null",
		"EQUAL = null",
		"NIL nil null",
		"SEMICOLON ; null",
		"IDENTIFIER _under null",
		"IDENTIFIER andy null",
		"EOF  null",
	)
	checkTokens(t, "and class else false for fun if nil or print return super this true var while",
		"AND and null",
		"CLASS class null",
		"ELSE else null",
		"FALSE false null",
		"FOR for null",
		"FUN fun null",
		"IF if null",
		"NIL nil null",
		"OR or null",
		"PRINT print null",
		"RETURN return null",
		"SUPER super null",
		"THIS this null",
		"TRUE true null",
		"VAR var null",
		"WHILE while null",
		"EOF  null",
	)
}

func TestTokenizeErrors(t *testing.T) {
	tp := &testPrinter{}
	code := NewSession(tp, DefaultConfig()).Tokenize(",$(#")

	if code != ExitCompile {
		t.Errorf("expected exit %d, got %d", ExitCompile, code)
	}
	if tp.printed != "COMMA , null\nLEFT_PAREN ( null\nEOF  null\n" {
		t.Errorf("scanning should continue after errors, got:\n%s", tp.printed)
	}
	expected := "[line 1] Error: Unexpected character: $\n[line 1] Error: Unexpected character: #\n"
	if tp.errors != expected {
		t.Errorf("expected errors:\n%s\ngot:\n%s", expected, tp.errors)
	}
}

func TestLexerLines(t *testing.T) {
	state := scanSource("a\n\"multi\nline\"\nb // c\n\nd")
	if !state.Valid() {
		t.Fatalf("unexpected errors %v", state.errors)
	}

	expected := []struct {
		kind tokenType
		line int
	}{
		{tkIdentifier, 1},
		{tkString, 3},
		{tkIdentifier, 4},
		{tkIdentifier, 6},
		{tkEOF, 6},
	}
	if len(state.tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(state.tokens))
	}
	for i, e := range expected {
		tk := state.tokens[i]
		if tk.token != e.kind || tk.line != e.line {
			t.Errorf("token %d: expected %v on line %d, got %v on line %d", i, e.kind, e.line, tk.token, tk.line)
		}
	}

	if literal := state.tokens[1].literal; literal != "multi\nline" {
		t.Errorf("unexpected string literal %q", literal)
	}
}

func TestLexerUnterminatedString(t *testing.T) {
	state := scanSource("print 1;\n\"open\nstill open")
	if len(state.errors) != 1 {
		t.Fatalf("expected one error, got %v", state.errors)
	}
	if state.errors[0].Error() != "[line 2] Error: Unterminated string." {
		t.Errorf("unexpected error %q", state.errors[0].Error())
	}
	last := state.tokens[len(state.tokens)-1]
	if last.token != tkEOF || last.line != 3 {
		t.Errorf("expected EOF on line 3, got %v on line %d", last.token, last.line)
	}
}

func TestLexerUnicode(t *testing.T) {
	state := scanSource("é+")
	if len(state.errors) != 1 || state.errors[0].Error() != "[line 1] Error: Unexpected character: é" {
		t.Fatalf("unexpected errors %v", state.errors)
	}
	if len(state.tokens) != 2 || state.tokens[0].token != tkPlus {
		t.Errorf("expected PLUS then EOF, got %v", state.tokens)
	}
}

// Rescanning the lexemes joined by spaces yields the same tokens
func TestLexerRoundTrip(t *testing.T) {
	sources := []string{
		"var a = 1.5; print a >= 2 and !nil;",
		`class A < B { init() { this.x = "s"; } }`,
		"for (var i = 0; i <= 10; i = i + 1) { print i / 2 * -3; }",
	}
	for _, source := range sources {
		first := scanSource(source)
		lexemes := make([]string, 0, len(first.tokens))
		for _, tk := range first.tokens {
			lexemes = append(lexemes, tk.lexeme)
		}
		second := scanSource(strings.Join(lexemes, " "))

		if len(first.tokens) != len(second.tokens) {
			t.Errorf("%q: token count changed from %d to %d", source, len(first.tokens), len(second.tokens))
			continue
		}
		for i := range first.tokens {
			a, b := first.tokens[i], second.tokens[i]
			if a.token != b.token || a.lexeme != b.lexeme || a.literal != b.literal {
				t.Errorf("%q: token %d changed from %s to %s", source, i, a.String(), b.String())
			}
		}
	}
}

func TestLexerHugeNumber(t *testing.T) {
	state := scanSource(strings.Repeat("9", 400))
	if !state.Valid() {
		t.Fatalf("unexpected errors %v", state.errors)
	}
	literal, ok := state.tokens[0].literal.(float64)
	if !ok || !math.IsInf(literal, 1) {
		t.Errorf("expected +Inf, got %v", state.tokens[0].literal)
	}
}
