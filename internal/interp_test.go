package internal

import "testing"

func TestIncomplete(t *testing.T) {
	s := NewSession(&testPrinter{}, DefaultConfig())
	cases := map[string]bool{
		"":                        false,
		"print 1;":                false,
		"print ;":                 false,
		"@":                       false,
		"print 1; )":              false,
		"{":                       true,
		"print 1":                 true,
		"1 + 2":                   true,
		"\"abc":                   true,
		"fun f() {\n  print 1;":   true,
		"class A {\n  m() {":      true,
		"if (true) print 1; else": true,
	}
	for source, expected := range cases {
		if got := s.Incomplete(source); got != expected {
			t.Errorf("Incomplete(%q) = %v, expected %v", source, got, expected)
		}
	}
}

func TestIsExpression(t *testing.T) {
	s := NewSession(&testPrinter{}, DefaultConfig())
	cases := map[string]bool{
		"1 + 2":    true,
		"a = 3":    true,
		"f(1)(2)":  true,
		"1 + 2;":   false,
		"print 1;": false,
		"":         false,
		"(1":       false,
		"$":        false,
	}
	for source, expected := range cases {
		if got := s.IsExpression(source); got != expected {
			t.Errorf("IsExpression(%q) = %v, expected %v", source, got, expected)
		}
	}
}

// Probing input must not print anything or touch the session globals
func TestProbesAreSilent(t *testing.T) {
	tp := &testPrinter{}
	s := NewSession(tp, DefaultConfig())
	s.Incomplete("print ;")
	s.IsExpression("(1")
	if tp.printed != "" || tp.errors != "" {
		t.Errorf("probes wrote output: %q %q", tp.printed, tp.errors)
	}
}
