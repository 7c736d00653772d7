package main

import (
	"bytes"
	"glox/internal"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/gommon/color"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runArgs(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunCommands(t *testing.T) {
	cases := []struct {
		command string
		source  string
		code    int
		stdout  string
		stderr  string
	}{
		{"tokenize", "(+)", internal.ExitOK, "LEFT_PAREN ( null\nPLUS + null\nRIGHT_PAREN ) null\nEOF  null\n", ""},
		{"parse", "1 + 2", internal.ExitOK, "(+ 1.0 2.0)\n", ""},
		{"evaluate", "1 + 2", internal.ExitOK, "3\n", ""},
		{"run", "print \"hi\";", internal.ExitOK, "hi\n", ""},
		{"run", "print x;", internal.ExitRuntime, "", "Undefined variable 'x'.\n[line 1]\n"},
		{"run", "print;", internal.ExitCompile, "", "[line 1] Error at ';': Expect expression.\n"},
		{"evaluate", "super.x", internal.ExitCompile, "", "[line 1] Error at 'super': Can't use 'super' outside of a class.\n"},
		{"tokenize", "@", internal.ExitCompile, "EOF  null\n", "[line 1] Error: Unexpected character: @\n"},
	}
	for _, c := range cases {
		path := writeFile(t, "test.lox", c.source)
		code, stdout, stderr := runArgs("-no-color", c.command, path)
		if code != c.code || stdout != c.stdout || stderr != c.stderr {
			t.Errorf("%s %q: got exit %d stdout %q stderr %q", c.command, c.source, code, stdout, stderr)
		}
	}
}

func TestRunUsage(t *testing.T) {
	if code, _, stderr := runArgs(); code != internal.ExitUsage || !strings.Contains(stderr, "Usage:") {
		t.Errorf("expected usage, got exit %d: %s", code, stderr)
	}
	if code, _, _ := runArgs("run"); code != internal.ExitUsage {
		t.Errorf("missing file should be a usage error, got %d", code)
	}

	path := writeFile(t, "test.lox", "1")
	if code, _, stderr := runArgs("compile", path); code != internal.ExitUsage || stderr != "Unknown command: compile\n" {
		t.Errorf("unexpected result for unknown command: %d %q", code, stderr)
	}

	missing := filepath.Join(t.TempDir(), "missing.lox")
	if code, _, stderr := runArgs("run", missing); code != internal.ExitUsage || !strings.HasPrefix(stderr, "Error reading file: ") {
		t.Errorf("unexpected result for unreadable file: %d %q", code, stderr)
	}

	if code, _, _ := runArgs("-bogus", "run", path); code != internal.ExitUsage {
		t.Errorf("unknown flag should be a usage error, got %d", code)
	}
}

func TestRunConfig(t *testing.T) {
	script := writeFile(t, "deep.lox", "fun f(n) { if (n > 0) f(n - 1); } f(20);")

	config := writeFile(t, "glox.yaml", "max_call_depth: 5\ncolor: false\n")
	code, _, stderr := runArgs("-config", config, "run", script)
	if code != internal.ExitRuntime || stderr != "Stack overflow.\n[line 1]\n" {
		t.Errorf("max_call_depth from the file should apply, got %d %q", code, stderr)
	}

	bad := writeFile(t, "bad.yaml", "unknown_key: 1\n")
	if code, _, _ := runArgs("-config", bad, "run", script); code != internal.ExitUsage {
		t.Errorf("invalid config should be a usage error, got %d", code)
	}

	if code, _, _ := runArgs("-log-level", "chatty", "run", script); code != internal.ExitUsage {
		t.Errorf("invalid log level should be a usage error, got %d", code)
	}

	code, stdout, stderr := runArgs("-no-color", "-log-level", "debug", "run", writeFile(t, "ok.lox", "print 1;"))
	if code != internal.ExitOK || stdout != "1\n" || !strings.Contains(stderr, "phase=exec") {
		t.Errorf("debug logging should go to stderr, got %d %q %q", code, stdout, stderr)
	}
}

func TestPrinterColor(t *testing.T) {
	var stdout, stderr bytes.Buffer
	c := color.New()
	c.SetOutput(&stderr)
	c.Disable()
	p := stdPrinter{stdout: &stdout, stderr: &stderr, color: c}

	p.Println("out")
	p.Fprintln(os.Stderr, "err")
	p.Fprintf(os.Stderr, "%s\n", "more")

	if stdout.String() != "out\n" {
		t.Errorf("unexpected stdout %q", stdout.String())
	}
	if stderr.String() != "err\nmore\n" {
		t.Errorf("diagnostics should reach stderr uncoloured when disabled, got %q", stderr.String())
	}
}
