package main

import (
	"errors"
	"flag"
	"fmt"
	"glox/internal"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/gommon/color"
	"github.com/peterh/liner"
)

const (
	promptMain = "> "
	promptCont = "... "
)

const usage = `Usage: glox [flags] <command> [filename]

Commands:
  tokenize <file>  print the token stream
  parse <file>     print the syntax tree of one expression
  evaluate <file>  evaluate one expression and print the result
  run <file>       execute a program
  repl             interactive prompt

Flags:
`

type stdPrinter struct {
	stdout io.Writer
	stderr io.Writer
	color  *color.Color
}

func (s stdPrinter) Println(a ...interface{}) (n int, err error) {
	return fmt.Fprintln(s.stdout, a...)
}

func (s stdPrinter) Fprintf(w io.Writer, format string, a ...interface{}) (n int, err error) {
	if w == os.Stderr {
		return fmt.Fprint(s.stderr, s.color.Red(fmt.Sprintf(format, a...)))
	}
	return fmt.Fprintf(w, format, a...)
}

func (s stdPrinter) Fprintln(w io.Writer, a ...interface{}) (n int, err error) {
	if w == os.Stderr {
		return fmt.Fprintln(s.stderr, s.color.Red(strings.TrimSuffix(fmt.Sprintln(a...), "\n")))
	}
	return fmt.Fprintln(w, a...)
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("glox", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	configPath := fs.String("config", os.Getenv("GLOX_CONFIG"), "YAML configuration file")
	logLevel := fs.String("log-level", "", "override the configured log level")
	noColor := fs.Bool("no-color", false, "disable coloured diagnostics")
	if err := fs.Parse(args); err != nil {
		return internal.ExitUsage
	}

	cfg, err := loadConfig(*configPath, *logLevel)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return internal.ExitUsage
	}

	logger, err := cfg.Logger(stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return internal.ExitUsage
	}

	c := color.New()
	c.SetOutput(stderr)
	if !cfg.Color || *noColor {
		c.Disable()
	}
	printer := stdPrinter{stdout: stdout, stderr: stderr, color: c}
	session := internal.NewSessionWithLogger(printer, cfg, logger)

	rest := fs.Args()
	if len(rest) == 1 && rest[0] == "repl" {
		return repl(session, cfg, stdout, stderr)
	}
	if len(rest) != 2 {
		fs.Usage()
		return internal.ExitUsage
	}

	command, filename := rest[0], rest[1]
	var exec func(string) int
	switch command {
	case "tokenize":
		exec = session.Tokenize
	case "parse":
		exec = session.Parse
	case "evaluate":
		exec = session.Evaluate
	case "run":
		exec = session.Run
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", command)
		return internal.ExitUsage
	}

	source, err := readSource(filename)
	if err != nil {
		fmt.Fprintf(stderr, "Error reading file: %v\n", err)
		return internal.ExitUsage
	}

	logger.WithField("command", command).WithField("file", filename).Debug("start")
	return exec(source)
}

func loadConfig(path, logLevel string) (internal.Config, error) {
	cfg := internal.DefaultConfig()
	if path != "" {
		loaded, err := internal.LoadConfig(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, cfg.Validate()
}

func readSource(filename string) (string, error) {
	absPath, err := filepath.Abs(filename)
	if err != nil {
		return "", err
	}
	b, err := ioutil.ReadFile(absPath)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func historyPath(cfg internal.Config) string {
	if cfg.HistoryFile == "" || filepath.IsAbs(cfg.HistoryFile) {
		return cfg.HistoryFile
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return cfg.HistoryFile
	}
	return filepath.Join(home, cfg.HistoryFile)
}

func repl(session *internal.Session, cfg internal.Config, stdout, stderr io.Writer) int {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := historyPath(cfg)
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	for {
		source, ok := readEntry(ln, session)
		if !ok {
			fmt.Fprintln(stdout)
			return internal.ExitOK
		}
		if strings.TrimSpace(source) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(source, "\n", " "))

		// A bare expression prints its value, anything else runs as a program
		if session.IsExpression(source) {
			session.Evaluate(source)
		} else {
			session.Run(source)
		}
	}
}

// readEntry keeps prompting while the buffered input is an unfinished program
func readEntry(ln *liner.State, session *internal.Session) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			b.Reset()
			continue
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		source := b.String()
		if !session.Incomplete(source) || session.IsExpression(source) {
			return source, true
		}
	}
}
