package internal

import (
	"io"
	"io/ioutil"
	"time"

	"github.com/sirupsen/logrus"
)

// Exit statuses reported by the pipeline
const (
	ExitOK      = 0
	ExitUsage   = 1
	ExitCompile = 65
	ExitRuntime = 70
)

// IPrinter printer interface
type IPrinter interface {
	Println(a ...interface{}) (n int, err error)
	Fprintf(w io.Writer, format string, a ...interface{}) (n int, err error)
	Fprintln(w io.Writer, a ...interface{}) (n int, err error)
}

// Session is one interpreter instance. Globals and resolved distances
// live as long as the session, so successive calls see earlier
// definitions.
type Session struct {
	exec    *exec
	printer IPrinter
	log     *logrus.Entry
}

// NewSession creates a fresh interpreter writing through p
func NewSession(p IPrinter, cfg Config) *Session {
	logger, err := cfg.Logger(ioutil.Discard)
	if err != nil {
		logger = logrus.New()
		logger.SetOutput(ioutil.Discard)
	}
	return NewSessionWithLogger(p, cfg, logger)
}

// NewSessionWithLogger is NewSession with a caller supplied logger
func NewSessionWithLogger(p IPrinter, cfg Config, logger *logrus.Logger) *Session {
	maxDepth := cfg.MaxCallDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxCallDepth
	}
	return &Session{
		exec:    newExec(maxDepth),
		printer: p,
		log:     logrus.NewEntry(logger),
	}
}

// RunSourceWithPrinter runs source code on a fresh interpreter instance
func RunSourceWithPrinter(source string, p IPrinter) int {
	return NewSession(p, DefaultConfig()).Run(source)
}

func (s *Session) scan(source string) *interpreterState {
	start := time.Now()
	state := newInterpreterState(source, s.printer, s.log)
	newLexer(state).scan()
	s.log.WithFields(logrus.Fields{
		"phase":   "scan",
		"tokens":  len(state.tokens),
		"errors":  len(state.errors),
		"elapsed": time.Since(start),
	}).Debug("phase done")
	return state
}

// Tokenize prints one line per token, lexical errors go to stderr
func (s *Session) Tokenize(source string) int {
	state := s.scan(source)
	for i := range state.tokens {
		s.printer.Println(state.tokens[i].String())
	}
	if state.PrintErrors() {
		return ExitCompile
	}
	return ExitOK
}

func (s *Session) parseExpression(source string) (*interpreterState, expr, bool) {
	state := s.scan(source)
	if state.PrintErrors() {
		return state, nil, false
	}
	start := time.Now()
	e := newParser(state).parseExpression()
	s.log.WithFields(logrus.Fields{
		"phase":   "parse",
		"errors":  len(state.errors),
		"elapsed": time.Since(start),
	}).Debug("phase done")
	if state.PrintErrors() {
		return state, nil, false
	}
	return state, e, true
}

// Parse prints the prefix rendering of a single expression
func (s *Session) Parse(source string) int {
	_, e, ok := s.parseExpression(source)
	if !ok {
		return ExitCompile
	}
	s.printer.Println(astPrinter{}.printExpr(e))
	return ExitOK
}

// Evaluate evaluates a single expression and prints its value
func (s *Session) Evaluate(source string) int {
	state, e, ok := s.parseExpression(source)
	if !ok {
		return ExitCompile
	}

	newResolver(state, s.exec.locals).resolveExpr(e)
	if state.PrintErrors() {
		return ExitCompile
	}

	value, ok := s.exec.interpretExpr(state, e)
	if !ok {
		return ExitRuntime
	}
	s.printer.Println(stringify(value))
	return ExitOK
}

// compile scans, parses and resolves a program, printing compile errors
func (s *Session) compile(source string) (*interpreterState, bool) {
	state := s.scan(source)
	if state.PrintErrors() {
		return state, false
	}

	start := time.Now()
	newParser(state).parse()
	s.log.WithFields(logrus.Fields{
		"phase":   "parse",
		"stmts":   len(state.stmts),
		"errors":  len(state.errors),
		"elapsed": time.Since(start),
	}).Debug("phase done")
	if state.PrintErrors() {
		return state, false
	}

	start = time.Now()
	newResolver(state, s.exec.locals).resolve(state.stmts)
	s.log.WithFields(logrus.Fields{
		"phase":   "resolve",
		"locals":  len(s.exec.locals),
		"errors":  len(state.errors),
		"elapsed": time.Since(start),
	}).Debug("phase done")
	if state.PrintErrors() {
		return state, false
	}
	return state, true
}

// Run executes a whole program
func (s *Session) Run(source string) int {
	state, ok := s.compile(source)
	if !ok {
		return ExitCompile
	}
	start := time.Now()
	ok = s.exec.interpret(state)
	s.log.WithFields(logrus.Fields{
		"phase":   "exec",
		"elapsed": time.Since(start),
	}).Debug("phase done")
	if !ok {
		return ExitRuntime
	}
	return ExitOK
}

// Incomplete reports whether source only failed because input ended
// early, e.g. an open block or a missing ';'
func (s *Session) Incomplete(source string) bool {
	state := newInterpreterState(source, s.printer, s.log)
	newLexer(state).scan()
	if len(state.errors) == 0 {
		newParser(state).parse()
	}
	if state.Valid() {
		return false
	}
	for _, e := range state.errors {
		if e.where != " at end" && e.err != errUnterminatedString {
			return false
		}
	}
	return true
}

// IsExpression reports whether source is exactly one expression
func (s *Session) IsExpression(source string) bool {
	state := newInterpreterState(source, s.printer, s.log)
	newLexer(state).scan()
	if !state.Valid() {
		return false
	}
	p := newParser(state)
	if p.parseExpression() == nil {
		return false
	}
	return state.Valid() && p.isAtEnd()
}
