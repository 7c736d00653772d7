package internal

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

type parseError struct {
	err   error
	line  int
	where string
}

func (e parseError) Error() string {
	return fmt.Sprintf("[line %d] Error%s: %s", e.line, e.where, e.err.Error())
}

func (e parseError) Unwrap() error {
	return e.err
}

type runtimeError struct {
	err   error
	token *token
}

func (e *runtimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d]", e.err.Error(), e.token.line)
}

func (e *runtimeError) Unwrap() error {
	return e.err
}

// arityError reports a call with the wrong number of arguments
type arityError struct {
	expected int
	got      int
}

func (e arityError) Error() string {
	return fmt.Sprintf("Expected %d arguments but got %d.", e.expected, e.got)
}

// interpreterState stores the state of one pass through the pipeline
type interpreterState struct {
	source string
	tokens []token
	stmts  []stmt

	errors       []parseError
	runtimeError *runtimeError

	logger IPrinter
	log    *logrus.Entry
}

func newInterpreterState(source string, p IPrinter, log *logrus.Entry) *interpreterState {
	return &interpreterState{
		source: source,
		errors: make([]parseError, 0),
		logger: p,
		log:    log,
	}
}

func (s *interpreterState) setError(err error, line int, where string) {
	s.errors = append(s.errors, parseError{
		err:   err,
		line:  line,
		where: where,
	})
}

// tokenError records an error located at tk
func (s *interpreterState) tokenError(err error, tk *token) {
	if tk.token == tkEOF {
		s.setError(err, tk.line, " at end")
		return
	}
	s.setError(err, tk.line, " at '"+tk.lexeme+"'")
}

// fatalError records an error and unwinds to the closest synchronization point
func (s *interpreterState) fatalError(err error, tk *token) {
	s.tokenError(err, tk)
	panic(s.errors[len(s.errors)-1])
}

func (s *interpreterState) runtimeErr(err error, tk *token) {
	s.runtimeError = &runtimeError{
		err:   err,
		token: tk,
	}
	panic(s.runtimeError)
}

// Valid returns true if no compile error was recorded
func (s *interpreterState) Valid() bool {
	return len(s.errors) == 0
}

// PrintErrors prints all compile errors and reports whether there were any
func (s *interpreterState) PrintErrors() bool {
	for _, e := range s.errors {
		s.logger.Fprintln(os.Stderr, e.Error())
	}
	return !s.Valid()
}

// Lexer errors
var errUnexpectedChar = errors.New("Unexpected character")
var errUnterminatedString = errors.New("Unterminated string.")

// Parser errors
var errExpectExpr = errors.New("Expect expression.")
var errUnclosedParen = errors.New("Expect ')' after expression.")
var errExpectedSemicolonValue = errors.New("Expect ';' after value.")
var errExpectedSemicolonExpr = errors.New("Expect ';' after expression.")
var errExpectedVarName = errors.New("Expect variable name.")
var errExpectedSemicolonVar = errors.New("Expect ';' after variable declaration.")
var errUnclosedBlock = errors.New("Expect '}' after block.")
var errExpectedParenIf = errors.New("Expect '(' after 'if'.")
var errUnclosedIfCond = errors.New("Expect ')' after if condition.")
var errExpectedParenWhile = errors.New("Expect '(' after 'while'.")
var errUnclosedCondition = errors.New("Expect ')' after condition.")
var errExpectedParenFor = errors.New("Expect '(' after 'for'.")
var errExpectedSemicolonLoop = errors.New("Expect ';' after loop condition.")
var errUnclosedForClauses = errors.New("Expect ')' after for clauses.")
var errExpectedFunctionName = errors.New("Expect function name.")
var errExpectedMethodName = errors.New("Expect method name.")
var errExpectedParenFunction = errors.New("Expect '(' after function name.")
var errExpectedParenMethod = errors.New("Expect '(' after method name.")
var errExpectedParamName = errors.New("Expect parameter name.")
var errUnclosedParams = errors.New("Expect ')' after parameters.")
var errExpectedFunctionBody = errors.New("Expect '{' before function body.")
var errExpectedMethodBody = errors.New("Expect '{' before method body.")
var errExpectedSemicolonReturn = errors.New("Expect ';' after return value.")
var errExpectedClassName = errors.New("Expect class name.")
var errExpectedSuperclassName = errors.New("Expect superclass name.")
var errExpectedClassBody = errors.New("Expect '{' before class body.")
var errUnclosedClassBody = errors.New("Expect '}' after class body.")
var errExpectedProp = errors.New("Expect property name after '.'.")
var errUnclosedArguments = errors.New("Expect ')' after arguments.")
var errExpectedDot = errors.New("Expect '.' after 'super'.")
var errExpectedSuperMethod = errors.New("Expect superclass method name.")
var errInvalidAssignment = errors.New("Invalid assignment target.")
var errMaxArguments = errors.New("Can't have more than 255 arguments.")
var errMaxParameters = errors.New("Can't have more than 255 parameters.")

// Resolver errors
var errOwnInitializer = errors.New("Can't read local variable in its own initializer.")
var errAlreadyDeclared = errors.New("Already a variable with this name in this scope.")
var errTopLevelReturn = errors.New("Can't return from top-level code.")
var errInitializerReturn = errors.New("Can't return a value from an initializer.")
var errThisOutsideClass = errors.New("Can't use 'this' outside of a class.")
var errSuperOutsideClass = errors.New("Can't use 'super' outside of a class.")
var errSuperWithoutSuperclass = errors.New("Can't use 'super' in a class with no superclass.")
var errInheritsItself = errors.New("A class can't inherit from itself.")

// Runtime errors
var errOnlyNumber = errors.New("Operand must be a number.")
var errOnlyNumbers = errors.New("Operands must be numbers.")
var errNumbersOrStrings = errors.New("Operands must be two numbers or two strings.")
var errUndefinedVar = errors.New("Undefined variable")
var errUndefinedProp = errors.New("Undefined property")
var errOnlyFunction = errors.New("Can only call functions and classes.")
var errOnlyInstanceProps = errors.New("Only instances have properties.")
var errOnlyInstanceFields = errors.New("Only instances have fields.")
var errSuperclassNotClass = errors.New("Superclass must be a class.")
var errStackOverflow = errors.New("Stack overflow.")
var errInheritanceDepth = errors.New("Inheritance chain is too deep.")

func undefinedVar(name string) error {
	return fmt.Errorf("%w '%s'.", errUndefinedVar, name)
}

func undefinedProp(name string) error {
	return fmt.Errorf("%w '%s'.", errUndefinedProp, name)
}
