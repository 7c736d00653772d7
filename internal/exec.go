package internal

import (
	"fmt"
	"math"
	"os"
	"strconv"
)

// completion is what executing a statement produces: either it ran to the
// end or it hit a return whose value travels up to the enclosing call
type completion struct {
	returning bool
	value     interface{}
}

var normalCompletion = completion{}

type exec struct {
	state *interpreterState

	globals *env
	env     *env

	// locals holds the scope distance computed by the resolver
	locals map[expr]int

	depth    int
	maxDepth int
}

func newExec(maxDepth int) *exec {
	globals := newEnv(nil)
	defineGlobals(globals)
	return &exec{
		globals:  globals,
		env:      globals,
		locals:   make(map[expr]int),
		maxDepth: maxDepth,
	}
}

// interpret runs every statement of state, returns false on runtime error
func (e *exec) interpret(state *interpreterState) (ok bool) {
	defer e.recoverRuntimeError(state, &ok)
	e.reset(state)
	for _, s := range state.stmts {
		e.execute(s)
	}
	return true
}

// interpretExpr evaluates a single expression for the evaluate command
func (e *exec) interpretExpr(state *interpreterState, ex expr) (value interface{}, ok bool) {
	defer e.recoverRuntimeError(state, &ok)
	e.reset(state)
	return e.evaluate(ex), true
}

func (e *exec) reset(state *interpreterState) {
	e.state = state
	e.env = e.globals
	e.depth = 0
}

func (e *exec) recoverRuntimeError(state *interpreterState, ok *bool) {
	r := recover()
	if r == nil {
		return
	}
	runErr, isRunErr := r.(*runtimeError)
	if !isRunErr {
		panic(r)
	}
	state.log.WithField("line", runErr.token.line).Debugf("runtime error: %v", runErr.err)
	state.logger.Fprintln(os.Stderr, runErr.Error())
	*ok = false
}

func (e *exec) execute(s stmt) completion {
	switch s := s.(type) {
	case *blockStmt:
		return e.executeBlock(s.stmts, newEnv(e.env))
	case *classStmt:
		e.executeClass(s)
	case *expressionStmt:
		e.evaluate(s.expression)
	case *fnStmt:
		e.env.define(s.name.lexeme, &loxFunction{
			declaration:   s,
			closure:       e.env,
			isInitializer: false,
		})
	case *ifStmt:
		if truthy(e.evaluate(s.condition)) {
			return e.execute(s.thenBranch)
		}
		if s.elseBranch != nil {
			return e.execute(s.elseBranch)
		}
	case *printStmt:
		e.state.logger.Println(stringify(e.evaluate(s.expression)))
	case *returnStmt:
		var value interface{}
		if s.value != nil {
			value = e.evaluate(s.value)
		}
		return completion{returning: true, value: value}
	case *varStmt:
		var value interface{}
		if s.initializer != nil {
			value = e.evaluate(s.initializer)
		}
		e.env.define(s.name.lexeme, value)
	case *whileStmt:
		for truthy(e.evaluate(s.condition)) {
			if result := e.execute(s.body); result.returning {
				return result
			}
		}
	default:
		panic(fmt.Sprintf("exec: unexpected statement %T", s))
	}
	return normalCompletion
}

func (e *exec) executeBlock(stmts []stmt, env *env) completion {
	previous := e.env
	defer func() {
		e.env = previous
	}()
	e.env = env
	for _, s := range stmts {
		if result := e.execute(s); result.returning {
			return result
		}
	}
	return normalCompletion
}

func (e *exec) executeClass(s *classStmt) {
	var superclass *loxClass
	if s.superclass != nil {
		class, isClass := e.evaluate(s.superclass).(*loxClass)
		if !isClass {
			e.state.runtimeErr(errSuperclassNotClass, s.superclass.name)
		}
		superclass = class
	}

	e.env.define(s.name.lexeme, nil)

	closure := e.env
	if superclass != nil {
		closure = newEnv(e.env)
		closure.define("super", superclass)
	}

	methods := make(map[string]*loxFunction, len(s.methods))
	for _, method := range s.methods {
		methods[method.name.lexeme] = &loxFunction{
			declaration:   method,
			closure:       closure,
			isInitializer: method.name.lexeme == "init",
		}
	}

	class := &loxClass{
		name:       s.name.lexeme,
		superclass: superclass,
		methods:    methods,
	}
	if _, ok := class.depth(); !ok {
		e.state.runtimeErr(errInheritanceDepth, s.name)
	}

	e.env.define(s.name.lexeme, class)
}

func (e *exec) evaluate(ex expr) interface{} {
	switch ex := ex.(type) {
	case *assignExpr:
		value := e.evaluate(ex.value)
		if distance, ok := e.locals[ex]; ok {
			e.env.assignAt(distance, ex.name, value)
		} else if err := e.globals.assign(ex.name, value); err != nil {
			e.state.runtimeErr(err, ex.name)
		}
		return value
	case *binaryExpr:
		return e.evaluateBinary(ex)
	case *callExpr:
		return e.evaluateCall(ex)
	case *getExpr:
		object, isInstance := e.evaluate(ex.object).(*loxInstance)
		if !isInstance {
			e.state.runtimeErr(errOnlyInstanceProps, ex.name)
		}
		value, err := object.get(ex.name)
		if err != nil {
			e.state.runtimeErr(err, ex.name)
		}
		return value
	case *groupingExpr:
		return e.evaluate(ex.expression)
	case *literalExpr:
		return ex.value
	case *logicalExpr:
		left := e.evaluate(ex.left)
		if ex.operator.token == tkOr {
			if truthy(left) {
				return left
			}
		} else if !truthy(left) {
			return left
		}
		return e.evaluate(ex.right)
	case *setExpr:
		object, isInstance := e.evaluate(ex.object).(*loxInstance)
		if !isInstance {
			e.state.runtimeErr(errOnlyInstanceFields, ex.name)
		}
		value := e.evaluate(ex.value)
		object.set(ex.name, value)
		return value
	case *superExpr:
		return e.evaluateSuper(ex)
	case *thisExpr:
		return e.lookUpVariable(ex.keyword, ex)
	case *unaryExpr:
		right := e.evaluate(ex.right)
		if ex.operator.token == tkBang {
			return !truthy(right)
		}
		value, isNum := right.(float64)
		if !isNum {
			e.state.runtimeErr(errOnlyNumber, ex.operator)
		}
		return -value
	case *variableExpr:
		return e.lookUpVariable(ex.name, ex)
	default:
		panic(fmt.Sprintf("exec: unexpected expression %T", ex))
	}
}

func (e *exec) evaluateBinary(ex *binaryExpr) interface{} {
	left := e.evaluate(ex.left)
	right := e.evaluate(ex.right)
	if apply, ok := numberOperations[ex.operator.token]; ok {
		leftNum, rightNum := e.getNums(ex, left, right)
		return apply(leftNum, rightNum)
	}
	switch ex.operator.token {
	case tkEqualEqual:
		return isEqual(left, right)
	case tkBangEqual:
		return !isEqual(left, right)
	case tkPlus:
		switch l := left.(type) {
		case float64:
			if r, ok := right.(float64); ok {
				return l + r
			}
		case string:
			if r, ok := right.(string); ok {
				return l + r
			}
		}
		e.state.runtimeErr(errNumbersOrStrings, ex.operator)
	}
	panic(fmt.Sprintf("exec: unexpected binary operator %v", ex.operator.token))
}

func (e *exec) getNums(ex *binaryExpr, left, right interface{}) (float64, float64) {
	leftNum, leftOk := left.(float64)
	rightNum, rightOk := right.(float64)
	if !leftOk || !rightOk {
		e.state.runtimeErr(errOnlyNumbers, ex.operator)
	}
	return leftNum, rightNum
}

func (e *exec) evaluateCall(ex *callExpr) interface{} {
	callee := e.evaluate(ex.callee)
	arguments := make([]interface{}, len(ex.arguments))
	for i := range ex.arguments {
		arguments[i] = e.evaluate(ex.arguments[i])
	}

	fn, isFn := callee.(callable)
	if !isFn {
		e.state.runtimeErr(errOnlyFunction, ex.paren)
	}

	if len(arguments) != fn.arity() {
		e.state.runtimeErr(arityError{expected: fn.arity(), got: len(arguments)}, ex.paren)
	}

	e.depth++
	defer func() {
		e.depth--
	}()
	if e.depth > e.maxDepth {
		e.state.runtimeErr(errStackOverflow, ex.paren)
	}

	return fn.call(e, arguments)
}

// evaluateSuper looks the method up starting at the superclass of the
// class that defined the running method, bound to the current 'this'
func (e *exec) evaluateSuper(ex *superExpr) interface{} {
	distance, ok := e.locals[ex]
	if !ok {
		e.state.runtimeErr(errSuperOutsideClass, ex.keyword)
	}
	superclass, isClass := e.env.getAt(distance, "super").(*loxClass)
	object, isInstance := e.env.getAt(distance-1, "this").(*loxInstance)
	if !isClass || !isInstance {
		e.state.runtimeErr(errSuperOutsideClass, ex.keyword)
	}

	method := superclass.findMethod(ex.method.lexeme)
	if method == nil {
		e.state.runtimeErr(undefinedProp(ex.method.lexeme), ex.method)
	}
	return method.bind(object)
}

func (e *exec) lookUpVariable(name *token, ex expr) interface{} {
	if distance, ok := e.locals[ex]; ok {
		return e.env.getAt(distance, name.lexeme)
	}
	value, err := e.globals.get(name)
	if err != nil {
		e.state.runtimeErr(err, name)
	}
	return value
}

// truthy: nil and false are falsy, everything else is truthy
func truthy(value interface{}) bool {
	if value == nil {
		return false
	}
	if valueBool, isBool := value.(bool); isBool {
		return valueBool
	}
	return true
}

func isEqual(left, right interface{}) bool {
	if left == nil && right == nil {
		return true
	}
	if left == nil {
		return false
	}
	return left == right
}

func stringify(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return formatNumber(v)
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprintf("%v", value)
}

// formatNumber drops the fractional part of integral numbers: 3.0 -> 3
func formatNumber(n float64) string {
	switch {
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	case math.IsNaN(n):
		return "NaN"
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}
