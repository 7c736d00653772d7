package internal

import "fmt"

type functionType int

const (
	fnNone functionType = iota
	fnFunction
	fnInitializer
	fnMethod
)

type classType int

const (
	classNone classType = iota
	classClass
	classSubclass
)

// resolver computes, for every local variable reference, how many scopes
// separate the use from its declaration. Globals are left unresolved and
// looked up dynamically at run time.
type resolver struct {
	// scope maps name -> finished initializing
	scopes []map[string]bool

	currentFunction functionType
	currentClass    classType

	locals map[expr]int
	state  *interpreterState
}

func newResolver(state *interpreterState, locals map[expr]int) *resolver {
	return &resolver{
		locals: locals,
		state:  state,
	}
}

func (r *resolver) resolve(stmts []stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *resolver) resolveStmt(s stmt) {
	switch s := s.(type) {
	case *blockStmt:
		r.beginScope()
		r.resolve(s.stmts)
		r.endScope()
	case *classStmt:
		r.resolveClass(s)
	case *expressionStmt:
		r.resolveExpr(s.expression)
	case *fnStmt:
		r.declare(s.name)
		r.define(s.name)
		r.resolveFunction(s, fnFunction)
	case *ifStmt:
		r.resolveExpr(s.condition)
		r.resolveStmt(s.thenBranch)
		if s.elseBranch != nil {
			r.resolveStmt(s.elseBranch)
		}
	case *printStmt:
		r.resolveExpr(s.expression)
	case *returnStmt:
		if r.currentFunction == fnNone {
			r.state.tokenError(errTopLevelReturn, s.keyword)
		}
		if s.value != nil {
			if r.currentFunction == fnInitializer {
				r.state.tokenError(errInitializerReturn, s.keyword)
			}
			r.resolveExpr(s.value)
		}
	case *varStmt:
		r.declare(s.name)
		if s.initializer != nil {
			r.resolveExpr(s.initializer)
		}
		r.define(s.name)
	case *whileStmt:
		r.resolveExpr(s.condition)
		r.resolveStmt(s.body)
	default:
		panic(fmt.Sprintf("resolver: unexpected statement %T", s))
	}
}

func (r *resolver) resolveClass(s *classStmt) {
	enclosingClass := r.currentClass
	r.currentClass = classClass
	defer func() {
		r.currentClass = enclosingClass
	}()

	r.declare(s.name)
	r.define(s.name)

	if s.superclass != nil {
		if s.superclass.name.lexeme == s.name.lexeme {
			r.state.tokenError(errInheritsItself, s.superclass.name)
		}
		r.currentClass = classSubclass
		r.resolveExpr(s.superclass)

		r.beginScope()
		r.peekScope()["super"] = true
		defer r.endScope()
	}

	r.beginScope()
	r.peekScope()["this"] = true
	for _, method := range s.methods {
		declaration := fnMethod
		if method.name.lexeme == "init" {
			declaration = fnInitializer
		}
		r.resolveFunction(method, declaration)
	}
	r.endScope()
}

func (r *resolver) resolveFunction(fn *fnStmt, kind functionType) {
	enclosingFunction := r.currentFunction
	r.currentFunction = kind

	r.beginScope()
	for _, param := range fn.params {
		r.declare(param)
		r.define(param)
	}
	r.resolve(fn.body)
	r.endScope()

	r.currentFunction = enclosingFunction
}

func (r *resolver) resolveExpr(e expr) {
	switch e := e.(type) {
	case *assignExpr:
		r.resolveExpr(e.value)
		r.resolveLocal(e, e.name)
	case *binaryExpr:
		r.resolveExpr(e.left)
		r.resolveExpr(e.right)
	case *callExpr:
		r.resolveExpr(e.callee)
		for _, arg := range e.arguments {
			r.resolveExpr(arg)
		}
	case *getExpr:
		r.resolveExpr(e.object)
	case *groupingExpr:
		r.resolveExpr(e.expression)
	case *literalExpr:
	case *logicalExpr:
		r.resolveExpr(e.left)
		r.resolveExpr(e.right)
	case *setExpr:
		r.resolveExpr(e.value)
		r.resolveExpr(e.object)
	case *superExpr:
		if r.currentClass == classNone {
			r.state.tokenError(errSuperOutsideClass, e.keyword)
		} else if r.currentClass != classSubclass {
			r.state.tokenError(errSuperWithoutSuperclass, e.keyword)
		}
		r.resolveLocal(e, e.keyword)
	case *thisExpr:
		if r.currentClass == classNone {
			r.state.tokenError(errThisOutsideClass, e.keyword)
			return
		}
		r.resolveLocal(e, e.keyword)
	case *unaryExpr:
		r.resolveExpr(e.right)
	case *variableExpr:
		if len(r.scopes) != 0 {
			if ready, declared := r.peekScope()[e.name.lexeme]; declared && !ready {
				r.state.tokenError(errOwnInitializer, e.name)
			}
		}
		r.resolveLocal(e, e.name)
	default:
		panic(fmt.Sprintf("resolver: unexpected expression %T", e))
	}
}

func (r *resolver) resolveLocal(e expr, name *token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.lexeme]; ok {
			r.locals[e] = len(r.scopes) - 1 - i
			return
		}
	}
	// Not found: global
}

func (r *resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *resolver) peekScope() map[string]bool {
	return r.scopes[len(r.scopes)-1]
}

func (r *resolver) declare(name *token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.peekScope()
	if _, ok := scope[name.lexeme]; ok {
		r.state.tokenError(errAlreadyDeclared, name)
	}
	scope[name.lexeme] = false
}

func (r *resolver) define(name *token) {
	if len(r.scopes) == 0 {
		return
	}
	r.peekScope()[name.lexeme] = true
}
