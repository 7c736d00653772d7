package internal

// parser stores parser data
type parser struct {
	current int

	state *interpreterState
}

const maxFunctionParams = 255

func newParser(state *interpreterState) *parser {
	return &parser{state: state}
}

func (p *parser) parse() {
	for !p.isAtEnd() {
		st := p.parseStmt()
		// A statement that failed to parse comes back as nil once the
		// parser resynchronized, the error is already recorded
		if st != nil {
			p.state.stmts = append(p.state.stmts, st)
		}
	}
}

// parseExpression parses a single expression, returns nil on error
func (p *parser) parseExpression() (e expr) {
	defer func() {
		if r := recover(); r != nil {
			if _, isParseErr := r.(parseError); !isParseErr {
				panic(r)
			}
			e = nil
		}
	}()
	return p.expression()
}

func (p *parser) parseStmt() (s stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, isParseErr := r.(parseError); !isParseErr {
				panic(r)
			}
			p.synchronize()
			s = nil
		}
	}()
	return p.declaration()
}

func (p *parser) declaration() stmt {
	if p.match(tkClass) {
		return p.class()
	}
	if p.match(tkFun) {
		return p.fn(false)
	}
	if p.match(tkVar) {
		return p.varDecl()
	}
	return p.statement()
}

func (p *parser) class() stmt {
	name := p.consume(tkIdentifier, errExpectedClassName)

	var superclass *variableExpr
	if p.match(tkLess) {
		superclass = &variableExpr{
			name: p.consume(tkIdentifier, errExpectedSuperclassName),
		}
	}

	p.consume(tkLeftBrace, errExpectedClassBody)

	var methods []*fnStmt
	for !p.check(tkRightBrace) && !p.isAtEnd() {
		methods = append(methods, p.fn(true))
	}

	p.consume(tkRightBrace, errUnclosedClassBody)

	return &classStmt{
		name:       name,
		superclass: superclass,
		methods:    methods,
	}
}

func (p *parser) fn(method bool) *fnStmt {
	errName, errParen, errBody := errExpectedFunctionName, errExpectedParenFunction, errExpectedFunctionBody
	if method {
		errName, errParen, errBody = errExpectedMethodName, errExpectedParenMethod, errExpectedMethodBody
	}

	name := p.consume(tkIdentifier, errName)
	p.consume(tkLeftParen, errParen)

	var params []*token
	if !p.check(tkRightParen) {
		for {
			if len(params) >= maxFunctionParams {
				p.state.tokenError(errMaxParameters, p.peek())
			}
			params = append(params, p.consume(tkIdentifier, errExpectedParamName))
			if !p.match(tkComma) {
				break
			}
		}
	}
	p.consume(tkRightParen, errUnclosedParams)

	p.consume(tkLeftBrace, errBody)
	body := p.block()

	return &fnStmt{
		name:   name,
		params: params,
		body:   body,
	}
}

func (p *parser) varDecl() stmt {
	name := p.consume(tkIdentifier, errExpectedVarName)

	var init expr
	if p.match(tkEqual) {
		init = p.expression()
	}
	p.consume(tkSemicolon, errExpectedSemicolonVar)

	return &varStmt{
		name:        name,
		initializer: init,
	}
}

func (p *parser) statement() stmt {
	if p.match(tkFor) {
		return p.forLoop()
	}
	if p.match(tkIf) {
		return p.ifStmt()
	}
	if p.match(tkPrint) {
		return p.printStmt()
	}
	if p.match(tkReturn) {
		return p.ret()
	}
	if p.match(tkWhile) {
		return p.while()
	}
	if p.match(tkLeftBrace) {
		return &blockStmt{stmts: p.block()}
	}
	return p.expressionStmt()
}

// forLoop desugars into an optional initializer followed by a while loop
// whose body runs the increment after the original body
func (p *parser) forLoop() stmt {
	keyword := p.previous()
	p.consume(tkLeftParen, errExpectedParenFor)

	var init stmt
	if p.match(tkSemicolon) {
		init = nil
	} else if p.match(tkVar) {
		init = p.varDecl()
	} else {
		init = p.expressionStmt()
	}

	var cond expr
	if !p.check(tkSemicolon) {
		cond = p.expression()
	}
	p.consume(tkSemicolon, errExpectedSemicolonLoop)

	var inc expr
	if !p.check(tkRightParen) {
		inc = p.expression()
	}
	p.consume(tkRightParen, errUnclosedForClauses)

	body := p.statement()

	if inc != nil {
		body = &blockStmt{stmts: []stmt{
			body,
			&expressionStmt{expression: inc},
		}}
	}
	if cond == nil {
		cond = &literalExpr{value: true}
	}
	body = &whileStmt{
		keyword:   keyword,
		condition: cond,
		body:      body,
	}
	if init != nil {
		body = &blockStmt{stmts: []stmt{init, body}}
	}
	return body
}

func (p *parser) ifStmt() stmt {
	st := &ifStmt{
		keyword: p.previous(),
	}

	p.consume(tkLeftParen, errExpectedParenIf)
	st.condition = p.expression()
	p.consume(tkRightParen, errUnclosedIfCond)

	st.thenBranch = p.statement()
	if p.match(tkElse) {
		st.elseBranch = p.statement()
	}

	return st
}

func (p *parser) printStmt() stmt {
	keyword := p.previous()
	value := p.expression()
	p.consume(tkSemicolon, errExpectedSemicolonValue)
	return &printStmt{
		keyword:    keyword,
		expression: value,
	}
}

func (p *parser) ret() stmt {
	var value expr
	keyword := p.previous()
	if !p.check(tkSemicolon) {
		value = p.expression()
	}
	p.consume(tkSemicolon, errExpectedSemicolonReturn)
	return &returnStmt{
		keyword: keyword,
		value:   value,
	}
}

func (p *parser) while() stmt {
	keyword := p.previous()
	p.consume(tkLeftParen, errExpectedParenWhile)
	cond := p.expression()
	p.consume(tkRightParen, errUnclosedCondition)
	body := p.statement()
	return &whileStmt{
		keyword:   keyword,
		condition: cond,
		body:      body,
	}
}

func (p *parser) block() []stmt {
	stmts := make([]stmt, 0)
	for !p.check(tkRightBrace) && !p.isAtEnd() {
		if st := p.parseStmt(); st != nil {
			stmts = append(stmts, st)
		}
	}
	p.consume(tkRightBrace, errUnclosedBlock)
	return stmts
}

func (p *parser) expressionStmt() stmt {
	e := p.expression()
	p.consume(tkSemicolon, errExpectedSemicolonExpr)
	return &expressionStmt{expression: e}
}

func (p *parser) expression() expr {
	return p.assignment()
}

func (p *parser) assignment() expr {
	e := p.or()
	if p.match(tkEqual) {
		equal := p.previous()
		value := p.assignment()

		switch target := e.(type) {
		case *variableExpr:
			return &assignExpr{
				name:  target.name,
				value: value,
			}
		case *getExpr:
			return &setExpr{
				object: target.object,
				name:   target.name,
				value:  value,
			}
		}

		// Reported but not thrown, the parser is not confused
		p.state.tokenError(errInvalidAssignment, equal)
	}
	return e
}

func (p *parser) or() expr {
	e := p.and()
	for p.match(tkOr) {
		operator := p.previous()
		right := p.and()
		e = &logicalExpr{
			left:     e,
			operator: operator,
			right:    right,
		}
	}
	return e
}

func (p *parser) and() expr {
	e := p.equality()
	for p.match(tkAnd) {
		operator := p.previous()
		right := p.equality()
		e = &logicalExpr{
			left:     e,
			operator: operator,
			right:    right,
		}
	}
	return e
}

func (p *parser) equality() expr {
	e := p.comparison()
	for p.match(tkEqualEqual, tkBangEqual) {
		operator := p.previous()
		right := p.comparison()
		e = &binaryExpr{
			left:     e,
			operator: operator,
			right:    right,
		}
	}
	return e
}

func (p *parser) comparison() expr {
	e := p.term()
	for p.match(tkGreater, tkGreaterEqual, tkLess, tkLessEqual) {
		operator := p.previous()
		right := p.term()
		e = &binaryExpr{
			left:     e,
			operator: operator,
			right:    right,
		}
	}
	return e
}

func (p *parser) term() expr {
	e := p.factor()
	for p.match(tkPlus, tkMinus) {
		operator := p.previous()
		right := p.factor()
		e = &binaryExpr{
			left:     e,
			operator: operator,
			right:    right,
		}
	}
	return e
}

func (p *parser) factor() expr {
	e := p.unary()
	for p.match(tkSlash, tkStar) {
		operator := p.previous()
		right := p.unary()
		e = &binaryExpr{
			left:     e,
			operator: operator,
			right:    right,
		}
	}
	return e
}

func (p *parser) unary() expr {
	if p.match(tkBang, tkMinus) {
		operator := p.previous()
		right := p.unary()
		return &unaryExpr{
			operator: operator,
			right:    right,
		}
	}
	return p.call()
}

func (p *parser) call() expr {
	e := p.primary()
	for {
		if p.match(tkLeftParen) {
			e = p.finishCall(e)
		} else if p.match(tkDot) {
			name := p.consume(tkIdentifier, errExpectedProp)
			e = &getExpr{
				object: e,
				name:   name,
			}
		} else {
			break
		}
	}
	return e
}

func (p *parser) finishCall(callee expr) expr {
	arguments := make([]expr, 0)
	if !p.check(tkRightParen) {
		for {
			if len(arguments) >= maxFunctionParams {
				p.state.tokenError(errMaxArguments, p.peek())
			}
			arguments = append(arguments, p.expression())
			if !p.match(tkComma) {
				break
			}
		}
	}
	paren := p.consume(tkRightParen, errUnclosedArguments)
	return &callExpr{
		callee:    callee,
		paren:     paren,
		arguments: arguments,
	}
}

func (p *parser) primary() expr {
	if p.match(tkFalse) {
		return &literalExpr{value: false}
	}
	if p.match(tkTrue) {
		return &literalExpr{value: true}
	}
	if p.match(tkNil) {
		return &literalExpr{value: nil}
	}
	if p.match(tkNumber, tkString) {
		return &literalExpr{value: p.previous().literal}
	}
	if p.match(tkSuper) {
		keyword := p.previous()
		p.consume(tkDot, errExpectedDot)
		return &superExpr{
			keyword: keyword,
			method:  p.consume(tkIdentifier, errExpectedSuperMethod),
		}
	}
	if p.match(tkThis) {
		return &thisExpr{keyword: p.previous()}
	}
	if p.match(tkIdentifier) {
		return &variableExpr{name: p.previous()}
	}
	if p.match(tkLeftParen) {
		e := p.expression()
		p.consume(tkRightParen, errUnclosedParen)
		return &groupingExpr{expression: e}
	}

	p.state.fatalError(errExpectExpr, p.peek())
	return nil
}

func (p *parser) consume(tk tokenType, err error) *token {
	if p.check(tk) {
		return p.advance()
	}

	p.state.fatalError(err, p.peek())
	return nil
}

func (p *parser) advance() *token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *parser) match(tokens ...tokenType) bool {
	for _, tk := range tokens {
		if p.check(tk) {
			p.current++
			return true
		}
	}
	return false
}

func (p *parser) check(tk tokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().token == tk
}

func (p *parser) peek() *token {
	return &p.state.tokens[p.current]
}

func (p *parser) previous() *token {
	return &p.state.tokens[p.current-1]
}

func (p *parser) isAtEnd() bool {
	return p.peek().token == tkEOF
}

// synchronize discards tokens until the next statement boundary
func (p *parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().token == tkSemicolon {
			return
		}
		switch p.peek().token {
		case tkClass, tkFun, tkVar, tkFor, tkIf, tkWhile, tkPrint, tkReturn:
			return
		}

		p.advance()
	}
}
