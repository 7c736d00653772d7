package internal

// env is one scope frame. Frames are shared by every closure that
// captured them, so mutations are visible through all holders.
type env struct {
	enclosing *env
	values    map[string]interface{}
}

func newEnv(enclosing *env) *env {
	return &env{
		enclosing: enclosing,
		values:    make(map[string]interface{}),
	}
}

func (e *env) get(name *token) (interface{}, error) {
	for current := e; current != nil; current = current.enclosing {
		if value, ok := current.values[name.lexeme]; ok {
			return value, nil
		}
	}
	return nil, undefinedVar(name.lexeme)
}

func (e *env) define(name string, value interface{}) {
	e.values[name] = value
}

func (e *env) assign(name *token, value interface{}) error {
	for current := e; current != nil; current = current.enclosing {
		if _, ok := current.values[name.lexeme]; ok {
			current.values[name.lexeme] = value
			return nil
		}
	}
	return undefinedVar(name.lexeme)
}

func (e *env) ancestor(distance int) *env {
	current := e
	for i := 0; i < distance; i++ {
		current = current.enclosing
	}
	return current
}

// getAt reads a name the resolver placed exactly distance frames out
func (e *env) getAt(distance int, name string) interface{} {
	return e.ancestor(distance).values[name]
}

func (e *env) assignAt(distance int, name *token, value interface{}) {
	e.ancestor(distance).values[name.lexeme] = value
}
