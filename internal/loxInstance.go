package internal

type loxInstance struct {
	class  *loxClass
	fields map[string]interface{}
}

func newLoxInstance(class *loxClass) *loxInstance {
	return &loxInstance{
		class:  class,
		fields: make(map[string]interface{}),
	}
}

// get looks at fields first, then methods through the class chain.
// Methods come back bound to the instance.
func (o *loxInstance) get(tk *token) (interface{}, error) {
	if val, ok := o.fields[tk.lexeme]; ok {
		return val, nil
	}
	if method := o.class.findMethod(tk.lexeme); method != nil {
		return method.bind(o), nil
	}
	return nil, undefinedProp(tk.lexeme)
}

func (o *loxInstance) set(name *token, value interface{}) {
	o.fields[name.lexeme] = value
}

func (o *loxInstance) String() string {
	return o.class.name + " instance"
}
