package internal

// maxInheritanceDepth bounds every walk up the superclass chain
const maxInheritanceDepth = 256

type loxClass struct {
	name       string
	superclass *loxClass
	methods    map[string]*loxFunction
}

// depth returns the number of ancestors, or false if the chain exceeds
// maxInheritanceDepth
func (c *loxClass) depth() (int, bool) {
	depth := 0
	for current := c.superclass; current != nil; current = current.superclass {
		depth++
		if depth > maxInheritanceDepth {
			return depth, false
		}
	}
	return depth, true
}

func (c *loxClass) findMethod(name string) *loxFunction {
	current := c
	for i := 0; current != nil && i <= maxInheritanceDepth; i++ {
		if method, ok := current.methods[name]; ok {
			return method
		}
		current = current.superclass
	}
	return nil
}

func (c *loxClass) arity() int {
	if init := c.findMethod("init"); init != nil {
		return init.arity()
	}
	return 0
}

// call allocates an instance and runs init on it. The result is always
// the instance, whatever init returns.
func (c *loxClass) call(exec *exec, arguments []interface{}) interface{} {
	obj := newLoxInstance(c)
	if init := c.findMethod("init"); init != nil {
		init.bind(obj).call(exec, arguments)
	}
	return obj
}

func (c *loxClass) String() string {
	return c.name
}
