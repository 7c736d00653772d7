package internal

import "time"

func defineGlobals(e *env) {
	defineClock(e)
}

// defineClock installs clock(), seconds since the Unix epoch
func defineClock(e *env) {
	clock := nativeFn{
		name:       "clock",
		arityValue: 0,
		callFn: func(exec *exec, arguments []interface{}) interface{} {
			return float64(time.Now().UnixNano()) / float64(time.Second)
		},
	}

	e.define(clock.name, &clock)
}
