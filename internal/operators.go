package internal

type numberOperation func(x, y float64) interface{}

// numberOperations are the binary operators defined only on two numbers
var numberOperations = map[tokenType]numberOperation{
	tkMinus: func(x, y float64) interface{} {
		return x - y
	},
	tkSlash: func(x, y float64) interface{} {
		return x / y
	},
	tkStar: func(x, y float64) interface{} {
		return x * y
	},
	tkGreater: func(x, y float64) interface{} {
		return x > y
	},
	tkGreaterEqual: func(x, y float64) interface{} {
		return x >= y
	},
	tkLess: func(x, y float64) interface{} {
		return x < y
	},
	tkLessEqual: func(x, y float64) interface{} {
		return x <= y
	},
}
