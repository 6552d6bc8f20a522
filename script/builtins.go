package script

import (
	"fmt"
	"strconv"
	"strings"
)

// arity describes the argument counts a builtin accepts: either a fixed set
// of counts or any count from min upwards.
type arity struct {
	counts   []int
	min      int
	variadic bool
}

func exactly(counts ...int) arity { return arity{counts: counts} }
func atLeast(n int) arity         { return arity{min: n, variadic: true} }

func (a arity) accepts(n int) bool {
	if a.variadic {
		return n >= a.min
	}
	for _, c := range a.counts {
		if c == n {
			return true
		}
	}
	return false
}

func (a arity) String() string {
	if a.variadic {
		return "at least " + strconv.Itoa(a.min)
	}
	parts := make([]string, len(a.counts))
	for i, c := range a.counts {
		parts[i] = strconv.Itoa(c)
	}
	switch len(parts) {
	case 1:
		return parts[0]
	case 2:
		return parts[0] + " or " + parts[1]
	default:
		return strings.Join(parts[:len(parts)-1], ", ") + " or " + parts[len(parts)-1]
	}
}

// callFrame is what a builtin sees: its scalar arguments and the read-only
// angle parameters.
type callFrame struct {
	args   []float32
	a0, a1 float32
}

type builtinFunc func(call callFrame) Value

type builtin struct {
	name  FunctionName
	arity arity
	fn    builtinFunc
}

var builtins = buildRegistry()

func buildRegistry() [funcCount]builtin {
	var table [funcCount]builtin
	register := func(name FunctionName, ar arity, fn builtinFunc) {
		if !name.Valid() {
			panic(fmt.Sprintf("script: registering invalid builtin %d", int(name)))
		}
		if table[name].fn != nil {
			panic("script: builtin " + name.String() + " registered twice")
		}
		table[name] = builtin{name: name, arity: ar, fn: fn}
	}

	registerMathBuiltins(register)
	registerShapeBuiltins(register)

	for fn := FuncInvalid + 1; fn < funcCount; fn++ {
		if table[fn].fn == nil {
			panic("script: builtin " + fn.String() + " has no implementation")
		}
	}
	return table
}

type registerFunc func(name FunctionName, ar arity, fn builtinFunc)

func lookupBuiltin(name FunctionName) (builtin, bool) {
	if !name.Valid() {
		return builtin{}, false
	}
	return builtins[name], true
}

// Arity describes the accepted argument counts of f, e.g. "2 or 3".
func (f FunctionName) Arity() string {
	b, ok := lookupBuiltin(f)
	if !ok {
		return ""
	}
	return b.arity.String()
}

// AcceptsArgs reports whether f can be called with n arguments.
func (f FunctionName) AcceptsArgs(n int) bool {
	b, ok := lookupBuiltin(f)
	return ok && b.arity.accepts(n)
}

// scalar1 adapts a one-argument float function.
func scalar1(fn func(float32) float32) builtinFunc {
	return func(call callFrame) Value {
		return NewScalar(fn(call.args[0]))
	}
}

func scalar2(fn func(a, b float32) float32) builtinFunc {
	return func(call callFrame) Value {
		return NewScalar(fn(call.args[0], call.args[1]))
	}
}

func scalar3(fn func(a, b, c float32) float32) builtinFunc {
	return func(call callFrame) Value {
		return NewScalar(fn(call.args[0], call.args[1], call.args[2]))
	}
}
