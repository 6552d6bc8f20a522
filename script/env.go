package script

import (
	"maps"
	"slices"
)

// Env is the flat variable scope of one evaluation. The language has no
// nested scopes.
type Env struct {
	values map[string]Value
}

func newEnv(size int) *Env {
	return &Env{values: make(map[string]Value, size)}
}

func (e *Env) Get(name string) (Value, bool) {
	val, ok := e.values[name]
	return val, ok
}

func (e *Env) Define(name string, val Value) {
	e.values[name] = val
}

func (e *Env) Has(name string) bool {
	_, ok := e.values[name]
	return ok
}

// Names returns the bound names in sorted order.
func (e *Env) Names() []string {
	return slices.Sorted(maps.Keys(e.values))
}

func (e *Env) Clone() *Env {
	return &Env{values: maps.Clone(e.values)}
}
