package script

import (
	"context"
	"fmt"

	"github.com/soypat/glgl/math/ms3"
)

// DefaultStepQuota bounds the number of expression nodes one evaluation may
// visit.
const DefaultStepQuota = 100000

// EvalOptions carries per-call inputs beyond the point and angles.
type EvalOptions struct {
	// Bindings are seeded before x, y and z, so a binding named x wins over
	// the point coordinate. a0 and a1 cannot be overridden.
	Bindings map[string]float32
}

// Execution is the state of one evaluation. It is not shared between calls.
type Execution struct {
	ctx    context.Context
	source string
	quota  int
	steps  int
	env    *Env
	a0, a1 float32

	last    Value
	hasLast bool
}

// Evaluate runs stmt at point with the default step quota and returns the
// resulting distance.
func Evaluate(stmt Statement, point ms3.Vec, a0, a1 float32) (float32, error) {
	exec := newExecution(context.Background(), "", DefaultStepQuota, point, a0, a1, EvalOptions{})
	return exec.run(stmt)
}

func newExecution(ctx context.Context, source string, quota int, point ms3.Vec, a0, a1 float32, opts EvalOptions) *Execution {
	env := newEnv(len(opts.Bindings) + 5)
	for name, v := range opts.Bindings {
		env.Define(name, NewScalar(v))
	}
	coords := [3]struct {
		name string
		v    float32
	}{{"x", point.X}, {"y", point.Y}, {"z", point.Z}}
	for _, c := range coords {
		if !env.Has(c.name) {
			env.Define(c.name, NewScalar(c.v))
		}
	}
	env.Define("a0", NewScalar(a0))
	env.Define("a1", NewScalar(a1))

	return &Execution{
		ctx:    ctx,
		source: source,
		quota:  quota,
		env:    env,
		a0:     a0,
		a1:     a1,
	}
}

// Env exposes the variables left behind by the last run.
func (exec *Execution) Env() *Env {
	return exec.env
}

func (exec *Execution) run(stmt Statement) (float32, error) {
	if err := exec.execStatement(stmt); err != nil {
		return 0, err
	}
	if !exec.hasLast {
		return 0, exec.errorAt(TypeError, stmtEnd(stmt), "program produced no value")
	}
	if exec.last.Kind() != KindScalar {
		return 0, exec.errorAt(TypeError, stmtEnd(stmt), "program result is a %s, expected a scalar", exec.last.Kind())
	}
	return exec.last.Scalar(), nil
}

func stmtEnd(stmt Statement) Position {
	stmts := Statements(stmt)
	if len(stmts) == 0 {
		if stmt == nil {
			return Position{}
		}
		return stmt.Pos()
	}
	return stmts[len(stmts)-1].Pos()
}

func (exec *Execution) step() error {
	exec.steps++
	if exec.quota > 0 && exec.steps > exec.quota {
		return fmt.Errorf("%w (%d)", ErrStepQuotaExceeded, exec.quota)
	}
	if exec.ctx != nil && exec.steps&63 == 0 {
		select {
		case <-exec.ctx.Done():
			return exec.ctx.Err()
		default:
		}
	}
	return nil
}

func (exec *Execution) errorAt(kind ErrorKind, pos Position, format string, args ...any) error {
	return newError(kind, exec.source, pos, format, args...)
}

func (exec *Execution) produce(v Value) {
	exec.last = v
	exec.hasLast = true
}

func (exec *Execution) execStatement(stmt Statement) error {
	switch s := stmt.(type) {
	case *SequenceStmt:
		for _, child := range s.Statements {
			if err := exec.execStatement(child); err != nil {
				return err
			}
		}
		return nil
	case *AssignStmt:
		val, err := exec.evalExpression(s.Value)
		if err != nil {
			return err
		}
		exec.env.Define(s.Name, val)
		exec.produce(val)
		return nil
	case *AssignToArrayStmt:
		return exec.execAssignToArray(s)
	case *AssignFromArrayStmt:
		return exec.execAssignFromArray(s)
	case *ReturnStmt:
		val, err := exec.evalExpression(s.Value)
		if err != nil {
			return err
		}
		exec.produce(val)
		return nil
	case *EmptyStmt, nil:
		return nil
	default:
		return exec.errorAt(TypeError, stmt.Pos(), "unsupported statement %T", stmt)
	}
}

func (exec *Execution) execAssignToArray(s *AssignToArrayStmt) error {
	val, err := exec.evalExpression(s.Value)
	if err != nil {
		return err
	}
	parts := val.Components()
	if parts == nil || len(parts) != len(s.Names) {
		return exec.errorAt(TypeError, s.Value.Pos(), "cannot destructure a %s into %d names", val.Kind(), len(s.Names))
	}
	for i, name := range s.Names {
		exec.env.Define(name, NewScalar(parts[i]))
	}
	exec.produce(val)
	return nil
}

// execAssignFromArray evaluates every value before binding, so `[x,y]=[y,x]`
// swaps.
func (exec *Execution) execAssignFromArray(s *AssignFromArrayStmt) error {
	vals := make([]Value, len(s.Values))
	for i, expr := range s.Values {
		val, err := exec.evalExpression(expr)
		if err != nil {
			return err
		}
		vals[i] = val
	}
	for i, name := range s.Names {
		exec.env.Define(name, vals[i])
	}
	if len(vals) > 0 {
		exec.produce(vals[len(vals)-1])
	}
	return nil
}

func (exec *Execution) evalExpression(expr Expression) (Value, error) {
	if err := exec.step(); err != nil {
		return Value{}, err
	}
	switch e := expr.(type) {
	case *NumberLiteral:
		return NewScalar(e.Value), nil
	case *Identifier:
		val, ok := exec.env.Get(e.Name)
		if !ok {
			return Value{}, exec.errorAt(UnboundVariableError, e.Pos(), "%s is not bound", e.Name)
		}
		return val, nil
	case *BinaryExpr:
		return exec.evalBinaryExpr(e)
	case *NegateExpr:
		val, err := exec.evalExpression(e.Operand)
		if err != nil {
			return Value{}, err
		}
		if val.Kind() != KindScalar {
			return Value{}, exec.errorAt(TypeError, e.Pos(), "cannot negate a %s", val.Kind())
		}
		return NewScalar(-val.Scalar()), nil
	case *CallExpr:
		return exec.evalCallExpr(e)
	case *TernaryExpr:
		cond, err := exec.evalExpression(e.Cond)
		if err != nil {
			return Value{}, err
		}
		if cond.Kind() != KindBool {
			return Value{}, exec.errorAt(TypeError, e.Cond.Pos(), "ternary condition is a %s, expected bool", cond.Kind())
		}
		if cond.Bool() {
			return exec.evalExpression(e.Then)
		}
		return exec.evalExpression(e.Else)
	case *IncDecExpr:
		val, ok := exec.env.Get(e.Name)
		if !ok {
			return Value{}, exec.errorAt(UnboundVariableError, e.Pos(), "%s is not bound", e.Name)
		}
		if val.Kind() != KindScalar {
			return Value{}, exec.errorAt(TypeError, e.Pos(), "cannot increment a %s", val.Kind())
		}
		next := NewScalar(val.Scalar() + e.Delta)
		exec.env.Define(e.Name, next)
		return next, nil
	default:
		return Value{}, exec.errorAt(TypeError, expr.Pos(), "unsupported expression %T", expr)
	}
}

func (exec *Execution) evalCallExpr(call *CallExpr) (Value, error) {
	b, ok := lookupBuiltin(call.Func)
	if !ok {
		return Value{}, exec.errorAt(TypeError, call.Pos(), "unknown builtin %d", int(call.Func))
	}
	if !b.arity.accepts(len(call.Args)) {
		return Value{}, exec.errorAt(ArityError, call.Pos(), "%s expects %s arguments, got %d",
			call.Func.Mnemonic(), b.arity, len(call.Args))
	}
	args := make([]float32, len(call.Args))
	for i, arg := range call.Args {
		val, err := exec.evalExpression(arg)
		if err != nil {
			return Value{}, err
		}
		if val.Kind() != KindScalar {
			return Value{}, exec.errorAt(TypeError, arg.Pos(), "argument %d of %s is a %s, expected a scalar",
				i+1, call.Func.Mnemonic(), val.Kind())
		}
		args[i] = val.Scalar()
	}
	return b.fn(callFrame{args: args, a0: exec.a0, a1: exec.a1}), nil
}
