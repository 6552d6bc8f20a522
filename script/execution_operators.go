package script

import "github.com/chewxy/math32"

// evalBinaryExpr evaluates both operands before checking kinds; && and ||
// do not short-circuit.
func (exec *Execution) evalBinaryExpr(expr *BinaryExpr) (Value, error) {
	left, err := exec.evalExpression(expr.Left)
	if err != nil {
		return Value{}, err
	}
	right, err := exec.evalExpression(expr.Right)
	if err != nil {
		return Value{}, err
	}

	switch expr.Op {
	case OpAnd, OpOr:
		if left.Kind() != KindBool || right.Kind() != KindBool {
			return Value{}, exec.operandError(expr, left, right, "bool")
		}
		if expr.Op == OpAnd {
			return NewBool(left.Bool() && right.Bool()), nil
		}
		return NewBool(left.Bool() || right.Bool()), nil
	case OpEq, OpNotEq:
		if left.Kind() != right.Kind() {
			return Value{}, exec.errorAt(TypeError, expr.Pos(), "operator %s cannot compare %s with %s",
				expr.Op, left.Kind(), right.Kind())
		}
		eq := left.Equal(right)
		if expr.Op == OpNotEq {
			eq = !eq
		}
		return NewBool(eq), nil
	}

	if left.Kind() != KindScalar || right.Kind() != KindScalar {
		return Value{}, exec.operandError(expr, left, right, "scalar")
	}
	a, b := left.Scalar(), right.Scalar()
	switch expr.Op {
	case OpAdd:
		return NewScalar(a + b), nil
	case OpSub:
		return NewScalar(a - b), nil
	case OpMul:
		return NewScalar(a * b), nil
	case OpDiv:
		return NewScalar(a / b), nil
	case OpPow:
		return NewScalar(math32.Pow(a, b)), nil
	case OpGreater:
		return NewBool(a > b), nil
	case OpGreaterEq:
		return NewBool(a >= b), nil
	case OpLess:
		return NewBool(a < b), nil
	case OpLessEq:
		return NewBool(a <= b), nil
	default:
		return Value{}, exec.errorAt(TypeError, expr.Pos(), "unsupported operator %s", expr.Op)
	}
}

func (exec *Execution) operandError(expr *BinaryExpr, left, right Value, want string) error {
	return exec.errorAt(TypeError, expr.Pos(), "operator %s expects %s operands, got %s and %s",
		expr.Op, want, left.Kind(), right.Kind())
}
