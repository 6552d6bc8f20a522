package script

import "slices"

// Equal reports whether two trees have the same shape and values, ignoring
// source positions.
func Equal(a, b Node) bool {
	switch x := a.(type) {
	case nil:
		return b == nil
	case *AssignStmt:
		y, ok := b.(*AssignStmt)
		return ok && x.Name == y.Name && Equal(x.Value, y.Value)
	case *AssignToArrayStmt:
		y, ok := b.(*AssignToArrayStmt)
		return ok && slices.Equal(x.Names, y.Names) && Equal(x.Value, y.Value)
	case *AssignFromArrayStmt:
		y, ok := b.(*AssignFromArrayStmt)
		return ok && slices.Equal(x.Names, y.Names) && equalExprs(x.Values, y.Values)
	case *SequenceStmt:
		y, ok := b.(*SequenceStmt)
		if !ok || len(x.Statements) != len(y.Statements) {
			return false
		}
		for i := range x.Statements {
			if !Equal(x.Statements[i], y.Statements[i]) {
				return false
			}
		}
		return true
	case *ReturnStmt:
		y, ok := b.(*ReturnStmt)
		return ok && Equal(x.Value, y.Value)
	case *EmptyStmt:
		_, ok := b.(*EmptyStmt)
		return ok
	case *NumberLiteral:
		y, ok := b.(*NumberLiteral)
		return ok && x.Value == y.Value
	case *Identifier:
		y, ok := b.(*Identifier)
		return ok && x.Name == y.Name
	case *BinaryExpr:
		y, ok := b.(*BinaryExpr)
		return ok && x.Op == y.Op && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case *NegateExpr:
		y, ok := b.(*NegateExpr)
		return ok && Equal(x.Operand, y.Operand)
	case *CallExpr:
		y, ok := b.(*CallExpr)
		return ok && x.Func == y.Func && equalExprs(x.Args, y.Args)
	case *TernaryExpr:
		y, ok := b.(*TernaryExpr)
		return ok && Equal(x.Cond, y.Cond) && Equal(x.Then, y.Then) && Equal(x.Else, y.Else)
	case *IncDecExpr:
		y, ok := b.(*IncDecExpr)
		return ok && x.Name == y.Name && x.Delta == y.Delta
	default:
		return false
	}
}

func equalExprs(a, b []Expression) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
