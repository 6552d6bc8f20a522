package script

const (
	lowestPrec = iota
	precTernary
	precOr
	precAnd
	precEquality
	precComparison
	precSum
	precProduct
	precPower
	precPrefix
	precPostfix
	precPrimary
)

var precedences = map[TokenType]int{
	tokenQuestion: precTernary,
	tokenOr:       precOr,
	tokenAnd:      precAnd,
	tokenEQ:       precEquality,
	tokenNotEQ:    precEquality,
	tokenLT:       precComparison,
	tokenLTE:      precComparison,
	tokenGT:       precComparison,
	tokenGTE:      precComparison,
	tokenPlus:     precSum,
	tokenMinus:    precSum,
	tokenAsterisk: precProduct,
	tokenSlash:    precProduct,
	tokenPow:      precPower,
	tokenInc:      precPostfix,
	tokenDec:      precPostfix,
}

var binaryOps = map[TokenType]BinOp{
	tokenPlus:     OpAdd,
	tokenMinus:    OpSub,
	tokenAsterisk: OpMul,
	tokenSlash:    OpDiv,
	tokenPow:      OpPow,
	tokenEQ:       OpEq,
	tokenNotEQ:    OpNotEq,
	tokenGT:       OpGreater,
	tokenGTE:      OpGreaterEq,
	tokenLT:       OpLess,
	tokenLTE:      OpLessEq,
	tokenAnd:      OpAnd,
	tokenOr:       OpOr,
}

var compoundOps = map[TokenType]BinOp{
	tokenPlusAssign:  OpAdd,
	tokenMinusAssign: OpSub,
	tokenMulAssign:   OpMul,
	tokenDivAssign:   OpDiv,
}

// Precedence returns the binding strength of op. The printers use the same
// table as the parser.
func (op BinOp) Precedence() int {
	switch op {
	case OpOr:
		return precOr
	case OpAnd:
		return precAnd
	case OpEq, OpNotEq:
		return precEquality
	case OpGreater, OpGreaterEq, OpLess, OpLessEq:
		return precComparison
	case OpAdd, OpSub:
		return precSum
	case OpMul, OpDiv:
		return precProduct
	case OpPow:
		return precPower
	default:
		return lowestPrec
	}
}

// RightAssociative reports whether a chain of op groups to the right.
func (op BinOp) RightAssociative() bool {
	return op == OpPow
}

func exprPrecedence(expr Expression) int {
	switch e := expr.(type) {
	case *BinaryExpr:
		return e.Op.Precedence()
	case *TernaryExpr:
		return precTernary
	case *NegateExpr:
		return precPrefix
	case *IncDecExpr:
		return precPostfix
	case *NumberLiteral:
		if e.Value < 0 {
			return precPrefix
		}
		return precPrimary
	default:
		return precPrimary
	}
}
