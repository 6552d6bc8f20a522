package script

type Node interface {
	Pos() Position
}

type Statement interface {
	Node
	stmtNode()
}

type Expression interface {
	Node
	exprNode()
}

type AssignStmt struct {
	Name     string
	Value    Expression
	position Position
}

func (s *AssignStmt) stmtNode()     {}
func (s *AssignStmt) Pos() Position { return s.position }

// AssignToArrayStmt fans one vector value out over Names.
type AssignToArrayStmt struct {
	Names    []string
	Value    Expression
	position Position
}

func (s *AssignToArrayStmt) stmtNode()     {}
func (s *AssignToArrayStmt) Pos() Position { return s.position }

// AssignFromArrayStmt binds Names[i] to Values[i]. All values are evaluated
// before any name is bound.
type AssignFromArrayStmt struct {
	Names    []string
	Values   []Expression
	position Position
}

func (s *AssignFromArrayStmt) stmtNode()     {}
func (s *AssignFromArrayStmt) Pos() Position { return s.position }

type SequenceStmt struct {
	Statements []Statement
	position   Position
}

func (s *SequenceStmt) stmtNode()     {}
func (s *SequenceStmt) Pos() Position { return s.position }

// ReturnStmt is a bare expression statement. The last one evaluated supplies
// the program's result.
type ReturnStmt struct {
	Value    Expression
	position Position
}

func (s *ReturnStmt) stmtNode()     {}
func (s *ReturnStmt) Pos() Position { return s.position }

type EmptyStmt struct {
	position Position
}

func (s *EmptyStmt) stmtNode()     {}
func (s *EmptyStmt) Pos() Position { return s.position }

type NumberLiteral struct {
	Value    float32
	position Position
}

func (e *NumberLiteral) exprNode()     {}
func (e *NumberLiteral) Pos() Position { return e.position }

type Identifier struct {
	Name     string
	position Position
}

func (e *Identifier) exprNode()     {}
func (e *Identifier) Pos() Position { return e.position }

type BinaryExpr struct {
	Op       BinOp
	Left     Expression
	Right    Expression
	position Position
}

func (e *BinaryExpr) exprNode()     {}
func (e *BinaryExpr) Pos() Position { return e.position }

type NegateExpr struct {
	Operand  Expression
	position Position
}

func (e *NegateExpr) exprNode()     {}
func (e *NegateExpr) Pos() Position { return e.position }

type CallExpr struct {
	Func     FunctionName
	Args     []Expression
	position Position
}

func (e *CallExpr) exprNode()     {}
func (e *CallExpr) Pos() Position { return e.position }

type TernaryExpr struct {
	Cond     Expression
	Then     Expression
	Else     Expression
	position Position
}

func (e *TernaryExpr) exprNode()     {}
func (e *TernaryExpr) Pos() Position { return e.position }

// IncDecExpr is postfix `name++` (Delta 1) or `name--` (Delta -1).
type IncDecExpr struct {
	Name     string
	Delta    float32
	position Position
}

func (e *IncDecExpr) exprNode()     {}
func (e *IncDecExpr) Pos() Position { return e.position }

// BinOp enumerates the binary operators.
type BinOp int

const (
	OpAdd BinOp = iota + 1
	OpSub
	OpMul
	OpDiv
	OpPow
	OpEq
	OpNotEq
	OpGreater
	OpGreaterEq
	OpLess
	OpLessEq
	OpAnd
	OpOr
)

func (op BinOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpPow:
		return "**"
	case OpEq:
		return "=="
	case OpNotEq:
		return "!="
	case OpGreater:
		return ">"
	case OpGreaterEq:
		return ">="
	case OpLess:
		return "<"
	case OpLessEq:
		return "<="
	case OpAnd:
		return "&&"
	case OpOr:
		return "||"
	default:
		return "?"
	}
}

// Statements flattens a top-level statement into its sequence members.
func Statements(stmt Statement) []Statement {
	if seq, ok := stmt.(*SequenceStmt); ok {
		return seq.Statements
	}
	if stmt == nil {
		return nil
	}
	return []Statement{stmt}
}
