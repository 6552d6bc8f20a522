package script

import "strconv"

// DefaultWidth is the line width used when a printer is given none.
const DefaultWidth = 100

// Format prints stmt back as DSL source using the primary mnemonic of every
// builtin. Parsing the output yields a tree Equal to stmt.
func Format(stmt Statement, width int) string {
	if width <= 0 {
		width = DefaultWidth
	}
	stmts := Statements(stmt)
	parts := make([]doc, 0, len(stmts))
	for _, s := range stmts {
		if _, empty := s.(*EmptyStmt); empty {
			continue
		}
		parts = append(parts, formatStatement(s))
	}
	if len(parts) == 0 {
		return ""
	}
	return render(group(join(parts, text(","), line())), width)
}

func formatStatement(stmt Statement) doc {
	switch s := stmt.(type) {
	case *AssignStmt:
		return concat(text(s.Name+" = "), formatExpr(s.Value, lowestPrec))
	case *AssignToArrayStmt:
		return concat(formatNames(s.Names), text(" = "), formatExpr(s.Value, lowestPrec))
	case *AssignFromArrayStmt:
		return concat(formatNames(s.Names), text(" = "), formatList("[", s.Values, "]", formatExpr))
	case *ReturnStmt:
		if _, incDec := s.Value.(*IncDecExpr); incDec {
			// A bare `n++` statement parses as an assignment.
			return concat(text("("), formatExpr(s.Value, lowestPrec), text(")"))
		}
		return formatExpr(s.Value, lowestPrec)
	case *SequenceStmt:
		parts := make([]doc, len(s.Statements))
		for i, child := range s.Statements {
			parts[i] = formatStatement(child)
		}
		return join(parts, text(","), line())
	default:
		return text("")
	}
}

func formatNames(names []string) doc {
	out := "["
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += n
	}
	return text(out + "]")
}

type exprPrinter func(expr Expression, minPrec int) doc

// formatList renders a delimited argument list that breaks one item per
// line at +4 when it does not fit.
func formatList(open string, items []Expression, close string, print exprPrinter) doc {
	if len(items) == 0 {
		return text(open + close)
	}
	docs := make([]doc, len(items))
	for i, item := range items {
		docs[i] = print(item, lowestPrec)
	}
	return group(
		text(open),
		nest(4, softline(), join(docs, text(","), line())),
		softline(),
		text(close),
	)
}

func formatExpr(expr Expression, minPrec int) doc {
	inner := formatExprInner(expr)
	if exprPrecedence(expr) < minPrec {
		return concat(text("("), inner, text(")"))
	}
	return inner
}

func formatExprInner(expr Expression) doc {
	switch e := expr.(type) {
	case *NumberLiteral:
		return text(formatNumber(e.Value))
	case *Identifier:
		return text(e.Name)
	case *BinaryExpr:
		leftPrec, rightPrec := operandPrecedence(e.Op)
		return concat(
			formatExpr(e.Left, leftPrec),
			text(" "+e.Op.String()+" "),
			formatExpr(e.Right, rightPrec),
		)
	case *NegateExpr:
		if startsWithMinus(e.Operand) {
			return concat(text("-("), formatExpr(e.Operand, lowestPrec), text(")"))
		}
		return concat(text("-"), formatExpr(e.Operand, precPrefix))
	case *CallExpr:
		return concat(text(e.Func.Mnemonic()), formatList("(", e.Args, ")", formatExpr))
	case *TernaryExpr:
		return concat(
			formatExpr(e.Cond, precTernary+1),
			text(" ? "),
			formatExpr(e.Then, lowestPrec),
			text(" : "),
			formatExpr(e.Else, precTernary),
		)
	case *IncDecExpr:
		if e.Delta < 0 {
			return text(e.Name + "--")
		}
		return text(e.Name + "++")
	default:
		return text("")
	}
}

func startsWithMinus(expr Expression) bool {
	switch e := expr.(type) {
	case *NegateExpr:
		return true
	case *NumberLiteral:
		return e.Value < 0
	default:
		return false
	}
}

// operandPrecedence returns the minimum precedence each side of op needs to
// print without parentheses.
func operandPrecedence(op BinOp) (left, right int) {
	p := op.Precedence()
	if op.RightAssociative() {
		return p + 1, p
	}
	return p, p + 1
}

// formatNumber prints the shortest decimal that parses back to f. The lexer
// has no exponent syntax, so fixed notation is used throughout.
func formatNumber(f float32) string {
	return strconv.FormatFloat(float64(f), 'f', -1, 32)
}
