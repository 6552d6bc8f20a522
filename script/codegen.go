package script

import (
	"strconv"
	"strings"
)

// GenerateOptions controls the emitted host function.
type GenerateOptions struct {
	Width    int
	A0, A1   float32
	FuncName string
}

const defaultHostFunc = "signed_distance_function"

type hostGenerator struct {
	temps int
}

// Generate emits stmt as a Rhai function of (x, y, z) that returns the
// distance. a0 and a1 are bound as constants at the top of the body.
func Generate(stmt Statement, opts GenerateOptions) string {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.FuncName == "" {
		opts.FuncName = defaultHostFunc
	}
	g := &hostGenerator{}

	body := []doc{
		text("let a0 = " + hostNumber(opts.A0) + ";"),
		text("let a1 = " + hostNumber(opts.A1) + ";"),
	}
	body = append(body, g.statements(Statements(stmt))...)

	out := concat(
		text("fn "+opts.FuncName+"(x, y, z) {"),
		nest(4, hardline(), join(body, hardline())),
		hardline(),
		text("}"),
	)
	return render(out, opts.Width) + "\n"
}

func (g *hostGenerator) statements(stmts []Statement) []doc {
	var out []doc
	for i, stmt := range stmts {
		final := i == len(stmts)-1
		switch s := stmt.(type) {
		case *AssignStmt:
			out = append(out, concat(text("let "+s.Name+" = "), g.expr(s.Value, lowestPrec), text(";")))
			if final {
				out = append(out, text(s.Name))
			}
		case *AssignToArrayStmt:
			tmp := g.temp()
			out = append(out, concat(text("let "+tmp+" = "), g.expr(s.Value, lowestPrec), text(";")))
			out = append(out, g.destructure(tmp, s.Names)...)
			if final {
				out = append(out, text(s.Names[len(s.Names)-1]))
			}
		case *AssignFromArrayStmt:
			tmp := g.temp()
			out = append(out, concat(text("let "+tmp+" = "), g.list("[", s.Values, "]"), text(";")))
			out = append(out, g.destructure(tmp, s.Names)...)
			if final {
				out = append(out, text(s.Names[len(s.Names)-1]))
			}
		case *ReturnStmt:
			if final {
				out = append(out, g.expr(s.Value, lowestPrec))
			} else {
				out = append(out, concat(g.expr(s.Value, lowestPrec), text(";")))
			}
		case *SequenceStmt:
			out = append(out, g.statements(s.Statements)...)
		}
	}
	return out
}

func (g *hostGenerator) temp() string {
	g.temps++
	return "_v" + strconv.Itoa(g.temps)
}

func (g *hostGenerator) destructure(tmp string, names []string) []doc {
	out := make([]doc, len(names))
	for i, name := range names {
		out[i] = text("let " + name + " = " + tmp + "[" + strconv.Itoa(i) + "];")
	}
	return out
}

func (g *hostGenerator) list(open string, items []Expression, close string) doc {
	return formatList(open, items, close, g.expr)
}

func (g *hostGenerator) expr(expr Expression, minPrec int) doc {
	inner := g.exprInner(expr)
	if hostPrecedence(expr) < minPrec {
		return concat(text("("), inner, text(")"))
	}
	return inner
}

// hostPrecedence differs from the DSL table only for power, which the host
// spells as a call.
func hostPrecedence(expr Expression) int {
	if b, ok := expr.(*BinaryExpr); ok && b.Op == OpPow {
		return precPrimary
	}
	return exprPrecedence(expr)
}

func (g *hostGenerator) exprInner(expr Expression) doc {
	switch e := expr.(type) {
	case *NumberLiteral:
		return text(hostNumber(e.Value))
	case *Identifier:
		return text(e.Name)
	case *BinaryExpr:
		if e.Op == OpPow {
			return concat(text(FuncPow.HostName()), g.list("(", []Expression{e.Left, e.Right}, ")"))
		}
		leftPrec, rightPrec := operandPrecedence(e.Op)
		return concat(
			g.expr(e.Left, leftPrec),
			text(" "+e.Op.String()+" "),
			g.expr(e.Right, rightPrec),
		)
	case *NegateExpr:
		if startsWithMinus(e.Operand) {
			return concat(text("-("), g.expr(e.Operand, lowestPrec), text(")"))
		}
		return concat(text("-"), g.expr(e.Operand, precPrefix))
	case *CallExpr:
		return g.call(e)
	case *TernaryExpr:
		return concat(
			text("if "),
			g.expr(e.Cond, lowestPrec),
			text(" { "),
			g.expr(e.Then, lowestPrec),
			text(" } else { "),
			g.expr(e.Else, lowestPrec),
			text(" }"),
		)
	case *IncDecExpr:
		op := "+="
		if e.Delta < 0 {
			op = "-="
		}
		return text("{ " + e.Name + " " + op + " 1.0; " + e.Name + " }")
	default:
		return text("()")
	}
}

func (g *hostGenerator) call(e *CallExpr) doc {
	name := e.Func.HostName()
	switch e.Func {
	case FuncUnion, FuncIntersect, FuncRoundMin, FuncRoundMax:
		return concat(text(name+"("), g.list("[", e.Args, "]"), text(")"))
	case FuncRot0:
		return concat(text(name), g.list("(", withAngle(e.Args, "a0"), ")"))
	case FuncRot1:
		return concat(text(name), g.list("(", withAngle(e.Args, "a1"), ")"))
	default:
		return concat(text(name), g.list("(", e.Args, ")"))
	}
}

func withAngle(args []Expression, angle string) []Expression {
	out := make([]Expression, 0, len(args)+1)
	out = append(out, args...)
	return append(out, &Identifier{Name: angle})
}

// hostNumber always carries a decimal point so the host reads a float.
func hostNumber(f float32) string {
	s := strconv.FormatFloat(float64(f), 'f', -1, 32)
	if strings.ContainsAny(s, ".NI") {
		return s
	}
	return s + ".0"
}
