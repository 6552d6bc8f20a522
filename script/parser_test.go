package script

import (
	"errors"
	"strings"
	"testing"
)

func mustParse(t testing.TB, source string) Statement {
	t.Helper()
	stmt, err := Parse(source)
	if err != nil {
		t.Fatalf("parse %q: %v", source, err)
	}
	return stmt
}

func TestParsePrecedence(t *testing.T) {
	tests := []struct {
		in, same string
	}{
		{"1 + 2 * 3", "1 + (2 * 3)"},
		{"a - b - c", "(a - b) - c"},
		{"a / b * c", "(a / b) * c"},
		{"2 ** 3 ** 2", "2 ** (3 ** 2)"},
		{"-x ** 2", "(-x) ** 2"},
		{"2 * x ** 2", "2 * (x ** 2)"},
		{"a || b && c", "a || (b && c)"},
		{"a && b == c", "a && (b == c)"},
		{"a == b < c", "a == (b < c)"},
		{"a < b + 1", "a < (b + 1)"},
		{"c ? 1 : d ? 2 : 3", "c ? 1 : (d ? 2 : 3)"},
		{"a < b ? 1 : 2", "(a < b) ? 1 : 2"},
		{"c ? a + 1 : b * 2", "c ? (a + 1) : (b * 2)"},
		{"c ? d ? 1 : 2 : 3", "c ? (d ? 1 : 2) : 3"},
		{"+x", "x"},
		{"- -x", "-(-x)"},
		{"-x++", "-(x++)"},
	}

	for _, tt := range tests {
		got := mustParse(t, tt.in)
		want := mustParse(t, tt.same)
		if !Equal(got, want) {
			t.Fatalf("%q should parse like %q, got %s", tt.in, tt.same, Format(got, 0))
		}
	}

	if Equal(mustParse(t, "1 + 2 * 3"), mustParse(t, "(1 + 2) * 3")) {
		t.Fatalf("grouping should change the tree")
	}
}

func TestParseStatements(t *testing.T) {
	stmt := mustParse(t, "s = 2.5, h = s/2; s*h")
	seq, ok := stmt.(*SequenceStmt)
	if !ok || len(seq.Statements) != 3 {
		t.Fatalf("expected 3-statement sequence, got %#v", stmt)
	}
	if assign, ok := seq.Statements[0].(*AssignStmt); !ok || assign.Name != "s" {
		t.Fatalf("expected assignment to s, got %#v", seq.Statements[0])
	}
	if _, ok := seq.Statements[2].(*ReturnStmt); !ok {
		t.Fatalf("expected trailing return, got %#v", seq.Statements[2])
	}
}

func TestParseSingleAndEmpty(t *testing.T) {
	if _, ok := mustParse(t, "").(*EmptyStmt); !ok {
		t.Fatalf("empty source should parse to EmptyStmt")
	}
	if _, ok := mustParse(t, " ;, ;").(*EmptyStmt); !ok {
		t.Fatalf("separators only should parse to EmptyStmt")
	}
	stmt := mustParse(t, ";;1;;")
	ret, ok := stmt.(*ReturnStmt)
	if !ok {
		t.Fatalf("expected single return, got %#v", stmt)
	}
	if num, ok := ret.Value.(*NumberLiteral); !ok || num.Value != 1 {
		t.Fatalf("expected literal 1, got %#v", ret.Value)
	}
}

func TestParseDesugaring(t *testing.T) {
	tests := []struct {
		in, same string
	}{
		{"x += 2", "x = x + 2"},
		{"x -= y * 2", "x = x - (y * 2)"},
		{"x *= .5", "x = x * .5"},
		{"x /= q", "x = x / q"},
		{"x++", "x = x + 1"},
		{"x--, y", "x = x - 1, y"},
		{"L([x,y,z])", "L(x,y,z)"},
		{"D([x,y,z],[1,2,3])", "D(x,y,z,1,2,3)"},
		{"U(a,b,)", "U(a,b)"},
		{"U(\n  a,\n  b,\n)", "U(a,b)"},
	}
	for _, tt := range tests {
		got := mustParse(t, tt.in)
		want := mustParse(t, tt.same)
		if !Equal(got, want) {
			t.Fatalf("%q should parse like %q, got %s", tt.in, tt.same, Format(got, 0))
		}
	}
}

func TestParseIncDecInExpression(t *testing.T) {
	ret, ok := mustParse(t, "x++ * 2").(*ReturnStmt)
	if !ok {
		t.Fatalf("expected return statement")
	}
	bin, ok := ret.Value.(*BinaryExpr)
	if !ok || bin.Op != OpMul {
		t.Fatalf("expected multiplication, got %#v", ret.Value)
	}
	inc, ok := bin.Left.(*IncDecExpr)
	if !ok || inc.Name != "x" || inc.Delta != 1 {
		t.Fatalf("expected x++, got %#v", bin.Left)
	}
}

func TestParseArrayAssignments(t *testing.T) {
	to, ok := mustParse(t, "[x,y]=r0(x,y)").(*AssignToArrayStmt)
	if !ok {
		t.Fatalf("expected AssignToArrayStmt")
	}
	if strings.Join(to.Names, ",") != "x,y" {
		t.Fatalf("unexpected names %v", to.Names)
	}
	if call, ok := to.Value.(*CallExpr); !ok || call.Func != FuncRot0 {
		t.Fatalf("expected r0 call, got %#v", to.Value)
	}

	from, ok := mustParse(t, "[a, b] = [b, a + 1]").(*AssignFromArrayStmt)
	if !ok {
		t.Fatalf("expected AssignFromArrayStmt")
	}
	if len(from.Names) != 2 || len(from.Values) != 2 {
		t.Fatalf("unexpected array assignment %#v", from)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		in  string
		msg string
	}{
		{"L", "must be called"},
		{"L(x", "expected ',' or ')'"},
		{"(1", "expected ')'"},
		{"1 1", "expected ',' or ';'"},
		{"[a,b]=[1]", "binds 2 names to 1 values"},
		{"[a,b]+=[1,2]", "compound assignment"},
		{"[]=1", "expected 'IDENT'"},
		{"a0 = 1", "read-only"},
		{"[x,a1]=[1,2]", "read-only"},
		{"a0++", "read-only"},
		{"!x", "'!' is not an operator"},
		{"[1,2]", "expected 'IDENT'"},
		{"y = [1,2]", "bracket list"},
		{"2++", "applies only to a variable"},
		{"x = ", "unexpected end of input"},
		{"L = 3", "cannot assign to builtin"},
		{"c ? 1", "expected ':'"},
		{"L([])", "empty bracket list"},
		{"99999999999999999999999999999999999999999", "out of range"},
		{"}", "unexpected '}'"},
	}

	for _, tt := range tests {
		_, err := Parse(tt.in)
		if err == nil {
			t.Fatalf("expected parse error for %q", tt.in)
		}
		if !errors.Is(err, ErrParse) {
			t.Fatalf("%q: expected parse error kind, got %v", tt.in, err)
		}
		if !strings.Contains(err.Error(), tt.msg) {
			t.Fatalf("%q: error %q does not mention %q", tt.in, err.Error(), tt.msg)
		}
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, err := Parse("a = 1,\nb = (2 +")
	scriptErr, ok := AsError(err)
	if !ok {
		t.Fatalf("expected *Error, got %v", err)
	}
	if scriptErr.Kind != ParseError || scriptErr.Pos.Line != 2 {
		t.Fatalf("unexpected error %v", scriptErr)
	}
	if !strings.HasPrefix(scriptErr.Error(), "parse error at 2:") {
		t.Fatalf("unexpected message %q", scriptErr.Error())
	}
}

func TestParseLexErrorPassesThrough(t *testing.T) {
	_, err := Parse("x & y")
	if !errors.Is(err, ErrLex) {
		t.Fatalf("expected lex error, got %v", err)
	}
}

func TestParseSceneSources(t *testing.T) {
	sources := []string{
		"s=2.5,h=s/2,d=(s+h)/2,q=20,y-=10,[x,y]=r0(x,y),x/=q,y/=q,z/=q,c=1,t=0,d=L(x,y,z)/c*2.-.025",
		"U(L(x+28,y-10,z+8)-12, don(x-cl(x,-15,15),y-18,z-20,10,3), bx3(x-20,y-20,z+20,8)-10, L(x+3,y-16)-4)",
		"ri(x,y,z)>.4&&ri(y,z,x)<.9?L(x,y,z)-1:10",
	}
	for _, src := range sources {
		mustParse(t, src)
	}
}

func TestParseExpandsMacros(t *testing.T) {
	tests := []struct {
		in, same string
	}{
		{"@3{x,}", "x, x, x"},
		{"@xyz{$=B($),}L(x,y,z)", "x = B(x), y = B(y), z = B(z), L(x, y, z)"},
		{"Math.sin(x)", "sin(x)"},
	}
	for _, tt := range tests {
		got := mustParse(t, tt.in)
		want := mustParse(t, tt.same)
		if !Equal(got, want) {
			t.Fatalf("%q should parse like %q, got %s", tt.in, tt.same, Format(got, 0))
		}
	}

	if _, err := Parse("@3{x"); !errors.Is(err, ErrMacroSyntax) {
		t.Fatalf("expected macro syntax error, got %v", err)
	}
	if _, err := Lex("@3{x,}"); !errors.Is(err, ErrLex) {
		t.Fatalf("Lex works on expanded text only, got %v", err)
	}
}
