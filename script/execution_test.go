package script

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"
)

func compileProgram(t testing.TB, source string) *Program {
	t.Helper()
	return compileProgramWithConfig(t, Config{}, source)
}

func compileProgramWithConfig(t testing.TB, cfg Config, source string) *Program {
	t.Helper()
	engine := MustNewEngine(cfg)
	prog, err := engine.Compile(source)
	if err != nil {
		t.Fatalf("compile %q: %v", source, err)
	}
	return prog
}

func evalAt(t testing.TB, source string, point ms3.Vec) float32 {
	t.Helper()
	got, err := compileProgram(t, source).Eval(context.Background(), point, 0, 0, EvalOptions{})
	if err != nil {
		t.Fatalf("eval %q: %v", source, err)
	}
	return got
}

func requireEvalError(t *testing.T, source string, sentinel error, msg string) {
	t.Helper()
	_, err := compileProgram(t, source).Eval(context.Background(), ms3.Vec{X: 1, Y: 2, Z: 3}, 0, 0, EvalOptions{})
	if err == nil {
		t.Fatalf("expected error for %q", source)
	}
	if !errors.Is(err, sentinel) {
		t.Fatalf("%q: expected %v, got %v", source, sentinel, err)
	}
	if !strings.Contains(err.Error(), msg) {
		t.Fatalf("%q: error %q does not mention %q", source, err.Error(), msg)
	}
}

func closeTo(a, b, tol float32) bool {
	return math32.Abs(a-b) <= tol
}

func TestEvaluateReferenceScene(t *testing.T) {
	src := "U(L(x+28,y-10,z+8)-12, don(x-cl(x,-15,15),y-18,z-20,10,3))"
	stmt := mustParse(t, src)
	got, err := Evaluate(stmt, ms3.Vec{}, 0, 0)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	want := math32.Sqrt(424) - 3
	if !closeTo(got, want, 1e-5) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestEvaluateIsDeterministic(t *testing.T) {
	prog := compileProgram(t, "s=1;@3{@xyz{$=B($*2)-8,}s*=.5,}(L(x,y,z)-8)*s+nz(x,y,z,.1,0,4)*.01")
	point := ms3.Vec{X: 3.5, Y: -1.25, Z: 7}
	first, err := prog.Eval(context.Background(), point, .1, .2, EvalOptions{})
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	for range 10 {
		again, err := prog.Eval(context.Background(), point, .1, .2, EvalOptions{})
		if err != nil {
			t.Fatalf("eval: %v", err)
		}
		if again != first {
			t.Fatalf("non-deterministic result: %v then %v", first, again)
		}
	}
}

func TestEvaluateArithmetic(t *testing.T) {
	tests := []struct {
		src  string
		want float32
	}{
		{"1 + 2 * 3", 7},
		{"2 ** 3 ** 2", 512},
		{"-2 ** 2", 4},
		{"10 - 4 - 3", 3},
		{"x * 100 + y * 10 + z", 123},
		{"s = 2, s *= 3, s", 6},
		{"a = 1, a++, a", 2},
		{"a = 5, a-- * 2", 8},
		{"a = 1, a++ + a", 4},
		{"x > 0 && y < 5 ? 1 : 2", 1},
		{"x == 1 || z == 0 ? 7 : 8", 7},
		{"(x < y) == (y < z) ? 1 : 0", 1},
		{"c != 0 ? 1 : 2", 2},
	}
	for _, tt := range tests {
		got, err := compileProgram(t, tt.src).Eval(context.Background(), ms3.Vec{X: 1, Y: 2, Z: 3}, 0, 0,
			EvalOptions{Bindings: map[string]float32{"c": 0}})
		if err != nil {
			t.Fatalf("eval %q: %v", tt.src, err)
		}
		if !closeTo(got, tt.want, 1e-6) {
			t.Fatalf("eval %q: got %v, want %v", tt.src, got, tt.want)
		}
	}
}

func TestEvaluateBuiltins(t *testing.T) {
	tests := []struct {
		src  string
		want float32
	}{
		{"L(3,4)", 5},
		{"L(2,3,6)", 7},
		{"H(0,0,3,4)", 5},
		{"D(1,2,3,4)", 11},
		{"D(1,0,0,0,1,0)", 0},
		{"[a,b,c]=X(1,0,0,0,1,0), c", 1},
		{"[a,b]=N(3,4), a", .6},
		{"U(3,1,2)", 1},
		{"G(3,1,2)", 3},
		{"bx2(0,0,1)", -1},
		{"bx2(3,0,1,2)", 2},
		{"bx3(0,0,0,1,2,3)", -1},
		{"bx3(2,0,0,1)", 1},
		{"don(10,0,0,10,3)", -3},
		{"cl(5,0,2)", 2},
		{"cl(.5,2,1)", 2},
		{"mix(0,10,.25)", 2.5},
		{"SM(0,1,.5)", .5},
		{"B(-2.5)", 2.5},
		{"sign(-0)", -1},
		{"sign(0)", 1},
		{"round(-2.5)", -3},
		{"round(2.5)", 3},
		{"Z(-1.5)", -2},
		{"FR(-1.25)", .75},
		{"mod(-1, 3)", 2},
		{"pow(2, 10)", 1024},
		{"atan2(1, 1)", math32.Pi / 4},
		{"TR(0)", 1},
		{"TR(2)", -1},
		{"k(3,4)", 5},
		{"k(-1,-2)", -1},
		{"qB(.5,1)", .375},
		{"qB(-2,1)", -2},
		{"qB(3,1)", 3},
		{"qcl(-10,.5,-1,1)", 1},
		{"[p,q]=A(1,2,3,4), q", 6},
		{"[p,q]=A(1,2,3,4,.5), q", 4},
		{"[p,q,r]=A(1,2,3,1,1,1), r", 4},
		{"[p,q,r]=A(1,2,3,1,1,1,2), r", 5},
		{"[p,q]=rot(1,0,0,1), q", -1},
	}
	for _, tt := range tests {
		got := evalAt(t, tt.src, ms3.Vec{})
		if !closeTo(got, tt.want, 1e-5) {
			t.Fatalf("eval %q: got %v, want %v", tt.src, got, tt.want)
		}
	}
}

func TestEvaluateNormalizeZeroIsNaN(t *testing.T) {
	got := evalAt(t, "[a,b]=N(0,0), a", ms3.Vec{})
	if !math32.IsNaN(got) {
		t.Fatalf("expected NaN, got %v", got)
	}
}

func TestRoundMinApproachesMin(t *testing.T) {
	prog := compileProgram(t, "rU(a, b, r)")
	prev := float32(-1)
	for _, r := range []float32{4, 1, .25, .01, 1e-4} {
		got, err := prog.Eval(context.Background(), ms3.Vec{}, 0, 0, EvalOptions{
			Bindings: map[string]float32{"a": 3, "b": 3.5, "r": r},
		})
		if err != nil {
			t.Fatalf("eval: %v", err)
		}
		if got > 3 {
			t.Fatalf("r=%v: smooth min %v exceeds min", r, got)
		}
		if got < prev {
			t.Fatalf("r=%v: smooth min %v moved away from min (previous %v)", r, got, prev)
		}
		prev = got
	}
	if !closeTo(prev, 3, 1e-4) {
		t.Fatalf("expected smooth min to converge to 3, got %v", prev)
	}
}

func TestRoundMaxMirrorsRoundMin(t *testing.T) {
	lo := evalAt(t, "rU(-1, -1.5, 2)", ms3.Vec{})
	hi := evalAt(t, "rG(1, 1.5, 2)", ms3.Vec{})
	if !closeTo(lo, -hi, 1e-6) {
		t.Fatalf("round max %v should mirror round min %v", hi, lo)
	}
}

func TestArrayAssignments(t *testing.T) {
	if got := evalAt(t, "[x,y]=[y,x], x*10+y", ms3.Vec{X: 1, Y: 2}); got != 21 {
		t.Fatalf("swap: got %v, want 21", got)
	}
	if got := evalAt(t, "[a,b]=[1,2]", ms3.Vec{}); got != 2 {
		t.Fatalf("from array yields last value: got %v", got)
	}

	prog := compileProgram(t, "[x,y]=r0(x,y), y")
	got, err := prog.Eval(context.Background(), ms3.Vec{X: 1}, .25, 0, EvalOptions{})
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if !closeTo(math32.Abs(got), 1, 1e-5) {
		t.Fatalf("quarter turn should move x onto y, got y=%v", got)
	}
	got, err = prog.Eval(context.Background(), ms3.Vec{X: 1}, 0, 0, EvalOptions{})
	if err != nil || !closeTo(got, 0, 1e-6) {
		t.Fatalf("zero turn should be identity, got %v, %v", got, err)
	}

	prog = compileProgram(t, "[x,z]=r1(x,z), x")
	got, err = prog.Eval(context.Background(), ms3.Vec{X: 2}, 0, .5, EvalOptions{})
	if err != nil || !closeTo(got, -2, 1e-5) {
		t.Fatalf("half turn should flip x, got %v, %v", got, err)
	}
}

func TestEvaluateErrors(t *testing.T) {
	tests := []struct {
		src      string
		sentinel error
		msg      string
	}{
		{"L(x)", ErrArity, "L expects 2 or 3 arguments, got 1"},
		{"U()", ErrArity, "at least 1"},
		{"rU(1)", ErrArity, "at least 2"},
		{"bx3(x,y,z)", ErrArity, "4, 5 or 6"},
		{"q + 1", ErrUnboundVar, "q is not bound"},
		{"q++", ErrUnboundVar, "q is not bound"},
		{"(x < y) + 1", ErrType, "operator +"},
		{"(x < y) == 1", ErrType, "operator =="},
		{"x && y", ErrType, "operator &&"},
		{"-(x < y)", ErrType, "cannot negate"},
		{"x ? 1 : 2", ErrType, "ternary condition"},
		{"L(x < y, 1)", ErrType, "argument 1 of L"},
		{"[a,b,c]=r0(x,y)", ErrType, "cannot destructure"},
		{"[a,b]=x", ErrType, "cannot destructure"},
		{"r0(x,y)", ErrType, "expected a scalar"},
		{"x < y", ErrType, "program result is a bool"},
		{"", ErrType, "program produced no value"},
	}
	for _, tt := range tests {
		requireEvalError(t, tt.src, tt.sentinel, tt.msg)
	}
}

func TestEvaluateErrorCarriesPosition(t *testing.T) {
	_, err := compileProgram(t, "a = 1,\n  L(a)").Eval(context.Background(), ms3.Vec{}, 0, 0, EvalOptions{})
	scriptErr, ok := AsError(err)
	if !ok {
		t.Fatalf("expected *Error, got %v", err)
	}
	if scriptErr.Kind != ArityError || scriptErr.Pos.Line != 2 || scriptErr.Pos.Column != 3 {
		t.Fatalf("unexpected error %v", scriptErr)
	}
	if !strings.Contains(scriptErr.CodeFrame, "L(a)") {
		t.Fatalf("expected code frame to show the call, got %q", scriptErr.CodeFrame)
	}
}

func TestEvaluateFailsFast(t *testing.T) {
	exec := newExecution(context.Background(), "", 0, ms3.Vec{}, 0, 0, EvalOptions{})
	_, err := exec.run(mustParse(t, "a = 1, b = q, c = 3, c"))
	if !errors.Is(err, ErrUnboundVar) {
		t.Fatalf("expected unbound variable, got %v", err)
	}
	if exec.Env().Has("c") {
		t.Fatalf("statements after the failure must not run")
	}
}

func TestEvalBindings(t *testing.T) {
	prog := compileProgram(t, "x + t")
	got, err := prog.Eval(context.Background(), ms3.Vec{X: 1}, 0, 0, EvalOptions{
		Bindings: map[string]float32{"x": 10, "t": .5},
	})
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if got != 10.5 {
		t.Fatalf("binding should override the point coordinate, got %v", got)
	}

	got, err = compileProgram(t, "a0 + a1").Eval(context.Background(), ms3.Vec{}, 1, 2, EvalOptions{
		Bindings: map[string]float32{"a0": 100},
	})
	if err != nil || got != 3 {
		t.Fatalf("angles cannot be overridden, got %v, %v", got, err)
	}
}

func TestNonFinalReturnContinues(t *testing.T) {
	if got := evalAt(t, "1, 2, 3", ms3.Vec{}); got != 3 {
		t.Fatalf("expected last value 3, got %v", got)
	}
	if got := evalAt(t, "d = 4", ms3.Vec{}); got != 4 {
		t.Fatalf("assignment yields its value, got %v", got)
	}
}

func TestStepQuota(t *testing.T) {
	src := "a=0;@100{a+=1,}a"
	prog := compileProgramWithConfig(t, Config{StepQuota: 50}, src)
	_, err := prog.Eval(context.Background(), ms3.Vec{}, 0, 0, EvalOptions{})
	if !errors.Is(err, ErrStepQuotaExceeded) {
		t.Fatalf("expected step quota error, got %v", err)
	}

	got := evalAt(t, src, ms3.Vec{})
	if got != 100 {
		t.Fatalf("default quota should allow the loop, got %v", got)
	}
}

func TestEvalHonoursCancellation(t *testing.T) {
	prog := compileProgram(t, "a=0;@500{a+=1,}a")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := prog.Eval(ctx, ms3.Vec{}, 0, 0, EvalOptions{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
}

func TestProgramFunc(t *testing.T) {
	sdf := compileProgram(t, "L(x,y,z)-1").Func(0, 0)
	if got, err := sdf(ms3.Vec{X: 3}); err != nil || got != 2 {
		t.Fatalf("expected 2, got %v (%v)", got, err)
	}
	broken := compileProgram(t, "L(x)").Func(0, 0)
	if _, err := broken(ms3.Vec{}); !errors.Is(err, ErrArity) {
		t.Fatalf("expected arity error, got %v", err)
	}
	turning := compileProgram(t, "[x,y]=r0(x,y),x").Func(.25, 0)
	if got, err := turning(ms3.Vec{X: 1}); err != nil || !closeTo(got, 0, 1e-6) {
		t.Fatalf("expected a0 to be bound, got %v (%v)", got, err)
	}
}

func TestEvalEnvReturnsScope(t *testing.T) {
	prog := compileProgram(t, "s = 2, [p, q] = [y, x], s * 3")
	got, env, err := prog.EvalEnv(context.Background(), ms3.Vec{X: 1, Y: 5}, 0, 0, EvalOptions{})
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if got != 6 {
		t.Fatalf("expected 6, got %v", got)
	}
	for name, want := range map[string]float32{"s": 2, "p": 5, "q": 1} {
		val, ok := env.Get(name)
		if !ok || val.Scalar() != want {
			t.Fatalf("%s: expected %v, got %v (bound %v)", name, want, val, ok)
		}
	}

	if _, env, err := compileProgram(t, "L(x)").EvalEnv(context.Background(), ms3.Vec{}, 0, 0, EvalOptions{}); err == nil || env != nil {
		t.Fatalf("expected an error and no scope, got %v and %v", err, env)
	}
}
