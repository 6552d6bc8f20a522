package script

import (
	"errors"
	"strings"
	"testing"
)

func TestExpand(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "numeric", in: "@3{$,}", want: "1,2,3,"},
		{name: "letters", in: "@xyz{$,}", want: "x,y,z,"},
		{name: "numeric next", in: "@3{$$}", want: "231"},
		{name: "numeric after next", in: "@3{$$$}", want: "312"},
		{name: "letter next", in: "@xyz{$$}", want: "yzx"},
		{name: "letter after next", in: "@xyz{$$$}", want: "zxy"},
		{name: "long run splits in threes", in: "@xyz{$$$$ }", want: "zx xy yz "},
		{name: "cross", in: "U(@xyz{L($$$,$$,$)-8,})", want: "U(L(z,y,x)-8,L(x,z,y)-8,L(y,x,z)-8,)"},
		{name: "nested binds innermost", in: "@2{@ab{$}$;}", want: "ab1;ab2;"},
		{name: "plain braces pass through", in: "@2{f{$}}", want: "f{1}f{2}"},
		{name: "math qualifier stripped", in: "Math.sin(x)+Math.cos(y)", want: "sin(x)+cos(y)"},
		{name: "placeholder outside loop", in: "a$b", want: "a$b"},
		{name: "single repeat", in: "s=10; @1{a=sin(y),b=sin(x),} SM(a,b)-5", want: "s=10; a=sin(y),b=sin(x), SM(a,b)-5"},
		{name: "zero repeat", in: "a@0{b}c", want: "ac"},
		{name: "no macros", in: "L(x,y,z)-1", want: "L(x,y,z)-1"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Expand(tt.in)
			if err != nil {
				t.Fatalf("expand %q: %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("expand %q: got %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExpandIsIdempotent(t *testing.T) {
	inputs := []string{
		"s=1;@5{@xyz{$=B($*2)-8,}s*=.5,}(L(x,y,z)-8)*s",
		"U(@xyz{L($$$,$$,$)-8,})",
		"@3{a$=$$$;}",
	}
	for _, in := range inputs {
		once, err := Expand(in)
		if err != nil {
			t.Fatalf("expand %q: %v", in, err)
		}
		if strings.Contains(once, "@") {
			t.Fatalf("expansion of %q still contains a macro: %q", in, once)
		}
		twice, err := Expand(once)
		if err != nil {
			t.Fatalf("re-expand %q: %v", once, err)
		}
		if twice != once {
			t.Fatalf("expansion not idempotent: %q then %q", once, twice)
		}
	}
}

func TestExpandErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		msg  string
	}{
		{name: "unterminated body", in: "@3{x", msg: "unterminated macro body"},
		{name: "unbalanced brace", in: "@2{a{b}", msg: "unterminated macro body"},
		{name: "open plain brace", in: "x{y", msg: "unbalanced '{'"},
		{name: "empty spec", in: "@{x}", msg: "empty macro spec"},
		{name: "mixed spec", in: "@3a{x}", msg: "malformed macro spec"},
		{name: "space in spec", in: "@3 {x}", msg: "malformed macro spec"},
		{name: "missing body", in: "x @3", msg: "missing its body"},
		{name: "repeat limit", in: "@100000{x}", msg: "exceeds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Expand(tt.in)
			if err == nil {
				t.Fatalf("expected error for %q", tt.in)
			}
			if !errors.Is(err, ErrMacroSyntax) {
				t.Fatalf("expected macro syntax error, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.msg) {
				t.Fatalf("error %q does not mention %q", err.Error(), tt.msg)
			}
		})
	}
}

func TestExpandErrorPosition(t *testing.T) {
	_, err := Expand("a=1,\n  @xy{$")
	scriptErr, ok := AsError(err)
	if !ok {
		t.Fatalf("expected *Error, got %v", err)
	}
	if scriptErr.Pos.Line != 2 || scriptErr.Pos.Column != 3 {
		t.Fatalf("expected error at 2:3, got %d:%d", scriptErr.Pos.Line, scriptErr.Pos.Column)
	}
	if !strings.Contains(scriptErr.CodeFrame, "^") {
		t.Fatalf("expected caret in code frame, got %q", scriptErr.CodeFrame)
	}
}

func TestExpandTree(t *testing.T) {
	tree, err := ExpandTree("a@2{$$}b")
	if err != nil {
		t.Fatalf("expand tree: %v", err)
	}
	if len(tree.Nodes) != 3 {
		t.Fatalf("expected 3 top-level nodes, got %d", len(tree.Nodes))
	}
	loop, ok := tree.Nodes[1].(*MacroNumericLoop)
	if !ok {
		t.Fatalf("expected numeric loop, got %T", tree.Nodes[1])
	}
	if loop.Count != 2 || len(loop.Body.Nodes) != 1 {
		t.Fatalf("unexpected loop %+v", loop)
	}
	if ph, ok := loop.Body.Nodes[0].(*MacroPlaceholder); !ok || ph.Depth != 2 {
		t.Fatalf("expected depth-2 placeholder, got %#v", loop.Body.Nodes[0])
	}
}

func TestExpandOutputLimit(t *testing.T) {
	_, err := Expand("@10000{@10000{xx}}")
	if !errors.Is(err, ErrMacroSyntax) {
		t.Fatalf("expected expansion size error, got %v", err)
	}

	_, err = Expand("@10000{@10000{@10000{}}}")
	if !errors.Is(err, ErrMacroSyntax) || !strings.Contains(err.Error(), "loop iterations") {
		t.Fatalf("expected loop iteration error, got %v", err)
	}
	if _, err := Expand("@1000{@1000{}}"); err != nil {
		t.Fatalf("a million empty iterations is within bounds: %v", err)
	}
}

func TestSourceMapPositions(t *testing.T) {
	tests := []struct {
		name       string
		source     string
		marker     string
		wantLine   int
		wantColumn int
	}{
		{name: "before macro", source: "s=1,\n  @3{$,}L(x,y,z)", marker: "s", wantLine: 1, wantColumn: 1},
		{name: "loop output", source: "s=1,\n  @3{$,}L(x,y,z)", marker: "2", wantLine: 2, wantColumn: 3},
		{name: "after macro", source: "s=1,\n  @3{$,}L(x,y,z)", marker: "L", wantLine: 2, wantColumn: 9},
		{name: "nested loop", source: "a,\n@2{@xy{$},}b", marker: "y,", wantLine: 2, wantColumn: 1},
		{name: "math prefix", source: "Math.sin(x)+\nMath.cos(y)", marker: "cos", wantLine: 2, wantColumn: 6},
		{name: "math prefix same line", source: "Math.sin(x)+\nMath.cos(y)", marker: "(x", wantLine: 1, wantColumn: 9},
		{name: "plain braces", source: "@2{$}{x}", marker: "x", wantLine: 1, wantColumn: 7},
		{name: "closing brace", source: "@2{$}{x}", marker: "}", wantLine: 1, wantColumn: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expanded, sm, err := ExpandWithMap(tt.source)
			if err != nil {
				t.Fatalf("expand: %v", err)
			}
			off := strings.Index(expanded, tt.marker)
			if off < 0 {
				t.Fatalf("marker %q not in %q", tt.marker, expanded)
			}
			at := advancePosition(Position{Line: 1, Column: 1}, expanded[:off])
			got := sm.SourcePosition(at)
			if got.Line != tt.wantLine || got.Column != tt.wantColumn {
				t.Fatalf("expected %d:%d, got %d:%d", tt.wantLine, tt.wantColumn, got.Line, got.Column)
			}
		})
	}
}

func TestSourceMapLeavesUnpositionedErrors(t *testing.T) {
	_, sm, err := ExpandWithMap("@2{$}")
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if got := sm.SourcePosition(Position{}); got != (Position{}) {
		t.Fatalf("expected zero position, got %+v", got)
	}
}
