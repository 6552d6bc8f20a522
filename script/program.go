package script

import (
	"context"

	"github.com/soypat/glgl/math/ms3"
)

// Program is a compiled scene. It is immutable, and Eval may be called from
// many goroutines at once.
type Program struct {
	engine   *Engine
	source   string
	expanded string
	tokens   []Token
	ast      Statement
}

// Source is the text passed to Compile.
func (p *Program) Source() string { return p.source }

// Expanded is the source after macro expansion.
func (p *Program) Expanded() string { return p.expanded }

// AST is the parsed statement tree. Callers must not modify it.
func (p *Program) AST() Statement { return p.ast }

// Tokens returns a copy of the lexed token stream.
func (p *Program) Tokens() []Token {
	return append([]Token(nil), p.tokens...)
}

// Eval computes the signed distance at point.
func (p *Program) Eval(ctx context.Context, point ms3.Vec, a0, a1 float32, opts EvalOptions) (float32, error) {
	exec := newExecution(ctx, p.expanded, p.engine.config.StepQuota, point, a0, a1, opts)
	return exec.run(p.ast)
}

// EvalEnv is Eval that also returns the variable scope as the program left
// it. The scope is nil when evaluation fails.
func (p *Program) EvalEnv(ctx context.Context, point ms3.Vec, a0, a1 float32, opts EvalOptions) (float32, *Env, error) {
	exec := newExecution(ctx, p.expanded, p.engine.config.StepQuota, point, a0, a1, opts)
	d, err := exec.run(p.ast)
	if err != nil {
		return 0, nil, err
	}
	return d, exec.env, nil
}

// Func binds the angles and returns a distance function for renderers.
// Each call is an independent Eval, so the function may be shared between
// goroutines.
func (p *Program) Func(a0, a1 float32) func(ms3.Vec) (float32, error) {
	return func(point ms3.Vec) (float32, error) {
		exec := newExecution(context.Background(), p.expanded, p.engine.config.StepQuota, point, a0, a1, EvalOptions{})
		return exec.run(p.ast)
	}
}

// Generate emits the program as a host-language function. A zero Width
// uses the engine's.
func (p *Program) Generate(opts GenerateOptions) string {
	if opts.Width <= 0 {
		opts.Width = p.engine.config.Width
	}
	return Generate(p.ast, opts)
}

// Format prints the expanded program as canonical DSL text.
func (p *Program) Format(width int) string {
	if width <= 0 {
		width = p.engine.config.Width
	}
	return Format(p.ast, width)
}
