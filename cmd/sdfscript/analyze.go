package main

import (
	"flag"
	"fmt"
	"sort"

	"github.com/mgomes/sdfscript/script"
)

type lintWarning struct {
	Rule    string
	Pos     script.Position
	Message string
}

func analyzeCommand(args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	var src sourceFlags
	src.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	in, err := src.load("analyze", fs.Args())
	if err != nil {
		return err
	}
	prog, err := compileInput(in)
	if err != nil {
		return fmt.Errorf("analysis compile failed: %w", err)
	}

	warnings := analyzeProgram(prog.AST())
	if len(warnings) == 0 {
		fmt.Println("No issues found")
		return nil
	}

	// Positions refer to the macro-expanded text.
	for _, warning := range warnings {
		line := max(warning.Pos.Line, 1)
		column := max(warning.Pos.Column, 1)
		fmt.Printf("%s:%d:%d: %s (%s)\n", in.name, line, column, warning.Message, warning.Rule)
	}

	return fmt.Errorf("analysis found %d issue(s)", len(warnings))
}

// assignment is a pending write nobody has read yet.
type assignment struct {
	pos script.Position
}

type linter struct {
	pending  map[string]assignment
	warnings []lintWarning
}

func analyzeProgram(stmt script.Statement) []lintWarning {
	l := &linter{pending: make(map[string]assignment)}
	stmts := script.Statements(stmt)
	for _, s := range stmts {
		l.statement(s)
	}

	// The final statement's bindings are the program result.
	var final script.Position
	if len(stmts) > 0 {
		final = stmts[len(stmts)-1].Pos()
	}
	for name, a := range l.pending {
		if len(stmts) > 0 && a.pos == final {
			continue
		}
		l.warnings = append(l.warnings, lintWarning{
			Rule:    "unused",
			Pos:     a.pos,
			Message: fmt.Sprintf("%s is assigned but never used", name),
		})
	}

	sort.SliceStable(l.warnings, func(i, j int) bool {
		if l.warnings[i].Pos.Line != l.warnings[j].Pos.Line {
			return l.warnings[i].Pos.Line < l.warnings[j].Pos.Line
		}
		if l.warnings[i].Pos.Column != l.warnings[j].Pos.Column {
			return l.warnings[i].Pos.Column < l.warnings[j].Pos.Column
		}
		return l.warnings[i].Message < l.warnings[j].Message
	})
	return l.warnings
}

func (l *linter) statement(stmt script.Statement) {
	switch s := stmt.(type) {
	case *script.SequenceStmt:
		for _, child := range s.Statements {
			l.statement(child)
		}
	case *script.AssignStmt:
		l.expression(s.Value)
		l.assign(s.Name, s.Pos())
	case *script.AssignToArrayStmt:
		l.expression(s.Value)
		for _, name := range s.Names {
			l.assign(name, s.Pos())
		}
	case *script.AssignFromArrayStmt:
		for _, value := range s.Values {
			l.expression(value)
		}
		for _, name := range s.Names {
			l.assign(name, s.Pos())
		}
	case *script.ReturnStmt:
		l.expression(s.Value)
	}
}

func (l *linter) expression(expr script.Expression) {
	switch e := expr.(type) {
	case *script.Identifier:
		delete(l.pending, e.Name)
	case *script.IncDecExpr:
		delete(l.pending, e.Name)
		l.assign(e.Name, e.Pos())
	case *script.BinaryExpr:
		l.expression(e.Left)
		l.expression(e.Right)
	case *script.NegateExpr:
		l.expression(e.Operand)
	case *script.CallExpr:
		for _, arg := range e.Args {
			l.expression(arg)
		}
	case *script.TernaryExpr:
		l.expression(e.Cond)
		l.expression(e.Then)
		l.expression(e.Else)
	}
}

func (l *linter) assign(name string, pos script.Position) {
	if prev, ok := l.pending[name]; ok {
		l.warnings = append(l.warnings, lintWarning{
			Rule:    "overwritten",
			Pos:     prev.pos,
			Message: fmt.Sprintf("value assigned to %s is overwritten before use", name),
		})
	}
	l.pending[name] = assignment{pos: pos}
}
