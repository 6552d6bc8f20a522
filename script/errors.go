package script

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a pipeline failure.
type ErrorKind int

const (
	MacroSyntaxError ErrorKind = iota + 1
	LexError
	ParseError
	ArityError
	TypeError
	UnboundVariableError
)

var (
	ErrMacroSyntax       = errors.New("macro syntax error")
	ErrLex               = errors.New("lex error")
	ErrParse             = errors.New("parse error")
	ErrArity             = errors.New("arity error")
	ErrType              = errors.New("type error")
	ErrUnboundVar        = errors.New("unbound variable")
	ErrStepQuotaExceeded = errors.New("step quota exceeded")
)

func (k ErrorKind) String() string {
	switch k {
	case MacroSyntaxError:
		return "macro syntax error"
	case LexError:
		return "lex error"
	case ParseError:
		return "parse error"
	case ArityError:
		return "arity error"
	case TypeError:
		return "type error"
	case UnboundVariableError:
		return "unbound variable"
	default:
		return "error"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case MacroSyntaxError:
		return ErrMacroSyntax
	case LexError:
		return ErrLex
	case ParseError:
		return ErrParse
	case ArityError:
		return ErrArity
	case TypeError:
		return ErrType
	case UnboundVariableError:
		return ErrUnboundVar
	default:
		return nil
	}
}

// Error is the single error type produced by expansion, lexing, parsing and
// evaluation. Pos refers to the text the failing stage consumed: the raw
// source for macro errors, the expanded text for everything else.
type Error struct {
	Kind      ErrorKind
	Pos       Position
	Message   string
	CodeFrame string
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Pos.Line > 0 {
		fmt.Fprintf(&b, "%s at %d:%d: %s", e.Kind, e.Pos.Line, e.Pos.Column, e.Message)
	} else {
		fmt.Fprintf(&b, "%s: %s", e.Kind, e.Message)
	}
	if e.CodeFrame != "" {
		b.WriteString("\n")
		b.WriteString(e.CodeFrame)
	}
	return b.String()
}

// Is lets errors.Is match the per-kind sentinels.
func (e *Error) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

func newError(kind ErrorKind, source string, pos Position, format string, args ...any) *Error {
	return &Error{
		Kind:      kind,
		Pos:       pos,
		Message:   fmt.Sprintf(format, args...),
		CodeFrame: formatCodeFrame(source, pos),
	}
}

// AsError extracts a *Error from err, if there is one.
func AsError(err error) (*Error, bool) {
	var scriptErr *Error
	if errors.As(err, &scriptErr) {
		return scriptErr, true
	}
	return nil, false
}
