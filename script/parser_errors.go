package script

import (
	"fmt"
	"strings"
)

func (p *parser) errorExpected(tok Token, expected string) {
	p.addParseError(tok.Pos, fmt.Sprintf("expected %s, got %s", expected, tokenLabel(tok)))
}

func (p *parser) errorUnexpected(tok Token) {
	p.addParseError(tok.Pos, fmt.Sprintf("unexpected %s", tokenLabel(tok)))
}

// addParseError keeps only the first failure; parsing stops there.
func (p *parser) addParseError(pos Position, msg string) {
	if p.err != nil {
		return
	}
	p.err = newError(ParseError, p.source, pos, "%s", msg)
}

func tokenLabel(tok Token) string {
	switch tok.Type {
	case tokenIllegal:
		return "invalid token"
	case tokenEOF:
		return "end of input"
	case tokenNumber:
		return fmt.Sprintf("number %s", tok.Literal)
	case tokenIdent:
		return fmt.Sprintf("identifier %s", tok.Literal)
	case tokenFunc:
		return fmt.Sprintf("builtin %s", tok.Literal)
	default:
		if strings.ContainsAny(string(tok.Type), "'") {
			return string(tok.Type)
		}
		return fmt.Sprintf("'%s'", tok.Type)
	}
}
