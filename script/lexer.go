package script

import (
	"unicode/utf8"
)

type scanner struct {
	input string

	offset int
	line   int
	column int
}

func newScanner(input string) *scanner {
	return &scanner{input: input, line: 1, column: 1}
}

// Lex tokenizes macro-expanded source. The returned slice always ends with
// an EOF token.
func Lex(input string) ([]Token, error) {
	s := newScanner(input)
	tokens := make([]Token, 0, len(input)/2+1)
	for {
		tok, err := s.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == tokenEOF {
			return tokens, nil
		}
	}
}

func (s *scanner) pos() Position {
	return Position{Offset: s.offset, Line: s.line, Column: s.column}
}

func (s *scanner) peekByte(n int) byte {
	if s.offset+n >= len(s.input) {
		return 0
	}
	return s.input[s.offset+n]
}

func (s *scanner) advance(n int) {
	for i := 0; i < n && s.offset < len(s.input); i++ {
		if s.input[s.offset] == '\n' {
			s.line++
			s.column = 1
		} else {
			s.column++
		}
		s.offset++
	}
}

func (s *scanner) skipWhitespaceAndComments() {
	for s.offset < len(s.input) {
		switch c := s.input[s.offset]; {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			s.advance(1)
		case c == '/' && s.peekByte(1) == '/':
			for s.offset < len(s.input) && s.input[s.offset] != '\n' {
				s.advance(1)
			}
		default:
			return
		}
	}
}

func (s *scanner) next() (Token, error) {
	s.skipWhitespaceAndComments()
	start := s.pos()
	if s.offset >= len(s.input) {
		return Token{Type: tokenEOF, Pos: start}, nil
	}

	c := s.input[s.offset]
	switch {
	case isDigit(c) || c == '.':
		return s.readNumber(start)
	case isLetter(c):
		return s.readIdentifier(start), nil
	}

	if tt, width, ok := matchOperator(c, s.peekByte(1)); ok {
		literal := s.input[s.offset : s.offset+width]
		s.advance(width)
		return Token{Type: tt, Literal: literal, Pos: start}, nil
	}

	switch c {
	case '&', '|':
		return Token{}, newError(LexError, s.input, start, "unexpected %q (did you mean %q?)", string(c), string(c)+string(c))
	}
	r, _ := utf8.DecodeRuneInString(s.input[s.offset:])
	return Token{}, newError(LexError, s.input, start, "unexpected character %q", r)
}

// matchOperator applies maximal munch over the one- and two-byte operators.
func matchOperator(c, next byte) (TokenType, int, bool) {
	switch c {
	case '+':
		switch next {
		case '+':
			return tokenInc, 2, true
		case '=':
			return tokenPlusAssign, 2, true
		}
		return tokenPlus, 1, true
	case '-':
		switch next {
		case '-':
			return tokenDec, 2, true
		case '=':
			return tokenMinusAssign, 2, true
		}
		return tokenMinus, 1, true
	case '*':
		switch next {
		case '*':
			return tokenPow, 2, true
		case '=':
			return tokenMulAssign, 2, true
		}
		return tokenAsterisk, 1, true
	case '/':
		if next == '=' {
			return tokenDivAssign, 2, true
		}
		return tokenSlash, 1, true
	case '=':
		if next == '=' {
			return tokenEQ, 2, true
		}
		return tokenAssign, 1, true
	case '!':
		if next == '=' {
			return tokenNotEQ, 2, true
		}
		return tokenBang, 1, true
	case '>':
		if next == '=' {
			return tokenGTE, 2, true
		}
		return tokenGT, 1, true
	case '<':
		if next == '=' {
			return tokenLTE, 2, true
		}
		return tokenLT, 1, true
	case '&':
		if next == '&' {
			return tokenAnd, 2, true
		}
	case '|':
		if next == '|' {
			return tokenOr, 2, true
		}
	case '(':
		return tokenLParen, 1, true
	case ')':
		return tokenRParen, 1, true
	case '[':
		return tokenLBracket, 1, true
	case ']':
		return tokenRBracket, 1, true
	case '{':
		return tokenLBrace, 1, true
	case '}':
		return tokenRBrace, 1, true
	case ',':
		return tokenComma, 1, true
	case ';':
		return tokenSemicolon, 1, true
	case '?':
		return tokenQuestion, 1, true
	case ':':
		return tokenColon, 1, true
	}
	return "", 0, false
}

func (s *scanner) readNumber(start Position) (Token, error) {
	begin := s.offset
	dots := 0
	for s.offset < len(s.input) {
		c := s.input[s.offset]
		if c == '.' {
			dots++
		} else if !isDigit(c) {
			break
		}
		s.advance(1)
	}
	literal := s.input[begin:s.offset]
	switch {
	case dots > 1:
		return Token{}, newError(LexError, s.input, start, "malformed number %q", literal)
	case literal == ".":
		return Token{}, newError(LexError, s.input, start, "unexpected character '.'")
	}
	return Token{Type: tokenNumber, Literal: literal, Pos: start}, nil
}

func (s *scanner) readIdentifier(start Position) Token {
	begin := s.offset
	for s.offset < len(s.input) && (isLetter(s.input[s.offset]) || isDigit(s.input[s.offset])) {
		s.advance(1)
	}
	literal := s.input[begin:s.offset]
	if fn, ok := LookupFunction(literal); ok {
		return Token{Type: tokenFunc, Literal: literal, Pos: start, Func: fn}
	}
	return Token{Type: tokenIdent, Literal: literal, Pos: start}
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// Lexer is a cursor over a lexed token slice with one token of lookahead.
type Lexer struct {
	tokens []Token
	index  int
}

// NewLexer wraps tokens. A trailing EOF is appended when missing.
func NewLexer(tokens []Token) *Lexer {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != tokenEOF {
		var pos Position
		if len(tokens) > 0 {
			pos = tokens[len(tokens)-1].Pos
		}
		tokens = append(append([]Token(nil), tokens...), Token{Type: tokenEOF, Pos: pos})
	}
	return &Lexer{tokens: tokens}
}

// Peek returns the current token without consuming it.
func (l *Lexer) Peek() Token {
	return l.tokens[l.index]
}

// PeekN looks n tokens past the current one, clamping at EOF.
func (l *Lexer) PeekN(n int) Token {
	i := min(l.index+n, len(l.tokens)-1)
	return l.tokens[i]
}

// Next consumes and returns the current token. EOF is sticky.
func (l *Lexer) Next() Token {
	tok := l.tokens[l.index]
	if l.index < len(l.tokens)-1 {
		l.index++
	}
	return tok
}

// IsFunction reports whether the token names a builtin.
func (t Token) IsFunction() bool {
	return t.Type == tokenFunc
}

// IsEOF reports whether the token ends the stream.
func (t Token) IsEOF() bool {
	return t.Type == tokenEOF
}
