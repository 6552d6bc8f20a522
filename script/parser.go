package script

import (
	"errors"
	"strconv"
)

type (
	prefixParseFn func() Expression
	infixParseFn  func(Expression) Expression
)

type parser struct {
	lex    *Lexer
	source string

	curToken  Token
	peekToken Token

	err error

	prefixFns map[TokenType]prefixParseFn
	infixFns  map[TokenType]infixParseFn
}

// Parse expands macros in source, then lexes and parses the result into a
// statement tree. Error positions past expansion refer to the expanded text.
func Parse(source string) (Statement, error) {
	expanded, err := Expand(source)
	if err != nil {
		return nil, err
	}
	tokens, err := Lex(expanded)
	if err != nil {
		return nil, err
	}
	return ParseTokens(tokens, expanded)
}

// ParseTokens parses an already lexed stream. source is only used to render
// code frames in errors and may be empty.
func ParseTokens(tokens []Token, source string) (Statement, error) {
	p := newParser(NewLexer(tokens), source)
	return p.parseProgram()
}

func newParser(lex *Lexer, source string) *parser {
	p := &parser{lex: lex, source: source}

	p.prefixFns = map[TokenType]prefixParseFn{
		tokenNumber:   p.parseNumberLiteral,
		tokenIdent:    p.parseIdentifier,
		tokenFunc:     p.parseCallExpression,
		tokenLParen:   p.parseGroupedExpression,
		tokenMinus:    p.parsePrefixExpression,
		tokenPlus:     p.parsePrefixExpression,
		tokenLBracket: p.parseStrayBracket,
		tokenBang:     p.parseBang,
	}

	p.infixFns = make(map[TokenType]infixParseFn)
	for tt := range binaryOps {
		p.infixFns[tt] = p.parseInfixExpression
	}
	p.infixFns[tokenQuestion] = p.parseTernaryExpression
	p.infixFns[tokenInc] = p.parsePostfixExpression
	p.infixFns[tokenDec] = p.parsePostfixExpression

	p.nextToken()
	p.nextToken()
	return p
}

func (p *parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.lex.Next()
}

func (p *parser) curTokenIs(tt TokenType) bool  { return p.curToken.Type == tt }
func (p *parser) peekTokenIs(tt TokenType) bool { return p.peekToken.Type == tt }

func (p *parser) expectPeek(tt TokenType) bool {
	if p.peekTokenIs(tt) {
		p.nextToken()
		return true
	}
	p.errorExpected(p.peekToken, "'"+string(tt)+"'")
	return false
}

func (p *parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return lowestPrec
}

func (p *parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return lowestPrec
}

func isSeparator(tt TokenType) bool {
	return tt == tokenComma || tt == tokenSemicolon
}

func (p *parser) parseProgram() (Statement, error) {
	start := p.curToken.Pos
	var stmts []Statement
	for !p.curTokenIs(tokenEOF) {
		if isSeparator(p.curToken.Type) {
			p.nextToken()
			continue
		}
		stmt := p.parseStatement()
		if stmt == nil || p.err != nil {
			return nil, p.failure()
		}
		stmts = append(stmts, stmt)

		if !isSeparator(p.peekToken.Type) && !p.peekTokenIs(tokenEOF) {
			p.errorExpected(p.peekToken, "',' or ';'")
			return nil, p.failure()
		}
		p.nextToken()
	}

	switch len(stmts) {
	case 0:
		return &EmptyStmt{position: start}, nil
	case 1:
		return stmts[0], nil
	default:
		return &SequenceStmt{Statements: stmts, position: start}, nil
	}
}

func (p *parser) failure() error {
	if p.err == nil {
		return newError(ParseError, p.source, p.curToken.Pos, "invalid program")
	}
	return p.err
}

func (p *parser) parseStatement() Statement {
	switch p.curToken.Type {
	case tokenLBracket:
		return p.parseArrayAssignment()
	case tokenIdent:
		if isAssignToken(p.peekToken.Type) {
			return p.parseAssignment()
		}
		if (p.peekTokenIs(tokenInc) || p.peekTokenIs(tokenDec)) && p.incDecEndsStatement() {
			return p.parseIncDecStatement()
		}
	case tokenFunc:
		if isAssignToken(p.peekToken.Type) {
			p.addParseError(p.curToken.Pos, "cannot assign to builtin "+p.curToken.Literal)
			return nil
		}
	}

	pos := p.curToken.Pos
	value := p.parseExpression(lowestPrec)
	if value == nil {
		return nil
	}
	return &ReturnStmt{Value: value, position: pos}
}

func (p *parser) incDecEndsStatement() bool {
	after := p.lex.Peek().Type
	return after == tokenEOF || isSeparator(after)
}

func (p *parser) checkWritable(tok Token) bool {
	if isReservedName(tok.Literal) {
		p.addParseError(tok.Pos, "cannot assign to read-only parameter "+tok.Literal)
		return false
	}
	return true
}

// parseAssignment handles `n = e` and the compound forms, which desugar to
// `n = n OP e`.
func (p *parser) parseAssignment() Statement {
	nameTok := p.curToken
	if !p.checkWritable(nameTok) {
		return nil
	}
	p.nextToken()
	opTok := p.curToken
	p.nextToken()
	value := p.parseExpression(lowestPrec)
	if value == nil {
		return nil
	}
	if op, ok := compoundOps[opTok.Type]; ok {
		value = &BinaryExpr{
			Op:       op,
			Left:     &Identifier{Name: nameTok.Literal, position: nameTok.Pos},
			Right:    value,
			position: opTok.Pos,
		}
	}
	return &AssignStmt{Name: nameTok.Literal, Value: value, position: nameTok.Pos}
}

// parseIncDecStatement rewrites a standalone `n++` as `n = n + 1`.
func (p *parser) parseIncDecStatement() Statement {
	nameTok := p.curToken
	if !p.checkWritable(nameTok) {
		return nil
	}
	p.nextToken()
	op := OpAdd
	if p.curTokenIs(tokenDec) {
		op = OpSub
	}
	return &AssignStmt{
		Name: nameTok.Literal,
		Value: &BinaryExpr{
			Op:       op,
			Left:     &Identifier{Name: nameTok.Literal, position: nameTok.Pos},
			Right:    &NumberLiteral{Value: 1, position: p.curToken.Pos},
			position: p.curToken.Pos,
		},
		position: nameTok.Pos,
	}
}

func (p *parser) parseArrayAssignment() Statement {
	start := p.curToken.Pos
	var names []string
	for {
		if !p.expectPeek(tokenIdent) {
			return nil
		}
		if !p.checkWritable(p.curToken) {
			return nil
		}
		names = append(names, p.curToken.Literal)
		if p.peekTokenIs(tokenComma) {
			p.nextToken()
			continue
		}
		if !p.expectPeek(tokenRBracket) {
			return nil
		}
		break
	}

	if isAssignToken(p.peekToken.Type) && !p.peekTokenIs(tokenAssign) {
		p.addParseError(p.peekToken.Pos, "compound assignment to an array is not supported")
		return nil
	}
	if !p.expectPeek(tokenAssign) {
		return nil
	}
	p.nextToken()

	if p.curTokenIs(tokenLBracket) {
		listPos := p.curToken.Pos
		values := p.parseBracketList()
		if values == nil {
			return nil
		}
		if len(values) != len(names) {
			p.addParseError(listPos, "array assignment binds "+strconv.Itoa(len(names))+" names to "+strconv.Itoa(len(values))+" values")
			return nil
		}
		return &AssignFromArrayStmt{Names: names, Values: values, position: start}
	}

	value := p.parseExpression(lowestPrec)
	if value == nil {
		return nil
	}
	return &AssignToArrayStmt{Names: names, Value: value, position: start}
}

func (p *parser) parseExpression(precedence int) Expression {
	prefix := p.prefixFns[p.curToken.Type]
	if prefix == nil {
		p.errorUnexpected(p.curToken)
		return nil
	}
	left := prefix()
	if left == nil {
		return nil
	}

	for precedence < p.peekPrecedence() {
		infix := p.infixFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
		if left == nil {
			return nil
		}
	}
	return left
}

func (p *parser) parseIdentifier() Expression {
	return &Identifier{Name: p.curToken.Literal, position: p.curToken.Pos}
}

func (p *parser) parseNumberLiteral() Expression {
	value, err := strconv.ParseFloat(p.curToken.Literal, 32)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			p.addParseError(p.curToken.Pos, "number "+p.curToken.Literal+" is out of range")
		} else {
			p.addParseError(p.curToken.Pos, "invalid number "+p.curToken.Literal)
		}
		return nil
	}
	return &NumberLiteral{Value: float32(value), position: p.curToken.Pos}
}

func (p *parser) parseGroupedExpression() Expression {
	p.nextToken()
	expr := p.parseExpression(lowestPrec)
	if expr == nil {
		return nil
	}
	if !p.expectPeek(tokenRParen) {
		return nil
	}
	return expr
}

// parsePrefixExpression handles unary minus and the no-op unary plus.
func (p *parser) parsePrefixExpression() Expression {
	tok := p.curToken
	p.nextToken()
	operand := p.parseExpression(precPrefix)
	if operand == nil {
		return nil
	}
	if tok.Type == tokenPlus {
		return operand
	}
	return &NegateExpr{Operand: operand, position: tok.Pos}
}

func (p *parser) parseStrayBracket() Expression {
	p.addParseError(p.curToken.Pos, "a bracket list is only allowed as a call argument or on the right of an array assignment")
	return nil
}

func (p *parser) parseBang() Expression {
	p.addParseError(p.curToken.Pos, "'!' is not an operator; use '!=' or a comparison")
	return nil
}

func (p *parser) parseInfixExpression(left Expression) Expression {
	tok := p.curToken
	op := binaryOps[tok.Type]
	precedence := p.curPrecedence()
	if op.RightAssociative() {
		precedence--
	}
	p.nextToken()
	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}
	return &BinaryExpr{Op: op, Left: left, Right: right, position: tok.Pos}
}

func (p *parser) parseTernaryExpression(cond Expression) Expression {
	tok := p.curToken
	p.nextToken()
	then := p.parseExpression(lowestPrec)
	if then == nil {
		return nil
	}
	if !p.expectPeek(tokenColon) {
		return nil
	}
	p.nextToken()
	otherwise := p.parseExpression(precTernary - 1)
	if otherwise == nil {
		return nil
	}
	return &TernaryExpr{Cond: cond, Then: then, Else: otherwise, position: tok.Pos}
}

func (p *parser) parsePostfixExpression(left Expression) Expression {
	tok := p.curToken
	ident, ok := left.(*Identifier)
	if !ok {
		p.addParseError(tok.Pos, "'"+string(tok.Type)+"' applies only to a variable")
		return nil
	}
	if isReservedName(ident.Name) {
		p.addParseError(ident.Pos(), "cannot modify read-only parameter "+ident.Name)
		return nil
	}
	delta := float32(1)
	if tok.Type == tokenDec {
		delta = -1
	}
	return &IncDecExpr{Name: ident.Name, Delta: delta, position: ident.Pos()}
}

// parseCallExpression reads `F(args)`. A bracket list among the arguments
// is spliced into the argument list, so `L([x,y])` equals `L(x,y)`.
func (p *parser) parseCallExpression() Expression {
	tok := p.curToken
	if !p.peekTokenIs(tokenLParen) {
		p.addParseError(tok.Pos, "builtin "+tok.Literal+" must be called, expected '(' after it")
		return nil
	}
	p.nextToken()
	call := &CallExpr{Func: tok.Func, position: tok.Pos}

	p.nextToken()
	for !p.curTokenIs(tokenRParen) {
		if p.curTokenIs(tokenLBracket) {
			items := p.parseBracketList()
			if items == nil {
				return nil
			}
			call.Args = append(call.Args, items...)
		} else {
			arg := p.parseExpression(lowestPrec)
			if arg == nil {
				return nil
			}
			call.Args = append(call.Args, arg)
		}

		switch {
		case p.peekTokenIs(tokenComma):
			p.nextToken()
			p.nextToken()
		case p.peekTokenIs(tokenRParen):
			p.nextToken()
		default:
			p.errorExpected(p.peekToken, "',' or ')'")
			return nil
		}
	}
	return call
}

// parseBracketList reads `[e1, e2, ...]` with cur on the opening bracket and
// leaves cur on the closing one. An empty list is an error.
func (p *parser) parseBracketList() []Expression {
	open := p.curToken
	var items []Expression
	p.nextToken()
	for !p.curTokenIs(tokenRBracket) {
		item := p.parseExpression(lowestPrec)
		if item == nil {
			return nil
		}
		items = append(items, item)

		switch {
		case p.peekTokenIs(tokenComma):
			p.nextToken()
			p.nextToken()
		case p.peekTokenIs(tokenRBracket):
			p.nextToken()
		default:
			p.errorExpected(p.peekToken, "',' or ']'")
			return nil
		}
	}
	if len(items) == 0 {
		p.addParseError(open.Pos, "empty bracket list")
		return nil
	}
	return items
}

func isReservedName(name string) bool {
	return name == "a0" || name == "a1"
}
