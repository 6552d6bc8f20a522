package script

// TokenType identifies the lexical category of a token.
type TokenType string

const (
	tokenIllegal TokenType = "ILLEGAL"
	tokenEOF     TokenType = "EOF"

	tokenNumber TokenType = "NUMBER"
	tokenIdent  TokenType = "IDENT"
	tokenFunc   TokenType = "FUNC"

	tokenPlus     TokenType = "+"
	tokenMinus    TokenType = "-"
	tokenAsterisk TokenType = "*"
	tokenSlash    TokenType = "/"
	tokenPow      TokenType = "**"
	tokenEQ       TokenType = "=="
	tokenNotEQ    TokenType = "!="
	tokenGT       TokenType = ">"
	tokenGTE      TokenType = ">="
	tokenLT       TokenType = "<"
	tokenLTE      TokenType = "<="
	tokenAnd      TokenType = "&&"
	tokenOr       TokenType = "||"
	tokenBang     TokenType = "!"
	tokenInc      TokenType = "++"
	tokenDec      TokenType = "--"

	tokenAssign      TokenType = "="
	tokenPlusAssign  TokenType = "+="
	tokenMinusAssign TokenType = "-="
	tokenMulAssign   TokenType = "*="
	tokenDivAssign   TokenType = "/="

	tokenLParen    TokenType = "("
	tokenRParen    TokenType = ")"
	tokenLBracket  TokenType = "["
	tokenRBracket  TokenType = "]"
	tokenLBrace    TokenType = "{"
	tokenRBrace    TokenType = "}"
	tokenComma     TokenType = ","
	tokenSemicolon TokenType = ";"
	tokenQuestion  TokenType = "?"
	tokenColon     TokenType = ":"
)

// Token captures lexical information for the parser. Func is only set for
// FUNC tokens.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
	Func    FunctionName
}

// Position identifies a location in the expanded source text.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (t Token) String() string {
	switch t.Type {
	case tokenNumber, tokenIdent:
		return string(t.Type) + "(" + t.Literal + ")"
	case tokenFunc:
		return "FUNC(" + t.Literal + "=" + t.Func.String() + ")"
	default:
		return string(t.Type)
	}
}

func isAssignToken(tt TokenType) bool {
	switch tt {
	case tokenAssign, tokenPlusAssign, tokenMinusAssign, tokenMulAssign, tokenDivAssign:
		return true
	default:
		return false
	}
}
