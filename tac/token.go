package tac

// TokenType identifies the lexical category of a token.
type TokenType string

const (
	tokenIllegal TokenType = "ILLEGAL"
	tokenEOF     TokenType = "EOF"

	tokenIdent  TokenType = "ID"
	tokenNumber TokenType = "NUMBER"

	tokenAssign   TokenType = "="
	tokenPlus     TokenType = "+"
	tokenMinus    TokenType = "-"
	tokenAsterisk TokenType = "*"
	tokenSlash    TokenType = "/"
	tokenLT       TokenType = "<"
	tokenGT       TokenType = ">"
	tokenLTE      TokenType = "<="
	tokenGTE      TokenType = ">="
	tokenEQ       TokenType = "=="
	tokenNotEQ    TokenType = "!="

	tokenColon  TokenType = ":"
	tokenLParen TokenType = "("
	tokenRParen TokenType = ")"
	tokenLBrace TokenType = "{"
	tokenRBrace TokenType = "}"

	tokenIf    TokenType = "IF"
	tokenElif  TokenType = "ELIF"
	tokenElse  TokenType = "ELSE"
	tokenWhile TokenType = "WHILE"
	tokenFor   TokenType = "FOR"
	tokenIn    TokenType = "IN"
	tokenRange TokenType = "RANGE"
)

// Token captures lexical information for the parser.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}

func (t Token) IsEOF() bool { return t.Type == tokenEOF }

// Position identifies a line and column in the source file.
type Position struct {
	Line   int
	Column int
}

var keywords = map[string]TokenType{
	"if":    tokenIf,
	"elif":  tokenElif,
	"else":  tokenElse,
	"while": tokenWhile,
	"for":   tokenFor,
	"in":    tokenIn,
	"range": tokenRange,
}

// Keywords lists the reserved words in source order of the grammar.
func Keywords() []string {
	return []string{"if", "elif", "else", "while", "for", "in", "range"}
}
