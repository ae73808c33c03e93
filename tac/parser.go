package tac

type (
	prefixParseFn func() Expression
	infixParseFn  func(Expression) Expression
)

// parser is a Pratt parser over a TokenSource. It stops at the first syntax
// error and never returns a partial tree.
type parser struct {
	tokens TokenSource
	source string

	curToken  Token
	peekToken Token

	err *SyntaxError

	prefixFns map[TokenType]prefixParseFn
	infixFns  map[TokenType]infixParseFn
}

func newParser(tokens TokenSource, source string) *parser {
	p := &parser{tokens: tokens, source: source}

	p.prefixFns = map[TokenType]prefixParseFn{
		tokenIdent:  p.parseIdentifier,
		tokenNumber: p.parseNumberLiteral,
		tokenMinus:  p.parseNegativeNumber,
		tokenLParen: p.parseGroupedExpression,
	}

	p.infixFns = make(map[TokenType]infixParseFn)
	for tt := range precedences {
		p.infixFns[tt] = p.parseInfixExpression
	}

	p.nextToken()
	p.nextToken()

	return p
}

func (p *parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.tokens.NextToken()
}

// ParseProgram parses top-level statements until EOF.
func (p *parser) ParseProgram() (*Block, error) {
	program := &Block{position: p.curToken.Pos}

	for p.curToken.Type != tokenEOF {
		stmt := p.parseStatement()
		if p.err != nil {
			return nil, p.err
		}
		program.Statements = append(program.Statements, stmt)
		p.nextToken()
	}

	return program, nil
}

func (p *parser) parseStatement() Statement {
	switch p.curToken.Type {
	case tokenIf:
		return p.parseIfStatement()
	case tokenWhile:
		return p.parseWhileStatement()
	case tokenFor:
		return p.parseForStatement()
	case tokenIdent:
		if p.peekToken.Type == tokenAssign {
			return p.parseAssignStatement()
		}
		return p.parseExpressionStatement()
	default:
		if _, ok := p.prefixFns[p.curToken.Type]; ok {
			return p.parseExpressionStatement()
		}
		p.errorExpected(p.curToken, "statement")
		return nil
	}
}

func (p *parser) parseAssignStatement() Statement {
	pos := p.curToken.Pos
	name := p.curToken.Literal
	p.nextToken()
	p.nextToken()
	value := p.parseExpression(lowestPrec)
	if value == nil {
		return nil
	}
	return &AssignStmt{Name: name, Value: value, position: pos}
}

func (p *parser) parseExpressionStatement() Statement {
	expr := p.parseExpression(lowestPrec)
	if expr == nil {
		return nil
	}
	return &ExprStmt{Expr: expr, position: expr.Pos()}
}

// parseBody parses `: { stmts }` with the current token on the last token
// before the colon. It leaves the current token on the closing brace.
func (p *parser) parseBody() *Block {
	if !p.expectPeek(tokenColon) {
		return nil
	}
	if !p.expectPeek(tokenLBrace) {
		return nil
	}
	block := &Block{position: p.curToken.Pos}
	p.nextToken()
	for p.curToken.Type != tokenRBrace {
		if p.curToken.Type == tokenEOF {
			p.errorExpected(p.curToken, "'}'")
			return nil
		}
		stmt := p.parseStatement()
		if p.err != nil {
			return nil
		}
		block.Statements = append(block.Statements, stmt)
		p.nextToken()
	}
	return block
}
