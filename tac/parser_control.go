package tac

func (p *parser) parseIfStatement() Statement {
	stmt := p.parseConditionalBranch()
	if stmt == nil {
		return nil
	}
	return stmt
}

// parseConditionalBranch handles both `if` and `elif`: the current token is
// the keyword. The chain is built recursively so each elif becomes the
// Alternative of the branch before it.
func (p *parser) parseConditionalBranch() *IfStmt {
	pos := p.curToken.Pos
	p.nextToken()
	condition := p.parseExpression(lowestPrec)
	if condition == nil {
		return nil
	}
	body := p.parseBody()
	if body == nil {
		return nil
	}

	stmt := &IfStmt{Condition: condition, Body: body, position: pos}
	switch p.peekToken.Type {
	case tokenElif:
		p.nextToken()
		elif := p.parseConditionalBranch()
		if elif == nil {
			return nil
		}
		stmt.Alternative = elif
	case tokenElse:
		p.nextToken()
		alternate := p.parseBody()
		if alternate == nil {
			return nil
		}
		stmt.Alternative = alternate
	}
	return stmt
}

func (p *parser) parseWhileStatement() Statement {
	pos := p.curToken.Pos
	p.nextToken()
	condition := p.parseExpression(lowestPrec)
	if condition == nil {
		return nil
	}
	body := p.parseBody()
	if body == nil {
		return nil
	}
	return &WhileStmt{Condition: condition, Body: body, position: pos}
}

func (p *parser) parseForStatement() Statement {
	pos := p.curToken.Pos
	if !p.expectPeek(tokenIdent) {
		return nil
	}
	name := p.curToken.Literal

	for _, tt := range []TokenType{tokenIn, tokenRange, tokenLParen, tokenNumber} {
		if !p.expectPeek(tt) {
			return nil
		}
	}
	bound := &Literal{Kind: LiteralNumber, Text: canonicalNumber(p.curToken.Literal), position: p.curToken.Pos}

	if !p.expectPeek(tokenRParen) {
		return nil
	}
	body := p.parseBody()
	if body == nil {
		return nil
	}
	return &ForStmt{Var: name, Bound: bound, Body: body, position: pos}
}
