package tac

import "strings"

func (p *parser) parseExpression(precedence int) Expression {
	prefix := p.prefixFns[p.curToken.Type]
	if prefix == nil {
		p.errorExpected(p.curToken, "expression")
		return nil
	}

	left := prefix()
	if left == nil {
		return nil
	}

	for p.peekToken.Type != tokenEOF && precedence < p.peekPrecedence() {
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
	return &Literal{Kind: LiteralName, Text: p.curToken.Literal, position: p.curToken.Pos}
}

func (p *parser) parseNumberLiteral() Expression {
	return &Literal{Kind: LiteralNumber, Text: canonicalNumber(p.curToken.Literal), position: p.curToken.Pos}
}

// parseNegativeNumber accepts `-` directly followed by a number. There is no
// general unary minus.
func (p *parser) parseNegativeNumber() Expression {
	pos := p.curToken.Pos
	if !p.expectPeek(tokenNumber) {
		return nil
	}
	digits := canonicalNumber(p.curToken.Literal)
	if digits != "0" {
		digits = "-" + digits
	}
	return &Literal{Kind: LiteralNumber, Text: digits, position: pos}
}

// canonicalNumber drops leading zeros so `007` is emitted as `7`.
func canonicalNumber(digits string) string {
	if trimmed := strings.TrimLeft(digits, "0"); trimmed != "" {
		return trimmed
	}
	return "0"
}

func (p *parser) parseGroupedExpression() Expression {
	pos := p.curToken.Pos
	p.nextToken()
	inner := p.parseExpression(lowestPrec)
	if inner == nil {
		return nil
	}
	if !p.expectPeek(tokenRParen) {
		return nil
	}
	return &Grouping{Inner: inner, position: pos}
}

func (p *parser) parseInfixExpression(left Expression) Expression {
	pos := p.curToken.Pos
	operator := p.curToken.Type
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}
	if precedence == precComparison && p.peekPrecedence() == precComparison {
		p.addSyntaxError(p.peekToken.Pos, "comparison operators cannot be chained")
		return nil
	}
	return &BinaryExpr{Op: string(operator), Left: left, Right: right, position: pos}
}
