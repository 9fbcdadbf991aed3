package syntax

import (
	"vaaktra/ast"
	"vaaktra/report"
)

// precTable is the operator precedence table for binary operators, ordered
// lowest to highest precedence.  The levels match conventional C-family
// precedence; all levels are left associative.
var precTable = [][]int{
	{TOK_LOR},
	{TOK_LAND},
	{TOK_EQ, TOK_NEQ},
	{TOK_LT, TOK_GT, TOK_LTEQ, TOK_GTEQ},
	{TOK_PLUS, TOK_MINUS},
	{TOK_STAR, TOK_DIV, TOK_MOD},
}

// expr := assign_expr ;
// assign_expr := bin_op_expr ['=' assign_expr] ;
func (p *Parser) parseExpr() ast.ASTExpr {
	lhs := p.parseBinOpExpr(0)

	// Assignment is the lowest precedence level and is right associative.
	if p.has(TOK_ASSIGN) {
		opTok := p.tok
		p.next()

		rhs := p.parseExpr()

		return &ast.BinaryExpr{
			ExprBase: ast.NewExprBase(report.NewSpanOver(lhs.Span(), rhs.Span()), ast.RValue),
			Op:       ast.Oper{Kind: opTok.Kind, Name: opTok.Value, Span: opTok.Span},
			Lhs:      lhs,
			Rhs:      rhs,
		}
	}

	return lhs
}

// bin_op_expr := unary_expr {bin_oper unary_expr} ;
//
// Binary expressions parse by precedence climbing: each level parses its
// sub-level operand first and then folds operators of its own level left to
// right, so no backtracking ever occurs.
func (p *Parser) parseBinOpExpr(prec int) ast.ASTExpr {
	if prec >= len(precTable) {
		return p.parseUnaryExpr()
	}

	lhs := p.parseBinOpExpr(prec + 1)

	for p.hasOneOf(precTable[prec]...) {
		opTok := p.tok
		p.next()

		rhs := p.parseBinOpExpr(prec + 1)

		lhs = &ast.BinaryExpr{
			ExprBase: ast.NewExprBase(report.NewSpanOver(lhs.Span(), rhs.Span()), ast.RValue),
			Op:       ast.Oper{Kind: opTok.Kind, Name: opTok.Value, Span: opTok.Span},
			Lhs:      lhs,
			Rhs:      rhs,
		}
	}

	return lhs
}

// unary_expr := ['-' | '!' | '*' | '&' ['चल']] unary_expr | atom_expr ;
func (p *Parser) parseUnaryExpr() ast.ASTExpr {
	switch p.tok.Kind {
	case TOK_MINUS, TOK_NOT, TOK_STAR:
		opTok := p.tok
		p.next()

		operand := p.parseUnaryExpr()

		// A dereference is an l-value: it may be assigned through.
		cat := ast.RValue
		if opTok.Kind == TOK_STAR {
			cat = ast.LValue
		}

		return &ast.UnaryExpr{
			ExprBase: ast.NewExprBase(report.NewSpanOver(opTok.Span, operand.Span()), cat),
			Op:       ast.Oper{Kind: opTok.Kind, Name: opTok.Value, Span: opTok.Span},
			Operand:  operand,
		}
	case TOK_AMP:
		opTok := p.tok
		p.next()

		mutable := false
		if p.has(TOK_MUT) {
			p.next()
			mutable = true
		}

		operand := p.parseUnaryExpr()

		return &ast.UnaryExpr{
			ExprBase:  ast.NewExprBase(report.NewSpanOver(opTok.Span, operand.Span()), ast.RValue),
			Op:        ast.Oper{Kind: opTok.Kind, Name: opTok.Value, Span: opTok.Span},
			Operand:   operand,
			MutBorrow: mutable,
		}
	default:
		return p.parseAtomExpr()
	}
}

// atom_expr := atom {'(' [expr {',' expr}] ')'} ;
func (p *Parser) parseAtomExpr() ast.ASTExpr {
	expr := p.parseAtom()

	for p.has(TOK_LPAREN) {
		p.next()

		var args []ast.ASTExpr
		if !p.has(TOK_RPAREN) {
			for {
				args = append(args, p.parseExpr())

				if p.has(TOK_COMMA) {
					p.next()

					continue
				}

				break
			}
		}

		endTok := p.wantAs(TOK_RPAREN, report.KindUnclosedDelimiter)

		expr = &ast.CallExpr{
			ExprBase: ast.NewExprBase(report.NewSpanOver(expr.Span(), endTok.Span), ast.RValue),
			Func:     expr,
			Args:     args,
		}
	}

	return expr
}

// atom := 'INTLIT' | 'BOOLLIT' | 'STRINGLIT' | 'IDENT' | '(' expr ')' ;
func (p *Parser) parseAtom() ast.ASTExpr {
	startTok := p.tok

	switch p.tok.Kind {
	case TOK_INTLIT, TOK_BOOLLIT, TOK_STRINGLIT:
		p.next()
		return &ast.Literal{
			ExprBase: ast.NewExprBase(startTok.Span, ast.RValue),
			Kind:     startTok.Kind,
			Value:    startTok.Decoded,
			Text:     startTok.Value,
		}
	case TOK_IDENT:
		p.next()
		return &ast.Identifier{
			ExprBase: ast.NewExprBase(startTok.Span, ast.LValue),
			Name:     startTok.Value,
		}
	case TOK_LPAREN:
		// Parenthesized expressions only affect grouping: they produce no
		// AST node of their own.
		p.next()
		expr := p.parseExpr()
		p.wantAs(TOK_RPAREN, report.KindUnclosedDelimiter)
		return expr
	default:
		p.rejectAs(report.KindUnexpectedToken, "expected an expression")
		return nil
	}
}
