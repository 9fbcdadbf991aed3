package syntax

import (
	"vaaktra/ast"
	"vaaktra/common"
	"vaaktra/report"
)

// stmt := var_decl | if_stmt | while_loop | return_stmt | expr_stmt ;
func (p *Parser) parseStmt() ast.ASTNode {
	switch p.tok.Kind {
	case TOK_MUT, TOK_INTTYPE, TOK_BOOLTYPE, TOK_STRTYPE, TOK_AMP:
		return p.parseVarDecl()
	case TOK_IF:
		return p.parseIfStmt()
	case TOK_WHILE:
		return p.parseWhileLoop()
	case TOK_RETURN:
		return p.parseReturnStmt()
	default:
		return p.parseExprStmt()
	}
}

// var_decl := ['चल'] type_label 'IDENT' '=' expr ';' ;
func (p *Parser) parseVarDecl() *ast.VarDecl {
	startSpan := p.tok.Span

	mutable := false
	if p.has(TOK_MUT) {
		p.next()
		mutable = true
	}

	typ := p.parseTypeLabel()
	ident := p.want(TOK_IDENT)

	p.want(TOK_ASSIGN)
	init := p.parseExpr()

	p.wantAs(TOK_SEMI, report.KindMissingTerminator)

	return &ast.VarDecl{
		ASTBase: ast.NewASTBaseOver(startSpan, p.lookbehind.Span),
		Sym: &common.Symbol{
			Name:    ident.Value,
			DefSpan: ident.Span,
			Type:    typ,
			DefKind: common.DefKindValue,
			Mutable: mutable,
		},
		Initializer: init,
	}
}

// if_stmt := 'यदि' '(' expr ')' block ['अन्यथा' (if_stmt | block)] ;
func (p *Parser) parseIfStmt() *ast.IfTree {
	startSpan := p.want(TOK_IF).Span

	condBranches := []ast.CondBranch{p.parseCondBranch()}

	var elseBranch *ast.Block
	for p.has(TOK_ELSE) {
		p.next()

		// `अन्यथा यदि` chains onto the same tree as another conditional
		// branch; a bare `अन्यथा` block ends the tree.
		if p.has(TOK_IF) {
			p.next()
			condBranches = append(condBranches, p.parseCondBranch())
		} else {
			elseBranch = p.parseBlock()
			break
		}
	}

	return &ast.IfTree{
		ASTBase:      ast.NewASTBaseOver(startSpan, p.lookbehind.Span),
		CondBranches: condBranches,
		ElseBranch:   elseBranch,
	}
}

// parseCondBranch parses the condition and body of one conditional branch.
func (p *Parser) parseCondBranch() ast.CondBranch {
	p.want(TOK_LPAREN)
	cond := p.parseExpr()
	p.wantAs(TOK_RPAREN, report.KindUnclosedDelimiter)

	return ast.CondBranch{
		Condition: cond,
		Body:      p.parseBlock(),
	}
}

// while_loop := 'यावत्' '(' expr ')' block ;
func (p *Parser) parseWhileLoop() *ast.WhileLoop {
	startSpan := p.want(TOK_WHILE).Span

	p.want(TOK_LPAREN)
	cond := p.parseExpr()
	p.wantAs(TOK_RPAREN, report.KindUnclosedDelimiter)

	body := p.parseBlock()

	return &ast.WhileLoop{
		ASTBase:   ast.NewASTBaseOver(startSpan, p.lookbehind.Span),
		Condition: cond,
		Body:      body,
	}
}

// return_stmt := 'निर्गम' [expr] ';' ;
func (p *Parser) parseReturnStmt() *ast.ReturnStmt {
	startSpan := p.want(TOK_RETURN).Span

	var expr ast.ASTExpr
	if !p.has(TOK_SEMI) {
		expr = p.parseExpr()
	}

	p.wantAs(TOK_SEMI, report.KindMissingTerminator)

	return &ast.ReturnStmt{
		ASTBase: ast.NewASTBaseOver(startSpan, p.lookbehind.Span),
		Expr:    expr,
	}
}

// expr_stmt := expr ';' ;
func (p *Parser) parseExprStmt() *ast.ExprStmt {
	expr := p.parseExpr()

	p.wantAs(TOK_SEMI, report.KindMissingTerminator)

	return &ast.ExprStmt{
		ASTBase: ast.NewASTBaseOver(expr.Span(), p.lookbehind.Span),
		Expr:    expr,
	}
}
