package syntax

import (
	"vaaktra/ast"
	"vaaktra/common"
	"vaaktra/report"
	"vaaktra/types"
)

// EntryFuncName is the name of the program entry function.  Loose top-level
// statements are collected into a synthetic function of this name.
const EntryFuncName = "प्रधानं"

// program := {func_def | stmt} ;
func (p *Parser) parseProgram() *ast.Program {
	startSpan := p.tok.Span

	var funcs []*ast.FuncDef
	var looseStmts []ast.ASTNode
	var looseStart *report.TextSpan

	for !p.has(TOK_EOF) {
		if p.has(TOK_FUNC) {
			funcs = append(funcs, p.parseFuncDef())
		} else {
			if looseStart == nil {
				looseStart = p.tok.Span
			}

			looseStmts = append(looseStmts, p.parseStmt())
		}
	}

	endSpan := p.tok.Span

	// Loose statements form the body of a synthetic entry function so that
	// every statement in the tree lives inside a function.
	if len(looseStmts) > 0 {
		looseSpan := report.NewSpanOver(looseStart, p.lookbehind.Span)

		funcs = append(funcs, &ast.FuncDef{
			ASTBase: ast.NewASTBaseOn(looseSpan),
			Symbol: &common.Symbol{
				Name:    EntryFuncName,
				DefSpan: looseSpan,
				Type:    &types.FuncType{ReturnType: types.PrimTypeUnit},
				DefKind: common.DefKindFunc,
			},
			Body: &ast.Block{
				ASTBase: ast.NewASTBaseOn(looseSpan),
				Stmts:   looseStmts,
			},
			Synthetic: true,
		})
	}

	return &ast.Program{
		ASTBase: ast.NewASTBaseOver(startSpan, endSpan),
		Funcs:   funcs,
	}
}

// func_def := 'मन्त्र' 'IDENT' '(' [func_params] ')' [type_label] block ;
func (p *Parser) parseFuncDef() *ast.FuncDef {
	startSpan := p.want(TOK_FUNC).Span

	funcIdent := p.want(TOK_IDENT)

	p.want(TOK_LPAREN)

	var funcParams []*common.Symbol
	if !p.has(TOK_RPAREN) {
		funcParams = p.parseFuncParams()
	}

	p.wantAs(TOK_RPAREN, report.KindMalformedParamList)

	var returnType types.Type = types.PrimTypeUnit
	if !p.has(TOK_LBRACE) {
		returnType = p.parseTypeLabel()
	}

	funcBody := p.parseBlock()

	funcType := &types.FuncType{ReturnType: returnType}
	for _, param := range funcParams {
		funcType.ParamTypes = append(funcType.ParamTypes, param.Type)
	}

	return &ast.FuncDef{
		ASTBase: ast.NewASTBaseOver(startSpan, p.lookbehind.Span),
		Symbol: &common.Symbol{
			Name:    funcIdent.Value,
			DefSpan: funcIdent.Span,
			Type:    funcType,
			DefKind: common.DefKindFunc,
		},
		Params: funcParams,
		Body:   funcBody,
	}
}

// func_params := func_param {',' func_param} ;
// func_param := 'IDENT' ':' type_label ;
func (p *Parser) parseFuncParams() []*common.Symbol {
	var funcParams []*common.Symbol
	paramNames := make(map[string]struct{})

	for {
		ident := p.wantAs(TOK_IDENT, report.KindMalformedParamList)
		p.wantAs(TOK_COLON, report.KindMalformedParamList)
		typ := p.parseTypeLabel()

		if _, ok := paramNames[ident.Value]; ok {
			p.error(ident, report.KindMalformedParamList, "multiple parameters named `%s`", ident.Value)
		}
		paramNames[ident.Value] = struct{}{}

		// A parameter declared as a mutable borrow may mutate through the
		// borrow; any other parameter binding is immutable.
		mutable := false
		if rt, ok := typ.(*types.RefType); ok {
			mutable = rt.Mutable
		}

		funcParams = append(funcParams, &common.Symbol{
			Name:    ident.Value,
			DefSpan: ident.Span,
			Type:    typ,
			DefKind: common.DefKindValue,
			Mutable: mutable,
		})

		if p.has(TOK_COMMA) {
			p.next()

			continue
		}

		break
	}

	return funcParams
}

// type_label := ['&' ['चल']] prim_type ;
// prim_type := 'संख्या' | 'सत्यासत्य' | 'पाठ' ;
func (p *Parser) parseTypeLabel() types.Type {
	if p.has(TOK_AMP) {
		p.next()

		mutable := false
		if p.has(TOK_MUT) {
			p.next()
			mutable = true
		}

		return &types.RefType{ElemType: p.parsePrimType(), Mutable: mutable}
	}

	return p.parsePrimType()
}

// parsePrimType parses a primitive type keyword.
func (p *Parser) parsePrimType() types.Type {
	switch p.tok.Kind {
	case TOK_INTTYPE:
		p.next()
		return types.PrimTypeInteger
	case TOK_BOOLTYPE:
		p.next()
		return types.PrimTypeBoolean
	case TOK_STRTYPE:
		p.next()
		return types.PrimTypeString
	default:
		p.rejectAs(report.KindUnexpectedToken, "expected a type")
		return nil
	}
}

// block := '{' {stmt} '}' ;
func (p *Parser) parseBlock() *ast.Block {
	startSpan := p.want(TOK_LBRACE).Span

	var stmts []ast.ASTNode
	for !p.has(TOK_RBRACE) {
		if p.has(TOK_EOF) {
			p.rejectAs(report.KindUnclosedDelimiter, "expected `}` to close block")
		}

		stmts = append(stmts, p.parseStmt())
	}

	endSpan := p.want(TOK_RBRACE).Span

	return &ast.Block{
		ASTBase: ast.NewASTBaseOver(startSpan, endSpan),
		Stmts:   stmts,
	}
}
