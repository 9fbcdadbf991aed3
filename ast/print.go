package ast

import (
	"fmt"
	"strconv"
	"strings"

	"vaaktra/types"
)

// Print renders a program back to canonical source text.  The rendered text
// re-parses to a structurally equal program: printing is the inverse of
// parsing up to whitespace, digit script, and redundant grouping.
func Print(prog *Program) string {
	pr := &printer{}

	for i, fn := range prog.Funcs {
		if i > 0 {
			pr.sb.WriteRune('\n')
		}

		pr.printFuncDef(fn)
	}

	return pr.sb.String()
}

type printer struct {
	sb     strings.Builder
	indent int
}

func (pr *printer) printFuncDef(fn *FuncDef) {
	pr.sb.WriteString("मन्त्र ")
	pr.sb.WriteString(fn.Symbol.Name)
	pr.sb.WriteRune('(')

	for i, param := range fn.Params {
		if i > 0 {
			pr.sb.WriteString(", ")
		}

		pr.sb.WriteString(param.Name)
		pr.sb.WriteString(": ")
		pr.sb.WriteString(param.Type.Repr())
	}

	pr.sb.WriteString(") ")

	ft := fn.Symbol.Type.(*types.FuncType)
	if !types.IsUnit(ft.ReturnType) {
		pr.sb.WriteString(ft.ReturnType.Repr())
		pr.sb.WriteRune(' ')
	}

	pr.printBlock(fn.Body)
	pr.sb.WriteRune('\n')
}

func (pr *printer) printBlock(block *Block) {
	pr.sb.WriteString("{\n")
	pr.indent++

	for _, stmt := range block.Stmts {
		pr.printIndent()
		pr.printStmt(stmt)
		pr.sb.WriteRune('\n')
	}

	pr.indent--
	pr.printIndent()
	pr.sb.WriteRune('}')
}

func (pr *printer) printIndent() {
	pr.sb.WriteString(strings.Repeat("    ", pr.indent))
}

func (pr *printer) printStmt(stmt ASTNode) {
	switch v := stmt.(type) {
	case *VarDecl:
		if v.Sym.Mutable {
			pr.sb.WriteString("चल ")
		}

		pr.sb.WriteString(v.Sym.Type.Repr())
		pr.sb.WriteRune(' ')
		pr.sb.WriteString(v.Sym.Name)
		pr.sb.WriteString(" = ")
		pr.printExpr(v.Initializer)
		pr.sb.WriteRune(';')
	case *IfTree:
		for i, branch := range v.CondBranches {
			if i > 0 {
				pr.sb.WriteString(" अन्यथा ")
			}

			pr.sb.WriteString("यदि (")
			pr.printExpr(branch.Condition)
			pr.sb.WriteString(") ")
			pr.printBlock(branch.Body)
		}

		if v.ElseBranch != nil {
			pr.sb.WriteString(" अन्यथा ")
			pr.printBlock(v.ElseBranch)
		}
	case *WhileLoop:
		pr.sb.WriteString("यावत् (")
		pr.printExpr(v.Condition)
		pr.sb.WriteString(") ")
		pr.printBlock(v.Body)
	case *ReturnStmt:
		pr.sb.WriteString("निर्गम")
		if v.Expr != nil {
			pr.sb.WriteRune(' ')
			pr.printExpr(v.Expr)
		}
		pr.sb.WriteRune(';')
	case *ExprStmt:
		pr.printExpr(v.Expr)
		pr.sb.WriteRune(';')
	}
}

func (pr *printer) printExpr(expr ASTExpr) {
	switch v := expr.(type) {
	case *BinaryExpr:
		// Binary expressions print fully parenthesized so the rendered text
		// regroups exactly as the tree does, independent of precedence.
		pr.sb.WriteRune('(')
		pr.printExpr(v.Lhs)
		pr.sb.WriteString(" " + v.Op.Name + " ")
		pr.printExpr(v.Rhs)
		pr.sb.WriteRune(')')
	case *UnaryExpr:
		pr.sb.WriteString(v.Op.Name)
		if v.MutBorrow {
			pr.sb.WriteString("चल ")
		}
		pr.printExpr(v.Operand)
	case *CallExpr:
		pr.printExpr(v.Func)
		pr.sb.WriteRune('(')
		for i, arg := range v.Args {
			if i > 0 {
				pr.sb.WriteString(", ")
			}
			pr.printExpr(arg)
		}
		pr.sb.WriteRune(')')
	case *Literal:
		switch val := v.Value.(type) {
		case int64:
			pr.sb.WriteString(strconv.FormatInt(val, 10))
		case bool:
			if val {
				pr.sb.WriteString("सत्यम्")
			} else {
				pr.sb.WriteString("मिथ्या")
			}
		case string:
			pr.printStringLit(val)
		}
	case *Identifier:
		pr.sb.WriteString(v.Name)
	default:
		panic(fmt.Sprintf("cannot print expression of type %T", expr))
	}
}

func (pr *printer) printStringLit(val string) {
	pr.sb.WriteRune('"')

	for _, c := range val {
		switch c {
		case '\n':
			pr.sb.WriteString("\\n")
		case '\t':
			pr.sb.WriteString("\\t")
		case '\r':
			pr.sb.WriteString("\\r")
		case 0:
			pr.sb.WriteString("\\0")
		case '\\':
			pr.sb.WriteString("\\\\")
		case '"':
			pr.sb.WriteString("\\\"")
		default:
			pr.sb.WriteRune(c)
		}
	}

	pr.sb.WriteRune('"')
}
