package ast

import "vaaktra/common"

// VarDecl represents a variable declaration.  The declared type is always
// explicit and is stored on the symbol.
type VarDecl struct {
	ASTBase

	// The symbol of the variable being declared.
	Sym *common.Symbol

	// The initializer of the variable.  Never nil: every declaration
	// initializes its binding.
	Initializer ASTExpr
}

// IfTree represents an if/else-if/else tree (यदि/अन्यथा).
type IfTree struct {
	ASTBase

	// The conditional branches which make up the tree.
	CondBranches []CondBranch

	// The else branch of the tree.  May be nil.
	ElseBranch *Block
}

// CondBranch represents a single conditional branch of an if tree.
type CondBranch struct {
	// The condition of the branch.
	Condition ASTExpr

	// The body of the branch.
	Body *Block
}

// WhileLoop represents a while loop (यावत्).
type WhileLoop struct {
	ASTBase

	// The condition of the loop.
	Condition ASTExpr

	// The body of the loop.
	Body *Block
}

// ReturnStmt represents a return statement (निर्गम).
type ReturnStmt struct {
	ASTBase

	// The returned expression.  May be nil for a valueless return.
	Expr ASTExpr
}

// ExprStmt represents an expression evaluated in statement position.
type ExprStmt struct {
	ASTBase

	// The evaluated expression.
	Expr ASTExpr
}
