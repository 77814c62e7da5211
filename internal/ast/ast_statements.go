package ast

// ExpressionStatement wraps an expression evaluated for effect.
type ExpressionStatement struct {
	Base
	Expression Expression
}

func (*ExpressionStatement) Kind() string { return "ExpressionStatement" }
func (*ExpressionStatement) statementNode() {}

// VariableDeclarator is one `name = init` (or `name` with no initializer)
// inside a VariableDeclaration.
type VariableDeclarator struct {
	ID   *Identifier
	Init Expression // nil when absent; evaluates to Undefined
}

// VariableDeclaration is `var|let|const name = init, ...`.
type VariableDeclaration struct {
	Base
	DeclKind string // "var" | "let" | "const"
	Declarations []VariableDeclarator
}

func (*VariableDeclaration) Kind() string { return "VariableDeclaration" }
func (*VariableDeclaration) statementNode() {}

// BlockStatement is `{ statements... }`, evaluated in a fresh child frame.
type BlockStatement struct {
	Base
	Body []Statement
}

func (*BlockStatement) Kind() string { return "BlockStatement" }
func (*BlockStatement) statementNode() {}

// IfStatement is `if (test) consequent else alternate`. Alternate may be nil.
type IfStatement struct {
	Base
	Test       Expression
	Consequent Statement
	Alternate  Statement
}

func (*IfStatement) Kind() string { return "IfStatement" }
func (*IfStatement) statementNode() {}

// WhileStatement is `while (test) body`.
type WhileStatement struct {
	Base
	Test  Expression
	Body  Statement
	Label string
}

func (*WhileStatement) Kind() string { return "WhileStatement" }
func (*WhileStatement) statementNode() {}

// DoWhileStatement is `do body while (test)`.
type DoWhileStatement struct {
	Base
	Body  Statement
	Test  Expression
	Label string
}

func (*DoWhileStatement) Kind() string { return "DoWhileStatement" }
func (*DoWhileStatement) statementNode() {}

// ForStatement is the classic C-style `for (init; test; update) body`.
// Init and Update may be nil; Test nil means "always true".
type ForStatement struct {
	Base
	Init   Node // *VariableDeclaration or Expression, or nil
	Test   Expression
	Update Expression
	Body   Statement
	Label  string
}

func (*ForStatement) Kind() string { return "ForStatement" }
func (*ForStatement) statementNode() {}

// ForOfStatement is `for (decl of iterable) body`, driven by the host
// iterator protocol.
type ForOfStatement struct {
	Base
	DeclKind string // "var" | "let" | "const"
	Left     *Identifier
	Right    Expression
	Body     Statement
	Label    string
}

func (*ForOfStatement) Kind() string { return "ForOfStatement" }
func (*ForOfStatement) statementNode() {}

// ForInStatement is `for (decl in obj) body`, enumerating host keys.
type ForInStatement struct {
	Base
	DeclKind string
	Left     *Identifier
	Right    Expression
	Body     Statement
	Label    string
}

func (*ForInStatement) Kind() string { return "ForInStatement" }
func (*ForInStatement) statementNode() {}

// BreakStatement optionally names a Label to match against an enclosing
// labeled loop.
type BreakStatement struct {
	Base
	Label string
}

func (*BreakStatement) Kind() string { return "BreakStatement" }
func (*BreakStatement) statementNode() {}

// ContinueStatement optionally names a Label.
type ContinueStatement struct {
	Base
	Label string
}

func (*ContinueStatement) Kind() string { return "ContinueStatement" }
func (*ContinueStatement) statementNode() {}

// ReturnStatement evaluates Argument (absent ⇒ Undefined) and raises it
// through cerr as a ReturnStatement-typed ExceptionPacket.
type ReturnStatement struct {
	Base
	Argument Expression
}

func (*ReturnStatement) Kind() string { return "ReturnStatement" }
func (*ReturnStatement) statementNode() {}

// ThrowStatement evaluates Argument and raises it as a user exception.
type ThrowStatement struct {
	Base
	Argument Expression
}

func (*ThrowStatement) Kind() string { return "ThrowStatement" }
func (*ThrowStatement) statementNode() {}

// CatchClause is `catch (param) body`. Param may be nil (parameterless catch).
type CatchClause struct {
	Base
	Param *Identifier
	Body  *BlockStatement
}

func (*CatchClause) Kind() string { return "CatchClause" }

// TryStatement is `try block catch(param) handler finally finalizer`.
// Handler and Finalizer are independently optional.
type TryStatement struct {
	Base
	Block     *BlockStatement
	Handler   *CatchClause
	Finalizer *BlockStatement
}

func (*TryStatement) Kind() string { return "TryStatement" }
func (*TryStatement) statementNode() {}

// LabeledStatement attaches Label to Body, which must be a loop for the
// label to be meaningful to break/continue.
type LabeledStatement struct {
	Base
	Label string
	Body  Statement
}

func (*LabeledStatement) Kind() string { return "LabeledStatement" }
func (*LabeledStatement) statementNode() {}
