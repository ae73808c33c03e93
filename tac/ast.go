package tac

type Node interface {
	Pos() Position
}

type Statement interface {
	Node
	stmtNode()
}

type Expression interface {
	Node
	exprNode()
}

// Alternative is what follows an if/elif branch: another *IfStmt for elif,
// a *Block for else, or nil when the chain ends.
type Alternative interface {
	Node
	altNode()
}

// Block is an ordered statement sequence. A program is a Block.
type Block struct {
	Statements []Statement
	position   Position
}

func (b *Block) altNode()      {}
func (b *Block) Pos() Position { return b.position }

type LiteralKind int

const (
	LiteralNumber LiteralKind = iota
	LiteralName
)

// Literal is a number or a bare identifier reference.
type Literal struct {
	Kind     LiteralKind
	Text     string
	position Position
}

func (e *Literal) exprNode()     {}
func (e *Literal) Pos() Position { return e.position }

type Grouping struct {
	Inner    Expression
	position Position
}

func (e *Grouping) exprNode()     {}
func (e *Grouping) Pos() Position { return e.position }

type BinaryExpr struct {
	Op       string
	Left     Expression
	Right    Expression
	position Position
}

func (e *BinaryExpr) exprNode()     {}
func (e *BinaryExpr) Pos() Position { return e.position }

type AssignStmt struct {
	Name     string
	Value    Expression
	position Position
}

func (s *AssignStmt) stmtNode()     {}
func (s *AssignStmt) Pos() Position { return s.position }

type ExprStmt struct {
	Expr     Expression
	position Position
}

func (s *ExprStmt) stmtNode()     {}
func (s *ExprStmt) Pos() Position { return s.position }

type IfStmt struct {
	Condition   Expression
	Body        *Block
	Alternative Alternative
	position    Position
}

func (s *IfStmt) stmtNode()     {}
func (s *IfStmt) altNode()      {}
func (s *IfStmt) Pos() Position { return s.position }

type WhileStmt struct {
	Condition Expression
	Body      *Block
	position  Position
}

func (s *WhileStmt) stmtNode()     {}
func (s *WhileStmt) Pos() Position { return s.position }

// ForStmt counts Var from 0 up to, but excluding, Bound in steps of 1.
type ForStmt struct {
	Var      string
	Bound    *Literal
	Body     *Block
	position Position
}

func (s *ForStmt) stmtNode()     {}
func (s *ForStmt) Pos() Position { return s.position }

// Constructors for building trees by hand. The parser sets positions; these
// leave them zero.

func NewBlock(stmts ...Statement) *Block { return &Block{Statements: stmts} }

func NewNumber(text string) *Literal { return &Literal{Kind: LiteralNumber, Text: text} }

func NewName(name string) *Literal { return &Literal{Kind: LiteralName, Text: name} }

func NewGrouping(inner Expression) *Grouping { return &Grouping{Inner: inner} }

func NewBinary(op string, left, right Expression) *BinaryExpr {
	return &BinaryExpr{Op: op, Left: left, Right: right}
}

func NewAssign(name string, value Expression) *AssignStmt {
	return &AssignStmt{Name: name, Value: value}
}

func NewExprStmt(expr Expression) *ExprStmt { return &ExprStmt{Expr: expr} }

func NewIf(cond Expression, body *Block, alt Alternative) *IfStmt {
	return &IfStmt{Condition: cond, Body: body, Alternative: alt}
}

func NewWhile(cond Expression, body *Block) *WhileStmt {
	return &WhileStmt{Condition: cond, Body: body}
}

func NewFor(name string, bound *Literal, body *Block) *ForStmt {
	return &ForStmt{Var: name, Bound: bound, Body: body}
}
