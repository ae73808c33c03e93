package tac

import "fmt"

// genContext is the mutable state of one generation pass. A new one is
// created for every Generate call so counters always start at 1.
type genContext struct {
	symbols  *SymbolTable
	temps    counter
	labels   counter
	declType Type
}

func newGenContext(cfg Config) *genContext {
	return &genContext{
		symbols:  NewSymbolTable(),
		temps:    counter{prefix: cfg.TempPrefix},
		labels:   counter{prefix: cfg.LabelPrefix},
		declType: Type(cfg.TypeName),
	}
}

// lower translates node into code plus the reference its value lands in.
// Operands are always emitted before the instruction that consumes them.
func (g *genContext) lower(node Node) ([]Instr, Ref, error) {
	switch n := node.(type) {
	case *Literal:
		if n == nil {
			break
		}
		if n.Kind == LiteralName {
			return nil, Ref{Kind: RefName, Text: n.Text}, nil
		}
		return nil, Ref{Kind: RefNumber, Text: n.Text}, nil
	case *Grouping:
		if n == nil {
			break
		}
		return g.lower(n.Inner)
	case *BinaryExpr:
		if n == nil {
			break
		}
		return g.lowerBinary(n)
	case *AssignStmt:
		if n == nil {
			break
		}
		return g.lowerAssign(n)
	case *ExprStmt:
		if n == nil {
			break
		}
		return g.lower(n.Expr)
	case *IfStmt:
		if n == nil {
			break
		}
		code, err := g.lowerIf(n)
		return code, Ref{}, err
	case *WhileStmt:
		if n == nil {
			break
		}
		code, err := g.lowerWhile(n)
		return code, Ref{}, err
	case *ForStmt:
		if n == nil {
			break
		}
		code, err := g.lowerFor(n)
		return code, Ref{}, err
	case *Block:
		code, err := g.lowerBlock(n)
		return code, Ref{}, err
	}
	return nil, Ref{}, invalidInstruction(node)
}

func invalidInstruction(node Node) error {
	return &InternalError{Msg: fmt.Sprintf("invalid instruction: %T", node)}
}

// lowerValue lowers an expression that must produce a value.
func (g *genContext) lowerValue(expr Expression) ([]Instr, Ref, error) {
	code, ref, err := g.lower(expr)
	if err != nil {
		return nil, Ref{}, err
	}
	if ref.IsNone() {
		return nil, Ref{}, &InternalError{Msg: fmt.Sprintf("%T produces no value", expr)}
	}
	return code, ref, nil
}

// lowerBlock concatenates the code of each statement in order and drops
// their results. A nil block is an empty body.
func (g *genContext) lowerBlock(block *Block) ([]Instr, error) {
	if block == nil {
		return nil, nil
	}
	var code []Instr
	for _, stmt := range block.Statements {
		stmtCode, _, err := g.lower(stmt)
		if err != nil {
			return nil, err
		}
		code = append(code, stmtCode...)
	}
	return code, nil
}

func (g *genContext) lowerBinary(expr *BinaryExpr) ([]Instr, Ref, error) {
	leftCode, left, err := g.lowerValue(expr.Left)
	if err != nil {
		return nil, Ref{}, err
	}
	rightCode, right, err := g.lowerValue(expr.Right)
	if err != nil {
		return nil, Ref{}, err
	}
	if !isOperator(expr.Op) {
		return nil, Ref{}, &InternalError{Msg: fmt.Sprintf("invalid operator %q", expr.Op)}
	}

	temp := g.temps.next()
	code := append(leftCode, rightCode...)
	code = append(code, BinOp{Dest: temp, Declare: true, Op: expr.Op, Left: left, Right: right})
	return code, Ref{Kind: RefTemp, Text: temp}, nil
}

func (g *genContext) lowerAssign(stmt *AssignStmt) ([]Instr, Ref, error) {
	code, value, err := g.lowerValue(stmt.Value)
	if err != nil {
		return nil, Ref{}, err
	}
	declare := g.symbols.Declare(stmt.Name, g.declType)
	code = append(code, Assign{Dest: stmt.Name, Declare: declare, Src: value})
	return code, Ref{Kind: RefName, Text: stmt.Name}, nil
}

func isOperator(op string) bool {
	switch op {
	case "+", "-", "*", "/", "==", "!=", "<", "<=", ">", ">=":
		return true
	}
	return false
}
