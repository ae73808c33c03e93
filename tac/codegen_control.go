package tac

import "fmt"

type branchKind int

const (
	branchIf branchKind = iota
	branchElif
	branchElse
)

type branch struct {
	kind      branchKind
	condition Expression
	body      *Block
}

// flattenIf turns the linked if/elif/else chain into an ordered list.
func flattenIf(stmt *IfStmt) ([]branch, error) {
	var branches []branch
	seen := make(map[*IfStmt]struct{})
	kind := branchIf
	var alt Alternative = stmt
	for alt != nil {
		switch node := alt.(type) {
		case *IfStmt:
			if node == nil {
				return branches, nil
			}
			if _, ok := seen[node]; ok {
				return nil, &InternalError{Msg: "if chain refers back to itself"}
			}
			seen[node] = struct{}{}
			branches = append(branches, branch{kind: kind, condition: node.Condition, body: node.Body})
			kind = branchElif
			alt = node.Alternative
		case *Block:
			if node != nil {
				branches = append(branches, branch{kind: branchElse, body: node})
			}
			return branches, nil
		default:
			return nil, invalidInstruction(alt)
		}
	}
	return branches, nil
}

// lowerIf evaluates every branch condition up front, then emits one test per
// conditional branch that skips to the next branch on failure. Bodies jump to
// a shared done label.
func (g *genContext) lowerIf(stmt *IfStmt) ([]Instr, error) {
	branches, err := flattenIf(stmt)
	if err != nil {
		return nil, err
	}

	done := g.labels.next()
	var conditions, body []Instr
	for _, br := range branches {
		if br.kind == branchElse {
			code, err := g.lowerBlock(br.body)
			if err != nil {
				return nil, err
			}
			body = append(body, code...)
			continue
		}

		condCode, cond, err := g.lowerValue(br.condition)
		if err != nil {
			return nil, err
		}
		code, err := g.lowerBlock(br.body)
		if err != nil {
			return nil, err
		}
		next := g.labels.next()

		conditions = append(conditions, condCode...)
		body = append(body, CondJump{Cond: Condition{Negate: true, Left: cond}, Target: next})
		body = append(body, code...)
		body = append(body, Jump{Target: done}, Label{Name: next})
	}

	code := append(conditions, body...)
	return append(code, Label{Name: done}), nil
}

// lowerWhile tests the condition at the top of the loop and recomputes it at
// the tail. The tail copy reuses the same temporaries without declaring them.
func (g *genContext) lowerWhile(stmt *WhileStmt) ([]Instr, error) {
	condCode, cond, err := g.lowerValue(stmt.Condition)
	if err != nil {
		return nil, err
	}
	start := g.labels.next()
	end := g.labels.next()
	body, err := g.lowerBlock(stmt.Body)
	if err != nil {
		return nil, err
	}

	code := make([]Instr, 0, 2*len(condCode)+len(body)+4)
	code = append(code, condCode...)
	code = append(code, Label{Name: start}, CondJump{Cond: Condition{Negate: true, Left: cond}, Target: end})
	code = append(code, body...)
	code = append(code, undeclared(condCode)...)
	code = append(code, Jump{Target: start}, Label{Name: end})
	return code, nil
}

// lowerFor counts from 0 by a step of 1. The comparison flips for a negative
// step, which the grammar cannot produce today.
func (g *genContext) lowerFor(stmt *ForStmt) ([]Instr, error) {
	if stmt.Bound == nil {
		return nil, &InternalError{Msg: fmt.Sprintf("for %s has no bound", stmt.Var)}
	}
	_, bound, err := g.lowerValue(stmt.Bound)
	if err != nil {
		return nil, err
	}

	const start, step = 0, 1
	operator := ">="
	if step < 0 {
		operator = "<="
	}

	declare := g.symbols.Declare(stmt.Var, g.declType)
	top := g.labels.next()
	end := g.labels.next()
	body, err := g.lowerBlock(stmt.Body)
	if err != nil {
		return nil, err
	}

	loopVar := Ref{Kind: RefName, Text: stmt.Var}
	code := []Instr{
		Assign{Dest: stmt.Var, Declare: declare, Src: Ref{Kind: RefNumber, Text: fmt.Sprint(start)}},
		Label{Name: top},
		CondJump{Cond: Condition{Left: loopVar, Op: operator, Right: bound}, Target: end},
	}
	code = append(code, body...)
	code = append(code, Increment{Var: stmt.Var, Step: step}, Jump{Target: top}, Label{Name: end})
	return code, nil
}
