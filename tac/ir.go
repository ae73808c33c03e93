package tac

import (
	"fmt"
	"io"
	"strings"
)

type RefKind int

const (
	RefNone RefKind = iota
	RefNumber
	RefName
	RefTemp
)

// Ref is the value a lowered node computes into. The zero Ref means the node
// produces no value.
type Ref struct {
	Kind RefKind
	Text string
}

func (r Ref) IsNone() bool { return r.Kind == RefNone }

func (r Ref) String() string { return r.Text }

// Instr is one line of three-address code.
type Instr interface {
	instr()
}

type Label struct {
	Name string
}

type Jump struct {
	Target string
}

// Condition is either a bare negated value (`!t1`) or a binary test
// (`i >= 3`). Op is empty for the negated form.
type Condition struct {
	Negate bool
	Left   Ref
	Op     string
	Right  Ref
}

type CondJump struct {
	Cond   Condition
	Target string
}

// Assign copies Src into Dest. Declare prefixes the declaration type.
type Assign struct {
	Dest    string
	Declare bool
	Src     Ref
}

type BinOp struct {
	Dest    string
	Declare bool
	Op      string
	Left    Ref
	Right   Ref
}

type Increment struct {
	Var  string
	Step int
}

func (Label) instr()     {}
func (Jump) instr()      {}
func (CondJump) instr()  {}
func (Assign) instr()    {}
func (BinOp) instr()     {}
func (Increment) instr() {}

// Code is a linear instruction sequence together with the declaration type
// used when rendering it.
type Code struct {
	Instrs   []Instr
	TypeName string
}

func (c Code) String() string {
	var b strings.Builder
	_ = c.Format(&b)
	return b.String()
}

// Format renders one instruction per line.
func (c Code) Format(w io.Writer) error {
	typeName := c.TypeName
	if typeName == "" {
		typeName = defaultTypeName
	}
	for _, in := range c.Instrs {
		if _, err := io.WriteString(w, FormatInstr(in, typeName)+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// FormatInstr renders a single instruction without a trailing newline.
func FormatInstr(in Instr, typeName string) string {
	decl := func(declare bool) string {
		if declare {
			return typeName + " "
		}
		return ""
	}
	switch in := in.(type) {
	case Label:
		return in.Name + ":"
	case Jump:
		return fmt.Sprintf("goto %s;", in.Target)
	case CondJump:
		return fmt.Sprintf("if (%s) goto %s;", in.Cond, in.Target)
	case Assign:
		return fmt.Sprintf("%s%s = %s;", decl(in.Declare), in.Dest, in.Src)
	case BinOp:
		return fmt.Sprintf("%s%s = %s %s %s;", decl(in.Declare), in.Dest, in.Left, in.Op, in.Right)
	case Increment:
		if in.Step < 0 {
			return fmt.Sprintf("%s -= %d;", in.Var, -in.Step)
		}
		return fmt.Sprintf("%s += %d;", in.Var, in.Step)
	default:
		return fmt.Sprintf("/* unknown instruction %T */", in)
	}
}

func (c Condition) String() string {
	if c.Op == "" {
		if c.Negate {
			return "!" + c.Left.Text
		}
		return c.Left.Text
	}
	test := fmt.Sprintf("%s %s %s", c.Left, c.Op, c.Right)
	if c.Negate {
		return "!(" + test + ")"
	}
	return test
}

// undeclared returns a copy of code with every declaration flag cleared.
func undeclared(code []Instr) []Instr {
	out := make([]Instr, len(code))
	for i, in := range code {
		switch in := in.(type) {
		case Assign:
			in.Declare = false
			out[i] = in
		case BinOp:
			in.Declare = false
			out[i] = in
		default:
			out[i] = in
		}
	}
	return out
}
