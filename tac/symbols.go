package tac

import "strconv"

// Type is the declared type of a variable. The language has one numeric type.
type Type string

const TypeFloat Type = "float"

// SymbolTable maps variable names to their type in first-declaration order.
type SymbolTable struct {
	types map[string]Type
	order []string
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{types: make(map[string]Type)}
}

// Declare registers name and reports whether it was new.
func (s *SymbolTable) Declare(name string, ty Type) bool {
	if _, ok := s.types[name]; ok {
		return false
	}
	s.types[name] = ty
	s.order = append(s.order, name)
	return true
}

func (s *SymbolTable) Lookup(name string) (Type, bool) {
	ty, ok := s.types[name]
	return ty, ok
}

// Names returns declared variables in declaration order.
func (s *SymbolTable) Names() []string {
	return append([]string(nil), s.order...)
}

func (s *SymbolTable) Len() int {
	return len(s.order)
}

// counter hands out prefix1, prefix2, ... and never reuses a name.
type counter struct {
	prefix string
	n      int
}

func (c *counter) next() string {
	c.n++
	return c.prefix + strconv.Itoa(c.n)
}
