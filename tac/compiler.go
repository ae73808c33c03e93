package tac

import (
	"fmt"
	"strings"
)

const (
	defaultTypeName       = "float"
	defaultTempPrefix     = "t"
	defaultLabelPrefix    = "l"
	defaultMaxSourceBytes = 1 << 20
)

// Config controls naming in the generated code and input limits.
type Config struct {
	TypeName       string
	TempPrefix     string
	LabelPrefix    string
	MaxSourceBytes int
}

// Compiler turns source text into three-address code. It holds no state
// between calls; every compilation starts with fresh counters and an empty
// symbol table.
type Compiler struct {
	config Config
}

// Program is the result of one compilation.
type Program struct {
	Source   string
	Tree     *Block
	Code     Code
	Symbols  *SymbolTable
	Warnings []error
}

// Text renders the generated code.
func (p *Program) Text() string {
	return p.Code.String()
}

// NewCompiler fills in defaults and validates cfg.
func NewCompiler(cfg Config) (*Compiler, error) {
	if cfg.TypeName == "" {
		cfg.TypeName = defaultTypeName
	}
	if cfg.TempPrefix == "" {
		cfg.TempPrefix = defaultTempPrefix
	}
	if cfg.LabelPrefix == "" {
		cfg.LabelPrefix = defaultLabelPrefix
	}
	if cfg.MaxSourceBytes == 0 {
		cfg.MaxSourceBytes = defaultMaxSourceBytes
	}

	if cfg.MaxSourceBytes < 0 {
		return nil, fmt.Errorf("max source bytes must be positive, got %d", cfg.MaxSourceBytes)
	}
	for _, field := range []struct{ label, value string }{
		{"type name", cfg.TypeName},
		{"temporary prefix", cfg.TempPrefix},
		{"label prefix", cfg.LabelPrefix},
	} {
		if !IsIdentifier(field.value) {
			return nil, fmt.Errorf("invalid %s %q", field.label, field.value)
		}
	}
	if cfg.TempPrefix == cfg.LabelPrefix {
		return nil, fmt.Errorf("temporary and label prefixes must differ, both are %q", cfg.TempPrefix)
	}
	if strings.HasPrefix(cfg.TempPrefix, cfg.LabelPrefix) || strings.HasPrefix(cfg.LabelPrefix, cfg.TempPrefix) {
		return nil, fmt.Errorf("prefixes %q and %q overlap", cfg.TempPrefix, cfg.LabelPrefix)
	}

	return &Compiler{config: cfg}, nil
}

// MustNewCompiler constructs a Compiler or panics if the config is invalid.
func MustNewCompiler(cfg Config) *Compiler {
	compiler, err := NewCompiler(cfg)
	if err != nil {
		panic(err)
	}
	return compiler
}

// Config returns the effective configuration.
func (c *Compiler) Config() Config {
	return c.config
}

// Parse tokenizes and parses source. Lexical warnings are returned alongside
// the tree; a syntax error yields no tree.
func (c *Compiler) Parse(source string) (*Block, []error, error) {
	if len(source) > c.config.MaxSourceBytes {
		return nil, nil, fmt.Errorf("%w: %d > %d bytes", ErrSourceTooLarge, len(source), c.config.MaxSourceBytes)
	}
	l := newLexer(source)
	tree, err := newParser(l, source).ParseProgram()
	if err != nil {
		return nil, l.Warnings(), err
	}
	return tree, l.Warnings(), nil
}

// ParseTokens parses an already tokenized program.
func (c *Compiler) ParseTokens(tokens TokenSource) (*Block, error) {
	return newParser(tokens, "").ParseProgram()
}

// Generate lowers a parse tree.
func (c *Compiler) Generate(tree *Block) (*Program, error) {
	ctx := newGenContext(c.config)
	code, err := ctx.lowerBlock(tree)
	if err != nil {
		return nil, err
	}
	return &Program{
		Tree:    tree,
		Code:    Code{Instrs: code, TypeName: c.config.TypeName},
		Symbols: ctx.symbols,
	}, nil
}

// Compile parses and lowers source in one step.
func (c *Compiler) Compile(source string) (*Program, error) {
	tree, warnings, err := c.Parse(source)
	if err != nil {
		return nil, err
	}
	program, err := c.Generate(tree)
	if err != nil {
		return nil, err
	}
	program.Source = source
	program.Warnings = warnings
	return program, nil
}

// CompileTokens parses and lowers a token stream.
func (c *Compiler) CompileTokens(tokens TokenSource) (*Program, error) {
	tree, err := c.ParseTokens(tokens)
	if err != nil {
		return nil, err
	}
	return c.Generate(tree)
}
