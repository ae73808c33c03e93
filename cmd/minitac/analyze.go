package main

import (
	"errors"
	"flag"
	"fmt"
	"sort"
	"strings"

	"github.com/mgomes/minitac/tac"
)

type lintWarning struct {
	Pos     tac.Position
	Message string
}

func analyzeCommand(args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	cfg := configFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("minitac analyze: source path required")
	}

	compiler, err := tac.NewCompiler(*cfg)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	sourcePath, input, err := readSource(remaining[0])
	if err != nil {
		return err
	}
	tree, lexWarnings, err := compiler.Parse(string(input))
	if err != nil {
		return fmt.Errorf("analysis parse failed: %w", err)
	}
	reportWarnings(sourcePath, lexWarnings)

	warnings := analyzeProgram(tree, compiler.Config())
	if len(warnings) == 0 {
		fmt.Println("No issues found")
		return nil
	}

	for _, warning := range warnings {
		line := warning.Pos.Line
		column := warning.Pos.Column
		if line <= 0 {
			line = 1
		}
		if column <= 0 {
			column = 1
		}
		fmt.Printf("%s:%d:%d: %s\n", sourcePath, line, column, warning.Message)
	}

	return fmt.Errorf("analysis found %d issue(s)", len(warnings))
}

// analyzer walks statements in the same order the generator lowers them, so
// "assigned" matches what the generator has declared at each point.
type analyzer struct {
	cfg      tac.Config
	assigned map[string]struct{}
	reported map[string]struct{}
	warnings []lintWarning
}

func analyzeProgram(tree *tac.Block, cfg tac.Config) []lintWarning {
	a := &analyzer{
		cfg:      cfg,
		assigned: make(map[string]struct{}),
		reported: make(map[string]struct{}),
	}
	a.block(tree)

	sort.SliceStable(a.warnings, func(i, j int) bool {
		if a.warnings[i].Pos.Line != a.warnings[j].Pos.Line {
			return a.warnings[i].Pos.Line < a.warnings[j].Pos.Line
		}
		return a.warnings[i].Pos.Column < a.warnings[j].Pos.Column
	})
	return a.warnings
}

func (a *analyzer) warn(pos tac.Position, format string, args ...any) {
	a.warnings = append(a.warnings, lintWarning{Pos: pos, Message: fmt.Sprintf(format, args...)})
}

func (a *analyzer) block(block *tac.Block) {
	if block == nil {
		return
	}
	for _, stmt := range block.Statements {
		a.statement(stmt)
	}
}

func (a *analyzer) statement(stmt tac.Statement) {
	switch s := stmt.(type) {
	case *tac.AssignStmt:
		a.expression(s.Value)
		a.assign(s.Name, s.Pos())
	case *tac.ExprStmt:
		a.expression(s.Expr)
		a.warn(s.Pos(), "expression result is discarded")
	case *tac.IfStmt:
		var alt tac.Alternative = s
		for alt != nil {
			switch branch := alt.(type) {
			case *tac.IfStmt:
				a.expression(branch.Condition)
				a.block(branch.Body)
				alt = branch.Alternative
			case *tac.Block:
				a.block(branch)
				alt = nil
			default:
				alt = nil
			}
		}
	case *tac.WhileStmt:
		a.expression(s.Condition)
		a.block(s.Body)
	case *tac.ForStmt:
		a.assign(s.Var, s.Pos())
		if s.Bound != nil && strings.Trim(s.Bound.Text, "0") == "" {
			a.warn(s.Bound.Pos(), "range(%s) is empty; loop body never runs", s.Bound.Text)
		}
		a.block(s.Body)
	}
}

func (a *analyzer) expression(expr tac.Expression) {
	switch e := expr.(type) {
	case *tac.Literal:
		if e.Kind != tac.LiteralName {
			return
		}
		if _, ok := a.assigned[e.Text]; ok {
			return
		}
		if _, ok := a.reported[e.Text]; ok {
			return
		}
		a.reported[e.Text] = struct{}{}
		a.warn(e.Pos(), "variable %s is read before its first assignment", e.Text)
	case *tac.Grouping:
		a.expression(e.Inner)
	case *tac.BinaryExpr:
		a.expression(e.Left)
		a.expression(e.Right)
	}
}

func (a *analyzer) assign(name string, pos tac.Position) {
	if _, ok := a.assigned[name]; !ok && a.shadowsGenerated(name) {
		a.warn(pos, "variable %s has the same form as generated names", name)
	}
	a.assigned[name] = struct{}{}
}

// shadowsGenerated reports whether name looks like prefix followed by digits
// for the temporary or label prefix.
func (a *analyzer) shadowsGenerated(name string) bool {
	for _, prefix := range []string{a.cfg.TempPrefix, a.cfg.LabelPrefix} {
		digits, ok := strings.CutPrefix(name, prefix)
		if !ok || digits == "" {
			continue
		}
		if strings.Trim(digits, "0123456789") == "" {
			return true
		}
	}
	return false
}
