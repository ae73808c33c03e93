package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mgomes/minitac/tac"
)

const sourceExt = ".mini"

func main() {
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCLI(args []string) error {
	if len(args) < 2 {
		return usageError()
	}
	switch args[1] {
	case "compile":
		return compileCommand(args[2:])
	case "tokens":
		return tokensCommand(args[2:])
	case "fmt":
		return fmtCommand(args[2:])
	case "analyze":
		return analyzeCommand(args[2:])
	case "lsp":
		return runLSP()
	case "repl":
		return replCommand(args[2:])
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		return usageError()
	}
}

// configFlags registers the naming flags shared by compile, analyze and repl.
func configFlags(fs *flag.FlagSet) *tac.Config {
	cfg := &tac.Config{}
	fs.StringVar(&cfg.TypeName, "type", "", "declaration type for variables and temporaries (default \"float\")")
	fs.StringVar(&cfg.TempPrefix, "temp-prefix", "", "prefix for temporaries (default \"t\")")
	fs.StringVar(&cfg.LabelPrefix, "label-prefix", "", "prefix for labels (default \"l\")")
	return cfg
}

func replCommand(args []string) error {
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	cfg := configFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	compiler, err := tac.NewCompiler(*cfg)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return runREPL(compiler)
}

func compileCommand(args []string) error {
	fs := flag.NewFlagSet("compile", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	output := fs.String("o", "", "output path (default: source path with .tac extension)")
	checkOnly := fs.Bool("check", false, "only parse and generate without writing output")
	cfg := configFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("minitac compile: source path required")
	}

	compiler, err := tac.NewCompiler(*cfg)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	sourcePath, input, err := readSource(remaining[0])
	if err != nil {
		return err
	}

	program, err := compiler.Compile(string(input))
	if err != nil {
		return fmt.Errorf("compile failed: %w", err)
	}
	reportWarnings(sourcePath, program.Warnings)
	if *checkOnly {
		return nil
	}

	outPath := *output
	if outPath == "" {
		outPath = strings.TrimSuffix(sourcePath, filepath.Ext(sourcePath)) + ".tac"
	}
	if err := os.WriteFile(outPath, []byte(program.Text()), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func readSource(path string) (string, []byte, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", nil, fmt.Errorf("resolve source path: %w", err)
	}
	input, err := os.ReadFile(abs)
	if err != nil {
		return "", nil, fmt.Errorf("read source: %w", err)
	}
	return abs, input, nil
}

func reportWarnings(path string, warnings []error) {
	for _, warning := range warnings {
		var lexErr *tac.LexicalError
		if errors.As(warning, &lexErr) {
			fmt.Fprintf(os.Stderr, "%s:%d:%d: warning: illegal character %q skipped\n", path, lexErr.Pos.Line, lexErr.Pos.Column, lexErr.Char)
			continue
		}
		fmt.Fprintf(os.Stderr, "%s: warning: %v\n", path, warning)
	}
}

func usageError() error {
	printUsage()
	return errors.New("invalid command")
}

func printUsage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [flags] [args...]\n", prog)
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  compile [-o out] [-check] <source>   translate a program to three-address code")
	fmt.Fprintln(os.Stderr, "  tokens [-o out] <source>             dump the token stream")
	fmt.Fprintln(os.Stderr, "  fmt [-w] [-check] <path...>          format source files")
	fmt.Fprintln(os.Stderr, "  analyze <source>                     report suspicious code")
	fmt.Fprintln(os.Stderr, "  lsp                                  run the language server on stdio")
	fmt.Fprintln(os.Stderr, "  repl                                 start an interactive session")
	fmt.Fprintln(os.Stderr, "Naming flags (compile, analyze, repl):")
	fmt.Fprintln(os.Stderr, "  -type string          declaration type (default \"float\")")
	fmt.Fprintln(os.Stderr, "  -temp-prefix string   temporary prefix (default \"t\")")
	fmt.Fprintln(os.Stderr, "  -label-prefix string  label prefix (default \"l\")")
}

type flagErrorSink struct{}

func (flagErrorSink) Write(p []byte) (int, error) {
	return len(p), nil
}
