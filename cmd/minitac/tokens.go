package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mgomes/minitac/tac"
)

func tokensCommand(args []string) error {
	fs := flag.NewFlagSet("tokens", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	output := fs.String("o", "", "write the dump to a file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("minitac tokens: source path required")
	}

	sourcePath, input, err := readSource(remaining[0])
	if err != nil {
		return err
	}
	tokens, warnings := tac.Tokenize(string(input))
	reportWarnings(sourcePath, warnings)

	dump := formatTokenDump(tokens)
	if *output == "" {
		fmt.Print(dump)
		return nil
	}
	if err := os.WriteFile(*output, []byte(dump), 0o644); err != nil {
		return fmt.Errorf("write tokens: %w", err)
	}
	return nil
}

// formatTokenDump writes one `TYPE  literal` line per token, omitting EOF.
func formatTokenDump(tokens []tac.Token) string {
	var b strings.Builder
	for _, tok := range tokens {
		if tok.IsEOF() {
			break
		}
		fmt.Fprintf(&b, "%s  %s\n", tok.Type, tok.Literal)
	}
	return b.String()
}
