package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/mgomes/minitac/tac"
)

const (
	severityError   = 1
	severityWarning = 2

	completionKindVariable = 6
	completionKindKeyword  = 14
)

type lspInboundMessage struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      *json.RawMessage `json:"id,omitempty"`
	Method  string           `json:"method,omitempty"`
	Params  json.RawMessage  `json:"params,omitempty"`
}

type lspResponseError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type lspOutboundMessage struct {
	JSONRPC string            `json:"jsonrpc"`
	ID      *json.RawMessage  `json:"id,omitempty"`
	Method  string            `json:"method,omitempty"`
	Params  any               `json:"params,omitempty"`
	Result  any               `json:"result,omitempty"`
	Error   *lspResponseError `json:"error,omitempty"`
}

type lspDidOpenParams struct {
	TextDocument struct {
		URI  string `json:"uri"`
		Text string `json:"text"`
	} `json:"textDocument"`
}

type lspDidChangeParams struct {
	TextDocument struct {
		URI string `json:"uri"`
	} `json:"textDocument"`
	ContentChanges []struct {
		Text string `json:"text"`
	} `json:"contentChanges"`
}

type lspTextDocumentPositionParams struct {
	TextDocument struct {
		URI string `json:"uri"`
	} `json:"textDocument"`
	Position struct {
		Line      int `json:"line"`
		Character int `json:"character"`
	} `json:"position"`
}

type lspServer struct {
	conn     *rpcConn
	compiler *tac.Compiler
	docs     map[string]string
}

func runLSP() error {
	server := &lspServer{
		conn:     newRPCConn(os.Stdin, os.Stdout),
		compiler: tac.MustNewCompiler(tac.Config{}),
		docs:     make(map[string]string),
	}
	return server.serve()
}

func (s *lspServer) serve() error {
	for {
		var incoming lspInboundMessage
		err := s.conn.read(&incoming)
		switch {
		case errors.Is(err, io.EOF):
			return nil
		case errors.Is(err, errMalformedMessage):
			continue
		case err != nil:
			return err
		}

		messages := s.handleMessage(incoming)
		for _, msg := range messages {
			if err := s.conn.write(msg); err != nil {
				return err
			}
		}

		if incoming.Method == "exit" {
			return nil
		}
	}
}

func (s *lspServer) handleMessage(incoming lspInboundMessage) []lspOutboundMessage {
	switch incoming.Method {
	case "initialize":
		return []lspOutboundMessage{
			{
				JSONRPC: "2.0",
				ID:      incoming.ID,
				Result: map[string]any{
					"capabilities": map[string]any{
						"textDocumentSync": 1,
						"hoverProvider":    true,
						"completionProvider": map[string]any{
							"resolveProvider": false,
						},
					},
				},
			},
		}
	case "initialized":
		return nil
	case "shutdown":
		if incoming.ID == nil {
			return nil
		}
		return []lspOutboundMessage{{JSONRPC: "2.0", ID: incoming.ID, Result: nil}}
	case "exit":
		return nil
	case "textDocument/didOpen":
		var params lspDidOpenParams
		if err := json.Unmarshal(incoming.Params, &params); err != nil {
			return nil
		}
		s.docs[params.TextDocument.URI] = params.TextDocument.Text
		return []lspOutboundMessage{
			s.publishDiagnostics(params.TextDocument.URI, params.TextDocument.Text),
		}
	case "textDocument/didChange":
		var params lspDidChangeParams
		if err := json.Unmarshal(incoming.Params, &params); err != nil {
			return nil
		}
		if len(params.ContentChanges) == 0 {
			return nil
		}
		latest := params.ContentChanges[len(params.ContentChanges)-1].Text
		s.docs[params.TextDocument.URI] = latest
		return []lspOutboundMessage{
			s.publishDiagnostics(params.TextDocument.URI, latest),
		}
	case "textDocument/completion":
		if incoming.ID == nil {
			return nil
		}
		var params lspTextDocumentPositionParams
		if err := json.Unmarshal(incoming.Params, &params); err != nil {
			return []lspOutboundMessage{invalidParams(incoming.ID, "completion")}
		}
		variables := declaredVariables(s.compiler, s.docs[params.TextDocument.URI])
		return []lspOutboundMessage{
			{
				JSONRPC: "2.0",
				ID:      incoming.ID,
				Result: map[string]any{
					"isIncomplete": false,
					"items":        completionItems(variables),
				},
			},
		}
	case "textDocument/hover":
		if incoming.ID == nil {
			return nil
		}
		var params lspTextDocumentPositionParams
		if err := json.Unmarshal(incoming.Params, &params); err != nil {
			return []lspOutboundMessage{invalidParams(incoming.ID, "hover")}
		}
		source := s.docs[params.TextDocument.URI]
		word := wordAtPosition(source, params.Position.Line, params.Position.Character)
		if word == "" {
			return []lspOutboundMessage{
				{JSONRPC: "2.0", ID: incoming.ID, Result: nil},
			}
		}
		kind := classifyWord(word, declaredVariables(s.compiler, source), s.compiler.Config().TypeName)
		return []lspOutboundMessage{
			{
				JSONRPC: "2.0",
				ID:      incoming.ID,
				Result: map[string]any{
					"contents": map[string]any{
						"kind":  "markdown",
						"value": fmt.Sprintf("`%s`\n\n%s", word, kind),
					},
				},
			},
		}
	default:
		if incoming.ID == nil {
			return nil
		}
		return []lspOutboundMessage{
			{
				JSONRPC: "2.0",
				ID:      incoming.ID,
				Error: &lspResponseError{
					Code:    -32601,
					Message: "method not found",
				},
			},
		}
	}
}

func invalidParams(id *json.RawMessage, method string) lspOutboundMessage {
	return lspOutboundMessage{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &lspResponseError{Code: -32602, Message: "invalid " + method + " params"},
	}
}

func (s *lspServer) publishDiagnostics(uri, source string) lspOutboundMessage {
	return lspOutboundMessage{
		JSONRPC: "2.0",
		Method:  "textDocument/publishDiagnostics",
		Params: map[string]any{
			"uri":         uri,
			"diagnostics": diagnosticsForSource(s.compiler, source),
		},
	}
}

func diagnosticsForSource(compiler *tac.Compiler, source string) []map[string]any {
	program, err := compiler.Compile(source)
	if err != nil {
		var syntaxErr *tac.SyntaxError
		if errors.As(err, &syntaxErr) {
			return []map[string]any{
				newDiagnostic(max(0, syntaxErr.Pos.Line-1), max(0, syntaxErr.Pos.Column-1), severityError, syntaxErr.Msg),
			}
		}
		return []map[string]any{
			newDiagnostic(0, 0, severityError, err.Error()),
		}
	}

	out := make([]map[string]any, 0, len(program.Warnings))
	for _, warning := range program.Warnings {
		var lexErr *tac.LexicalError
		if !errors.As(warning, &lexErr) {
			out = append(out, newDiagnostic(0, 0, severityWarning, warning.Error()))
			continue
		}
		message := "illegal character " + strconv.QuoteRune(lexErr.Char) + " is ignored"
		out = append(out, newDiagnostic(max(0, lexErr.Pos.Line-1), max(0, lexErr.Pos.Column-1), severityWarning, message))
	}
	return out
}

func newDiagnostic(line, character, severity int, message string) map[string]any {
	return map[string]any{
		"range": map[string]any{
			"start": map[string]any{
				"line":      line,
				"character": character,
			},
			"end": map[string]any{
				"line":      line,
				"character": character + 1,
			},
		},
		"severity": severity,
		"source":   "minitac-lsp",
		"message":  message,
	}
}

// declaredVariables parses source and returns assigned names in declaration
// order. Source that does not parse yields nothing.
func declaredVariables(compiler *tac.Compiler, source string) []string {
	if source == "" {
		return nil
	}
	program, err := compiler.Compile(source)
	if err != nil {
		return nil
	}
	return program.Symbols.Names()
}

func completionItems(variables []string) []map[string]any {
	keywords := tac.Keywords()
	labels := make([]string, 0, len(keywords)+len(variables))
	labels = append(labels, keywords...)
	for _, name := range variables {
		if !slices.Contains(labels, name) {
			labels = append(labels, name)
		}
	}
	sort.Strings(labels)

	items := make([]map[string]any, 0, len(labels))
	for _, label := range labels {
		kind := completionKindVariable
		detail := "variable"
		if slices.Contains(keywords, label) {
			kind = completionKindKeyword
			detail = "keyword"
		}
		items = append(items, map[string]any{
			"label":  label,
			"kind":   kind,
			"detail": detail,
		})
	}
	return items
}

func classifyWord(word string, variables []string, typeName string) string {
	switch {
	case slices.Contains(tac.Keywords(), word):
		return "keyword"
	case slices.Contains(variables, word):
		return typeName + " variable"
	case strings.Trim(word, "0123456789") == "":
		return "number"
	default:
		return "undeclared name"
	}
}

func wordAtPosition(source string, line, character int) string {
	lines := strings.Split(source, "\n")
	if line < 0 || line >= len(lines) {
		return ""
	}

	runes := []rune(lines[line])
	if len(runes) == 0 {
		return ""
	}
	if character < 0 {
		character = 0
	}
	if character > len(runes) {
		character = len(runes)
	}

	cursor := character
	if cursor == len(runes) {
		cursor--
	}
	if cursor < 0 {
		return ""
	}
	if !isWordRune(runes[cursor]) {
		if cursor > 0 && isWordRune(runes[cursor-1]) {
			cursor--
		} else {
			return ""
		}
	}

	start := cursor
	for start > 0 && isWordRune(runes[start-1]) {
		start--
	}
	end := cursor
	for end < len(runes) && isWordRune(runes[end]) {
		end++
	}
	return string(runes[start:end])
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
