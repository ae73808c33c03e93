package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"slices"
	"strings"
	"testing"

	"github.com/mgomes/minitac/tac"
)

func TestRunCLIStartsLSPAndExitsOnEOF(t *testing.T) {
	origStdin := os.Stdin
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close write pipe: %v", err)
	}
	os.Stdin = r
	defer func() {
		os.Stdin = origStdin
		_ = r.Close()
	}()

	if err := runCLI([]string{"minitac", "lsp"}); err != nil {
		t.Fatalf("runCLI lsp failed: %v", err)
	}
}

func TestDiagnosticsForSourceWithoutErrors(t *testing.T) {
	diags := diagnosticsForSource(tac.MustNewCompiler(tac.Config{}), "x = 1\nwhile x < 3: { x = x + 1 }\n")
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %d", len(diags))
	}
}

func TestDiagnosticsForSourceWithSyntaxError(t *testing.T) {
	diags := diagnosticsForSource(tac.MustNewCompiler(tac.Config{}), "x = 1\nif x { y = 2 }\n")
	if len(diags) != 1 {
		t.Fatalf("expected one diagnostic, got %d", len(diags))
	}
	first := diags[0]
	if first["severity"] != severityError {
		t.Fatalf("expected error severity, got %#v", first["severity"])
	}
	start := first["range"].(map[string]any)["start"].(map[string]any)
	if start["line"] != 1 || start["character"] != 5 {
		t.Fatalf("unexpected diagnostic start: %#v", start)
	}
	message, ok := first["message"].(string)
	if !ok || !strings.Contains(message, `expected ":"`) {
		t.Fatalf("unexpected diagnostic message: %#v", first["message"])
	}
}

func TestDiagnosticsForSourceReportsIllegalCharactersAsWarnings(t *testing.T) {
	diags := diagnosticsForSource(tac.MustNewCompiler(tac.Config{}), "x = 1 # 2\n")
	if len(diags) != 1 {
		t.Fatalf("expected one diagnostic, got %d", len(diags))
	}
	if diags[0]["severity"] != severityWarning {
		t.Fatalf("expected warning severity, got %#v", diags[0]["severity"])
	}
	if msg := diags[0]["message"].(string); !strings.Contains(msg, "'#'") {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestCompletionItemsAreSortedAndCategorized(t *testing.T) {
	items := completionItems([]string{"total", "count"})
	if len(items) != len(tac.Keywords())+2 {
		t.Fatalf("unexpected completion count %d", len(items))
	}

	labels := make([]string, 0, len(items))
	for _, item := range items {
		label, ok := item["label"].(string)
		if !ok {
			t.Fatalf("unexpected completion label: %#v", item["label"])
		}
		labels = append(labels, label)
	}
	if !slices.IsSorted(labels) {
		t.Fatalf("expected sorted completion labels, got %v", labels)
	}

	keyword := findCompletionItem(t, items, "while")
	if keyword["detail"] != "keyword" || keyword["kind"] != completionKindKeyword {
		t.Fatalf("unexpected keyword item: %#v", keyword)
	}

	variable := findCompletionItem(t, items, "total")
	if variable["detail"] != "variable" || variable["kind"] != completionKindVariable {
		t.Fatalf("unexpected variable item: %#v", variable)
	}
}

func TestHandleMessageDidOpenPublishesDiagnostics(t *testing.T) {
	server := &lspServer{
		compiler: tac.MustNewCompiler(tac.Config{}),
		docs:     make(map[string]string),
	}
	params := map[string]any{
		"textDocument": map[string]any{
			"uri":  "file:///tmp/test.mini",
			"text": "for i in range(n): { }\n",
		},
	}
	payload, err := json.Marshal(params)
	if err != nil {
		t.Fatalf("marshal params: %v", err)
	}

	messages := server.handleMessage(lspInboundMessage{
		JSONRPC: "2.0",
		Method:  "textDocument/didOpen",
		Params:  payload,
	})
	if len(messages) != 1 {
		t.Fatalf("expected one publishDiagnostics notification, got %d", len(messages))
	}
	if messages[0].Method != "textDocument/publishDiagnostics" {
		t.Fatalf("unexpected method: %q", messages[0].Method)
	}
	paramsMap, ok := messages[0].Params.(map[string]any)
	if !ok {
		t.Fatalf("unexpected params payload: %#v", messages[0].Params)
	}
	diags, ok := paramsMap["diagnostics"].([]map[string]any)
	if !ok {
		t.Fatalf("unexpected diagnostics payload: %#v", paramsMap["diagnostics"])
	}
	if len(diags) == 0 {
		t.Fatalf("expected diagnostics for invalid source")
	}
	if server.docs["file:///tmp/test.mini"] == "" {
		t.Fatalf("expected document to be stored")
	}
}

func TestHandleMessageHoverClassifiesVariables(t *testing.T) {
	server := &lspServer{
		compiler: tac.MustNewCompiler(tac.Config{}),
		docs: map[string]string{
			"file:///tmp/test.mini": "count = 0\nwhile count < 3: {\n  count = count + 1\n}\n",
		},
	}

	value := hoverValue(t, server, 2, 4)
	if !strings.Contains(value, "`count`") || !strings.Contains(value, "float variable") {
		t.Fatalf("expected variable classification in hover value, got %q", value)
	}

	value = hoverValue(t, server, 1, 2)
	if !strings.Contains(value, "keyword") {
		t.Fatalf("expected keyword classification in hover value, got %q", value)
	}
}

func TestHandleMessageUnknownRequest(t *testing.T) {
	server := &lspServer{compiler: tac.MustNewCompiler(tac.Config{}), docs: map[string]string{}}
	messages := server.handleMessage(lspInboundMessage{JSONRPC: "2.0", ID: rawID("7"), Method: "workspace/symbol"})
	if len(messages) != 1 || messages[0].Error == nil || messages[0].Error.Code != -32601 {
		t.Fatalf("expected method not found error, got %#v", messages)
	}
}

func TestWordAtPosition(t *testing.T) {
	source := "x = 1\n  total = x + 1\n"
	if word := wordAtPosition(source, 1, 4); word != "total" {
		t.Fatalf("expected total, got %q", word)
	}
	if word := wordAtPosition(source, 1, 9); word != "" {
		t.Fatalf("expected no word on the operator, got %q", word)
	}
}

func hoverValue(t *testing.T, server *lspServer, line, character int) string {
	t.Helper()
	params := map[string]any{
		"textDocument": map[string]any{"uri": "file:///tmp/test.mini"},
		"position":     map[string]any{"line": line, "character": character},
	}
	payload, err := json.Marshal(params)
	if err != nil {
		t.Fatalf("marshal params: %v", err)
	}

	messages := server.handleMessage(lspInboundMessage{
		JSONRPC: "2.0",
		ID:      rawID("1"),
		Method:  "textDocument/hover",
		Params:  payload,
	})
	if len(messages) != 1 {
		t.Fatalf("expected one response, got %d", len(messages))
	}
	result, ok := messages[0].Result.(map[string]any)
	if !ok {
		t.Fatalf("unexpected hover result: %#v", messages[0].Result)
	}
	contents, ok := result["contents"].(map[string]any)
	if !ok {
		t.Fatalf("unexpected hover contents: %#v", result["contents"])
	}
	value, ok := contents["value"].(string)
	if !ok {
		t.Fatalf("unexpected hover value: %#v", contents["value"])
	}
	return value
}

func rawID(value string) *json.RawMessage {
	raw := json.RawMessage(value)
	return &raw
}

func findCompletionItem(t *testing.T, items []map[string]any, label string) map[string]any {
	t.Helper()
	for _, item := range items {
		itemLabel, ok := item["label"].(string)
		if ok && itemLabel == label {
			return item
		}
	}
	t.Fatalf("missing completion item %q", label)
	return nil
}

func TestHandleMessageCompletionRejectsInvalidParams(t *testing.T) {
	server := &lspServer{compiler: tac.MustNewCompiler(tac.Config{}), docs: map[string]string{}}
	messages := server.handleMessage(lspInboundMessage{
		JSONRPC: "2.0",
		ID:      rawID("3"),
		Method:  "textDocument/completion",
		Params:  json.RawMessage(`{"textDocument": 42}`),
	})
	if len(messages) != 1 {
		t.Fatalf("expected one response, got %d", len(messages))
	}
	if messages[0].Error == nil || messages[0].Error.Code != -32602 {
		t.Fatalf("expected invalid params error, got %#v", messages[0])
	}
	if messages[0].Result != nil {
		t.Fatalf("expected no completion result, got %#v", messages[0].Result)
	}
}

func TestRPCConnRoundTrip(t *testing.T) {
	var wire bytes.Buffer
	out := newRPCConn(strings.NewReader(""), &wire)
	if err := out.write(lspOutboundMessage{JSONRPC: "2.0", Method: "initialized"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.HasPrefix(wire.String(), "Content-Length: ") {
		t.Fatalf("missing header: %q", wire.String())
	}

	in := newRPCConn(&wire, io.Discard)
	var msg lspInboundMessage
	if err := in.read(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	if msg.Method != "initialized" {
		t.Fatalf("unexpected method %q", msg.Method)
	}
	if err := in.read(&msg); !errors.Is(err, io.EOF) {
		t.Fatalf("expected EOF, got %v", err)
	}
}

func TestRPCConnSkipsMalformedBody(t *testing.T) {
	in := newRPCConn(strings.NewReader("Content-Length: 3\r\n\r\n{x}"), io.Discard)
	var msg lspInboundMessage
	if err := in.read(&msg); !errors.Is(err, errMalformedMessage) {
		t.Fatalf("expected malformed message error, got %v", err)
	}
}
