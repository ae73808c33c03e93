package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const unformattedSource = "x=1\nwhile x<3:{x=x+1}\nif x==3:{ y=(x+1)*2 }else:{}\n"

const formattedSource = `x = 1
while x < 3: {
  x = x + 1
}
if x == 3: {
  y = (x + 1) * 2
} else: {}
`

func TestFmtCommandRequiresPath(t *testing.T) {
	err := fmtCommand(nil)
	if err == nil {
		t.Fatalf("expected path required error")
	}
	if !strings.Contains(err.Error(), "path required") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFmtCommandCheckDetectsUnformattedFiles(t *testing.T) {
	path := writeSource(t, unformattedSource)
	err := fmtCommand([]string{"-check", path})
	if err == nil {
		t.Fatalf("expected formatting check failure")
	}
	if !strings.Contains(err.Error(), "need formatting") {
		t.Fatalf("unexpected check error: %v", err)
	}
}

func TestFmtCommandWriteFormatsFileInPlace(t *testing.T) {
	path := writeSource(t, unformattedSource)
	if err := fmtCommand([]string{"-w", path}); err != nil {
		t.Fatalf("fmt -w failed: %v", err)
	}

	updated, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read formatted file: %v", err)
	}
	if got := string(updated); got != formattedSource {
		t.Fatalf("unexpected formatted output: %q", got)
	}
}

func TestFmtCommandPrintsFormattedOutput(t *testing.T) {
	path := writeSource(t, unformattedSource)
	out, err := captureStdout(t, func() error {
		return fmtCommand([]string{path})
	})
	if err != nil {
		t.Fatalf("fmt command failed: %v", err)
	}
	if out != formattedSource {
		t.Fatalf("unexpected stdout output: %q", out)
	}
}

func TestFmtCommandReportsSyntaxErrors(t *testing.T) {
	path := writeSource(t, "while x < : {}\n")
	err := fmtCommand([]string{"-check", path})
	if err == nil || !strings.Contains(err.Error(), "syntax error") {
		t.Fatalf("expected syntax error, got %v", err)
	}
}

func TestFmtCommandFormatsDirectories(t *testing.T) {
	root := t.TempDir()
	first := filepath.Join(root, "a"+sourceExt)
	second := filepath.Join(root, "nested", "b"+sourceExt)
	ignored := filepath.Join(root, "notes.txt")
	if err := os.MkdirAll(filepath.Dir(second), 0o755); err != nil {
		t.Fatalf("mkdir nested: %v", err)
	}
	if err := os.WriteFile(first, []byte("a=1"), 0o644); err != nil {
		t.Fatalf("write first file: %v", err)
	}
	if err := os.WriteFile(second, []byte("for i in range(2):{b=i}"), 0o644); err != nil {
		t.Fatalf("write second file: %v", err)
	}
	if err := os.WriteFile(ignored, []byte("not a program {"), 0o644); err != nil {
		t.Fatalf("write ignored file: %v", err)
	}

	if err := fmtCommand([]string{"-w", root}); err != nil {
		t.Fatalf("fmt directory failed: %v", err)
	}
	if err := fmtCommand([]string{"-check", root}); err != nil {
		t.Fatalf("expected no formatting diffs after write, got %v", err)
	}
	nested, err := os.ReadFile(second)
	if err != nil {
		t.Fatalf("read nested file: %v", err)
	}
	if string(nested) != "for i in range(2): {\n  b = i\n}\n" {
		t.Fatalf("unexpected nested output: %q", nested)
	}
}
