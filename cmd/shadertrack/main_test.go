package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFixture(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shader.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun(t *testing.T) {
	path := writeFixture(t, `
code:
  - assign: [r1, 0x10]
  - assign: [r2, {cbuf: 1, offset: r1}]
queries:
  - immediate: r1
  - cbuf: r2
`)

	var out strings.Builder
	if err := run(&out, path, false); err != nil {
		t.Fatalf("run: %v", err)
	}
	want := "immediate r1 @2: 0x10\ncbuf r2 @2: not found\n"
	if out.String() != want {
		t.Errorf("output =\n%s\nwant:\n%s", out.String(), want)
	}
}

func TestRun_Debug(t *testing.T) {
	path := writeFixture(t, "code:\n  - assign: [r1, 3]\nqueries:\n  - immediate: r1\n")

	var out strings.Builder
	if err := run(&out, path, true); err != nil {
		t.Fatalf("run: %v", err)
	}
	want := "immediate r1 @1: 0x3\n" +
		"  track r1 before 1\n" +
		"  └─ def r1 = 0x3 at 0\n" +
		"  resolved 0x3\n"
	if out.String() != want {
		t.Errorf("output =\n%s\nwant:\n%s", out.String(), want)
	}
}

func TestRun_DecodeError(t *testing.T) {
	path := writeFixture(t, "code:\n  - op: Nope\n")

	var out strings.Builder
	if err := run(&out, path, false); err == nil {
		t.Error("expected decode error")
	}
}
