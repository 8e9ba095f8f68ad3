package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	mdwerror "github.com/msto63/cminus/foundation/core/error"
)

// testEnv isolates config and history in a temporary directory
func testEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	cfg := "[history]\npath = \"" + filepath.ToSlash(filepath.Join(dir, "history.db")) + "\"\n"
	cfgPath := filepath.Join(dir, "cminus.toml")
	if err := os.WriteFile(cfgPath, []byte(cfg), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	t.Setenv("CMINUS_CONFIG", cfgPath)
	return dir
}

func writeSource(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	return string(data)
}

func TestRoot_ParsesFile(t *testing.T) {
	dir := testEnv(t)
	writeSource(t, dir, "prog.c-", "int x;\n")

	out, err := run(t, filepath.Join(dir, "prog"))
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "no syntax errors") {
		t.Errorf("summary = %q", out)
	}

	listing := readFile(t, filepath.Join(dir, "prog.txt"))
	want := "CMINUS PARSING:\n\nSyntax tree:\nVar declaration\n  Type: int\n  Id: x\n"
	if listing != want {
		t.Errorf("listing = %q, want %q", listing, want)
	}
}

func TestRoot_WrongArgCount(t *testing.T) {
	testEnv(t)

	tests := []struct {
		name string
		args []string
	}{
		{"no args", nil},
		{"two files", []string{"a", "b"}},
		{"parse without file", []string{"parse"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			if err == nil {
				t.Fatal("Execute() expected error")
			}
			if !strings.Contains(out, "Usage:") {
				t.Errorf("output should contain usage, got %q", out)
			}
		})
	}
}

func TestRoot_FileNotFound(t *testing.T) {
	dir := testEnv(t)
	missing := filepath.Join(dir, "missing")

	_, err := run(t, "parse", missing)
	if err == nil {
		t.Fatal("Execute() expected error")
	}
	if !mdwerror.HasCode(err, mdwerror.CodeSourceNotFound) {
		t.Errorf("error code = %v, want SOURCE_NOT_FOUND", mdwerror.GetCode(err))
	}
	if err.Error() != "File "+missing+".c- not found" {
		t.Errorf("error = %q", err.Error())
	}
}

func TestParse_SyntaxErrors(t *testing.T) {
	dir := testEnv(t)
	path := writeSource(t, dir, "bad.c-", "int ;\n")

	out, err := run(t, "parse", path)
	if err != nil {
		t.Fatalf("syntax errors should not fail the command: %v", err)
	}
	if !strings.Contains(out, "1 syntax errors, first at line 1") {
		t.Errorf("summary = %q", out)
	}
	if !strings.Contains(readFile(t, filepath.Join(dir, "bad.txt")), ">>> Syntax error at line 1") {
		t.Error("listing should contain the syntax error")
	}
}

func TestParse_FlagsOverrideConfig(t *testing.T) {
	dir := testEnv(t)
	path := writeSource(t, dir, "prog.c-", "int x;\n")

	out, err := run(t, "parse", "--echo-source", "--trace-scan", "--trace-parse=false", "-o", "-", path)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	want := "CMINUS PARSING:\n" +
		"   1: int x;\n" +
		"\t1: reserved word: int\n" +
		"\t1: ID, name= x\n" +
		"\t1: ;\n" +
		"   1: EOF\n"
	if out != want {
		t.Errorf("stdout listing = %q, want %q", out, want)
	}
	if _, err := os.Stat(filepath.Join(dir, "prog.txt")); !os.IsNotExist(err) {
		t.Error("no listing file should be written with -o -")
	}
}

func TestParse_YAMLFormat(t *testing.T) {
	dir := testEnv(t)
	path := writeSource(t, dir, "prog.c-", "int x;\n")
	listing := filepath.Join(dir, "tree.yaml")

	if _, err := run(t, "parse", "--format", "yaml", "--output", listing, path); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(readFile(t, listing), "kind: Program") {
		t.Error("listing should contain the YAML tree")
	}
}

func TestParse_InvalidFormat(t *testing.T) {
	dir := testEnv(t)
	path := writeSource(t, dir, "prog.c-", "int x;\n")

	_, err := run(t, "parse", "--format", "xml", path)
	if !mdwerror.HasCode(err, mdwerror.CodeInvalidConfig) {
		t.Errorf("error = %v, want INVALID_CONFIG", err)
	}
}

func TestScan(t *testing.T) {
	dir := testEnv(t)
	path := writeSource(t, dir, "prog.c-", "x ~ 1\n")

	out, err := run(t, "scan", path)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "3 tokens, 1 illegal characters") {
		t.Errorf("summary = %q", out)
	}

	want := "CMINUS COMPILATION:\n" +
		"\t1: ID, name= x\n" +
		"\t1: ERROR: ~\n" +
		"\t1: NUM, val= 1\n" +
		"   1: EOF\n"
	if got := readFile(t, filepath.Join(dir, "prog.txt")); got != want {
		t.Errorf("listing = %q, want %q", got, want)
	}
}

func TestHistory(t *testing.T) {
	dir := testEnv(t)
	good := writeSource(t, dir, "good.c-", "int x;\n")
	bad := writeSource(t, dir, "bad.c-", "int ;\n")

	for _, args := range [][]string{{"parse", good}, {"parse", bad}, {"scan", good}} {
		if _, err := run(t, args...); err != nil {
			t.Fatalf("Execute(%v) error = %v", args, err)
		}
	}

	out, err := run(t, "history", "list")
	if err != nil {
		t.Fatalf("history list error = %v", err)
	}
	if !strings.Contains(out, good) || !strings.Contains(out, bad) {
		t.Errorf("history list = %q", out)
	}

	out, _ = run(t, "history", "list", "--failed")
	if strings.Contains(out, good) || !strings.Contains(out, bad) {
		t.Errorf("history list --failed = %q", out)
	}

	out, _ = run(t, "history", "list", "--command", "scan")
	if strings.Count(out, good) != 1 || strings.Contains(out, bad) {
		t.Errorf("history list --command scan = %q", out)
	}

	out, err = run(t, "history", "stats")
	if err != nil {
		t.Fatalf("history stats error = %v", err)
	}
	if !strings.Contains(out, "Runs:    3 (1 with errors)") || !strings.Contains(out, "Sources: 2") {
		t.Errorf("history stats = %q", out)
	}

	out, err = run(t, "history", "prune", "--older-than", "0s")
	if err != nil {
		t.Fatalf("history prune error = %v", err)
	}
	if !strings.Contains(out, "Deleted 3 runs") {
		t.Errorf("history prune = %q", out)
	}

	out, _ = run(t, "history", "list")
	if !strings.Contains(out, "No runs recorded.") {
		t.Errorf("history list after prune = %q", out)
	}
}

func TestNoHistory(t *testing.T) {
	dir := testEnv(t)
	path := writeSource(t, dir, "prog.c-", "int x;\n")

	if _, err := run(t, "--no-history", path); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	out, _ := run(t, "history", "list")
	if !strings.Contains(out, "No runs recorded.") {
		t.Errorf("history list = %q", out)
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.HasPrefix(out, "cminus ") {
		t.Errorf("version = %q", out)
	}
}
