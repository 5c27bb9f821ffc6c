package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
)

const testStructure = "# Example\n" +
	"\n" +
	"```\n" +
	"system/\n" +
	"└─ project1/\n" +
	"   ├─ README.md ← Project overview\n" +
	"   ├─ core/\n" +
	"   │  ├─ pyproject.toml\n" +
	"   │  └─ src/\n" +
	"   │     └─ core/\n" +
	"   │        └─ main.py ← entry point\n" +
	"   └─ frontend/\n" +
	"      ├─ package.json\n" +
	"      └─ src/\n" +
	"         └─ components/\n" +
	"```\n"

// writeStructure writes testStructure into dir and returns its path.
func writeStructure(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "structure.md")
	if err := os.WriteFile(path, []byte(testStructure), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// generateProject writes testStructure and generates it below a new
// directory. It returns the structure path and the generated root.
func generateProject(t *testing.T) (string, string) {
	t.Helper()

	dir := t.TempDir()
	structure := writeStructure(t, dir)
	out := filepath.Join(dir, "output")
	if _, _, err := execute(t, "generate", structure, "-o", out); err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	return structure, out
}
