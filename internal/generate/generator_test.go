package generate

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/nao1215/treeverify/internal/coverage"
	"github.com/nao1215/treeverify/internal/fsscan"
	"github.com/nao1215/treeverify/internal/model"
	"github.com/nao1215/treeverify/internal/tree"
)

const layoutDocument = "```\n" +
	"system/\n" +
	"└─ project1/\n" +
	"   ├─ README.md ← Project overview\n" +
	"   ├─ docs/\n" +
	"   ├─ core/\n" +
	"   │  ├─ README.md\n" +
	"   │  ├─ pyproject.toml\n" +
	"   │  └─ src/\n" +
	"   │     └─ core/\n" +
	"   │        └─ main.py ← entry point\n" +
	"   └─ frontend/\n" +
	"      ├─ package.json\n" +
	"      └─ src/\n" +
	"         └─ components/\n" +
	"```\n"

func parse(t *testing.T, doc string) *tree.Model {
	t.Helper()
	m, err := tree.NewParser().ParseString(doc)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	return m
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path) //nolint:gosec // test path
	if err != nil {
		t.Fatalf("ReadFile(%s) error = %v", path, err)
	}
	return string(data)
}

func TestValidateName(t *testing.T) {
	t.Parallel()

	valid := []string{"main.py", "src", ".github", "a..b"}
	for _, name := range valid {
		if err := ValidateName(name); err != nil {
			t.Errorf("ValidateName(%q) error = %v", name, err)
		}
	}

	invalid := []string{"", ".", "..", "a/b", `a\b`, "/etc"}
	for _, name := range invalid {
		if err := ValidateName(name); !errors.Is(err, ErrInvalidName) {
			t.Errorf("ValidateName(%q) error = %v, want ErrInvalidName", name, err)
		}
	}
}

func TestSafeJoin(t *testing.T) {
	t.Parallel()

	root := t.TempDir()

	got, err := SafeJoin(root, "a", "b.py")
	if err != nil {
		t.Fatalf("SafeJoin() error = %v", err)
	}
	if want := filepath.Join(root, "a", "b.py"); got != want {
		t.Errorf("SafeJoin() = %s, want %s", got, want)
	}

	if _, err := SafeJoin(root, "..", "outside"); !errors.Is(err, ErrEscapesRoot) {
		t.Errorf("SafeJoin(..) error = %v, want ErrEscapesRoot", err)
	}
	if _, err := SafeJoin(root, "a", "..", "..", "x"); !errors.Is(err, ErrEscapesRoot) {
		t.Errorf("SafeJoin(a/../..) error = %v, want ErrEscapesRoot", err)
	}
}

// TestGenerateThenVerify generates a project and verifies it with every metric.
func TestGenerateThenVerify(t *testing.T) {
	t.Parallel()

	m := parse(t, layoutDocument)
	out := t.TempDir()

	result, err := NewGenerator().Generate(context.Background(), m, out)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if n := result.Count(ActionSkip); n != 0 {
		t.Errorf("skipped %d steps on a fresh directory", n)
	}
	if n := result.Count(ActionMkdir); n != 9 {
		t.Errorf("mkdir steps = %d, want 9", n)
	}

	snap, err := fsscan.Scan(filepath.Join(out, "system", "project1"))
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	wantFiles := []string{
		"README.md",
		"core/README.md",
		"core/pyproject.toml",
		"core/src/README.md",
		"core/src/core/README.md",
		"core/src/core/main.py",
		"docs/README.md",
		"frontend/README.md",
		"frontend/package.json",
		"frontend/src/README.md",
		"frontend/src/components/README.md",
	}
	if !slices.Equal(snap.Files, wantFiles) {
		t.Errorf("generated files = %v, want %v", snap.Files, wantFiles)
	}

	if got := readFile(t, filepath.Join(out, "system", "project1", "README.md")); !strings.Contains(got, "Project overview") {
		t.Errorf("project README lost its annotation: %q", got)
	}
	if got := readFile(t, filepath.Join(out, "system", "README.md")); !strings.Contains(got, "system module") {
		t.Errorf("generated README lacks fallback text: %q", got)
	}
	pyproject := readFile(t, filepath.Join(out, "system", "project1", "core", "pyproject.toml"))
	if !strings.Contains(pyproject, `name = "core"`) {
		t.Errorf("pyproject.toml does not name its module: %q", pyproject)
	}

	in, err := coverage.NewInput(m, out)
	if err != nil {
		t.Fatalf("NewInput() error = %v", err)
	}
	report := model.NewReport("structure.md", out)
	if err := coverage.Compute(context.Background(), in, report); err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	rates := map[model.MetricKind]float64{
		model.MetricFileCoverage:           1,
		model.MetricDirectoryCoverage:      1,
		model.MetricTemplateAccuracy:       1,
		model.MetricAnnotationPreservation: 1,
	}
	for kind, want := range rates {
		if got := report.Rate(kind); got != want {
			t.Errorf("%s = %v, want %v", kind, got, want)
		}
	}
	if len(report.FileCoverage.MissingFiles) != 0 {
		t.Errorf("missing files = %v", report.FileCoverage.MissingFiles)
	}
}

const fullLayoutDocument = "```\n" +
	"system/\n" +
	"└─ project1/\n" +
	"   ├─ README.md ← Project overview\n" +
	"   ├─ docs/\n" +
	"   ├─ core/\n" +
	"   │  ├─ README.md\n" +
	"   │  ├─ pyproject.toml\n" +
	"   │  └─ src/\n" +
	"   │     ├─ core/\n" +
	"   │     │  └─ main.py ← entry point\n" +
	"   │     └─ domain/\n" +
	"   ├─ backend/\n" +
	"   │  ├─ README.md\n" +
	"   │  ├─ pyproject.toml\n" +
	"   │  └─ src/\n" +
	"   │     ├─ api/\n" +
	"   │     └─ domain/\n" +
	"   ├─ jobs/\n" +
	"   │  ├─ README.md\n" +
	"   │  ├─ pyproject.toml\n" +
	"   │  └─ src/\n" +
	"   │     └─ tasks/\n" +
	"   ├─ cli/\n" +
	"   │  ├─ README.md\n" +
	"   │  ├─ pyproject.toml\n" +
	"   │  └─ src/\n" +
	"   │     └─ commands/\n" +
	"   └─ frontend/\n" +
	"      ├─ README.md\n" +
	"      ├─ package.json\n" +
	"      └─ src/\n" +
	"         └─ components/\n" +
	"```\n"

// TestGenerateFullLayoutScore checks that the README files added to every
// directory do not lift the score above 100.
func TestGenerateFullLayoutScore(t *testing.T) {
	t.Parallel()

	m := parse(t, fullLayoutDocument)
	out := t.TempDir()
	if _, err := NewGenerator().Generate(context.Background(), m, out); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	in, err := coverage.NewInput(m, out)
	if err != nil {
		t.Fatalf("NewInput() error = %v", err)
	}
	report := model.NewReport("structure.md", out)
	if err := coverage.Compute(context.Background(), in, report); err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	sc := report.StructureCoverage
	if sc.ActualFiles <= sc.ExpectedFiles {
		t.Fatalf("actual files = %d, want more than the %d listed", sc.ActualFiles, sc.ExpectedFiles)
	}
	if sc.FileCoverageRate != 1 || sc.OverallCoverage != 1 {
		t.Errorf("structure file/overall rates = %v/%v, want 1/1", sc.FileCoverageRate, sc.OverallCoverage)
	}
	// The layout wrappers are counted as expected directories but sit
	// above the scanned project root.
	if want := 18.0 / 20.0; sc.DirectoryCoverageRate != want {
		t.Errorf("structure directory rate = %v, want %v", sc.DirectoryCoverageRate, want)
	}
	if report.OverallScore > 100 || report.OverallScore < 0 {
		t.Errorf("OverallScore = %v, want a value in [0, 100]", report.OverallScore)
	}
	if got := report.Rate(model.MetricHierarchyAccuracy); got != 1 {
		t.Errorf("hierarchy accuracy = %v, want 1", got)
	}
}

func TestGenerateDryRun(t *testing.T) {
	t.Parallel()

	m := parse(t, layoutDocument)
	out := filepath.Join(t.TempDir(), "out")

	var plan bytes.Buffer
	result, err := NewGenerator(WithDryRun(true), WithPlanOutput(&plan)).Generate(context.Background(), m, out)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if fsscan.IsDir(out) {
		t.Errorf("dry run created %s", out)
	}
	if result.Count(ActionCreate) == 0 {
		t.Error("dry run planned no files")
	}

	lines := strings.Split(strings.TrimSpace(plan.String()), "\n")
	if len(lines) != len(result.Steps) {
		t.Errorf("printed %d lines for %d steps", len(lines), len(result.Steps))
	}
	if !strings.Contains(plan.String(), "mkdir     system/project1") {
		t.Errorf("plan does not list the project directory:\n%s", plan.String())
	}
}

func TestGenerateExistingFiles(t *testing.T) {
	t.Parallel()

	const doc = "pkg/\n├─ package.json\n└─ app.py\n"

	setup := func(t *testing.T) string {
		t.Helper()
		out := t.TempDir()
		if err := os.MkdirAll(filepath.Join(out, "pkg"), 0o750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(out, "pkg", "package.json"), []byte("custom"), 0o600); err != nil {
			t.Fatal(err)
		}
		return out
	}

	t.Run("skipped without force", func(t *testing.T) {
		t.Parallel()

		out := setup(t)
		result, err := NewGenerator().Generate(context.Background(), parse(t, doc), out)
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if !slices.Contains(result.Steps, Step{Action: ActionSkip, Path: "pkg/package.json"}) {
			t.Errorf("steps = %v, want package.json skipped", result.Steps)
		}
		if got := readFile(t, filepath.Join(out, "pkg", "package.json")); got != "custom" {
			t.Errorf("package.json = %q, want it untouched", got)
		}
	})

	t.Run("overwritten with force", func(t *testing.T) {
		t.Parallel()

		out := setup(t)
		result, err := NewGenerator(WithForce(true)).Generate(context.Background(), parse(t, doc), out)
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if !slices.Contains(result.Steps, Step{Action: ActionOverwrite, Path: "pkg/package.json"}) {
			t.Errorf("steps = %v, want package.json overwritten", result.Steps)
		}
		if got := readFile(t, filepath.Join(out, "pkg", "package.json")); !strings.Contains(got, `"name": "pkg"`) {
			t.Errorf("package.json = %q, want generated content", got)
		}
	})
}

func TestGenerateErrors(t *testing.T) {
	t.Parallel()

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewGenerator().Generate(ctx, parse(t, layoutDocument), t.TempDir())
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Generate() error = %v, want context.Canceled", err)
		}
	})

	t.Run("parent name", func(t *testing.T) {
		t.Parallel()

		_, err := NewGenerator().Generate(context.Background(), parse(t, "app/\n└─ ..\n"), t.TempDir())
		if !errors.Is(err, ErrInvalidName) {
			t.Errorf("Generate() error = %v, want ErrInvalidName", err)
		}
	})

	t.Run("file in place of a directory", func(t *testing.T) {
		t.Parallel()

		out := t.TempDir()
		if err := os.WriteFile(filepath.Join(out, "app"), []byte("x"), 0o600); err != nil {
			t.Fatal(err)
		}
		_, err := NewGenerator().Generate(context.Background(), parse(t, "app/\n└─ main.py\n"), out)
		if !errors.Is(err, ErrConflict) {
			t.Errorf("Generate() error = %v, want ErrConflict", err)
		}
	})
}
