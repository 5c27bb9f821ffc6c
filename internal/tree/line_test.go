package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestCalculateLevel tests depth computation for single lines.
func TestCalculateLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line string
		want int
	}{
		{name: "root directory", line: "root/", want: 0},
		{name: "first level branch", line: "├─ child/", want: 1},
		{name: "second level under vertical", line: "│  ├─ grandchild/", want: 2},
		{name: "space indented leaf", line: "   leaf.py", want: 1},
		{name: "corner with indentation", line: "   └─ docs/", want: 2},
		{name: "deep corner", line: "   │        └─ main.py", want: 5},
		{name: "vertical only falls back to spaces", line: "      │", want: 2},
		{name: "partial indentation truncates", line: "     x.py", want: 1},
		{name: "two branch glyphs on one line", line: "├─ ├─ odd", want: 2},
		{name: "empty line", line: "", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, CalculateLevel(tt.line))
		})
	}
}

// TestCalculateLevelDeterministic checks that repeated calls agree.
func TestCalculateLevelDeterministic(t *testing.T) {
	t.Parallel()

	lines := []string{"root/", "│  ├─ grandchild/", "   leaf.py", "   └─ docs/"}
	first := make([]int, len(lines))
	for i, l := range lines {
		first[i] = CalculateLevel(l)
	}
	// Reverse order must not change anything.
	for i := len(lines) - 1; i >= 0; i-- {
		assert.Equal(t, first[i], CalculateLevel(lines[i]), lines[i])
	}
}

// TestExtractNameAndAnnotation tests splitting entries into name and comment.
func TestExtractNameAndAnnotation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		line           string
		wantName       string
		wantAnnotation string
	}{
		{name: "annotated file", line: "main.py ← entry point", wantName: "main.py", wantAnnotation: "entry point"},
		{name: "plain file", line: "README.md", wantName: "README.md"},
		{name: "glyph prefix", line: "│  ├─ src/ ← sources", wantName: "src", wantAnnotation: "sources"},
		{name: "only first trailing slash removed", line: "├─ dir//", wantName: "dir/"},
		{name: "multiple delimiters", line: "a.py ← x ← y", wantName: "a.py", wantAnnotation: "x ← y"},
		{name: "empty annotation", line: "a.py ←   ", wantName: "a.py"},
		{name: "empty name", line: "├─ ← orphan"},
		{name: "glyphs only", line: "│  │"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			name, annotation := ExtractNameAndAnnotation(tt.line)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantAnnotation, annotation)
		})
	}
}

// TestClassifier tests kind classification by suffix.
func TestClassifier(t *testing.T) {
	t.Parallel()

	t.Run("default allow-list", func(t *testing.T) {
		t.Parallel()

		c := NewClassifier(nil)
		files := []string{"main.py", "README.md", "pyproject.toml", "package.json",
			"index.js", "app.ts", "App.tsx", "view.jsx", "ci.yml", "config.yaml"}
		for _, name := range files {
			assert.Equal(t, KindFile, c.Classify(name), name)
		}
		dirs := []string{"src", "Makefile", "archive.tar.gz", "App.TSX", "v1.2", ".github"}
		for _, name := range dirs {
			assert.Equal(t, KindDirectory, c.Classify(name), name)
		}
	})

	t.Run("custom allow-list replaces default", func(t *testing.T) {
		t.Parallel()

		c := NewClassifier([]string{".txt", "go"})
		assert.Equal(t, KindFile, c.Classify("notes.txt"))
		assert.Equal(t, KindFile, c.Classify("main.go"))
		assert.Equal(t, KindDirectory, c.Classify("main.py"))
	})

	t.Run("kind names", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "directory", KindDirectory.String())
		assert.Equal(t, "file", KindFile.String())
	})
}

// TestBlockDetector tests which lines belong to the structure block.
func TestBlockDetector(t *testing.T) {
	t.Parallel()

	t.Run("skips text before the block", func(t *testing.T) {
		t.Parallel()

		var d blockDetector
		assert.Equal(t, actionSkip, d.classify("Intro text."))
		assert.Equal(t, actionSkip, d.classify("# docs/guide"))
		assert.Equal(t, actionSkip, d.classify("```text"))
		assert.Equal(t, actionParse, d.classify("project/"))
		assert.True(t, d.inBlock)
	})

	t.Run("opens on a glyph", func(t *testing.T) {
		t.Parallel()

		var d blockDetector
		assert.Equal(t, actionParse, d.classify("├─ src"))
	})

	t.Run("blank lines are skipped inside the block", func(t *testing.T) {
		t.Parallel()

		d := blockDetector{inBlock: true}
		assert.Equal(t, actionSkip, d.classify("   "))
	})

	t.Run("fence stops", func(t *testing.T) {
		t.Parallel()

		d := blockDetector{inBlock: true}
		assert.Equal(t, actionStop, d.classify("```"))
	})

	t.Run("prose stops", func(t *testing.T) {
		t.Parallel()

		d := blockDetector{inBlock: true}
		assert.Equal(t, actionStop, d.classify("Closing remarks"))
	})

	t.Run("exempt lines stay in the block", func(t *testing.T) {
		t.Parallel()

		d := blockDetector{inBlock: true}
		for _, line := range []string{"notes.md", "Makefile ← build", "   indented", "\ttabbed", "lib/", "x.json"} {
			assert.Equal(t, actionParse, d.classify(line), line)
		}
	})
}
