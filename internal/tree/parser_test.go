package tree

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/sha3"
)

const sampleDocument = "# Sample project\n" +
	"\n" +
	"The layout below is generated verbatim.\n" +
	"\n" +
	"```text\n" +
	"system/\n" +
	"└─ project1/\n" +
	"   ├─ README.md ← Project overview\n" +
	"   ├─ core/\n" +
	"   │  ├─ pyproject.toml\n" +
	"   │  └─ src/\n" +
	"   │     └─ core/\n" +
	"   │        └─ main.py ← entry point\n" +
	"   └─ docs/\n" +
	"```\n" +
	"\n" +
	"├─ ignored.py\n"

// TestParseSampleDocument tests a complete document with a fenced tree.
func TestParseSampleDocument(t *testing.T) {
	t.Parallel()

	m, err := NewParser().ParseString(sampleDocument)
	require.NoError(t, err)

	assert.False(t, m.IsEmpty())
	assert.Equal(t, 9, m.Len())
	assert.Equal(t, []string{
		"system",
		"system/project1",
		"system/project1/core",
		"system/project1/core/src",
		"system/project1/core/src/core",
		"system/project1/docs",
	}, m.Directories())
	assert.Equal(t, []string{
		"system/project1/README.md",
		"system/project1/core/pyproject.toml",
		"system/project1/core/src/core/main.py",
	}, m.Files())
	assert.Equal(t, []string{"Project overview", "entry point"}, m.Annotations())

	dirs, files := m.Counts()
	assert.Equal(t, 6, dirs)
	assert.Equal(t, 3, files)

	id, ok := m.Lookup("system/project1/core/src/core/main.py")
	require.True(t, ok)
	assert.Equal(t, Node{Name: "main.py", Kind: KindFile, Annotation: "entry point"}, m.Node(id))

	_, ok = m.Lookup("system/project1/ignored.py")
	assert.False(t, ok)
	_, ok = m.Lookup("nowhere")
	assert.False(t, ok)
}

// TestModelPathSets tests stripping of the layout wrapper segments.
func TestModelPathSets(t *testing.T) {
	t.Parallel()

	m, err := NewParser().ParseString(sampleDocument)
	require.NoError(t, err)

	dirs, files := m.PathSets("system", "project1")
	assert.Equal(t, []string{"core", "core/src", "core/src/core", "docs"}, dirs)
	assert.Equal(t, []string{"README.md", "core/pyproject.toml", "core/src/core/main.py"}, files)

	t.Run("without skips paths start at the roots", func(t *testing.T) {
		t.Parallel()

		dirs, files := m.PathSets()
		assert.Equal(t, m.Directories(), dirs)
		assert.Equal(t, m.Files(), files)
	})
}

// TestParseEmptyDocuments tests that documents without a tree yield an empty model.
func TestParseEmptyDocuments(t *testing.T) {
	t.Parallel()

	docs := map[string]string{
		"empty":         "",
		"prose only":    "Just a paragraph.\nAnd another one.\n",
		"heading slash": "# docs/guide\n\nNothing else.\n",
	}
	for name, doc := range docs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			m, err := NewParser().ParseString(doc)
			require.NoError(t, err)
			assert.True(t, m.IsEmpty())
			assert.Equal(t, 0, m.Len())
			assert.Empty(t, m.Files())
		})
	}
}

// TestParseStops tests the two ways a structure block ends.
func TestParseStops(t *testing.T) {
	t.Parallel()

	t.Run("prose after the block", func(t *testing.T) {
		t.Parallel()

		doc := "src/\n├─ app.py\nSome closing remark.\n├─ late.py\n"
		m, err := NewParser().ParseString(doc)
		require.NoError(t, err)
		assert.Equal(t, []string{"src/app.py"}, m.Files())
	})

	t.Run("closing fence", func(t *testing.T) {
		t.Parallel()

		doc := "src/\n└─ app.py\n```\nlib/\n"
		m, err := NewParser().ParseString(doc)
		require.NoError(t, err)
		assert.Equal(t, []string{"src"}, m.Directories())
	})

	t.Run("unindented file names continue the block", func(t *testing.T) {
		t.Parallel()

		doc := "src/\n├─ app.py\nnotes.md\n"
		m, err := NewParser().ParseString(doc)
		require.NoError(t, err)
		assert.Equal(t, []string{"src/app.py", "notes.md"}, m.Files())
	})
}

// TestParseDuplicateSiblings documents how repeated sibling names resolve.
// Whether a repeated directory should merge or be rejected is an open
// question; the parser currently merges.
func TestParseDuplicateSiblings(t *testing.T) {
	t.Parallel()

	doc := "app/\n" +
		"├─ pkg/ ← first\n" +
		"│  └─ a.py\n" +
		"├─ pkg/ ← second\n" +
		"│  └─ b.py\n" +
		"├─ pkg/\n" +
		"└─ main.py\n"

	m, err := NewParser().ParseString(doc)
	require.NoError(t, err)

	assert.Equal(t, 5, m.Len())
	assert.Equal(t, []string{"app/pkg/a.py", "app/pkg/b.py", "app/main.py"}, m.Files())

	id, ok := m.Lookup("app/pkg")
	require.True(t, ok)
	assert.Equal(t, "second", m.Node(id).Annotation)
	assert.Len(t, m.Children(id), 2)
}

// TestParseRootLevelFallbacks tests entries that have no open parent.
func TestParseRootLevelFallbacks(t *testing.T) {
	t.Parallel()

	doc := "├─ first/\n" +
		"README.md\n" +
		"├─ child.py\n"

	m, err := NewParser().ParseString(doc)
	require.NoError(t, err)

	var names []string
	for _, id := range m.Roots() {
		names = append(names, m.Node(id).Name)
	}
	assert.Equal(t, []string{"first", "README.md", "child.py"}, names)
	assert.Equal(t, []string{"first"}, m.Directories())
}

// TestParseWithExtensions tests a replaced extension allow-list.
func TestParseWithExtensions(t *testing.T) {
	t.Parallel()

	doc := "pkg/\n├─ notes.txt\n└─ main.py\n"
	m, err := NewParser(WithExtensions([]string{"txt"})).ParseString(doc)
	require.NoError(t, err)

	assert.Equal(t, []string{"pkg/notes.txt"}, m.Files())
	assert.Equal(t, []string{"pkg", "pkg/main.py"}, m.Directories())
}

// TestParseFile tests reading documents from disk.
func TestParseFile(t *testing.T) {
	t.Parallel()

	t.Run("missing document", func(t *testing.T) {
		t.Parallel()

		_, err := NewParser().ParseFile(filepath.Join(t.TempDir(), "missing.md"))
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("existing document", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "structure.md")
		require.NoError(t, os.WriteFile(path, []byte(sampleDocument), 0o600))

		m, err := NewParser().ParseFile(path)
		require.NoError(t, err)
		assert.Len(t, m.Files(), 3)
	})
}

// TestParseLongLines tests lines far larger than a typical read buffer.
func TestParseLongLines(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 2*1024*1024)

	t.Run("long annotation inside the block", func(t *testing.T) {
		t.Parallel()

		doc := "app/\n├─ main.py ← " + long + "\n└─ README.md\n"
		m, err := NewParser().ParseString(doc)
		require.NoError(t, err)
		assert.Equal(t, []string{"app/main.py", "app/README.md"}, m.Files())

		id, ok := m.Lookup("app/main.py")
		require.True(t, ok)
		assert.Len(t, m.Node(id).Annotation, len(long))
	})

	t.Run("long prose line without a tree", func(t *testing.T) {
		t.Parallel()

		m, err := NewParser().ParseString(long + "\n")
		require.NoError(t, err)
		assert.True(t, m.IsEmpty())
	})

	t.Run("final line without newline", func(t *testing.T) {
		t.Parallel()

		m, err := NewParser().ParseString("app/\n└─ main.py")
		require.NoError(t, err)
		assert.Equal(t, []string{"app/main.py"}, m.Files())
	})
}

// TestModelDigest tests that the digest covers the whole document.
func TestModelDigest(t *testing.T) {
	t.Parallel()

	m, err := NewParser().ParseString(sampleDocument)
	require.NoError(t, err)

	sum := sha3.Sum256([]byte(sampleDocument))
	assert.Equal(t, hex.EncodeToString(sum[:]), m.Digest())

	other, err := NewParser().ParseString(sampleDocument + "trailing prose\n")
	require.NoError(t, err)
	assert.Equal(t, m.Files(), other.Files())
	assert.NotEqual(t, m.Digest(), other.Digest())
}

// TestModelMarshalJSON tests the nested mapping output.
func TestModelMarshalJSON(t *testing.T) {
	t.Parallel()

	m, err := NewParser().ParseString("src/\n└─ main.py ← entry\n")
	require.NoError(t, err)

	got, err := json.Marshal(m)
	require.NoError(t, err)

	want := `{
		"src": {
			"type": "directory",
			"name": "src",
			"comment": null,
			"children": {
				"main.py": {"type": "file", "name": "main.py", "comment": "entry", "children": null}
			}
		}
	}`
	assert.JSONEq(t, want, string(got))
}

// TestModelWalkSkip tests pruning a subtree during Walk.
func TestModelWalkSkip(t *testing.T) {
	t.Parallel()

	m, err := NewParser().ParseString(sampleDocument)
	require.NoError(t, err)

	var visited []string
	m.Walk(func(e Entry) bool {
		visited = append(visited, e.Path)
		return e.Node.Name != "core"
	})
	assert.Equal(t, []string{
		"system",
		"system/project1",
		"system/project1/README.md",
		"system/project1/core",
		"system/project1/docs",
	}, visited)
}
