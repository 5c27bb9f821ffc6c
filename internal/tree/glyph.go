package tree

import (
	"strings"
	"unicode"
)

// Drawing glyphs and markers recognised in a structure block.
const (
	// GlyphBranch marks an entry that has following siblings.
	GlyphBranch = '├'
	// GlyphCorner marks the last entry of a directory.
	GlyphCorner = '└'
	// GlyphVertical continues an ancestor's branch on deeper lines.
	GlyphVertical = '│'
	// GlyphDash is the horizontal continuation drawn after a branch or corner.
	GlyphDash = '─'
	// AnnotationDelimiter separates an entry name from its annotation.
	AnnotationDelimiter = '←'
	// PathSeparator is the separator used in names and in every relative path.
	PathSeparator = '/'
	// IndentWidth is the number of columns that make up one nesting level.
	IndentWidth = 3
)

// treeGlyphs holds the three glyphs that open a structure block.
const treeGlyphs = string(GlyphBranch) + string(GlyphCorner) + string(GlyphVertical)

// drawingGlyphs holds every glyph that may appear in a structure line.
const drawingGlyphs = treeGlyphs + string(GlyphDash)

// fenceMarker opens and closes a fenced code block.
const fenceMarker = "```"

// proseExemptMarkers keep an unindented, glyph-free line inside the block.
// Deeply nested entries sometimes lose their glyphs; these substrings show
// that the line still names a path.
var proseExemptMarkers = []string{"/", ".py", ".md", ".toml", ".json"}

// hasTreeGlyph reports whether line contains a branch, corner or vertical glyph.
func hasTreeGlyph(line string) bool {
	return strings.ContainsAny(line, treeGlyphs)
}

// isBranchGlyph reports whether r opens a nesting transition.
func isBranchGlyph(r rune) bool {
	return r == GlyphBranch || r == GlyphCorner
}

// isLeadingNoise reports whether r belongs to the prefix stripped before a name.
func isLeadingNoise(r rune) bool {
	return strings.ContainsRune(drawingGlyphs, r) || unicode.IsSpace(r)
}

// leadingWhitespace returns the number of whitespace runes at the start of line.
func leadingWhitespace(line string) int {
	n := 0
	for _, r := range line {
		if !unicode.IsSpace(r) {
			break
		}
		n++
	}
	return n
}
