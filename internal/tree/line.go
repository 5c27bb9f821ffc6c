package tree

import (
	"strings"
	"unicode"
)

// CalculateLevel returns the nesting depth of a single structure line.
//
// Lines without tree glyphs count one level per IndentWidth leading
// whitespace runes. Lines with branch or corner glyphs count one level per
// such glyph, plus the whitespace level of the column holding the first one.
// A line of vertical glyphs only falls back to the whitespace rule. Columns
// are rune positions, and every division truncates.
//
// The result depends on line alone, so the function is safe to call in any
// order and from any goroutine.
func CalculateLevel(line string) int {
	indent := leadingWhitespace(line)
	if !hasTreeGlyph(line) {
		return indent / IndentWidth
	}

	branches := strings.Count(line, string(GlyphBranch)) + strings.Count(line, string(GlyphCorner))
	if branches == 0 {
		return indent / IndentWidth
	}

	column := 0
	for _, r := range line {
		if isBranchGlyph(r) {
			break
		}
		column++
	}
	return column/IndentWidth + branches
}

// ExtractNameAndAnnotation strips the drawing prefix from line and splits the
// rest at the first annotation delimiter.
//
// The name is trimmed and loses one trailing path separator. The annotation
// is the trimmed text after the delimiter, or "" when there is none. A line
// that reduces to an empty name returns two empty strings and carries no node.
func ExtractNameAndAnnotation(line string) (name, annotation string) {
	cleaned := strings.TrimLeftFunc(line, isLeadingNoise)

	namePart, rest, found := strings.Cut(cleaned, string(AnnotationDelimiter))
	name = strings.TrimSpace(namePart)
	name = strings.TrimSuffix(name, string(PathSeparator))
	if name == "" {
		return "", ""
	}

	if found {
		annotation = strings.TrimSpace(rest)
	}
	return name, annotation
}

// Line is one parsed entry of a structure block.
type Line struct {
	// Name is the displayed entry name without a trailing separator.
	Name string
	// Depth is the nesting level computed by CalculateLevel.
	Depth int
	// Kind is the classification of Name.
	Kind Kind
	// Annotation is the text after the delimiter, or "" when absent.
	Annotation string
}

// parseLine turns a raw structure line into a Line using classifier.
// ok is false when the line names nothing.
func parseLine(raw string, classifier Classifier) (Line, bool) {
	line := strings.TrimRightFunc(raw, unicode.IsSpace)
	name, annotation := ExtractNameAndAnnotation(line)
	if name == "" {
		return Line{}, false
	}
	return Line{
		Name:       name,
		Depth:      CalculateLevel(line),
		Kind:       classifier.Classify(name),
		Annotation: annotation,
	}, true
}
