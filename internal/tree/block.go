package tree

import "strings"

// lineAction is the block detector's verdict for one line.
type lineAction int

const (
	// actionSkip ignores the line (blank, or before the block starts).
	actionSkip lineAction = iota
	// actionParse hands the line to the indentation resolver and extractor.
	actionParse
	// actionStop ends parsing; no later line is read.
	actionStop
)

// blockDetector tracks whether parsing has entered the structure block.
// The zero value is ready to use and starts outside the block.
type blockDetector struct {
	inBlock bool
}

// classify decides what to do with line. The line must already have its
// trailing whitespace removed.
func (d *blockDetector) classify(line string) lineAction {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return actionSkip
	}

	if !d.inBlock {
		if !opensBlock(line, trimmed) {
			return actionSkip
		}
		d.inBlock = true
	}

	if strings.HasPrefix(trimmed, fenceMarker) {
		return actionStop
	}
	if isProse(line) {
		return actionStop
	}
	return actionParse
}

// opensBlock reports whether line starts the structure block: it either
// carries a tree glyph or contains a path separator without being a heading.
func opensBlock(line, trimmed string) bool {
	if hasTreeGlyph(line) {
		return true
	}
	return strings.ContainsRune(line, PathSeparator) && !strings.HasPrefix(trimmed, "#")
}

// isProse reports whether a line inside the block is ordinary text that
// terminates it. Annotated lines, indented lines and lines that name a path
// or a known file type are never prose, even without drawing glyphs.
func isProse(line string) bool {
	if strings.ContainsAny(line, drawingGlyphs) {
		return false
	}
	if strings.ContainsRune(line, AnnotationDelimiter) {
		return false
	}
	if strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t") {
		return false
	}
	for _, marker := range proseExemptMarkers {
		if strings.Contains(line, marker) {
			return false
		}
	}
	return true
}
