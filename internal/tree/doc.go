// Package tree parses ASCII directory trees embedded in text documents.
//
// A structure document is free text (usually Markdown) containing a block
// drawn with the box glyphs "├", "└", "│" and "─", one entry per line, with
// an optional annotation after the "←" marker:
//
//	project/
//	├─ src/
//	│  ├─ main.py ← entry point
//	│  └─ util.py
//	└─ README.md
//
// Parsing happens in four stages per line: the block detector decides
// whether the line belongs to the tree, the indentation resolver computes
// its depth, the extractor separates the name from the annotation, and the
// builder inserts the entry into a Model using a stack of open directories.
//
// The resulting Model is immutable. Nodes live in an arena and are addressed
// by NodeID; the builder's path stack holds IDs rather than names.
package tree
