// Package main provides the entry point for the treeverify CLI.
//
// treeverify reads the ASCII directory tree of a structure document,
// generates a project from it and measures how faithfully a generated
// project follows the document.
//
// Usage:
//
//	treeverify parse structure.md
//	treeverify generate structure.md -o output
//	treeverify verify structure.md -g output
//
// See --help for all available options.
package main

func main() {
	Execute()
}
