package generate

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var (
	// ErrInvalidName is returned for node names that are not a single
	// relative path segment.
	ErrInvalidName = errors.New("invalid node name")

	// ErrEscapesRoot is returned when a joined path leaves the output directory.
	ErrEscapesRoot = errors.New("path escapes output directory")

	// ErrConflict is returned when a file stands where a directory is
	// expected, or the other way round.
	ErrConflict = errors.New("path conflict")
)

// ValidateName checks that name is one path segment: not empty, not "."
// or "..", without separators and not absolute.
func ValidateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty", ErrInvalidName)
	case name == "." || name == "..":
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	case filepath.IsAbs(name):
		return fmt.Errorf("%w: %q is absolute", ErrInvalidName, name)
	}
	return nil
}

// SafeJoin joins root and parts and checks that the result stays in root.
func SafeJoin(root string, parts ...string) (string, error) {
	cleanRoot := filepath.Clean(root)
	p := filepath.Join(append([]string{cleanRoot}, parts...)...)

	rel, err := filepath.Rel(cleanRoot, p)
	if err != nil {
		return "", err
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", fmt.Errorf("%w: %s", ErrEscapesRoot, p)
	}
	return p, nil
}
