package fsscan

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
)

// Snapshot is the set of entries found below a root directory.
// Paths are relative to the root, use forward slashes and are sorted.
type Snapshot struct {
	// Root is the directory that was scanned.
	Root string
	// Directories holds every directory below Root, Root itself excluded.
	Directories []string
	// Files holds every non-directory entry below Root.
	Files []string
}

// Counts returns the number of directories and files in the snapshot.
func (s Snapshot) Counts() (directories, files int) {
	return len(s.Directories), len(s.Files)
}

// FilesMatching returns the files for which match returns true.
func (s Snapshot) FilesMatching(match func(rel string) bool) []string {
	var out []string
	for _, f := range s.Files {
		if match(f) {
			out = append(out, f)
		}
	}
	return out
}

// Abs converts a snapshot path back into a filesystem path.
func (s Snapshot) Abs(rel string) string {
	return filepath.Join(s.Root, filepath.FromSlash(rel))
}

// Scan walks root recursively. A root that does not exist yields an empty
// snapshot and no error; entries that cannot be read are skipped.
func Scan(root string) (Snapshot, error) {
	snap := Snapshot{Root: root}

	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return snap, nil
		}
		return snap, fmt.Errorf("failed to stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return snap, nil
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil //nolint:nilerr // entries outside root are ignored
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() || isDirLink(path, d) {
			snap.Directories = append(snap.Directories, rel)
		} else {
			snap.Files = append(snap.Files, rel)
		}
		return nil
	})
	if err != nil {
		return snap, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	slices.Sort(snap.Directories)
	slices.Sort(snap.Files)
	return snap, nil
}

// isDirLink reports whether d is a symlink to a directory. Such a link
// counts as a directory but is not descended into.
func isDirLink(path string, d fs.DirEntry) bool {
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	return IsDir(path)
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// IsFile reports whether path exists and is not a directory.
func IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
