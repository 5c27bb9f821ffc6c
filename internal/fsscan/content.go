package fsscan

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of file contents kept by NewContentReader
// when a non-positive size is given.
const DefaultCacheSize = 512

// maxContentSize bounds the files read for content checks.
const maxContentSize = 4 * 1024 * 1024

// ErrUnreadable is returned for files that cannot be used as text.
var ErrUnreadable = errors.New("file is not readable text")

// ContentReader reads text files through an LRU cache keyed by path.
// It is safe for concurrent use.
type ContentReader struct {
	cache *lru.Cache[string, string]
}

// NewContentReader creates a ContentReader holding up to size entries.
func NewContentReader(size int) (*ContentReader, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, string](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create content cache: %w", err)
	}
	return &ContentReader{cache: cache}, nil
}

// Read returns the content of path. Missing files, directories, oversized
// files and invalid UTF-8 yield an error wrapping ErrUnreadable.
func (r *ContentReader) Read(path string) (string, error) {
	if content, ok := r.cache.Get(path); ok {
		return content, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrUnreadable, path)
	}
	if info.Size() > maxContentSize {
		return "", fmt.Errorf("%w: %s exceeds %d bytes", ErrUnreadable, path, maxContentSize)
	}

	data, err := os.ReadFile(path) //nolint:gosec // paths come from a scan of the generated root
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: %s is not valid UTF-8", ErrUnreadable, path)
	}

	content := string(data)
	r.cache.Add(path, content)
	return content, nil
}

// Len returns the number of cached entries.
func (r *ContentReader) Len() int {
	return r.cache.Len()
}
