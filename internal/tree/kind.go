package tree

import "strings"

// Kind distinguishes directories from files.
type Kind int

const (
	// KindDirectory is an entry that may hold children.
	KindDirectory Kind = iota
	// KindFile is a leaf entry.
	KindFile
)

// String returns the lowercase name used in JSON output.
func (k Kind) String() string {
	switch k {
	case KindDirectory:
		return "directory"
	case KindFile:
		return "file"
	default:
		return "unknown"
	}
}

// DefaultFileExtensions is the closed allow-list of suffixes that mark a
// name as a file. Anything else, including unknown suffixes, is a directory.
var DefaultFileExtensions = []string{
	"py", "md", "toml", "json", "js", "ts", "tsx", "jsx", "yml", "yaml",
}

// Classifier decides the Kind of an entry from its name.
type Classifier struct {
	extensions map[string]struct{}
}

// NewClassifier returns a Classifier recognising the given suffixes
// (without the leading dot). An empty list selects DefaultFileExtensions.
func NewClassifier(extensions []string) Classifier {
	if len(extensions) == 0 {
		extensions = DefaultFileExtensions
	}
	set := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		set[strings.TrimPrefix(ext, ".")] = struct{}{}
	}
	return Classifier{extensions: set}
}

// Classify returns KindFile when name has a dot and its last suffix is
// allow-listed. Matching is case-sensitive.
func (c Classifier) Classify(name string) Kind {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return KindDirectory
	}
	if _, ok := c.extensions[name[i+1:]]; ok {
		return KindFile
	}
	return KindDirectory
}
