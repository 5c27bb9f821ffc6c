package coverage

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/nao1215/treeverify/internal/fsscan"
	"github.com/nao1215/treeverify/internal/tree"
)

// Input is what every metric of one run reads: the expected model and the
// generated root. The project snapshot is taken once and shared.
type Input struct {
	model  *tree.Model
	root   string
	layout Layout
	reader *fsscan.ContentReader
	logger *slog.Logger

	once    sync.Once
	snap    fsscan.Snapshot
	snapErr error
}

// InputOption configures an Input.
type InputOption func(*Input)

// WithLayout overrides the generated layout. Empty fields keep defaults.
func WithLayout(layout Layout) InputOption {
	return func(in *Input) {
		in.layout = layout.WithDefaults()
	}
}

// WithContentReader shares a content cache between runs.
func WithContentReader(reader *fsscan.ContentReader) InputOption {
	return func(in *Input) {
		in.reader = reader
	}
}

// WithInputLogger sets the logger metrics use for skipped files.
func WithInputLogger(logger *slog.Logger) InputOption {
	return func(in *Input) {
		if logger != nil {
			in.logger = logger
		}
	}
}

// NewInput prepares the inputs for verifying root against m.
func NewInput(m *tree.Model, root string, opts ...InputOption) (*Input, error) {
	in := &Input{
		model:  m,
		root:   root,
		layout: DefaultLayout(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(in)
	}
	if in.reader == nil {
		reader, err := fsscan.NewContentReader(fsscan.DefaultCacheSize)
		if err != nil {
			return nil, err
		}
		in.reader = reader
	}
	return in, nil
}

// Model returns the expected structure.
func (in *Input) Model() *tree.Model {
	return in.model
}

// Root returns the generated root.
func (in *Input) Root() string {
	return in.root
}

// Layout returns the effective layout.
func (in *Input) Layout() Layout {
	return in.layout
}

// ProjectRoot returns the directory holding the generated content.
func (in *Input) ProjectRoot() string {
	return in.layout.ProjectRoot(in.root)
}

// Snapshot scans the project root on first use.
func (in *Input) Snapshot() (fsscan.Snapshot, error) {
	in.once.Do(func() {
		in.snap, in.snapErr = fsscan.Scan(in.ProjectRoot())
	})
	return in.snap, in.snapErr
}

// ExpectedPaths returns the model's directory and file paths relative to
// the project root.
func (in *Input) ExpectedPaths() (directories, files []string) {
	return in.model.PathSets(in.layout.SkipSegments()...)
}

// projectPath converts a project-relative slash path into a filesystem path.
func (in *Input) projectPath(rel string) string {
	return filepath.Join(in.ProjectRoot(), filepath.FromSlash(rel))
}

// read returns the content of a project-relative file.
func (in *Input) read(rel string) (string, error) {
	return in.reader.Read(in.projectPath(rel))
}

// exists reports whether a project-relative path exists as a file or a
// directory.
func (in *Input) exists(rel string) bool {
	_, err := os.Stat(in.projectPath(rel))
	return err == nil
}
