package generate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/nao1215/treeverify/internal/coverage"
	"github.com/nao1215/treeverify/internal/tree"
)

// Default permissions of generated entries.
const (
	DefaultDirPerm  fs.FileMode = 0o755
	DefaultFilePerm fs.FileMode = 0o644
)

// Action is what the generator did, or would do, with one path.
type Action string

// Actions recorded in a Result.
const (
	ActionMkdir     Action = "mkdir"
	ActionCreate    Action = "create"
	ActionOverwrite Action = "overwrite"
	ActionSkip      Action = "skip"
)

// Step is one planned or performed change, with a path relative to the
// output directory.
type Step struct {
	Action Action
	Path   string
}

// Result lists the steps of one Generate call in order.
type Result struct {
	Steps []Step
}

// Count returns the number of steps with the given action.
func (r *Result) Count(a Action) int {
	n := 0
	for _, s := range r.Steps {
		if s.Action == a {
			n++
		}
	}
	return n
}

// Generator writes a Structure Model to disk.
type Generator struct {
	logger   *slog.Logger
	plan     io.Writer
	dryRun   bool
	force    bool
	dirPerm  fs.FileMode
	filePerm fs.FileMode
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithDryRun only records and prints the plan; nothing is written.
func WithDryRun(dryRun bool) Option {
	return func(g *Generator) {
		g.dryRun = dryRun
	}
}

// WithForce overwrites files that existed before the run.
func WithForce(force bool) Option {
	return func(g *Generator) {
		g.force = force
	}
}

// WithPlanOutput sets where each step is printed, one line per step.
// Steps are not printed when w is nil.
func WithPlanOutput(w io.Writer) Option {
	return func(g *Generator) {
		g.plan = w
	}
}

// NewGenerator creates a Generator.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		logger:   slog.New(slog.DiscardHandler),
		dirPerm:  DefaultDirPerm,
		filePerm: DefaultFilePerm,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// run holds the state of one Generate call.
type run struct {
	*Generator
	model  *tree.Model
	outDir string
	result *Result
}

// Generate writes every node of m below outDir. Each directory gets a
// README.md, from the model when it lists one and generated otherwise.
// Files get content from their template. Existing files are skipped
// unless the generator was created WithForce; generated READMEs never
// replace an existing one.
func (g *Generator) Generate(ctx context.Context, m *tree.Model, outDir string) (*Result, error) {
	r := &run{
		Generator: g,
		model:     m,
		outDir:    filepath.Clean(outDir),
		result:    &Result{},
	}

	if err := r.mkdir("."); err != nil {
		return r.result, err
	}

	var err error
	m.Walk(func(e tree.Entry) bool {
		if err != nil {
			return false
		}
		if err = ctx.Err(); err != nil {
			return false
		}
		if err = ValidateName(e.Node.Name); err != nil {
			err = fmt.Errorf("%s: %w", e.Path, err)
			return false
		}

		if e.Node.Kind == tree.KindDirectory {
			err = r.directory(e)
		} else {
			err = r.file(e)
		}
		return err == nil
	})
	if err != nil {
		return r.result, err
	}

	g.logger.Debug("generated project",
		"out", r.outDir,
		"directories", r.result.Count(ActionMkdir),
		"created", r.result.Count(ActionCreate),
		"skipped", r.result.Count(ActionSkip),
		"dry_run", g.dryRun,
	)
	return r.result, nil
}

func (r *run) directory(e tree.Entry) error {
	if err := r.mkdir(e.Path); err != nil {
		return err
	}
	readme := path.Join(e.Path, coverage.ReadmeFile)
	if _, listed := r.model.Lookup(readme); listed {
		return nil
	}
	content, err := renderReadme(e.Node.Name, e.Node.Annotation)
	if err != nil {
		return err
	}
	return r.write(readme, content, false)
}

func (r *run) file(e tree.Entry) error {
	parent := path.Base(path.Dir(e.Path))
	if parent == "." {
		parent = filepath.Base(r.outDir)
	}
	var (
		content []byte
		err     error
	)
	if e.Node.Name == coverage.ReadmeFile {
		content, err = renderReadme(parent, e.Node.Annotation)
	} else {
		content, err = renderFile(e.Node.Name, parent, e.Node.Annotation)
	}
	if err != nil {
		return err
	}
	return r.write(e.Path, content, r.force)
}

// mkdir creates the directory rel (slash-separated, relative to outDir).
func (r *run) mkdir(rel string) error {
	target, err := r.target(rel)
	if err != nil {
		return err
	}

	info, err := os.Stat(target)
	switch {
	case err == nil && info.IsDir():
		return nil
	case err == nil:
		return fmt.Errorf("%w: %s is a file", ErrConflict, target)
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("failed to stat %s: %w", target, err)
	}

	if rel != "." {
		r.record(ActionMkdir, rel)
	}
	if r.dryRun {
		return nil
	}
	if err := os.MkdirAll(target, r.dirPerm); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", target, err)
	}
	return nil
}

// write creates the file rel with content. An existing file is replaced
// only when overwrite is set.
func (r *run) write(rel string, content []byte, overwrite bool) error {
	target, err := r.target(rel)
	if err != nil {
		return err
	}

	action := ActionCreate
	info, err := os.Stat(target)
	switch {
	case err == nil && info.IsDir():
		return fmt.Errorf("%w: %s is a directory", ErrConflict, target)
	case err == nil && !overwrite:
		r.record(ActionSkip, rel)
		return nil
	case err == nil:
		action = ActionOverwrite
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("failed to stat %s: %w", target, err)
	}

	r.record(action, rel)
	if r.dryRun {
		return nil
	}
	if err := os.WriteFile(target, content, r.filePerm); err != nil {
		return fmt.Errorf("failed to write %s: %w", target, err)
	}
	return nil
}

func (r *run) target(rel string) (string, error) {
	if rel == "." {
		return r.outDir, nil
	}
	return SafeJoin(r.outDir, strings.Split(rel, "/")...)
}

func (r *run) record(a Action, rel string) {
	r.result.Steps = append(r.result.Steps, Step{Action: a, Path: rel})
	if r.plan != nil {
		fmt.Fprintf(r.plan, "%-9s %s\n", a, rel)
	}
}
