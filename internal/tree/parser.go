package tree

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"unicode"

	"golang.org/x/crypto/sha3"
)

// Parser converts structure documents into Models.
// A Parser holds no per-document state and may be reused concurrently.
type Parser struct {
	classifier Classifier
	logger     *slog.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithExtensions replaces the file extension allow-list.
// An empty list keeps DefaultFileExtensions.
func WithExtensions(extensions []string) Option {
	return func(p *Parser) {
		p.classifier = NewClassifier(extensions)
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewParser creates a Parser with the default extension allow-list.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		classifier: NewClassifier(nil),
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseFile reads and parses the structure document at path.
// A missing document yields an error matching ErrNotFound.
func (p *Parser) ParseFile(path string) (*Model, error) {
	f, err := os.Open(path) //nolint:gosec // path is chosen by the user
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to open structure document: %w", err)
	}
	defer f.Close()

	m, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return m, nil
}

// ParseString parses a structure document held in memory.
func (p *Parser) ParseString(doc string) (*Model, error) {
	return p.Parse(strings.NewReader(doc))
}

// Parse reads a structure document from r.
//
// Lines before the first tree line are ignored, and parsing ends at a
// closing fence or at the first line of prose after the block. A document
// without a tree yields an empty Model and no error. The digest of the
// whole document is recorded even when parsing stops early.
func (p *Parser) Parse(r io.Reader) (*Model, error) {
	hash := sha3.New256()
	reader := bufio.NewReader(io.TeeReader(r, hash))

	var (
		detector blockDetector
		b        = newBuilder()
		lineNo   int
	)

scan:
	for {
		text, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to read structure document: %w", err)
		}
		if text == "" && err != nil {
			break
		}
		lineNo++
		raw := strings.TrimRightFunc(text, unicode.IsSpace)

		switch detector.classify(raw) {
		case actionSkip:
		case actionStop:
			p.logger.Debug("structure block ended", "line", lineNo)
			break scan
		case actionParse:
			if line, ok := parseLine(raw, p.classifier); ok {
				b.add(line)
			}
		}
		if err != nil {
			break
		}
	}

	// Drain the rest so the digest covers the full document.
	if _, err := io.Copy(io.Discard, io.TeeReader(r, hash)); err != nil {
		return nil, fmt.Errorf("failed to read structure document: %w", err)
	}

	m := b.build()
	m.digest = hex.EncodeToString(hash.Sum(nil))

	dirs, files := m.Counts()
	p.logger.Debug("parsed structure document",
		"roots", len(m.roots),
		"directories", dirs,
		"files", files,
	)
	return m, nil
}
