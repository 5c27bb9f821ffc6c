package tree

import (
	"encoding/json"
	"strings"
)

// NodeID addresses a node inside a Model.
type NodeID int

// noParent is the parent of root nodes.
const noParent NodeID = -1

// Node is one entry of the expected structure.
type Node struct {
	// Name is the literal displayed name, extension included.
	Name string
	// Kind tells whether the entry is a directory or a file.
	Kind Kind
	// Annotation is the free-text comment attached to the entry, or "".
	Annotation string
}

// HasAnnotation reports whether the entry carries an annotation.
func (n Node) HasAnnotation() bool {
	return n.Annotation != ""
}

// slot is the arena representation of a node.
type slot struct {
	Node

	parent   NodeID
	children []NodeID
	// index maps a child name to its ID; names are unique among siblings.
	index map[string]NodeID
}

// Model is a parsed Structure Model: an ordered set of root nodes and their
// descendants. A Model is never modified after Parse returns, so it may be
// shared between goroutines.
type Model struct {
	nodes     []slot
	roots     []NodeID
	rootIndex map[string]NodeID
	digest    string
}

// newModel returns an empty, writable Model for the builder.
func newModel() *Model {
	return &Model{rootIndex: make(map[string]NodeID)}
}

// Len returns the number of nodes in the model.
func (m *Model) Len() int {
	return len(m.nodes)
}

// IsEmpty reports whether the document contained no tree entries.
func (m *Model) IsEmpty() bool {
	return len(m.roots) == 0
}

// Digest returns the hex SHA3-256 digest of the parsed document, or "" for
// a model that was not read from a document.
func (m *Model) Digest() string {
	return m.digest
}

// Roots returns the IDs of the root nodes in document order.
func (m *Model) Roots() []NodeID {
	out := make([]NodeID, len(m.roots))
	copy(out, m.roots)
	return out
}

// Node returns the node stored under id. It panics if id is out of range.
func (m *Model) Node(id NodeID) Node {
	return m.nodes[id].Node
}

// Children returns the IDs of id's children in insertion order.
func (m *Model) Children(id NodeID) []NodeID {
	children := m.nodes[id].children
	out := make([]NodeID, len(children))
	copy(out, children)
	return out
}

// Lookup resolves a slash-separated path starting at a root name.
func (m *Model) Lookup(path string) (NodeID, bool) {
	parts := strings.Split(strings.Trim(path, string(PathSeparator)), string(PathSeparator))
	id, ok := m.rootIndex[parts[0]]
	if !ok {
		return 0, false
	}
	for _, part := range parts[1:] {
		id, ok = m.nodes[id].index[part]
		if !ok {
			return 0, false
		}
	}
	return id, true
}

// Entry is a node visited by Walk.
type Entry struct {
	ID    NodeID
	Node  Node
	Path  string
	Depth int
}

// Walk visits every node depth-first in document order. Returning false
// from fn skips the children of the visited node.
func (m *Model) Walk(fn func(Entry) bool) {
	for _, id := range m.roots {
		m.walk(id, "", 0, fn)
	}
}

func (m *Model) walk(id NodeID, parent string, depth int, fn func(Entry) bool) {
	n := m.nodes[id]
	path := joinPath(parent, n.Name)
	if !fn(Entry{ID: id, Node: n.Node, Path: path, Depth: depth}) {
		return
	}
	for _, child := range n.children {
		m.walk(child, path, depth+1, fn)
	}
}

// Files returns the full slash-separated path of every file.
func (m *Model) Files() []string {
	var files []string
	m.Walk(func(e Entry) bool {
		if e.Node.Kind == KindFile {
			files = append(files, e.Path)
		}
		return true
	})
	return files
}

// Directories returns the full slash-separated path of every directory.
func (m *Model) Directories() []string {
	var dirs []string
	m.Walk(func(e Entry) bool {
		if e.Node.Kind == KindDirectory {
			dirs = append(dirs, e.Path)
		}
		return true
	})
	return dirs
}

// Annotations returns every non-empty annotation in document order.
// Repeated texts are kept.
func (m *Model) Annotations() []string {
	var out []string
	m.Walk(func(e Entry) bool {
		if e.Node.HasAnnotation() {
			out = append(out, e.Node.Annotation)
		}
		return true
	})
	return out
}

// Counts returns the number of directories and files in the whole model.
func (m *Model) Counts() (directories, files int) {
	for _, n := range m.nodes {
		if n.Kind == KindDirectory {
			directories++
		} else {
			files++
		}
	}
	return directories, files
}

// PathSets returns directory and file paths relative to the content root.
// A node whose name is in skip contributes no path of its own, and its
// children start over with an empty prefix; this strips wrapper directories
// such as "system/project1" wherever they appear.
func (m *Model) PathSets(skip ...string) (directories, files []string) {
	skipSet := make(map[string]struct{}, len(skip))
	for _, s := range skip {
		skipSet[s] = struct{}{}
	}

	var visit func(ids []NodeID, parent string)
	visit = func(ids []NodeID, parent string) {
		for _, id := range ids {
			n := m.nodes[id]
			if _, ok := skipSet[n.Name]; ok {
				visit(n.children, "")
				continue
			}
			path := joinPath(parent, n.Name)
			if n.Kind == KindFile {
				files = append(files, path)
				continue
			}
			directories = append(directories, path)
			visit(n.children, path)
		}
	}
	visit(m.roots, "")
	return directories, files
}

// jsonNode is the nested mapping shape used for JSON output.
type jsonNode struct {
	Type     string              `json:"type"`
	Name     string              `json:"name"`
	Comment  *string             `json:"comment"`
	Children map[string]jsonNode `json:"children"`
}

// MarshalJSON renders the model as a mapping from root names to nodes,
// each with type, name, comment and children (null for files).
func (m *Model) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.jsonLevel(m.roots))
}

func (m *Model) jsonLevel(ids []NodeID) map[string]jsonNode {
	out := make(map[string]jsonNode, len(ids))
	for _, id := range ids {
		n := m.nodes[id]
		jn := jsonNode{Type: n.Kind.String(), Name: n.Name}
		if n.HasAnnotation() {
			comment := n.Annotation
			jn.Comment = &comment
		}
		if n.Kind == KindDirectory {
			jn.Children = m.jsonLevel(n.children)
		}
		out[n.Name] = jn
	}
	return out
}

// joinPath joins a parent path and a name with PathSeparator.
func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + string(PathSeparator) + name
}
