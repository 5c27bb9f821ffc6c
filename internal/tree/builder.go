package tree

// builder assembles a Model from leveled lines using a stack of open
// directory IDs, one entry per currently open level.
type builder struct {
	model *Model
	stack []NodeID
}

// newBuilder returns a builder writing into a fresh Model.
func newBuilder() *builder {
	return &builder{model: newModel()}
}

// add inserts line into the model.
//
// The stack is cut down to line.Depth entries first, which is how a
// shallower line closes deeper directories. Depth zero makes the entry a
// root. Any other depth attaches it to the deepest open directory, or to
// the root level when nothing is open. Directories are then pushed.
func (b *builder) add(line Line) {
	if len(b.stack) > line.Depth {
		b.stack = b.stack[:line.Depth]
	}

	if line.Depth == 0 {
		id := b.insert(noParent, line)
		// A root-level file is never pushed, so deeper lines that follow
		// it attach at root level instead of under a file. The stack is
		// [id] only for a root-level directory.
		b.stack = b.stack[:0]
		if b.model.nodes[id].Kind == KindDirectory {
			b.stack = append(b.stack, id)
		}
		return
	}

	parent := noParent
	if len(b.stack) > 0 {
		parent = b.stack[len(b.stack)-1]
	}
	id := b.insert(parent, line)
	if b.model.nodes[id].Kind == KindDirectory {
		b.stack = append(b.stack, id)
	}
}

// insert adds line under parent, or returns the existing sibling with the
// same name. A reused node merges: a later annotation replaces an earlier
// one, and a node that is or becomes a directory stays a directory.
func (b *builder) insert(parent NodeID, line Line) NodeID {
	m := b.model

	index := m.rootIndex
	if parent != noParent {
		index = m.nodes[parent].index
	}

	if id, ok := index[line.Name]; ok {
		existing := &m.nodes[id]
		if line.Annotation != "" {
			existing.Annotation = line.Annotation
		}
		if line.Kind == KindDirectory && existing.Kind != KindDirectory {
			existing.Kind = KindDirectory
			existing.index = make(map[string]NodeID)
		}
		return id
	}

	id := NodeID(len(m.nodes))
	s := slot{
		Node:   Node{Name: line.Name, Kind: line.Kind, Annotation: line.Annotation},
		parent: parent,
	}
	if line.Kind == KindDirectory {
		s.index = make(map[string]NodeID)
	}
	m.nodes = append(m.nodes, s)

	if parent == noParent {
		m.roots = append(m.roots, id)
		m.rootIndex[line.Name] = id
	} else {
		m.nodes[parent].children = append(m.nodes[parent].children, id)
		m.nodes[parent].index[line.Name] = id
	}
	return id
}

// build returns the finished model.
func (b *builder) build() *Model {
	return b.model
}
