package tree

import "errors"

// ErrNotFound is returned by ParseFile when the structure document does not exist.
// Callers should use errors.Is because the returned error carries the path.
var ErrNotFound = errors.New("structure document not found")
