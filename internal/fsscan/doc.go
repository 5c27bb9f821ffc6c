// Package fsscan takes read-only snapshots of generated project layouts.
//
// A Snapshot lists the directories and files below a root as relative,
// forward-slash separated paths so they can be compared with the paths of
// a parsed structure model. ContentReader reads small text files through a
// shared LRU cache for the content-based checks.
package fsscan
