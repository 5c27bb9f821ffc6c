// Package watch re-runs work when files below a directory change.
//
// A Watcher registers every directory of a tree with fsnotify, follows
// directories created later and coalesces bursts of events into one
// callback per debounce window.
package watch
