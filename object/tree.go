// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package object

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/nexthash/revspec/plumbing"
)

// FileMode is a stripped-down POSIX file mode, just enough to distinguish
// regular files from subtrees for component H's path descent.
type FileMode uint32

const (
	ModeRegular    FileMode = 0100644
	ModeExecutable FileMode = 0100755
	ModeSymlink    FileMode = 0120000
	ModeDir        FileMode = 0040000
	ModeGitlink    FileMode = 0160000
)

func (m FileMode) IsDir() bool { return m&0170000 == ModeDir }

// ErrDirectoryNotFound is returned when a path component of a tree descent
// names something that is not a subtree.
type ErrDirectoryNotFound struct{ dir string }

func (e *ErrDirectoryNotFound) Error() string { return fmt.Sprintf("dir %q not found", e.dir) }

func IsErrDirectoryNotFound(err error) bool {
	_, ok := err.(*ErrDirectoryNotFound)
	return ok
}

// ErrEntryNotFound is returned when a tree has no entry with the given name.
type ErrEntryNotFound struct{ entry string }

func (e *ErrEntryNotFound) Error() string { return fmt.Sprintf("entry %q not found", e.entry) }

func IsErrEntryNotFound(err error) bool {
	_, ok := err.(*ErrEntryNotFound)
	return ok
}

// TreeEntry is one line of a Tree: a name, its mode, and the id of the
// blob or subtree it points at.
type TreeEntry struct {
	Name string        `json:"name"`
	Mode FileMode      `json:"mode"`
	Hash plumbing.Hash `json:"hash"`
}

func (e *TreeEntry) IsDir() bool { return e.Mode.IsDir() }

// Tree is a directory listing: a set of named entries, each a blob or a
// nested tree. This is the object that component H (`:path`) walks.
type Tree struct {
	Hash    plumbing.Hash `json:"hash"`
	Entries []*TreeEntry  `json:"entries"`

	m map[string]*TreeEntry
	t map[string]*Tree // path -> resolved subtree, memoizes repeated descents
	b Backend
}

func NewTree(entries []*TreeEntry) *Tree {
	return &Tree{Entries: entries}
}

func (t *Tree) buildMap() {
	t.m = make(map[string]*TreeEntry, len(t.Entries))
	for _, e := range t.Entries {
		t.m[e.Name] = e
	}
}

// Entry looks up a single top-level name in t.
func (t *Tree) Entry(name string) (*TreeEntry, error) {
	if t.m == nil {
		t.buildMap()
	}
	e, ok := t.m[name]
	if !ok {
		return nil, &ErrEntryNotFound{entry: name}
	}
	return e, nil
}

// Tree resolves the subtree at relPath (relative to t), or t itself if
// relPath is empty, as needed by the trailing-slash / empty-path forms of
// `:path` (spec.md §4.H).
func (t *Tree) Tree(ctx context.Context, relPath string) (*Tree, error) {
	if len(relPath) == 0 {
		return t, nil
	}
	e, err := t.FindEntry(ctx, relPath)
	if err != nil {
		return nil, &ErrDirectoryNotFound{dir: relPath}
	}
	if !e.IsDir() {
		return nil, &ErrDirectoryNotFound{dir: relPath}
	}
	return resolveTree(ctx, t.b, e.Hash)
}

// FindEntry walks relativePath component by component, descending through
// subtrees, and returns the terminal entry (file or directory). A trailing
// "/" segment is dropped by the caller (component H forces tree mode on a
// trailing slash before calling this).
func (t *Tree) FindEntry(ctx context.Context, relativePath string) (*TreeEntry, error) {
	if t.t == nil {
		t.t = make(map[string]*Tree)
	}
	relativePath = filepath.ToSlash(relativePath)
	pathParts := strings.Split(relativePath, "/")

	startingTree := t
	pathCurrent := ""
	for i := len(pathParts) - 1; i >= 1; i-- {
		p := path.Join(pathParts[:i]...)
		if tree, ok := t.t[p]; ok {
			startingTree = tree
			pathParts = pathParts[i:]
			pathCurrent = p
			break
		}
	}

	var tree *Tree
	var err error
	for tree = startingTree; len(pathParts) > 1; pathParts = pathParts[1:] {
		if tree, err = tree.dir(ctx, pathParts[0]); err != nil {
			return nil, err
		}
		pathCurrent = path.Join(pathCurrent, pathParts[0])
		t.t[pathCurrent] = tree
	}
	return tree.entry(pathParts[0])
}

func (t *Tree) dir(ctx context.Context, baseName string) (*Tree, error) {
	e, err := t.entry(baseName)
	if err != nil || !e.IsDir() {
		return nil, &ErrDirectoryNotFound{dir: baseName}
	}
	if t.b == nil {
		return nil, &ErrDirectoryNotFound{dir: baseName}
	}
	tree, err := t.b.Tree(ctx, e.Hash)
	if err != nil {
		return nil, err
	}
	tree.b = t.b
	return tree, nil
}

func (t *Tree) entry(baseName string) (*TreeEntry, error) {
	if t.m == nil {
		t.buildMap()
	}
	e, ok := t.m[baseName]
	if !ok {
		return nil, &ErrEntryNotFound{entry: baseName}
	}
	return e, nil
}

func resolveTree(ctx context.Context, b Backend, h plumbing.Hash) (*Tree, error) {
	if b == nil {
		return nil, &ErrDirectoryNotFound{dir: h.String()}
	}
	tree, err := b.Tree(ctx, h)
	if err != nil {
		return nil, err
	}
	tree.b = b
	return tree, nil
}

// SetBackend binds t (and transitively, any subtree it resolves) to b, so
// that Tree/FindEntry can descend into subtrees on demand.
func (t *Tree) SetBackend(b Backend) {
	t.b = b
}

// Encode renders t in the text format "<mode> <type> <hash>\t<name>\n" per
// entry, sorted by name, mirroring the teacher's own tree listing order.
func (t *Tree) Encode() []byte {
	entries := make([]*TreeEntry, len(t.Entries))
	copy(entries, t.Entries)
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	var buf bytes.Buffer
	for _, e := range entries {
		kind := "blob"
		if e.IsDir() {
			kind = "tree"
		}
		fmt.Fprintf(&buf, "%06o %s %s\t%s\n", uint32(e.Mode), kind, e.Hash.String(), e.Name)
	}
	return buf.Bytes()
}

// Decode parses the text format produced by Encode.
func (t *Tree) Decode(oid plumbing.Hash, data []byte) error {
	t.Hash = oid
	s := bufio.NewScanner(bytes.NewReader(data))
	for s.Scan() {
		line := s.Text()
		if line == "" {
			continue
		}
		modeKindHash, name, ok := strings.Cut(line, "\t")
		if !ok {
			continue
		}
		fields := strings.SplitN(modeKindHash, " ", 3)
		if len(fields) != 3 {
			continue
		}
		mode, err := strconv.ParseUint(fields[0], 8, 32)
		if err != nil {
			continue
		}
		t.Entries = append(t.Entries, &TreeEntry{
			Name: name,
			Mode: FileMode(mode),
			Hash: plumbing.NewHash(fields[2]),
		})
	}
	return s.Err()
}
