// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package odb

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/nexthash/revspec/plumbing"
)

// RefStore is a filesystem refs.Backend: loose references as one file per
// ref under root (root/HEAD, root/refs/heads/<name>, ...), grounded on
// modules/zeta/refs/filesystem.go's fsBackend. No packed-refs file: this
// module never writes enough refs at once for loose-file-per-ref to be a
// problem, and packed-refs is a pure optimization the teacher's own
// filesystem.go treats as optional (addRefsFromPackedRefs is a no-op when
// the file is absent).
type RefStore struct {
	root string
}

func NewRefStore(root string) *RefStore {
	return &RefStore{root: root}
}

func (r *RefStore) readFile(name string) (*plumbing.Reference, error) {
	data, err := os.ReadFile(filepath.Join(r.root, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, plumbing.ErrReferenceNotFound
		}
		return nil, err
	}
	line := strings.TrimSpace(string(data))
	return plumbing.NewReferenceFromStrings(name, line), nil
}

func (r *RefStore) HEAD() (*plumbing.Reference, error) {
	return r.readFile("HEAD")
}

func (r *RefStore) Reference(name plumbing.ReferenceName) (*plumbing.Reference, error) {
	return r.readFile(string(name))
}

func (r *RefStore) References() ([]*plumbing.Reference, error) {
	var refs []*plumbing.Reference
	err := filepath.WalkDir(filepath.Join(r.root, "refs"), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(r.root, path)
		if err != nil {
			return err
		}
		ref, err := r.readFile(filepath.ToSlash(rel))
		if err != nil {
			return nil
		}
		refs = append(refs, ref)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return refs, nil
}

// WriteReference writes a loose reference file, creating any parent
// directories it needs. Used by test fixtures and any future command-line
// ref mutation; revision resolution itself never writes.
func (r *RefStore) WriteReference(ref *plumbing.Reference) error {
	var content string
	switch ref.Type() {
	case plumbing.SymbolicReference:
		content = "ref: " + string(ref.Target()) + "\n"
	case plumbing.HashReference:
		content = ref.Hash().String() + "\n"
	}
	p := filepath.Join(r.root, string(ref.Name()))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	return os.WriteFile(p, []byte(content), 0o644)
}
