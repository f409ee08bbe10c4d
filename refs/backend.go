// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package refs implements reference storage lookups and DWIM resolution
// for components B and F of the revision-expression grammar.
package refs

import (
	"errors"

	"github.com/nexthash/revspec/plumbing"
)

// Backend is the reference-store collaborator contract (spec.md §1, §4.B):
// look up HEAD, a single reference by full name, and enumerate all
// references (for DWIM prefix search and ambiguity detection).
type Backend interface {
	HEAD() (*plumbing.Reference, error)
	Reference(name plumbing.ReferenceName) (*plumbing.Reference, error)
	References() ([]*plumbing.Reference, error)
}

// MaxResolveRecursion bounds symbolic-ref chasing. spec.md §4.B treats a
// cycle, or a chain deeper than this, as an error rather than a hang.
const MaxResolveRecursion = 5

var ErrMaxResolveRecursion = errors.New("max recursion level reached resolving reference")

// ReferenceResolve follows name through any chain of symbolic references
// until a direct (hash) reference is reached, or returns
// ErrMaxResolveRecursion if the chain is too long (including cycles).
func ReferenceResolve(b Backend, name plumbing.ReferenceName) (*plumbing.Reference, error) {
	var ref *plumbing.Reference
	var err error
	for i := 0; i < MaxResolveRecursion; i++ {
		if ref, err = b.Reference(name); err != nil {
			return nil, err
		}
		if ref.Type() != plumbing.SymbolicReference {
			return ref, nil
		}
		name = ref.Target()
	}
	return nil, ErrMaxResolveRecursion
}
