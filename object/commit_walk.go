// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package object

import (
	"context"

	"github.com/nexthash/revspec/plumbing"
)

// FirstParentIter walks backwards from a starting commit along first
// parents only, as the building block for `^{/regex}` search (component
// G), which the spec restricts to first-parent ancestry. The `~n`
// operator in package revision follows first parents on its own and does
// not use this iterator.
type FirstParentIter struct {
	b    Backend
	next *Commit
}

func NewFirstParentIter(b Backend, start *Commit) *FirstParentIter {
	return &FirstParentIter{b: b, next: start}
}

// Next returns the next commit in first-parent order, or (nil, nil) once
// the root commit has been consumed.
func (it *FirstParentIter) Next(ctx context.Context) (*Commit, error) {
	cur := it.next
	if cur == nil {
		return nil, nil
	}
	parent, ok := cur.Parent(1)
	if !ok {
		it.next = nil
		return cur, nil
	}
	p, err := it.b.Commit(ctx, parent)
	if err != nil {
		return nil, err
	}
	it.next = p
	return cur, nil
}

// ForEachFirstParent walks start and every first-parent ancestor, calling
// fn for each one until fn returns plumbing.ErrStop or an error, or the
// history is exhausted.
func ForEachFirstParent(ctx context.Context, b Backend, start *Commit, fn func(*Commit) error) error {
	it := NewFirstParentIter(b, start)
	for {
		c, err := it.Next(ctx)
		if err != nil {
			return err
		}
		if c == nil {
			return nil
		}
		if err := fn(c); err != nil {
			if err == plumbing.ErrStop {
				return nil
			}
			return err
		}
	}
}
