// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package revision

import (
	"context"

	"github.com/nexthash/revspec/object"
	"github.com/nexthash/revspec/plumbing"
)

// maxTagPeelDepth bounds `^{}`-style tag dereferencing: a chain of tags
// longer than this is treated as too deep to be a real object graph.
const maxTagPeelDepth = 64

// peelTags follows a chain of tag objects (Tag.Object) until a non-tag is
// reached, or the depth cap is exceeded. If id is not itself a tag, it is
// returned unchanged.
func peelTags(ctx context.Context, b Backend, id plumbing.Hash, kind object.Kind) (plumbing.Hash, object.Kind, error) {
	for depth := 0; kind == object.TagKind; depth++ {
		if depth >= maxTagPeelDepth {
			return plumbing.ZeroHash, object.InvalidKind, newNotFound(id.String())
		}
		tag, err := b.Tag(ctx, id)
		if err != nil {
			return plumbing.ZeroHash, object.InvalidKind, newNotFound(id.String())
		}
		id = tag.Object
		kind = tag.ObjectKind
	}
	return id, kind, nil
}

// peelForCommitNav prepares id/kind for a `^n`/`~n` ancestor step: a tag is
// peeled to whatever it points at, which must turn out to be a commit. A
// tree or blob can never be navigated this way, regardless of peeling.
func peelForCommitNav(ctx context.Context, b Backend, id plumbing.Hash, kind object.Kind, spec string) (plumbing.Hash, error) {
	switch kind {
	case object.CommitKind:
		return id, nil
	case object.TagKind:
		peeledID, peeledKind, err := peelTags(ctx, b, id, kind)
		if err != nil {
			return plumbing.ZeroHash, err
		}
		if peeledKind != object.CommitKind {
			return plumbing.ZeroHash, newTypeMismatch(spec, object.CommitKind, peeledKind)
		}
		return peeledID, nil
	default:
		return plumbing.ZeroHash, newInvalid(spec, "ancestor operator applied to a non-commit, non-tag object")
	}
}

// assertKind implements the `^{kind}` family: peel tags toward target,
// with the `^{tree}` special case of taking a commit's own tree.
func assertKind(ctx context.Context, b Backend, id plumbing.Hash, kind object.Kind, target object.Kind, spec string) (plumbing.Hash, object.Kind, error) {
	if target == object.TagKind {
		if kind != object.TagKind {
			return plumbing.ZeroHash, object.InvalidKind, newTypeMismatch(spec, target, kind)
		}
		return id, kind, nil
	}

	peeledID, peeledKind, err := peelTags(ctx, b, id, kind)
	if err != nil {
		return plumbing.ZeroHash, object.InvalidKind, err
	}

	if target == object.TreeKind && peeledKind == object.CommitKind {
		c, err := b.Commit(ctx, peeledID)
		if err != nil {
			return plumbing.ZeroHash, object.InvalidKind, newNotFound(spec)
		}
		return c.Tree, object.TreeKind, nil
	}

	if peeledKind != target {
		return plumbing.ZeroHash, object.InvalidKind, newTypeMismatch(spec, target, peeledKind)
	}
	return peeledID, peeledKind, nil
}

// dereference implements bare `^{}`: peel tags all the way down to the
// first non-tag object, whatever kind it is.
func dereference(ctx context.Context, b Backend, id plumbing.Hash, kind object.Kind) (plumbing.Hash, object.Kind, error) {
	peeledID, peeledKind, err := peelTags(ctx, b, id, kind)
	if err != nil {
		return plumbing.ZeroHash, object.InvalidKind, err
	}
	return peeledID, peeledKind, nil
}
