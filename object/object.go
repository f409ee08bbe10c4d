// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package object implements the four repository object kinds (commit,
// tree, blob, tag) that make up the data model described by spec.md §3.
package object

import (
	"context"
	"errors"
	"strings"

	"github.com/nexthash/revspec/plumbing"
)

var ErrUnsupportedObject = errors.New("unsupported object type")

// Kind is one of the four closed object kinds. Deliberately not modeled
// as an open interface hierarchy: spec.md §9 calls for a small tagged
// variant here, not polymorphism via subclassing.
type Kind int8

const (
	InvalidKind Kind = iota
	CommitKind
	TreeKind
	BlobKind
	TagKind
)

func (k Kind) String() string {
	switch k {
	case CommitKind:
		return "commit"
	case TreeKind:
		return "tree"
	case BlobKind:
		return "blob"
	case TagKind:
		return "tag"
	default:
		return "unknown"
	}
}

// KindFromString parses the `^{kind}` keyword vocabulary (§4.I). Unknown
// words decode to InvalidKind so callers can distinguish "not a recognized
// kind keyword" (invalid_kind_keyword) from a mismatched-but-valid kind.
func KindFromString(s string) Kind {
	switch strings.ToLower(s) {
	case "commit":
		return CommitKind
	case "tree":
		return TreeKind
	case "blob":
		return BlobKind
	case "tag":
		return TagKind
	default:
		return InvalidKind
	}
}

// Backend is the ODB collaborator contract consumed by this package: load
// an object of a known kind by id. Storage formats are out of scope
// (spec.md §1); this is the only surface object/tree/commit code needs.
type Backend interface {
	Commit(ctx context.Context, oid plumbing.Hash) (*Commit, error)
	Tree(ctx context.Context, oid plumbing.Hash) (*Tree, error)
	Blob(ctx context.Context, oid plumbing.Hash) (*Blob, error)
	Tag(ctx context.Context, oid plumbing.Hash) (*Tag, error)
}

// AnyObject fetches oid from b and returns it along with its Kind, without
// the caller needing to know what kind it is ahead of time. Backends that
// store a type byte alongside the object (the normal case) should prefer
// a direct type-switch on their own decode result; this helper exists for
// the generic peel/assert paths in package revision.
func AnyObject(ctx context.Context, b Backend, oid plumbing.Hash) (any, Kind, error) {
	if c, err := b.Commit(ctx, oid); err == nil {
		return c, CommitKind, nil
	}
	if t, err := b.Tree(ctx, oid); err == nil {
		return t, TreeKind, nil
	}
	if bl, err := b.Blob(ctx, oid); err == nil {
		return bl, BlobKind, nil
	}
	if tg, err := b.Tag(ctx, oid); err == nil {
		return tg, TagKind, nil
	}
	return nil, InvalidKind, plumbing.NoSuchObject(oid)
}
