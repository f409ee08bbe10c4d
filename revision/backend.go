// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package revision

import (
	"context"

	"github.com/nexthash/revspec/object"
	"github.com/nexthash/revspec/plumbing"
	"github.com/nexthash/revspec/reflog"
	"github.com/nexthash/revspec/refs"
)

// AmbiguityChecker is the object-id abbreviation collaborator (component
// A). Storage-layout knowledge (how prefixes map to files on disk) stays
// in package odb; this resolver only ever calls ResolvePrefix.
type AmbiguityChecker interface {
	// ResolvePrefix resolves a hex object-id prefix (already validated as
	// hex, at least the caller's minimum length) to the single object it
	// identifies. It returns an error satisfying IsAmbiguous if more than
	// one object matches, or IsNoSuchObject (via plumbing) if none do.
	ResolvePrefix(ctx context.Context, prefix string) (plumbing.Hash, error)
}

// UpstreamResolver is the configuration collaborator backing
// `@{upstream}`/`@{u}` (component F).
type UpstreamResolver interface {
	// Upstream returns the full reference name branch tracks, or an error
	// (wrap with newUpstreamUnconfigured) if none is configured.
	Upstream(branch string) (string, error)
}

// Backend bundles every collaborator the resolver needs: the object
// database, the reference store, the reflog reader, abbreviation, and
// upstream configuration. odb.Repository is the one concrete implementation.
type Backend interface {
	object.Backend
	refs.Backend
	reflog.Reader
	AmbiguityChecker
	UpstreamResolver
}
