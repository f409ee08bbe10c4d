// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package odb

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/nexthash/revspec/plumbing"
	"github.com/nexthash/revspec/revision"
)

// ResolvePrefix implements revision.AmbiguityChecker (component A): scan
// the loose-object store for every hash with the given prefix, scattering
// the 256 top-level shard directories across an errgroup so a short
// prefix (which can't narrow to one shard) doesn't serialize a full-tree
// walk. Grounded on file_storer.go's Search, parallelized the way
// pkg/serve's own fan-out code uses golang.org/x/sync/errgroup.
func (d *Database) ResolvePrefix(ctx context.Context, prefix string) (plumbing.Hash, error) {
	shards := d.store.shardsFor(prefix)

	results := make([][]plumbing.Hash, len(shards))
	g, gctx := errgroup.WithContext(ctx)
	for i, shard := range shards {
		i, shard := i, shard
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			matches, err := d.store.searchShard(shard, prefix)
			if err != nil {
				return err
			}
			results[i] = matches
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return plumbing.ZeroHash, err
	}

	var all []plumbing.Hash
	for _, r := range results {
		all = append(all, r...)
	}

	switch len(all) {
	case 0:
		return plumbing.ZeroHash, plumbing.NoSuchObject(plumbing.NewHash(prefix))
	case 1:
		return all[0], nil
	default:
		candidates := make([]string, len(all))
		for i, h := range all {
			candidates[i] = h.String()
		}
		return plumbing.ZeroHash, ambiguousErr(prefix, candidates)
	}
}

// ambiguousErr builds a revision.Error of Kind Ambiguous without importing
// the unexported constructor: ResolvePrefix is the one place outside
// package revision that needs to report this, so it goes through the same
// *revision.Error shape callers already type-switch on via IsAmbiguous.
func ambiguousErr(prefix string, candidates []string) error {
	return revision.NewAmbiguousError(prefix, candidates)
}
