// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package revision

import (
	"context"
	"regexp"
	"strings"

	"github.com/nexthash/revspec/object"
	"github.com/nexthash/revspec/plumbing"
	"github.com/nexthash/revspec/refs"
)

// searchCommitMessage implements component G for `^{/regex}` and
// `<rev>:/regex`: both walk first-parent history from res looking for the
// newest commit whose message matches pattern, compiled as a POSIX
// extended regex. A bare `:/regex` with no preceding rev has no res to
// start from; see searchCommitMessageAllTips for that case.
func searchCommitMessage(ctx context.Context, b Backend, res *Result, pattern, spec string) (*Result, error) {
	if pattern == "" {
		return nil, newInvalid(spec, "empty commit message search pattern")
	}
	re, err := regexp.CompilePOSIX(pattern)
	if err != nil {
		return nil, newRegexInvalid(spec, pattern)
	}

	commitID, err := peelForCommitNav(ctx, b, res.ID, res.Kind, spec)
	if err != nil {
		return nil, err
	}
	start, err := b.Commit(ctx, commitID)
	if err != nil {
		return nil, newNotFound(spec)
	}

	var found *object.Commit
	if err := object.ForEachFirstParent(ctx, b, start, func(c *object.Commit) error {
		if re.MatchString(c.Message) {
			found = c
			return plumbing.ErrStop
		}
		return nil
	}); err != nil {
		return nil, newNotFound(spec)
	}
	if found == nil {
		return nil, newNotFound(spec)
	}
	return &Result{ID: found.Hash, Kind: object.CommitKind, Ref: res.Ref}, nil
}

// searchCommitMessageAllTips implements the bare `:/regex` form: unlike
// `^{/regex}` and `<rev>:/regex`, which search only the already-resolved
// Base's history, a spec that begins with `:/` has no base at all and
// instead searches from every reference's tip (spec.md §4.G/§4.I), taking
// the newest match across all of them.
func searchCommitMessageAllTips(ctx context.Context, b Backend, pattern, spec string) (*Result, error) {
	if pattern == "" {
		return nil, newInvalid(spec, "empty commit message search pattern")
	}
	re, err := regexp.CompilePOSIX(pattern)
	if err != nil {
		return nil, newRegexInvalid(spec, pattern)
	}

	tips, err := b.References()
	if err != nil {
		return nil, newNotFound(spec)
	}

	var found *object.Commit
	for _, tip := range tips {
		resolved, err := refs.ReferenceResolve(b, tip.Name())
		if err != nil {
			continue
		}
		_, kind, err := object.AnyObject(ctx, b, resolved.Hash())
		if err != nil {
			continue
		}
		commitID, err := peelForCommitNav(ctx, b, resolved.Hash(), kind, spec)
		if err != nil {
			continue
		}
		start, err := b.Commit(ctx, commitID)
		if err != nil {
			continue
		}

		var tipMatch *object.Commit
		if err := object.ForEachFirstParent(ctx, b, start, func(c *object.Commit) error {
			if re.MatchString(c.Message) {
				tipMatch = c
				return plumbing.ErrStop
			}
			return nil
		}); err != nil {
			continue
		}
		if tipMatch == nil {
			continue
		}
		if found == nil || tipMatch.Committer.When.After(found.Committer.When) {
			found = tipMatch
		}
	}
	if found == nil {
		return nil, newNotFound(spec)
	}
	return &Result{ID: found.Hash, Kind: object.CommitKind}, nil
}

// applyPath implements component H: the `:<path>` suffix. An empty path
// resolves to the tree itself; a lone '/' is taken as an empty
// commit-message search and rejected as Invalid. A path containing ':'
// can never be a valid tree path (the
// earlier colon already delimited rev from path). A leading '/' is the
// `<rev>:/regex` commit-message search instead of a tree descent; the
// bare `:/regex` form (no rev at all) is intercepted by ResolveExt before
// applyPath is ever called.
func applyPath(ctx context.Context, b Backend, res *Result, path, spec string) (*Result, error) {
	if strings.HasPrefix(path, "/") {
		return searchCommitMessage(ctx, b, res, path[1:], spec)
	}
	if strings.Contains(path, ":") {
		return nil, newInvalid(spec, "malformed tree path")
	}

	forceDir := strings.HasSuffix(path, "/") && path != "/"
	trimmed := strings.TrimSuffix(path, "/")

	treeID, _, err := assertKind(ctx, b, res.ID, res.Kind, object.TreeKind, spec)
	if err != nil {
		return nil, err
	}
	root, err := b.Tree(ctx, treeID)
	if err != nil {
		return nil, newNotFound(spec)
	}
	root.SetBackend(b)

	if trimmed == "" {
		return &Result{ID: treeID, Kind: object.TreeKind}, nil
	}

	entry, err := root.FindEntry(ctx, trimmed)
	if err != nil {
		return nil, newNotFound(spec)
	}
	if entry.IsDir() {
		return &Result{ID: entry.Hash, Kind: object.TreeKind}, nil
	}
	if forceDir {
		return nil, newNotFound(spec)
	}
	return &Result{ID: entry.Hash, Kind: object.BlobKind}, nil
}
