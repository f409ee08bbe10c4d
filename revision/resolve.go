// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package revision

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/nexthash/revspec/dateparse"
	"github.com/nexthash/revspec/object"
	"github.com/nexthash/revspec/plumbing"
	"github.com/nexthash/revspec/reflog"
	"github.com/nexthash/revspec/refs"
)

// Result is the full outcome of resolving a revision expression: the
// object id, its kind, and (when the resolution is still anchored to a
// live reference) the reference name, which subsequent chained operators
// such as `@{upstream}` or a further `@{n}` consume.
type Result struct {
	ID   plumbing.Hash
	Kind object.Kind
	Ref  plumbing.ReferenceName
}

// Resolve parses and evaluates spec against b, returning only the final
// object id. It is the common case; ResolveExt exposes the full Result
// for callers that need the resolved kind or reference.
func Resolve(ctx context.Context, b Backend, spec string) (plumbing.Hash, error) {
	r, err := ResolveExt(ctx, b, spec)
	if err != nil {
		return plumbing.ZeroHash, err
	}
	return r.ID, nil
}

// ResolveExt is the component I entry point: lex spec, resolve its Base,
// then fold each suffix operator left to right over the running Result.
func ResolveExt(ctx context.Context, b Backend, spec string) (*Result, error) {
	l, err := lex(spec)
	if err != nil {
		return nil, err
	}

	res, err := resolveBase(ctx, b, l.base, spec)
	if err != nil {
		return nil, err
	}

	for i, o := range l.ops {
		res, err = applyOp(ctx, b, res, o, i, spec)
		if err != nil {
			return nil, err
		}
	}

	if l.pathSet {
		if l.base == "" && len(l.ops) == 0 && strings.HasPrefix(l.path, "/") {
			res, err = searchCommitMessageAllTips(ctx, b, l.path[1:], spec)
		} else {
			res, err = applyPath(ctx, b, res, l.path, spec)
		}
		if err != nil {
			return nil, err
		}
	}

	return res, nil
}

// resolveBase implements components A, B, and F together: an empty base
// means HEAD; a DWIM reference lookup is tried before an abbreviated
// object id (a ref named exactly "e90810b" wins over the object-id prefix
// "e908..."); a full 40-character hex string is always a literal id.
func resolveBase(ctx context.Context, b Backend, base, spec string) (*Result, error) {
	if base == "" {
		headRef, err := b.Reference(plumbing.HEAD)
		if err != nil {
			return nil, newNotFound(spec)
		}
		branch := plumbing.ReferenceName("")
		if headRef.Type() == plumbing.SymbolicReference {
			branch = headRef.Target()
		}
		resolved, err := refs.ReferenceResolve(b, plumbing.HEAD)
		if err != nil {
			return nil, newNotFound(spec)
		}
		return fetchKind(ctx, b, resolved.Hash(), branch, spec)
	}

	if plumbing.ValidateHashHex(base) {
		return fetchKind(ctx, b, plumbing.NewHash(base), "", spec)
	}

	if ref, full, err := refs.Dwim(b, base); err == nil {
		return fetchKind(ctx, b, ref.Hash(), full, spec)
	}

	if plumbing.ValidateHashPrefix(base) {
		id, err := b.ResolvePrefix(ctx, base)
		if err != nil {
			if IsAmbiguous(err) {
				return nil, err
			}
			return nil, newNotFound(spec)
		}
		return fetchKind(ctx, b, id, "", spec)
	}

	return nil, newNotFound(spec)
}

func fetchKind(ctx context.Context, b Backend, id plumbing.Hash, ref plumbing.ReferenceName, spec string) (*Result, error) {
	_, kind, err := object.AnyObject(ctx, b, id)
	if err != nil {
		return nil, newNotFound(spec)
	}
	return &Result{ID: id, Kind: kind, Ref: ref}, nil
}

func applyOp(ctx context.Context, b Backend, res *Result, o op, index int, spec string) (*Result, error) {
	switch o.kind {
	case opCaret:
		if o.hasBrace {
			return applyCaretBrace(ctx, b, res, o.brace, spec)
		}
		return applyCaret(ctx, b, res, o.num, spec)
	case opTilde:
		return applyTilde(ctx, b, res, o.num, spec)
	case opAt:
		return applyAt(ctx, b, res, o.brace, index, spec)
	default:
		return nil, newInvalid(spec, "unknown operator")
	}
}

func applyCaret(ctx context.Context, b Backend, res *Result, n int, spec string) (*Result, error) {
	commitID, err := peelForCommitNav(ctx, b, res.ID, res.Kind, spec)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return &Result{ID: commitID, Kind: object.CommitKind, Ref: res.Ref}, nil
	}
	c, err := b.Commit(ctx, commitID)
	if err != nil {
		return nil, newNotFound(spec)
	}
	parent, ok := c.Parent(n)
	if !ok {
		return nil, newNotFound(spec)
	}
	return &Result{ID: parent, Kind: object.CommitKind, Ref: res.Ref}, nil
}

func applyTilde(ctx context.Context, b Backend, res *Result, n int, spec string) (*Result, error) {
	commitID, err := peelForCommitNav(ctx, b, res.ID, res.Kind, spec)
	if err != nil {
		return nil, err
	}
	cur := commitID
	for i := 0; i < n; i++ {
		c, err := b.Commit(ctx, cur)
		if err != nil {
			return nil, newNotFound(spec)
		}
		parent, ok := c.Parent(1)
		if !ok {
			return nil, newNotFound(spec)
		}
		cur = parent
	}
	return &Result{ID: cur, Kind: object.CommitKind, Ref: res.Ref}, nil
}

func applyCaretBrace(ctx context.Context, b Backend, res *Result, content, spec string) (*Result, error) {
	switch {
	case content == "":
		id, kind, err := dereference(ctx, b, res.ID, res.Kind)
		if err != nil {
			return nil, err
		}
		return &Result{ID: id, Kind: kind, Ref: res.Ref}, nil
	case strings.HasPrefix(content, "/"):
		return searchCommitMessage(ctx, b, res, content[1:], spec)
	default:
		target := object.KindFromString(content)
		if target == object.InvalidKind {
			return nil, newInvalidKindKeyword(spec, content)
		}
		id, kind, err := assertKind(ctx, b, res.ID, res.Kind, target, spec)
		if err != nil {
			return nil, err
		}
		return &Result{ID: id, Kind: kind, Ref: res.Ref}, nil
	}
}

func applyAt(ctx context.Context, b Backend, res *Result, content string, index int, spec string) (*Result, error) {
	switch {
	case content == "upstream" || content == "u":
		return applyUpstream(ctx, b, res, spec)
	case strings.HasPrefix(content, "-"):
		if index != 0 {
			return nil, newNotFound(spec)
		}
		return applyPreviousCheckout(ctx, b, content, spec)
	case isAllDigits(content) && len(content) <= 7:
		// Longer all-digit bodies are Unix timestamps, not ordinals: no
		// reflog has millions of entries, but a timestamp always does.
		return applyOrdinal(ctx, b, res, content, spec)
	default:
		return applyDate(ctx, b, res, content, spec)
	}
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

func applyUpstream(ctx context.Context, b Backend, res *Result, spec string) (*Result, error) {
	if res.Ref == "" || !res.Ref.IsBranch() {
		return nil, newUpstreamUnconfigured(spec, string(res.Ref))
	}
	branch := res.Ref.BranchName()
	target, err := b.Upstream(branch)
	if err != nil {
		return nil, newUpstreamUnconfigured(spec, branch)
	}
	ref, err := refs.ReferenceResolve(b, plumbing.ReferenceName(target))
	if err != nil {
		return nil, newUpstreamUnconfigured(spec, branch)
	}
	return fetchKind(ctx, b, ref.Hash(), plumbing.ReferenceName(target), spec)
}

func applyPreviousCheckout(ctx context.Context, b Backend, content, spec string) (*Result, error) {
	if content == "-0" {
		return nil, newInvalid(spec, "\"@{-0}\" is not a valid previous-checkout reference")
	}
	rest := content[1:]
	if !isAllDigits(rest) {
		return nil, newInvalid(spec, "malformed @{-n} expression")
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 1 {
		return nil, newInvalid(spec, "malformed @{-n} expression")
	}
	checkouts, err := b.Checkouts()
	if err != nil {
		return nil, newNotFound(spec)
	}
	idx := n - 1
	if idx >= len(checkouts) {
		return nil, newNotFound(spec)
	}
	entry := checkouts[idx]
	return fetchKind(ctx, b, entry.Hash, entry.Name, spec)
}

func applyOrdinal(ctx context.Context, b Backend, res *Result, content, spec string) (*Result, error) {
	if res.Ref == "" {
		return nil, newNotFound(spec)
	}
	n, err := strconv.Atoi(content)
	if err != nil {
		return nil, newInvalid(spec, "malformed @{n} expression")
	}
	entries, err := b.Reflog(res.Ref)
	if err != nil {
		return nil, newNotFound(spec)
	}
	id, ok := reflog.AtOrdinal(entries, n)
	if !ok {
		return nil, newNotFound(spec)
	}
	return fetchKind(ctx, b, id, "", spec)
}

func applyDate(ctx context.Context, b Backend, res *Result, content, spec string) (*Result, error) {
	t, err := dateparse.Parse(content, time.Now())
	if err != nil {
		return nil, newInvalid(spec, "malformed date expression")
	}
	if res.Ref == "" {
		return nil, newNotFound(spec)
	}
	entries, err := b.Reflog(res.Ref)
	if err != nil {
		return nil, newNotFound(spec)
	}
	id, ok := reflog.AtDate(entries, t)
	if !ok {
		return nil, newNotFound(spec)
	}
	return fetchKind(ctx, b, id, "", spec)
}
