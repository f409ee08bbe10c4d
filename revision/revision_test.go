// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package revision

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nexthash/revspec/config"
	"github.com/nexthash/revspec/object"
	"github.com/nexthash/revspec/plumbing"
	"github.com/nexthash/revspec/reflog"
)

// Fixture object ids. Values are plain 40-hex strings chosen to look like
// real object ids; they are assigned directly rather than computed, since
// this resolver never hashes an object's own encoding.
const (
	hRoot          = "5b5b025afb0b4c913b4c338a42934a3863bf3644"
	hFeatureTip    = "9fd738e8f7967c078dceed8190330fc8648ee56a" // merge parent 1
	hOtherTip      = "c47800c7266a2be04c571c04d5a6614691ea7e9c" // merge parent 2
	hMergeCommit   = "be3563ae3f795b2b4353bcce3a527ad0a4f7f644" // master's previous value
	hMasterTip     = "a65fedf39aefe402d3bb6e24df4d4f5fe4547750" // master's current value
	hAmbiguousA    = "e90810b8df3e80c413d903f631643c716887138d"
	hAmbiguousB    = "e90aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	hTreeRoot      = "f60079018b664e4e79329a7ef9559c8d9e0378d1"
	hTreeSub       = "0ba3b4e466cbb2c77a7c12a08e49e8da6bdc0e10"
	hBlobReadme    = "3e7077fd0d2de6d071ab506a2b6fa3c1cd1a1eaa"
	hBlobNested    = "2211774978d2493e851f9cca7858815fac9b1098"
	hTagV1         = "7b4384978d2493e851f9cca7858815fac9b10980" // annotated tag -> hRoot
	hTagWrapped    = "524a2d9d0a8c85e3c9e99e83e7bad342bd6b57c1" // annotated tag -> hTagV1
	hRemoteOrigin  = hFeatureTip                                // pretend upstream points at the feature tip
	hOrphanTip     = "1a2b3c4d5e6f7a8b9c0d1e2f3a4b5c6d7e8f9a0b" // unreachable from master's history
)

func h(s string) plumbing.Hash { return plumbing.NewHash(s) }

func sig(name string, unix int64) object.Signature {
	return object.Signature{Name: name, Email: name + "@example.com", When: time.Unix(unix, 0).In(time.UTC)}
}

// fixtureBackend wires together every collaborator interface Backend
// requires with an in-memory object graph modeled on a small two-branch
// history merged into master, an annotated tag wrapping another annotated
// tag, a two-level tree, and reflogs for master, a feature branch, and a
// remote-tracking ref.
type fixtureBackend struct {
	commits map[plumbing.Hash]*object.Commit
	trees   map[plumbing.Hash]*object.Tree
	blobs   map[plumbing.Hash]*object.Blob
	tags    map[plumbing.Hash]*object.Tag

	refs map[plumbing.ReferenceName]*plumbing.Reference
	head *plumbing.Reference

	reflogs   map[plumbing.ReferenceName]reflog.Entries
	checkouts []reflog.CheckoutEntry

	*config.Config
}

func newFixtureBackend() *fixtureBackend {
	b := &fixtureBackend{
		commits: make(map[plumbing.Hash]*object.Commit),
		trees:   make(map[plumbing.Hash]*object.Tree),
		blobs:   make(map[plumbing.Hash]*object.Blob),
		tags:    make(map[plumbing.Hash]*object.Tag),
		refs:    make(map[plumbing.ReferenceName]*plumbing.Reference),
		reflogs: make(map[plumbing.ReferenceName]reflog.Entries),
		Config:  &config.Config{Branches: map[string]*config.Branch{}},
	}

	nested := &object.TreeEntry{Name: "nested.txt", Mode: object.ModeRegular, Hash: h(hBlobNested)}
	subTree := object.NewTree([]*object.TreeEntry{nested})
	subTree.Hash = h(hTreeSub)
	b.trees[h(hTreeSub)] = subTree

	root := object.NewTree([]*object.TreeEntry{
		{Name: "README", Mode: object.ModeRegular, Hash: h(hBlobReadme)},
		{Name: "sub", Mode: object.ModeDir, Hash: h(hTreeSub)},
	})
	root.Hash = h(hTreeRoot)
	b.trees[h(hTreeRoot)] = root

	b.blobs[h(hBlobReadme)] = &object.Blob{Hash: h(hBlobReadme), Size: 5, Data: []byte("hi\n")}
	b.blobs[h(hBlobNested)] = &object.Blob{Hash: h(hBlobNested), Size: 5, Data: []byte("yo\n")}

	b.commits[h(hRoot)] = &object.Commit{
		Hash: h(hRoot), Tree: h(hTreeRoot),
		Author: sig("root", 1335806000), Committer: sig("root", 1335806000),
		Message: "initial commit\n",
	}
	b.commits[h(hFeatureTip)] = &object.Commit{
		Hash: h(hFeatureTip), Tree: h(hTreeRoot), Parents: []plumbing.Hash{h(hRoot)},
		Author: sig("dev", 1335806100), Committer: sig("dev", 1335806100),
		Message: "work on feature\n",
	}
	b.commits[h(hOtherTip)] = &object.Commit{
		Hash: h(hOtherTip), Tree: h(hTreeRoot), Parents: []plumbing.Hash{h(hRoot)},
		Author: sig("dev2", 1335806150), Committer: sig("dev2", 1335806150),
		Message: "work on another branch\n",
	}
	b.commits[h(hMergeCommit)] = &object.Commit{
		Hash: h(hMergeCommit), Tree: h(hTreeRoot), Parents: []plumbing.Hash{h(hFeatureTip), h(hOtherTip)},
		Author: sig("dev", 1335806563), Committer: sig("dev", 1335806563),
		Message: "Merge branches into master\n",
	}
	b.commits[h(hMasterTip)] = &object.Commit{
		Hash: h(hMasterTip), Tree: h(hTreeRoot), Parents: []plumbing.Hash{h(hMergeCommit)},
		Author: sig("dev", 1335806603), Committer: sig("dev", 1335806603),
		Message: "release notes\n",
	}
	b.commits[h(hAmbiguousA)] = &object.Commit{
		Hash: h(hAmbiguousA), Tree: h(hTreeRoot), Parents: []plumbing.Hash{h(hRoot)},
		Author: sig("dev3", 1335806200), Committer: sig("dev3", 1335806200),
		Message: "ambiguous-prefix object A\n",
	}
	b.commits[h(hAmbiguousB)] = &object.Commit{
		Hash: h(hAmbiguousB), Tree: h(hTreeRoot), Parents: []plumbing.Hash{h(hRoot)},
		Author: sig("dev4", 1335806210), Committer: sig("dev4", 1335806210),
		Message: "ambiguous-prefix object B\n",
	}
	b.commits[h(hOrphanTip)] = &object.Commit{
		Hash: h(hOrphanTip), Tree: h(hTreeRoot),
		Author: sig("dev5", 1335806300), Committer: sig("dev5", 1335806300),
		Message: "disjoint orphan branch work\n",
	}

	b.tags[h(hTagV1)] = &object.Tag{Hash: h(hTagV1), Object: h(hRoot), ObjectKind: object.CommitKind, Name: "v1.0", Tagger: sig("dev", 1335806050)}
	b.tags[h(hTagWrapped)] = &object.Tag{Hash: h(hTagWrapped), Object: h(hTagV1), ObjectKind: object.TagKind, Name: "v1.0-wrapped", Tagger: sig("dev", 1335806060)}

	b.refs[plumbing.HEAD] = plumbing.NewSymbolicReference(plumbing.HEAD, plumbing.NewBranchReferenceName("master"))
	b.refs[plumbing.NewBranchReferenceName("master")] = plumbing.NewHashReference(plumbing.NewBranchReferenceName("master"), h(hMasterTip))
	b.refs[plumbing.NewBranchReferenceName("feature")] = plumbing.NewHashReference(plumbing.NewBranchReferenceName("feature"), h(hFeatureTip))
	b.refs[plumbing.NewTagReferenceName("v1.0")] = plumbing.NewHashReference(plumbing.NewTagReferenceName("v1.0"), h(hTagWrapped))
	b.refs[plumbing.NewRemoteReferenceName("origin", "master")] = plumbing.NewHashReference(plumbing.NewRemoteReferenceName("origin", "master"), h(hRemoteOrigin))
	// A ref literally named like an object-id prefix: DWIM must win over abbreviation.
	b.refs[plumbing.ReferenceName("e90810b")] = plumbing.NewHashReference(plumbing.ReferenceName("e90810b"), h(hTagV1))
	// A branch sharing no history with master, reachable only as its own tip.
	b.refs[plumbing.NewBranchReferenceName("orphan")] = plumbing.NewHashReference(plumbing.NewBranchReferenceName("orphan"), h(hOrphanTip))

	b.reflogs[plumbing.NewBranchReferenceName("master")] = reflog.Entries{
		{O: h(hMergeCommit), N: h(hMasterTip), Committer: sig("dev", 1335806603), Message: "commit: release notes"},
		{O: h(hFeatureTip), N: h(hMergeCommit), Committer: sig("dev", 1335806563), Message: "commit (merge): Merge branches"},
	}
	b.reflogs[plumbing.NewBranchReferenceName("feature")] = reflog.Entries{
		{O: h(hRoot), N: h(hFeatureTip), Committer: sig("dev", 1335806100), Message: "commit: work on feature"},
	}
	b.reflogs[plumbing.NewRemoteReferenceName("origin", "master")] = reflog.Entries{
		{O: plumbing.ZeroHash, N: h(hRemoteOrigin), Committer: sig("dev", 1335806050), Message: "fetch origin"},
	}

	b.checkouts = []reflog.CheckoutEntry{
		{Name: plumbing.NewBranchReferenceName("feature"), Hash: h(hFeatureTip)},
		{Name: plumbing.NewBranchReferenceName("master"), Hash: h(hMergeCommit)},
	}

	b.Config.Branches["master"] = &config.Branch{Remote: "origin", Merge: "refs/heads/master"}

	return b
}

func (b *fixtureBackend) Commit(_ context.Context, oid plumbing.Hash) (*object.Commit, error) {
	if c, ok := b.commits[oid]; ok {
		return c, nil
	}
	return nil, plumbing.NoSuchObject(oid)
}

func (b *fixtureBackend) Tree(_ context.Context, oid plumbing.Hash) (*object.Tree, error) {
	if t, ok := b.trees[oid]; ok {
		return t, nil
	}
	return nil, plumbing.NoSuchObject(oid)
}

func (b *fixtureBackend) Blob(_ context.Context, oid plumbing.Hash) (*object.Blob, error) {
	if bl, ok := b.blobs[oid]; ok {
		return bl, nil
	}
	return nil, plumbing.NoSuchObject(oid)
}

func (b *fixtureBackend) Tag(_ context.Context, oid plumbing.Hash) (*object.Tag, error) {
	if t, ok := b.tags[oid]; ok {
		return t, nil
	}
	return nil, plumbing.NoSuchObject(oid)
}

func (b *fixtureBackend) HEAD() (*plumbing.Reference, error) { return b.refs[plumbing.HEAD], nil }

func (b *fixtureBackend) Reference(name plumbing.ReferenceName) (*plumbing.Reference, error) {
	if r, ok := b.refs[name]; ok {
		return r, nil
	}
	return nil, plumbing.ErrReferenceNotFound
}

func (b *fixtureBackend) References() ([]*plumbing.Reference, error) {
	out := make([]*plumbing.Reference, 0, len(b.refs))
	for _, r := range b.refs {
		out = append(out, r)
	}
	return out, nil
}

func (b *fixtureBackend) Reflog(name plumbing.ReferenceName) (reflog.Entries, error) {
	if e, ok := b.reflogs[name]; ok {
		return e, nil
	}
	return nil, plumbing.ErrReferenceNotFound
}

func (b *fixtureBackend) Checkouts() ([]reflog.CheckoutEntry, error) { return b.checkouts, nil }

func (b *fixtureBackend) ResolvePrefix(_ context.Context, prefix string) (plumbing.Hash, error) {
	var matches []plumbing.Hash
	for oid := range b.commits {
		if oid.HasHexPrefix(prefix) {
			matches = append(matches, oid)
		}
	}
	for oid := range b.trees {
		if oid.HasHexPrefix(prefix) {
			matches = append(matches, oid)
		}
	}
	for oid := range b.blobs {
		if oid.HasHexPrefix(prefix) {
			matches = append(matches, oid)
		}
	}
	for oid := range b.tags {
		if oid.HasHexPrefix(prefix) {
			matches = append(matches, oid)
		}
	}
	switch len(matches) {
	case 0:
		return plumbing.ZeroHash, plumbing.NoSuchObject(plumbing.NewHash(prefix))
	case 1:
		return matches[0], nil
	default:
		cands := make([]string, len(matches))
		for i, m := range matches {
			cands[i] = m.String()
		}
		return plumbing.ZeroHash, &Error{Kind: Ambiguous, Spec: prefix, Msg: "ambiguous object id prefix", Candidates: cands}
	}
}

func ctx() context.Context { return context.Background() }

func TestResolveBareHeadAndBranches(t *testing.T) {
	b := newFixtureBackend()

	id, err := Resolve(ctx(), b, "HEAD")
	require.NoError(t, err)
	require.Equal(t, h(hMasterTip), id)

	id, err = Resolve(ctx(), b, "master")
	require.NoError(t, err)
	require.Equal(t, h(hMasterTip), id)

	id, err = Resolve(ctx(), b, "feature")
	require.NoError(t, err)
	require.Equal(t, h(hFeatureTip), id)
}

func TestResolveFullHexIsLiteral(t *testing.T) {
	b := newFixtureBackend()
	id, err := Resolve(ctx(), b, hMergeCommit)
	require.NoError(t, err)
	require.Equal(t, h(hMergeCommit), id)
}

func TestResolveAbbreviatedPrefix(t *testing.T) {
	b := newFixtureBackend()

	// "e9081" is long enough to be unambiguous once the literal ref
	// "e90810b" is out of the running.
	id, err := Resolve(ctx(), b, "e9081")
	require.NoError(t, err)
	require.Equal(t, h(hAmbiguousA), id)

	_, err = Resolve(ctx(), b, "e90")
	require.True(t, IsAmbiguous(err))
}

func TestResolveDwimWinsOverPrefix(t *testing.T) {
	b := newFixtureBackend()
	// "e90810b" is both a literal ref name and an object-id prefix; the
	// reference must win.
	id, err := Resolve(ctx(), b, "e90810b")
	require.NoError(t, err)
	require.Equal(t, h(hTagV1), id)
}

func TestResolveAncestorOperators(t *testing.T) {
	b := newFixtureBackend()

	id, err := Resolve(ctx(), b, "master^")
	require.NoError(t, err)
	require.Equal(t, h(hMergeCommit), id)

	id, err = Resolve(ctx(), b, "master^^2")
	require.NoError(t, err)
	require.Equal(t, h(hOtherTip), id)

	id, err = Resolve(ctx(), b, "master~2")
	require.NoError(t, err)
	require.Equal(t, h(hFeatureTip), id)

	_, err = Resolve(ctx(), b, "master^3")
	require.True(t, IsNotFound(err))
}

func TestResolvePeelAndKindAssertions(t *testing.T) {
	b := newFixtureBackend()

	id, err := Resolve(ctx(), b, "v1.0^{}")
	require.NoError(t, err)
	require.Equal(t, h(hRoot), id)

	id, err = Resolve(ctx(), b, "v1.0^{commit}")
	require.NoError(t, err)
	require.Equal(t, h(hRoot), id)

	id, err = Resolve(ctx(), b, "master^{tree}")
	require.NoError(t, err)
	require.Equal(t, h(hTreeRoot), id)

	id, err = Resolve(ctx(), b, "v1.0^{tag}")
	require.NoError(t, err)
	require.Equal(t, h(hTagWrapped), id)

	_, err = Resolve(ctx(), b, "master^{tag}")
	require.True(t, IsTypeMismatch(err))

	// A tree can never be navigated with an ancestor operator, peeled or not.
	_, err = Resolve(ctx(), b, "master^{tree}^")
	require.True(t, IsInvalid(err))

	_, err = Resolve(ctx(), b, "master^{bogus}")
	require.True(t, IsInvalidKindKeyword(err))
}

func TestResolveCommitMessageSearch(t *testing.T) {
	b := newFixtureBackend()

	id, err := Resolve(ctx(), b, "master^{/Merge}")
	require.NoError(t, err)
	require.Equal(t, h(hMergeCommit), id)

	id, err = Resolve(ctx(), b, "master:/Merge")
	require.NoError(t, err)
	require.Equal(t, h(hMergeCommit), id)

	_, err = Resolve(ctx(), b, "master^{/no-such-message-fragment}")
	require.True(t, IsNotFound(err))

	_, err = Resolve(ctx(), b, "master^{/[}")
	require.True(t, IsRegexInvalid(err))
}

func TestResolveTreePaths(t *testing.T) {
	b := newFixtureBackend()

	id, err := Resolve(ctx(), b, "master:README")
	require.NoError(t, err)
	require.Equal(t, h(hBlobReadme), id)

	id, err = Resolve(ctx(), b, "master:sub")
	require.NoError(t, err)
	require.Equal(t, h(hTreeSub), id)

	id, err = Resolve(ctx(), b, "master:sub/")
	require.NoError(t, err)
	require.Equal(t, h(hTreeSub), id)

	id, err = Resolve(ctx(), b, "master:sub/nested.txt")
	require.NoError(t, err)
	require.Equal(t, h(hBlobNested), id)

	_, err = Resolve(ctx(), b, "master:sub/nested.txt/")
	require.True(t, IsNotFound(err))

	_, err = Resolve(ctx(), b, "master:nope")
	require.True(t, IsNotFound(err))
}

func TestResolveReflogOrdinals(t *testing.T) {
	b := newFixtureBackend()

	id, err := Resolve(ctx(), b, "master@{0}")
	require.NoError(t, err)
	require.Equal(t, h(hMasterTip), id)

	id, err = Resolve(ctx(), b, "master@{1}")
	require.NoError(t, err)
	require.Equal(t, h(hMergeCommit), id)

	// Ordinal lookups are one-shot: a second ordinal after the first has
	// nothing left to chain against.
	_, err = Resolve(ctx(), b, "master@{0}@{0}")
	require.True(t, IsNotFound(err))
}

func TestResolveReflogDates(t *testing.T) {
	b := newFixtureBackend()

	_, err := Resolve(ctx(), b, "master@{1335806562}")
	require.True(t, IsNotFound(err))

	id, err := Resolve(ctx(), b, "master@{1335806563}")
	require.NoError(t, err)
	require.Equal(t, h(hMergeCommit), id)

	id, err = Resolve(ctx(), b, "master@{1335806602}")
	require.NoError(t, err)
	require.Equal(t, h(hMergeCommit), id)

	id, err = Resolve(ctx(), b, "master@{1335806603}")
	require.NoError(t, err)
	require.Equal(t, h(hMasterTip), id)
}

func TestResolveUpstream(t *testing.T) {
	b := newFixtureBackend()

	id, err := Resolve(ctx(), b, "master@{u}")
	require.NoError(t, err)
	require.Equal(t, h(hRemoteOrigin), id)

	id, err = Resolve(ctx(), b, "@{u}")
	require.NoError(t, err)
	require.Equal(t, h(hRemoteOrigin), id)

	id, err = Resolve(ctx(), b, "master@{u}@{0}")
	require.NoError(t, err)
	require.Equal(t, h(hRemoteOrigin), id)

	_, err = Resolve(ctx(), b, "feature@{u}")
	require.True(t, IsUpstreamUnconfigured(err))
}

func TestResolvePreviousCheckout(t *testing.T) {
	b := newFixtureBackend()

	id, err := Resolve(ctx(), b, "@{-1}")
	require.NoError(t, err)
	require.Equal(t, h(hFeatureTip), id)

	id, err = Resolve(ctx(), b, "@{-2}")
	require.NoError(t, err)
	require.Equal(t, h(hMergeCommit), id)

	_, err = Resolve(ctx(), b, "@{-3}")
	require.True(t, IsNotFound(err))

	_, err = Resolve(ctx(), b, "@{-0}")
	require.True(t, IsInvalid(err))

	// @{-n} is only valid as the very first operator.
	_, err = Resolve(ctx(), b, "@{u}@{-1}")
	require.True(t, IsNotFound(err))

	_, err = Resolve(ctx(), b, "@{-1}@{-1}")
	require.True(t, IsNotFound(err))

	id, err = Resolve(ctx(), b, "@{-1}@{0}")
	require.NoError(t, err)
	require.Equal(t, h(hFeatureTip), id)
}

func TestResolveMalformedExpressions(t *testing.T) {
	b := newFixtureBackend()

	_, err := Resolve(ctx(), b, "^")
	require.True(t, IsInvalid(err))

	_, err = Resolve(ctx(), b, "this doesn't make sense")
	require.True(t, IsInvalid(err))

	_, err = Resolve(ctx(), b, "")
	require.True(t, IsInvalid(err))

	_, err = Resolve(ctx(), b, ":")
	require.True(t, IsInvalid(err))

	id, err := Resolve(ctx(), b, ":/Merge")
	require.NoError(t, err)
	require.Equal(t, h(hMergeCommit), id)
}

func TestResolveCommitMessageSearchAllTips(t *testing.T) {
	b := newFixtureBackend()

	// Reachable only from HEAD (master)'s own history: still found.
	id, err := Resolve(ctx(), b, ":/Merge")
	require.NoError(t, err)
	require.Equal(t, h(hMergeCommit), id)

	// Reachable only from the "orphan" branch's tip, which shares no
	// history with HEAD: a search anchored solely on the resolved Base
	// would report notfound here.
	id, err = Resolve(ctx(), b, ":/disjoint orphan")
	require.NoError(t, err)
	require.Equal(t, h(hOrphanTip), id)

	_, err = Resolve(ctx(), b, ":/no-such-message-anywhere")
	require.True(t, IsNotFound(err))
}

func TestResolveExtReportsKindAndRef(t *testing.T) {
	b := newFixtureBackend()

	r, err := ResolveExt(ctx(), b, "master")
	require.NoError(t, err)
	require.Equal(t, object.CommitKind, r.Kind)
	require.Equal(t, plumbing.NewBranchReferenceName("master"), r.Ref)

	r, err = ResolveExt(ctx(), b, "master^{tree}")
	require.NoError(t, err)
	require.Equal(t, object.TreeKind, r.Kind)
}
