package object

import (
	"context"
	"testing"

	"github.com/nexthash/revspec/plumbing"
	"github.com/stretchr/testify/require"
)

func TestTreeFindEntryDescends(t *testing.T) {
	b := newMockBackend()

	fileHash := plumbing.NewHash("1f67fc4386b2d171e0d21be1c447e12660561f9b")
	blob := &Blob{Hash: fileHash, Data: []byte("x")}
	b.blobs[fileHash] = blob

	leaf := NewTree([]*TreeEntry{{Name: "1.txt", Mode: ModeRegular, Hash: fileHash}})
	leafHash := plumbing.NewHash("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	leaf.Hash = leafHash
	b.trees[leafHash] = leaf

	mid := NewTree([]*TreeEntry{{Name: "fgh", Mode: ModeDir, Hash: leafHash}})
	midHash := plumbing.NewHash("bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
	mid.Hash = midHash
	b.trees[midHash] = mid

	root := NewTree([]*TreeEntry{{Name: "de", Mode: ModeDir, Hash: midHash}})
	root.SetBackend(b)

	e, err := root.FindEntry(context.Background(), "de/fgh/1.txt")
	require.NoError(t, err)
	require.Equal(t, fileHash, e.Hash)
	require.False(t, e.IsDir())

	_, err = root.FindEntry(context.Background(), "de/nope")
	require.Error(t, err)
	require.True(t, IsErrEntryNotFound(err) || IsErrDirectoryNotFound(err))
}

func TestTreeSelfOnEmptyPath(t *testing.T) {
	root := NewTree(nil)
	got, err := root.Tree(context.Background(), "")
	require.NoError(t, err)
	require.Same(t, root, got)
}

func TestTreeEncodeDecodeRoundTrip(t *testing.T) {
	h := plumbing.NewHash("1f67fc4386b2d171e0d21be1c447e12660561f9b")
	tr := NewTree([]*TreeEntry{
		{Name: "b.txt", Mode: ModeRegular, Hash: h},
		{Name: "a.txt", Mode: ModeRegular, Hash: h},
	})

	var decoded Tree
	require.NoError(t, decoded.Decode(plumbing.ZeroHash, tr.Encode()))
	require.Len(t, decoded.Entries, 2)
	require.Equal(t, "a.txt", decoded.Entries[0].Name)
	require.Equal(t, "b.txt", decoded.Entries[1].Name)
}
