package plumbing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashRoundTrip(t *testing.T) {
	hex := "a65fedf39aefe402d3bb6e24df4d4f5fe4547750"
	h := NewHash(hex)
	require.Equal(t, hex, h.String())
	require.False(t, h.IsZero())
}

func TestNewHashExRejectsShortOrMalformed(t *testing.T) {
	_, ok := NewHashEx("a65f")
	require.False(t, ok)

	_, ok = NewHashEx("zzzzedf39aefe402d3bb6e24df4d4f5fe4547750")
	require.False(t, ok)

	h, ok := NewHashEx("a65fedf39aefe402d3bb6e24df4d4f5fe4547750")
	require.True(t, ok)
	require.Equal(t, "a65fedf39aefe402d3bb6e24df4d4f5fe4547750", h.String())
}

func TestValidateHashPrefix(t *testing.T) {
	require.True(t, ValidateHashPrefix("e90"))
	require.True(t, ValidateHashPrefix("e908"))
	require.False(t, ValidateHashPrefix(""))
	require.False(t, ValidateHashPrefix("zz"))
	require.False(t, ValidateHashPrefix("a65fedf39aefe402d3bb6e24df4d4f5fe45477500"))
}

func TestHasHexPrefix(t *testing.T) {
	h := NewHash("e90810b8df3e80c413d903f631643c716887138d")
	require.True(t, h.HasHexPrefix("e908"))
	require.True(t, h.HasHexPrefix("e90810b8df3e80c413d903f631643c716887138d"))
	require.False(t, h.HasHexPrefix("e909"))
}

func TestHashesSort(t *testing.T) {
	a := NewHash("bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
	b := NewHash("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	hs := []Hash{a, b}
	HashesSort(hs)
	require.Equal(t, b, hs[0])
	require.Equal(t, a, hs[1])
}

func TestHasherSumMatchesKnownSHA1(t *testing.T) {
	h := NewHasher()
	h.Write([]byte("hello world\n"))
	require.Equal(t, "22596363b3de40b06f981fb85d82312e8c0ed511", h.Sum().String())
}

func TestHashJSONRoundTrip(t *testing.T) {
	h := NewHash("a65fedf39aefe402d3bb6e24df4d4f5fe4547750")
	b, err := h.MarshalJSON()
	require.NoError(t, err)

	var decoded Hash
	require.NoError(t, decoded.UnmarshalJSON(b))
	require.Equal(t, h, decoded)
}
