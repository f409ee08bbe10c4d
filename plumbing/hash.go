// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package plumbing

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"hash"
	"sort"
)

const (
	HashSize    = sha1.Size
	HashHexSize = HashSize * 2
)

// Hash is a SHA-1 object id, the identifier of every object in the ODB.
type Hash [HashSize]byte

// ZeroHash is the Hash with value zero.
var ZeroHash Hash

// NewHash returns a new Hash from a hexadecimal representation. Malformed
// input decodes to a best-effort (possibly short) byte sequence; callers
// that need to reject bad input should call ValidateHashHex first.
func NewHash(s string) Hash {
	b, _ := hex.DecodeString(s)
	var h Hash
	copy(h[:], b)
	return h
}

// NewHashEx validates s is exactly 40 hex characters before decoding it.
func NewHashEx(s string) (Hash, bool) {
	if !ValidateHashHex(s) {
		return ZeroHash, false
	}
	return NewHash(s), true
}

func (h Hash) IsZero() bool {
	return h == ZeroHash
}

func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

func (h Hash) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

func (h *Hash) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*h = NewHash(s)
	return nil
}

func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *Hash) UnmarshalText(text []byte) error {
	*h = NewHash(string(text))
	return nil
}

// Hasher wraps a running SHA-1 digest; odb's store feeds it an object's
// payload to compute the object's id before writing it.
type Hasher struct {
	hash.Hash
}

func NewHasher() Hasher {
	return Hasher{Hash: sha1.New()}
}

func (h Hasher) Sum() (oid Hash) {
	copy(oid[:], h.Hash.Sum(nil))
	return
}

// HashesSort sorts a slice of Hashes in increasing order.
func HashesSort(a []Hash) {
	sort.Sort(HashSlice(a))
}

type HashSlice []Hash

func (p HashSlice) Len() int           { return len(p) }
func (p HashSlice) Less(i, j int) bool { return bytes.Compare(p[i][:], p[j][:]) < 0 }
func (p HashSlice) Swap(i, j int)      { p[i], p[j] = p[j], p[i] }

var reverseHexTable = [256]byte{}

func init() {
	for i := range reverseHexTable {
		reverseHexTable[i] = 0xff
	}
	for i := byte(0); i <= 9; i++ {
		reverseHexTable['0'+i] = i
	}
	for i := byte(0); i <= 5; i++ {
		reverseHexTable['a'+i] = 10 + i
		reverseHexTable['A'+i] = 10 + i
	}
}

// ValidateHashHex reports whether s is exactly HashHexSize hex characters.
func ValidateHashHex(s string) bool {
	if len(s) != HashHexSize {
		return false
	}
	for i := 0; i < len(s); i++ {
		if reverseHexTable[s[i]] == 0xff {
			return false
		}
	}
	return true
}

// ValidateHashPrefix reports whether s is a syntactically valid abbreviated
// object id: 1-40 hex characters. Length bounds beyond "nonzero" are a
// concern of the caller (spec.md §4.A rejects prefixes shorter than 4).
func ValidateHashPrefix(s string) bool {
	if len(s) == 0 || len(s) > HashHexSize {
		return false
	}
	for i := 0; i < len(s); i++ {
		if reverseHexTable[s[i]] == 0xff {
			return false
		}
	}
	return true
}

// HasHexPrefix reports whether h's hex representation starts with prefix
// (case-insensitive already normalized by the caller to lowercase).
func (h Hash) HasHexPrefix(prefix string) bool {
	full := h.String()
	return len(prefix) <= len(full) && full[:len(prefix)] == prefix
}
