// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package object

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/nexthash/revspec/plumbing"
)

// ExtraHeader is a key/value pair stored as an ordered slice (not a map) so
// that an encode/decode round trip preserves header order byte-for-byte.
type ExtraHeader struct {
	K string
	V string
}

// Commit is the object kind component B (history navigation) and component
// D (reflog ordinal) walk over, and component H descends into via Tree.
type Commit struct {
	Hash         plumbing.Hash   `json:"hash"`
	Author       Signature       `json:"author"`
	Committer    Signature       `json:"committer"`
	Parents      []plumbing.Hash `json:"parents"`
	Tree         plumbing.Hash   `json:"tree"`
	ExtraHeaders []*ExtraHeader  `json:"-"`
	Message      string          `json:"message"`
}

// NumParents returns how many parents c has (0 for a root commit).
func (c *Commit) NumParents() int {
	return len(c.Parents)
}

// Parent returns the i-th parent id (1-indexed to match the `^n` grammar of
// spec.md §4.C) and whether it exists.
func (c *Commit) Parent(n int) (plumbing.Hash, bool) {
	if n < 1 || n > len(c.Parents) {
		return plumbing.ZeroHash, false
	}
	return c.Parents[n-1], true
}

// IsMerge reports whether c has more than one parent.
func (c *Commit) IsMerge() bool {
	return len(c.Parents) > 1
}

// Encode renders c in the text header format: "tree", "parent"*, "author",
// "committer", any extra headers, a blank line, then the message.
func (c *Commit) Encode() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "tree %s\n", c.Tree.String())
	for _, p := range c.Parents {
		fmt.Fprintf(&buf, "parent %s\n", p.String())
	}
	fmt.Fprintf(&buf, "author %s\ncommitter %s\n", c.Author.String(), c.Committer.String())
	for _, hdr := range c.ExtraHeaders {
		fmt.Fprintf(&buf, "%s %s\n", hdr.K, strings.ReplaceAll(hdr.V, "\n", "\n "))
	}
	fmt.Fprintf(&buf, "\n%s", c.Message)
	return buf.Bytes()
}

// Decode parses the text header format produced by Encode, setting c.Hash
// to oid. Unrecognized header lines are preserved verbatim as ExtraHeaders
// so re-encoding is lossless.
func (c *Commit) Decode(oid plumbing.Hash, data []byte) error {
	c.Hash = oid
	r := bufio.NewReader(bytes.NewReader(data))
	var message strings.Builder
	finishedHeaders := false
	for {
		line, readErr := r.ReadString('\n')
		if readErr != nil && line == "" {
			break
		}
		text := strings.TrimSuffix(line, "\n")
		if finishedHeaders {
			message.WriteString(text)
			if readErr == nil {
				message.WriteByte('\n')
			}
			if readErr != nil {
				break
			}
			continue
		}
		if text == "" {
			finishedHeaders = true
			if readErr != nil {
				break
			}
			continue
		}
		key, value, ok := strings.Cut(text, " ")
		if !ok {
			if readErr != nil {
				break
			}
			continue
		}
		switch key {
		case "tree":
			c.Tree = plumbing.NewHash(value)
		case "parent":
			c.Parents = append(c.Parents, plumbing.NewHash(value))
		case "author":
			c.Author.Decode([]byte(value))
		case "committer":
			c.Committer.Decode([]byte(value))
		default:
			c.ExtraHeaders = append(c.ExtraHeaders, &ExtraHeader{K: key, V: value})
		}
		if readErr != nil {
			break
		}
	}
	c.Message = message.String()
	return nil
}
