// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package reflog implements the ordinal (`@{n}`) and time-window
// (`@{<date>}`) reflog lookups of component D, plus the previous-checkout
// shorthand (`@{-n}`) of component D's sibling grammar.
package reflog

import (
	"errors"
	"strings"

	"github.com/nexthash/revspec/object"
	"github.com/nexthash/revspec/plumbing"
)

// Entry is one reflog line: the hash before (O) and after (N) the update,
// who made it, and the recorded message (e.g. "commit", "checkout: moving
// from a to b", "clone: from ...").
type Entry struct {
	O, N      plumbing.Hash
	Committer object.Signature
	Message   string
}

// Entries is ordered newest-first, matching the indexing convention of
// `@{n}` (n=0 is the current value). The on-disk log in package odb is
// stored oldest-first and reversed on read.
type Entries []*Entry

var ErrUnparsableReflogLine = errors.New("unparsable reflog line")

// ParseEntry parses a single reflog line of the form
// "<old> <new> <committer signature>\t<message>".
func ParseEntry(line string) (*Entry, error) {
	pos := strings.IndexByte(line, ' ')
	if pos == -1 {
		return nil, ErrUnparsableReflogLine
	}
	o := line[:pos]
	line = line[pos+1:]
	if pos = strings.IndexByte(line, ' '); pos == -1 {
		return nil, ErrUnparsableReflogLine
	}
	n := line[:pos]
	line = line[pos+1:]

	var message string
	signature := line
	if pos = strings.IndexByte(line, '\t'); pos != -1 {
		message = line[pos+1:]
		signature = line[:pos]
	}
	e := &Entry{O: plumbing.NewHash(o), N: plumbing.NewHash(n), Message: message}
	e.Committer.Decode([]byte(signature))
	return e, nil
}

// Reader is the reflog collaborator contract (spec.md §1, §6): fetch the
// ordered entries for a reference, and fetch the ordered history of
// checkouts (for `@{-n}`). Persistence (file locking, pruning, rewriting)
// is explicitly out of scope here — it lives in package odb, which is the
// one concrete implementation of this interface.
type Reader interface {
	// Reflog returns name's reflog entries, newest first.
	Reflog(name plumbing.ReferenceName) (Entries, error)
	// Checkouts returns the ordered history of HEAD checkouts, newest
	// first, for `@{-n}` (spec.md §4.D's "previous branch" shorthand).
	Checkouts() ([]CheckoutEntry, error)
}

// CheckoutEntry is one entry in the checkout history `@{-n}` walks: the
// reference name that was checked out, and the id it pointed to at that
// moment (so that `@{-n}@{m}` chaining, per spec.md §8, can resolve
// against the right (id, kind, refname) triple).
type CheckoutEntry struct {
	Name plumbing.ReferenceName
	Hash plumbing.Hash
}

// AtOrdinal returns the value the reference had n updates ago: n=0 is its
// current (newest) value, n=1 is the value just before the most recent
// update, and so on. entries must be newest-first, the order Reader
// returns them in. Reports false if n is out of range.
func AtOrdinal(entries Entries, n int) (plumbing.Hash, bool) {
	if n < 0 || n >= len(entries) {
		return plumbing.ZeroHash, false
	}
	return entries[n].N, true
}
