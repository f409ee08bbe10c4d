// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package odb

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/nexthash/revspec/plumbing"
	"github.com/nexthash/revspec/reflog"
)

// checkoutPrefix is git's own reflog message convention for a checkout
// that switches branches: "checkout: moving from <from> to <to>". This
// module reuses that convention rather than inventing a new one, since
// component D's `@{-n}` (spec.md §4.D) is defined in exactly those terms.
const checkoutPrefix = "checkout: moving from "

// ReflogStore is a filesystem reflog.Reader: plain-text log files under
// root/logs/<refname>, one line per update, grounded on
// modules/zeta/reflog/reflog.go's on-disk format (oldest entry first, new
// entries appended) and ParseEntry's field layout, reused directly from
// package reflog rather than re-implemented here.
type ReflogStore struct {
	root string
}

func NewReflogStore(root string) *ReflogStore {
	return &ReflogStore{root: root}
}

func (r *ReflogStore) path(name plumbing.ReferenceName) string {
	return filepath.Join(r.root, "logs", string(name))
}

// readAll parses name's on-disk log, returned oldest-first as stored.
func (r *ReflogStore) readAll(name plumbing.ReferenceName) (reflog.Entries, error) {
	fd, err := os.Open(r.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer fd.Close()

	var entries reflog.Entries
	s := bufio.NewScanner(fd)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}
		e, err := reflog.ParseEntry(line)
		if err != nil {
			continue
		}
		entries = append(entries, e)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// reverse returns entries newest-first: component D's `@{n}`/`@{<date>}`
// both expect that order (spec.md §4.D), while the on-disk log (and git's
// own reflog file format) is append-only, oldest-first.
func reverse(entries reflog.Entries) reflog.Entries {
	out := make(reflog.Entries, len(entries))
	for i, e := range entries {
		out[len(entries)-1-i] = e
	}
	return out
}

// Reflog returns name's entries, newest first.
func (r *ReflogStore) Reflog(name plumbing.ReferenceName) (reflog.Entries, error) {
	entries, err := r.readAll(name)
	if err != nil {
		return nil, err
	}
	return reverse(entries), nil
}

// Append writes a new entry to name's log, used by test fixtures and any
// future command that records a ref update; resolution itself never
// writes.
func (r *ReflogStore) Append(name plumbing.ReferenceName, e *reflog.Entry) error {
	p := r.path(name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	fd, err := os.OpenFile(p, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer fd.Close()
	line := e.O.String() + " " + e.N.String() + " " + e.Committer.String()
	if e.Message != "" {
		line += "\t" + strings.ReplaceAll(e.Message, "\n", " ")
	}
	_, err = fd.WriteString(line + "\n")
	return err
}

// Checkouts implements `@{-n}` (component D's sibling grammar, spec.md
// §4.D): walk HEAD's log newest-first, picking out every entry recording
// a branch switch, and record the branch each switch moved away from
// together with the id HEAD held just before the switch.
func (r *ReflogStore) Checkouts() ([]reflog.CheckoutEntry, error) {
	entries, err := r.Reflog(plumbing.HEAD)
	if err != nil {
		return nil, err
	}
	var checkouts []reflog.CheckoutEntry
	for _, e := range entries {
		from, ok := parseCheckoutSource(e.Message)
		if !ok {
			continue
		}
		checkouts = append(checkouts, reflog.CheckoutEntry{
			Name: plumbing.NewBranchReferenceName(from),
			Hash: e.O,
		})
	}
	return checkouts, nil
}

// parseCheckoutSource extracts "<from>" out of a "checkout: moving from
// <from> to <to>" message.
func parseCheckoutSource(message string) (string, bool) {
	if !strings.HasPrefix(message, checkoutPrefix) {
		return "", false
	}
	rest := message[len(checkoutPrefix):]
	idx := strings.Index(rest, " to ")
	if idx == -1 {
		return "", false
	}
	return rest[:idx], true
}
