// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package reflog

import (
	"time"

	"github.com/nexthash/revspec/plumbing"
)

// AtDate returns the value the reference had at instant t: the newest
// entry whose committer time is <= t, per spec.md §4.D's "most recent
// entry not newer than the requested time" rule. Reports false if every
// entry postdates t (there is no value to return).
func AtDate(entries Entries, t time.Time) (plumbing.Hash, bool) {
	for _, e := range entries {
		if !e.Committer.When.After(t) {
			return e.N, true
		}
	}
	return plumbing.ZeroHash, false
}
