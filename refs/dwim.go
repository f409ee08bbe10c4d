// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package refs

import "github.com/nexthash/revspec/plumbing"

// Dwim resolves a bare name ("master", "test", "origin/master", ...)
// against Backend using the fixed RevParseRules priority order, returning
// the first rule whose expansion exists. This is component F's "do what I
// mean" reference lookup: priority order makes the result definitive, so
// unlike object-id abbreviation this never produces an ambiguity error.
func Dwim(b Backend, name string) (*plumbing.Reference, plumbing.ReferenceName, error) {
	var lastErr error
	for _, rule := range RevParseRules {
		full := rule.ReferenceName(name)
		ref, err := ReferenceResolve(b, full)
		if err != nil {
			lastErr = err
			continue
		}
		return ref, full, nil
	}
	if lastErr == nil {
		lastErr = plumbing.ErrReferenceNotFound
	}
	return nil, "", lastErr
}
