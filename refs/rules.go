// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package refs

import (
	"strings"

	"github.com/nexthash/revspec/plumbing"
)

// Rule is one DWIM candidate: a reference name is built by wrapping a
// bare name in prefix/suffix. Grounded on git's shorten_unambiguous_ref
// candidate list, reproduced by the teacher's own refRevParseRules.
type Rule struct {
	prefix string
	suffix string
}

func (r Rule) ReferenceName(name string) plumbing.ReferenceName {
	return plumbing.ReferenceName(r.prefix + name + r.suffix)
}

func (r Rule) ShortName(name string) (string, bool) {
	if !strings.HasPrefix(name, r.prefix) || !strings.HasSuffix(name, r.suffix) {
		return "", false
	}
	return name[len(r.prefix) : len(name)-len(r.suffix)], true
}

// RevParseRules is the fixed DWIM search order for component F (§4.F):
// the bare name itself, then refs/<name>, refs/tags/<name>,
// refs/heads/<name>, refs/remotes/<name>, refs/remotes/<name>/HEAD.
var RevParseRules = []Rule{
	{},
	{prefix: "refs/"},
	{prefix: "refs/tags/"},
	{prefix: "refs/heads/"},
	{prefix: "refs/remotes/"},
	{prefix: "refs/remotes/", suffix: "/HEAD"},
}

// ShortName renders name in its shortest DWIM form: the most specific rule
// (searching RevParseRules from the end) whose expansion equals name
// exactly. It does not check whether the short form would also expand to
// some other existing reference.
func ShortName(name plumbing.ReferenceName) string {
	s := string(name)
	for i := len(RevParseRules) - 1; i >= 1; i-- {
		if short, ok := RevParseRules[i].ShortName(s); ok && short != "" {
			return short
		}
	}
	return s
}
