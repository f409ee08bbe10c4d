// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package plumbing

import (
	"strings"
)

const (
	ReferencePrefix = "refs/"
	refHeadPrefix   = ReferencePrefix + "heads/"
	refTagPrefix    = ReferencePrefix + "tags/"
	refRemotePrefix = ReferencePrefix + "remotes/"
	symrefPrefix    = "ref: "
)

const (
	HEAD ReferenceName = "HEAD"
)

// ReferenceType distinguishes direct (hash) from symbolic references.
type ReferenceType int8

const (
	InvalidReference  ReferenceType = 0
	HashReference     ReferenceType = 1
	SymbolicReference ReferenceType = 2
)

func (r ReferenceType) String() string {
	switch r {
	case HashReference:
		return "hash-reference"
	case SymbolicReference:
		return "symbolic-reference"
	default:
		return "invalid-reference"
	}
}

// ReferenceName is a full ref name, e.g. "refs/heads/master" or "HEAD".
type ReferenceName string

func NewBranchReferenceName(name string) ReferenceName {
	return ReferenceName(refHeadPrefix + name)
}

func NewTagReferenceName(name string) ReferenceName {
	return ReferenceName(refTagPrefix + name)
}

func NewRemoteReferenceName(remote, name string) ReferenceName {
	return ReferenceName(refRemotePrefix + remote + "/" + name)
}

func NewRemoteHEADReferenceName(remote string) ReferenceName {
	return ReferenceName(refRemotePrefix + remote + "/HEAD")
}

func (r ReferenceName) String() string { return string(r) }

func (r ReferenceName) IsBranch() bool { return strings.HasPrefix(string(r), refHeadPrefix) }
func (r ReferenceName) IsTag() bool    { return strings.HasPrefix(string(r), refTagPrefix) }
func (r ReferenceName) IsRemote() bool { return strings.HasPrefix(string(r), refRemotePrefix) }

func (r ReferenceName) BranchName() string { return strings.TrimPrefix(string(r), refHeadPrefix) }
func (r ReferenceName) TagName() string    { return strings.TrimPrefix(string(r), refTagPrefix) }

// Reference is either a direct (hash) reference or a symbolic one pointing
// at another reference name.
type Reference struct {
	t      ReferenceType
	n      ReferenceName
	h      Hash
	target ReferenceName
}

func NewHashReference(n ReferenceName, h Hash) *Reference {
	return &Reference{t: HashReference, n: n, h: h}
}

func NewSymbolicReference(n, target ReferenceName) *Reference {
	return &Reference{t: SymbolicReference, n: n, target: target}
}

// NewReferenceFromStrings builds a reference from a name and a raw target,
// the target being either "ref: <name>" (symbolic) or a hex hash (direct).
func NewReferenceFromStrings(name, target string) *Reference {
	n := ReferenceName(name)
	if strings.HasPrefix(target, symrefPrefix) {
		return NewSymbolicReference(n, ReferenceName(strings.TrimPrefix(target, symrefPrefix)))
	}
	return NewHashReference(n, NewHash(target))
}

func (r *Reference) Type() ReferenceType   { return r.t }
func (r *Reference) Name() ReferenceName   { return r.n }
func (r *Reference) Hash() Hash            { return r.h }
func (r *Reference) Target() ReferenceName { return r.target }
func (r *Reference) IsSymbolic() bool      { return r.t == SymbolicReference }

func (r *Reference) String() string {
	switch r.t {
	case HashReference:
		return r.h.String() + " " + string(r.n)
	case SymbolicReference:
		return symrefPrefix + string(r.target) + " " + string(r.n)
	default:
		return ""
	}
}

type ReferenceSlice []*Reference

func (p ReferenceSlice) Len() int           { return len(p) }
func (p ReferenceSlice) Less(i, j int) bool { return p[i].Name() < p[j].Name() }
func (p ReferenceSlice) Swap(i, j int)      { p[i], p[j] = p[j], p[i] }
