// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package revision implements the full revision-expression grammar:
// abbreviated object ids, reference DWIM, history navigation (`^`/`~`),
// peeling and type assertions (`^{...}`), the reflog operators (`@{...}`),
// commit-message search (`^{/regex}`/`:/regex`), and tree-path descent
// (`:path`).
package revision

import (
	"errors"
	"fmt"

	"github.com/nexthash/revspec/object"
)

// Kind is one of the seven ways a revision expression can fail to resolve.
type Kind int8

const (
	// Invalid marks a syntactically malformed expression.
	Invalid Kind = iota
	// NotFound marks a well-formed expression whose target doesn't exist.
	NotFound
	// Ambiguous marks an abbreviated object id matching more than one object.
	Ambiguous
	// TypeMismatch marks a `^{kind}` assertion against an object of a
	// different (and unpeelable-to-kind) type.
	TypeMismatch
	// InvalidKindKeyword marks a `^{word}` where word isn't a recognized
	// kind keyword or one of the special forms (`{}`, `{/regex}`).
	InvalidKindKeyword
	// UpstreamUnconfigured marks `@{upstream}`/`@{u}` against a branch with
	// no configured remote-tracking target.
	UpstreamUnconfigured
	// RegexInvalid marks a `^{/regex}` or `:/regex` body that doesn't
	// compile as a POSIX extended regular expression.
	RegexInvalid
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "invalid"
	case NotFound:
		return "notfound"
	case Ambiguous:
		return "ambiguous"
	case TypeMismatch:
		return "type_mismatch"
	case InvalidKindKeyword:
		return "invalid_kind_keyword"
	case UpstreamUnconfigured:
		return "upstream_unconfigured"
	case RegexInvalid:
		return "regex_invalid"
	default:
		return "unknown"
	}
}

// Error is the single error type this package returns; Kind tells the
// caller which of the seven failure modes occurred.
type Error struct {
	Kind       Kind
	Spec       string
	Msg        string
	Candidates []string // populated for Ambiguous
}

func (e *Error) Error() string {
	if len(e.Candidates) > 0 {
		return fmt.Sprintf("%s: %q %s %v", e.Kind, e.Spec, e.Msg, e.Candidates)
	}
	return fmt.Sprintf("%s: %q %s", e.Kind, e.Spec, e.Msg)
}

func newInvalid(spec, msg string) error {
	return &Error{Kind: Invalid, Spec: spec, Msg: msg}
}

func newNotFound(spec string) error {
	return &Error{Kind: NotFound, Spec: spec, Msg: "not found"}
}

func newAmbiguous(spec string, candidates []string) error {
	return &Error{Kind: Ambiguous, Spec: spec, Msg: "ambiguous object id prefix", Candidates: candidates}
}

// NewAmbiguousError is the exported form of newAmbiguous, for
// AmbiguityChecker implementations living outside this package (package
// odb is the one concrete example) that need to report an abbreviated id
// matching more than one object.
func NewAmbiguousError(prefix string, candidates []string) error {
	return newAmbiguous(prefix, candidates)
}

func newTypeMismatch(spec string, want object.Kind, got object.Kind) error {
	return &Error{Kind: TypeMismatch, Spec: spec, Msg: fmt.Sprintf("expected %s, got %s", want, got)}
}

func newInvalidKindKeyword(spec, word string) error {
	return &Error{Kind: InvalidKindKeyword, Spec: spec, Msg: fmt.Sprintf("unrecognized kind keyword %q", word)}
}

func newUpstreamUnconfigured(spec, branch string) error {
	return &Error{Kind: UpstreamUnconfigured, Spec: spec, Msg: fmt.Sprintf("no upstream configured for %q", branch)}
}

func newRegexInvalid(spec, pattern string) error {
	return &Error{Kind: RegexInvalid, Spec: spec, Msg: fmt.Sprintf("invalid regular expression %q", pattern)}
}

func kindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

func IsInvalid(err error) bool        { k, ok := kindOf(err); return ok && k == Invalid }
func IsNotFound(err error) bool       { k, ok := kindOf(err); return ok && k == NotFound }
func IsAmbiguous(err error) bool      { k, ok := kindOf(err); return ok && k == Ambiguous }
func IsTypeMismatch(err error) bool   { k, ok := kindOf(err); return ok && k == TypeMismatch }
func IsInvalidKindKeyword(err error) bool {
	k, ok := kindOf(err)
	return ok && k == InvalidKindKeyword
}
func IsUpstreamUnconfigured(err error) bool {
	k, ok := kindOf(err)
	return ok && k == UpstreamUnconfigured
}
func IsRegexInvalid(err error) bool { k, ok := kindOf(err); return ok && k == RegexInvalid }
