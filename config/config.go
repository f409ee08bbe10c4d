// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package config implements the configuration collaborator for
// component F (`@{upstream}`/`@{u}`): per-branch upstream bindings, plus
// the ambient core/user sections every command-level tool in this module
// reads.
package config

import (
	"fmt"
)

func overwrite(a, b string) string {
	if len(b) != 0 {
		return b
	}
	return a
}

// User identifies the person running a command. Nothing in this module
// reads it yet beyond loading and merging it.
type User struct {
	Name  string `toml:"name,omitempty"`
	Email string `toml:"email,omitempty"`
}

func (u *User) Empty() bool {
	return u == nil || len(u.Name) == 0 || len(u.Email) == 0
}

func (u *User) Overwrite(o *User) {
	u.Name = overwrite(u.Name, o.Name)
	u.Email = overwrite(u.Email, o.Email)
}

// Core holds repository-wide settings unrelated to any single branch.
type Core struct {
	Remote string `toml:"remote,omitempty"`
	Editor string `toml:"editor,omitempty"`
}

func (c *Core) Overwrite(o *Core) {
	c.Remote = overwrite(c.Remote, o.Remote)
	c.Editor = overwrite(c.Editor, o.Editor)
}

// Branch is a `[branch "<name>"]` section: the upstream binding that
// backs `@{upstream}`/`@{u}` (spec.md §4.F). The teacher's Core carries a
// single repo-wide Remote; a revision resolver needs one upstream per
// local branch, so this section is new, built in the teacher's own
// Overwrite-merge idiom.
type Branch struct {
	Remote string `toml:"remote,omitempty"`
	Merge  string `toml:"merge,omitempty"` // full ref name on Remote, e.g. "refs/heads/master"
}

func (b *Branch) Overwrite(o *Branch) {
	b.Remote = overwrite(b.Remote, o.Remote)
	b.Merge = overwrite(b.Merge, o.Merge)
}

// Empty reports whether no upstream has been configured at all.
func (b *Branch) Empty() bool {
	return b == nil || (len(b.Remote) == 0 && len(b.Merge) == 0)
}

// Config is the merged view of system, global, and repository config.
type Config struct {
	Core     Core               `toml:"core,omitempty"`
	User     User               `toml:"user,omitempty"`
	Branches map[string]*Branch `toml:"branch,omitempty"`
}

// Overwrite merges o into c in place: any field o sets wins, matching the
// teacher's own local-overrides-global convention.
func (c *Config) Overwrite(o *Config) {
	c.Core.Overwrite(&o.Core)
	c.User.Overwrite(&o.User)
	if c.Branches == nil {
		c.Branches = make(map[string]*Branch)
	}
	for name, ob := range o.Branches {
		if cb, ok := c.Branches[name]; ok {
			cb.Overwrite(ob)
			continue
		}
		merged := &Branch{}
		merged.Overwrite(ob)
		c.Branches[name] = merged
	}
}

// ErrUpstreamUnconfigured is the sentinel backing the upstream_unconfigured
// error kind of spec.md §7: the branch exists but has no remote-tracking
// configuration, or the spec names something that isn't a local branch.
type ErrUpstreamUnconfigured struct {
	Branch string
}

func (e *ErrUpstreamUnconfigured) Error() string {
	return fmt.Sprintf("no upstream configured for branch %q", e.Branch)
}

func IsErrUpstreamUnconfigured(err error) bool {
	_, ok := err.(*ErrUpstreamUnconfigured)
	return ok
}

// Upstream resolves branch's `@{upstream}` target: the full reference name
// of the remote-tracking branch it follows, e.g.
// "refs/remotes/origin/master".
func (c *Config) Upstream(branch string) (string, error) {
	b, ok := c.Branches[branch]
	if !ok || b.Empty() {
		return "", &ErrUpstreamUnconfigured{Branch: branch}
	}
	if len(b.Remote) == 0 || len(b.Merge) == 0 {
		return "", &ErrUpstreamUnconfigured{Branch: branch}
	}
	return "refs/remotes/" + b.Remote + "/" + branchLeaf(b.Merge), nil
}

func branchLeaf(ref string) string {
	const prefix = "refs/heads/"
	if len(ref) > len(prefix) && ref[:len(prefix)] == prefix {
		return ref[len(prefix):]
	}
	return ref
}
